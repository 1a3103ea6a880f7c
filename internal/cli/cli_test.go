package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// testEnv isolates config and data for one test and returns a runner that
// prepends --dir.
func testEnv(t *testing.T, extra ...string) func(args ...string) map[string]any {
	t.Helper()
	t.Setenv("TASKBOARD_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	return func(args ...string) map[string]any {
		t.Helper()
		full := append([]string{"--dir", dir}, extra...)
		full = append(full, args...)
		out, errOut, err := runCLI(t, full)
		if err != nil {
			t.Fatalf("%v: %v\nstderr: %s", args, err, string(errOut))
		}
		var env map[string]any
		if err := json.Unmarshal(out, &env); err != nil {
			t.Fatalf("%v: decode %q: %v", args, string(out), err)
		}
		return env
	}
}

func dataList(t *testing.T, env map[string]any) []any {
	t.Helper()
	v, ok := env["data"].([]any)
	if !ok {
		t.Fatalf("data is not a list: %#v", env["data"])
	}
	return v
}

func dataMap(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	v, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("data is not an object: %#v", env["data"])
	}
	return v
}

func field(v any, k string) any {
	m, _ := v.(map[string]any)
	return m[k]
}

func titles(t *testing.T, env map[string]any) []string {
	t.Helper()
	var out []string
	for _, it := range dataList(t, env) {
		s, _ := field(it, "title").(string)
		out = append(out, s)
	}
	return out
}

func newRemote(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/list.json":
			_, _ = w.Write([]byte(`[` +
				`{"id":1,"name":"Web","emoji":"🛠️","link":"` + srv.URL + `/1.json"},` +
				`{"id":"2","name":"Broken","emoji":"⚙️","link":"` + srv.URL + `/missing.json"}]`))
		case "/1.json":
			_, _ = w.Write([]byte(`{"tasks":[` +
				`{"id":1,"title":"Remote A","status":"backlog","tags":["design"]},` +
				`{"id":2,"title":"Remote B","status":"in-progress","tags":null}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSync_MergesRemoteWithoutOverwritingLocal(t *testing.T) {
	srv := newRemote(t)
	run := testEnv(t, "--boards-url", srv.URL+"/list.json")

	res := dataMap(t, run("sync"))
	if res["boards"] != float64(2) {
		t.Fatalf("boards = %v", res["boards"])
	}
	if field(res["tasksAdded"], "1") != float64(2) {
		t.Fatalf("tasksAdded = %v", res["tasksAdded"])
	}
	if _, ok := field(res["failed"], "2").(string); !ok {
		t.Fatalf("expected board 2 failure, got %v", res["failed"])
	}

	if got := titles(t, run("tasks", "list", "--board", "1")); strings.Join(got, ",") != "Remote A,Remote B" {
		t.Fatalf("tasks = %v", got)
	}

	run("tasks", "edit", "1", "--board", "1", "--title", "Local A")
	run("boards", "create", "--name", "Mine")
	run("sync")

	if got := titles(t, run("tasks", "list", "--board", "1")); strings.Join(got, ",") != "Local A,Remote B" {
		t.Fatalf("local edit lost: %v", got)
	}
	boards := dataList(t, run("boards", "list"))
	var names []string
	for _, b := range boards {
		names = append(names, field(b, "name").(string))
	}
	if strings.Join(names, ",") != "Web,Broken,Mine" {
		t.Fatalf("board order = %v", names)
	}
	// The locally created board stays active across syncs.
	if field(boards[2], "active") != true {
		t.Fatalf("active board changed: %v", boards)
	}
}

func TestSync_OfflineIsRejected(t *testing.T) {
	t.Setenv("TASKBOARD_CONFIG_DIR", t.TempDir())
	_, errOut, err := runCLI(t, []string{"--dir", t.TempDir(), "--offline", "sync"})
	if err == nil || !strings.Contains(string(errOut), "offline") {
		t.Fatalf("err = %v, stderr = %s", err, errOut)
	}
}

func TestTasks_AddMoveCopyDelete(t *testing.T) {
	run := testEnv(t, "--offline")

	board := dataMap(t, run("boards", "create", "--name", "Work"))
	boardID := board["id"].(string)

	added := dataMap(t, run("tasks", "add", "--title", "Write docs", "--tag", "docs", "--tag", "docs"))
	taskID := added["id"].(string)
	if tags := added["tags"].([]any); len(tags) != 1 {
		t.Fatalf("tags = %v", tags)
	}

	moved := dataMap(t, run("tasks", "move", taskID, "done"))
	if moved["changed"] != true || field(moved["task"], "status") != "completed" {
		t.Fatalf("move = %v", moved)
	}
	if again := dataMap(t, run("tasks", "move", taskID, "completed")); again["changed"] != false {
		t.Fatalf("second move = %v", again)
	}

	cp := dataMap(t, run("tasks", "copy", taskID))
	if cp["id"] == taskID || cp["title"] != "Write docs" {
		t.Fatalf("copy = %v", cp)
	}
	got := titles(t, run("tasks", "list", "--board", boardID))
	if strings.Join(got, "|") != "Add your backlogs here|Write docs|Write docs" {
		t.Fatalf("tasks = %v", got)
	}

	run("tasks", "delete", cp["id"].(string))
	if got := titles(t, run("tasks", "list")); len(got) != 2 {
		t.Fatalf("after delete = %v", got)
	}

	done := titles(t, run("tasks", "list", "--status", "completed"))
	if len(done) != 1 || done[0] != "Write docs" {
		t.Fatalf("completed = %v", done)
	}
}

func TestTasks_Errors(t *testing.T) {
	t.Setenv("TASKBOARD_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	_, errOut, err := runCLI(t, []string{"--dir", dir, "--offline", "tasks", "add", "--title", "x"})
	if err == nil || !strings.Contains(string(errOut), "no active board") {
		t.Fatalf("add without board: err=%v stderr=%s", err, errOut)
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "--offline", "boards", "create", "--name", "B"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, errOut, err = runCLI(t, []string{"--dir", dir, "--offline", "tasks", "show", "nope"})
	if err == nil || !strings.Contains(string(errOut), "task not found: nope") {
		t.Fatalf("show missing: err=%v stderr=%s", err, errOut)
	}
	_, errOut, err = runCLI(t, []string{"--dir", dir, "--offline", "tasks", "add", "--title", "   "})
	if err == nil || !strings.Contains(string(errOut), "Name required") {
		t.Fatalf("blank title: err=%v stderr=%s", err, errOut)
	}
	_, errOut, err = runCLI(t, []string{"--dir", dir, "--offline", "boards", "use", "missing"})
	if err == nil || !strings.Contains(string(errOut), "not found") {
		t.Fatalf("use missing: err=%v stderr=%s", err, errOut)
	}
}

func TestGridEdit_RenamesBoard(t *testing.T) {
	run := testEnv(t, "--offline")
	board := dataMap(t, run("boards", "create", "--name", "Old"))

	rows := dataList(t, run("grid", "rows"))
	if len(rows) != 1 {
		t.Fatalf("rows = %v", rows)
	}
	rowID := field(rows[0], "id").(string)

	row := dataMap(t, run("grid", "edit", rowID, "--project-name", "New", "--status", "in-review", "--tags", "a, b"))
	if row["projectName"] != "New" || row["status"] != "in-review" {
		t.Fatalf("row = %v", row)
	}
	shown := dataMap(t, run("boards", "show", board["id"].(string)))
	if field(shown["board"], "name") != "New" {
		t.Fatalf("board = %v", shown["board"])
	}
}

func TestGridColumns_TitleAndProjectStayVisible(t *testing.T) {
	run := testEnv(t, "--offline")

	layout := dataMap(t, run("grid", "columns", "visibility", "projectName=false", "status=false"))
	eff := layout["effective"].([]any)
	var cols []string
	for _, c := range eff {
		cols = append(cols, c.(string))
	}
	if strings.Join(cols, ",") != "projectName,taskTitle,tags,background" {
		t.Fatalf("effective = %v", cols)
	}

	run("grid", "columns", "order", "tags,taskTitle")
	layout = dataMap(t, run("grid", "columns"))
	cols = cols[:0]
	for _, c := range layout["effective"].([]any) {
		cols = append(cols, c.(string))
	}
	if strings.Join(cols, ",") != "tags,taskTitle,projectName,background" {
		t.Fatalf("effective after reorder = %v", cols)
	}
}

func TestTheme_ToggleAndYAMLOutput(t *testing.T) {
	t.Setenv("TASKBOARD_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	if _, _, err := runCLI(t, []string{"--dir", dir, "--offline", "theme", "toggle"}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	out, _, err := runCLI(t, []string{"--dir", dir, "--offline", "--format", "yaml", "theme"})
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if !strings.Contains(string(out), "mode: light") {
		t.Fatalf("yaml = %s", out)
	}

	_, errOut, err := runCLI(t, []string{"--dir", dir, "--offline", "theme", "set", "blue"})
	if err == nil || !strings.Contains(string(errOut), "invalid theme mode") {
		t.Fatalf("set blue: err=%v stderr=%s", err, errOut)
	}
}

func TestConfigShow_FlagsOverrideDefaults(t *testing.T) {
	run := testEnv(t, "--storage", "sqlite", "--log-level", "debug")
	s := dataMap(t, run("config", "show"))
	if s["storage"] != "sqlite" || s["logLevel"] != "debug" {
		t.Fatalf("settings = %v", s)
	}
	if !strings.Contains(s["boardsURL"].(string), "list.json") {
		t.Fatalf("boardsURL = %v", s["boardsURL"])
	}
}

func TestDocs(t *testing.T) {
	out, _, err := runCLI(t, []string{"docs", "sync", "--raw"})
	if err != nil || !strings.HasPrefix(string(out), "# Sync") {
		t.Fatalf("docs sync: err=%v out=%s", err, out)
	}
	_, errOut, err := runCLI(t, []string{"docs", "nope"})
	if err == nil || !strings.Contains(string(errOut), "unknown docs topic") {
		t.Fatalf("docs nope: err=%v stderr=%s", err, errOut)
	}
}
