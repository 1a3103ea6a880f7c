package state

import (
	"reflect"
	"testing"

	"taskboard/internal/model"
)

func strp(s string) *string { return &s }

func seedState() *State {
	st := New()
	st.SetBoards([]model.Board{
		{ID: "b1", Name: "One", Emoji: "🚀"},
		{ID: "b2", Name: "Two", Emoji: "📚"},
	})
	st.SetTasksForBoard("b1", []model.Task{
		{ID: "t1", Title: "First", Status: model.StatusBacklog, Tags: []string{"design", "frontend"}, Background: strp("img.png")},
		{ID: "t2", Title: "Second", Status: model.StatusInProgress, Tags: []string{}},
	})
	st.SetTasksForBoard("b2", []model.Task{
		{ID: "t1", Title: "Other board", Status: model.StatusCompleted, Tags: []string{}},
	})
	return st
}

func taskIDs(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestSetBoards_SelectsFirstOnlyWhenUnset(t *testing.T) {
	st := New()
	st.SetBoards([]model.Board{{ID: "a"}, {ID: "b"}})
	if st.ActiveBoardID != "a" {
		t.Fatalf("expected first board active, got %q", st.ActiveBoardID)
	}
	st.SetActiveBoardID("b")
	st.SetBoards([]model.Board{{ID: "c"}, {ID: "b"}})
	if st.ActiveBoardID != "b" {
		t.Fatalf("expected active board to be left alone, got %q", st.ActiveBoardID)
	}
}

func TestSetBoards_DropsRemovedBoardState(t *testing.T) {
	st := New()
	st.SetBoards([]model.Board{{ID: "b1"}, {ID: "b2"}})
	st.SetTasksForBoard("b1", []model.Task{{ID: "t1", Title: "x", Status: model.StatusBacklog}})
	st.BeginTasksFetch("b1")

	st.SetBoards([]model.Board{{ID: "b2"}})
	if st.ActiveBoardID != "b2" {
		t.Fatalf("expected dangling active board re-pointed, got %q", st.ActiveBoardID)
	}
	if _, ok := st.TasksByBoardID["b1"]; ok {
		t.Fatalf("expected tasks of removed board dropped")
	}
	if _, ok := st.TasksFetch["b1"]; ok {
		t.Fatalf("expected fetch flag of removed board dropped")
	}

	st.SetBoards(nil)
	if st.ActiveBoardID != "" {
		t.Fatalf("expected no active board, got %q", st.ActiveBoardID)
	}
}

func TestAddBoard_BecomesActive(t *testing.T) {
	st := seedState()
	st.AddBoard(model.Board{ID: "b3", Name: "Three"})
	if st.ActiveBoardID != "b3" {
		t.Fatalf("expected new board active, got %q", st.ActiveBoardID)
	}
	if got := st.Boards[len(st.Boards)-1].ID; got != "b3" {
		t.Fatalf("expected board appended, got last=%q", got)
	}
	if _, ok := st.TasksByBoardID["b3"]; !ok {
		t.Fatalf("expected empty task collection for new board")
	}

	st.AddBoard(model.Board{ID: "b1", Name: "dup"})
	if len(st.Boards) != 3 {
		t.Fatalf("expected duplicate id not to be appended; boards=%+v", st.Boards)
	}
	if st.ActiveBoardID != "b1" {
		t.Fatalf("expected re-added board to be selected, got %q", st.ActiveBoardID)
	}
}

func TestDeleteBoard_CascadesAndReselects(t *testing.T) {
	st := seedState()
	st.SetActiveBoardID("b1")
	st.DeleteBoard("b1")

	if _, ok := st.FindBoard("b1"); ok {
		t.Fatalf("expected b1 removed")
	}
	if _, ok := st.TasksByBoardID["b1"]; ok {
		t.Fatalf("expected b1 task collection removed")
	}
	if st.ActiveBoardID != "b2" {
		t.Fatalf("expected b2 active, got %q", st.ActiveBoardID)
	}

	st.DeleteBoard("b2")
	if st.ActiveBoardID != "" {
		t.Fatalf("expected no active board, got %q", st.ActiveBoardID)
	}
	if len(st.Boards) != 0 || len(st.TasksByBoardID) != 0 {
		t.Fatalf("expected empty store; boards=%+v tasks=%+v", st.Boards, st.TasksByBoardID)
	}
}

func TestDeleteBoard_InactiveKeepsSelection(t *testing.T) {
	st := seedState()
	st.SetActiveBoardID("b2")
	st.DeleteBoard("b1")
	if st.ActiveBoardID != "b2" {
		t.Fatalf("expected b2 to stay active, got %q", st.ActiveBoardID)
	}
}

func TestSetActiveBoardID_IgnoresUnknown(t *testing.T) {
	st := seedState()
	st.SetActiveBoardID("nope")
	if st.ActiveBoardID != "b1" {
		t.Fatalf("expected b1 to stay active, got %q", st.ActiveBoardID)
	}
	st.SetActiveBoardID("b2")
	if st.ActiveBoardID != "b2" {
		t.Fatalf("expected b2 active, got %q", st.ActiveBoardID)
	}
}

func TestAddTask_NearTaskAndFallback(t *testing.T) {
	st := seedState()

	st.AddTask("b1", model.Task{ID: "copy", Title: "First"}, "t1")
	if got := taskIDs(st.Tasks("b1")); !reflect.DeepEqual(got, []string{"t1", "copy", "t2"}) {
		t.Fatalf("expected copy right after t1, got %v", got)
	}

	st.AddTask("b1", model.Task{ID: "tail"}, "missing")
	if got := taskIDs(st.Tasks("b1")); !reflect.DeepEqual(got, []string{"t1", "copy", "t2", "tail"}) {
		t.Fatalf("expected append when near task missing, got %v", got)
	}

	st.AddTask("b1", model.Task{ID: "t2", Title: "dup"}, "")
	if len(st.Tasks("b1")) != 4 {
		t.Fatalf("expected duplicate id to be ignored, got %v", taskIDs(st.Tasks("b1")))
	}
	if tk, _ := st.FindTask("b1", "tail"); tk.Tags == nil {
		t.Fatalf("expected nil tags to be normalized to empty")
	}
}

func TestAddTask_BoardWithoutCollectionKeepsTask(t *testing.T) {
	st := New()
	st.SetBoards([]model.Board{{ID: "b1"}})
	if _, ok := st.TasksByBoardID["b1"]; ok {
		t.Fatalf("precondition: expected no collection yet")
	}

	st.AddTask("b1", model.Task{ID: "t1", Title: "kept", Status: model.StatusBacklog}, "")

	got, ok := st.FindTask("b1", "t1")
	if !ok {
		t.Fatalf("expected task to be retained when the collection did not exist")
	}
	if got.Title != "kept" {
		t.Fatalf("unexpected task: %+v", got)
	}
}

func TestAddTask_UnknownBoardIsNoop(t *testing.T) {
	st := seedState()
	st.AddTask("ghost", model.Task{ID: "x"}, "")
	if _, ok := st.TasksByBoardID["ghost"]; ok {
		t.Fatalf("expected no collection for unknown board")
	}
}

func TestTaskWrites_NormalizeTags(t *testing.T) {
	st := seedState()
	dup := []string{"a", " a", "", "b"}
	want := []string{"a", "b"}

	st.AddTask("b1", model.Task{ID: "t3", Tags: dup}, "")
	st.MergeTasks("b1", []model.Task{{ID: "t4", Tags: dup}})
	st.UpdateTask("b1", TaskPatch{ID: "t1", Tags: &dup})
	for _, id := range []string{"t1", "t3", "t4"} {
		got, _ := st.FindTask("b1", id)
		if !reflect.DeepEqual(got.Tags, want) {
			t.Fatalf("%s: expected %q, got %q", id, want, got.Tags)
		}
	}

	st.SetTasksForBoard("b2", []model.Task{{ID: "t5", Tags: dup}})
	if got := st.Tasks("b2")[0].Tags; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestUpdateTask_PatchAndFullReplace(t *testing.T) {
	st := seedState()

	title := "Renamed"
	st.UpdateTask("b1", TaskPatch{ID: "t1", Title: &title})
	got, _ := st.FindTask("b1", "t1")
	if got.Title != "Renamed" || got.Status != model.StatusBacklog || len(got.Tags) != 2 || got.Background == nil {
		t.Fatalf("expected title-only patch, got %+v", got)
	}

	st.UpdateTask("b1", FullPatch(model.Task{ID: "t1", Title: "Full", Status: model.StatusInReview, Tags: []string{"x"}}))
	got, _ = st.FindTask("b1", "t1")
	if got.Title != "Full" || got.Status != model.StatusInReview || !reflect.DeepEqual(got.Tags, []string{"x"}) || got.Background != nil {
		t.Fatalf("expected full replace, got %+v", got)
	}

	before := st.Clone()
	st.UpdateTask("b1", TaskPatch{ID: "missing", Title: &title})
	if !reflect.DeepEqual(before.TasksByBoardID, st.TasksByBoardID) {
		t.Fatalf("expected no-op for missing task")
	}
}

func TestMoveTask_IsStatusOnly(t *testing.T) {
	st := seedState()
	before, _ := st.FindTask("b1", "t1")
	want := before.Clone()
	want.Status = model.StatusCompleted

	st.MoveTask("b1", "t1", model.StatusCompleted)

	got, _ := st.FindTask("b1", "t1")
	if !reflect.DeepEqual(*got, want) {
		t.Fatalf("expected only status to change:\nwant %+v\n got %+v", want, *got)
	}
	if ids := taskIDs(st.Tasks("b1")); !reflect.DeepEqual(ids, []string{"t1", "t2"}) {
		t.Fatalf("expected order unchanged, got %v", ids)
	}
	if other, _ := st.FindTask("b2", "t1"); other.Status != model.StatusCompleted || other.Title != "Other board" {
		t.Fatalf("expected other board untouched, got %+v", other)
	}

	st.MoveTask("b1", "t2", model.Status("nope"))
	if got, _ := st.FindTask("b1", "t2"); got.Status != model.StatusInProgress {
		t.Fatalf("expected invalid status to be ignored, got %q", got.Status)
	}
}

func TestDeleteTaskByID(t *testing.T) {
	st := seedState()
	st.DeleteTaskByID("b1", "t1")
	if ids := taskIDs(st.Tasks("b1")); !reflect.DeepEqual(ids, []string{"t2"}) {
		t.Fatalf("expected t1 removed, got %v", ids)
	}
	if _, ok := st.FindTask("b2", "t1"); !ok {
		t.Fatalf("expected same id on other board to survive")
	}
	st.DeleteTaskByID("ghost", "t1")
}

func TestTaskDialog_Transitions(t *testing.T) {
	st := seedState()
	tk, _ := st.FindTask("b1", "t1")

	st.OpenEditTaskDialog(*tk)
	if !st.DialogOpen || st.EditingTask == nil || st.EditingTask.ID != "t1" {
		t.Fatalf("expected edit dialog open for t1, got open=%v editing=%+v", st.DialogOpen, st.EditingTask)
	}
	// Snapshot must not alias the stored task.
	st.EditingTask.Tags[0] = "mutated"
	if tk2, _ := st.FindTask("b1", "t1"); tk2.Tags[0] != "design" {
		t.Fatalf("expected dialog snapshot to be independent")
	}

	st.OpenAddTaskDialog()
	if !st.DialogOpen || st.EditingTask != nil {
		t.Fatalf("expected add dialog with no editing task")
	}
	st.CloseTaskDialog()
	if st.DialogOpen || st.EditingTask != nil {
		t.Fatalf("expected dialog closed and cleared")
	}
}

func TestSetColumnVisibility_LocksRequiredColumns(t *testing.T) {
	st := New()
	st.SetColumnVisibility(map[string]bool{"projectName": false, "taskTitle": false, "tags": false})
	want := map[string]bool{"projectName": true, "taskTitle": true, "tags": false}
	if !reflect.DeepEqual(st.Grid.ColumnVisibility, want) {
		t.Fatalf("expected %v, got %v", want, st.Grid.ColumnVisibility)
	}
}

func TestThemeMode(t *testing.T) {
	st := New()
	if st.Theme.Mode != model.ThemeDark {
		t.Fatalf("expected dark default")
	}
	st.ToggleThemeMode()
	if st.Theme.Mode != model.ThemeLight {
		t.Fatalf("expected light after toggle")
	}
	st.SetThemeMode("sepia")
	if st.Theme.Mode != model.ThemeLight {
		t.Fatalf("expected unknown mode to be ignored")
	}
}

func TestFindTaskAnywhere_FirstBoardWins(t *testing.T) {
	st := seedState()
	boardID, tk, ok := st.FindTaskAnywhere("t1")
	if !ok || boardID != "b1" || tk.Title != "First" {
		t.Fatalf("expected t1 on b1, got board=%q task=%+v ok=%v", boardID, tk, ok)
	}
	if _, err := st.RequireTask("b2", "t9"); err == nil {
		t.Fatalf("expected not found error")
	} else if _, ok := err.(NotFoundError); !ok {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
}

func TestNormalize_RepairsInvariants(t *testing.T) {
	st := New()
	st.Boards = []model.Board{{ID: "b1"}, {ID: "b1"}, {ID: ""}}
	st.ActiveBoardID = "gone"
	st.TasksByBoardID = map[string][]model.Task{
		"b1":     {{ID: "t1"}, {ID: "t1"}, {ID: "t2"}},
		"orphan": {{ID: "x"}},
	}
	st.Normalize()

	if len(st.Boards) != 1 || st.ActiveBoardID != "b1" {
		t.Fatalf("unexpected boards=%+v active=%q", st.Boards, st.ActiveBoardID)
	}
	if _, ok := st.TasksByBoardID["orphan"]; ok {
		t.Fatalf("expected orphan collection dropped")
	}
	if ids := taskIDs(st.Tasks("b1")); !reflect.DeepEqual(ids, []string{"t1", "t2"}) {
		t.Fatalf("expected deduped tasks, got %v", ids)
	}
}

func TestNormalize_TrimsCollectionKeys(t *testing.T) {
	st := New()
	st.Boards = []model.Board{{ID: " b1 "}}
	st.ActiveBoardID = " b1 "
	st.TasksByBoardID = map[string][]model.Task{
		" b1 ": {{ID: "t1"}},
		"b1":   {{ID: "t1"}, {ID: "t2"}},
	}
	st.Normalize()

	if st.ActiveBoardID != "b1" {
		t.Fatalf("active = %q", st.ActiveBoardID)
	}
	if ids := taskIDs(st.Tasks("b1")); !reflect.DeepEqual(ids, []string{"t1", "t2"}) {
		t.Fatalf("expected tasks kept under trimmed key, got %v", ids)
	}
	if len(st.TasksByBoardID) != 1 {
		t.Fatalf("collections = %v", st.TasksByBoardID)
	}
}

func TestClone_IsDeep(t *testing.T) {
	st := seedState()
	cp := st.Clone()
	cp.Boards[0].Name = "changed"
	cp.TasksByBoardID["b1"][0].Tags[0] = "changed"
	*cp.TasksByBoardID["b1"][0].Background = "changed"

	if st.Boards[0].Name != "One" {
		t.Fatalf("board aliased")
	}
	tk, _ := st.FindTask("b1", "t1")
	if tk.Tags[0] != "design" || *tk.Background != "img.png" {
		t.Fatalf("task aliased: %+v", tk)
	}
}
