package view

import (
	"reflect"
	"testing"

	"taskboard/internal/model"
	"taskboard/internal/state"
)

func TestGridRows_CompositeIDs(t *testing.T) {
	st := state.New()
	st.SetBoards([]model.Board{{ID: "b1", Name: "Board One"}, {ID: "b2", Name: "Board Two"}})
	st.SetTasksForBoard("b1", []model.Task{{ID: "t1", Title: "A"}, {ID: "t2", Title: "B", Tags: []string{"x"}}})
	st.SetTasksForBoard("b2", []model.Task{{ID: "t1", Title: "C"}})

	rows := GridRows(st)

	var ids []string
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	if !reflect.DeepEqual(ids, []string{"b1-t1", "b1-t2", "b2-t1"}) {
		t.Fatalf("unexpected row ids %v", ids)
	}
	if rows[0].ProjectID != "b1" || rows[1].ProjectID != "b1" || rows[0].ProjectName != "Board One" {
		t.Fatalf("unexpected project fields: %+v", rows[:2])
	}
	if rows[0].Tags == nil {
		t.Fatalf("expected empty tags, not nil")
	}

	// Rows are copies: mutating one never touches the store.
	rows[1].Tags[0] = "mutated"
	if tk, _ := st.FindTask("b1", "t2"); tk.Tags[0] != "x" {
		t.Fatalf("grid row aliased store tags")
	}
}

func TestGridRows_TwoTasksOneBoard(t *testing.T) {
	st := state.New()
	st.SetBoards([]model.Board{{ID: "b1"}})
	st.SetTasksForBoard("b1", []model.Task{{ID: "t1"}, {ID: "t2"}})

	rows := GridRows(st)
	if len(rows) != 2 || rows[0].ID != "b1-t1" || rows[1].ID != "b1-t2" {
		t.Fatalf("unexpected rows %+v", rows)
	}
	for _, r := range rows {
		if r.ProjectID != "b1" {
			t.Fatalf("expected projectID b1, got %q", r.ProjectID)
		}
	}
	if _, ok := FindRow(rows, "b1-t2"); !ok {
		t.Fatalf("expected to find row b1-t2")
	}
}

func TestColumns_ActiveBoardOnlyAndStableOrder(t *testing.T) {
	st := state.New()
	st.SetBoards([]model.Board{{ID: "b1"}, {ID: "b2"}})
	st.SetTasksForBoard("b1", []model.Task{
		{ID: "a", Status: model.StatusCompleted},
		{ID: "b", Status: model.StatusBacklog},
		{ID: "c", Status: model.StatusCompleted},
		{ID: "d", Status: model.StatusInReview},
		{ID: "e", Status: model.StatusBacklog},
	})
	st.SetTasksForBoard("b2", []model.Task{{ID: "z", Status: model.StatusBacklog}})

	cols := Columns(st)
	if len(cols) != 4 {
		t.Fatalf("expected four columns, got %d", len(cols))
	}
	want := map[model.Status][]string{
		model.StatusBacklog:    {"b", "e"},
		model.StatusInProgress: {},
		model.StatusInReview:   {"d"},
		model.StatusCompleted:  {"a", "c"},
	}
	for _, c := range cols {
		got := []string{}
		for _, tk := range c.Tasks {
			got = append(got, tk.ID)
		}
		if !reflect.DeepEqual(got, want[c.Status]) {
			t.Fatalf("column %s: expected %v, got %v", c.Status, want[c.Status], got)
		}
	}
	if cols[1].Label != "In Progress" {
		t.Fatalf("unexpected label %q", cols[1].Label)
	}

	st.MoveTask("b1", "b", model.StatusInProgress)
	cols = Columns(st)
	if len(cols[1].Tasks) != 1 || cols[1].Tasks[0].ID != "b" {
		t.Fatalf("expected moved task in in-progress column, got %+v", cols[1].Tasks)
	}
}

func TestColumns_NoActiveBoard(t *testing.T) {
	for _, c := range Columns(state.New()) {
		if len(c.Tasks) != 0 {
			t.Fatalf("expected empty columns")
		}
	}
}

func TestOrderedGridColumns(t *testing.T) {
	g := model.GridState{
		ColumnOrder:      []string{"status", "bogus", "taskTitle"},
		ColumnVisibility: map[string]bool{"background": false},
	}
	got := OrderedGridColumns(g)
	want := []string{"status", "taskTitle", "projectName", "tags"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestColorForTag(t *testing.T) {
	if ColorForTag("React").Text != "#1e40af" {
		t.Fatalf("expected technical bucket")
	}
	if ColorForTag("Concept art").Text != "#9d174d" {
		t.Fatalf("expected design bucket")
	}
	if ColorForTag("frontend").Text != "#09913d" {
		t.Fatalf("expected front bucket")
	}
	if ColorForTag("misc").Text != "#485e7d" {
		t.Fatalf("expected default bucket")
	}
}
