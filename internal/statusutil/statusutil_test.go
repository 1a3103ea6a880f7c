package statusutil

import (
	"testing"

	"taskboard/internal/model"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    model.Status
		wantErr bool
	}{
		{"backlog", model.StatusBacklog, false},
		{"  BACKLOG ", model.StatusBacklog, false},
		{"in-progress", model.StatusInProgress, false},
		{"In Progress", model.StatusInProgress, false},
		{"in_review", model.StatusInReview, false},
		{"done", model.StatusCompleted, false},
		{"completed", model.StatusCompleted, false},
		{"", "", true},
		{"   ", "", true},
		{"archived", "", true},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.wantErr && err == nil {
			t.Fatalf("ParseStatus(%q): expected error", tc.in)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("ParseStatus(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseStatus(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestLabel(t *testing.T) {
	cases := map[model.Status]string{
		model.StatusBacklog:    "Backlog",
		model.StatusInProgress: "In Progress",
		model.StatusInReview:   "In Review",
		model.StatusCompleted:  "Completed",
	}
	for in, want := range cases {
		if got := Label(in); got != want {
			t.Fatalf("Label(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestNext_ClampsToColumns(t *testing.T) {
	if got := Next(model.StatusBacklog, -1); got != model.StatusBacklog {
		t.Fatalf("expected backlog, got %q", got)
	}
	if got := Next(model.StatusBacklog, 1); got != model.StatusInProgress {
		t.Fatalf("expected in-progress, got %q", got)
	}
	if got := Next(model.StatusInReview, 5); got != model.StatusCompleted {
		t.Fatalf("expected completed, got %q", got)
	}
	if !IsEndState(model.StatusCompleted) || IsEndState(model.StatusInReview) {
		t.Fatalf("unexpected end-state classification")
	}
}
