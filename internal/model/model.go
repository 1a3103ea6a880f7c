package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusInProgress Status = "in-progress"
	StatusInReview   Status = "in-review"
	StatusCompleted  Status = "completed"
)

// Statuses lists the fixed column order.
var Statuses = []Status{StatusBacklog, StatusInProgress, StatusInReview, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusInReview, StatusCompleted:
		return true
	default:
		return false
	}
}

type Board struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Emoji string `json:"emoji" yaml:"emoji"`
	// Link is the remote source for this board's tasks; empty for local boards.
	Link string `json:"link,omitempty" yaml:"link,omitempty"`
}

type Task struct {
	ID     string   `json:"id" yaml:"id"`
	Title  string   `json:"title" yaml:"title"`
	Status Status   `json:"status" yaml:"status"`
	Tags   []string `json:"tags" yaml:"tags"`
	// Background is an optional image reference.
	Background *string `json:"background" yaml:"background"`
}

// Clone returns a copy that shares no slices or pointers with t.
func (t Task) Clone() Task {
	out := t
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	if t.Background != nil {
		bg := *t.Background
		out.Background = &bg
	}
	return out
}

// GridRow is one task flattened together with its owning board.
type GridRow struct {
	ID          string   `json:"id" yaml:"id"`
	TaskID      string   `json:"taskID" yaml:"taskID"`
	TaskTitle   string   `json:"taskTitle" yaml:"taskTitle"`
	ProjectID   string   `json:"projectID" yaml:"projectID"`
	ProjectName string   `json:"projectName" yaml:"projectName"`
	Status      Status   `json:"status" yaml:"status"`
	Tags        []string `json:"tags" yaml:"tags"`
	Background  *string  `json:"background" yaml:"background"`
}

type GridState struct {
	ColumnOrder      []string        `json:"columnOrder" yaml:"columnOrder"`
	ColumnVisibility map[string]bool `json:"columnVisibility" yaml:"columnVisibility"`
}

type ThemeMode string

const (
	ThemeDark  ThemeMode = "dark"
	ThemeLight ThemeMode = "light"
)

type Theme struct {
	Mode ThemeMode `json:"mode" yaml:"mode"`
}

// NormalizeTags trims each tag, drops empties and removes duplicates while
// keeping first-seen order. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// CanonicalID converts an id decoded from a remote payload into the single
// string form used for keying. Numbers and strings are accepted; anything else
// is rejected.
func CanonicalID(raw json.RawMessage) (string, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return "", fmt.Errorf("missing id")
	}
	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", err
		}
		v = strings.TrimSpace(v)
		if v == "" {
			return "", fmt.Errorf("empty id")
		}
		return v, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid id: %s", s)
	}
	// Integral numbers keep their integer spelling ("7", never "7.0").
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	f, err := n.Float64()
	if err != nil {
		// Out of float range: the literal is still a valid number.
		return n.String(), nil
	}
	if f == math.Trunc(f) && math.Abs(f) <= maxExactFloat {
		return strconv.FormatInt(int64(f), 10), nil
	}
	if f != math.Trunc(f) {
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	// Integral but beyond float64 precision: rounding would merge distinct
	// ids, so keep the digits as sent.
	return n.String(), nil
}

// maxExactFloat is the largest magnitude below which every integer has an
// exact float64 representation.
const maxExactFloat = 1 << 53
