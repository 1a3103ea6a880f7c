package statusutil

import (
	"fmt"
	"strings"

	"taskboard/internal/model"
)

// ParseStatus accepts the canonical ids plus the spellings users tend to type
// ("In Progress", "in_progress", "DONE").
func ParseStatus(s string) (model.Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	switch norm {
	case "backlog", "todo":
		return model.StatusBacklog, nil
	case "in-progress", "inprogress", "doing":
		return model.StatusInProgress, nil
	case "in-review", "inreview", "review":
		return model.StatusInReview, nil
	case "completed", "complete", "done":
		return model.StatusCompleted, nil
	case "":
		return "", fmt.Errorf("invalid status: empty")
	default:
		return "", fmt.Errorf("invalid status: %q (expected backlog|in-progress|in-review|completed)", s)
	}
}

// Label renders a status for display: "in-progress" => "In Progress".
func Label(s model.Status) string {
	parts := strings.Split(string(s), "-")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

func IsEndState(s model.Status) bool {
	return s == model.StatusCompleted
}

// Next returns the status one column to the right (or left when delta < 0),
// clamped to the fixed column order.
func Next(s model.Status, delta int) model.Status {
	idx := 0
	for i, st := range model.Statuses {
		if st == s {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(model.Statuses) {
		idx = len(model.Statuses) - 1
	}
	return model.Statuses[idx]
}
