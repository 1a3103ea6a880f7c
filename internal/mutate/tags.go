package mutate

import (
	"strings"

	"taskboard/internal/model"
)

// NormalizeTags trims each tag, drops empties and removes duplicates while
// keeping first-seen order.
func NormalizeTags(tags []string) []string {
	return model.NormalizeTags(tags)
}

// AddTag appends tag unless it is blank or already present.
func AddTag(tags []string, tag string) []string {
	return NormalizeTags(append(append([]string{}, tags...), tag))
}

// SplitTags parses a comma-separated cell value.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(s, ","))
}
