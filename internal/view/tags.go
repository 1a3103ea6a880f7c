package view

import "strings"

type TagColor struct {
	Text string `json:"text"`
	Bg   string `json:"bg"`
}

// ColorForTag buckets tags by keyword so related tags share a colour.
func ColorForTag(tag string) TagColor {
	t := strings.ToLower(tag)
	switch {
	case strings.Contains(t, "technical") || strings.Contains(t, "react"):
		return TagColor{Bg: "#dbeafe", Text: "#1e40af"}
	case strings.Contains(t, "design") || strings.Contains(t, "concept"):
		return TagColor{Bg: "#fce7f3", Text: "#9d174d"}
	case strings.Contains(t, "front"):
		return TagColor{Bg: "#dcfce7", Text: "#09913d"}
	default:
		return TagColor{Bg: "#e2e8f0", Text: "#485e7d"}
	}
}
