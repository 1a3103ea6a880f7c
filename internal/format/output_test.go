package format

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sample struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
	Flag string   `json:"flag"`
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": sample{ID: "b1", Name: "One", Tags: []string{}}}, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	want := `{"data":{"id":"b1","name":"One","tags":[],"flag":""}}` + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected json %q", buf.String())
	}
}

func TestWrite_YAMLKeepsJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{"data": sample{ID: "7", Name: "One", Tags: []string{"react"}, Flag: "true"}}
	if err := Write(&buf, v, "yaml", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "data:\n") || !strings.Contains(out, "name: One") {
		t.Fatalf("unexpected yaml:\n%s", out)
	}

	// Scalars that look like other types must survive a round trip as strings.
	var back struct {
		Data struct {
			ID   string   `yaml:"id"`
			Tags []string `yaml:"tags"`
			Flag string   `yaml:"flag"`
		} `yaml:"data"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("yaml parse: %v", err)
	}
	if back.Data.ID != "7" || back.Data.Flag != "true" || len(back.Data.Tags) != 1 {
		t.Fatalf("unexpected round trip %+v", back.Data)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
		t.Fatalf("expected error")
	}
}
