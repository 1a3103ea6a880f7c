package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectTaskLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"taskboard"},
			want: []string{"taskboard"},
		},
		{
			name: "direct task first token",
			in:   []string{"taskboard", "task:42"},
			want: []string{"taskboard", "tasks", "show", "42"},
		},
		{
			name: "value flags before task",
			in:   []string{"taskboard", "--dir", "/tmp/x", "--format", "yaml", "task:abc"},
			want: []string{"taskboard", "--dir", "/tmp/x", "--format", "yaml", "tasks", "show", "abc"},
		},
		{
			name: "bool flag and equals form",
			in:   []string{"taskboard", "--pretty", "--storage=redis", "task:7", "--board", "1"},
			want: []string{"taskboard", "--pretty", "--storage=redis", "tasks", "show", "7", "--board", "1"},
		},
		{
			name: "after double dash",
			in:   []string{"taskboard", "--", "task:9"},
			want: []string{"taskboard", "--", "tasks", "show", "9"},
		},
		{
			name: "empty id is left alone",
			in:   []string{"taskboard", "task:"},
			want: []string{"taskboard", "task:"},
		},
		{
			name: "normal subcommand untouched",
			in:   []string{"taskboard", "boards", "list"},
			want: []string{"taskboard", "boards", "list"},
		},
		{
			name: "value flag value is not a task",
			in:   []string{"taskboard", "--dir", "task:1", "sync"},
			want: []string{"taskboard", "--dir", "task:1", "sync"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectTaskLookupArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}
