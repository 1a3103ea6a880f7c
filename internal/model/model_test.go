package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCanonicalID(t *testing.T) {
	cases := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: `"abc"`, want: "abc"},
		{raw: `" 12 "`, want: "12"},
		{raw: `7`, want: "7"},
		{raw: `7.0`, want: "7"},
		{raw: `1.5`, want: "1.5"},
		{raw: `1e3`, want: "1000"},
		{raw: `-4.0`, want: "-4"},
		{raw: `123456789012345678901`, want: "123456789012345678901"},
		{raw: `123456789012345678902`, want: "123456789012345678902"},
		{raw: `1e400`, want: "1e400"},
		{raw: `null`, wantErr: true},
		{raw: `""`, wantErr: true},
		{raw: `true`, wantErr: true},
		{raw: `{"a":1}`, wantErr: true},
	}
	for _, tc := range cases {
		got, err := CanonicalID(json.RawMessage(tc.raw))
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error, got %q", tc.raw, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}

func TestCanonicalID_LargeIntegersStayDistinct(t *testing.T) {
	a, errA := CanonicalID(json.RawMessage(`98765432109876543210`))
	b, errB := CanonicalID(json.RawMessage(`98765432109876543211`))
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v %v", errA, errB)
	}
	if a == b {
		t.Fatalf("distinct ids collapsed onto %q", a)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" b", "a", "", "b", "  ", "a "})
	if !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("unexpected tags %q", got)
	}
	if got := NormalizeTags(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestTaskClone_DoesNotAlias(t *testing.T) {
	bg := "x.png"
	orig := Task{ID: "t1", Tags: []string{"a"}, Background: &bg}
	c := orig.Clone()
	c.Tags[0] = "b"
	*c.Background = "y.png"
	if orig.Tags[0] != "a" || *orig.Background != "x.png" {
		t.Fatalf("clone aliases original: %+v", orig)
	}
}
