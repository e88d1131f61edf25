package settings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecord_SetCreatesSections(t *testing.T) {
	rec := New()
	if err := rec.Set("article.margin_left", 2.5); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := rec.Set("identifier", "Smith2020"); err != nil {
		t.Fatalf("set: %v", err)
	}

	want := Record{
		"article":    map[string]any{"margin_left": 2.5},
		"identifier": "Smith2020",
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_GetMissing(t *testing.T) {
	rec := Record{"article": map[string]any{"font_size": 11.0}}

	if _, ok := rec.Get("article.page_format"); ok {
		t.Fatalf("expected missing nested key")
	}
	if _, ok := rec.Get("article.font_size.extra"); ok {
		t.Fatalf("expected lookup through scalar to fail")
	}
	got, ok := rec.Get("article.font_size")
	if !ok || got != 11.0 {
		t.Fatalf("font_size: got %v (ok=%v)", got, ok)
	}
}

func TestRecord_SetReplacesScalarIntermediate(t *testing.T) {
	rec := Record{"article": "legacy"}
	if err := rec.Set("article.page_format", "a4paper"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ := rec.Get("article.page_format")
	if got != "a4paper" {
		t.Fatalf("page_format: got %v", got)
	}
}

func TestRecord_SetRejectsEmptySegments(t *testing.T) {
	rec := New()
	for _, path := range []string{"", "article.", ".name"} {
		if err := rec.Set(path, 1); err == nil {
			t.Fatalf("expected error for path %q", path)
		}
	}
}

func TestRecord_SharedByReference(t *testing.T) {
	rec := New()
	alias := rec
	section := rec.Section("fields")
	section["author"] = "Knuth"

	got, ok := alias.Get("fields.author")
	if !ok || got != "Knuth" {
		t.Fatalf("alias should observe writes, got %v (ok=%v)", got, ok)
	}
}

func TestRecord_CloneIsDeep(t *testing.T) {
	rec := Record{"article": map[string]any{"margin_top": 3.5}}
	clone := rec.Clone()
	if err := clone.Set("article.margin_top", 1.0); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ := rec.Get("article.margin_top")
	if got != 3.5 {
		t.Fatalf("original mutated through clone: %v", got)
	}
}

func TestJoinPath(t *testing.T) {
	cases := map[string][2]string{
		"name":         {"", "name"},
		"article.name": {"article", "name"},
		"article":      {" article ", ""},
	}
	for want, in := range cases {
		if got := JoinPath(in[0], in[1]); got != want {
			t.Fatalf("JoinPath(%q, %q): want %q, got %q", in[0], in[1], want, got)
		}
	}
}
