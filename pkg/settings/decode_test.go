package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecode_Formats(t *testing.T) {
	want := Record{
		"article": map[string]any{
			"page_format":            "a4paper",
			"font_size":              float64(11),
			"option_default_margins": true,
		},
	}

	cases := []struct {
		name string
		data string
	}{
		{
			name: "json",
			data: `{"article": {"page_format": "a4paper", "font_size": 11, "option_default_margins": true}}`,
		},
		{
			name: "json with comments",
			data: `{
  // page layout
  "article": {
    "page_format": "a4paper", /* ISO */
    "font_size": 11,
    "option_default_margins": true
  }
}`,
		},
		{
			name: "yaml",
			data: "article:\n  page_format: a4paper\n  font_size: 11\n  option_default_margins: true\n",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode([]byte(tc.data), tc.name)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("decoded record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecode_EmptyDocument(t *testing.T) {
	got, err := Decode([]byte("   \n"), "empty")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty record, got %v", got)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode([]byte("{not: [valid"), "broken.json"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := os.WriteFile(path, []byte("identifier: Smith2020\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	rec, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, _ := rec.Get("identifier"); got != "Smith2020" {
		t.Fatalf("identifier: got %v", got)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
