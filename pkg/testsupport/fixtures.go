package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/pagedef"
	"github.com/goliatone/go-formbind/pkg/pages"
	"github.com/goliatone/go-formbind/pkg/settings"
)

// LoadStore returns the built-in page definitions, failing the test on error.
func LoadStore(t testing.TB) *pagedef.Store {
	t.Helper()

	store, err := pagedef.LoadDefaults()
	if err != nil {
		t.Fatalf("load page definitions: %v", err)
	}
	return store
}

// ArticlePage builds the article settings page over record.
func ArticlePage(t testing.TB, record settings.Record) *pages.ArticleSettingsPage {
	t.Helper()

	def, ok := LoadStore(t).Page("article-settings")
	if !ok {
		t.Fatalf("article-settings page is not declared")
	}
	page, err := pages.NewArticleSettingsPage(record, def)
	if err != nil {
		t.Fatalf("article page: %v", err)
	}
	return page
}

// FieldsPage builds the bibliography page for entryType over record.
func FieldsPage(t testing.TB, record settings.Record, entryType string) *pages.FieldsEntryPage {
	t.Helper()

	store := LoadStore(t)
	def, ok := store.Page("bibtex-fields")
	if !ok {
		t.Fatalf("bibtex-fields page is not declared")
	}
	entry, ok := store.EntryType(entryType)
	if !ok {
		t.Fatalf("entry type %q is not declared", entryType)
	}
	page, err := pages.NewFieldsEntryPage(record, def, entry)
	if err != nil {
		t.Fatalf("fields page: %v", err)
	}
	return page
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// AssertGolden compares got with the golden file at path, rewriting the file
// instead when UPDATE_GOLDENS is set.
func AssertGolden(t testing.TB, path string, got []byte) {
	t.Helper()
	if WriteMaybeGolden(t, path, got) {
		return
	}
	want := MustReadGolden(t, path)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}
