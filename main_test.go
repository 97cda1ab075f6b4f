package main

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/briangreenhill/recogate/internal/normalize"
)

func TestClassifyCommand(t *testing.T) {
	var out bytes.Buffer
	if err := runCLI([]string{"classify", "show", "me", "some", "sci-fi", "movies"}, &out); err != nil {
		t.Fatalf("classify failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"normalized:   show me some sci fi movies",
		"cleaned:      sci fi",
		"first-match:  movies",
		"genre:        sci-fi",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestClassifyRequiresQuery(t *testing.T) {
	if err := runCLI([]string{"classify"}, &bytes.Buffer{}); err == nil {
		t.Error("classify without a query should fail")
	}
}

func TestTrendingCommandJSON(t *testing.T) {
	var out bytes.Buffer
	if err := runCLI([]string{"trending", "--json"}, &out); err != nil {
		t.Fatalf("trending failed: %v", err)
	}

	var items []normalize.Item
	if err := json.Unmarshal(out.Bytes(), &items); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(items) != 10 {
		t.Fatalf("got %d items, want 10", len(items))
	}
	for i := 1; i < len(items); i++ {
		if items[i].Rating > items[i-1].Rating {
			t.Errorf("items not sorted by rating at %d: %v > %v", i, items[i].Rating, items[i-1].Rating)
		}
	}
}

func TestSearchCommandFallsBackWithoutKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")

	var out bytes.Buffer
	if err := runCLI([]string{"search", "recommend", "books", "about", "dune"}, &out); err != nil {
		t.Fatalf("search failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "books from static-fallback") || !strings.Contains(got, "Dune") {
		t.Errorf("unexpected output:\n%s", got)
	}
}

func TestVersionAndUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	if err := runCLI([]string{"version"}, &out); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out.String(), version) {
		t.Errorf("version output = %q", out.String())
	}

	if err := runCLI([]string{"bogus"}, &bytes.Buffer{}); err == nil {
		t.Error("unknown command should fail")
	}
}
