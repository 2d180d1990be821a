package commands

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/haystack-rest/haystack-go/pkg/log"
)

func countEvents(t *testing.T, path string) int {
	t.Helper()

	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	n := 0
	for {
		_, err := reader.Next()
		if err == io.EOF {
			return n
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		n++
	}
}

func TestFilterByCategory(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.hlog")

	err := RunFilter(path, FilterOptions{Output: out, Category: "op"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	if n := countEvents(t, out); n != 2 {
		t.Errorf("expected 2 op events, got %d", n)
	}
}

func TestFilterByCallID(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.hlog")

	err := RunFilter(path, FilterOptions{Output: out, CallID: "call-1111-2222"})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	if n := countEvents(t, out); n != 2 {
		t.Errorf("expected 2 events for call, got %d", n)
	}
}

func TestFilterByTimeRange(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())
	out := filepath.Join(t.TempDir(), "filtered.hlog")

	err := RunFilter(path, FilterOptions{
		Output:    out,
		TimeStart: "2026-08-20T10:00:01Z",
		TimeEnd:   "2026-08-20T10:00:03Z",
	})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	if n := countEvents(t, out); n != 2 {
		t.Errorf("expected 2 events in range, got %d", n)
	}
}

func TestFilterInvalidTime(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	err := RunFilter(path, FilterOptions{Output: filepath.Join(t.TempDir(), "x.hlog"), TimeStart: "noon"})
	if err == nil {
		t.Error("expected error for invalid time")
	}
}
