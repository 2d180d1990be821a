package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestStats(t *testing.T) {
	path := createTestLogFile(t, sampleEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Total Events: 4") {
		t.Errorf("expected total count, got: %s", output)
	}
	if !strings.Contains(output, "OP: 2") {
		t.Error("expected OP category count")
	}
	if !strings.Contains(output, "read: 1") {
		t.Error("expected one read call (request side only)")
	}
	if !strings.Contains(output, "Auth Exchanges: 1 (0 renewals)") {
		t.Error("expected one auth exchange")
	}
	if !strings.Contains(output, "Errors: 1") {
		t.Error("expected one error")
	}
	if !strings.Contains(output, "Sessions: 1") {
		t.Error("expected one session")
	}
	if !strings.Contains(output, "(project demo)") {
		t.Error("expected project name in session line")
	}
}

func TestStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}

	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("expected zero total, got: %s", buf.String())
	}
}
