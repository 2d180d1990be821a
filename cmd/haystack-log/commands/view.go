// Package commands implements the haystack-log CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/haystack-rest/haystack-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Category  *log.Category
	SessionID string
	CallID    string
}

// ParseCategoryFlag parses a --category flag value.
func ParseCategoryFlag(s string) (log.Category, error) {
	switch s {
	case "op":
		return log.CategoryOp, nil
	case "auth":
		return log.CategoryAuth, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("unknown category: %s (supported: op, auth, state, error)", s)
	}
}

// RunView prints the capture file in human-readable form.
func RunView(path string, filter ViewFilter, w io.Writer) error {
	reader, err := log.NewFilteredReader(path, log.Filter{
		SessionID: filter.SessionID,
		CallID:    filter.CallID,
		Category:  filter.Category,
	})
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event)
	}
	return nil
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [sess:id] CATEGORY Label
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sess := shortenID(event.SessionID)

	var label string
	switch {
	case event.Op != nil:
		label = event.Op.Op
		if event.Op.Response {
			label += " response"
		}
	case event.Auth != nil:
		label = event.Auth.Phase.String()
	case event.StateChange != nil:
		label = event.StateChange.NewState
	case event.Error != nil:
		label = "Error"
	default:
		label = "Unknown"
	}

	fmt.Fprintf(w, "%s [sess:%s] %s %s\n", ts, sess, event.Category.String(), label)

	switch {
	case event.Op != nil:
		formatOpDetails(w, event)
	case event.Auth != nil:
		formatAuthDetails(w, event.Auth)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenID returns the first 8 characters of a UUID.
func shortenID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatOpDetails(w io.Writer, event log.Event) {
	op := event.Op
	if event.CallID != "" {
		fmt.Fprintf(w, "  Call: %s\n", shortenID(event.CallID))
	}
	if op.Response {
		fmt.Fprintf(w, "  Status: %d\n", op.Status)
	}
	if op.BodyBytes > 0 {
		fmt.Fprintf(w, "  Body: %d bytes\n", op.BodyBytes)
	}
	if op.Duration != nil {
		fmt.Fprintf(w, "  Duration: %s\n", op.Duration)
	}
}

func formatAuthDetails(w io.Writer, auth *log.AuthEvent) {
	outcome := "failed"
	if auth.OK {
		outcome = "ok"
	}
	fmt.Fprintf(w, "  Outcome: %s\n", outcome)
	if auth.Renewal {
		fmt.Fprintln(w, "  Renewal: true")
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  Transition: %s -> %s\n", sc.OldState, sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
	if e.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", e.Context)
	}
	if e.Status != nil {
		fmt.Fprintf(w, "  Status: %d\n", *e.Status)
	}
}
