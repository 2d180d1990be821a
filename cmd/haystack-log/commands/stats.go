package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/haystack-rest/haystack-go/pkg/log"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	OpCalls          map[string]int
	Sessions         map[string]*SessionStats
	AuthExchanges    int
	Renewals         int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Project   string
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		OpCalls:          make(map[string]int),
		Sessions:         make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		sess, ok := stats.Sessions[event.SessionID]
		if !ok {
			sess = &SessionStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Sessions[event.SessionID] = sess
		}
		sess.Events++
		if event.Timestamp.After(sess.LastSeen) {
			sess.LastSeen = event.Timestamp
		}
		if event.Project != "" && sess.Project == "" {
			sess.Project = event.Project
		}

		// Count each op call once, on the request side.
		if event.Op != nil && !event.Op.Response {
			stats.OpCalls[event.Op.Op]++
		}

		// Count each auth exchange once, on the verify phase.
		if event.Auth != nil && event.Auth.Phase == log.PhaseVerify {
			stats.AuthExchanges++
			if event.Auth.Renewal {
				stats.Renewals++
			}
		}

		if event.Error != nil {
			stats.Errors++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Haystack Capture Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Millisecond))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, c := range []log.Category{log.CategoryOp, log.CategoryAuth, log.CategoryState, log.CategoryError} {
		if n := stats.EventsByCategory[c]; n > 0 {
			fmt.Fprintf(w, "  %s: %d\n", c.String(), n)
		}
	}
	fmt.Fprintln(w)

	if len(stats.OpCalls) > 0 {
		fmt.Fprintln(w, "Op Calls:")
		names := make([]string, 0, len(stats.OpCalls))
		for name := range stats.OpCalls {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %d\n", name, stats.OpCalls[name])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Auth Exchanges: %d (%d renewals)\n", stats.AuthExchanges, stats.Renewals)
	fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	ids := make([]string, 0, len(stats.Sessions))
	for id := range stats.Sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		sess := stats.Sessions[id]
		fmt.Fprintf(w, "  %s: %d events", shortenID(id), sess.Events)
		if sess.Project != "" {
			fmt.Fprintf(w, " (project %s)", sess.Project)
		}
		fmt.Fprintln(w)
	}
}
