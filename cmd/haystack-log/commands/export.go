package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/haystack-rest/haystack-go/pkg/log"
)

// RunExport exports the capture file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

// exportRecord is the JSON shape of one event. The CBOR integer keys
// are replaced with names so the output is self-describing.
type exportRecord struct {
	Timestamp string                `json:"timestamp"`
	SessionID string                `json:"sessionId"`
	CallID    string                `json:"callId,omitempty"`
	Category  string                `json:"category"`
	Project   string                `json:"project,omitempty"`
	Op        *log.OpEvent          `json:"op,omitempty"`
	Auth      *log.AuthEvent        `json:"auth,omitempty"`
	State     *log.StateChangeEvent `json:"state,omitempty"`
	Error     *log.ErrorEventData   `json:"error,omitempty"`
}

func toRecord(event log.Event) exportRecord {
	return exportRecord{
		Timestamp: event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		SessionID: event.SessionID,
		CallID:    event.CallID,
		Category:  event.Category.String(),
		Project:   event.Project,
		Op:        event.Op,
		Auth:      event.Auth,
		State:     event.StateChange,
		Error:     event.Error,
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toRecord(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "call_id", "category", "project", "op", "status", "body_bytes", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		opName := ""
		status := ""
		bodyBytes := ""
		detail := ""
		switch {
		case event.Op != nil:
			opName = event.Op.Op
			if event.Op.Response {
				status = strconv.Itoa(event.Op.Status)
			}
			bodyBytes = strconv.Itoa(event.Op.BodyBytes)
		case event.Auth != nil:
			detail = event.Auth.Phase.String()
		case event.StateChange != nil:
			detail = event.StateChange.NewState
		case event.Error != nil:
			detail = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.SessionID,
			event.CallID,
			event.Category.String(),
			event.Project,
			opName,
			status,
			bodyBytes,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
