package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/passbridge/passbridge-go/pkg/log"
)

// jsonEvent is the JSONL form of an event, with enums as names.
type jsonEvent struct {
	Timestamp     time.Time `json:"timestamp"`
	SessionID     string    `json:"sessionId,omitempty"`
	Direction     string    `json:"direction"`
	Layer         string    `json:"layer"`
	Category      string    `json:"category"`
	CallbackID    string    `json:"callbackId,omitempty"`
	AccountSuffix string    `json:"accountSuffix,omitempty"`

	Method     string `json:"method,omitempty"`
	Outcome    string `json:"outcome,omitempty"`
	Code       string `json:"code,omitempty"`
	DurationNs *int64 `json:"durationNs,omitempty"`

	OldState string `json:"oldState,omitempty"`
	NewState string `json:"newState,omitempty"`

	Step string `json:"step,omitempty"`

	Message string `json:"message,omitempty"`
	Context string `json:"context,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

func toJSONEvent(e log.Event) jsonEvent {
	out := jsonEvent{
		Timestamp:     e.Timestamp.UTC(),
		SessionID:     e.SessionID,
		Direction:     e.Direction.String(),
		Layer:         e.Layer.String(),
		Category:      e.Category.String(),
		CallbackID:    e.CallbackID,
		AccountSuffix: e.AccountSuffix,
	}
	switch {
	case e.Call != nil:
		out.Method = e.Call.Method
		out.Outcome = e.Call.Outcome.String()
		out.Code = e.Call.Code
		if e.Call.Duration != nil {
			ns := e.Call.Duration.Nanoseconds()
			out.DurationNs = &ns
		}
	case e.StateChange != nil:
		out.OldState = e.StateChange.OldState
		out.NewState = e.StateChange.NewState
		out.Reason = e.StateChange.Reason
	case e.Exchange != nil:
		out.Step = e.Exchange.Step.String()
		out.Reason = e.Exchange.Reason
	case e.Error != nil:
		out.Message = e.Error.Message
		out.Code = e.Error.Code
		out.Context = e.Error.Context
	}
	return out
}

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
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

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toJSONEvent(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "direction", "layer", "category", "callback_id", "type", "detail", "code"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		je := toJSONEvent(event)
		detail := ""
		switch {
		case event.Call != nil:
			detail = je.Method + " " + je.Outcome
		case event.StateChange != nil:
			detail = je.OldState + "->" + je.NewState
		case event.Exchange != nil:
			detail = je.Step
		case event.Error != nil:
			detail = je.Message
		}

		row := []string{
			je.Timestamp.Format("2006-01-02T15:04:05.000000Z"),
			je.SessionID,
			je.Direction,
			je.Layer,
			je.Category,
			je.CallbackID,
			typeLabel(event),
			detail,
			je.Code,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
}
