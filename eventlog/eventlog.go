package eventlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Order lifecycle states. Pure labels driven by event arrival order; rows
// carry them as-is.
type OrderState string

const (
	STATE_PENDING_CREATE  OrderState = "PENDING_CREATE"
	STATE_CREATED         OrderState = "CREATED"
	STATE_PENDING_CANCEL  OrderState = "PENDING_CANCEL"
	STATE_CANCELED        OrderState = "CANCELED"
	STATE_PENDING_EXECUTE OrderState = "PENDING_EXECUTE"
	STATE_EXECUTED        OrderState = "EXECUTED"
)

var header = []string{"Timestamp", "Order_ID", "Status"}

// PersistenceError means a row could not be appended. Never retried here;
// the caller decides whether it aborts the enclosing workflow.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("event log %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Log is an append-only lifecycle event log. One logical writer at a time.
type Log struct {
	path string
}

// Filename derives the log path from the connector name and run id.
func Filename(dir, connector, runID string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s_latency_test.csv", connector, runID))
}

func NewLog(path string) *Log {
	return &Log{path: path}
}

func (l *Log) Path() string { return l.path }

// Record appends one row, creating the file with its header on first use.
// Existing rows are never rewritten; duplicate order ids are fine since one
// order passes through several states.
func (l *Log) Record(timestampMs int64, orderID string, state OrderState) error {
	_, statErr := os.Stat(l.path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &PersistenceError{Path: l.path, Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			return &PersistenceError{Path: l.path, Err: err}
		}
	}
	row := []string{strconv.FormatInt(timestampMs, 10), orderID, string(state)}
	if err := w.Write(row); err != nil {
		return &PersistenceError{Path: l.path, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &PersistenceError{Path: l.path, Err: err}
	}
	return nil
}
