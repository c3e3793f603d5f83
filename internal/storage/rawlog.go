package storage

import (
	"fmt"
	"os"
	"strings"
)

// RawLog appends received lines to the audit trail
type RawLog interface {
	Append(line string) error
}

type fileRawLog struct {
	path   string
	prefix string
}

// NewFileRawLog creates a RawLog that appends prefix+line to path. The file
// is opened for each record and closed straight after.
func NewFileRawLog(path, prefix string) RawLog {
	return &fileRawLog{path: path, prefix: prefix}
}

// Append writes one record; trailing CR/LF on line are dropped
func (l *fileRawLog) Append(line string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open raw log: %w", err)
	}
	_, werr := f.WriteString(l.prefix + strings.TrimRight(line, "\r\n") + "\n")
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("failed to append raw log: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("failed to close raw log: %w", cerr)
	}
	return nil
}

type discardRawLog struct{}

// DiscardRawLog drops every record. Used when replaying captured files.
func DiscardRawLog() RawLog { return discardRawLog{} }

func (discardRawLog) Append(string) error { return nil }
