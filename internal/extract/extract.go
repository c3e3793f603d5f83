// Package extract pulls (setting, packets received) pairs out of receiver
// logs captured during frequency sweeps and writes them as CSV tables.
package extract

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/scmplot/internal/storage"
	"github.com/RMahshie/scmplot/pkg/models"
)

// DefaultGlob matches the receiver logs of the reference sweep.
const DefaultGlob = "*bytes 22.23.22 receiver.txt"

var receivedPattern = regexp.MustCompile(`^Received: b'(\d*\.\d*\.\d*) received (\d*) packages`)

var csvHeader = []string{"setting", "PDR"}

// maxLineLength bounds a single receiver log line. Longer lines fail the
// file with bufio.ErrTooLong.
const maxLineLength = 64 * 1024

// ParseLine extracts a row from one receiver log line.
func ParseLine(line string) (models.PDRRow, bool) {
	m := receivedPattern.FindStringSubmatch(line)
	if m == nil {
		return models.PDRRow{}, false
	}
	return models.PDRRow{Setting: m[1], PDR: m[2]}, true
}

// Rows extracts every matching row from r in order. The result is never nil.
func Rows(r io.Reader) ([]models.PDRRow, error) {
	rows := []models.PDRRow{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLength)
	for sc.Scan() {
		if row, ok := ParseLine(sc.Text()); ok {
			rows = append(rows, row)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// File extracts the rows of a single log file.
func File(path string) (models.PDRTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.PDRTable{}, fmt.Errorf("failed to open receiver log: %w", err)
	}
	defer f.Close()

	rows, err := Rows(f)
	if err != nil {
		return models.PDRTable{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return models.PDRTable{Source: path, Rows: rows}, nil
}

// Glob extracts a table per file matching pattern, in lexical order.
func Glob(pattern string) ([]models.PDRTable, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
	}
	tables := make([]models.PDRTable, 0, len(paths))
	for _, p := range paths {
		t, err := File(p)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// WriteCSV writes rows under a "setting,PDR" header.
func WriteCSV(w io.Writer, rows []models.PDRRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Setting, r.PDR}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVPath is the output path for a receiver log: same name, .csv extension.
func CSVPath(logPath string) string {
	return strings.TrimSuffix(logPath, filepath.Ext(logPath)) + ".csv"
}

// Run extracts every file matching pattern and writes one CSV per file
// through store. It returns the tables written.
func Run(pattern string, store storage.ArtifactStore) ([]models.PDRTable, error) {
	tables, err := Glob(pattern)
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		out := CSVPath(t.Source)
		if err := store.Write(out, func(w io.Writer) error { return WriteCSV(w, t.Rows) }); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", out, err)
		}
		log.Info().Str("source", t.Source).Str("output", out).Int("rows", len(t.Rows)).Msg("PDR table extracted")
	}
	if len(tables) == 0 {
		log.Warn().Str("glob", pattern).Msg("No receiver logs matched")
	}
	return tables, nil
}
