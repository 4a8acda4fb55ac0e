package extract

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// pipeReader reads a pipe-delimited CMS file with a single header row.
// Columns are resolved by name through colIdx; a missing column yields the
// zero value rather than an error.
type pipeReader struct {
	file   *os.File
	csv    *csv.Reader
	rowNum int64
	colIdx map[string]int // lowercase column name → index
}

func openPipeReader(path string) (*pipeReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	bufReader := bufio.NewReaderSize(file, 256*1024)

	// Skip UTF-8 BOM if present
	bom, err := bufReader.Peek(3)
	if err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		bufReader.Discard(3)
	}

	reader := csv.NewReader(bufReader)
	reader.Comma = '|'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	r := &pipeReader{
		file:   file,
		csv:    reader,
		colIdx: make(map[string]int),
	}

	if err := r.readHeader(); err != nil {
		file.Close()
		return nil, err
	}

	return r, nil
}

func (r *pipeReader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}
	r.rowNum++

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i, h := range header {
		r.colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return nil
}

// Next returns the next non-empty data row, or io.EOF.
func (r *pipeReader) Next() ([]string, error) {
	for {
		row, err := r.csv.Read()
		if err != nil {
			return nil, err
		}
		r.rowNum++

		if len(row) == 0 || (len(row) == 1 && row[0] == "") {
			continue
		}
		return row, nil
	}
}

func (r *pipeReader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// valAt returns the trimmed value of a named column, or "" when the column
// is absent or the row is short.
func valAt(row []string, idx map[string]int, col string) string {
	if i, ok := idx[col]; ok && i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// parseMoney parses a monetary column. Empty values default to 0; anything
// that still fails strconv after stripping formatting is reported via ok=false
// so the caller can reject the whole row.
func parseMoney(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
