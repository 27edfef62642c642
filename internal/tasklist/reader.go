package tasklist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fhuszti/imgbatch/internal/model"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	colIndex    = "index"
	colTaskType = "task_type"
	colPrompt   = "prompt"
	colOriImage = "ori_image"
)

// Load reads the task list at path.
func Load(path string) ([]model.TaskRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open task list: %w", err)
	}
	defer func(f *os.File) { _ = f.Close() }(f)

	return Read(f)
}

// Read parses CSV task records in file order. A leading UTF-8 BOM is dropped,
// unknown columns are ignored and short rows leave the missing fields empty.
// Row numbers are 1-based and count data rows only.
func Read(r io.Reader) ([]model.TaskRecord, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("task list is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read task list header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, required := range []string{colIndex, colTaskType} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("task list has no %q column", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var recs []model.TaskRecord
	for n := 1; ; n++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read task list row %d: %w", n, err)
		}
		recs = append(recs, model.TaskRecord{
			Row:      n,
			Index:    field(row, colIndex),
			Type:     model.ParseTaskType(field(row, colTaskType)),
			Prompt:   field(row, colPrompt),
			OriImage: field(row, colOriImage),
		})
	}
	return recs, nil
}
