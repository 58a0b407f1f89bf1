package deck

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Record is one flashcard row from the input TSV.
type Record struct {
	Character string
	Pinyin    string
	English   string
}

// Columns names the TSV headers to read. An empty Character means the
// first column of the file.
type Columns struct {
	Character string
	Pinyin    string
	English   string
}

// Load reads a tab-separated file with a header row into records.
// Missing pinyin/english columns yield empty fields, not errors; the
// engine decides what to do with incomplete records.
func Load(path string, cols Columns) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	header := rows[0]
	charIdx := 0
	if cols.Character != "" {
		charIdx = indexOf(header, cols.Character)
		if charIdx < 0 {
			return nil, fmt.Errorf("column %q not found in %s", cols.Character, path)
		}
	}
	pinyinIdx := indexOf(header, cols.Pinyin)
	englishIdx := indexOf(header, cols.English)

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, Record{
			Character: field(row, charIdx),
			Pinyin:    field(row, pinyinIdx),
			English:   field(row, englishIdx),
		})
	}
	return records, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
