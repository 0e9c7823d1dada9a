package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// The enrichment side writes every field quoted, with embedded quotes
// doubled, so hand-edited files converge to one consistent format.

func quoteField(v string) string {
	return `"` + strings.ReplaceAll(strings.TrimSpace(v), `"`, `""`) + `"`
}

func writeRows(path string, rows [][]string) error {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		quoted := make([]string, len(row))
		for i, v := range row {
			quoted[i] = quoteField(v)
		}
		lines = append(lines, strings.Join(quoted, ","))
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

// readRawRows parses a CSV file into raw records, header included.
func readRawRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return records, nil
}

// RewriteWithQuotes re-emits a CSV file with every field quoted. Run once at
// startup so subsequent row-level edits never change the file shape.
func RewriteWithQuotes(path string) error {
	rows, err := readRawRows(path)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return writeRows(path, rows)
}

// UpsertProduction updates the row matching id or appends a new one. fields
// is keyed by CSV column name; columns not present in fields keep their
// current value, unknown columns are ignored.
func UpsertProduction(path, id string, fields map[string]string) error {
	if id == "" {
		return fmt.Errorf("production id is required")
	}
	rows, err := readRawRows(path)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("productions file %s has no header", path)
	}
	header := rows[0]

	target := -1
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) > 0 && strings.TrimSpace(rows[i][0]) == id {
			target = i
			break
		}
	}

	if target == -1 {
		row := make([]string, len(header))
		if i := columnIndex(header, "imdb_id"); i >= 0 {
			row[i] = id
		}
		for col, v := range fields {
			if i := columnIndex(header, col); i >= 0 {
				row[i] = v
			}
		}
		rows = append(rows, row)
	} else {
		row := rows[target]
		for len(row) < len(header) {
			row = append(row, "")
		}
		for col, v := range fields {
			if i := columnIndex(header, col); i >= 0 {
				row[i] = v
			}
		}
		rows[target] = row
	}
	return writeRows(path, rows)
}

// AppendActor appends an actor row unless the catalog id already exists.
func AppendActor(path, id, name, birthday string) (bool, error) {
	rows, err := readRawRows(path)
	if err != nil {
		return false, err
	}
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) > 0 && strings.TrimSpace(rows[i][0]) == id {
			return false, nil
		}
	}
	rows = append(rows, []string{id, name, birthday})
	return true, writeRows(path, rows)
}

// AppendRoles appends role rows, skipping exact duplicates already on file.
// Returns the number of rows actually written.
func AppendRoles(path string, roles [][]string) (int, error) {
	rows, err := readRawRows(path)
	if err != nil {
		return 0, err
	}
	existing := make(map[string]struct{}, len(rows))
	for i := 1; i < len(rows); i++ {
		existing[strings.Join(rows[i], "\x00")] = struct{}{}
	}

	added := 0
	for _, role := range roles {
		key := strings.Join(role, "\x00")
		if _, dup := existing[key]; dup {
			continue
		}
		existing[key] = struct{}{}
		rows = append(rows, role)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, writeRows(path, rows)
}

func columnIndex(header []string, col string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == col {
			return i
		}
	}
	return -1
}
