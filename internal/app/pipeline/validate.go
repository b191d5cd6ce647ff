// internal/app/pipeline/validate.go
package pipeline

import (
	"strings"

	"github.com/dalemusser/reporthub/internal/app/catalog"
	"github.com/dalemusser/reporthub/internal/domain/models"
)

// Validate checks a batch against the catalog shape for tableName.
//
// This is a presence check, not a full-shape check: a row may omit expected
// columns or carry extras, but every row must have at least one non-blank
// value under one of the table's expected column labels. A row satisfying
// zero expected columns fails with its index in the ValidationError.
func Validate(tableName string, rows []models.Row) error {
	columns, err := catalog.Lookup(tableName)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return &ValidationError{Row: -1, Reason: "no rows submitted"}
	}

	for i, row := range rows {
		if !rowHasData(row, columns) {
			return &ValidationError{Row: i, Reason: "no value under any expected column"}
		}
	}
	return nil
}

func rowHasData(row models.Row, columns []string) bool {
	for _, col := range columns {
		if v, ok := row[col]; ok && strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
