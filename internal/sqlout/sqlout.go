// Package sqlout exports record sets into a SQLite table for ad-hoc SQL
// querying. Records are flattened so nested fields become columns.
package sqlout

import (
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/zaremba/dq/internal/flatten"
	"github.com/zaremba/dq/internal/load"
	"github.com/zaremba/dq/internal/value"
)

var tableNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Export flattens records and writes them into table at dbPath, creating
// the table when missing. Every column is TEXT; composite leftovers are
// stored as compact JSON and missing fields as NULL. Returns the number of
// rows inserted.
func Export(dbPath, table string, records []*value.Value) (int, error) {
	if !tableNameRE.MatchString(table) {
		return 0, fmt.Errorf("invalid table name %q", table)
	}

	rows := make([]*value.Value, len(records))
	for i, record := range records {
		rows[i] = flattenRecord(record)
	}
	columns := columnUnion(rows)
	if len(columns) == 0 {
		return 0, fmt.Errorf("no columns to export")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createTable(db, table, columns); err != nil {
		return 0, err
	}
	return insertRows(db, table, columns, rows)
}

// flattenRecord turns one record into a flat column/value object. Records
// that are not objects land in a single "value" column.
func flattenRecord(record *value.Value) *value.Value {
	if record.Kind != value.ObjectType {
		wrapped := value.NewObject()
		wrapped.Set("value", record)
		record = wrapped
	}
	return flatten.Flatten(record, ".", flatten.ArrayIndex)
}

func columnUnion(rows []*value.Value) []string {
	seen := map[string]bool{}
	var columns []string
	for _, row := range rows {
		for _, key := range row.Keys {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	sort.Strings(columns)
	return columns
}

func createTable(db *sql.DB, table string, columns []string) error {
	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = quoteIdent(col) + " TEXT"
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		quoteIdent(table), strings.Join(defs, ", "))
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("creating table %s: %w", table, err)
	}
	return nil
}

func insertRows(db *sql.DB, table string, columns []string, rows []*value.Value) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	quoted := make([]string, len(columns))
	holes := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
		holes[i] = "?"
	}
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(holes, ", ")))
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for n, row := range rows {
		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = cell(row, col)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return 0, fmt.Errorf("inserting row %d: %w", n, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return len(rows), nil
}

// cell renders one column value; missing fields and nulls become SQL NULL.
func cell(row *value.Value, col string) sql.NullString {
	v, ok := row.Get(col)
	if !ok || v.Kind == value.NullType {
		return sql.NullString{}
	}
	return sql.NullString{String: load.CellString(v), Valid: true}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
