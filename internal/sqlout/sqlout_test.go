package sqlout

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/zaremba/dq/internal/value"
)

func records(t *testing.T, src string) []*value.Value {
	t.Helper()
	v, err := value.Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode(%q): %v", src, err)
	}
	return v.Items
}

func TestExport(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "out.db")
	recs := records(t, `[` +
		`{"name":"bob","meta":{"age":30},"tags":["x","y"]},` +
		`{"name":"alice"}]`)

	n, err := Export(dbPath, "people", recs)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 2 {
		t.Errorf("inserted = %d, want 2", n)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var name, age sql.NullString
	var tag0 sql.NullString
	row := db.QueryRow(`SELECT "name", "meta.age", "tags[0]" FROM people WHERE "name" = 'bob'`)
	if err := row.Scan(&name, &age, &tag0); err != nil {
		t.Fatalf("scan bob: %v", err)
	}
	if name.String != "bob" || age.String != "30" || tag0.String != "x" {
		t.Errorf("bob row = %v %v %v", name, age, tag0)
	}

	row = db.QueryRow(`SELECT "meta.age" FROM people WHERE "name" = 'alice'`)
	if err := row.Scan(&age); err != nil {
		t.Fatalf("scan alice: %v", err)
	}
	if age.Valid {
		t.Errorf("missing field should be NULL, got %q", age.String)
	}
}

func TestExportScalarRecords(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "out.db")
	n, err := Export(dbPath, "vals", records(t, `[1,"two",null]`))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 3 {
		t.Errorf("inserted = %d, want 3", n)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vals WHERE "value" IS NULL`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("null rows = %d, want 1", count)
	}
}

func TestExportAppendsToExistingTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "out.db")
	if _, err := Export(dbPath, "t", records(t, `[{"a":1}]`)); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if _, err := Export(dbPath, "t", records(t, `[{"a":2}]`)); err != nil {
		t.Fatalf("second export: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM t").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("rows = %d, want 2", count)
	}
}

func TestExportRejectsBadTableName(t *testing.T) {
	if _, err := Export("ignored.db", "bad name; drop", records(t, `[{"a":1}]`)); err == nil {
		t.Error("expected error for invalid table name")
	}
}

func TestExportEmptyRecordsFails(t *testing.T) {
	if _, err := Export("ignored.db", "t", nil); err == nil {
		t.Error("expected error when there are no columns")
	}
}
