package sortrec

import (
	"encoding/json"
	"testing"

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

func sorted(t *testing.T, src string, opts Options) string {
	t.Helper()
	out, err := Sort(records(t, src), opts)
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	arr := value.NewArray()
	arr.Items = out
	b, err := json.Marshal(arr)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return string(b)
}

func TestSortLexicographic(t *testing.T) {
	got := sorted(t, `[{"n":"carol"},{"n":"alice"},{"n":"bob"}]`, Options{By: []string{"n"}})
	if got != `[{"n":"alice"},{"n":"bob"},{"n":"carol"}]` {
		t.Errorf("sorted = %s", got)
	}
}

func TestSortDescending(t *testing.T) {
	got := sorted(t, `[{"n":"a"},{"n":"c"},{"n":"b"}]`, Options{By: []string{"n"}, Desc: true})
	if got != `[{"n":"c"},{"n":"b"},{"n":"a"}]` {
		t.Errorf("sorted = %s", got)
	}
}

func TestSortNumeric(t *testing.T) {
	// Lexicographic would put 10 before 9; numeric must not.
	got := sorted(t, `[{"v":10},{"v":9},{"v":1.5}]`, Options{By: []string{"v"}, Numeric: true})
	if got != `[{"v":1.5},{"v":9},{"v":10}]` {
		t.Errorf("sorted = %s", got)
	}
}

func TestSortNumericCoercesStrings(t *testing.T) {
	got := sorted(t, `[{"v":"20"},{"v":3},{"v":"oops"}]`, Options{By: []string{"v"}, Numeric: true})
	if got != `[{"v":"oops"},{"v":3},{"v":"20"}]` {
		t.Errorf("sorted = %s", got)
	}
}

func TestSortMissingFieldSortsFirst(t *testing.T) {
	got := sorted(t, `[{"v":2},{"x":1},{"v":1}]`, Options{By: []string{"v"}, Numeric: true})
	if got != `[{"x":1},{"v":1},{"v":2}]` {
		t.Errorf("sorted = %s", got)
	}
}

func TestSortMultipleFields(t *testing.T) {
	src := `[{"a":"x","b":"2"},{"a":"x","b":"1"},{"a":"w","b":"9"}]`
	got := sorted(t, src, Options{By: []string{"a", "b"}})
	if got != `[{"a":"w","b":"9"},{"a":"x","b":"1"},{"a":"x","b":"2"}]` {
		t.Errorf("sorted = %s", got)
	}
}

func TestSortStableOnTies(t *testing.T) {
	src := `[{"k":"a","i":1},{"k":"a","i":2},{"k":"a","i":3}]`
	got := sorted(t, src, Options{By: []string{"k"}})
	if got != `[{"k":"a","i":1},{"k":"a","i":2},{"k":"a","i":3}]` {
		t.Errorf("ties must keep input order, got %s", got)
	}
}

func TestSortBadPath(t *testing.T) {
	if _, err := Sort(records(t, `[{"a":1}]`), Options{By: []string{"a[1"}}); err == nil {
		t.Error("expected error for unterminated bracket")
	}
}

func TestSortDoesNotModifyInput(t *testing.T) {
	recs := records(t, `[{"n":"b"},{"n":"a"}]`)
	if _, err := Sort(recs, Options{By: []string{"n"}}); err != nil {
		t.Fatalf("Sort: %v", err)
	}
	if first, _ := recs[0].Get("n"); first.Str != "b" {
		t.Error("input slice reordered")
	}
}
