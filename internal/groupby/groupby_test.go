package groupby

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

func asJSON(t *testing.T, v *value.Value) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return string(b)
}

func TestParseAgg(t *testing.T) {
	tests := []struct {
		spec    string
		want    Agg
		wantErr bool
	}{
		{spec: "count", want: Agg{Func: "count"}},
		{spec: " Count ", want: Agg{Func: "count"}},
		{spec: "age:mean", want: Agg{Field: "age", Func: "mean"}},
		{spec: "a.b:sum", want: Agg{Field: "a.b", Func: "sum"}},
		{spec: "tags:unique", want: Agg{Field: "tags", Func: "unique"}},
		{spec: "age", wantErr: true},
		{spec: "age:median", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseAgg(tt.spec)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAgg(%q): expected error", tt.spec)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAgg(%q): %v", tt.spec, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAgg(%q) = %+v, want %+v", tt.spec, got, tt.want)
		}
	}
}

func TestGroupCountsSortedByCountDesc(t *testing.T) {
	recs := records(t, `[{"city":"NYC"},{"city":"LA"},{"city":"NYC"},{"city":"NYC"},{"city":"LA"},{"city":"SF"}]`)
	out, err := Group(recs, Options{By: []string{"city"}, SortBy: "count", Top: -1})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	want := `{"total_records":6,"total_groups":3,"groups":[` +
		`{"city":"NYC","count":3},{"city":"LA","count":2},{"city":"SF","count":1}]}`
	if got := asJSON(t, out); got != want {
		t.Errorf("Group = %s, want %s", got, want)
	}
}

func TestGroupSortByKey(t *testing.T) {
	recs := records(t, `[{"k":"b"},{"k":"a"},{"k":"b"}]`)
	out, err := Group(recs, Options{By: []string{"k"}, SortBy: "key", Top: -1})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	want := `{"total_records":3,"total_groups":2,"groups":[` +
		`{"k":"a","count":1},{"k":"b","count":2}]}`
	if got := asJSON(t, out); got != want {
		t.Errorf("Group = %s, want %s", got, want)
	}
}

func TestGroupTopLimit(t *testing.T) {
	recs := records(t, `[{"k":1},{"k":1},{"k":2},{"k":3}]`)
	out, err := Group(recs, Options{By: []string{"k"}, SortBy: "count", Top: 1})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	groups, _ := out.Get("groups")
	if len(groups.Items) != 1 {
		t.Fatalf("groups = %s", asJSON(t, groups))
	}
	total, _ := out.Get("total_groups")
	if total.Int != 3 {
		t.Errorf("total_groups = %d, want 3 even when limited", total.Int)
	}
}

func TestGroupMissingFieldGroupsUnderNull(t *testing.T) {
	recs := records(t, `[{"k":"a"},{"other":1},{"other":2}]`)
	out, err := Group(recs, Options{By: []string{"k"}, SortBy: "count", Top: -1})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	want := `{"total_records":3,"total_groups":2,"groups":[` +
		`{"k":null,"count":2},{"k":"a","count":1}]}`
	if got := asJSON(t, out); got != want {
		t.Errorf("Group = %s, want %s", got, want)
	}
}

func TestGroupKeyDistinguishesTypes(t *testing.T) {
	// The string "1" and the number 1 land in different groups.
	recs := records(t, `[{"k":1},{"k":"1"}]`)
	out, err := Group(recs, Options{By: []string{"k"}, SortBy: "count", Top: -1})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	total, _ := out.Get("total_groups")
	if total.Int != 2 {
		t.Errorf("total_groups = %d, want 2", total.Int)
	}
}

func TestGroupAggregations(t *testing.T) {
	recs := records(t, `[` +
		`{"team":"a","score":10},` +
		`{"team":"a","score":20},` +
		`{"team":"a","score":null},` +
		`{"team":"b","score":1.5}]`)
	out, err := Group(recs, Options{
		By: []string{"team"},
		Aggs: []Agg{
			{Field: "score", Func: "sum"},
			{Field: "score", Func: "mean"},
			{Field: "score", Func: "min"},
			{Field: "score", Func: "max"},
			{Field: "score", Func: "count"},
		},
		SortBy: "key",
		Top:    -1,
	})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	want := `{"total_records":4,"total_groups":2,"groups":[` +
		`{"team":"a","count":3,"score:sum":30,"score:mean":15,"score:min":10,"score:max":20,"score:count":2},` +
		`{"team":"b","count":1,"score:sum":1.5,"score:mean":1.5,"score:min":1.5,"score:max":1.5,"score:count":1}]}`
	if got := asJSON(t, out); got != want {
		t.Errorf("Group = %s, want %s", got, want)
	}
}

func TestGroupListAndUnique(t *testing.T) {
	recs := records(t, `[{"k":"a","tag":"x"},{"k":"a","tag":"y"},{"k":"a","tag":"x"}]`)
	out, err := Group(recs, Options{
		By:     []string{"k"},
		Aggs:   []Agg{{Field: "tag", Func: "list"}, {Field: "tag", Func: "unique"}},
		SortBy: "count",
		Top:    -1,
	})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	want := `{"total_records":3,"total_groups":1,"groups":[` +
		`{"k":"a","count":3,"tag:list":["x","y","x"],"tag:unique":["x","y"]}]}`
	if got := asJSON(t, out); got != want {
		t.Errorf("Group = %s, want %s", got, want)
	}
}

func TestGroupNonNumericAggIsNull(t *testing.T) {
	recs := records(t, `[{"k":"a","v":"text"}]`)
	out, err := Group(recs, Options{
		By:     []string{"k"},
		Aggs:   []Agg{{Field: "v", Func: "sum"}},
		SortBy: "count",
		Top:    -1,
	})
	if err != nil {
		t.Fatalf("Group: %v", err)
	}
	want := `{"total_records":1,"total_groups":1,"groups":[` +
		`{"k":"a","count":1,"v:sum":null}]}`
	if got := asJSON(t, out); got != want {
		t.Errorf("Group = %s, want %s", got, want)
	}
}
