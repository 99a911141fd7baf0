package probe

import (
	"reflect"
	"testing"

	"github.com/zaremba/dq/internal/value"
)

func doc(t *testing.T, src string) *value.Value {
	t.Helper()
	v, err := value.Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode(%q): %v", src, err)
	}
	return v
}

func TestDetectLayoutArray(t *testing.T) {
	r := DetectLayout(doc(t, `[{"a":1},{"a":2}]`))
	if r.Layout != LayoutArray || r.RecordCount != 2 || r.ArrayPath != "" {
		t.Errorf("report = %+v", r)
	}
	if len(r.Records) != 2 {
		t.Errorf("records = %d", len(r.Records))
	}
}

func TestDetectLayoutObjectOfObjects(t *testing.T) {
	r := DetectLayout(doc(t, `{"u1":{"n":1},"u2":{"n":2},"u3":{"n":3}}`))
	if r.Layout != LayoutObjectOfObjects || r.RecordCount != 3 || r.ArrayPath != "." {
		t.Errorf("report = %+v", r)
	}
	if !reflect.DeepEqual(r.SampleKeys, []string{"u1", "u2", "u3"}) {
		t.Errorf("sample keys = %v", r.SampleKeys)
	}
}

func TestDetectLayoutObjectOfObjectsThreshold(t *testing.T) {
	// Four of five values are objects: 80% meets the cutoff.
	r := DetectLayout(doc(t, `{"a":{},"b":{},"c":{},"d":{},"meta":1}`))
	if r.Layout != LayoutObjectOfObjects {
		t.Errorf("layout = %s, want object-of-objects", r.Layout)
	}
	// Three of five does not.
	r = DetectLayout(doc(t, `{"a":{},"b":{},"c":{},"x":1,"y":2}`))
	if r.Layout == LayoutObjectOfObjects {
		t.Errorf("layout = %s, 60%% objects should not qualify", r.Layout)
	}
}

func TestDetectLayoutNestedArray(t *testing.T) {
	r := DetectLayout(doc(t, `{"meta":"x","small":[1],"items":[1,2,3]}`))
	if r.Layout != LayoutNestedArray || r.ArrayPath != "items" || r.RecordCount != 3 {
		t.Errorf("report = %+v", r)
	}
	if !reflect.DeepEqual(r.TopLevelField, []string{"items", "meta", "small"}) {
		t.Errorf("top-level fields = %v", r.TopLevelField)
	}
}

func TestDetectLayoutPlainObject(t *testing.T) {
	r := DetectLayout(doc(t, `{"host":"db","port":5432,"tags":[]}`))
	if r.Layout != LayoutObject || r.RecordCount != 1 {
		t.Errorf("report = %+v", r)
	}
	if len(r.Records) != 1 || r.Records[0].Kind != value.ObjectType {
		t.Errorf("records = %+v", r.Records)
	}
}

func TestDetectLayoutScalar(t *testing.T) {
	r := DetectLayout(doc(t, `42`))
	if r.Layout != LayoutScalar || r.RecordCount != 0 || len(r.Records) != 0 {
		t.Errorf("report = %+v", r)
	}
}

func TestRecordFieldsFrequencyOrder(t *testing.T) {
	records := doc(t, `[{"b":1,"a":1},{"a":2},{"a":3,"c":1},"skip me"]`).Items
	got := RecordFields(records, 20)
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("fields = %v", got)
	}
}

func TestRecordFieldsSampleLimit(t *testing.T) {
	records := doc(t, `[{"a":1},{"a":2},{"late":1}]`).Items
	got := RecordFields(records, 2)
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("fields = %v, want field from first two records only", got)
	}
}

func TestFieldTypes(t *testing.T) {
	records := doc(t, `[{"v":1},{"v":"x"},{"v":null},{"other":true}]`).Items
	got := FieldTypes(records, []string{"v"}, 20)
	if !reflect.DeepEqual(got["v"], []string{"int", "null", "string"}) {
		t.Errorf("types = %v", got["v"])
	}
}
