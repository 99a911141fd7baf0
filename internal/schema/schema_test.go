package schema

import (
	"encoding/json"
	"testing"

	"github.com/zaremba/dq/internal/value"
)

func infer(t *testing.T, src string, depth int, counts bool) string {
	t.Helper()
	v, err := value.Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode(%q): %v", src, err)
	}
	b, err := json.Marshal(Infer(v, depth, counts))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return string(b)
}

func TestInferScalar(t *testing.T) {
	if got := infer(t, `"hello"`, 6, false); got != `{"type":"string"}` {
		t.Errorf("schema = %s", got)
	}
	if got := infer(t, `3.0`, 6, false); got != `{"type":"int"}` {
		t.Errorf("schema = %s", got)
	}
}

func TestInferObjectPreservesKeyOrder(t *testing.T) {
	got := infer(t, `{"z":1,"a":"x"}`, 6, false)
	want := `{"type":"object","fields":{"z":{"type":"int"},"a":{"type":"string"}}}`
	if got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}

func TestInferObjectFieldCount(t *testing.T) {
	got := infer(t, `{"a":1,"b":2}`, 6, true)
	want := `{"type":"object","fields":{"a":{"type":"int"},"b":{"type":"int"}},"field_count":2}`
	if got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}

func TestInferArrayItemTypesSorted(t *testing.T) {
	got := infer(t, `["x",1,null,2]`, 0, false)
	want := `{"type":"array","size":4,"item_types":["int","null","string"]}`
	if got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}

func TestInferArrayOfRecordsMergesFields(t *testing.T) {
	got := infer(t, `[{"b":1,"a":"x"},{"a":"y","c":true}]`, 6, false)
	want := `{"type":"array","size":2,"item_types":["object"],` +
		`"item_schema":{"type":"object","fields":{` +
		`"a":{"type":"string"},"b":{"type":"int"},"c":{"type":"bool"}}}}`
	if got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}

func TestInferPresenceCounts(t *testing.T) {
	got := infer(t, `[{"a":1},{"a":2,"b":"x"},{"a":3}]`, 6, true)
	want := `{"type":"array","size":3,"item_types":["object"],` +
		`"item_schema":{"type":"object","fields":{` +
		`"a":{"type":"int","presence":"3/3"},` +
		`"b":{"type":"string","presence":"1/3"}}}}`
	if got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}

func TestInferMixedArrayDescribesFirstElement(t *testing.T) {
	got := infer(t, `[[1,2],[3]]`, 6, false)
	want := `{"type":"array","size":2,"item_types":["array"],` +
		`"item_schema":{"type":"array","size":2,"item_types":["int"],"item_schema":{"type":"int"}}}`
	if got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}

func TestInferDepthCutoff(t *testing.T) {
	got := infer(t, `{"a":{"b":{"c":1}}}`, 1, false)
	want := `{"type":"object","fields":{"a":{"type":"object","fields":{"b":{"type":"object"}}}}}`
	if got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}

func TestInferEmptyArrayHasNoItemSchema(t *testing.T) {
	got := infer(t, `[]`, 6, false)
	want := `{"type":"array","size":0,"item_types":[]}`
	if got != want {
		t.Errorf("schema = %s, want %s", got, want)
	}
}
