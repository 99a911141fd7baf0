package value

import (
	"encoding/json"
	"testing"
)

func mustDecode(t *testing.T, src string) *Value {
	t.Helper()
	v, err := Decode([]byte(src))
	if err != nil {
		t.Fatalf("Decode(%q) error: %v", src, err)
	}
	return v
}

func TestDecodePreservesKeyOrder(t *testing.T) {
	v := mustDecode(t, `{"zebra":1,"apple":2,"mango":3}`)
	if v.Kind != ObjectType {
		t.Fatalf("Kind = %v, want ObjectType", v.Kind)
	}
	want := []string{"zebra", "apple", "mango"}
	if len(v.Keys) != len(want) {
		t.Fatalf("len(Keys) = %d, want %d", len(v.Keys), len(want))
	}
	for i, k := range want {
		if v.Keys[i] != k {
			t.Errorf("Keys[%d] = %q, want %q", i, v.Keys[i], k)
		}
	}
}

func TestDecodeNumbers(t *testing.T) {
	tests := []struct {
		src  string
		kind Kind
	}{
		{"42", IntType},
		{"-7", IntType},
		{"3.5", FloatType},
		{"1e3", FloatType},
		{"0", IntType},
	}
	for _, tt := range tests {
		v := mustDecode(t, tt.src)
		if v.Kind != tt.kind {
			t.Errorf("Decode(%q).Kind = %v, want %v", tt.src, v.Kind, tt.kind)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, src := range []string{"", "{", `{"a":}`, "[1,2,]", "1 2"} {
		if _, err := Decode([]byte(src)); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", src)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	src := `{"b":[1,2.5,null],"a":{"nested":true,"s":"hi"}}`
	v := mustDecode(t, src)
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(out) != src {
		t.Errorf("Marshal = %s, want %s", out, src)
	}
}

func TestDecodeYAMLOrderAndTypes(t *testing.T) {
	v, err := DecodeYAML([]byte("zulu: 1\nalpha: 2.5\nflag: true\nnote: null\nname: text\n"))
	if err != nil {
		t.Fatalf("DecodeYAML error: %v", err)
	}
	wantKeys := []string{"zulu", "alpha", "flag", "note", "name"}
	for i, k := range wantKeys {
		if v.Keys[i] != k {
			t.Fatalf("Keys[%d] = %q, want %q", i, v.Keys[i], k)
		}
	}
	wantKinds := []Kind{IntType, FloatType, BoolType, NullType, StringType}
	for i, k := range wantKinds {
		if v.Vals[i].Kind != k {
			t.Errorf("Vals[%d].Kind = %v, want %v", i, v.Vals[i].Kind, k)
		}
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		v    *Value
		want string
	}{
		{Null(), "null"},
		{NewBool(true), "bool"},
		{NewInt(3), "int"},
		{NewFloat(3.0), "int"}, // integer-valued float is structurally int
		{NewFloat(3.25), "float"},
		{NewString("x"), "string"},
		{NewArray(), "array"},
		{NewObject(), "object"},
	}
	for _, tt := range tests {
		if got := tt.v.TypeName(); got != tt.want {
			t.Errorf("TypeName() = %q, want %q", got, tt.want)
		}
	}
}

func TestTypeNameStable(t *testing.T) {
	v := NewFloat(2.0)
	if v.TypeName() != v.TypeName() {
		t.Error("TypeName not stable across calls")
	}
}

func TestUniqueTypes(t *testing.T) {
	values := []*Value{NewInt(1), NewString("a"), Null(), NewInt(2), NewString("b")}
	got := UniqueTypes(values)
	want := []string{"int", "null", "string"}
	if len(got) != len(want) {
		t.Fatalf("UniqueTypes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("UniqueTypes[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStableKeyObjectKeyOrderIndependent(t *testing.T) {
	a := mustDecode(t, `{"b":2,"a":1}`)
	b := mustDecode(t, `{"a":1,"b":2}`)
	if a.StableKey() != b.StableKey() {
		t.Errorf("StableKey mismatch: %q vs %q", a.StableKey(), b.StableKey())
	}
}

func TestStableKeyArrayOrderSignificant(t *testing.T) {
	a := mustDecode(t, `[1,2]`)
	b := mustDecode(t, `[2,1]`)
	if a.StableKey() == b.StableKey() {
		t.Errorf("StableKey([1,2]) == StableKey([2,1]) = %q", a.StableKey())
	}
}

func TestStableKeyNumericCollapse(t *testing.T) {
	if NewInt(2).StableKey() != NewFloat(2.0).StableKey() {
		t.Error("2 and 2.0 should share a stable key")
	}
	if NewFloat(2.5).StableKey() != "2.5" {
		t.Errorf("StableKey(2.5) = %q", NewFloat(2.5).StableKey())
	}
}

func TestStableKeyNested(t *testing.T) {
	v := mustDecode(t, `{"outer":{"z":[1,"two"],"a":null}}`)
	want := `{"outer":{"a":null,"z":[1,"two"]}}`
	if got := v.StableKey(); got != want {
		t.Errorf("StableKey = %q, want %q", got, want)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{`{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{`[1,2]`, `[2,1]`, false},
		{`1`, `1.0`, true},
		{`"true"`, `true`, false},
		{`null`, `null`, true},
		{`{"a":[{"x":1}]}`, `{"a":[{"x":1}]}`, true},
		{`{"a":1}`, `{"a":1,"b":2}`, false},
	}
	for _, tt := range tests {
		a := mustDecode(t, tt.a)
		b := mustDecode(t, tt.b)
		if got := Equal(a, b); got != tt.want {
			t.Errorf("Equal(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFrequencyMostCommon(t *testing.T) {
	values := []*Value{
		NewString("b"), NewString("a"), NewString("a"),
		NewString("c"), NewString("b"), NewString("a"),
	}
	table := Frequency(values)
	if table.Len() != 3 {
		t.Fatalf("Len = %d, want 3", table.Len())
	}
	top := table.MostCommon(2)
	if top[0].Key != "a" || top[0].Count != 3 {
		t.Errorf("top[0] = %+v, want a/3", top[0])
	}
	if top[1].Key != "b" || top[1].Count != 2 {
		t.Errorf("top[1] = %+v, want b/2", top[1])
	}
}

func TestFrequencyTieFirstSeen(t *testing.T) {
	values := []*Value{NewString("y"), NewString("x"), NewString("x"), NewString("y")}
	top := Frequency(values).MostCommon(-1)
	if top[0].Key != "y" {
		t.Errorf("tie broken to %q, want first-seen y", top[0].Key)
	}
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		raw  string
		kind Kind
	}{
		{"null", NullType},
		{"TRUE", BoolType},
		{"42", IntType},
		{"4.5", FloatType},
		{`"quoted"`, StringType},
		{`{"a":1}`, ObjectType},
		{"plain text", StringType},
		{"", StringType},
	}
	for _, tt := range tests {
		if got := ParseLiteral(tt.raw); got.Kind != tt.kind {
			t.Errorf("ParseLiteral(%q).Kind = %v, want %v", tt.raw, got.Kind, tt.kind)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	v := mustDecode(t, `{"a":[1,2],"b":{"c":3}}`)
	clone := v.Clone()
	clone.Items = nil
	inner, _ := clone.Get("a")
	inner.Items[0] = NewInt(99)
	orig, _ := v.Get("a")
	if orig.Items[0].Int != 1 {
		t.Error("Clone shares array storage with original")
	}
}

func TestSetReplacesExistingKey(t *testing.T) {
	obj := NewObject().Set("k", NewInt(1)).Set("k", NewInt(2))
	if len(obj.Keys) != 1 {
		t.Fatalf("len(Keys) = %d, want 1", len(obj.Keys))
	}
	got, _ := obj.Get("k")
	if got.Int != 2 {
		t.Errorf("Get(k) = %d, want 2", got.Int)
	}
}
