// Package value defines the tagged value tree shared by every dq command:
// a JSON-like variant type whose objects preserve document key order.
package value

// Kind identifies the variant held by a Value.
type Kind int

const (
	NullType Kind = iota
	BoolType
	IntType
	FloatType
	StringType
	ArrayType
	ObjectType
)

func (k Kind) String() string {
	switch k {
	case NullType:
		return "null"
	case BoolType:
		return "bool"
	case IntType:
		return "int"
	case FloatType:
		return "float"
	case StringType:
		return "string"
	case ArrayType:
		return "array"
	case ObjectType:
		return "object"
	}
	return "<unknown kind>"
}

// Value is one node of a document tree. Exactly one variant is meaningful,
// selected by Kind. Objects keep Keys and Vals as parallel slices so that
// document key order survives decoding, navigation, and serialization.
type Value struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Str   string
	Items []*Value // ArrayType elements
	Keys  []string // ObjectType keys, document order
	Vals  []*Value // ObjectType values, parallel to Keys
}

// Shared immutable scalars.
var (
	nullValue  = &Value{Kind: NullType}
	trueValue  = &Value{Kind: BoolType, Bool: true}
	falseValue = &Value{Kind: BoolType, Bool: false}
)

// Null returns the null value.
func Null() *Value { return nullValue }

// NewBool returns a boolean value.
func NewBool(b bool) *Value {
	if b {
		return trueValue
	}
	return falseValue
}

// NewInt returns an integer value.
func NewInt(i int64) *Value { return &Value{Kind: IntType, Int: i} }

// NewFloat returns a floating-point value.
func NewFloat(f float64) *Value { return &Value{Kind: FloatType, Float: f} }

// NewString returns a string value.
func NewString(s string) *Value { return &Value{Kind: StringType, Str: s} }

// NewArray returns an array value holding items.
func NewArray(items ...*Value) *Value {
	return &Value{Kind: ArrayType, Items: items}
}

// NewObject returns an empty object value.
func NewObject() *Value { return &Value{Kind: ObjectType} }

// Set appends key with v, or replaces the value of an existing key in place.
// Returns the receiver for chained construction.
func (v *Value) Set(key string, val *Value) *Value {
	for i, k := range v.Keys {
		if k == key {
			v.Vals[i] = val
			return v
		}
	}
	v.Keys = append(v.Keys, key)
	v.Vals = append(v.Vals, val)
	return v
}

// Get returns the value stored under key in an object.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind != ObjectType {
		return nil, false
	}
	for i, k := range v.Keys {
		if k == key {
			return v.Vals[i], true
		}
	}
	return nil, false
}

// Len returns the element count for arrays and the entry count for objects;
// zero for every other kind.
func (v *Value) Len() int {
	switch v.Kind {
	case ArrayType:
		return len(v.Items)
	case ObjectType:
		return len(v.Keys)
	}
	return 0
}

// IsScalar reports whether v is not a container.
func (v *Value) IsScalar() bool {
	return v.Kind != ArrayType && v.Kind != ObjectType
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	switch v.Kind {
	case ArrayType:
		items := make([]*Value, len(v.Items))
		for i, item := range v.Items {
			items[i] = item.Clone()
		}
		return &Value{Kind: ArrayType, Items: items}
	case ObjectType:
		keys := make([]string, len(v.Keys))
		copy(keys, v.Keys)
		vals := make([]*Value, len(v.Vals))
		for i, val := range v.Vals {
			vals[i] = val.Clone()
		}
		return &Value{Kind: ObjectType, Keys: keys, Vals: vals}
	default:
		clone := *v
		return &clone
	}
}

// Equal reports structural equality with object key order ignored. Numbers
// compare by numeric value, so 2 and 2.0 are equal, matching the structural
// int tagging of TypeName.
func Equal(a, b *Value) bool {
	switch {
	case a.Kind == ArrayType && b.Kind == ArrayType:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !Equal(a.Items[i], b.Items[i]) {
				return false
			}
		}
		return true
	case a.Kind == ObjectType && b.Kind == ObjectType:
		if len(a.Keys) != len(b.Keys) {
			return false
		}
		for i, k := range a.Keys {
			bv, ok := b.Get(k)
			if !ok || !Equal(a.Vals[i], bv) {
				return false
			}
		}
		return true
	case a.IsScalar() && b.IsScalar():
		return scalarEqual(a, b)
	}
	return false
}

func scalarEqual(a, b *Value) bool {
	if na, aNum := a.numeric(); aNum {
		nb, bNum := b.numeric()
		return bNum && na == nb
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.Str == b.Str
	}
	return false
}

// numeric returns the float64 rendering of an Int or Float value.
func (v *Value) numeric() (float64, bool) {
	switch v.Kind {
	case IntType:
		return float64(v.Int), true
	case FloatType:
		return v.Float, true
	}
	return 0, false
}
