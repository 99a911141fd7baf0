package value

// ToNative converts v into plain Go values (nil, bool, int64, float64,
// string, []any, map[string]any) for interop with libraries that do not
// understand the Value tree. Object key order is lost.
func ToNative(v *Value) any {
	switch v.Kind {
	case NullType:
		return nil
	case BoolType:
		return v.Bool
	case IntType:
		return v.Int
	case FloatType:
		return v.Float
	case StringType:
		return v.Str
	case ArrayType:
		out := make([]any, len(v.Items))
		for i, item := range v.Items {
			out[i] = ToNative(item)
		}
		return out
	case ObjectType:
		out := make(map[string]any, len(v.Keys))
		for i, k := range v.Keys {
			out[k] = ToNative(v.Vals[i])
		}
		return out
	}
	return nil
}
