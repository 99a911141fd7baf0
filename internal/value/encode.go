package value

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MarshalJSON serializes the tree with object keys in stored document order.
// The output is compact; callers wanting indentation use json.Encoder with
// SetIndent, which reformats marshaler output.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encodeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) encodeJSON(buf *bytes.Buffer) error {
	switch v.Kind {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case IntType:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case FloatType:
		b, err := json.Marshal(v.Float)
		if err != nil {
			return err
		}
		buf.Write(b)
	case StringType:
		b, err := json.Marshal(v.Str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case ArrayType:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, key := range v.Keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := v.Vals[i].encodeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}
