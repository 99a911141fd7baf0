package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Decode parses a JSON document into a Value tree. Object key order is
// preserved as written; numbers become IntType when they parse as integers.
func Decode(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after top-level value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("unexpected end of input")
		}
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t.String())
	case string:
		return NewString(t), nil
	case json.Number:
		return numberValue(t.String()), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder) (*Value, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // consume '}'
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (*Value, error) {
	arr := NewArray()
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, item)
	}
	if _, err := dec.Token(); err != nil { // consume ']'
		return nil, err
	}
	return arr, nil
}

func numberValue(s string) *Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(i)
	}
	f, _ := strconv.ParseFloat(s, 64)
	return NewFloat(f)
}

// DecodeYAML parses a YAML document into a Value tree, preserving mapping
// key order via the yaml.Node representation.
func DecodeYAML(data []byte) (*Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return Null(), nil // empty input
	}
	return FromYAML(&root)
}

// FromYAML converts a decoded yaml.Node into a Value tree.
func FromYAML(node *yaml.Node) (*Value, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Null(), nil
		}
		return FromYAML(node.Content[0])
	case yaml.AliasNode:
		return FromYAML(node.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			val, err := FromYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(node.Content[i].Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := NewArray()
		for _, item := range node.Content {
			v, err := FromYAML(item)
			if err != nil {
				return nil, err
			}
			arr.Items = append(arr.Items, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return yamlScalar(node), nil
	}
	return nil, fmt.Errorf("unsupported yaml node kind %d at line %d", node.Kind, node.Line)
}

func yamlScalar(node *yaml.Node) *Value {
	switch node.Tag {
	case "!!null":
		return Null()
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err == nil {
			return NewBool(b)
		}
	case "!!int":
		i, err := strconv.ParseInt(node.Value, 10, 64)
		if err == nil {
			return NewInt(i)
		}
	case "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err == nil {
			return NewFloat(f)
		}
	}
	return NewString(node.Value)
}
