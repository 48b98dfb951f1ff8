// Copyright © 2026 The Cob Authors under an MIT-style license.

package cob

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToJSON converts a fully resolved value to a JSON-style tree of
// nil, bool, float64, string, []interface{}, and
// map[string]interface{}. Formatting and fill are not represented.
// Unresolved constant references convert with an error.
func ToJSON(v Value) (interface{}, error) {
	switch v := v.(type) {
	case *None:
		return nil, nil
	case *Bool:
		return v.Value, nil
	case *Number:
		return numberJSON(v.Value)
	case *String:
		return v.AsString(), nil
	case *Color:
		return colorHex(v), nil
	case *Val:
		return valString(v), nil
	case *Array:
		return valuesJSON(v.Entries)
	case *Tuple:
		return valuesJSON(v.Entries)
	case *Map:
		return mapJSON(v)
	case *Enum:
		return enumJSON(v)
	case *ConstantRef:
		return nil, fmt.Errorf("constant reference $%s cannot convert to JSON", v.Path)
	default:
		return nil, fmt.Errorf("cannot convert %T to JSON", v)
	}
}

func numberJSON(n NumberValue) (interface{}, error) {
	if f, ok := n.AsFloat64(); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%v has no JSON representation", f)
		}
		return f, nil
	}
	if u, ok := n.AsUint(); ok {
		return float64(u), nil
	}
	i, _ := n.AsInt()
	return float64(i), nil
}

func colorHex(c *Color) string {
	var b strings.Builder
	b.WriteByte('#')
	if c.A != 1 {
		fmt.Fprintf(&b, "%02X", channelByte(c.A))
	}
	fmt.Fprintf(&b, "%02X%02X%02X", channelByte(c.R), channelByte(c.G), channelByte(c.B))
	return b.String()
}

func valString(v *Val) string {
	if v.Unit == Auto {
		return "auto"
	}
	text := v.Text
	if text == "" {
		text = float32Literal(v.Num)
	}
	for _, u := range valUnits {
		if u.unit == v.Unit {
			return text + u.suffix
		}
	}
	return text
}

func valuesJSON(entries []Value) ([]interface{}, error) {
	out := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		j, err := ToJSON(e)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, nil
}

func mapJSON(m *Map) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(m.Entries))
	for _, e := range m.Entries {
		if e.KeyValue == nil {
			return nil, fmt.Errorf("constant reference cannot convert to JSON")
		}
		key, err := mapKeyString(e.KeyValue.Key)
		if err != nil {
			return nil, err
		}
		v, err := ToJSON(e.KeyValue.Value)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func mapKeyString(k MapKey) (string, error) {
	if k.Field != "" {
		return k.Field, nil
	}
	switch v := k.Value.(type) {
	case *String:
		return v.AsString(), nil
	case *Number:
		j, err := numberJSON(v.Value)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(j.(float64), 'g', -1, 64), nil
	case *Bool:
		return strconv.FormatBool(v.Value), nil
	default:
		return "", fmt.Errorf("map key %T cannot convert to a JSON object key", k.Value)
	}
}

func enumJSON(e *Enum) (interface{}, error) {
	if e.Payload == nil {
		return e.Name, nil
	}
	p, err := ToJSON(e.Payload)
	if err != nil {
		return nil, err
	}
	if t, ok := e.Payload.(*Tuple); ok && len(t.Entries) == 1 {
		if arr, ok := p.([]interface{}); ok {
			p = arr[0]
		}
	}
	return map[string]interface{}{e.Name: p}, nil
}

// FromJSON converts a JSON-style tree, such as one produced by
// encoding/json, into a value. Object keys become field keys when
// they are snake case identifiers and string keys otherwise. The
// conversion is lossy in the other direction: enums, colors, and
// dimension values come back as plain strings and maps.
func FromJSON(j interface{}) (Value, error) {
	switch j := j.(type) {
	case nil:
		return NewNone(), nil
	case bool:
		return NewBool(j), nil
	case float64:
		if j == math.Trunc(j) && math.Abs(j) < 1e16 {
			if j < 0 {
				return NewInt(int64(j)), nil
			}
			return NewUint(uint64(j)), nil
		}
		return NewFloat64(j), nil
	case json.Number:
		if u, err := strconv.ParseUint(string(j), 10, 64); err == nil {
			return NewUint(u), nil
		}
		if i, err := strconv.ParseInt(string(j), 10, 64); err == nil {
			return NewInt(i), nil
		}
		f, err := j.Float64()
		if err != nil {
			return nil, err
		}
		return NewFloat64(f), nil
	case string:
		return NewString(j), nil
	case []interface{}:
		entries := make([]Value, 0, len(j))
		for _, e := range j {
			v, err := FromJSON(e)
			if err != nil {
				return nil, err
			}
			entries = append(entries, v)
		}
		return NewArray(entries...), nil
	case map[string]interface{}:
		m := NewMap()
		for k, e := range j {
			v, err := FromJSON(e)
			if err != nil {
				return nil, err
			}
			var key MapKey
			if snakeIdent(k) == k && k != "" {
				key = FieldKey(k)
			} else {
				key = ValueKey(NewString(k))
			}
			m.Entries = append(m.Entries, KeyValueEntry(key, v))
		}
		return m, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to a value", j)
	}
}
