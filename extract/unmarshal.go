// Copyright © 2026 The Cob Authors under an MIT-style license.

package extract

import (
	"fmt"
	"reflect"

	"github.com/eaburns/cob/cob"
)

// Unmarshal fills the value pointed to by x from a document value.
// Numbers convert only when they fit the target type exactly, none
// sets pointers to nil, and Unmarshaler types convert themselves.
// The value must be resolved; constant references are an error.
func Unmarshal(v cob.Value, x interface{}) error {
	p := reflect.ValueOf(x)
	if p.Kind() != reflect.Ptr || p.IsNil() {
		return fmt.Errorf("unmarshal needs a non-nil pointer, got %T", x)
	}
	return unmarshalReflect(v, p.Elem())
}

var unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()

func unmarshalReflect(v cob.Value, dst reflect.Value) error {
	if dst.CanAddr() && reflect.PtrTo(dst.Type()).Implements(unmarshalerType) {
		return dst.Addr().Interface().(Unmarshaler).UnmarshalCob(v)
	}
	if dst.Type() == valueType {
		dst.Set(reflect.ValueOf(v.Clone()))
		return nil
	}
	if _, ok := v.(*cob.None); ok {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	if dst.Kind() == reflect.Ptr {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return unmarshalReflect(v, dst.Elem())
	}
	switch v := v.(type) {
	case *cob.Bool:
		if dst.Kind() != reflect.Bool {
			return fmt.Errorf("cannot unmarshal a bool into a %v", dst.Type())
		}
		dst.SetBool(v.Value)
		return nil
	case *cob.Number:
		return unmarshalNumber(v, dst)
	case *cob.String:
		if dst.Kind() != reflect.String {
			return fmt.Errorf("cannot unmarshal a string into a %v", dst.Type())
		}
		dst.SetString(v.AsString())
		return nil
	case *cob.Array:
		return unmarshalSeq(v.Entries, dst)
	case *cob.Tuple:
		if dst.Kind() == reflect.Struct {
			return unmarshalTupleStruct(v.Entries, dst)
		}
		return unmarshalSeq(v.Entries, dst)
	case *cob.Map:
		return unmarshalMap(v, dst)
	case *cob.Enum:
		return unmarshalEnum(v, dst)
	case *cob.ConstantRef:
		return fmt.Errorf("cannot unmarshal unresolved constant $%s", v.Path)
	default:
		return fmt.Errorf("cannot unmarshal a %T into a %v", v, dst.Type())
	}
}

func unmarshalNumber(n *cob.Number, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := n.Value.AsInt()
		if !ok || dst.OverflowInt(i) {
			return fmt.Errorf("%s does not fit in a %v", n.Text, dst.Type())
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, ok := n.Value.AsUint()
		if !ok || dst.OverflowUint(u) {
			return fmt.Errorf("%s does not fit in a %v", n.Text, dst.Type())
		}
		dst.SetUint(u)
	case reflect.Float32:
		f, ok := n.Value.AsFloat32()
		if !ok {
			return fmt.Errorf("%s does not fit in a float32", n.Text)
		}
		dst.SetFloat(float64(f))
	case reflect.Float64:
		f, ok := n.Value.AsFloat64()
		if !ok {
			return fmt.Errorf("%s does not fit in a float64", n.Text)
		}
		dst.SetFloat(f)
	default:
		return fmt.Errorf("cannot unmarshal a number into a %v", dst.Type())
	}
	return nil
}

func unmarshalSeq(entries []cob.Value, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Slice:
		s := reflect.MakeSlice(dst.Type(), len(entries), len(entries))
		for i, e := range entries {
			if err := unmarshalReflect(e, s.Index(i)); err != nil {
				return err
			}
		}
		dst.Set(s)
		return nil
	case reflect.Array:
		if dst.Len() != len(entries) {
			return fmt.Errorf("%d entries do not fit in a %v", len(entries), dst.Type())
		}
		for i, e := range entries {
			if err := unmarshalReflect(e, dst.Index(i)); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("cannot unmarshal a sequence into a %v", dst.Type())
	}
}

// unmarshalTupleStruct fills struct fields from tuple entries in
// declaration order.
func unmarshalTupleStruct(entries []cob.Value, dst reflect.Value) error {
	fields := exportedFields(dst.Type())
	if len(entries) != len(fields) {
		return fmt.Errorf("%d tuple entries for %d fields of %v",
			len(entries), len(fields), dst.Type())
	}
	for i, e := range entries {
		if err := unmarshalReflect(e, dst.FieldByIndex(fields[i].Index)); err != nil {
			return err
		}
	}
	return nil
}

func unmarshalMap(m *cob.Map, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Struct:
		fields := exportedFields(dst.Type())
		byName := make(map[string][]int, len(fields))
		for _, f := range fields {
			byName[f.Name] = f.Index
		}
		for _, e := range m.Entries {
			if e.KeyValue == nil {
				return fmt.Errorf("cannot unmarshal an unresolved constant map entry")
			}
			name, err := fieldKeyName(e.KeyValue.Key)
			if err != nil {
				return err
			}
			index, ok := byName[name]
			if !ok {
				return fmt.Errorf("%v has no field %s", dst.Type(), name)
			}
			if err := unmarshalReflect(e.KeyValue.Value, dst.FieldByIndex(index)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		out := reflect.MakeMapWithSize(dst.Type(), len(m.Entries))
		for _, e := range m.Entries {
			if e.KeyValue == nil {
				return fmt.Errorf("cannot unmarshal an unresolved constant map entry")
			}
			k := reflect.New(dst.Type().Key()).Elem()
			if e.KeyValue.Key.Field != "" {
				if k.Kind() != reflect.String {
					return fmt.Errorf("cannot unmarshal field key %s into a %v",
						e.KeyValue.Key.Field, dst.Type().Key())
				}
				k.SetString(e.KeyValue.Key.Field)
			} else if err := unmarshalReflect(e.KeyValue.Key.Value, k); err != nil {
				return err
			}
			v := reflect.New(dst.Type().Elem()).Elem()
			if err := unmarshalReflect(e.KeyValue.Value, v); err != nil {
				return err
			}
			out.SetMapIndex(k, v)
		}
		dst.Set(out)
		return nil
	default:
		return fmt.Errorf("cannot unmarshal a map into a %v", dst.Type())
	}
}

func fieldKeyName(k cob.MapKey) (string, error) {
	if k.Field != "" {
		return k.Field, nil
	}
	if s, ok := k.Value.(*cob.String); ok {
		return s.AsString(), nil
	}
	return "", fmt.Errorf("cannot unmarshal key %T into a struct field", k.Value)
}

// unmarshalEnum reads a unit enum into a string and any enum into a
// single-field struct whose field is named after the variant.
func unmarshalEnum(e *cob.Enum, dst reflect.Value) error {
	if e.Payload == nil && dst.Kind() == reflect.String {
		dst.SetString(e.Name)
		return nil
	}
	if dst.Kind() == reflect.Struct {
		for _, f := range exportedFields(dst.Type()) {
			if f.Name != snakeName(e.Name) {
				continue
			}
			if e.Payload == nil {
				return fmt.Errorf("enum %s has no payload for %v field %s",
					e.Name, dst.Type(), f.Name)
			}
			return unmarshalReflect(e.Payload, dst.FieldByIndex(f.Index))
		}
	}
	return fmt.Errorf("cannot unmarshal enum %s into a %v", e.Name, dst.Type())
}
