// Copyright © 2026 The Cob Authors under an MIT-style license.

package extract

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/eaburns/cob/cob"
)

// Marshal converts a Go value to a document value.
// Nil pointers convert to none, structs to maps keyed by lower
// snake case field names, and Marshaler types convert themselves.
func Marshal(x interface{}) (cob.Value, error) {
	if v, ok := x.(cob.Value); ok {
		return v.Clone(), nil
	}
	return marshalReflect(reflect.ValueOf(x))
}

var (
	marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()
	valueType     = reflect.TypeOf((*cob.Value)(nil)).Elem()
)

func marshalReflect(v reflect.Value) (cob.Value, error) {
	if !v.IsValid() {
		return cob.NewNone(), nil
	}
	if v.Type().Implements(marshalerType) {
		if v.Kind() == reflect.Ptr && v.IsNil() {
			return cob.NewNone(), nil
		}
		return v.Interface().(Marshaler).MarshalCob()
	}
	if v.CanAddr() && reflect.PtrTo(v.Type()).Implements(marshalerType) {
		return v.Addr().Interface().(Marshaler).MarshalCob()
	}
	if v.Type().Implements(valueType) {
		return v.Interface().(cob.Value).Clone(), nil
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return cob.NewNone(), nil
		}
		return marshalReflect(v.Elem())
	case reflect.Bool:
		return cob.NewBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cob.NewInt(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cob.NewUint(v.Uint()), nil
	case reflect.Float32:
		return cob.NewFloat32(float32(v.Float())), nil
	case reflect.Float64:
		return cob.NewFloat64(v.Float()), nil
	case reflect.String:
		return cob.NewString(v.String()), nil
	case reflect.Slice:
		if v.IsNil() {
			return cob.NewArray(), nil
		}
		fallthrough
	case reflect.Array:
		entries := make([]cob.Value, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			e, err := marshalReflect(v.Index(i))
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
		return cob.NewArray(entries...), nil
	case reflect.Map:
		return marshalMap(v)
	case reflect.Struct:
		return marshalStruct(v)
	default:
		return nil, fmt.Errorf("cannot marshal a %v", v.Kind())
	}
}

func marshalMap(v reflect.Value) (cob.Value, error) {
	keys := v.MapKeys()
	// Map iteration order is random; sort string keys so the
	// written form is stable.
	if v.Type().Key().Kind() == reflect.String {
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	}
	m := cob.NewMap()
	for _, k := range keys {
		kv, err := marshalReflect(k)
		if err != nil {
			return nil, err
		}
		ev, err := marshalReflect(v.MapIndex(k))
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, cob.KeyValueEntry(cob.ValueKey(kv), ev))
	}
	return m, nil
}

func marshalStruct(v reflect.Value) (cob.Value, error) {
	m := cob.NewMap()
	for _, f := range exportedFields(v.Type()) {
		fv, err := marshalReflect(v.FieldByIndex(f.Index))
		if err != nil {
			return nil, err
		}
		m.Entries = append(m.Entries, cob.KeyValueEntry(cob.FieldKey(f.Name), fv))
	}
	return m, nil
}
