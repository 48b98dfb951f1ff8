// Copyright © 2026 The Cob Authors under an MIT-style license.

// Package extract converts between Go values and cob document
// values with reflection. Struct fields map to lower snake case map
// keys, pointers map to none when nil, and types can take over
// their own conversion by implementing Marshaler or Unmarshaler.
package extract

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/eaburns/cob/cob"
)

// A Marshaler converts itself to a document value.
type Marshaler interface {
	MarshalCob() (cob.Value, error)
}

// An Unmarshaler initializes itself from a document value.
type Unmarshaler interface {
	UnmarshalCob(v cob.Value) error
}

// A Registry maps loadable names to Go types. Names must be the
// loadable's canonical identifier, generics included.
type Registry struct {
	byName map[string]regEntry
	byType map[reflect.Type]regEntry
}

type regEntry struct {
	name  string
	typ   reflect.Type
	tuple bool
}

// Register maps a loadable name to proto's type. Struct fields fill
// from a map payload by name. Registering the same name again
// replaces the earlier type.
func (r *Registry) Register(name string, proto interface{}) {
	r.add(name, proto, false)
}

// RegisterTuple is Register for loadables written with a tuple
// payload. Struct fields fill from the tuple in declaration order,
// so a single-field struct reads Name(x) forms.
func (r *Registry) RegisterTuple(name string, proto interface{}) {
	r.add(name, proto, true)
}

func (r *Registry) add(name string, proto interface{}, tuple bool) {
	t := reflect.TypeOf(proto)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if r.byName == nil {
		r.byName = make(map[string]regEntry)
		r.byType = make(map[reflect.Type]regEntry)
	}
	e := regEntry{name: name, typ: t, tuple: tuple}
	r.byName[name] = e
	r.byType[t] = e
}

// Extract returns a new Go value for the loadable, a pointer to the
// registered type. The loadable must be resolved.
func (r *Registry) Extract(l *cob.Loadable) (interface{}, error) {
	e, ok := r.byName[l.Id.Canonical()]
	if !ok {
		return nil, fmt.Errorf("no type registered for loadable %s", l.Id.Canonical())
	}
	p := reflect.New(e.typ)
	if err := r.apply(l, p.Elem(), e); err != nil {
		return nil, err
	}
	return p.Interface(), nil
}

// Apply fills x, a pointer to a value of the loadable's registered
// type, from the loadable's payload.
func (r *Registry) Apply(l *cob.Loadable, x interface{}) error {
	e, ok := r.byName[l.Id.Canonical()]
	if !ok {
		return fmt.Errorf("no type registered for loadable %s", l.Id.Canonical())
	}
	p := reflect.ValueOf(x)
	if p.Kind() != reflect.Ptr || p.IsNil() {
		return fmt.Errorf("apply needs a non-nil pointer, got %T", x)
	}
	if p.Type().Elem() != e.typ {
		return fmt.Errorf("loadable %s is registered to %v, not %v",
			e.name, e.typ, p.Type().Elem())
	}
	return r.apply(l, p.Elem(), e)
}

func (r *Registry) apply(l *cob.Loadable, dst reflect.Value, e regEntry) error {
	if l.Payload == nil {
		dst.Set(reflect.Zero(e.typ))
		return nil
	}
	if e.tuple {
		t, ok := l.Payload.(*cob.Tuple)
		if !ok {
			return fmt.Errorf("loadable %s wants a tuple payload, got %T", e.name, l.Payload)
		}
		return unmarshalTupleStruct(t.Entries, dst)
	}
	return unmarshalReflect(l.Payload, dst)
}

// Make builds a loadable for x using its registered name. The
// payload is a map of x's fields, a tuple for RegisterTuple types,
// or nothing when x has no exported fields.
func (r *Registry) Make(x interface{}) (*cob.Loadable, error) {
	t := reflect.TypeOf(x)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	e, ok := r.byType[t]
	if !ok {
		return nil, fmt.Errorf("no loadable registered for type %v", t)
	}
	v := reflect.ValueOf(x)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, fmt.Errorf("cannot make a loadable from a nil %T", x)
		}
		v = v.Elem()
	}
	payload, err := loadablePayload(v, e)
	if err != nil {
		return nil, err
	}
	return cob.NewLoadable(e.name, payload), nil
}

func loadablePayload(v reflect.Value, e regEntry) (cob.Value, error) {
	if v.Kind() != reflect.Struct {
		return marshalReflect(v)
	}
	fields := exportedFields(v.Type())
	if len(fields) == 0 {
		return nil, nil
	}
	if e.tuple {
		entries := make([]cob.Value, 0, len(fields))
		for _, f := range fields {
			fv, err := marshalReflect(v.FieldByIndex(f.Index))
			if err != nil {
				return nil, err
			}
			entries = append(entries, fv)
		}
		return cob.NewTuple(entries...), nil
	}
	return marshalStruct(v)
}

type fieldInfo struct {
	Name  string
	Index []int
}

func exportedFields(t reflect.Type) []fieldInfo {
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := snakeName(f.Name)
		if tag, ok := f.Tag.Lookup("cob"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		fields = append(fields, fieldInfo{Name: name, Index: f.Index})
	}
	return fields
}

// snakeName converts a Go field name like MaxWidth to max_width.
func snakeName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteByte(byte(r - 'A' + 'a'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
