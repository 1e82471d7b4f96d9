package data

import (
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// New converts the given Go value into a template data value, using
// DefaultStructOptions for structs.
func New(value interface{}) Value {
	return NewWith(DefaultStructOptions, value)
}

// NewWith converts the given Go value into a template data value, using the
// provided StructOptions for any structs encountered.
func NewWith(opts StructOptions, value interface{}) Value {
	if val, ok := value.(Value); ok {
		return val
	}
	if value == nil {
		return Null{}
	}
	return convertValue(opts, reflect.ValueOf(value))
}

// DefaultStructOptions mirror how component state appears in template
// expressions: lowerCamel properties, ISO-8601 times.
var DefaultStructOptions = StructOptions{
	LowerCamel: true,
	TimeFormat: time.RFC3339,
}

// StructOptions provides flexibility in conversion of structs to data.Map.
//
// Field names may be overridden with a `json:"name"` tag, and fields tagged
// `json:"-"` are skipped. Untagged fields use the Go name, converted to
// lowerCamel when LowerCamel is set.
type StructOptions struct {
	LowerCamel bool   // if true, convert field names to lowerCamel.
	TimeFormat string // format string for time.Time. (if empty, use ISO-8601)
}

// Data converts the given struct to a data.Map.
func (opts StructOptions) Data(obj interface{}) Map {
	var m = make(Map)
	opts.addFields(m, reflect.ValueOf(obj))
	return m
}

var timeType = reflect.TypeOf(time.Time{})

func convertValue(opts StructOptions, v reflect.Value) Value {
	// drill through pointers and interfaces to the underlying type
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return Null{}
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return Null{}
	}
	// Values reached through an unexported embedded field cannot round-trip
	// through Interface; the kind-specific accessors below still work.
	if v.CanInterface() {
		if val, ok := v.Interface().(Value); ok {
			return val
		}
		if v.Type() == timeType {
			return String(v.Interface().(time.Time).Format(opts.TimeFormat))
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		return Bool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(v.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(v.Float())
	case reflect.String:
		return String(v.String())
	case reflect.Slice:
		if v.IsNil() {
			return Null{}
		}
		fallthrough
	case reflect.Array:
		var list = make(List, v.Len())
		for i := range list {
			list[i] = convertValue(opts, v.Index(i))
		}
		return list
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			panic(fmt.Errorf("map keys must be strings, got %s", v.Type().Key()))
		}
		var m = make(Map, v.Len())
		var iter = v.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = convertValue(opts, iter.Value())
		}
		return m
	case reflect.Struct:
		var m = make(Map)
		opts.addFields(m, v)
		return m
	}
	panic(fmt.Errorf("unexpected data type: %s (%v)", v.Type(), v))
}

// addFields converts the exported fields of a struct into entries of m.
// Anonymous embedded structs are flattened into the parent, as in
// encoding/json.
func (opts StructOptions) addFields(m Map, v reflect.Value) {
	var t = v.Type()
	for i := 0; i < t.NumField(); i++ {
		var field = t.Field(i)
		// Embedded structs flatten into the parent even when the embedded
		// type is unexported; its exported fields are still promoted.
		if field.Anonymous {
			switch field.Type.Kind() {
			case reflect.Struct:
				opts.addFields(m, v.Field(i))
				continue
			case reflect.Ptr:
				if field.Type.Elem().Kind() == reflect.Struct {
					if !v.Field(i).IsNil() {
						opts.addFields(m, v.Field(i).Elem())
					}
					continue
				}
			}
		}
		if field.PkgPath != "" {
			continue
		}
		var key = field.Name
		switch tag := strings.Split(field.Tag.Get("json"), ",")[0]; {
		case tag == "-":
			continue
		case tag != "":
			key = tag
		case opts.LowerCamel:
			var first, size = utf8.DecodeRuneInString(key)
			key = string(unicode.ToLower(first)) + key[size:]
		}
		m[key] = convertValue(opts, v.Field(i))
	}
}
