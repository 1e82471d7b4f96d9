// Package data provides the value model that templates are rendered against.
// Values follow Javascript semantics for truthiness, equality, and display,
// since the same template may be compiled to a render function and executed by
// a JS runtime.
package data

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// Value represents a template data value, which may be one of the enumerated
// types.  The zero value represents an Undefined value.
type Value interface {
	// Truthy returns true according to Javascript's definition of truthy and
	// falsy values.
	Truthy() bool

	// String formats this value for display in rendered output, following the
	// Vue runtime's toDisplayString: null and undefined display as the empty
	// string, lists and maps display as JSON.
	String() string

	// Equals returns true if the two values are loosely equal in the
	// Javascript sense: same type and value, Int and Float compare
	// numerically, and Null equals Undefined.  Lists and maps are equal only
	// if they are the same instance.
	Equals(other Value) bool

	// Interface returns the value as a plain Go value.
	Interface() interface{}
}

// Value types
type (
	Undefined struct{}
	Null      struct{}
	Bool      bool
	Int       int64
	Float     float64
	String    string
	List      []Value
	Map       map[string]Value
)

// Index retrieves a value from this list, or Undefined if out of bounds.
func (v List) Index(i int) Value {
	if !(0 <= i && i < len(v)) {
		return Undefined{}
	}
	return v[i]
}

// Key retrieves a value under the named key, or Undefined if it doesn't exist.
func (v Map) Key(k string) Value {
	var result, ok = v[k]
	if !ok {
		return Undefined{}
	}
	return result
}

// Truthy ----------

func (v Undefined) Truthy() bool { return false }
func (v Null) Truthy() bool      { return false }
func (v Bool) Truthy() bool      { return bool(v) }
func (v Int) Truthy() bool       { return v != 0 }
func (v Float) Truthy() bool     { return v != 0.0 && !math.IsNaN(float64(v)) }
func (v String) Truthy() bool    { return v != "" }
func (v List) Truthy() bool      { return true }
func (v Map) Truthy() bool       { return true }

// String ----------

func (v Undefined) String() string { return "" }
func (v Null) String() string      { return "" }
func (v Bool) String() string      { return strconv.FormatBool(bool(v)) }
func (v Int) String() string       { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string     { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v String) String() string    { return string(v) }

func (v List) String() string {
	var b, err = json.Marshal(v.Interface())
	if err != nil {
		panic(err)
	}
	return string(b)
}

func (v Map) String() string {
	var b, err = json.Marshal(v.Interface())
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Equals ----------

func (v Undefined) Equals(other Value) bool {
	switch other.(type) {
	case Undefined, Null:
		return true
	}
	return false
}

func (v Null) Equals(other Value) bool {
	switch other.(type) {
	case Undefined, Null:
		return true
	}
	return false
}

func (v Bool) Equals(other Value) bool {
	if o, ok := other.(Bool); ok {
		return bool(v) == bool(o)
	}
	return false
}

func (v String) Equals(other Value) bool {
	if o, ok := other.(String); ok {
		return string(v) == string(o)
	}
	return false
}

func (v List) Equals(other Value) bool {
	if o, ok := other.(List); ok {
		return reflect.ValueOf(v).Pointer() == reflect.ValueOf(o).Pointer()
	}
	return false
}

func (v Map) Equals(other Value) bool {
	if o, ok := other.(Map); ok {
		return reflect.ValueOf(v).Pointer() == reflect.ValueOf(o).Pointer()
	}
	return false
}

func (v Int) Equals(other Value) bool {
	switch o := other.(type) {
	case Int:
		return v == o
	case Float:
		return float64(v) == float64(o)
	}
	return false
}

func (v Float) Equals(other Value) bool {
	switch o := other.(type) {
	case Int:
		return float64(v) == float64(o)
	case Float:
		return v == o
	}
	return false
}

// Interface ----------

func (v Undefined) Interface() interface{} { return nil }
func (v Null) Interface() interface{}      { return nil }
func (v Bool) Interface() interface{}      { return bool(v) }
func (v Int) Interface() interface{}       { return int64(v) }
func (v Float) Interface() interface{}     { return float64(v) }
func (v String) Interface() interface{}    { return string(v) }

func (v List) Interface() interface{} {
	var items = make([]interface{}, len(v))
	for i, item := range v {
		items[i] = item.Interface()
	}
	return items
}

func (v Map) Interface() interface{} {
	var m = make(map[string]interface{}, len(v))
	for k, val := range v {
		m[k] = val.Interface()
	}
	return m
}
