package ssr

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/vuet/vuet/data"
)

// Func represents a function that template expressions may invoke during
// server rendering.
type Func struct {
	Apply           func([]data.Value) data.Value
	ValidArgLengths []int // nil accepts any number of args
}

// DefaultFuncs holds the builtin functions, a subset of the Javascript
// globals that render functions can reach in the browser.  Callers may add
// their own functions through Renderer.AddFuncs.
var DefaultFuncs = map[string]Func{
	"Math.abs":       {funcAbs, []int{1}},
	"Math.ceil":      {funcCeil, []int{1}},
	"Math.floor":     {funcFloor, []int{1}},
	"Math.round":     {funcRound, []int{1}},
	"Math.trunc":     {funcTrunc, []int{1}},
	"Math.max":       {funcMax, nil},
	"Math.min":       {funcMin, nil},
	"Math.pow":       {funcPow, []int{2}},
	"Math.sqrt":      {funcSqrt, []int{1}},
	"JSON.stringify": {funcStringify, []int{1}},
	"Object.keys":    {funcKeys, []int{1}},
	"parseInt":       {funcParseInt, []int{1, 2}},
	"parseFloat":     {funcParseFloat, []int{1}},
	"isNaN":          {funcIsNaN, []int{1}},
	"String":         {funcString, []int{1}},
	"Number":         {funcNumber, []int{1}},
	"Boolean":        {funcBoolean, []int{1}},
}

func funcAbs(v []data.Value) data.Value {
	if n, ok := v[0].(data.Int); ok {
		if n < 0 {
			return -n
		}
		return n
	}
	return data.Float(math.Abs(toFloat(v[0])))
}

func funcCeil(v []data.Value) data.Value {
	if isInt(v[0]) {
		return v[0]
	}
	return data.Int(math.Ceil(toFloat(v[0])))
}

func funcFloor(v []data.Value) data.Value {
	if isInt(v[0]) {
		return v[0]
	}
	return data.Int(math.Floor(toFloat(v[0])))
}

func funcRound(v []data.Value) data.Value {
	if isInt(v[0]) {
		return v[0]
	}
	return data.Int(math.Floor(toFloat(v[0]) + 0.5))
}

func funcTrunc(v []data.Value) data.Value {
	if isInt(v[0]) {
		return v[0]
	}
	return data.Int(math.Trunc(toFloat(v[0])))
}

func funcMax(v []data.Value) data.Value {
	return fold(v, math.Inf(-1), math.Max)
}

func funcMin(v []data.Value) data.Value {
	return fold(v, math.Inf(1), math.Min)
}

// fold reduces the args numerically, keeping Int when every arg is an Int.
func fold(v []data.Value, zero float64, f func(a, b float64) float64) data.Value {
	var result = zero
	var allInts = true
	for _, arg := range v {
		if !isInt(arg) {
			allInts = false
		}
		result = f(result, toFloat(arg))
	}
	if allInts && len(v) > 0 {
		return data.Int(result)
	}
	return data.Float(result)
}

func funcPow(v []data.Value) data.Value {
	return data.Float(math.Pow(toFloat(v[0]), toFloat(v[1])))
}

func funcSqrt(v []data.Value) data.Value {
	return data.Float(math.Sqrt(toFloat(v[0])))
}

func funcStringify(v []data.Value) data.Value {
	var b, err = json.Marshal(v[0].Interface())
	if err != nil {
		panic(err)
	}
	return data.String(b)
}

func funcKeys(v []data.Value) data.Value {
	var m = v[0].(data.Map)
	var keys = make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var result = make(data.List, len(keys))
	for i, k := range keys {
		result[i] = data.String(k)
	}
	return result
}

func funcParseInt(v []data.Value) data.Value {
	var base = 10
	if len(v) == 2 {
		base = int(toFloat(v[1]))
	}
	var str = strings.TrimSpace(v[0].String())
	var end = 0
	if end < len(str) && (str[end] == '+' || str[end] == '-') {
		end++
	}
	for end < len(str) && digitValue(str[end]) < base {
		end++
	}
	var n, err = strconv.ParseInt(str[:end], base, 64)
	if err != nil {
		return data.Float(math.NaN())
	}
	return data.Int(n)
}

func digitValue(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return 99
}

func funcParseFloat(v []data.Value) data.Value {
	var str = strings.TrimSpace(v[0].String())
	var end = 0
	if end < len(str) && (str[end] == '+' || str[end] == '-') {
		end++
	}
	var seenDot, seenDigit bool
	for end < len(str) {
		switch {
		case '0' <= str[end] && str[end] <= '9':
			seenDigit = true
		case str[end] == '.' && !seenDot:
			seenDot = true
		default:
			goto done
		}
		end++
	}
done:
	if !seenDigit {
		return data.Float(math.NaN())
	}
	var f, err = strconv.ParseFloat(strings.TrimSuffix(str[:end], "."), 64)
	if err != nil {
		return data.Float(math.NaN())
	}
	return data.Float(f)
}

func funcIsNaN(v []data.Value) data.Value {
	switch arg := v[0].(type) {
	case data.Float:
		return data.Bool(math.IsNaN(float64(arg)))
	case data.Int, data.Bool, data.Null:
		return data.Bool(false)
	case data.String:
		var _, err = strconv.ParseFloat(strings.TrimSpace(string(arg)), 64)
		return data.Bool(err != nil && strings.TrimSpace(string(arg)) != "")
	default:
		return data.Bool(true)
	}
}

func funcString(v []data.Value) data.Value {
	switch v[0].(type) {
	case data.Null:
		return data.String("null")
	case data.Undefined:
		return data.String("undefined")
	}
	return data.String(v[0].String())
}

func funcNumber(v []data.Value) data.Value {
	switch arg := v[0].(type) {
	case data.Int, data.Float:
		return arg
	case data.String:
		var str = strings.TrimSpace(string(arg))
		if str == "" {
			return data.Int(0)
		}
		if n, err := strconv.ParseInt(str, 10, 64); err == nil {
			return data.Int(n)
		}
		if f, err := strconv.ParseFloat(str, 64); err == nil {
			return data.Float(f)
		}
		return data.Float(math.NaN())
	case data.Bool:
		if arg {
			return data.Int(1)
		}
		return data.Int(0)
	case data.Null:
		return data.Int(0)
	default:
		return data.Float(math.NaN())
	}
}

func funcBoolean(v []data.Value) data.Value {
	return data.Bool(v[0].Truthy())
}

func checkNumArgs(allowedNumArgs []int, numArgs int) bool {
	for _, length := range allowedNumArgs {
		if numArgs == length {
			return true
		}
	}
	return false
}
