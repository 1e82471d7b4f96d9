package data

import (
	"reflect"
	"testing"
	"time"
)

type conversionTest struct {
	input    interface{}
	expected Value
}

func TestNew(t *testing.T) {
	tests := []conversionTest{
		{nil, Null{}},
		{true, Bool(true)},
		{5, Int(5)},
		{uint8(3), Int(3)},
		{3.14, Float(3.14)},
		{"hello", String("hello")},
		{[]int{1, 2}, List{Int(1), Int(2)}},
		{map[string]interface{}{"a": 1}, Map{"a": Int(1)}},
		{[]interface{}{"a", 1.5}, List{String("a"), Float(1.5)}},
	}
	for _, test := range tests {
		var actual = New(test.input)
		if !reflect.DeepEqual(actual, test.expected) {
			t.Errorf("New(%v): expected %#v, got %#v", test.input, test.expected, actual)
		}
	}
}

func TestNewNilSlice(t *testing.T) {
	var s []int
	if _, ok := New(s).(Null); !ok {
		t.Error("nil slice should convert to Null")
	}
}

func TestStructConversion(t *testing.T) {
	type Person struct {
		Name  string
		Age   int
		Tags  []string
		Birth time.Time
	}
	var birth = time.Date(1987, 1, 1, 0, 0, 0, 0, time.UTC)
	var actual = New(Person{"Ana", 30, []string{"a"}, birth})
	var expected = Map{
		"name":  String("Ana"),
		"age":   Int(30),
		"tags":  List{String("a")},
		"birth": String("1987-01-01T00:00:00Z"),
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v, got %v", expected, actual)
	}
}

func TestStructPointer(t *testing.T) {
	type box struct{ N int }
	var actual = New(&box{5})
	if !reflect.DeepEqual(actual, Map{"n": Int(5)}) {
		t.Errorf("got %v", actual)
	}
}

func TestStructTags(t *testing.T) {
	type item struct {
		ID     int    `json:"id"`
		Label  string `json:"text"`
		Secret string `json:"-"`
	}
	var actual = New(item{1, "a", "hide me"})
	if !reflect.DeepEqual(actual, Map{"id": Int(1), "text": String("a")}) {
		t.Errorf("got %v", actual)
	}
}

func TestStructEmbedding(t *testing.T) {
	// base is an unexported type, but its exported fields are still promoted
	// through the embedding.
	type base struct {
		ID   int
		Tags []string
	}
	type page struct {
		base
		Title string
	}
	var actual = New(page{base{7, []string{"a"}}, "home"})
	var expected = Map{
		"id":    Int(7),
		"tags":  List{String("a")},
		"title": String("home"),
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("got %v", actual)
	}
}

func TestStructEmbeddedPointer(t *testing.T) {
	type Base struct{ ID int }
	type page struct {
		*Base
		Title string
	}
	var actual = New(page{&Base{7}, "home"})
	if !reflect.DeepEqual(actual, Map{"id": Int(7), "title": String("home")}) {
		t.Errorf("got %v", actual)
	}
	actual = New(page{nil, "home"})
	if !reflect.DeepEqual(actual, Map{"title": String("home")}) {
		t.Errorf("nil embedded pointer: got %v", actual)
	}
}

func TestNilPointer(t *testing.T) {
	type box struct{ P *int }
	var actual = New(box{})
	if !reflect.DeepEqual(actual, Map{"p": Null{}}) {
		t.Errorf("got %v", actual)
	}
}
