package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestValueBagUnmarshalOrder(t *testing.T) {
	raw := `{"WindSpeed":"4","BeaufortScale":3,"Gust":null}`

	var bag ValueBag
	if err := json.Unmarshal([]byte(raw), &bag); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if want := []string{"WindSpeed", "BeaufortScale", "Gust"}; !reflect.DeepEqual(bag.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", bag.Keys(), want)
	}
	if got := bag.First(); got != "4" {
		t.Errorf("First() = %v, want \"4\"", got)
	}

	v, ok := bag.Get("BeaufortScale")
	if !ok || v != float64(3) {
		t.Errorf("Get(BeaufortScale) = %v, %v", v, ok)
	}
	if _, ok := bag.Get("Gust"); ok {
		t.Error("null value should report absent")
	}
	if _, ok := bag.Get("Missing"); ok {
		t.Error("missing key should report absent")
	}
}

func TestValueBagMarshalRoundTrip(t *testing.T) {
	raw := `{"b":1,"a":"x","c":null}`

	var bag ValueBag
	if err := json.Unmarshal([]byte(raw), &bag); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(bag)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != raw {
		t.Errorf("round trip = %s, want %s", out, raw)
	}
}

func TestValueBagUnmarshalRejectsNonObject(t *testing.T) {
	var bag ValueBag
	if err := json.Unmarshal([]byte(`["a"]`), &bag); err == nil {
		t.Error("expected error for array input")
	}
}

func TestValueBagSet(t *testing.T) {
	var bag ValueBag
	bag.Set("value", 1.5)
	bag.Set("other", "x")
	bag.Set("value", 2.5)

	if want := []string{"value", "other"}; !reflect.DeepEqual(bag.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", bag.Keys(), want)
	}
	if v, _ := bag.Get("value"); v != 2.5 {
		t.Errorf("Get(value) = %v, want 2.5", v)
	}
}

func TestNewValueBag(t *testing.T) {
	bag := NewValueBag("a", "1", "b", 2.0)
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
	if bag.First() != "1" {
		t.Errorf("First() = %v", bag.First())
	}
}
