package dictionary

import (
	"testing"
)

func TestNormalizeWord(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"кошка", "КОШКА"},
		{"Ёлка", "ЕЛКА"},
		{"ёжик", "ЕЖИК"},
		{"съёмка", "СЪЕМКА"},
		{"абвгдежзийклмноп", "АБВГДЕЖЗИЙКЛМНОП"},
		{"рстуфхцчшщъыьэюя", "РСТУФХЦЧШЩЪЫЬЭЮЯ"},
		{"ѐђѓєѕіїјљњћќѝўџ", "ЀЂЃЄЅІЇЈЉЊЋЌЍЎЏ"},
		{"Moscow", "MOSCOW"},
		{"ф-1", "Ф-1"},
		{"straße", "STRAßE"},
		// decomposed й
		{"\u0438\u0306", "Й"},
	}
	for _, tt := range tests {
		if got := string(NormalizeWord([]byte(tt.in))); got != tt.expected {
			t.Errorf("got %v, expected %v", got, tt.expected)
		}
	}
}

func TestUpperBytesKeepsLength(t *testing.T) {
	in := []byte("Привет, мир! ЁЁ ёё")
	got := UpperBytes(in)
	if len(got) != len(in) {
		t.Errorf("got %v, expected %v", len(got), len(in))
	}
	if string(in) != "Привет, мир! ЁЁ ёё" {
		t.Errorf("source is modified: %s", in)
	}
}

func TestCharCount(t *testing.T) {
	if got := CharCount([]byte("кот")); got != 3 {
		t.Errorf("got %v, expected 3", got)
	}
	if got := CharCount([]byte("a€ж")); got != 3 {
		t.Errorf("got %v, expected 3", got)
	}
	if got := CharCount(nil); got != 0 {
		t.Errorf("got %v, expected 0", got)
	}
}

func TestLastChars(t *testing.T) {
	tests := []struct {
		in       string
		n        int
		expected string
	}{
		{"КОШКА", 3, "ШКА"},
		{"КОТ", 3, "КОТ"},
		{"Я", 3, "Я"},
		{"abcd", 3, "bcd"},
		{"a€ж", 2, "€ж"},
		{"КОТ", 0, ""},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := string(LastChars([]byte(tt.in), tt.n)); got != tt.expected {
			t.Errorf("got %v, expected %v", got, tt.expected)
		}
	}
}
