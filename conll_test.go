package gomorphtag

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestSplitTag(t *testing.T) {
	tests := []struct {
		tag   string
		pos   string
		feats string
	}{
		{"N,f,sg", "N", "f|sg"},
		{"V,past", "V", "past"},
		{"PNCT", "PNCT", "_"},
		{"", "", "_"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			pos, feats := SplitTag(tt.tag)
			if pos != tt.pos || feats != tt.feats {
				t.Errorf("got %v %v, expected %v %v", pos, feats, tt.pos, tt.feats)
			}
		})
	}
}

func TestChopPunct(t *testing.T) {
	tests := []struct {
		word     string
		expected string
	}{
		{"пила,", "пила"},
		{"конец.", "конец"},
		{"что?!", "что?"},
		{"«ёлка»", "«ёлка»"},
		{"...", "..."},
		{"рубль₽", "рубль"},
		{"кот", "кот"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got := ChopPunct(tt.word)
			if got != tt.expected {
				t.Errorf("got %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestMark(t *testing.T) {
	m := newTestModel(t)
	err := m.Train(strings.NewReader("мама мама N,f,sg\nпила пить V,past\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input := "Мама мама N,f,sg\nпила,\n\n\nкошкы\n.\n42\n"
	var out bytes.Buffer
	if err := m.Mark(strings.NewReader(input), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "1\tМама\tМАМА\tN\tN\tf|sg\t_\t_\t_\t_\n" +
		"2\tпила\tПИТЬ\tV\tV\tpast\t_\t_\t_\t_\n" +
		"\n" +
		"1\tкошкы\tКОШКА\tN\tN\tf|pl\t_\t_\t_\t_\n" +
		"2\t.\t.\tPNCT\tPNCT\t_\t_\t_\t_\t_\n" +
		"3\t42\t42\tNUMB\tNUMB\t_\t_\t_\t_\t_\n"
	if out.String() != expected {
		t.Errorf("got %q, expected %q", out.String(), expected)
	}
}

func TestMarkUnicodeBlankLines(t *testing.T) {
	m := NewModelWithAnalyzer(fakeAnalyzer{})
	for _, blank := range []string{"\u00a0", "\v", "\f", " \u00a0\t", "\u00a0----------\u00a0"} {
		t.Run(fmt.Sprintf("%q", blank), func(t *testing.T) {
			input := "слово\n" + blank + "\nдругое\n"
			var out bytes.Buffer
			if err := m.Mark(strings.NewReader(input), &out); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			expected := "1\tслово\tслово\tUNKN\tUNKN\t_\t_\t_\t_\t_\n" +
				"\n" +
				"1\tдругое\tдругое\tUNKN\tUNKN\t_\t_\t_\t_\t_\n"
			if out.String() != expected {
				t.Errorf("got %q, expected %q", out.String(), expected)
			}
		})
	}
}
