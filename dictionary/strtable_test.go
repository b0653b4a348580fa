package dictionary

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestReadStringTable(t *testing.T) {
	t.Run("entries", func(t *testing.T) {
		got, err := ReadStringTable(strings.NewReader("3\r\n\r\nА\r\nОЙ"), "suffixes")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := []string{"", "А", "ОЙ"}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("got %q, expected %q", got, expected)
		}
	})

	t.Run("trailing lines are ignored", func(t *testing.T) {
		got, err := ReadStringTable(strings.NewReader("1\nN\nextra\n"), "tags")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0] != "N" {
			t.Errorf("got %q, expected [N]", got)
		}
	})

	errorTests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad count", "x\n"},
		{"negative count", "-1\n"},
		{"short", "3\nА\nБ\n"},
		{"huge count", "9000000000000000000\nA\n"},
	}
	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadStringTable(strings.NewReader(tt.input), "tags")
			if !errors.Is(err, ErrCorruptedDictionary) {
				t.Errorf("got %v, expected %v", err, ErrCorruptedDictionary)
			}
			if err != nil && !strings.HasPrefix(err.Error(), "tags: ") {
				t.Errorf("error %q does not name the table", err)
			}
		})
	}
}

func TestWriteStringTable(t *testing.T) {
	table := []string{"", "НАИ", "ПО"}
	var buf bytes.Buffer
	if err := WriteStringTable(&buf, table); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "3\n\nНАИ\nПО\n" {
		t.Errorf("got %q", buf.String())
	}
	got, err := ReadStringTable(&buf, "prefixes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, table) {
		t.Errorf("got %q, expected %q", got, table)
	}

	if err := WriteStringTable(&buf, []string{"a\nb"}); err == nil {
		t.Errorf("expected an error for a line break")
	}
}
