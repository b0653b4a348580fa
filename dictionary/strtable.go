package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/msnoigrs/gomorphtag/internal/lnreader"
)

// ReadStringTable reads a count line followed by exactly that many lines.
// name is used in error messages.
func ReadStringTable(input io.Reader, name string) ([]string, error) {
	r := lnreader.NewLineNumberReader(input)
	header, err := r.ReadLine()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: missing count line: %w", name, ErrCorruptedDictionary)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %s", name, err)
	}
	size, err := strconv.Atoi(strings.TrimSpace(string(header)))
	if err != nil || size < 0 {
		return nil, fmt.Errorf("%s: invalid count at line %d: %w", name, r.NumLine, ErrCorruptedDictionary)
	}

	table := make([]string, 0, capHint(size))
	for len(table) < size {
		line, err := r.ReadLine()
		if err == io.EOF {
			return nil, fmt.Errorf("%s: expected %d entries, got %d: %w", name, size, len(table), ErrCorruptedDictionary)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %s", name, err)
		}
		table = append(table, string(line))
	}
	return table, nil
}

func LoadStringTable(filename string) ([]string, error) {
	fd, err := os.OpenFile(filename, os.O_RDONLY, 0644)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return ReadStringTable(fd, filename)
}

func WriteStringTable(writer io.Writer, table []string) error {
	bwriter := bufio.NewWriter(writer)
	_, err := fmt.Fprintln(bwriter, len(table))
	if err != nil {
		return err
	}
	for _, s := range table {
		if strings.ContainsAny(s, "\r\n") {
			return fmt.Errorf("string table entry contains a line break: %q", s)
		}
		_, err = bwriter.WriteString(s)
		if err != nil {
			return err
		}
		err = bwriter.WriteByte('\n')
		if err != nil {
			return err
		}
	}
	return bwriter.Flush()
}
