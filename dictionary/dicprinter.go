package dictionary

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/msnoigrs/gomorphtag/internal/mmap"
)

// PrintDictionary writes "form lemma tag" for every word form key and
// "suffix tag count" for every suffix statistic of the dictionary in dir.
func PrintDictionary(dir string, output io.Writer) error {
	config := NewDictionaryConfig()
	config.Verify = false
	dic, err := LoadDictionary(dir, config)
	if err != nil {
		return err
	}
	defer dic.Close()

	err = dic.Lexicon.WalkWordForms(func(form string, cand Candidate) error {
		_, err := fmt.Fprintf(output, "%s %s %s\n", form, cand.Lemma, cand.Tag)
		return err
	})
	if err != nil {
		return err
	}
	return dic.Lexicon.WalkEndings(func(suffix string, cand Candidate) error {
		_, err := fmt.Fprintf(output, "%s %s %d\n", suffix, cand.Tag, cand.Weight)
		return err
	})
}

func PrintHeader(triefile string, output io.Writer) error {
	triefd, err := os.OpenFile(triefile, os.O_RDONLY, 0644)
	if err != nil {
		return err
	}
	defer triefd.Close()

	finfo, err := triefd.Stat()
	if err != nil {
		return err
	}

	bytebuffer, err := mmap.Mmap(triefd, false, 0, finfo.Size())
	if err != nil {
		return err
	}
	defer mmap.Munmap(bytebuffer)

	dh, err := ParseDictionaryHeader(bytebuffer, 0)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", triefile, err, ErrCorruptedDictionary)
	}

	fmt.Fprintf(output, "filename: %s\n", triefile)

	if !IsTrieVersion(dh.Version) {
		return fmt.Errorf("%s: invalid file: %w", triefile, ErrCorruptedDictionary)
	}
	fmt.Fprintf(output, "type: %s\n", TrieTypeName(dh.Version))

	ctime := time.Unix(dh.CreateTime, 0)
	zone, _ := ctime.Zone()
	fmt.Fprintf(output, "createTime: %s[%s]\n", ctime.Format(time.RFC3339), zone)
	fmt.Fprintf(output, "description: %s\n", dh.Description)

	return nil
}
