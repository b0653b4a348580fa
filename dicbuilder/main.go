package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/msnoigrs/gomorphtag/dictionary"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage of %s:
	%s -o dir -p file -x file -s file -t file [-e file] [-d description] lemmas1 [lemmas2 ...]

Options:
`, os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}

	var (
		outputdir     string
		paradigmspath string
		prefixespath  string
		suffixespath  string
		tagspath      string
		endspath      string
		description   string
	)
	flag.StringVar(&outputdir, "o", "", "output directory")
	flag.StringVar(&paradigmspath, "p", "", "paradigm file")
	flag.StringVar(&prefixespath, "x", "", "prefix table")
	flag.StringVar(&suffixespath, "s", "", "suffix table")
	flag.StringVar(&tagspath, "t", "", "tag table")
	flag.StringVar(&endspath, "e", "", "suffix statistics file")
	flag.StringVar(&description, "d", "", "comment")

	flag.Parse()

	if outputdir == "" || paradigmspath == "" || prefixespath == "" ||
		suffixespath == "" || tagspath == "" || len(flag.Args()) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	tables, err := loadTables(paradigmspath, prefixespath, suffixespath, tagspath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dicbuilder, err := dictionary.NewDictionaryBuilder(tables)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	p := message.NewPrinter(language.English)

	fmt.Fprint(os.Stderr, "reading the lemma lists...")
	for _, lemmapath := range flag.Args() {
		err := buildFile(lemmapath, dicbuilder.BuildLexicon)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", lemmapath, err)
			os.Exit(1)
		}
	}
	p.Fprintf(os.Stderr, " %d lemmas, %d word forms\n", dicbuilder.NumLemmas, dicbuilder.NumWordForms())

	if endspath != "" {
		fmt.Fprint(os.Stderr, "reading the suffix statistics...")
		err := buildFile(endspath, dicbuilder.BuildEnds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", endspath, err)
			os.Exit(1)
		}
		p.Fprintf(os.Stderr, " %d endings\n", dicbuilder.NumEndings())
	}

	err = dicbuilder.BuildIndexes(time.Now().Unix(), description)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fail to build indexes: %s\n", err)
		os.Exit(1)
	}

	err = dicbuilder.Write(outputdir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fail to write the dictionary: %s\n", err)
		os.Exit(1)
	}
}

func loadTables(paradigmspath, prefixespath, suffixespath, tagspath string) (*dictionary.Tables, error) {
	var err error
	tables := &dictionary.Tables{}
	tables.Prefixes, err = dictionary.LoadStringTable(prefixespath)
	if err != nil {
		return nil, err
	}
	tables.Suffixes, err = dictionary.LoadStringTable(suffixespath)
	if err != nil {
		return nil, err
	}
	tables.Tags, err = dictionary.LoadStringTable(tagspath)
	if err != nil {
		return nil, err
	}
	tables.Paradigms, err = dictionary.LoadParadigms(paradigmspath)
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func buildFile(path string, build func(r io.Reader) error) error {
	fd, err := os.OpenFile(path, os.O_RDONLY, 0644)
	if err != nil {
		return err
	}
	defer fd.Close()
	return build(fd)
}
