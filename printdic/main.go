package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/msnoigrs/gomorphtag/dictionary"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage of %s:
	%s [-o file] dir
`, os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}

	var outputfile string
	flag.StringVar(&outputfile, "o", "", "output to file")

	flag.Parse()

	if len(flag.Args()) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	err := run(flag.Arg(0), outputfile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(dir string, outputfile string) error {
	output := os.Stdout
	if outputfile != "" {
		fd, err := os.OpenFile(outputfile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer fd.Close()
		output = fd
	}

	bufout := bufio.NewWriter(output)
	defer bufout.Flush()
	err := dictionary.PrintDictionary(dir, bufout)
	if err != nil {
		return err
	}
	return bufout.Flush()
}
