package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/msnoigrs/gomorphtag/dictionary"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage of %s:
	%s file [file ...]
`, os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if len(flag.Args()) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	for _, triefile := range flag.Args() {
		err := dictionary.PrintHeader(triefile, os.Stdout)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
