package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/msnoigrs/gomorphtag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func parseSettings(curPath string, settingfile string, dictdir string) (*gomorphtag.BaseConfig, error) {
	settings := gomorphtag.NewSettingsJSON()
	if settingfile != "" {
		err := settings.ParseSettingsFile(settingfile)
		if err != nil {
			return nil, err
		}
	}
	bc := settings.GetBaseConfig()
	if dictdir != "" {
		bc.Dictionary = dictdir
	}
	if bc.Dictionary == "" {
		bc.Dictionary = filepath.Join(curPath, "dict")
	}
	return bc, nil
}

func openInputs(args []string, fn func(input io.Reader, name string) error) error {
	if len(args) == 0 {
		return fn(os.Stdin, "")
	}
	for _, arg := range args {
		input, err := os.OpenFile(arg, os.O_RDONLY, 0644)
		if err != nil {
			return err
		}
		err = fn(input, arg)
		input.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func train(model *gomorphtag.Model, modelfile string, appendmode bool, args []string) error {
	if appendmode {
		err := model.LoadFile(modelfile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	if len(args) == 0 {
		if err := model.Train(os.Stdin); err != nil {
			return err
		}
	}
	for _, arg := range args {
		fmt.Fprintf(os.Stderr, "training on %s\n", arg)
		if err := model.TrainFile(arg); err != nil {
			return err
		}
	}
	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stderr, "%d tokens, %d tag pairs\n", model.Tokens(), model.Pairs().Len())
	return model.SaveFile(modelfile)
}

func test(model *gomorphtag.Model, output io.Writer, args []string) error {
	return openInputs(args, func(input io.Reader, name string) error {
		eval, err := model.Evaluate(input, output)
		if err != nil {
			if name != "" {
				return fmt.Errorf("%s: %w", name, err)
			}
			return err
		}
		if eval.Total == 0 {
			fmt.Fprintf(os.Stderr, "%s: %s\n", name, gomorphtag.ErrNoScorableTokens)
			return nil
		}
		p := message.NewPrinter(language.English)
		p.Fprintf(output, "%s: %d tokens, %d wrong, %d skipped, accuracy %.4f\n",
			name, eval.Total, eval.Wrong, eval.Skipped, eval.Accuracy())
		return nil
	})
}

type options struct {
	settingfile string
	dictdir     string
	modelfile   string
	outputfile  string
	appendmode  bool
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage of %s:
	%s [-r file] [-d dir] -m file [-a] train [corpus ...]
	%s [-r file] [-d dir] -m file [-o file] test [corpus ...]
	%s [-r file] [-d dir] -m file [-o file] mark [file ...]
	%s -m file [-o file] print

Options:
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}

	var opts options
	flag.StringVar(&opts.settingfile, "r", "", "read settings from file")
	flag.StringVar(&opts.dictdir, "d", "", "dictionary directory")
	flag.StringVar(&opts.modelfile, "m", "", "model file")
	flag.StringVar(&opts.outputfile, "o", "", "output to file")
	flag.BoolVar(&opts.appendmode, "a", false, "continue training a saved model")

	flag.Parse()

	if opts.modelfile == "" || len(flag.Args()) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	switch flag.Arg(0) {
	case "train", "test", "mark", "print":
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}

	err := run(&opts, flag.Arg(0), flag.Args()[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts *options, command string, args []string) error {
	ex, err := os.Executable()
	if err != nil {
		return err
	}
	curPath := filepath.Dir(ex)

	var output io.Writer
	if opts.outputfile != "" {
		outputfd, err := os.OpenFile(opts.outputfile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer outputfd.Close()
		bufiooutput := bufio.NewWriter(outputfd)
		defer bufiooutput.Flush()
		output = bufiooutput
	} else {
		output = os.Stdout
	}

	settings, err := parseSettings(curPath, opts.settingfile, opts.dictdir)
	if err != nil {
		return fmt.Errorf("fail to parse settings: %w", err)
	}

	var model *gomorphtag.Model
	if command == "print" {
		model = gomorphtag.NewModelWithAnalyzer(nil)
		model.SetModelEncoding(settings.ModelEncoding)
	} else {
		model, err = gomorphtag.NewModelWithConfig(settings)
		if err != nil {
			return err
		}
		defer model.Close()
	}

	if command != "train" {
		err = model.LoadFile(opts.modelfile)
		if err != nil {
			return err
		}
	}

	switch command {
	case "train":
		return train(model, opts.modelfile, opts.appendmode, args)
	case "test":
		return test(model, output, args)
	case "mark":
		return openInputs(args, func(input io.Reader, name string) error {
			return model.Mark(input, output)
		})
	case "print":
		return model.Print(output)
	}
	return nil
}
