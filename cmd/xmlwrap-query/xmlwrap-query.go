package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/xmlwrap"
)

type cmdopts struct {
	Limit   int  `long:"limit" default:"-1"`
	Full    bool `long:"full"`
	First   bool `long:"first"`
	Text    bool `long:"text"`
	Trace   bool `long:"trace"`
	Version bool `long:"version"`
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("xmlwrap-query: using xmlwrap version %s\n", xmlwrap.Version)
}

func showUsage() {
	fmt.Printf(`Usage : xmlwrap-query [options] query [XMLfiles ...]
	Evaluate the query against each XML file (stdin if none given)
	and print the matching elements.
	--limit=n  : stop after n matches
	--full     : force full XPath evaluation
	--first    : print only the first match
	--text     : print text content instead of XML
	--trace    : log evaluation strategy to stderr
	--version  : display the version of the XML library used
`)
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	if len(args) < 1 {
		showUsage()
		return 1
	}
	query := args[0]

	ctx := context.Background()
	if opts.Trace {
		ctx = xmlwrap.WithTraceLogger(ctx, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var inputs []io.Reader
	if len(args) > 1 {
		for _, f := range args[1:] {
			fh, err := os.Open(f)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s\n", err)
				return 1
			}
			defer fh.Close()
			inputs = append(inputs, fh)
		}
	} else {
		inputs = append(inputs, os.Stdin)
	}

	for _, in := range inputs {
		if err := run(ctx, in, query, &opts); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
	}
	return 0
}

func run(ctx context.Context, in io.Reader, query string, opts *cmdopts) error {
	doc, err := xmlwrap.Parse(ctx, in)
	if err != nil {
		return err
	}
	root := doc.Root()
	if root == nil {
		return nil
	}

	var qopts []xmlwrap.QueryOption
	if opts.Full {
		qopts = append(qopts, xmlwrap.WithFullEvaluation())
	}
	switch {
	case opts.First:
		qopts = append(qopts, xmlwrap.WithLimit(1))
	case opts.Limit >= 0:
		qopts = append(qopts, xmlwrap.WithLimit(opts.Limit))
	}

	seq, err := root.Query(ctx, query, qopts...)
	if err != nil {
		return err
	}
	for el := range seq {
		if opts.Text {
			fmt.Println(el.Content())
		} else {
			fmt.Println(el.XML())
		}
	}
	return nil
}
