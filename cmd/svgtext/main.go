// Command svgtext converts a document of text frames into an SVG image
// made of glyph outlines.
//
// Usage:
//
//	svgtext [flags] <input>
//
// The input format is taken from the file extension (.json, .yaml, .yml,
// .toml) unless --format is given. The SVG goes to standard output unless
// --output names a file; the file is only written when conversion succeeds.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gogpu/svgtext"
	"github.com/gogpu/svgtext/document"
)

type options struct {
	output   string
	format   string
	fonts    []string
	copyable bool
	family   string
	size     float32
	lang     string
	compact  bool
	verbose  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "svgtext:", err)
		os.Exit(1)
	}
}

// run executes the command line args, writing the SVG to stdout unless an
// output file is given.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newCommand(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newCommand(stdout, stderr io.Writer) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:           "svgtext [flags] <input>",
		Short:         "Convert styled text frames to an SVG of glyph outlines",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return convert(cmd.Context(), args[0], o, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "", "write the SVG to `file` instead of standard output")
	f.StringVar(&o.format, "format", "", "input format: json, yaml or toml (default from the file extension)")
	f.StringArrayVar(&o.fonts, "font", nil, "load fonts matching `pattern` (repeatable)")
	f.BoolVar(&o.copyable, "copyable", false, "add selectable text to every frame")
	f.StringVar(&o.family, "family", "", "default font family")
	f.Float32Var(&o.size, "size", 24, "default font size")
	f.StringVar(&o.lang, "lang", "en-US", "default language")
	f.BoolVar(&o.compact, "compact", false, "write the SVG on a single line")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log progress to standard error")
	return cmd
}

func convert(ctx context.Context, input string, o options, stdout, stderr io.Writer) error {
	if o.verbose {
		svgtext.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer svgtext.SetLogger(nil)
	}

	format := document.FormatForPath(input)
	if o.format != "" {
		var err error
		if format, err = document.ParseFormat(o.format); err != nil {
			return err
		}
	}

	doc, err := svgtext.ReadDocument(input, format)
	if err != nil {
		return err
	}

	opts := []svgtext.Option{
		svgtext.WithFontFiles(o.fonts...),
		svgtext.WithCopyable(o.copyable),
		svgtext.WithDefaultFamily(o.family),
		svgtext.WithDefaultSize(o.size),
		svgtext.WithLanguage(o.lang),
	}
	if o.compact {
		opts = append(opts, svgtext.WithIndent(""))
	}

	var out bytes.Buffer
	if err := svgtext.NewConverter(opts...).Convert(ctx, doc, &out); err != nil {
		return err
	}

	if o.output == "" {
		_, err = out.WriteTo(stdout)
		return err
	}
	if err := os.WriteFile(o.output, out.Bytes(), 0o644); err != nil {
		return err
	}
	svgtext.Logger().Info("svg saved", "path", o.output, "bytes", out.Len())
	return nil
}
