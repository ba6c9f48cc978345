// Command svgcut converts the outlines of an SVG drawing, with
// their dashes and pattern hatchings, into plotter commands or a preview.
//
//	svgcut [-format gpgl|pdf|png|svg] [-o out] [-v] [-strict] input.svg
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/benoitkugler/svgcut/logging"
	"github.com/benoitkugler/svgcut/svgcontext"
	"github.com/benoitkugler/svgcut/svgconvert"
	"github.com/benoitkugler/svgcut/svgdraw"
	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/benoitkugler/svgcut/svgpdf"
	"github.com/benoitkugler/svgcut/svgplotter"
	"github.com/benoitkugler/svgcut/svgraster"
	"github.com/benoitkugler/svgcut/svgtraverse"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "svgcut:", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("expected exactly one input file")

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("svgcut", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		format   = fs.String("format", "gpgl", "output format: gpgl, pdf, png or svg")
		output   = fs.String("o", "", "output file (default: standard output)")
		verbose  = fs.Bool("v", false, "log debug messages")
		strict   = fs.Bool("strict", false, "fail on unknown SVG elements")
		width    = fs.Int("width", 1024, "image width, for the png format")
		flatness = fs.Float64("flatness", svgcontext.DefaultFlatness, "curve approximation tolerance, in pixels")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	exporter, ok := exporters[*format]
	if !ok {
		return fmt.Errorf("unsupported output format %q", *format)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	logging.SetLogger(logger)

	mode := svgtraverse.WarnErrorMode
	if *strict {
		mode = svgtraverse.StrictErrorMode
	}

	var rec svgdraw.Recorder
	bounds, err := svgconvert.ConvertFile(fs.Arg(0), &rec,
		svgconvert.WithLogger(logger), svgconvert.WithErrorMode(mode), svgconvert.WithFlatness(*flatness))
	if err != nil {
		return err
	}
	if bounds.W <= 0 || bounds.H <= 0 {
		bounds = rec.Bounds()
	}
	logger.Debug("document converted", "records", len(rec.Records), "width", bounds.W, "height", bounds.H)

	write := func(out io.Writer) error {
		return exporter(out, rec.Records, bounds, *width, *flatness)
	}
	if *output == "" {
		return write(stdout)
	}
	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type exportFunc func(out io.Writer, records []svgpath.DashedPath, bounds svgpath.Bounds, width int, flatness float64) error

var exporters = map[string]exportFunc{
	"gpgl": func(out io.Writer, records []svgpath.DashedPath, bounds svgpath.Bounds, _ int, flatness float64) error {
		return svgplotter.WriteRecords(out, records, bounds, flatness)
	},
	"pdf": func(out io.Writer, records []svgpath.DashedPath, bounds svgpath.Bounds, _ int, _ float64) error {
		return svgpdf.RenderRecords(out, records, bounds)
	},
	"svg": func(out io.Writer, records []svgpath.DashedPath, bounds svgpath.Bounds, _ int, _ float64) error {
		return svgdraw.WriteSVG(out, records, bounds)
	},
	"png": func(out io.Writer, records []svgpath.DashedPath, bounds svgpath.Bounds, width int, _ float64) error {
		return png.Encode(out, svgraster.RenderRecords(records, bounds, width))
	},
}
