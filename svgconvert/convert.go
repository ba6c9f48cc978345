// Package svgconvert ties together the document parsing, the
// traversal and the element processing, sending the resulting
// records to an exporter.
//
//	var rec svgdraw.Recorder
//	bounds, err := svgconvert.ConvertFile("drawing.svg", &rec, svgconvert.WithErrorMode(svgtraverse.WarnErrorMode))
package svgconvert

import (
	"io"
	"log/slog"

	"github.com/benoitkugler/svgcut/svgcontext"
	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/benoitkugler/svgcut/svgtraverse"
)

// Option configures a conversion.
type Option func(*options)

type options struct {
	config    svgcontext.Config
	errorMode svgtraverse.ErrorMode
}

func defaultOptions() options {
	return options{
		config:    svgcontext.DefaultConfig(),
		errorMode: svgtraverse.WarnErrorMode,
	}
}

// WithLogger sets the logger receiving the warnings.
// By default, logging.Logger() is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.config.Logger = l }
}

// WithErrorMode sets how unknown SVG elements are handled.
// The default is svgtraverse.WarnErrorMode.
func WithErrorMode(mode svgtraverse.ErrorMode) Option {
	return func(o *options) { o.errorMode = mode }
}

// WithViewport sets the viewport used to resolve the
// percentages of the root element.
func WithViewport(viewport svgpath.Bounds) Option {
	return func(o *options) { o.config.DefaultViewport = viewport }
}

// WithMaxPatternDepth bounds the nesting of pattern fills.
func WithMaxPatternDepth(depth int) Option {
	return func(o *options) { o.config.MaxPatternDepth = depth }
}

// WithMaxPatternTiles bounds the number of tiles of one pattern fill.
func WithMaxPatternTiles(tiles int) Option {
	return func(o *options) { o.config.MaxPatternTiles = tiles }
}

// WithFlatness sets the tolerance used to approximate curves
// by segments, in document units.
func WithFlatness(tolerance float64) Option {
	return func(o *options) { o.config.Flatness = tolerance }
}

// ConvertDocument processes `doc` and sends the records to `exporter`.
// It returns the area covered by the document.
func ConvertDocument(doc *svgdoc.Document, exporter svgcontext.Exporter, opts ...Option) (svgpath.Bounds, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	traverser := svgtraverse.NewTraverser(o.config.Logger, o.errorMode)
	root := svgcontext.NewRootContext(doc, traverser, exporter, o.config)
	if err := traverser.LoadDocument(doc, root); err != nil {
		return svgpath.Bounds{}, err
	}
	return root.Bounds(), nil
}

// Convert reads an SVG document from `r` and processes it.
func Convert(r io.Reader, exporter svgcontext.Exporter, opts ...Option) (svgpath.Bounds, error) {
	doc, err := svgdoc.Parse(r)
	if err != nil {
		return svgpath.Bounds{}, err
	}
	return ConvertDocument(doc, exporter, opts...)
}

// ConvertFile reads the named SVG file and processes it.
func ConvertFile(filename string, exporter svgcontext.Exporter, opts ...Option) (svgpath.Bounds, error) {
	doc, err := svgdoc.ParseFile(filename)
	if err != nil {
		return svgpath.Bounds{}, err
	}
	return ConvertDocument(doc, exporter, opts...)
}
