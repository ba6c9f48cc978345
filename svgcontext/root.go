package svgcontext

import (
	"log/slog"

	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/benoitkugler/svgcut/svgtraverse"
)

// RootContext is the parent of the outermost <svg> element.
// It provides the document level defaults.
type RootContext struct {
	exporter Exporter
	document Document
	loader   ReferenceLoader
	config   Config

	// size of the outermost <svg> element, in document units
	bounds svgpath.Bounds
}

// NewRootContext returns the context to use as root handler
// when traversing `doc`.
func NewRootContext(doc Document, loader ReferenceLoader, exporter Exporter, config Config) *RootContext {
	return &RootContext{
		exporter: exporter,
		document: doc,
		loader:   loader,
		config:   config.withDefaults(),
		bounds:   svgpath.Bounds{W: -1, H: -1},
	}
}

// Bounds returns the area covered by the document, as established
// by the outermost <svg> element, once the traversal is done.
// It is empty (negative size) before.
func (rc *RootContext) Bounds() svgpath.Bounds { return rc.bounds }

func (rc *RootContext) Transform() svgpath.Matrix2D { return svgpath.Identity }

func (rc *RootContext) Viewport() svgpath.Bounds { return rc.config.DefaultViewport }

func (rc *RootContext) Exporter() Exporter { return rc.exporter }

func (rc *RootContext) Document() Document { return rc.document }

func (rc *RootContext) Loader() ReferenceLoader { return rc.loader }

func (rc *RootContext) Logger() *slog.Logger { return rc.config.Logger }

func (rc *RootContext) Config() Config { return rc.config }

func (rc *RootContext) paint() paintState { return defaultPaint() }

func (rc *RootContext) patterns() []string { return nil }

func (rc *RootContext) EnterElement(kind svgtraverse.ElementKind) (svgtraverse.Handler, error) {
	return NewContext(kind, rc)
}

func (rc *RootContext) SetAttribute(svgtraverse.Attribute) {}

func (rc *RootContext) ExitElement() error { return nil }
