// Package svgcontext implements the processing of the elements
// delivered by the traversal engine : each element gets a context,
// which composes the transforms of its ancestors, resolves the
// paint attributes and, for shapes, accumulates the geometry
// finally handed to an Exporter.
package svgcontext

import (
	"log/slog"

	"github.com/benoitkugler/svgcut/svgdoc"
	"github.com/benoitkugler/svgcut/svgpath"
	"github.com/benoitkugler/svgcut/svgtraverse"
)

// Exporter receives the finalized records, one call per
// strokeable shape, in traversal order.
// The record is owned by the exporter after the call.
type Exporter interface {
	Plot(svgpath.DashedPath)
}

// Document resolves references to other elements.
// A nil node means the id is not present.
type Document interface {
	FindByID(id string) *svgdoc.Node
}

// ReferenceLoader runs a nested traversal over a referenced
// element. It is implemented by *svgtraverse.Traverser.
type ReferenceLoader interface {
	LoadReferenced(node *svgdoc.Node, parent svgtraverse.Handler, expected svgtraverse.ElementSet) error
}

var _ ReferenceLoader = (*svgtraverse.Traverser)(nil)

// Context exposes the state a child element inherits
// from its parent. Contexts are only read by their children.
type Context interface {
	svgtraverse.Handler

	// Transform is the composed transform, mapping the user
	// space of the element to the document space.
	Transform() svgpath.Matrix2D
	// Viewport is used to resolve percentages.
	Viewport() svgpath.Bounds
	Exporter() Exporter
	Document() Document
	Loader() ReferenceLoader
	Logger() *slog.Logger
	Config() Config

	// inherited presentation attributes
	paint() paintState
	// ids of the patterns being processed, outermost first
	patterns() []string
}

// base implements the accessors shared by the
// contexts having a parent.
type base struct {
	parent Context
	local  svgpath.Matrix2D // value of the `transform` attribute
}

func newBase(parent Context) base { return base{parent: parent, local: svgpath.Identity} }

func (b *base) Transform() svgpath.Matrix2D { return b.parent.Transform().Mult(b.local) }

func (b *base) Viewport() svgpath.Bounds { return b.parent.Viewport() }

func (b *base) Exporter() Exporter { return b.parent.Exporter() }

func (b *base) Document() Document { return b.parent.Document() }

func (b *base) Loader() ReferenceLoader { return b.parent.Loader() }

func (b *base) Logger() *slog.Logger { return b.parent.Logger() }

func (b *base) Config() Config { return b.parent.Config() }

func (b *base) patterns() []string { return b.parent.patterns() }
