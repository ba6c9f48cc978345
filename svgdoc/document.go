// Package svgdoc loads SVG files into a tree of elements,
// and provides the document-wide lookup by id needed to
// resolve references such as `fill="url(#pattern)"`.
package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// SVGNamespace is the namespace of SVG elements.
const SVGNamespace = "http://www.w3.org/2000/svg"

// ErrNoRoot is returned when the input has no element at all.
var ErrNoRoot = errors.New("invalid svg xml: no root element")

// Node is an element of the document.
type Node struct {
	Name     xml.Name // Name.Space is the resolved namespace URL
	Attrs    []xml.Attr
	Children []*Node
	Parent   *Node

	// character data directly inside the element
	Text string
}

// Attr returns the value of the attribute with the given
// local name, in the default or SVG namespace.
func (n *Node) Attr(local string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name.Local == local && (attr.Name.Space == "" || attr.Name.Space == SVGNamespace) {
			return attr.Value, true
		}
	}
	return "", false
}

// ID returns the `id` attribute, or an empty string.
func (n *Node) ID() string {
	id, _ := n.Attr("id")
	return strings.TrimSpace(id)
}

// IsSVG returns true if the element belongs to the SVG
// namespace, or to no namespace at all.
func (n *Node) IsSVG() bool {
	return n.Name.Space == "" || n.Name.Space == SVGNamespace
}

// Document is a parsed SVG file.
type Document struct {
	Root *Node

	ids map[string]*Node
}

// FindByID returns the element with the given id,
// or nil if there is none. If several elements share the
// same id, the first one in document order is returned.
func (d *Document) FindByID(id string) *Node {
	return d.ids[id]
}

// Title returns the text of the first <title> element
// child of the root, if any.
func (d *Document) Title() string {
	for _, child := range d.Root.Children {
		if child.Name.Local == "title" {
			return strings.TrimSpace(child.Text)
		}
	}
	return ""
}

func (d *Document) index(n *Node) {
	if id := n.ID(); id != "" {
		if _, has := d.ids[id]; !has {
			d.ids[id] = n
		}
	}
	for _, child := range n.Children {
		d.index(child)
	}
}

// Parse reads an SVG document from the given stream.
// Non UTF-8 encodings declared in the XML header are supported.
func Parse(stream io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel

	doc := &Document{ids: make(map[string]*Node)}
	var current *Node
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("invalid svg xml: %w", err)
		}
		// Inspect the type of the XML token
		switch se := t.(type) {
		case xml.StartElement:
			node := &Node{Name: se.Name, Attrs: se.Copy().Attr, Parent: current}
			if current == nil {
				if doc.Root != nil {
					return nil, errors.New("invalid svg xml: multiple root elements")
				}
				doc.Root = node
			} else {
				current.Children = append(current.Children, node)
			}
			current = node
		case xml.EndElement:
			if current != nil {
				current = current.Parent
			}
		case xml.CharData:
			if current != nil {
				current.Text += string(se)
			}
		}
	}
	if doc.Root == nil {
		return nil, ErrNoRoot
	}
	doc.index(doc.Root)
	return doc, nil
}

// ParseFile reads the SVG document from the named file.
func ParseFile(filename string) (*Document, error) {
	fin, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return Parse(fin)
}
