// Package fbxbin provides a pure Go reader for binary FBX 7.4 files: a
// streaming pull parser plus a DOM loader that assembles a node arena, an
// object registry, and a labeled connection graph.
//
// # Quick Start
//
//	import "github.com/kaydara/fbxbin"
//	import "github.com/kaydara/fbxbin/dom"
//
//	doc, err := fbxbin.Load(r, dom.Options{Strict: false})
//
// # Packages
//
//   - fbxerr: structured errors and warnings shared by every layer
//   - source: the byte-stream contract the parser reads from
//   - parser: the streaming pull parser (events, attributes, arrays)
//   - core: the node arena built from a drained parser
//   - dom: the DOM loader (objects, documents/scenes, connections)
package fbxbin

import (
	"io"

	"github.com/kaydara/fbxbin/core"
	"github.com/kaydara/fbxbin/dom"
	"github.com/kaydara/fbxbin/fbxerr"
	"github.com/kaydara/fbxbin/parser"
	"github.com/kaydara/fbxbin/source"
)

// Re-export common types for convenience. Users can import just
// "github.com/kaydara/fbxbin" for basic usage.

// Document is the immutable result of loading an FBX file.
type Document = dom.Document

// Options configures a Loader's strictness and warning sink.
type Options = dom.Options

// ObjectId is a 64-bit object identifier as used in the FBX object graph.
type ObjectId = dom.ObjectId

// ObjectMeta is a registered object's decoded identity triple.
type ObjectMeta = dom.ObjectMeta

// Connection is one decoded edge in the object-connection graph.
type Connection = dom.Connection

// NodeId identifies a node within a Document's arena.
type NodeId = core.NodeId

// WarningCollector accumulates non-fatal decode and load oddities.
type WarningCollector = fbxerr.WarningCollector

// Version returns the library version.
func Version() string {
	return "0.1.0"
}

// Load reads r as a binary FBX 7.4 stream and loads it into a Document in
// one call, for callers that don't need direct access to the parser cursor
// or the arena in between.
func Load(r io.Reader, opts Options) (*Document, error) {
	p, err := parser.FromSource(source.NewPlain(r), opts.WarningSink)
	if err != nil {
		return nil, err
	}
	return dom.NewLoader(opts).LoadDocument(p)
}
