package core

import "github.com/kaydara/fbxbin/parser"

// NodeId is an opaque, compact identity for a NodeRecord within one Arena.
// Values are dense (0..n) and stable for the life of the arena.
type NodeId uint32

// NoNode is the sentinel NodeId meaning "no such node" — used for the root's
// parent, a childless node's first/last child, and the boundary siblings of
// a children list.
const NoNode NodeId = ^NodeId(0)

// NodeRecord is an interned name, an ordered attribute list, and the
// tree-structural links connecting it to the rest of the arena. Records are
// immutable once Build returns.
type NodeRecord struct {
	Name       StrSym
	Attributes []parser.AttributeValue

	Parent      NodeId
	FirstChild  NodeId
	LastChild   NodeId
	NextSibling NodeId
	PrevSibling NodeId
}
