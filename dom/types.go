// Package dom assembles a parsed node arena into a Document: an object-ID
// registry, per-scene descriptors, and a labeled directed connection graph.
package dom

import "github.com/kaydara/fbxbin/core"

// ObjectId is the 64-bit signed identifier read from the first attribute of
// every object node. Zero is valid but reserved by convention for the
// implicit root; real files should not reuse it.
type ObjectId int64

// ObjectMeta is the decoded identity triple of a registered object node.
type ObjectMeta struct {
	ID       ObjectId
	Class    core.StrSym
	Subclass core.StrSym
	Name     core.StrSym
}

// ConnectionEdgeKind selects which of a Connection's endpoints are objects
// versus properties.
type ConnectionEdgeKind int

const (
	EdgeObjectObject ConnectionEdgeKind = iota
	EdgeObjectProperty
	EdgePropertyObject
	EdgePropertyProperty
)

func (k ConnectionEdgeKind) String() string {
	switch k {
	case EdgeObjectObject:
		return "OO"
	case EdgeObjectProperty:
		return "OP"
	case EdgePropertyObject:
		return "PO"
	case EdgePropertyProperty:
		return "PP"
	default:
		return "unknown"
	}
}

// ConnectionEdge is the tagged variant selected by a connection node's
// first attribute. SourceLabel is meaningful for PropertyObject and
// PropertyProperty; DestLabel is meaningful for ObjectProperty and
// PropertyProperty.
type ConnectionEdge struct {
	Kind        ConnectionEdgeKind
	SourceLabel core.StrSym
	DestLabel   core.StrSym
}

// Connection is one decoded edge from a `C` node under `Connections`.
type Connection struct {
	Source         ObjectId
	Destination    ObjectId
	Edge           ConnectionEdge
	InsertionIndex uint64
}

// SceneNodeData is the per-scene descriptor extracted from a
// `Documents/Document` node whose subclass is Scene.
type SceneNodeData struct {
	NodeId       core.NodeId
	RootObjectID ObjectId
}

// Document is the immutable result of loading an arena: the arena itself,
// the object-id index, per-object metadata, scene descriptors, and the
// connection graph.
type Document struct {
	Arena         *core.Arena
	ObjectIdIndex map[ObjectId]core.NodeId
	Meta          map[core.NodeId]*ObjectMeta
	Scenes        []SceneNodeData
	Graph         *ObjectsGraph
}

// Object returns the node id registered for id, or ok=false if no object
// with that id was registered.
func (d *Document) Object(id ObjectId) (core.NodeId, bool) {
	nodeID, ok := d.ObjectIdIndex[id]
	return nodeID, ok
}

// ObjectMeta returns the metadata registered for the given object node id.
func (d *Document) ObjectMeta(nodeID core.NodeId) (*ObjectMeta, bool) {
	m, ok := d.Meta[nodeID]
	return m, ok
}
