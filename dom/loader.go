package dom

import (
	"github.com/kaydara/fbxbin/core"
	"github.com/kaydara/fbxbin/fbxerr"
	"github.com/kaydara/fbxbin/parser"
)

// Options configures a Loader.
type Options struct {
	// Strict aborts the load on the first non-critical structural error
	// when true; when false, the error is logged via WarningSink and the
	// load continues.
	Strict bool
	// WarningSink receives every recoverable oddity the loader encounters,
	// including non-critical errors tolerated in non-strict mode. May be
	// nil.
	WarningSink fbxerr.Sink
}

// Loader builds a Document from a parsed node arena in three ordered
// passes: Objects, Documents, Connections.
type Loader struct {
	opts Options
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts Options) *Loader {
	return &Loader{opts: opts}
}

// LoadDocument drains p into an arena (core.Build) and loads a Document
// from it. Critical errors — a bad parser frame, I/O error, decompression
// failure, version out of range — always abort, regardless of Strict.
func (l *Loader) LoadDocument(p *parser.Parser) (*Document, error) {
	arena, err := core.Build(p)
	if err != nil {
		return nil, err
	}
	return l.LoadArena(arena)
}

// LoadArena loads a Document from an already-built arena, for callers that
// constructed one directly.
func (l *Loader) LoadArena(arena *core.Arena) (*Document, error) {
	doc := &Document{
		Arena:         arena,
		ObjectIdIndex: make(map[ObjectId]core.NodeId),
		Meta:          make(map[core.NodeId]*ObjectMeta),
		Graph:         newObjectsGraph(),
	}

	if err := l.loadObjects(arena, doc); err != nil {
		return nil, err
	}
	if err := l.loadDocuments(arena, doc); err != nil {
		return nil, err
	}
	if err := l.loadConnections(arena, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// nonCritical applies strict/non-strict handling to a non-critical error:
// strict mode propagates it, non-strict mode logs it via the warning sink
// and continues.
func (l *Loader) nonCritical(e *fbxerr.Error) error {
	if l.opts.Strict {
		return e
	}
	w := fbxerr.NewWarningf(fbxerr.WarningLevelWarning, string(e.Code), "%s", e.Message)
	if e.HasNodeID {
		w = w.AtNode(e.NodeID)
	}
	if e.Position >= 0 {
		w = w.AtPosition(e.Position)
	}
	fbxerr.Emit(l.opts.WarningSink, w)
	return nil
}

func (l *Loader) loadObjects(arena *core.Arena, doc *Document) error {
	objectsID, ok := arena.FindTopLevel("Objects")
	if !ok {
		return l.nonCritical(fbxerr.ErrNodeNotFound.AtNode(uint32(arena.Root())))
	}
	for _, child := range arena.Children(objectsID) {
		if err := l.registerObject(arena, doc, child); err != nil {
			return err
		}
	}
	return nil
}

// registerObject decodes and stores the (id, class, subclass, name) triple
// for an object node.
func (l *Loader) registerObject(arena *core.Arena, doc *Document, nodeID core.NodeId) error {
	attrs := arena.Node(nodeID).Attributes
	if len(attrs) < 3 {
		return l.nonCritical(fbxerr.ErrMissingAttribute.AtNode(uint32(nodeID)))
	}

	rawID, ok := attrs[0].AsI64()
	if !ok {
		return l.nonCritical(fbxerr.ErrAttributeTypeMismatch.AtNode(uint32(nodeID)))
	}
	classAndSub, ok := attrs[1].AsString()
	if !ok {
		return l.nonCritical(fbxerr.ErrAttributeTypeMismatch.AtNode(uint32(nodeID)))
	}
	nameAndClass, ok := attrs[2].AsString()
	if !ok {
		return l.nonCritical(fbxerr.ErrAttributeTypeMismatch.AtNode(uint32(nodeID)))
	}

	subclass, class, ok := splitSpecialAttribute(classAndSub)
	if !ok {
		return l.nonCritical(fbxerr.ErrMalformedClassName.AtNode(uint32(nodeID)))
	}
	name, trailingClass, ok := splitSpecialAttribute(nameAndClass)
	if !ok {
		return l.nonCritical(fbxerr.ErrMalformedClassName.AtNode(uint32(nodeID)))
	}
	if trailingClass != class {
		// The second string's trailing class token does not always match
		// the first. Warn and keep the class decoded from
		// class_and_subclass, never the trailing token.
		if err := l.nonCritical(fbxerr.Newf(fbxerr.NonCritical, fbxerr.LayerDOM, fbxerr.CodeMalformedClassName,
			"object %d: name/class trailing token %q does not match class %q", rawID, trailingClass, class).AtNode(uint32(nodeID))); err != nil {
			return err
		}
	}

	id := ObjectId(rawID)
	if _, dup := doc.ObjectIdIndex[id]; dup {
		return l.nonCritical(fbxerr.ErrDuplicateObjectID.AtNode(uint32(nodeID)))
	}

	doc.ObjectIdIndex[id] = nodeID
	doc.Meta[nodeID] = &ObjectMeta{
		ID:       id,
		Class:    arena.Sym(class),
		Subclass: arena.Sym(subclass),
		Name:     arena.Sym(name),
	}
	return nil
}

func (l *Loader) loadDocuments(arena *core.Arena, doc *Document) error {
	documentsID, ok := arena.FindTopLevel("Documents")
	if !ok {
		// Documents is optional: without it there are simply no scenes.
		return nil
	}
	for _, child := range arena.ChildrenByName(documentsID, "Document") {
		if err := l.registerObject(arena, doc, child); err != nil {
			return err
		}
		meta, ok := doc.Meta[child]
		if !ok {
			// registerObject tolerated a failure in non-strict mode and
			// produced no metadata; nothing further to do for this entry.
			continue
		}
		subclassName, _ := arena.String(meta.Subclass)
		if subclassName != "Scene" {
			if err := l.nonCritical(fbxerr.ErrUnexpectedSubclass.AtNode(uint32(child))); err != nil {
				return err
			}
		}

		rootNodeID, ok := arena.ChildByName(child, "RootNode")
		if !ok {
			if err := l.nonCritical(fbxerr.ErrMissingAttribute.AtNode(uint32(child))); err != nil {
				return err
			}
			continue
		}
		rootAttrs := arena.Node(rootNodeID).Attributes
		if len(rootAttrs) == 0 {
			if err := l.nonCritical(fbxerr.ErrMissingAttribute.AtNode(uint32(rootNodeID))); err != nil {
				return err
			}
			continue
		}
		rootObjID, ok := rootAttrs[0].AsI64()
		if !ok {
			if err := l.nonCritical(fbxerr.ErrAttributeTypeMismatch.AtNode(uint32(rootNodeID))); err != nil {
				return err
			}
			continue
		}
		doc.Scenes = append(doc.Scenes, SceneNodeData{NodeId: child, RootObjectID: ObjectId(rootObjID)})
	}
	return nil
}

func (l *Loader) loadConnections(arena *core.Arena, doc *Document) error {
	connectionsID, ok := arena.FindTopLevel("Connections")
	if !ok {
		return l.nonCritical(fbxerr.ErrNodeNotFound.AtNode(uint32(arena.Root())))
	}

	// insertion_index counts every sibling of Connections, not just `C`
	// nodes: a non-connection sibling still advances the counter.
	var insertionIndex uint64
	for _, child := range arena.Children(connectionsID) {
		name, _ := arena.String(arena.Node(child).Name)
		if name == "C" {
			if err := l.decodeConnection(arena, doc, child, insertionIndex); err != nil {
				return err
			}
		}
		insertionIndex++
	}
	return nil
}

func (l *Loader) decodeConnection(arena *core.Arena, doc *Document, nodeID core.NodeId, insertionIndex uint64) error {
	attrs := arena.Node(nodeID).Attributes
	if len(attrs) < 3 {
		return l.nonCritical(fbxerr.ErrMissingAttribute.AtNode(uint32(nodeID)))
	}
	kind, ok := attrs[0].AsString()
	if !ok {
		return l.nonCritical(fbxerr.ErrAttributeTypeMismatch.AtNode(uint32(nodeID)))
	}
	src, ok := attrs[1].AsI64()
	if !ok {
		return l.nonCritical(fbxerr.ErrAttributeTypeMismatch.AtNode(uint32(nodeID)))
	}
	dst, ok := attrs[2].AsI64()
	if !ok {
		return l.nonCritical(fbxerr.ErrAttributeTypeMismatch.AtNode(uint32(nodeID)))
	}

	edge := ConnectionEdge{}
	switch kind {
	case "OO":
		edge.Kind = EdgeObjectObject
	case "OP":
		label, ok := attrLabel(attrs, 3)
		if !ok {
			return l.nonCritical(fbxerr.ErrMissingAttribute.AtNode(uint32(nodeID)))
		}
		edge.Kind = EdgeObjectProperty
		edge.DestLabel = arena.Sym(label)
	case "PO":
		label, ok := attrLabel(attrs, 3)
		if !ok {
			return l.nonCritical(fbxerr.ErrMissingAttribute.AtNode(uint32(nodeID)))
		}
		edge.Kind = EdgePropertyObject
		edge.SourceLabel = arena.Sym(label)
	case "PP":
		srcLabel, ok1 := attrLabel(attrs, 3)
		dstLabel, ok2 := attrLabel(attrs, 4)
		if !ok1 || !ok2 {
			return l.nonCritical(fbxerr.ErrMissingAttribute.AtNode(uint32(nodeID)))
		}
		edge.Kind = EdgePropertyProperty
		edge.SourceLabel = arena.Sym(srcLabel)
		edge.DestLabel = arena.Sym(dstLabel)
	default:
		return l.nonCritical(fbxerr.ErrAttributeTypeMismatch.AtNode(uint32(nodeID)))
	}

	source := ObjectId(src)
	destination := ObjectId(dst)
	if doc.Graph.HasEdge(source, destination) {
		return l.nonCritical(fbxerr.ErrDuplicateConnection.AtNode(uint32(nodeID)))
	}
	doc.Graph.addEdge(Connection{
		Source:         source,
		Destination:    destination,
		Edge:           edge,
		InsertionIndex: insertionIndex,
	})
	return nil
}

func attrLabel(attrs []parser.AttributeValue, idx int) (string, bool) {
	if idx >= len(attrs) {
		return "", false
	}
	return attrs[idx].AsString()
}
