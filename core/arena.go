package core

import "github.com/kaydara/fbxbin/parser"

// Arena owns every NodeRecord built from one parsed stream, plus the
// interner backing their names. References returned by its accessors
// (NodeId, StrSym) are only meaningful against this Arena.
type Arena struct {
	nodes    []NodeRecord
	interner *StringInterner
	root     NodeId
}

func newArena() *Arena {
	return &Arena{interner: newStringInterner()}
}

// newNode appends a fresh record with no children or siblings yet and
// returns its id.
func (a *Arena) newNode(name StrSym, attrs []parser.AttributeValue, parent NodeId) NodeId {
	id := NodeId(len(a.nodes))
	a.nodes = append(a.nodes, NodeRecord{
		Name:        name,
		Attributes:  attrs,
		Parent:      parent,
		FirstChild:  NoNode,
		LastChild:   NoNode,
		NextSibling: NoNode,
		PrevSibling: NoNode,
	})
	return id
}

// appendChild links child as the new last child of parent in O(1), using
// the parent's LastChild pointer rather than walking the sibling list.
func (a *Arena) appendChild(parent, child NodeId) {
	p := &a.nodes[parent]
	if p.LastChild == NoNode {
		p.FirstChild = child
	} else {
		a.nodes[p.LastChild].NextSibling = child
		a.nodes[child].PrevSibling = p.LastChild
	}
	p.LastChild = child
}

// Root returns the id of the synthetic root node (empty name, no
// attributes) that owns every top-level record as a child.
func (a *Arena) Root() NodeId { return a.root }

// Node returns the record for id. Callers must not hold it past the
// Arena's lifetime; the record itself never changes after Build returns.
func (a *Arena) Node(id NodeId) *NodeRecord {
	return &a.nodes[id]
}

// FindTopLevel returns the first child of the root node with the given
// name, or ok=false if none exists.
func (a *Arena) FindTopLevel(name string) (NodeId, bool) {
	return a.ChildByName(a.root, name)
}

// ChildByName returns the first child of id whose interned name equals
// name, or ok=false if none exists.
func (a *Arena) ChildByName(id NodeId, name string) (NodeId, bool) {
	sym, ok := a.interner.byStr[name]
	if !ok {
		return NoNode, false
	}
	for c := a.nodes[id].FirstChild; c != NoNode; c = a.nodes[c].NextSibling {
		if a.nodes[c].Name == sym {
			return c, true
		}
	}
	return NoNode, false
}

// ChildrenByName returns every direct child of id whose interned name
// equals name, in document order.
func (a *Arena) ChildrenByName(id NodeId, name string) []NodeId {
	sym, ok := a.interner.byStr[name]
	if !ok {
		return nil
	}
	var out []NodeId
	for c := a.nodes[id].FirstChild; c != NoNode; c = a.nodes[c].NextSibling {
		if a.nodes[c].Name == sym {
			out = append(out, c)
		}
	}
	return out
}

// Children returns every direct child of id, in document order, regardless
// of name.
func (a *Arena) Children(id NodeId) []NodeId {
	var out []NodeId
	for c := a.nodes[id].FirstChild; c != NoNode; c = a.nodes[c].NextSibling {
		out = append(out, c)
	}
	return out
}

// FirstNodeByPath walks ChildByName repeatedly, taking the first match at
// each level, and returns ok=false as soon as any step finds nothing.
func (a *Arena) FirstNodeByPath(id NodeId, path []string) (NodeId, bool) {
	cur := id
	for _, component := range path {
		next, ok := a.ChildByName(cur, component)
		if !ok {
			return NoNode, false
		}
		cur = next
	}
	return cur, true
}

// String returns the bytes sym was interned from.
func (a *Arena) String(sym StrSym) (string, bool) {
	return a.interner.String(sym)
}

// Sym interns name if necessary and returns its symbol.
func (a *Arena) Sym(name string) StrSym {
	return a.interner.Sym(name)
}

// NodeCount returns the total number of records in the arena, including the
// synthetic root.
func (a *Arena) NodeCount() int { return len(a.nodes) }
