package core

import "github.com/kaydara/fbxbin/parser"

// Build drains p to end-of-stream in a single depth-first pass, interning
// each node's name and eagerly decoding its attributes, and returns the
// resulting Arena. The root node has an empty name and no attributes.
func Build(p *parser.Parser) (*Arena, error) {
	a := newArena()
	a.root = a.newNode(a.interner.Sym(""), nil, NoNode)

	stack := []NodeId{a.root}
	for {
		ev, err := p.Advance()
		if err != nil {
			return nil, err
		}
		switch ev {
		case parser.EventStartNode:
			info := p.Current()
			attrs, err := p.DecodeAttributes()
			if err != nil {
				return nil, err
			}
			parent := stack[len(stack)-1]
			id := a.newNode(a.interner.Sym(info.Name), attrs, parent)
			a.appendChild(parent, id)
			stack = append(stack, id)
		case parser.EventEndNode:
			stack = stack[:len(stack)-1]
		case parser.EventEndFbx:
			return a, nil
		}
	}
}
