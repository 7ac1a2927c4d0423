// Package parser implements a pull-cursor over the binary FBX 7.4 node tree:
// a forward-only sequence of StartNode/EndNode/EndFbx events, with attribute
// decoding driven by the caller rather than eagerly materialized.
package parser

import (
	"github.com/kaydara/fbxbin/fbxerr"
	"github.com/kaydara/fbxbin/source"
)

// Event is the kind of the most recent Advance result.
type Event int

const (
	EventStartNode Event = iota
	EventEndNode
	EventEndFbx
)

func (e Event) String() string {
	switch e {
	case EventStartNode:
		return "StartNode"
	case EventEndNode:
		return "EndNode"
	case EventEndFbx:
		return "EndFbx"
	default:
		return "Unknown"
	}
}

// NodeInfo describes the node a StartNode event just opened.
type NodeInfo struct {
	Name          string
	NumAttributes int64
}

// frame tracks one open node context: where its record ends, so a childless
// node's end can be detected and the null record closing a child list can be
// validated against it.
type frame struct {
	endOffset int64
}

// Parser is a forward-only cursor over a binary FBX stream. It is not safe
// for concurrent use.
type Parser struct {
	src     source.Source
	sink    fbxerr.Sink
	version int
	wide    bool

	stack []frame

	// current holds the node just opened by the most recent StartNode.
	current NodeInfo
	// attrsRemaining is how many of current's attributes have not yet been
	// decoded by the caller.
	attrsRemaining int64
	// pendingAttrsEnd is the byte offset right after the last declared
	// attribute of the most recently started node, or -1 if there is
	// nothing pending. Advance skips to it before doing anything else when
	// the caller left attributes undrained; Attributes and DecodeAttributes
	// reset it to -1 once they have drained them.
	pendingAttrsEnd int64

	done bool
	err  error
}

// FromSource builds a Parser over src, validating the magic header and
// version. sink receives recoverable warnings; it may be nil.
func FromSource(src source.Source, sink fbxerr.Sink) (*Parser, error) {
	version, err := readMagicAndVersion(src)
	if err != nil {
		return nil, err
	}
	return &Parser{
		src:             src,
		sink:            sink,
		version:         version,
		wide:            version >= versionWidthThreshold,
		pendingAttrsEnd: -1,
	}, nil
}

// Version returns the file's declared version (e.g. 7400).
func (p *Parser) Version() int { return p.version }

// Current returns the NodeInfo of the node most recently opened by
// StartNode. Calling it after any other event is a programming error.
func (p *Parser) Current() NodeInfo { return p.current }

// Advance consumes the next event from the stream. Once it returns a
// non-nil error, every subsequent call returns that same error: any
// decode failure is terminal.
func (p *Parser) Advance() (Event, error) {
	if p.err != nil {
		return EventEndFbx, p.err
	}
	if p.done {
		return EventEndFbx, nil
	}

	if err := p.skipPendingAttributes(); err != nil {
		return p.fail(err)
	}

	if len(p.stack) == 0 {
		return p.advanceTopLevel()
	}
	return p.advanceWithinNode()
}

// advanceTopLevel reads the next record at depth 0, i.e. either another
// top-level node or the null record that ends the top-level sibling list and
// hands off to the footer.
func (p *Parser) advanceTopLevel() (Event, error) {
	rh, err := readRecordHeader(p.src, p.wide)
	if err != nil {
		return p.fail(err)
	}
	if rh.isNull {
		p.done = true
		if _, ferr := readFooter(p.src, p.version, p.sink); ferr != nil {
			return p.fail(ferr)
		}
		return EventEndFbx, nil
	}
	return p.openNode(rh)
}

// advanceWithinNode reads the next record inside the currently open node's
// sibling list, or closes the node. A node with no children carries no null
// record at all: its attribute block simply runs up to end_offset, so the
// position check below must come before attempting to read another record
// header.
func (p *Parser) advanceWithinNode() (Event, error) {
	top := p.stack[len(p.stack)-1]

	if p.src.Position() == top.endOffset {
		p.stack = p.stack[:len(p.stack)-1]
		return EventEndNode, nil
	}

	rh, err := readRecordHeader(p.src, p.wide)
	if err != nil {
		return p.fail(err)
	}
	if rh.isNull {
		if err := validateNullRecord(p.src, top.endOffset); err != nil {
			return p.fail(err)
		}
		p.stack = p.stack[:len(p.stack)-1]
		return EventEndNode, nil
	}
	return p.openNode(rh)
}

// openNode pushes a frame for rh and reports it as a StartNode event,
// leaving its attributes undrained for the caller to consume via Attributes
// or DecodeAttributes.
func (p *Parser) openNode(rh recordHeader) (Event, error) {
	if rh.name == "" {
		fbxerr.Emit(p.sink, fbxerr.NewWarning(fbxerr.WarningLevelWarning, fbxerr.WarnEmptyNodeName,
			"node record has an empty name").AtPosition(p.src.Position()))
	}
	p.stack = append(p.stack, frame{endOffset: rh.endOffset})
	p.current = NodeInfo{Name: rh.name, NumAttributes: rh.numAttributes}
	p.attrsRemaining = rh.numAttributes
	p.pendingAttrsEnd = p.src.Position() + rh.attributesByteLen
	return EventStartNode, nil
}

// skipPendingAttributes discards whatever attribute bytes the caller left
// undrained on the current node, idempotently.
func (p *Parser) skipPendingAttributes() error {
	if p.pendingAttrsEnd < 0 {
		return nil
	}
	target := p.pendingAttrsEnd
	p.pendingAttrsEnd = -1
	p.attrsRemaining = 0
	if p.src.Position() == target {
		return nil
	}
	if err := p.src.SkipTo(target); err != nil {
		return fbxerr.Wrap(fbxerr.Critical, fbxerr.LayerParser, fbxerr.CodeIoError,
			"skipping undrained attributes", err).AtPosition(p.src.Position())
	}
	return nil
}

func (p *Parser) fail(err error) (Event, error) {
	p.err = err
	return EventEndFbx, err
}

// Attributes drives v across every attribute of the node most recently
// opened by StartNode, in declaration order. It is a programming error to
// call it after any event other than StartNode, or more than once per node.
func (p *Parser) Attributes(v AttributeVisitor) error {
	for p.attrsRemaining > 0 {
		if err := decodeOneAttribute(p.src, v, p.sink); err != nil {
			p.err = err
			return err
		}
		p.attrsRemaining--
	}
	p.pendingAttrsEnd = -1
	return nil
}

// DecodeAttributes eagerly decodes every attribute of the node most recently
// opened by StartNode into a slice, using collectingVisitor to layer eager
// decoding over the same dispatch Attributes uses.
func (p *Parser) DecodeAttributes() ([]AttributeValue, error) {
	want := p.current.NumAttributes
	out := make([]AttributeValue, 0, want)
	for p.attrsRemaining > 0 {
		var cv collectingVisitor
		if err := decodeOneAttribute(p.src, &cv, p.sink); err != nil {
			p.err = err
			return nil, err
		}
		out = append(out, cv.value)
		p.attrsRemaining--
	}
	p.pendingAttrsEnd = -1
	if int64(len(out)) != want {
		err := fbxerr.Newf(fbxerr.Critical, fbxerr.LayerParser, fbxerr.CodeAttributeCountMismatch,
			"decoded %d attributes, node declared %d", len(out), want).AtPosition(p.src.Position())
		p.err = err
		return nil, err
	}
	return out, nil
}

// SkipAttributes discards the current node's remaining attributes without
// decoding them. Advance also does this automatically for attributes the
// caller never touches, so calling it explicitly is optional.
func (p *Parser) SkipAttributes() error {
	return p.skipPendingAttributes()
}

// Depth returns how many nodes are currently open, for callers that want to
// track nesting without maintaining their own stack.
func (p *Parser) Depth() int { return len(p.stack) }
