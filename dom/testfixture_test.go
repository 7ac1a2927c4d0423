package dom

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/kaydara/fbxbin/core"
	"github.com/kaydara/fbxbin/parser"
	"github.com/kaydara/fbxbin/source"
)

// nodeSpec describes a node to render into binary FBX bytes for loader
// tests: a name, a list of pre-encoded single-attribute byte blobs, and any
// children, rendered depth-first with absolute end_offsets computed as we
// go (mirroring how a real binary FBX encoder lays nodes out).
type nodeSpec struct {
	name     string
	attrs    [][]byte
	children []nodeSpec
}

func i64AttrBytes(v int64) []byte {
	out := make([]byte, 9)
	out[0] = 'L'
	binary.LittleEndian.PutUint64(out[1:], uint64(v))
	return out
}

func strAttrBytes(s string) []byte {
	out := make([]byte, 5+len(s))
	out[0] = 'S'
	binary.LittleEndian.PutUint32(out[1:5], uint32(len(s)))
	copy(out[5:], s)
	return out
}

func fieldWidth(wide bool) int {
	if wide {
		return 8
	}
	return 4
}

func writeLenField(buf *bytes.Buffer, wide bool, v int64) {
	if wide {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(v))
		buf.Write(b[:])
		return
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(v))
	buf.Write(b[:])
}

func nullRecord(wide bool) []byte {
	var buf bytes.Buffer
	writeLenField(&buf, wide, 0)
	writeLenField(&buf, wide, 0)
	writeLenField(&buf, wide, 0)
	buf.WriteByte(0)
	return buf.Bytes()
}

// renderNode renders spec (and its whole subtree) starting at the absolute
// file offset startPos, returning the complete bytes.
func renderNode(wide bool, startPos int64, spec nodeSpec) []byte {
	var attrBytes bytes.Buffer
	for _, a := range spec.attrs {
		attrBytes.Write(a)
	}
	headerLen := int64(3*fieldWidth(wide) + 1 + len(spec.name))
	pos := startPos + headerLen + int64(attrBytes.Len())

	var body bytes.Buffer
	for _, c := range spec.children {
		rendered := renderNode(wide, pos, c)
		body.Write(rendered)
		pos += int64(len(rendered))
	}
	if len(spec.children) > 0 {
		null := nullRecord(wide)
		body.Write(null)
		pos += int64(len(null))
	}

	var out bytes.Buffer
	writeLenField(&out, wide, pos)
	writeLenField(&out, wide, int64(len(spec.attrs)))
	writeLenField(&out, wide, int64(attrBytes.Len()))
	out.WriteByte(byte(len(spec.name)))
	out.WriteString(spec.name)
	out.Write(attrBytes.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}

func magicAndVersion(version int) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{
		'K', 'a', 'y', 'd', 'a', 'r', 'a', ' ', 'F', 'B', 'X', ' ', 'B', 'i', 'n', 'a', 'r', 'y', ' ', ' ',
		0x00, 0x1a, 0x00,
	})
	var v [2]byte
	binary.LittleEndian.PutUint16(v[:], uint16(version))
	buf.Write(v[:])
	return buf.Bytes()
}

func footer(version int) []byte {
	var buf bytes.Buffer
	buf.Write(make([]byte, 16))
	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], uint32(version))
	buf.Write(v[:])
	buf.Write(make([]byte, 120))
	buf.Write([]byte{
		0xf8, 0x5a, 0x8c, 0x6a, 0xde, 0xf5, 0xd9, 0x7e,
		0xec, 0xe9, 0x0c, 0xe3, 0x75, 0x8f, 0x29, 0x0b,
	})
	return buf.Bytes()
}

// buildDocument renders topLevel node specs into a full binary FBX stream
// and loads a Document from it with the given options.
func buildDocument(t *testing.T, version int, opts Options, topLevel []nodeSpec) (*Document, error) {
	t.Helper()
	wide := version >= 7500

	var buf bytes.Buffer
	buf.Write(magicAndVersion(version))
	pos := int64(buf.Len())
	for _, spec := range topLevel {
		rendered := renderNode(wide, pos, spec)
		buf.Write(rendered)
		pos += int64(len(rendered))
	}
	buf.Write(nullRecord(wide))
	buf.Write(footer(version))

	p, err := parser.FromSource(source.NewPlain(bytes.NewReader(buf.Bytes())), opts.WarningSink)
	if err != nil {
		t.Fatalf("FromSource: %v", err)
	}
	arena, err := core.Build(p)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return NewLoader(opts).LoadArena(arena)
}
