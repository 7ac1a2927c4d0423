package core

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// The constants and helpers below re-derive just enough of the binary
// layout parser_test.go already exercises in detail, scoped to what core's
// own tests need to build small node trees by hand.

const (
	fixtureFooterKeyLen     = 16
	fixtureFooterPaddingLen = 120
	fixtureWideThreshold    = 7500
)

func isWide(version int) bool { return version >= fixtureWideThreshold }

func fixtureFieldWidth(wide bool) int {
	if wide {
		return 8
	}
	return 4
}

func writeFixtureLenField(buf *bytes.Buffer, wide bool, v int64) {
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

func fixtureNullRecord(wide bool) []byte {
	var buf bytes.Buffer
	writeFixtureLenField(&buf, wide, 0)
	writeFixtureLenField(&buf, wide, 0)
	writeFixtureLenField(&buf, wide, 0)
	buf.WriteByte(0)
	return buf.Bytes()
}

// leafNodeFor renders a single childless node record starting at the
// absolute file offset startPos, with exactly one attribute's worth of
// bytes if attrBytes is non-nil, or zero attributes if it is nil.
func leafNodeFor(t *testing.T, wide bool, startPos int64, name string, attrBytes []byte) []byte {
	t.Helper()
	numAttrs := int64(0)
	if len(attrBytes) > 0 {
		numAttrs = 1
	}
	headerLen := int64(3*fixtureFieldWidth(wide) + 1 + len(name))
	total := startPos + headerLen + int64(len(attrBytes))

	var out bytes.Buffer
	writeFixtureLenField(&out, wide, total)
	writeFixtureLenField(&out, wide, numAttrs)
	writeFixtureLenField(&out, wide, int64(len(attrBytes)))
	out.WriteByte(byte(len(name)))
	out.WriteString(name)
	out.Write(attrBytes)
	return out.Bytes()
}

// wrapperNodeFor renders a node with exactly one already-rendered child
// (child must have been rendered assuming it starts immediately after this
// node's header, i.e. at startPos+headerLen), attaching the required null
// terminator and computing end_offset to match.
func wrapperNodeFor(t *testing.T, wide bool, startPos int64, name string, child []byte) []byte {
	t.Helper()
	headerLen := int64(3*fixtureFieldWidth(wide) + 1 + len(name))
	childStart := startPos + headerLen
	if len(child) == 0 {
		t.Fatalf("wrapperNodeFor: child must be non-empty")
	}
	null := fixtureNullRecord(wide)
	total := childStart + int64(len(child)) + int64(len(null))

	var out bytes.Buffer
	writeFixtureLenField(&out, wide, total)
	writeFixtureLenField(&out, wide, 0)
	writeFixtureLenField(&out, wide, 0)
	out.WriteByte(byte(len(name)))
	out.WriteString(name)
	out.Write(child)
	out.Write(null)
	return out.Bytes()
}

func assembleTestStream(version int, topLevel []byte) []byte {
	var buf bytes.Buffer
	buf.Write(testMagicAndVersion(version))
	buf.Write(topLevel)
	buf.Write(fixtureNullRecord(isWide(version)))
	buf.Write(testFooter(version))
	return buf.Bytes()
}

func testMagicAndVersion(version int) []byte {
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

func testFooter(version int) []byte {
	var buf bytes.Buffer
	buf.Write(make([]byte, fixtureFooterKeyLen))
	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], uint32(version))
	buf.Write(v[:])
	buf.Write(make([]byte, fixtureFooterPaddingLen))
	buf.Write([]byte{
		0xf8, 0x5a, 0x8c, 0x6a, 0xde, 0xf5, 0xd9, 0x7e,
		0xec, 0xe9, 0x0c, 0xe3, 0x75, 0x8f, 0x29, 0x0b,
	})
	return buf.Bytes()
}
