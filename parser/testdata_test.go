package parser

import (
	"bytes"
	"encoding/binary"
)

// fieldWidth returns the byte width of a record length field for the given
// wideness: version 7500+ widens 32-bit fields to 64-bit.
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

func nullRecordBytes(wide bool) []byte {
	var buf bytes.Buffer
	writeLenField(&buf, wide, 0)
	writeLenField(&buf, wide, 0)
	writeLenField(&buf, wide, 0)
	buf.WriteByte(0)
	return buf.Bytes()
}

func boolAttrBytes(v byte) []byte { return []byte{'C', v} }

func i32AttrBytes(v int32) []byte {
	out := make([]byte, 5)
	out[0] = 'I'
	binary.LittleEndian.PutUint32(out[1:], uint32(v))
	return out
}

func stringAttrBytes(s string) []byte {
	out := make([]byte, 5+len(s))
	out[0] = 'S'
	binary.LittleEndian.PutUint32(out[1:5], uint32(len(s)))
	copy(out[5:], s)
	return out
}

// leafNode renders a single childless node record at absolute file offset
// startPos: a header (end_offset/num_attrs/attrs_bytelen/name) followed by
// its raw attribute bytes. No null terminator, since it has no children.
func leafNode(wide bool, startPos int64, name string, attrBytes []byte) []byte {
	headerLen := int64(3*fieldWidth(wide) + 1 + len(name))
	total := startPos + headerLen + int64(len(attrBytes))

	var out bytes.Buffer
	writeLenField(&out, wide, total)
	writeLenField(&out, wide, int64(countAttrs(attrBytes)))
	writeLenField(&out, wide, int64(len(attrBytes)))
	out.WriteByte(byte(len(name)))
	out.WriteString(name)
	out.Write(attrBytes)
	return out.Bytes()
}

// countAttrs gives leafNode its declared attribute count: zero for empty
// attrBytes, otherwise one. It does not parse attrBytes, so a caller passing
// the bytes of several attributes still gets a count of one.
func countAttrs(attrBytes []byte) int {
	if len(attrBytes) == 0 {
		return 0
	}
	return 1
}

// buildMagicAndVersion returns the 25-byte magic+version prefix.
func buildMagicAndVersion(version int) []byte {
	var buf bytes.Buffer
	buf.Write(MagicHeader)
	var v [2]byte
	binary.LittleEndian.PutUint16(v[:], uint16(version))
	buf.Write(v[:])
	return buf.Bytes()
}

// buildFooter renders the footer section: key, repeated version, padding,
// and the closing magic tail.
func buildFooter(version int) []byte {
	var buf bytes.Buffer
	buf.Write(make([]byte, footerKeyLen))
	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], uint32(version))
	buf.Write(v[:])
	buf.Write(make([]byte, footerPaddingLen))
	buf.Write(FooterMagic)
	return buf.Bytes()
}
