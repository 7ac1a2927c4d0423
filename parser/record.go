package parser

import (
	"encoding/binary"

	"github.com/kaydara/fbxbin/fbxerr"
	"github.com/kaydara/fbxbin/source"
)

// recordHeader is the decoded fixed-layout prefix of a node record, before
// its name and attribute block.
type recordHeader struct {
	endOffset         int64
	numAttributes     int64
	attributesByteLen int64
	name              string
	isNull            bool
}

// readRecordLengthField reads either a 32-bit or 64-bit little-endian
// unsigned length field depending on the file's version.
func readRecordLengthField(src source.Source, wide bool) (int64, error) {
	if wide {
		buf := make([]byte, 8)
		if err := readFull(src, buf); err != nil {
			return 0, err
		}
		return int64(binary.LittleEndian.Uint64(buf)), nil
	}
	buf := make([]byte, 4)
	if err := readFull(src, buf); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint32(buf)), nil
}

// readRecordHeader reads one node record's fixed header fields and its name.
// A record whose three length fields are all zero and whose name is empty
// is the null record that terminates a sibling list.
func readRecordHeader(src source.Source, wide bool) (recordHeader, error) {
	var rh recordHeader

	endOffset, err := readRecordLengthField(src, wide)
	if err != nil {
		return rh, err
	}
	numAttrs, err := readRecordLengthField(src, wide)
	if err != nil {
		return rh, err
	}
	attrsLen, err := readRecordLengthField(src, wide)
	if err != nil {
		return rh, err
	}

	nameLenBuf := make([]byte, 1)
	if err := readFull(src, nameLenBuf); err != nil {
		return rh, err
	}
	nameLen := int(nameLenBuf[0])

	var name string
	if nameLen > 0 {
		nameBuf := make([]byte, nameLen)
		if err := readFull(src, nameBuf); err != nil {
			return rh, err
		}
		name = string(nameBuf)
	}

	rh.endOffset = endOffset
	rh.numAttributes = numAttrs
	rh.attributesByteLen = attrsLen
	rh.name = name
	rh.isNull = endOffset == 0 && numAttrs == 0 && attrsLen == 0 && nameLen == 0
	return rh, nil
}

// validateNullRecord reports a node-length mismatch if the source position
// does not sit exactly where a just-closed node's declared end_offset said
// it would.
func validateNullRecord(src source.Source, expectedEnd int64) error {
	pos := src.Position()
	if pos != expectedEnd {
		return fbxerr.Newf(fbxerr.Critical, fbxerr.LayerParser, fbxerr.CodeNodeLengthMismatch,
			"node ended at byte %d, but its end_offset declared %d", pos, expectedEnd).AtPosition(pos)
	}
	return nil
}
