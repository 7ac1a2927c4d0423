package parser

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"

	"github.com/kaydara/fbxbin/fbxerr"
	"github.com/kaydara/fbxbin/source"
)

// decodeBool interprets the single payload byte of a 'C' attribute. The
// canonical encoding is b'T'/b'Y'; 0x01/0x00 are tolerated with a warning;
// any other byte is a hard error.
func decodeBool(b byte) (value bool, tolerated bool, ok bool) {
	switch b {
	case 'T':
		return true, false, true
	case 'Y':
		return false, false, true
	case 0x01:
		return true, true, true
	case 0x00:
		return false, true, true
	default:
		return false, false, false
	}
}

// decodeOneAttribute reads one attribute (a 1-byte type code plus its
// payload) from src and dispatches the decoded value to v. pos0 is the
// attribute's starting position, used for error/warning context and to
// stamp a position onto any error the visitor itself returns.
func decodeOneAttribute(src source.Source, v AttributeVisitor, sink fbxerr.Sink) error {
	pos0 := src.Position()

	typeBuf := make([]byte, 1)
	if err := readFull(src, typeBuf); err != nil {
		return err
	}
	code := typeBuf[0]
	if _, recognized := typeCodeToType[code]; !recognized {
		return fbxerr.Newf(fbxerr.Critical, fbxerr.LayerParser, fbxerr.CodeInvalidAttributeTypeCode,
			"unrecognized attribute type code 0x%02x", code).AtPosition(pos0)
	}

	var err error
	switch code {
	case 'C':
		buf := make([]byte, 1)
		if rerr := readFull(src, buf); rerr != nil {
			return rerr
		}
		value, tolerated, ok := decodeBool(buf[0])
		if !ok {
			return fbxerr.Newf(fbxerr.Critical, fbxerr.LayerParser, fbxerr.CodeInvalidBoolean,
				"invalid boolean byte 0x%02x", buf[0]).AtPosition(pos0)
		}
		if tolerated {
			fbxerr.Emit(sink, fbxerr.NewWarningf(fbxerr.WarningLevelWarning, fbxerr.WarnIncorrectBooleanRepresentation,
				"boolean attribute encoded as 0x%02x instead of T/Y", buf[0]).AtPosition(pos0))
		}
		err = v.VisitBool(value)

	case 'Y':
		buf := make([]byte, 2)
		if rerr := readFull(src, buf); rerr != nil {
			return rerr
		}
		err = v.VisitI16(int16(binary.LittleEndian.Uint16(buf)))

	case 'I':
		buf := make([]byte, 4)
		if rerr := readFull(src, buf); rerr != nil {
			return rerr
		}
		err = v.VisitI32(int32(binary.LittleEndian.Uint32(buf)))

	case 'L':
		buf := make([]byte, 8)
		if rerr := readFull(src, buf); rerr != nil {
			return rerr
		}
		err = v.VisitI64(int64(binary.LittleEndian.Uint64(buf)))

	case 'F':
		buf := make([]byte, 4)
		if rerr := readFull(src, buf); rerr != nil {
			return rerr
		}
		err = v.VisitF32(math.Float32frombits(binary.LittleEndian.Uint32(buf)))

	case 'D':
		buf := make([]byte, 8)
		if rerr := readFull(src, buf); rerr != nil {
			return rerr
		}
		err = v.VisitF64(math.Float64frombits(binary.LittleEndian.Uint64(buf)))

	case 'b', 'i', 'l', 'f', 'd':
		err = decodeArrayAttribute(src, code, v, pos0)

	case 'S':
		err = decodeSpecialAttribute(src, false, v, sink, pos0)

	case 'R':
		err = decodeSpecialAttribute(src, true, v, sink, pos0)

	default:
		panic("unreachable: code validated against typeCodeToType above")
	}
	return attachPosition(err, pos0)
}

// attachPosition stamps pos onto err if err is an *fbxerr.Error with no
// position yet, covering TypeMismatch and other errors a caller-supplied
// visitor returns directly rather than through this file's own decode
// helpers, which already attach one. Any other error, including nil, is
// returned unchanged.
func attachPosition(err error, pos int64) error {
	if err == nil {
		return nil
	}
	if fe, ok := fbxerr.AsError(err); ok && fe.Position < 0 {
		return fe.AtPosition(pos)
	}
	return err
}

// decodeSpecialAttribute reads an 'S' (string) or 'R' (binary) attribute:
// a {bytelen: u32} header followed by that many bytes.
func decodeSpecialAttribute(src source.Source, isBinary bool, v AttributeVisitor, sink fbxerr.Sink, pos0 int64) error {
	lenBuf := make([]byte, 4)
	if err := readFull(src, lenBuf); err != nil {
		return err
	}
	n := binary.LittleEndian.Uint32(lenBuf)
	payload := make([]byte, n)
	if err := readFull(src, payload); err != nil {
		return err
	}
	if isBinary {
		return v.VisitBinary(payload)
	}
	if utf8.Valid(payload) {
		return v.VisitString(string(payload), true, nil)
	}
	fbxerr.Emit(sink, fbxerr.NewWarning(fbxerr.WarningLevelWarning, fbxerr.WarnInvalidUTF8String,
		"string attribute is not valid UTF-8, carried as bytes").AtPosition(pos0))
	return v.VisitString("", false, payload)
}

// decodeArrayAttribute reads an array attribute's {array_length, encoding,
// compressed_bytelen} header, its body, inflates it if encoding=1, and
// dispatches the typed element slice to v.
func decodeArrayAttribute(src source.Source, code byte, v AttributeVisitor, pos0 int64) error {
	hdr := make([]byte, 12)
	if err := readFull(src, hdr); err != nil {
		return err
	}
	arrayLen := binary.LittleEndian.Uint32(hdr[0:4])
	encoding := binary.LittleEndian.Uint32(hdr[4:8])
	compressedLen := binary.LittleEndian.Uint32(hdr[8:12])

	body := make([]byte, compressedLen)
	if err := readFull(src, body); err != nil {
		return err
	}

	elemSize := arrayElementSize(code)

	var raw []byte
	switch encoding {
	case 0:
		raw = body
	case 1:
		inflated, err := inflateZlib(body, int(arrayLen)*elemSize)
		if err != nil {
			return fbxerr.Wrap(fbxerr.Critical, fbxerr.LayerParser, fbxerr.CodeDecompressionFailure,
				"inflating compressed array", err).AtPosition(pos0)
		}
		raw = inflated
	default:
		return fbxerr.Newf(fbxerr.Critical, fbxerr.LayerParser, fbxerr.CodeInvalidArrayEncoding,
			"invalid array encoding %d", encoding).AtPosition(pos0)
	}

	wantLen := int(arrayLen) * elemSize
	if len(raw) != wantLen {
		return fbxerr.Newf(fbxerr.Critical, fbxerr.LayerParser, fbxerr.CodeDecompressionFailure,
			"array body is %d bytes, want %d (length %d, element size %d)", len(raw), wantLen, arrayLen, elemSize).AtPosition(pos0)
	}

	switch code {
	case 'b':
		out := make([]bool, arrayLen)
		for i := range out {
			out[i] = raw[i] != 0
		}
		return v.VisitArrBool(newArrayIter(out))
	case 'i':
		out := make([]int32, arrayLen)
		for i := range out {
			out[i] = int32(binary.LittleEndian.Uint32(raw[i*4 : i*4+4]))
		}
		return v.VisitArrI32(newArrayIter(out))
	case 'l':
		out := make([]int64, arrayLen)
		for i := range out {
			out[i] = int64(binary.LittleEndian.Uint64(raw[i*8 : i*8+8]))
		}
		return v.VisitArrI64(newArrayIter(out))
	case 'f':
		out := make([]float32, arrayLen)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4 : i*4+4]))
		}
		return v.VisitArrF32(newArrayIter(out))
	case 'd':
		out := make([]float64, arrayLen)
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8 : i*8+8]))
		}
		return v.VisitArrF64(newArrayIter(out))
	default:
		panic("unreachable array type code")
	}
}

func arrayElementSize(code byte) int {
	switch code {
	case 'b':
		return 1
	case 'i', 'f':
		return 4
	case 'l', 'd':
		return 8
	default:
		panic("unreachable array type code")
	}
}

// inflateZlib inflates a zlib-wrapped deflate stream (array encoding=1)
// and verifies the output is exactly wantLen bytes.
func inflateZlib(compressed []byte, wantLen int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out := make([]byte, wantLen)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	// Confirm there is no trailing data beyond wantLen, which would mean
	// array_length understated the true inflated size.
	var extra [1]byte
	if n, _ := r.Read(extra[:]); n > 0 {
		return nil, io.ErrUnexpectedEOF
	}
	return out, nil
}
