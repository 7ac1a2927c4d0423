package parser

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/kaydara/fbxbin/fbxerr"
	"github.com/kaydara/fbxbin/source"
)

// readMagicAndVersion consumes the 23-byte magic header and the 2-byte
// version field and returns major*1000+minor.
func readMagicAndVersion(src source.Source) (int, error) {
	buf := make([]byte, len(MagicHeader)+2)
	if err := readFull(src, buf); err != nil {
		return 0, err
	}
	if !bytes.Equal(buf[:len(MagicHeader)], MagicHeader) {
		return 0, fbxerr.ErrInvalidMagic.AtPosition(0)
	}
	version := int(binary.LittleEndian.Uint16(buf[len(MagicHeader):]))
	if version < minSupportedVersion || version > maxSupportedVersion {
		return 0, fbxerr.Newf(fbxerr.Critical, fbxerr.LayerParser, fbxerr.CodeUnsupportedVersion,
			"fbx version %d is outside the supported 7000-7999 range", version).AtPosition(int64(len(MagicHeader)))
	}
	return version, nil
}

// readFull fills buf entirely from src, translating a short read into
// UnexpectedEof rather than leaking a raw io error.
func readFull(src source.Source, buf []byte) error {
	read := 0
	for read < len(buf) {
		n, err := src.Read(buf[read:])
		read += n
		if err != nil {
			if read == len(buf) {
				break
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fbxerr.ErrUnexpectedEof.AtPosition(src.Position())
			}
			return fbxerr.Wrap(fbxerr.Critical, fbxerr.LayerParser, fbxerr.CodeIoError,
				fmt.Sprintf("reading %d bytes", len(buf)), err).AtPosition(src.Position())
		}
	}
	return nil
}
