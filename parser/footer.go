package parser

import (
	"bytes"
	"encoding/binary"

	"github.com/kaydara/fbxbin/fbxerr"
	"github.com/kaydara/fbxbin/source"
)

// Footer is the decoded trailer that follows the top-level null record: an
// opaque key, the file version repeated, a padding region, and a closing
// magic sequence.
type Footer struct {
	Key     []byte
	Version int
}

// readFooter reads and validates the footer. Every deviation is reported
// as a warning except a mismatched repeated version, which is a hard
// error.
func readFooter(src source.Source, fileVersion int, sink fbxerr.Sink) (Footer, error) {
	pos0 := src.Position()

	key := make([]byte, footerKeyLen)
	if err := readFull(src, key); err != nil {
		return Footer{}, err
	}

	verBuf := make([]byte, 4)
	if err := readFull(src, verBuf); err != nil {
		return Footer{}, err
	}
	repeated := int(binary.LittleEndian.Uint32(verBuf))
	if repeated != fileVersion {
		return Footer{}, fbxerr.Newf(fbxerr.Critical, fbxerr.LayerParser, fbxerr.CodeFooterVersionMismatch,
			"footer repeats version %d, header declared %d", repeated, fileVersion).AtPosition(pos0)
	}

	padding := make([]byte, footerPaddingLen)
	if err := readFull(src, padding); err != nil {
		return Footer{}, err
	}
	for _, b := range padding {
		if b != 0 {
			fbxerr.Emit(sink, fbxerr.NewWarning(fbxerr.WarningLevelWarning, fbxerr.WarnFooterAnomaly,
				"footer padding region contains non-zero bytes").AtPosition(pos0))
			break
		}
	}

	tail := make([]byte, len(FooterMagic))
	if err := readFull(src, tail); err != nil {
		return Footer{}, err
	}
	if !bytes.Equal(tail, FooterMagic) {
		fbxerr.Emit(sink, fbxerr.NewWarning(fbxerr.WarningLevelWarning, fbxerr.WarnFooterAnomaly,
			"footer magic tail does not match the expected sequence").AtPosition(pos0))
	}

	return Footer{Key: key, Version: repeated}, nil
}
