package parser

// MagicHeader is the fixed 23-byte sequence identifying binary FBX:
// "Kaydara FBX Binary  " followed by 0x00 0x1a 0x00.
var MagicHeader = []byte{
	'K', 'a', 'y', 'd', 'a', 'r', 'a', ' ', 'F', 'B', 'X', ' ', 'B', 'i', 'n', 'a', 'r', 'y', ' ', ' ',
	0x00, 0x1a, 0x00,
}

// FooterMagic is the 16-byte magic tail that closes the footer section.
var FooterMagic = []byte{
	0xf8, 0x5a, 0x8c, 0x6a, 0xde, 0xf5, 0xd9, 0x7e,
	0xec, 0xe9, 0x0c, 0xe3, 0x75, 0x8f, 0x29, 0x0b,
}

// footerKeyLen is the length of the footer's leading opaque key field.
const footerKeyLen = 16

// footerPaddingLen is the length of the zero-filled padding region between
// the repeated version field and the closing FooterMagic tail. 120 bytes
// matches every real-world FBX 7.x footer this reader has been checked
// against, so readFooter treats a mismatch there as a warning rather than
// a hard error.
const footerPaddingLen = 120

// versionWidthThreshold is the version at and above which node-record length
// fields widen from 32-bit to 64-bit.
const versionWidthThreshold = 7500

// minSupportedVersion / maxSupportedVersion bound the accepted 7.x family.
const (
	minSupportedVersion = 7000
	maxSupportedVersion = 7999
)
