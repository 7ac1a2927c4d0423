// Package fbxerr provides the structured error and warning types shared by
// the parser and DOM loader.
package fbxerr

import (
	"fmt"
)

// Code identifies the category of an Error, independent of its Severity.
type Code string

const (
	// Parser codes.
	CodeIoError                  Code = "IO_ERROR"
	CodeUnexpectedEof            Code = "UNEXPECTED_EOF"
	CodeInvalidMagic             Code = "INVALID_MAGIC"
	CodeUnsupportedVersion       Code = "UNSUPPORTED_VERSION"
	CodeNodeLengthMismatch       Code = "NODE_LENGTH_MISMATCH"
	CodeInvalidAttributeTypeCode Code = "INVALID_ATTRIBUTE_TYPE_CODE"
	CodeInvalidBoolean           Code = "INVALID_BOOLEAN"
	CodeInvalidArrayEncoding     Code = "INVALID_ARRAY_ENCODING"
	CodeDecompressionFailure     Code = "DECOMPRESSION_FAILURE"
	CodeInvalidUtf8              Code = "INVALID_UTF8"
	CodeAttributeCountMismatch   Code = "ATTRIBUTE_COUNT_MISMATCH"
	CodeUnexpectedAttribute      Code = "UNEXPECTED_ATTRIBUTE"
	CodeFooterMismatch           Code = "FOOTER_MISMATCH"
	CodeFooterVersionMismatch    Code = "FOOTER_VERSION_MISMATCH"

	// Loader codes.
	CodeNodeNotFound          Code = "NODE_NOT_FOUND"
	CodeMissingAttribute      Code = "MISSING_ATTRIBUTE"
	CodeAttributeTypeMismatch Code = "ATTRIBUTE_TYPE_MISMATCH"
	CodeInvalidObjectID       Code = "INVALID_OBJECT_IDENTIFIER"
	CodeDuplicateObjectID     Code = "DUPLICATE_OBJECT_ID"
	CodeDuplicateConnection   Code = "DUPLICATE_CONNECTION"
	CodeUnexpectedSubclass    Code = "UNEXPECTED_SUBCLASS"
	CodeMalformedClassName    Code = "MALFORMED_CLASS_NAME"
)

// Severity distinguishes errors that always abort the load from ones that
// are tolerated (and merely warned about) in non-strict mode.
type Severity string

const (
	Critical    Severity = "critical"
	NonCritical Severity = "non-critical"
)

// Layer names which component raised the error, for attaching context.
type Layer string

const (
	LayerParser Layer = "parser"
	LayerDOM    Layer = "dom"
)

// Error is the structured error type returned by this module's parser and
// DOM loader. Code and Severity are carried separately so that callers can
// branch on either axis without string matching.
type Error struct {
	Code     Code
	Severity Severity
	Layer    Layer
	Message  string
	// NodeID is the offending node, meaningful only when HasNodeID is true.
	// NodeID 0 is a real node id (the arena's root), so a zero NodeID on
	// its own does not mean "unknown".
	HasNodeID bool
	NodeID    uint32
	// Position is the byte offset in the source at the time of failure, or
	// -1 when not known.
	Position int64
	Cause    error
}

func (e *Error) Error() string {
	loc := ""
	if e.HasNodeID {
		loc = fmt.Sprintf(" node=%d", e.NodeID)
	}
	if e.Position >= 0 {
		loc += fmt.Sprintf(" pos=%d", e.Position)
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s/%s]%s %s: %v", e.Layer, e.Code, loc, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s/%s]%s %s", e.Layer, e.Code, loc, e.Message)
}

// Unwrap supports errors.Is/As against the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches another *Error by Code, ignoring message, position and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// AtPosition returns a copy of e with Position set, for attaching source
// position at the layer that has it, rather than the layer that originated
// the underlying cause.
func (e *Error) AtPosition(pos int64) *Error {
	cp := *e
	cp.Position = pos
	return &cp
}

// AtNode returns a copy of e with HasNodeID/NodeID set.
func (e *Error) AtNode(id uint32) *Error {
	cp := *e
	cp.HasNodeID = true
	cp.NodeID = id
	return &cp
}

// New creates an Error with no position or node context attached yet.
func New(severity Severity, layer Layer, code Code, message string) *Error {
	return &Error{Severity: severity, Layer: layer, Code: code, Message: message, Position: -1}
}

// Newf is New with a formatted message.
func Newf(severity Severity, layer Layer, code Code, format string, args ...interface{}) *Error {
	return New(severity, layer, code, fmt.Sprintf(format, args...))
}

// Wrap wraps cause in an Error, preserving errors.Is/As access to it.
func Wrap(severity Severity, layer Layer, code Code, message string, cause error) *Error {
	e := New(severity, layer, code, message)
	e.Cause = cause
	return e
}

// Sentinel errors for use with errors.Is(). These carry no position/node
// context; callers comparing against them only care about Code.
var (
	ErrInvalidMagic             = New(Critical, LayerParser, CodeInvalidMagic, "invalid magic header")
	ErrUnsupportedVersion       = New(Critical, LayerParser, CodeUnsupportedVersion, "unsupported FBX version")
	ErrUnexpectedEof            = New(Critical, LayerParser, CodeUnexpectedEof, "unexpected end of input")
	ErrNodeLengthMismatch       = New(Critical, LayerParser, CodeNodeLengthMismatch, "node record length mismatch")
	ErrInvalidAttributeTypeCode = New(Critical, LayerParser, CodeInvalidAttributeTypeCode, "invalid attribute type code")
	ErrInvalidBoolean           = New(Critical, LayerParser, CodeInvalidBoolean, "invalid boolean byte")
	ErrInvalidArrayEncoding     = New(Critical, LayerParser, CodeInvalidArrayEncoding, "invalid array encoding")
	ErrDecompressionFailure     = New(Critical, LayerParser, CodeDecompressionFailure, "array decompression failed")
	ErrAttributeCountMismatch   = New(Critical, LayerParser, CodeAttributeCountMismatch, "attribute count mismatch")
	ErrUnexpectedAttribute      = New(Critical, LayerParser, CodeUnexpectedAttribute, "unexpected attribute type")
	ErrFooterMismatch           = New(NonCritical, LayerParser, CodeFooterMismatch, "footer mismatch")
	ErrFooterVersionMismatch    = New(Critical, LayerParser, CodeFooterVersionMismatch, "footer version mismatch")

	ErrNodeNotFound          = New(NonCritical, LayerDOM, CodeNodeNotFound, "node not found")
	ErrMissingAttribute      = New(NonCritical, LayerDOM, CodeMissingAttribute, "missing attribute")
	ErrAttributeTypeMismatch = New(NonCritical, LayerDOM, CodeAttributeTypeMismatch, "attribute type mismatch")
	ErrInvalidObjectID       = New(NonCritical, LayerDOM, CodeInvalidObjectID, "invalid object identifier")
	ErrDuplicateObjectID     = New(NonCritical, LayerDOM, CodeDuplicateObjectID, "duplicate object id")
	ErrDuplicateConnection   = New(NonCritical, LayerDOM, CodeDuplicateConnection, "duplicate connection")
	ErrUnexpectedSubclass    = New(NonCritical, LayerDOM, CodeUnexpectedSubclass, "unexpected subclass")
	ErrMalformedClassName    = New(NonCritical, LayerDOM, CodeMalformedClassName, "malformed class/subclass name")
)

// AsError reports whether err is itself an *Error and returns it. It does
// not unwrap: an *Error wrapped by another error is not found.
func AsError(err error) (*Error, bool) {
	if e, ok := err.(*Error); ok {
		return e, true
	}
	return nil, false
}

// IsCritical reports whether err, if an *Error, is Critical. A non-*Error
// (e.g. a raw I/O error bubbling up) is always treated as critical.
func IsCritical(err error) bool {
	if e, ok := AsError(err); ok {
		return e.Severity == Critical
	}
	return err != nil
}
