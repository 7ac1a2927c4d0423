package parser

import "github.com/kaydara/fbxbin/fbxerr"

// ArrayIter is a one-shot forward iterator over a decoded array attribute's
// elements. It must be fully consumed, or the caller must call Skip, before
// the parser advances again. A single generic iterator serves every
// element type instead of one hand-duplicated type per element kind.
type ArrayIter[T any] struct {
	values []T
	idx    int
}

func newArrayIter[T any](values []T) *ArrayIter[T] {
	return &ArrayIter[T]{values: values}
}

// Next returns the next element, or ok=false once exhausted.
func (it *ArrayIter[T]) Next() (T, bool) {
	if it.idx >= len(it.values) {
		var zero T
		return zero, false
	}
	v := it.values[it.idx]
	it.idx++
	return v, true
}

// Len returns the total number of elements the array carries.
func (it *ArrayIter[T]) Len() int { return len(it.values) }

// Remaining returns how many elements Next has not yet returned.
func (it *ArrayIter[T]) Remaining() int { return len(it.values) - it.idx }

// Skip discards all remaining elements without allocating a slice for them.
func (it *ArrayIter[T]) Skip() { it.idx = len(it.values) }

// AttributeVisitor is the polymorphic handler an attribute decode drives:
// the parser dispatches on the on-disk type code and calls exactly one of
// these methods per attribute. A visitor that only cares about one family
// can embed UnexpectedAttributeVisitor and override just the method it
// wants; the rest reject with TypeMismatch.
type AttributeVisitor interface {
	VisitBool(v bool) error
	VisitI16(v int16) error
	VisitI32(v int32) error
	VisitI64(v int64) error
	VisitF32(v float32) error
	VisitF64(v float64) error
	VisitArrBool(it *ArrayIter[bool]) error
	VisitArrI32(it *ArrayIter[int32]) error
	VisitArrI64(it *ArrayIter[int64]) error
	VisitArrF32(it *ArrayIter[float32]) error
	VisitArrF64(it *ArrayIter[float64]) error
	VisitString(s string, valid bool, raw []byte) error
	VisitBinary(b []byte) error
}

// TypeMismatch builds the error a visitor returns when it only expects one
// attribute type and was handed another.
func TypeMismatch(expected, got AttributeType) error {
	return fbxerr.Newf(fbxerr.Critical, fbxerr.LayerParser, fbxerr.CodeUnexpectedAttribute,
		"expected attribute of type %s, got %s", expected, got)
}

// UnexpectedAttributeVisitor is an AttributeVisitor whose every method
// rejects with TypeMismatch against Expected. Embed it in a visitor that
// only handles one attribute family and override just that family's
// method; the embedded defaults cover the rest.
type UnexpectedAttributeVisitor struct {
	Expected AttributeType
}

func (u UnexpectedAttributeVisitor) VisitBool(bool) error { return TypeMismatch(u.Expected, TypeBool) }
func (u UnexpectedAttributeVisitor) VisitI16(int16) error { return TypeMismatch(u.Expected, TypeI16) }
func (u UnexpectedAttributeVisitor) VisitI32(int32) error { return TypeMismatch(u.Expected, TypeI32) }
func (u UnexpectedAttributeVisitor) VisitI64(int64) error { return TypeMismatch(u.Expected, TypeI64) }
func (u UnexpectedAttributeVisitor) VisitF32(float32) error {
	return TypeMismatch(u.Expected, TypeF32)
}
func (u UnexpectedAttributeVisitor) VisitF64(float64) error {
	return TypeMismatch(u.Expected, TypeF64)
}
func (u UnexpectedAttributeVisitor) VisitArrBool(*ArrayIter[bool]) error {
	return TypeMismatch(u.Expected, TypeArrBool)
}
func (u UnexpectedAttributeVisitor) VisitArrI32(*ArrayIter[int32]) error {
	return TypeMismatch(u.Expected, TypeArrI32)
}
func (u UnexpectedAttributeVisitor) VisitArrI64(*ArrayIter[int64]) error {
	return TypeMismatch(u.Expected, TypeArrI64)
}
func (u UnexpectedAttributeVisitor) VisitArrF32(*ArrayIter[float32]) error {
	return TypeMismatch(u.Expected, TypeArrF32)
}
func (u UnexpectedAttributeVisitor) VisitArrF64(*ArrayIter[float64]) error {
	return TypeMismatch(u.Expected, TypeArrF64)
}
func (u UnexpectedAttributeVisitor) VisitString(string, bool, []byte) error {
	return TypeMismatch(u.Expected, TypeString)
}
func (u UnexpectedAttributeVisitor) VisitBinary([]byte) error {
	return TypeMismatch(u.Expected, TypeBinary)
}

// collectingVisitor is the "collect everything into an AttributeValue"
// visitor the eager decode path drives, implementing eager decoding as a
// thin wrapper over the same visitor dispatch the lazy path uses.
type collectingVisitor struct {
	value AttributeValue
}

func (c *collectingVisitor) VisitBool(v bool) error    { c.value = boolAttr(v); return nil }
func (c *collectingVisitor) VisitI16(v int16) error    { c.value = i16Attr(v); return nil }
func (c *collectingVisitor) VisitI32(v int32) error    { c.value = i32Attr(v); return nil }
func (c *collectingVisitor) VisitI64(v int64) error    { c.value = i64Attr(v); return nil }
func (c *collectingVisitor) VisitF32(v float32) error  { c.value = f32Attr(v); return nil }
func (c *collectingVisitor) VisitF64(v float64) error  { c.value = f64Attr(v); return nil }

func (c *collectingVisitor) VisitArrBool(it *ArrayIter[bool]) error {
	out := make([]bool, 0, it.Remaining())
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	c.value = arrBoolAttr(out)
	return nil
}

func (c *collectingVisitor) VisitArrI32(it *ArrayIter[int32]) error {
	out := make([]int32, 0, it.Remaining())
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	c.value = arrI32Attr(out)
	return nil
}

func (c *collectingVisitor) VisitArrI64(it *ArrayIter[int64]) error {
	out := make([]int64, 0, it.Remaining())
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	c.value = arrI64Attr(out)
	return nil
}

func (c *collectingVisitor) VisitArrF32(it *ArrayIter[float32]) error {
	out := make([]float32, 0, it.Remaining())
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	c.value = arrF32Attr(out)
	return nil
}

func (c *collectingVisitor) VisitArrF64(it *ArrayIter[float64]) error {
	out := make([]float64, 0, it.Remaining())
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	c.value = arrF64Attr(out)
	return nil
}

func (c *collectingVisitor) VisitString(s string, valid bool, raw []byte) error {
	if valid {
		c.value = stringAttr(s)
	} else {
		c.value = invalidUtf8Attr(raw)
	}
	return nil
}

func (c *collectingVisitor) VisitBinary(b []byte) error {
	c.value = binaryAttr(b)
	return nil
}
