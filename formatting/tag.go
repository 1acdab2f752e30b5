// Package formatting resolves how a value is turned into styled markup text:
// which formatter produces its text and which style colours it.
//
// Values are classified by an explicit Tag instead of reflection. Builtin
// kinds get their tag from Of; user types implement Tagged or are wrapped
// with Typed.
package formatting

import (
	"fmt"
	"time"
)

// Tag identifies a value's type for formatter and style lookup.
type Tag string

const (
	TagNil      Tag = "nil"
	TagAny      Tag = "any"
	TagString   Tag = "string"
	TagBool     Tag = "bool"
	TagInt      Tag = "int"
	TagInt8     Tag = "int8"
	TagInt16    Tag = "int16"
	TagInt32    Tag = "int32"
	TagInt64    Tag = "int64"
	TagUint     Tag = "uint"
	TagUint8    Tag = "uint8"
	TagUint16   Tag = "uint16"
	TagUint32   Tag = "uint32"
	TagUint64   Tag = "uint64"
	TagUintptr  Tag = "uintptr"
	TagFloat32  Tag = "float32"
	TagFloat64  Tag = "float64"
	TagComplex  Tag = "complex"
	TagBytes    Tag = "bytes"
	TagTime     Tag = "time"
	TagDuration Tag = "duration"
	TagError    Tag = "error"
	TagStringer Tag = "stringer"
)

// NumericTags lists every builtin number tag, handy for styling all numbers
// alike.
var NumericTags = []Tag{
	TagInt, TagInt8, TagInt16, TagInt32, TagInt64,
	TagUint, TagUint8, TagUint16, TagUint32, TagUint64, TagUintptr,
	TagFloat32, TagFloat64, TagComplex,
}

// Tagged is implemented by values that name their own tag.
type Tagged interface {
	FormatTag() Tag
}

type typedValue struct {
	tag   Tag
	value any
}

func (t typedValue) FormatTag() Tag { return t.tag }

func (t typedValue) String() string { return Sprint(t.value) }

// Typed attaches tag to v. Formatters registered for tag receive v itself.
func Typed(tag Tag, v any) Tagged {
	return typedValue{tag: tag, value: v}
}

// Unwrap returns the value inside a Typed wrapper, or v unchanged.
func Unwrap(v any) any {
	if t, ok := v.(typedValue); ok {
		return t.value
	}
	return v
}

// Of returns the tag of v.
func Of(v any) Tag {
	switch x := v.(type) {
	case nil:
		return TagNil
	case Tagged:
		return x.FormatTag()
	case string:
		return TagString
	case bool:
		return TagBool
	case int:
		return TagInt
	case int8:
		return TagInt8
	case int16:
		return TagInt16
	case int32:
		return TagInt32
	case int64:
		return TagInt64
	case uint:
		return TagUint
	case uint8:
		return TagUint8
	case uint16:
		return TagUint16
	case uint32:
		return TagUint32
	case uint64:
		return TagUint64
	case uintptr:
		return TagUintptr
	case float32:
		return TagFloat32
	case float64:
		return TagFloat64
	case complex64, complex128:
		return TagComplex
	case []byte:
		return TagBytes
	case time.Time:
		return TagTime
	case time.Duration:
		return TagDuration
	case error:
		return TagError
	case fmt.Stringer:
		return TagStringer
	}
	return TagAny
}
