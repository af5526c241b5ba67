// Package raw is the object model the writer serializes: names, numbers,
// strings, arrays, dictionaries, references and streams.
package raw

import "fmt"

// ObjectRef uniquely identifies an indirect object.
type ObjectRef struct {
	Num int
	Gen int
}

func (r ObjectRef) String() string { return fmt.Sprintf("%d %d R", r.Num, r.Gen) }

// Object is the base interface for all raw objects.
type Object interface {
	Type() string
	IsIndirect() bool
}

// Dictionary represents a dictionary object. Keys keep insertion order so
// serialization is reproducible.
type Dictionary interface {
	Object
	Get(key string) (Object, bool)
	Set(key string, value Object)
	Keys() []string
	Len() int
}

// Array represents an array object.
type Array interface {
	Object
	Get(index int) (Object, bool)
	Len() int
	Append(obj Object)
}

// Stream represents an unfiltered stream.
type Stream interface {
	Object
	Dictionary() Dictionary
	RawData() []byte
	Length() int64
}

// Reference represents an indirect object reference.
type Reference interface {
	Object
	Ref() ObjectRef
}
