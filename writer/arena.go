package writer

import (
	"errors"
	"fmt"

	"github.com/wudi/pdfreport/ir/raw"
)

// ErrUnpopulated is matched by the *UnpopulatedError a write returns when
// a reserved id never received an object.
var ErrUnpopulated = errors.New("writer: reserved object never populated")

type UnpopulatedError struct {
	Ref raw.ObjectRef
}

func (e *UnpopulatedError) Error() string {
	return fmt.Sprintf("writer: object %d reserved but never populated", e.Ref.Num)
}

func (e *UnpopulatedError) Unwrap() error { return ErrUnpopulated }

// Arena maps ids 1..n to objects. Ids are handed out first and filled in
// later, so objects can reference ids whose contents do not exist yet.
type Arena struct {
	slots []raw.Object
}

func NewArena() *Arena { return &Arena{} }

// Reserve returns the next id.
func (a *Arena) Reserve() raw.ObjectRef {
	a.slots = append(a.slots, nil)
	return raw.ObjectRef{Num: len(a.slots)}
}

// Set populates a reserved id. Each id accepts one object.
func (a *Arena) Set(ref raw.ObjectRef, obj raw.Object) error {
	if ref.Num < 1 || ref.Num > len(a.slots) {
		return fmt.Errorf("writer: object %d was not reserved", ref.Num)
	}
	if obj == nil {
		return fmt.Errorf("writer: nil object for %d", ref.Num)
	}
	if a.slots[ref.Num-1] != nil {
		return fmt.Errorf("writer: object %d populated twice", ref.Num)
	}
	a.slots[ref.Num-1] = obj
	return nil
}

func (a *Arena) Get(ref raw.ObjectRef) (raw.Object, bool) {
	if ref.Num < 1 || ref.Num > len(a.slots) {
		return nil, false
	}
	o := a.slots[ref.Num-1]
	return o, o != nil
}

// Len is the number of reserved ids.
func (a *Arena) Len() int { return len(a.slots) }

// Validate fails with the lowest unpopulated id.
func (a *Arena) Validate() error {
	for i, o := range a.slots {
		if o == nil {
			return &UnpopulatedError{Ref: raw.ObjectRef{Num: i + 1}}
		}
	}
	return nil
}
