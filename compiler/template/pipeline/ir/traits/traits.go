// Package traits defines the cross-cutting op capabilities that phases
// dispatch on, independent of concrete op types.
package traits

import (
	"tplc-go/compiler/template/pipeline/ir"
	"tplc-go/compiler/template/pipeline/ir/operations"
)

// ConsumesSlot is implemented by creation ops that require one or more data
// slots for storage. The slot allocation phase assigns the starting index
// through the op's SlotHandle.
type ConsumesSlot interface {
	// Xref is the id of the declaration stored in the assigned slot, used to
	// link the op to the consumers of that slot.
	Xref() operations.XrefId
	// SlotHandle is the handle the assigned starting slot is written to.
	SlotHandle() *ir.SlotHandle
	// SlotsUsed is the number of contiguous slots the op reserves.
	SlotsUsed() int
}

// ConsumesSlotOf reports whether an op consumes data slots, and returns its
// slot trait if so.
func ConsumesSlotOf(op operations.Op) (ConsumesSlot, bool) {
	trait, ok := op.(ConsumesSlot)
	return trait, ok
}
