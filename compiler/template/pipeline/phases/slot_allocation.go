package phases

import (
	"tplc-go/compiler/template/pipeline/compilation"
	"tplc-go/compiler/template/pipeline/ir"
	"tplc-go/compiler/template/pipeline/ir/operations"
	"tplc-go/compiler/template/pipeline/ir/ops/create"
	"tplc-go/compiler/template/pipeline/ir/traits"
)

// AllocateSlots assigns data slots to all creation ops which consume them.
// Ops that depend on a declaration's slot share its SlotHandle, so assigning
// through the handle propagates the index to every consumer. Slot indices
// start at 0 for each view and are not unique between views.
//
// This phase is also responsible for counting the number of slots used by
// each view (its decls) and propagating that number into the ops which
// declare embedded views.
func AllocateSlots(job *compilation.ComponentCompilationJob) {
	// Slot assignments for every declaration across all views of the job.
	// Global because an expression in one view may reference a slot in
	// another.
	slotMap := make(map[operations.XrefId]int)

	for _, unit := range job.Units() {
		slotCount := 0
		for op := unit.Create().Head(); op.Kind() != ir.OpKindListEnd; op = op.Next() {
			trait, ok := traits.ConsumesSlotOf(op)
			if !ok {
				continue
			}
			slot := slotCount
			trait.SlotHandle().Slot = &slot
			slotMap[trait.Xref()] = slot
			slotCount += trait.SlotsUsed()
		}
		if viewUnit, ok := unit.(*compilation.ViewCompilationUnit); ok {
			viewUnit.Decls = &slotCount
		}
	}

	// Propagate each child view's slot usage into the op which declares it.
	for _, unit := range job.Units() {
		for op := unit.Create().Head(); op.Kind() != ir.OpKindListEnd; op = op.Next() {
			switch op.Kind() {
			case ir.OpKindTemplate, ir.OpKindConditionalCreate, ir.OpKindConditionalBranchCreate:
				embedded := embeddedViewOf(op)
				if childView, ok := job.View(embedded.Xref()); ok {
					embedded.Decls = childView.Decls
				}
			case ir.OpKindRepeaterCreate:
				repeaterOp := op.(*create.RepeaterCreateOp)
				if childView, ok := job.View(repeaterOp.Xref()); ok {
					repeaterOp.Decls = childView.Decls
				}
			}
		}
	}
}
