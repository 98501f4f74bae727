// Package create defines the ops of the creation IR: the operations that
// build the structure of a view (elements, text, embedded views, listeners).
package create

import (
	"tplc-go/compiler/output"
	"tplc-go/compiler/template/pipeline/ir"
	"tplc-go/compiler/template/pipeline/ir/operations"
)

// ElementStartOp begins rendering of an element.
type ElementStartOp struct {
	operations.OpBase
	xref   operations.XrefId
	Handle *ir.SlotHandle
	Tag    *string
}

func NewElementStartOp(xref operations.XrefId, tag *string) *ElementStartOp {
	return &ElementStartOp{
		OpBase: operations.NewOpBase(),
		xref:   xref,
		Handle: ir.NewSlotHandle(),
		Tag:    tag,
	}
}

func (e *ElementStartOp) Kind() ir.OpKind { return ir.OpKindElementStart }

func (e *ElementStartOp) Xref() operations.XrefId { return e.xref }

func (e *ElementStartOp) SlotHandle() *ir.SlotHandle { return e.Handle }

func (e *ElementStartOp) SlotsUsed() int { return 1 }

// ElementEndOp ends rendering of an element started by an ElementStartOp.
type ElementEndOp struct {
	operations.OpBase
	xref operations.XrefId
}

func NewElementEndOp(xref operations.XrefId) *ElementEndOp {
	return &ElementEndOp{OpBase: operations.NewOpBase(), xref: xref}
}

func (e *ElementEndOp) Kind() ir.OpKind { return ir.OpKindElementEnd }

func (e *ElementEndOp) Xref() operations.XrefId { return e.xref }

// TextOp renders a static text node.
type TextOp struct {
	operations.OpBase
	xref         operations.XrefId
	Handle       *ir.SlotHandle
	InitialValue string
}

func NewTextOp(xref operations.XrefId, initialValue string) *TextOp {
	return &TextOp{
		OpBase:       operations.NewOpBase(),
		xref:         xref,
		Handle:       ir.NewSlotHandle(),
		InitialValue: initialValue,
	}
}

func (t *TextOp) Kind() ir.OpKind { return ir.OpKindText }

func (t *TextOp) Xref() operations.XrefId { return t.xref }

func (t *TextOp) SlotHandle() *ir.SlotHandle { return t.Handle }

func (t *TextOp) SlotsUsed() int { return 1 }

// EmbeddedViewOpBase is the state shared by the ops which declare an embedded
// view: TemplateOp, ConditionalCreateOp and ConditionalBranchCreateOp. The
// xref is the id of the declared child view.
type EmbeddedViewOpBase struct {
	operations.OpBase
	xref   operations.XrefId
	Handle *ir.SlotHandle
	Tag    *string
	// TemplateKind records whether this view came from a literal template
	// element, a structural directive or a control flow block.
	TemplateKind ir.TemplateKind
	// FunctionNameSuffix contributes to the generated function name of the
	// child view. May be empty.
	FunctionNameSuffix string
	// Decls is the number of slots used by the child view, populated during
	// slot allocation.
	Decls *int
	Vars  *int
}

func newEmbeddedViewOpBase(
	xref operations.XrefId,
	templateKind ir.TemplateKind,
	tag *string,
	functionNameSuffix string,
) EmbeddedViewOpBase {
	return EmbeddedViewOpBase{
		OpBase:             operations.NewOpBase(),
		xref:               xref,
		Handle:             ir.NewSlotHandle(),
		Tag:                tag,
		TemplateKind:       templateKind,
		FunctionNameSuffix: functionNameSuffix,
	}
}

func (e *EmbeddedViewOpBase) Xref() operations.XrefId { return e.xref }

func (e *EmbeddedViewOpBase) SlotHandle() *ir.SlotHandle { return e.Handle }

func (e *EmbeddedViewOpBase) SlotsUsed() int { return 1 }

// TemplateOp declares an embedded view.
type TemplateOp struct {
	EmbeddedViewOpBase
}

func NewTemplateOp(
	xref operations.XrefId,
	templateKind ir.TemplateKind,
	tag *string,
	functionNameSuffix string,
) *TemplateOp {
	return &TemplateOp{
		EmbeddedViewOpBase: newEmbeddedViewOpBase(xref, templateKind, tag, functionNameSuffix),
	}
}

func (t *TemplateOp) Kind() ir.OpKind { return ir.OpKindTemplate }

// ConditionalCreateOp declares the view of the first branch of a conditional
// block.
type ConditionalCreateOp struct {
	EmbeddedViewOpBase
}

func NewConditionalCreateOp(
	xref operations.XrefId,
	tag *string,
	functionNameSuffix string,
) *ConditionalCreateOp {
	return &ConditionalCreateOp{
		EmbeddedViewOpBase: newEmbeddedViewOpBase(xref, ir.TemplateKindBlock, tag, functionNameSuffix),
	}
}

func (c *ConditionalCreateOp) Kind() ir.OpKind { return ir.OpKindConditionalCreate }

// ConditionalBranchCreateOp declares the view of a non-first branch of a
// conditional block.
type ConditionalBranchCreateOp struct {
	EmbeddedViewOpBase
}

func NewConditionalBranchCreateOp(
	xref operations.XrefId,
	tag *string,
	functionNameSuffix string,
) *ConditionalBranchCreateOp {
	return &ConditionalBranchCreateOp{
		EmbeddedViewOpBase: newEmbeddedViewOpBase(xref, ir.TemplateKindBlock, tag, functionNameSuffix),
	}
}

func (c *ConditionalBranchCreateOp) Kind() ir.OpKind { return ir.OpKindConditionalBranchCreate }

// RepeaterCreateOp declares the primary view and optional empty view of a
// repeater block. The op occupies a contiguous slot range: metadata in the
// first slot, the primary view function at slot+1 and, when an empty view is
// declared, the empty view function at slot+2.
type RepeaterCreateOp struct {
	operations.OpBase
	xref   operations.XrefId
	Handle *ir.SlotHandle
	Tag    *string
	// EmptyView is the xref of the empty-state view, or 0 when the repeater
	// declares none.
	EmptyView operations.XrefId
	EmptyTag  *string
	// Track is the tracking expression of the repeater.
	Track output.Expression
	// TrackByFn is the derived tracking function, populated by a later phase.
	TrackByFn          output.Expression
	FunctionNameSuffix string
	Decls              *int
	Vars               *int
}

func NewRepeaterCreateOp(
	primaryView operations.XrefId,
	emptyView operations.XrefId,
	tag *string,
	emptyTag *string,
	track output.Expression,
) *RepeaterCreateOp {
	return &RepeaterCreateOp{
		OpBase:             operations.NewOpBase(),
		xref:               primaryView,
		Handle:             ir.NewSlotHandle(),
		Tag:                tag,
		EmptyView:          emptyView,
		EmptyTag:           emptyTag,
		Track:              track,
		FunctionNameSuffix: "For",
	}
}

func (r *RepeaterCreateOp) Kind() ir.OpKind { return ir.OpKindRepeaterCreate }

// Xref returns the xref of the primary view.
func (r *RepeaterCreateOp) Xref() operations.XrefId { return r.xref }

func (r *RepeaterCreateOp) SlotHandle() *ir.SlotHandle { return r.Handle }

func (r *RepeaterCreateOp) SlotsUsed() int {
	if r.EmptyView != 0 {
		return 3
	}
	return 2
}

// ProjectionOp projects content into the view, with an optional fallback view
// rendered when no content was provided.
type ProjectionOp struct {
	operations.OpBase
	xref          operations.XrefId
	Handle        *ir.SlotHandle
	SelectorIndex int
	// FallbackView is the xref of the fallback view, or 0 when the projection
	// declares none.
	FallbackView operations.XrefId
}

func NewProjectionOp(xref operations.XrefId, selectorIndex int, fallbackView operations.XrefId) *ProjectionOp {
	return &ProjectionOp{
		OpBase:        operations.NewOpBase(),
		xref:          xref,
		Handle:        ir.NewSlotHandle(),
		SelectorIndex: selectorIndex,
		FallbackView:  fallbackView,
	}
}

func (p *ProjectionOp) Kind() ir.OpKind { return ir.OpKindProjection }

func (p *ProjectionOp) Xref() operations.XrefId { return p.xref }

func (p *ProjectionOp) SlotHandle() *ir.SlotHandle { return p.Handle }

func (p *ProjectionOp) SlotsUsed() int { return 1 }

// ListenerOp declares an event listener on an element or host.
type ListenerOp struct {
	operations.OpBase
	// Target is the xref of the element the listener is attached to.
	Target operations.XrefId
	// TargetSlot is the slot handle of the target element. Shared with the
	// target's creation op, so slot allocation populates it in place. A host
	// listener has no target slot.
	TargetSlot *ir.SlotHandle
	// HostListener is whether the listener is attached to the component host
	// rather than an element in the template.
	HostListener bool
	// Name is the event name. For an animation listener the naming phase
	// rewrites it to the `@trigger.phase` form.
	Name string
	// Tag is the tag name of the target element, when known.
	Tag *string
	// HandlerOps are the update ops executed when the event fires.
	HandlerOps *operations.OpList
	// HandlerFnName is the generated name of the handler function, assigned
	// by the naming phase.
	HandlerFnName       *string
	ConsumesDollarEvent bool
	// IsAnimationListener is whether the listener binds an animation trigger
	// phase rather than a DOM event.
	IsAnimationListener bool
	AnimationPhase      *string
}

func NewListenerOp(
	target operations.XrefId,
	targetSlot *ir.SlotHandle,
	name string,
	tag *string,
	handlerOps []operations.UpdateOp,
	animationPhase *string,
	hostListener bool,
) *ListenerOp {
	handlerList := operations.NewOpList()
	for _, op := range handlerOps {
		handlerList.Push(op)
	}
	return &ListenerOp{
		OpBase:              operations.NewOpBase(),
		Target:              target,
		TargetSlot:          targetSlot,
		HostListener:        hostListener,
		Name:                name,
		Tag:                 tag,
		HandlerOps:          handlerList,
		IsAnimationListener: animationPhase != nil,
		AnimationPhase:      animationPhase,
	}
}

func (l *ListenerOp) Kind() ir.OpKind { return ir.OpKindListener }

func (l *ListenerOp) Xref() operations.XrefId { return l.Target }

// TwoWayListenerOp declares the event side of a two-way binding on an
// element.
type TwoWayListenerOp struct {
	operations.OpBase
	Target        operations.XrefId
	TargetSlot    *ir.SlotHandle
	Name          string
	Tag           *string
	HandlerOps    *operations.OpList
	HandlerFnName *string
}

func NewTwoWayListenerOp(
	target operations.XrefId,
	targetSlot *ir.SlotHandle,
	name string,
	tag *string,
	handlerOps []operations.UpdateOp,
) *TwoWayListenerOp {
	handlerList := operations.NewOpList()
	for _, op := range handlerOps {
		handlerList.Push(op)
	}
	return &TwoWayListenerOp{
		OpBase:     operations.NewOpBase(),
		Target:     target,
		TargetSlot: targetSlot,
		Name:       name,
		Tag:        tag,
		HandlerOps: handlerList,
	}
}

func (t *TwoWayListenerOp) Kind() ir.OpKind { return ir.OpKindTwoWayListener }

func (t *TwoWayListenerOp) Xref() operations.XrefId { return t.Target }
