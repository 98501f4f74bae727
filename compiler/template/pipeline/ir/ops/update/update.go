// Package update defines the ops of the update IR: the operations that bind
// data into the structure created by the creation IR.
package update

import (
	"tplc-go/compiler/output"
	"tplc-go/compiler/template/pipeline/ir"
	"tplc-go/compiler/template/pipeline/ir/operations"
)

// Interpolation is a sequence of static strings alternating with dynamic
// expressions, for interpolated bindings.
type Interpolation struct {
	Strings     []string
	Expressions []output.Expression
}

func NewInterpolation(strings []string, expressions []output.Expression) *Interpolation {
	return &Interpolation{Strings: strings, Expressions: expressions}
}

// InterpolateTextOp interpolates text into a text node created by a TextOp.
type InterpolateTextOp struct {
	operations.OpBase
	Target        operations.XrefId
	Interpolation *Interpolation
}

func NewInterpolateTextOp(target operations.XrefId, interpolation *Interpolation) *InterpolateTextOp {
	return &InterpolateTextOp{
		OpBase:        operations.NewOpBase(),
		Target:        target,
		Interpolation: interpolation,
	}
}

func (i *InterpolateTextOp) Kind() ir.OpKind { return ir.OpKindInterpolateText }

func (i *InterpolateTextOp) Xref() operations.XrefId { return i.Target }

// PropertyOp binds an expression to a property of an element.
type PropertyOp struct {
	operations.OpBase
	Target operations.XrefId
	// Name is the property name. For an animation trigger binding the naming
	// phase prefixes it with `@`.
	Name        string
	Expression  output.Expression
	BindingKind ir.BindingKind
}

func NewPropertyOp(
	target operations.XrefId,
	name string,
	expression output.Expression,
	bindingKind ir.BindingKind,
) *PropertyOp {
	return &PropertyOp{
		OpBase:      operations.NewOpBase(),
		Target:      target,
		Name:        name,
		Expression:  expression,
		BindingKind: bindingKind,
	}
}

func (p *PropertyOp) Kind() ir.OpKind { return ir.OpKindProperty }

func (p *PropertyOp) Xref() operations.XrefId { return p.Target }

// DomPropertyOp binds an expression to a native DOM property, bypassing any
// directive inputs.
type DomPropertyOp struct {
	operations.OpBase
	Target      operations.XrefId
	Name        string
	Expression  output.Expression
	BindingKind ir.BindingKind
}

func NewDomPropertyOp(
	target operations.XrefId,
	name string,
	expression output.Expression,
	bindingKind ir.BindingKind,
) *DomPropertyOp {
	return &DomPropertyOp{
		OpBase:      operations.NewOpBase(),
		Target:      target,
		Name:        name,
		Expression:  expression,
		BindingKind: bindingKind,
	}
}

func (d *DomPropertyOp) Kind() ir.OpKind { return ir.OpKindDomProperty }

func (d *DomPropertyOp) Xref() operations.XrefId { return d.Target }

// AttributeOp binds an expression to an attribute of an element.
type AttributeOp struct {
	operations.OpBase
	Target     operations.XrefId
	Name       string
	Expression output.Expression
}

func NewAttributeOp(target operations.XrefId, name string, expression output.Expression) *AttributeOp {
	return &AttributeOp{
		OpBase:     operations.NewOpBase(),
		Target:     target,
		Name:       name,
		Expression: expression,
	}
}

func (a *AttributeOp) Kind() ir.OpKind { return ir.OpKindAttribute }

func (a *AttributeOp) Xref() operations.XrefId { return a.Target }

// StylePropOp binds an expression to a single style property of an element.
type StylePropOp struct {
	operations.OpBase
	Target operations.XrefId
	// Name is the style property name, normalized to kebab-case by the naming
	// phase.
	Name       string
	Expression output.Expression
	// Unit is an optional unit suffix, e.g. `px`.
	Unit *string
}

func NewStylePropOp(
	target operations.XrefId,
	name string,
	expression output.Expression,
	unit *string,
) *StylePropOp {
	return &StylePropOp{
		OpBase:     operations.NewOpBase(),
		Target:     target,
		Name:       name,
		Expression: expression,
		Unit:       unit,
	}
}

func (s *StylePropOp) Kind() ir.OpKind { return ir.OpKindStyleProp }

func (s *StylePropOp) Xref() operations.XrefId { return s.Target }

// ClassPropOp binds an expression to a single class of an element.
type ClassPropOp struct {
	operations.OpBase
	Target     operations.XrefId
	Name       string
	Expression output.Expression
}

func NewClassPropOp(target operations.XrefId, name string, expression output.Expression) *ClassPropOp {
	return &ClassPropOp{
		OpBase:     operations.NewOpBase(),
		Target:     target,
		Name:       name,
		Expression: expression,
	}
}

func (c *ClassPropOp) Kind() ir.OpKind { return ir.OpKindClassProp }

func (c *ClassPropOp) Xref() operations.XrefId { return c.Target }

// AdvanceOp advances the runtime's implicit slot context during the update
// phase of a view.
type AdvanceOp struct {
	operations.OpBase
	Delta int
}

func NewAdvanceOp(delta int) *AdvanceOp {
	return &AdvanceOp{OpBase: operations.NewOpBase(), Delta: delta}
}

func (a *AdvanceOp) Kind() ir.OpKind { return ir.OpKindAdvance }

func (a *AdvanceOp) Xref() operations.XrefId { return 0 }
