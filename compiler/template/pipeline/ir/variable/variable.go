// Package variable defines the semantic variable union of the template
// pipeline IR.
package variable

import (
	"tplc-go/compiler/output"
	"tplc-go/compiler/template/pipeline/ir"
	"tplc-go/compiler/template/pipeline/ir/operations"
)

// SemanticVariable is a logical value declared by a VariableOp. The final
// name is assigned by the naming phase and is write-once: a variable that
// already carries a name keeps it.
type SemanticVariable interface {
	Kind() ir.SemanticVariableKind
	Name() *string
	SetName(name string)
}

// VariableBase is the common state of all semantic variable variants.
type VariableBase struct {
	kind ir.SemanticVariableKind
	name *string
}

func (v *VariableBase) Kind() ir.SemanticVariableKind { return v.kind }

func (v *VariableBase) Name() *string { return v.name }

func (v *VariableBase) SetName(name string) { v.name = &name }

// ContextVariable represents the context of a particular view.
type ContextVariable struct {
	VariableBase
	View operations.XrefId
}

func NewContextVariable(view operations.XrefId) *ContextVariable {
	return &ContextVariable{
		VariableBase: VariableBase{kind: ir.SemanticVariableKindContext},
		View:         view,
	}
}

// IdentifierVariable represents a specific identifier within a template,
// e.g. a local template variable or a block context variable.
type IdentifierVariable struct {
	VariableBase
	Identifier string
	// Local is whether the variable was declared with `@let` inside the
	// template, as opposed to being provided by a directive or block context.
	Local bool
}

func NewIdentifierVariable(identifier string, local bool) *IdentifierVariable {
	return &IdentifierVariable{
		VariableBase: VariableBase{kind: ir.SemanticVariableKindIdentifier},
		Identifier:   identifier,
		Local:        local,
	}
}

// SavedViewVariable represents a snapshot of the current view context, saved
// so that a listener handler can restore it before executing.
type SavedViewVariable struct {
	VariableBase
	View operations.XrefId
}

func NewSavedViewVariable(view operations.XrefId) *SavedViewVariable {
	return &SavedViewVariable{
		VariableBase: VariableBase{kind: ir.SemanticVariableKindSavedView},
		View:         view,
	}
}

// AliasVariable is a variable that will be inlined at every location it is
// used instead of being declared.
type AliasVariable struct {
	VariableBase
	Identifier string
	Expression output.Expression
}

func NewAliasVariable(identifier string, expression output.Expression) *AliasVariable {
	return &AliasVariable{
		VariableBase: VariableBase{kind: ir.SemanticVariableKindAlias},
		Identifier:   identifier,
		Expression:   expression,
	}
}
