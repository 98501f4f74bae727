// Package shared defines the ops that are valid in both the creation and
// update IR of a view.
package shared

import (
	"tplc-go/compiler/output"
	"tplc-go/compiler/template/pipeline/ir"
	"tplc-go/compiler/template/pipeline/ir/operations"
	"tplc-go/compiler/template/pipeline/ir/variable"
)

// StatementOp is an op which directly wraps an output statement.
type StatementOp struct {
	operations.OpBase
	Statement output.Statement
}

func NewStatementOp(statement output.Statement) *StatementOp {
	return &StatementOp{
		OpBase:    operations.NewOpBase(),
		Statement: statement,
	}
}

func (s *StatementOp) Kind() ir.OpKind { return ir.OpKindStatement }

func (s *StatementOp) Xref() operations.XrefId { return 0 }

// VariableOp declares and initializes a semantic variable. The variable is
// referenced from read sites by xref; the naming phase assigns its final name
// and backfills it into those reads.
type VariableOp struct {
	operations.OpBase
	xref        operations.XrefId
	Variable    variable.SemanticVariable
	Initializer output.Expression
	Flags       ir.VariableFlags
}

func NewVariableOp(
	xref operations.XrefId,
	v variable.SemanticVariable,
	initializer output.Expression,
	flags ir.VariableFlags,
) *VariableOp {
	return &VariableOp{
		OpBase:      operations.NewOpBase(),
		xref:        xref,
		Variable:    v,
		Initializer: initializer,
		Flags:       flags,
	}
}

func (v *VariableOp) Kind() ir.OpKind { return ir.OpKindVariable }

// Xref returns the identity of this variable, as referenced by
// ReadVariableExpr.
func (v *VariableOp) Xref() operations.XrefId { return v.xref }
