// Package expression defines the logical IR expression nodes that embed into
// the output AST, and the traversal machinery that reaches every expression
// inside an op.
package expression

import (
	"fmt"

	"tplc-go/compiler/output"
	"tplc-go/compiler/template/pipeline/ir"
	"tplc-go/compiler/template/pipeline/ir/operations"
	"tplc-go/compiler/template/pipeline/ir/ops/create"
	"tplc-go/compiler/template/pipeline/ir/ops/shared"
	"tplc-go/compiler/template/pipeline/ir/ops/update"
)

// VisitorContextFlag carries context about the position of a visited
// expression.
type VisitorContextFlag int

const (
	VisitorContextFlagNone VisitorContextFlag = 0
	// VisitorContextFlagInChildOperation is set while visiting expressions
	// inside a child op list, e.g. a listener's handler ops.
	VisitorContextFlagInChildOperation VisitorContextFlag = 0b0001
)

// Transform converts an expression into a replacement expression, possibly
// itself.
type Transform func(expr output.Expression, flags VisitorContextFlag) output.Expression

// IrExpression is implemented by all logical IR expression nodes. It extends
// the output Expression interface with recursion into nested expressions.
type IrExpression interface {
	output.Expression
	ExpressionKind() ir.ExpressionKind
	// TransformInternalExpressions runs the transform against any nested
	// expressions of this node.
	TransformInternalExpressions(transform Transform, flags VisitorContextFlag)
}

// IsIrExpression reports whether an output expression is a logical IR
// expression node.
func IsIrExpression(expr output.Expression) bool {
	_, ok := expr.(IrExpression)
	return ok
}

// LexicalReadExpr is a lexical read of a variable name, not yet resolved to a
// declaration.
type LexicalReadExpr struct {
	Name string
}

func NewLexicalReadExpr(name string) *LexicalReadExpr {
	return &LexicalReadExpr{Name: name}
}

func (l *LexicalReadExpr) ExpressionKind() ir.ExpressionKind { return ir.ExpressionKindLexicalRead }

func (l *LexicalReadExpr) IsEquivalent(other output.Expression) bool {
	o, ok := other.(*LexicalReadExpr)
	return ok && l.Name == o.Name
}

func (l *LexicalReadExpr) IsConstant() bool { return false }

func (l *LexicalReadExpr) Clone() output.Expression { return NewLexicalReadExpr(l.Name) }

func (l *LexicalReadExpr) TransformInternalExpressions(transform Transform, flags VisitorContextFlag) {
}

// ContextExpr is a reference to the context of a particular view.
type ContextExpr struct {
	View operations.XrefId
}

func NewContextExpr(view operations.XrefId) *ContextExpr {
	return &ContextExpr{View: view}
}

func (c *ContextExpr) ExpressionKind() ir.ExpressionKind { return ir.ExpressionKindContext }

func (c *ContextExpr) IsEquivalent(other output.Expression) bool {
	o, ok := other.(*ContextExpr)
	return ok && c.View == o.View
}

func (c *ContextExpr) IsConstant() bool { return false }

func (c *ContextExpr) Clone() output.Expression { return NewContextExpr(c.View) }

func (c *ContextExpr) TransformInternalExpressions(transform Transform, flags VisitorContextFlag) {}

// NextContextExpr is a reference to the context of a view a number of levels
// above the current one.
type NextContextExpr struct {
	Steps int
}

func NewNextContextExpr() *NextContextExpr {
	return &NextContextExpr{Steps: 1}
}

func (n *NextContextExpr) ExpressionKind() ir.ExpressionKind { return ir.ExpressionKindNextContext }

func (n *NextContextExpr) IsEquivalent(other output.Expression) bool {
	o, ok := other.(*NextContextExpr)
	return ok && n.Steps == o.Steps
}

func (n *NextContextExpr) IsConstant() bool { return false }

func (n *NextContextExpr) Clone() output.Expression {
	clone := NewNextContextExpr()
	clone.Steps = n.Steps
	return clone
}

func (n *NextContextExpr) TransformInternalExpressions(transform Transform, flags VisitorContextFlag) {
}

// ReadVariableExpr is a read of a variable declared by a VariableOp. The name
// is nil until the naming phase backfills it from the declaration.
type ReadVariableExpr struct {
	Xref operations.XrefId
	Name *string
}

func NewReadVariableExpr(xref operations.XrefId) *ReadVariableExpr {
	return &ReadVariableExpr{Xref: xref}
}

func (r *ReadVariableExpr) ExpressionKind() ir.ExpressionKind { return ir.ExpressionKindReadVariable }

func (r *ReadVariableExpr) IsEquivalent(other output.Expression) bool {
	o, ok := other.(*ReadVariableExpr)
	return ok && r.Xref == o.Xref
}

func (r *ReadVariableExpr) IsConstant() bool { return false }

func (r *ReadVariableExpr) Clone() output.Expression {
	clone := NewReadVariableExpr(r.Xref)
	clone.Name = r.Name
	return clone
}

func (r *ReadVariableExpr) TransformInternalExpressions(transform Transform, flags VisitorContextFlag) {
}

// TransformExpressionsInOp transforms all output expressions reachable from
// the given op, including expressions nested inside child op lists such as
// listener handlers. The match over op kinds is exhaustive: an unhandled kind
// panics rather than silently skipping expressions.
func TransformExpressionsInOp(op operations.Op, transform Transform, flags VisitorContextFlag) {
	switch op.Kind() {
	case ir.OpKindStatement:
		statementOp := op.(*shared.StatementOp)
		TransformExpressionsInStatement(statementOp.Statement, transform, flags)
	case ir.OpKindVariable:
		variableOp := op.(*shared.VariableOp)
		if variableOp.Initializer != nil {
			variableOp.Initializer = TransformExpressionsInExpression(variableOp.Initializer, transform, flags)
		}
	case ir.OpKindProperty:
		propertyOp := op.(*update.PropertyOp)
		if propertyOp.Expression != nil {
			propertyOp.Expression = TransformExpressionsInExpression(propertyOp.Expression, transform, flags)
		}
	case ir.OpKindDomProperty:
		domPropertyOp := op.(*update.DomPropertyOp)
		if domPropertyOp.Expression != nil {
			domPropertyOp.Expression = TransformExpressionsInExpression(domPropertyOp.Expression, transform, flags)
		}
	case ir.OpKindAttribute:
		attributeOp := op.(*update.AttributeOp)
		if attributeOp.Expression != nil {
			attributeOp.Expression = TransformExpressionsInExpression(attributeOp.Expression, transform, flags)
		}
	case ir.OpKindStyleProp:
		stylePropOp := op.(*update.StylePropOp)
		if stylePropOp.Expression != nil {
			stylePropOp.Expression = TransformExpressionsInExpression(stylePropOp.Expression, transform, flags)
		}
	case ir.OpKindClassProp:
		classPropOp := op.(*update.ClassPropOp)
		if classPropOp.Expression != nil {
			classPropOp.Expression = TransformExpressionsInExpression(classPropOp.Expression, transform, flags)
		}
	case ir.OpKindInterpolateText:
		interpolateOp := op.(*update.InterpolateTextOp)
		transformInterpolation(interpolateOp.Interpolation, transform, flags)
	case ir.OpKindListener:
		listenerOp := op.(*create.ListenerOp)
		transformHandlerOps(listenerOp.HandlerOps, transform, flags)
	case ir.OpKindTwoWayListener:
		twoWayOp := op.(*create.TwoWayListenerOp)
		transformHandlerOps(twoWayOp.HandlerOps, transform, flags)
	case ir.OpKindRepeaterCreate:
		repeaterOp := op.(*create.RepeaterCreateOp)
		if repeaterOp.Track != nil {
			repeaterOp.Track = TransformExpressionsInExpression(repeaterOp.Track, transform, flags)
		}
		if repeaterOp.TrackByFn != nil {
			repeaterOp.TrackByFn = TransformExpressionsInExpression(repeaterOp.TrackByFn, transform, flags)
		}
	case ir.OpKindElement, ir.OpKindElementStart, ir.OpKindElementEnd, ir.OpKindText,
		ir.OpKindTemplate, ir.OpKindConditionalCreate, ir.OpKindConditionalBranchCreate,
		ir.OpKindProjection, ir.OpKindAdvance, ir.OpKindListEnd:
		// These ops contain no expressions.
	default:
		panic(fmt.Sprintf("AssertionError: TransformExpressionsInOp doesn't handle %v", op.Kind()))
	}
}

func transformHandlerOps(handlerOps *operations.OpList, transform Transform, flags VisitorContextFlag) {
	if handlerOps == nil {
		return
	}
	for op := handlerOps.Head(); op.Kind() != ir.OpKindListEnd; op = op.Next() {
		TransformExpressionsInOp(op, transform, flags|VisitorContextFlagInChildOperation)
	}
}

func transformInterpolation(interpolation *update.Interpolation, transform Transform, flags VisitorContextFlag) {
	for i, expr := range interpolation.Expressions {
		interpolation.Expressions[i] = TransformExpressionsInExpression(expr, transform, flags)
	}
}

// TransformExpressionsInExpression transforms the given expression tree
// bottom-up and returns the (possibly replaced) root.
func TransformExpressionsInExpression(
	expr output.Expression,
	transform Transform,
	flags VisitorContextFlag,
) output.Expression {
	switch e := expr.(type) {
	case IrExpression:
		e.TransformInternalExpressions(transform, flags)
	case *output.ReadPropExpr:
		e.Receiver = TransformExpressionsInExpression(e.Receiver, transform, flags)
	case *output.ReadKeyExpr:
		e.Receiver = TransformExpressionsInExpression(e.Receiver, transform, flags)
		e.Index = TransformExpressionsInExpression(e.Index, transform, flags)
	case *output.InvokeFunctionExpr:
		e.Fn = TransformExpressionsInExpression(e.Fn, transform, flags)
		for i, arg := range e.Args {
			e.Args[i] = TransformExpressionsInExpression(arg, transform, flags)
		}
	case *output.BinaryOperatorExpr:
		e.Lhs = TransformExpressionsInExpression(e.Lhs, transform, flags)
		e.Rhs = TransformExpressionsInExpression(e.Rhs, transform, flags)
	case *output.UnaryOperatorExpr:
		e.Expr = TransformExpressionsInExpression(e.Expr, transform, flags)
	case *output.ConditionalExpr:
		e.Condition = TransformExpressionsInExpression(e.Condition, transform, flags)
		e.TrueCase = TransformExpressionsInExpression(e.TrueCase, transform, flags)
		if e.FalseCase != nil {
			e.FalseCase = TransformExpressionsInExpression(e.FalseCase, transform, flags)
		}
	case *output.NotExpr:
		e.Condition = TransformExpressionsInExpression(e.Condition, transform, flags)
	case *output.LiteralArrayExpr:
		for i, entry := range e.Entries {
			e.Entries[i] = TransformExpressionsInExpression(entry, transform, flags)
		}
	case *output.LiteralMapExpr:
		for _, entry := range e.Entries {
			entry.Value = TransformExpressionsInExpression(entry.Value, transform, flags)
		}
	case *output.ArrowFunctionExpr:
		if e.Body != nil {
			e.Body = TransformExpressionsInExpression(e.Body, transform, flags)
		}
		for _, stmt := range e.Statements {
			TransformExpressionsInStatement(stmt, transform, flags)
		}
	case *output.ReadVarExpr, *output.LiteralExpr:
		// Leaf nodes.
	default:
		panic(fmt.Sprintf("AssertionError: unhandled expression %T", expr))
	}
	return transform(expr, flags)
}

// TransformExpressionsInStatement transforms all expressions nested in a
// statement.
func TransformExpressionsInStatement(stmt output.Statement, transform Transform, flags VisitorContextFlag) {
	switch s := stmt.(type) {
	case *output.ExpressionStatement:
		s.Expr = TransformExpressionsInExpression(s.Expr, transform, flags)
	case *output.ReturnStatement:
		if s.Value != nil {
			s.Value = TransformExpressionsInExpression(s.Value, transform, flags)
		}
	case *output.DeclareVarStmt:
		if s.Value != nil {
			s.Value = TransformExpressionsInExpression(s.Value, transform, flags)
		}
	case *output.IfStmt:
		s.Condition = TransformExpressionsInExpression(s.Condition, transform, flags)
		for _, inner := range s.TrueCase {
			TransformExpressionsInStatement(inner, transform, flags)
		}
		for _, inner := range s.FalseCase {
			TransformExpressionsInStatement(inner, transform, flags)
		}
	default:
		panic(fmt.Sprintf("AssertionError: unhandled statement %T", stmt))
	}
}

// VisitExpressionsInOp visits all expressions reachable from the given op
// without replacing any of them.
func VisitExpressionsInOp(op operations.Op, visitor func(expr output.Expression, flags VisitorContextFlag)) {
	TransformExpressionsInOp(op, func(expr output.Expression, flags VisitorContextFlag) output.Expression {
		visitor(expr, flags)
		return expr
	}, VisitorContextFlagNone)
}
