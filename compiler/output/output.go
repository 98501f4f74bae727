// Package output defines the output AST: the language-independent expression
// and statement tree that the template pipeline lowers into and that the
// emitter eventually renders as source text.
package output

// Expression is the base interface for all output expressions.
type Expression interface {
	// IsEquivalent reports whether this expression produces the same value as
	// the other one.
	IsEquivalent(other Expression) bool
	// IsConstant reports whether the expression is constant-foldable.
	IsConstant() bool
	// Clone returns a deep copy of the expression.
	Clone() Expression
}

// Statement is the base interface for all output statements.
type Statement interface {
	isStatement()
}

// BinaryOperator enumerates the binary operators of the output language.
type BinaryOperator int

const (
	BinaryOperatorEquals BinaryOperator = iota
	BinaryOperatorNotEquals
	BinaryOperatorIdentical
	BinaryOperatorNotIdentical
	BinaryOperatorAnd
	BinaryOperatorOr
	BinaryOperatorPlus
	BinaryOperatorMinus
	BinaryOperatorMultiply
	BinaryOperatorDivide
	BinaryOperatorModulo
	BinaryOperatorLower
	BinaryOperatorLowerEquals
	BinaryOperatorBigger
	BinaryOperatorBiggerEquals
	BinaryOperatorNullishCoalesce
)

// UnaryOperator enumerates the unary operators of the output language.
type UnaryOperator int

const (
	UnaryOperatorMinus UnaryOperator = iota
	UnaryOperatorPlus
	UnaryOperatorNot
)

// ReadVarExpr is a read of a named variable in the output scope.
type ReadVarExpr struct {
	Name string
}

func NewReadVarExpr(name string) *ReadVarExpr {
	return &ReadVarExpr{Name: name}
}

func (r *ReadVarExpr) IsEquivalent(other Expression) bool {
	o, ok := other.(*ReadVarExpr)
	return ok && r.Name == o.Name
}

func (r *ReadVarExpr) IsConstant() bool { return false }

func (r *ReadVarExpr) Clone() Expression { return NewReadVarExpr(r.Name) }

// LiteralExpr is a literal primitive value.
type LiteralExpr struct {
	Value interface{}
}

func NewLiteralExpr(value interface{}) *LiteralExpr {
	return &LiteralExpr{Value: value}
}

func (l *LiteralExpr) IsEquivalent(other Expression) bool {
	o, ok := other.(*LiteralExpr)
	return ok && l.Value == o.Value
}

func (l *LiteralExpr) IsConstant() bool { return true }

func (l *LiteralExpr) Clone() Expression { return NewLiteralExpr(l.Value) }

// ReadPropExpr is a property read off a receiver expression.
type ReadPropExpr struct {
	Receiver Expression
	Name     string
}

func NewReadPropExpr(receiver Expression, name string) *ReadPropExpr {
	return &ReadPropExpr{Receiver: receiver, Name: name}
}

func (r *ReadPropExpr) IsEquivalent(other Expression) bool {
	o, ok := other.(*ReadPropExpr)
	return ok && r.Name == o.Name && r.Receiver.IsEquivalent(o.Receiver)
}

func (r *ReadPropExpr) IsConstant() bool { return false }

func (r *ReadPropExpr) Clone() Expression {
	return NewReadPropExpr(r.Receiver.Clone(), r.Name)
}

// ReadKeyExpr is a keyed read off a receiver expression.
type ReadKeyExpr struct {
	Receiver Expression
	Index    Expression
}

func NewReadKeyExpr(receiver Expression, index Expression) *ReadKeyExpr {
	return &ReadKeyExpr{Receiver: receiver, Index: index}
}

func (r *ReadKeyExpr) IsEquivalent(other Expression) bool {
	o, ok := other.(*ReadKeyExpr)
	return ok && r.Receiver.IsEquivalent(o.Receiver) && r.Index.IsEquivalent(o.Index)
}

func (r *ReadKeyExpr) IsConstant() bool { return false }

func (r *ReadKeyExpr) Clone() Expression {
	return NewReadKeyExpr(r.Receiver.Clone(), r.Index.Clone())
}

// InvokeFunctionExpr is an invocation of a function-valued expression.
type InvokeFunctionExpr struct {
	Fn   Expression
	Args []Expression
}

func NewInvokeFunctionExpr(fn Expression, args []Expression) *InvokeFunctionExpr {
	return &InvokeFunctionExpr{Fn: fn, Args: args}
}

func (i *InvokeFunctionExpr) IsEquivalent(other Expression) bool {
	o, ok := other.(*InvokeFunctionExpr)
	if !ok || !i.Fn.IsEquivalent(o.Fn) || len(i.Args) != len(o.Args) {
		return false
	}
	for idx, arg := range i.Args {
		if !arg.IsEquivalent(o.Args[idx]) {
			return false
		}
	}
	return true
}

func (i *InvokeFunctionExpr) IsConstant() bool { return false }

func (i *InvokeFunctionExpr) Clone() Expression {
	args := make([]Expression, len(i.Args))
	for idx, arg := range i.Args {
		args[idx] = arg.Clone()
	}
	return NewInvokeFunctionExpr(i.Fn.Clone(), args)
}

// BinaryOperatorExpr applies a binary operator to two operands.
type BinaryOperatorExpr struct {
	Operator BinaryOperator
	Lhs      Expression
	Rhs      Expression
}

func NewBinaryOperatorExpr(operator BinaryOperator, lhs, rhs Expression) *BinaryOperatorExpr {
	return &BinaryOperatorExpr{Operator: operator, Lhs: lhs, Rhs: rhs}
}

func (b *BinaryOperatorExpr) IsEquivalent(other Expression) bool {
	o, ok := other.(*BinaryOperatorExpr)
	return ok && b.Operator == o.Operator && b.Lhs.IsEquivalent(o.Lhs) && b.Rhs.IsEquivalent(o.Rhs)
}

func (b *BinaryOperatorExpr) IsConstant() bool { return false }

func (b *BinaryOperatorExpr) Clone() Expression {
	return NewBinaryOperatorExpr(b.Operator, b.Lhs.Clone(), b.Rhs.Clone())
}

// UnaryOperatorExpr applies a unary operator to a single operand.
type UnaryOperatorExpr struct {
	Operator UnaryOperator
	Expr     Expression
}

func NewUnaryOperatorExpr(operator UnaryOperator, expr Expression) *UnaryOperatorExpr {
	return &UnaryOperatorExpr{Operator: operator, Expr: expr}
}

func (u *UnaryOperatorExpr) IsEquivalent(other Expression) bool {
	o, ok := other.(*UnaryOperatorExpr)
	return ok && u.Operator == o.Operator && u.Expr.IsEquivalent(o.Expr)
}

func (u *UnaryOperatorExpr) IsConstant() bool { return false }

func (u *UnaryOperatorExpr) Clone() Expression {
	return NewUnaryOperatorExpr(u.Operator, u.Expr.Clone())
}

// ConditionalExpr is a ternary conditional.
type ConditionalExpr struct {
	Condition Expression
	TrueCase  Expression
	FalseCase Expression
}

func NewConditionalExpr(condition, trueCase, falseCase Expression) *ConditionalExpr {
	return &ConditionalExpr{Condition: condition, TrueCase: trueCase, FalseCase: falseCase}
}

func (c *ConditionalExpr) IsEquivalent(other Expression) bool {
	o, ok := other.(*ConditionalExpr)
	if !ok || !c.Condition.IsEquivalent(o.Condition) || !c.TrueCase.IsEquivalent(o.TrueCase) {
		return false
	}
	if c.FalseCase == nil || o.FalseCase == nil {
		return c.FalseCase == o.FalseCase
	}
	return c.FalseCase.IsEquivalent(o.FalseCase)
}

func (c *ConditionalExpr) IsConstant() bool { return false }

func (c *ConditionalExpr) Clone() Expression {
	var falseCase Expression
	if c.FalseCase != nil {
		falseCase = c.FalseCase.Clone()
	}
	return NewConditionalExpr(c.Condition.Clone(), c.TrueCase.Clone(), falseCase)
}

// NotExpr is a boolean negation.
type NotExpr struct {
	Condition Expression
}

func NewNotExpr(condition Expression) *NotExpr {
	return &NotExpr{Condition: condition}
}

func (n *NotExpr) IsEquivalent(other Expression) bool {
	o, ok := other.(*NotExpr)
	return ok && n.Condition.IsEquivalent(o.Condition)
}

func (n *NotExpr) IsConstant() bool { return false }

func (n *NotExpr) Clone() Expression { return NewNotExpr(n.Condition.Clone()) }

// LiteralArrayExpr is an array literal.
type LiteralArrayExpr struct {
	Entries []Expression
}

func NewLiteralArrayExpr(entries []Expression) *LiteralArrayExpr {
	return &LiteralArrayExpr{Entries: entries}
}

func (l *LiteralArrayExpr) IsEquivalent(other Expression) bool {
	o, ok := other.(*LiteralArrayExpr)
	if !ok || len(l.Entries) != len(o.Entries) {
		return false
	}
	for idx, entry := range l.Entries {
		if !entry.IsEquivalent(o.Entries[idx]) {
			return false
		}
	}
	return true
}

func (l *LiteralArrayExpr) IsConstant() bool {
	for _, entry := range l.Entries {
		if !entry.IsConstant() {
			return false
		}
	}
	return true
}

func (l *LiteralArrayExpr) Clone() Expression {
	entries := make([]Expression, len(l.Entries))
	for idx, entry := range l.Entries {
		entries[idx] = entry.Clone()
	}
	return NewLiteralArrayExpr(entries)
}

// LiteralMapEntry is one key/value pair of a LiteralMapExpr.
type LiteralMapEntry struct {
	Key    string
	Value  Expression
	Quoted bool
}

// LiteralMapExpr is an object literal.
type LiteralMapExpr struct {
	Entries []*LiteralMapEntry
}

func NewLiteralMapExpr(entries []*LiteralMapEntry) *LiteralMapExpr {
	return &LiteralMapExpr{Entries: entries}
}

func (l *LiteralMapExpr) IsEquivalent(other Expression) bool {
	o, ok := other.(*LiteralMapExpr)
	if !ok || len(l.Entries) != len(o.Entries) {
		return false
	}
	for idx, entry := range l.Entries {
		oe := o.Entries[idx]
		if entry.Key != oe.Key || !entry.Value.IsEquivalent(oe.Value) {
			return false
		}
	}
	return true
}

func (l *LiteralMapExpr) IsConstant() bool {
	for _, entry := range l.Entries {
		if !entry.Value.IsConstant() {
			return false
		}
	}
	return true
}

func (l *LiteralMapExpr) Clone() Expression {
	entries := make([]*LiteralMapEntry, len(l.Entries))
	for idx, entry := range l.Entries {
		entries[idx] = &LiteralMapEntry{Key: entry.Key, Value: entry.Value.Clone(), Quoted: entry.Quoted}
	}
	return NewLiteralMapExpr(entries)
}

// FnParam is a parameter of an ArrowFunctionExpr.
type FnParam struct {
	Name string
}

// ArrowFunctionExpr is an inline function expression. The body is either a
// single result expression or a list of statements.
type ArrowFunctionExpr struct {
	Params []*FnParam
	// Body is the expression form of the function body; nil when the body is
	// statement-based.
	Body Expression
	// Statements is the statement form of the function body.
	Statements []Statement
}

func NewArrowFunctionExpr(params []*FnParam, body Expression, statements []Statement) *ArrowFunctionExpr {
	return &ArrowFunctionExpr{Params: params, Body: body, Statements: statements}
}

func (a *ArrowFunctionExpr) IsEquivalent(other Expression) bool {
	// Function expressions are never considered equivalent.
	return false
}

func (a *ArrowFunctionExpr) IsConstant() bool { return false }

func (a *ArrowFunctionExpr) Clone() Expression {
	var body Expression
	if a.Body != nil {
		body = a.Body.Clone()
	}
	return NewArrowFunctionExpr(a.Params, body, a.Statements)
}

// ExpressionStatement is a statement wrapping a single expression.
type ExpressionStatement struct {
	Expr Expression
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{Expr: expr}
}

func (e *ExpressionStatement) isStatement() {}

// ReturnStatement returns a value from the enclosing function.
type ReturnStatement struct {
	Value Expression
}

func NewReturnStatement(value Expression) *ReturnStatement {
	return &ReturnStatement{Value: value}
}

func (r *ReturnStatement) isStatement() {}

// DeclareVarStmt declares a variable in the output scope, with an optional
// initial value.
type DeclareVarStmt struct {
	Name  string
	Value Expression
}

func NewDeclareVarStmt(name string, value Expression) *DeclareVarStmt {
	return &DeclareVarStmt{Name: name, Value: value}
}

func (d *DeclareVarStmt) isStatement() {}

// IfStmt branches on a condition.
type IfStmt struct {
	Condition Expression
	TrueCase  []Statement
	FalseCase []Statement
}

func NewIfStmt(condition Expression, trueCase, falseCase []Statement) *IfStmt {
	return &IfStmt{Condition: condition, TrueCase: trueCase, FalseCase: falseCase}
}

func (i *IfStmt) isStatement() {}
