// Package operations defines the base operation interface of the template
// pipeline IR and the intrusive linked list that orders operations within a
// compilation unit.
package operations

import (
	"tplc-go/compiler/template/pipeline/ir"
)

// XrefId is an identity token correlating a declaration (a variable, a view)
// with every reference to it. Ids are allocated by the compilation job, are
// never reused, and are not themselves names.
type XrefId int

// ConstIndex is an index into the shared constants array of a compilation.
type ConstIndex int

// Op is the base interface for semantic operations performed within a
// template. Ops are linked into an OpList and carry intrusive prev/next
// pointers plus the id of their owning list.
type Op interface {
	Kind() ir.OpKind
	Prev() Op
	SetPrev(op Op)
	Next() Op
	SetNext(op Op)
	ListId() *int
	SetListId(id *int)
}

// CreateOp is an operation in the creation IR of a view.
type CreateOp interface {
	Op
	Xref() XrefId
}

// UpdateOp is an operation in the update IR of a view.
type UpdateOp interface {
	Op
	Xref() XrefId
}

// OpBase carries the intrusive list state shared by all concrete ops. Embed
// it by value and initialize it with NewOpBase.
type OpBase struct {
	prev   Op
	next   Op
	listId *int
}

// NewOpBase returns an OpBase that is not yet owned by any list.
func NewOpBase() OpBase {
	return OpBase{}
}

func (o *OpBase) Prev() Op          { return o.prev }
func (o *OpBase) SetPrev(op Op)     { o.prev = op }
func (o *OpBase) Next() Op          { return o.next }
func (o *OpBase) SetNext(op Op)     { o.next = op }
func (o *OpBase) ListId() *int      { return o.listId }
func (o *OpBase) SetListId(id *int) { o.listId = id }

// listEndOp is the sentinel node type used for the head and tail of an
// OpList. It is never observable through normal traversal, which stops at
// ir.OpKindListEnd.
type listEndOp struct {
	OpBase
	owner int
}

func (l *listEndOp) Kind() ir.OpKind { return ir.OpKindListEnd }

func (l *listEndOp) ListId() *int { return &l.owner }

func (l *listEndOp) SetListId(id *int) {
	if id != nil {
		l.owner = *id
	}
}

var nextListId int

// OpList is a doubly linked list of ops, bracketed by list-end sentinels. The
// list tracks ownership of its ops: inserting an op that already belongs to a
// list, or removing one that belongs to a different list, is an internal
// error and panics.
type OpList struct {
	id   int
	head Op
	tail Op
}

// NewOpList creates an empty OpList.
func NewOpList() *OpList {
	id := nextListId
	nextListId++
	head := &listEndOp{owner: id}
	tail := &listEndOp{owner: id}
	head.SetNext(tail)
	tail.SetPrev(head)
	return &OpList{id: id, head: head, tail: tail}
}

// Head returns the first op of the list, which for an empty list is the tail
// sentinel. Iterate with:
//
//	for op := list.Head(); op.Kind() != ir.OpKindListEnd; op = op.Next() { ... }
func (l *OpList) Head() Op {
	return l.head.Next()
}

// Tail returns the tail sentinel of the list.
func (l *OpList) Tail() Op {
	return l.tail
}

// Size returns the number of ops in the list, excluding the sentinels.
func (l *OpList) Size() int {
	n := 0
	for op := l.Head(); op.Kind() != ir.OpKindListEnd; op = op.Next() {
		n++
	}
	return n
}

func (l *OpList) adopt(op Op) {
	if op.Kind() == ir.OpKindListEnd {
		panic("AssertionError: cannot insert a list end node")
	}
	if op.ListId() != nil {
		panic("AssertionError: op is already owned by a list")
	}
	id := l.id
	op.SetListId(&id)
}

func (l *OpList) assertOwned(op Op) {
	if op.ListId() == nil || *op.ListId() != l.id {
		panic("AssertionError: op is not owned by this list")
	}
}

// Push appends an op to the end of the list.
func (l *OpList) Push(op Op) {
	l.adopt(op)
	prev := l.tail.Prev()
	prev.SetNext(op)
	op.SetPrev(prev)
	op.SetNext(l.tail)
	l.tail.SetPrev(op)
}

// Prepend inserts ops at the beginning of the list, preserving their order.
func (l *OpList) Prepend(ops []Op) {
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		l.adopt(op)
		next := l.head.Next()
		l.head.SetNext(op)
		op.SetPrev(l.head)
		op.SetNext(next)
		next.SetPrev(op)
	}
}

// InsertBefore inserts newOp immediately before an op already in the list.
func (l *OpList) InsertBefore(op Op, newOp Op) {
	l.assertOwned(op)
	l.adopt(newOp)
	prev := op.Prev()
	prev.SetNext(newOp)
	newOp.SetPrev(prev)
	newOp.SetNext(op)
	op.SetPrev(newOp)
}

// InsertAfter inserts newOp immediately after an op already in the list.
func (l *OpList) InsertAfter(op Op, newOp Op) {
	l.assertOwned(op)
	l.adopt(newOp)
	next := op.Next()
	op.SetNext(newOp)
	newOp.SetPrev(op)
	newOp.SetNext(next)
	next.SetPrev(newOp)
}

// Remove detaches an op from the list.
func (l *OpList) Remove(op Op) {
	if op.Kind() == ir.OpKindListEnd {
		panic("AssertionError: cannot remove a list end node")
	}
	l.assertOwned(op)
	prev, next := op.Prev(), op.Next()
	prev.SetNext(next)
	next.SetPrev(prev)
	op.SetPrev(nil)
	op.SetNext(nil)
	op.SetListId(nil)
}

// Replace swaps oldOp, which must be in the list, for newOp.
func (l *OpList) Replace(oldOp Op, newOp Op) {
	if oldOp.Kind() == ir.OpKindListEnd {
		panic("AssertionError: cannot replace a list end node")
	}
	l.assertOwned(oldOp)
	l.adopt(newOp)
	prev, next := oldOp.Prev(), oldOp.Next()
	prev.SetNext(newOp)
	newOp.SetPrev(prev)
	newOp.SetNext(next)
	next.SetPrev(newOp)
	oldOp.SetPrev(nil)
	oldOp.SetNext(nil)
	oldOp.SetListId(nil)
}
