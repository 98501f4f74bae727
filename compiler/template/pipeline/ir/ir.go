// Package ir holds the enums and small shared value types of the template
// pipeline IR. The operation and expression node types live in subpackages.
package ir

// OpKind distinguishes the different kinds of IR operations.
//
// Includes both creation and update operations.
type OpKind int

const (
	// OpKindListEnd - A special operation type which is used to represent the
	// beginning and end nodes of a linked list of operations.
	OpKindListEnd OpKind = iota
	// OpKindStatement - An operation which wraps an output AST statement.
	OpKindStatement
	// OpKindVariable - An operation which declares and initializes a semantic
	// variable.
	OpKindVariable
	// OpKindElementStart - An operation to begin rendering of an element.
	OpKindElementStart
	// OpKindElement - An operation to render an element with no children.
	OpKindElement
	// OpKindElementEnd - An operation which declares the end of an element.
	OpKindElementEnd
	// OpKindText - An operation to render a text node.
	OpKindText
	// OpKindTemplate - An operation which declares an embedded view.
	OpKindTemplate
	// OpKindConditionalCreate - An operation which declares the view of the
	// first branch of a conditional block.
	OpKindConditionalCreate
	// OpKindConditionalBranchCreate - An operation which declares the view of
	// a non-first branch of a conditional block.
	OpKindConditionalBranchCreate
	// OpKindRepeaterCreate - An operation which declares the primary view (and
	// optional empty view) of a repeater block.
	OpKindRepeaterCreate
	// OpKindProjection - An operation to project content into the view.
	OpKindProjection
	// OpKindListener - An operation declaring an event listener for an element.
	OpKindListener
	// OpKindTwoWayListener - An operation declaring the event side of a
	// two-way binding.
	OpKindTwoWayListener
	// OpKindProperty - An operation to bind an expression to a property of an
	// element.
	OpKindProperty
	// OpKindDomProperty - A binding to a native DOM property.
	OpKindDomProperty
	// OpKindAttribute - An operation to bind an expression to an attribute of
	// an element.
	OpKindAttribute
	// OpKindStyleProp - An operation to bind an expression to a style property
	// of an element.
	OpKindStyleProp
	// OpKindClassProp - An operation to bind an expression to a class property
	// of an element.
	OpKindClassProp
	// OpKindInterpolateText - An operation to interpolate text into a text node.
	OpKindInterpolateText
	// OpKindAdvance - An operation to advance the runtime's implicit slot
	// context during the update phase of a view.
	OpKindAdvance
)

// SemanticVariableKind distinguishes the different kinds of semantic variables.
type SemanticVariableKind int

const (
	// SemanticVariableKindContext - Represents the context of a particular view.
	SemanticVariableKindContext SemanticVariableKind = iota
	// SemanticVariableKindIdentifier - Represents an identifier declared in
	// the lexical scope of a view.
	SemanticVariableKindIdentifier
	// SemanticVariableKindSavedView - Represents a saved state that can be
	// used to restore a view in a listener handler function.
	SemanticVariableKindSavedView
	// SemanticVariableKindAlias - An alias generated by a special embedded
	// view type (e.g. a `@for` block).
	SemanticVariableKindAlias
)

// CompatibilityMode controls whether the output of the pipeline should be
// made to exactly match the output of the legacy template definition builder.
type CompatibilityMode int

const (
	// CompatibilityModeNormal - Normal compilation mode.
	CompatibilityModeNormal CompatibilityMode = iota
	// CompatibilityModeTemplateDefinitionBuilder - Compatibility mode matching
	// the legacy template definition builder's output.
	CompatibilityModeTemplateDefinitionBuilder
)

// BindingKind distinguishes the different kinds of bindings in the template IR.
type BindingKind int

const (
	// BindingKindProperty - A property binding.
	BindingKindProperty BindingKind = iota
	// BindingKindAttribute - An attribute binding.
	BindingKindAttribute
	// BindingKindClassName - A class binding.
	BindingKindClassName
	// BindingKindStyleProperty - A style binding.
	BindingKindStyleProperty
	// BindingKindAnimation - A binding to an animation trigger.
	BindingKindAnimation
	// BindingKindTwoWayProperty - The property side of a two-way binding.
	BindingKindTwoWayProperty
)

// TemplateKind distinguishes the different sources of an embedded view.
type TemplateKind int

const (
	// TemplateKindTemplate - A literal template element.
	TemplateKindTemplate TemplateKind = iota
	// TemplateKindStructural - A template generated by a structural directive.
	TemplateKindStructural
	// TemplateKindBlock - A template generated by a control flow block.
	TemplateKindBlock
)

// ExpressionKind distinguishes the logical IR expression nodes.
type ExpressionKind int

const (
	// ExpressionKindLexicalRead - A lexical read of a variable name.
	ExpressionKindLexicalRead ExpressionKind = iota
	// ExpressionKindContext - A reference to the current view context.
	ExpressionKindContext
	// ExpressionKindNextContext - A reference to the view context of a parent
	// view.
	ExpressionKindNextContext
	// ExpressionKindReadVariable - A read of a variable declared by a
	// VariableOp.
	ExpressionKindReadVariable
)

// VariableFlags carries extra processing directives on a variable declaration.
type VariableFlags int

const (
	VariableFlagsNone VariableFlags = 0
	// VariableFlagsAlwaysInline - The variable's initializer should always be
	// inlined at its usage sites.
	VariableFlagsAlwaysInline VariableFlags = 0b0001
)

// SlotHandle links an operation that consumes a data slot with the consumers
// of that slot. The slot index is assigned by the slot allocation phase and is
// nil before that phase has run.
type SlotHandle struct {
	Slot *int
}

// NewSlotHandle creates an unassigned SlotHandle.
func NewSlotHandle() *SlotHandle {
	return &SlotHandle{}
}

// AssignedSlotHandle creates a SlotHandle with the given slot already
// assigned. Mostly useful in tests.
func AssignedSlotHandle(slot int) *SlotHandle {
	return &SlotHandle{Slot: &slot}
}
