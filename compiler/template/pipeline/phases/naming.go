package phases

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"tplc-go/compiler/output"
	"tplc-go/compiler/template/pipeline/compilation"
	"tplc-go/compiler/template/pipeline/ir"
	"tplc-go/compiler/template/pipeline/ir/expression"
	"tplc-go/compiler/template/pipeline/ir/operations"
	"tplc-go/compiler/template/pipeline/ir/ops/create"
	"tplc-go/compiler/template/pipeline/ir/ops/shared"
	"tplc-go/compiler/template/pipeline/ir/ops/update"
	"tplc-go/compiler/template/pipeline/ir/variable"
)

var invalidIdentifierChars = regexp.MustCompile(`[^a-zA-Z0-9_$]`)

// sanitizeIdentifier rewrites a name into a valid bare identifier.
func sanitizeIdentifier(name string) string {
	sanitized := invalidIdentifierChars.ReplaceAllString(name, "_")
	if len(sanitized) > 0 && sanitized[0] >= '0' && sanitized[0] <= '9' {
		sanitized = "_" + sanitized
	}
	return sanitized
}

// namingState is the counter shared across the whole job during naming.
// Every allocated variable name consumes it, so names are unique across all
// views even though views are processed in a depth-first, base-name-scoped
// order.
type namingState struct {
	index int
}

// NameFunctionsAndVariables generates names for functions and variables
// across all units of a job. This includes propagating variable names into
// the ReadVariableExprs that read them, so that reads can be emitted
// correctly.
//
// The pass requires every slot the naming rules depend on to already be
// assigned; a missing slot is an internal consistency error and panics.
func NameFunctionsAndVariables(job compilation.Job) {
	state := &namingState{}
	compatibility := job.Compatibility() == ir.CompatibilityModeTemplateDefinitionBuilder
	addNamesToUnit(job.Root(), job.ComponentName(), state, compatibility)
}

func addNamesToUnit(unit compilation.Unit, baseName string, state *namingState, compatibility bool) {
	if unit.FnName() == nil {
		unit.SetFnName(sanitizeIdentifier(baseName + "_" + unit.Job().FnSuffix()))
	}
	fnName := *unit.FnName()

	// Phase 1: scan the unit's ops, assigning listener and variable names and
	// recursing into child units at their slot offsets. The names assigned to
	// variables declared in this unit are collected so they can be propagated
	// into reads of those variables afterwards.
	varNames := make(map[operations.XrefId]string)
	for op := unit.Create().Head(); op.Kind() != ir.OpKindListEnd; op = op.Next() {
		nameOp(op, unit, fnName, baseName, varNames, state, compatibility)
	}
	for op := unit.Update().Head(); op.Kind() != ir.OpKindListEnd; op = op.Next() {
		nameOp(op, unit, fnName, baseName, varNames, state, compatibility)
	}

	// Phase 2: push the assigned names into the ReadVariableExprs which
	// represent reads of this unit's variables. A unit's declarations are
	// visible to every expression within it, including ones that precede the
	// declaration, which is why this cannot happen during the scan above.
	backfillVariableReads(unit, varNames)
}

func nameOp(
	op operations.Op,
	unit compilation.Unit,
	fnName string,
	baseName string,
	varNames map[operations.XrefId]string,
	state *namingState,
	compatibility bool,
) {
	switch op.Kind() {
	case ir.OpKindProperty:
		propertyOp := op.(*update.PropertyOp)
		if propertyOp.BindingKind == ir.BindingKindAnimation {
			propertyOp.Name = "@" + propertyOp.Name
		}
	case ir.OpKindDomProperty:
		domPropertyOp := op.(*update.DomPropertyOp)
		if domPropertyOp.BindingKind == ir.BindingKindAnimation {
			domPropertyOp.Name = "@" + domPropertyOp.Name
		}
	case ir.OpKindListener:
		listenerOp := op.(*create.ListenerOp)
		if listenerOp.HandlerFnName != nil {
			break
		}
		if !listenerOp.HostListener && !slotAssigned(listenerOp.TargetSlot) {
			panic("AssertionError: expected a slot to be assigned")
		}
		animation := ""
		if listenerOp.IsAnimationListener {
			phase := ""
			if listenerOp.AnimationPhase != nil {
				phase = *listenerOp.AnimationPhase
			}
			listenerOp.Name = fmt.Sprintf("@%s.%s", listenerOp.Name, phase)
			animation = "animation"
		}
		var name string
		if listenerOp.HostListener {
			name = fmt.Sprintf("%s_%s%s_HostBindingHandler", baseName, animation, listenerOp.Name)
		} else {
			name = fmt.Sprintf(
				"%s_%s_%s%s_%d_listener",
				fnName, tagAsIdentifier(listenerOp.Tag), animation, listenerOp.Name,
				*listenerOp.TargetSlot.Slot,
			)
		}
		sanitized := sanitizeIdentifier(name)
		listenerOp.HandlerFnName = &sanitized
	case ir.OpKindTwoWayListener:
		twoWayOp := op.(*create.TwoWayListenerOp)
		if twoWayOp.HandlerFnName != nil {
			break
		}
		if !slotAssigned(twoWayOp.TargetSlot) {
			panic("AssertionError: expected a slot to be assigned")
		}
		name := fmt.Sprintf(
			"%s_%s_%s_%d_listener",
			fnName, tagAsIdentifier(twoWayOp.Tag), twoWayOp.Name, *twoWayOp.TargetSlot.Slot,
		)
		sanitized := sanitizeIdentifier(name)
		twoWayOp.HandlerFnName = &sanitized
	case ir.OpKindVariable:
		variableOp := op.(*shared.VariableOp)
		varNames[variableOp.Xref()] = variableName(variableOp.Variable, state, compatibility)
	case ir.OpKindTemplate, ir.OpKindConditionalCreate, ir.OpKindConditionalBranchCreate:
		viewUnit := mustBeView(unit)
		embedded := embeddedViewOf(op)
		if !slotAssigned(embedded.Handle) {
			panic("AssertionError: expected a slot to be assigned")
		}
		childView, ok := viewUnit.Component().View(embedded.Xref())
		if !ok {
			break
		}
		suffix := ""
		if embedded.FunctionNameSuffix != "" {
			suffix = "_" + embedded.FunctionNameSuffix
		}
		childBase := fmt.Sprintf("%s%s_%d", baseName, suffix, *embedded.Handle.Slot)
		addNamesToUnit(childView, childBase, state, compatibility)
	case ir.OpKindRepeaterCreate:
		viewUnit := mustBeView(unit)
		repeaterOp := op.(*create.RepeaterCreateOp)
		if !slotAssigned(repeaterOp.Handle) {
			panic("AssertionError: expected a slot to be assigned")
		}
		slot := *repeaterOp.Handle.Slot
		if repeaterOp.EmptyView != 0 {
			if emptyView, ok := viewUnit.Component().View(repeaterOp.EmptyView); ok {
				// The empty view function lives at slot+2; metadata occupies
				// the first slot and the primary view function slot+1.
				emptyBase := fmt.Sprintf("%s_%sEmpty_%d", baseName, repeaterOp.FunctionNameSuffix, slot+2)
				addNamesToUnit(emptyView, emptyBase, state, compatibility)
			}
		}
		if primaryView, ok := viewUnit.Component().View(repeaterOp.Xref()); ok {
			primaryBase := fmt.Sprintf("%s_%s_%d", baseName, repeaterOp.FunctionNameSuffix, slot+1)
			addNamesToUnit(primaryView, primaryBase, state, compatibility)
		}
	case ir.OpKindProjection:
		viewUnit := mustBeView(unit)
		projectionOp := op.(*create.ProjectionOp)
		if !slotAssigned(projectionOp.Handle) {
			panic("AssertionError: expected a slot to be assigned")
		}
		if projectionOp.FallbackView != 0 {
			if fallbackView, ok := viewUnit.Component().View(projectionOp.FallbackView); ok {
				fallbackBase := fmt.Sprintf("%s_ProjectionFallback_%d", baseName, *projectionOp.Handle.Slot)
				addNamesToUnit(fallbackView, fallbackBase, state, compatibility)
			}
		}
	case ir.OpKindStyleProp:
		stylePropOp := op.(*update.StylePropOp)
		stylePropOp.Name = normalizeStylePropName(stylePropOp.Name)
		if compatibility {
			stylePropOp.Name = stripImportant(stylePropOp.Name)
		}
	case ir.OpKindClassProp:
		classPropOp := op.(*update.ClassPropOp)
		if compatibility {
			classPropOp.Name = stripImportant(classPropOp.Name)
		}
	case ir.OpKindStatement, ir.OpKindElement, ir.OpKindElementStart, ir.OpKindElementEnd,
		ir.OpKindText, ir.OpKindAttribute, ir.OpKindInterpolateText, ir.OpKindAdvance:
		// These ops declare nothing that needs a name.
	default:
		panic(fmt.Sprintf("AssertionError: nameOp doesn't handle %v", op.Kind()))
	}
}

// backfillVariableReads resolves every unnamed ReadVariableExpr in the unit
// against the names assigned to the unit's variable declarations. A read of a
// variable that was never declared in the unit means the upstream IR is
// inconsistent, which is fatal.
func backfillVariableReads(unit compilation.Unit, varNames map[operations.XrefId]string) {
	resolve := func(expr output.Expression, _ expression.VisitorContextFlag) {
		readVar, ok := expr.(*expression.ReadVariableExpr)
		if !ok || readVar.Name != nil {
			return
		}
		name, ok := varNames[readVar.Xref]
		if !ok {
			panic(fmt.Sprintf("AssertionError: variable %d not yet named", readVar.Xref))
		}
		readVar.Name = &name
	}
	for op := unit.Create().Head(); op.Kind() != ir.OpKindListEnd; op = op.Next() {
		expression.VisitExpressionsInOp(op, resolve)
	}
	for op := unit.Update().Head(); op.Kind() != ir.OpKindListEnd; op = op.Next() {
		expression.VisitExpressionsInOp(op, resolve)
	}
}

// variableName assigns the variable's final name if it does not already have
// one, consuming the shared counter, and returns it.
func variableName(v variable.SemanticVariable, state *namingState, compatibility bool) string {
	if v.Name() == nil {
		switch v.Kind() {
		case ir.SemanticVariableKindContext:
			v.SetName(fmt.Sprintf("ctx_r%d", state.index))
			state.index++
		case ir.SemanticVariableKindIdentifier:
			identifierVar := v.(*variable.IdentifierVariable)
			if compatibility {
				// Prefix increment and `_r` match the legacy naming scheme.
				// That scheme collides when the identifier is itself `ctx`, so
				// those get an `i` inserted.
				prefix := ""
				if identifierVar.Identifier == "ctx" {
					prefix = "i"
				}
				state.index++
				v.SetName(fmt.Sprintf("%s_%sr%d", identifierVar.Identifier, prefix, state.index))
			} else {
				v.SetName(fmt.Sprintf("%s_i%d", identifierVar.Identifier, state.index))
				state.index++
			}
		default:
			// Prefix increment for compatibility with the legacy scheme.
			state.index++
			v.SetName(fmt.Sprintf("_r%d", state.index))
		}
	}
	return *v.Name()
}

func mustBeView(unit compilation.Unit) *compilation.ViewCompilationUnit {
	viewUnit, ok := unit.(*compilation.ViewCompilationUnit)
	if !ok {
		panic("AssertionError: must be compiling a component template")
	}
	return viewUnit
}

func embeddedViewOf(op operations.Op) *create.EmbeddedViewOpBase {
	switch embedOp := op.(type) {
	case *create.TemplateOp:
		return &embedOp.EmbeddedViewOpBase
	case *create.ConditionalCreateOp:
		return &embedOp.EmbeddedViewOpBase
	case *create.ConditionalBranchCreateOp:
		return &embedOp.EmbeddedViewOpBase
	default:
		panic(fmt.Sprintf("AssertionError: not an embedded view op: %v", op.Kind()))
	}
}

func slotAssigned(handle *ir.SlotHandle) bool {
	return handle != nil && handle.Slot != nil
}

func tagAsIdentifier(tag *string) string {
	if tag == nil {
		return ""
	}
	// DOM element tags may contain hyphens.
	return strings.ReplaceAll(*tag, "-", "_")
}

// normalizeStylePropName normalizes a style property name by hyphenating it,
// unless it is a CSS custom property.
func normalizeStylePropName(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	return hyphenate(name)
}

// hyphenate converts a camelCase property name to kebab-case.
func hyphenate(value string) string {
	var result strings.Builder
	for i, r := range value {
		if i > 0 && unicode.IsLower(rune(value[i-1])) && unicode.IsUpper(r) {
			result.WriteRune('-')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}

// stripImportant strips an `!important` marker out of a style or class name,
// along with everything after it.
func stripImportant(name string) string {
	if idx := strings.Index(name, "!important"); idx > -1 {
		return name[:idx]
	}
	return name
}
