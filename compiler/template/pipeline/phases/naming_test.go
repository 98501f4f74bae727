package phases

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func strPtr(s string) *string { return &s }

func newTestJob(componentName string, compatibility ir.CompatibilityMode) *compilation.ComponentCompilationJob {
	return compilation.NewComponentCompilationJob(componentName, compatibility)
}

func TestUnitFunctionNaming(t *testing.T) {
	t.Run("names the root view from the component name and job suffix", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		NameFunctionsAndVariables(job)
		require.NotNil(t, job.Root().FnName())
		assert.Equal(t, "Comp_Template", *job.Root().FnName())
	})

	t.Run("sanitizes component names into valid identifiers", func(t *testing.T) {
		job := newTestJob("My App", ir.CompatibilityModeNormal)
		NameFunctionsAndVariables(job)
		assert.Equal(t, "My_App_Template", *job.Root().FnName())
	})

	t.Run("does not overwrite a pre-assigned function name", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		job.Root().SetFnName("Existing")
		NameFunctionsAndVariables(job)
		assert.Equal(t, "Existing", *job.Root().FnName())
	})

	t.Run("is idempotent", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		NameFunctionsAndVariables(job)
		first := *job.Root().FnName()
		NameFunctionsAndVariables(job)
		assert.Equal(t, first, *job.Root().FnName())
	})

	t.Run("names embedded views from their slot and suffix", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		child := job.AllocateView(job.Root().Xref())
		templateOp := create.NewTemplateOp(child.Xref(), ir.TemplateKindTemplate, strPtr("div"), "")
		templateOp.Handle = ir.AssignedSlotHandle(2)
		job.RootView().Create().Push(templateOp)

		NameFunctionsAndVariables(job)
		require.NotNil(t, child.FnName())
		assert.Equal(t, "Comp_2_Template", *child.FnName())
	})

	t.Run("includes a non-empty function name suffix", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		child := job.AllocateView(job.Root().Xref())
		conditionalOp := create.NewConditionalCreateOp(child.Xref(), nil, "Conditional")
		conditionalOp.Handle = ir.AssignedSlotHandle(4)
		job.RootView().Create().Push(conditionalOp)

		NameFunctionsAndVariables(job)
		require.NotNil(t, child.FnName())
		assert.Equal(t, "Comp_Conditional_4_Template", *child.FnName())
	})

	t.Run("names conditional branch views like template views", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		child := job.AllocateView(job.Root().Xref())
		branchOp := create.NewConditionalBranchCreateOp(child.Xref(), nil, "Conditional")
		branchOp.Handle = ir.AssignedSlotHandle(5)
		job.RootView().Create().Push(branchOp)

		NameFunctionsAndVariables(job)
		require.NotNil(t, child.FnName())
		assert.Equal(t, "Comp_Conditional_5_Template", *child.FnName())
	})
}

func TestRepeaterViewNaming(t *testing.T) {
	t.Run("reserves slot+1 for the primary view and slot+2 for the empty view", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		primary := job.AllocateView(job.Root().Xref())
		empty := job.AllocateView(job.Root().Xref())
		repeaterOp := create.NewRepeaterCreateOp(primary.Xref(), empty.Xref(), nil, nil, nil)
		repeaterOp.Handle = ir.AssignedSlotHandle(5)
		job.RootView().Create().Push(repeaterOp)

		NameFunctionsAndVariables(job)
		require.NotNil(t, primary.FnName())
		require.NotNil(t, empty.FnName())
		assert.Equal(t, "Comp_For_6_Template", *primary.FnName())
		assert.Equal(t, "Comp_ForEmpty_7_Template", *empty.FnName())
	})

	t.Run("names the empty view before the primary view", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		primary := job.AllocateView(job.Root().Xref())
		empty := job.AllocateView(job.Root().Xref())
		repeaterOp := create.NewRepeaterCreateOp(primary.Xref(), empty.Xref(), nil, nil, nil)
		repeaterOp.Handle = ir.AssignedSlotHandle(0)
		job.RootView().Create().Push(repeaterOp)

		primary.Create().Push(shared.NewVariableOp(
			job.AllocateXref(), variable.NewContextVariable(primary.Xref()), nil, ir.VariableFlagsNone))
		empty.Create().Push(shared.NewVariableOp(
			job.AllocateXref(), variable.NewContextVariable(empty.Xref()), nil, ir.VariableFlagsNone))

		NameFunctionsAndVariables(job)

		emptyVar := empty.Create().Head().(*shared.VariableOp)
		primaryVar := primary.Create().Head().(*shared.VariableOp)
		assert.Equal(t, "ctx_r0", *emptyVar.Variable.Name())
		assert.Equal(t, "ctx_r1", *primaryVar.Variable.Name())
	})

	t.Run("panics when the repeater slot is unassigned", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		primary := job.AllocateView(job.Root().Xref())
		repeaterOp := create.NewRepeaterCreateOp(primary.Xref(), 0, nil, nil, nil)
		job.RootView().Create().Push(repeaterOp)

		require.PanicsWithValue(t, "AssertionError: expected a slot to be assigned", func() {
			NameFunctionsAndVariables(job)
		})
	})
}

func TestListenerNaming(t *testing.T) {
	t.Run("names view listeners from function name, tag, event and slot", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		listenerOp := create.NewListenerOp(
			job.AllocateXref(), ir.AssignedSlotHandle(3), "click", strPtr("my-el"), nil, nil, false)
		job.RootView().Create().Push(listenerOp)

		NameFunctionsAndVariables(job)
		require.NotNil(t, listenerOp.HandlerFnName)
		assert.Equal(t, "Comp_Template_my_el_click_3_listener", *listenerOp.HandlerFnName)
	})

	t.Run("names host listeners from the base name", func(t *testing.T) {
		job := compilation.NewHostBindingCompilationJob("Comp", ir.CompatibilityModeNormal)
		listenerOp := create.NewListenerOp(job.AllocateXref(), nil, "click", nil, nil, nil, true)
		job.Root().Create().Push(listenerOp)

		NameFunctionsAndVariables(job)
		require.NotNil(t, listenerOp.HandlerFnName)
		assert.Equal(t, "Comp_click_HostBindingHandler", *listenerOp.HandlerFnName)
		assert.Equal(t, "Comp_HostBindings", *job.Root().FnName())
	})

	t.Run("rewrites animation listener events and tags the handler name", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		listenerOp := create.NewListenerOp(
			job.AllocateXref(), ir.AssignedSlotHandle(4), "fade", strPtr("div"), nil, strPtr("start"), false)
		job.RootView().Create().Push(listenerOp)

		NameFunctionsAndVariables(job)
		assert.Equal(t, "@fade.start", listenerOp.Name)
		require.NotNil(t, listenerOp.HandlerFnName)
		assert.Equal(t, "Comp_Template_div_animation_fade_start_4_listener", *listenerOp.HandlerFnName)
	})

	t.Run("skips listeners that already carry a handler name", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		listenerOp := create.NewListenerOp(
			job.AllocateXref(), ir.AssignedSlotHandle(3), "click", strPtr("my-el"), nil, nil, false)
		listenerOp.HandlerFnName = strPtr("preassigned")
		job.RootView().Create().Push(listenerOp)

		NameFunctionsAndVariables(job)
		assert.Equal(t, "preassigned", *listenerOp.HandlerFnName)
	})

	t.Run("panics on a view listener without an assigned slot", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		listenerOp := create.NewListenerOp(
			job.AllocateXref(), ir.NewSlotHandle(), "click", strPtr("my-el"), nil, nil, false)
		job.RootView().Create().Push(listenerOp)

		require.PanicsWithValue(t, "AssertionError: expected a slot to be assigned", func() {
			NameFunctionsAndVariables(job)
		})
	})

	t.Run("names two-way listeners like view listeners", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		twoWayOp := create.NewTwoWayListenerOp(
			job.AllocateXref(), ir.AssignedSlotHandle(2), "valueChange", strPtr("my-input"), nil)
		job.RootView().Create().Push(twoWayOp)

		NameFunctionsAndVariables(job)
		require.NotNil(t, twoWayOp.HandlerFnName)
		assert.Equal(t, "Comp_Template_my_input_valueChange_2_listener", *twoWayOp.HandlerFnName)
	})

	t.Run("panics on a two-way listener without an assigned slot", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		twoWayOp := create.NewTwoWayListenerOp(
			job.AllocateXref(), ir.NewSlotHandle(), "valueChange", strPtr("my-input"), nil)
		job.RootView().Create().Push(twoWayOp)

		require.PanicsWithValue(t, "AssertionError: expected a slot to be assigned", func() {
			NameFunctionsAndVariables(job)
		})
	})
}

func TestVariableNaming(t *testing.T) {
	declareVariable := func(job *compilation.ComponentCompilationJob, unit *compilation.ViewCompilationUnit, v variable.SemanticVariable) *shared.VariableOp {
		op := shared.NewVariableOp(job.AllocateXref(), v, nil, ir.VariableFlagsNone)
		unit.Create().Push(op)
		return op
	}

	t.Run("allocates context, identifier and saved view names from one counter", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		ctxOp := declareVariable(job, job.RootView(), variable.NewContextVariable(job.Root().Xref()))
		itemOp := declareVariable(job, job.RootView(), variable.NewIdentifierVariable("item", false))
		savedOp := declareVariable(job, job.RootView(), variable.NewSavedViewVariable(job.Root().Xref()))

		NameFunctionsAndVariables(job)

		assert.Equal(t, "ctx_r0", *ctxOp.Variable.Name())
		assert.Equal(t, "item_i1", *itemOp.Variable.Name())
		assert.Equal(t, "_r3", *savedOp.Variable.Name())
	})

	t.Run("keeps pre-assigned variable names", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		ctx := variable.NewContextVariable(job.Root().Xref())
		ctx.SetName("already")
		ctxOp := declareVariable(job, job.RootView(), ctx)

		NameFunctionsAndVariables(job)
		assert.Equal(t, "already", *ctxOp.Variable.Name())
	})

	t.Run("uses the legacy scheme in compatibility mode", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeTemplateDefinitionBuilder)
		ctxOp := declareVariable(job, job.RootView(), variable.NewContextVariable(job.Root().Xref()))
		itemOp := declareVariable(job, job.RootView(), variable.NewIdentifierVariable("item", false))
		// The legacy `_r` suffix collides with the generated context names when
		// the identifier is itself `ctx`.
		ctxIdentOp := declareVariable(job, job.RootView(), variable.NewIdentifierVariable("ctx", false))

		NameFunctionsAndVariables(job)

		assert.Equal(t, "ctx_r0", *ctxOp.Variable.Name())
		assert.Equal(t, "item_r1", *itemOp.Variable.Name())
		assert.Equal(t, "ctx_ir2", *ctxIdentOp.Variable.Name())
	})

	t.Run("context names are distinct and increasing across nested views", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		rootCtx := declareVariable(job, job.RootView(), variable.NewContextVariable(job.Root().Xref()))

		child := job.AllocateView(job.Root().Xref())
		templateOp := create.NewTemplateOp(child.Xref(), ir.TemplateKindTemplate, nil, "")
		templateOp.Handle = ir.AssignedSlotHandle(1)
		job.RootView().Create().Push(templateOp)
		childCtx := declareVariable(job, child, variable.NewContextVariable(child.Xref()))

		grandchild := job.AllocateView(child.Xref())
		innerTemplateOp := create.NewTemplateOp(grandchild.Xref(), ir.TemplateKindTemplate, nil, "")
		innerTemplateOp.Handle = ir.AssignedSlotHandle(0)
		child.Create().Push(innerTemplateOp)
		grandchildCtx := declareVariable(job, grandchild, variable.NewContextVariable(grandchild.Xref()))

		NameFunctionsAndVariables(job)

		names := []string{
			*rootCtx.Variable.Name(),
			*childCtx.Variable.Name(),
			*grandchildCtx.Variable.Name(),
		}
		// Nested views are visited depth-first during the scan of the parent's
		// ops, so the child's context is named before the root's scan ends but
		// the numbering stays strictly increasing in allocation order.
		if diff := cmp.Diff([]string{"ctx_r0", "ctx_r1", "ctx_r2"}, names); diff != "" {
			t.Errorf("context names mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestVariableReadBackfill(t *testing.T) {
	t.Run("resolves reads declared later in the unit", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		varXref := job.AllocateXref()

		// The read lexically precedes the declaration.
		read := expression.NewReadVariableExpr(varXref)
		job.RootView().Update().Push(update.NewPropertyOp(
			job.AllocateXref(), "title", read, ir.BindingKindProperty))
		job.RootView().Create().Push(shared.NewVariableOp(
			varXref, variable.NewContextVariable(job.Root().Xref()), nil, ir.VariableFlagsNone))

		NameFunctionsAndVariables(job)
		require.NotNil(t, read.Name)
		assert.Equal(t, "ctx_r0", *read.Name)
	})

	t.Run("read names match their declaration's name", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		varXref := job.AllocateXref()
		varOp := shared.NewVariableOp(
			varXref, variable.NewIdentifierVariable("item", false), nil, ir.VariableFlagsNone)
		job.RootView().Create().Push(varOp)

		read := expression.NewReadVariableExpr(varXref)
		job.RootView().Update().Push(update.NewStylePropOp(job.AllocateXref(), "width", read, nil))

		NameFunctionsAndVariables(job)
		require.NotNil(t, read.Name)
		assert.Equal(t, *varOp.Variable.Name(), *read.Name)
	})

	t.Run("resolves reads inside listener handler ops", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		varXref := job.AllocateXref()
		job.RootView().Create().Push(shared.NewVariableOp(
			varXref, variable.NewContextVariable(job.Root().Xref()), nil, ir.VariableFlagsNone))

		read := expression.NewReadVariableExpr(varXref)
		handler := update.NewPropertyOp(job.AllocateXref(), "value", read, ir.BindingKindProperty)
		listenerOp := create.NewListenerOp(
			job.AllocateXref(), ir.AssignedSlotHandle(0), "click", strPtr("button"),
			[]operations.UpdateOp{handler}, nil, false)
		job.RootView().Create().Push(listenerOp)

		NameFunctionsAndVariables(job)
		require.NotNil(t, read.Name)
		assert.Equal(t, "ctx_r0", *read.Name)
	})

	t.Run("leaves already-resolved reads untouched", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		varXref := job.AllocateXref()
		job.RootView().Create().Push(shared.NewVariableOp(
			varXref, variable.NewContextVariable(job.Root().Xref()), nil, ir.VariableFlagsNone))

		read := expression.NewReadVariableExpr(varXref)
		read.Name = strPtr("frozen")
		job.RootView().Update().Push(update.NewPropertyOp(
			job.AllocateXref(), "title", read, ir.BindingKindProperty))

		NameFunctionsAndVariables(job)
		assert.Equal(t, "frozen", *read.Name)
	})

	t.Run("panics on a read of an undeclared variable", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		read := expression.NewReadVariableExpr(99)
		job.RootView().Update().Push(update.NewPropertyOp(
			job.AllocateXref(), "title", read, ir.BindingKindProperty))

		require.PanicsWithValue(t, "AssertionError: variable 99 not yet named", func() {
			NameFunctionsAndVariables(job)
		})
	})
}

func TestPropertyAndStyleNaming(t *testing.T) {
	t.Run("prefixes animation trigger bindings", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		propertyOp := update.NewPropertyOp(
			job.AllocateXref(), "fade", output.NewLiteralExpr(true), ir.BindingKindAnimation)
		domPropertyOp := update.NewDomPropertyOp(
			job.AllocateXref(), "slide", output.NewLiteralExpr(true), ir.BindingKindAnimation)
		plainOp := update.NewPropertyOp(
			job.AllocateXref(), "title", output.NewLiteralExpr("x"), ir.BindingKindProperty)
		job.RootView().Update().Push(propertyOp)
		job.RootView().Update().Push(domPropertyOp)
		job.RootView().Update().Push(plainOp)

		NameFunctionsAndVariables(job)
		assert.Equal(t, "@fade", propertyOp.Name)
		assert.Equal(t, "@slide", domPropertyOp.Name)
		assert.Equal(t, "title", plainOp.Name)
	})

	t.Run("hyphenates style property names", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		stylePropOp := update.NewStylePropOp(job.AllocateXref(), "fontSize", nil, nil)
		customPropOp := update.NewStylePropOp(job.AllocateXref(), "--my-var", nil, nil)
		job.RootView().Update().Push(stylePropOp)
		job.RootView().Update().Push(customPropOp)

		NameFunctionsAndVariables(job)
		assert.Equal(t, "font-size", stylePropOp.Name)
		assert.Equal(t, "--my-var", customPropOp.Name)
	})

	t.Run("strips !important in compatibility mode", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeTemplateDefinitionBuilder)
		stylePropOp := update.NewStylePropOp(job.AllocateXref(), "color!important", nil, nil)
		classPropOp := update.NewClassPropOp(job.AllocateXref(), "active!important", nil)
		job.RootView().Update().Push(stylePropOp)
		job.RootView().Update().Push(classPropOp)

		NameFunctionsAndVariables(job)
		assert.Equal(t, "color", stylePropOp.Name)
		assert.Equal(t, "active", classPropOp.Name)
	})

	t.Run("keeps !important outside compatibility mode", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		classPropOp := update.NewClassPropOp(job.AllocateXref(), "active!important", nil)
		job.RootView().Update().Push(classPropOp)

		NameFunctionsAndVariables(job)
		assert.Equal(t, "active!important", classPropOp.Name)
	})
}

func TestProjectionFallbackNaming(t *testing.T) {
	t.Run("names fallback views from the projection slot", func(t *testing.T) {
		job := newTestJob("Comp", ir.CompatibilityModeNormal)
		fallback := job.AllocateView(job.Root().Xref())
		projectionOp := create.NewProjectionOp(job.AllocateXref(), 0, fallback.Xref())
		projectionOp.Handle = ir.AssignedSlotHandle(3)
		job.RootView().Create().Push(projectionOp)

		NameFunctionsAndVariables(job)
		require.NotNil(t, fallback.FnName())
		assert.Equal(t, "Comp_ProjectionFallback_3_Template", *fallback.FnName())
	})
}

func TestNamingUnitCategory(t *testing.T) {
	t.Run("rejects template declarations outside a view unit", func(t *testing.T) {
		job := compilation.NewHostBindingCompilationJob("Comp", ir.CompatibilityModeNormal)
		templateOp := create.NewTemplateOp(job.AllocateXref(), ir.TemplateKindTemplate, nil, "")
		templateOp.Handle = ir.AssignedSlotHandle(0)
		job.Root().Create().Push(templateOp)

		require.PanicsWithValue(t, "AssertionError: must be compiling a component template", func() {
			NameFunctionsAndVariables(job)
		})
	})

	t.Run("rejects repeater declarations outside a view unit", func(t *testing.T) {
		job := compilation.NewHostBindingCompilationJob("Comp", ir.CompatibilityModeNormal)
		repeaterOp := create.NewRepeaterCreateOp(job.AllocateXref(), 0, nil, nil, nil)
		repeaterOp.Handle = ir.AssignedSlotHandle(0)
		job.Root().Create().Push(repeaterOp)

		require.PanicsWithValue(t, "AssertionError: must be compiling a component template", func() {
			NameFunctionsAndVariables(job)
		})
	})
}

func TestStyleHelpers(t *testing.T) {
	t.Run("hyphenate", func(t *testing.T) {
		cases := map[string]string{
			"fontSize":        "font-size",
			"backgroundColor": "background-color",
			"width":           "width",
			"font-size":       "font-size",
		}
		for input, want := range cases {
			if got := hyphenate(input); got != want {
				t.Errorf("hyphenate(%q) = %q, want %q", input, got, want)
			}
		}
	})

	t.Run("normalizeStylePropName passes custom properties through", func(t *testing.T) {
		assert.Equal(t, "--myVar", normalizeStylePropName("--myVar"))
	})

	t.Run("stripImportant", func(t *testing.T) {
		assert.Equal(t, "color", stripImportant("color!important"))
		assert.Equal(t, "color", stripImportant("color"))
		assert.Equal(t, "", stripImportant("!important"))
	})

	t.Run("sanitizeIdentifier", func(t *testing.T) {
		assert.Equal(t, "a_b_c", sanitizeIdentifier("a-b.c"))
		assert.Equal(t, "_1abc", sanitizeIdentifier("1abc"))
		assert.Equal(t, "ok_$name", sanitizeIdentifier("ok $name"))
	})
}
