// Package compilation defines the compilation job and unit types that the
// pipeline phases operate on. A job owns a tree of compilation units; units
// reference each other through xref ids resolved against the job's arena, so
// the job is the single owner of every unit.
package compilation

import (
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"

	"tplc-go/compiler/template/pipeline/ir"
	"tplc-go/compiler/template/pipeline/ir/operations"
)

// JobKind distinguishes the kinds of compilation jobs.
type JobKind int

const (
	// JobKindTmpl - A template compilation job.
	JobKindTmpl JobKind = iota
	// JobKindHost - A host binding compilation job.
	JobKindHost
	// JobKindBoth - Used by phases whose logic applies to both job kinds.
	JobKindBoth
)

// Job is an entire ongoing compilation, which will result in one or more
// generated functions when complete.
type Job interface {
	// ComponentName is the base name from which all generated function names
	// of this job are derived.
	ComponentName() string
	Compatibility() ir.CompatibilityMode
	JobKind() JobKind
	// FnSuffix is the suffix appended to the root unit's generated function
	// name, identifying the kind of job.
	FnSuffix() string
	Root() Unit
	// Units returns every compilation unit of the job, in deterministic xref
	// order, root first.
	Units() []Unit
	AllocateXref() operations.XrefId
}

// Unit is one scope of ops compiled into a single generated function. Views
// and host bindings are units.
type Unit interface {
	Xref() operations.XrefId
	Job() Job
	// Create is the ordered list of creation ops of the unit.
	Create() *operations.OpList
	// Update is the ordered list of update ops of the unit.
	Update() *operations.OpList
	// FnName is the unit's generated function name, or nil before the naming
	// phase has run. Write-once: SetFnName must not be called twice.
	FnName() *string
	SetFnName(name string)
}

// jobBase carries the state shared by all job kinds, including the monotonic
// xref allocator.
type jobBase struct {
	componentName string
	compatibility ir.CompatibilityMode
	nextXref      operations.XrefId
}

func (j *jobBase) ComponentName() string { return j.componentName }

func (j *jobBase) Compatibility() ir.CompatibilityMode { return j.compatibility }

// AllocateXref returns a new xref, unique within this job.
func (j *jobBase) AllocateXref() operations.XrefId {
	id := j.nextXref
	j.nextXref++
	return id
}

// ComponentCompilationJob is the compilation-in-progress of a component's
// whole template, including the root view and all embedded views.
type ComponentCompilationJob struct {
	jobBase
	root  *ViewCompilationUnit
	views *swiss.Map[operations.XrefId, *ViewCompilationUnit]
}

// NewComponentCompilationJob creates a component compilation job with an
// empty root view. The root view always has xref 0; the zero xref therefore
// doubles as "no view" in optional child view references.
func NewComponentCompilationJob(componentName string, compatibility ir.CompatibilityMode) *ComponentCompilationJob {
	job := &ComponentCompilationJob{
		jobBase: jobBase{componentName: componentName, compatibility: compatibility},
		views:   swiss.NewMap[operations.XrefId, *ViewCompilationUnit](8),
	}
	root := newViewCompilationUnit(job, job.AllocateXref(), nil)
	job.root = root
	job.views.Put(root.xref, root)
	return job
}

func (j *ComponentCompilationJob) JobKind() JobKind { return JobKindTmpl }

func (j *ComponentCompilationJob) FnSuffix() string { return "Template" }

func (j *ComponentCompilationJob) Root() Unit { return j.root }

// RootView returns the root unit with its concrete type.
func (j *ComponentCompilationJob) RootView() *ViewCompilationUnit { return j.root }

// AllocateView adds a unit for a new embedded view to this compilation.
func (j *ComponentCompilationJob) AllocateView(parent operations.XrefId) *ViewCompilationUnit {
	view := newViewCompilationUnit(j, j.AllocateXref(), &parent)
	j.views.Put(view.xref, view)
	return view
}

// View resolves a view xref against the job's arena.
func (j *ComponentCompilationJob) View(xref operations.XrefId) (*ViewCompilationUnit, bool) {
	return j.views.Get(xref)
}

// Units returns all views of the job sorted by xref, which puts the root
// first.
func (j *ComponentCompilationJob) Units() []Unit {
	units := make([]Unit, 0, j.views.Count())
	j.views.Iter(func(_ operations.XrefId, view *ViewCompilationUnit) bool {
		units = append(units, view)
		return false
	})
	slices.SortFunc(units, func(a, b Unit) int {
		return int(a.Xref() - b.Xref())
	})
	return units
}

// ViewCompilationUnit is the compilation-in-progress of a single view within
// a template: the root component view, an embedded template, a conditional
// branch, or a repeater branch.
type ViewCompilationUnit struct {
	job    *ComponentCompilationJob
	xref   operations.XrefId
	create *operations.OpList
	update *operations.OpList
	fnName *string
	// Parent is the xref of the enclosing view, nil for the root.
	Parent *operations.XrefId
	// ContextVariables maps template variable names to the context property
	// they alias.
	ContextVariables map[string]string
	// Decls is the number of slots used by the view, counted during slot
	// allocation.
	Decls *int
	Vars  *int
}

func newViewCompilationUnit(
	job *ComponentCompilationJob,
	xref operations.XrefId,
	parent *operations.XrefId,
) *ViewCompilationUnit {
	return &ViewCompilationUnit{
		job:              job,
		xref:             xref,
		create:           operations.NewOpList(),
		update:           operations.NewOpList(),
		Parent:           parent,
		ContextVariables: make(map[string]string),
	}
}

func (v *ViewCompilationUnit) Xref() operations.XrefId { return v.xref }

func (v *ViewCompilationUnit) Job() Job { return v.job }

// Component returns the owning job with its concrete type.
func (v *ViewCompilationUnit) Component() *ComponentCompilationJob { return v.job }

func (v *ViewCompilationUnit) Create() *operations.OpList { return v.create }

func (v *ViewCompilationUnit) Update() *operations.OpList { return v.update }

func (v *ViewCompilationUnit) FnName() *string { return v.fnName }

func (v *ViewCompilationUnit) SetFnName(name string) {
	if v.fnName != nil {
		panic("AssertionError: unit function name is write-once")
	}
	v.fnName = &name
}

// HostBindingCompilationJob is the compilation-in-progress of a component's
// host bindings. It contains a single unit.
type HostBindingCompilationJob struct {
	jobBase
	root *HostBindingCompilationUnit
}

func NewHostBindingCompilationJob(componentName string, compatibility ir.CompatibilityMode) *HostBindingCompilationJob {
	job := &HostBindingCompilationJob{
		jobBase: jobBase{componentName: componentName, compatibility: compatibility},
	}
	job.root = &HostBindingCompilationUnit{
		job:    job,
		xref:   job.AllocateXref(),
		create: operations.NewOpList(),
		update: operations.NewOpList(),
	}
	return job
}

func (j *HostBindingCompilationJob) JobKind() JobKind { return JobKindHost }

func (j *HostBindingCompilationJob) FnSuffix() string { return "HostBindings" }

func (j *HostBindingCompilationJob) Root() Unit { return j.root }

func (j *HostBindingCompilationJob) Units() []Unit { return []Unit{j.root} }

// HostBindingCompilationUnit is the single unit of a host binding job.
type HostBindingCompilationUnit struct {
	job    *HostBindingCompilationJob
	xref   operations.XrefId
	create *operations.OpList
	update *operations.OpList
	fnName *string
}

func (h *HostBindingCompilationUnit) Xref() operations.XrefId { return h.xref }

func (h *HostBindingCompilationUnit) Job() Job { return h.job }

func (h *HostBindingCompilationUnit) Create() *operations.OpList { return h.create }

func (h *HostBindingCompilationUnit) Update() *operations.OpList { return h.update }

func (h *HostBindingCompilationUnit) FnName() *string { return h.fnName }

func (h *HostBindingCompilationUnit) SetFnName(name string) {
	if h.fnName != nil {
		panic("AssertionError: unit function name is write-once")
	}
	h.fnName = &name
}
