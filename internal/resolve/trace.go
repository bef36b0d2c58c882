package resolve

import (
	"github.com/micromingle/kotlin/internal/ast"
	"github.com/micromingle/kotlin/internal/errors"
)

// Trace is the binding context the lowering consumes: resolution results,
// parent links, recorded constants and types, and accumulated diagnostics.
// The lowering never aborts on a defect; it reports here and continues.
type Trace struct {
	resolvedCalls  map[ast.Node]*ResolvedCall
	indexedGets    map[*ast.ArrayAccess]*ResolvedCall
	indexedSets    map[*ast.ArrayAccess]*ResolvedCall
	componentCalls map[*ast.MultiDeclarationEntry]*ResolvedCall
	descriptors    map[ast.Node]Descriptor
	parents        map[ast.Node]ast.Node
	labelTargets   map[ast.Node]ast.Node
	boolConstants  map[ast.Expr]bool
	nothingTyped   map[ast.Expr]bool
	elseRequired   map[*ast.When]bool
	diagnostics    []errors.CompilerError
}

// NewTrace creates an empty binding context.
func NewTrace() *Trace {
	return &Trace{
		resolvedCalls:  make(map[ast.Node]*ResolvedCall),
		indexedGets:    make(map[*ast.ArrayAccess]*ResolvedCall),
		indexedSets:    make(map[*ast.ArrayAccess]*ResolvedCall),
		componentCalls: make(map[*ast.MultiDeclarationEntry]*ResolvedCall),
		descriptors:    make(map[ast.Node]Descriptor),
		parents:        make(map[ast.Node]ast.Node),
		labelTargets:   make(map[ast.Node]ast.Node),
		boolConstants:  make(map[ast.Expr]bool),
		nothingTyped:   make(map[ast.Expr]bool),
		elseRequired:   make(map[*ast.When]bool),
	}
}

// Recording side.

func (t *Trace) RecordCall(at ast.Node, rc *ResolvedCall)           { t.resolvedCalls[at] = rc }
func (t *Trace) RecordIndexedGet(at *ast.ArrayAccess, rc *ResolvedCall) { t.indexedGets[at] = rc }
func (t *Trace) RecordIndexedSet(at *ast.ArrayAccess, rc *ResolvedCall) { t.indexedSets[at] = rc }
func (t *Trace) RecordComponentCall(at *ast.MultiDeclarationEntry, rc *ResolvedCall) {
	t.componentCalls[at] = rc
}
func (t *Trace) RecordDescriptor(at ast.Node, d Descriptor) { t.descriptors[at] = d }
func (t *Trace) RecordParent(child, parent ast.Node)        { t.parents[child] = parent }
func (t *Trace) RecordLabelTarget(at ast.Node, target ast.Node) {
	t.labelTargets[at] = target
}
func (t *Trace) RecordBoolConstant(e ast.Expr, v bool)   { t.boolConstants[e] = v }
func (t *Trace) RecordNothingType(e ast.Expr)            { t.nothingTyped[e] = true }
func (t *Trace) RecordWhenMustHaveElse(w *ast.When)      { t.elseRequired[w] = true }
func (t *Trace) Report(err errors.CompilerError)         { t.diagnostics = append(t.diagnostics, err) }

// Query side.

// ResolvedCallFor returns the resolved call recorded at a callee or
// operation-reference node.
func (t *Trace) ResolvedCallFor(n ast.Node) *ResolvedCall {
	if n == nil {
		return nil
	}
	return t.resolvedCalls[n]
}

// IndexedGetCall returns the 'get' call recorded for an indexed read.
func (t *Trace) IndexedGetCall(a *ast.ArrayAccess) *ResolvedCall { return t.indexedGets[a] }

// IndexedSetCall returns the 'set' call recorded for an indexed write.
func (t *Trace) IndexedSetCall(a *ast.ArrayAccess) *ResolvedCall { return t.indexedSets[a] }

// ComponentCall returns the componentN call recorded for a destructuring
// entry.
func (t *Trace) ComponentCall(e *ast.MultiDeclarationEntry) *ResolvedCall {
	return t.componentCalls[e]
}

// DescriptorFor returns the descriptor a declaration or reference binds to.
func (t *Trace) DescriptorFor(n ast.Node) Descriptor { return t.descriptors[n] }

// ParentOf returns the syntactic parent recorded for a node.
func (t *Trace) ParentOf(n ast.Node) ast.Node { return t.parents[n] }

// LabelTarget returns the node a labeled jump or this-reference targets.
func (t *Trace) LabelTarget(n ast.Node) ast.Node { return t.labelTargets[n] }

// BoolConstant returns the compile-time boolean value of an expression,
// if it has one.
func (t *Trace) BoolConstant(e ast.Expr) (bool, bool) {
	v, ok := t.boolConstants[e]
	return v, ok
}

// IsNothing reports whether the expression's static type is uninhabited.
func (t *Trace) IsNothing(e ast.Expr) bool { return t.nothingTyped[e] }

// WhenMustHaveElse reports whether the when expression is subject to an
// exhaustiveness check and therefore requires an else entry.
func (t *Trace) WhenMustHaveElse(w *ast.When) bool { return t.elseRequired[w] }

// Diagnostics returns everything reported so far, in report order.
func (t *Trace) Diagnostics() []errors.CompilerError { return t.diagnostics }

// EnclosingSubroutine walks parent links to the nearest node that opens
// its own subroutine, excluding the start node itself.
func (t *Trace) EnclosingSubroutine(n ast.Node) ast.Node {
	for p := t.parents[n]; p != nil; p = t.parents[p] {
		if IsSubroutine(p) {
			return p
		}
	}
	return nil
}

// SubroutineOf is like EnclosingSubroutine but returns n itself when n
// already opens a subroutine.
func (t *Trace) SubroutineOf(n ast.Node) ast.Node {
	if IsSubroutine(n) {
		return n
	}
	return t.EnclosingSubroutine(n)
}
