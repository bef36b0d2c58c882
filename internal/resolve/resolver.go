package resolve

import (
	"fmt"
	"strconv"

	"github.com/micromingle/kotlin/internal/ast"
	"github.com/micromingle/kotlin/internal/builtins"
	"github.com/micromingle/kotlin/internal/errors"
)

// Resolver populates a Trace from an AST: it links parents, resolves
// names against lexical scopes, synthesizes resolved calls for calls and
// operator usages, and records labels and compile-time constants.
//
// It is deliberately shallow on types: the only type facts downstream
// lowering needs are uninhabited ("Nothing") results and boolean
// constants, so that is all it records.
type Resolver struct {
	trace  *Trace
	scopes []map[string]Descriptor
	labels []map[string]ast.Node
}

// Analyze resolves a file and returns the populated binding context.
func Analyze(file *ast.File) *Trace {
	r := &Resolver{trace: NewTrace()}
	r.pushScope()
	r.declareBuiltins()
	r.declareFunctions(file.Declarations)
	for _, d := range file.Declarations {
		r.trace.RecordParent(d, file)
		r.resolveNode(d)
	}
	r.popScope()
	return r.trace
}

func (r *Resolver) pushScope() {
	r.scopes = append(r.scopes, make(map[string]Descriptor))
	r.labels = append(r.labels, make(map[string]ast.Node))
}

func (r *Resolver) popScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
	r.labels = r.labels[:len(r.labels)-1]
}

func (r *Resolver) declare(name string, d Descriptor) {
	if name == "" || name == "_" {
		return
	}
	r.scopes[len(r.scopes)-1][name] = d
}

func (r *Resolver) lookup(name string) Descriptor {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if d, ok := r.scopes[i][name]; ok {
			return d
		}
	}
	return nil
}

func (r *Resolver) declareLabel(name string, target ast.Node) {
	if name == "" {
		return
	}
	r.labels[len(r.labels)-1][name] = target
}

func (r *Resolver) lookupLabel(name string) ast.Node {
	for i := len(r.labels) - 1; i >= 0; i-- {
		if t, ok := r.labels[i][name]; ok {
			return t
		}
	}
	return nil
}

// declareBuiltins seeds the root scope with the predefined functions, so
// println, error and friends resolve without a declaration in the file.
func (r *Resolver) declareBuiltins() {
	for _, sig := range builtins.Functions {
		fd := &FunctionDescriptor{
			Name:           sig.Name,
			Variadic:       sig.Variadic,
			ReturnsNothing: sig.ReturnsNothing(),
		}
		for i, name := range sig.Parameters {
			fd.Parameters = append(fd.Parameters, &ParameterDescriptor{Name: name, Index: i})
		}
		r.declare(sig.Name, fd)
	}
}

// declareFunctions pre-registers named functions so forward references
// inside a block resolve.
func (r *Resolver) declareFunctions(decls []ast.Node) {
	for _, d := range decls {
		if fn, ok := d.(*ast.Function); ok {
			r.declare(fn.Name, functionDescriptor(fn))
		}
	}
}

func functionDescriptor(fn *ast.Function) *FunctionDescriptor {
	params := make([]*ParameterDescriptor, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = &ParameterDescriptor{
			Name:       p.Name,
			Index:      i,
			HasDefault: p.DefaultValue != nil,
		}
	}
	return &FunctionDescriptor{Name: fn.Name, Parameters: params, Declaration: fn}
}

func (r *Resolver) child(parent, child ast.Node) {
	if parent == nil || child == nil {
		return
	}
	r.trace.RecordParent(child, parent)
}

// resolveNode dispatches over declarations and statements.
func (r *Resolver) resolveNode(n ast.Node) {
	switch d := n.(type) {
	case *ast.Function:
		r.resolveFunction(d)
	case *ast.Property:
		r.resolveProperty(d)
	case *ast.MultiDeclaration:
		r.resolveMultiDeclaration(d)
	case *ast.ClassInitializer:
		r.child(d, d.Body)
		r.resolveExpr(d.Body)
	case *ast.ObjectDeclaration:
		for _, decl := range d.Declarations {
			r.child(d, decl)
			r.resolveNode(decl)
		}
	case ast.Expr:
		r.resolveExpr(d)
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function) {
	if r.lookup(fn.Name) == nil {
		r.declare(fn.Name, functionDescriptor(fn))
	}
	r.pushScope()
	for _, p := range fn.Params {
		r.child(fn, p)
		r.declare(p.Name, &VariableDescriptor{Name: p.Name, Declaration: p})
		if p.DefaultValue != nil {
			r.child(p, p.DefaultValue)
			r.resolveExpr(p.DefaultValue)
		}
	}
	if fn.Body != nil {
		r.child(fn, fn.Body)
		r.resolveExpr(fn.Body)
	}
	r.popScope()
}

func (r *Resolver) resolveProperty(p *ast.Property) {
	if p.Initializer != nil {
		r.child(p, p.Initializer)
		r.resolveExpr(p.Initializer)
	}
	if p.Delegate != nil {
		r.child(p, p.Delegate)
		r.resolveExpr(p.Delegate)
	}
	desc := &VariableDescriptor{Name: p.Name, Writable: p.Var, Declaration: p}
	r.trace.RecordDescriptor(p, desc)
	r.declare(p.Name, desc)
	for _, acc := range p.Accessors {
		r.child(p, acc)
		r.pushScope()
		for _, ap := range acc.Params {
			r.child(acc, ap)
			r.declare(ap.Name, &VariableDescriptor{Name: ap.Name, Declaration: ap})
		}
		if acc.Body != nil {
			r.child(acc, acc.Body)
			r.resolveExpr(acc.Body)
		}
		r.popScope()
	}
}

func (r *Resolver) resolveMultiDeclaration(m *ast.MultiDeclaration) {
	if m.Initializer != nil {
		r.child(m, m.Initializer)
		r.resolveExpr(m.Initializer)
	}
	for i, e := range m.Entries {
		r.child(m, e)
		desc := &VariableDescriptor{Name: e.Name, Declaration: e}
		r.trace.RecordDescriptor(e, desc)
		r.declare(e.Name, desc)
		if m.Initializer != nil {
			r.trace.RecordComponentCall(e, &ResolvedCall{
				Descriptor: &FunctionDescriptor{Name: "component" + strconv.Itoa(i+1)},
				ThisObject: ReceiverValue{Kind: ExpressionReceiver, Expr: m.Initializer},
			})
		}
	}
}

// resolveExpr dispatches over expressions.
func (r *Resolver) resolveExpr(e ast.Expr) {
	if e == nil {
		return
	}
	switch x := e.(type) {
	case *ast.BadExpr, *ast.ThisExpr, *ast.OperationRef:
		// nothing to resolve
	case *ast.Literal:
		if x.Kind == ast.BooleanLiteral {
			r.trace.RecordBoolConstant(x, x.Value == "true")
		}
	case *ast.Name:
		r.resolveName(x)
	case *ast.StringTemplate:
		for _, entry := range x.Entries {
			r.child(x, entry)
			if entry.Value != nil {
				r.child(entry, entry.Value)
				r.resolveExpr(entry.Value)
			}
		}
	case *ast.Paren:
		r.child(x, x.Inner)
		r.resolveExpr(x.Inner)
	case *ast.Labeled:
		r.child(x, x.Base)
		r.declareLabel(x.Label, ast.Deparenthesize(x.Base))
		r.resolveExpr(x.Base)
	case *ast.Binary:
		r.resolveBinary(x)
	case *ast.Unary:
		r.resolveUnary(x)
	case *ast.ArrayAccess:
		r.resolveArrayAccess(x, accessRead)
	case *ast.Call:
		r.resolveCall(x, ReceiverValue{})
	case *ast.Qualified:
		r.resolveQualified(x)
	case *ast.If:
		r.child(x, x.Condition)
		r.child(x, x.Then)
		r.child(x, x.Else)
		r.resolveExpr(x.Condition)
		r.resolveExpr(x.Then)
		r.resolveExpr(x.Else)
	case *ast.When:
		r.resolveWhen(x)
	case *ast.Try:
		r.resolveTry(x)
	case *ast.While:
		r.child(x, x.Condition)
		r.child(x, x.Body)
		r.resolveExpr(x.Condition)
		r.pushScope()
		r.resolveExpr(x.Body)
		r.popScope()
	case *ast.DoWhile:
		r.child(x, x.Body)
		r.child(x, x.Condition)
		r.pushScope()
		r.resolveExpr(x.Body)
		r.resolveExpr(x.Condition)
		r.popScope()
	case *ast.For:
		r.resolveFor(x)
	case *ast.Break:
		r.resolveJumpLabel(x, x.Label)
	case *ast.Continue:
		r.resolveJumpLabel(x, x.Label)
	case *ast.Return:
		if x.Label != "" {
			if target := r.lookupLabel(x.Label); target != nil {
				r.trace.RecordLabelTarget(x, target)
			}
		}
		if x.Value != nil {
			r.child(x, x.Value)
			r.resolveExpr(x.Value)
		}
	case *ast.Throw:
		r.child(x, x.Value)
		r.resolveExpr(x.Value)
	case *ast.Block:
		r.pushScope()
		r.declareFunctions(x.Statements)
		for _, s := range x.Statements {
			r.child(x, s)
			r.resolveNode(s)
		}
		r.popScope()
	case *ast.FunctionLiteral:
		r.pushScope()
		for _, p := range x.Params {
			r.child(x, p)
			r.declare(p.Name, &VariableDescriptor{Name: p.Name, Declaration: p})
		}
		r.child(x, x.Body)
		r.resolveExpr(x.Body)
		r.popScope()
	case *ast.ObjectLiteral:
		r.child(x, x.Declaration)
		r.resolveNode(x.Declaration)
	case *ast.IsExpr:
		r.child(x, x.Left)
		r.resolveExpr(x.Left)
	case *ast.TypeOp:
		r.child(x, x.Left)
		r.resolveExpr(x.Left)
	default:
		panic(fmt.Sprintf("resolve: unhandled expression %T", e))
	}
}

func (r *Resolver) resolveName(n *ast.Name) {
	d := r.lookup(n.Identifier)
	if d == nil {
		r.trace.Report(errors.UnresolvedReference(n.Identifier, n.Pos))
		return
	}
	r.trace.RecordDescriptor(n, d)
	if v, ok := d.(*VariableDescriptor); ok {
		r.trace.RecordCall(n, &ResolvedCall{Descriptor: v})
	}
}

func (r *Resolver) resolveJumpLabel(n ast.Node, label string) {
	if label == "" {
		return
	}
	if target := r.lookupLabel(label); target != nil {
		r.trace.RecordLabelTarget(n, target)
	}
}

func (r *Resolver) resolveBinary(b *ast.Binary) {
	r.child(b, b.Left)
	r.child(b, b.OpRef)
	r.child(b, b.Right)

	op := b.OpRef.Op
	switch {
	case op == "&&" || op == "||" || op == "?:":
		r.resolveExpr(b.Left)
		r.resolveExpr(b.Right)
	case ast.IsAssignmentOp(op):
		if target, ok := ast.Deparenthesize(b.Left).(*ast.ArrayAccess); ok {
			r.resolveArrayAccess(target, accessWrite)
		} else {
			r.resolveExpr(b.Left)
		}
		r.resolveExpr(b.Right)
	case ast.IsAugmentedAssignmentOp(op):
		if target, ok := ast.Deparenthesize(b.Left).(*ast.ArrayAccess); ok {
			r.resolveArrayAccess(target, accessReadWrite)
		} else {
			r.resolveExpr(b.Left)
		}
		r.resolveExpr(b.Right)
		r.recordOperatorCall(b.OpRef, ast.OperatorFunctionName(op), b.Left, b.Right)
	default:
		r.resolveExpr(b.Left)
		r.resolveExpr(b.Right)
		if name := ast.OperatorFunctionName(op); name != "" {
			r.recordOperatorCall(b.OpRef, name, b.Left, b.Right)
		}
	}
}

func (r *Resolver) recordOperatorCall(at ast.Node, name string, receiver ast.Expr, args ...ast.Expr) {
	rc := &ResolvedCall{
		Descriptor: &FunctionDescriptor{Name: name},
		ThisObject: ReceiverValue{Kind: ExpressionReceiver, Expr: receiver},
	}
	for i, a := range args {
		rc.Arguments = append(rc.Arguments, &ResolvedArgument{
			Parameter:   &ParameterDescriptor{Name: "", Index: i},
			Expressions: []ast.Expr{a},
		})
	}
	r.trace.RecordCall(at, rc)
}

func (r *Resolver) resolveUnary(u *ast.Unary) {
	r.child(u, u.OpRef)
	r.child(u, u.Base)
	r.resolveExpr(u.Base)

	op := u.OpRef.Op
	if op == "!!" {
		return
	}
	name := ast.OperatorFunctionName(op)
	switch op {
	case "!":
		name = "not"
	case "-":
		name = "unaryMinus"
	case "+":
		name = "unaryPlus"
	}
	if name != "" {
		r.recordOperatorCall(u.OpRef, name, u.Base)
	}
	if ast.IsIncrementOrDecrement(op) {
		if target, ok := ast.Deparenthesize(u.Base).(*ast.ArrayAccess); ok {
			r.resolveArrayAccess(target, accessReadWrite)
		}
	}
}

type accessMode int

const (
	accessRead accessMode = iota
	accessWrite
	accessReadWrite
)

func (r *Resolver) resolveArrayAccess(a *ast.ArrayAccess, mode accessMode) {
	r.child(a, a.Array)
	r.resolveExpr(a.Array)
	for _, ix := range a.Indices {
		r.child(a, ix)
		r.resolveExpr(ix)
	}

	if mode == accessRead || mode == accessReadWrite {
		r.trace.RecordIndexedGet(a, r.indexedCall(a, "get"))
	}
	if mode == accessWrite || mode == accessReadWrite {
		r.trace.RecordIndexedSet(a, r.indexedCall(a, "set"))
	}
}

func (r *Resolver) indexedCall(a *ast.ArrayAccess, name string) *ResolvedCall {
	rc := &ResolvedCall{
		Descriptor: &FunctionDescriptor{Name: name},
		ThisObject: ReceiverValue{Kind: ExpressionReceiver, Expr: a.Array},
	}
	for i, ix := range a.Indices {
		rc.Arguments = append(rc.Arguments, &ResolvedArgument{
			Parameter:   &ParameterDescriptor{Index: i},
			Expressions: []ast.Expr{ix},
		})
	}
	return rc
}

// resolveCall resolves a call expression, optionally with an explicit
// receiver from a qualified expression.
func (r *Resolver) resolveCall(c *ast.Call, receiver ReceiverValue) {
	r.child(c, c.Callee)
	for _, a := range c.Args {
		r.child(c, a)
		r.child(a, a.Value)
		r.resolveExpr(a.Value)
	}
	for _, l := range c.LambdaArgs {
		r.child(c, l)
		r.resolveExpr(l)
	}

	callee := ast.CalleeName(c)
	if callee == nil {
		r.resolveExpr(c.Callee)
		return
	}

	var fd *FunctionDescriptor
	if receiver.Kind == NoReceiver {
		switch d := r.lookup(callee.Identifier).(type) {
		case *FunctionDescriptor:
			fd = d
		case *VariableDescriptor:
			// variable used as function: read it, then invoke
			r.trace.RecordDescriptor(callee, d)
			fd = &FunctionDescriptor{Name: "invoke"}
		default:
			r.trace.Report(errors.UnresolvedCall(c.String(), c.Pos))
			return
		}
	} else {
		// member calls are not checked against a class model; a descriptor
		// with call-site parameter order is synthesized
		fd = &FunctionDescriptor{Name: callee.Identifier}
	}

	rc := &ResolvedCall{Descriptor: fd, ThisObject: receiver}
	if !r.mapArguments(c, fd, rc) {
		r.trace.Report(errors.UnresolvedCall(c.String(), c.Pos))
		return
	}
	r.trace.RecordCall(c, rc)
	r.trace.RecordDescriptor(callee, fd)

	if fd.ReturnsNothing {
		r.trace.RecordNothingType(c)
	}
	if fn, ok := fd.Declaration.(*ast.Function); ok {
		if fn.ReturnType != nil && fn.ReturnType.Name == string(builtins.Nothing) {
			r.trace.RecordNothingType(c)
		}
	}
}

// mapArguments orders the call-site arguments by parameter declaration.
// Trailing lambdas map to the last parameter.
func (r *Resolver) mapArguments(c *ast.Call, fd *FunctionDescriptor, rc *ResolvedCall) bool {
	if fd.Parameters == nil || fd.Variadic {
		// synthesized or variadic descriptor: parameters mirror the call site
		for i, a := range c.Args {
			rc.Arguments = append(rc.Arguments, &ResolvedArgument{
				Parameter:   &ParameterDescriptor{Name: a.Name, Index: i},
				Expressions: []ast.Expr{a.Value},
			})
		}
		for _, l := range c.LambdaArgs {
			rc.Arguments = append(rc.Arguments, &ResolvedArgument{
				Parameter:   &ParameterDescriptor{Index: len(rc.Arguments)},
				Expressions: []ast.Expr{l},
			})
		}
		return true
	}

	byParam := make([][]ast.Expr, len(fd.Parameters))
	next := 0
	for _, a := range c.Args {
		idx := -1
		if a.Name != "" {
			for _, p := range fd.Parameters {
				if p.Name == a.Name {
					idx = p.Index
					break
				}
			}
		} else if next < len(fd.Parameters) {
			idx = next
			next++
		}
		if idx < 0 {
			return false
		}
		byParam[idx] = append(byParam[idx], a.Value)
	}
	for _, l := range c.LambdaArgs {
		if len(fd.Parameters) == 0 {
			return false
		}
		byParam[len(fd.Parameters)-1] = append(byParam[len(fd.Parameters)-1], l)
	}
	for i, p := range fd.Parameters {
		if len(byParam[i]) == 0 && !p.HasDefault {
			return false
		}
		rc.Arguments = append(rc.Arguments, &ResolvedArgument{
			Parameter:   p,
			Expressions: byParam[i],
		})
	}
	return true
}

func (r *Resolver) resolveQualified(q *ast.Qualified) {
	r.child(q, q.Receiver)
	r.child(q, q.Selector)
	r.resolveExpr(q.Receiver)

	receiver := ReceiverValue{Kind: ExpressionReceiver, Expr: q.Receiver}
	switch sel := q.Selector.(type) {
	case *ast.Call:
		r.resolveCall(sel, receiver)
	case *ast.Name:
		// member property reads are not checked against a class model
		d := &VariableDescriptor{Name: sel.Identifier}
		r.trace.RecordDescriptor(sel, d)
		r.trace.RecordCall(sel, &ResolvedCall{Descriptor: d, ThisObject: receiver})
	default:
		r.resolveExpr(q.Selector)
	}
}

func (r *Resolver) resolveWhen(w *ast.When) {
	if w.Subject != nil && !whenHasElse(w) && r.whenUsedAsExpression(w) {
		r.trace.RecordWhenMustHaveElse(w)
	}
	r.child(w, w.Subject)
	r.resolveExpr(w.Subject)
	for _, entry := range w.Entries {
		r.child(w, entry)
		for _, cond := range entry.Conditions {
			r.child(entry, cond)
			switch c := cond.(type) {
			case *ast.WhenConditionInRange:
				r.child(c, c.RangeExpr)
				r.child(c, c.OpRef)
				r.resolveExpr(c.RangeExpr)
				if w.Subject != nil {
					r.recordOperatorCall(c.OpRef, "contains", c.RangeExpr, w.Subject)
				}
			case *ast.WhenConditionExpression:
				r.child(c, c.Value)
				r.resolveExpr(c.Value)
			}
		}
		r.child(entry, entry.Body)
		r.pushScope()
		r.resolveExpr(entry.Body)
		r.popScope()
	}
}

func whenHasElse(w *ast.When) bool {
	for _, entry := range w.Entries {
		if entry.IsElse {
			return true
		}
	}
	return false
}

// whenUsedAsExpression reports whether the when's value is consumed. Only
// a consumed subject-bearing when is held to the exhaustiveness
// requirement; a bare when statement may cover as few cases as it likes.
func (r *Resolver) whenUsedAsExpression(w *ast.When) bool {
	n := ast.Node(w)
	for {
		parent := r.trace.ParentOf(n)
		switch p := parent.(type) {
		case nil, *ast.Block, *ast.File:
			return false
		case *ast.Paren, *ast.Labeled:
			n = parent
		case *ast.While:
			return ast.Node(p.Condition) == n
		case *ast.DoWhile:
			return ast.Node(p.Condition) == n
		case *ast.For:
			return ast.Node(p.RangeExpr) == n
		case *ast.If:
			if ast.Node(p.Condition) == n {
				return true
			}
			n = parent
		default:
			return true
		}
	}
}

func (r *Resolver) resolveTry(t *ast.Try) {
	r.child(t, t.TryBlock)
	r.resolveExpr(t.TryBlock)
	for _, c := range t.Catches {
		r.child(t, c)
		r.pushScope()
		if c.Parameter != nil {
			r.child(c, c.Parameter)
			desc := &VariableDescriptor{Name: c.Parameter.Name, Declaration: c.Parameter}
			r.trace.RecordDescriptor(c.Parameter, desc)
			r.declare(c.Parameter.Name, desc)
		}
		r.child(c, c.Body)
		r.resolveExpr(c.Body)
		r.popScope()
	}
	if t.Finally != nil {
		r.child(t, t.Finally)
		r.child(t.Finally, t.Finally.Body)
		r.resolveExpr(t.Finally.Body)
	}
}

func (r *Resolver) resolveFor(f *ast.For) {
	r.child(f, f.RangeExpr)
	r.resolveExpr(f.RangeExpr)
	r.pushScope()
	if f.Parameter != nil {
		r.child(f, f.Parameter)
		desc := &VariableDescriptor{Name: f.Parameter.Name, Declaration: f.Parameter}
		r.trace.RecordDescriptor(f.Parameter, desc)
		r.declare(f.Parameter.Name, desc)
	}
	if f.MultiParameter != nil {
		r.child(f, f.MultiParameter)
		for i, e := range f.MultiParameter.Entries {
			r.child(f.MultiParameter, e)
			desc := &VariableDescriptor{Name: e.Name, Declaration: e}
			r.trace.RecordDescriptor(e, desc)
			r.declare(e.Name, desc)
			r.trace.RecordComponentCall(e, &ResolvedCall{
				Descriptor: &FunctionDescriptor{Name: "component" + strconv.Itoa(i+1)},
				ThisObject: ReceiverValue{Kind: TransientReceiver},
			})
		}
	}
	r.child(f, f.Body)
	r.resolveExpr(f.Body)
	r.popScope()
}
