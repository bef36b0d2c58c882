package cfg

import (
	"fmt"

	"github.com/micromingle/kotlin/internal/ast"
	"github.com/micromingle/kotlin/internal/cfg/pseudocode"
	"github.com/micromingle/kotlin/internal/errors"
	"github.com/micromingle/kotlin/internal/resolve"
)

// genContext says whether an expression is lowered as the condition of a
// jump. Short-circuit operators skip their result value in condition
// position because the jump structure already encodes it.
type genContext int

const (
	notInCondition genContext = iota
	inCondition
)

// deferredValue delays right-hand-side lowering until the assignment
// target's receivers have been lowered.
type deferredValue func() *pseudocode.PseudoValue

// Processor drives a Builder over an AST, producing the pseudocode of one
// subroutine per Generate call. Defects are reported on the trace; only
// internal invariant violations panic.
type Processor struct {
	builder Builder
	trace   *resolve.Trace
}

// NewProcessor creates a processor over an explicit builder.
func NewProcessor(builder Builder, trace *resolve.Trace) *Processor {
	return &Processor{builder: builder, trace: trace}
}

// LowerFunction lowers one function with a fresh instructions generator
// and reports any unreachable source elements.
func LowerFunction(fn ast.Node, trace *resolve.Trace) *pseudocode.Pseudocode {
	p := NewProcessor(NewInstructionsGenerator(), trace).Generate(fn)
	reportUnreachable(p, trace)
	return p
}

// LowerFile lowers every top-level function of a file. A defect inside
// one body never prevents lowering of its siblings.
func LowerFile(file *ast.File, trace *resolve.Trace) []*pseudocode.Pseudocode {
	var out []*pseudocode.Pseudocode
	for _, d := range file.Declarations {
		if fn, ok := d.(*ast.Function); ok && fn.Body != nil {
			out = append(out, LowerFunction(fn, trace))
		}
	}
	return out
}

// Generate lowers one subroutine and returns its pseudocode.
func (p *Processor) Generate(subroutine ast.Node) *pseudocode.Pseudocode {
	return p.generateSubroutine(subroutine)
}

func (p *Processor) generateSubroutine(sub ast.Node) *pseudocode.Pseudocode {
	p.builder.EnterSubroutine(sub)
	switch s := sub.(type) {
	case *ast.Function:
		for _, param := range s.Params {
			p.generateParameter(param)
		}
		p.generate(s.Body, notInCondition)
	case *ast.FunctionLiteral:
		for _, param := range s.Params {
			p.generateParameter(param)
		}
		p.generate(s.Body, notInCondition)
	case *ast.PropertyAccessor:
		for _, param := range s.Params {
			p.generateParameter(param)
		}
		p.generate(s.Body, notInCondition)
	case *ast.ClassInitializer:
		p.generate(s.Body, notInCondition)
	case *ast.ObjectDeclaration:
		p.generateClassBody(s)
	default:
		p.generate(sub, notInCondition)
	}
	return p.builder.ExitSubroutine(sub)
}

// generateParameter declares the parameter, lowers its default value and
// writes a synthetic entry value into it, so parameters are assigned on
// subroutine entry.
func (p *Processor) generateParameter(param *ast.Parameter) {
	p.builder.DeclareParameter(param)
	if param.DefaultValue != nil {
		p.generate(param.DefaultValue, notInCondition)
	}
	v := p.builder.Magic(param, nil, nil, pseudocode.GeneralMagic).GetValue()
	p.generateInitializer(param, precomputed(v))
}

// generateClassBody lowers member initializers in source order; member
// functions become independent local pseudocodes.
func (p *Processor) generateClassBody(decl *ast.ObjectDeclaration) {
	for _, member := range decl.Declarations {
		switch m := member.(type) {
		case *ast.Property:
			p.generate(m, notInCondition)
		case *ast.ClassInitializer:
			p.generate(m.Body, notInCondition)
		case *ast.Function:
			p.processLocalDeclaration(m)
		default:
			p.generate(member, notInCondition)
		}
	}
}

// generate dispatches one node and runs the uninhabited-type check on
// expressions afterwards.
func (p *Processor) generate(n ast.Node, ctx genContext) {
	if n == nil {
		return
	}
	p.dispatch(n, ctx)
	if e, ok := n.(ast.Expr); ok {
		p.checkNothingType(e)
	}
}

// checkNothingType routes control to the error exit after expressions
// whose static type is uninhabited. Composite expressions that merely
// contain diverging branches are exempt.
func (p *Processor) checkNothingType(e ast.Expr) {
	d := ast.Deparenthesize(e)
	switch d.(type) {
	case *ast.Block, *ast.Try, *ast.If, *ast.When:
		return
	}
	if p.trace.IsNothing(d) {
		p.builder.JumpToError(d)
	}
}

func (p *Processor) dispatch(n ast.Node, ctx genContext) {
	switch x := n.(type) {
	case *ast.BadExpr:
		p.builder.Unsupported(x, "malformed expression")
		p.builder.Magic(x, x, nil, pseudocode.GeneralMagic)
	case *ast.Literal:
		p.builder.LoadConstant(x)
	case *ast.Name:
		p.generateNameRead(x)
	case *ast.ThisExpr:
		rc := &resolve.ResolvedCall{Descriptor: &resolve.VariableDescriptor{Name: "this"}}
		p.builder.ReadVariable(x, rc, nil)
	case *ast.StringTemplate:
		p.generateStringTemplate(x)
	case *ast.Paren:
		p.generate(x.Inner, ctx)
		p.copyValue(x.Inner, x)
	case *ast.Labeled:
		p.generate(x.Base, ctx)
		p.copyValue(x.Base, x)
	case *ast.Binary:
		p.generateBinary(x, ctx)
	case *ast.Unary:
		p.generateUnary(x)
	case *ast.ArrayAccess:
		p.generateArrayRead(x)
	case *ast.Call:
		p.generateCallExpression(x)
	case *ast.Qualified:
		p.generateQualified(x)
	case *ast.If:
		p.generateIf(x)
	case *ast.When:
		p.generateWhen(x)
	case *ast.Try:
		p.generateTry(x)
	case *ast.While:
		p.generateWhile(x)
	case *ast.DoWhile:
		p.generateDoWhile(x)
	case *ast.For:
		p.generateFor(x)
	case *ast.Break:
		p.generateBreak(x)
	case *ast.Continue:
		p.generateContinue(x)
	case *ast.Return:
		p.generateReturn(x)
	case *ast.Throw:
		p.generate(x.Value, notInCondition)
		p.builder.ThrowException(x, p.builder.BoundValue(x.Value))
	case *ast.Block:
		p.generateBlock(x)
	case *ast.FunctionLiteral:
		p.generateFunctionLiteral(x)
	case *ast.ObjectLiteral:
		p.generateObjectLiteral(x)
	case *ast.IsExpr:
		p.generate(x.Left, notInCondition)
		p.builder.Magic(x, x, p.elementsToValues(x.Left), pseudocode.IsTestMagic)
	case *ast.TypeOp:
		p.generate(x.Left, notInCondition)
		p.copyValue(x.Left, x)
	case *ast.Property:
		p.generateProperty(x)
	case *ast.MultiDeclaration:
		p.generateMultiDeclaration(x)
	case *ast.Function:
		p.processLocalDeclaration(x)
	case *ast.ObjectDeclaration:
		p.processLocalDeclaration(x)
	default:
		p.trace.Report(errors.UnsupportedConstruct(fmt.Sprintf("%T", n), n.NodePos()))
		p.builder.Unsupported(n, "unsupported construct")
	}
}

// Helpers over bound values.

func (p *Processor) copyValue(from ast.Expr, to ast.Node) {
	if from == nil {
		return
	}
	if v := p.builder.BoundValue(from); v != nil {
		p.builder.BindValue(v, to)
	}
}

func (p *Processor) elementsToValues(elements ...ast.Expr) []*pseudocode.PseudoValue {
	var values []*pseudocode.PseudoValue
	for _, e := range elements {
		if e == nil {
			continue
		}
		if v := p.builder.BoundValue(e); v != nil {
			values = append(values, v)
		}
	}
	return values
}

// mergeValues joins branch values into the value of the whole expression:
// none means no value, one is aliased, several merge.
func (p *Processor) mergeValues(branches []ast.Expr, to ast.Node) {
	values := p.elementsToValues(branches...)
	switch len(values) {
	case 0:
	case 1:
		p.builder.BindValue(values[0], to)
	default:
		p.builder.Merge(to, values)
	}
}

func (p *Processor) deferred(e ast.Expr) deferredValue {
	return func() *pseudocode.PseudoValue {
		p.generate(e, notInCondition)
		return p.builder.BoundValue(e)
	}
}

func precomputed(v *pseudocode.PseudoValue) deferredValue {
	return func() *pseudocode.PseudoValue { return v }
}

// Names and calls.

func (p *Processor) generateNameRead(x *ast.Name) {
	rc := p.trace.ResolvedCallFor(x)
	if rc == nil {
		p.builder.Magic(x, x, nil, pseudocode.UnresolvedCallMagic)
		return
	}
	receivers := p.generateReceiverValues(x, rc)
	p.builder.ReadVariable(x, rc, receivers)
}

func (p *Processor) generateStringTemplate(x *ast.StringTemplate) {
	var inputs []*pseudocode.PseudoValue
	for _, entry := range x.Entries {
		if entry.Value == nil {
			continue
		}
		p.generate(entry.Value, notInCondition)
		if v := p.builder.BoundValue(entry.Value); v != nil {
			inputs = append(inputs, v)
		}
	}
	p.builder.LoadStringTemplate(x, inputs)
}

// generateReceiverValues lowers the receivers of a resolved call:
// this-receivers contribute a synthetic value, expression receivers are
// lowered (or their already-bound value reused), transient receivers
// contribute nothing. Any other kind is an internal defect.
func (p *Processor) generateReceiverValues(callElement ast.Node, rc *resolve.ResolvedCall) []*pseudocode.PseudoValue {
	var receivers []*pseudocode.PseudoValue
	for _, recv := range []resolve.ReceiverValue{rc.ThisObject, rc.ReceiverArgument} {
		switch recv.Kind {
		case resolve.NoReceiver, resolve.TransientReceiver:
		case resolve.ThisReceiver:
			v := p.builder.Magic(callElement, nil, nil, pseudocode.GeneralMagic).GetValue()
			receivers = append(receivers, v)
		case resolve.ExpressionReceiver:
			if v := p.generateValueArgument(recv.Expr); v != nil {
				receivers = append(receivers, v)
			}
		default:
			panic(fmt.Sprintf("cfg: unknown receiver kind %d", recv.Kind))
		}
	}
	return receivers
}

// generateValueArgument lowers an argument expression, reusing the value
// if this occurrence was already lowered (compound assignments evaluate
// their target expression once).
func (p *Processor) generateValueArgument(e ast.Expr) *pseudocode.PseudoValue {
	if e == nil {
		return nil
	}
	if v := p.builder.BoundValue(e); v != nil {
		return v
	}
	p.generate(e, notInCondition)
	return p.builder.BoundValue(e)
}

// generateCall lowers receivers, then arguments in parameter declaration
// order, then emits the call. Variable targets read instead.
func (p *Processor) generateCall(callElement, valueElement ast.Node, rc *resolve.ResolvedCall) pseudocode.InstructionWithValue {
	receivers := p.generateReceiverValues(callElement, rc)
	var args []*pseudocode.PseudoValue
	for _, ra := range rc.Arguments {
		for _, e := range ra.Expressions {
			if v := p.generateValueArgument(e); v != nil {
				args = append(args, v)
			}
		}
	}
	if rc.VariableTarget() != nil {
		if len(rc.Arguments) != 0 {
			panic("cfg: variable read carries value arguments")
		}
		return p.builder.ReadVariable(valueElement, rc, receivers)
	}
	return p.builder.Call(callElement, valueElement, rc, receivers, args)
}

func (p *Processor) generateCallExpression(x *ast.Call) {
	rc := p.trace.ResolvedCallFor(x)
	if rc == nil {
		p.generateUnresolvedCall(x)
		return
	}
	p.generateCall(x, x, rc)
}

// generateUnresolvedCall keeps every visible subexpression in the flow
// when resolution failed, then composes one value for the whole call.
func (p *Processor) generateUnresolvedCall(c *ast.Call) {
	var inputs []*pseudocode.PseudoValue
	addBound := func(e ast.Expr) {
		if e == nil {
			return
		}
		p.generate(e, notInCondition)
		if v := p.builder.BoundValue(e); v != nil {
			inputs = append(inputs, v)
		}
	}
	for _, a := range c.Args {
		addBound(a.Value)
	}
	for _, l := range c.LambdaArgs {
		addBound(l)
	}
	addBound(c.Callee)
	if q, ok := p.trace.ParentOf(c).(*ast.Qualified); ok && q.Selector == c {
		if v := p.builder.BoundValue(q.Receiver); v != nil {
			inputs = append(inputs, v)
		}
	}
	p.builder.CompilationError(c, "no resolved call for '"+c.String()+"'")
	p.builder.Magic(c, c, inputs, pseudocode.UnresolvedCallMagic)
}

func (p *Processor) generateQualified(x *ast.Qualified) {
	p.generate(x.Receiver, notInCondition)
	sel := ast.Deparenthesize(x.Selector)
	switch s := sel.(type) {
	case *ast.Call:
		p.generateCallExpression(s)
		p.copyValue(s, x.Selector)
	case *ast.Name:
		p.generateNameRead(s)
		p.copyValue(s, x.Selector)
	default:
		p.generate(x.Selector, notInCondition)
	}
	p.copyValue(x.Selector, x)
}

// Binary operations.

func (p *Processor) generateBinary(x *ast.Binary, ctx genContext) {
	op := x.OpRef.Op
	switch {
	case op == "&&":
		p.generateBooleanOperation(x, ctx, true)
	case op == "||":
		p.generateBooleanOperation(x, ctx, false)
	case op == "?:":
		p.generateElvis(x)
	case ast.IsAssignmentOp(op):
		p.visitAssignment(x.Left, p.deferred(x.Right), x)
	case ast.IsAugmentedAssignmentOp(op):
		p.generateAugmentedAssignment(x)
	default:
		rc := p.trace.ResolvedCallFor(x.OpRef)
		if rc == nil {
			p.generateBothArgumentsAndMark(x)
			return
		}
		p.generateCall(x, x, rc)
	}
}

func (p *Processor) generateBooleanOperation(x *ast.Binary, ctx genContext, and bool) {
	resultLabel := p.builder.CreateUnboundLabel("result of boolean operation")
	p.generate(x.Left, inCondition)
	leftValue := p.builder.BoundValue(x.Left)
	if and {
		p.builder.JumpOnFalse(resultLabel, x, leftValue)
	} else {
		p.builder.JumpOnTrue(resultLabel, x, leftValue)
	}
	p.generate(x.Right, inCondition)
	p.builder.BindLabel(resultLabel)
	if ctx != inCondition {
		op := pseudocode.OrOperation
		if and {
			op = pseudocode.AndOperation
		}
		p.builder.PredefinedOperation(x, op, p.elementsToValues(x.Left, x.Right))
	}
}

func (p *Processor) generateElvis(x *ast.Binary) {
	afterElvis := p.builder.CreateUnboundLabel("after elvis operator")
	p.generate(x.Left, notInCondition)
	p.builder.JumpOnTrue(afterElvis, x, p.builder.BoundValue(x.Left))
	p.generate(x.Right, notInCondition)
	p.builder.BindLabel(afterElvis)
	p.mergeValues([]ast.Expr{x.Left, x.Right}, x)
}

func (p *Processor) generateBothArgumentsAndMark(x *ast.Binary) {
	p.builder.Mark(x)
	p.generate(x.Left, notInCondition)
	p.generate(x.Right, notInCondition)
	p.builder.Magic(x, x, p.elementsToValues(x.Left, x.Right), pseudocode.GeneralMagic)
}

func (p *Processor) generateAugmentedAssignment(x *ast.Binary) {
	op := x.OpRef.Op
	rc := p.trace.ResolvedCallFor(x.OpRef)
	if rc == nil {
		p.generateBothArgumentsAndMark(x)
		return
	}
	inPlaceName := ast.InPlaceOperatorFunctionName(op)
	if inPlaceName != "" && rc.Descriptor.DescriptorName() == inPlaceName {
		// in-place operator: a single mutating call, no separate write
		p.generateCall(x, x, rc)
		return
	}
	call := p.generateCall(x, nil, rc)
	p.visitAssignment(x.Left, precomputed(call.GetValue()), x)
}

// Unary operations.

func (p *Processor) generateUnary(u *ast.Unary) {
	op := u.OpRef.Op
	if op == "!!" {
		p.generate(u.Base, notInCondition)
		p.builder.PredefinedOperation(u, pseudocode.NotNullAssertionOperation, p.elementsToValues(u.Base))
		return
	}
	rc := p.trace.ResolvedCallFor(u.OpRef)
	if rc == nil {
		p.generate(u.Base, notInCondition)
		p.builder.Magic(u, u, p.elementsToValues(u.Base), pseudocode.GeneralMagic)
		return
	}
	if !ast.IsIncrementOrDecrement(op) {
		p.generateCall(u, u, rc)
		return
	}
	// inc/dec: the operator call computes the new value, assignment
	// lowering stores it back into the same target
	call := p.generateCall(u, nil, rc)
	if u.Postfix {
		p.copyValue(u.Base, u)
	} else {
		p.builder.BindValue(call.GetValue(), u)
	}
	p.visitAssignment(u.Base, precomputed(call.GetValue()), u)
}

// Assignments.

func (p *Processor) visitAssignment(lhs ast.Expr, rhs deferredValue, assignment ast.Node) {
	left := ast.Deparenthesize(lhs)
	if left == nil {
		p.builder.CompilationError(assignment, "no left-hand side in assignment")
		rhs()
		return
	}
	switch l := left.(type) {
	case *ast.ArrayAccess:
		p.generateArrayAssignment(l, rhs, assignment)
	case *ast.Name, *ast.Qualified:
		p.generateVariableAssignment(left, rhs, assignment)
	default:
		p.trace.Report(errors.UnsupportedAssignmentTarget(left.String(), left.NodePos()))
		p.builder.Unsupported(left, "unsupported assignment target")
		rhs()
	}
}

func (p *Processor) generateVariableAssignment(left ast.Expr, rhs deferredValue, assignment ast.Node) {
	sel := left
	if q, ok := left.(*ast.Qualified); ok {
		sel = ast.Deparenthesize(q.Selector)
	}
	rc := p.trace.ResolvedCallFor(sel)
	var target pseudocode.AccessTarget
	var receivers []*pseudocode.PseudoValue
	if rc != nil {
		target = pseudocode.AccessTarget{Kind: pseudocode.CallAccessTarget, Call: rc}
		receivers = p.generateReceiverValues(assignment, rc)
	} else {
		target = pseudocode.BlackBox
		if q, ok := left.(*ast.Qualified); ok {
			p.generate(q.Receiver, notInCondition)
			receivers = p.elementsToValues(q.Receiver)
		}
	}
	p.builder.Write(assignment, left, rhs(), target, receivers)
}

// generateArrayAssignment lowers a[i] = v as one 'set' call with the
// right-hand side as its last argument.
func (p *Processor) generateArrayAssignment(l *ast.ArrayAccess, rhs deferredValue, assignment ast.Node) {
	setCall := p.trace.IndexedSetCall(l)
	if setCall == nil {
		p.generate(l.Array, notInCondition)
		for _, ix := range l.Indices {
			p.generate(ix, notInCondition)
		}
		rv := rhs()
		p.builder.CompilationError(l, "no resolved 'set' call for '"+l.String()+"'")
		p.builder.Write(assignment, l, rv, pseudocode.BlackBox, nil)
		return
	}
	receivers := p.generateReceiverValues(assignment, setCall)
	var args []*pseudocode.PseudoValue
	for _, ra := range setCall.Arguments {
		for _, e := range ra.Expressions {
			if v := p.generateValueArgument(e); v != nil {
				args = append(args, v)
			}
		}
	}
	if rv := rhs(); rv != nil {
		args = append(args, rv)
	}
	p.builder.Call(assignment, nil, setCall, receivers, args)
}

func (p *Processor) generateArrayRead(x *ast.ArrayAccess) {
	getCall := p.trace.IndexedGetCall(x)
	if getCall == nil {
		p.generate(x.Array, notInCondition)
		for _, ix := range x.Indices {
			p.generate(ix, notInCondition)
		}
		inputs := p.elementsToValues(append([]ast.Expr{x.Array}, x.Indices...)...)
		p.builder.Magic(x, x, inputs, pseudocode.UnresolvedCallMagic)
		return
	}
	p.generateCall(x, x, getCall)
}

// Conditionals.

func (p *Processor) generateIf(x *ast.If) {
	var branches []ast.Expr
	p.generate(x.Condition, inCondition)
	elseLabel := p.builder.CreateUnboundLabel("else branch")
	p.builder.JumpOnFalse(elseLabel, x, p.builder.BoundValue(x.Condition))
	resultLabel := p.builder.CreateUnboundLabel("'if' expression result")
	if x.Then != nil {
		branches = append(branches, x.Then)
		p.generate(x.Then, notInCondition)
	} else {
		p.builder.LoadUnit(x)
	}
	p.builder.Jump(resultLabel, x)
	p.builder.BindLabel(elseLabel)
	if x.Else != nil {
		branches = append(branches, x.Else)
		p.generate(x.Else, notInCondition)
	} else {
		p.builder.LoadUnit(x)
	}
	p.builder.BindLabel(resultLabel)
	p.mergeValues(branches, x)
}

func (p *Processor) generateWhen(x *ast.When) {
	p.builder.Mark(x)
	if x.Subject != nil {
		p.generate(x.Subject, notInCondition)
	}
	doneLabel := p.builder.CreateUnboundLabel("'when' expression result")
	var branches []ast.Expr
	hasElse := false
	for idx, entry := range x.Entries {
		p.builder.Mark(entry)
		var nextLabel *pseudocode.Label
		if entry.IsElse {
			hasElse = true
			if idx != len(x.Entries)-1 {
				p.trace.Report(errors.ElseMisplacedInWhen(entry.Pos))
			}
		} else {
			bodyLabel := p.builder.CreateUnboundLabel("'when' entry body")
			for i, cond := range entry.Conditions {
				p.generateWhenCondition(x, cond)
				if i+1 < len(entry.Conditions) {
					p.builder.NondeterministicJump([]*pseudocode.Label{bodyLabel}, x, p.conditionValue(cond))
				}
			}
			nextLabel = p.builder.CreateUnboundLabel("next 'when' entry")
			var lastValue *pseudocode.PseudoValue
			if len(entry.Conditions) > 0 {
				lastValue = p.conditionValue(entry.Conditions[len(entry.Conditions)-1])
			}
			p.builder.NondeterministicJump([]*pseudocode.Label{nextLabel}, x, lastValue)
			p.builder.BindLabel(bodyLabel)
		}
		branches = append(branches, entry.Body)
		p.generate(entry.Body, notInCondition)
		p.builder.Jump(doneLabel, x)
		if nextLabel != nil {
			p.builder.BindLabel(nextLabel)
		}
	}
	p.builder.BindLabel(doneLabel)
	if !hasElse && p.trace.WhenMustHaveElse(x) {
		p.trace.Report(errors.NoElseInWhen(x.Pos))
	}
	p.mergeValues(branches, x)
}

func (p *Processor) conditionValue(cond ast.WhenCondition) *pseudocode.PseudoValue {
	return p.builder.BoundValue(cond)
}

func (p *Processor) generateWhenCondition(w *ast.When, cond ast.WhenCondition) {
	switch c := cond.(type) {
	case *ast.WhenConditionInRange:
		p.generate(c.RangeExpr, notInCondition)
		if rc := p.trace.ResolvedCallFor(c.OpRef); rc != nil {
			p.generateCall(c.OpRef, nil, rc)
		}
		p.builder.Magic(c, c, p.elementsToValues(c.RangeExpr), pseudocode.WhenConditionMagic)
	case *ast.WhenConditionIsPattern:
		// type tests leave no instruction trace
	case *ast.WhenConditionExpression:
		p.generate(c.Value, notInCondition)
		if v := p.builder.BoundValue(c.Value); v != nil {
			p.builder.BindValue(v, c)
		}
	}
}

// Try, catch, finally.

type finallyState int

const (
	finallyNotGenerated finallyState = iota
	finallyGenerating
	finallyGenerated
)

// finallyBlockGenerator materializes a finally body once and replays the
// recorded instruction range on every later request. The Generating
// state keeps a return inside the finally body from re-entering.
type finallyBlockGenerator struct {
	p       *Processor
	section *ast.FinallySection
	state   finallyState
	start   *pseudocode.Label
	finish  *pseudocode.Label
}

func (f *finallyBlockGenerator) generate() {
	if f.section == nil {
		return
	}
	switch f.state {
	case finallyGenerated:
		f.p.builder.RepeatPseudocode(f.start, f.finish)
	case finallyGenerating:
	case finallyNotGenerated:
		f.state = finallyGenerating
		f.start = f.p.builder.CreateUnboundLabel("start finally")
		f.finish = f.p.builder.CreateUnboundLabel("finish finally")
		f.p.builder.BindLabel(f.start)
		f.p.generate(f.section.Body, notInCondition)
		f.p.builder.BindLabel(f.finish)
		f.state = finallyGenerated
	}
}

func (p *Processor) generateTry(x *ast.Try) {
	p.builder.Mark(x)

	finallyGen := &finallyBlockGenerator{p: p, section: x.Finally}
	if x.Finally != nil {
		p.builder.PushTryFinally(finallyGen.generate)
	}

	hasCatches := len(x.Catches) > 0
	var onException *pseudocode.Label
	if hasCatches {
		onException = p.builder.CreateUnboundLabel("on exception")
		p.builder.NondeterministicJump([]*pseudocode.Label{onException}, x, nil)
	}
	var onExceptionToFinally *pseudocode.Label
	if x.Finally != nil {
		onExceptionToFinally = p.builder.CreateUnboundLabel("on exception to finally block")
		p.builder.NondeterministicJump([]*pseudocode.Label{onExceptionToFinally}, x, nil)
	}

	p.generate(x.TryBlock, notInCondition)

	if hasCatches {
		afterCatches := p.builder.CreateUnboundLabel("after catches")
		p.builder.Jump(afterCatches, x)

		p.builder.BindLabel(onException)
		var catchLabels []*pseudocode.Label
		for i := 0; i < len(x.Catches)-1; i++ {
			catchLabels = append(catchLabels, p.builder.CreateUnboundLabel(fmt.Sprintf("catch %d", i)))
		}
		if len(catchLabels) > 0 {
			p.builder.NondeterministicJump(catchLabels, x, nil)
		}
		for i, catch := range x.Catches {
			p.builder.EnterLexicalScope(catch)
			if i > 0 {
				p.builder.BindLabel(catchLabels[i-1])
			}
			if catch.Parameter != nil {
				p.builder.DeclareParameter(catch.Parameter)
				v := p.builder.Magic(catch.Parameter, nil, nil, pseudocode.GeneralMagic).GetValue()
				p.generateInitializer(catch.Parameter, precomputed(v))
			}
			p.generate(catch.Body, notInCondition)
			p.builder.Jump(afterCatches, x)
			p.builder.ExitLexicalScope(catch)
		}
		p.builder.BindLabel(afterCatches)
	}

	if x.Finally != nil {
		p.builder.PopTryFinally()
		skipFinallyToError := p.builder.CreateUnboundLabel("skip finally to error block")
		p.builder.Jump(skipFinallyToError, x)
		p.builder.BindLabel(onExceptionToFinally)
		finallyGen.generate()
		p.builder.JumpToError(x)
		p.builder.BindLabel(skipFinallyToError)
		finallyGen.generate()
	}

	branches := make([]ast.Expr, 0, 1+len(x.Catches))
	branches = append(branches, x.TryBlock)
	for _, c := range x.Catches {
		branches = append(branches, c.Body)
	}
	p.mergeValues(branches, x)
}

// Loops.

func (p *Processor) generateWhile(x *ast.While) {
	info := p.builder.EnterLoop(x, nil, nil)
	p.builder.BindLabel(info.ConditionEntryPoint)
	p.generate(x.Condition, inCondition)
	if !p.isTrueConstant(x.Condition) {
		p.builder.JumpOnFalse(info.ExitPoint, x, p.builder.BoundValue(x.Condition))
	}
	p.builder.BindLabel(info.BodyEntryPoint)
	p.generate(x.Body, notInCondition)
	p.builder.Jump(info.EntryPoint, x)
	p.builder.ExitLoop(x)
	p.builder.LoadUnit(x)
}

func (p *Processor) isTrueConstant(cond ast.Expr) bool {
	if cond == nil {
		return false
	}
	v, ok := p.trace.BoolConstant(ast.Deparenthesize(cond))
	return ok && v
}

func (p *Processor) generateDoWhile(x *ast.DoWhile) {
	p.builder.EnterLexicalScope(x)
	info := p.builder.EnterLoop(x, nil, nil)
	p.builder.BindLabel(info.BodyEntryPoint)
	p.generate(x.Body, notInCondition)
	p.builder.BindLabel(info.ConditionEntryPoint)
	p.generate(x.Condition, inCondition)
	p.builder.JumpOnTrue(info.EntryPoint, x, p.builder.BoundValue(x.Condition))
	p.builder.ExitLoop(x)
	p.builder.LoadUnit(x)
	p.builder.ExitLexicalScope(x)
}

func (p *Processor) generateFor(x *ast.For) {
	p.builder.EnterLexicalScope(x)
	p.generate(x.RangeExpr, notInCondition)
	p.declareLoopParameter(x)
	conditionLabel := p.builder.CreateUnboundLabel("loop condition entry point")
	p.builder.BindLabel(conditionLabel)
	exitLabel := p.builder.CreateUnboundLabel("loop exit point")
	p.builder.NondeterministicJump([]*pseudocode.Label{exitLabel}, x, nil)
	info := p.builder.EnterLoop(x, exitLabel, conditionLabel)
	p.builder.BindLabel(info.BodyEntryPoint)
	p.writeLoopParameterAssignment(x)
	p.generate(x.Body, notInCondition)
	p.builder.NondeterministicJump([]*pseudocode.Label{info.EntryPoint}, x, nil)
	p.builder.ExitLoop(x)
	p.builder.LoadUnit(x)
	p.builder.ExitLexicalScope(x)
}

func (p *Processor) declareLoopParameter(x *ast.For) {
	if x.Parameter != nil {
		p.builder.DeclareParameter(x.Parameter)
	}
	if x.MultiParameter != nil {
		for _, entry := range x.MultiParameter.Entries {
			p.builder.DeclareVariable(entry)
		}
	}
}

// writeLoopParameterAssignment models one iteration step: a value drawn
// from the range is stored into the loop parameter(s).
func (p *Processor) writeLoopParameterAssignment(x *ast.For) {
	value := p.builder.Magic(x.RangeExpr, nil, p.elementsToValues(x.RangeExpr), pseudocode.LoopRangeIterationMagic).GetValue()
	if x.Parameter != nil {
		p.generateInitializer(x.Parameter, precomputed(value))
	}
	if x.MultiParameter != nil {
		for _, entry := range x.MultiParameter.Entries {
			var v *pseudocode.PseudoValue
			if rc := p.trace.ComponentCall(entry); rc != nil {
				v = p.generateCall(entry, nil, rc).GetValue()
			} else {
				v = p.builder.Magic(entry, nil, nil, pseudocode.UnresolvedCallMagic).GetValue()
			}
			p.generateInitializer(entry, precomputed(v))
		}
	}
}

// generateInitializer writes through a declaration access target.
func (p *Processor) generateInitializer(decl ast.Node, rhs deferredValue) {
	target := pseudocode.AccessTarget{
		Kind:       pseudocode.DeclarationAccessTarget,
		Descriptor: p.trace.DescriptorFor(decl),
	}
	p.builder.Write(decl, nil, rhs(), target, nil)
}

// Jumps.

func (p *Processor) generateBreak(x *ast.Break) {
	loop := p.correspondingLoop(x, x.Label, "break")
	if loop == nil {
		return
	}
	p.checkJumpDoesNotCrossFunctionBoundary(x, loop, "break")
	p.builder.Jump(loop.ExitPoint, x)
}

func (p *Processor) generateContinue(x *ast.Continue) {
	loop := p.correspondingLoop(x, x.Label, "continue")
	if loop == nil {
		return
	}
	p.checkJumpDoesNotCrossFunctionBoundary(x, loop, "continue")
	p.builder.Jump(loop.EntryPoint, x)
}

func (p *Processor) correspondingLoop(jump ast.Node, label, keyword string) *LoopInfo {
	if label != "" {
		target := p.trace.LabelTarget(jump)
		loopExpr, ok := target.(ast.Expr)
		if ok {
			switch target.(type) {
			case *ast.While, *ast.DoWhile, *ast.For:
			default:
				ok = false
			}
		}
		if !ok {
			p.trace.Report(errors.NotALoopLabel(keyword, label, jump.NodePos()))
			return nil
		}
		if info := p.builder.LoopInfoFor(loopExpr); info != nil {
			return info
		}
		p.trace.Report(errors.NotALoopLabel(keyword, label, jump.NodePos()))
		return nil
	}
	if info := p.builder.CurrentLoop(); info != nil {
		return info
	}
	p.trace.Report(errors.BreakOrContinueOutsideLoop(keyword, jump.NodePos()))
	return nil
}

// checkJumpDoesNotCrossFunctionBoundary reports when the jump and its
// loop live in different subroutines. The jump is still emitted so later
// analyses see the intended edge.
func (p *Processor) checkJumpDoesNotCrossFunctionBoundary(jump ast.Node, loop *LoopInfo, keyword string) {
	jumpSub := p.trace.EnclosingSubroutine(jump)
	loopSub := p.trace.EnclosingSubroutine(loop.Element)
	if jumpSub != loopSub {
		p.trace.Report(errors.JumpCrossesFunctionBoundary(keyword, jump.NodePos()))
	}
}

func (p *Processor) generateReturn(x *ast.Return) {
	var subroutine ast.Node
	if x.Label != "" {
		if target := p.trace.LabelTarget(x); target != nil {
			subroutine = target
		} else {
			p.trace.Report(errors.NotAReturnLabel(x.Label, x.Pos))
		}
	} else {
		subroutine = p.builder.ReturnSubroutine()
	}
	if x.Value != nil {
		p.generate(x.Value, notInCondition)
	}
	if subroutine == nil {
		return
	}
	if !resolve.CanCarryReturn(subroutine) {
		p.trace.Report(errors.ReturnNotAllowed(x.Pos))
		return
	}
	if x.Label != "" && p.trace.EnclosingSubroutine(x) != subroutine {
		p.trace.Report(errors.JumpCrossesFunctionBoundary("return", x.Pos))
	}
	if x.Value == nil {
		p.builder.ReturnNoValue(x, subroutine)
	} else {
		p.builder.ReturnValue(x, p.builder.BoundValue(x.Value), subroutine)
	}
}

// Blocks and local declarations.

func (p *Processor) generateBlock(x *ast.Block) {
	openScope := !p.isDoWhileBody(x)
	if openScope {
		p.builder.EnterLexicalScope(x)
	}
	if len(x.Statements) == 0 {
		p.builder.LoadUnit(x)
	} else {
		var last ast.Node
		for _, s := range x.Statements {
			p.generate(s, notInCondition)
			last = s
		}
		if e, ok := last.(ast.Expr); ok {
			p.copyValue(e, x)
		}
	}
	if openScope {
		p.builder.ExitLexicalScope(x)
	}
}

func (p *Processor) isDoWhileBody(x *ast.Block) bool {
	dw, ok := p.trace.ParentOf(x).(*ast.DoWhile)
	return ok && dw.Body == ast.Expr(x)
}

// processLocalDeclaration brackets a nested declaration with a
// nondeterministic jump and lowers its body into an independent
// pseudocode.
func (p *Processor) processLocalDeclaration(decl ast.Node) *pseudocode.Pseudocode {
	after := p.builder.CreateUnboundLabel("after local declaration")
	p.builder.NondeterministicJump([]*pseudocode.Label{after}, decl, nil)
	body := p.generateSubroutine(decl)
	p.builder.DeclareLocalFunction(decl, body)
	p.builder.BindLabel(after)
	return body
}

func (p *Processor) generateFunctionLiteral(x *ast.FunctionLiteral) {
	after := p.builder.CreateUnboundLabel("after function literal")
	p.builder.NondeterministicJump([]*pseudocode.Label{after}, x, nil)
	body := p.generateSubroutine(x)
	p.builder.CreateFunctionLiteral(x, body)
	p.builder.BindLabel(after)
}

func (p *Processor) generateObjectLiteral(x *ast.ObjectLiteral) {
	after := p.builder.CreateUnboundLabel("after object literal")
	p.builder.NondeterministicJump([]*pseudocode.Label{after}, x, nil)
	body := p.generateSubroutine(x.Declaration)
	p.builder.CreateAnonymousObject(x, body)
	p.builder.BindLabel(after)
}

// Properties and destructuring.

func (p *Processor) generateProperty(x *ast.Property) {
	p.builder.DeclareVariable(x)
	if x.Initializer != nil {
		p.generateInitializer(x, p.deferred(x.Initializer))
	}
	if x.Delegate != nil {
		p.generate(x.Delegate, notInCondition)
	}
	for _, acc := range x.Accessors {
		p.processLocalDeclaration(acc)
	}
}

func (p *Processor) generateMultiDeclaration(x *ast.MultiDeclaration) {
	p.generate(x.Initializer, notInCondition)
	for _, entry := range x.Entries {
		p.builder.DeclareVariable(entry)
		var v *pseudocode.PseudoValue
		if rc := p.trace.ComponentCall(entry); rc != nil {
			v = p.generateCall(entry, nil, rc).GetValue()
		} else {
			v = p.builder.Magic(entry, nil, nil, pseudocode.UnresolvedCallMagic).GetValue()
		}
		p.generateInitializer(entry, precomputed(v))
	}
}
