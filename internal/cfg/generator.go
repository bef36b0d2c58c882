package cfg

import (
	"fmt"

	"github.com/micromingle/kotlin/internal/ast"
	"github.com/micromingle/kotlin/internal/cfg/pseudocode"
	"github.com/micromingle/kotlin/internal/resolve"
)

// InstructionsGenerator is the production Builder: it turns the command
// stream into pseudocode instructions. Each subroutine gets its own
// worker so local functions build independent pseudocodes while their
// host keeps accumulating.
type InstructionsGenerator struct {
	workers []*worker
}

type worker struct {
	subroutine  ast.Node
	pcode       *pseudocode.Pseudocode
	boundValues map[ast.Node]*pseudocode.PseudoValue
	loopStack   []*LoopInfo
	loops       map[ast.Expr]*LoopInfo
	triggers    []GenerationTrigger
}

// NewInstructionsGenerator creates a generator with no open subroutine.
func NewInstructionsGenerator() *InstructionsGenerator {
	return &InstructionsGenerator{}
}

func (g *InstructionsGenerator) current() *worker {
	if len(g.workers) == 0 {
		panic("cfg: no open subroutine")
	}
	return g.workers[len(g.workers)-1]
}

func (g *InstructionsGenerator) add(instr pseudocode.Instruction) {
	g.current().pcode.Add(instr)
}

func (g *InstructionsGenerator) EnterSubroutine(subroutine ast.Node) {
	w := &worker{
		subroutine:  subroutine,
		pcode:       pseudocode.New(subroutine),
		boundValues: make(map[ast.Node]*pseudocode.PseudoValue),
		loops:       make(map[ast.Expr]*LoopInfo),
	}
	g.workers = append(g.workers, w)
	g.add(pseudocode.NewSubroutineEnterInstruction(subroutine))
}

func (g *InstructionsGenerator) ExitSubroutine(subroutine ast.Node) *pseudocode.Pseudocode {
	w := g.current()
	if w.subroutine != subroutine {
		panic(fmt.Sprintf("cfg: exiting %s but %s is open", subroutine, w.subroutine))
	}
	p := w.pcode
	p.BindLabel(p.ExitLabel())
	p.Add(pseudocode.NewSubroutineExitInstruction(subroutine, false))
	p.BindLabel(p.ErrorLabel())
	p.Add(pseudocode.NewSubroutineExitInstruction(subroutine, true))
	p.BindLabel(p.SinkLabel())
	p.Add(pseudocode.NewSubroutineSinkInstruction(subroutine))
	p.PostProcess()
	g.workers = g.workers[:len(g.workers)-1]
	return p
}

func (g *InstructionsGenerator) CurrentSubroutine() ast.Node {
	return g.current().subroutine
}

// ReturnSubroutine is the target of an unlabeled return: the innermost
// subroutine that can carry one.
func (g *InstructionsGenerator) ReturnSubroutine() ast.Node {
	for i := len(g.workers) - 1; i >= 0; i-- {
		if resolve.CanCarryReturn(g.workers[i].subroutine) {
			return g.workers[i].subroutine
		}
	}
	return nil
}

func (g *InstructionsGenerator) BoundValue(element ast.Node) *pseudocode.PseudoValue {
	if element == nil {
		return nil
	}
	return g.current().boundValues[element]
}

func (g *InstructionsGenerator) BindValue(value *pseudocode.PseudoValue, element ast.Node) {
	if value == nil || element == nil {
		return
	}
	g.current().boundValues[element] = value
}

func (g *InstructionsGenerator) CreateUnboundLabel(name string) *pseudocode.Label {
	return g.current().pcode.NewLabel(name)
}

func (g *InstructionsGenerator) BindLabel(label *pseudocode.Label) {
	g.current().pcode.BindLabel(label)
}

func (g *InstructionsGenerator) Jump(target *pseudocode.Label, element ast.Node) {
	g.add(pseudocode.NewUnconditionalJumpInstruction(element, target, false))
}

func (g *InstructionsGenerator) JumpOnFalse(target *pseudocode.Label, element ast.Node, condition *pseudocode.PseudoValue) {
	g.add(pseudocode.NewConditionalJumpInstruction(element, false, condition, target))
}

func (g *InstructionsGenerator) JumpOnTrue(target *pseudocode.Label, element ast.Node, condition *pseudocode.PseudoValue) {
	g.add(pseudocode.NewConditionalJumpInstruction(element, true, condition, target))
}

func (g *InstructionsGenerator) NondeterministicJump(targets []*pseudocode.Label, element ast.Node, input *pseudocode.PseudoValue) {
	g.add(pseudocode.NewNondeterministicJumpInstruction(element, targets, input))
}

func (g *InstructionsGenerator) JumpToError(element ast.Node) {
	g.add(pseudocode.NewUnconditionalJumpInstruction(element, g.current().pcode.ErrorLabel(), true))
}

func (g *InstructionsGenerator) ErrorLabel() *pseudocode.Label {
	return g.current().pcode.ErrorLabel()
}

func (g *InstructionsGenerator) Mark(element ast.Node) {
	g.add(pseudocode.NewMarkInstruction(element))
}

// newValue allocates a value, bound to element unless element is nil.
func (g *InstructionsGenerator) newValue(element ast.Node) *pseudocode.PseudoValue {
	v := g.current().pcode.NewValue(element)
	g.BindValue(v, element)
	return v
}

func (g *InstructionsGenerator) LoadConstant(element ast.Node) pseudocode.InstructionWithValue {
	instr := pseudocode.NewConstantInstruction(element, g.newValue(element))
	g.add(instr)
	return instr
}

func (g *InstructionsGenerator) LoadUnit(element ast.Node) pseudocode.InstructionWithValue {
	instr := pseudocode.NewLoadUnitInstruction(element, g.newValue(element))
	g.add(instr)
	return instr
}

func (g *InstructionsGenerator) LoadStringTemplate(element ast.Node, inputs []*pseudocode.PseudoValue) pseudocode.InstructionWithValue {
	instr := pseudocode.NewStringTemplateInstruction(element, inputs, g.newValue(element))
	g.add(instr)
	return instr
}

func (g *InstructionsGenerator) Magic(instructionElement, valueElement ast.Node, inputs []*pseudocode.PseudoValue, kind pseudocode.MagicKind) pseudocode.InstructionWithValue {
	instr := pseudocode.NewMagicInstruction(instructionElement, inputs, kind, g.newValue(valueElement))
	g.add(instr)
	return instr
}

func (g *InstructionsGenerator) Merge(element ast.Node, values []*pseudocode.PseudoValue) pseudocode.InstructionWithValue {
	instr := pseudocode.NewMergeInstruction(element, values, g.newValue(element))
	g.add(instr)
	return instr
}

func (g *InstructionsGenerator) ReadVariable(element ast.Node, call *resolve.ResolvedCall, receivers []*pseudocode.PseudoValue) pseudocode.InstructionWithValue {
	name := "<unknown>"
	if call != nil && call.Descriptor != nil {
		name = call.Descriptor.DescriptorName()
	}
	instr := pseudocode.NewReadVariableInstruction(element, name, receivers, g.newValue(element))
	g.add(instr)
	return instr
}

func (g *InstructionsGenerator) Call(element, valueElement ast.Node, call *resolve.ResolvedCall, receivers, arguments []*pseudocode.PseudoValue) pseudocode.InstructionWithValue {
	name := "<unknown>"
	if call != nil && call.Descriptor != nil {
		name = call.Descriptor.DescriptorName()
	}
	instr := pseudocode.NewCallInstruction(element, name, receivers, arguments, g.newValue(valueElement))
	g.add(instr)
	return instr
}

func (g *InstructionsGenerator) PredefinedOperation(element ast.Node, op pseudocode.PredefinedOperation, inputs []*pseudocode.PseudoValue) pseudocode.InstructionWithValue {
	instr := pseudocode.NewPredefinedOperationInstruction(element, op, inputs, g.newValue(element))
	g.add(instr)
	return instr
}

func (g *InstructionsGenerator) Write(assignment ast.Node, lvalue ast.Expr, rvalue *pseudocode.PseudoValue, target pseudocode.AccessTarget, receivers []*pseudocode.PseudoValue) {
	g.add(pseudocode.NewWriteVariableInstruction(assignment, lvalue, target, receivers, rvalue))
}

func (g *InstructionsGenerator) DeclareParameter(parameter ast.Node) {
	g.add(pseudocode.NewDeclareInstruction(parameter, true))
}

func (g *InstructionsGenerator) DeclareVariable(declaration ast.Node) {
	g.add(pseudocode.NewDeclareInstruction(declaration, false))
}

func (g *InstructionsGenerator) DeclareLocalFunction(element ast.Node, body *pseudocode.Pseudocode) {
	g.add(pseudocode.NewLocalDeclarationInstruction(element, body))
}

// CreateFunctionLiteral declares the literal's pseudocode and binds the
// closure value to the literal expression.
func (g *InstructionsGenerator) CreateFunctionLiteral(expression ast.Node, body *pseudocode.Pseudocode) pseudocode.InstructionWithValue {
	g.DeclareLocalFunction(expression, body)
	return g.Magic(expression, expression, nil, pseudocode.FunctionLiteralMagic)
}

// CreateAnonymousObject declares the object's pseudocode and binds the
// instance value to the literal expression.
func (g *InstructionsGenerator) CreateAnonymousObject(expression ast.Node, body *pseudocode.Pseudocode) pseudocode.InstructionWithValue {
	g.DeclareLocalFunction(expression, body)
	return g.Magic(expression, expression, nil, pseudocode.AnonymousObjectMagic)
}

func (g *InstructionsGenerator) EnterLexicalScope(element ast.Node) {}
func (g *InstructionsGenerator) ExitLexicalScope(element ast.Node)  {}

func (g *InstructionsGenerator) EnterLoop(loop ast.Expr, exitPoint, conditionEntryPoint *pseudocode.Label) *LoopInfo {
	w := g.current()
	entry := w.pcode.NewLabel("loop entry point")
	if exitPoint == nil {
		exitPoint = w.pcode.NewLabel("loop exit point")
	}
	if conditionEntryPoint == nil {
		conditionEntryPoint = w.pcode.NewLabel("condition entry point")
	}
	info := &LoopInfo{
		Element:             loop,
		EntryPoint:          entry,
		ExitPoint:           exitPoint,
		ConditionEntryPoint: conditionEntryPoint,
		BodyEntryPoint:      w.pcode.NewLabel("body entry point"),
	}
	w.pcode.BindLabel(entry)
	w.loopStack = append(w.loopStack, info)
	w.loops[loop] = info
	return info
}

func (g *InstructionsGenerator) ExitLoop(loop ast.Expr) {
	w := g.current()
	if len(w.loopStack) == 0 {
		panic("cfg: exiting a loop that was never entered")
	}
	info := w.loopStack[len(w.loopStack)-1]
	if info.Element != loop {
		panic("cfg: loop exit out of order")
	}
	w.pcode.BindLabel(info.ExitPoint)
	w.loopStack = w.loopStack[:len(w.loopStack)-1]
}

func (g *InstructionsGenerator) CurrentLoop() *LoopInfo {
	w := g.current()
	if len(w.loopStack) == 0 {
		return nil
	}
	return w.loopStack[len(w.loopStack)-1]
}

// LoopInfoFor finds a loop by its expression, searching enclosing
// subroutines too so cross-boundary jumps can still pick a target.
func (g *InstructionsGenerator) LoopInfoFor(loop ast.Expr) *LoopInfo {
	for i := len(g.workers) - 1; i >= 0; i-- {
		if info, ok := g.workers[i].loops[loop]; ok {
			return info
		}
	}
	return nil
}

func (g *InstructionsGenerator) ReturnValue(element ast.Node, value *pseudocode.PseudoValue, subroutine ast.Node) {
	g.fireTryFinallyTriggers()
	g.add(pseudocode.NewReturnValueInstruction(element, value, subroutine))
}

func (g *InstructionsGenerator) ReturnNoValue(element ast.Node, subroutine ast.Node) {
	g.fireTryFinallyTriggers()
	g.add(pseudocode.NewReturnNoValueInstruction(element, subroutine))
}

// fireTryFinallyTriggers runs the registered finally generators innermost
// first. A trigger may append more instructions but must not return.
func (g *InstructionsGenerator) fireTryFinallyTriggers() {
	w := g.current()
	triggers := make([]GenerationTrigger, len(w.triggers))
	copy(triggers, w.triggers)
	for i := len(triggers) - 1; i >= 0; i-- {
		triggers[i]()
	}
}

func (g *InstructionsGenerator) ThrowException(element ast.Node, thrown *pseudocode.PseudoValue) {
	g.add(pseudocode.NewThrowInstruction(element, thrown))
}

func (g *InstructionsGenerator) PushTryFinally(trigger GenerationTrigger) {
	w := g.current()
	w.triggers = append(w.triggers, trigger)
}

func (g *InstructionsGenerator) PopTryFinally() {
	w := g.current()
	if len(w.triggers) == 0 {
		panic("cfg: no try-finally trigger to pop")
	}
	w.triggers = w.triggers[:len(w.triggers)-1]
}

func (g *InstructionsGenerator) RepeatPseudocode(start, finish *pseudocode.Label) {
	g.add(pseudocode.NewRepeatInstruction(nil, start, finish))
}

func (g *InstructionsGenerator) CompilationError(element ast.Node, message string) {
	g.add(pseudocode.NewCompilationErrorInstruction(element, message))
}

func (g *InstructionsGenerator) Unsupported(element ast.Node, message string) {
	g.add(pseudocode.NewUnsupportedInstruction(element, message))
}

var _ Builder = (*InstructionsGenerator)(nil)
