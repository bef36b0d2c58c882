package cfg

import (
	"github.com/micromingle/kotlin/internal/ast"
	"github.com/micromingle/kotlin/internal/cfg/pseudocode"
	"github.com/micromingle/kotlin/internal/resolve"
)

// LoopInfo carries the jump targets of one loop under construction.
// EntryPoint is where continue lands, ExitPoint where break lands.
type LoopInfo struct {
	Element             ast.Expr
	EntryPoint          *pseudocode.Label
	ExitPoint           *pseudocode.Label
	ConditionEntryPoint *pseudocode.Label
	BodyEntryPoint      *pseudocode.Label
}

// GenerationTrigger is deferred instruction generation, registered by
// try-finally and fired before every return that leaves the block.
type GenerationTrigger func()

// Builder is the command protocol the lowering drives. The production
// implementation is InstructionsGenerator; tests may substitute their
// own to observe the command stream.
type Builder interface {
	// Subroutine management. ExitSubroutine post-processes and returns
	// the finished pseudocode.
	EnterSubroutine(subroutine ast.Node)
	ExitSubroutine(subroutine ast.Node) *pseudocode.Pseudocode
	CurrentSubroutine() ast.Node
	ReturnSubroutine() ast.Node

	// Value bookkeeping. Bound values associate an expression with the
	// pseudo-value holding its result.
	BoundValue(element ast.Node) *pseudocode.PseudoValue
	BindValue(value *pseudocode.PseudoValue, element ast.Node)

	// Labels.
	CreateUnboundLabel(name string) *pseudocode.Label
	BindLabel(label *pseudocode.Label)

	// Jumps.
	Jump(target *pseudocode.Label, element ast.Node)
	JumpOnFalse(target *pseudocode.Label, element ast.Node, condition *pseudocode.PseudoValue)
	JumpOnTrue(target *pseudocode.Label, element ast.Node, condition *pseudocode.PseudoValue)
	NondeterministicJump(targets []*pseudocode.Label, element ast.Node, input *pseudocode.PseudoValue)
	JumpToError(element ast.Node)

	// Instructions producing values. valueElement nil makes the produced
	// value synthetic; otherwise the value is bound to valueElement.
	Mark(element ast.Node)
	LoadConstant(element ast.Node) pseudocode.InstructionWithValue
	LoadUnit(element ast.Node) pseudocode.InstructionWithValue
	LoadStringTemplate(element ast.Node, inputs []*pseudocode.PseudoValue) pseudocode.InstructionWithValue
	Magic(instructionElement, valueElement ast.Node, inputs []*pseudocode.PseudoValue, kind pseudocode.MagicKind) pseudocode.InstructionWithValue
	Merge(element ast.Node, values []*pseudocode.PseudoValue) pseudocode.InstructionWithValue
	ReadVariable(element ast.Node, call *resolve.ResolvedCall, receivers []*pseudocode.PseudoValue) pseudocode.InstructionWithValue
	Call(element, valueElement ast.Node, call *resolve.ResolvedCall, receivers, arguments []*pseudocode.PseudoValue) pseudocode.InstructionWithValue
	PredefinedOperation(element ast.Node, op pseudocode.PredefinedOperation, inputs []*pseudocode.PseudoValue) pseudocode.InstructionWithValue

	// Writes and declarations.
	Write(assignment ast.Node, lvalue ast.Expr, rvalue *pseudocode.PseudoValue, target pseudocode.AccessTarget, receivers []*pseudocode.PseudoValue)
	DeclareParameter(parameter ast.Node)
	DeclareVariable(declaration ast.Node)
	DeclareLocalFunction(element ast.Node, body *pseudocode.Pseudocode)
	CreateFunctionLiteral(expression ast.Node, body *pseudocode.Pseudocode) pseudocode.InstructionWithValue
	CreateAnonymousObject(expression ast.Node, body *pseudocode.Pseudocode) pseudocode.InstructionWithValue

	// Lexical scopes. Do-while bodies share the loop's scope; everything
	// else opens its own.
	EnterLexicalScope(element ast.Node)
	ExitLexicalScope(element ast.Node)

	// Loops. Pre-created labels may be handed in; nil labels are created
	// fresh. EnterLoop binds the condition label; ExitLoop binds the exit.
	EnterLoop(loop ast.Expr, exitPoint, conditionEntryPoint *pseudocode.Label) *LoopInfo
	ExitLoop(loop ast.Expr)
	CurrentLoop() *LoopInfo
	LoopInfoFor(loop ast.Expr) *LoopInfo

	// Returns and exceptions. Returns fire registered try-finally
	// triggers, innermost first, before emitting the instruction.
	ReturnValue(element ast.Node, value *pseudocode.PseudoValue, subroutine ast.Node)
	ReturnNoValue(element ast.Node, subroutine ast.Node)
	ThrowException(element ast.Node, thrown *pseudocode.PseudoValue)

	// Try-finally bookkeeping.
	PushTryFinally(trigger GenerationTrigger)
	PopTryFinally()
	RepeatPseudocode(start, finish *pseudocode.Label)

	// Defect reporting instructions.
	CompilationError(element ast.Node, message string)
	Unsupported(element ast.Node, message string)

	// Error-path entry of the current subroutine, used by finally
	// lowering to route the exceptional exit.
	ErrorLabel() *pseudocode.Label
}
