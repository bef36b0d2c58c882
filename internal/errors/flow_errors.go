package errors

import (
	"fmt"

	"github.com/micromingle/kotlin/internal/ast"
)

// FlowErrorBuilder provides a fluent interface for assembling diagnostics.
type FlowErrorBuilder struct {
	err CompilerError
}

// NewFlowError starts an error-level diagnostic.
func NewFlowError(code, message string, pos ast.Position) *FlowErrorBuilder {
	return &FlowErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewFlowWarning starts a warning-level diagnostic.
func NewFlowWarning(code, message string, pos ast.Position) *FlowErrorBuilder {
	b := NewFlowError(code, message, pos)
	b.err.Level = Warning
	return b
}

// WithLength sets the span of the diagnostic.
func (b *FlowErrorBuilder) WithLength(length int) *FlowErrorBuilder {
	b.err.Length = length
	return b
}

// WithNote attaches a context note.
func (b *FlowErrorBuilder) WithNote(note string) *FlowErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp attaches actionable advice.
func (b *FlowErrorBuilder) WithHelp(help string) *FlowErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed diagnostic.
func (b *FlowErrorBuilder) Build() CompilerError {
	return b.err
}

// UnresolvedReference reports a name with no resolved declaration.
func UnresolvedReference(name string, pos ast.Position) CompilerError {
	return NewFlowError(ErrorUnresolvedReference,
		fmt.Sprintf("unresolved reference '%s'", name), pos).
		WithLength(len(name)).
		Build()
}

// UnresolvedCall reports a call expression with no resolved call.
func UnresolvedCall(expr string, pos ast.Position) CompilerError {
	return NewFlowError(ErrorUnresolvedCall,
		fmt.Sprintf("no resolved call for '%s'", expr), pos).
		Build()
}

// NotALoopLabel reports a labeled break/continue whose label is not a loop.
func NotALoopLabel(keyword, label string, pos ast.Position) CompilerError {
	return NewFlowError(ErrorNotALoopLabel,
		fmt.Sprintf("label '@%s' on '%s' does not name a loop", label, keyword), pos).
		WithLength(len(keyword)).
		WithHelp("label a while, do-while or for expression and target that label").
		Build()
}

// BreakOrContinueOutsideLoop reports an unlabeled break/continue with no
// enclosing loop.
func BreakOrContinueOutsideLoop(keyword string, pos ast.Position) CompilerError {
	return NewFlowError(ErrorBreakContinueOutsideLoop,
		fmt.Sprintf("'%s' is only allowed inside a loop", keyword), pos).
		WithLength(len(keyword)).
		Build()
}

// JumpCrossesFunctionBoundary reports a break, continue or labeled
// return whose target lives in an enclosing function.
func JumpCrossesFunctionBoundary(keyword string, pos ast.Position) CompilerError {
	return NewFlowError(ErrorJumpCrossesFunctionBoundary,
		fmt.Sprintf("'%s' cannot jump across a function boundary", keyword), pos).
		WithLength(len(keyword)).
		WithNote("the jump target belongs to an enclosing function").
		Build()
}

// NotAReturnLabel reports a labeled return whose label does not name an
// enclosing function.
func NotAReturnLabel(label string, pos ast.Position) CompilerError {
	return NewFlowError(ErrorNotAReturnLabel,
		fmt.Sprintf("label '@%s' does not name an enclosing function", label), pos).
		Build()
}

// ReturnNotAllowed reports a return whose target cannot carry one.
func ReturnNotAllowed(pos ast.Position) CompilerError {
	return NewFlowError(ErrorReturnNotAllowed, "return is not allowed here", pos).
		Build()
}

// UnsupportedAssignmentTarget reports a left-hand side that cannot be
// written to.
func UnsupportedAssignmentTarget(expr string, pos ast.Position) CompilerError {
	return NewFlowError(ErrorUnsupportedAssignmentTarget,
		fmt.Sprintf("'%s' cannot be assigned to", expr), pos).
		WithHelp("the assignment target must be a variable, a member or an indexed access").
		Build()
}

// ElseMisplacedInWhen reports an else entry that is not last.
func ElseMisplacedInWhen(pos ast.Position) CompilerError {
	return NewFlowError(ErrorElseMisplacedInWhen,
		"'else' entry must be the last one in a when expression", pos).
		Build()
}

// NoElseInWhen reports a non-exhaustive when that requires an else entry.
func NoElseInWhen(pos ast.Position) CompilerError {
	return NewFlowError(ErrorNoElseInWhen,
		"when expression must contain an 'else' entry", pos).
		Build()
}

// UnsupportedConstruct reports a construct the lowering cannot express.
func UnsupportedConstruct(what string, pos ast.Position) CompilerError {
	return NewFlowError(ErrorUnsupportedConstruct,
		fmt.Sprintf("unsupported construct: %s", what), pos).
		Build()
}

// UnreachableCode reports code that can never execute.
func UnreachableCode(pos ast.Position) CompilerError {
	return NewFlowWarning(WarningUnreachableCode, "unreachable code", pos).
		Build()
}
