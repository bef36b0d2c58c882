package pseudocode

import "github.com/micromingle/kotlin/internal/ast"

// Instruction constructors. The generator builds instructions through
// these and appends them with Pseudocode.Add.

func NewMarkInstruction(el ast.Node) *MarkInstruction {
	return &MarkInstruction{baseInstruction{el}}
}

func NewConstantInstruction(el ast.Node, value *PseudoValue) *ConstantInstruction {
	return &ConstantInstruction{valueInstruction{baseInstruction{el}, value}}
}

func NewLoadUnitInstruction(el ast.Node, value *PseudoValue) *LoadUnitInstruction {
	return &LoadUnitInstruction{valueInstruction{baseInstruction{el}, value}}
}

func NewStringTemplateInstruction(el ast.Node, inputs []*PseudoValue, value *PseudoValue) *StringTemplateInstruction {
	return &StringTemplateInstruction{valueInstruction{baseInstruction{el}, value}, inputs}
}

func NewMagicInstruction(el ast.Node, inputs []*PseudoValue, kind MagicKind, value *PseudoValue) *MagicInstruction {
	return &MagicInstruction{valueInstruction{baseInstruction{el}, value}, inputs, kind}
}

func NewMergeInstruction(el ast.Node, inputs []*PseudoValue, value *PseudoValue) *MergeInstruction {
	return &MergeInstruction{valueInstruction{baseInstruction{el}, value}, inputs}
}

func NewReadVariableInstruction(el ast.Node, name string, receivers []*PseudoValue, value *PseudoValue) *ReadVariableInstruction {
	return &ReadVariableInstruction{valueInstruction{baseInstruction{el}, value}, name, receivers}
}

func NewCallInstruction(el ast.Node, functionName string, receivers, arguments []*PseudoValue, value *PseudoValue) *CallInstruction {
	return &CallInstruction{valueInstruction{baseInstruction{el}, value}, functionName, receivers, arguments}
}

func NewPredefinedOperationInstruction(el ast.Node, op PredefinedOperation, inputs []*PseudoValue, value *PseudoValue) *PredefinedOperationInstruction {
	return &PredefinedOperationInstruction{valueInstruction{baseInstruction{el}, value}, op, inputs}
}

func NewWriteVariableInstruction(el ast.Node, lvalue ast.Expr, target AccessTarget, receivers []*PseudoValue, rvalue *PseudoValue) *WriteVariableInstruction {
	return &WriteVariableInstruction{baseInstruction{el}, lvalue, target, receivers, rvalue}
}

func NewDeclareInstruction(el ast.Node, isParameter bool) *DeclareInstruction {
	return &DeclareInstruction{baseInstruction{el}, isParameter}
}

func NewLocalDeclarationInstruction(el ast.Node, body *Pseudocode) *LocalDeclarationInstruction {
	return &LocalDeclarationInstruction{baseInstruction{el}, body}
}

func NewUnconditionalJumpInstruction(el ast.Node, target *Label, onError bool) *UnconditionalJumpInstruction {
	return &UnconditionalJumpInstruction{baseInstruction{el}, target, onError}
}

func NewConditionalJumpInstruction(el ast.Node, onTrue bool, condition *PseudoValue, target *Label) *ConditionalJumpInstruction {
	return &ConditionalJumpInstruction{baseInstruction{el}, onTrue, condition, target}
}

func NewNondeterministicJumpInstruction(el ast.Node, targets []*Label, input *PseudoValue) *NondeterministicJumpInstruction {
	return &NondeterministicJumpInstruction{baseInstruction{el}, targets, input}
}

func NewReturnValueInstruction(el ast.Node, result *PseudoValue, subroutine ast.Node) *ReturnValueInstruction {
	return &ReturnValueInstruction{baseInstruction{el}, result, subroutine}
}

func NewReturnNoValueInstruction(el ast.Node, subroutine ast.Node) *ReturnNoValueInstruction {
	return &ReturnNoValueInstruction{baseInstruction{el}, subroutine}
}

func NewThrowInstruction(el ast.Node, thrown *PseudoValue) *ThrowInstruction {
	return &ThrowInstruction{baseInstruction{el}, thrown}
}

func NewSubroutineEnterInstruction(el ast.Node) *SubroutineEnterInstruction {
	return &SubroutineEnterInstruction{baseInstruction{el}}
}

func NewSubroutineExitInstruction(el ast.Node, isError bool) *SubroutineExitInstruction {
	return &SubroutineExitInstruction{baseInstruction{el}, isError}
}

func NewSubroutineSinkInstruction(el ast.Node) *SubroutineSinkInstruction {
	return &SubroutineSinkInstruction{baseInstruction{el}}
}

func NewCompilationErrorInstruction(el ast.Node, message string) *CompilationErrorInstruction {
	return &CompilationErrorInstruction{baseInstruction{el}, message}
}

func NewUnsupportedInstruction(el ast.Node, message string) *UnsupportedInstruction {
	return &UnsupportedInstruction{baseInstruction{el}, message}
}

func NewRepeatInstruction(el ast.Node, start, finish *Label) *RepeatInstruction {
	return &RepeatInstruction{baseInstruction{el}, start, finish}
}
