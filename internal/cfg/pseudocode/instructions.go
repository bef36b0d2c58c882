package pseudocode

import (
	"fmt"
	"strings"

	"github.com/micromingle/kotlin/internal/ast"
)

// Instruction is one step of a lowered subroutine body.
type Instruction interface {
	GetElement() ast.Node
	GetInputs() []*PseudoValue
	String() string
}

// InstructionWithValue is an instruction producing a pseudo-value.
type InstructionWithValue interface {
	Instruction
	GetValue() *PseudoValue
}

// JumpingInstruction is an instruction transferring control to labels.
type JumpingInstruction interface {
	Instruction
	JumpTargets() []*Label
}

// DeclarationInstruction marks instructions excluded from finally replay.
type DeclarationInstruction interface {
	Instruction
	declarationMarker()
}

type baseInstruction struct {
	element ast.Node
}

func (b *baseInstruction) GetElement() ast.Node       { return b.element }
func (b *baseInstruction) GetInputs() []*PseudoValue  { return nil }

type valueInstruction struct {
	baseInstruction
	value *PseudoValue
}

func (v *valueInstruction) GetValue() *PseudoValue { return v.value }

// MarkInstruction records that evaluation of an element began.
type MarkInstruction struct {
	baseInstruction
}

func (i *MarkInstruction) String() string {
	return fmt.Sprintf("mark(%s)", nodeString(i.element))
}

// ConstantInstruction reads a compile-time constant.
type ConstantInstruction struct {
	valueInstruction
}

func (i *ConstantInstruction) String() string {
	return fmt.Sprintf("r(%s) -> %s", nodeString(i.element), i.value)
}

// LoadUnitInstruction produces the unit value for statement-like
// expressions.
type LoadUnitInstruction struct {
	valueInstruction
}

func (i *LoadUnitInstruction) String() string {
	return fmt.Sprintf("r(Unit) -> %s", i.value)
}

// StringTemplateInstruction assembles a string from its entry values.
type StringTemplateInstruction struct {
	valueInstruction
	inputs []*PseudoValue
}

func (i *StringTemplateInstruction) GetInputs() []*PseudoValue { return i.inputs }

func (i *StringTemplateInstruction) String() string {
	return fmt.Sprintf("template(%s) -> %s", valueList(i.inputs), i.value)
}

// MagicInstruction produces a value whose computation the lowering cannot
// or does not model.
type MagicInstruction struct {
	valueInstruction
	inputs []*PseudoValue
	kind   MagicKind
}

func (i *MagicInstruction) GetInputs() []*PseudoValue { return i.inputs }
func (i *MagicInstruction) Kind() MagicKind           { return i.kind }

func (i *MagicInstruction) String() string {
	return fmt.Sprintf("magic[%s](%s) -> %s", i.kind, valueList(i.inputs), i.value)
}

// MergeInstruction joins the values of alternative branches.
type MergeInstruction struct {
	valueInstruction
	inputs []*PseudoValue
}

func (i *MergeInstruction) GetInputs() []*PseudoValue { return i.inputs }

func (i *MergeInstruction) String() string {
	return fmt.Sprintf("merge(%s) -> %s", valueList(i.inputs), i.value)
}

// ReadVariableInstruction reads a resolved variable.
type ReadVariableInstruction struct {
	valueInstruction
	name      string
	receivers []*PseudoValue
}

func (i *ReadVariableInstruction) GetInputs() []*PseudoValue { return i.receivers }
func (i *ReadVariableInstruction) VariableName() string      { return i.name }

func (i *ReadVariableInstruction) String() string {
	if len(i.receivers) > 0 {
		return fmt.Sprintf("r(%s|%s) -> %s", i.name, valueList(i.receivers), i.value)
	}
	return fmt.Sprintf("r(%s) -> %s", i.name, i.value)
}

// CallInstruction invokes a resolved callable. Value is nil when the call
// result is discarded by the lowering.
type CallInstruction struct {
	valueInstruction
	functionName string
	receivers    []*PseudoValue
	arguments    []*PseudoValue
}

func (i *CallInstruction) FunctionName() string        { return i.functionName }
func (i *CallInstruction) Receivers() []*PseudoValue   { return i.receivers }
func (i *CallInstruction) Arguments() []*PseudoValue   { return i.arguments }

func (i *CallInstruction) GetInputs() []*PseudoValue {
	inputs := make([]*PseudoValue, 0, len(i.receivers)+len(i.arguments))
	inputs = append(inputs, i.receivers...)
	inputs = append(inputs, i.arguments...)
	return inputs
}

func (i *CallInstruction) String() string {
	s := fmt.Sprintf("call %s(%s)", i.functionName, valueList(i.GetInputs()))
	if i.value != nil {
		s += " -> " + i.value.String()
	}
	return s
}

// PredefinedOperationInstruction models a builtin operation directly.
type PredefinedOperationInstruction struct {
	valueInstruction
	op     PredefinedOperation
	inputs []*PseudoValue
}

func (i *PredefinedOperationInstruction) GetInputs() []*PseudoValue     { return i.inputs }
func (i *PredefinedOperationInstruction) Operation() PredefinedOperation { return i.op }

func (i *PredefinedOperationInstruction) String() string {
	return fmt.Sprintf("%s(%s) -> %s", i.op, valueList(i.inputs), i.value)
}

// WriteVariableInstruction writes a value through an access target.
type WriteVariableInstruction struct {
	baseInstruction
	lvalue    ast.Expr
	target    AccessTarget
	receivers []*PseudoValue
	rvalue    *PseudoValue
}

func (i *WriteVariableInstruction) Target() AccessTarget  { return i.target }
func (i *WriteVariableInstruction) LValue() ast.Expr      { return i.lvalue }
func (i *WriteVariableInstruction) RValue() *PseudoValue  { return i.rvalue }

func (i *WriteVariableInstruction) GetInputs() []*PseudoValue {
	inputs := make([]*PseudoValue, 0, len(i.receivers)+1)
	inputs = append(inputs, i.receivers...)
	if i.rvalue != nil {
		inputs = append(inputs, i.rvalue)
	}
	return inputs
}

func (i *WriteVariableInstruction) String() string {
	return fmt.Sprintf("w(%s <- %s)", nodeString(i.lvalue), i.rvalue)
}

// DeclareInstruction introduces a variable or parameter.
type DeclareInstruction struct {
	baseInstruction
	isParameter bool
}

func (i *DeclareInstruction) IsParameter() bool  { return i.isParameter }
func (*DeclareInstruction) declarationMarker() {}

func (i *DeclareInstruction) String() string {
	if i.isParameter {
		return fmt.Sprintf("p(%s)", nodeString(i.element))
	}
	return fmt.Sprintf("v(%s)", nodeString(i.element))
}

// LocalDeclarationInstruction holds the independently lowered body of a
// local function, lambda or anonymous object.
type LocalDeclarationInstruction struct {
	baseInstruction
	body *Pseudocode
}

func (i *LocalDeclarationInstruction) Body() *Pseudocode { return i.body }
func (*LocalDeclarationInstruction) declarationMarker()  {}

func (i *LocalDeclarationInstruction) String() string {
	return fmt.Sprintf("d(%s)", nodeString(i.element))
}

// UnconditionalJumpInstruction transfers control to one label.
type UnconditionalJumpInstruction struct {
	baseInstruction
	target *Label
	onError bool
}

func (i *UnconditionalJumpInstruction) JumpTargets() []*Label { return []*Label{i.target} }
func (i *UnconditionalJumpInstruction) Target() *Label        { return i.target }
func (i *UnconditionalJumpInstruction) OnError() bool         { return i.onError }

func (i *UnconditionalJumpInstruction) String() string {
	if i.onError {
		return fmt.Sprintf("jmpe(%s)", i.target)
	}
	return fmt.Sprintf("jmp(%s)", i.target)
}

// ConditionalJumpInstruction branches on a condition value.
type ConditionalJumpInstruction struct {
	baseInstruction
	onTrue    bool
	condition *PseudoValue
	target    *Label
}

func (i *ConditionalJumpInstruction) JumpTargets() []*Label { return []*Label{i.target} }
func (i *ConditionalJumpInstruction) Target() *Label        { return i.target }
func (i *ConditionalJumpInstruction) OnTrue() bool          { return i.onTrue }

func (i *ConditionalJumpInstruction) GetInputs() []*PseudoValue {
	if i.condition == nil {
		return nil
	}
	return []*PseudoValue{i.condition}
}

func (i *ConditionalJumpInstruction) String() string {
	op := "jmpf"
	if i.onTrue {
		op = "jmpt"
	}
	return fmt.Sprintf("%s(%s, %s)", op, i.condition, i.target)
}

// NondeterministicJumpInstruction may transfer control to any of its
// targets or fall through.
type NondeterministicJumpInstruction struct {
	baseInstruction
	targets []*Label
	input   *PseudoValue
}

func (i *NondeterministicJumpInstruction) JumpTargets() []*Label { return i.targets }

func (i *NondeterministicJumpInstruction) GetInputs() []*PseudoValue {
	if i.input == nil {
		return nil
	}
	return []*PseudoValue{i.input}
}

func (i *NondeterministicJumpInstruction) String() string {
	names := make([]string, len(i.targets))
	for n, t := range i.targets {
		names[n] = t.String()
	}
	return fmt.Sprintf("jmp?(%s)", strings.Join(names, ", "))
}

// ReturnValueInstruction returns a value from a subroutine, possibly an
// outer one for labeled returns.
type ReturnValueInstruction struct {
	baseInstruction
	result     *PseudoValue
	subroutine ast.Node
}

func (i *ReturnValueInstruction) Subroutine() ast.Node { return i.subroutine }

func (i *ReturnValueInstruction) GetInputs() []*PseudoValue {
	return []*PseudoValue{i.result}
}

func (i *ReturnValueInstruction) String() string {
	return fmt.Sprintf("ret(%s) %s", i.result, nodeString(i.subroutine))
}

// ReturnNoValueInstruction returns without a value.
type ReturnNoValueInstruction struct {
	baseInstruction
	subroutine ast.Node
}

func (i *ReturnNoValueInstruction) Subroutine() ast.Node { return i.subroutine }

func (i *ReturnNoValueInstruction) String() string {
	return fmt.Sprintf("ret %s", nodeString(i.subroutine))
}

// ThrowInstruction raises an exception value.
type ThrowInstruction struct {
	baseInstruction
	thrown *PseudoValue
}

func (i *ThrowInstruction) GetInputs() []*PseudoValue {
	return []*PseudoValue{i.thrown}
}

func (i *ThrowInstruction) String() string {
	return fmt.Sprintf("throw(%s)", i.thrown)
}

// SubroutineEnterInstruction opens a subroutine body.
type SubroutineEnterInstruction struct {
	baseInstruction
}

func (i *SubroutineEnterInstruction) String() string {
	return fmt.Sprintf("<START: %s>", nodeString(i.element))
}

// SubroutineExitInstruction closes a subroutine body, on the normal or
// the error path.
type SubroutineExitInstruction struct {
	baseInstruction
	isError bool
}

func (i *SubroutineExitInstruction) IsError() bool { return i.isError }

func (i *SubroutineExitInstruction) String() string {
	if i.isError {
		return "<ERROR>"
	}
	return "<END>"
}

// SubroutineSinkInstruction is the common final instruction both exit
// paths lead to.
type SubroutineSinkInstruction struct {
	baseInstruction
}

func (i *SubroutineSinkInstruction) String() string { return "<SINK>" }

// CompilationErrorInstruction records that lowering hit a structurally
// broken construct.
type CompilationErrorInstruction struct {
	baseInstruction
	message string
}

func (i *CompilationErrorInstruction) Message() string { return i.message }

func (i *CompilationErrorInstruction) String() string {
	return fmt.Sprintf("error(%q)", i.message)
}

// UnsupportedInstruction records a construct the lowering cannot express.
type UnsupportedInstruction struct {
	baseInstruction
	message string
}

func (i *UnsupportedInstruction) Message() string { return i.message }

func (i *UnsupportedInstruction) String() string {
	return fmt.Sprintf("unsupported(%q)", i.message)
}

// RepeatInstruction is a transient marker asking post-processing to copy
// the instruction range between two labels in its place.
type RepeatInstruction struct {
	baseInstruction
	start  *Label
	finish *Label
}

func (i *RepeatInstruction) String() string {
	return fmt.Sprintf("repeat(%s..%s)", i.start, i.finish)
}

func nodeString(n ast.Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.String()
}

func valueList(values []*PseudoValue) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
