package pseudocode

import (
	"fmt"

	"github.com/micromingle/kotlin/internal/ast"
	"github.com/micromingle/kotlin/internal/resolve"
)

// PseudoValue is a placeholder for the runtime value an instruction
// produces. Values have exactly one producing instruction; they carry no
// type information.
type PseudoValue struct {
	id        int
	element   ast.Node // expression the value stands for, nil for synthetic values
	createdAt Instruction
}

func (v *PseudoValue) Element() ast.Node      { return v.element }
func (v *PseudoValue) CreatedAt() Instruction { return v.createdAt }

func (v *PseudoValue) String() string {
	if v == nil {
		return "<nothing>"
	}
	return fmt.Sprintf("<v%d>", v.id)
}

// Label marks a jump target. A label is created unbound and must be bound
// to a position exactly once before post-processing.
type Label struct {
	name   string
	id     int
	target int // raw instruction index, -1 while unbound
	pcode  *Pseudocode
}

func (l *Label) Name() string { return l.name }

// TargetIndex returns the instruction index the label resolves to.
// Meaningful only after post-processing.
func (l *Label) TargetIndex() int { return l.target }

func (l *Label) bound() bool { return l.target >= 0 }

func (l *Label) String() string {
	return fmt.Sprintf("L%d [%s]", l.id, l.name)
}

// AccessTargetKind classifies how a write reaches its destination.
type AccessTargetKind int

const (
	// BlackBoxTarget is a write whose destination could not be classified.
	BlackBoxTarget AccessTargetKind = iota
	// CallAccessTarget writes through a resolved call (member or variable).
	CallAccessTarget
	// DeclarationAccessTarget initializes a freshly declared variable.
	DeclarationAccessTarget
)

// AccessTarget identifies the destination of a variable write.
type AccessTarget struct {
	Kind       AccessTargetKind
	Call       *resolve.ResolvedCall // for CallAccessTarget
	Descriptor resolve.Descriptor    // for DeclarationAccessTarget
}

// BlackBox is the access target for unclassifiable writes.
var BlackBox = AccessTarget{Kind: BlackBoxTarget}

// MagicKind says why a magic instruction had to synthesize a value.
type MagicKind int

const (
	// GeneralMagic covers values composed from subexpression values.
	GeneralMagic MagicKind = iota
	// UnresolvedCallMagic stands for the result of a call with no resolution.
	UnresolvedCallMagic
	// LoopRangeIterationMagic stands for the element produced by one loop step.
	LoopRangeIterationMagic
	// WhenConditionMagic stands for the outcome of a when-entry guard.
	WhenConditionMagic
	// IsTestMagic stands for the outcome of an is/!is test.
	IsTestMagic
	// FunctionLiteralMagic stands for the closure value of a function literal.
	FunctionLiteralMagic
	// AnonymousObjectMagic stands for the instance of an object literal.
	AnonymousObjectMagic
)

func (k MagicKind) String() string {
	switch k {
	case UnresolvedCallMagic:
		return "UNRESOLVED_CALL"
	case LoopRangeIterationMagic:
		return "LOOP_RANGE_ITERATION"
	case WhenConditionMagic:
		return "WHEN_CONDITION"
	case IsTestMagic:
		return "IS_TEST"
	case FunctionLiteralMagic:
		return "FUNCTION_LITERAL"
	case AnonymousObjectMagic:
		return "ANONYMOUS_OBJECT"
	default:
		return "GENERAL"
	}
}

// PredefinedOperation is a builtin the lowering models directly instead of
// through a resolved call.
type PredefinedOperation int

const (
	AndOperation PredefinedOperation = iota
	OrOperation
	NotNullAssertionOperation
)

func (op PredefinedOperation) String() string {
	switch op {
	case AndOperation:
		return "AND"
	case OrOperation:
		return "OR"
	default:
		return "NOT_NULL_ASSERTION"
	}
}
