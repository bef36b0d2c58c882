package resolve

import "github.com/micromingle/kotlin/internal/ast"

// Descriptor is the resolved identity of a declared entity.
type Descriptor interface {
	DescriptorName() string
}

// VariableDescriptor describes a property, parameter or loop variable.
type VariableDescriptor struct {
	Name        string
	Writable    bool
	Declaration ast.Node
}

func (d *VariableDescriptor) DescriptorName() string { return d.Name }

// FunctionDescriptor describes a callable: a named function, an operator
// function or a synthesized member like 'get'/'set'/'componentN'.
type FunctionDescriptor struct {
	Name        string
	Parameters  []*ParameterDescriptor
	Declaration ast.Node

	// Variadic descriptors accept any call-site argument shape. Used for
	// predefined functions whose signatures are not modelled exactly.
	Variadic bool
	// ReturnsNothing marks functions whose calls never complete normally.
	ReturnsNothing bool
}

func (d *FunctionDescriptor) DescriptorName() string { return d.Name }

// ParameterDescriptor describes one declared value parameter.
type ParameterDescriptor struct {
	Name       string
	Index      int
	HasDefault bool
}

// ReceiverKind discriminates the receiver values a resolved call carries.
type ReceiverKind int

const (
	NoReceiver ReceiverKind = iota
	ThisReceiver
	ExpressionReceiver
	TransientReceiver
)

// ReceiverValue is one receiver of a resolved call. Expr is set for
// expression receivers only.
type ReceiverValue struct {
	Kind ReceiverKind
	Expr ast.Expr
}

// ResolvedArgument pairs a parameter with the argument expressions mapped
// to it. Varargs map several expressions to one parameter.
type ResolvedArgument struct {
	Parameter   *ParameterDescriptor
	Expressions []ast.Expr
}

// ResolvedCall is the resolution result for a call-like expression.
// Arguments are ordered by parameter declaration, not by call-site order.
type ResolvedCall struct {
	Descriptor       Descriptor
	ThisObject       ReceiverValue
	ReceiverArgument ReceiverValue
	Arguments        []*ResolvedArgument
}

// VariableTarget returns the variable descriptor of the call target, or
// nil when the target is not a variable.
func (rc *ResolvedCall) VariableTarget() *VariableDescriptor {
	v, _ := rc.Descriptor.(*VariableDescriptor)
	return v
}

// IsSubroutine reports whether the node opens its own control-flow
// subroutine.
func IsSubroutine(n ast.Node) bool {
	switch n.(type) {
	case *ast.Function, *ast.FunctionLiteral, *ast.PropertyAccessor, *ast.ClassInitializer:
		return true
	}
	return false
}

// CanCarryReturn reports whether a return instruction may target the
// subroutine. Class initializers cannot return.
func CanCarryReturn(n ast.Node) bool {
	switch n.(type) {
	case *ast.Function, *ast.FunctionLiteral, *ast.PropertyAccessor:
		return true
	}
	return false
}
