package ast

// Deparenthesize strips parentheses and labels from an expression. Many
// lowering rules care about the underlying operation, not its wrapping.
func Deparenthesize(e Expr) Expr {
	for {
		switch w := e.(type) {
		case *Paren:
			if w.Inner == nil {
				return w
			}
			e = w.Inner
		case *Labeled:
			if w.Base == nil {
				return w
			}
			e = w.Base
		default:
			return e
		}
	}
}

// SelectorOf returns the selector of a qualified expression, or the
// expression itself when it is not qualified.
func SelectorOf(e Expr) Expr {
	if q, ok := e.(*Qualified); ok {
		return q.Selector
	}
	return e
}

// CalleeName returns the simple name a call's callee refers to, if any.
func CalleeName(c *Call) *Name {
	if n, ok := Deparenthesize(c.Callee).(*Name); ok {
		return n
	}
	return nil
}

// IsAssignmentOp reports whether op is the plain assignment operator.
func IsAssignmentOp(op string) bool { return op == "=" }

// IsAugmentedAssignmentOp reports whether op combines an operation with
// an assignment.
func IsAugmentedAssignmentOp(op string) bool {
	switch op {
	case "+=", "-=", "*=", "/=", "%=":
		return true
	}
	return false
}

// IsIncrementOrDecrement reports whether op is ++ or --.
func IsIncrementOrDecrement(op string) bool { return op == "++" || op == "--" }

// OperatorFunctionName maps an operator token to the conventional function
// name it resolves to. Augmented assignment maps to the non-assign form;
// the resolver decides separately whether the in-place form applies.
func OperatorFunctionName(op string) string {
	switch op {
	case "+", "+=":
		return "plus"
	case "-", "-=":
		return "minus"
	case "*", "*=":
		return "times"
	case "/", "/=":
		return "div"
	case "%", "%=":
		return "rem"
	case "++":
		return "inc"
	case "--":
		return "dec"
	case "..":
		return "rangeTo"
	case "in", "!in":
		return "contains"
	case "==", "!=":
		return "equals"
	case "<", ">", "<=", ">=":
		return "compareTo"
	}
	return ""
}

// InPlaceOperatorFunctionName maps an augmented-assignment token to its
// in-place function name.
func InPlaceOperatorFunctionName(op string) string {
	switch op {
	case "+=":
		return "plusAssign"
	case "-=":
		return "minusAssign"
	case "*=":
		return "timesAssign"
	case "/=":
		return "divAssign"
	case "%=":
		return "remAssign"
	}
	return ""
}
