package errors

// Error codes for the toolchain. Codes are stable identifiers: they appear
// in diagnostics, tests, and documentation.
//
// Error code ranges:
// E0001-E0099: Resolution errors
// E0100-E0199: Parser errors
// E0600-E0699: Control-flow errors
// W0001-W0099: Warnings

const (
	// Resolution errors (E0001-E0099)

	// E0001: Name does not resolve to any declaration
	ErrorUnresolvedReference = "E0001"

	// E0002: Call expression has no resolved call
	ErrorUnresolvedCall = "E0002"

	// Parser errors (E0100-E0199)

	// E0100: Generic syntax error
	ErrorSyntax = "E0100"

	// Control-flow errors (E0600-E0699)

	// E0600: break/continue label does not name a loop
	ErrorNotALoopLabel = "E0600"

	// E0601: break/continue used outside any loop
	ErrorBreakContinueOutsideLoop = "E0601"

	// E0602: break/continue targets a loop in an enclosing function
	ErrorJumpCrossesFunctionBoundary = "E0602"

	// E0603: return label does not name an enclosing function
	ErrorNotAReturnLabel = "E0603"

	// E0604: return target cannot carry a return
	ErrorReturnNotAllowed = "E0604"

	// E0605: assignment target cannot be written to
	ErrorUnsupportedAssignmentTarget = "E0605"

	// E0606: else entry is not the last entry of a when
	ErrorElseMisplacedInWhen = "E0606"

	// E0607: exhaustiveness-checked when has no else entry
	ErrorNoElseInWhen = "E0607"

	// E0608: construct not supported by control-flow lowering
	ErrorUnsupportedConstruct = "E0608"

	// Warning codes

	// W0001: Unreachable code warning
	WarningUnreachableCode = "W0001"
)

// Describe returns a human-readable description of the error code.
func Describe(code string) string {
	switch code {
	case ErrorUnresolvedReference:
		return "Name is used but does not resolve to any declaration"
	case ErrorUnresolvedCall:
		return "Call expression has no resolved call"
	case ErrorSyntax:
		return "Source text could not be parsed"
	case ErrorNotALoopLabel:
		return "Label on break or continue does not name a loop"
	case ErrorBreakContinueOutsideLoop:
		return "break and continue are only allowed inside a loop"
	case ErrorJumpCrossesFunctionBoundary:
		return "break and continue cannot leave the enclosing function"
	case ErrorNotAReturnLabel:
		return "Label on return does not name an enclosing function"
	case ErrorReturnNotAllowed:
		return "Return target cannot carry a return"
	case ErrorUnsupportedAssignmentTarget:
		return "Left-hand side of the assignment cannot be written to"
	case ErrorElseMisplacedInWhen:
		return "else entry must be the last entry of a when expression"
	case ErrorNoElseInWhen:
		return "when expression must be exhaustive"
	case ErrorUnsupportedConstruct:
		return "Construct is not supported by control-flow lowering"
	case WarningUnreachableCode:
		return "Code is unreachable"
	default:
		return "Unknown error code"
	}
}

// IsWarning reports whether the code represents a warning.
func IsWarning(code string) bool {
	return len(code) > 0 && code[0] == 'W'
}

// Category returns the category of the code based on its range.
func Category(code string) string {
	switch {
	case IsWarning(code):
		return "Warning"
	case code >= "E0001" && code < "E0100":
		return "Resolution"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0600" && code < "E0700":
		return "Control Flow"
	default:
		return "Unknown"
	}
}
