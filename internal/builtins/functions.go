package builtins

// FunctionSignature describes a predefined top-level function. The
// resolver seeds its root scope with these so calls like println or
// error resolve without a declaration in the file.
type FunctionSignature struct {
	Name       string
	Parameters []string // declared parameter names, in order
	Variadic   bool     // accepts any argument shape
	ReturnType string
}

// ReturnsNothing reports whether calls to the function never complete
// normally. Control flow after such a call is unreachable.
func (s FunctionSignature) ReturnsNothing() bool {
	return s.ReturnType == string(Nothing)
}

// Functions contains all predefined top-level functions
var Functions = []FunctionSignature{
	// Console I/O
	{Name: "println", Variadic: true, ReturnType: string(Unit)},
	{Name: "print", Variadic: true, ReturnType: string(Unit)},
	{Name: "readLine", ReturnType: string(String)},

	// Error raising, all Nothing-typed
	{Name: "error", Parameters: []string{"message"}, ReturnType: string(Nothing)},
	{Name: "TODO", Variadic: true, ReturnType: string(Nothing)},

	// Preconditions
	{Name: "require", Variadic: true, ReturnType: string(Unit)},
	{Name: "check", Variadic: true, ReturnType: string(Unit)},

	{Name: "repeat", Parameters: []string{"times", "action"}, ReturnType: string(Unit)},

	// Collection constructors
	{Name: "arrayOf", Variadic: true, ReturnType: "Array"},
	{Name: "listOf", Variadic: true, ReturnType: "List"},
	{Name: "mutableListOf", Variadic: true, ReturnType: "MutableList"},
	{Name: "mapOf", Variadic: true, ReturnType: "Map"},
	{Name: "setOf", Variadic: true, ReturnType: "Set"},
}

// Function looks up a predefined function by name
func Function(name string) (FunctionSignature, bool) {
	for _, f := range Functions {
		if f.Name == name {
			return f, true
		}
	}
	return FunctionSignature{}, false
}
