package builtins

// BuiltinType represents the predefined types of the language
type BuiltinType string

const (
	// Numbers
	Byte   BuiltinType = "Byte"
	Short  BuiltinType = "Short"
	Int    BuiltinType = "Int"
	Long   BuiltinType = "Long"
	Float  BuiltinType = "Float"
	Double BuiltinType = "Double"

	// Other primitives
	Boolean BuiltinType = "Boolean"
	Char    BuiltinType = "Char"
	String  BuiltinType = "String"

	// Special types
	Unit    BuiltinType = "Unit"
	Nothing BuiltinType = "Nothing"
	Any     BuiltinType = "Any"
)

// BuiltinTypes contains all valid predefined types
var BuiltinTypes = map[string]bool{
	// Numbers
	string(Byte):   true,
	string(Short):  true,
	string(Int):    true,
	string(Long):   true,
	string(Float):  true,
	string(Double): true,

	// Other primitives
	string(Boolean): true,
	string(Char):    true,
	string(String):  true,

	// Special types
	string(Unit):    true,
	string(Nothing): true,
	string(Any):     true,
}

// IsBuiltinType checks if a type name is a predefined type
func IsBuiltinType(typeName string) bool {
	return BuiltinTypes[typeName]
}

// IsNumericType checks if a type is a predefined number type
func IsNumericType(typeName string) bool {
	switch BuiltinType(typeName) {
	case Byte, Short, Int, Long, Float, Double:
		return true
	default:
		return false
	}
}
