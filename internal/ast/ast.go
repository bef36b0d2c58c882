package ast

// Position locates a node in its source file (1-based line and column).
type Position struct {
	Line   int
	Column int
	Offset int
}

// Node is implemented by every syntax tree node.
type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

// Expr is the closed set of expression nodes. Loops, conditionals, try and
// jumps are expressions in this language, so they all live here.
type Expr interface {
	Node
	exprNode()
}

// Decl is the closed set of declaration nodes.
type Decl interface {
	Node
	declNode()
}

// WhenCondition is one guard inside a when entry.
type WhenCondition interface {
	Node
	whenConditionNode()
}

// LiteralKind discriminates constant literals.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	BooleanLiteral
	StringLiteral
	NullLiteral
)

// BadExpr stands in for source the parser could not form an expression from.
type BadExpr struct {
	Pos    Position
	EndPos Position
}

// Literal is a compile-time constant expression.
type Literal struct {
	Pos    Position
	EndPos Position
	Kind   LiteralKind
	Value  string
}

// Name is a simple identifier reference.
type Name struct {
	Pos        Position
	EndPos     Position
	Identifier string
}

// ThisExpr is a reference to the current receiver, optionally labeled.
type ThisExpr struct {
	Pos    Position
	EndPos Position
	Label  string
}

// TemplateEntry is one segment of a string template. Exactly one of Text
// and Value is meaningful: literal text or an interpolated expression.
type TemplateEntry struct {
	Pos    Position
	EndPos Position
	Text   string
	Value  Expr
}

// StringTemplate is a string with interpolated expressions.
type StringTemplate struct {
	Pos     Position
	EndPos  Position
	Entries []*TemplateEntry
}

// Paren wraps an expression in parentheses.
type Paren struct {
	Pos    Position
	EndPos Position
	Inner  Expr
}

// Labeled attaches a label to an expression, e.g. outer@ while (...) {...}.
type Labeled struct {
	Pos    Position
	EndPos Position
	Label  string
	Base   Expr
}

// OperationRef is the operator token of a unary/binary expression as a
// node of its own, so resolution can attach a resolved call to it.
type OperationRef struct {
	Pos    Position
	EndPos Position
	Op     string
}

// Binary is a binary operation, including assignments and the short-circuit
// and elvis operators.
type Binary struct {
	Pos    Position
	EndPos Position
	Left   Expr
	OpRef  *OperationRef
	Right  Expr
}

// Unary is a prefix or postfix unary operation.
type Unary struct {
	Pos     Position
	EndPos  Position
	OpRef   *OperationRef
	Base    Expr
	Postfix bool
}

// ArrayAccess is an indexed access a[i, j].
type ArrayAccess struct {
	Pos     Position
	EndPos  Position
	Array   Expr
	Indices []Expr
}

// Argument is one value argument at a call site, optionally named.
type Argument struct {
	Pos    Position
	EndPos Position
	Name   string
	Value  Expr
}

// Call is a call expression. Trailing function literals are kept apart from
// parenthesized arguments to match their distinct lowering order.
type Call struct {
	Pos        Position
	EndPos     Position
	Callee     Expr
	Args       []*Argument
	LambdaArgs []Expr
}

// Qualified is a dot or safe-call qualified expression: receiver.selector.
type Qualified struct {
	Pos      Position
	EndPos   Position
	Receiver Expr
	Selector Expr
	Safe     bool
}

// If is a conditional expression; Else may be nil.
type If struct {
	Pos       Position
	EndPos    Position
	Condition Expr
	Then      Expr
	Else      Expr
}

// When is a multi-branch dispatch expression; Subject may be nil.
type When struct {
	Pos     Position
	EndPos  Position
	Subject Expr
	Entries []*WhenEntry
}

// WhenEntry is one branch of a when expression.
type WhenEntry struct {
	Pos        Position
	EndPos     Position
	Conditions []WhenCondition
	IsElse     bool
	Body       Expr
}

// WhenConditionInRange tests subject membership in a range: in e / !in e.
type WhenConditionInRange struct {
	Pos       Position
	EndPos    Position
	Not       bool
	RangeExpr Expr
	OpRef     *OperationRef
}

// WhenConditionIsPattern tests the subject's type: is T / !is T.
type WhenConditionIsPattern struct {
	Pos      Position
	EndPos   Position
	Not      bool
	TypeName string
}

// WhenConditionExpression compares the subject against an expression.
type WhenConditionExpression struct {
	Pos    Position
	EndPos Position
	Value  Expr
}

// Try is a try expression with optional catches and finally.
type Try struct {
	Pos      Position
	EndPos   Position
	TryBlock *Block
	Catches  []*CatchClause
	Finally  *FinallySection
}

// CatchClause declares a caught parameter and its handler body.
type CatchClause struct {
	Pos       Position
	EndPos    Position
	Parameter *Parameter
	Body      *Block
}

// FinallySection is the finally block of a try expression.
type FinallySection struct {
	Pos    Position
	EndPos Position
	Body   *Block
}

// While is a condition-first loop.
type While struct {
	Pos       Position
	EndPos    Position
	Condition Expr
	Body      Expr
}

// DoWhile is a body-first loop.
type DoWhile struct {
	Pos       Position
	EndPos    Position
	Body      Expr
	Condition Expr
}

// For iterates a range expression. Exactly one of Parameter and
// MultiParameter is set.
type For struct {
	Pos            Position
	EndPos         Position
	Parameter      *Parameter
	MultiParameter *MultiDeclaration
	RangeExpr      Expr
	Body           Expr
}

// Break exits a loop, optionally a labeled one.
type Break struct {
	Pos    Position
	EndPos Position
	Label  string
}

// Continue re-enters a loop, optionally a labeled one.
type Continue struct {
	Pos    Position
	EndPos Position
	Label  string
}

// Return exits a subroutine, optionally a labeled outer one.
type Return struct {
	Pos    Position
	EndPos Position
	Label  string
	Value  Expr
}

// Throw raises an exception.
type Throw struct {
	Pos    Position
	EndPos Position
	Value  Expr
}

// Block is a braced statement sequence; its value is its last statement's.
type Block struct {
	Pos        Position
	EndPos     Position
	Statements []Node
}

// FunctionLiteral is a lambda expression. It is its own subroutine for
// lowering purposes.
type FunctionLiteral struct {
	Pos    Position
	EndPos Position
	Params []*Parameter
	Body   *Block
}

// ObjectLiteral is an anonymous object expression.
type ObjectLiteral struct {
	Pos         Position
	EndPos      Position
	Declaration *ObjectDeclaration
}

// IsExpr is a type test: e is T / e !is T.
type IsExpr struct {
	Pos      Position
	EndPos   Position
	Left     Expr
	Not      bool
	TypeName string
}

// TypeOp is a cast: e as T / e as? T.
type TypeOp struct {
	Pos      Position
	EndPos   Position
	Left     Expr
	Op       string
	TypeName string
}

// TypeRef names a declared type.
type TypeRef struct {
	Pos    Position
	EndPos Position
	Name   string
}

// Function is a named function declaration. Body is either a Block or a
// single expression for '=' bodies; nil for abstract declarations.
type Function struct {
	Pos        Position
	EndPos     Position
	Name       string
	Params     []*Parameter
	ReturnType *TypeRef
	Body       Expr
}

// Parameter declares a value parameter, a catch parameter or a loop
// parameter; DefaultValue applies to function parameters only.
type Parameter struct {
	Pos          Position
	EndPos       Position
	Name         string
	Type         *TypeRef
	DefaultValue Expr
}

// Property is a val/var declaration.
type Property struct {
	Pos         Position
	EndPos      Position
	Var         bool
	Name        string
	Type        *TypeRef
	Initializer Expr
	Delegate    Expr
	Accessors   []*PropertyAccessor
}

// PropertyAccessor is a custom get/set body of a property.
type PropertyAccessor struct {
	Pos    Position
	EndPos Position
	Getter bool
	Params []*Parameter
	Body   Expr
}

// MultiDeclaration is a destructuring declaration: val (a, b) = e.
type MultiDeclaration struct {
	Pos         Position
	EndPos      Position
	Entries     []*MultiDeclarationEntry
	Initializer Expr
}

// MultiDeclarationEntry is one component of a destructuring declaration.
type MultiDeclarationEntry struct {
	Pos    Position
	EndPos Position
	Name   string
}

// ClassInitializer is an init { ... } block inside a class-like body.
type ClassInitializer struct {
	Pos    Position
	EndPos Position
	Body   *Block
}

// ObjectDeclaration is the body of an object literal.
type ObjectDeclaration struct {
	Pos          Position
	EndPos       Position
	Declarations []Node
}

// File is a parsed source file.
type File struct {
	Pos          Position
	EndPos       Position
	Declarations []Node
}
