package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micromingle/kotlin/grammar"
)

func TestOutlineDeclarations(t *testing.T) {
	source := `
// account bookkeeping
val limit: Int = 100
var used = 0

fun charge(amount: Int, reason: String = "unknown"): Boolean {
    used += amount
    return used <= limit
}

object Audit {
    val entries = mutableListOf()
    fun record(line: String) {
        entries.add(line)
    }
    init {
        record("started")
    }
}
`

	outline, err := grammar.ParseSource("test.kt", source)
	require.NoError(t, err)
	require.Len(t, outline.Declarations, 4)

	limit := outline.Declarations[0].Property
	require.NotNil(t, limit)
	assert.Equal(t, "limit", limit.Name)
	assert.False(t, limit.Var)
	assert.Equal(t, "Int", limit.Type.Name)

	used := outline.Declarations[1].Property
	require.NotNil(t, used)
	assert.True(t, used.Var)

	charge := outline.Declarations[2].Function
	require.NotNil(t, charge)
	assert.Equal(t, "charge", charge.Name)
	require.Len(t, charge.Params, 2)
	assert.Equal(t, "amount", charge.Params[0].Name)
	assert.Equal(t, "Int", charge.Params[0].Type.Name)
	assert.NotNil(t, charge.Params[1].Default, "second parameter has a default")
	assert.Equal(t, "Boolean", charge.Return.Name)
	assert.NotNil(t, charge.Block)

	audit := outline.Declarations[3].Object
	require.NotNil(t, audit)
	assert.Equal(t, "Audit", audit.Name)
	require.Len(t, audit.Body, 3)
	assert.NotNil(t, audit.Body[0].Property)
	assert.NotNil(t, audit.Body[1].Function)
	assert.NotNil(t, audit.Body[2].Init)
}

func TestOutlineExpressionBody(t *testing.T) {
	outline, err := grammar.ParseSource("test.kt", `fun twice(x: Int) = x + x`)
	require.NoError(t, err)
	require.Len(t, outline.Declarations, 1)

	fn := outline.Declarations[0].Function
	require.NotNil(t, fn)
	assert.Nil(t, fn.Block)
	assert.NotNil(t, fn.Expr, "'=' bodies are captured as raw fragments")
}

func TestOutlineGenericAndNullableTypes(t *testing.T) {
	outline, err := grammar.ParseSource("test.kt", `val names: List<String>? = null`)
	require.NoError(t, err)

	prop := outline.Declarations[0].Property
	require.NotNil(t, prop)
	assert.Equal(t, "List", prop.Type.Name)
	require.Len(t, prop.Type.Generics, 1)
	assert.Equal(t, "String", prop.Type.Generics[0].Name)
	assert.True(t, prop.Type.Nullable)
}

func TestOutlineSurvivesComplexBodies(t *testing.T) {
	// the outline never interprets statements, so any balanced body parses
	source := `fun gnarly() {
    while (a < b) {
        when (x) {
            1 -> try { f() } finally { g() }
            else -> h { it -> it + 1 }
        }
    }
}`

	outline, err := grammar.ParseSource("test.kt", source)
	require.NoError(t, err)
	require.Len(t, outline.Declarations, 1)
	assert.Equal(t, "gnarly", outline.Declarations[0].Function.Name)
}

func TestSymbolsTree(t *testing.T) {
	source := `
fun top() {
}

object Box {
    val value = 1
    init {
    }
}
`

	outline, err := grammar.ParseSource("test.kt", source)
	require.NoError(t, err)

	symbols := grammar.Symbols(outline)
	require.Len(t, symbols, 2)

	assert.Equal(t, "top", symbols[0].Name)
	assert.Equal(t, grammar.FunctionSymbol, symbols[0].Kind)
	assert.Equal(t, 2, symbols[0].Line)

	box := symbols[1]
	assert.Equal(t, "Box", box.Name)
	assert.Equal(t, grammar.ObjectSymbol, box.Kind)
	require.Len(t, box.Children, 2)
	assert.Equal(t, grammar.PropertySymbol, box.Children[0].Kind)
	assert.Equal(t, "init", box.Children[1].Name)
	assert.Equal(t, grammar.InitializerSymbol, box.Children[1].Kind)
}
