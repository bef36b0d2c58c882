package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micromingle/kotlin/internal/ast"
	"github.com/micromingle/kotlin/internal/errors"
	"github.com/micromingle/kotlin/internal/parser"
)

func analyze(t *testing.T, source string) (*ast.File, *Trace) {
	t.Helper()
	file, parseErrors, scanErrors := parser.ParseSource("test.kt", source)
	require.Empty(t, scanErrors, "should have no scan errors")
	require.Empty(t, parseErrors, "should have no parse errors")
	return file, Analyze(file)
}

func codes(trace *Trace) []string {
	var out []string
	for _, d := range trace.Diagnostics() {
		out = append(out, d.Code)
	}
	return out
}

func TestResolveParameterReference(t *testing.T) {
	file, trace := analyze(t, `fun f(x: Int) = x`)
	assert.Empty(t, trace.Diagnostics())

	name := file.Declarations[0].(*ast.Function).Body.(*ast.Name)
	desc := trace.DescriptorFor(name)
	require.NotNil(t, desc, "parameter reference should bind")
	assert.Equal(t, "x", desc.DescriptorName())
}

func TestUnresolvedReferenceIsReported(t *testing.T) {
	_, trace := analyze(t, `fun f() = ghost`)
	assert.Contains(t, codes(trace), errors.ErrorUnresolvedReference)
}

func TestUnresolvedCallIsReported(t *testing.T) {
	_, trace := analyze(t, `fun f() { ghost() }`)
	assert.Contains(t, codes(trace), errors.ErrorUnresolvedCall)
}

func TestBuiltinsResolveWithoutDeclaration(t *testing.T) {
	_, trace := analyze(t, `
fun f() {
    println("a", "b")
    val line = readLine()
    require(true)
}`)
	assert.Empty(t, trace.Diagnostics(), "predefined functions need no declaration")
}

func TestErrorCallIsNothingTyped(t *testing.T) {
	file, trace := analyze(t, `fun f() { error("boom") }`)
	assert.Empty(t, trace.Diagnostics())

	body := file.Declarations[0].(*ast.Function).Body.(*ast.Block)
	call := body.Statements[0].(*ast.Call)
	assert.True(t, trace.IsNothing(call), "error() never returns normally")
}

func TestDeclaredNothingFunctionPropagates(t *testing.T) {
	file, trace := analyze(t, `
fun fail(): Nothing {
    throw 1
}

fun f() {
    fail()
}`)
	assert.Empty(t, trace.Diagnostics())

	body := file.Declarations[1].(*ast.Function).Body.(*ast.Block)
	call := body.Statements[0].(*ast.Call)
	assert.True(t, trace.IsNothing(call), "a declared Nothing return marks the call site")
}

func TestNamedArgumentsMapToDeclarationOrder(t *testing.T) {
	file, trace := analyze(t, `
fun move(dx: Int, dy: Int) {
    println(dx + dy)
}

fun f() {
    move(dy = 2, dx = 1)
}`)
	assert.Empty(t, trace.Diagnostics())

	body := file.Declarations[1].(*ast.Function).Body.(*ast.Block)
	call := body.Statements[0].(*ast.Call)
	rc := trace.ResolvedCallFor(call)
	require.NotNil(t, rc)
	require.Len(t, rc.Arguments, 2)
	assert.Equal(t, "dx", rc.Arguments[0].Parameter.Name)
	assert.Equal(t, "dy", rc.Arguments[1].Parameter.Name)
}

func TestMissingArgumentWithoutDefaultIsReported(t *testing.T) {
	_, trace := analyze(t, `
fun move(dx: Int, dy: Int) {
}

fun f() {
    move(1)
}`)
	assert.Contains(t, codes(trace), errors.ErrorUnresolvedCall)
}

func TestDefaultParameterAllowsOmission(t *testing.T) {
	_, trace := analyze(t, `
fun greet(name: String = "world") {
    println(name)
}

fun f() {
    greet()
}`)
	assert.Empty(t, trace.Diagnostics())
}

func TestTrailingLambdaMapsToLastParameter(t *testing.T) {
	file, trace := analyze(t, `
fun each(count: Int, action: Int) {
}

fun f() {
    each(3) { println("tick") }
}`)
	assert.Empty(t, trace.Diagnostics())

	body := file.Declarations[1].(*ast.Function).Body.(*ast.Block)
	call := body.Statements[0].(*ast.Call)
	rc := trace.ResolvedCallFor(call)
	require.NotNil(t, rc)
	require.Len(t, rc.Arguments, 2)
	assert.Equal(t, "action", rc.Arguments[1].Parameter.Name)
	require.Len(t, rc.Arguments[1].Expressions, 1)
	_, ok := rc.Arguments[1].Expressions[0].(*ast.FunctionLiteral)
	assert.True(t, ok)
}

func TestBinaryOperatorRecordsConventionCall(t *testing.T) {
	file, trace := analyze(t, `fun f(a: Int, b: Int) = a + b`)
	assert.Empty(t, trace.Diagnostics())

	binary := file.Declarations[0].(*ast.Function).Body.(*ast.Binary)
	rc := trace.ResolvedCallFor(binary.OpRef)
	require.NotNil(t, rc, "operator usage resolves to a convention call")
	assert.Equal(t, "plus", rc.Descriptor.DescriptorName())
	assert.Equal(t, ExpressionReceiver, rc.ThisObject.Kind)
}

func TestAugmentedAssignmentResolvesNonAssignForm(t *testing.T) {
	file, trace := analyze(t, `
fun f(x: Int, v: Int) {
    x += v
}`)
	assert.Empty(t, trace.Diagnostics())

	body := file.Declarations[0].(*ast.Function).Body.(*ast.Block)
	binary := body.Statements[0].(*ast.Binary)
	rc := trace.ResolvedCallFor(binary.OpRef)
	require.NotNil(t, rc)
	assert.Equal(t, "plus", rc.Descriptor.DescriptorName())
}

func TestIndexedAccessRecordsGetAndSet(t *testing.T) {
	file, trace := analyze(t, `
fun f(a: Int, i: Int, v: Int) {
    a[i] = v
    val x = a[i]
}`)
	assert.Empty(t, trace.Diagnostics())

	body := file.Declarations[0].(*ast.Function).Body.(*ast.Block)
	writeTarget := body.Statements[0].(*ast.Binary).Left.(*ast.ArrayAccess)
	set := trace.IndexedSetCall(writeTarget)
	require.NotNil(t, set)
	assert.Equal(t, "set", set.Descriptor.DescriptorName())
	assert.Nil(t, trace.IndexedGetCall(writeTarget), "a plain write never reads")

	readAccess := body.Statements[1].(*ast.Property).Initializer.(*ast.ArrayAccess)
	get := trace.IndexedGetCall(readAccess)
	require.NotNil(t, get)
	assert.Equal(t, "get", get.Descriptor.DescriptorName())
}

func TestCompoundIndexedAssignmentRecordsBoth(t *testing.T) {
	file, trace := analyze(t, `
fun f(a: Int, i: Int, v: Int) {
    a[i] += v
}`)
	assert.Empty(t, trace.Diagnostics())

	body := file.Declarations[0].(*ast.Function).Body.(*ast.Block)
	target := body.Statements[0].(*ast.Binary).Left.(*ast.ArrayAccess)
	assert.NotNil(t, trace.IndexedGetCall(target))
	assert.NotNil(t, trace.IndexedSetCall(target))
}

func TestVariableUsedAsFunctionResolvesInvoke(t *testing.T) {
	file, trace := analyze(t, `
fun f(op: Int) {
    op(1)
}`)
	assert.Empty(t, trace.Diagnostics())

	body := file.Declarations[0].(*ast.Function).Body.(*ast.Block)
	call := body.Statements[0].(*ast.Call)
	rc := trace.ResolvedCallFor(call)
	require.NotNil(t, rc)
	assert.Equal(t, "invoke", rc.Descriptor.DescriptorName())
}

func TestLabeledLoopTargetsRecorded(t *testing.T) {
	file, trace := analyze(t, `
fun f(c: Boolean) {
    outer@ while (c) {
        break@outer
    }
}`)
	assert.Empty(t, trace.Diagnostics())

	body := file.Declarations[0].(*ast.Function).Body.(*ast.Block)
	labeled := body.Statements[0].(*ast.Labeled)
	loop := labeled.Base.(*ast.While)
	brk := loop.Body.(*ast.Block).Statements[0].(*ast.Break)

	assert.Same(t, ast.Node(loop), trace.LabelTarget(brk), "break@outer targets the labeled loop")
}

func TestBooleanConstantsRecorded(t *testing.T) {
	file, trace := analyze(t, `fun f() = true`)

	lit := file.Declarations[0].(*ast.Function).Body.(*ast.Literal)
	v, ok := trace.BoolConstant(lit)
	assert.True(t, ok)
	assert.True(t, v)
}

func TestDestructuringRecordsComponentCalls(t *testing.T) {
	file, trace := analyze(t, `
fun f(pair: Int) {
    val (a, b) = pair
}`)
	assert.Empty(t, trace.Diagnostics())

	body := file.Declarations[0].(*ast.Function).Body.(*ast.Block)
	multi := body.Statements[0].(*ast.MultiDeclaration)
	require.Len(t, multi.Entries, 2)

	c1 := trace.ComponentCall(multi.Entries[0])
	require.NotNil(t, c1)
	assert.Equal(t, "component1", c1.Descriptor.DescriptorName())

	c2 := trace.ComponentCall(multi.Entries[1])
	require.NotNil(t, c2)
	assert.Equal(t, "component2", c2.Descriptor.DescriptorName())
}

func TestWhenInRangeRecordsContains(t *testing.T) {
	file, trace := analyze(t, `
fun f(x: Int, r: Int) {
    when (x) {
        in r -> println("hit")
        else -> println("miss")
    }
}`)
	assert.Empty(t, trace.Diagnostics())

	body := file.Declarations[0].(*ast.Function).Body.(*ast.Block)
	when := body.Statements[0].(*ast.When)
	cond := when.Entries[0].Conditions[0].(*ast.WhenConditionInRange)
	rc := trace.ResolvedCallFor(cond.OpRef)
	require.NotNil(t, rc)
	assert.Equal(t, "contains", rc.Descriptor.DescriptorName())
}

func TestCatchParameterIsScopedToHandler(t *testing.T) {
	_, trace := analyze(t, `
fun f() {
    try {
        println("a")
    } catch (e: Exception) {
        println(e)
    }
    println(e)
}`)
	assert.Contains(t, codes(trace), errors.ErrorUnresolvedReference,
		"the catch parameter is not visible after the handler")
}

func TestForwardReferenceWithinBlock(t *testing.T) {
	_, trace := analyze(t, `
fun f() {
    fun later() {
        println("later")
    }
    earlyUse()
    fun earlyUse() {
        later()
    }
}`)
	assert.Empty(t, trace.Diagnostics(), "block-local functions are pre-registered")
}

func TestEnclosingSubroutineCrossesLoopsNotLambdas(t *testing.T) {
	file, trace := analyze(t, `
fun f() {
    while (true) {
        break
    }
}`)

	fn := file.Declarations[0].(*ast.Function)
	loop := fn.Body.(*ast.Block).Statements[0].(*ast.While)
	brk := loop.Body.(*ast.Block).Statements[0].(*ast.Break)

	assert.Same(t, ast.Node(fn), trace.EnclosingSubroutine(brk))
	assert.Same(t, ast.Node(fn), trace.EnclosingSubroutine(loop))
}

func TestLambdaOpensItsOwnSubroutine(t *testing.T) {
	file, trace := analyze(t, `
fun f() {
    repeat(1) {
        break
    }
}`)

	fn := file.Declarations[0].(*ast.Function)
	call := fn.Body.(*ast.Block).Statements[0].(*ast.Call)
	lambda := call.LambdaArgs[0].(*ast.FunctionLiteral)
	brk := lambda.Body.Statements[0].(*ast.Break)

	assert.Same(t, ast.Node(lambda), trace.EnclosingSubroutine(brk))
}

func TestMemberReadSynthesizesDescriptor(t *testing.T) {
	file, trace := analyze(t, `fun f(p: Int) = p.size`)
	assert.Empty(t, trace.Diagnostics())

	qualified := file.Declarations[0].(*ast.Function).Body.(*ast.Qualified)
	sel := qualified.Selector.(*ast.Name)
	rc := trace.ResolvedCallFor(sel)
	require.NotNil(t, rc)
	assert.Equal(t, "size", rc.Descriptor.DescriptorName())
	assert.Equal(t, ExpressionReceiver, rc.ThisObject.Kind)
}

func findWhen(t *testing.T, file *ast.File) *ast.When {
	t.Helper()
	fn := file.Declarations[0].(*ast.Function)
	for _, s := range fn.Body.(*ast.Block).Statements {
		switch x := s.(type) {
		case *ast.When:
			return x
		case *ast.Property:
			if w, ok := x.Initializer.(*ast.When); ok {
				return w
			}
		}
	}
	t.Fatal("no when expression in fixture")
	return nil
}

func TestWhenExpressionWithoutElseMustBeExhaustive(t *testing.T) {
	file, trace := analyze(t, `
fun f(x: Int): Int {
    val r = when (x) {
        0 -> 1
        1 -> 2
    }
    return r
}`)
	w := findWhen(t, file)
	assert.True(t, trace.WhenMustHaveElse(w),
		"a consumed subject-bearing when without else is exhaustiveness-checked")
}

func TestWhenWithElseNeedsNoExhaustivenessCheck(t *testing.T) {
	file, trace := analyze(t, `
fun f(x: Int): Int {
    val r = when (x) {
        0 -> 1
        else -> 2
    }
    return r
}`)
	assert.False(t, trace.WhenMustHaveElse(findWhen(t, file)))
}

func TestWhenStatementNeedsNoElse(t *testing.T) {
	file, trace := analyze(t, `
fun f(x: Int) {
    when (x) {
        0 -> println("zero")
    }
}`)
	assert.False(t, trace.WhenMustHaveElse(findWhen(t, file)))
}
