package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/micromingle/kotlin/internal/ast"
	"github.com/micromingle/kotlin/internal/cfg/pseudocode"
	"github.com/micromingle/kotlin/internal/errors"
	"github.com/micromingle/kotlin/internal/parser"
	"github.com/micromingle/kotlin/internal/resolve"
)

func lower(t *testing.T, source string) ([]*pseudocode.Pseudocode, *resolve.Trace) {
	t.Helper()

	file, parseErrors, scanErrors := parser.ParseSource("test.kt", source)
	require.Empty(t, scanErrors, "should have no scan errors")
	require.Empty(t, parseErrors, "should have no parse errors")
	require.NotNil(t, file)

	trace := resolve.Analyze(file)
	lowered := LowerFile(file, trace)
	require.NotEmpty(t, lowered, "should lower at least one function")
	return lowered, trace
}

func lowerOne(t *testing.T, source string) (*pseudocode.Pseudocode, *resolve.Trace) {
	t.Helper()
	lowered, trace := lower(t, source)
	return lowered[0], trace
}

func callsNamed(p *pseudocode.Pseudocode, name string) []*pseudocode.CallInstruction {
	var out []*pseudocode.CallInstruction
	for _, instr := range p.Instructions() {
		if c, ok := instr.(*pseudocode.CallInstruction); ok && c.FunctionName() == name {
			out = append(out, c)
		}
	}
	return out
}

func readsOf(p *pseudocode.Pseudocode, name string) []*pseudocode.ReadVariableInstruction {
	var out []*pseudocode.ReadVariableInstruction
	for _, instr := range p.Instructions() {
		if r, ok := instr.(*pseudocode.ReadVariableInstruction); ok && r.VariableName() == name {
			out = append(out, r)
		}
	}
	return out
}

func diagnosticCodes(trace *resolve.Trace) []string {
	var codes []string
	for _, d := range trace.Diagnostics() {
		codes = append(codes, d.Code)
	}
	return codes
}

func TestLowerSimpleFunction(t *testing.T) {
	p, trace := lowerOne(t, `
fun f() {
    val x = 1
    println(x)
}`)
	assert.Empty(t, trace.Diagnostics())

	var constants, writes int
	for _, instr := range p.Instructions() {
		switch instr.(type) {
		case *pseudocode.ConstantInstruction:
			constants++
		case *pseudocode.WriteVariableInstruction:
			writes++
		}
	}
	assert.Equal(t, 1, constants, "the initializer is one constant load")
	assert.Equal(t, 1, writes, "the declaration is initialized by one write")
	assert.Len(t, callsNamed(p, "println"), 1)
	assert.Len(t, readsOf(p, "x"), 1)
}

func TestEveryValueHasOneProducer(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(a: Int, b: Int): Int {
    val c = if (a < b) a else b
    return c + 1
}`)

	producers := make(map[*pseudocode.PseudoValue]int)
	for _, instr := range p.Instructions() {
		if wv, ok := instr.(pseudocode.InstructionWithValue); ok {
			if v := wv.GetValue(); v != nil {
				producers[v]++
			}
		}
	}
	for v, n := range producers {
		assert.Equalf(t, 1, n, "value %s must have exactly one producer", v)
	}
}

func TestShortCircuitAndOutsideCondition(t *testing.T) {
	p, _ := lowerOne(t, `fun f(a: Boolean, b: Boolean) = a && b`)

	var jumps []*pseudocode.ConditionalJumpInstruction
	var ops []*pseudocode.PredefinedOperationInstruction
	for _, instr := range p.Instructions() {
		switch i := instr.(type) {
		case *pseudocode.ConditionalJumpInstruction:
			jumps = append(jumps, i)
		case *pseudocode.PredefinedOperationInstruction:
			ops = append(ops, i)
		}
	}
	require.Len(t, jumps, 1, "the right operand is guarded by one jump")
	assert.False(t, jumps[0].OnTrue(), "'&&' skips the right operand when the left is false")
	require.Len(t, ops, 1, "a value-position '&&' materializes its result")
	assert.Equal(t, pseudocode.AndOperation, ops[0].Operation())
	assert.Len(t, ops[0].GetInputs(), 2)
}

func TestShortCircuitInConditionHasNoOperation(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(a: Boolean, b: Boolean) {
    if (a || b) println("yes")
}`)

	for _, instr := range p.Instructions() {
		if op, ok := instr.(*pseudocode.PredefinedOperationInstruction); ok {
			assert.NotEqual(t, pseudocode.OrOperation, op.Operation(),
				"'||' in condition position encodes its result in the jump structure")
		}
	}
}

func TestIfMergesBranchValues(t *testing.T) {
	p, _ := lowerOne(t, `fun f(c: Boolean) = if (c) 1 else 2`)

	var merges []*pseudocode.MergeInstruction
	for _, instr := range p.Instructions() {
		if m, ok := instr.(*pseudocode.MergeInstruction); ok {
			merges = append(merges, m)
		}
	}
	require.Len(t, merges, 1)
	assert.Len(t, merges[0].GetInputs(), 2)
}

func TestIfWithoutElseLoadsUnit(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(c: Boolean) {
    if (c) println("then")
}`)

	var units int
	for _, instr := range p.Instructions() {
		if _, ok := instr.(*pseudocode.LoadUnitInstruction); ok {
			units++
		}
	}
	assert.GreaterOrEqual(t, units, 1, "the missing else branch contributes a unit value")
}

func TestElvisMergesAndJumpsOnTrue(t *testing.T) {
	p, _ := lowerOne(t, `fun f(x: Int, y: Int) = x ?: y`)

	var jumps []*pseudocode.ConditionalJumpInstruction
	var merges []*pseudocode.MergeInstruction
	for _, instr := range p.Instructions() {
		switch i := instr.(type) {
		case *pseudocode.ConditionalJumpInstruction:
			jumps = append(jumps, i)
		case *pseudocode.MergeInstruction:
			merges = append(merges, i)
		}
	}
	require.Len(t, jumps, 1)
	assert.True(t, jumps[0].OnTrue(), "'?:' keeps the left value when it is non-null")
	require.Len(t, merges, 1)
	assert.Len(t, merges[0].GetInputs(), 2)
}

func TestWhileLowersConditionBeforeBody(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(c: Boolean) {
    while (c) {
        println("tick")
    }
}`)

	var conditional *pseudocode.ConditionalJumpInstruction
	for _, instr := range p.Instructions() {
		if j, ok := instr.(*pseudocode.ConditionalJumpInstruction); ok {
			conditional = j
		}
	}
	require.NotNil(t, conditional, "the loop condition guards the body")
	assert.False(t, conditional.OnTrue())

	var backJump bool
	for _, instr := range p.Instructions() {
		if j, ok := instr.(*pseudocode.UnconditionalJumpInstruction); ok && !j.OnError() {
			backJump = true
		}
	}
	assert.True(t, backJump, "the body jumps back to the loop entry")
}

func TestWhileTrueOmitsConditionJump(t *testing.T) {
	p, _ := lowerOne(t, `
fun f() {
    while (true) {
        break
    }
}`)

	for _, instr := range p.Instructions() {
		_, ok := instr.(*pseudocode.ConditionalJumpInstruction)
		assert.False(t, ok, "a constant-true condition needs no exit jump")
	}
}

func TestDoWhileJumpsBackOnTrue(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(c: Boolean) {
    do {
        println("tick")
    } while (c)
}`)

	var conditional *pseudocode.ConditionalJumpInstruction
	for _, instr := range p.Instructions() {
		if j, ok := instr.(*pseudocode.ConditionalJumpInstruction); ok {
			conditional = j
		}
	}
	require.NotNil(t, conditional)
	assert.True(t, conditional.OnTrue(), "do-while repeats while the condition holds")
}

func TestForLoopIterationMagic(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(items: Int) {
    for (item in items) {
        println(item)
    }
}`)

	var iteration bool
	for _, instr := range p.Instructions() {
		if m, ok := instr.(*pseudocode.MagicInstruction); ok && m.Kind() == pseudocode.LoopRangeIterationMagic {
			iteration = true
		}
	}
	assert.True(t, iteration, "each iteration draws a value from the range")
}

func TestBreakOutsideLoopIsReported(t *testing.T) {
	_, trace := lowerOne(t, `
fun f() {
    break
}`)
	assert.Contains(t, diagnosticCodes(trace), errors.ErrorBreakContinueOutsideLoop)
}

func TestBreakLabelNotALoop(t *testing.T) {
	_, trace := lowerOne(t, `
fun f(c: Boolean) {
    outer@ if (c) {
        break@outer
    }
}`)
	assert.Contains(t, diagnosticCodes(trace), errors.ErrorNotALoopLabel)
}

func TestBreakAcrossFunctionBoundary(t *testing.T) {
	_, trace := lowerOne(t, `
fun f() {
    outer@ while (true) {
        repeat(1) {
            break@outer
        }
    }
}`)
	assert.Contains(t, diagnosticCodes(trace), errors.ErrorJumpCrossesFunctionBoundary)
}

func TestLabeledBreakLeavesOuterLoop(t *testing.T) {
	p, trace := lowerOne(t, `
fun f(c: Boolean) {
    outer@ while (true) {
        while (true) {
            if (c) break@outer
        }
    }
}`)
	assert.Empty(t, trace.Diagnostics())

	var jumps int
	for _, instr := range p.Instructions() {
		if _, ok := instr.(*pseudocode.UnconditionalJumpInstruction); ok {
			jumps++
		}
	}
	assert.GreaterOrEqual(t, jumps, 3, "back edges of both loops plus the labeled break")
}

func TestReturnValueInstruction(t *testing.T) {
	p, trace := lowerOne(t, `
fun f(): Int {
    return 1
}`)
	assert.Empty(t, trace.Diagnostics())

	var returns int
	for _, instr := range p.Instructions() {
		if _, ok := instr.(*pseudocode.ReturnValueInstruction); ok {
			returns++
		}
	}
	assert.Equal(t, 1, returns)
}

func TestReturnWithoutValue(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(c: Boolean) {
    if (c) return
    println("rest")
}`)

	var returns int
	for _, instr := range p.Instructions() {
		if _, ok := instr.(*pseudocode.ReturnNoValueInstruction); ok {
			returns++
		}
	}
	assert.Equal(t, 1, returns)
}

func TestThrowLowersValueFirst(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(e: Int) {
    throw e
}`)

	var throw *pseudocode.ThrowInstruction
	for _, instr := range p.Instructions() {
		if th, ok := instr.(*pseudocode.ThrowInstruction); ok {
			throw = th
		}
	}
	require.NotNil(t, throw)
	assert.Len(t, throw.GetInputs(), 1, "the thrown value feeds the instruction")
}

func TestTryCatchMergesValues(t *testing.T) {
	p, _ := lowerOne(t, `fun f() = try { 1 } catch (e: Exception) { 2 }`)

	var merges []*pseudocode.MergeInstruction
	for _, instr := range p.Instructions() {
		if m, ok := instr.(*pseudocode.MergeInstruction); ok {
			merges = append(merges, m)
		}
	}
	require.Len(t, merges, 1)
	assert.Len(t, merges[0].GetInputs(), 2, "the try body and the catch body both contribute")
}

func TestFinallyBodyIsReplayed(t *testing.T) {
	p, trace := lowerOne(t, `
fun f() {
    try {
        return
    } finally {
        println("done")
    }
}`)
	assert.Empty(t, trace.Diagnostics())

	// once inline before the return, then replayed on the normal and
	// exceptional paths of the try expression itself
	assert.GreaterOrEqual(t, len(callsNamed(p, "println")), 2)

	for _, instr := range p.Instructions() {
		_, ok := instr.(*pseudocode.RepeatInstruction)
		assert.False(t, ok, "repeat markers are expanded away by post-processing")
	}
}

func TestReturnInsideFinallyTerminates(t *testing.T) {
	// the finally body must not replay itself through its own return
	p, _ := lowerOne(t, `
fun f() {
    try {
        return
    } finally {
        return
    }
}`)

	var returns int
	for _, instr := range p.Instructions() {
		if _, ok := instr.(*pseudocode.ReturnNoValueInstruction); ok {
			returns++
		}
	}
	assert.GreaterOrEqual(t, returns, 2)
}

func TestWhenEntriesDispatchNondeterministically(t *testing.T) {
	p, trace := lowerOne(t, `
fun f(x: Int) = when (x) {
    1 -> "one"
    2 -> "two"
    else -> "many"
}`)
	assert.Empty(t, trace.Diagnostics())

	var nondet int
	var merges []*pseudocode.MergeInstruction
	for _, instr := range p.Instructions() {
		switch i := instr.(type) {
		case *pseudocode.NondeterministicJumpInstruction:
			nondet++
		case *pseudocode.MergeInstruction:
			merges = append(merges, i)
		}
	}
	assert.GreaterOrEqual(t, nondet, 2, "each guarded entry can fall through to the next")
	require.Len(t, merges, 1)
	assert.Len(t, merges[0].GetInputs(), 3, "all three entry bodies contribute a value")
}

func TestWhenElseMustBeLast(t *testing.T) {
	_, trace := lowerOne(t, `
fun f(x: Int) = when (x) {
    else -> "many"
    1 -> "one"
}`)
	assert.Contains(t, diagnosticCodes(trace), errors.ErrorElseMisplacedInWhen)
}

func TestCompoundAssignmentEvaluatesTargetOnce(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(a: Int, i: Int, v: Int) {
    a[i] += v
}`)

	assert.Len(t, readsOf(p, "a"), 1, "the array expression is evaluated once")
	assert.Len(t, readsOf(p, "i"), 1, "the index expression is evaluated once")
	assert.Len(t, callsNamed(p, "get"), 1)
	assert.Len(t, callsNamed(p, "plus"), 1)
	assert.Len(t, callsNamed(p, "set"), 1)
}

func TestIncrementReadsCallsAndWritesBack(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(x: Int) {
    x++
}`)

	assert.Len(t, callsNamed(p, "inc"), 1)

	var stores int
	for _, instr := range p.Instructions() {
		if w, ok := instr.(*pseudocode.WriteVariableInstruction); ok && w.LValue() != nil {
			stores++
		}
	}
	assert.Equal(t, 1, stores, "the incremented value is stored back")
}

func TestNamedArgumentsLowerInParameterOrder(t *testing.T) {
	lowered, trace := lower(t, `
fun g(a: Int, b: Int) {
    println(a + b)
}

fun f() {
    g(b = 2, a = 1)
}`)
	assert.Empty(t, trace.Diagnostics())
	require.Len(t, lowered, 2)

	f := lowered[1]
	indexOfConstant := func(text string) int {
		for idx, instr := range f.Instructions() {
			if c, ok := instr.(*pseudocode.ConstantInstruction); ok {
				if lit, ok := c.GetElement().(*ast.Literal); ok && lit.Value == text {
					return idx
				}
			}
		}
		return -1
	}
	first, second := indexOfConstant("1"), indexOfConstant("2")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second, "arguments follow parameter declaration order, not call-site order")
}

func TestStringTemplateCollectsEntryValues(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(x: Int) {
    println("count: $x, twice: ${x + x}")
}`)

	var template *pseudocode.StringTemplateInstruction
	for _, instr := range p.Instructions() {
		if st, ok := instr.(*pseudocode.StringTemplateInstruction); ok {
			template = st
		}
	}
	require.NotNil(t, template)
	assert.Len(t, template.GetInputs(), 2, "only expression entries contribute values")
}

func TestNothingCallRoutesToErrorExit(t *testing.T) {
	p, _ := lowerOne(t, `
fun f() {
    error("boom")
    println("after")
}`)

	var errorJump bool
	for _, instr := range p.Instructions() {
		if j, ok := instr.(*pseudocode.UnconditionalJumpInstruction); ok && j.OnError() {
			errorJump = true
		}
	}
	assert.True(t, errorJump, "control leaves through the error exit after a diverging call")
}

func TestLocalFunctionGetsOwnPseudocode(t *testing.T) {
	p, trace := lowerOne(t, `
fun f() {
    fun g() {
        println("inner")
    }
    g()
}`)
	assert.Empty(t, trace.Diagnostics())

	require.Len(t, p.LocalPseudocodes(), 1)
	inner := p.LocalPseudocodes()[0]
	assert.Len(t, callsNamed(inner, "println"), 1)
	assert.Empty(t, callsNamed(p, "println"), "the inner body does not leak into the outer flow")
}

func TestLambdaArgumentGetsOwnPseudocode(t *testing.T) {
	p, _ := lowerOne(t, `
fun f() {
    repeat(3) {
        println("tick")
    }
}`)

	require.Len(t, p.LocalPseudocodes(), 1)
	assert.Len(t, callsNamed(p.LocalPseudocodes()[0], "println"), 1)
}

func TestUnresolvedCallKeepsArgumentsInFlow(t *testing.T) {
	p, trace := lowerOne(t, `
fun f(x: Int) {
    mystery(x)
}`)
	assert.Contains(t, diagnosticCodes(trace), errors.ErrorUnresolvedCall)

	var unresolved *pseudocode.MagicInstruction
	for _, instr := range p.Instructions() {
		if m, ok := instr.(*pseudocode.MagicInstruction); ok && m.Kind() == pseudocode.UnresolvedCallMagic {
			unresolved = m
		}
	}
	require.NotNil(t, unresolved)
	assert.NotEmpty(t, unresolved.GetInputs(), "argument values still feed the synthetic result")
	assert.Len(t, readsOf(p, "x"), 1)
}

func TestQualifiedCallLowersReceiverFirst(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(s: Int) {
    s.twice()
}`)

	instructions := p.Instructions()
	readIdx, callIdx := -1, -1
	for idx, instr := range instructions {
		switch i := instr.(type) {
		case *pseudocode.ReadVariableInstruction:
			if i.VariableName() == "s" {
				readIdx = idx
			}
		case *pseudocode.CallInstruction:
			if i.FunctionName() == "twice" {
				callIdx = idx
			}
		}
	}
	require.GreaterOrEqual(t, readIdx, 0)
	require.GreaterOrEqual(t, callIdx, 0)
	assert.Less(t, readIdx, callIdx)
}

func TestAllLabelsResolveIntoFinalInstructions(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(xs: Int) {
    for (x in xs) {
        if (x == 0) continue
        while (x > 0) {
            break
        }
    }
    try {
        println("a")
    } catch (e: Exception) {
        println("b")
    } finally {
        println("c")
    }
}`)

	count := len(p.Instructions())
	for _, l := range p.Labels() {
		assert.GreaterOrEqualf(t, l.TargetIndex(), 0, "label %s must be bound", l)
		assert.LessOrEqualf(t, l.TargetIndex(), count, "label %s must point into the instruction list", l)
	}
}

func TestDefaultParameterValueIsLowered(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(x: Int = 42) {
    println(x)
}`)

	var constants int
	for _, instr := range p.Instructions() {
		if c, ok := instr.(*pseudocode.ConstantInstruction); ok {
			if lit, ok := c.GetElement().(*ast.Literal); ok && lit.Value == "42" {
				constants++
			}
		}
	}
	assert.Equal(t, 1, constants, "the default value is part of the subroutine's flow")
}

func TestObjectLiteralBodyIsIndependent(t *testing.T) {
	p, _ := lowerOne(t, `
fun f() {
    val o = object {
        val x = 1
    }
    println(o)
}`)

	require.Len(t, p.LocalPseudocodes(), 1)

	var magic bool
	for _, instr := range p.Instructions() {
		if m, ok := instr.(*pseudocode.MagicInstruction); ok && m.Kind() == pseudocode.AnonymousObjectMagic {
			magic = true
		}
	}
	assert.True(t, magic, "the literal produces an instance value in the outer flow")
}

func TestMultiDeclarationComponentCalls(t *testing.T) {
	p, _ := lowerOne(t, `
fun f(pair: Int) {
    val (a, b) = pair
}`)

	assert.Len(t, callsNamed(p, "component1"), 1)
	assert.Len(t, callsNamed(p, "component2"), 1)

	var entryWrites int
	for _, instr := range p.Instructions() {
		if w, ok := instr.(*pseudocode.WriteVariableInstruction); ok {
			if _, ok := w.GetElement().(*ast.MultiDeclarationEntry); ok {
				entryWrites++
			}
		}
	}
	assert.Equal(t, 2, entryWrites, "each destructuring entry is written once")
}

func TestParameterGetsInitialWrite(t *testing.T) {
	p, trace := lowerOne(t, `
fun f(a: Int, b: Int = 7) {
    println(a + b)
}`)
	assert.Empty(t, trace.Diagnostics())

	var declares, writes int
	declB, defaultValue := -1, -1
	for idx, instr := range p.Instructions() {
		switch i := instr.(type) {
		case *pseudocode.DeclareInstruction:
			if i.IsParameter() {
				declares++
				if prm, ok := i.GetElement().(*ast.Parameter); ok && prm.Name == "b" {
					declB = idx
				}
			}
		case *pseudocode.WriteVariableInstruction:
			writes++
		case *pseudocode.ConstantInstruction:
			if lit, ok := i.GetElement().(*ast.Literal); ok && lit.Value == "7" {
				defaultValue = idx
			}
		}
	}
	assert.Equal(t, 2, declares)
	assert.Equal(t, 2, writes, "each parameter is written its entry value")
	require.GreaterOrEqual(t, declB, 0)
	require.GreaterOrEqual(t, defaultValue, 0)
	assert.Less(t, declB, defaultValue, "the parameter is declared before its default value is lowered")
}

func TestWhenExpressionWithoutElseIsReported(t *testing.T) {
	_, trace := lowerOne(t, `
fun f(x: Int): Int {
    val r = when (x) {
        0 -> 1
        1 -> 2
    }
    return r
}`)
	assert.Contains(t, diagnosticCodes(trace), errors.ErrorNoElseInWhen)
}

func TestWhenStatementWithoutElseIsAllowed(t *testing.T) {
	_, trace := lowerOne(t, `
fun f(x: Int) {
    when (x) {
        0 -> println("zero")
    }
}`)
	assert.NotContains(t, diagnosticCodes(trace), errors.ErrorNoElseInWhen)
}

func TestLabeledReturnAcrossLambdaBoundary(t *testing.T) {
	p, trace := lowerOne(t, `
fun f() {
    val outer = here@ {
        val inner = {
            return@here
        }
        println(inner)
    }
    println(outer)
}`)
	assert.Contains(t, diagnosticCodes(trace), errors.ErrorJumpCrossesFunctionBoundary)

	require.Len(t, p.LocalPseudocodes(), 1)
	outerLambda := p.LocalPseudocodes()[0]
	require.Len(t, outerLambda.LocalPseudocodes(), 1)
	inner := outerLambda.LocalPseudocodes()[0]

	var returns int
	for _, instr := range inner.Instructions() {
		if _, ok := instr.(*pseudocode.ReturnNoValueInstruction); ok {
			returns++
		}
	}
	assert.Equal(t, 1, returns, "the transfer is still emitted")
}

func TestLabeledReturnFromOwnLambdaIsAllowed(t *testing.T) {
	_, trace := lowerOne(t, `
fun f() {
    val block = here@ {
        return@here
    }
    println(block)
}`)
	assert.NotContains(t, diagnosticCodes(trace), errors.ErrorJumpCrossesFunctionBoundary)
}

func TestPropertyDelegateIsLowered(t *testing.T) {
	p, trace := lowerOne(t, `
fun f(source: Int) {
    val x by source
    println(x)
}`)
	assert.Empty(t, trace.Diagnostics())
	assert.Len(t, readsOf(p, "source"), 1, "the delegate expression joins the flow")
}

func TestUnreachableStatementAfterReturn(t *testing.T) {
	_, trace := lowerOne(t, `
fun f(): Int {
    return 1
    println("after")
}`)
	assert.Contains(t, diagnosticCodes(trace), errors.WarningUnreachableCode)
}

func TestUnreachableStatementAfterDivergingCall(t *testing.T) {
	_, trace := lowerOne(t, `
fun f() {
    error("boom")
    println("after")
}`)
	assert.Contains(t, diagnosticCodes(trace), errors.WarningUnreachableCode)
}

func TestFinallyReplayIsNotFlaggedUnreachable(t *testing.T) {
	_, trace := lowerOne(t, `
fun f(c: Boolean) {
    try {
        if (c) return
        println("work")
    } finally {
        println("done")
    }
}`)
	assert.Empty(t, trace.Diagnostics(), "try/finally plumbing must not look like dead code")
}

func TestBreakOutOfTryFinallyDoesNotReplay(t *testing.T) {
	p, trace := lowerOne(t, `
fun f() {
    while (true) {
        try {
            break
        } finally {
            println("done")
        }
    }
}`)
	assert.Empty(t, trace.Diagnostics())
	assert.Len(t, callsNamed(p, "println"), 2,
		"the finally body materializes on the try's own exits only; a break adds no replay")
}

func TestNotNullAssertionUsesPredefinedOperation(t *testing.T) {
	p, _ := lowerOne(t, `fun f(x: Int) = x!!`)

	var found bool
	for _, instr := range p.Instructions() {
		if op, ok := instr.(*pseudocode.PredefinedOperationInstruction); ok {
			if op.Operation() == pseudocode.NotNullAssertionOperation {
				found = true
			}
		}
	}
	assert.True(t, found)
}
