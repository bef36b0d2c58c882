package pseudocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelsStartUnbound(t *testing.T) {
	p := New(nil)
	l := p.NewLabel("loop entry point")
	assert.False(t, l.bound())
	assert.Equal(t, "loop entry point", l.Name())
}

func TestBindLabelTwicePanics(t *testing.T) {
	p := New(nil)
	l := p.NewLabel("once")
	p.BindLabel(l)
	assert.Panics(t, func() { p.BindLabel(l) })
}

func TestBindForeignLabelPanics(t *testing.T) {
	p := New(nil)
	other := New(nil)
	l := other.NewLabel("foreign")
	assert.Panics(t, func() { p.BindLabel(l) })
}

func TestValueProducedTwicePanics(t *testing.T) {
	p := New(nil)
	v := p.NewValue(nil)
	p.Add(NewConstantInstruction(nil, v))
	assert.Panics(t, func() {
		p.Add(NewLoadUnitInstruction(nil, v))
	})
}

func TestAddRecordsProducer(t *testing.T) {
	p := New(nil)
	v := p.NewValue(nil)
	instr := NewConstantInstruction(nil, v)
	p.Add(instr)
	assert.Same(t, Instruction(instr), v.CreatedAt())
}

func TestPostProcessPanicsOnUnboundLabel(t *testing.T) {
	p := New(nil)
	target := p.NewLabel("never bound")
	p.Add(NewUnconditionalJumpInstruction(nil, target, false))
	bindExits(p)
	assert.Panics(t, func() { p.PostProcess() })
}

func TestInstructionsBeforePostProcessPanics(t *testing.T) {
	p := New(nil)
	assert.Panics(t, func() { p.Instructions() })
}

func TestPostProcessBindsLabelsToFinalIndices(t *testing.T) {
	p := New(nil)
	p.Add(NewSubroutineEnterInstruction(nil))
	l := p.NewLabel("after enter")
	p.BindLabel(l)
	p.Add(NewMarkInstruction(nil))
	bindExits(p)
	p.PostProcess()

	assert.Equal(t, 1, l.TargetIndex())
	assert.Contains(t, p.LabelsAt(1), l)
}

func TestRepeatExpansionCopiesRangeWithoutDeclarations(t *testing.T) {
	p := New(nil)

	start := p.NewLabel("finally start")
	p.BindLabel(start)
	p.Add(NewDeclareInstruction(nil, false))
	p.Add(NewMarkInstruction(nil))
	p.Add(NewMarkInstruction(nil))
	finish := p.NewLabel("finally finish")
	p.BindLabel(finish)

	p.Add(NewRepeatInstruction(nil, start, finish))
	bindExits(p)
	p.PostProcess()

	var marks, declares, repeats int
	for _, instr := range p.Instructions() {
		switch instr.(type) {
		case *MarkInstruction:
			marks++
		case *DeclareInstruction:
			declares++
		case *RepeatInstruction:
			repeats++
		}
	}
	assert.Equal(t, 4, marks, "the marked range is copied once more")
	assert.Equal(t, 1, declares, "declarations are not duplicated by the copy")
	assert.Zero(t, repeats, "the marker itself disappears")
}

func TestLocalDeclarationRegistersNestedPseudocode(t *testing.T) {
	p := New(nil)
	inner := New(nil)
	p.Add(NewLocalDeclarationInstruction(nil, inner))
	bindExits(p)
	p.PostProcess()

	require.Len(t, p.LocalPseudocodes(), 1)
	assert.Same(t, inner, p.LocalPseudocodes()[0])
}

func TestAddAfterPostProcessPanics(t *testing.T) {
	p := New(nil)
	bindExits(p)
	p.PostProcess()
	assert.Panics(t, func() { p.Add(NewMarkInstruction(nil)) })
}

func TestNilValueStringIsSafe(t *testing.T) {
	var v *PseudoValue
	assert.Equal(t, "<nothing>", v.String())
}

// bindExits closes the standard exit labels so PostProcess accepts the
// pseudocode.
func bindExits(p *Pseudocode) {
	p.BindLabel(p.ExitLabel())
	p.BindLabel(p.ErrorLabel())
	p.BindLabel(p.SinkLabel())
}
