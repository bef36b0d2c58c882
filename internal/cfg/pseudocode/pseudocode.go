package pseudocode

import (
	"fmt"

	"github.com/micromingle/kotlin/internal/ast"
)

// Pseudocode is the lowered body of one subroutine: a flat instruction
// list with bound labels. Local functions inside the body carry their own
// independent Pseudocode, reachable through their declaration
// instructions.
type Pseudocode struct {
	element ast.Node

	raw          []Instruction // as emitted, repeat markers included
	instructions []Instruction // final form, set by PostProcess
	labels       []*Label
	locals       []*Pseudocode

	exitLabel  *Label
	errorLabel *Label
	sinkLabel  *Label

	valueCount    int
	postProcessed bool
}

// New creates an empty pseudocode for a subroutine element.
func New(element ast.Node) *Pseudocode {
	p := &Pseudocode{element: element}
	p.exitLabel = p.NewLabel("exit")
	p.errorLabel = p.NewLabel("error")
	p.sinkLabel = p.NewLabel("sink")
	return p
}

// Element returns the subroutine this pseudocode lowers.
func (p *Pseudocode) Element() ast.Node { return p.element }

// ExitLabel is the target of the normal completion path.
func (p *Pseudocode) ExitLabel() *Label { return p.exitLabel }

// ErrorLabel is the target of the exceptional completion path.
func (p *Pseudocode) ErrorLabel() *Label { return p.errorLabel }

// SinkLabel is the common final point both paths reach.
func (p *Pseudocode) SinkLabel() *Label { return p.sinkLabel }

// NewValue allocates a pseudo-value. element is nil for synthetic values.
func (p *Pseudocode) NewValue(element ast.Node) *PseudoValue {
	v := &PseudoValue{id: p.valueCount, element: element}
	p.valueCount++
	return v
}

// NewLabel allocates an unbound label.
func (p *Pseudocode) NewLabel(name string) *Label {
	l := &Label{name: name, id: len(p.labels), target: -1, pcode: p}
	p.labels = append(p.labels, l)
	return l
}

// BindLabel binds a label to the position of the next added instruction.
// Binding twice is an internal defect.
func (p *Pseudocode) BindLabel(l *Label) {
	if l.pcode != p {
		panic(fmt.Sprintf("pseudocode: label %s bound in a foreign pseudocode", l))
	}
	if l.bound() {
		panic(fmt.Sprintf("pseudocode: label %s bound twice", l))
	}
	l.target = len(p.raw)
}

// Add appends an instruction and records it as the producer of its value.
func (p *Pseudocode) Add(instr Instruction) {
	if p.postProcessed {
		panic("pseudocode: instruction added after post-processing")
	}
	if wv, ok := instr.(InstructionWithValue); ok {
		if v := wv.GetValue(); v != nil {
			if v.createdAt != nil {
				panic(fmt.Sprintf("pseudocode: value %s produced twice", v))
			}
			v.createdAt = instr
		}
	}
	if ld, ok := instr.(*LocalDeclarationInstruction); ok {
		p.locals = append(p.locals, ld.body)
	}
	p.raw = append(p.raw, instr)
}

// Instructions returns the final instruction list. Valid only after
// PostProcess.
func (p *Pseudocode) Instructions() []Instruction {
	if !p.postProcessed {
		panic("pseudocode: instructions requested before post-processing")
	}
	return p.instructions
}

// Labels returns every label of the pseudocode.
func (p *Pseudocode) Labels() []*Label { return p.labels }

// LabelsAt returns labels resolving to the given final instruction index.
func (p *Pseudocode) LabelsAt(index int) []*Label {
	var at []*Label
	for _, l := range p.labels {
		if l.target == index {
			at = append(at, l)
		}
	}
	return at
}

// LocalPseudocodes returns the pseudocodes of nested local declarations.
func (p *Pseudocode) LocalPseudocodes() []*Pseudocode { return p.locals }

// PostProcess finalizes the pseudocode: repeat markers are expanded by
// copying their recorded instruction range (declarations excluded), and
// every label is checked bound and remapped to the final list. An unbound
// label is an internal defect.
func (p *Pseudocode) PostProcess() {
	if p.postProcessed {
		return
	}

	for _, l := range p.labels {
		if !l.bound() {
			panic(fmt.Sprintf("pseudocode: unbound label %s at subroutine exit", l))
		}
	}

	rawToFinal := make([]int, len(p.raw)+1)
	var final []Instruction
	for idx, instr := range p.raw {
		rawToFinal[idx] = len(final)
		final = p.appendExpanded(instr, final)
	}
	rawToFinal[len(p.raw)] = len(final)

	p.instructions = final
	for _, l := range p.labels {
		l.target = rawToFinal[l.target]
	}
	p.postProcessed = true
}

func (p *Pseudocode) appendExpanded(instr Instruction, out []Instruction) []Instruction {
	switch in := instr.(type) {
	case *RepeatInstruction:
		for j := in.start.target; j < in.finish.target; j++ {
			if _, isDecl := p.raw[j].(DeclarationInstruction); isDecl {
				continue
			}
			out = p.appendExpanded(p.raw[j], out)
		}
		return out
	default:
		return append(out, instr)
	}
}
