package cfg

import (
	"github.com/micromingle/kotlin/internal/ast"
	"github.com/micromingle/kotlin/internal/cfg/pseudocode"
	"github.com/micromingle/kotlin/internal/errors"
	"github.com/micromingle/kotlin/internal/resolve"
)

// reportUnreachable warns about source elements no execution path
// reaches. An element is reported only when none of its instructions is
// reachable, which keeps the synthetic plumbing of try/finally replays
// and loop exits quiet: those share elements with reachable
// instructions. One warning covers each unreachable run.
func reportUnreachable(p *pseudocode.Pseudocode, trace *resolve.Trace) {
	instructions := p.Instructions()
	reachable := reachableInstructions(p)

	elementReached := make(map[ast.Node]bool)
	for idx, instr := range instructions {
		if e := instr.GetElement(); e != nil && reachable[idx] {
			elementReached[e] = true
		}
	}

	runReported := false
	for idx, instr := range instructions {
		if reachable[idx] {
			runReported = false
			continue
		}
		if runReported {
			continue
		}
		e := instr.GetElement()
		if e == nil || e == p.Element() || elementReached[e] {
			continue
		}
		trace.Report(errors.UnreachableCode(e.NodePos()))
		runReported = true
	}

	for _, local := range p.LocalPseudocodes() {
		reportUnreachable(local, trace)
	}
}

// reachableInstructions walks the jump structure from the subroutine
// entry and marks every instruction an execution can visit.
func reachableInstructions(p *pseudocode.Pseudocode) []bool {
	instructions := p.Instructions()
	reachable := make([]bool, len(instructions))
	if len(instructions) == 0 {
		return reachable
	}

	work := []int{0}
	for len(work) > 0 {
		idx := work[len(work)-1]
		work = work[:len(work)-1]
		if idx < 0 || idx >= len(instructions) || reachable[idx] {
			continue
		}
		reachable[idx] = true
		work = append(work, successorsOf(p, instructions[idx], idx)...)
	}
	return reachable
}

func successorsOf(p *pseudocode.Pseudocode, instr pseudocode.Instruction, idx int) []int {
	switch i := instr.(type) {
	case *pseudocode.UnconditionalJumpInstruction:
		return []int{i.Target().TargetIndex()}
	case *pseudocode.ReturnValueInstruction:
		return []int{p.ExitLabel().TargetIndex()}
	case *pseudocode.ReturnNoValueInstruction:
		return []int{p.ExitLabel().TargetIndex()}
	case *pseudocode.ThrowInstruction:
		return []int{p.ErrorLabel().TargetIndex()}
	case pseudocode.JumpingInstruction:
		out := []int{idx + 1}
		for _, l := range i.JumpTargets() {
			out = append(out, l.TargetIndex())
		}
		return out
	default:
		return []int{idx + 1}
	}
}
