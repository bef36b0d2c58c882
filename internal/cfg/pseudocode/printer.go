package pseudocode

import (
	"fmt"
	"strings"
)

// Print renders a post-processed pseudocode with labels interleaved at
// the positions they resolve to. Nested local pseudocodes are indented
// below their declaration instruction.
func Print(p *Pseudocode) string {
	var sb strings.Builder
	printInto(&sb, p, "")
	return sb.String()
}

func printInto(sb *strings.Builder, p *Pseudocode, indent string) {
	instructions := p.Instructions()
	for idx, instr := range instructions {
		for _, l := range p.LabelsAt(idx) {
			fmt.Fprintf(sb, "%s%s:\n", indent, l)
		}
		fmt.Fprintf(sb, "%s    %s\n", indent, instr)
		if ld, ok := instr.(*LocalDeclarationInstruction); ok {
			printInto(sb, ld.Body(), indent+"    ")
		}
	}
	for _, l := range p.LabelsAt(len(instructions)) {
		fmt.Fprintf(sb, "%s%s:\n", indent, l)
	}
}
