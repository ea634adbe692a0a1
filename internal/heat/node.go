package heat

import (
	"github.com/rvheat/rvheat/internal/asm"
	"github.com/rvheat/rvheat/internal/cfg"
)

// NodeHeat calculates the heat map fragment for a single CFG node, starting
// from the given incoming register-file heat.
//
// External nodes yield an empty fragment and an all-cold final vector no
// matter the seed: unknown code must not be assumed to preserve any
// register's recency. Concrete nodes fold the block's instructions in line
// order, aging every register by one step and then refreshing the
// destination register of write-classified instructions, snapshotting the
// vector after each instruction.
//
// The returned final vector is the register file's state after the last
// instruction, or the seed itself for an empty block.
func NodeHeat(node cfg.Node, maxHeat int, initial Vector) (Map, Vector) {
	block, ok := node.(cfg.BlockNode)
	if !ok {
		return Map{}, Vector{}
	}

	current := initial
	fragment := make(Map)
	for _, line := range block.Block.InstructionLines() {
		current.Decay()
		instr := line.Statement.(*asm.Instruction)
		if rd, writes := instr.DestRegister(); writes {
			current.Refresh(rd, maxHeat)
		}
		fragment[line.Number] = current
	}

	return fragment, current
}
