package asm

import (
	"fmt"
	"strings"
)

// Opcodes whose immediate is printed in the memory-operand form imm(base).
var memoryForm = map[string]bool{
	"lb": true, "lh": true, "lw": true, "lbu": true, "lhu": true,
	"lwu": true, "ld": true,
	"sb": true, "sh": true, "sw": true, "sd": true,
}

func labelPrefix(labels []string) string {
	var b strings.Builder
	for _, lab := range labels {
		b.WriteString(lab)
		b.WriteString(": ")
	}
	return b.String()
}

func (i *Instruction) String() string {
	prefix := labelPrefix(i.Labels)

	if memoryForm[i.Opcode] && i.Immediate != nil && i.R1 != nil && i.R2 != nil {
		return fmt.Sprintf("%s%s %s, %s(%s)", prefix, i.Opcode, i.R1, i.Immediate, i.R2)
	}

	var operands []string
	for _, r := range []*Register{i.R1, i.R2, i.R3} {
		if r != nil {
			operands = append(operands, r.String())
		}
	}
	if i.Immediate != nil {
		operands = append(operands, i.Immediate.String())
	}

	if len(operands) == 0 {
		return prefix + i.Opcode
	}
	return fmt.Sprintf("%s%s %s", prefix, i.Opcode, strings.Join(operands, ", "))
}

func (d *Directive) String() string {
	prefix := labelPrefix(d.Labels)
	if len(d.Args) == 0 {
		return prefix + d.Name
	}
	return fmt.Sprintf("%s%s %s", prefix, d.Name, strings.Join(d.Args, ", "))
}
