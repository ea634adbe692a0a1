package asm

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseStatement parses a single assembler source line into a Statement.
//
// The accepted grammar is the subset emitted by GCC for RV64: optional
// `label:` prefixes, directives starting with a dot, and instructions with
// comma-separated operands. Memory operands use the usual `offset(base)`
// form. Anything after a `#` is a comment.
func ParseStatement(text string) (Statement, error) {
	if idx := strings.Index(text, "#"); idx >= 0 {
		text = text[:idx]
	}

	fields := strings.Fields(text)

	var labels []string
	for len(fields) > 0 && strings.HasSuffix(fields[0], ":") {
		labels = append(labels, strings.TrimSuffix(fields[0], ":"))
		fields = fields[1:]
	}

	if len(fields) == 0 {
		return nil, fmt.Errorf("no statement in %q", strings.TrimSpace(text))
	}

	if strings.HasPrefix(fields[0], ".") {
		return parseDirective(fields, labels), nil
	}
	return parseInstruction(fields, labels)
}

func parseDirective(fields []string, labels []string) *Directive {
	d := &Directive{Name: fields[0], Labels: labels}
	rest := strings.Join(fields[1:], " ")
	if rest != "" {
		for _, arg := range strings.Split(rest, ",") {
			d.Args = append(d.Args, strings.TrimSpace(arg))
		}
	}
	return d
}

func parseInstruction(fields []string, labels []string) (*Instruction, error) {
	opcode := strings.ToLower(fields[0])
	info, ok := Opcodes[opcode]
	if !ok {
		return nil, fmt.Errorf("unknown opcode %q", opcode)
	}

	instr := &Instruction{Opcode: opcode, Labels: labels}

	var regs []Register
	operands := strings.Join(fields[1:], " ")
	if operands != "" {
		for _, op := range strings.Split(operands, ",") {
			op = strings.TrimSpace(op)
			if op == "" {
				return nil, fmt.Errorf("empty operand in %q instruction", opcode)
			}

			// Memory operand: offset(base)
			if open := strings.Index(op, "("); open >= 0 && strings.HasSuffix(op, ")") {
				base := strings.TrimSpace(op[open+1 : len(op)-1])
				reg, ok := RegisterByName(base)
				if !ok {
					return nil, fmt.Errorf("unknown base register %q", base)
				}
				if err := setImmediate(instr, strings.TrimSpace(op[:open])); err != nil {
					return nil, err
				}
				regs = append(regs, reg)
				continue
			}

			if reg, ok := RegisterByName(op); ok {
				regs = append(regs, reg)
				continue
			}

			if err := setImmediate(instr, op); err != nil {
				return nil, err
			}
		}
	}

	if len(regs) != info.Registers {
		return nil, fmt.Errorf("opcode %q expects %d register operands, got %d",
			opcode, info.Registers, len(regs))
	}

	ptrs := []**Register{&instr.R1, &instr.R2, &instr.R3}
	for i, reg := range regs {
		r := reg
		*ptrs[i] = &r
	}

	return instr, nil
}

// setImmediate installs the instruction's immediate from its textual form,
// picking the field width from the opcode's format family.
func setImmediate(instr *Instruction, text string) error {
	if instr.Immediate != nil {
		return fmt.Errorf("opcode %q has more than one immediate operand", instr.Opcode)
	}
	width, ok := ImmediateWidth(instr.Opcode)
	if !ok {
		return fmt.Errorf("opcode %q takes no immediate, got %q", instr.Opcode, text)
	}

	if value, err := strconv.ParseInt(text, 0, 64); err == nil {
		im := NewImmediate(width, value)
		instr.Immediate = &im
		return nil
	}

	im, err := NewSymbolicImmediate(width, text)
	if err != nil {
		return err
	}
	instr.Immediate = &im
	return nil
}
