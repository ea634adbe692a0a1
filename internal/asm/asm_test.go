package asm

import "testing"

func TestRegisterOrdinals(t *testing.T) {
	if NumRegisters != 32 {
		t.Fatalf("expected 32 registers, got %d", NumRegisters)
	}
	if Zero != 0 {
		t.Errorf("zero must have ordinal 0, got %d", Zero)
	}
	if T6 != 31 {
		t.Errorf("t6 must have ordinal 31, got %d", T6)
	}

	seen := make(map[string]bool)
	for r := 0; r < NumRegisters; r++ {
		name := Register(r).String()
		if seen[name] {
			t.Errorf("duplicate register name %q", name)
		}
		seen[name] = true

		back, ok := RegisterByName(name)
		if !ok || back != Register(r) {
			t.Errorf("register %q does not round-trip: got %v, %v", name, back, ok)
		}
	}
}

func TestRegisterAliases(t *testing.T) {
	r, ok := RegisterByName("fp")
	if !ok || r != S0 {
		t.Fatalf("fp must resolve to s0, got %v, %v", r, ok)
	}
	if _, ok := RegisterByName("x5"); ok {
		t.Errorf("numeric register names are not supported")
	}
}

func TestOpcodeClassification(t *testing.T) {
	tests := []struct {
		opcode    string
		registers int
		writes    bool
	}{
		{"lui", 1, true},
		{"addi", 2, true},
		{"add", 3, true},
		{"lw", 2, true},
		{"sw", 2, false},
		{"beq", 2, false},
		{"jal", 1, true},
		{"nop", 0, false},
		{"amoswap.w", 3, true},
	}

	for _, tt := range tests {
		info, ok := Opcodes[tt.opcode]
		if !ok {
			t.Errorf("opcode %q missing from table", tt.opcode)
			continue
		}
		if info.Registers != tt.registers || info.Writes != tt.writes {
			t.Errorf("opcode %q classified as %+v, want {%d %v}",
				tt.opcode, info, tt.registers, tt.writes)
		}
	}
}

func TestImmediateWidths(t *testing.T) {
	tests := []struct {
		opcode string
		width  int
		ok     bool
	}{
		{"addi", 12, true},
		{"beq", 12, true},
		{"lui", 20, true},
		{"li", 32, true},
		{"add", 0, false},
		{"bogus", 0, false},
	}

	for _, tt := range tests {
		width, ok := ImmediateWidth(tt.opcode)
		if width != tt.width || ok != tt.ok {
			t.Errorf("ImmediateWidth(%q) = %d, %v; want %d, %v",
				tt.opcode, width, ok, tt.width, tt.ok)
		}
	}
}

func TestImmediateMaskingAndSign(t *testing.T) {
	tests := []struct {
		width int
		value int64
		want  int64
	}{
		{12, 4, 4},
		{12, -4, -4},
		{12, 2047, 2047},
		{12, -2048, -2048},
		{12, 4095, -1},   // all ones at 12 bits reads back as -1
		{12, 4096, 0},    // bit 12 is cut off
		{20, 524288, -524288},
		{32, -1, -1},
	}

	for _, tt := range tests {
		im := NewImmediate(tt.width, tt.value)
		if got := im.Int(); got != tt.want {
			t.Errorf("NewImmediate(%d, %d).Int() = %d, want %d",
				tt.width, tt.value, got, tt.want)
		}
		if im.Symbolic() {
			t.Errorf("literal immediate reported as symbolic")
		}
	}
}

func TestSymbolicImmediate(t *testing.T) {
	im, err := NewSymbolicImmediate(12, ".L3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !im.Symbolic() || im.Symbol() != ".L3" {
		t.Errorf("symbolic immediate lost its symbol: %+v", im)
	}
	if im.String() != ".L3" {
		t.Errorf("String() = %q, want %q", im.String(), ".L3")
	}

	if _, err := NewSymbolicImmediate(12, ""); err == nil {
		t.Errorf("expected error for empty symbol")
	}
}

func TestBlockLines(t *testing.T) {
	block := &Block{
		Base: 10,
		Statements: []Statement{
			&Instruction{Opcode: "nop"},
			&Directive{Name: ".align", Args: []string{"2"}},
			&Instruction{Opcode: "nop"},
		},
	}

	lines := block.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if line.Number != 10+i {
			t.Errorf("line %d numbered %d, want %d", i, line.Number, 10+i)
		}
	}

	// Directives occupy line numbers but drop out of the instruction view.
	instrs := block.InstructionLines()
	if len(instrs) != 2 {
		t.Fatalf("expected 2 instruction lines, got %d", len(instrs))
	}
	if instrs[0].Number != 10 || instrs[1].Number != 12 {
		t.Errorf("instruction lines numbered %d, %d; want 10, 12",
			instrs[0].Number, instrs[1].Number)
	}
}
