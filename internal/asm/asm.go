package asm

// Register identifies one of the 32 unprivileged RISC-V integer registers.
// The ordinal doubles as a stable vector index for register-file analyses.
type Register uint8

const (
	Zero Register = iota
	RA
	SP
	GP
	TP
	T0
	T1
	T2
	S0
	S1
	A0
	A1
	A2
	A3
	A4
	A5
	A6
	A7
	S2
	S3
	S4
	S5
	S6
	S7
	S8
	S9
	S10
	S11
	T3
	T4
	T5
	T6
)

// NumRegisters is the size of the integer register file.
const NumRegisters = 32

var registerNames = [NumRegisters]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

var registersByName = func() map[string]Register {
	m := make(map[string]Register, NumRegisters)
	for i, name := range registerNames {
		m[name] = Register(i)
	}
	// fp is the ABI alias for s0
	m["fp"] = S0
	return m
}()

func (r Register) String() string {
	if int(r) < len(registerNames) {
		return registerNames[r]
	}
	return "reg?"
}

// RegisterByName resolves an ABI register name (e.g. "t0", "a5", "fp").
func RegisterByName(name string) (Register, bool) {
	r, ok := registersByName[name]
	return r, ok
}

// Statement is an assembler source statement: an instruction or a directive.
type Statement interface {
	stmtNode()
	StatementLabels() []string
	String() string
}

// Instruction is a parsed assembly instruction.
//
// Register operands are stored positionally in R1..R3, mirroring the
// operand order of the textual form. When the opcode is write-classified,
// R1 is the destination register.
type Instruction struct {
	Opcode    string
	Labels    []string
	R1        *Register
	R2        *Register
	R3        *Register
	Immediate *Immediate
}

func (*Instruction) stmtNode() {}

// StatementLabels returns the labels marking this instruction.
func (i *Instruction) StatementLabels() []string { return i.Labels }

// WritesRegister reports whether this instruction writes its destination
// register, per the opcode classification table.
func (i *Instruction) WritesRegister() bool {
	op, ok := Opcodes[i.Opcode]
	return ok && op.Writes && i.R1 != nil
}

// DestRegister returns the destination register for write-classified
// instructions. The second return is false for read-only opcodes.
func (i *Instruction) DestRegister() (Register, bool) {
	if !i.WritesRegister() {
		return 0, false
	}
	return *i.R1, true
}

// Directive is a parsed assembler directive.
type Directive struct {
	Name   string
	Args   []string
	Labels []string
}

func (*Directive) stmtNode() {}

// StatementLabels returns the labels marking this directive.
func (d *Directive) StatementLabels() []string { return d.Labels }

// Line pairs a statement with its global line number.
type Line struct {
	Number    int
	Statement Statement
}

// Block is an ordered sequence of statements starting at a known base line.
type Block struct {
	Base       int
	Statements []Statement
}

// Lines numbers every statement consecutively starting at the block's base.
func (b *Block) Lines() []Line {
	lines := make([]Line, len(b.Statements))
	for i, stmt := range b.Statements {
		lines[i] = Line{Number: b.Base + i, Statement: stmt}
	}
	return lines
}

// InstructionLines returns only the instruction-carrying lines, keeping the
// line numbers they hold in the full statement sequence. Directives occupy
// line numbers but have no register effects.
func (b *Block) InstructionLines() []Line {
	var lines []Line
	for _, line := range b.Lines() {
		if _, ok := line.Statement.(*Instruction); ok {
			lines = append(lines, line)
		}
	}
	return lines
}
