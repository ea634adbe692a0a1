package asm

// OpcodeInfo classifies an opcode by the number of register operands it
// takes and whether it writes its first register operand.
type OpcodeInfo struct {
	Registers int
	Writes    bool
}

// Opcodes classifies the RV64IMA opcodes (plus the common pseudo-ops) the
// analyzer understands. Writes means the first register operand is the
// instruction's destination.
var Opcodes = map[string]OpcodeInfo{
	"lui": {1, true}, "auipc": {1, true}, "jal": {1, true}, "jalr": {2, true},
	"lb": {2, true}, "lh": {2, true}, "lw": {2, true}, "lbu": {2, true},
	"lhu": {2, true}, "addi": {2, true}, "slti": {2, true}, "sltiu": {2, true},
	"xori": {2, true}, "ori": {2, true}, "andi": {2, true}, "slli": {2, true},
	"srli": {2, true}, "srai": {2, true}, "lwu": {2, true}, "ld": {2, true},
	"addiw": {2, true}, "slliw": {2, true}, "srliw": {2, true},
	"sext.w": {2, true}, "mv": {2, true}, "sraiw": {2, true},
	"lr.w": {2, true}, "lr.d": {2, true},
	"add": {3, true}, "sub": {3, true}, "sll": {3, true}, "slt": {3, true},
	"sltu": {3, true}, "xor": {3, true}, "srl": {3, true}, "sra": {3, true},
	"or": {3, true}, "and": {3, true}, "addw": {3, true}, "subw": {3, true},
	"sllw": {3, true}, "srlw": {3, true}, "sraw": {3, true},
	"mul": {3, true}, "mulh": {3, true}, "mulhsu": {3, true}, "mulhu": {3, true},
	"div": {3, true}, "divu": {3, true}, "rem": {3, true}, "remu": {3, true},
	"mulw": {3, true}, "divw": {3, true}, "divuw": {3, true},
	"remw": {3, true}, "remuw": {3, true},
	"sc.w": {3, true}, "amoswap.w": {3, true}, "amoadd.w": {3, true},
	"amoxor.w": {3, true}, "amoor.w": {3, true}, "amoand.w": {3, true},
	"amomin.w": {3, true}, "amomax.w": {3, true}, "amominu.w": {3, true},
	"amomaxu.w": {3, true},
	"sc.d": {3, true}, "amoswap.d": {3, true}, "amoadd.d": {3, true},
	"amoxor.d": {3, true}, "amoor.d": {3, true}, "amoand.d": {3, true},
	"amomin.d": {3, true}, "amomax.d": {3, true}, "amominu.d": {3, true},
	"amomaxu.d": {3, true},
	"li": {1, true},
	"jr": {1, false}, "j": {0, false},
	"beq": {2, false}, "bne": {2, false}, "blt": {2, false}, "bge": {2, false},
	"ble": {2, false}, "bltu": {2, false}, "bgeu": {2, false},
	"bgtu": {2, false}, "bleu": {2, false},
	"sb": {2, false}, "sh": {2, false}, "sw": {2, false}, "sd": {2, false},
	"beqz": {1, false}, "bnez": {1, false}, "blez": {1, false},
	"bgez": {1, false},
	"nop": {0, false}, "call": {0, false},
}

// Families maps each opcode to its encoding format family. The family
// determines the width of the instruction's immediate field, if any.
var Families = map[string]string{
	"add": "r", "addw": "r", "and": "r", "or": "r", "sext.w": "sext",
	"sll": "r", "sllw": "r", "sub": "r", "subw": "r", "xor": "r",
	"xori": "i", "jr": "jr", "j": "j", "beqz": "bz", "bnez": "bz",
	"nop": "nop", "blez": "bz", "beq": "b", "bge": "b", "bgeu": "b",
	"blt": "b", "ble": "b", "bltu": "b", "bne": "b", "bgt": "b",
	"bgez": "bz", "bltz": "bz", "bleu": "b", "addi": "i", "addiw": "i",
	"andi": "i", "auipc": "u", "jal": "j", "jalr": "jr", "ori": "i",
	"slli": "i", "slliw": "i", "slt": "r", "slti": "i", "sltiu": "i",
	"sltu": "r", "sra": "r", "sraw": "r", "srai": "i", "sraiw": "i",
	"srl": "r", "srlw": "r", "srli": "i", "srliw": "i",
	"mul": "r", "mulh": "r", "mulhsu": "r", "mulhu": "r",
	"div": "r", "divu": "r", "rem": "r", "remu": "r",
	"mulw": "r", "divw": "r", "divuw": "r", "remw": "r", "remuw": "r",
	"lr.w": "al", "lb": "i", "lbu": "s", "lh": "s", "lui": "u", "lw": "s",
	"sb": "s", "sh": "s", "sw": "s", "call": "j", "sd": "s",
	"mv": "_2arg", "ld": "s", "li": "li", "bgtu": "b", "lwu": "s",
	"lhu": "s", "not": "_2arg", "negw": "_2arg",
	"lr.d": "al", "sc.w": "as", "sc.d": "as",
	"amoswap.w": "as", "amoadd.w": "as", "amoxor.w": "as", "amoor.w": "as",
	"amoand.w": "as", "amomin.w": "as", "amomax.w": "as", "amominu.w": "as",
	"amomaxu.w": "as",
	"amoswap.d": "as", "amoadd.d": "as", "amoxor.d": "as", "amoand.d": "as",
	"amomin.d": "as", "amomax.d": "as", "amominu.d": "as", "amomaxu.d": "as",
	"bgtz": "bz", "snez": "snez",
}

// ImmediateWidths gives the immediate field size in bits for the families
// that carry an immediate.
var ImmediateWidths = map[string]int{
	"i":  12,
	"s":  12,
	"b":  12,
	"bz": 12,
	"u":  20,
	"j":  20,
	"li": 32,
}

// ImmediateWidth returns the immediate field width for an opcode, or
// false when the opcode's family carries no immediate.
func ImmediateWidth(opcode string) (int, bool) {
	family, ok := Families[opcode]
	if !ok {
		return 0, false
	}
	width, ok := ImmediateWidths[family]
	return width, ok
}
