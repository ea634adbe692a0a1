// Package render formats register heat maps for terminals and machines.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rvheat/rvheat/internal/asm"
	"github.com/rvheat/rvheat/internal/heat"
)

// Heat ramp, cold to hot.
var rampColors = []lipgloss.Color{
	lipgloss.Color("#3B4252"), // cold
	lipgloss.Color("#5E81AC"),
	lipgloss.Color("#88C0D0"),
	lipgloss.Color("#EBCB8B"),
	lipgloss.Color("#D08770"),
	lipgloss.Color("#BF616A"), // hot
}

var lineStyle = lipgloss.NewStyle().Faint(true)

// sortedLines returns the map's line numbers in ascending order.
func sortedLines(m heat.Map) []int {
	lines := make([]int, 0, len(m))
	for line := range m {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// warmRegisters returns the registers that are warm anywhere in the map,
// in ordinal order. Registers that never heat up are omitted from tabular
// output to keep 32-column rows readable.
func warmRegisters(m heat.Map) []asm.Register {
	var warm [asm.NumRegisters]bool
	for _, vector := range m {
		for r, level := range vector {
			if level > 0 {
				warm[r] = true
			}
		}
	}

	var regs []asm.Register
	for r := 0; r < asm.NumRegisters; r++ {
		if warm[r] {
			regs = append(regs, asm.Register(r))
		}
	}
	return regs
}

// Text renders the heat map as an aligned plain-text table, one row per
// instruction line, one column per register that is ever warm.
func Text(m heat.Map) string {
	regs := warmRegisters(m)

	var b strings.Builder
	b.WriteString("line")
	for _, r := range regs {
		fmt.Fprintf(&b, "%6s", r)
	}
	b.WriteByte('\n')

	for _, line := range sortedLines(m) {
		fmt.Fprintf(&b, "%4d", line)
		vector := m[line]
		for _, r := range regs {
			fmt.Fprintf(&b, "%6d", vector[r])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// JSON renders the heat map as a stable JSON document: an array of
// line-ordered objects carrying the register levels by name.
func JSON(m heat.Map) (string, error) {
	type row struct {
		Line int            `json:"line"`
		Heat map[string]int `json:"heat"`
	}

	rows := make([]row, 0, len(m))
	for _, line := range sortedLines(m) {
		vector := m[line]
		levels := make(map[string]int, asm.NumRegisters)
		for r, level := range vector {
			levels[asm.Register(r).String()] = level
		}
		rows = append(rows, row{Line: line, Heat: levels})
	}

	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding heat map: %w", err)
	}
	return string(out), nil
}

// Pretty renders the heat map as a colored terminal table, grading each
// cell from cold to hot relative to maxHeat.
func Pretty(m heat.Map, maxHeat int) string {
	regs := warmRegisters(m)

	var b strings.Builder
	b.WriteString(lineStyle.Render("line"))
	for _, r := range regs {
		fmt.Fprintf(&b, "%6s", r)
	}
	b.WriteByte('\n')

	for _, line := range sortedLines(m) {
		b.WriteString(lineStyle.Render(fmt.Sprintf("%4d", line)))
		vector := m[line]
		for _, r := range regs {
			cell := fmt.Sprintf("%6d", vector[r])
			b.WriteString(heatStyle(vector[r], maxHeat).Render(cell))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// heatStyle grades a level onto the color ramp.
func heatStyle(level, maxHeat int) lipgloss.Style {
	idx := 0
	if maxHeat > 0 {
		idx = level * (len(rampColors) - 1) / maxHeat
	}
	if idx >= len(rampColors) {
		idx = len(rampColors) - 1
	}
	return lipgloss.NewStyle().Foreground(rampColors[idx])
}
