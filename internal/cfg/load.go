package cfg

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rvheat/rvheat/internal/asm"
)

// document is the on-disk YAML shape of a CFG fixture.
type document struct {
	Nodes []nodeDocument `yaml:"nodes"`
	Edges [][2]int       `yaml:"edges"`
}

type nodeDocument struct {
	ID       int      `yaml:"id"`
	External bool     `yaml:"external"`
	Base     int      `yaml:"base"`
	Code     []string `yaml:"code"`
}

// Load decodes a YAML CFG description into a Graph.
//
// The exit sentinel (node 0) is implicit and always present; fixtures only
// describe real nodes and the edges between them. The decoded graph is
// validated before being returned.
func Load(r io.Reader) (*Graph, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding cfg document: %w", err)
	}

	g := New()
	g.AddNode(ExitID, External{})

	for _, nd := range doc.Nodes {
		if nd.ID == ExitID {
			return nil, fmt.Errorf("node id %d is reserved for the exit sentinel", ExitID)
		}
		if _, dup := g.Node(nd.ID); dup {
			return nil, fmt.Errorf("duplicate node id %d", nd.ID)
		}

		if nd.External {
			if len(nd.Code) > 0 {
				return nil, fmt.Errorf("node %d: external nodes carry no code", nd.ID)
			}
			g.AddNode(nd.ID, External{})
			continue
		}

		block := &asm.Block{Base: nd.Base}
		for i, line := range nd.Code {
			stmt, err := asm.ParseStatement(line)
			if err != nil {
				return nil, fmt.Errorf("node %d, line %d: %w", nd.ID, nd.Base+i, err)
			}
			block.Statements = append(block.Statements, stmt)
		}
		g.AddNode(nd.ID, BlockNode{Block: block})
	}

	for _, e := range doc.Edges {
		g.AddEdge(e[0], e[1])
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cfg document: %w", err)
	}
	return g, nil
}

// LoadFile reads and decodes a YAML CFG fixture from disk.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cfg fixture: %w", err)
	}
	defer f.Close()
	return Load(f)
}
