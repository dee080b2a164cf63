package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/nstehr/rally/rally-core/model"
	"gopkg.in/yaml.v3"
)

// GraphFile is the on-disk form of one match type's graph.
type GraphFile struct {
	MatchType model.MatchType `yaml:"match_type" json:"match_type" jsonschema:"required,enum=domination,enum=flag,enum=assault"`
	Segments  []SegmentFile   `yaml:"segments" json:"segments" jsonschema:"required"`
}

type SegmentFile struct {
	Name string `yaml:"name" json:"name"`
	// Reversible defaults to true; set false for drops and jump pads.
	Reversible *bool `yaml:"reversible,omitempty" json:"reversible,omitempty"`
	// Points are [x, y, z] triples; a missing z is read as 0.
	Points [][]float64 `yaml:"points" json:"points" jsonschema:"required,minItems=1"`
}

// ParseGraph decodes and validates a single graph file.
func ParseGraph(data []byte) (*Graph, error) {
	var f GraphFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	segs := make([]Segment, 0, len(f.Segments))
	for i, sf := range f.Segments {
		seg := Segment{Name: sf.Name, Reversible: true}
		if sf.Reversible != nil {
			seg.Reversible = *sf.Reversible
		}
		if seg.Name == "" {
			seg.Name = fmt.Sprintf("segment-%d", i)
		}
		for j, p := range sf.Points {
			if len(p) < 2 || len(p) > 3 {
				return nil, fmt.Errorf("%s segment %d point %d: want 2 or 3 coordinates, got %d", f.MatchType, i, j, len(p))
			}
			wp := model.Waypoint{X: p[0], Y: p[1]}
			if len(p) == 3 {
				wp.Z = p[2]
			}
			seg.Points = append(seg.Points, wp)
		}
		segs = append(segs, seg)
	}
	return NewGraph(f.MatchType, segs)
}

// LoadLibrary reads every .yaml/.yml file in dir, one graph per file.
func LoadLibrary(dir string) (*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read path dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	graphs := make([]*Graph, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		g, err := ParseGraph(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		graphs = append(graphs, g)
	}
	return NewLibrary(graphs...)
}
