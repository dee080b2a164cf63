// Command pathgraph inspects and validates the authored path graphs.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/invopop/jsonschema"
	"github.com/nstehr/rally/rally-core/config"
	"github.com/nstehr/rally/rally-core/model"
	"github.com/nstehr/rally/rally-core/paths"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir string
	root := &cobra.Command{
		Use:           "pathgraph",
		Short:         "Inspect and validate path graphs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "data/paths", "directory of path graph YAML files")

	load := func() (*paths.Library, error) { return paths.LoadLibrary(dir) }
	root.AddCommand(newListCmd(load), newShowCmd(load), newValidateCmd(load), newSchemaCmd())
	return root
}

type loader func() (*paths.Library, error)

func newListCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every segment of every match type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := load()
			if err != nil {
				return err
			}
			return writeList(cmd.OutOrStdout(), lib)
		},
	}
}

func writeList(w io.Writer, lib *paths.Library) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MATCH TYPE\tINDEX\tNAME\tPOINTS\tLENGTH\tREVERSIBLE")
	for _, mt := range lib.MatchTypes() {
		g, _ := lib.Get(mt)
		for i := range g.Len() {
			seg, _ := g.Segment(i)
			fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%.1f\t%t\n", mt, i, seg.Name, len(seg.Points), seg.Length(), seg.Reversible)
		}
	}
	return tw.Flush()
}

func newShowCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "show <match-type> <index>",
		Short: "Print one segment's waypoints",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := load()
			if err != nil {
				return err
			}
			mt := model.MatchType(args[0])
			g, ok := lib.Get(mt)
			if !ok {
				return fmt.Errorf("%w: %q", paths.ErrUnknownMatchType, mt)
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}
			seg, ok := g.Segment(index)
			if !ok {
				return fmt.Errorf("segment %d out of range (%d segments)", index, g.Len())
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s #%d %q reversible=%t length=%.1f\n", mt, index, seg.Name, seg.Reversible, seg.Length())
			for i, p := range seg.Points {
				fmt.Fprintf(out, "  %3d  %8.1f %8.1f %8.1f\n", i, p.X, p.Y, p.Z)
			}
			return nil
		},
	}
}

func newValidateCmd(load loader) *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the graphs and check objective points can join them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lib, err := load()
			if err != nil {
				return err
			}
			cfg := config.Default()
			if cfgPath != "" {
				if cfg, err = config.Load(cfgPath); err != nil {
					return err
				}
			}
			warnings := checkReach(lib, cfg)
			out := cmd.OutOrStdout()
			for _, w := range warnings {
				fmt.Fprintln(out, "warning:", w)
			}
			fmt.Fprintf(out, "%d match types ok, %d warnings\n", len(lib.MatchTypes()), len(warnings))
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "config file whose objective layouts are checked against the graphs")
	return cmd
}

// checkReach flags objective points no segment passes within the join
// distance of; agents will only ever walk straight at them.
func checkReach(lib *paths.Library, cfg config.Config) []string {
	var warnings []string
	layouts := cfg.Layouts()
	for _, mt := range model.MatchTypes {
		layout, ok := layouts[mt]
		if !ok {
			continue
		}
		g, ok := lib.Get(mt)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("%s: objectives configured but no path graph", mt))
			continue
		}
		limit := cfg.Tuning(mt).MaxJoinDistance
		for _, p := range layout.Points {
			if d := nearestWaypoint(g, p.Pos); d > limit {
				warnings = append(warnings, fmt.Sprintf("%s: point %d (%s) is %.1f from the nearest waypoint, over %.1f", mt, p.ID, p.Name, d, limit))
			}
		}
	}
	return warnings
}

func nearestWaypoint(g *paths.Graph, pos model.Vec3) float64 {
	best := math.Inf(1)
	for i := range g.Len() {
		seg, _ := g.Segment(i)
		for _, wp := range seg.Points {
			best = min(best, wp.Dist(pos))
		}
	}
	return best
}

func newSchemaCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Emit the JSON schema of a path graph file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := json.MarshalIndent(buildSchema(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}
			data = append(data, '\n')
			if out == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
				return fmt.Errorf("create schema directory: %w", err)
			}
			return os.WriteFile(out, data, 0o644)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the schema to this path instead of stdout")
	return cmd
}

func buildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	schema := reflector.Reflect(new(paths.GraphFile))
	schema.Title = "Path graph"
	schema.Description = "One match type's traversable segments, authored as YAML under data/paths"
	return schema
}
