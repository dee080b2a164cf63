// Package config loads the sidecar's tuning from YAML. Every constant the
// engine was tuned with by play is exposed here; anything left out of the
// file keeps its built-in default.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/nstehr/rally/rally-core/instance"
	"github.com/nstehr/rally/rally-core/model"
	"github.com/nstehr/rally/rally-core/paths"
	"github.com/nstehr/rally/rally-core/rules"
	"github.com/nstehr/rally/rally-core/strategy"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	PathsDir        string              `yaml:"paths_dir"`
	DensityCellSize float64             `yaml:"density_cell_size"`
	Selector        paths.Tuning        `yaml:"selector"`
	Arbiter         rules.Weights       `yaml:"arbiter"`
	Posture         strategy.Thresholds `yaml:"posture"`
	Profiles        strategy.Profiles   `yaml:"profiles"`
	Instance        instance.Intervals  `yaml:"instance"`

	// Rules replaces rule conditions by rule name.
	Rules      map[string]string                   `yaml:"rules"`
	MatchTypes map[model.MatchType]MatchTypeConfig `yaml:"match_types"`
}

type MatchTypeConfig struct {
	// Selector overrides the global selector tuning for this match type.
	Selector        *paths.Tuning         `yaml:"selector,omitempty"`
	DirectMoveRange float64               `yaml:"direct_move_range"`
	FrontWidth      int                   `yaml:"front_width"`
	Points          []PointConfig         `yaml:"points"`
	Rally           map[string]model.Vec3 `yaml:"rally"`
}

type PointConfig struct {
	ID    model.PointID `yaml:"id"`
	Name  string        `yaml:"name"`
	Pos   model.Vec3    `yaml:"pos"`
	Value float64       `yaml:"value"`
	Order int           `yaml:"order"`
	// Base names the team whose flag sits here.
	Base string `yaml:"base"`
}

func Default() Config {
	return Config{
		PathsDir:        "data/paths",
		DensityCellSize: 40,
		Selector:        paths.DefaultTuning(),
		Arbiter:         rules.DefaultWeights(),
		Posture:         strategy.DefaultThresholds(),
		Profiles:        strategy.DefaultProfiles(),
		Instance:        instance.DefaultIntervals(),
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	checkTuning := func(where string, t paths.Tuning) {
		if t.NearBand < 0 || t.ProximityWeight < 0 || t.MaxJoinDistance <= 0 {
			bad("%s selector: near_band and proximity_weight must be >= 0, max_join_distance > 0", where)
		}
	}
	checkTuning("global", c.Selector)

	w := c.Arbiter
	for name, v := range map[string]float64{
		"arrive_radius":           w.ArriveRadius,
		"engage_range":            w.EngageRange,
		"opportunistic_radius":    w.OpportunisticRadius,
		"defense_response_radius": w.DefenseResponseRadius,
		"density_radius":          w.DensityRadius,
		"threat_radius":           w.ThreatRadius,
		"distance_divisor":        w.DistanceDivisor,
	} {
		if v <= 0 {
			bad("arbiter.%s must be > 0, got %v", name, v)
		}
	}
	if c.Instance.ScoreboardRefresh <= 0 || c.Instance.RoleRebalance <= 0 {
		bad("instance intervals must be > 0")
	}
	if c.DensityCellSize <= 0 {
		bad("density_cell_size must be > 0")
	}

	for mt, m := range c.MatchTypes {
		if !mt.Known() {
			bad("unknown match type %q", mt)
			continue
		}
		if m.Selector != nil {
			checkTuning(string(mt), *m.Selector)
		}
		if m.DirectMoveRange < 0 || m.FrontWidth < 0 {
			bad("%s: direct_move_range and front_width must be >= 0", mt)
		}
		seen := make(map[model.PointID]bool, len(m.Points))
		for _, p := range m.Points {
			if seen[p.ID] {
				bad("%s: duplicate point id %d", mt, p.ID)
			}
			seen[p.ID] = true
			if p.ID == model.NoPoint {
				bad("%s: point id %d is reserved", mt, p.ID)
			}
			if p.Base != "" {
				if _, err := model.ParseTeam(p.Base); err != nil {
					bad("%s point %d: %v", mt, p.ID, err)
				}
			}
		}
		for team := range m.Rally {
			if _, err := model.ParseTeam(team); err != nil {
				bad("%s rally: %v", mt, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Layouts builds the arbiter's per-match-type layouts. Call after Validate.
func (c Config) Layouts() map[model.MatchType]rules.Layout {
	out := make(map[model.MatchType]rules.Layout, len(c.MatchTypes))
	for mt, m := range c.MatchTypes {
		l := rules.Layout{
			DirectMoveRange: m.DirectMoveRange,
			FrontWidth:      m.FrontWidth,
			Rally:           make(map[model.TeamID]model.Vec3, len(m.Rally)),
		}
		if l.FrontWidth == 0 {
			l.FrontWidth = 2
		}
		for _, p := range m.Points {
			op := model.ObjectivePoint{ID: p.ID, Name: p.Name, Pos: p.Pos, Value: p.Value, Order: p.Order}
			if team, err := model.ParseTeam(p.Base); err == nil {
				op.Base = &team
			}
			l.Points = append(l.Points, op)
		}
		slices.SortStableFunc(l.Points, func(a, b model.ObjectivePoint) int { return int(a.ID) - int(b.ID) })
		for name, pos := range m.Rally {
			if team, err := model.ParseTeam(name); err == nil {
				l.Rally[team] = pos
			}
		}
		out[mt] = l
	}
	return out
}

// Tuning returns the selector tuning for mt.
func (c Config) Tuning(mt model.MatchType) paths.Tuning {
	if m, ok := c.MatchTypes[mt]; ok && m.Selector != nil {
		return *m.Selector
	}
	return c.Selector
}
