package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nstehr/rally/rally-core/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
paths_dir: /srv/paths
arbiter:
  arrive_radius: 5
instance:
  scoreboard_refresh: 1s
rules:
  combat-override: "EnemyInRange && !Carrying"
match_types:
  flag:
    direct_move_range: 40
    selector:
      near_band: 5
      proximity_weight: 1
      max_join_distance: 90
    points:
      - {id: 2, name: horde-base, pos: {x: 200, y: 0}, value: 3, base: horde}
      - {id: 1, name: alliance-base, pos: {x: 0, y: 0}, value: 3, base: alliance}
    rally:
      alliance: {x: -20, y: 0}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PathsDir != "/srv/paths" {
		t.Errorf("PathsDir = %q", cfg.PathsDir)
	}
	if cfg.Arbiter.ArriveRadius != 5 {
		t.Errorf("ArriveRadius = %v, want 5", cfg.Arbiter.ArriveRadius)
	}
	// Unset fields keep their defaults.
	if cfg.Arbiter.EngageRange != 30 {
		t.Errorf("EngageRange = %v, want default 30", cfg.Arbiter.EngageRange)
	}
	if cfg.Instance.ScoreboardRefresh != time.Second {
		t.Errorf("ScoreboardRefresh = %v, want 1s", cfg.Instance.ScoreboardRefresh)
	}
	if cfg.Instance.RoleRebalance != 10*time.Second {
		t.Errorf("RoleRebalance = %v, want default 10s", cfg.Instance.RoleRebalance)
	}
	if got := cfg.Rules["combat-override"]; got != "EnemyInRange && !Carrying" {
		t.Errorf("override = %q", got)
	}

	if got := cfg.Tuning(model.MatchFlag).MaxJoinDistance; got != 90 {
		t.Errorf("flag MaxJoinDistance = %v, want 90", got)
	}
	if got := cfg.Tuning(model.MatchDomination); got != cfg.Selector {
		t.Errorf("domination tuning = %+v, want global %+v", got, cfg.Selector)
	}

	layout := cfg.Layouts()[model.MatchFlag]
	if len(layout.Points) != 2 || layout.Points[0].ID != 1 {
		t.Fatalf("points = %+v, want sorted by id", layout.Points)
	}
	if b := layout.Points[1].Base; b == nil || *b != model.TeamHorde {
		t.Errorf("point 2 base = %v, want horde", b)
	}
	if got := layout.Rally[model.TeamAlliance]; got != (model.Vec3{X: -20}) {
		t.Errorf("alliance rally = %+v", got)
	}
	if layout.FrontWidth != 2 {
		t.Errorf("FrontWidth = %d, want default 2", layout.FrontWidth)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown match type", "match_types:\n  koth: {}\n"},
		{"negative radius", "arbiter:\n  engage_range: -1\n"},
		{"bad team", "match_types:\n  flag:\n    points:\n      - {id: 1, base: scourge}\n"},
		{"duplicate point", "match_types:\n  domination:\n    points:\n      - {id: 1}\n      - {id: 1}\n"},
		{"zero join distance", "selector:\n  max_join_distance: 0\n"},
		{"bad rally team", "match_types:\n  assault:\n    rally:\n      pirates: {x: 1}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want a read error", err)
	}
}
