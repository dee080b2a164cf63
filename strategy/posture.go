// Package strategy derives each team's posture from score and clock and
// splits rosters into defenders and attackers accordingly.
package strategy

import (
	"time"

	"github.com/nstehr/rally/rally-core/model"
)

// Thresholds decide when a team flips posture.
type Thresholds struct {
	// ScoreMargin is the lead or deficit that counts as "large".
	ScoreMargin float64 `yaml:"score_margin"`
	// CriticalMargin is the deficit past which overmatched fights are taken.
	CriticalMargin float64       `yaml:"critical_margin"`
	OpeningWindow  time.Duration `yaml:"opening_window"`
	LateGame       time.Duration `yaml:"late_game"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ScoreMargin:    250,
		CriticalMargin: 500,
		OpeningWindow:  2 * time.Minute,
		LateGame:       15 * time.Minute,
	}
}

// Inputs is everything a posture depends on.
type Inputs struct {
	TeamScore        float64
	EnemyScore       float64
	Elapsed          time.Duration
	PointsControlled int
	TotalPoints      int
}

// Derive is a pure function of its inputs; it is cheap enough to call for
// every team on every tick.
func Derive(in Inputs, th Thresholds) model.Stance {
	diff := in.TeamScore - in.EnemyScore
	late := in.Elapsed >= th.LateGame

	s := model.Stance{
		Critical: diff <= -th.CriticalMargin || (late && diff < 0),
	}
	switch {
	case diff <= -th.ScoreMargin:
		s.Posture = model.Aggressive
	case in.Elapsed < th.OpeningWindow:
		s.Posture = model.Aggressive
	case diff >= th.ScoreMargin:
		s.Posture = model.Defensive
	case late && diff > 0:
		s.Posture = model.Defensive
	case in.TotalPoints > 0 && in.PointsControlled*2 > in.TotalPoints && diff > 0:
		s.Posture = model.Defensive
	default:
		s.Posture = model.Balanced
	}
	return s
}

// Profile is the tuning a posture feeds into arbitration.
type Profile struct {
	// DefenseThreshold is the defense priority a friendly point must exceed
	// before agents abandon their objective to defend it.
	DefenseThreshold float64 `yaml:"defense_threshold"`
	// DefenderShare is the fraction of a roster assigned to defense.
	DefenderShare float64 `yaml:"defender_share"`
	OffenseBias   float64 `yaml:"offense_bias"`
	DefenseBias   float64 `yaml:"defense_bias"`
}

type Profiles struct {
	Aggressive Profile `yaml:"aggressive"`
	Balanced   Profile `yaml:"balanced"`
	Defensive  Profile `yaml:"defensive"`
}

func DefaultProfiles() Profiles {
	return Profiles{
		Aggressive: Profile{DefenseThreshold: 3, DefenderShare: 0.2, OffenseBias: 10, DefenseBias: -5},
		Balanced:   Profile{DefenseThreshold: 2, DefenderShare: 0.35},
		Defensive:  Profile{DefenseThreshold: 1, DefenderShare: 0.5, OffenseBias: -10, DefenseBias: 15},
	}
}

func (p Profiles) For(posture model.Posture) Profile {
	switch posture {
	case model.Aggressive:
		return p.Aggressive
	case model.Defensive:
		return p.Defensive
	}
	return p.Balanced
}

// Validate clamps shares and thresholds to their usable ranges.
func (p *Profiles) Validate() {
	for _, pr := range []*Profile{&p.Aggressive, &p.Balanced, &p.Defensive} {
		pr.DefenderShare = clamp(pr.DefenderShare, 0, 1)
		if pr.DefenseThreshold < 0 {
			pr.DefenseThreshold = 0
		}
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
