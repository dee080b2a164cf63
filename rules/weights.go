package rules

import (
	"time"

	"github.com/nstehr/rally/rally-core/model"
)

// Weights are the arbiter's tuning constants. They were tuned by play
// rather than derived, so all of them are exposed through config.
type Weights struct {
	ArriveRadius          float64 `yaml:"arrive_radius"`
	EngageRange           float64 `yaml:"engage_range"`
	OpportunisticRadius   float64 `yaml:"opportunistic_radius"`
	DefenseResponseRadius float64 `yaml:"defense_response_radius"`
	DensityRadius         float64 `yaml:"density_radius"`
	ThreatRadius          float64 `yaml:"threat_radius"`

	// score = value*ValueWeight + (allies-enemies)*DensityWeight
	//         - distance/DistanceDivisor + postureBias + roleBias
	ValueWeight     float64 `yaml:"value_weight"`
	DensityWeight   float64 `yaml:"density_weight"`
	DistanceDivisor float64 `yaml:"distance_divisor"`
	RoleBias        float64 `yaml:"role_bias"`

	OutnumberedMargin  int     `yaml:"outnumbered_margin"`
	OutnumberedPenalty float64 `yaml:"outnumbered_penalty"`

	// Defense priority of a friendly point is
	// enemies*value - allies*AllyRelief (+ ContestedBonus when contested).
	AllyRelief     float64 `yaml:"ally_relief"`
	ContestedBonus float64 `yaml:"contested_bonus"`

	DefenseRecompute time.Duration `yaml:"defense_recompute"`
}

func DefaultWeights() Weights {
	return Weights{
		ArriveRadius:          4,
		EngageRange:           30,
		OpportunisticRadius:   12,
		DefenseResponseRadius: 80,
		DensityRadius:         25,
		ThreatRadius:          30,
		ValueWeight:           10,
		DensityWeight:         4,
		DistanceDivisor:       10,
		RoleBias:              15,
		OutnumberedMargin:     2,
		OutnumberedPenalty:    50,
		AllyRelief:            0.5,
		ContestedBonus:        1,
		DefenseRecompute:      5 * time.Second,
	}
}

// Validate clamps radii and weights to usable ranges.
func (w *Weights) Validate() {
	w.ArriveRadius = clamp(w.ArriveRadius, 0.5, 50)
	w.EngageRange = clamp(w.EngageRange, 0, 200)
	w.OpportunisticRadius = clamp(w.OpportunisticRadius, 0, 100)
	w.DefenseResponseRadius = clamp(w.DefenseResponseRadius, 0, 1000)
	w.DensityRadius = clamp(w.DensityRadius, 1, 200)
	w.ThreatRadius = clamp(w.ThreatRadius, 1, 200)
	if w.DistanceDivisor <= 0 {
		w.DistanceDivisor = 1
	}
	if w.OutnumberedMargin < 0 {
		w.OutnumberedMargin = 0
	}
	if w.DefenseRecompute < 0 {
		w.DefenseRecompute = 0
	}
}

// Layout is the static objective layout of one match type.
type Layout struct {
	Points []model.ObjectivePoint
	Rally  map[model.TeamID]model.Vec3
	// DirectMoveRange is the distance under which agents walk straight to a
	// destination instead of joining a path segment.
	DirectMoveRange float64
	// FrontWidth is how many points of the assault order are attackable at once.
	FrontWidth int
}

// Point looks up a point by id.
func (l Layout) Point(id model.PointID) (model.ObjectivePoint, bool) {
	for _, p := range l.Points {
		if p.ID == id {
			return p, true
		}
	}
	return model.ObjectivePoint{}, false
}

// clamp restricts v to [min, max].
func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
