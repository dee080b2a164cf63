package rules

import (
	"testing"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/rally/rally-core/model"
)

func evalCondition(t *testing.T, src string, env Env) bool {
	t.Helper()
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		t.Fatalf("compile %q: %v", src, err)
	}
	out, err := vm.Run(prog, env)
	if err != nil {
		t.Fatalf("run %q: %v", src, err)
	}
	return out.(bool)
}

func TestEnvHelpers(t *testing.T) {
	env := Env{Role: model.RoleDefender.String(), TeamScore: 300, EnemyScore: 500, Elapsed: 90}

	if !env.IsDefender() || env.IsAttacker() {
		t.Errorf("role helpers wrong for %q", env.Role)
	}
	if got := env.ScoreDiff(); got != -200 {
		t.Errorf("ScoreDiff = %v, want -200", got)
	}
	if !env.Behind() || env.Ahead() {
		t.Error("expected Behind and not Ahead")
	}
	if got := env.Minutes(); got != 1.5 {
		t.Errorf("Minutes = %v, want 1.5", got)
	}
}

func TestDefaultConditions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		env  Env
		want bool
	}{
		{"defense needs a threat", `Threatened > 0 && !Carrying`, Env{}, false},
		{"defense fires", `Threatened > 0 && !Carrying`, Env{Threatened: 2}, true},
		{"carrier ignores defense", `Threatened > 0 && !Carrying`, Env{Threatened: 2, Carrying: true}, false},
		{"attacker engages", `EnemyInRange && (IsDefender() || !Carrying)`, Env{EnemyInRange: true, Role: "attacker"}, true},
		{"carrier keeps running", `EnemyInRange && (IsDefender() || !Carrying)`, Env{EnemyInRange: true, Role: "attacker", Carrying: true}, false},
		{"defender always engages", `EnemyInRange && (IsDefender() || !Carrying)`, Env{EnemyInRange: true, Role: "defender", Carrying: true}, true},
		{"posture string", `Posture == "aggressive" && Minutes() < 2`, Env{Posture: "aggressive", Elapsed: 30}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := evalCondition(t, tc.src, tc.env); got != tc.want {
				t.Errorf("%s = %v, want %v", tc.src, got, tc.want)
			}
		})
	}
}

func TestNewEnv(t *testing.T) {
	h := newHarness(t, model.MatchDomination, dominationLayout())
	h.state.Scores = map[model.TeamID]float64{model.TeamAlliance: 120, model.TeamHorde: 80}
	h.put(model.AgentView{ID: 1, Team: model.TeamAlliance, Pos: v(2, 0), CarryingToken: true})
	h.put(model.AgentView{ID: 2, Team: model.TeamHorde, Pos: v(12, 0)})

	s := situationFor(h, 1)
	h.arb.probe(s)
	env := newEnv(s)

	if env.TeamScore != 120 || env.EnemyScore != 80 {
		t.Errorf("scores = %v/%v, want 120/80", env.TeamScore, env.EnemyScore)
	}
	if !env.Carrying {
		t.Error("Carrying = false, want true")
	}
	if !env.EnemyInRange || env.EnemyDistance != 10 {
		t.Errorf("enemy = %v at %v, want in range at 10", env.EnemyInRange, env.EnemyDistance)
	}
	if env.Capturable != 1 {
		t.Errorf("Capturable = %d, want 1", env.Capturable)
	}
	if env.Elapsed != 300 {
		t.Errorf("Elapsed = %v, want 300", env.Elapsed)
	}
	if env.Intent != "" || env.HasObjective {
		t.Errorf("fresh agent has intent %q", env.Intent)
	}
}
