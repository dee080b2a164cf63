package strategy

import (
	"testing"
	"time"

	"github.com/nstehr/rally/rally-core/model"
)

func TestDerive(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name     string
		in       Inputs
		want     model.Posture
		critical bool
	}{
		{"losing badly early", Inputs{TeamScore: 0, EnemyScore: 600, Elapsed: 30 * time.Second}, model.Aggressive, true},
		{"opening window even", Inputs{Elapsed: time.Minute}, model.Aggressive, false},
		{"behind by margin mid game", Inputs{TeamScore: 100, EnemyScore: 400, Elapsed: 8 * time.Minute}, model.Aggressive, false},
		{"ahead by margin", Inputs{TeamScore: 700, EnemyScore: 400, Elapsed: 8 * time.Minute}, model.Defensive, false},
		{"late and slightly ahead", Inputs{TeamScore: 410, EnemyScore: 400, Elapsed: 16 * time.Minute}, model.Defensive, false},
		{"late and slightly behind", Inputs{TeamScore: 390, EnemyScore: 400, Elapsed: 16 * time.Minute}, model.Balanced, true},
		{"holding majority while ahead", Inputs{TeamScore: 420, EnemyScore: 400, Elapsed: 5 * time.Minute, PointsControlled: 3, TotalPoints: 5}, model.Defensive, false},
		{"holding majority while behind", Inputs{TeamScore: 380, EnemyScore: 400, Elapsed: 5 * time.Minute, PointsControlled: 3, TotalPoints: 5}, model.Balanced, false},
		{"even mid game", Inputs{TeamScore: 400, EnemyScore: 400, Elapsed: 5 * time.Minute}, model.Balanced, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Derive(tc.in, th)
			if got.Posture != tc.want || got.Critical != tc.critical {
				t.Errorf("Derive = %v/%v, want %v/%v", got.Posture, got.Critical, tc.want, tc.critical)
			}
		})
	}
}

func TestProfilesFor(t *testing.T) {
	p := DefaultProfiles()
	if p.For(model.Defensive).DefenseThreshold >= p.For(model.Aggressive).DefenseThreshold {
		t.Error("defensive teams should respond to lower threats than aggressive ones")
	}
	if p.For(model.Balanced) != p.Balanced {
		t.Error("For(Balanced) should return the balanced profile")
	}
}

func TestProfilesValidate(t *testing.T) {
	p := Profiles{
		Aggressive: Profile{DefenderShare: -1, DefenseThreshold: -3},
		Defensive:  Profile{DefenderShare: 2},
	}
	p.Validate()
	if p.Aggressive.DefenderShare != 0 || p.Aggressive.DefenseThreshold != 0 {
		t.Errorf("Aggressive = %+v, want clamped to zero", p.Aggressive)
	}
	if p.Defensive.DefenderShare != 1 {
		t.Errorf("Defensive.DefenderShare = %v, want 1", p.Defensive.DefenderShare)
	}
}

func TestAssignRoles(t *testing.T) {
	tests := []struct {
		roster    []model.AgentID
		share     float64
		defenders []model.AgentID
	}{
		{[]model.AgentID{5, 3, 9, 1}, 0.5, []model.AgentID{1, 3}},
		{[]model.AgentID{5, 3, 9, 1, 7}, 0.2, []model.AgentID{1}},
		{[]model.AgentID{4, 4, 2}, 0.5, []model.AgentID{2}},
		{[]model.AgentID{1, 2}, 0, nil},
		{nil, 0.5, nil},
	}
	for _, tc := range tests {
		roles := AssignRoles(tc.roster, tc.share)
		var got []model.AgentID
		for _, id := range tc.defenders {
			if roles[id] != model.RoleDefender {
				t.Errorf("AssignRoles(%v, %v): agent %d should defend", tc.roster, tc.share, id)
			}
		}
		for id, r := range roles {
			if r == model.RoleDefender {
				got = append(got, id)
			}
		}
		if len(got) != len(tc.defenders) {
			t.Errorf("AssignRoles(%v, %v) defenders = %v, want %v", tc.roster, tc.share, got, tc.defenders)
		}
	}
}
