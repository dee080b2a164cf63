package strategy

import (
	"testing"
	"time"

	"github.com/nstehr/rally/rally-core/instance"
	"github.com/nstehr/rally/rally-core/model"
	"github.com/nstehr/rally/rally-core/world/mocks"
	"go.uber.org/mock/gomock"
)

func TestControllerRefreshCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reg := instance.NewRegistry(instance.DefaultIntervals())
	inst := reg.Open(3, model.MatchDomination)
	match := mocks.NewMockMatch(ctrl)
	match.EXPECT().TeamScore(model.InstanceID(3), model.TeamAlliance).Return(0.0).Times(2)
	match.EXPECT().TeamScore(model.InstanceID(3), model.TeamHorde).Return(600.0).Times(2)
	match.EXPECT().ElapsedTime(model.InstanceID(3)).Return(30 * time.Second).Times(2)

	c := NewController(DefaultThresholds(), DefaultProfiles())

	s, changed := c.Refresh(inst, match, model.TeamAlliance, 0, 3)
	if s.Posture != model.Aggressive || !changed {
		t.Errorf("first Refresh = %v, %v, want aggressive and changed", s.Posture, changed)
	}
	if _, changed := c.Refresh(inst, match, model.TeamAlliance, 0, 3); changed {
		t.Error("second Refresh with the same inputs should not report a change")
	}
	if got := c.Stance(inst, model.TeamAlliance); got.Posture != model.Aggressive || !got.Critical {
		t.Errorf("cached stance = %+v", got)
	}
	if got := c.Stance(inst, model.TeamHorde); got.Posture != model.Balanced {
		t.Errorf("unset team stance = %v, want balanced", got.Posture)
	}
}

func TestControllerRebalance(t *testing.T) {
	reg := instance.NewRegistry(instance.DefaultIntervals())
	inst := reg.Open(1, model.MatchFlag)
	for _, id := range []model.AgentID{1, 2, 3, 4} {
		reg.Enter(inst, id, model.TeamAlliance)
	}
	inst.SetStance(model.TeamAlliance, model.Stance{Posture: model.Defensive})

	c := NewController(DefaultThresholds(), DefaultProfiles())
	if !c.Rebalance(inst, model.TeamAlliance, 0, 10*time.Second, false) {
		t.Fatal("first rebalance should run")
	}
	defenders := 0
	for _, a := range inst.Agents() {
		if a.Role == model.RoleDefender {
			defenders++
		}
	}
	if defenders != 2 {
		t.Errorf("defenders = %d, want 2", defenders)
	}
	if c.Rebalance(inst, model.TeamAlliance, time.Second, 10*time.Second, false) {
		t.Error("rebalance inside the interval should be skipped")
	}
	if !c.Rebalance(inst, model.TeamAlliance, time.Second, 10*time.Second, true) {
		t.Error("forced rebalance should run")
	}
}
