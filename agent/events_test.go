package agent

import (
	"testing"

	"github.com/nstehr/rally/rally-core/model"
)

func TestDetectPointEvents_FirstTickIsBaseline(t *testing.T) {
	cur := map[model.PointID]model.PointState{1: {Status: model.Owned, Owner: model.TeamHorde}}
	if got := detectPointEvents(1, nil, cur); len(got) != 0 {
		t.Errorf("got %d events on the first tick, want 0", len(got))
	}
}

func TestDetectPointEvents(t *testing.T) {
	owned := func(team model.TeamID) model.PointState { return model.PointState{Status: model.Owned, Owner: team} }
	contested := func(team model.TeamID) model.PointState { return model.PointState{Status: model.Contested, Owner: team} }

	tests := []struct {
		name     string
		was, now model.PointState
		want     EventKind
		team     string
	}{
		{"captured from neutral", model.PointState{}, owned(model.TeamAlliance), EventPointCaptured, "alliance"},
		{"assaulted", owned(model.TeamAlliance), contested(model.TeamAlliance), EventPointContested, "alliance"},
		{"flipped", contested(model.TeamAlliance), owned(model.TeamHorde), EventPointCaptured, "horde"},
		{"neutralised", owned(model.TeamHorde), model.PointState{}, EventPointLost, "horde"},
		{"unchanged", owned(model.TeamHorde), owned(model.TeamHorde), "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := detectPointEvents(3,
				map[model.PointID]model.PointState{5: tc.was},
				map[model.PointID]model.PointState{5: tc.now})
			if tc.want == "" {
				if len(got) != 0 {
					t.Errorf("got %v, want no events", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("got %d events, want 1", len(got))
			}
			if got[0].Kind != tc.want || got[0].Team != tc.team || *got[0].Point != 5 || got[0].Instance != 3 {
				t.Errorf("event = %+v, want %s for %s", got[0], tc.want, tc.team)
			}
		})
	}
}

func TestFormatEvents(t *testing.T) {
	if got := formatEvents(nil); got != "" {
		t.Errorf("formatEvents(nil) = %q", got)
	}
	events := []Event{
		{Kind: EventObjectiveCommitted, Agent: 4, Point: pointRef(2)},
		{Kind: EventPathExhausted, Agent: 4, Detail: "combat"},
		{Kind: EventAgentLeft, Agent: 9, Point: pointRef(model.NoPoint)},
	}
	want := "objective_committed agent=4 point=2; path_exhausted agent=4 (combat); agent_left agent=9"
	if got := formatEvents(events); got != want {
		t.Errorf("formatEvents = %q, want %q", got, want)
	}
}
