package instance

import (
	"cmp"
	"slices"
	"sync/atomic"
	"time"

	"github.com/nstehr/rally/rally-core/model"
	"golang.org/x/sync/singleflight"
)

// Board is a published set of defense priorities by team and point. A
// published Board is never written again.
type Board map[model.TeamID]map[model.PointID]float64

type boardSnapshot struct {
	at     time.Duration
	scores Board
}

// Scoreboard holds an instance's defense priorities. Many agents read it
// each tick; it is recomputed at most once per refresh interval and swapped
// in whole, so readers never see a partial recompute.
type Scoreboard struct {
	every time.Duration
	board atomic.Pointer[boardSnapshot]
	group singleflight.Group
}

func NewScoreboard(every time.Duration) *Scoreboard {
	return &Scoreboard{every: every}
}

// Refresh runs compute and publishes its result when the interval has
// elapsed since the last publish. Concurrent callers share one compute.
func (s *Scoreboard) Refresh(now time.Duration, compute func() Board) bool {
	if cur := s.board.Load(); cur != nil && now >= cur.at && now-cur.at < s.every {
		return false
	}
	s.group.Do("refresh", func() (any, error) {
		s.Publish(now, compute())
		return nil, nil
	})
	return true
}

// Publish swaps in b unconditionally.
func (s *Scoreboard) Publish(now time.Duration, b Board) {
	s.board.Store(&boardSnapshot{at: now, scores: b})
}

// PublishedAt reports when the current board was computed.
func (s *Scoreboard) PublishedAt() (time.Duration, bool) {
	cur := s.board.Load()
	if cur == nil {
		return 0, false
	}
	return cur.at, true
}

// Priority returns the defense priority of point for team, 0 when unknown.
func (s *Scoreboard) Priority(team model.TeamID, point model.PointID) float64 {
	cur := s.board.Load()
	if cur == nil {
		return 0
	}
	return cur.scores[team][point]
}

// Threatened lists team's points whose priority exceeds threshold, highest
// first with ties broken by point id.
func (s *Scoreboard) Threatened(team model.TeamID, threshold float64) []model.PointID {
	cur := s.board.Load()
	if cur == nil {
		return nil
	}
	scores := cur.scores[team]
	var out []model.PointID
	for id, p := range scores {
		if p > threshold {
			out = append(out, id)
		}
	}
	slices.SortFunc(out, func(a, b model.PointID) int {
		if c := cmp.Compare(scores[b], scores[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return out
}
