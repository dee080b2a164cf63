package rules

import (
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/rally/rally-core/model"
)

// SelectFunc proposes a destination when its rule's condition holds. It
// returns ok=false to let the cascade fall through.
type SelectFunc func(s *Situation) (model.ObjectiveCandidate, bool)

// Rule is one step of the arbitration cascade: an expr gate plus a selector.
// Rules run by priority and the first one to produce a candidate wins.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Preempts     bool        // runs even while a sticky commitment is held
	Sticky       bool        // commitments persist until arrival, staleness or preemption
	ConditionSrc string      // expr source, overridable from config
	program      *vm.Program // compiled bytecode
	Select       SelectFunc
}
