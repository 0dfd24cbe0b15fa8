package pet

import (
	"math"

	"github.com/hedging-my-bets/myTaskLists/internal/task"
)

// State is the pet's progression. StageIndex is derived from XP and must
// be recomputed on every XP mutation, never set independently.
type State struct {
	XP         int `json:"xp"`
	StageIndex int `json:"stageIndex"`
}

// Stage is one step of the evolution ladder.
type Stage struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	MinXP int    `json:"minXP"`
	Image string `json:"image"`
	Color string `json:"color"`
}

// Progression is the injectable XP table. The numeric values are balance
// configuration, not law; see config presets.
type Progression struct {
	Stages    []Stage
	XPPerTask int
}

// StageForXP returns the largest stage index whose threshold is <= xp.
func (p Progression) StageForXP(xp int) int {
	for i := len(p.Stages) - 1; i >= 0; i-- {
		if xp >= p.Stages[i].MinXP {
			return i
		}
	}
	return 0
}

// MissPenaltyMultiplier ramps linearly from 1.0x at level 1 to 3.0x at
// level 30. Levels outside [1,30] are clamped.
func MissPenaltyMultiplier(level int) float64 {
	if level < 1 {
		level = 1
	}
	if level > 30 {
		level = 30
	}
	return 1 + 2*float64(level-1)/29
}

// ApplyCompletion rewards one completed task.
func (p Progression) ApplyCompletion(s State) State {
	xp := s.XP + p.XPPerTask
	return State{XP: xp, StageIndex: p.StageForXP(xp)}
}

// ApplyMiss penalizes missedCount tasks in one batch. The penalty rate is
// taken from the pre-miss stage, and XP is floored at zero.
func (p Progression) ApplyMiss(s State, missedCount int) State {
	level := s.StageIndex + 1
	penalty := int(math.Round(float64(p.XPPerTask) * MissPenaltyMultiplier(level) * float64(missedCount)))
	xp := s.XP - penalty
	if xp < 0 {
		xp = 0
	}
	return State{XP: xp, StageIndex: p.StageForXP(xp)}
}

// Transition applies the net XP side effect of moving a task between
// statuses: first undo whatever the old status earned or cost, then apply
// the new status. Undoing a completion charges the current-level miss
// penalty rather than refunding the original reward; that asymmetry is
// deliberate product behavior.
func (p Progression) Transition(s State, from, to task.Status) State {
	if from == to {
		return s
	}
	switch from {
	case task.StatusDone:
		s = p.ApplyMiss(s, 1)
	case task.StatusMissed:
		s = p.ApplyCompletion(s)
	}
	switch to {
	case task.StatusDone:
		s = p.ApplyCompletion(s)
	case task.StatusMissed:
		s = p.ApplyMiss(s, 1)
	}
	return s
}

// StageMeta returns the stage record for an index, clamped to the table.
func (p Progression) StageMeta(index int) Stage {
	if len(p.Stages) == 0 {
		return Stage{}
	}
	if index < 0 {
		index = 0
	}
	if index >= len(p.Stages) {
		index = len(p.Stages) - 1
	}
	return p.Stages[index]
}

// ProgressToNext is the percentage of the way from the current stage to
// the next one; 100 at the top of the ladder.
func (p Progression) ProgressToNext(s State) float64 {
	if s.StageIndex+1 >= len(p.Stages) {
		return 100
	}
	cur := p.Stages[s.StageIndex].MinXP
	next := p.Stages[s.StageIndex+1].MinXP
	if next <= cur {
		return 100
	}
	return float64(s.XP-cur) / float64(next-cur) * 100
}

// Normalize recomputes the derived stage index from XP.
func (p Progression) Normalize(s State) State {
	if s.XP < 0 {
		s.XP = 0
	}
	s.StageIndex = p.StageForXP(s.XP)
	return s
}
