// Package milestone decides when sales progress unlocks escrowed seller funds.
package milestone

import (
	"hubrwa/pkg/platform/checked"
)

// Milestone is the sales-progress marker of a vault, 0 through Final.
type Milestone uint8

const (
	None   Milestone = 0
	Final  Milestone = 3
	BPSMax uint64    = 10_000
)

// Threshold unlocks ReleaseBPS of the current escrow balance once circulation
// reaches AtBPS.
type Threshold struct {
	Milestone  Milestone
	AtBPS      uint64
	ReleaseBPS uint64
}

// Schedule is ordered highest first so the highest qualifying milestone wins.
var Schedule = []Threshold{
	{Milestone: 3, AtBPS: 10_000, ReleaseBPS: 2000},
	{Milestone: 2, AtBPS: 7500, ReleaseBPS: 3000},
	{Milestone: 1, AtBPS: 5000, ReleaseBPS: 5000},
}

// Outcome is the milestone a vault should move to and how much escrow that
// move releases. Advanced reports whether Milestone is past the input.
type Outcome struct {
	Milestone Milestone `json:"milestone"`
	Release   uint64    `json:"release"`
	Advanced  bool      `json:"advanced"`
}

// CirculationBPS is circulating*10000/total in 256-bit precision.
func CirculationBPS(circulating, total uint64) (uint64, error) {
	return checked.Ratio(circulating, total, BPSMax)
}

// Evaluate returns the candidate milestone for circulationBPS. Final is
// terminal and releases nothing more. Evaluate is pure; applying the advance
// and moving the release is the caller's job.
func Evaluate(current Milestone, escrowBalance, circulationBPS uint64) (Outcome, error) {
	if current >= Final {
		return Outcome{Milestone: Final}, nil
	}
	for _, th := range Schedule {
		if current < th.Milestone && circulationBPS >= th.AtBPS {
			release, err := checked.MulDiv(escrowBalance, th.ReleaseBPS, BPSMax)
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Milestone: th.Milestone, Release: release, Advanced: true}, nil
		}
	}
	return Outcome{Milestone: current}, nil
}
