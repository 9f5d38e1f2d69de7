/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package aggregate

/*****************************************************************************************************************/

import (
	"math"

	"github.com/cascade-survey/assoc/pkg/measurement"
)

/*****************************************************************************************************************/

// raWrapThreshold is the boundary below which an RA is assumed to have wrapped through
// zero and is shifted by +360 degrees before weighting, per §4.5.
const raWrapThreshold = 0.1

/*****************************************************************************************************************/

// Refresh recomputes the running weighted-mean RA/Dec and their uncertainties for every
// identity currently live in ref, restricted to frame rows with Source != Unassigned.
// It overwrites ref's RA, Dec, UncertaintyEW and UncertaintyNS in place and returns ref
// for convenience chaining; frame's RASource/DecSource columns - the preserved original
// observation positions - are left untouched.
func Refresh(frame measurement.Frame, ref *measurement.ReferenceFrame) *measurement.ReferenceFrame {
	type accumulator struct {
		sumInterimEW float64
		sumWeightEW  float64
		sumInterimNS float64
		sumWeightNS  float64
	}

	sums := make(map[int]*accumulator)

	for _, row := range frame.Rows {
		if row.Source == measurement.Unassigned {
			continue
		}

		acc, ok := sums[row.Source]
		if !ok {
			acc = &accumulator{}
			sums[row.Source] = acc
		}

		ra := row.RA
		if ra <= raWrapThreshold {
			ra += 360
		}

		acc.sumInterimEW += ra * row.WeightEW
		acc.sumWeightEW += row.WeightEW
		acc.sumInterimNS += row.Dec * row.WeightNS
		acc.sumWeightNS += row.WeightNS
	}

	for i := range ref.Rows {
		acc, ok := sums[ref.Rows[i].Identity]
		if !ok || acc.sumWeightEW == 0 || acc.sumWeightNS == 0 {
			continue
		}

		wavgRA := acc.sumInterimEW / acc.sumWeightEW
		if wavgRA >= 360 {
			wavgRA -= 360
		}

		ref.Rows[i].RA = wavgRA
		ref.Rows[i].Dec = acc.sumInterimNS / acc.sumWeightNS
		ref.Rows[i].UncertaintyEW = 1 / math.Sqrt(acc.sumWeightEW)
		ref.Rows[i].UncertaintyNS = 1 / math.Sqrt(acc.sumWeightNS)
	}

	return ref
}

/*****************************************************************************************************************/
