/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package associate

/*****************************************************************************************************************/

import (
	"github.com/cascade-survey/assoc/pkg/geometry"
	"github.com/cascade-survey/assoc/pkg/measurement"
)

/*****************************************************************************************************************/

// Basic runs the C3 nearest-neighbour associator: every row of batch is matched to its
// nearest reference row within limitArcsec, one-to-many conflicts are resolved by
// forking the losing rows onto fresh identities (duplicating their forked winner's
// history), and the processed batch - including any forked historical rows - is appended
// to frame. ref is extended in place with every newly minted identity.
func Basic(frame *measurement.Frame, ref *measurement.ReferenceFrame, batch *measurement.Frame, limitArcsec float64) error {
	if limitArcsec <= 0 {
		return newError(ConfigError, nil, "association radius must be positive, got %f", limitArcsec)
	}

	matches, err := geometry.MatchNearest(ref.Coordinates(), batch.Coordinates())
	if err != nil {
		return newError(GeometryError, err, "failed to build nearest-neighbour index")
	}

	for i := range batch.Rows {
		if matches[i].Index == -1 || matches[i].D2D > limitArcsec {
			continue
		}

		batch.Rows[i].Source = ref.Rows[matches[i].Index].Identity
		batch.Rows[i].D2D = matches[i].D2D
	}

	resolveOneToManyBasic(frame, ref, batch)

	assignFreshIdentities(ref, batch)

	frame.Rows = append(frame.Rows, batch.Rows...)

	return nil
}

/*****************************************************************************************************************/

// resolveOneToManyBasic keeps, for every reference identity matched by more than one
// batch row, only the minimum-D2D row at that identity; every other row is forked onto a
// fresh identity that inherits the winner's entire history (every row in frame currently
// bearing the winner's identity is duplicated under the new one).
func resolveOneToManyBasic(frame *measurement.Frame, ref *measurement.ReferenceFrame, batch *measurement.Frame) {
	groups := make(map[int][]int)
	for i, row := range batch.Rows {
		if row.Source == measurement.Unassigned {
			continue
		}
		groups[row.Source] = append(groups[row.Source], i)
	}

	var forkedHistory []measurement.Row

	for identity, indices := range groups {
		if len(indices) < 2 {
			continue
		}

		winner := indices[0]
		for _, idx := range indices[1:] {
			if batch.Rows[idx].D2D < batch.Rows[winner].D2D {
				winner = idx
			}
		}

		for _, idx := range indices {
			if idx == winner {
				continue
			}

			newIdentity := ref.MaxIdentity() + 1

			batch.Rows[idx].AddRelated(identity)
			batch.Rows[winner].AddRelated(newIdentity)
			for i := range frame.Rows {
				if frame.Rows[i].Source == identity {
					frame.Rows[i].AddRelated(newIdentity)
				}
			}

			batch.Rows[idx].Source = newIdentity

			ref.Rows = append(ref.Rows, measurement.ReferenceRow{
				Identity:      newIdentity,
				RA:            batch.Rows[idx].RA,
				Dec:           batch.Rows[idx].Dec,
				UncertaintyEW: batch.Rows[idx].UncertaintyEW,
				UncertaintyNS: batch.Rows[idx].UncertaintyNS,
			})

			for _, row := range frame.Rows {
				if row.Source == identity {
					fork := row
					fork.Source = newIdentity
					forkedHistory = append(forkedHistory, fork)
				}
			}
		}
	}

	frame.Rows = append(frame.Rows, forkedHistory...)
}

/*****************************************************************************************************************/

// assignFreshIdentities mints a contiguous block of new identities for every row still
// unassigned after matching, and extends ref with one reference row per new identity.
func assignFreshIdentities(ref *measurement.ReferenceFrame, batch *measurement.Frame) {
	next := ref.MaxIdentity() + 1

	for i := range batch.Rows {
		if batch.Rows[i].Source != measurement.Unassigned {
			continue
		}

		batch.Rows[i].Source = next
		batch.Rows[i].D2D = 0

		ref.Rows = append(ref.Rows, measurement.ReferenceRow{
			Identity:      next,
			RA:            batch.Rows[i].RA,
			Dec:           batch.Rows[i].Dec,
			UncertaintyEW: batch.Rows[i].UncertaintyEW,
			UncertaintyNS: batch.Rows[i].UncertaintyNS,
		})

		next++
	}
}

/*****************************************************************************************************************/
