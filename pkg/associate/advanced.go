/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package associate

/*****************************************************************************************************************/

import (
	"sort"

	"github.com/cascade-survey/assoc/pkg/geometry"
	"github.com/cascade-survey/assoc/pkg/measurement"
)

/*****************************************************************************************************************/

// AdvancedParams configures the C4 advanced/de Ruiter associator for a single epoch
// iteration.
type AdvancedParams struct {
	Method Method

	// Limit is the arcsec search radius used directly when Method is Advanced.
	Limit float64

	// DRLimit is dr_limit, the unitless de Ruiter radius cut applied when Method is
	// DeRuiter. Ignored otherwise.
	DRLimit float64

	// BeamwidthLimit scales BeamBmajDeg into the search radius used when Method is
	// DeRuiter.
	BeamwidthLimit float64

	// BeamBmajDeg is the maximum restoring-beam major axis, in degrees, of the images
	// contributing to this epoch's batch.
	BeamBmajDeg float64
}

/*****************************************************************************************************************/

// candidate is one surviving (reference identity, batch row) pairing, carrying whichever
// distance the configured method ranks on and the related-peer set accumulated for it
// across conflict resolution. A batch row that ends up matched by more than one
// reference identity (many-to-one) produces more than one candidate, and hence more
// than one output row, for the same underlying measurement.
type candidate struct {
	refIndex   int
	batchIndex int
	identity   int
	d2d        float64
	dr         float64
	related    map[int]struct{}
}

/*****************************************************************************************************************/

func (c *candidate) addRelated(peer int) {
	if c.related == nil {
		c.related = make(map[int]struct{})
	}
	c.related[peer] = struct{}{}
}

/*****************************************************************************************************************/

func (p AdvancedParams) searchRadiusArcsec() float64 {
	if p.Method == DeRuiter {
		return p.BeamwidthLimit * (p.BeamBmajDeg * 3600.0 / 2.0)
	}
	return p.Limit
}

/*****************************************************************************************************************/

func (c candidate) rank(method Method) float64 {
	if method == DeRuiter {
		return c.dr
	}
	return c.d2d
}

/*****************************************************************************************************************/

// Advanced runs the C4 radius-bounded all-neighbours associator. Candidate pairs within
// the method-appropriate search radius are enumerated, optionally cut by de Ruiter
// radius, then resolved in the order many-to-many, one-to-many, many-to-one, exactly as
// the three conflict classes are resolved in the reference pipeline's
// advanced_association loop. ref is extended in place with every newly minted identity;
// frame receives one output row per surviving candidate plus one per unmatched batch
// row, including any forked historical rows.
func Advanced(frame *measurement.Frame, ref *measurement.ReferenceFrame, batch *measurement.Frame, params AdvancedParams) error {
	radius := params.searchRadiusArcsec()
	if radius <= 0 {
		return newError(ConfigError, nil, "advanced search radius must be positive, got %f", radius)
	}

	if params.Method == DeRuiter && params.DRLimit <= 0 {
		return newError(ConfigError, nil, "de Ruiter radius must be positive, got %f", params.DRLimit)
	}

	refCoords := ref.Coordinates()
	batchCoords := batch.Coordinates()

	pairs := geometry.SearchAround(refCoords, batchCoords, radius)

	candidates := make([]candidate, 0, len(pairs))
	for _, pair := range pairs {
		c := candidate{
			refIndex:   pair.I,
			batchIndex: pair.J,
			identity:   ref.Rows[pair.I].Identity,
			d2d:        pair.D2D,
		}

		if params.Method == DeRuiter {
			refRow := ref.Rows[pair.I]
			batchRow := batch.Rows[pair.J]
			c.dr = geometry.DeRuiter(
				refCoords[pair.I], batchCoords[pair.J],
				refRow.UncertaintyEW, refRow.UncertaintyNS,
				batchRow.UncertaintyEW, batchRow.UncertaintyNS,
			)
			if c.dr > params.DRLimit {
				continue
			}
		}

		candidates = append(candidates, c)
	}

	candidates = resolveManyToManyAdvanced(candidates, params.Method)
	candidates = resolveOneToManyAdvanced(frame, ref, batch, candidates, params.Method)
	resolveManyToOneAdvanced(candidates)

	outputRows := make([]measurement.Row, 0, len(candidates)+len(batch.Rows))
	matchedBatchRows := make(map[int]bool, len(candidates))

	for _, c := range candidates {
		row := batch.Rows[c.batchIndex]
		row.Source = c.identity
		row.D2D = c.d2d
		row.DR = c.dr
		row.Related = c.related
		outputRows = append(outputRows, row)
		matchedBatchRows[c.batchIndex] = true
	}

	next := ref.MaxIdentity() + 1
	for i := range batch.Rows {
		if matchedBatchRows[i] {
			continue
		}

		row := batch.Rows[i]
		row.Source = next
		row.D2D = 0
		row.DR = 0

		ref.Rows = append(ref.Rows, measurement.ReferenceRow{
			Identity:      next,
			RA:            row.RA,
			Dec:           row.Dec,
			UncertaintyEW: row.UncertaintyEW,
			UncertaintyNS: row.UncertaintyNS,
		})

		outputRows = append(outputRows, row)

		next++
	}

	frame.Rows = append(frame.Rows, outputRows...)

	return nil
}

/*****************************************************************************************************************/

// resolveManyToManyAdvanced drops every candidate pair whose batch row AND reference
// identity are each claimed by more than one pair, except the minimum-rank pair per
// batch row - mirroring many_to_many_advanced's groupby/transform('min') selection.
func resolveManyToManyAdvanced(candidates []candidate, method Method) []candidate {
	batchCount := make(map[int]int)
	identityCount := make(map[int]int)
	for _, c := range candidates {
		batchCount[c.batchIndex]++
		identityCount[c.identity]++
	}

	minRankByBatch := make(map[int]float64)
	for _, c := range candidates {
		if batchCount[c.batchIndex] <= 1 || identityCount[c.identity] <= 1 {
			continue
		}

		r := c.rank(method)
		if existing, ok := minRankByBatch[c.batchIndex]; !ok || r < existing {
			minRankByBatch[c.batchIndex] = r
		}
	}

	kept := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if batchCount[c.batchIndex] > 1 && identityCount[c.identity] > 1 {
			if c.rank(method) != minRankByBatch[c.batchIndex] {
				continue
			}
		}
		kept = append(kept, c)
	}

	return kept
}

/*****************************************************************************************************************/

// resolveOneToManyAdvanced keeps, for every identity claimed by more than one batch row,
// only the minimum-rank pair at that identity; every other pair is forked onto a fresh
// identity whose entire history is duplicated into frame, mirroring
// one_to_many_advanced.
func resolveOneToManyAdvanced(frame *measurement.Frame, ref *measurement.ReferenceFrame, batch *measurement.Frame, candidates []candidate, method Method) []candidate {
	groups := make(map[int][]int)
	for i, c := range candidates {
		groups[c.identity] = append(groups[c.identity], i)
	}

	identities := make([]int, 0, len(groups))
	for identity := range groups {
		identities = append(identities, identity)
	}
	sort.Ints(identities)

	var forkedHistory []measurement.Row

	for _, identity := range identities {
		indices := groups[identity]
		if len(indices) < 2 {
			continue
		}

		winner := indices[0]
		for _, idx := range indices[1:] {
			if candidates[idx].rank(method) < candidates[winner].rank(method) {
				winner = idx
			}
		}

		for _, idx := range indices {
			if idx == winner {
				continue
			}

			newIdentity := ref.MaxIdentity() + 1

			candidates[idx].addRelated(identity)
			candidates[winner].addRelated(newIdentity)
			for i := range frame.Rows {
				if frame.Rows[i].Source == identity {
					frame.Rows[i].AddRelated(newIdentity)
				}
			}

			batchRow := batch.Rows[candidates[idx].batchIndex]

			ref.Rows = append(ref.Rows, measurement.ReferenceRow{
				Identity:      newIdentity,
				RA:            batchRow.RA,
				Dec:           batchRow.Dec,
				UncertaintyEW: batchRow.UncertaintyEW,
				UncertaintyNS: batchRow.UncertaintyNS,
			})

			candidates[idx].identity = newIdentity

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

	return candidates
}

/*****************************************************************************************************************/

// resolveManyToOneAdvanced lets every surviving candidate that shares a batch row with
// another candidate (distinct reference identities matching the same new detection)
// absorb its siblings' identities into related, without minting any identity or merging
// the duplicate rows - mirroring many_to_one_advanced.
func resolveManyToOneAdvanced(candidates []candidate) {
	groups := make(map[int][]int)
	for i, c := range candidates {
		groups[c.batchIndex] = append(groups[c.batchIndex], i)
	}

	for _, indices := range groups {
		if len(indices) < 2 {
			continue
		}

		for _, idx := range indices {
			for _, peer := range indices {
				if peer == idx {
					continue
				}
				candidates[idx].addRelated(candidates[peer].identity)
			}
		}
	}
}

/*****************************************************************************************************************/
