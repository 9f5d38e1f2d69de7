/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package source

/*****************************************************************************************************************/

import (
	"fmt"
	"math"
	"sort"

	"github.com/cascade-survey/assoc/pkg/measurement"
	stats "github.com/cascade-survey/assoc/pkg/statistics"
)

/*****************************************************************************************************************/

// Record is the finalised per-identity output of C6: one row per surviving identity in a
// sky-region group's running frame.
type Record struct {
	Identity int
	Name     string

	WAvgRA            float64
	WAvgDec           float64
	WAvgUncertaintyEW float64
	WAvgUncertaintyNS float64

	AvgFluxInt  float64
	AvgFluxPeak float64
	MaxFluxPeak float64

	VInt  float64
	VPeak float64

	EtaInt  float64
	EtaPeak float64

	New     bool
	NMeas   int
	Related []int
}

/*****************************************************************************************************************/

// Finalize computes one Record per identity present in frame, using ref for the final
// weighted-mean position (the reference frame as it stands after the last call to
// aggregate.Refresh). An identity is marked New iff none of its rows originate from an
// image in initialEpochImages - the image set of the chronologically earliest epoch, per
// the §9 Open Question 2 resolution.
func Finalize(frame measurement.Frame, ref measurement.ReferenceFrame, initialEpochImages map[string]bool) []Record {
	buckets := make(map[int]*bucket)
	order := make([]int, 0)

	for _, row := range frame.Rows {
		if row.Source == measurement.Unassigned {
			continue
		}

		b, ok := buckets[row.Source]
		if !ok {
			b = &bucket{related: make(map[int]struct{})}
			buckets[row.Source] = b
			order = append(order, row.Source)
		}

		b.rows = append(b.rows, row)
		if initialEpochImages[row.Image] {
			b.sawInitial = true
		}
		for peer := range row.Related {
			b.related[peer] = struct{}{}
		}
	}

	sort.Ints(order)

	closure := transitiveClosure(buckets)

	refByIdentity := make(map[int]measurement.ReferenceRow, len(ref.Rows))
	for _, r := range ref.Rows {
		refByIdentity[r.Identity] = r
	}

	records := make([]Record, 0, len(order))

	for _, identity := range order {
		b := buckets[identity]

		fluxInt := make([]float64, len(b.rows))
		fluxPeak := make([]float64, len(b.rows))
		fluxIntErr := make([]float64, len(b.rows))
		fluxPeakErr := make([]float64, len(b.rows))

		maxFluxPeak := math.Inf(-1)
		for i, row := range b.rows {
			fluxInt[i] = row.FluxInt
			fluxPeak[i] = row.FluxPeak
			fluxIntErr[i] = row.FluxIntErr
			fluxPeakErr[i] = row.FluxPeakErr

			if row.FluxPeak > maxFluxPeak {
				maxFluxPeak = row.FluxPeak
			}
		}

		r := refByIdentity[identity]

		record := Record{
			Identity:          identity,
			WAvgRA:            r.RA,
			WAvgDec:           r.Dec,
			WAvgUncertaintyEW: r.UncertaintyEW,
			WAvgUncertaintyNS: r.UncertaintyNS,
			AvgFluxInt:        stats.Mean(fluxInt),
			AvgFluxPeak:       stats.Mean(fluxPeak),
			MaxFluxPeak:       maxFluxPeak,
			VInt:              nanToZero(stats.CoefficientOfVariation(fluxInt)),
			VPeak:             nanToZero(stats.CoefficientOfVariation(fluxPeak)),
			EtaInt:            nanToZero(stats.ReducedChiSquareVariability(fluxInt, fluxIntErr)),
			EtaPeak:           nanToZero(stats.ReducedChiSquareVariability(fluxPeak, fluxPeakErr)),
			New:               !b.sawInitial,
			NMeas:             len(b.rows),
			Related:           closure[identity],
		}
		record.Name = name(record.WAvgRA, record.WAvgDec)

		records = append(records, record)
	}

	return records
}

/*****************************************************************************************************************/

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

/*****************************************************************************************************************/

// transitiveClosure resolves §9 Open Question 1: when a forked identity is itself
// forked later, the related set exposed on the final Record is the full transitive
// closure of every relation recorded across the identity's lifetime, not just its
// direct peers.
func transitiveClosure(buckets map[int]*bucket) map[int][]int {
	adjacency := make(map[int]map[int]struct{}, len(buckets))
	for identity, b := range buckets {
		adjacency[identity] = b.related
	}

	closure := make(map[int][]int, len(buckets))

	for identity := range buckets {
		visited := map[int]struct{}{identity: {}}
		queue := []int{identity}

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			for peer := range adjacency[current] {
				if _, seen := visited[peer]; seen {
					continue
				}
				visited[peer] = struct{}{}
				queue = append(queue, peer)
			}
		}

		delete(visited, identity)

		peers := make([]int, 0, len(visited))
		for peer := range visited {
			peers = append(peers, peer)
		}
		sort.Ints(peers)

		closure[identity] = peers
	}

	return closure
}

/*****************************************************************************************************************/

// bucket accumulates one identity's rows and directly-related peers while Finalize walks
// the running frame.
type bucket struct {
	rows       []measurement.Row
	related    map[int]struct{}
	sawInitial bool
}

/*****************************************************************************************************************/

// name derives a source name from the weighted-mean position in the HMS/DMS convention
// common to radio catalogues, prefixed "src_".
func name(raDeg, decDeg float64) string {
	raHours := raDeg / 15.0
	if raHours < 0 {
		raHours += 24
	}

	h := int(raHours)
	remMin := (raHours - float64(h)) * 60
	m := int(remMin)
	s := (remMin - float64(m)) * 60

	sign := "+"
	dec := decDeg
	if dec < 0 {
		sign = "-"
		dec = -dec
	}

	d := int(dec)
	remArcmin := (dec - float64(d)) * 60
	am := int(remArcmin)
	as := (remArcmin - float64(am)) * 60

	return fmt.Sprintf("src_%02d%02d%05.2f%s%02d%02d%04.1f", h, m, s, sign, d, am, as)
}

/*****************************************************************************************************************/
