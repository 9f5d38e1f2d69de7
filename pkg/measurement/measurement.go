/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package measurement

/*****************************************************************************************************************/

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cascade-survey/assoc/pkg/astrometry"
)

/*****************************************************************************************************************/

// Measurement is an immutable point-source detection read from a single image's catalogue.
// UncertaintyEW and UncertaintyNS are the fitted positional uncertainties, in degrees, as the
// catalogue reports them; Load adds the astrometric term in quadrature and applies the
// FLUX_PERC_ERROR floor to the flux errors.
type Measurement struct {
	ID             string
	RA             float64
	Dec            float64
	UncertaintyEW  float64
	UncertaintyNS  float64
	FluxInt        float64
	FluxIntErr     float64
	FluxPeak       float64
	FluxPeakErr    float64
	Forced         bool
	HasSiblings    bool
	Compactness    float64
	SNR            float64
	Image          string
	Datetime       time.Time
	Epoch          int
}

/*****************************************************************************************************************/

// Coordinate returns the equatorial position of the measurement.
func (m Measurement) Coordinate() astrometry.ICRSEquatorialCoordinate {
	return astrometry.ICRSEquatorialCoordinate{RA: m.RA, Dec: m.Dec}
}

/*****************************************************************************************************************/

// Validate reports whether m's coordinates and fit uncertainties are usable by the core:
// RA and Dec must be finite and in range, and both positional uncertainties must be
// strictly positive (a zero or negative uncertainty would make the inverse-variance
// weight infinite or undefined). Callers surface a failure as an InputError, fatal for
// the enclosing sky-region group, per §7.
func (m Measurement) Validate() error {
	if math.IsNaN(m.RA) || math.IsInf(m.RA, 0) || m.RA < 0 || m.RA >= 360 {
		return fmt.Errorf("measurement %q: ra %v out of range [0, 360)", m.ID, m.RA)
	}

	if math.IsNaN(m.Dec) || math.IsInf(m.Dec, 0) || m.Dec < -90 || m.Dec > 90 {
		return fmt.Errorf("measurement %q: dec %v out of range [-90, 90]", m.ID, m.Dec)
	}

	if m.UncertaintyEW <= 0 || math.IsNaN(m.UncertaintyEW) {
		return fmt.Errorf("measurement %q: uncertainty_ew %v must be positive", m.ID, m.UncertaintyEW)
	}

	if m.UncertaintyNS <= 0 || math.IsNaN(m.UncertaintyNS) {
		return fmt.Errorf("measurement %q: uncertainty_ns %v must be positive", m.ID, m.UncertaintyNS)
	}

	return nil
}

/*****************************************************************************************************************/

// Unassigned is the sentinel identity for a row with no associated source yet.
const Unassigned = -1

/*****************************************************************************************************************/

// Row is a Measurement augmented with the columns the associator maintains across epochs:
// the identity currently assigned to it, the peer identities it has been related to by
// conflict resolution, the angular separation and de Ruiter distance recorded at match
// time, the inverse-variance weights used by the running aggregator, and the pre-
// aggregation position the measurement was observed at.
type Row struct {
	Measurement

	Source  int
	Related map[int]struct{}
	D2D     float64
	DR      float64

	WeightEW  float64
	WeightNS  float64
	InterimEW float64
	InterimNS float64

	RASource  float64
	DecSource float64
}

/*****************************************************************************************************************/

// NewRow builds a Row from a Measurement, computing its inverse-variance weights and
// leaving it unassigned (Source = Unassigned, Related = nil, D2D = 0, DR = 0).
func NewRow(m Measurement) Row {
	weightEW := 1 / (m.UncertaintyEW * m.UncertaintyEW)
	weightNS := 1 / (m.UncertaintyNS * m.UncertaintyNS)

	return Row{
		Measurement: m,
		Source:      Unassigned,
		WeightEW:    weightEW,
		WeightNS:    weightNS,
		InterimEW:   m.RA * weightEW,
		InterimNS:   m.Dec * weightNS,
		RASource:    m.RA,
		DecSource:   m.Dec,
	}
}

/*****************************************************************************************************************/

// AddRelated adds peer to this row's related set. It records one direction only: the
// caller records the reverse relation on the peer's rows. Invariant 5 requires that a
// relation, once recorded, is never silently dropped by a later merge.
func (r *Row) AddRelated(peer int) {
	if r.Related == nil {
		r.Related = make(map[int]struct{})
	}

	r.Related[peer] = struct{}{}
}

/*****************************************************************************************************************/

// RelatedIdentities returns the row's related peers as a sorted, stable slice.
func (r Row) RelatedIdentities() []int {
	if len(r.Related) == 0 {
		return nil
	}

	out := make([]int, 0, len(r.Related))
	for id := range r.Related {
		out = append(out, id)
	}

	sort.Ints(out)

	return out
}

/*****************************************************************************************************************/
