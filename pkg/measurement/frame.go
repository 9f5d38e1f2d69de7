/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package measurement

/*****************************************************************************************************************/

import (
	"math"
	"sort"

	"github.com/cascade-survey/assoc/pkg/astrometry"
	"github.com/cascade-survey/assoc/pkg/geometry"
)

/*****************************************************************************************************************/

const arcsecPerDegree = 3600.0

/*****************************************************************************************************************/

// Frame is the running frame: an ordered sequence of measurement rows for a single
// sky-region group, spanning every epoch processed so far.
type Frame struct {
	Rows []Row
}

/*****************************************************************************************************************/

// NewFrame concatenates a batch of measurements, usually every image in one epoch, into
// a Frame with derived weights and unassigned identities.
func NewFrame(measurements []Measurement) Frame {
	rows := make([]Row, len(measurements))

	for i, m := range measurements {
		rows[i] = NewRow(m)
	}

	return Frame{Rows: rows}
}

/*****************************************************************************************************************/

// Coordinates returns the equatorial position of every row, in row order.
func (f Frame) Coordinates() []astrometry.ICRSEquatorialCoordinate {
	coords := make([]astrometry.ICRSEquatorialCoordinate, len(f.Rows))

	for i, row := range f.Rows {
		coords[i] = row.Coordinate()
	}

	return coords
}

/*****************************************************************************************************************/

// BySource returns, in row order, every row carrying the given identity.
func (f Frame) BySource(identity int) []Row {
	var rows []Row
	for _, row := range f.Rows {
		if row.Source == identity {
			rows = append(rows, row)
		}
	}
	return rows
}

/*****************************************************************************************************************/

// MaxSource returns the greatest identity assigned to any row, or 0 if the frame has no
// assigned rows.
func (f Frame) MaxSource() int {
	max := 0
	for _, row := range f.Rows {
		if row.Source > max {
			max = row.Source
		}
	}
	return max
}

/*****************************************************************************************************************/

// SourceIDs returns every distinct identity present in the frame, sorted ascending.
// Unassigned rows (Source == Unassigned) are excluded.
func (f Frame) SourceIDs() []int {
	seen := make(map[int]struct{})
	for _, row := range f.Rows {
		if row.Source == Unassigned {
			continue
		}
		seen[row.Source] = struct{}{}
	}

	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

/*****************************************************************************************************************/

// PruneDuplicates drops within-batch rows that fall within radiusArcsec of an
// already-kept row, keeping the first occurrence in row order. It returns a new Frame;
// the receiver is unmodified.
func (f Frame) PruneDuplicates(radiusArcsec float64) Frame {
	if len(f.Rows) < 2 || radiusArcsec <= 0 {
		return f
	}

	coords := f.Coordinates()

	dropped := make([]bool, len(f.Rows))

	pairs := geometry.SearchAround(coords, coords, radiusArcsec)
	for _, pair := range pairs {
		if pair.I == pair.J {
			continue
		}

		// Keep whichever of the pair comes first in row order, drop the later one,
		// unless it has already been dropped by an earlier, closer neighbour.
		if pair.I < pair.J && !dropped[pair.I] {
			dropped[pair.J] = true
		}
	}

	kept := make([]Row, 0, len(f.Rows))
	for i, row := range f.Rows {
		if !dropped[i] {
			kept = append(kept, row)
		}
	}

	return Frame{Rows: kept}
}

/*****************************************************************************************************************/

// LoadParams configures measurement.Load's derivation of final positional uncertainties
// and flux-error floors from the raw, as-fitted values a catalogue reports.
type LoadParams struct {
	// AstrometricUncertaintyRA/Dec are added in quadrature to the fitted positional
	// uncertainty, in arcsec.
	AstrometricUncertaintyRA  float64
	AstrometricUncertaintyDec float64

	// FluxPercError floors flux_int_err/flux_peak_err at this fraction of the
	// corresponding flux, guarding against underestimated fit errors on bright sources.
	FluxPercError float64

	// DuplicateLimit is the within-batch deduplication radius, in arcsec. Zero disables
	// deduplication.
	DuplicateLimit float64
}

/*****************************************************************************************************************/

// Load concatenates a batch of measurements - typically every image contributing to one
// epoch - into a Frame: every measurement is validated first (InputError, §7), the
// astrometric uncertainty is added in quadrature to each measurement's fitted positional
// uncertainty, flux errors are floored at FluxPercError·flux, within-batch near-coincident
// rows are pruned (keeping the first), and every row starts unassigned (Source =
// Unassigned, Related = nil, D2D = 0, DR = 0).
func Load(batch []Measurement, params LoadParams) (Frame, error) {
	astrometricEW := params.AstrometricUncertaintyRA / arcsecPerDegree
	astrometricNS := params.AstrometricUncertaintyDec / arcsecPerDegree

	prepared := make([]Measurement, len(batch))
	for i, m := range batch {
		if err := m.Validate(); err != nil {
			return Frame{}, err
		}

		m.UncertaintyEW = math.Hypot(m.UncertaintyEW, astrometricEW)
		m.UncertaintyNS = math.Hypot(m.UncertaintyNS, astrometricNS)

		if floor := params.FluxPercError * m.FluxInt; m.FluxIntErr < floor {
			m.FluxIntErr = floor
		}
		if floor := params.FluxPercError * m.FluxPeak; m.FluxPeakErr < floor {
			m.FluxPeakErr = floor
		}

		prepared[i] = m
	}

	frame := NewFrame(prepared)

	return frame.PruneDuplicates(params.DuplicateLimit), nil
}

/*****************************************************************************************************************/

// ReferenceRow is one currently-live identity's running weighted-mean position.
type ReferenceRow struct {
	Identity      int
	RA            float64
	Dec           float64
	UncertaintyEW float64
	UncertaintyNS float64
}

/*****************************************************************************************************************/

// ReferenceFrame holds one row per currently live identity.
type ReferenceFrame struct {
	Rows []ReferenceRow
}

/*****************************************************************************************************************/

// Coordinates returns the equatorial position of every reference row, in row order.
func (rf ReferenceFrame) Coordinates() []astrometry.ICRSEquatorialCoordinate {
	coords := make([]astrometry.ICRSEquatorialCoordinate, len(rf.Rows))

	for i, row := range rf.Rows {
		coords[i] = astrometry.ICRSEquatorialCoordinate{RA: row.RA, Dec: row.Dec}
	}

	return coords
}

/*****************************************************************************************************************/

// MaxIdentity returns the greatest identity present, or 0 if the reference frame is empty.
func (rf ReferenceFrame) MaxIdentity() int {
	max := 0
	for _, row := range rf.Rows {
		if row.Identity > max {
			max = row.Identity
		}
	}
	return max
}

/*****************************************************************************************************************/

// NewInitialReference builds the initial reference frame for a sky-region group from the
// first epoch's batch: every row of f is assigned a dense identity starting at 1, and the
// reference frame is a position-only copy of that assignment.
func NewInitialReference(f *Frame) ReferenceFrame {
	refs := make([]ReferenceRow, len(f.Rows))

	for i := range f.Rows {
		identity := i + 1

		f.Rows[i].Source = identity

		refs[i] = ReferenceRow{
			Identity:      identity,
			RA:            f.Rows[i].RA,
			Dec:           f.Rows[i].Dec,
			UncertaintyEW: f.Rows[i].UncertaintyEW,
			UncertaintyNS: f.Rows[i].UncertaintyNS,
		}
	}

	return ReferenceFrame{Rows: refs}
}

/*****************************************************************************************************************/
