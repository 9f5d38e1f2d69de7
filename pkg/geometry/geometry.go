/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package geometry

/*****************************************************************************************************************/

import (
	"math"
	"sort"

	"github.com/cascade-survey/assoc/pkg/astrometry"
	"github.com/cascade-survey/assoc/pkg/spatial"
)

/*****************************************************************************************************************/

const (
	degToRad        = math.Pi / 180
	radToDeg        = 180 / math.Pi
	arcsecPerDegree = 3600.0
)

/*****************************************************************************************************************/

// SeparationArcsec returns the great-circle angular separation between two equatorial
// positions, in arcseconds, using the haversine formula (stable at both small and large
// separations, unlike a plain spherical law of cosines).
func SeparationArcsec(a, b astrometry.ICRSEquatorialCoordinate) float64 {
	ra1, dec1 := a.RA*degToRad, a.Dec*degToRad
	ra2, dec2 := b.RA*degToRad, b.Dec*degToRad

	dRA := ra2 - ra1
	dDec := dec2 - dec1

	sinDec := math.Sin(dDec / 2)
	sinRA := math.Sin(dRA / 2)

	h := sinDec*sinDec + math.Cos(dec1)*math.Cos(dec2)*sinRA*sinRA

	// Clamp for numerical safety before taking the square root:
	if h < 0 {
		h = 0
	}
	if h > 1 {
		h = 1
	}

	return 2 * math.Asin(math.Sqrt(h)) * radToDeg * arcsecPerDegree
}

/*****************************************************************************************************************/

// deRuiterRAWrap defuses wrap-around at the 0/360 boundary by shifting each RA
// independently by ±180° when it falls within 90° of the boundary. The shift is local
// to the de Ruiter calculation only.
func deRuiterRAWrap(ra1, ra2 float64) (float64, float64) {
	if ra1 > 270 {
		ra1 -= 180
	} else if ra1 < 90 {
		ra1 += 180
	}
	if ra2 > 270 {
		ra2 -= 180
	} else if ra2 < 90 {
		ra2 += 180
	}
	return ra1, ra2
}

/*****************************************************************************************************************/

// DeRuiter returns the unitless de Ruiter radius between two position fits with
// independent EW (RA-direction) and NS (Dec-direction) uncertainties, all in degrees.
func DeRuiter(a, b astrometry.ICRSEquatorialCoordinate, aUncertaintyEW, aUncertaintyNS, bUncertaintyEW, bUncertaintyNS float64) float64 {
	ra1, ra2 := deRuiterRAWrap(a.RA, b.RA)

	ra1 *= degToRad
	ra2 *= degToRad
	dec1 := a.Dec * degToRad
	dec2 := b.Dec * degToRad

	ew1 := aUncertaintyEW * degToRad
	ew2 := bUncertaintyEW * degToRad
	ns1 := aUncertaintyNS * degToRad
	ns2 := bUncertaintyNS * degToRad

	dRA := (ra1 - ra2) * math.Cos((dec1+dec2)/2)
	termEW := (dRA * dRA) / (ew1*ew1 + ew2*ew2)

	dDec := dec1 - dec2
	termNS := (dDec * dDec) / (ns1*ns1 + ns2*ns2)

	return math.Sqrt(termEW + termNS)
}

/*****************************************************************************************************************/

// Match is the result of a nearest-neighbour lookup: the index of the matched point in
// the reference set, and the angular separation to it in arcseconds.
type Match struct {
	Index int
	D2D   float64
}

/*****************************************************************************************************************/

// MatchNearest returns, for every point in query, the nearest point in ref and the
// separation between them. If ref is empty, every result has Index -1.
func MatchNearest(ref, query []astrometry.ICRSEquatorialCoordinate) ([]Match, error) {
	matches := make([]Match, len(query))

	if len(ref) == 0 {
		for i := range matches {
			matches[i] = Match{Index: -1}
		}
		return matches, nil
	}

	refRA := make([]float64, len(ref))
	refDec := make([]float64, len(ref))
	for i, p := range ref {
		refRA[i] = p.RA
		refDec[i] = p.Dec
	}

	index, err := spatial.NewPointIndex(refRA, refDec)
	if err != nil {
		return nil, err
	}

	for i, q := range query {
		nearestIndex, _, ok := index.Nearest(q.RA, q.Dec)
		if !ok {
			matches[i] = Match{Index: -1}
			continue
		}

		// The vantage-point tree ranks candidates by chord distance, which is only
		// monotonic with great-circle separation; re-score with the true formula
		// before reporting, so the returned D2D is always the exact separation.
		matches[i] = Match{
			Index: nearestIndex,
			D2D:   SeparationArcsec(ref[nearestIndex], q),
		}
	}

	return matches, nil
}

/*****************************************************************************************************************/

// Pair is a candidate association between the i-th point of one set and the j-th point
// of another, with their true angular separation.
type Pair struct {
	I, J int
	D2D  float64
}

/*****************************************************************************************************************/

// SearchAround returns every pair (i, j) with a.RA[i]/a.Dec[i] within radiusArcsec of
// b.RA[j]/b.Dec[j], together with the true great-circle separation. Candidates are
// pre-filtered by declination banding (points further apart in Dec than the radius can
// never be within it) before the exact haversine check, which keeps this tractable for
// the batch sizes a single epoch/sky-region group produces without requiring a tree
// index that exposes a bounded-radius query (the vantage-point tree used for
// MatchNearest only exposes nearest-neighbour lookups).
func SearchAround(a, b []astrometry.ICRSEquatorialCoordinate, radiusArcsec float64) []Pair {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	radiusDeg := radiusArcsec / arcsecPerDegree

	type bucketed struct {
		index int
		dec   float64
	}

	bSorted := make([]bucketed, len(b))
	for j, p := range b {
		bSorted[j] = bucketed{index: j, dec: p.Dec}
	}
	sort.Slice(bSorted, func(i, j int) bool { return bSorted[i].dec < bSorted[j].dec })

	decs := make([]float64, len(bSorted))
	for i, bk := range bSorted {
		decs[i] = bk.dec
	}

	var pairs []Pair

	for i, p := range a {
		lo := sort.SearchFloat64s(decs, p.Dec-radiusDeg)
		hi := sort.SearchFloat64s(decs, p.Dec+radiusDeg)

		for k := lo; k < hi; k++ {
			j := bSorted[k].index
			d2d := SeparationArcsec(p, b[j])
			if d2d <= radiusArcsec {
				pairs = append(pairs, Pair{I: i, J: j, D2D: d2d})
			}
		}
	}

	return pairs
}

/*****************************************************************************************************************/
