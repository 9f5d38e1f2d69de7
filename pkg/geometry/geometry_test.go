/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package geometry

/*****************************************************************************************************************/

import (
	"math"
	"testing"

	"github.com/cascade-survey/assoc/pkg/astrometry"
)

/*****************************************************************************************************************/

// Helper function to compare floating-point numbers with tolerance
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

/*****************************************************************************************************************/

func TestSeparationArcsecCoincident(t *testing.T) {
	a := astrometry.ICRSEquatorialCoordinate{RA: 10.0, Dec: -30.0}

	d2d := SeparationArcsec(a, a)

	if !almostEqual(d2d, 0, 1e-9) {
		t.Errorf("SeparationArcsec(a, a) = %f; want 0", d2d)
	}
}

/*****************************************************************************************************************/

func TestSeparationArcsecKnownOffset(t *testing.T) {
	a := astrometry.ICRSEquatorialCoordinate{RA: 10.0, Dec: 0.0}
	b := astrometry.ICRSEquatorialCoordinate{RA: 10.0, Dec: 0.0 + 1.0/3600.0}

	d2d := SeparationArcsec(a, b)

	if !almostEqual(d2d, 1.0, 1e-3) {
		t.Errorf("SeparationArcsec(a, b) = %f; want ~1.0 arcsec", d2d)
	}
}

/*****************************************************************************************************************/

func TestSeparationArcsecRAWrap(t *testing.T) {
	a := astrometry.ICRSEquatorialCoordinate{RA: 359.9999, Dec: 0.0}
	b := astrometry.ICRSEquatorialCoordinate{RA: 0.0001, Dec: 0.0}

	d2d := SeparationArcsec(a, b)

	// 0.0002 degrees of RA at the equator is 0.72 arcsec:
	if d2d > 2.0 {
		t.Errorf("SeparationArcsec across the RA wrap = %f; want < 2.0 arcsec", d2d)
	}
}

/*****************************************************************************************************************/

func TestDeRuiterKnownSeparation(t *testing.T) {
	a := astrometry.ICRSEquatorialCoordinate{RA: 10.0, Dec: 0.0}
	b := astrometry.ICRSEquatorialCoordinate{RA: 10.0, Dec: 3.0 / 3600.0}

	// Per-fit uncertainty chosen so the two fits combine in quadrature to 0.5" per axis:
	sigma := 0.5 / 3600.0 / math.Sqrt2

	dr := DeRuiter(a, b, sigma, sigma, sigma, sigma)

	// Separated by 3" with 0.5" uncertainty in quadrature on each axis: dr = 3/0.5 = 6:
	if dr < 5.5 || dr > 6.5 {
		t.Errorf("DeRuiter(a, b) = %f; want ~6.0", dr)
	}
}

/*****************************************************************************************************************/

func TestDeRuiterRAWrapMatchesTrueSeparation(t *testing.T) {
	a := astrometry.ICRSEquatorialCoordinate{RA: 359.9999, Dec: 0.0}
	b := astrometry.ICRSEquatorialCoordinate{RA: 0.0001, Dec: 0.0}

	sigma := 1.0 / 3600.0

	dr := DeRuiter(a, b, sigma, sigma, sigma, sigma)

	// True separation is ~0.0002 degrees = 0.72 arcsec, well within a 1 arcsec
	// uncertainty on each axis: dr should stay small, not blow up from the raw ~360
	// degree difference between the unshifted RAs.
	if dr > 2.0 {
		t.Errorf("DeRuiter across the RA wrap = %f; want < 2.0 (unshifted would be enormous)", dr)
	}
}

/*****************************************************************************************************************/

func TestMatchNearestWithinLimit(t *testing.T) {
	ref := []astrometry.ICRSEquatorialCoordinate{
		{RA: 10.0, Dec: -30.0},
		{RA: 200.0, Dec: 45.0},
	}

	query := []astrometry.ICRSEquatorialCoordinate{
		{RA: 10.0001, Dec: -30.0},
	}

	matches, err := MatchNearest(ref, query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}

	if matches[0].Index != 0 {
		t.Errorf("matches[0].Index = %d; want 0", matches[0].Index)
	}

	if matches[0].D2D > 5.0 {
		t.Errorf("matches[0].D2D = %f; want < 5 arcsec", matches[0].D2D)
	}
}

/*****************************************************************************************************************/

func TestMatchNearestEmptyReference(t *testing.T) {
	query := []astrometry.ICRSEquatorialCoordinate{{RA: 10.0, Dec: -30.0}}

	matches, err := MatchNearest(nil, query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if matches[0].Index != -1 {
		t.Errorf("matches[0].Index = %d; want -1 for an empty reference set", matches[0].Index)
	}
}

/*****************************************************************************************************************/

func TestSearchAroundFindsAllPairsWithinRadius(t *testing.T) {
	a := []astrometry.ICRSEquatorialCoordinate{
		{RA: 10.0, Dec: -30.0},
		{RA: 200.0, Dec: 45.0},
	}

	b := []astrometry.ICRSEquatorialCoordinate{
		{RA: 10.0001, Dec: -30.0},
		{RA: 200.1, Dec: 45.0},
	}

	pairs := SearchAround(a, b, 5.0)

	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair within 5 arcsec, got %d", len(pairs))
	}

	if pairs[0].I != 0 || pairs[0].J != 0 {
		t.Errorf("pairs[0] = %+v; want I=0, J=0", pairs[0])
	}
}

/*****************************************************************************************************************/

func TestSearchAroundEmptySets(t *testing.T) {
	pairs := SearchAround(nil, nil, 5.0)

	if pairs != nil {
		t.Errorf("expected nil pairs for empty inputs, got %v", pairs)
	}
}

/*****************************************************************************************************************/
