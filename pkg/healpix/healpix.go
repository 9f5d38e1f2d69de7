/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package healpix

/*****************************************************************************************************************/

import (
	"math"

	"github.com/cascade-survey/assoc/pkg/astrometry"
	"github.com/cascade-survey/assoc/pkg/projection"
)

/*****************************************************************************************************************/

type HealPIX struct {
	Longitude             float64
	Latitude              float64
	PolarLatitudeBoundary float64
	Resolution            int
}

/*****************************************************************************************************************/

// HEALPix, i.e., the "Hierarchical Equal Area isoLatitude Pixelization", is a versatile structure for the
// pixelization of coordinates on the sphere. NewHealPIX builds a pixelization with the given grid
// resolution, the number of cells along each cartesian axis of the projected map.
func NewHealPIX(resolution int) *HealPIX {
	if resolution < 1 {
		resolution = 1
	}

	return &HealPIX{
		Longitude:             180.0,
		Latitude:              0.0,
		PolarLatitudeBoundary: 2.0 / 3.0, // a bound on sin(Dec), i.e. |Dec| of approximately 41.8103 degrees
		Resolution:            resolution,
	}
}

/*****************************************************************************************************************/

// ConvertEquatorialToCartesian converts equatorial coordinates (RA, Dec) to cartesian coordinates (x, y)
// using the HEALPix projection, see (https://healpix.sourceforge.io/) for further detail.
// The HEALPix projection is a hybrid projection that uses the interrupted Collignon projection for the
// polar regions and the Lambert-cylindrical closer to the equator.
func (h *HealPIX) ConvertEquatorialToCartesian(
	eq astrometry.ICRSEquatorialCoordinate,
) (x, y float64) {
	z := math.Sin(projection.Radians(eq.Dec))

	// Closer to the equator, we use the Lambert cylindrical projection:
	if math.Abs(z) <= h.PolarLatitudeBoundary {
		return projection.ConvertEquatorialToLambertCylindricalCartesian(eq, z)
	}

	// Closer to the polar regions, we use the interrupted Collignon projection:
	return projection.ConvertEquatorialToInterruptedCollignonCartesian(eq, z)
}

/*****************************************************************************************************************/

// Pixel identifies the discrete sky-region cell a position falls into, pixelized at this
// HealPIX's Resolution.
func (h *HealPIX) Pixel(eq astrometry.ICRSEquatorialCoordinate) int {
	x, y := h.ConvertEquatorialToCartesian(eq)

	// The equatorial projection returns x as the RA itself, in [0, 360); fold it onto
	// [-180, 180] so both projections share one range:
	if x > 180 {
		x -= 360
	}

	// x ranges over [-180, 180], y over [-90, 90]; bin each into Resolution cells and pack
	// the two bin indices into a single, collision-free pixel identity.
	col := int((x + 180) / (360.0 / float64(h.Resolution)))
	row := int((y + 90) / (180.0 / float64(h.Resolution)))

	if col >= h.Resolution {
		col = h.Resolution - 1
	}
	if col < 0 {
		col = 0
	}
	if row >= h.Resolution {
		row = h.Resolution - 1
	}
	if row < 0 {
		row = 0
	}

	return row*h.Resolution + col
}

/*****************************************************************************************************************/
