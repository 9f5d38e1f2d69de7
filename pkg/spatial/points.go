/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package spatial

/*****************************************************************************************************************/

import (
	"math"

	"gonum.org/v1/gonum/spatial/vptree"
)

/*****************************************************************************************************************/

// Point is a unit-sphere Cartesian point carried alongside the index of the row it was
// derived from, so that a nearest-neighbour match can be mapped back onto the original
// measurement or reference frame without a secondary lookup.
type Point struct {
	X, Y, Z float64
	Index   int
}

/*****************************************************************************************************************/

// NewPoint projects an equatorial (RA, Dec) position, in degrees, onto the unit sphere.
func NewPoint(raDeg, decDeg float64, index int) Point {
	ra := raDeg * math.Pi / 180
	dec := decDeg * math.Pi / 180

	cosDec := math.Cos(dec)

	return Point{
		X:     cosDec * math.Cos(ra),
		Y:     cosDec * math.Sin(ra),
		Z:     math.Sin(dec),
		Index: index,
	}
}

/*****************************************************************************************************************/

// Distance satisfies vptree.Comparable. It returns the Euclidean chord distance between
// two unit vectors, which is a monotonic function of their great-circle separation -
// sufficient to rank candidates, but the caller must re-score with the true angular
// separation before accepting a match.
func (p Point) Distance(compare vptree.Comparable) float64 {
	q, ok := compare.(Point)
	if !ok {
		panic("spatial: incompatible type for distance calculation")
	}

	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z

	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

/*****************************************************************************************************************/

// PointIndex is a nearest-neighbour index over a fixed set of sky positions.
type PointIndex struct {
	tree   *vptree.Tree
	points []Point
}

/*****************************************************************************************************************/

// NewPointIndex builds a PointIndex over the given equatorial coordinates.
func NewPointIndex(ra, dec []float64) (*PointIndex, error) {
	points := make([]Point, len(ra))
	comparables := make([]vptree.Comparable, len(ra))

	for i := range ra {
		points[i] = NewPoint(ra[i], dec[i], i)
		comparables[i] = points[i]
	}

	if len(comparables) == 0 {
		return &PointIndex{points: points}, nil
	}

	tree, err := vptree.New(comparables, 1, nil)
	if err != nil {
		return nil, err
	}

	return &PointIndex{tree: tree, points: points}, nil
}

/*****************************************************************************************************************/

// Nearest returns the index, within the set the PointIndex was built from, of the point
// closest to (ra, dec), along with the chord distance between them.
func (idx *PointIndex) Nearest(ra, dec float64) (nearestIndex int, chordDistance float64, ok bool) {
	if idx.tree == nil {
		return 0, 0, false
	}

	query := NewPoint(ra, dec, -1)

	nearest, distance := idx.tree.Nearest(query)

	point, matched := nearest.(Point)
	if !matched {
		return 0, 0, false
	}

	return point.Index, distance, true
}

/*****************************************************************************************************************/
