/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package aggregate

/*****************************************************************************************************************/

import (
	"math"
	"testing"

	"github.com/cascade-survey/assoc/pkg/measurement"
)

/*****************************************************************************************************************/

func TestRefreshComputesWeightedMean(t *testing.T) {
	m1 := measurement.NewRow(measurement.Measurement{ID: "a", RA: 10.0, Dec: -30.0, UncertaintyEW: 0.001, UncertaintyNS: 0.001})
	m1.Source = 1

	m2 := measurement.NewRow(measurement.Measurement{ID: "b", RA: 10.002, Dec: -29.998, UncertaintyEW: 0.002, UncertaintyNS: 0.002})
	m2.Source = 1

	frame := measurement.Frame{Rows: []measurement.Row{m1, m2}}
	ref := measurement.ReferenceFrame{Rows: []measurement.ReferenceRow{
		{Identity: 1, RA: m1.RA, Dec: m1.Dec, UncertaintyEW: m1.UncertaintyEW, UncertaintyNS: m1.UncertaintyNS},
	}}

	Refresh(frame, &ref)

	wantWeightEW := 1 / (0.001 * 0.001)
	otherWeightEW := 1 / (0.002 * 0.002)
	wantRA := (10.0*wantWeightEW + 10.002*otherWeightEW) / (wantWeightEW + otherWeightEW)

	if math.Abs(ref.Rows[0].RA-wantRA) > 1e-9 {
		t.Errorf("RA = %f; want %f", ref.Rows[0].RA, wantRA)
	}

	if ref.Rows[0].UncertaintyEW >= 0.001 {
		t.Errorf("UncertaintyEW = %f; want < 0.001 (combining two measurements tightens it)", ref.Rows[0].UncertaintyEW)
	}
}

/*****************************************************************************************************************/

func TestRefreshIgnoresUnassignedRows(t *testing.T) {
	row := measurement.NewRow(measurement.Measurement{ID: "a", RA: 10.0, Dec: -30.0, UncertaintyEW: 0.001, UncertaintyNS: 0.001})
	// row.Source stays measurement.Unassigned

	frame := measurement.Frame{Rows: []measurement.Row{row}}
	ref := measurement.ReferenceFrame{Rows: []measurement.ReferenceRow{
		{Identity: 1, RA: 5.0, Dec: 5.0, UncertaintyEW: 0.01, UncertaintyNS: 0.01},
	}}

	Refresh(frame, &ref)

	if ref.Rows[0].RA != 5.0 || ref.Rows[0].Dec != 5.0 {
		t.Errorf("unassigned row contributed to weighted mean: RA/Dec = %f/%f", ref.Rows[0].RA, ref.Rows[0].Dec)
	}
}

/*****************************************************************************************************************/

func TestRefreshHandlesRAWrapAroundZero(t *testing.T) {
	a := measurement.NewRow(measurement.Measurement{ID: "a", RA: 0.02, Dec: 0.0, UncertaintyEW: 0.001, UncertaintyNS: 0.001})
	a.Source = 1

	b := measurement.NewRow(measurement.Measurement{ID: "b", RA: 359.98, Dec: 0.0, UncertaintyEW: 0.001, UncertaintyNS: 0.001})
	b.Source = 1

	frame := measurement.Frame{Rows: []measurement.Row{a, b}}
	ref := measurement.ReferenceFrame{Rows: []measurement.ReferenceRow{
		{Identity: 1, RA: 0.0, Dec: 0.0, UncertaintyEW: 0.001, UncertaintyNS: 0.001},
	}}

	Refresh(frame, &ref)

	// Without wrap handling the naive mean of 0.02 and 359.98 would land at 180, the
	// opposite side of the sky; with it, the mean sits near the 0/360 boundary.
	if ref.Rows[0].RA > 10 && ref.Rows[0].RA < 350 {
		t.Errorf("RA = %f; want a value near the 0/360 boundary", ref.Rows[0].RA)
	}
}

/*****************************************************************************************************************/
