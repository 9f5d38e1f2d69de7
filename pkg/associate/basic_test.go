/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package associate

/*****************************************************************************************************************/

import (
	"testing"

	"github.com/cascade-survey/assoc/pkg/measurement"
)

/*****************************************************************************************************************/

// TestBasicSingleMatch is scenario S1: two epochs, one measurement each within radius,
// must resolve to a single identity.
func TestBasicSingleMatch(t *testing.T) {
	frame, ref := refFrom(
		measurement.NewRow(measurement.Measurement{ID: "a", RA: 10.0, Dec: -30.0, UncertaintyEW: 1.0 / 3600, UncertaintyNS: 1.0 / 3600}),
	)

	batch := measurement.NewFrame([]measurement.Measurement{
		{ID: "b", RA: 10.0, Dec: -30.0, UncertaintyEW: 1.0 / 3600, UncertaintyNS: 1.0 / 3600},
	})

	if err := Basic(&frame, &ref, &batch, 5.0); err != nil {
		t.Fatalf("Basic() error = %v", err)
	}

	if len(frame.Rows) != 2 {
		t.Fatalf("len(frame.Rows) = %d; want 2", len(frame.Rows))
	}

	if frame.Rows[1].Source != 1 {
		t.Errorf("matched row Source = %d; want 1", frame.Rows[1].Source)
	}

	if ref.MaxIdentity() != 1 {
		t.Errorf("MaxIdentity() = %d; want 1 (no new identity minted)", ref.MaxIdentity())
	}
}

/*****************************************************************************************************************/

// TestBasicOneToManyForksLoser is scenario S2: B keeps A's identity, C forks onto a fresh
// one, and both record the other as related.
func TestBasicOneToManyForksLoser(t *testing.T) {
	frame, ref := refFrom(
		measurement.NewRow(measurement.Measurement{ID: "A", RA: 10.0, Dec: -30.0, UncertaintyEW: 1.0 / 3600, UncertaintyNS: 1.0 / 3600}),
	)

	batch := measurement.NewFrame([]measurement.Measurement{
		{ID: "B", RA: 10.0001, Dec: -30.0, UncertaintyEW: 1.0 / 3600, UncertaintyNS: 1.0 / 3600},
		{ID: "C", RA: 10.0002, Dec: -30.0, UncertaintyEW: 1.0 / 3600, UncertaintyNS: 1.0 / 3600},
	})

	if err := Basic(&frame, &ref, &batch, 5.0); err != nil {
		t.Fatalf("Basic() error = %v", err)
	}

	var rowB, rowC measurement.Row
	for _, row := range frame.Rows {
		switch row.ID {
		case "B":
			rowB = row
		case "C":
			rowC = row
		}
	}

	if rowB.Source != 1 {
		t.Errorf("B.Source = %d; want 1 (winner keeps A's identity)", rowB.Source)
	}

	if rowC.Source == 1 {
		t.Errorf("C.Source = %d; want a fresh identity, not 1", rowC.Source)
	}

	if _, ok := rowB.Related[rowC.Source]; !ok {
		t.Errorf("B.Related missing C's identity %d: %v", rowC.Source, rowB.Related)
	}

	if _, ok := rowC.Related[rowB.Source]; !ok {
		t.Errorf("C.Related missing B's identity %d: %v", rowB.Source, rowC.Related)
	}
}

/*****************************************************************************************************************/

// TestBasicRAWrapMatchesAcrossZeroBoundary is scenario S3: a measurement just below 360
// degrees must still match one just above zero.
func TestBasicRAWrapMatchesAcrossZeroBoundary(t *testing.T) {
	frame, ref := refFrom(
		measurement.NewRow(measurement.Measurement{ID: "a", RA: 359.9999, Dec: 0.0, UncertaintyEW: 1.0 / 3600, UncertaintyNS: 1.0 / 3600}),
	)

	batch := measurement.NewFrame([]measurement.Measurement{
		{ID: "b", RA: 0.0001, Dec: 0.0, UncertaintyEW: 1.0 / 3600, UncertaintyNS: 1.0 / 3600},
	})

	if err := Basic(&frame, &ref, &batch, 5.0); err != nil {
		t.Fatalf("Basic() error = %v", err)
	}

	if frame.Rows[1].Source != 1 {
		t.Errorf("RA-wrap match Source = %d; want 1 (same identity across the 0/360 boundary)", frame.Rows[1].Source)
	}
}

/*****************************************************************************************************************/

func TestBasicUnmatchedRowMintsFreshIdentity(t *testing.T) {
	frame, ref := refFrom(
		measurement.NewRow(measurement.Measurement{ID: "a", RA: 10.0, Dec: -30.0, UncertaintyEW: 1.0 / 3600, UncertaintyNS: 1.0 / 3600}),
	)

	batch := measurement.NewFrame([]measurement.Measurement{
		{ID: "far", RA: 200.0, Dec: 45.0, UncertaintyEW: 1.0 / 3600, UncertaintyNS: 1.0 / 3600},
	})

	if err := Basic(&frame, &ref, &batch, 5.0); err != nil {
		t.Fatalf("Basic() error = %v", err)
	}

	if ref.MaxIdentity() != 2 {
		t.Errorf("MaxIdentity() = %d; want 2 (new identity minted for the unmatched row)", ref.MaxIdentity())
	}

	if frame.Rows[1].Source != 2 {
		t.Errorf("unmatched row Source = %d; want 2", frame.Rows[1].Source)
	}
}

/*****************************************************************************************************************/

func TestBasicRejectsNonPositiveRadius(t *testing.T) {
	frame, ref := refFrom()
	batch := measurement.NewFrame(nil)

	if err := Basic(&frame, &ref, &batch, 0); err == nil {
		t.Fatal("Basic() error = nil; want non-nil for non-positive radius")
	}
}

/*****************************************************************************************************************/
