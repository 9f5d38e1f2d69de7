/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package stats

/*****************************************************************************************************************/

import (
	"math"
	"testing"
)

/*****************************************************************************************************************/

func TestMeanEmpty(t *testing.T) {
	if Mean(nil) != 0 {
		t.Errorf("Mean(nil) = %f; want 0", Mean(nil))
	}
}

/*****************************************************************************************************************/

func TestMeanKnownValues(t *testing.T) {
	got := Mean([]float64{1, 2, 3, 4, 5})

	if math.Abs(got-3.0) > 1e-9 {
		t.Errorf("Mean(...) = %f; want 3.0", got)
	}
}

/*****************************************************************************************************************/

func TestStdDevSingleValue(t *testing.T) {
	if StdDev([]float64{5.0}) != 0 {
		t.Errorf("StdDev([5.0]) = %f; want 0", StdDev([]float64{5.0}))
	}
}

/*****************************************************************************************************************/

func TestCoefficientOfVariationConstantSeries(t *testing.T) {
	v := CoefficientOfVariation([]float64{10, 10, 10, 10})

	if v != 0 {
		t.Errorf("CoefficientOfVariation(constant) = %f; want 0", v)
	}
}

/*****************************************************************************************************************/

func TestCoefficientOfVariationZeroMean(t *testing.T) {
	v := CoefficientOfVariation([]float64{-1, 1})

	if v != 0 {
		t.Errorf("CoefficientOfVariation(zero mean) = %f; want 0", v)
	}
}

/*****************************************************************************************************************/

func TestReducedChiSquareVariabilityConstantSeriesIsZero(t *testing.T) {
	flux := []float64{10, 10, 10}
	sigma := []float64{1, 1, 1}

	eta := ReducedChiSquareVariability(flux, sigma)

	if math.Abs(eta) > 1e-9 {
		t.Errorf("ReducedChiSquareVariability(constant) = %f; want ~0", eta)
	}
}

/*****************************************************************************************************************/

func TestReducedChiSquareVariabilityDetectsVariation(t *testing.T) {
	flux := []float64{10, 20, 10}
	sigma := []float64{1, 1, 1}

	eta := ReducedChiSquareVariability(flux, sigma)

	if eta <= 0 {
		t.Errorf("ReducedChiSquareVariability(variable) = %f; want > 0", eta)
	}
}

/*****************************************************************************************************************/

func TestReducedChiSquareVariabilityRejectsMismatchedLengths(t *testing.T) {
	eta := ReducedChiSquareVariability([]float64{1, 2, 3}, []float64{1, 1})

	if eta != 0 {
		t.Errorf("ReducedChiSquareVariability(mismatched) = %f; want 0", eta)
	}
}

/*****************************************************************************************************************/

func TestReducedChiSquareVariabilityWithUnequalUncertainties(t *testing.T) {
	// weights = 1/sigma^2 = {1, 3}:
	flux := []float64{10, 0}
	sigma := []float64{1, 1 / math.Sqrt(3)}

	eta := ReducedChiSquareVariability(flux, sigma)

	if math.Abs(eta-75.0) > 1e-9 {
		t.Errorf("ReducedChiSquareVariability(unequal uncertainties) = %f; want 75.0", eta)
	}
}

/*****************************************************************************************************************/
