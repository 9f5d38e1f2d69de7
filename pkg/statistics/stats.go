/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package stats

/*****************************************************************************************************************/

import (
	"gonum.org/v1/gonum/stat"
)

/*****************************************************************************************************************/

// Mean returns the unweighted arithmetic mean of x. Returns 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return stat.Mean(x, nil)
}

/*****************************************************************************************************************/

// StdDev returns the unweighted sample standard deviation of x. Returns 0 for fewer than
// two values.
func StdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}

	return stat.StdDev(x, nil)
}

/*****************************************************************************************************************/

// CoefficientOfVariation is the "V" variability metric: the sample standard deviation of a
// set of flux measurements divided by their mean. Returns 0 when there are fewer than two
// measurements or the mean is zero.
func CoefficientOfVariation(flux []float64) float64 {
	mean := Mean(flux)
	if mean == 0 {
		return 0
	}

	return StdDev(flux) / mean
}

/*****************************************************************************************************************/

// ReducedChiSquareVariability is the "eta" variability metric: a weighted reduced
// chi-square statistic comparing each flux measurement against the weighted mean of the
// set, where weight is the inverse variance (1/uncertainty^2) of that measurement. Returns
// 0 for fewer than two measurements, or when any uncertainty is non-positive.
func ReducedChiSquareVariability(flux, uncertainty []float64) float64 {
	n := len(flux)
	if n < 2 || n != len(uncertainty) {
		return 0
	}

	weights := make([]float64, n)
	var sumWeights, sumWeightedFlux, sumWeightedFluxSq float64

	for i := range flux {
		if uncertainty[i] <= 0 {
			return 0
		}

		w := 1 / (uncertainty[i] * uncertainty[i])
		weights[i] = w

		sumWeights += w
		sumWeightedFlux += w * flux[i]
		sumWeightedFluxSq += w * flux[i] * flux[i]
	}

	if sumWeights == 0 {
		return 0
	}

	variance := sumWeightedFluxSq - (sumWeightedFlux*sumWeightedFlux)/sumWeights

	return variance / float64(n-1)
}

/*****************************************************************************************************************/
