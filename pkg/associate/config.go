/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package associate

/*****************************************************************************************************************/

// Method selects which associator flavour resolves a new epoch's batch against the
// current reference frame.
type Method string

/*****************************************************************************************************************/

const (
	Basic    Method = "basic"
	Advanced Method = "advanced"
	DeRuiter Method = "deruiter"
)

/*****************************************************************************************************************/

// Config is the subset of the pipeline's enumerated configuration the associator
// consumes directly.
type Config struct {
	Method                    Method
	AssociationRadius         float64 // arcsec, search radius for Basic and Advanced
	DeRuiterRadius            float64 // unitless, dr_limit for DeRuiter
	BeamwidthLimit            float64 // multiplier of beam half-major-axis, the DeRuiter search window
	AstrometricUncertaintyRA  float64 // arcsec
	AstrometricUncertaintyDec float64 // arcsec
	FluxPercError             float64 // fraction
	DuplicateLimit            float64 // arcsec
	MinNewSourceSigma         float64 // sigma, used downstream of the core, not by it
}

/*****************************************************************************************************************/

// Validate checks the configuration is internally consistent, returning a ConfigError
// describing the first problem found.
func (c Config) Validate() error {
	switch c.Method {
	case Basic, Advanced, DeRuiter:
	default:
		return newError(ConfigError, nil, "unknown association method %q", c.Method)
	}

	if c.Method == Basic && c.AssociationRadius <= 0 {
		return newError(ConfigError, nil, "association radius must be positive, got %f", c.AssociationRadius)
	}

	if c.Method == DeRuiter && c.DeRuiterRadius <= 0 {
		return newError(ConfigError, nil, "de Ruiter radius must be positive, got %f", c.DeRuiterRadius)
	}

	if (c.Method == Advanced || c.Method == DeRuiter) && c.BeamwidthLimit <= 0 {
		return newError(ConfigError, nil, "beamwidth limit must be positive, got %f", c.BeamwidthLimit)
	}

	if c.DuplicateLimit < 0 {
		return newError(ConfigError, nil, "duplicate limit must not be negative, got %f", c.DuplicateLimit)
	}

	return nil
}

/*****************************************************************************************************************/
