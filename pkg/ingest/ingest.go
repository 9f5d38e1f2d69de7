/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package ingest

/*****************************************************************************************************************/

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cascade-survey/assoc/pkg/measurement"
)

/*****************************************************************************************************************/

// ImageDescriptor is the subset of an image's catalogue record the core needs to drive
// association: which epoch and sky-region group it belongs to, the beam size used by the
// advanced/de Ruiter search radius, and where to load its measurements from.
type ImageDescriptor struct {
	ImageID          int     `json:"imageId"`
	Name             string  `json:"name"`
	Epoch            int     `json:"epoch"`
	BeamBmaj         float64 `json:"beamBmaj"`
	SkyRegGroup      int     `json:"skyRegGroup"`
	MeasurementsPath string  `json:"measurementsPath"`

	// FieldRA/FieldDec are the image footprint's centre, in degrees. They are not part
	// of the §6 core contract (the core only consumes the already-assigned
	// SkyRegGroup), but region.AssignGroups uses them as the expansion's upstream
	// helper for callers that have not pre-computed sky-region groups themselves.
	FieldRA  float64 `json:"fieldRa"`
	FieldDec float64 `json:"fieldDec"`
}

/*****************************************************************************************************************/

// measurementRecord is the on-disk JSON shape for one measurement row, matching the
// catalogue fields the core's Measurement type carries.
type measurementRecord struct {
	ID            string    `json:"id"`
	RA            float64   `json:"ra"`
	Dec           float64   `json:"dec"`
	UncertaintyEW float64   `json:"uncertaintyEw"`
	UncertaintyNS float64   `json:"uncertaintyNs"`
	FluxInt       float64   `json:"fluxInt"`
	FluxIntErr    float64   `json:"fluxIntErr"`
	FluxPeak      float64   `json:"fluxPeak"`
	FluxPeakErr   float64   `json:"fluxPeakErr"`
	Forced        bool      `json:"forced"`
	HasSiblings   bool      `json:"hasSiblings"`
	Compactness   float64   `json:"compactness"`
	SNR           float64   `json:"snr"`
	Image         string    `json:"image"`
	Datetime      time.Time `json:"datetime"`
	Epoch         int       `json:"epoch"`
}

/*****************************************************************************************************************/

// Loader is the core's side-effect-free, deterministic contract onto the external
// ingestion layer: given a measurements_path, it returns the measurement rows it holds.
type Loader interface {
	Load(path string) ([]Measurement, error)
}

/*****************************************************************************************************************/

// Measurement is a type alias so callers of Loader don't need to import pkg/measurement
// directly just to satisfy the interface; ingest.Measurement and measurement.Measurement
// are the same type.
type Measurement = measurement.Measurement

/*****************************************************************************************************************/

// JSONService reads one JSON array of measurements per path from the local filesystem.
// It is grounded on pkg/catalog's typed-service-plus-constructor shape: a small struct
// holding configuration, built by a constructor, exposing one method that performs the
// read.
type JSONService struct {
	// BaseDir, if set, is joined with every path passed to Load, so callers can refer to
	// measurements by a path relative to a single catalogue root.
	BaseDir string
}

/*****************************************************************************************************************/

// NewJSONService constructs a JSONService rooted at baseDir. An empty baseDir leaves
// paths passed to Load untouched.
func NewJSONService(baseDir string) *JSONService {
	return &JSONService{BaseDir: baseDir}
}

/*****************************************************************************************************************/

func (s *JSONService) resolve(path string) string {
	if s.BaseDir == "" {
		return path
	}
	return s.BaseDir + string(os.PathSeparator) + path
}

/*****************************************************************************************************************/

// Load reads and decodes the JSON array of measurements at path. It performs no
// mutation and is safe to call concurrently across distinct paths.
func (s *JSONService) Load(path string) ([]Measurement, error) {
	data, err := os.ReadFile(s.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("ingest: failed to read %q: %w", path, err)
	}

	var records []measurementRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("ingest: failed to decode %q: %w", path, err)
	}

	out := make([]Measurement, len(records))
	for i, r := range records {
		out[i] = Measurement{
			ID:            r.ID,
			RA:            r.RA,
			Dec:           r.Dec,
			UncertaintyEW: r.UncertaintyEW,
			UncertaintyNS: r.UncertaintyNS,
			FluxInt:       r.FluxInt,
			FluxIntErr:    r.FluxIntErr,
			FluxPeak:      r.FluxPeak,
			FluxPeakErr:   r.FluxPeakErr,
			Forced:        r.Forced,
			HasSiblings:   r.HasSiblings,
			Compactness:   r.Compactness,
			SNR:           r.SNR,
			Image:         r.Image,
			Datetime:      r.Datetime,
			Epoch:         r.Epoch,
		}
	}

	return out, nil
}

/*****************************************************************************************************************/
