/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package region

/*****************************************************************************************************************/

import (
	"context"
	"fmt"
	"sort"

	"github.com/cascade-survey/assoc/pkg/aggregate"
	"github.com/cascade-survey/assoc/pkg/associate"
	"github.com/cascade-survey/assoc/pkg/ingest"
	"github.com/cascade-survey/assoc/pkg/measurement"
	"github.com/cascade-survey/assoc/pkg/source"
)

/*****************************************************************************************************************/

// runGroup associates every image in one sky-region group, strictly sequentially by
// epoch: each iteration reads the reference frame the previous iteration produced and
// writes the next, with no suspension points inside an iteration (§5). ctx is checked
// at each iteration boundary so a cancelled run discards the group's partial output.
func runGroup(ctx context.Context, images []ingest.ImageDescriptor, loader ingest.Loader, params Params) (measurement.Frame, []source.Record, error) {
	if err := params.Config.Validate(); err != nil {
		return measurement.Frame{}, nil, err
	}

	epochs := uniqueSortedEpochs(images)
	if len(epochs) == 0 {
		return measurement.Frame{}, nil, nil
	}

	loadParams := measurement.LoadParams{
		AstrometricUncertaintyRA:  params.Config.AstrometricUncertaintyRA,
		AstrometricUncertaintyDec: params.Config.AstrometricUncertaintyDec,
		FluxPercError:             params.Config.FluxPercError,
		DuplicateLimit:            params.Config.DuplicateLimit,
	}

	initialEpoch := epochs[0]
	initialImages := imageNamesAtEpoch(images, initialEpoch)

	initialBatch, err := loadEpochBatch(loader, imagesAtEpoch(images, initialEpoch), loadParams)
	if err != nil {
		return measurement.Frame{}, nil, err
	}

	frame := initialBatch
	ref := measurement.NewInitialReference(&frame)

	for _, epoch := range epochs[1:] {
		if err := ctx.Err(); err != nil {
			return measurement.Frame{}, nil, err
		}

		epochImages := imagesAtEpoch(images, epoch)

		batch, err := loadEpochBatch(loader, epochImages, loadParams)
		if err != nil {
			return measurement.Frame{}, nil, err
		}

		if err := associateEpoch(&frame, &ref, &batch, epochImages, params.Config); err != nil {
			return measurement.Frame{}, nil, err
		}

		aggregate.Refresh(frame, &ref)
	}

	records := source.Finalize(frame, ref, initialImages)

	return frame, records, nil
}

/*****************************************************************************************************************/

func associateEpoch(frame *measurement.Frame, ref *measurement.ReferenceFrame, batch *measurement.Frame, epochImages []ingest.ImageDescriptor, cfg associate.Config) error {
	switch cfg.Method {
	case associate.Basic:
		return associate.Basic(frame, ref, batch, cfg.AssociationRadius)
	case associate.Advanced, associate.DeRuiter:
		return associate.Advanced(frame, ref, batch, associate.AdvancedParams{
			Method:         cfg.Method,
			Limit:          cfg.AssociationRadius,
			DRLimit:        cfg.DeRuiterRadius,
			BeamwidthLimit: cfg.BeamwidthLimit,
			BeamBmajDeg:    maxBeamBmaj(epochImages),
		})
	default:
		return fmt.Errorf("region: unknown association method %q", cfg.Method)
	}
}

/*****************************************************************************************************************/

func maxBeamBmaj(images []ingest.ImageDescriptor) float64 {
	max := 0.0
	for _, img := range images {
		if img.BeamBmaj > max {
			max = img.BeamBmaj
		}
	}
	return max
}

/*****************************************************************************************************************/

func uniqueSortedEpochs(images []ingest.ImageDescriptor) []int {
	seen := make(map[int]struct{})
	for _, img := range images {
		seen[img.Epoch] = struct{}{}
	}

	epochs := make([]int, 0, len(seen))
	for e := range seen {
		epochs = append(epochs, e)
	}
	sort.Ints(epochs)

	return epochs
}

/*****************************************************************************************************************/

func imagesAtEpoch(images []ingest.ImageDescriptor, epoch int) []ingest.ImageDescriptor {
	var out []ingest.ImageDescriptor
	for _, img := range images {
		if img.Epoch == epoch {
			out = append(out, img)
		}
	}
	return out
}

/*****************************************************************************************************************/

func imageNamesAtEpoch(images []ingest.ImageDescriptor, epoch int) map[string]bool {
	names := make(map[string]bool)
	for _, img := range images {
		if img.Epoch == epoch {
			names[img.Name] = true
		}
	}
	return names
}

/*****************************************************************************************************************/

func loadEpochBatch(loader ingest.Loader, images []ingest.ImageDescriptor, params measurement.LoadParams) (measurement.Frame, error) {
	var all []measurement.Measurement

	for _, img := range images {
		measurements, err := loader.Load(img.MeasurementsPath)
		if err != nil {
			return measurement.Frame{}, fmt.Errorf("region: failed to load measurements for image %q: %w", img.Name, err)
		}
		all = append(all, measurements...)
	}

	frame, err := measurement.Load(all, params)
	if err != nil {
		return measurement.Frame{}, associate.NewInputError(err)
	}

	return frame, nil
}

/*****************************************************************************************************************/
