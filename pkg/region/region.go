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
	"log"
	"runtime"
	"sort"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/cascade-survey/assoc/pkg/associate"
	"github.com/cascade-survey/assoc/pkg/astrometry"
	"github.com/cascade-survey/assoc/pkg/healpix"
	"github.com/cascade-survey/assoc/pkg/ingest"
	"github.com/cascade-survey/assoc/pkg/measurement"
	"github.com/cascade-survey/assoc/pkg/source"
)

/*****************************************************************************************************************/

// Params bundles the association configuration and operational knobs the sky-region
// sharder needs to drive one run of the core across every group.
type Params struct {
	Config associate.Config

	// Monitor is carried through for callers but not read by the core: whether it is set
	// or not, the chronologically earliest epoch - by sorted unique Epoch value, not
	// ingestion order - is treated as the initial epoch for `new` determination, per §9
	// Open Question 2.
	Monitor bool

	// Workers caps the number of sky-region groups associated concurrently. Zero
	// selects min(GOMAXPROCS-1, n_groups), per §5's recommended scheduling model.
	Workers int

	Logger *log.Logger
}

/*****************************************************************************************************************/

func (p Params) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}

/*****************************************************************************************************************/

func (p Params) workers(groups int) int {
	if p.Workers > 0 {
		if p.Workers < groups {
			return p.Workers
		}
		return groups
	}

	n := runtime.GOMAXPROCS(0) - 1
	if n < 1 {
		n = 1
	}
	if n > groups {
		n = groups
	}
	return n
}

/*****************************************************************************************************************/

// GroupError reports which sky-region group failed association, and why. A failure
// within one group aborts that group only; Associate returns the first GroupError
// encountered so the driver can report it to the user.
type GroupError struct {
	Group int
	Cause error
}

/*****************************************************************************************************************/

func (e *GroupError) Error() string {
	return fmt.Sprintf("region: sky-region group %d failed: %v", e.Group, e.Cause)
}

/*****************************************************************************************************************/

func (e *GroupError) Unwrap() error {
	return e.Cause
}

/*****************************************************************************************************************/

// AssignGroups buckets images lacking an explicit SkyRegGroup into HEALPix-style
// equal-area cells at the given grid resolution, by the cell holding each image's field
// centre (FieldRA/FieldDec). Only the centre is considered: images whose footprints
// overlap across a cell boundary are put in different groups. Images that already carry
// a non-zero SkyRegGroup are left untouched.
func AssignGroups(images []ingest.ImageDescriptor, resolution int) []ingest.ImageDescriptor {
	h := healpix.NewHealPIX(resolution)

	out := make([]ingest.ImageDescriptor, len(images))
	copy(out, images)

	for i := range out {
		if out[i].SkyRegGroup != 0 {
			continue
		}

		eq := astrometry.ICRSEquatorialCoordinate{RA: out[i].FieldRA, Dec: out[i].FieldDec}
		out[i].SkyRegGroup = h.Pixel(eq) + 1
	}

	return out
}

/*****************************************************************************************************************/

// Associate runs the full C2-through-C6 pipeline independently over every sky-region
// group present in images, in parallel bounded by Params.Workers (or the §5 default),
// then merges the per-group outputs by the max-plus-one offset rule of §4.7/§9 so that
// identities and their related peers are dense and unique across the whole run.
func Associate(ctx context.Context, images []ingest.ImageDescriptor, loader ingest.Loader, params Params) (measurement.Frame, []source.Record, error) {
	groups := groupByRegion(images)

	groupKeys := make([]int, 0, len(groups))
	for k := range groups {
		groupKeys = append(groupKeys, k)
	}
	sort.Ints(groupKeys)

	type result struct {
		frame   measurement.Frame
		records []source.Record
	}

	results := make([]result, len(groupKeys))

	logger := params.logger()
	logger.Printf("region: associating %d sky-region group(s) with up to %d worker(s)", len(groupKeys), params.workers(len(groupKeys)))

	var eg errgroup.Group
	eg.SetLimit(params.workers(len(groupKeys)))

	for i, key := range groupKeys {
		i, key := i, key
		eg.Go(func() error {
			frame, records, err := runGroup(ctx, groups[key], loader, params)
			if err != nil {
				logger.Printf("region: sky-region group %d failed: %v", key, err)
				return &GroupError{Group: key, Cause: err}
			}
			results[i] = result{frame: frame, records: records}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return measurement.Frame{}, nil, err
	}

	mergedFrame := measurement.Frame{}
	var mergedRecords []source.Record

	offset := 0
	for _, r := range results {
		shiftedFrame, shiftedRecords := applyOffset(r.frame, r.records, offset)

		mergedFrame.Rows = append(mergedFrame.Rows, shiftedFrame.Rows...)
		mergedRecords = append(mergedRecords, shiftedRecords...)

		maxIdentity := 0
		for _, rec := range shiftedRecords {
			if rec.Identity > maxIdentity {
				maxIdentity = rec.Identity
			}
		}

		if maxIdentity > 0 {
			offset = maxIdentity
		}
	}

	if err := checkDenseIdentities(mergedRecords); err != nil {
		return measurement.Frame{}, nil, err
	}

	return mergedFrame, mergedRecords, nil
}

/*****************************************************************************************************************/

func groupByRegion(images []ingest.ImageDescriptor) map[int][]ingest.ImageDescriptor {
	groups := make(map[int][]ingest.ImageDescriptor)
	for _, img := range images {
		groups[img.SkyRegGroup] = append(groups[img.SkyRegGroup], img)
	}
	return groups
}

/*****************************************************************************************************************/

// applyOffset shifts every identity and related-peer reference in a group's output by
// offset, per the §4.7 merge rule.
func applyOffset(frame measurement.Frame, records []source.Record, offset int) (measurement.Frame, []source.Record) {
	if offset == 0 {
		return frame, records
	}

	shiftedFrame := measurement.Frame{Rows: make([]measurement.Row, len(frame.Rows))}
	for i, row := range frame.Rows {
		row.Source += offset
		if len(row.Related) > 0 {
			shifted := make(map[int]struct{}, len(row.Related))
			for peer := range row.Related {
				shifted[peer+offset] = struct{}{}
			}
			row.Related = shifted
		}
		shiftedFrame.Rows[i] = row
	}

	shiftedRecords := make([]source.Record, len(records))
	for i, rec := range records {
		rec.Identity += offset
		rec.Related = lo.Map(rec.Related, func(peer int, _ int) int { return peer + offset })
		shiftedRecords[i] = rec
	}

	return shiftedFrame, shiftedRecords
}

/*****************************************************************************************************************/

// checkDenseIdentities verifies invariant 1 holds after merge: identities are positive
// integers, dense from 1 upward, with no collision between groups. A violation here is
// a programmer error in the offset computation and must abort the run.
func checkDenseIdentities(records []source.Record) error {
	seen := make(map[int]bool, len(records))
	for _, rec := range records {
		if rec.Identity <= 0 {
			return associate.NewInvariantViolation("region: non-positive identity %d after merge", rec.Identity)
		}
		if seen[rec.Identity] {
			return associate.NewInvariantViolation("region: identity %d collides after merge", rec.Identity)
		}
		seen[rec.Identity] = true
	}
	for identity := 1; identity <= len(seen); identity++ {
		if !seen[identity] {
			return associate.NewInvariantViolation("region: identity %d missing after merge; identities are not dense", identity)
		}
	}
	return nil
}

/*****************************************************************************************************************/
