/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package ingest

/*****************************************************************************************************************/

import (
	"os"
	"path/filepath"
	"testing"
)

/*****************************************************************************************************************/

const sampleMeasurements = `[
	{
		"id": "m1",
		"ra": 10.5,
		"dec": -30.25,
		"uncertaintyEw": 0.0003,
		"uncertaintyNs": 0.0003,
		"fluxInt": 12.5,
		"fluxIntErr": 0.6,
		"fluxPeak": 10.0,
		"fluxPeakErr": 0.5,
		"forced": false,
		"hasSiblings": false,
		"compactness": 1.02,
		"snr": 35.0,
		"image": "epoch1",
		"datetime": "2026-01-01T00:00:00Z",
		"epoch": 1
	}
]`

/*****************************************************************************************************************/

func TestJSONServiceLoadDecodesMeasurements(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "measurements.json")
	if err := os.WriteFile(path, []byte(sampleMeasurements), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	service := NewJSONService(dir)

	rows, err := service.Load("measurements.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d; want 1", len(rows))
	}

	if rows[0].ID != "m1" || rows[0].RA != 10.5 || rows[0].Dec != -30.25 {
		t.Errorf("rows[0] = %+v; unexpected decode", rows[0])
	}

	if rows[0].Epoch != 1 {
		t.Errorf("Epoch = %d; want 1", rows[0].Epoch)
	}
}

/*****************************************************************************************************************/

func TestJSONServiceLoadWithEmptyBaseDirUsesPathVerbatim(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "measurements.json")
	if err := os.WriteFile(path, []byte(sampleMeasurements), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	service := NewJSONService("")

	rows, err := service.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d; want 1", len(rows))
	}
}

/*****************************************************************************************************************/

func TestJSONServiceLoadMissingFileErrors(t *testing.T) {
	service := NewJSONService(t.TempDir())

	if _, err := service.Load("does-not-exist.json"); err == nil {
		t.Fatal("Load() error = nil; want non-nil for a missing file")
	}
}

/*****************************************************************************************************************/
