/*****************************************************************************************************************/

//	@author		Dana Okafor <dana@cascade-survey.org>
//	@package	@cascade-survey/assoc
//	@license	Copyright © 2022-2026 Cascade Survey Collaboration

/*****************************************************************************************************************/

package associate

/*****************************************************************************************************************/

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	pkgassociate "github.com/cascade-survey/assoc/pkg/associate"
	"github.com/cascade-survey/assoc/pkg/ingest"
	"github.com/cascade-survey/assoc/pkg/region"
)

/*****************************************************************************************************************/

var (
	ImagesFileLocation        string
	Method                    string
	AssociationRadius         float64
	DeRuiterRadius            float64
	BeamwidthLimit            float64
	AstrometricUncertaintyRA  float64
	AstrometricUncertaintyDec float64
	FluxPercError             float64
	DuplicateLimit            float64
	MinNewSourceSigma         float64
	Workers                   int
)

/*****************************************************************************************************************/

var AssociateCommand = &cobra.Command{
	Use:   "associate",
	Short: "associate",
	Long:  "associate runs cross-epoch source association over a table of images and their measurement catalogues.",
	Run: func(cmd *cobra.Command, args []string) {
		imagesFile, err := os.Open(ImagesFileLocation)
		if err != nil {
			fmt.Println("failed to open images file:", err)
			cmd.Usage()
			return
		}

		defer imagesFile.Close()

		params := RunAssociateParams{
			ImagesFile: imagesFile,
			Config: pkgassociate.Config{
				Method:                    pkgassociate.Method(Method),
				AssociationRadius:         AssociationRadius,
				DeRuiterRadius:            DeRuiterRadius,
				BeamwidthLimit:            BeamwidthLimit,
				AstrometricUncertaintyRA:  AstrometricUncertaintyRA,
				AstrometricUncertaintyDec: AstrometricUncertaintyDec,
				FluxPercError:             FluxPercError,
				DuplicateLimit:            DuplicateLimit,
				MinNewSourceSigma:         MinNewSourceSigma,
			},
			Workers: Workers,
		}

		if err := RunAssociate(params); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	},
}

/*****************************************************************************************************************/

func init() {
	// Add the input flag to the associate command for reading the images table from some
	// input location: example usage: --input ./images.json or -i ./images.json
	AssociateCommand.Flags().StringVarP(
		&ImagesFileLocation,
		"input",
		"i",
		"",
		"The images table JSON file location on the filesystem",
	)
	AssociateCommand.MarkFlagRequired("input")

	AssociateCommand.Flags().StringVarP(
		&Method,
		"method",
		"m",
		"advanced",
		"The association method to use: basic, advanced or deruiter",
	)

	AssociateCommand.Flags().Float64Var(
		&AssociationRadius,
		"association-radius",
		15.0,
		"The association radius in arcsec, used by basic and advanced",
	)

	AssociateCommand.Flags().Float64Var(
		&DeRuiterRadius,
		"de-ruiter-radius",
		5.68,
		"The unitless de Ruiter radius limit, used by deruiter",
	)

	AssociateCommand.Flags().Float64Var(
		&BeamwidthLimit,
		"beamwidth-limit",
		1.5,
		"The multiplier of the beam half-major-axis used as the search window for deruiter",
	)

	AssociateCommand.Flags().Float64Var(
		&AstrometricUncertaintyRA,
		"astrometric-uncertainty-ra",
		0.5,
		"The astrometric uncertainty in RA, in arcsec, added in quadrature to the fitted uncertainty",
	)

	AssociateCommand.Flags().Float64Var(
		&AstrometricUncertaintyDec,
		"astrometric-uncertainty-dec",
		0.5,
		"The astrometric uncertainty in Dec, in arcsec, added in quadrature to the fitted uncertainty",
	)

	AssociateCommand.Flags().Float64Var(
		&FluxPercError,
		"flux-perc-error",
		0.05,
		"The fractional floor applied to flux_int_err/flux_peak_err",
	)

	AssociateCommand.Flags().Float64Var(
		&DuplicateLimit,
		"duplicate-limit",
		2.5,
		"The within-batch deduplication radius, in arcsec",
	)

	AssociateCommand.Flags().Float64Var(
		&MinNewSourceSigma,
		"min-new-source-sigma",
		5.0,
		"The new-source significance threshold consumed downstream of the core, not by it",
	)

	AssociateCommand.Flags().IntVarP(
		&Workers,
		"workers",
		"w",
		0,
		"The number of sky-region groups associated concurrently; 0 selects GOMAXPROCS-1",
	)
}

/*****************************************************************************************************************/

// RunAssociateParams bundles everything RunAssociate needs to drive one end-to-end
// association run from the command line.
type RunAssociateParams struct {
	ImagesFile *os.File
	Config     pkgassociate.Config
	Workers    int
}

/*****************************************************************************************************************/

// RunAssociate decodes the images table, builds a filesystem-backed measurement loader
// rooted at the images file's directory, runs the sky-region-sharded association core,
// and prints a summary of the resulting sources.
func RunAssociate(params RunAssociateParams) error {
	if err := params.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var images []ingest.ImageDescriptor
	if err := json.NewDecoder(params.ImagesFile).Decode(&images); err != nil {
		return fmt.Errorf("failed to decode images file: %w", err)
	}

	fmt.Printf("Images Loaded: %d\n", len(images))
	fmt.Printf("Association Method: %s\n", params.Config.Method)

	baseDir := filepath.Dir(params.ImagesFile.Name())
	loader := ingest.NewJSONService(baseDir)

	frame, records, err := region.Associate(context.Background(), images, loader, region.Params{
		Config:  params.Config,
		Workers: params.Workers,
	})
	if err != nil {
		return fmt.Errorf("association failed: %w", err)
	}

	newCount := 0
	for _, r := range records {
		if r.New {
			newCount++
		}
	}

	fmt.Printf("Measurements Processed: %d\n", len(frame.Rows))
	fmt.Printf("Sources Found: %d\n", len(records))
	fmt.Printf("New Sources: %d\n", newCount)

	for _, r := range records {
		fmt.Printf(
			"  %s  ra=%.6f dec=%.6f n_meas=%d new=%t related=%v\n",
			r.Name, r.WAvgRA, r.WAvgDec, r.NMeas, r.New, r.Related,
		)
	}

	return nil
}

/*****************************************************************************************************************/
