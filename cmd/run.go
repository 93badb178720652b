package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geosafe/impact-cli/internal/config"
	"github.com/geosafe/impact-cli/internal/engine"
	"github.com/geosafe/impact-cli/internal/export"
	"github.com/geosafe/impact-cli/internal/layer"
	"github.com/geosafe/impact-cli/internal/params"
	"github.com/geosafe/impact-cli/internal/raster"
)

var (
	runHazardPath   string
	runExposurePath string
	runMode         string
	runOutDir       string
	runXLSX         bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one impact assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := runMode
		if mode == "" {
			mode = cfg.Run.Mode
		}

		result, err := runScenario(cfg.Run, mode, runHazardPath, runExposurePath)
		if err != nil {
			return err
		}

		if err := writeOutputs(result, runOutDir, runXLSX || cfg.Export.XLSX); err != nil {
			return err
		}

		fmt.Print(result.Report.Summary)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runHazardPath, "hazard", "", "hazard layer path (.shp for categorised, .asc for threshold modes)")
	runCmd.Flags().StringVar(&runExposurePath, "exposure", "", "exposure shapefile path")
	runCmd.Flags().StringVar(&runMode, "mode", "", "classification mode: categorised, threshold, single_threshold")
	runCmd.Flags().StringVar(&runOutDir, "out", ".", "output directory")
	runCmd.Flags().BoolVar(&runXLSX, "xlsx", false, "also write an XLSX report workbook")
	_ = runCmd.MarkFlagRequired("hazard")
	_ = runCmd.MarkFlagRequired("exposure")
	rootCmd.AddCommand(runCmd)
}

// runScenario loads the layers, assembles the classification mode from
// configuration and executes the pipeline.
func runScenario(rc config.RunConfig, mode, hazardPath, exposurePath string) (*engine.Result, error) {
	exposure, err := layer.LoadShapefile(exposurePath, "exposure")
	if err != nil {
		return nil, err
	}
	if err := layer.LoadKeywords(exposure, keywordsPath(exposurePath)); err != nil {
		return nil, err
	}

	m, opts, err := buildRun(rc, mode, hazardPath)
	if err != nil {
		return nil, err
	}

	return engine.Run(m, exposure, opts)
}

// buildRun maps the run configuration onto the engine's tagged mode variant
// and immutable options. Threshold sets pass through the group parameter
// validator before the run starts.
func buildRun(rc config.RunConfig, mode, hazardPath string) (engine.Mode, engine.Options, error) {
	method, err := raster.ParseMethod(rc.Interpolation)
	if err != nil {
		return nil, engine.Options{}, err
	}

	switch mode {
	case "categorised":
		hazard, err := layer.LoadShapefile(hazardPath, "hazard")
		if err != nil {
			return nil, engine.Options{}, err
		}
		return engine.CategoryMode{
				Hazard:        hazard,
				CategoryField: rc.HazardField,
			}, engine.Options{
				IDField:     rc.IDField,
				CountField:  rc.PopulationField,
				AreaField:   rc.AreaField,
				TargetField: rc.HazardField,
				Classes:     engine.DefaultCategoryClasses(),
				Title:       rc.MapTitle,
			}, nil

	case "threshold":
		group := params.InundationThresholds()
		if len(rc.Thresholds) > 0 {
			group.Params = group.Params[:0]
			for i, t := range rc.Thresholds {
				group.Params = append(group.Params, params.Float{
					Name:       fmt.Sprintf("Threshold %d [m]", i+1),
					Value:      t,
					IsRequired: true,
					Precision:  2,
					Unit:       "metres",
				})
			}
		}
		if err := group.Validate(); err != nil {
			return nil, engine.Options{}, err
		}
		thresholds := group.Values()

		grid, err := raster.ReadASCIIGrid(hazardPath)
		if err != nil {
			return nil, engine.Options{}, err
		}
		return engine.ThresholdMode{
				Grid:          grid,
				Thresholds:    thresholds,
				Interpolation: method,
			}, engine.Options{
				IDField:     rc.IDField,
				TargetField: rc.HazardField,
				Classes:     engine.InundationClasses(thresholds),
				Title:       "Flooded features by inundation level",
			}, nil

	case "single_threshold":
		threshold := rc.Threshold
		if threshold <= 0 {
			return nil, engine.Options{}, &engine.ConfigurationError{
				Field:  "run.threshold",
				Reason: fmt.Sprintf("single threshold must be positive, got %g", threshold),
			}
		}
		grid, err := raster.ReadASCIIGrid(hazardPath)
		if err != nil {
			return nil, engine.Options{}, err
		}
		return engine.SingleThresholdMode{
				Grid:          grid,
				Threshold:     threshold,
				Interpolation: method,
			}, engine.Options{
				IDField:     rc.IDField,
				TargetField: rc.HazardField,
				Classes:     engine.SingleThresholdClasses(threshold),
				Title:       fmt.Sprintf("Flooded features (threshold %.1f m)", threshold),
			}, nil

	default:
		return nil, engine.Options{}, eris.Errorf("run: unknown mode %q", mode)
	}
}

// writeOutputs writes the impact shapefile, its keyword sidecar and the
// optional XLSX workbook into outDir.
func writeOutputs(result *engine.Result, outDir string, xlsxOut bool) error {
	shpPath := filepath.Join(outDir, "impact.shp")
	if err := layer.SaveShapefile(result.Impact, shpPath); err != nil {
		return err
	}
	if err := layer.SaveKeywords(result.Impact, keywordsPath(shpPath)); err != nil {
		return err
	}

	if xlsxOut {
		xlsxPath := filepath.Join(outDir, "impact.xlsx")
		if err := export.WriteXLSX(xlsxPath, result.Report, result.Stats); err != nil {
			return err
		}
	}

	zap.L().Info("run: outputs written",
		zap.String("run_id", result.RunID),
		zap.String("dir", outDir),
		zap.Bool("xlsx", xlsxOut),
	)
	return nil
}

// keywordsPath derives the YAML keyword sidecar path for a layer file.
func keywordsPath(layerPath string) string {
	ext := filepath.Ext(layerPath)
	return strings.TrimSuffix(layerPath, ext) + ".keywords.yaml"
}
