package engine

import (
	"go.uber.org/zap"

	"github.com/geosafe/impact-cli/internal/layer"
	"github.com/geosafe/impact-cli/internal/raster"
)

// AssignHazardValues samples the continuous hazard grid at each exposure
// feature's representative location and writes the value into attributeName
// on a working copy of the exposure layer. Features outside the grid extent,
// or over no-data cells, get the sentinel value.
func AssignHazardValues(grid *raster.Grid, exposure *layer.Layer, attributeName string, method raster.Method) (*layer.Layer, error) {
	out := exposure.Copy()
	out.AddAttribute(attributeName)

	outside := 0
	for i, att := range out.Data {
		pt, err := out.RepresentativePoint(i)
		if err != nil {
			return nil, &ConfigurationError{Reason: err.Error()}
		}

		v, ok := grid.Sample(pt[0], pt[1], method)
		if !ok {
			att[attributeName] = float64(NoDataCode)
			outside++
			continue
		}
		att[attributeName] = v
	}

	if outside > 0 {
		zap.L().Debug("engine: features outside hazard grid",
			zap.String("attribute", attributeName),
			zap.Int("outside", outside),
			zap.Int("total", out.Len()),
		)
	}
	return out, nil
}
