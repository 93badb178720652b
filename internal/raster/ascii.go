package raster

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ReadASCIIGrid parses an ESRI ASCII grid (.asc) file: a six-line header
// (ncols, nrows, xllcorner, yllcorner, cellsize, NODATA_value) followed by
// nrows rows of whitespace-separated cell values, north row first.
func ReadASCIIGrid(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "raster: open grid %s", path)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	g := &Grid{NoData: -9999}
	header := map[string]float64{}

	for len(header) < 5 && scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) != 2 {
			return nil, eris.Errorf("raster: malformed header line %q in %s", scanner.Text(), path)
		}
		key := strings.ToLower(parts[0])
		val, convErr := strconv.ParseFloat(parts[1], 64)
		if convErr != nil {
			return nil, eris.Wrapf(convErr, "raster: header value %q in %s", parts[0], path)
		}
		header[key] = val

		// NODATA_value is optional and may appear as the sixth line.
		if key == "cellsize" {
			break
		}
	}

	for _, required := range []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize"} {
		if _, ok := header[required]; !ok {
			return nil, eris.Errorf("raster: header missing %s in %s", required, path)
		}
	}

	g.Cols = int(header["ncols"])
	g.Rows = int(header["nrows"])
	g.XMin = header["xllcorner"]
	g.YMin = header["yllcorner"]
	g.CellSize = header["cellsize"]
	if g.Cols <= 0 || g.Rows <= 0 || g.CellSize <= 0 {
		return nil, eris.Errorf("raster: non-positive grid dimensions in %s", path)
	}

	g.Values = make([]float64, 0, g.Cols*g.Rows)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if strings.EqualFold(fields[0], "nodata_value") && len(fields) == 2 {
			nd, convErr := strconv.ParseFloat(fields[1], 64)
			if convErr != nil {
				return nil, eris.Wrapf(convErr, "raster: NODATA_value in %s", path)
			}
			g.NoData = nd
			continue
		}
		for _, fieldVal := range fields {
			v, convErr := strconv.ParseFloat(fieldVal, 64)
			if convErr != nil {
				return nil, eris.Wrapf(convErr, "raster: cell value %q in %s", fieldVal, path)
			}
			g.Values = append(g.Values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "raster: read grid %s", path)
	}

	if len(g.Values) != g.Cols*g.Rows {
		return nil, eris.Errorf("raster: %s has %d values, expected %d", path, len(g.Values), g.Cols*g.Rows)
	}

	zap.L().Debug("raster: loaded grid",
		zap.String("path", path),
		zap.Int("cols", g.Cols),
		zap.Int("rows", g.Rows),
		zap.Float64("cellsize", g.CellSize),
	)
	return g, nil
}
