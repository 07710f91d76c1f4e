package optimizer

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// The heatmap grid. Consumers assume exactly this shape.
var (
	MatrixTilts    = steps(0, 91, 5)
	MatrixAzimuths = steps(90, 271, 10)
)

// AngleMatrix is annual yield over a tilt × azimuth grid. Energy[i][j] is
// the yield at Tilts[i], Azimuths[j].
type AngleMatrix struct {
	Tilts    []float64   `json:"tilt_range"`
	Azimuths []float64   `json:"azimuth_range"`
	Energy   [][]float64 `json:"energy_matrix"`
}

// Best returns the grid cell with the highest yield
func (m *AngleMatrix) Best() (tilt, azimuth, energy float64) {
	energy = -1
	for i, row := range m.Energy {
		for j, e := range row {
			if e > energy {
				tilt, azimuth, energy = m.Tilts[i], m.Azimuths[j], e
			}
		}
	}
	return tilt, azimuth, energy
}

// AngleMatrix evaluates the fixed heatmap grid, one row per worker task
func (o *Optimizer) AngleMatrix(ctx context.Context, lat, lon, ghi float64) (*AngleMatrix, error) {
	m := &AngleMatrix{
		Tilts:    append([]float64(nil), MatrixTilts...),
		Azimuths: append([]float64(nil), MatrixAzimuths...),
		Energy:   make([][]float64, len(MatrixTilts)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, tilt := range m.Tilts {
		g.Go(func() error {
			row := make([]float64, len(m.Azimuths))
			for j, az := range m.Azimuths {
				if err := gctx.Err(); err != nil {
					return err
				}
				row[j] = o.energy(lat, lon, tilt, az, ghi)
			}
			m.Energy[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}
