package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/chrissnell/solarestimate/internal/optimizer"
	"github.com/chrissnell/solarestimate/internal/solarerr"
	"github.com/chrissnell/solarestimate/internal/types"
	"github.com/chrissnell/solarestimate/internal/yield"
)

// ExportType selects the granularity of an export
type ExportType string

const (
	ExportHourly      ExportType = "hourly"
	ExportMonthly     ExportType = "monthly"
	ExportYearly      ExportType = "yearly"
	ExportAngleMatrix ExportType = "angle_matrix"
)

const maxExportPeriod = 25

// ExportRequest describes a data export. Period is in years and only applies
// to monthly and yearly exports.
type ExportRequest struct {
	Latitude  float64
	Longitude float64
	Type      ExportType
	Period    int
	Model     Model
}

// ExportTable is a rectangular export. Cells are float64, int or string.
type ExportTable struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// Filename is the suggested download name for the given extension
func (t *ExportTable) Filename(ext string) string {
	return t.Name + "." + ext
}

// StringRows formats every cell for CSV output
func (t *ExportTable) StringRows() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			switch v := cell.(type) {
			case float64:
				out[i][j] = strconv.FormatFloat(v, 'f', -1, 64)
			case int:
				out[i][j] = strconv.Itoa(v)
			default:
				out[i][j] = fmt.Sprint(v)
			}
		}
	}
	return out
}

// Records returns the rows as column-keyed maps for JSON output
func (t *ExportTable) Records() []map[string]any {
	out := make([]map[string]any, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]any, len(t.Columns))
		for j, col := range t.Columns {
			rec[col] = row[j]
		}
		out[i] = rec
	}
	return out
}

// Export produces a data table for the heuristic optimum orientation of a
// location. Multi-year exports apply the configured degradation rate.
func (s *Service) Export(ctx context.Context, req ExportRequest) (*ExportTable, error) {
	model, err := s.resolveModel(req.Model)
	if err != nil {
		return nil, err
	}
	if req.Type == "" {
		req.Type = ExportMonthly
	}
	if req.Period == 0 {
		req.Period = 1
	}
	if req.Period < 1 || req.Period > maxExportPeriod {
		return nil, solarerr.Invalid("period", float64(req.Period), fmt.Sprintf("must be between 1 and %d years", maxExportPeriod))
	}

	irr, err := s.lookup(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}
	lat, lon, ghi := req.Latitude, req.Longitude, irr.GHIAnnual
	angles := optimizer.Heuristic(lat)

	name := fmt.Sprintf("pv_%s_%.4f_%.4f", req.Type, lat, lon)

	switch req.Type {
	case ExportHourly:
		res := s.detailed.Estimate(lat, lon, angles.Tilt, angles.Azimuth, ghi, s.system)
		if res.HourlyEnergy == nil {
			return nil, fmt.Errorf("hourly simulation unavailable for (%.4f, %.4f): %w", lat, lon, solarerr.ErrNumericDegeneracy)
		}
		table := &ExportTable{Name: name, Columns: []string{"datetime", "energy"}, Rows: make([][]any, len(res.HourlyEnergy))}
		for i, e := range res.HourlyEnergy {
			table.Rows[i] = []any{yield.ReferenceHour(i).Format(time.RFC3339), round4(e)}
		}
		return table, nil

	case ExportMonthly:
		res := s.estimate(model, lat, lon, angles.Tilt, angles.Azimuth, ghi)
		table := &ExportTable{Name: name, Columns: []string{"year", "month", "energy"}}
		for y := 0; y < req.Period; y++ {
			f := s.degradation(y)
			for m, e := range res.MonthlyEnergy {
				table.Rows = append(table.Rows, []any{y + 1, m + 1, round1(e * f)})
			}
		}
		return table, nil

	case ExportYearly:
		res := s.estimate(model, lat, lon, angles.Tilt, angles.Azimuth, ghi)
		table := &ExportTable{Name: name, Columns: []string{"year", "annual_energy"}}
		for y := 0; y < req.Period; y++ {
			table.Rows = append(table.Rows, []any{y + 1, round1(res.AnnualEnergy * s.degradation(y))})
		}
		return table, nil

	case ExportAngleMatrix:
		m, err := s.optimizers[model].AngleMatrix(ctx, lat, lon, ghi)
		if err != nil {
			return nil, err
		}
		table := &ExportTable{Name: name, Columns: []string{"tilt", "azimuth", "annual_energy"}}
		for i, tilt := range m.Tilts {
			for j, az := range m.Azimuths {
				table.Rows = append(table.Rows, []any{tilt, az, m.Energy[i][j]})
			}
		}
		return table, nil
	}

	return nil, solarerr.Invalid("data_type", 0, fmt.Sprintf("unknown export type %q", req.Type))
}

func (s *Service) estimate(model Model, lat, lon, tilt, azimuth, ghi float64) types.YieldResult {
	var res types.YieldResult
	if model == ModelDetailed {
		res = s.detailed.Estimate(lat, lon, tilt, azimuth, ghi, s.system)
	} else {
		res = s.empirical.Estimate(lat, lon, tilt, azimuth, ghi)
	}
	s.metrics.RecordEstimate(string(model), string(res.Tier))
	return res
}

// degradation is the output factor in year y, counting from zero
func (s *Service) degradation(y int) float64 {
	return math.Pow(1-s.degradationRate, float64(y))
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
