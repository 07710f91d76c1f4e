package service

import (
	"context"
	"time"

	"github.com/chrissnell/solarestimate/internal/optimizer"
	"github.com/chrissnell/solarestimate/internal/types"
)

// AnglesResponse is an optimizer result with its irradiance
type AnglesResponse struct {
	GHI       float64         `json:"ghi"`
	GHISource types.GHISource `json:"ghi_source"`
	optimizer.Angles
}

// FindOptimalAngles runs the requested search. A failed numeric search
// degrades to the heuristic; only cancellation and bad input return errors.
func (s *Service) FindOptimalAngles(ctx context.Context, lat, lon float64, method optimizer.Method, model Model) (*AnglesResponse, error) {
	model, err := s.resolveModel(model)
	if err != nil {
		return nil, err
	}
	irr, err := s.lookup(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	opt := s.optimizers[model]
	start := time.Now()

	var angles optimizer.Angles
	if method == optimizer.MethodHeuristic {
		angles = opt.HeuristicWithEnergy(lat, lon, irr.GHIAnnual)
	} else {
		angles, err = opt.Detailed(ctx, lat, lon, irr.GHIAnnual, method)
		if err != nil {
			return nil, err
		}
	}
	s.metrics.RecordOptimizer(string(angles.Method), time.Since(start), angles.Converged)

	return &AnglesResponse{GHI: irr.GHIAnnual, GHISource: irr.Source, Angles: angles}, nil
}

// Sensitivity reports yield losses around a given optimum
func (s *Service) Sensitivity(ctx context.Context, lat, lon, optTilt, optAzimuth float64, model Model) (*optimizer.SensitivityResult, error) {
	model, err := s.resolveModel(model)
	if err != nil {
		return nil, err
	}
	if err := (types.Geometry{Tilt: optTilt, Azimuth: optAzimuth}).Validate(); err != nil {
		return nil, err
	}
	irr, err := s.lookup(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	res := s.optimizers[model].Sensitivity(lat, lon, irr.GHIAnnual, optTilt, optAzimuth)
	return &res, nil
}

// AngleMatrixResponse is the tilt × azimuth grid with its best cell
type AngleMatrixResponse struct {
	GHI float64 `json:"ghi"`
	*optimizer.AngleMatrix
	BestTilt    float64 `json:"best_tilt"`
	BestAzimuth float64 `json:"best_azimuth"`
	BestEnergy  float64 `json:"best_energy"`
}

// AngleMatrix evaluates the full orientation grid
func (s *Service) AngleMatrix(ctx context.Context, lat, lon float64, model Model) (*AngleMatrixResponse, error) {
	model, err := s.resolveModel(model)
	if err != nil {
		return nil, err
	}
	irr, err := s.lookup(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	m, err := s.optimizers[model].AngleMatrix(ctx, lat, lon, irr.GHIAnnual)
	if err != nil {
		return nil, err
	}
	resp := &AngleMatrixResponse{GHI: irr.GHIAnnual, AngleMatrix: m}
	resp.BestTilt, resp.BestAzimuth, resp.BestEnergy = m.Best()
	return resp, nil
}

// Seasonal returns the per-season tilt recommendations
func (s *Service) Seasonal(ctx context.Context, lat, lon float64, model Model) ([]optimizer.SeasonalAngles, error) {
	model, err := s.resolveModel(model)
	if err != nil {
		return nil, err
	}
	irr, err := s.lookup(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	return s.optimizers[model].Seasonal(lat, lon, irr.GHIAnnual), nil
}

// MultiObjective approximates the Pareto front of the given objectives
func (s *Service) MultiObjective(ctx context.Context, lat, lon float64, objectives []optimizer.Objective, model Model) (*optimizer.MultiObjectiveResult, error) {
	model, err := s.resolveModel(model)
	if err != nil {
		return nil, err
	}
	irr, err := s.lookup(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	if len(objectives) == 0 {
		objectives = optimizer.DefaultObjectives
	}
	return s.optimizers[model].MultiObjective(ctx, lat, lon, irr.GHIAnnual, objectives)
}
