package service

import (
	"context"

	"github.com/chrissnell/solarestimate/internal/types"
)

// YieldRequest asks for the yield of one orientation. System overrides the
// default detailed-model configuration and is ignored by the empirical model.
type YieldRequest struct {
	Latitude  float64
	Longitude float64
	Tilt      float64
	Azimuth   float64
	Model     Model
	System    *types.SystemConfig
}

// YieldResponse is a yield estimate with the irradiance it was based on
type YieldResponse struct {
	GHI       float64         `json:"ghi"`
	GHISource types.GHISource `json:"ghi_source"`
	Model     Model           `json:"model"`
	types.YieldResult
}

// EstimateYield resolves irradiance and runs the selected estimator
func (s *Service) EstimateYield(ctx context.Context, req YieldRequest) (*YieldResponse, error) {
	model, err := s.resolveModel(req.Model)
	if err != nil {
		return nil, err
	}
	geom := types.Geometry{Tilt: req.Tilt, Azimuth: req.Azimuth}
	if err := geom.Validate(); err != nil {
		return nil, err
	}

	system := s.system
	if req.System != nil {
		system = req.System.WithDefaults()
		if err := system.Validate(); err != nil {
			return nil, err
		}
	}

	irr, err := s.lookup(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	var res types.YieldResult
	switch model {
	case ModelDetailed:
		res = s.detailed.Estimate(req.Latitude, req.Longitude, req.Tilt, req.Azimuth, irr.GHIAnnual, system)
	default:
		res = s.empirical.Estimate(req.Latitude, req.Longitude, req.Tilt, req.Azimuth, irr.GHIAnnual)
	}
	s.metrics.RecordEstimate(string(model), string(res.Tier))

	return &YieldResponse{
		GHI:         irr.GHIAnnual,
		GHISource:   irr.Source,
		Model:       model,
		YieldResult: res,
	}, nil
}
