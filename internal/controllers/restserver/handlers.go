package restserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/chrissnell/solarestimate/internal/finance"
	"github.com/chrissnell/solarestimate/internal/optimizer"
	"github.com/chrissnell/solarestimate/internal/service"
	"github.com/chrissnell/solarestimate/internal/solarerr"
	"github.com/chrissnell/solarestimate/internal/types"
	"github.com/chrissnell/solarestimate/pkg/responseformat"
)

const maxBodyBytes = 1 << 20

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	service    *service.Service
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		service:    ctrl.service,
		formatter:  responseformat.NewFormatter(ctrl.restConfig.EnableCORS),
	}
}

// writeError maps invalid input to 400 and everything else to 500
func (h *Handlers) writeError(w http.ResponseWriter, req *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, solarerr.ErrInvalidInput) {
		status = http.StatusBadRequest
	} else {
		h.controller.logger.Errorw("request failed", "path", req.URL.Path, "error", err)
	}
	h.formatter.WriteError(w, req, status, err.Error())
}

func (h *Handlers) write(w http.ResponseWriter, req *http.Request, data any) {
	if err := h.formatter.WriteResponse(w, req, data, nil); err != nil {
		h.controller.logger.Errorf("error writing response for %s: %v", req.URL.Path, err)
	}
}

// MethodNotAllowed answers requests for a known path with the wrong method
func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteError(w, req, http.StatusMethodNotAllowed,
		fmt.Sprintf("method %s not allowed for %s", req.Method, req.URL.Path))
}

// location reads the required lat and lon parameters
func location(p *queryParams) (float64, float64) {
	return p.requiredFloat("lat"), p.requiredFloat("lon")
}

// GetPVData returns the yield estimate for one orientation
func (h *Handlers) GetPVData(w http.ResponseWriter, req *http.Request) {
	p := newQueryParams(req.URL.Query())
	lat, lon := location(p)
	r := service.YieldRequest{
		Latitude:  lat,
		Longitude: lon,
		Tilt:      p.float("tilt", 30),
		Azimuth:   p.float("azimuth", 180),
		Model:     service.Model(p.string("model", "")),
	}
	if p.err != nil {
		h.writeError(w, req, p.err)
		return
	}

	if raw := req.URL.Query().Get("system_config"); raw != "" {
		cfg := h.service.SystemConfig()
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			h.writeError(w, req, solarerr.Invalid("system_config", 0, err.Error()))
			return
		}
		r.System = &cfg
	}

	res, err := h.service.EstimateYield(req.Context(), r)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, res)
}

// GetOptimizeAngles finds the orientation of maximum yield
func (h *Handlers) GetOptimizeAngles(w http.ResponseWriter, req *http.Request) {
	p := newQueryParams(req.URL.Query())
	lat, lon := location(p)
	model := service.Model(p.string("model", ""))
	if p.err != nil {
		h.writeError(w, req, p.err)
		return
	}
	method, err := parseMethod(p.string("method", ""))
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	res, err := h.service.FindOptimalAngles(req.Context(), lat, lon, method, model)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, res)
}

// GetSensitivity reports yield loss around a given optimum
func (h *Handlers) GetSensitivity(w http.ResponseWriter, req *http.Request) {
	p := newQueryParams(req.URL.Query())
	lat, lon := location(p)
	tilt := p.requiredFloat("optimal_tilt")
	azimuth := p.requiredFloat("optimal_azimuth")
	model := service.Model(p.string("model", ""))
	if p.err != nil {
		h.writeError(w, req, p.err)
		return
	}

	res, err := h.service.Sensitivity(req.Context(), lat, lon, tilt, azimuth, model)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, res)
}

// GetAngleMatrix returns the tilt × azimuth yield grid
func (h *Handlers) GetAngleMatrix(w http.ResponseWriter, req *http.Request) {
	p := newQueryParams(req.URL.Query())
	lat, lon := location(p)
	model := service.Model(p.string("model", ""))
	if p.err != nil {
		h.writeError(w, req, p.err)
		return
	}

	res, err := h.service.AngleMatrix(req.Context(), lat, lon, model)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, res)
}

// GetSeasonal returns per-season tilt recommendations
func (h *Handlers) GetSeasonal(w http.ResponseWriter, req *http.Request) {
	p := newQueryParams(req.URL.Query())
	lat, lon := location(p)
	model := service.Model(p.string("model", ""))
	if p.err != nil {
		h.writeError(w, req, p.err)
		return
	}

	res, err := h.service.Seasonal(req.Context(), lat, lon, model)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, map[string]any{"seasons": res})
}

// GetMultiObjective approximates the Pareto front of the requested objectives
func (h *Handlers) GetMultiObjective(w http.ResponseWriter, req *http.Request) {
	p := newQueryParams(req.URL.Query())
	lat, lon := location(p)
	model := service.Model(p.string("model", ""))
	var objectives []optimizer.Objective
	for _, o := range p.list("objectives") {
		objectives = append(objectives, optimizer.Objective(o))
	}
	if p.err != nil {
		h.writeError(w, req, p.err)
		return
	}

	res, err := h.service.MultiObjective(req.Context(), lat, lon, objectives, model)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, res)
}

// financialInput builds an analysis input from the configured defaults and
// any overriding query parameters
func (h *Handlers) financialInput(p *queryParams) finance.Input {
	in := h.service.FinancialInput(p.requiredFloat("annual_energy"), p.float("system_size", 3))
	in.InstallCostPerKw = p.float("install_cost", in.InstallCostPerKw)
	in.Prices.ElectricityPrice = p.float("electricity_price", in.Prices.ElectricityPrice)
	in.Prices.SMPPrice = p.float("smp_price", in.Prices.SMPPrice)
	in.Prices.RECPrice = p.float("rec_price", in.Prices.RECPrice)
	in.Prices.RECWeight = p.float("rec_weight", in.Prices.RECWeight)
	in.Prices.Model = types.RevenueModel(p.string("revenue_model", string(in.Prices.Model)))
	in.DegradationRate = p.float("annual_degradation", in.DegradationRate)
	in.LifetimeYears = p.int("lifetime", in.LifetimeYears)
	in.DiscountRate = p.float("discount_rate", in.DiscountRate)
	in.Extended = p.bool("extended")
	return in
}

// GetFinancialAnalysis runs the cash-flow analysis
func (h *Handlers) GetFinancialAnalysis(w http.ResponseWriter, req *http.Request) {
	p := newQueryParams(req.URL.Query())
	in := h.financialInput(p)
	if p.err != nil {
		h.writeError(w, req, p.err)
		return
	}

	res, err := h.service.AnalyzeFinancials(in)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, res)
}

// GetFinancialSweep steps one financial variable across a range
func (h *Handlers) GetFinancialSweep(w http.ResponseWriter, req *http.Request) {
	p := newQueryParams(req.URL.Query())
	in := h.financialInput(p)
	variable := finance.SweepVariable(p.string("variable", ""))
	start := p.requiredFloat("start")
	end := p.requiredFloat("end")
	step := p.requiredFloat("step")
	if p.err != nil {
		h.writeError(w, req, p.err)
		return
	}

	points, err := h.service.FinancialSweep(in, variable, start, end, step)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, map[string]any{"variable": variable, "points": points})
}

// decodeBody decodes a JSON request body into v
func decodeBody(req *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(req.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return solarerr.Invalid("body", 0, fmt.Sprintf("malformed JSON: %v", err))
	}
	return nil
}

// PostScenarios compares several financial scenarios. Fields a scenario
// leaves out take the configured defaults.
func (h *Handlers) PostScenarios(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Scenarios []json.RawMessage `json:"scenarios"`
	}
	if err := decodeBody(req, &body); err != nil {
		h.writeError(w, req, err)
		return
	}

	scenarios := make([]finance.Scenario, 0, len(body.Scenarios))
	for i, raw := range body.Scenarios {
		sc := finance.Scenario{Input: h.service.FinancialInput(0, 0)}
		if err := json.Unmarshal(raw, &sc); err != nil {
			h.writeError(w, req, solarerr.Invalid("scenarios", float64(i), err.Error()))
			return
		}
		scenarios = append(scenarios, sc)
	}

	res, err := h.service.CompareScenarios(scenarios)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, res)
}

// farmlandRequest is the body of POST /api/farmland
type farmlandRequest struct {
	AreaPyeong *float64 `json:"area_pyeong"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
}

// PostFarmland estimates an agrivoltaic installation
func (h *Handlers) PostFarmland(w http.ResponseWriter, req *http.Request) {
	var body farmlandRequest
	if err := decodeBody(req, &body); err != nil {
		h.writeError(w, req, err)
		return
	}
	if body.AreaPyeong == nil || body.Lat == nil || body.Lon == nil {
		h.writeError(w, req, solarerr.Invalid("body", 0, "area_pyeong, lat and lon are required"))
		return
	}

	res, err := h.service.Farmland(*body.AreaPyeong, *body.Lat, *body.Lon)
	if err != nil {
		h.writeError(w, req, err)
		return
	}
	h.write(w, req, res)
}

// GetValidateLocation checks coordinates. It always answers 200; the verdict
// is in the body.
func (h *Handlers) GetValidateLocation(w http.ResponseWriter, req *http.Request) {
	p := newQueryParams(req.URL.Query())
	lat, lon := location(p)
	if p.err != nil {
		h.write(w, req, service.LocationCheck{Message: p.err.Error()})
		return
	}
	h.write(w, req, h.service.ValidateLocation(lat, lon))
}

// GetSystemPresets lists the configured system presets
func (h *Handlers) GetSystemPresets(w http.ResponseWriter, req *http.Request) {
	h.write(w, req, map[string]any{"presets": h.service.Presets()})
}

// GetExport downloads a data table as CSV (default) or JSON
func (h *Handlers) GetExport(w http.ResponseWriter, req *http.Request) {
	p := newQueryParams(req.URL.Query())
	lat, lon := location(p)
	r := service.ExportRequest{
		Latitude:  lat,
		Longitude: lon,
		Type:      service.ExportType(p.string("data_type", string(service.ExportMonthly))),
		Period:    p.int("period", 1),
		Model:     service.Model(p.string("model", "")),
	}
	format := p.string("format", "csv")
	if p.err != nil {
		h.writeError(w, req, p.err)
		return
	}
	if format != "csv" && format != "json" && format != "msgpack" {
		h.writeError(w, req, solarerr.Invalid("format", 0, fmt.Sprintf("unsupported export format %q", format)))
		return
	}

	table, err := h.service.Export(req.Context(), r)
	if err != nil {
		h.writeError(w, req, err)
		return
	}

	if format == "csv" {
		if err := h.formatter.WriteCSV(w, table.Filename("csv"), table.Columns, table.StringRows()); err != nil {
			h.controller.logger.Errorf("error writing CSV export: %v", err)
		}
		return
	}

	h.formatter.WriteResponse(w, req, map[string]any{
		"latitude":  lat,
		"longitude": lon,
		"data_type": r.Type,
		"columns":   table.Columns,
		"data":      table.Records(),
	}, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", table.Filename(format)),
	})
}
