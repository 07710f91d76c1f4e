package restserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/chrissnell/solarestimate/internal/log"
	"github.com/chrissnell/solarestimate/internal/metrics"
	"github.com/chrissnell/solarestimate/internal/service"
	"github.com/chrissnell/solarestimate/pkg/config"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.ServerData
	Server     http.Server
	service    *service.Service
	metrics    *metrics.Metrics
	logger     *zap.SugaredLogger
	handlers   *Handlers
}

// NewController creates a new REST server controller. m may be nil, in which
// case /metrics is not served.
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.ServerData, svc *service.Service, m *metrics.Metrics, logger *zap.SugaredLogger) (*Controller, error) {
	if svc == nil {
		return nil, fmt.Errorf("REST server requires a service")
	}
	if logger == nil {
		logger = log.GetSugaredLogger()
	}

	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		restConfig: rc,
		service:    svc,
		metrics:    m,
		logger:     logger,
	}

	// If a ListenAddr was not provided, listen on all interfaces
	if rc.ListenAddr == "" {
		logger.Info("server.listen-addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		rc.ListenAddr = "0.0.0.0"
	}

	// Set default HTTP port if not specified
	if rc.Port == 0 {
		logger.Info("server.port not provided; defaulting to 8080")
		rc.Port = 8080
	}

	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.Port)
	ctrl.Server.Handler = ctrl.setupRouter()
	ctrl.Server.ReadTimeout = rc.ReadTimeout
	ctrl.Server.WriteTimeout = rc.WriteTimeout

	return ctrl, nil
}

// Handler returns the routed HTTP handler
func (c *Controller) Handler() http.Handler {
	return c.Server.Handler
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	c.logger.Infof("Starting REST server on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		var err error
		if c.restConfig.Cert != "" && c.restConfig.Key != "" {
			err = c.Server.ListenAndServeTLS(c.restConfig.Cert, c.restConfig.Key)
		} else {
			err = c.Server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		c.logger.Info("Shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		c.Server.Shutdown(shutdownCtx)
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(log.HTTPMiddleware(c.logger, c.observeRequest))

	// API routes hang off the root router so that a path matched with the
	// wrong method answers 405 instead of falling through to 404
	api := func(path string, h http.HandlerFunc, method string) {
		router.HandleFunc("/api"+path, h).Methods(method)
	}
	api("/pv_data", c.handlers.GetPVData, http.MethodGet)
	api("/optimize_angles", c.handlers.GetOptimizeAngles, http.MethodGet)
	api("/sensitivity_analysis", c.handlers.GetSensitivity, http.MethodGet)
	api("/angle_matrix", c.handlers.GetAngleMatrix, http.MethodGet)
	api("/seasonal", c.handlers.GetSeasonal, http.MethodGet)
	api("/multi_objective", c.handlers.GetMultiObjective, http.MethodGet)
	api("/financial_analysis", c.handlers.GetFinancialAnalysis, http.MethodGet)
	api("/financial_sweep", c.handlers.GetFinancialSweep, http.MethodGet)
	api("/scenarios", c.handlers.PostScenarios, http.MethodPost)
	api("/farmland", c.handlers.PostFarmland, http.MethodPost)
	api("/validate_location", c.handlers.GetValidateLocation, http.MethodGet)
	api("/system_presets", c.handlers.GetSystemPresets, http.MethodGet)
	api("/export", c.handlers.GetExport, http.MethodGet)

	router.MethodNotAllowedHandler = http.HandlerFunc(c.handlers.MethodNotAllowed)

	if c.metrics != nil {
		router.Handle("/metrics", promhttp.HandlerFor(c.metrics.Registry, promhttp.HandlerOpts{}))
	}

	return router
}

// observeRequest feeds request outcomes into the HTTP metrics, labelled by
// route template so that query strings do not explode cardinality
func (c *Controller) observeRequest(r *http.Request, status int, elapsed time.Duration) {
	if c.metrics == nil {
		return
	}
	route := r.URL.Path
	if cr := mux.CurrentRoute(r); cr != nil {
		if tmpl, err := cr.GetPathTemplate(); err == nil {
			route = tmpl
		}
	}
	c.metrics.HTTP.RecordRequest(route, status, elapsed)
}
