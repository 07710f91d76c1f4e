package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chrissnell/solarestimate/internal/app"
	"github.com/chrissnell/solarestimate/internal/optimizer"
	"github.com/chrissnell/solarestimate/internal/service"
	"github.com/chrissnell/solarestimate/internal/types"
	"github.com/chrissnell/solarestimate/pkg/config"
	"go.uber.org/zap"
)

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func main() {
	var (
		lat, lon, tilt, azimuth, size float64
		model, cfgFile, locations     string
		optimize                      bool
	)
	flag.Float64Var(&lat, "lat", 37.5665, "Latitude in decimal degrees")
	flag.Float64Var(&lon, "lon", 126.9780, "Longitude in decimal degrees")
	flag.Float64Var(&tilt, "tilt", 30, "Panel tilt in degrees")
	flag.Float64Var(&azimuth, "azimuth", 180, "Panel azimuth in degrees (180 = south)")
	flag.Float64Var(&size, "size", 3, "System size in kWp for the financial summary")
	flag.StringVar(&model, "model", "", "Yield model: empirical or detailed")
	flag.StringVar(&cfgFile, "config", "", "Optional YAML configuration file")
	flag.StringVar(&locations, "locations", "", "Batch mode: semicolon-separated lat,lon pairs, e.g. 33.5,126.5;35.1,129.0")
	flag.BoolVar(&optimize, "optimize", false, "Search for the optimal tilt and azimuth")
	flag.Parse()

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	deps, err := app.Build(cfg, nil, zap.NewNop().Sugar())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer deps.Close()

	ctx := context.Background()

	if locations != "" {
		if err := batch(ctx, deps, locations, cfg.Weather.BatchDelay); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	svc := deps.Service
	if optimize {
		angles, err := svc.FindOptimalAngles(ctx, lat, lon, optimizer.MethodLBFGS, service.Model(model))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error optimizing angles: %v\n", err)
			os.Exit(1)
		}
		tilt, azimuth = angles.Tilt, angles.Azimuth
	}

	res, err := svc.EstimateYield(ctx, service.YieldRequest{
		Latitude:  lat,
		Longitude: lon,
		Tilt:      tilt,
		Azimuth:   azimuth,
		Model:     service.Model(model),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error estimating yield: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("PV Yield Estimate for %.4f, %.4f\n", lat, lon)
	fmt.Printf("  Model:          %s\n", res.Model)
	fmt.Printf("  GHI:            %.1f kWh/m²/yr (%s)\n", res.GHI, res.GHISource)
	fmt.Printf("  Orientation:    tilt %.1f°, azimuth %.1f°\n", tilt, azimuth)
	fmt.Printf("  Annual energy:  %.1f kWh/kWp\n", res.AnnualEnergy)
	fmt.Printf("  Temp effect:    %.2f%%\n", res.TempEffect)
	fmt.Printf("  Optimal:        tilt %.1f°, azimuth %d°\n", res.OptimalTilt, res.OptimalAzimuth)
	fmt.Printf("  Monthly:\n")
	for i, e := range res.MonthlyEnergy {
		fmt.Printf("    %s  %7.1f\n", months[i], e)
	}

	fin, err := svc.AnalyzeFinancials(svc.FinancialInput(res.AnnualEnergy, size))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing financials: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Financial summary for %.1f kWp\n", size)
	fmt.Printf("  Install cost:   %.0f KRW\n", fin.TotalCost)
	fmt.Printf("  Annual revenue: %.0f KRW\n", fin.AnnualRevenue)
	if fin.PaybackPeriod != nil {
		fmt.Printf("  Payback:        %.1f years\n", *fin.PaybackPeriod)
	} else {
		fmt.Printf("  Payback:        not reached\n")
	}
	fmt.Printf("  ROI:            %.1f%%\n", fin.ROI)
}

func loadConfig(path string) (*config.ConfigData, error) {
	if path == "" {
		return config.ParseYAML(nil)
	}
	provider := config.NewYAMLProvider(path)
	defer provider.Close()
	return provider.LoadConfig()
}

func batch(ctx context.Context, deps *app.Deps, list string, delay time.Duration) error {
	locs, err := parseLocations(list)
	if err != nil {
		return err
	}

	results, err := deps.Weather.BatchAnnualGHI(ctx, locs, delay)
	if err != nil {
		return err
	}

	sort.Slice(locs, func(i, j int) bool {
		if locs[i].Latitude != locs[j].Latitude {
			return locs[i].Latitude < locs[j].Latitude
		}
		return locs[i].Longitude < locs[j].Longitude
	})

	fmt.Printf("Annual GHI (kWh/m²/yr)\n")
	for _, l := range locs {
		if ghi, ok := results[l]; ok {
			fmt.Printf("  %9.4f %10.4f  %7.1f\n", l.Latitude, l.Longitude, ghi)
		} else {
			fmt.Printf("  %9.4f %10.4f  unavailable\n", l.Latitude, l.Longitude)
		}
	}
	return nil
}

func parseLocations(list string) ([]types.Location, error) {
	var locs []types.Location
	for _, pair := range strings.Split(list, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.Split(pair, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid location %q: expected lat,lon", pair)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude in %q: %w", pair, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude in %q: %w", pair, err)
		}
		locs = append(locs, types.Location{Latitude: lat, Longitude: lon})
	}
	if len(locs) == 0 {
		return nil, fmt.Errorf("no locations given")
	}
	return locs, nil
}
