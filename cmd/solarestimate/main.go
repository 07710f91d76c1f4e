package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chrissnell/solarestimate/internal/app"
	"github.com/chrissnell/solarestimate/internal/constants"
	"github.com/chrissnell/solarestimate/internal/log"
	"github.com/chrissnell/solarestimate/pkg/config"
)

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("solarestimate %s\n", constants.Version)
		os.Exit(0)
	}

	// Console logging until the configuration says otherwise
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfgData, err := loadConfig(*cfgFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if lc := cfgData.Logging; lc.File != "" {
		err := log.InitWithFile(*debug || lc.Debug, log.FileOptions{
			Path:       lc.File,
			MaxSizeMB:  lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
			MaxAgeDays: lc.MaxAgeDays,
		})
		if err != nil {
			log.Fatalf("Failed to initialize file logging: %v", err)
		}
	} else if lc.Debug && !*debug {
		if err := log.Init(true); err != nil {
			fmt.Printf("Failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
	}

	log.Infof("solarestimate %s starting", constants.Version)

	application := app.New(cfgData, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func loadConfig(cfgFile string) (*config.ConfigData, error) {
	filename, _ := filepath.Abs(cfgFile)

	provider := config.NewYAMLProvider(filename)
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	return cfgData, nil
}
