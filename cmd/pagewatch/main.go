package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"pagewatch/internal/capture"
	"pagewatch/internal/config"
	"pagewatch/internal/datastore"
	"pagewatch/internal/differ"
	"pagewatch/internal/logger"
	"pagewatch/internal/monitor"
	"pagewatch/internal/notifier"
	"pagewatch/internal/scheduler"
	"pagewatch/internal/server"
)

func main() {
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for --config")

	modeFlag := flag.String("mode", "", "Mode to run: onetime, automated or serve (overrides config file if set)")
	modeFlagAlias := flag.String("m", "", "Alias for --mode")
	flag.Parse()

	if *configFile == "" && *configFileAlias != "" {
		*configFile = *configFileAlias
	}
	if *modeFlag == "" && *modeFlagAlias != "" {
		*modeFlag = *modeFlagAlias
	}

	gCfg, err := config.LoadGlobalConfig(*configFile)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load config using path '%s': %v", *configFile, err)
	}

	if *modeFlag != "" {
		gCfg.Mode = *modeFlag
		if err := config.ValidateConfig(gCfg); err != nil {
			log.Fatalf("[FATAL] Main: Configuration invalid after mode override: %v", err)
		}
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}
	zLogger.Info().Str("mode", gCfg.Mode).Msg("Configuration loaded")

	store, err := datastore.NewScreenshotStore(gCfg.StorageConfig, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Str("directory", gCfg.StorageConfig.ArtifactsDir).Msg("Could not initialize artifact store")
	}

	browsers := capture.NewBrowserManager(gCfg.CaptureConfig, zLogger)
	if err := browsers.Start(); err != nil {
		zLogger.Fatal().Err(err).Msg("Could not launch browser")
	}
	defer browsers.Stop()

	capturer := capture.NewCapturer(gCfg.CaptureConfig, browsers, zLogger)
	imageDiffer := differ.NewImageDiffer(gCfg.CompareConfig, zLogger)
	emailNotifier := notifier.NewEmailNotifier(gCfg.NotificationConfig, zLogger)
	svc := monitor.NewService(gCfg.MonitorConfig, gCfg.StorageConfig, capturer, store, imageDiffer, emailNotifier, zLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch gCfg.Mode {
	case config.ModeOnetime:
		runOnetime(ctx, svc, zLogger)
	case config.ModeAutomated:
		sched, err := scheduler.NewScheduler(gCfg.SchedulerConfig, svc, zLogger)
		if err != nil {
			zLogger.Fatal().Err(err).Msg("Could not initialize scheduler")
		}
		if err := sched.Start(ctx); err != nil {
			zLogger.Fatal().Err(err).Msg("Scheduler terminated with error")
		}
	case config.ModeServe:
		srv := server.NewServer(gCfg.ServerConfig, svc, capturer, store, imageDiffer, emailNotifier, zLogger)
		if err := srv.Start(ctx); err != nil {
			zLogger.Fatal().Err(err).Msg("HTTP server terminated with error")
		}
	default:
		zLogger.Fatal().Str("mode", gCfg.Mode).Msg("Unknown mode")
	}
}

func runOnetime(ctx context.Context, svc *monitor.Service, zLogger zerolog.Logger) {
	result, err := svc.RunBatch(ctx)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Batch run failed")
	}
	zLogger.Info().
		Int("urls", len(result.Results)).
		Int("errors", result.ErrorCount()).
		Int("changed", result.ChangedCount()).
		Msg("Batch run completed")
}
