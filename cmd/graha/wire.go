package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/custodia-labs/graha/internal/adapters/driven/ai"
	"github.com/custodia-labs/graha/internal/adapters/driven/config/env"
	configfile "github.com/custodia-labs/graha/internal/adapters/driven/config/file"
	ephemerisfile "github.com/custodia-labs/graha/internal/adapters/driven/ephemeris/file"
	"github.com/custodia-labs/graha/internal/adapters/driven/geocode/nominatim"
	rulesfile "github.com/custodia-labs/graha/internal/adapters/driven/rules/file"
	"github.com/custodia-labs/graha/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/graha/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/graha/internal/adapters/driving/cli"
	"github.com/custodia-labs/graha/internal/conditions"
	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
	"github.com/custodia-labs/graha/internal/core/services"
)

// wire builds the adapters and services for one command run.
func wire(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	log := opts.Log
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		_ = log.Sync()
	}
	fail := func(err error) (*cli.Services, func(), error) {
		cleanup()
		return nil, nil, err
	}

	dir := opts.ConfigDir
	if dir == "" && !opts.Ephemeral {
		d, err := configfile.DefaultDir()
		if err != nil {
			return fail(fmt.Errorf("locating config directory: %w", err))
		}
		dir = d
	}

	// Config store: file-backed unless ephemeral, always under the env overlay.
	var base driven.ConfigStore
	if opts.Ephemeral {
		base = memory.NewConfigStore()
	} else {
		store, err := configfile.NewConfigStore(dir)
		if err != nil {
			return fail(fmt.Errorf("opening config: %w", err))
		}
		base = store
	}
	overrides, err := env.Parse()
	if err != nil {
		return fail(err)
	}
	configStore := env.NewOverlay(base, overrides)

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fail(err)
	}
	log.Debug("settings loaded (ephemeral=%t)", opts.Ephemeral)

	// Rules.
	registry := conditions.NewDefaultRegistry()
	loader := rulesfile.NewLoader(func(defs []domain.YogaDefinition) error {
		return services.ValidateYogaDefinitions(registry, defs)
	})
	ruleStore, err := rulesfile.NewStore(loader, settings.Rules.Dir, log.With(zap.String("component", "rules")))
	if err != nil {
		return fail(err)
	}
	if opts.Watch && settings.Rules.Watch && settings.Rules.Dir != "" {
		watchCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := ruleStore.Watch(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("rules watcher stopped: %v", err)
			}
		}()
		closers = append(closers, func() {
			cancel()
			<-done
		})
	}

	// Reports.
	var reports driven.ReportStore
	if opts.Ephemeral {
		reports = memory.NewReportStore()
	} else {
		db, err := sqlite.NewStore(filepath.Join(dir, "data"))
		if err != nil {
			return fail(fmt.Errorf("opening history: %w", err))
		}
		closers = append(closers, func() { _ = db.Close() })
		reports = db.ReportStore()
	}

	chart := services.NewChartService(ruleStore, registry, log.With(zap.String("component", "chart")))
	chart.SetEphemeris(ephemerisfile.NewProvider(""))
	chart.SetReportStore(reports)
	chart.SetAnalysisDefaults(settings.Analysis)
	if settings.Geocoder.Provider == domain.GeocoderNominatim {
		chart.SetGeocoder(nominatim.New(nominatim.Config{
			BaseURL:   settings.Geocoder.BaseURL,
			UserAgent: settings.Geocoder.UserAgent,
		}, log.With(zap.String("component", "geocoder"))))
	}

	// The LLM is optional and only contacted by commands that ask it something.
	llm, err := ai.NewLazyLLMService(ctx, &settings.LLM)
	if err != nil {
		log.Warn("%v", err)
		llm = nil
	}
	if llm != nil {
		closers = append(closers, func() { _ = llm.Close() })
	}

	var prompts driven.PromptStore
	if !opts.Ephemeral {
		ps, err := configfile.NewPromptStore(filepath.Join(dir, "prompts"))
		if err != nil {
			log.Warn("prompt store unavailable, using built-in prompts: %v", err)
		} else {
			prompts = ps
		}
	}

	return &cli.Services{
		Chart:     chart,
		Narrative: services.NewNarrativeService(llm, prompts, log),
		History:   services.NewHistoryService(reports),
		Rules:     services.NewRulesService(ruleStore, loader),
		Settings:  settingsService,
	}, cleanup, nil
}
