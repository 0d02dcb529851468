package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"filterable/internal/config"
	"filterable/internal/domain"
	"filterable/internal/eventbus"
	"filterable/internal/terminal"
	"filterable/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath string
	flag.StringVar(&configPath, "config", "", "Page description to load (.toml, .yaml, .yml or .json)")
	flag.StringVar(&configPath, "c", "", "Page description to load (shorthand)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-c page.toml] [page.toml]\n\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "Shows a page of filterable selects, lists and tables.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if configPath == "" && flag.NArg() > 0 {
		configPath = flag.Arg(0)
	}

	// Set up logging
	logFile, err := os.OpenFile("filterable.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := eventbus.New()
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) tea.Cmd {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Printf("Loaded page from %s (%d elements)", event.Path, event.Elements)
		}
		return nil
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) tea.Cmd {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			log.Printf("Config saved to %s", event.Path)
		}
		return nil
	})

	var configSvc config.ConfigService
	if configPath != "" {
		configSvc = config.NewConfigServiceWithBus(configPath, bus)
	} else {
		configSvc = config.NewConfigServiceWithBus(config.NewConfigService().Path(), bus)
	}
	cfg := loadOrCreateConfig(configSvc, configPath != "")

	env := terminal.Current()
	if !env.Supported() {
		log.Printf("Terminal not supported (TERM=%q), filtering disabled", env.Term)
	}

	uiModel := ui.NewModel(bus, cfg, env.Supported())
	defer uiModel.Close()

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(uiModel, opts...)
	uiModel.SetProgram(p)

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			p.Quit()
		case <-ctx.Done():
		}
	}()

	if os.Getenv("FILTERABLE_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// loadOrCreateConfig loads the page description. An explicitly named file
// that does not exist yet is created from the demo page.
func loadOrCreateConfig(configSvc config.ConfigService, explicit bool) *config.Config {
	path := configSvc.Path()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && explicit {
		log.Printf("Creating new page at %s", path)
		cfg := config.DefaultConfig()
		if err := configSvc.Save(cfg); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
		return cfg
	}

	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		return config.DefaultConfig()
	}
	logElements(cfg)
	return cfg
}

func logElements(cfg *config.Config) {
	counts := make(map[domain.ElementKind]int)
	for _, e := range cfg.Elements {
		counts[domain.ElementKind(e.Kind)]++
	}
	log.Printf("Page %q: %d selects, %d lists, %d tables, %d inputs", cfg.Title,
		counts[domain.KindSelect], counts[domain.KindList], counts[domain.KindTable], counts[domain.KindInput])
}
