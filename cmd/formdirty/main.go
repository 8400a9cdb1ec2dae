package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	formdirty "github.com/goliatone/go-formdirty"
	"github.com/goliatone/go-formdirty/pkg/config"
	"github.com/goliatone/go-formdirty/pkg/dirty"
	"github.com/goliatone/go-formdirty/pkg/editors"
	"github.com/goliatone/go-formdirty/pkg/prompt"
	"github.com/goliatone/go-formdirty/pkg/rodhost"
)

func main() {
	configPath := flag.String("config", "", "YAML or JSON tracker configuration")
	baseline := flag.String("baseline", "", "HTML capture of the page as served")
	current := flag.String("current", "", "HTML capture of the page as left by the user")
	pageURL := flag.String("url", "", "watch a live page in a browser instead of comparing files")
	controlURL := flag.String("control", "", "DevTools URL of a running browser (launches one when empty)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	switch {
	case strings.TrimSpace(*pageURL) != "":
		if err := watch(context.Background(), cfg, *pageURL, *controlURL, logger); err != nil {
			log.Fatalf("Failed to watch page: %v", err)
		}
	case *baseline != "" && *current != "":
		dirtyPage, err := compare(cfg, *baseline, *current, logger)
		if err != nil {
			log.Fatalf("Failed to compare pages: %v", err)
		}
		if dirtyPage {
			os.Exit(1)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func compare(cfg config.Config, baselinePath, currentPath string, logger *slog.Logger) (bool, error) {
	before, err := os.Open(baselinePath)
	if err != nil {
		return false, err
	}
	defer before.Close()
	after, err := os.Open(currentPath)
	if err != nil {
		return false, err
	}
	defer after.Close()

	options := append(cfg.TrackerOptions(nil), dirty.WithLogger(logger))
	changes, err := formdirty.Compare(before, after, options...)
	if err != nil {
		return false, err
	}
	if len(changes) == 0 {
		fmt.Println("No unsaved changes.")
		return false, nil
	}
	fmt.Println(cfg.Warning)
	for _, change := range changes {
		fmt.Printf("  %s\n", change)
	}
	return true, nil
}

// watch snapshots a live page and, on every Ctrl+C, asks before leaving when
// the page holds unsaved changes.
func watch(ctx context.Context, cfg config.Config, pageURL, controlURL string, logger *slog.Logger) error {
	browser := rod.New()
	if controlURL != "" {
		browser = browser.ControlURL(controlURL)
	}
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: pageURL})
	if err != nil {
		return fmt.Errorf("open page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		logger.Warn("formdirty: wait load failed", "url", pageURL, "error", err)
	}

	host := rodhost.New(page, rodhost.WithContext(ctx), rodhost.WithLogger(logger))
	removeHook, err := host.WatchSubmit(ctx)
	if err != nil {
		return err
	}
	defer removeHook()

	var registry *editors.Registry
	if len(cfg.Editors) > 0 {
		registry, err = rodhost.Registry(host, cfg.Editors...)
		if err != nil {
			return err
		}
	}

	options := append(cfg.TrackerOptions(registry), dirty.WithLogger(logger))
	tracker := dirty.New(host, options...)
	tracker.Snapshot(nil)
	logger.Info("formdirty: watching page", "url", pageURL, "forms", len(tracker.Tracked()))

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	guard := prompt.New(prompt.WithChanges(tracker))
	for range interrupts {
		if err := host.Sync(ctx, tracker); err != nil {
			logger.Warn("formdirty: submit sync failed", "error", err)
		}
		leave, err := guard.ConfirmLeave(ctx, tracker)
		if err != nil && !errors.Is(err, prompt.ErrAborted) {
			return err
		}
		if leave {
			return nil
		}
		logger.Info("formdirty: staying on page, press Ctrl+C to try again")
	}
	return nil
}
