package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"horobot/internal/config"
	"horobot/internal/scheduler"
	"horobot/pkg/fetch"
	"horobot/pkg/notify"
	"horobot/pkg/render"
	"horobot/pkg/server"
	"horobot/pkg/zodiac"
)

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func loadRegistry(cfg *config.Config) (zodiac.Registry, error) {
	reg, err := zodiac.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	return reg, nil
}

func buildNotifyManager(cfg *config.Config) *notify.Manager {
	var notifiers []notify.Notifier

	if cfg.Notify.Slack.Enabled && cfg.Notify.Slack.BotToken != "" {
		notifiers = append(notifiers, notify.NewSlack(cfg.Notify.Slack.BotToken, cfg.Notify.Slack.ChannelID))
	}
	if cfg.Notify.Discord.Enabled && cfg.Notify.Discord.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewDiscord(cfg.Notify.Discord.WebhookURL))
	}
	if cfg.Notify.Webhook.Enabled && cfg.Notify.Webhook.URL != "" {
		notifiers = append(notifiers, notify.NewWebhook(cfg.Notify.Webhook.URL, cfg.Notify.Webhook.Secret))
	}

	return notify.NewManager(notifiers)
}

// buildToday fetches the current data and builds the matrix and digest.
func buildToday(ctx context.Context, cfg *config.Config, reg zodiac.Registry) (*notify.Digest, *zodiac.Matrix, error) {
	fetcher := fetch.NewHoroskopy(cfg.Source.BaseURL)

	fmt.Fprintln(os.Stderr, "fetching compatibility data...")
	raw, err := fetcher.Fetch(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch: %w", err)
	}
	fmt.Fprintf(os.Stderr, "  %d signs\n", len(raw))

	matrix, err := zodiac.BuildMatrix(raw, reg)
	if err != nil {
		return nil, nil, fmt.Errorf("build matrix: %w", err)
	}

	digest := render.BuildDigest(matrix, reg, time.Now().In(cfg.Schedule.Location()))
	return digest, matrix, nil
}

func runSend() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	digest, _, err := buildToday(ctx, cfg, reg)
	if err != nil {
		return err
	}

	mgr := buildNotifyManager(cfg)
	if !mgr.HasNotifiers() {
		fmt.Println(digest.Title())
		fmt.Println(digest.Summary)
		for _, t := range digest.Tables {
			fmt.Println()
			fmt.Println(t)
		}
		return nil
	}

	if err := mgr.Broadcast(ctx, digest); err != nil {
		return fmt.Errorf("broadcast: %w", err)
	}
	fmt.Fprintln(os.Stderr, "digest sent")
	return nil
}

func runMatrix() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	_, matrix, err := buildToday(context.Background(), cfg, reg)
	if err != nil {
		return err
	}

	tables := render.Tables(matrix)
	if len(tables) == 0 {
		fmt.Println("no data")
		return nil
	}
	fmt.Println(strings.Join(tables, "\n\n"))
	return nil
}

func runSummary(bandLabel string) error {
	band, err := zodiac.ParseBand(bandLabel)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	_, matrix, err := buildToday(context.Background(), cfg, reg)
	if err != nil {
		return err
	}

	lines := zodiac.RenderSummary(zodiac.ExtractPairs(matrix, reg, band), zodiac.KindForBand(band))
	if len(lines) == 0 {
		fmt.Printf("no relationships at %s\n", band.Label())
		return nil
	}
	fmt.Println(strings.Join(lines, "\n"))
	return nil
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	if port == 0 {
		port = cfg.Server.Port
	}
	srv := server.New(reg, port)

	digest, matrix, err := buildToday(context.Background(), cfg, reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initial build failed: %v\n", err)
	} else {
		srv.SetLatest(digest, matrix)
	}

	return srv.ListenAndServe()
}

func runDaemon(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	if port == 0 {
		port = cfg.Server.Port
	}
	srv := server.New(reg, port)

	mgr := buildNotifyManager(cfg)
	fetcher := fetch.NewHoroskopy(cfg.Source.BaseURL)
	hour, minute := cfg.Schedule.ParseSendAt()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.New(fetcher, reg, mgr, hour, minute, cfg.Schedule.Location(), srv.SetLatest)

	// Start scheduler in background.
	go func() {
		if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "scheduler error: %v\n", err)
		}
	}()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nshutting down...")
	}()

	return srv.ListenAndServe()
}
