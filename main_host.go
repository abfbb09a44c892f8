package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"cubeviz/app"
	"cubeviz/hal"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "Optional TOML config file.")
		headless = flag.Bool("headless", false, "Run without a window.")
		hz       = flag.Int("hz", 0, "Tick rate (defaults to the config tps).")
		ticks    = flag.Uint64("ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
		scale    = flag.Int("scale", 0, "Window scale factor (defaults to the config scale).")
		logLevel = flag.String("log-level", "", "debug|info|warn|error (defaults to the config log_level).")
	)
	flag.Parse()

	cfg, err := app.LoadConfig(*cfgPath)
	if err != nil {
		fatalf("%v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hz":
			cfg.TPS = *hz
		case "scale":
			cfg.Scale = *scale
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	cfg = cfg.Normalize()

	newApp := func(h hal.HAL) (func() error, error) {
		return app.New(h, cfg)
	}

	if *headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
			Enabled: true,
			Hz:      cfg.TPS,
			Ticks:   *ticks,
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			fatalf("%v", err)
		}
		return
	}

	if err := hal.RunWindow(newApp, hal.WindowConfig{Scale: cfg.Scale, TPS: cfg.TPS}); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
