package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"plantagotchi/internal/config"
)

func main() {
	var (
		configPath  string
		journalPath string
		manual      bool
	)
	flag.StringVar(&configPath, "config", "", "path to a yaml config file")
	flag.StringVar(&journalPath, "journal", "", "sqlite file to journal sessions into")
	flag.BoolVar(&manual, "manual", false, "only advance days with 'next'")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if journalPath != "" {
		cfg.SQLitePath = journalPath
	}
	tick := cfg.TickInterval()
	if manual {
		tick = 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, err := newApp(ctx, appConfig{
		Config: cfg,
		Tick:   tick,
		Out:    os.Stdout,
		Logger: config.NewLogger("warn", os.Stderr),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(ctx, os.Stdin); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
