package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"polytrace/internal/config"
	"polytrace/internal/tui"
)

func main() {
	cfgPath := flag.String("config", config.DefaultPath(), "path to JSON config")
	logPath := flag.String("log", "", "write JSON logs to this file")
	debug := flag.Bool("debug", false, "log at debug level")
	saveCfg := flag.Bool("save-config", false, "write the effective config to -config and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [image]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
	}
	if *logPath != "" {
		cfg.LogFile = *logPath
	}
	if *debug {
		cfg.Debug = true
	}

	if *saveCfg {
		if *cfgPath == "" {
			log.Fatal("save-config: no config path")
		}
		if err := cfg.Save(*cfgPath); err != nil {
			log.Fatal(err)
		}
		fmt.Println("wrote", *cfgPath)
		return
	}

	// The terminal belongs to the UI, so logs only go to a file.
	var w io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(w, level)
	logger.Info("starting", "config", *cfgPath, "debug", cfg.Debug)

	var m tea.Model
	if flag.NArg() > 0 {
		m = tui.NewWithPath(flag.Arg(0), cfg, logger)
	} else {
		m = tui.New(cfg, logger)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus()).Run(); err != nil {
		logger.Error("program exited", "err", err)
		log.Fatal(err)
	}
}
