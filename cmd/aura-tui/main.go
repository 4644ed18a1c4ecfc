package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"aura/client"
	"aura/config"
	"aura/lifecycle"
	"aura/session"
	"aura/tui"
	"aura/utils"
)

var CLI struct {
	Version kong.VersionFlag
	APIURL  string `help:"Marketplace API base URL." name:"api-url"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("aura"),
		kong.Description("Terminal client for the aura home-services marketplace"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	baseURL := cfg.APIBaseURL
	if CLI.APIURL != "" {
		baseURL = CLI.APIURL
	}

	// The TUI's session lives exactly as long as the process.
	sess := session.NewManager(session.NewMemoryStore(), logger)
	if err := sess.Load(context.Background()); err != nil {
		logger.Sugar().Fatalf("main: session load: %v", err)
	}

	api := client.New(baseURL, logger,
		client.WithTokenSource(sess),
		client.WithTimeout(cfg.APITimeout),
		client.WithRateLimit(cfg.APIRatePerSec, cfg.APIRateBurst),
	)
	machine := lifecycle.New(cfg.AllowCancelInProgress)

	p := tea.NewProgram(tui.NewModel(api, sess, machine, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
