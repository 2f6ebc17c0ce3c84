// Copyright (c) 2025 Tinkerhaus Labs
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package main is the entry point for the Crema Panel server application.
package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tinkerhaus/crema/internal/client"
	"github.com/tinkerhaus/crema/internal/endpoint"
	"github.com/tinkerhaus/crema/internal/handler"
	"github.com/tinkerhaus/crema/internal/panelconfig"
	"github.com/tinkerhaus/crema/internal/pkg/logger"
	"github.com/tinkerhaus/crema/internal/repository"
	"github.com/tinkerhaus/crema/internal/router"
	"github.com/tinkerhaus/crema/internal/service"
	"github.com/tinkerhaus/crema/internal/types"
)

// rootCmd is the root command for the CLI application.
var rootCmd = &cobra.Command{
	Use:   "crema-panel",
	Short: "Crema Panel - Web control panel for a networked espresso machine",
	Long:  `A web service exposing the machine's settings, tag taxonomy and command endpoints to the browser panel.`,
	Run:   runServer,
}

// shareCmd resolves a network-reachable panel URL from the terminal.
var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print a network-reachable variant of a panel URL",
	Long:  `Resolves the given panel page URL into one reachable from other devices on the LAN, using the backend's network-ip probe and the panel configuration resource.`,
	RunE:  runShare,
}

// init initializes command-line flags and environment variable bindings.
func init() {
	rootCmd.Flags().String("host", "0.0.0.0", "Server host")
	rootCmd.Flags().IntP("port", "p", 8080, "Server port")
	rootCmd.Flags().StringSlice("cors-allowed-origins", []string{"*"}, "CORS allowed origins")
	rootCmd.Flags().String("data-dir", "/data", "Base data directory for panel settings")

	// Machine configuration
	rootCmd.Flags().String("machine-controller-url", "", "Base URL of the machine controller")
	rootCmd.Flags().Duration("command-timeout", 10*time.Second, "Timeout for forwarded machine commands")

	// Panel configuration
	rootCmd.Flags().String("advertised-server-url", "", "Backend base URL advertised in /config.json (empty = same origin)")

	viper.BindPFlags(rootCmd.Flags())

	// Set environment variable prefix to "CREMA"
	viper.SetEnvPrefix("CREMA")
	viper.AutomaticEnv()
	// Replace hyphens with underscores in environment variable names
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	shareCmd.Flags().String("url", "", "Panel page URL to resolve (e.g. http://localhost:3000/app)")
	shareCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(shareCmd)
}

// runServer is the main server execution function.
func runServer(cmd *cobra.Command, args []string) {
	cfg := &types.Config{
		Server: types.ServerConfig{
			Host: viper.GetString("host"),
			Port: viper.GetInt("port"),
		},
		Machine: types.MachineConfig{
			ControllerURL:  viper.GetString("machine-controller-url"),
			CommandTimeout: viper.GetDuration("command-timeout"),
		},
		Panel: types.PanelConfig{
			ServerURL: viper.GetString("advertised-server-url"),
		},
		CORS: types.CORSConfig{
			AllowedOrigins: viper.GetStringSlice("cors-allowed-origins"),
		},
		Storage: types.StorageConfig{
			DataDir: viper.GetString("data-dir"),
		},
	}

	// Initialize logger
	log := logger.New()

	log.Info("Starting Crema Panel server")
	log.Info("=================================")

	// Log configuration
	log.Info("Panel Configuration:")
	log.Info("  Data directory: %s", cfg.Storage.DataDir)
	if cfg.Machine.ControllerURL != "" {
		log.Info("  Machine controller: %s", cfg.Machine.ControllerURL)
	} else {
		log.Info("  Machine controller: NOT CONFIGURED (commands will fail in-band)")
	}
	if cfg.Panel.ServerURL != "" {
		log.Info("  Advertised server URL: %s", cfg.Panel.ServerURL)
	} else {
		log.Info("  Advertised server URL: same origin")
	}

	// Initialize repositories
	settingsRepo, err := repository.NewFileSettingsRepository(cfg.Storage.DataDir)
	if err != nil {
		log.Error("Failed to initialize settings repository: %v", err)
		return
	}

	// Initialize services
	settingsService := service.NewSettingsService(settingsRepo, log)
	networkService := service.NewNetworkService(log)
	commandService, err := service.NewCommandService(cfg.Machine.ControllerURL, cfg.Machine.CommandTimeout, log)
	if err != nil {
		log.Error("Failed to initialize command service: %v", err)
		return
	}

	// The server resolves share URLs in-process: the local detector is the
	// probe tier, the advertised server URL is the config tier.
	configStore := panelconfig.NewStaticStore(panelconfig.Configuration{ServerURL: cfg.Panel.ServerURL})
	resolver := endpoint.NewResolver(networkService, configStore, log)

	// Initialize HTTP handlers
	settingsHandler := handler.NewSettingsHandler(settingsService, log)
	networkHandler := handler.NewNetworkHandler(networkService, log)
	commandHandler := handler.NewCommandHandler(commandService, log)
	shareHandler := handler.NewShareHandler(resolver, log)

	// Set up router and middleware
	r := router.New(settingsHandler, networkHandler, commandHandler, shareHandler)
	engine := r.Setup(cfg)

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start HTTP server in goroutine
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("=================================")
	log.Info("Server listening on %s", addr)
	log.Info("Press Ctrl+C to stop")

	go func() {
		if err := engine.Run(addr); err != nil {
			log.Error("Server failed: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit
	log.Info("Shutting down server...")
	log.Info("Goodbye!")
}

// runShare resolves a panel page URL into a network-reachable one.
func runShare(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetString("url")
	current, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("parse url %q: %w", raw, err)
	}
	if current.Scheme == "" || current.Host == "" {
		return fmt.Errorf("url %q must be absolute (e.g. http://localhost:3000/app)", raw)
	}

	log := logger.Nop()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// The config resource lives on the page's origin; the API base follows
	// the configured server URL when one is present.
	origin := (&url.URL{Scheme: current.Scheme, Host: current.Host}).String()
	store, err := panelconfig.NewStore(origin, log)
	if err != nil {
		return fmt.Errorf("build config store: %w", err)
	}

	apiBase := endpoint.NewResolver(nil, store, log).ResolveAPIBase(ctx, current)
	api, err := client.NewClient(apiBase.String())
	if err != nil {
		return fmt.Errorf("build api client: %w", err)
	}

	resolved := endpoint.NewResolver(api, store, log).ResolveNetworkURL(ctx, current)
	fmt.Println(resolved.String())

	if endpoint.IsLoopbackHost(resolved.Hostname()) {
		fmt.Fprintln(os.Stderr, "warning: no network address found; this URL is only reachable from this machine")
	}
	return nil
}

// main is the application entry point.
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
