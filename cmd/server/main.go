// Package main provides the PetScope API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkotula/petscope/internal/api"
	"github.com/mkotula/petscope/internal/config"
	"github.com/mkotula/petscope/internal/oracle"
)

func main() {
	var (
		port       = flag.String("port", "", "Server port (overrides config)")
		configPath = flag.String("config", getEnv("PETSCOPE_CONFIG", "config.yaml"), "Path to config file")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != "" {
		cfg.Port = *port
	}

	if cfg.Oracle.APIKey == "" {
		log.Println("Warning: OPENROUTER_API_KEY is not set; diagnosis endpoints will report unavailable")
	}

	oracleClient := oracle.NewClient(oracle.Config{
		APIKey:            cfg.Oracle.APIKey,
		BaseURL:           cfg.Oracle.BaseURL,
		Model:             cfg.Oracle.Model,
		Temperature:       cfg.Oracle.Temperature,
		MaxAttempts:       cfg.Oracle.MaxAttempts,
		RequestsPerMinute: cfg.Oracle.RequestsPerMinute,
	})

	server := api.NewServer(api.Config{
		Oracle: oracleClient,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
