/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs the transcript scoring service: an HTTP server that
// grades transcripts against rubrics with an LLM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"

	"chainguard.dev/transcriptscore/agents/scorer"
	"chainguard.dev/transcriptscore/api"
	"chainguard.dev/transcriptscore/orchestrator"
	"chainguard.dev/transcriptscore/rubric"
)

type config struct {
	Port int `env:"PORT,default=8080"`

	// Model selects the provider by prefix: gemini-*, claude-*, or gpt-*.
	Model string `env:"MODEL,default=gemini-2.5-flash"`

	// APIKey authenticates against the selected provider.
	APIKey string `env:"LLM_API_KEY,required"`

	// ScoreTimeout bounds one scoring run end to end.
	ScoreTimeout time.Duration `env:"SCORE_TIMEOUT,default=2m"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	defaultRubric, err := rubric.Default()
	if err != nil {
		clog.FatalContextf(ctx, "loading default rubric: %v", err)
	}

	s, err := scorer.New(ctx, scorer.Config{
		Model:  cfg.Model,
		APIKey: cfg.APIKey,
	})
	if err != nil {
		clog.FatalContextf(ctx, "creating scorer: %v", err)
	}

	o, err := orchestrator.New(defaultRubric, s)
	if err != nil {
		clog.FatalContextf(ctx, "creating orchestrator: %v", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.NewHandler(o, cfg.ScoreTimeout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			clog.ErrorContextf(shutdownCtx, "shutting down server: %v", err)
		}
	}()

	clog.InfoContextf(ctx, "Listening on :%d with model %s", cfg.Port, cfg.Model)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		clog.FatalContextf(ctx, "serving: %v", err)
	}
}
