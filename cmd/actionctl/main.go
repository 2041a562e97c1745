package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/davrosz/actionhttp/internal/action"
	"github.com/davrosz/actionhttp/internal/action/tagged"
	"github.com/davrosz/actionhttp/internal/convert"
	"github.com/davrosz/actionhttp/internal/dispatch"
	"github.com/davrosz/actionhttp/internal/httpx"
	"github.com/davrosz/actionhttp/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "path to actionctl toml config")
	withDeny := flag.Bool("with-deny", false, "also dispatch the always-failing deny action")
	flag.Parse()

	logger := observability.InitLogger("actionctl")

	cfg := defaultRunConfig()
	if *configPath != "" {
		loaded, err := loadRunConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "actionctl: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	core, err := dispatch.NewCore(
		cfg.BaseURL,
		httpx.NewNetClient(cfg.RequestTimeout),
		convert.JSON{},
		tagged.NewProducer(),
		logCallback{logger: logger},
		dispatch.Config{ProgressThreshold: cfg.ProgressThreshold},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "actionctl: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for round := 1; round <= cfg.Rounds; round++ {
		handles := []*action.Handle{
			action.NewHandle(&HealthAction{}),
			action.NewHandle(&EchoGetAction{ID: fmt.Sprintf("round-%d", round), Tag: "demo", Token: cfg.Token}),
			action.NewHandle(&EchoPostAction{Payload: EchoPayload{Message: "hello", Seq: round}}),
		}
		if *withDeny {
			handles = append(handles, action.NewHandle(&DenyAction{}))
		}

		var wg sync.WaitGroup
		results := make([]dispatch.Result, len(handles))
		for i, h := range handles {
			wg.Add(1)
			go func(i int, h *action.Handle) {
				defer wg.Done()
				start := time.Now()
				results[i] = core.Dispatch(context.Background(), h)
				observability.RecordDispatch(h.ActionType().String(), string(results[i].Status), time.Since(start))
			}(i, h)
		}
		wg.Wait()

		for i, res := range results {
			if res.Status != dispatch.StatusSucceeded {
				failed++
				logger.Error().
					Str("action", handles[i].ActionType().String()).
					Str("status", string(res.Status)).
					Err(res.Err).
					Msg("dispatch failed")
				continue
			}
			logger.Info().
				Str("action", handles[i].ActionType().String()).
				Int("round", round).
				Msg("dispatch succeeded")
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// logCallback reports dispatch lifecycle events through the process logger.
type logCallback struct {
	logger zerolog.Logger
}

func (c logCallback) OnStart(h *action.Handle) {
	c.logger.Debug().Str("action", h.ActionType().String()).Msg("start")
}

func (c logCallback) OnProgress(h *action.Handle, percent int) {
	observability.RecordProgressEvent(h.ActionType().String())
	c.logger.Debug().Str("action", h.ActionType().String()).Int("percent", percent).Msg("progress")
}

func (c logCallback) OnSuccess(h *action.Handle) {
	c.logger.Debug().Str("action", h.ActionType().String()).Msg("success")
}

func (c logCallback) OnError(h *action.Handle, err error) {
	c.logger.Debug().Str("action", h.ActionType().String()).Err(err).Msg("error")
}
