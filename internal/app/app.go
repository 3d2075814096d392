// Package app wires the process together: config, logging, the simulation
// engine, the websocket gateway, and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"agentstead/server/internal/config"
	"agentstead/server/internal/gateway"
	"agentstead/server/internal/protocol"
	"agentstead/server/internal/sim"
	"agentstead/server/logging"
	loggingsinks "agentstead/server/logging/sinks"
)

// Options lets the entrypoint override wiring without re-reading flags here.
type Options struct {
	ConfigPath string
	Logger     *log.Logger
}

func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	cfg = applyEnvOverrides(cfg, logger)

	router, err := buildLoggingRouter(cfg.Logging)
	if err != nil {
		return fmt.Errorf("construct logging router: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := router.Close(closeCtx); cerr != nil {
			logger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	engine := sim.NewEngine(sim.Config{
		TickRate:        cfg.Simulation.TickRate,
		CatchUpMaxSteps: cfg.Simulation.CatchUpMaxSteps,
		WorldWidth:      cfg.World.Width,
		WorldHeight:     cfg.World.Height,
		Seed:            cfg.World.Seed,
	}, router)

	validator, err := protocol.NewValidator(cfg.Schema.CommandPath)
	if err != nil {
		return err
	}

	hub := gateway.NewHub(engine, validator, gateway.HubConfig{
		FrameInterval:     time.Duration(cfg.Server.FrameIntervalMS) * time.Millisecond,
		BroadcastInterval: time.Duration(cfg.Server.BroadcastIntervalMS) * time.Millisecond,
		SendBuffer:        cfg.Server.SendBuffer,
		Logger:            logger,
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go hub.Run(runCtx)

	mux := http.NewServeMux()
	mux.Handle("/ws", gateway.NewHandler(hub))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"tick":%d,"subscribers":%d}`+"\n", engine.Tick(), hub.SubscriberCount())
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Printf("server listening on %s", cfg.Server.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	}
}

func buildLoggingRouter(cfg config.Logging) (*logging.Router, error) {
	routerCfg := logging.DefaultConfig()
	routerCfg.EnabledSinks = cfg.EnabledSinks
	routerCfg.BufferSize = cfg.BufferSize
	routerCfg.MinimumSeverity = logging.ParseSeverity(cfg.MinimumSeverity)
	routerCfg.JSONL = logging.JSONLConfig{Path: cfg.JSONLPath, Compress: cfg.JSONLCompress}

	var sinks []logging.NamedSink
	if routerCfg.HasSink("console") {
		sinks = append(sinks, logging.NamedSink{Name: "console", Sink: loggingsinks.NewConsoleSink(os.Stdout)})
	}
	if routerCfg.HasSink("jsonl") {
		sink, err := loggingsinks.NewJSONLSink(routerCfg.JSONL)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, logging.NamedSink{Name: "jsonl", Sink: sink})
	}
	return logging.NewRouter(routerCfg, logging.SystemClock{}, sinks), nil
}
