package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/stacker/internal/api"
	"github.com/1broseidon/stacker/internal/config"
	"github.com/1broseidon/stacker/internal/daemon"
	"github.com/1broseidon/stacker/internal/hotkeys"
	"github.com/1broseidon/stacker/internal/ipc"
	"github.com/1broseidon/stacker/internal/logger"
	"github.com/1broseidon/stacker/internal/placement"
	"github.com/1broseidon/stacker/internal/wm"
	"github.com/1broseidon/stacker/internal/x11"
)

var verifyInvariants bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the window manager (foreground)",
	Long: `Take over window management on the X display and run until interrupted.

SIGHUP reloads the log level and the work area padding from the config file.`,
	Example: `  # Manage the current display
  stacker run

  # Manage a nested Xephyr server with debug logging and the HTTP API
  stacker run --display :1 --log-level debug --http 127.0.0.1:7878`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

func init() {
	runCmd.Flags().BoolVar(&verifyInvariants, "verify", false, "check core invariants after every event (debugging)")
	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	res, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := res.Config
	cfg.ApplyLogging()
	log := logger.WithComponent("daemon")
	if len(res.Files) > 0 {
		log.Info().Strs("files", res.Files).Msg("configuration loaded")
	}

	conn, err := x11.NewConnection(cfg.Display, x11.Options{
		BorderWidth:    cfg.BorderWidth,
		ActiveBorder:   cfg.ActiveBorder(),
		InactiveBorder: cfg.InactiveBorder(),
		Logger:         logger.WithComponent("x11"),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to display: %w", err)
	}
	defer conn.Disconnect()

	if err := conn.TakeOver(); err != nil {
		return err
	}
	if err := conn.SetupEWMH(); err != nil {
		log.Warn().Err(err).Msg("failed to set up EWMH hints")
	}

	var padding atomic.Pointer[placement.Margins]
	padding.Store(&cfg.WorkAreaPadding)
	area, err := conn.WorkArea(cfg.WorkAreaPadding)
	if err != nil {
		return fmt.Errorf("failed to compute work area: %w", err)
	}
	log.Info().Interface("work_area", area).Msg("work area")

	dispatcher := wm.NewDispatcher(conn, wm.Options{
		WorkArea: area,
		Place:    placement.Func(cfg.Placement),
		Logger:   logger.WithComponent("wm"),
	})
	loop := daemon.NewLoop(dispatcher, daemon.LoopConfig{
		Verify: verifyInvariants,
		Logger: logger.WithComponent("loop"),
	})
	loop.States().OnState(conn.Publish)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loopDone := make(chan error, 1)
	go func() {
		loopDone <- loop.Run(ctx)
		conn.Quit()
	}()

	refreshWorkArea := func() {
		area, err := conn.WorkArea(*padding.Load())
		if err != nil {
			log.Warn().Err(err).Msg("failed to recompute work area")
			return
		}
		if err := loop.Do(ctx, func(d *wm.Dispatcher) { d.SetWorkArea(area) }); err != nil {
			log.Debug().Err(err).Msg("work area update dropped")
			return
		}
		log.Info().Interface("work_area", area).Msg("work area changed")
	}

	focusClick := cfg.ExpandMod(cfg.Mousebindings.FocusClick)
	conn.Listen(loop, focusClick, refreshWorkArea)
	log.Info().Int("windows", conn.Adopt(loop, focusClick)).Msg("adopted existing windows")

	registerBindings(conn, loop, cfg)

	ipcServer, err := ipc.NewServer(loop, logger.WithComponent("ipc"))
	if err != nil {
		return fmt.Errorf("failed to create IPC server: %w", err)
	}
	if err := ipcServer.Start(); err != nil {
		return fmt.Errorf("failed to start IPC server: %w", err)
	}
	defer ipcServer.Stop()

	if cfg.HTTPListen != "" {
		apiServer := api.NewServer(loop, loop.States(), logger.WithComponent("api"))
		go func() {
			if err := apiServer.Run(ctx, cfg.HTTPListen); err != nil {
				log.Error().Err(err).Str("addr", cfg.HTTPListen).Msg("HTTP API stopped")
			}
		}()
	}

	if cfg.ReconcileInterval > 0 {
		reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
			Interval: cfg.ReconcileInterval,
			Logger:   logger.WithComponent("reconciler"),
		}, loop, conn.ListWindows)
		go reconciler.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigCh:
				if sig != syscall.SIGHUP {
					log.Info().Str("signal", sig.String()).Msg("shutting down")
					cancel()
					return
				}
				newRes, err := loadConfig()
				if err != nil {
					log.Error().Err(err).Msg("config reload failed")
					continue
				}
				newRes.Config.ApplyLogging()
				padding.Store(&newRes.Config.WorkAreaPadding)
				refreshWorkArea()
				log.Info().Msg("config reloaded")
			}
		}
	}()

	log.Info().Msg("entering event loop")
	conn.EventLoop()
	cancel()

	if err := <-loopDone; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// registerBindings grabs the configured keys and mouse buttons. A binding
// that cannot be grabbed is logged and skipped.
func registerBindings(conn *x11.Connection, loop *daemon.Loop, cfg *config.Config) {
	log := logger.WithComponent("hotkeys")
	keys := hotkeys.NewHandler(conn.XUtil, loop, log)

	for _, b := range cfg.Bindings() {
		if err := keys.Register(b.Keys, b.Command); err != nil {
			log.Warn().Err(err).Str("keys", b.Keys).Str("command", b.Command).Msg("failed to register keybinding")
		}
	}

	for mode, seq := range map[wm.GrabMode]string{
		wm.GrabMove:   cfg.ExpandMod(cfg.Mousebindings.Move),
		wm.GrabResize: cfg.ExpandMod(cfg.Mousebindings.Resize),
	} {
		if err := keys.RegisterDrag(seq, mode); err != nil {
			log.Warn().Err(err).Str("buttons", seq).Stringer("mode", mode).Msg("failed to register mouse binding")
		}
	}
}
