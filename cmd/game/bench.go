package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-path-defense/internal/api"
	"go-path-defense/internal/bench"
	"go-path-defense/internal/repositories/reports"
	"go-path-defense/internal/tui"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	benchFast     bool
	benchTUI      bool
	benchDuration time.Duration
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the headless stress benchmark",
	Long: `Fill every buildable cell with towers, spawn enemies in bursts until the
time budget runs out and store a report. With --fast the simulation ticks
as fast as possible and the budget is measured in simulated time.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().BoolVar(&benchFast, "fast", false, "tick without waiting for wall time")
	benchCmd.Flags().BoolVar(&benchTUI, "tui", false, "show a live terminal dashboard")
	benchCmd.Flags().DurationVar(&benchDuration, "duration", 0, "override stress.duration")
}

func runBench(cmd *cobra.Command, _ []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = env.log.Sync() }()
	if benchDuration > 0 {
		env.settings.Stress.Duration = benchDuration
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	repo, closeRepo, err := newRepository(ctx, env.settings.Storage, env.log)
	if err != nil {
		return err
	}
	defer closeRepo()

	var (
		observers []bench.Observer
		runner    *bench.Runner
		dashboard *tui.Dashboard
		screen    tcell.Screen
	)

	if env.settings.Telemetry.Enabled {
		srv := api.NewServer(env.settings.Telemetry.BindAddress, env.settings.Telemetry.CORSOrigins, repo, env.log)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := srv.Run(ctx); err != nil {
				env.log.Error("telemetry server", zap.Error(err))
			}
		}()
		defer func() {
			cancel()
			<-done
		}()
		observers = append(observers, srv)
	}

	if benchTUI {
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
		// логи поверх панели только мешают
		env.log = zap.NewNop()
		dashboard = tui.New(screen, env.grid, func() { runner.TogglePause() })
		observers = append(observers, dashboard)
	}

	runner, err = bench.New(bench.Options{
		Settings:   env.settings,
		Library:    env.library,
		Grid:       env.grid,
		Logger:     env.log,
		Fast:       benchFast,
		Repository: repo,
		Observers:  observers,
	})
	if err != nil {
		if screen != nil {
			screen.Fini()
		}
		return err
	}

	uiDone := make(chan struct{})
	if dashboard != nil {
		go func() {
			defer close(uiDone)
			dashboard.Run(ctx, cancel)
		}()
	} else {
		close(uiDone)
	}

	report, runErr := runner.Run(ctx)
	cancel()
	<-uiDone
	if screen != nil {
		screen.Fini()
	}

	if report != nil {
		printReport(cmd.OutOrStdout(), report)
	}
	if errors.Is(runErr, bench.ErrCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), "interrupted before the budget ran out")
		return nil
	}
	return runErr
}

func printReport(w io.Writer, r *reports.Report) {
	fmt.Fprintf(w, "report %s (level %s)\n", r.ID, r.Level)
	fmt.Fprintf(w, "  finished:  %t\n", r.Finished)
	fmt.Fprintf(w, "  wall:      %s\n", r.Wall.Round(time.Millisecond))
	fmt.Fprintf(w, "  sim time:  %.2fs over %d ticks\n", r.SimTime, r.Ticks)
	fmt.Fprintf(w, "  spawned:   %d (peak active %d)\n", r.TotalSpawned, r.PeakActive)
	fmt.Fprintf(w, "  towers:    %d, kills %d, loops %d\n", r.Towers, r.Kills, r.Loops)
	fmt.Fprintf(w, "  tick:      avg %s, max %s\n", r.AvgTick, r.MaxTick)
}
