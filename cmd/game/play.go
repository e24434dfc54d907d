package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-path-defense/internal/api"
	"go-path-defense/internal/config"
	"go-path-defense/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	RunE:  runPlay,
}

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
	interrupted    <-chan struct{}
}

func (a *AppGame) Update() error {
	select {
	case <-a.interrupted:
		a.stateMachine.RequestQuit()
	default:
	}
	if a.stateMachine.ShouldQuit() {
		return ebiten.Termination
	}
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func runPlay(cmd *cobra.Command, _ []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = env.log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sm := state.NewStateMachine()
	stateEnv := state.Env{
		Settings: env.settings,
		Library:  env.library,
		Grid:     env.grid,
		Logger:   env.log,
	}

	if env.settings.Telemetry.Enabled {
		repo, closeRepo, err := newRepository(ctx, env.settings.Storage, env.log)
		if err != nil {
			return err
		}
		defer closeRepo()

		srv := api.NewServer(env.settings.Telemetry.BindAddress, env.settings.Telemetry.CORSOrigins, repo, env.log)
		srvCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := srv.Run(srvCtx); err != nil {
				env.log.Error("telemetry server", zap.Error(err))
			}
		}()
		defer func() {
			cancel()
			<-done
		}()
		stateEnv.Publish = srv.Observe
	}

	sm.SetState(state.NewMenuState(sm, stateEnv))
	defer sm.Shutdown()

	scale := env.settings.Window.Scale
	ebiten.SetWindowSize(config.ScreenWidth*scale, config.ScreenHeight*scale)
	ebiten.SetWindowTitle(env.settings.Window.Title)
	ebiten.SetTPS(env.settings.Window.TPS)

	started := time.Now()
	game := &AppGame{stateMachine: sm, lastUpdateTime: started, interrupted: ctx.Done()}
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}
	env.log.Info("game closed", zap.Duration("uptime", time.Since(started)))
	return nil
}
