// internal/system/wave.go
package system

import (
	"fmt"

	"go-path-defense/internal/component"
	"go-path-defense/internal/defs"
	"go-path-defense/internal/event"
	"go-path-defense/internal/types"

	"go.uber.org/zap"
)

// EnemyFactory создаёт врагов по определениям на старте маршрута.
type EnemyFactory struct {
	enemies map[string]defs.EnemyDefinition
}

func NewEnemyFactory(enemies map[string]defs.EnemyDefinition) *EnemyFactory {
	return &EnemyFactory{enemies: enemies}
}

// Spawn ставит врага на первую точку маршрута с курсором на второй.
func (f *EnemyFactory) Spawn(ctx *Context, enemyID string) (types.EntityID, error) {
	if ctx.Path.Empty() {
		return 0, fmt.Errorf("spawn %s: level has no path", enemyID)
	}
	def, ok := f.enemies[enemyID]
	if !ok {
		return 0, fmt.Errorf("spawn: enemy definition not found for ID %q", enemyID)
	}
	e := &component.Enemy{
		DefID:    def.ID,
		Pos:      ctx.Path.At(0),
		Velocity: component.Velocity{Speed: def.Speed},
		Health:   component.Health{Current: def.Health, Max: def.Health},
		Follower: component.PathFollower{Index: 1},
		Visual: component.Renderable{
			Color:  def.Visuals.Color.Value(),
			Radius: def.Visuals.Radius,
		},
	}
	id := ctx.ECS.Enemies.Insert(e)
	ctx.Counters.Spawned++
	ctx.Events.Dispatch(event.Event{
		Type: event.EnemySpawned,
		Data: event.EnemyData{ID: id, DefID: def.ID, Pos: e.Pos},
	})
	return id, nil
}

// WaveSystem — спавн в обычной игре: волны идут одна за другой,
// хвост набора повторяется бесконечно.
type WaveSystem struct {
	factory   *EnemyFactory
	set       defs.WaveSet
	number    int
	remaining int
	timer     component.RepeatingTimer
	current   defs.WaveDefinition
}

func NewWaveSystem(factory *EnemyFactory, set defs.WaveSet) *WaveSystem {
	return &WaveSystem{factory: factory, set: set, number: -1}
}

// Wave возвращает номер текущей волны (с единицы).
func (s *WaveSystem) Wave() int {
	return s.number + 1
}

func (s *WaveSystem) Update(ctx *Context, dt float64) {
	if ctx.Path.Empty() || len(s.set.Waves) == 0 {
		return
	}
	if s.remaining == 0 {
		s.startWave(ctx, s.number+1)
	}
	n := s.timer.Tick(dt)
	for i := 0; i < n; i++ {
		// долгий кадр: лишние периоды переходят в следующую волну
		if s.remaining == 0 {
			s.startWave(ctx, s.number+1)
		}
		if _, err := s.factory.Spawn(ctx, s.current.EnemyID); err != nil {
			ctx.Log.Error("wave spawn failed", zap.Error(err))
			s.remaining = 0
			return
		}
		s.remaining--
	}
}

func (s *WaveSystem) startWave(ctx *Context, number int) {
	s.number = number
	s.current = s.set.Wave(number)
	s.remaining = s.current.Count
	// накопленное время не сбрасывается: каденс как у одного повторяющегося таймера
	s.timer.Period = s.current.Interval.Seconds()
	ctx.Log.Debug("wave started",
		zap.Int("wave", s.Wave()),
		zap.String("enemy", s.current.EnemyID),
		zap.Int("count", s.current.Count))
	ctx.Events.Dispatch(event.Event{
		Type: event.WaveStarted,
		Data: event.WaveData{Number: s.Wave(), EnemyID: s.current.EnemyID, Count: s.current.Count},
	})
}

// StressSpawner — спавн стресс-теста: таймер с коротким периодом,
// за каждый прошедший период выпускается пачка врагов. При просевшем
// FPS за тик проходит несколько периодов, и пачки складываются.
type StressSpawner struct {
	factory   *EnemyFactory
	enemyID   string
	burstSize int
	timer     component.RepeatingTimer
	stopped   bool
}

func NewStressSpawner(factory *EnemyFactory, enemyID string, period float64, burstSize int) *StressSpawner {
	return &StressSpawner{
		factory:   factory,
		enemyID:   enemyID,
		burstSize: burstSize,
		timer:     component.RepeatingTimer{Period: period},
	}
}

// Stop прекращает спавн; существующие враги продолжают жить.
func (s *StressSpawner) Stop() {
	s.stopped = true
}

func (s *StressSpawner) Stopped() bool {
	return s.stopped
}

func (s *StressSpawner) Update(ctx *Context, dt float64) {
	if s.stopped || ctx.Path.Empty() {
		return
	}
	periods := s.timer.Tick(dt)
	for i := 0; i < periods*s.burstSize; i++ {
		if _, err := s.factory.Spawn(ctx, s.enemyID); err != nil {
			ctx.Log.Error("stress spawn failed", zap.Error(err))
			s.stopped = true
			return
		}
	}
}
