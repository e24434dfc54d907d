package system

import (
	"testing"
	"time"

	"go-path-defense/internal/component"
	"go-path-defense/internal/defs"
	"go-path-defense/internal/event"
	"go-path-defense/internal/types"
	"go-path-defense/pkg/tilemap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEnemies = map[string]defs.EnemyDefinition{
	"orc":  {ID: "orc", Health: 85, Speed: 50},
	"wolf": {ID: "wolf", Health: 125, Speed: 85},
}

func TestEnemyFactory_SpawnsAtPathStart(t *testing.T) {
	ctx := newTestContext(t, component.ModePlay)
	f := NewEnemyFactory(testEnemies)

	id, err := f.Spawn(ctx, "wolf")
	require.NoError(t, err)

	e, ok := ctx.ECS.Enemies.Get(id)
	require.True(t, ok)
	assert.Equal(t, ctx.Path.At(0), e.Pos)
	assert.Equal(t, 1, e.Follower.Index)
	assert.Equal(t, component.Health{Current: 125, Max: 125}, e.Health)
	assert.Equal(t, 85.0, e.Velocity.Speed)
	assert.Equal(t, 1, ctx.Counters.Spawned)
}

func TestEnemyFactory_Errors(t *testing.T) {
	ctx := newTestContext(t, component.ModePlay)
	f := NewEnemyFactory(testEnemies)

	_, err := f.Spawn(ctx, "dragon")
	assert.Error(t, err)

	ctx.Path = tilemap.Path{}
	_, err = f.Spawn(ctx, "orc")
	assert.Error(t, err)
	assert.Zero(t, ctx.ECS.Enemies.Len())
}

func TestWaveSystem_OneOrcEveryPeriod(t *testing.T) {
	ctx := newTestContext(t, component.ModePlay)
	set := defs.WaveSet{Waves: []defs.WaveDefinition{{EnemyID: "orc", Count: 1, Interval: 1500 * time.Millisecond}}}
	ws := NewWaveSystem(NewEnemyFactory(testEnemies), set)

	ws.Update(ctx, 0.5)
	ws.Update(ctx, 0.5)
	assert.Zero(t, ctx.Counters.Spawned)

	ws.Update(ctx, 0.5)
	assert.Equal(t, 1, ctx.Counters.Spawned)

	for i := 0; i < 6; i++ {
		ws.Update(ctx, 0.5)
	}
	assert.Equal(t, 3, ctx.Counters.Spawned)
}

func TestWaveSystem_KeepsCadenceAcrossWaves(t *testing.T) {
	set := defs.WaveSet{Waves: []defs.WaveDefinition{{EnemyID: "orc", Count: 1, Interval: 1500 * time.Millisecond}}}
	for _, dt := range []float64{1.0 / 60, 0.04, 0.07, 2} {
		ctx := newTestContext(t, component.ModePlay)
		ws := NewWaveSystem(NewEnemyFactory(testEnemies), set)
		reference := component.RepeatingTimer{Period: 1.5}
		want := 0

		ticks := int(150 / dt)
		for i := 0; i < ticks; i++ {
			ws.Update(ctx, dt)
			want += reference.Tick(dt)
		}
		assert.Equalf(t, want, ctx.Counters.Spawned, "dt=%v", dt)
		assert.InDeltaf(t, 100, ctx.Counters.Spawned, 1, "dt=%v", dt)
	}
}

func TestWaveSystem_AdvancesAndLoopsTail(t *testing.T) {
	ctx := newTestContext(t, component.ModePlay)
	var started []int
	ctx.Events.Subscribe(event.WaveStarted, event.ListenerFunc(func(e event.Event) {
		started = append(started, e.Data.(event.WaveData).Number)
	}))
	set := defs.WaveSet{
		LoopFrom: 1,
		Waves: []defs.WaveDefinition{
			{EnemyID: "orc", Count: 2, Interval: time.Second},
			{EnemyID: "wolf", Count: 1, Interval: time.Second},
		},
	}
	ws := NewWaveSystem(NewEnemyFactory(testEnemies), set)

	for i := 0; i < 5; i++ {
		ws.Update(ctx, 1)
	}

	assert.Equal(t, 4, ws.Wave())
	assert.Equal(t, []int{1, 2, 3, 4}, started)
	wolves := 0
	ctx.ECS.Enemies.Each(func(_ types.EntityID, e *component.Enemy) {
		if e.DefID == "wolf" {
			wolves++
		}
	})
	assert.Equal(t, 3, wolves)
}

func TestStressSpawner_BurstPerElapsedPeriod(t *testing.T) {
	ctx := newTestContext(t, component.ModeStress)
	s := NewStressSpawner(NewEnemyFactory(testEnemies), "orc", 0.25, 10)

	s.Update(ctx, 0.125)
	assert.Zero(t, ctx.Counters.Spawned)

	s.Update(ctx, 0.125)
	assert.Equal(t, 10, ctx.Counters.Spawned)

	// Долгий кадр: три периода за тик: три пачки.
	s.Update(ctx, 0.75)
	assert.Equal(t, 40, ctx.Counters.Spawned)
	assert.Equal(t, 40, ctx.ECS.Enemies.Len())

	s.Stop()
	s.Update(ctx, 10)
	assert.Equal(t, 40, ctx.Counters.Spawned)
	assert.True(t, s.Stopped())
}
