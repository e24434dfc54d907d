package system

import (
	"testing"

	"go-path-defense/internal/component"
	"go-path-defense/internal/types"
	"go-path-defense/pkg/tilemap"

	"github.com/stretchr/testify/require"
)

var testLayout = tilemap.Layout{TileSize: 32}

// straightRoad: Start(0,0), дорога (1..3,0), End(4,0).
func straightRoad(t *testing.T) tilemap.Path {
	t.Helper()
	rows := make([][]int, tilemap.Size)
	for y := range rows {
		rows[y] = make([]int, tilemap.Size)
		for x := range rows[y] {
			rows[y][x] = int(tilemap.TileWater)
		}
	}
	rows[0][0] = int(tilemap.TileStart)
	rows[0][1], rows[0][2], rows[0][3] = 2, 2, 2
	rows[0][4] = int(tilemap.TileEnd)
	g, err := tilemap.NewGrid(rows)
	require.NoError(t, err)
	p := tilemap.ExtractPath(g, testLayout)
	require.Equal(t, 5, p.Len())
	return p
}

func newTestContext(t *testing.T, mode component.Mode) *Context {
	t.Helper()
	ctx := NewContext(straightRoad(t), &component.PlayerStats{Currency: 300, Lives: 3}, mode, nil)
	ctx.KillReward = 5
	return ctx
}

func addEnemy(ctx *Context, pos tilemap.Point, hp int, speed float64) types.EntityID {
	return ctx.ECS.Enemies.Insert(&component.Enemy{
		DefID:    "orc",
		Pos:      pos,
		Velocity: component.Velocity{Speed: speed},
		Health:   component.Health{Current: hp, Max: hp},
		Follower: component.PathFollower{Index: 1},
	})
}

func addTower(ctx *Context, pos tilemap.Point, rng float64, damage int, cooldown float64) types.EntityID {
	return ctx.ECS.Towers.Insert(&component.Tower{
		DefID:    "canon",
		Pos:      pos,
		Range:    rng,
		Damage:   damage,
		Cooldown: component.NewReadyCooldown(cooldown),
	})
}

// tick прогоняет проходы в том же порядке, что и сессия (без спавна).
func tick(ctx *Context, dt float64) {
	NewMovementSystem().Update(ctx, dt)
	NewCombatSystem().Update(ctx, dt)
	NewProjectileSystem().Update(ctx, dt)
	NewLifecycleSystem().Update(ctx, dt)
}
