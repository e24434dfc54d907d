package system

import (
	"testing"

	"go-path-defense/internal/component"
	"go-path-defense/pkg/tilemap"

	"github.com/stretchr/testify/assert"
)

func TestEnemyFacing_MirrorsWhenHeadingLeft(t *testing.T) {
	path := tilemap.Path{Points: []tilemap.Point{{X: 100, Y: 0}, {X: 68, Y: 0}, {X: 68, Y: 32}}}

	e := &component.Enemy{Pos: tilemap.Point{X: 90, Y: 0}, Follower: component.PathFollower{Index: 1}}
	assert.Equal(t, FacingLeft, EnemyFacing(e, path))

	e = &component.Enemy{Pos: tilemap.Point{X: 68, Y: 0}, Follower: component.PathFollower{Index: 2}}
	assert.Equal(t, FacingRight, EnemyFacing(e, path), "vertical movement keeps the default facing")

	e.Follower.Index = 3
	assert.Equal(t, FacingRight, EnemyFacing(e, path))
}

func TestEnemyHealthBar(t *testing.T) {
	assert.Equal(t, HealthBar{}, EnemyHealthBar(component.Health{Current: 85, Max: 85}, true))
	assert.Equal(t, HealthBar{}, EnemyHealthBar(component.Health{Current: 10, Max: 85}, false))

	bar := EnemyHealthBar(component.Health{Current: 40, Max: 80}, true)
	assert.True(t, bar.Visible)
	assert.Equal(t, 0.5, bar.Fraction)

	bar = EnemyHealthBar(component.Health{Current: -5, Max: 80}, true)
	assert.Equal(t, 0.0, bar.Fraction)
}

func TestCooldown(t *testing.T) {
	c := component.NewReadyCooldown(1)
	assert.True(t, c.Ready())
	c.Tick(5)
	assert.Equal(t, 1.0, c.Elapsed, "ready cooldown does not bank time")

	c.Reset()
	c.Tick(0.5)
	assert.False(t, c.Ready())
	c.Tick(0.5)
	assert.True(t, c.Ready())
}
