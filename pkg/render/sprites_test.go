package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"go-path-defense/pkg/tilemap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpriteFor_CompoundTilesRotate(t *testing.T) {
	for id := tilemap.TileID(8); id <= 19; id++ {
		s := SpriteFor(id)
		require.NotNil(t, s.Overlay, "id %d", id)
		assert.Equal(t, AtlasWater, s.Base.Atlas)
		assert.Equal(t, int(id-8)%4, s.Overlay.Rotation)
	}
	assert.Equal(t, AtlasShoreEdge, SpriteFor(8).Overlay.Atlas)
	assert.Equal(t, AtlasShoreInner, SpriteFor(13).Overlay.Atlas)
	assert.Equal(t, AtlasShoreOuter, SpriteFor(19).Overlay.Atlas)
}

func TestSpriteFor_StartEndAndSimple(t *testing.T) {
	assert.Equal(t, AtlasStartFlag, SpriteFor(tilemap.TileStart).Overlay.Atlas)
	assert.Equal(t, AtlasEndFlag, SpriteFor(tilemap.TileEnd).Overlay.Atlas)
	assert.Equal(t, Sprite{Base: Layer{AtlasRoad, 1}}, SpriteFor(3))
	assert.Equal(t, Sprite{Base: Layer{AtlasGrass, 0}}, SpriteFor(0))
}

func TestRect_RotateClockwise(t *testing.T) {
	top := Rect{0, 0, 1, 0.25, RoleShore}
	assert.Equal(t, Rect{0.75, 0, 0.25, 1, RoleShore}, top.rotate(1))
	assert.Equal(t, Rect{0, 0.75, 1, 0.25, RoleShore}, top.rotate(2))
	assert.Equal(t, Rect{0, 0, 0.25, 1, RoleShore}, top.rotate(3))
	assert.Equal(t, top, top.rotate(4))
}

func TestEncodePNG(t *testing.T) {
	rows := make([][]int, tilemap.Size)
	for y := range rows {
		rows[y] = make([]int, tilemap.Size)
	}
	rows[0][0] = int(tilemap.TileStart)
	rows[0][1] = int(tilemap.TileEnd)
	g, err := tilemap.NewGrid(rows)
	require.NoError(t, err)
	p := tilemap.ExtractPath(g, tilemap.Layout{TileSize: 8})

	colors := MapColors{GrassColor: color.RGBA{0, 200, 0, 255}, BackgroundFill: color.RGBA{A: 255}}
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, g, p, ExportOptions{TileSize: 8, Colors: colors, ShowPath: true}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	r, gr, b, _ := img.At(100, 100).RGBA()
	assert.Equal(t, []uint32{0, 200, 0}, []uint32{r >> 8, gr >> 8, b >> 8})

	assert.Error(t, EncodePNG(&buf, g, p, ExportOptions{}))
}
