package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go-path-defense/internal/config"
	"go-path-defense/internal/system"
	"go-path-defense/pkg/render"
	"go-path-defense/pkg/tilemap"

	"github.com/spf13/cobra"
)

var (
	renderOutput string
	renderPath   bool
	renderGrid   bool
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Inspect the level map",
}

var levelShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print tile classes and the extracted path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		layout := tilemap.Layout{TileSize: config.TileSize, OriginX: config.MapOriginX, OriginY: config.MapOriginY}
		printLevel(cmd.OutOrStdout(), env.library.Level.Name, env.grid, tilemap.ExtractPath(env.grid, layout))
		return nil
	},
}

var levelRenderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the level to a PNG file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}
		f, err := os.Create(renderOutput)
		if err != nil {
			return err
		}
		defer f.Close()

		layout := tilemap.Layout{TileSize: config.TileSize}
		opts := render.ExportOptions{
			TileSize: config.TileSize,
			Colors:   system.MapColors(),
			ShowPath: renderPath,
			ShowGrid: renderGrid,
		}
		if err := render.EncodePNG(f, env.grid, tilemap.ExtractPath(env.grid, layout), opts); err != nil {
			return fmt.Errorf("render %s: %w", renderOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", renderOutput)
		return f.Close()
	},
}

func init() {
	levelRenderCmd.Flags().StringVarP(&renderOutput, "output", "o", "level.png", "output PNG file")
	levelRenderCmd.Flags().BoolVar(&renderPath, "path", true, "draw the enemy path")
	levelRenderCmd.Flags().BoolVar(&renderGrid, "grid", false, "draw cell borders")
	levelCmd.AddCommand(levelShowCmd, levelRenderCmd)
}

// printLevel: '.' трава, '~' декор, '=' дорога, S/E концы, '*' точки маршрута.
func printLevel(w io.Writer, name string, grid *tilemap.Grid, path tilemap.Path) {
	onPath := make(map[tilemap.Cell]bool, len(path.Cells))
	for _, c := range path.Cells {
		onPath[c] = true
	}

	var b strings.Builder
	grid.Each(func(c tilemap.Cell, _ tilemap.TileID) {
		switch kind := grid.KindAt(c); {
		case kind == tilemap.KindStart:
			b.WriteByte('S')
		case kind == tilemap.KindEnd:
			b.WriteByte('E')
		case onPath[c]:
			b.WriteByte('*')
		case kind == tilemap.KindRoad:
			b.WriteByte('=')
		case kind == tilemap.KindOpen:
			b.WriteByte('.')
		default:
			b.WriteByte('~')
		}
		if c.X == tilemap.Size-1 {
			b.WriteByte('\n')
		}
	})

	fmt.Fprintf(w, "level %q\n%s", name, b.String())
	fmt.Fprintf(w, "path: %d points, reaches end: %t\n", path.Len(), path.ReachesEnd(grid))
}
