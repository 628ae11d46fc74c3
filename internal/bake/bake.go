// Package bake renders terrain to files: OBJ meshes and rasterized
// heightmap, albedo and normal maps. Both the headless CLI and the
// workbench export path go through it.
package bake

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// SavePNG writes an image as PNG, creating parent directories as needed.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// forEachRow runs fn for every row index on a bounded worker pool.
// workers <= 0 uses one worker per CPU.
func forEachRow(rows, workers int, fn func(y int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > rows {
		workers = rows
	}

	next := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range next {
				fn(y)
			}
		}()
	}

	for y := 0; y < rows; y++ {
		next <- y
	}
	close(next)
	wg.Wait()
}
