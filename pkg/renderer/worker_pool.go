package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile    *Tile
	Frame   int // Frame index, feeds seed derivation
	Samples int // Samples per pixel for this frame
	TaskID  int // Index into the result slice
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// TileFunc renders one task
type TileFunc func(task TileTask) RenderStats

// WorkerPool runs tile tasks on a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every task and returns the results indexed by TaskID.
// Tasks not yet started when ctx is cancelled are skipped and ctx's error is
// returned. Each task must only touch pixels inside its own tile.
func (wp *WorkerPool) Run(ctx context.Context, tasks []TileTask, render TileFunc) ([]TileResult, error) {
	results := make([]TileResult, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for _, task := range tasks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[task.TaskID] = TileResult{
				TaskID: task.TaskID,
				Stats:  render(task),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
