package pipeline

import (
	"context"
	"sync"
	"time"

	"testx/internal/config"
	"testx/internal/domain"
	"testx/internal/ui"
)

// WorkerPool manages a pool of workers for parallel file processing
type WorkerPool struct {
	config    *config.Config
	processor *Processor
	progress  *ui.ProgressBar
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, processor *Processor) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		processor: processor,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Process rewrites files in parallel using the worker pool (no fail-fast).
func (wp *WorkerPool) Process(files []string) ([]domain.FileResult, time.Duration, error) {
	return wp.ProcessWithOptions(files, false)
}

// ProcessWithOptions rewrites files with optional fail-fast (stop on first
// failed file).
func (wp *WorkerPool) ProcessWithOptions(files []string, failFast bool) ([]domain.FileResult, time.Duration, error) {
	if len(files) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.processAll(files)
	}
	return wp.processFailFast(files)
}

// processAll rewrites every file regardless of failures.
func (wp *WorkerPool) processAll(files []string) ([]domain.FileResult, time.Duration, error) {
	fileQueue := make(chan string, len(files))
	results := make(chan domain.FileResult, len(files))
	for _, file := range files {
		fileQueue <- file
	}
	close(fileQueue)

	var mu sync.Mutex
	var completed, okFiles, failedFiles int
	startTime := time.Now()
	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range fileQueue {
				result := wp.processor.Process(path)
				results <- result
				mu.Lock()
				completed++
				if result.Failed() {
					failedFiles++
				} else {
					okFiles++
				}
				if wp.progress != nil {
					wp.progress.Update(completed, okFiles, failedFiles)
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.FileResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}

// processFailFast rewrites files and stops after the first failed one.
func (wp *WorkerPool) processFailFast(files []string) ([]domain.FileResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fileQueue := make(chan string, 1)
	results := make(chan domain.FileResult, len(files))

	go func() {
		defer close(fileQueue)
		for _, file := range files {
			select {
			case <-ctx.Done():
				return
			case fileQueue <- file:
			}
		}
	}()

	var mu sync.Mutex
	var completed, okFiles, failedFiles int
	var seenFailure bool
	startTime := time.Now()
	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}

	var wg sync.WaitGroup
	for i := 1; i <= workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range fileQueue {
				result := wp.processor.Process(path)
				mu.Lock()
				done := seenFailure
				mu.Unlock()
				if done {
					continue
				}
				results <- result
				mu.Lock()
				completed++
				if result.Failed() {
					failedFiles++
				} else {
					okFiles++
				}
				if wp.progress != nil {
					wp.progress.Update(completed, okFiles, failedFiles)
				}
				if result.Failed() {
					seenFailure = true
					cancel()
				}
				mu.Unlock()
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	var allResults []domain.FileResult
	for result := range results {
		allResults = append(allResults, result)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}
	return allResults, time.Since(startTime), nil
}
