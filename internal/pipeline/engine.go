package pipeline

import (
	"time"

	"testx/internal/domain"
)

// Engine runs the rewrite over a set of files and returns per-file results
type Engine interface {
	Process(files []string) ([]domain.FileResult, time.Duration, error)
}
