package storage

import (
	"time"

	"testx/internal/config"
	"testx/internal/domain"
)

// Storage persists and loads generate run reports (e.g. for the errors viewer).
type Storage interface {
	Save(results []domain.FileResult, duration time.Duration, workers int) error
	Load() (*domain.Report, error)
	// SaveReport writes the full report (e.g. after diagnostics are marked resolved).
	SaveReport(report *domain.Report) error
}

// JSONStorage stores reports in a JSON file under the configured report path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's report path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
