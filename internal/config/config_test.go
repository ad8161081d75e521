package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig_GetSourcePath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default path",
			config: &Config{
				ProjectPath: ".",
				SourcePath:  ".",
				Flags:       Flags{},
			},
			expected: ".",
		},
		{
			name: "with source path flag",
			config: &Config{
				ProjectPath: "/project",
				SourcePath:  ".",
				Flags: Flags{
					SourcePath: "internal",
				},
			},
			expected: "/project/internal",
		},
		{
			name: "absolute source path",
			config: &Config{
				ProjectPath: "/project",
				SourcePath:  ".",
				Flags: Flags{
					SourcePath: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
		{
			name: "configured source path without flag",
			config: &Config{
				ProjectPath: "/project",
				SourcePath:  "pkg",
				Flags:       Flags{},
			},
			expected: "/project/pkg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetSourcePath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetReportPath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = t.TempDir()

	expected := filepath.Join(cfg.ProjectPath, DefaultReportDir, DefaultReportFile)
	if got := cfg.GetReportPath(); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
	if !filepath.IsAbs(cfg.GetReportPath()) {
		t.Error("expected an absolute report path")
	}
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}

	if cfg.Processors != DefaultProcessors {
		t.Errorf("expected Processors %d, got %d", DefaultProcessors, cfg.Processors)
	}

	if len(cfg.PathsToIgnore) != len(DefaultPathsToIgnore) {
		t.Errorf("expected %d paths to ignore, got %d", len(DefaultPathsToIgnore), len(cfg.PathsToIgnore))
	}
}

func TestLoad_Precedence(t *testing.T) {
	project := t.TempDir()
	yaml := []byte("source_path: pkg\nprocessors: 2\nreport_dir: build\n")
	if err := os.WriteFile(filepath.Join(project, ConfigFileName), yaml, 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv(EnvProjectPath, project)
	t.Setenv(EnvProcessors, "8")

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := Load(Flags{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.SourcePath != "pkg" {
			t.Errorf("expected source path pkg, got %s", cfg.SourcePath)
		}
		if cfg.ReportDir != "build" {
			t.Errorf("expected report dir build, got %s", cfg.ReportDir)
		}
	})

	t.Run("environment overrides file", func(t *testing.T) {
		cfg, err := Load(Flags{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Processors != 8 {
			t.Errorf("expected 8 processors, got %d", cfg.Processors)
		}
	})

	t.Run("flags override environment", func(t *testing.T) {
		cfg, err := Load(Flags{Processors: 3})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Processors != 3 {
			t.Errorf("expected 3 processors, got %d", cfg.Processors)
		}
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Run("invalid processors env", func(t *testing.T) {
		t.Setenv(EnvProjectPath, t.TempDir())
		t.Setenv(EnvProcessors, "lots")
		if _, err := Load(Flags{}); err == nil {
			t.Error("expected error for non-numeric processors")
		}
	})

	t.Run("unknown config file key", func(t *testing.T) {
		project := t.TempDir()
		bad := []byte("source_path: pkg\nworkers: 2\n")
		if err := os.WriteFile(filepath.Join(project, ConfigFileName), bad, 0644); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		t.Setenv(EnvProjectPath, project)
		if _, err := Load(Flags{}); err == nil {
			t.Error("expected error for unknown config key")
		}
	})
}
