package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"sigs.k8s.io/yaml"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	SourcePath  string

	// Report settings
	ReportFile string
	ReportDir  string

	// Processing settings
	Processors int

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Processors int
	SourcePath string
	NameFilter string
	Write      bool
	FailFast   bool
	Cases      bool
}

// fileConfig is the shape of the optional testx.yaml project file.
type fileConfig struct {
	ProjectPath string   `json:"project_path,omitempty"`
	SourcePath  string   `json:"source_path,omitempty"`
	ReportDir   string   `json:"report_dir,omitempty"`
	ReportFile  string   `json:"report_file,omitempty"`
	Processors  int      `json:"processors,omitempty"`
	Ignore      []string `json:"ignore,omitempty"`
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath: DefaultProjectPath,
		SourcePath:  DefaultSourcePath,
		ReportFile:  DefaultReportFile,
		ReportDir:   DefaultReportDir,
		Processors:  DefaultProcessors,
		Flags:       Flags{Processors: DefaultProcessors},
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load builds the effective configuration: defaults, then the project file,
// then environment variables, then flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()

	// The project path decides where the config file lives, so it is read
	// from the environment before anything else.
	if v := os.Getenv(EnvProjectPath); v != "" {
		cfg.ProjectPath = v
	}
	if err := cfg.loadFile(filepath.Join(cfg.ProjectPath, ConfigFileName)); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyFlags(flags)
	return cfg, nil
}

// loadFile merges the optional testx.yaml into the config. A missing file is
// not an error.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.UnmarshalStrict(data, &fc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if fc.ProjectPath != "" {
		c.ProjectPath = fc.ProjectPath
	}
	if fc.SourcePath != "" {
		c.SourcePath = fc.SourcePath
	}
	if fc.ReportDir != "" {
		c.ReportDir = fc.ReportDir
	}
	if fc.ReportFile != "" {
		c.ReportFile = fc.ReportFile
	}
	if fc.Processors > 0 {
		c.Processors = fc.Processors
	}
	if len(fc.Ignore) > 0 {
		c.PathsToIgnore = fc.Ignore
	}
	return nil
}

// applyEnv merges TESTX_* environment variables into the config.
func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvProjectPath); v != "" {
		c.ProjectPath = v
	}
	if v := os.Getenv(EnvSourcePath); v != "" {
		c.SourcePath = v
	}
	if v := os.Getenv(EnvReportDir); v != "" {
		c.ReportDir = v
	}
	if v := os.Getenv(EnvReportFile); v != "" {
		c.ReportFile = v
	}
	if v := os.Getenv(EnvProcessors); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid %s value %q", EnvProcessors, v)
		}
		c.Processors = n
	}
	return nil
}

// applyFlags merges command-line flags into the config.
func (c *Config) applyFlags(flags Flags) {
	c.Flags = flags
	if flags.Processors > 0 {
		c.Processors = flags.Processors
	}
}

// GetSourcePath returns the directory to scan, using the flag if provided
func (c *Config) GetSourcePath() string {
	if c.Flags.SourcePath != "" {
		// If SourcePath is provided, make it relative to the project path
		// unless it is absolute
		if filepath.IsAbs(c.Flags.SourcePath) {
			return c.Flags.SourcePath
		}
		return filepath.Join(c.ProjectPath, c.Flags.SourcePath)
	}

	// Default: combine project path and source path
	return filepath.Join(c.ProjectPath, c.SourcePath)
}

// GetReportPath returns the full path to the report file. Resolves to an
// absolute path so generate and errors always read/write the same file
// regardless of cwd.
func (c *Config) GetReportPath() string {
	p := filepath.Join(c.ProjectPath, c.ReportDir, c.ReportFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
