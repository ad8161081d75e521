package cli

import "testx/internal/config"

// Flags holds command-line flags
type Flags struct {
	Processors int
	SourcePath string
	NameFilter string
	Write      bool
	FailFast   bool
	Cases      bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors: f.Processors,
		SourcePath: f.SourcePath,
		NameFilter: f.NameFilter,
		Write:      f.Write,
		FailFast:   f.FailFast,
		Cases:      f.Cases,
	}
}
