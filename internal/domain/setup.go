package domain

// DefaultSetupFunc is the well-known preparation function name used when a
// test case carries no configuration: a function called "setup" in the test
// file's own package.
const DefaultSetupFunc = "setup"

// SetupMode enumerates the three possible resolutions of a test case's
// preparation configuration.
type SetupMode int

const (
	// SetupDefault means no configuration was given; the default
	// preparation function applies.
	SetupDefault SetupMode = iota
	// SetupPath means an explicit preparation function was configured.
	SetupPath
	// SetupNone means preparation was explicitly disabled with no_setup.
	SetupNone
)

// Setup is the resolved preparation outcome for a single test case. It is
// computed once by the directive parser and consumed once by the rewriter.
type Setup struct {
	Mode SetupMode
	Path string // qualified function reference, set only for SetupPath
}

// UseDefault returns the outcome for a test case with no configuration.
func UseDefault() Setup {
	return Setup{Mode: SetupDefault}
}

// UsePath returns the outcome for an explicitly configured preparation
// function reference.
func UsePath(path string) Setup {
	return Setup{Mode: SetupPath, Path: path}
}

// NoSetup returns the outcome for an explicit no_setup configuration.
func NoSetup() Setup {
	return Setup{Mode: SetupNone}
}

// Disabled reports whether preparation was explicitly switched off.
func (s Setup) Disabled() bool {
	return s.Mode == SetupNone
}

// Ref returns the preparation function reference to invoke, or "" when
// preparation is disabled.
func (s Setup) Ref() string {
	switch s.Mode {
	case SetupPath:
		return s.Path
	case SetupNone:
		return ""
	default:
		return DefaultSetupFunc
	}
}

// String renders the outcome for listings and logs.
func (s Setup) String() string {
	switch s.Mode {
	case SetupPath:
		return s.Path
	case SetupNone:
		return "no setup"
	default:
		return DefaultSetupFunc + " (default)"
	}
}
