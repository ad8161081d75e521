package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSourcePath is the default source path, relative to the project
	DefaultSourcePath = "."
	// DefaultReportFile is the default report file name
	DefaultReportFile = "report.json"
	// DefaultReportDir is the default report directory
	DefaultReportDir = ".testx"
	// DefaultProcessors is the default number of parallel workers
	DefaultProcessors = 4
	// ConfigFileName is the optional per-project configuration file
	ConfigFileName = "testx.yaml"
)

// Environment variables recognized by Load.
const (
	EnvProjectPath = "TESTX_PROJECT_PATH"
	EnvSourcePath  = "TESTX_SOURCE_PATH"
	EnvReportDir   = "TESTX_REPORT_DIR"
	EnvReportFile  = "TESTX_REPORT_FILE"
	EnvProcessors  = "TESTX_PROCESSORS"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning
// for source files
var DefaultPathsToIgnore = []string{
	"vendor",
	"testdata",
	"node_modules",
}
