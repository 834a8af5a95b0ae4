package config

const SourceFileExt = ".mml"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".mml", ".ml"}

// ConfigFileName is the per-directory configuration file looked up by Discover.
const ConfigFileName = "minml.yaml"

// ConfigFileNameAlt is the common alternative spelling of ConfigFileName.
const ConfigFileNameAlt = "minml.yml"

// Evaluation limits
const (
	DefaultMaxDepth = 100000
	DefaultMemoSize = 4096
)

// DefaultEntry is the function the CLI runs when --entry is not given.
const DefaultEntry = "main"

// Log levels accepted by the log.level setting
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)
