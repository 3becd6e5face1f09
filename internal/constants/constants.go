package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "lintreport"

	// ConfigFileName is the default config file name
	ConfigFileName = "lintreport.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "LINTREPORT"
)

// Input format constants
const (
	InputFormatSimple   = "json"
	InputFormatExtended = "jsonextended"
)

// Output format constants
const (
	OutputFormatHTML = "html"
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Record file extensions recognised by the input reader and record writer
const (
	ExtJSON    = ".json"
	ExtYAML    = ".yaml"
	ExtYML     = ".yml"
	ExtMsgpack = ".msgpack"
	ExtMsgpk   = ".mpk"
)

// Check exit codes
const (
	ExitCodeSuccess   = 0
	ExitCodeViolation = 1
	ExitCodeError     = 2
)
