package constants

// Log file names.
const (
	// CLILogFileName is the name of the rotating CLI log file.
	// This file is located in ~/.exithook/logs/exithook.log
	CLILogFileName = "exithook.log"
)

// Configuration file names.
const (
	// GlobalConfigName is the name of the global exithook configuration file.
	// This file is located in the exithook home directory.
	GlobalConfigName = "config.yaml"
)
