// Package constants defines shared constants used across the envdoctor codebase.
package constants

import "os"

// File permissions
const (
	DirMode  os.FileMode = 0755
	FileMode os.FileMode = 0644
)

// Environment variables
const (
	EnvConfigDir = "ENVDOCTOR_CONFIG"
	EnvDebug     = "ENVDOCTOR_DEBUG"
)

// Application paths
const (
	AppName       = "envdoctor"
	RulesFileName = "rules.toml"
	AuditFileName = "audit.log"
)
