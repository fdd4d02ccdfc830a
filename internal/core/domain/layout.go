package domain

import (
	"os"
	"path/filepath"
)

const (
	// NavyDirName is the name of the per-user navy directory.
	NavyDirName = ".navy"

	// ConfigFileName is the name of the navy configuration file.
	ConfigFileName = "config.yaml"

	// HomeEnvVar overrides the directory holding the configuration file.
	HomeEnvVar = "NAVY_HOME"

	// DefaultComposeFile is the service definition file used when an
	// environment does not configure one.
	DefaultComposeFile = "docker-compose.yml"

	// DefaultEnvironmentName is used when neither a flag nor the config names an environment.
	DefaultEnvironmentName = "dev"

	// DefaultDevelopTarget is the container path live sources are mounted at.
	DefaultDevelopTarget = "/usr/src/app"

	// DefaultVirtualHostPattern derives a virtual host from service and environment names.
	DefaultVirtualHostPattern = "{service}.{environment}"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Runtime labels attached to every resource navy creates.
const (
	LabelEnvironment = "navy.environment"
	LabelService     = "navy.service"
	LabelConfigHash  = "navy.config-hash"
	LabelVirtualHost = "navy.virtual-host"
)

// Definition labels read from compose files.
const (
	LabelDevelop            = "navy.develop"
	LabelDevelopTarget      = "navy.develop.target"
	LabelTagPinned          = "navy.tag.pinned"
	LabelVirtualHostEnabled = "navy.virtual-host.enabled"
)

// VirtualHostEnvVar is the variable reverse proxies read the routing name from.
const VirtualHostEnvVar = "VIRTUAL_HOST"

// DefaultNavyPath returns the directory holding the navy configuration.
// NAVY_HOME takes precedence over the user's home directory.
func DefaultNavyPath() string {
	if dir := os.Getenv(HomeEnvVar); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return NavyDirName
	}
	return filepath.Join(home, NavyDirName)
}

// DefaultConfigPath returns the path of the navy configuration file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultNavyPath(), ConfigFileName)
}
