package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver resolves data paths relative to the running binary
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      getConfigDir(homeDir),
	}

	log.Debugf("PathResolver initialized: exec=%s, execDir=%s, configDir=%s",
		pr.executablePath, pr.executableDir, pr.configDir)

	return pr, nil
}

// getConfigDir returns the appropriate config directory for the platform
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "wordstore")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "wordstore")
		}
		return filepath.Join(homeDir, ".config", "wordstore")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "wordstore")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "wordstore")
	default:
		return filepath.Join(homeDir, ".wordstore")
	}
}

// GetDataDir resolves the corpus directory.
// It tries multiple locations in order of preference:
// 1. User-specified path (if absolute)
// 2. Relative to current working directory
// 3. Relative to executable directory
// 4. data/ under the config directory
// The first candidate holding a file matching pattern wins.
func (pr *PathResolver) GetDataDir(userSpecifiedPath, pattern string) string {
	var candidatePaths []string

	if filepath.IsAbs(userSpecifiedPath) {
		candidatePaths = append(candidatePaths, userSpecifiedPath)
	} else {
		if cwd, err := os.Getwd(); err == nil {
			candidatePaths = append(candidatePaths, filepath.Join(cwd, userSpecifiedPath))
		}
		candidatePaths = append(candidatePaths, filepath.Join(pr.executableDir, userSpecifiedPath))
	}
	candidatePaths = append(candidatePaths, filepath.Join(pr.configDir, "data"))

	for _, path := range candidatePaths {
		if isValidDataDir(path, pattern) {
			log.Debugf("Found valid data directory: %s", path)
			return path
		}
		log.Debugf("Data directory candidate not valid: %s", path)
	}

	// Nothing found; the first candidate is the most useful one to report
	return candidatePaths[0]
}

// isValidDataDir checks if a directory contains at least one corpus file
func isValidDataDir(path, pattern string) bool {
	if stat, err := os.Stat(path); err != nil || !stat.IsDir() {
		return false
	}
	matches, err := filepath.Glob(filepath.Join(path, pattern))
	if err != nil {
		return false
	}
	return len(matches) > 0
}
