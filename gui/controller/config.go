package controller

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dustin/go-humanize"

	"github.com/kacebover/imageshrink/resizer"
)

// AppConfig holds all application configuration
type AppConfig struct {
	// Resize settings
	DestinationDir string `json:"destination_dir"`
	Filter         string `json:"filter"` // see resizer.Filters
	JPEGQuality    int    `json:"jpeg_quality"`
	MaxDimension   int    `json:"max_dimension"`

	// UI settings
	OpenFolderAfterResize bool `json:"open_folder_after_resize"`

	// Recent sources
	LastSourceDir string   `json:"last_source_dir"`
	RecentFiles   []string `json:"recent_files"`
}

const maxRecentFiles = 10

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		DestinationDir: resizer.DefaultDestination(),
		Filter:         string(resizer.FilterLanczos),
		JPEGQuality:    resizer.DefaultJPEGQuality,
		MaxDimension:   resizer.DefaultMaxDimension,

		OpenFolderAfterResize: true,

		RecentFiles: []string{},
	}
}

// getConfigDir returns the configuration directory path.
// IMAGESHRINK_CONFIG_DIR overrides the platform location.
func getConfigDir() string {
	if dir := os.Getenv("IMAGESHRINK_CONFIG_DIR"); dir != "" {
		_ = os.MkdirAll(dir, 0755)
		return dir
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, "Library", "Application Support")
	default: // linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			homeDir, _ := os.UserHomeDir()
			configDir = filepath.Join(homeDir, ".config")
		}
	}

	appConfigDir := filepath.Join(configDir, AppName)
	_ = os.MkdirAll(appConfigDir, 0755)

	return appConfigDir
}

// getConfigPath returns the full path to the config file
func getConfigPath() string {
	return filepath.Join(getConfigDir(), "config.json")
}

// LoadConfig loads configuration from disk or returns defaults
func LoadConfig() *AppConfig {
	config := DefaultConfig()

	data, err := os.ReadFile(getConfigPath())
	if err != nil {
		return config
	}

	if err := json.Unmarshal(data, config); err != nil {
		return DefaultConfig()
	}

	config.ValidateConfig()
	return config
}

// SaveConfig saves configuration to disk
func SaveConfig(config *AppConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(getConfigPath(), data, 0644)
}

// AddRecentFile moves path to the front of the recent list and
// remembers its folder for the next file dialog.
func (c *AppConfig) AddRecentFile(path string) {
	newFiles := make([]string, 0, len(c.RecentFiles)+1)
	newFiles = append(newFiles, path)

	for _, f := range c.RecentFiles {
		if f != path {
			newFiles = append(newFiles, f)
		}
	}

	if len(newFiles) > maxRecentFiles {
		newFiles = newFiles[:maxRecentFiles]
	}

	c.RecentFiles = newFiles
	c.LastSourceDir = filepath.Dir(path)
}

// ValidateConfig validates and normalizes configuration values
func (c *AppConfig) ValidateConfig() {
	if c.DestinationDir == "" {
		c.DestinationDir = resizer.DefaultDestination()
	}

	filter, err := resizer.ParseFilter(c.Filter)
	if err != nil {
		filter = resizer.FilterLanczos
	}
	c.Filter = string(filter)

	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		c.JPEGQuality = resizer.DefaultJPEGQuality
	}

	if c.MaxDimension < 1 {
		c.MaxDimension = resizer.DefaultMaxDimension
	}
	if c.MaxDimension > 65535 {
		c.MaxDimension = 65535
	}
}

// Clone creates a deep copy of the config
func (c *AppConfig) Clone() *AppConfig {
	clone := *c

	if c.RecentFiles != nil {
		clone.RecentFiles = make([]string, len(c.RecentFiles))
		copy(clone.RecentFiles, c.RecentFiles)
	}

	return &clone
}

// FormatFileSize formats bytes to a human readable string
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.Bytes(uint64(bytes))
}
