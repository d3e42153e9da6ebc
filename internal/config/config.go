// Package config loads optional configuration-file defaults for the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// ConfigFileName is the configuration file looked up in the home and working
// directories.
const ConfigFileName = ".contextstitch.yaml"

// FileConfiguration mirrors the flag surface with file-supplied defaults.
// Pointer fields distinguish "unset" from an explicit false.
type FileConfiguration struct {
	Format         string             `mapstructure:"format"`
	Preset         string             `mapstructure:"preset"`
	Ignore         []string           `mapstructure:"ignore"`
	IncludeHidden  *bool              `mapstructure:"include_hidden"`
	MaxFileSize    string             `mapstructure:"max_file_size"`
	FollowSymlinks *bool              `mapstructure:"follow_symlinks"`
	AbsolutePaths  *bool              `mapstructure:"absolute_paths"`
	Encoding       string             `mapstructure:"encoding"`
	Quiet          *bool              `mapstructure:"quiet"`
	Copy           *bool              `mapstructure:"copy"`
	Tokens         TokenConfiguration `mapstructure:"tokens"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// Load merges the global (home directory) configuration with the local one
// (working directory, or an explicit path). Local values win. Missing files
// are not an error; unreadable or malformed files are.
func Load(workingDirectory string, explicitFilePath string) (FileConfiguration, error) {
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return FileConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged FileConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalConfiguration, loadError := loadConfigurationFromPath(filepath.Join(homeDirectory, ConfigFileName))
		if loadError != nil {
			return FileConfiguration{}, loadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath := explicitFilePath
	if localPath == "" {
		localPath = filepath.Join(workingDirectory, ConfigFileName)
	} else if !filepath.IsAbs(localPath) {
		localPath = filepath.Join(workingDirectory, localPath)
	}
	localConfiguration, loadError := loadConfigurationFromPath(localPath)
	if loadError != nil {
		return FileConfiguration{}, loadError
	}
	merged = merged.Merge(localConfiguration)

	return merged, nil
}

func loadConfigurationFromPath(configurationPath string) (FileConfiguration, error) {
	fileInformation, statError := os.Stat(configurationPath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return FileConfiguration{}, nil
		}
		return FileConfiguration{}, fmt.Errorf("stat configuration %s: %w", configurationPath, statError)
	}
	if fileInformation.IsDir() {
		return FileConfiguration{}, fmt.Errorf("configuration path %s is a directory", configurationPath)
	}

	reader := viper.New()
	reader.SetConfigFile(configurationPath)
	if readError := reader.ReadInConfig(); readError != nil {
		return FileConfiguration{}, fmt.Errorf("read configuration from %s: %w", configurationPath, readError)
	}
	var configuration FileConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return FileConfiguration{}, fmt.Errorf("decode configuration from %s: %w", configurationPath, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined
// configuration.
func (configuration FileConfiguration) Merge(override FileConfiguration) FileConfiguration {
	result := configuration
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Preset != "" {
		result.Preset = override.Preset
	}
	if len(override.Ignore) > 0 {
		result.Ignore = append([]string{}, override.Ignore...)
	}
	if override.IncludeHidden != nil {
		result.IncludeHidden = cloneBool(override.IncludeHidden)
	}
	if override.MaxFileSize != "" {
		result.MaxFileSize = override.MaxFileSize
	}
	if override.FollowSymlinks != nil {
		result.FollowSymlinks = cloneBool(override.FollowSymlinks)
	}
	if override.AbsolutePaths != nil {
		result.AbsolutePaths = cloneBool(override.AbsolutePaths)
	}
	if override.Encoding != "" {
		result.Encoding = override.Encoding
	}
	if override.Quiet != nil {
		result.Quiet = cloneBool(override.Quiet)
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	return result
}

func (configuration TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := configuration
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
