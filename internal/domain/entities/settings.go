package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// StatusSource selects which repository changes are considered.
type StatusSource string

const (
	// StatusSourceIndex compares the staged index against HEAD.
	StatusSourceIndex StatusSource = "index"
	// StatusSourceWorktree also includes unstaged working tree changes.
	StatusSourceWorktree StatusSource = "worktree"
)

// Settings is the configuration shared by all pkgbump commands.
type Settings struct {
	RepositoryPath       string       `yaml:"repository_path"`
	PackagesPath         string       `yaml:"packages_path"`
	ManifestFilename     string       `yaml:"manifest_filename"`
	ChangelogFilename    string       `yaml:"changelog_filename"`
	VersionEntryTemplate string       `yaml:"changelog_version_entry_template"`
	ChangeItemTemplate   string       `yaml:"changelog_change_item_template"`
	StatusSource         StatusSource `yaml:"status_source"`
	ProjectManifestPath  string       `yaml:"project_manifest_path"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when no config file is present.
func DefaultSettings() *Settings {
	return &Settings{
		RepositoryPath:       ".",
		PackagesPath:         "Packages",
		ManifestFilename:     DefaultManifestFilename,
		ChangelogFilename:    DefaultChangelogFilename,
		VersionEntryTemplate: DefaultVersionEntryTemplate,
		ChangeItemTemplate:   DefaultChangeItemTemplate,
		StatusSource:         StatusSourceIndex,
		ProjectManifestPath:  filepath.Join("Packages", "manifest.json"),
	}
}

// NewSettings reads a YAML configuration file on top of the defaults,
// expanding ${ENV_VAR} references in path values.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.RepositoryPath = expandEnv(settings.RepositoryPath)
	settings.PackagesPath = expandEnv(settings.PackagesPath)
	settings.ProjectManifestPath = expandEnv(settings.ProjectManifestPath)

	if validateErr := settings.Validate(); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".pkgbump.yaml",
		".pkgbump.yml",
		"pkgbump.yaml",
		"pkgbump.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// Templates returns the changelog templates configured in the settings.
func (s *Settings) Templates() ChangelogTemplates {
	return ChangelogTemplates{
		VersionEntry: s.VersionEntryTemplate,
		ChangeItem:   s.ChangeItemTemplate,
	}
}

// Validate checks for required configuration values.
func (s *Settings) Validate() error {
	if s.RepositoryPath == "" {
		return errors.New("repository_path is required")
	}
	if s.ManifestFilename == "" || strings.ContainsAny(s.ManifestFilename, `/\`) {
		return fmt.Errorf("manifest_filename must be a plain file name, got %q", s.ManifestFilename)
	}
	if s.ChangelogFilename == "" {
		return errors.New("changelog_filename is required")
	}
	if !strings.Contains(s.VersionEntryTemplate, VersionPlaceholder) {
		return fmt.Errorf("changelog_version_entry_template must contain %s", VersionPlaceholder)
	}
	if !strings.Contains(s.ChangeItemTemplate, MessagePlaceholder) {
		return fmt.Errorf("changelog_change_item_template must contain %s", MessagePlaceholder)
	}
	switch s.StatusSource {
	case StatusSourceIndex, StatusSourceWorktree:
	default:
		return fmt.Errorf("status_source must be %q or %q, got %q",
			StatusSourceIndex, StatusSourceWorktree, s.StatusSource)
	}
	return nil
}

// expandEnv replaces ${VAR} references with their environment values.
func expandEnv(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}
