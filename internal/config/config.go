// internal/config/config.go
//
// This package handles configuration and the .leadline directory structure.
// Every project that runs the workspace gets a .leadline/ folder in its root:
//
// .leadline/
// ├── leads/     <- One YAML file per lead assigned to this agent
// ├── logs/      <- Session journal
// └── registry/  <- Optional fields.yaml / layouts.yaml overlays

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// LeadlineDir is the name of the directory we create in each project.
const LeadlineDir = ".leadline"

const defaultReadyTimeoutSeconds = 10

const defaultConfigYAML = `# leadline workspace configuration
version: 1

workspace:
  agent_name: agent
  # leads_dir: ../shared/leads

telephony:
  identity: ""
  ready_timeout_seconds: 10

# Registry overlays extend the built-in field metadata and lead-type layouts.
# registry:
#   fields_file: registry/fields.yaml
#   layouts_file: registry/layouts.yaml
`

// WorkspaceConfig captures agent preferences.
type WorkspaceConfig struct {
	AgentName string `yaml:"agent_name"`
	LeadsDir  string `yaml:"leads_dir,omitempty"`
}

// TelephonyConfig captures call-session settings.
type TelephonyConfig struct {
	Identity            string `yaml:"identity,omitempty"`
	ReadyTimeoutSeconds int    `yaml:"ready_timeout_seconds,omitempty"`
}

// RegistryConfig points at optional registry overlay files.
type RegistryConfig struct {
	FieldsFile  string `yaml:"fields_file,omitempty"`
	LayoutsFile string `yaml:"layouts_file,omitempty"`
}

// ProjectConfig models .leadline/config.yaml.
type ProjectConfig struct {
	Version   int             `yaml:"version"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Telephony TelephonyConfig `yaml:"telephony"`
	Registry  RegistryConfig  `yaml:"registry"`
}

// envOverrides lets deployment environments adjust settings without editing
// the project config file.
type envOverrides struct {
	AgentName           string `env:"LEADLINE_AGENT"`
	LeadsDir            string `env:"LEADLINE_LEADS_DIR"`
	ReadyTimeoutSeconds int    `env:"LEADLINE_READY_TIMEOUT"`
}

// Config holds the runtime configuration for the workspace.
type Config struct {
	// ProjectDir is the directory where the user ran `leadline` from.
	ProjectDir string

	// LeadlineProjectDir is ProjectDir/.leadline.
	LeadlineProjectDir string

	Project ProjectConfig
}

// InitLeadlineDir creates the .leadline directory structure in the given
// project directory. Called when the TUI starts up.
func InitLeadlineDir(projectDir string) error {
	leadlineDir := filepath.Join(projectDir, LeadlineDir)
	dirs := []string{
		filepath.Join(leadlineDir, "leads"),
		filepath.Join(leadlineDir, "logs"),
		filepath.Join(leadlineDir, "registry"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(leadlineDir, "config.yaml"))
}

// NewConfig creates a Config populated from config.yaml plus environment
// overrides.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:         projectDir,
		LeadlineProjectDir: filepath.Join(projectDir, LeadlineDir),
		Project:            defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LeadsDir returns the directory holding this agent's lead files.
func (c *Config) LeadsDir() string {
	if dir := strings.TrimSpace(c.Project.Workspace.LeadsDir); dir != "" {
		return resolvePath(c.ProjectDir, dir)
	}
	return filepath.Join(c.LeadlineProjectDir, "leads")
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.LeadlineProjectDir, "logs")
}

// RegistryDir returns the path to the registry overlay directory.
func (c *Config) RegistryDir() string {
	return filepath.Join(c.LeadlineProjectDir, "registry")
}

// FieldsOverlayPath returns the fields.yaml overlay location.
func (c *Config) FieldsOverlayPath() string {
	if path := strings.TrimSpace(c.Project.Registry.FieldsFile); path != "" {
		return resolvePath(c.LeadlineProjectDir, path)
	}
	return filepath.Join(c.RegistryDir(), "fields.yaml")
}

// LayoutsOverlayPath returns the layouts.yaml overlay location.
func (c *Config) LayoutsOverlayPath() string {
	if path := strings.TrimSpace(c.Project.Registry.LayoutsFile); path != "" {
		return resolvePath(c.LeadlineProjectDir, path)
	}
	return filepath.Join(c.RegistryDir(), "layouts.yaml")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.LeadlineProjectDir, "config.yaml")
}

// AgentName returns the configured agent display name.
func (c *Config) AgentName() string {
	return c.Project.Workspace.AgentName
}

// Identity returns the telephony registration identity, deriving one from
// the agent name when unset.
func (c *Config) Identity() string {
	if id := strings.TrimSpace(c.Project.Telephony.Identity); id != "" {
		return id
	}
	return "agent_" + strings.ReplaceAll(strings.ToLower(c.AgentName()), " ", "_")
}

// ReadyTimeout bounds the wait for the call device's ready signal.
func (c *Config) ReadyTimeout() time.Duration {
	seconds := c.Project.Telephony.ReadyTimeoutSeconds
	if seconds <= 0 {
		seconds = defaultReadyTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project = parsed
	return nil
}

func (c *Config) applyEnvOverrides() error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("config: parse environment: %w", err)
	}
	if name := strings.TrimSpace(overrides.AgentName); name != "" {
		c.Project.Workspace.AgentName = name
	}
	if dir := strings.TrimSpace(overrides.LeadsDir); dir != "" {
		c.Project.Workspace.LeadsDir = dir
	}
	if overrides.ReadyTimeoutSeconds > 0 {
		c.Project.Telephony.ReadyTimeoutSeconds = overrides.ReadyTimeoutSeconds
	}
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Workspace: WorkspaceConfig{
			AgentName: "agent",
		},
		Telephony: TelephonyConfig{
			ReadyTimeoutSeconds: defaultReadyTimeoutSeconds,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	pc.Workspace.AgentName = strings.TrimSpace(pc.Workspace.AgentName)
	if pc.Workspace.AgentName == "" {
		pc.Workspace.AgentName = "agent"
	}
	if pc.Telephony.ReadyTimeoutSeconds <= 0 {
		pc.Telephony.ReadyTimeoutSeconds = defaultReadyTimeoutSeconds
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
