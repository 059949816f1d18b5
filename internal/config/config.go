// Package config provides configuration management for Mind It.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/xvierd/mindit-cli/internal/domain"
)

// Config holds all configuration for the Mind It application.
type Config struct {
	Chat          ChatConfig         `mapstructure:"chat"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
	Log           LogConfig          `mapstructure:"log"`
}

// ChatConfig holds settings for the assistant.
type ChatConfig struct {
	DefaultMode    string   `mapstructure:"default_mode"`
	APIKeyEnv      string   `mapstructure:"api_key_env"`
	StandardModel  string   `mapstructure:"standard_model"`
	FastModel      string   `mapstructure:"fast_model"`
	ThinkingModel  string   `mapstructure:"thinking_model"`
	ThinkingBudget int      `mapstructure:"thinking_budget"`
	Timeout        Duration `mapstructure:"timeout"`
}

// APIKey resolves the credential from the configured environment variable,
// falling back to API_KEY.
func (c ChatConfig) APIKey() string {
	env := c.APIKeyEnv
	if env == "" {
		env = "GEMINI_API_KEY"
	}
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("API_KEY"))
}

// Mode returns the configured default chat mode, or standard when unset or invalid.
func (c ChatConfig) Mode() domain.ChatMode {
	m, err := domain.ValidateChatMode(c.DefaultMode)
	if err != nil {
		return domain.ChatModeStandard
	}
	return m
}

// ThemeConfig holds theme customization settings.
type ThemeConfig struct {
	ColorTitle     string            `mapstructure:"color_title"`
	ColorAccent    string            `mapstructure:"color_accent"`
	ColorMuted     string            `mapstructure:"color_muted"`
	ColorHelp      string            `mapstructure:"color_help"`
	ColorUser      string            `mapstructure:"color_user"`
	ColorAssistant string            `mapstructure:"color_assistant"`
	GradientStart  string            `mapstructure:"gradient_start"`
	GradientEnd    string            `mapstructure:"gradient_end"`
	IconApp        string            `mapstructure:"icon_app"`
	IconChat       string            `mapstructure:"icon_chat"`
	IconReport     string            `mapstructure:"icon_report"`
	Activities     map[string]string `mapstructure:"activities"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorTitle:     "#6366f1",
		ColorAccent:    "#8b5cf6",
		ColorMuted:     "#6B7280",
		ColorHelp:      "#95A5A6",
		ColorUser:      "#A0AEC0",
		ColorAssistant: "#10b981",
		GradientStart:  "#6366f1",
		GradientEnd:    "#ec4899",
		IconApp:        "🧠",
		IconChat:       "💬",
		IconReport:     "📊",
		Activities:     map[string]string{},
	}
}

// ActivityColor returns the configured color for an activity, falling back
// to the catalog color.
func (t ThemeConfig) ActivityColor(a domain.ActivityKind) string {
	if c, ok := t.Activities[strings.ToLower(string(a))]; ok && c != "" {
		return c
	}
	return a.Color()
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds log output settings.
type LogConfig struct {
	File string `mapstructure:"file"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

const defaultDataDir = "~/.mindit"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Chat: ChatConfig{
			DefaultMode:    string(domain.ChatModeStandard),
			APIKeyEnv:      "GEMINI_API_KEY",
			StandardModel:  "gemini-3-pro-preview",
			FastModel:      "gemini-2.5-flash-lite",
			ThinkingModel:  "gemini-3-pro-preview",
			ThinkingBudget: 32768,
			Timeout:        Duration(2 * time.Minute),
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   false,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir,
		},
		Theme: DefaultThemeConfig(),
		Log: LogConfig{
			File: "",
		},
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from path, creating it with defaults
// when it does not exist.
func LoadFrom(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dataDir, err := expandHome(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir
	if cfg.Theme.Activities == nil {
		cfg.Theme.Activities = map[string]string{}
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes cfg to configPath as TOML.
func SaveTo(configPath string, cfg *Config) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	v.Set("chat.default_mode", cfg.Chat.DefaultMode)
	v.Set("chat.api_key_env", cfg.Chat.APIKeyEnv)
	v.Set("chat.standard_model", cfg.Chat.StandardModel)
	v.Set("chat.fast_model", cfg.Chat.FastModel)
	v.Set("chat.thinking_model", cfg.Chat.ThinkingModel)
	v.Set("chat.thinking_budget", cfg.Chat.ThinkingBudget)
	v.Set("chat.timeout", cfg.Chat.Timeout.String())
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("mcp.enabled", cfg.MCP.Enabled)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("theme.color_title", cfg.Theme.ColorTitle)
	v.Set("theme.color_accent", cfg.Theme.ColorAccent)
	v.Set("theme.color_muted", cfg.Theme.ColorMuted)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.color_user", cfg.Theme.ColorUser)
	v.Set("theme.color_assistant", cfg.Theme.ColorAssistant)
	v.Set("theme.gradient_start", cfg.Theme.GradientStart)
	v.Set("theme.gradient_end", cfg.Theme.GradientEnd)
	v.Set("theme.icon_app", cfg.Theme.IconApp)
	v.Set("theme.icon_chat", cfg.Theme.IconChat)
	v.Set("theme.icon_report", cfg.Theme.IconReport)
	for name, color := range cfg.Theme.Activities {
		v.Set("theme.activities."+name, color)
	}
	v.Set("log.file", cfg.Log.File)

	return v.WriteConfig()
}

// Set updates a single dotted key in the config file, e.g. "chat.default_mode".
func Set(key, value string) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SetIn(configPath, key, value)
}

// SetIn updates a single dotted key in the config file at configPath.
func SetIn(configPath, key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if key == "chat.default_mode" {
		if _, err := domain.ValidateChatMode(value); err != nil {
			return err
		}
	}
	if strings.HasPrefix(key, "theme.activities.") {
		if _, err := domain.ValidateActivity(strings.TrimPrefix(key, "theme.activities.")); err != nil {
			return err
		}
	}

	if _, err := LoadFrom(configPath); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	v.Set(key, value)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	// Reload to surface type errors (e.g. a non-duration timeout) immediately.
	if _, err := LoadFrom(configPath); err != nil {
		return err
	}
	return nil
}

// Settings returns every setting in the config file at configPath, keyed by
// dotted name, with defaults filled in.
func Settings(configPath string) (map[string]any, error) {
	if _, err := LoadFrom(configPath); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	out := make(map[string]any)
	for _, key := range v.AllKeys() {
		out[key] = v.Get(key)
	}
	return out, nil
}

// IsKnownKey reports whether key names a setting.
func IsKnownKey(key string) bool {
	if strings.HasPrefix(key, "theme.activities.") {
		return true
	}
	_, ok := defaultValues()[key]
	return ok
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".mindit", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "mindit.db")
}

// GetLogPath returns the path of the log file used while the TUI runs.
func GetLogPath(cfg *Config) string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	return filepath.Join(cfg.Storage.DataDir, "mindit.log")
}

func expandHome(dir string) (string, error) {
	if dir == "" || dir == "~" || strings.HasPrefix(dir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if dir == "" {
			return filepath.Join(homeDir, ".mindit"), nil
		}
		return filepath.Join(homeDir, strings.TrimPrefix(dir, "~")), nil
	}
	return dir, nil
}

func defaultValues() map[string]any {
	cfg := DefaultConfig()
	return map[string]any{
		"chat.default_mode":     cfg.Chat.DefaultMode,
		"chat.api_key_env":      cfg.Chat.APIKeyEnv,
		"chat.standard_model":   cfg.Chat.StandardModel,
		"chat.fast_model":       cfg.Chat.FastModel,
		"chat.thinking_model":   cfg.Chat.ThinkingModel,
		"chat.thinking_budget":  cfg.Chat.ThinkingBudget,
		"chat.timeout":          cfg.Chat.Timeout.String(),
		"notifications.enabled": cfg.Notifications.Enabled,
		"notifications.sound":   cfg.Notifications.Sound,
		"mcp.enabled":           cfg.MCP.Enabled,
		"storage.data_dir":      cfg.Storage.DataDir,
		"theme.color_title":     cfg.Theme.ColorTitle,
		"theme.color_accent":    cfg.Theme.ColorAccent,
		"theme.color_muted":     cfg.Theme.ColorMuted,
		"theme.color_help":      cfg.Theme.ColorHelp,
		"theme.color_user":      cfg.Theme.ColorUser,
		"theme.color_assistant": cfg.Theme.ColorAssistant,
		"theme.gradient_start":  cfg.Theme.GradientStart,
		"theme.gradient_end":    cfg.Theme.GradientEnd,
		"theme.icon_app":        cfg.Theme.IconApp,
		"theme.icon_chat":       cfg.Theme.IconChat,
		"theme.icon_report":     cfg.Theme.IconReport,
		"log.file":              cfg.Log.File,
	}
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}
}
