// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/treecli/treecli/internal/issue"
	"github.com/treecli/treecli/pkg/cueutil"
	"github.com/treecli/treecli/pkg/fspath"
	"github.com/treecli/treecli/pkg/types"
)

const (
	// AppName names the config directory.
	AppName = "treecli"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// EnvPrefix prefixes environment overrides.
	EnvPrefix = "TREECLI"
	// EnvConfigPath names a config file to load instead of searching.
	EnvConfigPath = "TREECLI_CONFIG"
)

// Extensions lists the supported file formats in search order.
var Extensions = []string{".cue", ".toml"}

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the treecli configuration directory: $XDG_CONFIG_HOME
// or ~/.config on Linux, ~/Library/Application Support on macOS and
// %AppData% on Windows.
//
//nolint:revive // ConfigDir reads better than Dir at call sites
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}

func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel.String())
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme.String())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, err := resolvePath(opts)
	if err != nil {
		return nil, "", loadError(path, err)
	}

	var paramDefaults map[string]any
	if path != "" {
		data, err := readConfigFile(path)
		if err != nil {
			return nil, "", loadError(path, err)
		}
		// Viper folds key case and splits keys on dots; parameter paths
		// need neither, so defaults bypass it.
		if d, ok := data["defaults"].(map[string]any); ok {
			paramDefaults = d
		}
		delete(data, "defaults")
		if err := v.MergeConfigMap(data); err != nil {
			return nil, "", loadError(path, fmt.Errorf("failed to merge config: %w", err))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", loadError(path, fmt.Errorf("failed to parse config: %w", err))
	}
	cfg.Defaults = paramDefaults
	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Check the " + EnvPrefix + "_* environment variables").
			Wrap(err).
			BuildError()
	}
	return &cfg, path, nil
}

// resolvePath picks the file to load, or "" when there is none.
func resolvePath(opts LoadOptions) (string, error) {
	explicit := string(opts.ConfigFilePath)
	if explicit == "" {
		explicit = os.Getenv(EnvConfigPath)
	}
	if explicit != "" {
		if !fspath.IsFile(types.FilesystemPath(explicit)) {
			return explicit, fmt.Errorf("%w: %s", ErrConfigNotFound, explicit)
		}
		return explicit, nil
	}

	dir := string(opts.ConfigDirPath)
	if dir == "" {
		var err error
		if dir, err = ConfigDir(); err != nil {
			return "", err
		}
	}
	for _, d := range []types.FilesystemPath{types.FilesystemPath(dir), opts.BaseDir} {
		for _, ext := range Extensions {
			p := fspath.JoinStr(d, ConfigFileName+ext)
			if fspath.IsFile(p) {
				return p.String(), nil
			}
		}
	}
	return "", nil
}

// readConfigFile validates a CUE or TOML file against the schema and
// returns its contents as a map.
func readConfigFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}

	var res *cueutil.ParseResult[map[string]any]
	switch fspath.Ext(types.FilesystemPath(path)) {
	case ".toml":
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		res, err = cueutil.EncodeAndDecode[map[string]any](configSchema, doc, "#Config", cueutil.WithFilename(path))
	default:
		res, err = cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config", cueutil.WithFilename(path))
	}
	if err != nil {
		return nil, err
	}
	if *res.Value == nil {
		return map[string]any{}, nil
	}
	return *res.Value, nil
}

func loadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId).
		WithSuggestion("Check that the file is valid CUE or TOML").
		WithSuggestion("Verify the values match the configuration schema").
		WithSuggestion("Unset " + EnvConfigPath + " to use the default location").
		Wrap(err).
		BuildError()
}

// WriteDefault writes a default config.cue into dir unless a config file
// already exists there, and returns the path of the config file.
func WriteDefault(dir string) (string, error) {
	for _, ext := range Extensions {
		if p := fspath.JoinStr(types.FilesystemPath(dir), ConfigFileName+ext); fspath.IsFile(p) {
			return p.String(), nil
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	p := filepath.Join(dir, ConfigFileName+".cue")
	if err := os.WriteFile(p, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return p, nil
}

// GenerateCUE renders cfg as a config.cue file.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// treecli configuration\n\n")
	fmt.Fprintf(&sb, "log_level: %q\n", cfg.LogLevel)
	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	if len(cfg.Defaults) > 0 {
		sb.WriteString("\ndefaults: {\n")
		keys := make([]string, 0, len(cfg.Defaults))
		for k := range cfg.Defaults {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "\t%q: %s\n", k, cueLiteral(cfg.Defaults[k]))
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

func cueLiteral(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = cueLiteral(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(x)
	}
}

// MarshalTOML renders cfg as a config.toml file.
func MarshalTOML(cfg *Config) ([]byte, error) {
	return toml.Marshal(cfg)
}
