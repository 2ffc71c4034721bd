package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Model contains the character n-gram model parameters.
type Model struct {
	Order        int    `toml:"order"`
	AlphabetSize int    `toml:"alphabet_size"`
	Dir          string `toml:"model_dir"`
}

// Languages names the two primary tags, the training corpus for each and the
// alias tags folded into them.
type Languages struct {
	Primary  []string            `toml:"primary"`
	Training map[string]string   `toml:"training"`
	Aliases  map[string][]string `toml:"aliases"`
}

// Gold describes the gold-standard file layout.
type Gold struct {
	Path           string `toml:"path"`
	Delimiter      string `toml:"delimiter"`
	NamedEntityTag string `toml:"named_entity_tag"`
}

// Transition selects how pair counts become probabilities.
type Transition struct {
	Normalization string `toml:"normalization"`
}

// NERChannel configures one named-entity recognizer. Exactly one of
// Gazetteer or Command is set.
type NERChannel struct {
	Gazetteer string   `toml:"gazetteer"`
	Command   []string `toml:"command"`
}

// NER contains the batching and labeling settings shared by all channels.
type NER struct {
	ChunkSize  int                   `toml:"chunk_size"`
	OutsideTag string                `toml:"outside_tag"`
	Separator  string                `toml:"separator"`
	Channels   map[string]NERChannel `toml:"channels"`
}

// Output controls the annotated and evaluation writers.
type Output struct {
	KeepCase  bool   `toml:"keep_case"`
	Header    bool   `toml:"header"`
	Precision int    `toml:"precision"`
	Delimiter string `toml:"delimiter"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format  string `toml:"format"`
	Level   string `toml:"level"`
	Verbose bool   `toml:"verbose"`
}

// Store controls the evaluation run history database.
type Store struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config encapsulates all configuration values for cstag.
type Config struct {
	Model      Model      `toml:"model"`
	Languages  Languages  `toml:"languages"`
	Gold       Gold       `toml:"gold"`
	Transition Transition `toml:"transition"`
	NER        NER        `toml:"ner"`
	Output     Output     `toml:"output"`
	Logging    Logging    `toml:"logging"`
	Store      Store      `toml:"store"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cstag/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded. A missing file is not an error; the
// defaults are returned and exists reports false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		if err := Decode(file, &cfg); err != nil {
			return nil, "", false, err
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Decode reads TOML from r over the values already in cfg. Tables that the
// file names replace the defaults for the same keys; map sections such as
// languages.aliases are replaced whole when present.
func Decode(r io.Reader, cfg *Config) error {
	var raw struct {
		Languages struct {
			Training map[string]string   `toml:"training"`
			Aliases  map[string][]string `toml:"aliases"`
		} `toml:"languages"`
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if raw.Languages.Training != nil {
		cfg.Languages.Training = nil
	}
	if raw.Languages.Aliases != nil {
		cfg.Languages.Aliases = nil
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cstag.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// SampleConfig returns the embedded sample configuration text.
func SampleConfig() string {
	return sampleConfig
}

// AliasMap returns alias tag → primary tag. Primary tags map to themselves.
func (c *Config) AliasMap() map[string]string {
	out := make(map[string]string)
	for _, p := range c.Languages.Primary {
		out[p] = p
	}
	for primary, aliases := range c.Languages.Aliases {
		for _, a := range aliases {
			out[a] = primary
		}
	}
	return out
}

// ModelPath returns the model file location for a language tag.
func (c *Config) ModelPath(tag string) string {
	return filepath.Join(c.Model.Dir, tag+".charlm")
}
