package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultWorkspace = "default"
	configFileName   = "config.toml"
)

type GlobalConfig struct {
	CurrentWorkspace string `toml:"current_workspace,omitempty"`

	// Backend selects the slot implementation: file|sqlite.
	Backend string `toml:"backend,omitempty"`

	// IDStyle selects the task id generator: short|uuid.
	IDStyle string `toml:"id_style,omitempty"`

	LogLevel string `toml:"log_level,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `toml:"tui,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set (e.g. "unicode", "ascii").
	Glyphs string `toml:"glyphs,omitempty"`
}

// ConfigKeys lists the keys accepted by Get/Set, in display order.
var ConfigKeys = []string{"current_workspace", "backend", "id_style", "log_level", "tui.glyphs"}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.todo).
	if v := strings.TrimSpace(os.Getenv("TODO_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".todo"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	var cfg GlobalConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	return atomicWriteFile(dir, configFileName+".*.tmp", path, buf.Bytes(), 0o600)
}

func (c *GlobalConfig) Get(key string) (string, error) {
	switch key {
	case "current_workspace":
		return c.CurrentWorkspace, nil
	case "backend":
		return c.Backend, nil
	case "id_style":
		return c.IDStyle, nil
	case "log_level":
		return c.LogLevel, nil
	case "tui.glyphs":
		if c.TUI == nil {
			return "", nil
		}
		return c.TUI.Glyphs, nil
	default:
		return "", fmt.Errorf("unknown config key: %s (want one of %s)", key, strings.Join(ConfigKeys, ", "))
	}
}

// Set validates and assigns a config value. An empty value resets the key to its default.
func (c *GlobalConfig) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "current_workspace":
		if value != "" {
			name, err := NormalizeWorkspaceName(value)
			if err != nil {
				return err
			}
			value = name
		}
		c.CurrentWorkspace = value
	case "backend":
		if value != "" {
			b, err := ParseBackend(value)
			if err != nil {
				return err
			}
			if b == BackendMemory {
				return errors.New("backend memory cannot be persisted in config")
			}
			value = string(b)
		}
		c.Backend = value
	case "id_style":
		if value != "" {
			s, err := ParseIDStyle(value)
			if err != nil {
				return err
			}
			value = string(s)
		}
		c.IDStyle = value
	case "log_level":
		c.LogLevel = strings.ToLower(value)
	case "tui.glyphs":
		v := strings.ToLower(value)
		if v != "" && v != "unicode" && v != "ascii" {
			return fmt.Errorf("unknown glyph set: %s (want unicode|ascii)", value)
		}
		if c.TUI == nil {
			c.TUI = &TUIConfig{}
		}
		c.TUI.Glyphs = v
	default:
		return fmt.Errorf("unknown config key: %s (want one of %s)", key, strings.Join(ConfigKeys, ", "))
	}
	return nil
}

func NormalizeWorkspaceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("workspace name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid workspace name: %q", name)
	}
	return name, nil
}

func ListWorkspaces() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(filepath.Join(dir, "workspaces"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}
