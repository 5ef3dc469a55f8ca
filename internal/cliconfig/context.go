// Package cliconfig manages garagectl's client-side configuration: named
// contexts (API server + credential pairs) persisted under the user config
// directory, with environment variable overrides. Resolution order is
// always flag > env > context > default.
package cliconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// GlobalConfigDir is the directory under os.UserConfigDir.
	GlobalConfigDir = "garagectl"
	// ContextConfigFileName is the name of the context configuration file.
	ContextConfigFileName = "contexts.json"
	// ContextConfigVersion is the current version of the context config schema.
	ContextConfigVersion = 1
	// DefaultContextName is the name of the default context.
	DefaultContextName = "local"
	// DefaultAPIURL is the catalog backend a fresh install talks to.
	DefaultAPIURL = "http://localhost:8000/"
)

// userConfigDir is swapped out in tests.
var userConfigDir = os.UserConfigDir

// Context is a named API server + credential pair, kubectl-style: switching
// contexts switches both the backend and the stored token.
type Context struct {
	// APIURL is the base URL of the catalog API (e.g. "http://localhost:8000/")
	APIURL string `json:"apiUrl"`

	// Token is the auth token obtained from the login endpoint. Empty means
	// logged out; requests are still issued and the backend rejects them.
	Token string `json:"token,omitempty"`

	// Username is the account the token was issued for, kept for display.
	Username string `json:"username,omitempty"`

	// Description is an optional human-readable description.
	Description string `json:"description,omitempty"`
}

// ContextConfig holds the user's named contexts.
type ContextConfig struct {
	// Version is the config schema version for future migrations
	Version int `json:"version"`

	// CurrentContext is the name of the currently active context
	CurrentContext string `json:"currentContext"`

	// Contexts maps context names to their configuration
	Contexts map[string]*Context `json:"contexts"`
}

// NewDefaultContextConfig creates a ContextConfig with the local default.
func NewDefaultContextConfig() *ContextConfig {
	return &ContextConfig{
		Version:        ContextConfigVersion,
		CurrentContext: DefaultContextName,
		Contexts: map[string]*Context{
			DefaultContextName: {
				APIURL:      DefaultAPIURL,
				Description: "Local catalog backend",
			},
		},
	}
}

// ContextConfigPath returns the path to the context config file.
func ContextConfigPath() (string, error) {
	configDir, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(configDir, GlobalConfigDir, ContextConfigFileName), nil
}

// LoadContextConfig loads the context configuration from disk. A missing
// file yields the default configuration.
func LoadContextConfig() (*ContextConfig, error) {
	path, err := ContextConfigPath()
	if err != nil {
		return NewDefaultContextConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefaultContextConfig(), nil
		}
		return nil, fmt.Errorf("failed to read context config: %w", err)
	}

	var cfg ContextConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: invalid JSON: %w", path, err)
	}

	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	if len(cfg.Contexts) == 0 {
		cfg.Contexts[DefaultContextName] = &Context{
			APIURL:      DefaultAPIURL,
			Description: "Local catalog backend",
		}
		if cfg.CurrentContext == "" {
			cfg.CurrentContext = DefaultContextName
		}
	}

	return &cfg, nil
}

// SaveContextConfig saves the context configuration to disk. The file holds
// credentials, so it is written 0600.
func SaveContextConfig(cfg *ContextConfig) error {
	path, err := ContextConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode context config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write context config: %w", err)
	}

	return nil
}

// GetCurrentContext returns the currently active context, or nil if no
// context is set or it doesn't exist.
func (c *ContextConfig) GetCurrentContext() *Context {
	if c.CurrentContext == "" {
		return nil
	}
	return c.Contexts[c.CurrentContext]
}

// SetCurrentContext switches to the named context.
func (c *ContextConfig) SetCurrentContext(name string) error {
	if _, exists := c.Contexts[name]; !exists {
		return fmt.Errorf("context not found: %s", name)
	}
	c.CurrentContext = name
	return nil
}

// AddContext adds a new context with the given name.
func (c *ContextConfig) AddContext(name string, ctx *Context) error {
	if _, exists := c.Contexts[name]; exists {
		return fmt.Errorf("context already exists: %s", name)
	}
	if c.Contexts == nil {
		c.Contexts = make(map[string]*Context)
	}
	c.Contexts[name] = ctx
	return nil
}

// RemoveContext removes a context by name. The current context cannot be
// removed.
func (c *ContextConfig) RemoveContext(name string) error {
	if _, exists := c.Contexts[name]; !exists {
		return fmt.Errorf("context not found: %s", name)
	}
	if c.CurrentContext == name {
		return errors.New("cannot remove current context; switch to another context first")
	}
	delete(c.Contexts, name)
	return nil
}
