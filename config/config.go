// Package config carries binder options and their YAML form.
//
// Embedders typically ship a dispatch.yaml next to their host binary:
//
//	release-lock: true
//	allow-implicit: true
//	trace-calls: false
//
// Absent keys keep their defaults, so a partial file only overrides what
// it names.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options configures a binder instance.
type Options struct {
	// ReleaseLock releases the foreign runtime's execution lock for the
	// duration of each native call, letting other foreign threads run
	// while the native side blocks. Defaults to true.
	ReleaseLock *bool `yaml:"release-lock,omitempty"`

	// AllowImplicit permits the conversion subsystem's own implicit
	// coercions when converting arguments. Defaults to true. Registered
	// user-defined conversions are governed separately by the binder's
	// disambiguation step.
	AllowImplicit *bool `yaml:"allow-implicit,omitempty"`

	// TraceCalls logs every candidate scan and bind outcome at debug
	// level. Defaults to false.
	TraceCalls bool `yaml:"trace-calls,omitempty"`
}

// Default returns the option set used when no configuration is supplied.
func Default() Options {
	return Options{}
}

// ReleaseLockEnabled resolves the tri-state field against its default.
func (o Options) ReleaseLockEnabled() bool {
	return o.ReleaseLock == nil || *o.ReleaseLock
}

// AllowImplicitEnabled resolves the tri-state field against its default.
func (o Options) AllowImplicitEnabled() bool {
	return o.AllowImplicit == nil || *o.AllowImplicit
}

// Parse decodes options from YAML.
func Parse(data []byte) (Options, error) {
	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}
	return o, nil
}

// Load reads and decodes options from a YAML file.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}
	return Parse(data)
}
