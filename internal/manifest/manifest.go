// Package manifest loads design manifests: a format version, a design
// name, signal declarations and statements in the textual IR form.
//
// TOML example:
//
//	format = "1.0"
//	name = "counter"
//	statements = """
//	(eq (sig count) (+ (sig count) (const 1'd1)))
//	"""
//
//	[[signal]]
//	name = "count"
//	width = 8
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// SupportedFormats is the format versions this loader reads.
const SupportedFormats = ">= 1.0, < 2.0"

var (
	ErrSyntax      = errors.New("manifest syntax error")
	ErrMissing     = errors.New("missing required key")
	ErrFormat      = errors.New("unsupported manifest format")
	ErrExtension   = errors.New("unknown manifest extension")
	ErrDeclaration = errors.New("invalid signal declaration")
)

// Manifest is a loaded design description.
type Manifest struct {
	Path       string       `toml:"-" yaml:"-"`
	Format     string       `toml:"format" yaml:"format"`
	Name       string       `toml:"name" yaml:"name"`
	Signals    []SignalDecl `toml:"signal" yaml:"signal"`
	Statements string       `toml:"statements" yaml:"statements"`
}

// SignalDecl declares one signal. Width and Signed give an explicit
// shape; Min and Max a value range; Like copies another declared signal.
type SignalDecl struct {
	Name      string         `toml:"name" yaml:"name"`
	Width     *int           `toml:"width" yaml:"width"`
	Signed    bool           `toml:"signed" yaml:"signed"`
	Min       *int64         `toml:"min" yaml:"min"`
	Max       *int64         `toml:"max" yaml:"max"`
	Reset     int64          `toml:"reset" yaml:"reset"`
	ResetLess bool           `toml:"reset_less" yaml:"reset_less"`
	Like      string         `toml:"like" yaml:"like"`
	Attrs     map[string]any `toml:"attrs" yaml:"attrs"`
}

// Load reads the manifest at path, picking the decoder by extension.
func Load(path string) (*Manifest, error) {
	var (
		m   *Manifest
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		m, err = loadTOML(path)
	case ".yaml", ".yml":
		m, err = loadYAML(path)
	default:
		return nil, fmt.Errorf("%s: %w (expected .toml, .yaml or .yml)", path, ErrExtension)
	}
	if err != nil {
		return nil, err
	}
	m.Path = path
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func loadTOML(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w: %w", path, ErrSyntax, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: %w: unknown key %q", path, ErrSyntax, undecoded[0].String())
	}
	for _, key := range []string{"format", "name"} {
		if !meta.IsDefined(key) {
			return nil, fmt.Errorf("%s: %w %q", path, ErrMissing, key)
		}
	}
	return &m, nil
}

func loadYAML(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w: file is empty", path, ErrSyntax)
		}
		return nil, fmt.Errorf("%s: %w: %w", path, ErrSyntax, err)
	}
	if m.Format == "" {
		return nil, fmt.Errorf("%s: %w %q", path, ErrMissing, "format")
	}
	if m.Name == "" {
		return nil, fmt.Errorf("%s: %w %q", path, ErrMissing, "name")
	}
	return &m, nil
}

// CheckFormat reports whether version satisfies SupportedFormats.
func CheckFormat(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrFormat, version, err)
	}
	c, err := semver.NewConstraint(SupportedFormats)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w %s (supported: %s)", ErrFormat, v, SupportedFormats)
	}
	return nil
}

func (m *Manifest) validate() error {
	if err := CheckFormat(m.Format); err != nil {
		return fmt.Errorf("%s: %w", m.Path, err)
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%s: %w %q", m.Path, ErrMissing, "name")
	}
	seen := make(map[string]int, len(m.Signals))
	for i, s := range m.Signals {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%s: signal[%d]: %w: name must be provided", m.Path, i, ErrDeclaration)
		}
		if j, dup := seen[s.Name]; dup {
			return fmt.Errorf("%s: signal[%d]: %w: %q already declared by signal[%d]", m.Path, i, ErrDeclaration, s.Name, j)
		}
		seen[s.Name] = i
		if s.Signed && s.Width == nil {
			return fmt.Errorf("%s: signal %q: %w: signed needs an explicit width", m.Path, s.Name, ErrDeclaration)
		}
		if s.Like != "" {
			j, ok := seen[s.Like]
			if !ok || j == i {
				return fmt.Errorf("%s: signal %q: %w: like %q must name an earlier signal", m.Path, s.Name, ErrDeclaration, s.Like)
			}
		}
	}
	return nil
}
