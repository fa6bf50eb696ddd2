package lexicon

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes a lexicon: where its words come from and how to read them.
type Manifest struct {
	ID           string           `yaml:"id" json:"id"`
	Version      string           `yaml:"version" json:"version"`
	Language     string           `yaml:"language" json:"language"`
	Description  string           `yaml:"description,omitempty" json:"description,omitempty"`
	Source       string           `yaml:"source" json:"source"`
	SourceURL    string           `yaml:"source_url,omitempty" json:"source_url,omitempty"`
	License      string           `yaml:"license" json:"license"`
	DataFile     string           `yaml:"data_file" json:"data_file"`
	Format       FormatSpec       `yaml:"format" json:"-"`
	MetadataCols []MetadataColumn `yaml:"metadata_columns,omitempty" json:"-"`
}

// FormatSpec describes the CSV layout. KeyColumn holds the SPIonic form.
type FormatSpec struct {
	Delimiter string `yaml:"delimiter,omitempty"`
	Encoding  string `yaml:"encoding,omitempty"`
	HasHeader bool   `yaml:"has_header"`
	KeyColumn string `yaml:"key_column,omitempty"`
	Fold      string `yaml:"fold,omitempty"`
}

// MetadataColumn maps a logical name to a CSV column.
type MetadataColumn struct {
	Name   string `yaml:"name"`
	Column string `yaml:"column"`
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", path)
	}
	if m.DataFile == "" {
		m.DataFile = "data.csv"
	}
	if m.Language == "" {
		m.Language = "grc"
	}
	return &m, nil
}

// WriteManifest writes m as YAML to dir/manifest.yaml.
func WriteManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "manifest.yaml"), data, 0o644)
}
