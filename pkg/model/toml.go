package model

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// TOMLLoader reads the native TOML robot manifest:
//
//	name = "arm"
//
//	[[links]]
//	name = "base"
//	translation = [0.0, 0.0, 0.1]
//
//	[links.joint]
//	name = "j0"
//	type = "rotational"
//	axis = [0.0, 1.0, 0.0]
//	limits = [-3.14, 3.14]
//
//	[[links]]
//	name = "upper"
//	parent = "base"
//	...
type TOMLLoader struct{}

// Supports reports whether the filename has a .toml extension.
func (l *TOMLLoader) Supports(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".toml")
}

// Load parses the manifest at path.
func (l *TOMLLoader) Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}
