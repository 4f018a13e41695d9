// Package model loads robot descriptions into live link trees.
//
// Two description formats are supported: the native TOML manifest
// ([TOMLLoader]) and a URDF subset ([URDFLoader]). Both produce a
// [Document], the canonical serializable form a mechanism is stored and
// transported in; [Document.ToTree] builds the live [robot.LinkTree].
//
// [Load] picks a loader by filename:
//
//	tree, err := model.Load("testdata/arm.toml")
package model

import (
	"fmt"
	"path/filepath"

	"github.com/kinetree/kinetree/pkg/robot"
)

// Loader reads a robot description file into a [Document].
type Loader interface {
	// Supports reports whether this loader handles the given filename.
	Supports(filename string) bool
	// Load reads and parses the file at path.
	Load(path string) (Document, error)
}

// Loaders returns the built-in loaders in detection order.
func Loaders() []Loader {
	return []Loader{&TOMLLoader{}, &URDFLoader{}}
}

// Detect finds a loader that supports the given file path.
func Detect(path string, loaders ...Loader) (Loader, error) {
	if len(loaders) == 0 {
		loaders = Loaders()
	}
	name := filepath.Base(path)
	for _, l := range loaders {
		if l.Supports(name) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("unsupported model format: %s", name)
}

// LoadDocument parses the description at path with the first matching
// built-in loader.
func LoadDocument(path string) (Document, error) {
	l, err := Detect(path)
	if err != nil {
		return Document{}, err
	}
	return l.Load(path)
}

// Load parses the description at path and builds the live link tree.
func Load(path string) (*robot.LinkTree, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.ToTree()
}
