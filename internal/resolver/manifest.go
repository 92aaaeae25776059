// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ManifestExtension is the extension of the sidecar manifest that sits next
// to a unit and shares its base name.
const ManifestExtension = ".toml"

// maxManifestSize bounds manifest reads.
const maxManifestSize = 64 * 1024

// Manifest describes a unit's own dependencies.
//
//	requires = ["CommonModels", "NpgsqlShim"]
type Manifest struct {
	Requires []string `toml:"requires"`
}

// ManifestPath returns the manifest path for the unit at unitPath.
func ManifestPath(unitPath string) string {
	return strings.TrimSuffix(unitPath, filepath.Ext(unitPath)) + ManifestExtension
}

// ReadManifest reads the manifest that belongs to the unit at unitPath. A
// missing manifest yields an empty Manifest.
func ReadManifest(unitPath string) (Manifest, error) {
	path := ManifestPath(unitPath)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Manifest{}, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest %s: %w", path, err)
	}
	if len(data) > maxManifestSize {
		return Manifest{}, fmt.Errorf("manifest %s: file size %d bytes exceeds maximum %d bytes", path, len(data), maxManifestSize)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	requires := m.Requires[:0]
	for _, name := range m.Requires {
		if name = strings.TrimSpace(name); name != "" {
			requires = append(requires, name)
		}
	}
	m.Requires = requires
	return m, nil
}
