package assets

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/kikiluvv/mlggen/pkg/util"
)

// ErrMissing is returned when a named asset file cannot be found on disk.
var ErrMissing = errors.New("missing asset")

// Well-known asset names consumed by the overlay and audio-sting effects.
const (
	Airhorn     = "airhorn"
	Hitmarker   = "hitmarker"
	Doritos     = "doritos"
	LensFlare   = "lensflare"
	MountainDew = "mtndew"
)

// defaultFiles maps asset names to their default file names inside the
// assets directory.
var defaultFiles = map[string]string{
	Airhorn:     "airhorn.mp3",
	Hitmarker:   "hitmarker.mp3",
	Doritos:     "doritos.png",
	LensFlare:   "lensflare.png",
	MountainDew: "mtndew.mp3",
}

// Registry resolves named overlay/audio assets against a fixed directory.
type Registry struct {
	dir   string
	files map[string]string
}

// NewRegistry creates a registry rooted at dir. Entries in overrides
// replace the default file for that name; override paths may be absolute
// or relative to dir.
func NewRegistry(dir string, overrides map[string]string) *Registry {
	files := make(map[string]string, len(defaultFiles))
	for name, file := range defaultFiles {
		files[name] = file
	}
	for name, file := range overrides {
		files[name] = file
	}

	return &Registry{dir: dir, files: files}
}

// Register adds or replaces an asset mapping
func (r *Registry) Register(name, file string) {
	r.files[name] = file
}

// Path returns the absolute path for a named asset without checking that
// the file exists.
func (r *Registry) Path(name string) (string, error) {
	file, ok := r.files[name]
	if !ok {
		return "", fmt.Errorf("%w: unknown asset %q", ErrMissing, name)
	}
	if filepath.IsAbs(file) {
		return file, nil
	}
	abs, err := filepath.Abs(filepath.Join(r.dir, file))
	if err != nil {
		return "", err
	}
	return abs, nil
}

// Resolve returns the absolute path for a named asset, failing with
// ErrMissing when the file is absent.
func (r *Registry) Resolve(name string) (string, error) {
	path, err := r.Path(name)
	if err != nil {
		return "", err
	}
	if !util.FileExists(path) {
		return "", fmt.Errorf("%w: %s (%s)", ErrMissing, name, path)
	}
	return path, nil
}

// Has reports whether a named asset resolves to an existing file
func (r *Registry) Has(name string) bool {
	_, err := r.Resolve(name)
	return err == nil
}

// Names returns all registered asset names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.files))
	for name := range r.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Missing returns the names of registered assets whose files are absent
func (r *Registry) Missing() []string {
	var missing []string
	for _, name := range r.Names() {
		if !r.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
