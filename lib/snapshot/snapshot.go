// Package snapshot loads the inventory snapshot that the dashboard reconciles.
//
// The snapshot is split across three files in the configuration directory:
// the docker data written by the collector, the capability to container map
// and the worker roster. Files may be JSON or YAML.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/ghodss/yaml"

	"github.com/submitty/dockerdash/lib/inventory"
	"github.com/submitty/dockerdash/lib/logger"
)

var (
	// ErrDecode is returned when a snapshot file exists but cannot be decoded
	ErrDecode = errors.New("decode snapshot file")

	// ErrInvalidPath is returned when a file name escapes the configuration directory
	ErrInvalidPath = errors.New("invalid snapshot path")
)

// Source produces inventory snapshots.
type Source interface {
	Load(ctx context.Context) (*inventory.Snapshot, error)
}

// DockerData is the collector's output file.
type DockerData struct {
	Images []inventory.RawImage `json:"docker_images"`
	Info   map[string]any       `json:"docker_info,omitempty"`
}

// FileSource reads the snapshot from files under Dir. Logger, when set,
// takes precedence over the logger carried by the request context.
type FileSource struct {
	Dir            string
	DockerDataFile string
	ContainersFile string
	WorkersFile    string
	Logger         *slog.Logger
}

var _ Source = (*FileSource)(nil)

// NewFileSource creates a FileSource for the given directory and file names.
func NewFileSource(dir, dockerDataFile, containersFile, workersFile string) *FileSource {
	return &FileSource{
		Dir:            dir,
		DockerDataFile: dockerDataFile,
		ContainersFile: containersFile,
		WorkersFile:    workersFile,
	}
}

// Load reads every snapshot file. A missing file leaves its section nil so
// that reconciliation reports the snapshot as incomplete.
func (s *FileSource) Load(ctx context.Context) (*inventory.Snapshot, error) {
	snap := &inventory.Snapshot{}

	var data *DockerData
	if err := s.read(ctx, s.DockerDataFile, &data); err != nil {
		return nil, err
	}
	if data != nil {
		snap.Images = data.Images
		snap.DockerInfo = data.Info
	}

	if err := s.read(ctx, s.ContainersFile, &snap.Containers); err != nil {
		return nil, err
	}
	if err := s.read(ctx, s.WorkersFile, &snap.Workers); err != nil {
		return nil, err
	}

	return snap, nil
}

// read decodes name into v; a missing file leaves v untouched.
func (s *FileSource) read(ctx context.Context, name string, v any) error {
	log := s.Logger
	if log == nil {
		log = logger.FromContext(ctx)
	}

	path, err := securejoin.SecureJoin(s.Dir, name)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPath, name, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WarnContext(ctx, "snapshot file missing", "path", path)
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}

	log.DebugContext(ctx, "loaded snapshot file", "path", path, "bytes", len(raw))
	return nil
}
