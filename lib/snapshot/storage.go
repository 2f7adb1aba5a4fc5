package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// WriteDockerData writes the docker data file atomically using temp file + rename.
func WriteDockerData(dir, name string, data *DockerData) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	finalPath, err := securejoin.SecureJoin(dir, name)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidPath, name, err)
	}

	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal docker data: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(finalPath), filepath.Base(finalPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp docker data: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("write temp docker data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("close temp docker data: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("chmod temp docker data: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath) // cleanup
		return fmt.Errorf("rename docker data: %w", err)
	}

	return nil
}
