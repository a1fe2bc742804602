package wavio

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile encodes channels to a temporary file next to path and renames
// it into place once complete, so path never holds a partial file.
func WriteFile(path string, sampleRate int, channels [][]int32, blockSize int) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = Encode(tmp, sampleRate, channels, blockSize); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmpName, path); err != nil {
		return err
	}
	return nil
}
