package checksum

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// File returns the xxhash digest of a file's full contents as lowercase hex.
func File(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("checksum: open %s: %w", path, err)
	}
	defer file.Close()

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("checksum: read %s: %w", path, err)
	}
	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

// Bytes returns the xxhash digest of a byte slice as lowercase hex.
func Bytes(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Records returns the xxhash digest of an ordered record list. Records are
// joined with a separator so reordering changes the digest.
func Records(records []string) string {
	hasher := xxhash.New()
	_, _ = hasher.WriteString(strings.Join(records, ";"))
	return fmt.Sprintf("%016x", hasher.Sum64())
}
