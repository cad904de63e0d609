package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/ruizrica/drift-sub012/internal/types"
)

// hashResult carries both hashes for one file: the fast xxhash digest,
// which the walker computes but does not read (the snapshot diff compares
// SHA-256 hashes), and the canonical SHA-256 used for FileID and the diff.
type hashResult struct {
	Fast      uint64
	Canonical string
	ShortID   types.FileID
}

// hashFile computes both digests in a single pass over the file.
func hashFile(path string) (hashResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return hashResult{}, err
	}
	defer f.Close()

	sha := sha256.New()
	fast := xxhash.New()
	if _, err := io.Copy(io.MultiWriter(sha, fast), f); err != nil {
		return hashResult{}, err
	}

	canonical := hex.EncodeToString(sha.Sum(nil))
	return hashResult{
		Fast:      fast.Sum64(),
		Canonical: canonical,
		ShortID:   types.FileID(canonical[:12]),
	}, nil
}
