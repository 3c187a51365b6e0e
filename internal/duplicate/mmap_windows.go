//go:build windows

package duplicate

import "github.com/gravityfile/gravityfile/internal/model"

// fullHashMmap has no portable mmap path on Windows in this
// repository's dependency set; fullHash always falls back to the
// buffered reader there.
func fullHashMmap(path string, size uint64) (model.ContentHash, error) {
	return fullHashBuffered(path)
}
