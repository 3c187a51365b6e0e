package ops

import (
	"os"
	"path/filepath"
	"strings"
)

// detectConflict inspects a source/destination pair and reports the
// conflict that would occur, if any (§4.E "Conflict taxonomy"). ok is
// false when there is no conflict.
func detectConflict(source, destination string) (kind ConflictKind, ok bool) {
	if isAncestor(source, destination) {
		return ConflictSourceIsAncestor, true
	}

	destInfo, err := os.Lstat(destination)
	if err != nil {
		return 0, false
	}

	if srcInfo, err := os.Lstat(source); err == nil && os.SameFile(srcInfo, destInfo) {
		return ConflictSameFile, true
	}

	if destInfo.IsDir() {
		return ConflictDirectoryExists, true
	}
	return ConflictFileExists, true
}

// isAncestor reports whether destination lies at or within source,
// meaning an operation targeting destination would have to recurse
// into its own source (§4.E "SourceIsAncestor").
func isAncestor(source, destination string) bool {
	source = filepath.Clean(source)
	destination = filepath.Clean(destination)
	if source == destination {
		return true
	}
	prefix := source
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(destination, prefix)
}

// resolveConflict sends c on ch and blocks for the Session Core's
// answer. The caller is contractually required to answer with a
// Resolution valid for c.ConflictOf (Resolution.ValidForKind); an
// invalid answer is treated as Abort rather than risk acting on it.
func resolveConflict(ch chan<- Message, c Conflict) Resolution {
	respond := make(chan Resolution, 1)
	c.Respond = respond
	ch <- c
	r := <-respond
	if !r.ValidForKind(c.ConflictOf) {
		return ResolveAbort
	}
	return r
}
