// Package ops implements the Operation Engine (§4.E): asynchronous
// filesystem-modifying operations (copy, move, rename, create, delete)
// that stream Progress and Conflict messages to the caller and finish
// with exactly one Complete message.
//
// Grounded on original_source/crates/gravityfile-ops (executor.rs,
// copy.rs, move_op.rs, create.rs), translated from tokio mpsc channels
// to Go channels and goroutines. Unlike the reference implementation,
// conflicts here genuinely pause the operation: a Conflict carries a
// response channel, and the goroutine blocks on it until the Session
// Core supplies a Resolution (§4.E "Pre-flight conflict check"; see
// DESIGN.md).
package ops

import (
	"path/filepath"
	"strconv"
	"strings"
)

// channelSize bounds the Message channel returned by every operation,
// matching the reference's OPERATION_CHANNEL_SIZE.
const channelSize = 32

// Kind identifies which filesystem operation produced a Message.
type Kind uint8

const (
	KindCopy Kind = iota
	KindMove
	KindRename
	KindCreateFile
	KindCreateDirectory
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindCopy:
		return "copy"
	case KindMove:
		return "move"
	case KindRename:
		return "rename"
	case KindCreateFile:
		return "create file"
	case KindCreateDirectory:
		return "create directory"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Error pairs a path with what went wrong operating on it.
type Error struct {
	Path    string
	Message string
}

// Message is the tagged union streamed from every operation: Progress
// (zero or more), Conflict (zero or more, each blocking), and exactly
// one Complete.
type Message interface{ isMessage() }

// Progress reports one unit of work completed or failed.
type Progress struct {
	Kind           Kind
	FilesTotal     int
	FilesCompleted int
	BytesTotal     uint64
	BytesProcessed uint64
	CurrentFile    string
	Errors         []Error
}

func (Progress) isMessage() {}

func (p *Progress) completeFile(bytes uint64) {
	p.FilesCompleted++
	p.BytesProcessed += bytes
}

func (p *Progress) addError(path, msg string) {
	p.Errors = append(p.Errors, Error{Path: path, Message: msg})
}

func (p Progress) clone() Progress {
	out := p
	out.Errors = append([]Error(nil), p.Errors...)
	return out
}

// Complete is the terminal message for every operation.
type Complete struct {
	Kind           Kind
	Succeeded      int
	Failed         int
	BytesProcessed uint64
	Errors         []Error
}

func (Complete) isMessage() {}

// ConflictKind enumerates the ways a destination path can collide with
// a pending operation (§4.E "Conflict taxonomy").
type ConflictKind uint8

const (
	ConflictFileExists ConflictKind = iota
	ConflictDirectoryExists
	ConflictSameFile
	ConflictSourceIsAncestor
	ConflictPermissionDenied
)

func (k ConflictKind) String() string {
	switch k {
	case ConflictFileExists:
		return "file exists"
	case ConflictDirectoryExists:
		return "directory exists"
	case ConflictSameFile:
		return "same file"
	case ConflictSourceIsAncestor:
		return "source is ancestor of destination"
	case ConflictPermissionDenied:
		return "permission denied"
	default:
		return "unknown"
	}
}

// Resolution is one member of the resolution alphabet a caller can
// supply in answer to a Conflict.
type Resolution uint8

const (
	ResolveSkip Resolution = iota
	ResolveSkipAll
	ResolveOverwrite
	ResolveOverwriteAll
	ResolveAutoRename
	ResolveAbort
)

// ValidForKind reports whether r is a legal answer to a conflict of
// kind k. SameFile accepts only Skip/AutoRename; SourceIsAncestor
// accepts only Abort (§4.E "Resolution alphabet").
func (r Resolution) ValidForKind(k ConflictKind) bool {
	switch k {
	case ConflictSameFile:
		return r == ResolveSkip || r == ResolveAutoRename
	case ConflictSourceIsAncestor:
		return r == ResolveAbort
	default:
		return true
	}
}

// Conflict is sent when a destination path collides with a pending
// operation. The operation goroutine blocks on Respond until exactly
// one Resolution is sent.
type Conflict struct {
	Kind        Kind
	Source      string
	Destination string
	ConflictOf  ConflictKind
	Respond     chan<- Resolution
}

func (Conflict) isMessage() {}

// autoRenamePath implements the auto-rename rule (§4.E): the first
// path formed by inserting " (i)" before the last extension (or
// appending it if there is none) that does not already exist.
func autoRenamePath(path string, exists func(string) bool) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, stem+" ("+strconv.Itoa(i)+")"+ext)
		if !exists(candidate) {
			return candidate
		}
	}
}

// validateName checks a proposed file or directory name against the
// rename/create rules (§4.E "Name validation").
func validateName(name string) error {
	switch {
	case name == "":
		return errInvalidName("name must not be empty")
	case len(name) > 255:
		return errInvalidName("name must be 255 characters or fewer")
	case strings.ContainsRune(name, '/'):
		return errInvalidName("name must not contain '/'")
	case strings.ContainsRune(name, 0):
		return errInvalidName("name must not contain a NUL byte")
	case name == "." || name == "..":
		return errInvalidName("name must not be '.' or '..'")
	case strings.TrimSpace(name) != name:
		return errInvalidName("name must not have leading or trailing whitespace")
	case strings.HasSuffix(name, "."):
		return errInvalidName("name must not end with a '.'")
	default:
		return nil
	}
}

type invalidNameError string

func (e invalidNameError) Error() string { return string(e) }

func errInvalidName(msg string) error { return invalidNameError(msg) }
