// Package undo implements the Undo Log (§4.F): a bounded FIFO of
// reversible operation records.
//
// Grounded on original_source/crates/gravityfile-ops/src/undo.rs,
// translated from a VecDeque to a Go slice-backed ring.
package undo

import "time"

// MovePair is one (old path, new path) pair for a moved item.
type MovePair struct {
	OldPath string
	NewPath string
}

// TrashPair is one (original path, trash path) pair for a deleted item
// that was routed through trash.
type TrashPair struct {
	OriginalPath string
	TrashPath    string
}

// Kind tags which shape of UndoableOperation an Entry carries.
type Kind uint8

const (
	KindFilesMoved Kind = iota
	KindFilesCopied
	KindFilesDeleted
	KindFileRenamed
	KindFileCreated
	KindDirectoryCreated
)

// Operation is the tagged-variant record of what to reverse.
// Only the fields relevant to Kind are populated.
type Operation struct {
	Kind Kind

	Moves   []MovePair  // KindFilesMoved
	Created []string    // KindFilesCopied: created destination paths
	Trash   []TrashPair // KindFilesDeleted: empty means permanent delete

	Path    string // KindFileRenamed / KindFileCreated / KindDirectoryCreated
	OldName string // KindFileRenamed
	NewName string // KindFileRenamed
}

// CanUndo reports whether this operation can be reversed. False only
// for a permanent deletion (no trash pairs recorded).
func (op Operation) CanUndo() bool {
	if op.Kind == KindFilesDeleted {
		return len(op.Trash) > 0
	}
	return true
}

// Entry is one record in the log.
type Entry struct {
	ID          uint64
	Timestamp   time.Time
	Operation   Operation
	Description string
}

// Log is a bounded FIFO of undo entries. Oldest entries are evicted on
// insertion once full; Pop returns the most recent entry whose
// operation CanUndo, skipping over ones that can't (permanent
// deletions).
type Log struct {
	entries []Entry
	max     int
	nextID  uint64
}

// NewLog constructs a Log with the given maximum entry count, capped
// at 1000 (matching original_source/undo.rs's UndoLog::new).
func NewLog(maxEntries int) *Log {
	if maxEntries > 1000 {
		maxEntries = 1000
	}
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Log{max: maxEntries}
}

// Record appends op to the log, evicting the oldest entry first if at
// capacity, and returns the new entry's id.
func (l *Log) Record(op Operation, description string) uint64 {
	id := l.nextID
	l.nextID++

	if len(l.entries) >= l.max {
		l.entries = l.entries[1:]
	}
	l.entries = append(l.entries, Entry{ID: id, Timestamp: time.Now(), Operation: op, Description: description})
	return id
}

// Pop removes and returns the most recent undoable entry, or false if
// the log is empty or every remaining entry is permanent (not
// undoable). Non-undoable entries encountered along the way are
// removed too — they can never become undoable later.
func (l *Log) Pop() (Entry, bool) {
	for len(l.entries) > 0 {
		last := l.entries[len(l.entries)-1]
		l.entries = l.entries[:len(l.entries)-1]
		if last.Operation.CanUndo() {
			return last, true
		}
	}
	return Entry{}, false
}

// Peek returns the most recent entry without removing it.
func (l *Log) Peek() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

func (l *Log) Len() int      { return len(l.entries) }
func (l *Log) IsEmpty() bool { return len(l.entries) == 0 }
func (l *Log) Clear()        { l.entries = nil }

// Iter returns all entries, oldest first.
func (l *Log) Iter() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
