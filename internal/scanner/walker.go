package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/pkg/errors"

	"github.com/gravityfile/gravityfile/internal/logging"
	"github.com/gravityfile/gravityfile/internal/model"
)

const progressEvery = 1000 // broadcast a Progress snapshot every N files, per §4.B

// Walker is the default Scanner implementation: a parallel directory
// walk over fastwalk, followed by a single depth-first tree-build pass
// over the entries it collected (§4.B "Algorithm").
type Walker struct {
	progressCh chan Progress

	mu       sync.Mutex
	entries  map[string]*model.Node // path -> node; dirs get Children attached in the build pass
	children map[string][]string    // parent path -> ordered child paths, insertion order from the walk
	warnings []model.Warning

	nodeID       atomic.Uint64
	filesScanned atomic.Uint64
	dirsScanned  atomic.Uint64
	bytesFound   atomic.Uint64
	errorCount   atomic.Uint64
}

// NewWalker constructs a Walker.
func NewWalker() *Walker {
	return &Walker{progressCh: make(chan Progress, 1)}
}

func (w *Walker) Progress() <-chan Progress { return w.progressCh }

func (w *Walker) allocID() uint64 { return w.nodeID.Add(1) }

func (w *Walker) recordWarning(kind model.WarningKind, path, msg string) {
	w.mu.Lock()
	w.warnings = append(w.warnings, model.Warning{Kind: kind, Path: path, Message: msg})
	w.mu.Unlock()
}

func (w *Walker) emitProgress(current string, start time.Time) {
	p := Progress{
		FilesScanned: w.filesScanned.Load(),
		DirsScanned:  w.dirsScanned.Load(),
		BytesFound:   w.bytesFound.Load(),
		CurrentPath:  current,
		ErrorCount:   w.errorCount.Load(),
		Elapsed:      time.Since(start),
	}
	select {
	case w.progressCh <- p:
	default:
		// Progress is best-effort (§4.B, §9 "Progress backpressure"):
		// drop the snapshot rather than block the walk.
	}
}

func matchesIgnore(name, fullPath string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(pat, fullPath); ok {
			return true
		}
	}
	return false
}

func inodeKey(dev, ino uint64) model.Inode { return model.Inode{Device: dev, Number: ino} }

func resolveSymlink(path string) (target string, broken bool) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", true
	}
	if _, err := os.Stat(path); err != nil {
		return target, true
	}
	return target, false
}

// Scan implements Scanner.
func (w *Walker) Scan(ctx context.Context, cfg Config) (*model.Tree, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errors.Wrap(err, "resolve scan root")
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(err, "root not found")
	}
	if !info.IsDir() {
		return nil, errors.New("root is not a directory")
	}

	rootDev, _ := rootDevice(root)

	w.entries = make(map[string]*model.Node)
	w.children = make(map[string][]string)
	w.warnings = nil

	var inodeTracker sync.Map // Inode -> claimed; only consulted when !ApparentSize
	start := time.Now()

	walkFn := func(path string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if cfg.MaxDepth > 0 && path != root {
			if rel, relErr := filepath.Rel(root, path); relErr == nil {
				depth := strings.Count(rel, string(filepath.Separator)) + 1
				if depth > cfg.MaxDepth {
					if d != nil && d.IsDir() {
						return fs.SkipDir
					}
					return nil
				}
			}
		}

		name := d.Name()
		if path != root && !cfg.IncludeHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path != root && matchesIgnore(name, path, cfg.IgnorePatterns) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if walkErr != nil {
			w.recordWarning(model.WarningReadError, path, walkErr.Error())
			w.errorCount.Add(1)
			return nil
		}

		fi, statErr := d.Info()
		if statErr != nil {
			w.recordWarning(model.WarningMetadataError, path, statErr.Error())
			w.errorCount.Add(1)
			return nil
		}

		dev, ino, nlink, blocks, executable, hasStat := statInfo(fi)
		if hasStat && path != root && !cfg.CrossFilesystems && dev != rootDev {
			w.recordWarning(model.WarningCrossFilesystem, path, "entry is on a different filesystem")
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		ts := model.Timestamps{Modified: fi.ModTime()}

		var node *model.Node
		switch {
		case d.Type()&fs.ModeSymlink != 0:
			target, broken := resolveSymlink(path)
			node = model.NewSymlinkNode(w.allocID(), name, target, broken, ts)
			if broken {
				w.recordWarning(model.WarningBrokenSymlink, path, "symlink target does not exist")
			}
		case fi.IsDir():
			node = model.NewDirectoryNode(w.allocID(), name, ts, nil)
			w.dirsScanned.Add(1)
		case fi.Mode().IsRegular():
			size := uint64(fi.Size())
			if hasStat && !cfg.ApparentSize && nlink > 1 {
				key := inodeKey(dev, ino)
				if _, claimed := inodeTracker.LoadOrStore(key, true); claimed {
					size = 0
				}
			}
			node = model.NewFileNode(w.allocID(), name, size, blocks, ts, executable)
			w.filesScanned.Add(1)
			w.bytesFound.Add(size)
		default:
			node = model.NewOtherNode(w.allocID(), name, ts)
			w.filesScanned.Add(1)
		}

		if hasStat {
			node.HasInode = true
			node.Inode = model.Inode{Device: dev, Number: ino}
		}

		w.mu.Lock()
		w.entries[path] = node
		if path != root {
			parent := filepath.Dir(path)
			w.children[parent] = append(w.children[parent], path)
		}
		w.mu.Unlock()

		if total := w.filesScanned.Load(); total%progressEvery == 0 {
			w.emitProgress(path, start)
		}

		return nil
	}

	conf := &fastwalk.Config{
		Follow:     cfg.FollowSymlinks,
		NumWorkers: cfg.Threads,
	}
	if err := fastwalk.Walk(conf, root, walkFn); err != nil {
		if ctx.Err() != nil {
			return nil, ErrCancelled
		}
		return nil, errors.Wrap(err, "scan failed")
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}

	rootNode, ok := w.entries[root]
	if !ok {
		return nil, errors.New("root entry not recorded")
	}
	w.attachChildren(rootNode, root)

	tree := model.NewTree(rootNode, root, model.ScanConfigSummary{
		Root:             root,
		MaxDepth:         cfg.MaxDepth,
		IncludeHidden:    cfg.IncludeHidden,
		FollowSymlinks:   cfg.FollowSymlinks,
		CrossFilesystems: cfg.CrossFilesystems,
		ApparentSize:     cfg.ApparentSize,
		IgnorePatterns:   cfg.IgnorePatterns,
		Threads:          cfg.Threads,
	})
	tree.Warnings = w.warnings
	tree.ScanDur = time.Since(start)
	tree.Stats = computeStats(rootNode)

	logging.Scanner.Printf("scan of %s complete: %d files, %d dirs, %d bytes, %d warnings",
		root, w.filesScanned.Load(), w.dirsScanned.Load(), w.bytesFound.Load(), len(w.warnings))

	return tree, nil
}

// attachChildren recursively splices the flat children map onto node,
// depth-first, and recomputes aggregates bottom-up as it unwinds —
// this is the "single tree-build pass" of §4.B.
func (w *Walker) attachChildren(node *model.Node, path string) {
	if !node.IsDir() {
		return
	}
	for _, childPath := range w.children[path] {
		child, ok := w.entries[childPath]
		if !ok {
			continue
		}
		w.attachChildren(child, childPath)
		node.Children = append(node.Children, child)
	}
	node.UpdateAggregates()
}

// computeStats walks the finished tree to build Tree.Stats: totals,
// max depth, and the top largest files.
func computeStats(root *model.Node) model.Stats {
	const topN = 20
	var stats model.Stats
	var largest []model.LargestFile

	var walk func(n *model.Node, path string, depth int)
	walk = func(n *model.Node, path string, depth int) {
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		switch {
		case n.IsDir():
			stats.TotalDirs++
			for _, c := range n.Children {
				walk(c, filepath.Join(path, c.Name), depth+1)
			}
		case n.IsFile():
			stats.TotalFiles++
			stats.TotalSize += n.Size
			largest = append(largest, model.LargestFile{Path: path, Size: n.Size})
		default:
			stats.TotalFiles++
		}
	}
	walk(root, root.Name, 0)

	sort.Slice(largest, func(i, j int) bool { return largest[i].Size > largest[j].Size })
	if len(largest) > topN {
		largest = largest[:topN]
	}
	stats.LargestFiles = largest
	return stats
}

// QuickList implements Scanner. It lists dir's immediate children with
// a single os.ReadDir call, no recursion, no progress, no warnings.
func (w *Walker) QuickList(dir string) (*model.Tree, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrap(err, "resolve path")
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errors.Wrap(err, "read directory")
	}

	var id atomic.Uint64
	alloc := func() uint64 { return id.Add(1) }

	children := make([]*model.Node, 0, len(entries))
	for _, e := range entries {
		fi, infoErr := e.Info()
		if infoErr != nil {
			continue
		}
		ts := model.Timestamps{Modified: fi.ModTime()}
		dev, ino, _, blocks, executable, hasStat := statInfo(fi)

		var n *model.Node
		switch {
		case e.Type()&fs.ModeSymlink != 0:
			target, broken := resolveSymlink(filepath.Join(abs, e.Name()))
			n = model.NewSymlinkNode(alloc(), e.Name(), target, broken, ts)
		case e.IsDir():
			// Placeholder subtree: size 0, no children, per §4.B
			// "Quick list".
			n = model.NewDirectoryNode(alloc(), e.Name(), ts, nil)
		case fi.Mode().IsRegular():
			n = model.NewFileNode(alloc(), e.Name(), uint64(fi.Size()), blocks, ts, executable)
		default:
			n = model.NewOtherNode(alloc(), e.Name(), ts)
		}
		if hasStat {
			n.HasInode = true
			n.Inode = model.Inode{Device: dev, Number: ino}
		}
		children = append(children, n)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(err, "stat directory")
	}
	root := model.NewDirectoryNode(0, filepath.Base(abs), model.Timestamps{Modified: info.ModTime()}, children)
	tree := model.NewTree(root, abs, model.ScanConfigSummary{Root: abs})
	return tree, nil
}

var _ Scanner = (*Walker)(nil)
