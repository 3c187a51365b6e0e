// Package duplicate implements the Duplicate Engine (§4.C): a
// three-phase size-group → partial-hash → full-hash pipeline over a
// scanned Tree, producing duplicate groups ranked by wasted space.
//
// Grounded on original_source/crates/gravityfile-analyze/src/duplicates.rs.
package duplicate

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/gravityfile/gravityfile/internal/model"
)

// Config holds the Duplicate Engine's tunables (§4.C "Configuration").
type Config struct {
	MinSize        uint64
	MaxSize        uint64 // 0 = unbounded
	QuickCompare   bool
	PartialHeadLen int
	PartialTailLen int
	ExcludeSubstrings []string
	MaxGroups      int // 0 = unlimited
}

// DefaultConfig mirrors the defaults the Rust reference declares:
// 1 KiB minimum, quick compare on, 4 KiB head/tail.
func DefaultConfig() Config {
	return Config{
		MinSize:        1024,
		MaxSize:        0,
		QuickCompare:   true,
		PartialHeadLen: 4096,
		PartialTailLen: 4096,
	}
}

// Group is one set of files sharing identical content.
type Group struct {
	Hash        model.ContentHash
	Size        uint64
	Paths       []string
	WastedBytes uint64
}

// Report is the Duplicate Engine's output (§4.C "Output").
type Report struct {
	Groups               []Group
	TotalDuplicateSize    uint64
	TotalWastedSpace      uint64
	FilesAnalyzed         int
	FilesWithDuplicates   int
	GroupCount            int
}

type candidate struct {
	path string
	size uint64
	node *model.Node
}

// Find runs the three-phase algorithm over tree and returns a Report.
// Per-file I/O errors during hashing drop that file from consideration
// without aborting (§4.C "Failure semantics").
func Find(tree *model.Tree, cfg Config) *Report {
	candidates := collect(tree, cfg)

	bySize := groupBySize(candidates)

	var groups []Group
	filesAnalyzed := len(candidates)

	for _, group := range bySize {
		if len(group) < 2 {
			continue
		}
		if cfg.QuickCompare {
			for _, fpGroup := range groupByFingerprint(group, cfg) {
				if len(fpGroup) < 2 {
					continue
				}
				groups = append(groups, groupByFullHash(fpGroup)...)
			}
		} else {
			groups = append(groups, groupByFullHash(group)...)
		}
	}

	report := &Report{FilesAnalyzed: filesAnalyzed}
	filesWithDup := 0
	for i := range groups {
		g := &groups[i]
		g.WastedBytes = g.Size * uint64(len(g.Paths)-1)
		report.TotalDuplicateSize += g.Size * uint64(len(g.Paths))
		report.TotalWastedSpace += g.WastedBytes
		filesWithDup += len(g.Paths)
	}
	report.FilesWithDuplicates = filesWithDup

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].WastedBytes != groups[j].WastedBytes {
			return groups[i].WastedBytes > groups[j].WastedBytes
		}
		// Deterministic tiebreak: lowest first path, lexical.
		return groups[i].Paths[0] < groups[j].Paths[0]
	})
	if cfg.MaxGroups > 0 && len(groups) > cfg.MaxGroups {
		groups = groups[:cfg.MaxGroups]
	}
	report.Groups = groups
	report.GroupCount = len(groups)
	return report
}

// collect walks the tree gathering files passing size bounds and
// exclusion filters (matched against name and full path).
func collect(tree *model.Tree, cfg Config) []candidate {
	var out []candidate
	var walk func(n *model.Node, path string)
	walk = func(n *model.Node, path string) {
		if n.IsDir() {
			for _, c := range n.Children {
				walk(c, filepath.Join(path, c.Name))
			}
			return
		}
		if !n.IsFile() {
			return
		}
		if n.Size < cfg.MinSize {
			return
		}
		if cfg.MaxSize > 0 && n.Size > cfg.MaxSize {
			return
		}
		for _, ex := range cfg.ExcludeSubstrings {
			if strings.Contains(n.Name, ex) || strings.Contains(path, ex) {
				return
			}
		}
		out = append(out, candidate{path: path, size: n.Size, node: n})
	}
	walk(tree.Root, tree.RootPath)
	return out
}

// groupBySize is phase 1: O(n), no I/O.
func groupBySize(candidates []candidate) map[uint64][]candidate {
	bySize := make(map[uint64][]candidate)
	for _, c := range candidates {
		bySize[c.size] = append(bySize[c.size], c)
	}
	return bySize
}

// fingerprint computes H(head || tail || size_le) per §4.C phase 2.
// The tail region begins at max(headLen, size-tailLen) and is empty
// when the file is at or below headLen.
func fingerprint(path string, size uint64, headLen, tailLen int) (model.ContentHash, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.ContentHash{}, err
	}
	defer f.Close()

	head := make([]byte, headLen)
	n, err := f.ReadAt(head, 0)
	if err != nil && n == 0 && size > 0 {
		return model.ContentHash{}, err
	}
	head = head[:n]

	var tail []byte
	tailStart := uint64(headLen)
	if size > tailStart {
		if start := size - uint64(tailLen); start > tailStart {
			tailStart = start
		}
		tailLenActual := size - tailStart
		tail = make([]byte, tailLenActual)
		tn, terr := f.ReadAt(tail, int64(tailStart))
		if terr != nil && tn == 0 {
			return model.ContentHash{}, terr
		}
		tail = tail[:tn]
	}

	buf := make([]byte, 0, len(head)+len(tail)+8)
	buf = append(buf, head...)
	buf = append(buf, tail...)
	var sizeBuf [8]byte
	binary.LittleEndian.PutUint64(sizeBuf[:], size)
	buf = append(buf, sizeBuf[:]...)

	return blake3.Sum256(buf), nil
}

// groupByFingerprint is phase 2: parallel over the candidates of one
// size group.
func groupByFingerprint(group []candidate, cfg Config) [][]candidate {
	type result struct {
		c   candidate
		fp  model.ContentHash
		err error
	}
	results := make([]result, len(group))
	var wg sync.WaitGroup
	for i, c := range group {
		wg.Add(1)
		go func(i int, c candidate) {
			defer wg.Done()
			fp, err := fingerprint(c.path, c.size, cfg.PartialHeadLen, cfg.PartialTailLen)
			results[i] = result{c: c, fp: fp, err: err}
		}(i, c)
	}
	wg.Wait()

	byFP := make(map[model.ContentHash][]candidate)
	for _, r := range results {
		if r.err != nil {
			continue // dropped: per-file I/O errors never abort the report
		}
		byFP[r.fp] = append(byFP[r.fp], r.c)
	}
	out := make([][]candidate, 0, len(byFP))
	for _, g := range byFP {
		out = append(out, g)
	}
	return out
}

// fullHash computes the cryptographic content hash of the whole file,
// using mmap above mmapThreshold and a buffered reader otherwise
// (§4.C "SHOULD use memory-mapped I/O for files above a threshold").
const mmapThreshold = 128 * 1024

func fullHash(path string, size uint64) (model.ContentHash, error) {
	if size > mmapThreshold {
		if sum, err := fullHashMmap(path, size); err == nil {
			return sum, nil
		}
		// Fall through to buffered read if mmap failed for any reason
		// (e.g. unsupported filesystem).
	}
	return fullHashBuffered(path)
}

func fullHashBuffered(path string) (model.ContentHash, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.ContentHash{}, err
	}
	defer f.Close()

	h := blake3.New()
	buf := make([]byte, 64*1024)
	for {
		n, rerr := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return model.ContentHash{}, rerr
		}
	}
	var out model.ContentHash
	copy(out[:], h.Sum(nil))
	return out, nil
}

// groupByFullHash is phase 3: parallel over a fingerprint group.
func groupByFullHash(group []candidate) []Group {
	type result struct {
		c    candidate
		hash model.ContentHash
		err  error
	}
	results := make([]result, len(group))
	var wg sync.WaitGroup
	for i, c := range group {
		wg.Add(1)
		go func(i int, c candidate) {
			defer wg.Done()
			hash, err := fullHash(c.path, c.size)
			results[i] = result{c: c, hash: hash, err: err}
		}(i, c)
	}
	wg.Wait()

	byHash := make(map[model.ContentHash][]candidate)
	for _, r := range results {
		if r.err != nil {
			continue
		}
		byHash[r.hash] = append(byHash[r.hash], r.c)
	}

	var out []Group
	for hash, g := range byHash {
		if len(g) < 2 {
			continue
		}
		paths := make([]string, len(g))
		for i, c := range g {
			paths[i] = c.path
			c.node.HasContentHash = true
			c.node.ContentHash = hash
		}
		sort.Strings(paths)
		out = append(out, Group{Hash: hash, Size: g[0].size, Paths: paths})
	}
	return out
}
