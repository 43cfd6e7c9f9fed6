// Package parser reads the tab-indented tree-file format consumed by
// automaton.Automaton.AddTree: one line per node, depth given by a prefix
// of tabs, label the remainder of the line, first line always at depth 0.
//
// Grounded in manuelibar-tree-shaker's internal/tree stack-based builder
// for the Go idiom, and in original_source/bisim.cpp's main() ingestion
// loop for the exact indentation-stack parsing semantics — reproduced here
// with explicit error returns in place of the original's unchecked
// std::stack::top() calls.
package parser

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/arborist-go/tabisim/tree"
	"github.com/pkg/errors"
)

// ErrMalformedTree is returned for indentation that cannot describe a
// tree: a line whose depth exceeds its parent's by more than one, or an
// input with no depth-0 line.
var ErrMalformedTree = errors.New("parser: malformed tree")

// ErrMultipleRoots is returned when a file contains more than one
// depth-0 line; each file holds exactly one tree.
var ErrMultipleRoots = errors.New("parser: multiple depth-0 roots in one file")

type stackEntry struct {
	depth int
	node  *tree.Node
}

// ParseFile reads one tree from r. Blank lines are ignored.
func ParseFile(r io.Reader) (*tree.Node, error) {
	scanner := bufio.NewScanner(r)

	var stack []stackEntry
	var root *tree.Node
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		depth := 0
		for depth < len(line) && line[depth] == '\t' {
			depth++
		}
		label := line[depth:]

		if depth == 0 {
			if root != nil {
				return nil, errors.Wrapf(ErrMultipleRoots, "line %d", lineNo)
			}
			root = tree.New(label)
			stack = []stackEntry{{depth: 0, node: root}}
			continue
		}

		if root == nil {
			return nil, errors.Wrapf(ErrMalformedTree, "line %d: no depth-0 root line seen yet", lineNo)
		}

		top := stack[len(stack)-1]
		if depth > top.depth+1 {
			return nil, errors.Wrapf(ErrMalformedTree,
				"line %d: depth %d exceeds parent depth %d by more than one", lineNo, depth, top.depth)
		}

		for stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}

		n := tree.New(label)
		stack[len(stack)-1].node.AddChild(n)
		stack = append(stack, stackEntry{depth: depth, node: n})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "parser: reading tree file")
	}
	if root == nil {
		return nil, errors.Wrap(ErrMalformedTree, "empty input: no depth-0 root line")
	}

	return root, nil
}

// ParseDir reads every regular file in dir as one tree-file, returning a
// map from file name to parsed root. Files are read in sorted name order
// but parsed by a bounded pool of worker goroutines (one per GOMAXPROCS,
// mirroring automaton.Automaton's muBuild discipline for concurrent
// ingestion): each worker opens and parses its assigned files independently
// and only takes the result mutex to record its output, so I/O and parsing
// for different files overlap. A failing file does not stop the workers:
// every file is still parsed, and if any of them failed ParseDir returns the
// first error recorded (with several failing files, which one depends on
// scheduling) and no results.
func ParseDir(dir string) (map[string]*tree.Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "parser: reading directory %q", dir)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	workers := runtime.GOMAXPROCS(0)
	if workers > len(names) {
		workers = len(names)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	out := make(map[string]*tree.Node, len(names))

	var mu sync.Mutex
	var firstErr error
	recordErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				root, err := parseDirEntry(dir, name)
				if err != nil {
					recordErr(err)
					continue
				}
				mu.Lock()
				out[name] = root
				mu.Unlock()
			}
		}()
	}

	for _, name := range names {
		jobs <- name
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	return out, nil
}

func parseDirEntry(dir, name string) (*tree.Node, error) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "parser: opening %q", name)
	}

	root, parseErr := ParseFile(f)
	closeErr := f.Close()
	if parseErr != nil {
		return nil, errors.Wrapf(parseErr, "parser: parsing %q", name)
	}
	if closeErr != nil {
		return nil, errors.Wrapf(closeErr, "parser: closing %q", name)
	}

	return root, nil
}
