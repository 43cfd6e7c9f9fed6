// Command tabisim minimizes a directory of ranked trees under backward
// bisimulation and writes the resulting block assignment to a file. With
// -synthetic it minimizes a randomly generated forest instead, for smoke
// testing without a prepared input directory.
//
// Grounded in aretext/aretext's main.go for flag-driven entry-point shape
// and in its file/save_unix.go for atomic result writes via
// github.com/google/renameio/v2.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/google/renameio/v2"

	"github.com/arborist-go/tabisim/automaton"
	"github.com/arborist-go/tabisim/builder"
	"github.com/arborist-go/tabisim/config"
	"github.com/arborist-go/tabisim/parser"
	"github.com/arborist-go/tabisim/partition"
	"github.com/arborist-go/tabisim/refine"
	"github.com/arborist-go/tabisim/tree"
)

// syntheticTrees and syntheticNodes size the forest generated by -synthetic.
// Fixed rather than flag-controlled: -synthetic is meant as a quick smoke
// run, not a benchmark harness.
const (
	syntheticTrees = 8
	syntheticNodes = 12
)

var (
	configPath  = flag.String("config", "tabisim.yaml", "path to the YAML run configuration")
	dirOverride = flag.String("dir", "", "override the config file's input_dir")
	outOverride = flag.String("out", "", "override the config file's output_path")
	synthetic   = flag.Bool("synthetic", false, "ignore the input directory and minimize a randomly generated forest instead")
	seed        = flag.Int64("seed", 1, "PRNG seed for -synthetic tree generation")
	trace       = flag.Bool("trace", false, "print per-iteration partition sizes to stderr, overriding the config file's trace setting")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		exitWithError(err)
	}
	if *dirOverride != "" {
		cfg.InputDir = *dirOverride
	}
	if *outOverride != "" {
		cfg.OutputPath = *outOverride
	}

	var trees map[string]*tree.Node
	if *synthetic {
		trees = syntheticForest(*seed)
	} else {
		trees, err = parser.ParseDir(cfg.InputDir)
		if err != nil {
			exitWithError(err)
		}
	}

	names := make([]string, 0, len(trees))
	for name := range trees {
		names = append(names, name)
	}
	sort.Strings(names)

	a := automaton.New()
	rootOf := ingest(a, trees, names)

	tracing := cfg.Trace || *trace
	opts := refine.Options{AcceptingStates: cfg.AcceptingStates}
	if tracing {
		opts.OnIteration = func(i int, p, r *partition.Partition) {
			log.Printf("iteration %d: |P|=%d |R|=%d", i, p.NumBlocks(), r.NumBlocks())
		}
	}

	p := refine.Minimize(a, opts)

	if err := writeResult(cfg.OutputPath, a, p, names, rootOf); err != nil {
		exitWithError(err)
	}
}

// syntheticForest generates a named forest for -synthetic mode, keyed the
// same way parser.ParseDir keys a directory's files so the rest of main
// treats both sources identically.
func syntheticForest(seed int64) map[string]*tree.Node {
	forest := builder.RandomForest(syntheticTrees, syntheticNodes, builder.WithSeed(seed))
	trees := make(map[string]*tree.Node, len(forest))
	for i, root := range forest {
		trees[fmt.Sprintf("synthetic-%03d", i)] = root
	}
	return trees
}

// ingest adds every named tree to a, one goroutine per GOMAXPROCS, to
// exercise automaton.Automaton's muBuild-guarded concurrent AddTree: trees
// are already parsed, so only the state/transition bookkeeping contends.
func ingest(a *automaton.Automaton, trees map[string]*tree.Node, names []string) map[string]int {
	jobs := make(chan string)
	rootOf := make(map[string]int, len(names))
	var mu sync.Mutex

	workers := runtime.GOMAXPROCS(0)
	if workers > len(names) {
		workers = len(names)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				root := a.AddTree(trees[name])
				mu.Lock()
				rootOf[name] = root
				mu.Unlock()
			}
		}()
	}

	for _, name := range names {
		jobs <- name
	}
	close(jobs)
	wg.Wait()

	return rootOf
}

func writeResult(path string, a *automaton.Automaton, p *partition.Partition, names []string, rootOf map[string]int) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "blocks: %d\n", p.NumBlocks())
	for b := 0; b < p.NumBlocks(); b++ {
		fmt.Fprintf(&buf, "block %d: %v\n", b, p.StatesOf(b))
	}
	for _, name := range names {
		fmt.Fprintf(&buf, "%s: block %d\n", name, p.BlockOf(rootOf[name]))
	}

	pf, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644), renameio.WithExistingPermissions())
	if err != nil {
		return fmt.Errorf("renameio.NewPendingFile: %w", err)
	}
	defer pf.Cleanup()

	if _, err := buf.WriteTo(pf); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	if err := pf.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("renameio.CloseAtomicallyReplace: %w", err)
	}

	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "tabisim: minimize a directory of ranked trees under backward bisimulation\n\n")
	flag.PrintDefaults()
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "tabisim: %v\n", err)
	os.Exit(1)
}
