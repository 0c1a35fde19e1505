package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/qmuntal/gltf"

	"portfolio3d/internal/engine"
)

// Result is the single value produced by LoadAsync.
type Result struct {
	Path string
	Root *engine.Node
	Err  error
}

// Load parses a .glb or .gltf file into a node hierarchy. It touches no GPU
// state, so it is safe to call off the main thread.
func Load(path string) (*engine.Node, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %w", ErrNotFound, err)}
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	doc, err := gltf.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %w", ErrInvalidAsset, err)}
	}

	root, err := BuildHierarchy(doc, filepath.Dir(path))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return root, nil
}

// LoadAsync runs Load on its own goroutine. The returned channel receives
// exactly one Result and is never closed.
func LoadAsync(path string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		start := time.Now()
		res := Result{Path: path}
		defer func() {
			if r := recover(); r != nil {
				res.Root = nil
				res.Err = &LoadError{Path: path, Err: invalidf("parser panic: %v", r)}
			}
			slog.Debug("asset load finished", "path", path, "elapsed", time.Since(start), "ok", res.Err == nil)
			ch <- res
		}()
		res.Root, res.Err = Load(path)
	}()
	return ch
}
