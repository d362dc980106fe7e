package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ManifestSuffix is the file suffix CheckDir looks for.
const ManifestSuffix = ".units.toml"

// ListManifests returns every manifest under dir, sorted for
// deterministic result order.
func ListManifests(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ManifestSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Event reports progress of one manifest during a directory check.
// A manifest emits two events: start (Done=false) and completion.
type Event struct {
	Path string
	Done bool
	OK   bool
}

// CheckDir checks every *.units.toml under dir in parallel. Each
// manifest is an independent session with its own table and Bag, so
// workers share nothing mutable. jobs caps the worker count; zero
// means one worker per CPU. Results come back in path order.
func CheckDir(ctx context.Context, dir string, opts Options, jobs int) ([]*CheckResult, error) {
	return CheckDirStream(ctx, dir, opts, jobs, nil)
}

// CheckDirStream is CheckDir with a progress feed. When events is
// non-nil it receives an Event per manifest state change and is
// closed before the function returns.
func CheckDirStream(ctx context.Context, dir string, opts Options, jobs int, events chan<- Event) ([]*CheckResult, error) {
	if events != nil {
		defer close(events)
	}

	files, err := ListManifests(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*CheckResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			emit(events, Event{Path: path})
			res, err := CheckManifest(path, opts)
			if err != nil {
				return err
			}
			results[i] = res
			emit(events, Event{Path: path, Done: true, OK: res.OK()})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func emit(events chan<- Event, ev Event) {
	if events != nil {
		events <- ev
	}
}
