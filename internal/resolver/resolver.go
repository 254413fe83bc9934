// Package resolver turns a user-supplied input (local directory or GitHub
// URL) into a local Go module root that the loader can read.
package resolver

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Resolver is an explicit resolution strategy. Each analysis passes its own
// Resolver, so concurrent runs never share state.
type Resolver struct {
	// CacheDir is where remote repositories are cloned. Empty means
	// ~/.cache/enumcheck/repos.
	CacheDir string
	// SkipDownload disables the "go mod download" step.
	SkipDownload bool
	Logger       *slog.Logger
}

// New returns a Resolver with the default cache directory.
func New(logger *slog.Logger) *Resolver {
	return &Resolver{Logger: logger}
}

// Resolve takes an input (local dir, sub-package path, or GitHub URL) and returns
// a local module root ready for loading, plus a cleanup function.
func (r *Resolver) Resolve(ctx context.Context, input string) (dir string, cleanup func(), err error) {
	cleanup = func() {} // default no-op

	if isGitHubURL(input) {
		return r.fetchRepo(ctx, input)
	}

	absPath, err := filepath.Abs(input)
	if err != nil {
		return "", cleanup, fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", cleanup, fmt.Errorf("stat %s: %w", absPath, err)
	}
	if !info.IsDir() {
		return "", cleanup, fmt.Errorf("%s is not a directory", absPath)
	}

	modRoot, err := findModuleRoot(absPath)
	if err != nil {
		return "", cleanup, err
	}

	r.logger().Info("resolved local directory", "input", input, "module_root", modRoot)
	r.download(ctx, modRoot)

	return modRoot, cleanup, nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger.With("component", "resolver")
}

func isGitHubURL(input string) bool {
	return strings.Contains(input, "github.com") &&
		(strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"))
}

// repoDir returns a stable directory for caching a cloned repo, keyed by a
// hash of the URL.
func (r *Resolver) repoDir(url string) (string, error) {
	root := r.CacheDir
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home dir: %w", err)
		}
		root = filepath.Join(home, ".cache", "enumcheck", "repos")
	}
	h := sha256.Sum256([]byte(url))
	return filepath.Join(root, fmt.Sprintf("%x", h[:8])), nil
}

// fetchRepo updates a cached clone, or clones afresh when there is none or
// the update fails. The cache is persistent, so cleanup is a no-op.
func (r *Resolver) fetchRepo(ctx context.Context, url string) (string, func(), error) {
	noop := func() {}
	logger := r.logger()

	dir, err := r.repoDir(url)
	if err != nil {
		return "", noop, err
	}

	if _, err := os.Stat(filepath.Join(dir, ".git")); err != nil {
		return r.cloneRepo(ctx, url, dir)
	}

	logger.Info("updating cached repository", "url", url, "dir", dir)
	for _, args := range [][]string{
		{"fetch", "--depth=1", "origin"},
		{"reset", "--hard", "origin/HEAD"},
	} {
		if err := git(ctx, dir, args...); err != nil {
			logger.Warn("git update failed, will re-clone", "command", args[0], "error", err)
			_ = os.RemoveAll(dir)
			return r.cloneRepo(ctx, url, dir)
		}
	}

	modRoot, err := findModuleRootInTree(dir)
	if err != nil {
		return "", noop, fmt.Errorf("cached repo: %w", err)
	}
	logger.Info("found module root", "module_root", modRoot)
	r.download(ctx, modRoot)

	return modRoot, noop, nil
}

func (r *Resolver) cloneRepo(ctx context.Context, url, dir string) (string, func(), error) {
	noop := func() {}
	logger := r.logger()

	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return "", noop, fmt.Errorf("creating cache dir: %w", err)
	}

	logger.Info("cloning repository", "url", url, "dest", dir)
	if err := git(ctx, "", "clone", "--depth=1", url, dir); err != nil {
		_ = os.RemoveAll(dir)
		return "", noop, fmt.Errorf("git clone: %w", err)
	}

	// go.mod may not be at the repo root
	modRoot, err := findModuleRootInTree(dir)
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", noop, fmt.Errorf("cloned repo: %w", err)
	}
	logger.Info("found module root", "module_root", modRoot)
	r.download(ctx, modRoot)

	return modRoot, noop, nil
}

func git(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (r *Resolver) download(ctx context.Context, dir string) {
	if r.SkipDownload {
		return
	}
	r.logger().Debug("running go mod download", "dir", dir)
	cmd := exec.CommandContext(ctx, "go", "mod", "download")
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		r.logger().Warn("go mod download failed", "error", err)
	}
}

// findModuleRoot walks up from dir to the nearest directory holding go.mod.
func findModuleRoot(dir string) (string, error) {
	current := dir
	for {
		if _, err := os.Stat(filepath.Join(current, "go.mod")); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no go.mod found in %s or any parent directory", dir)
		}
		current = parent
	}
}

var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	"testdata":     true,
}

// findModuleRootInTree returns the shallowest directory under root holding
// a go.mod. Ties at the same depth go to the lexically first path. Hidden,
// vendor, node_modules and testdata directories are skipped.
func findModuleRootInTree(root string) (string, error) {
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
		return root, nil
	}

	level := []string{root}
	for len(level) > 0 {
		var next, found []string
		for _, dir := range level {
			entries, err := os.ReadDir(dir)
			if err != nil {
				if errors.Is(err, fs.ErrPermission) {
					continue
				}
				return "", err
			}
			for _, e := range entries {
				name := e.Name()
				if !e.IsDir() || strings.HasPrefix(name, ".") || skipDirs[name] {
					continue
				}
				sub := filepath.Join(dir, name)
				if _, err := os.Stat(filepath.Join(sub, "go.mod")); err == nil {
					found = append(found, sub)
				}
				next = append(next, sub)
			}
		}
		if len(found) > 0 {
			sort.Strings(found)
			return found[0], nil
		}
		level = next
	}

	return "", fmt.Errorf("no go.mod found in %s or its subdirectories", root)
}
