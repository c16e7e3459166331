package walker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/consolidate/internal/classify"
	"github.com/bethropolis/consolidate/internal/diag"
	"github.com/bethropolis/consolidate/internal/ignore"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// buildTree creates files (slash separated paths) under a fresh temp dir.
func buildTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func relativePaths(candidates []Candidate) []string {
	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		paths = append(paths, c.RelativePath)
	}
	return paths
}

func rulesFor(root string, extra ...string) *ignore.RuleSet {
	return ignore.Compile(ignore.Discover(root, "", nil, nil), extra)
}

func TestSelect_IgnoredBinaryScenario(t *testing.T) {
	root := buildTree(t, map[string]string{
		"a.txt":      "hello",
		"b.png":      string(pngHeader),
		".gitignore": "b.png\n",
	})

	tracker := diag.NewTracker(8)
	candidates, err := Select(context.Background(), root,
		WithRecursive(false),
		WithMatcher(rulesFor(root, ignore.DefaultFileName)),
		WithDetector(classify.New(tracker, nil)),
		WithSink(tracker),
	)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "a.txt", candidates[0].RelativePath)
	assert.Equal(t, filepath.Join(root, "a.txt"), candidates[0].Path)
	assert.Equal(t, 2, tracker.Count(diag.Ignored))
}

func TestSelect_ExtensionFilterScenario(t *testing.T) {
	root := buildTree(t, map[string]string{
		"x.py":  "print('x')\n",
		"x.txt": "x\n",
	})

	tracker := diag.NewTracker(4)
	candidates, err := Select(context.Background(), root,
		WithExtensions(".py"),
		WithSink(tracker),
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"x.py"}, relativePaths(candidates))
	assert.Equal(t, 1, tracker.Count(diag.ExtensionFiltered))
}

func TestSelect_ExtensionFilterIsCaseInsensitive(t *testing.T) {
	root := buildTree(t, map[string]string{
		"MAIN.GO":   "package main\n",
		"README.md": "# readme\n",
	})

	candidates, err := Select(context.Background(), root, WithExtensions("go"))

	require.NoError(t, err)
	assert.Equal(t, []string{"MAIN.GO"}, relativePaths(candidates))
}

func TestSelect_HiddenDirectoriesNeverSelected(t *testing.T) {
	root := buildTree(t, map[string]string{
		".git/config":          "[core]\n",
		".venv/lib/site.py":    "x = 1\n",
		"src/.cache/entry.txt": "cached\n",
		"src/main.py":          "print('hi')\n",
		".env":                 "SECRET=1\n",
	})

	tracker := diag.NewTracker(8)
	candidates, err := Select(context.Background(), root,
		WithMatcher(ignore.Compile([]ignore.Source{{Path: "rules", Text: "!*\n"}}, nil)),
		WithSink(tracker),
	)

	require.NoError(t, err)
	// hidden files are fine, hidden directories are never entered
	assert.Equal(t, []string{".env", "src/main.py"}, relativePaths(candidates))
	assert.Equal(t, 3, tracker.Count(diag.HiddenDir))
}

func TestSelect_IgnoredDirectoryPruned(t *testing.T) {
	root := buildTree(t, map[string]string{
		".gitignore":          "build/\n!build/keep.txt\n",
		"build/keep.txt":      "keep\n",
		"build/out/final.txt": "out\n",
		"main.go":             "package main\n",
	})

	tracker := diag.NewTracker(8)
	candidates, err := Select(context.Background(), root,
		WithMatcher(rulesFor(root, ignore.DefaultFileName)),
		WithSink(tracker),
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, relativePaths(candidates))

	var ignoredDirs []string
	for _, e := range tracker.Items() {
		if e.Kind == diag.Ignored && e.IsDir {
			ignoredDirs = append(ignoredDirs, e.Path)
		}
	}
	assert.Equal(t, []string{"build"}, ignoredDirs)
}

func TestSelect_NegationScenario(t *testing.T) {
	root := buildTree(t, map[string]string{
		".gitignore":    "*.log\n!important.log\n",
		"debug.log":     "debug\n",
		"important.log": "important\n",
	})

	candidates, err := Select(context.Background(), root,
		WithMatcher(rulesFor(root, ignore.DefaultFileName)),
	)

	require.NoError(t, err)
	assert.Equal(t, []string{"important.log"}, relativePaths(candidates))
}

func TestSelect_NonRecursive(t *testing.T) {
	root := buildTree(t, map[string]string{
		"top.txt":        "top\n",
		"sub/nested.txt": "nested\n",
	})

	candidates, err := Select(context.Background(), root, WithRecursive(false))

	require.NoError(t, err)
	assert.Equal(t, []string{"top.txt"}, relativePaths(candidates))
}

func TestSelect_LexicalOrderAndDeterminism(t *testing.T) {
	root := buildTree(t, map[string]string{
		"b/2.txt": "2",
		"b/1.txt": "1",
		"a.txt":   "a",
		"c.txt":   "c",
		"a/z.txt": "z",
	})

	first, err := Select(context.Background(), root)
	require.NoError(t, err)
	second, err := Select(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"a/z.txt", "a.txt", "b/1.txt", "b/2.txt", "c.txt"}, relativePaths(first))
	assert.Equal(t, first, second)
}

func TestSelect_MaxFileSize(t *testing.T) {
	root := buildTree(t, map[string]string{
		"small.txt": "ok",
		"large.txt": "this is far too large",
	})

	tracker := diag.NewTracker(2)
	candidates, err := Select(context.Background(), root, WithMaxFileSize(5), WithSink(tracker))

	require.NoError(t, err)
	assert.Equal(t, []string{"small.txt"}, relativePaths(candidates))
	assert.Equal(t, 1, tracker.Count(diag.SizeLimit))
}

func TestSelect_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}

	root := buildTree(t, map[string]string{
		"real/file.txt": "content\n",
	})
	require.NoError(t, os.Symlink(filepath.Join(root, "real", "file.txt"), filepath.Join(root, "link.txt")))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling.txt")))

	tracker := diag.NewTracker(4)
	candidates, err := Select(context.Background(), root, WithSink(tracker))

	require.NoError(t, err)
	assert.Equal(t, []string{"link.txt", "real/file.txt"}, relativePaths(candidates))
	assert.Equal(t, 1, tracker.Count(diag.NotRegular))
	assert.Equal(t, 1, tracker.Count(diag.WalkError))
}

func TestSelect_SetupErrors(t *testing.T) {
	root := buildTree(t, map[string]string{"file.txt": "x"})

	t.Run("missing root", func(t *testing.T) {
		_, err := Select(context.Background(), filepath.Join(root, "nope"))

		var setupErr *diag.SetupError
		require.ErrorAs(t, err, &setupErr)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("root is a file", func(t *testing.T) {
		_, err := Select(context.Background(), filepath.Join(root, "file.txt"))

		var setupErr *diag.SetupError
		require.ErrorAs(t, err, &setupErr)
		assert.ErrorIs(t, err, diag.ErrNotDirectory)
	})
}

func TestSelect_Cancelled(t *testing.T) {
	root := buildTree(t, map[string]string{"a.txt": "a", "b.txt": "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Select(ctx, root)
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = Select(ctx, root, WithRecursive(false))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewExtensionFilter(t *testing.T) {
	f := NewExtensionFilter("py", ".PY", " .js ", "", ".")
	assert.Equal(t, ExtensionFilter{".py", ".js"}, f)

	assert.True(t, f.Allows("main.py"))
	assert.True(t, f.Allows("APP.JS"))
	assert.False(t, f.Allows("main.go"))
	assert.True(t, ExtensionFilter(nil).Allows("anything"))
}
