package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pytoc/translator"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py":               "",
		"pkg/b.py":           "",
		"pkg/notes.txt":      "",
		"pkg/c.pyc":          "",
		".git/hook.py":       "",
		"__pycache__/d.py":   "",
		".venv/lib/e.py":     "",
		"deep/er/still/f.py": "",
	})

	files, err := Discover(root, ".py", []string{".git", "__pycache__", ".venv"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.py"),
		filepath.Join(root, "deep", "er", "still", "f.py"),
		filepath.Join(root, "pkg", "b.py"),
	}, files)
}

func TestDiscoverSingleFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"one.py": "x = 1\n"})

	files, err := Discover(filepath.Join(root, "one.py"), ".py", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "one.py")}, files)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"), ".py", nil)
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"a.py", "a.c"},
		{"src/mod.py", "src/mod.c"},
		{"my.python/tool.py", "my.python/tool.c"},
		{"lib.py/x.py", "lib.py/x.c"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, OutputPath(tt.in, ".py", ".c"))
		})
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"good.py":      "def f(a, b):\n    x = 1\n",
		"pkg/point.py": "class Point:\n    x = 0\n    y = 0\n",
		"bad.py":       "x = \"hello\"\n",
		"broken.py":    "def f(:\n",
		"stale.py":     "import os\n",
	})
	// Output from an earlier run is removed once its unit fails.
	writeTree(t, root, map[string]string{"bad.c": "previous"})

	d := New(Options{Workers: 2})
	report, err := d.Run(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "good.c"),
		filepath.Join(root, "pkg", "point.c"),
	}, report.Translated)

	kinds := map[string]string{}
	for _, f := range report.Failed {
		kinds[filepath.Base(f.File)] = f.Kind
	}
	assert.Equal(t, map[string]string{
		"bad.py":    translator.KindUnsupported,
		"broken.py": translator.KindSyntax,
		"stale.py":  translator.KindMismatch,
	}, kinds)
	assert.False(t, report.OK())
	assert.Empty(t, report.Skipped)

	assert.Equal(t, "void f(int a, int b) {\n    int x = 1;\n}\n\n", readFile(t, filepath.Join(root, "good.c")))
	assert.Equal(t, "struct Point {\n    int x = 0;\n    int y = 0;\n};\n\n", readFile(t, filepath.Join(root, "pkg", "point.c")))
	assert.NoFileExists(t, filepath.Join(root, "bad.c"))
	assert.NoFileExists(t, filepath.Join(root, "broken.c"))
	assert.NoFileExists(t, filepath.Join(root, "stale.c"))
}

func TestRunFailFast(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{"a_bad.py": "x = 1.5\n"}
	for _, name := range []string{"b.py", "c.py", "d.py", "e.py"} {
		files[name] = "x = 1\n"
	}
	writeTree(t, root, files)

	d := New(Options{Workers: 1, FailFast: true})
	report, err := d.Run(context.Background(), root)
	require.Error(t, err)
	require.NotNil(t, report)
	assert.Len(t, report.Failed, 1)
	assert.Empty(t, report.Translated)
	assert.Len(t, report.Skipped, 4)
	assert.NoFileExists(t, filepath.Join(root, "b.c"))
}

func TestRunDryRun(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": "x = 1\n"})

	var out bytes.Buffer
	d := New(Options{Workers: 1, DryRun: true, Stdout: &out})
	report, err := d.Run(context.Background(), root)
	require.NoError(t, err)
	assert.True(t, report.OK())

	target := filepath.Join(root, "a.c")
	assert.Equal(t, "// "+target+"\nint x = 1;\n", out.String())
	assert.NoFileExists(t, target)
}

func TestRunDryRunKeepsPriorOutput(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"bad.py": "x = 1.5\n", "bad.c": "previous"})

	var out bytes.Buffer
	d := New(Options{Workers: 1, DryRun: true, Stdout: &out})
	report, err := d.Run(context.Background(), root)
	require.NoError(t, err)
	assert.Len(t, report.Failed, 1)
	assert.Empty(t, out.String())
	assert.Equal(t, "previous", readFile(t, filepath.Join(root, "bad.c")))
}

func TestRunWithTranslatorOptions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": "def f():\n    return 1\n"})

	d := New(Options{Translator: []translator.Option{
		translator.WithBackend("tree-sitter"),
		translator.WithStrict(true),
	}})
	report, err := d.Run(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, translator.KindUnsupported, report.Failed[0].Kind)
}

func TestRunEmptyTree(t *testing.T) {
	report, err := New(Options{}).Run(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.Empty(t, report.Translated)
}

func TestRunCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.py": "x = 1\n", "b.py": "y = 2\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{Workers: 1}).Run(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWatcherRetranslates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"pkg/keep.txt": ""})

	d := New(Options{Debounce: 10 * time.Millisecond})
	w, err := d.NewWatcher(root)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	src := filepath.Join(root, "pkg", "live.py")
	require.NoError(t, os.WriteFile(src, []byte("x = 1\n"), 0o644))

	target := filepath.Join(root, "pkg", "live.c")
	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(target)
		return err == nil && string(data) == "int x = 1;\n"
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(src, []byte("y = 2\n"), 0o644))
	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(target)
		return err == nil && string(data) == "int y = 2;\n"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
