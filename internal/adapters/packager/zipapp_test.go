package packager_test

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wheelwright/internal/adapters/packager"
	"go.trai.ch/wheelwright/internal/core/domain"
)

func writeWheel(t *testing.T, members map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo-0.1.0-py3-none-any.whl")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	for name, content := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func readPackage(t *testing.T, path string) (string, map[string]string) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	line, err := bufio.NewReader(f).ReadString('\n')
	require.NoError(t, err)
	require.NoError(t, f.Close())

	rc, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = rc.Close() }()

	members := make(map[string]string)
	for _, file := range rc.File {
		r, err := file.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(r)
		require.NoError(t, err)
		require.NoError(t, r.Close())
		members[file.Name] = string(data)
	}
	return line, members
}

func TestZipapp_Package(t *testing.T) {
	wheel := writeWheel(t, map[string]string{
		"demo/__init__.py":                 "VALUE = 1\n",
		"demo-0.1.0.dist-info/METADATA":    "Name: demo\n",
		"demo-0.1.0.data/purelib/extra.py": "EXTRA = 2\n",
		"demo-0.1.0.data/scripts/demo":     "#!python\n",
		"__main__.py":                      "raise SystemExit('shadowed')\n",
	})
	dest := filepath.Join(t.TempDir(), "out", "demo.pyz")

	err := packager.NewZipapp().Package(context.Background(), wheel, "python3", dest)
	require.NoError(t, err)

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.ExecutablePerm), info.Mode().Perm())

	shebang, members := readPackage(t, dest)
	assert.Equal(t, "#!/usr/bin/env python3\n", shebang)

	assert.Equal(t, "VALUE = 1\n", members["demo/__init__.py"])
	assert.Equal(t, "Name: demo\n", members["demo-0.1.0.dist-info/METADATA"])
	assert.Equal(t, "EXTRA = 2\n", members["extra.py"])
	assert.NotContains(t, members, "demo-0.1.0.data/scripts/demo")
	assert.NotContains(t, members, "demo")
	assert.Contains(t, members["__main__.py"], "runpy")
	assert.Len(t, members, 4)
}

func TestZipapp_Package_AbsoluteInterpreter(t *testing.T) {
	wheel := writeWheel(t, map[string]string{"demo/__init__.py": ""})
	dest := filepath.Join(t.TempDir(), "demo.pyz")

	require.NoError(t, packager.NewZipapp().Package(context.Background(), wheel, "/opt/py/bin/python3.12", dest))

	shebang, _ := readPackage(t, dest)
	assert.Equal(t, "#!/opt/py/bin/python3.12\n", shebang)
}

func TestZipapp_Package_Deterministic(t *testing.T) {
	wheel := writeWheel(t, map[string]string{
		"demo/__init__.py": "",
		"demo/core.py":     "def f():\n    return 1\n",
	})
	dir := t.TempDir()
	first := filepath.Join(dir, "a.pyz")
	second := filepath.Join(dir, "b.pyz")

	z := packager.NewZipapp()
	require.NoError(t, z.Package(context.Background(), wheel, "python3", first))
	require.NoError(t, z.Package(context.Background(), wheel, "python3", second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestZipapp_Package_InvalidWheel(t *testing.T) {
	wheel := filepath.Join(t.TempDir(), "broken.whl")
	require.NoError(t, os.WriteFile(wheel, []byte("not a zip"), 0o600))
	dest := filepath.Join(t.TempDir(), "demo.pyz")

	err := packager.NewZipapp().Package(context.Background(), wheel, "python3", dest)
	require.ErrorIs(t, err, domain.ErrPackagingFailed)
	assert.NoFileExists(t, dest)
}

func TestZipapp_Package_RejectsEscapingMembers(t *testing.T) {
	wheel := writeWheel(t, map[string]string{"../evil.py": "x = 1\n"})
	dest := filepath.Join(t.TempDir(), "demo.pyz")

	err := packager.NewZipapp().Package(context.Background(), wheel, "python3", dest)
	require.ErrorIs(t, err, domain.ErrPackagingFailed)
	assert.NoFileExists(t, dest)
}
