package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"install-pipx/internal/config"
)

func TestPathFree(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing path is free", func(t *testing.T) {
		free, err := pathFree(filepath.Join(dir, "absent"))
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("empty directory is free", func(t *testing.T) {
		empty := filepath.Join(dir, "empty")
		require.NoError(t, os.Mkdir(empty, 0o755))
		free, err := pathFree(empty)
		require.NoError(t, err)
		assert.True(t, free)
	})

	t.Run("populated directory is occupied", func(t *testing.T) {
		populated := filepath.Join(dir, "populated")
		require.NoError(t, os.Mkdir(populated, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(populated, "x"), []byte("x"), 0o644))
		free, err := pathFree(populated)
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("regular file is occupied", func(t *testing.T) {
		file := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		free, err := pathFree(file)
		require.NoError(t, err)
		assert.False(t, free)
	})

	t.Run("broken symlink is occupied", func(t *testing.T) {
		link := filepath.Join(dir, "dangling")
		require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), link))
		free, err := pathFree(link)
		require.NoError(t, err)
		assert.False(t, free)
	})
}

func TestVenvArgs(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want []string
	}{
		{
			name: "defaults",
			cfg:  config.Config{InstallDir: "/venv", LinkMode: config.LinkSymlinks},
			want: []string{"-m", "venv", "--symlinks", "/venv"},
		},
		{
			name: "copies",
			cfg:  config.Config{InstallDir: "/venv", LinkMode: config.LinkCopies},
			want: []string{"-m", "venv", "--copies", "/venv"},
		},
		{
			name: "all options",
			cfg: config.Config{
				InstallDir:         "/venv",
				LinkMode:           config.LinkSymlinks,
				SystemSitePackages: true,
				Clear:              true,
				Prompt:             "pipx",
				UpgradeDeps:        true,
			},
			want: []string{
				"-m", "venv", "--system-site-packages", "--clear",
				"--symlinks", "--prompt", "pipx", "--upgrade-deps", "/venv",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, venvArgs(tt.cfg))
		})
	}
}

func TestCreateEnvFreshTarget(t *testing.T) {
	target := filepath.Join(t.TempDir(), "venv")
	cfg := config.Config{InstallDir: target, Python: "python3", LinkMode: config.LinkSymlinks}
	r := &fakeRunner{}

	require.NoError(t, CreateEnv(r, cfg))

	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"python3", "-m", "venv", "--symlinks", target}, r.calls[0])
}

func TestCreateEnvOccupiedWithoutForce(t *testing.T) {
	target := t.TempDir()
	marker := filepath.Join(target, "keep.txt")
	require.NoError(t, os.WriteFile(marker, []byte("keep"), 0o644))

	cfg := config.Config{InstallDir: target, Python: "python3"}
	r := &fakeRunner{}

	err := CreateEnv(r, cfg)
	require.ErrorIs(t, err, ErrTargetExists)

	// Failure happens before any subprocess and leaves the target intact.
	assert.Empty(t, r.calls)
	content, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(content))
}

func TestCreateEnvOccupiedWithForce(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "old.txt"), []byte("old"), 0o644))

	cfg := config.Config{InstallDir: target, Python: "python3", Force: true, LinkMode: config.LinkSymlinks}
	r := &fakeRunner{}

	require.NoError(t, CreateEnv(r, cfg))

	// Prior contents were removed before the venv subprocess ran.
	_, err := os.Lstat(target)
	assert.True(t, os.IsNotExist(err))
	require.Len(t, r.calls, 1)
	assert.Equal(t, "python3", r.calls[0][0])
}

func TestCreateEnvDryRun(t *testing.T) {
	target := t.TempDir()
	marker := filepath.Join(target, "old.txt")
	require.NoError(t, os.WriteFile(marker, []byte("old"), 0o644))

	cfg := config.Config{InstallDir: target, Python: "python3", Force: true, DryRun: true}
	r := &fakeRunner{}

	require.NoError(t, CreateEnv(r, cfg))

	// Dry run decides to remove and recreate but touches nothing.
	assert.Empty(t, r.calls)
	assert.FileExists(t, marker)
}

func TestCreateEnvDryRunStillReportsOccupiedTarget(t *testing.T) {
	target := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(target, "x"), []byte("x"), 0o644))

	cfg := config.Config{InstallDir: target, Python: "python3", DryRun: true}
	r := &fakeRunner{}

	assert.ErrorIs(t, CreateEnv(r, cfg), ErrTargetExists)
}

func TestSubprocessFailurePropagates(t *testing.T) {
	target := filepath.Join(t.TempDir(), "venv")
	cfg := config.Config{InstallDir: target, Python: "python3"}
	r := &fakeRunner{fail: errBoom}

	err := CreateEnv(r, cfg)
	require.ErrorIs(t, err, errBoom)
	assert.Len(t, r.calls, 1, "failure is fatal without retry")
}
