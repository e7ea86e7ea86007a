package precommit

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.4.0
    hooks:
      - id: check-ast
      - id: trailing-whitespace
      - id: end-of-file-fixer
      - id: check-added-large-files
      - id: check-yaml
      - id: debug-statements
  - repo: https://github.com/pycqa/isort
    rev: 5.12.0
    hooks:
      - id: isort
        args: ["--profile", "black"]
  - repo: https://github.com/pycqa/flake8
    rev: 6.0.0
    hooks:
      - id: flake8
        additional_dependencies: [flake8-bugbear]
  - repo: local
    hooks:
      - id: pylint
        args: ["--disable=R0801"]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)
	require.Len(t, cfg.Repos, 4)

	first := cfg.Repos[0]
	assert.Equal(t, "https://github.com/pre-commit/pre-commit-hooks", first.Repo)
	assert.Equal(t, "v4.4.0", first.Rev)
	require.Len(t, first.Hooks, 6)
	assert.Equal(t, "check-ast", first.Hooks[0].ID)

	isort := cfg.Repos[1].Hooks[0]
	assert.Equal(t, []string{"--profile", "black"}, isort.Args)

	flake8 := cfg.Repos[2].Hooks[0]
	assert.Equal(t, []string{"flake8-bugbear"}, flake8.AdditionalDependencies)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("repos: {not a list"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Repos, 4)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "empty document",
			cfg:     Config{},
			wantErr: "no repositories",
		},
		{
			name: "missing repo source",
			cfg: Config{Repos: []Repo{
				{Rev: "v1.0.0", Hooks: []Hook{{ID: "check-yaml"}}},
			}},
			wantErr: "no repo source",
		},
		{
			name: "missing rev pin",
			cfg: Config{Repos: []Repo{
				{Repo: "https://example.com/hooks", Hooks: []Hook{{ID: "x"}}},
			}},
			wantErr: "no rev pin",
		},
		{
			name: "local repo needs no rev",
			cfg: Config{Repos: []Repo{
				{Repo: "local", Hooks: []Hook{{ID: "pylint"}}},
			}},
		},
		{
			name: "meta repo needs no rev",
			cfg: Config{Repos: []Repo{
				{Repo: "meta", Hooks: []Hook{{ID: "check-useless-excludes"}}},
			}},
		},
		{
			name: "duplicate repos",
			cfg: Config{Repos: []Repo{
				{Repo: "https://example.com/hooks", Rev: "v1", Hooks: []Hook{{ID: "a"}}},
				{Repo: "https://example.com/hooks", Rev: "v2", Hooks: []Hook{{ID: "b"}}},
			}},
			wantErr: "duplicate repository",
		},
		{
			name: "no hooks",
			cfg: Config{Repos: []Repo{
				{Repo: "https://example.com/hooks", Rev: "v1"},
			}},
			wantErr: "declares no hooks",
		},
		{
			name: "hook without id",
			cfg: Config{Repos: []Repo{
				{Repo: "https://example.com/hooks", Rev: "v1", Hooks: []Hook{{}}},
			}},
			wantErr: "has no id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRenderRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	data, err := cfg.Render()
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestHookIDs(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	ids := cfg.HookIDs()
	assert.Equal(t, []string{
		"check-ast", "trailing-whitespace", "end-of-file-fixer",
		"check-added-large-files", "check-yaml", "debug-statements",
		"isort", "flake8", "pylint",
	}, ids)
}

// initTestRepo creates a throwaway git repository for install tests.
func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	out, err := exec.Command("git", "init", dir).CombinedOutput()
	require.NoError(t, err, string(out))
	return dir
}

func TestInstall(t *testing.T) {
	dir := initTestRepo(t)

	hookPath, err := Install(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".git", "hooks", "pre-commit"), hookPath)

	data, err := os.ReadFile(hookPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "#!/bin/sh"))
	assert.Contains(t, string(data), "pre-commit run")

	info, err := os.Stat(hookPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111)

	// Reinstall over our own script is fine.
	_, err = Install(dir)
	assert.NoError(t, err)
}

func TestInstallRefusesForeignHook(t *testing.T) {
	dir := initTestRepo(t)
	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	require.NoError(t, os.MkdirAll(filepath.Dir(hookPath), 0o755))
	require.NoError(t, os.WriteFile(hookPath, []byte("#!/bin/sh\nexit 1\n"), 0o755))

	_, err := Install(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to overwrite")
}

func TestInstallOutsideRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	_, err := Install(t.TempDir())
	assert.Error(t, err)
}
