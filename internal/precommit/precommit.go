// Package precommit models the pre-commit hook configuration document:
// a list of source repositories, each pinned to a revision and carrying
// one or more hook entries. The document itself is consumed by the
// external pre-commit runner; this package validates, renders, installs,
// and invokes it.
package precommit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the conventional location of the hook document.
const DefaultConfigFile = ".pre-commit-config.yaml"

// Config is the top-level hook document.
type Config struct {
	Repos []Repo `yaml:"repos"`
}

// Repo references a hook source repository pinned to a revision.
type Repo struct {
	Repo  string `yaml:"repo"`
	Rev   string `yaml:"rev,omitempty"`
	Hooks []Hook `yaml:"hooks"`
}

// Hook is one hook entry within a repository.
type Hook struct {
	ID                     string   `yaml:"id"`
	Args                   []string `yaml:"args,omitempty"`
	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty"`
}

// localRepos are the magic repo sources the runner resolves without a
// revision pin.
var localRepos = map[string]bool{
	"local": true,
	"meta":  true,
}

// Load reads and parses the hook document at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hook config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a hook document. Fields beyond the modeled schema are
// ignored, as the external runner accepts more than this tool manages.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the structural invariants of the document: at least one
// repository, a source and revision pin per repository (local and meta
// sources excepted), a non-empty id per hook, and no duplicate sources.
func (c *Config) Validate() error {
	if len(c.Repos) == 0 {
		return fmt.Errorf("hook config has no repositories")
	}

	seen := make(map[string]bool, len(c.Repos))
	for i, repo := range c.Repos {
		if repo.Repo == "" {
			return fmt.Errorf("repository %d has no repo source", i+1)
		}
		if seen[repo.Repo] {
			return fmt.Errorf("duplicate repository %s", repo.Repo)
		}
		seen[repo.Repo] = true

		if repo.Rev == "" && !localRepos[repo.Repo] {
			return fmt.Errorf("repository %s has no rev pin", repo.Repo)
		}
		if len(repo.Hooks) == 0 {
			return fmt.Errorf("repository %s declares no hooks", repo.Repo)
		}
		for j, hook := range repo.Hooks {
			if hook.ID == "" {
				return fmt.Errorf("repository %s: hook %d has no id", repo.Repo, j+1)
			}
		}
	}
	return nil
}

// Render produces the canonical YAML form of the document.
func (c *Config) Render() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to render hook config: %w", err)
	}
	return data, nil
}

// HookIDs returns every hook id in document order.
func (c *Config) HookIDs() []string {
	var ids []string
	for _, repo := range c.Repos {
		for _, hook := range repo.Hooks {
			ids = append(ids, hook.ID)
		}
	}
	return ids
}
