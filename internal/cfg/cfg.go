// Package cfg loads the engine's two configuration scopes: a user-wide
// YAML file under $HOME/.rvimage/cfg.yaml, and the per-project settings
// embedded in a project file's own "cfg" field.
package cfg

import (
	"os"
	"path/filepath"

	"github.com/mattn/go-shellwords"
	"sigs.k8s.io/yaml"

	"github.com/bertiqwerty/rvimage-sub001/internal/autosave"
	"github.com/bertiqwerty/rvimage-sub001/internal/imgcache"
	"github.com/bertiqwerty/rvimage-sub001/internal/rverr"
	"github.com/bertiqwerty/rvimage-sub001/internal/toolsdata"
)

const (
	userDir      = ".rvimage"
	userFileName = "cfg.yaml"
)

// SSHCfg names the connection and auth material an SSH backend needs.
// ExtraArgs is a raw shell-style string, tokenized on demand by Args().
type SSHCfg struct {
	Address             string `yaml:"address,omitempty" json:"address,omitempty"`
	User                string `yaml:"user,omitempty" json:"user,omitempty"`
	SSHIdentityFilePath string `yaml:"ssh_identity_file_path,omitempty" json:"ssh_identity_file_path,omitempty"`
	ExtraArgs           string `yaml:"ssh_extra_args,omitempty" json:"ssh_extra_args,omitempty"`
}

// Args tokenizes ExtraArgs the way a shell would, for passing through to
// the SSH backend's session setup. An empty ExtraArgs returns a nil slice.
func (s SSHCfg) Args() ([]string, error) {
	if s.ExtraArgs == "" {
		return nil, nil
	}
	args, err := shellwords.Parse(s.ExtraArgs)
	if err != nil {
		return nil, rverr.New(rverr.Parse, "cfg.SSHCfg.Args", err)
	}
	return args, nil
}

// UserCfg is the machine-wide configuration, loaded once at startup.
type UserCfg struct {
	NPrevImages             int    `yaml:"n_prev_images,omitempty" json:"n_prev_images,omitempty"`
	NNextImages             int    `yaml:"n_next_images,omitempty" json:"n_next_images,omitempty"`
	NThreads                int    `yaml:"n_threads,omitempty" json:"n_threads,omitempty"`
	TmpDir                  string `yaml:"tmpdir,omitempty" json:"tmpdir,omitempty"`
	SSH                     SSHCfg `yaml:"ssh_cfg,omitempty" json:"ssh_cfg,omitempty"`
	HTTPAddress             string `yaml:"http_address,omitempty" json:"http_address,omitempty"`
	AzureServiceURL         string `yaml:"azure_service_url,omitempty" json:"azure_service_url,omitempty"`
	GCSBucket               string `yaml:"gcs_bucket,omitempty" json:"gcs_bucket,omitempty"`
	AutosaveIntervalSeconds int    `yaml:"autosave_interval_seconds,omitempty" json:"autosave_interval_seconds,omitempty"`
	AutosaveKeepDays        int    `yaml:"autosave_keep_days,omitempty" json:"autosave_keep_days,omitempty"`
}

// DefaultUserCfg mirrors the original's hard-coded TOML defaults.
func DefaultUserCfg() UserCfg {
	return UserCfg{
		NPrevImages:             2,
		NNextImages:             8,
		NThreads:                2,
		HTTPAddress:             "127.0.0.1:5432",
		AutosaveIntervalSeconds: autosave.DefaultIntervalSeconds,
		AutosaveKeepDays:        autosave.KeepNDays,
	}
}

// FileCacheConfig builds an imgcache.FileCacheConfig from the user scope,
// falling back to os.TempDir()/rvimage when TmpDir is unset.
func (c UserCfg) FileCacheConfig() imgcache.FileCacheConfig {
	tmpDir := c.TmpDir
	if tmpDir == "" {
		tmpDir = filepath.Join(os.TempDir(), "rvimage")
	}
	return imgcache.FileCacheConfig{
		NPrevImages: c.NPrevImages,
		NNextImages: c.NNextImages,
		NThreads:    c.NThreads,
		TmpDir:      tmpDir,
	}
}

// ProjectCfg is the per-project scope, embedded under a project file's own
// "cfg.project" field.
type ProjectCfg struct {
	OpenedFolder   *string                  `yaml:"opened_folder,omitempty" json:"opened_folder,omitempty"`
	ExportFolder   *string                  `yaml:"export_folder,omitempty" json:"export_folder,omitempty"`
	Connection     toolsdata.ConnectionKind `yaml:"connection" json:"connection"`
	ToolVisibility map[string]bool          `yaml:"tool_visibility,omitempty" json:"tool_visibility,omitempty"`
}

// DefaultProjectCfg mirrors a freshly created project with local-disk
// connectivity and no folder selected yet.
func DefaultProjectCfg() ProjectCfg {
	return ProjectCfg{Connection: toolsdata.ConnLocal}
}

// UserCfgPath returns $HOME/.rvimage/cfg.yaml, the canonical user-config
// location.
func UserCfgPath(home string) string {
	return filepath.Join(home, userDir, userFileName)
}

// LoadUser reads the user config file under home. A missing file is not an
// error: it returns DefaultUserCfg() instead, matching the original's
// fall-back-to-defaults behavior for a first run.
func LoadUser(home string) (UserCfg, error) {
	const op = "cfg.LoadUser"
	path := UserCfgPath(home)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultUserCfg(), nil
		}
		return UserCfg{}, rverr.New(rverr.IO, op, err)
	}
	cfg := DefaultUserCfg()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return UserCfg{}, rverr.New(rverr.Parse, op, err)
	}
	return cfg, nil
}

// SaveUser writes cfg to $HOME/.rvimage/cfg.yaml, creating the directory
// if needed.
func SaveUser(home string, cfg UserCfg) error {
	const op = "cfg.SaveUser"
	dir := filepath.Join(home, userDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return rverr.New(rverr.IO, op, err)
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return rverr.New(rverr.Parse, op, err)
	}
	if err := os.WriteFile(UserCfgPath(home), raw, 0o644); err != nil {
		return rverr.New(rverr.IO, op, err)
	}
	return nil
}
