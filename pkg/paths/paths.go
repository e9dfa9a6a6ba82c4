package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/craftec/rpbuilder/pkg/errors"
)

// Environment variable names
const (
	EnvProjectRoot = "RPBUILDER_ROOT"
	EnvConfigDir   = "RPBUILDER_CONFIG_DIR"
	EnvStateDir    = "RPBUILDER_STATE_DIR"
	EnvHome        = "HOME"
)

const (
	// AppDirName is the directory name used under the XDG roots
	AppDirName = "rpbuilder"

	// UserConfigFile is the name of the per-user configuration file
	UserConfigFile = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "rpbuilder.log"

	// ResourcePacksDir is the game's resource pack folder inside an installation
	ResourcePacksDir = "resourcepacks"
)

// ProjectConfigFiles are looked up in the project root, first match wins
var ProjectConfigFiles = []string{"rpbuilder.toml", ".rpbuilder.toml"}

// Paths resolves every location a build touches
type Paths interface {
	ProjectRoot() string
	ConfigDir() string
	UserConfigPath() string
	StateDir() string
	LogFilePath() string
	ProjectConfigPath() (string, bool)
	Resolve(p string) string
}

type paths struct {
	projectRoot string
	configDir   string
	stateDir    string
}

// New creates a Paths instance. An empty projectRoot is taken from
// RPBUILDER_ROOT, falling back to the current directory.
func New(projectRoot string) (Paths, error) {
	if projectRoot == "" {
		projectRoot = os.Getenv(EnvProjectRoot)
	}
	if projectRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to get current directory")
		}
		projectRoot = cwd
	}

	absRoot, err := filepath.Abs(ExpandHome(projectRoot))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for project root %s", projectRoot)
	}

	p := &paths{projectRoot: absRoot}
	p.setupXDGDirs()
	return p, nil
}

func (p *paths) setupXDGDirs() {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		p.configDir = filepath.Join(dir, AppDirName)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	} else if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		p.stateDir = filepath.Join(dir, AppDirName)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}
}

func (p *paths) ProjectRoot() string    { return p.projectRoot }
func (p *paths) ConfigDir() string      { return p.configDir }
func (p *paths) UserConfigPath() string { return filepath.Join(p.configDir, UserConfigFile) }
func (p *paths) StateDir() string       { return p.stateDir }
func (p *paths) LogFilePath() string    { return filepath.Join(p.stateDir, LogFileName) }

// ProjectConfigPath returns the first project config file that exists
func (p *paths) ProjectConfigPath() (string, bool) {
	for _, name := range ProjectConfigFiles {
		candidate := filepath.Join(p.projectRoot, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// Resolve expands ~ and makes relative paths relative to the project root
func (p *paths) Resolve(path string) string {
	if path == "" {
		return ""
	}
	path = ExpandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.projectRoot, path)
}

// DefaultInstallDir returns the game installation directory for this host
func DefaultInstallDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv(EnvHome)
	}
	return installDirFor(runtime.GOOS, os.Getenv, home)
}

func installDirFor(goos string, getenv func(string) string, home string) string {
	switch goos {
	case "windows":
		if appData := getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, ".minecraft")
		}
		return filepath.Join(home, "AppData", "Roaming", ".minecraft")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "minecraft")
	default:
		return filepath.Join(home, ".minecraft")
	}
}

// ResourcePackDir is where a pack named packName lives inside installDir
func ResourcePackDir(installDir, packName string) string {
	return filepath.Join(installDir, ResourcePacksDir, packName)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user forms are left alone
	return path
}
