package project

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing/fstest"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/config"
	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"github.com/pseudomuto/alembic-tools/pkg/parser"
	"github.com/pseudomuto/alembic-tools/pkg/script"
)

const hereVariable = "%(here)s"

var (
	//go:embed embed/alembic-tools.yaml
	defaultConfig []byte

	image = fstest.MapFS{
		consts.ConfigFile: {Data: defaultConfig},
	}
)

type (
	// Project binds an alembic project directory to its alembic-tools
	// configuration.
	Project struct {
		root      string
		config    *config.Config
		generator *script.Generator
	}

	// Option configures a Project.
	Option func(*Project)
)

// WithGenerator replaces the generator used for new revisions.
func WithGenerator(g *script.Generator) Option {
	return func(p *Project) { p.generator = g }
}

// New creates a Project rooted at dir. A nil cfg uses config.Default().
//
// Example:
//
//	cfg, err := config.LoadConfigFile("alembic-tools.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	proj := project.New(".", cfg)
//	revs, err := proj.Load()
func New(dir string, cfg *config.Config, opts ...Option) *Project {
	if cfg == nil {
		cfg = config.Default()
	}

	p := &Project{root: dir, config: cfg, generator: script.NewGenerator()}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Root returns the project directory.
func (p *Project) Root() string { return p.root }

// Config returns the project configuration.
func (p *Project) Config() *config.Config { return p.config }

// Initialize writes a default alembic-tools.yaml into the project directory.
// Existing files are left untouched, so running it twice is harmless.
func (p *Project) Initialize() error {
	if err := p.ensureDirectory(); err != nil {
		return err
	}

	for path, entry := range image {
		fullPath := filepath.Join(p.root, path)

		if _, err := os.Stat(fullPath); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, "failed to stat %s", fullPath)
		}

		if entry.Mode.IsDir() {
			if err := os.MkdirAll(fullPath, consts.ModeDir); err != nil {
				return errors.Wrapf(err, "failed to create directory %s", fullPath)
			}

			continue
		}

		parentDir := filepath.Dir(fullPath)
		if err := os.MkdirAll(parentDir, consts.ModeDir); err != nil {
			return errors.Wrapf(err, "failed to create parent directory %s", parentDir)
		}

		if err := os.WriteFile(fullPath, entry.Data, consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write file %s", fullPath)
		}
	}

	cfg, err := config.LoadConfigFile(filepath.Join(p.root, consts.ConfigFile))
	if err != nil {
		return errors.Wrapf(err, "failed to load %s", consts.ConfigFile)
	}

	p.config = cfg
	return nil
}

// Reload re-reads alembic-tools.yaml from the project root, falling back to
// the defaults when the project has none.
func (p *Project) Reload() error {
	path := filepath.Join(p.root, consts.ConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		p.config = config.Default()
		return nil
	}

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		return err
	}

	p.config = cfg
	return nil
}

// ScriptLocation returns the alembic script directory.
//
// The configured script_location override wins. Otherwise the value is read
// from the [alembic] section of alembic.ini, expanding %(here)s to the
// directory holding the ini file. Without either, the alembic default
// "alembic" is used. Relative locations are resolved against the project
// root.
func (p *Project) ScriptLocation() (string, error) {
	if loc := p.config.Alembic.ScriptLocation; loc != "" {
		return p.resolve(loc), nil
	}

	iniPath := p.resolve(p.config.Alembic.Config)
	f, err := os.Open(iniPath)
	if os.IsNotExist(err) {
		return p.resolve(consts.DefaultScriptLocation), nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s", iniPath)
	}
	defer func() { _ = f.Close() }()

	ini, err := parser.ParseINI(f)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse %s", iniPath)
	}

	loc, ok := ini.Get(consts.AlembicSection, "script_location")
	if !ok || loc == "" {
		return p.resolve(consts.DefaultScriptLocation), nil
	}

	if strings.Contains(loc, hereVariable) {
		here, err := filepath.Abs(filepath.Dir(iniPath))
		if err != nil {
			return "", errors.Wrapf(err, "failed to resolve the directory of %s", iniPath)
		}

		loc = strings.ReplaceAll(loc, hereVariable, here)
	}

	return p.resolve(loc), nil
}

// VersionsDir returns the directory holding the revision scripts.
func (p *Project) VersionsDir() (string, error) {
	loc, err := p.ScriptLocation()
	if err != nil {
		return "", err
	}

	return filepath.Join(loc, consts.VersionsDir), nil
}

// Load reads every revision script and builds the revision graph.
func (p *Project) Load() (*Revisions, error) {
	versions, err := p.VersionsDir()
	if err != nil {
		return nil, err
	}

	if info, err := os.Stat(versions); err != nil || !info.IsDir() {
		return nil, errors.Errorf("versions directory not found: %s", versions)
	}

	dir, err := script.LoadDir(os.DirFS(versions))
	if err != nil {
		return nil, err
	}

	g, err := dir.Graph()
	if err != nil {
		return nil, err
	}

	return &Revisions{Dir: dir, Graph: g, versions: versions, generator: p.generator}, nil
}

// SquashedArchive opens the directory receiving the scripts a squash replaces.
func (p *Project) SquashedArchive() (*script.Archive, error) {
	return script.OpenArchive(p.resolve(p.config.Archive.Squashed))
}

// MovedArchive opens the directory receiving backups of the scripts a move
// rewrites.
func (p *Project) MovedArchive() (*script.Archive, error) {
	return script.OpenArchive(p.resolve(p.config.Archive.Moved))
}

func (p *Project) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(p.root, path)
}

func (p *Project) ensureDirectory() error {
	dir, err := os.Stat(p.root)
	if err != nil {
		return errors.Wrapf(err, "failed to stat dir: %s", p.root)
	}

	if !dir.IsDir() {
		return errors.Errorf("%s is not a directory", p.root)
	}

	return nil
}
