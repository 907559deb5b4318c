package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/pseudomuto/alembic-tools/pkg/analyzer"
	"github.com/pseudomuto/alembic-tools/pkg/consts"
	"gopkg.in/yaml.v3"
)

type (
	// Alembic locates the alembic environment the tools operate on.
	Alembic struct {
		// Config is the path of alembic.ini, relative to the project root.
		Config string `yaml:"config,omitempty"`

		// ScriptLocation overrides the script_location found in alembic.ini.
		ScriptLocation string `yaml:"script_location,omitempty"`
	}

	// Handles are the names migration scripts import alembic's operations and
	// sqlalchemy under. Calls on any other name are not recognized.
	Handles struct {
		// Operations is the alias of alembic.op, "op" unless imported otherwise
		Operations string `yaml:"operations,omitempty"`

		// Schema is the alias of sqlalchemy, "sa" unless imported otherwise
		Schema string `yaml:"schema,omitempty"`
	}

	// Archive names the directories receiving scripts replaced by a squash or
	// rewritten by a move. Both are relative to the project root.
	Archive struct {
		Squashed string `yaml:"squashed,omitempty"`
		Moved    string `yaml:"moved,omitempty"`
	}

	// Database configures the connection used to stamp the alembic version
	// table.
	Database struct {
		// DSN is the default connection string of the stamp command. The
		// scheme picks the driver (postgres, sqlite or clickhouse).
		DSN string `yaml:"dsn,omitempty"`

		// Table overrides the name of the version table.
		Table string `yaml:"table,omitempty"`
	}

	// Config represents the alembic-tools project configuration.
	Config struct {
		Alembic  Alembic  `yaml:"alembic"`
		Handles  Handles  `yaml:"handles"`
		Archive  Archive  `yaml:"archive"`
		Database Database `yaml:"database"`
	}
)

// Default returns the configuration used when a project has no
// alembic-tools.yaml file.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig parses a project configuration from the provided io.Reader.
//
// Unset values fall back to the defaults in pkg/consts: alembic.ini in the
// project root, the op and sa handles, squashed_revisions and moved_revisions
// archives and the alembic_version table.
//
// Example:
//
//	cfg, err := config.LoadConfig(strings.NewReader(`
//	handles:
//	  operations: alembic_op
//	archive:
//	  squashed: db/squashed
//	`))
//	if err != nil {
//		return err
//	}
//
//	fmt.Println(cfg.Handles.Schema) // sa
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal project config")
	}

	cfg.setDefaults()
	return &cfg, nil
}

// LoadConfigFile loads a project configuration from the specified file path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Matcher returns the analyzer matcher for the configured handles.
func (c *Config) Matcher() analyzer.Matcher {
	return analyzer.Matcher{
		OperationsHandle: c.Handles.Operations,
		SchemaHandle:     c.Handles.Schema,
	}
}

func (c *Config) setDefaults() {
	if c.Alembic.Config == "" {
		c.Alembic.Config = consts.AlembicConfigFile
	}
	if c.Handles.Operations == "" {
		c.Handles.Operations = consts.DefaultOperationsHandle
	}
	if c.Handles.Schema == "" {
		c.Handles.Schema = consts.DefaultSchemaHandle
	}
	if c.Archive.Squashed == "" {
		c.Archive.Squashed = consts.DefaultSquashedDir
	}
	if c.Archive.Moved == "" {
		c.Archive.Moved = consts.DefaultMovedDir
	}
	if c.Database.Table == "" {
		c.Database.Table = consts.VersionTable
	}
}
