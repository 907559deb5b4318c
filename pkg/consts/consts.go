package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// AlembicConfigFile is the alembic configuration file expected in the project root
	AlembicConfigFile = "alembic.ini"

	// AlembicSection is the ini section holding the alembic settings
	AlembicSection = "alembic"

	// ConfigFile is the optional alembic-tools configuration file
	ConfigFile = "alembic-tools.yaml"

	// DefaultScriptLocation is used when alembic.ini does not set script_location
	DefaultScriptLocation = "alembic"

	// VersionsDir is the directory, relative to the script location, holding revisions
	VersionsDir = "versions"

	// DefaultSquashedDir receives the scripts absorbed by a squash
	DefaultSquashedDir = "squashed_revisions"

	// DefaultMovedDir receives backups of the scripts rewritten by a move
	DefaultMovedDir = "moved_revisions"

	// ArchiveSumFile is the integrity file kept in every archive directory
	ArchiveSumFile = "archive.sum"

	// DefaultOperationsHandle is the conventional name alembic's operations are imported as
	DefaultOperationsHandle = "op"

	// DefaultSchemaHandle is the conventional name sqlalchemy is imported as
	DefaultSchemaHandle = "sa"

	// BaseRevision is the sentinel naming the root of the revision chain
	BaseRevision = "base"

	// UpgradeFunction and DowngradeFunction are the functions every revision defines
	UpgradeFunction   = "upgrade"
	DowngradeFunction = "downgrade"

	// ReplacesKeyword is the keyword argument naming the entity version being replaced
	ReplacesKeyword = "replaces"

	// VersionTable is the table alembic records the applied revision in
	VersionTable = "alembic_version"
)
