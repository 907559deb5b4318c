// Package project ties an alembic project on disk to the alembic-tools
// engines.
//
// A Project knows where the revision scripts live, reading script_location
// from alembic.ini unless alembic-tools.yaml overrides it, and where replaced
// or rewritten scripts are archived:
//
//	project-root/
//	├── alembic-tools.yaml      # optional, see config.Config
//	├── alembic.ini
//	├── alembic/
//	│   └── versions/           # revision scripts
//	├── moved_revisions/        # backups written by move
//	└── squashed_revisions/     # scripts replaced by squash
//
// Load returns a Revisions snapshot. It feeds the analyzer and the revision
// graph, serves as the script source of a squash, and applies the rewrites
// planned by pkg/surgery:
//
//	revs, err := proj.Load()
//	if err != nil {
//		return err
//	}
//
//	edits, err := surgery.Move(revs.Graph, "27c6", "1975")
//	if err != nil {
//		return err
//	}
//
//	changes, err := revs.PlanEdits(edits)
//	if err != nil {
//		return err
//	}
//
//	archive, err := proj.MovedArchive()
//	if err != nil {
//		return err
//	}
//
//	return revs.ApplyChanges(changes, archive)
package project
