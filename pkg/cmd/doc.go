// Package cmd provides the CLI commands of alembic-tools.
//
// Every command is a function returning a *cli.Command, registered into the
// fx "commands" group by Module. Commands receive the *project.Project
// rooted at the directory selected by the global --dir flag.
//
// # Available Commands
//
//   - init: write a default alembic-tools.yaml
//   - analyze: list the operations of one or every revision
//   - search: find the revisions touching a table or replaceable entity
//   - history: list revisions from the base to the heads
//   - graph: render the revision graph as graphviz DOT
//   - move: move a revision after another one
//   - squash: squash two adjacent revisions into one
//   - stamp: replace the revision recorded in a database
//   - verify: check the integrity of the revision archives
//
// # Example Usage
//
//	alembic-tools search --table user
//	alembic-tools move --dry-run 27c6 1975
//	alembic-tools squash ae10 27c6 -m "create users"
//	alembic-tools stamp --dsn sqlite://app.db --from ae10 --to 27c6
//
// Reports go to the command's writer and are styled with lipgloss when it is
// a terminal. Progress is logged through log/slog.
package cmd
