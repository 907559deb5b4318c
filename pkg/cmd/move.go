package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pseudomuto/alembic-tools/pkg/format"
	"github.com/pseudomuto/alembic-tools/pkg/project"
	"github.com/pseudomuto/alembic-tools/pkg/surgery"
	"github.com/urfave/cli/v3"
)

// move returns a CLI command relocating a revision so that it directly
// follows another one, rewriting the down_revision of every script involved.
//
// Both arguments accept unique id prefixes, and the target may be "base" to
// make the revision the first of the chain. The original scripts are copied
// into the moved archive before they are rewritten. With --dry-run the
// rewrites are printed as unified diffs and nothing is written.
//
// Example usage:
//
//	alembic-tools move 27c6 1975
//	alembic-tools move --dry-run 27c6 base
func move(p *project.Project) *cli.Command {
	return &cli.Command{
		Name:      "move",
		Usage:     "Move a revision after another one",
		ArgsUsage: "<revision> <after>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "print the rewrites without applying them",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 2, "<revision> <after>"); err != nil {
				return err
			}

			revs, err := p.Load()
			if err != nil {
				return err
			}

			edits, err := surgery.Move(revs.Graph, cmd.Args().Get(0), cmd.Args().Get(1))
			if err != nil {
				return err
			}

			changes, err := revs.PlanEdits(edits)
			if err != nil {
				return err
			}

			if cmd.Bool("dry-run") {
				out := printer(cmd)
				for _, c := range changes {
					diff, err := format.Diff(displayPath(p.Root(), c.Path), c.Before, c.After)
					if err != nil {
						return err
					}

					out.Diff(diff)
				}

				return nil
			}

			archive, err := p.MovedArchive()
			if err != nil {
				return err
			}

			slog.Info("Moving revision", "revision", edits[1].Revision, "after", edits[1].Parent)
			if err := revs.ApplyChanges(changes, archive); err != nil {
				return err
			}

			fmt.Fprintf(cmd.Writer, "Rewrote %d revision(s), originals saved in %s\n", len(changes), archive.Dir())
			return nil
		},
	}
}

// displayPath returns path relative to the project root when it lies inside
// it.
func displayPath(root, path string) string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return path
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}

	return filepath.ToSlash(rel)
}
