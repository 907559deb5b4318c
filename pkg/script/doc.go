// Package script reads and writes alembic revision scripts.
//
// It is the on-disk side of the revision chain: LoadDir discovers the
// scripts of a versions directory and feeds the revision graph, SetParent
// rewrites a script's down_revision, Generator renders new empty revisions
// and Archive keeps the scripts removed from the chain, sealed by an
// archive.sum file.
//
// Example:
//
//	dir, err := script.LoadDir(os.DirFS("alembic/versions"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	for _, s := range dir.Scripts {
//		fmt.Printf("%s <- %v %s\n", s.ID, s.Parents, s.Message)
//	}
package script
