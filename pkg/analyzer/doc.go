// Package analyzer recognizes the schema operations performed by the upgrade
// function of an alembic migration script.
//
// Every top-level expression statement of upgrade() becomes exactly one
// Statement. Statements the analyzer understands are typed (CreateTable,
// AddColumn, Replaceable, ...); everything else is Unknown, so the length of
// Revision.Statements always equals the number of expression statements in the
// function body. Assignments, pass and other non-expression statements are
// ignored.
//
// Recognition is syntactic. Operations must be called on the configured
// operations handle (op by default) and columns must be built with the schema
// handle (sa by default):
//
//	op.create_table("user", sa.Column("id", sa.Integer), sa.Column("email", sa.Text))
//	op.add_column("user", sa.Column("name", sa.Text()))
//	op.replace_view(user_summary, replaces="2b1ae634e5cd.user_summary")
package analyzer
