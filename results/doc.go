// Package results persists sweep outcomes through database/sql.
//
// Two drivers are supported: "sqlite" (modernc.org/sqlite, pure Go) and
// "pgx" (github.com/jackc/pgx/v5/stdlib). Queries are written with "?"
// placeholders and rebound for postgres.
//
// Every saved sweep is a Run keyed by a snowflake identifier; its points
// are stored in order as JSON documents next to the point-level error text.
//
// ⚙️ Usage:
//
//	st, err := results.Open("sqlite", "runs.db")
//	run, err := st.SaveRun(ctx, "cruise", outcomes)
//	runs, err := st.Runs(ctx)
//	back, err := st.Outcomes(ctx, run.ID)
package results
