// Package notemaster is the Composition Root for the NoteMaster application.
//
// It connects the note store (Domain Layer) with the storage adapters
// (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Features:
//
//   - **Write-through store**: every mutation is applied in memory and saved at once.
//     A failed save keeps the change and reports a degraded status.
//   - **Query engine**: tag filter, case-insensitive search and stable sorting.
//   - **Pluggable storage**: one file per key (`fs`), SQLite (`sqlite`) or `memory`,
//     encoded as JSON or YAML.
//   - **Import/Export**: plain text, Markdown, printable HTML and JSON backup bundles.
//   - **Settings reload**: settings and theme edited by another process are picked up
//     through fsnotify (fs backend). Notes are read once per session.
//
// Usage:
//
//	app, err := notemaster.Open(ctx, notemaster.DefaultDataDir(),
//		notemaster.WithBackend("sqlite"),
//		notemaster.WithLogger(logger),
//	)
//	defer app.Close()
//
//	c := app.Store.Create(ctx)
//	app.Store.Save(ctx, c.ID, core.Input{Title: "Groceries", Tags: "home"})
package notemaster
