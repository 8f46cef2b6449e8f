// Package notemint is the composition root for the notemint application.
//
// It wires the domain core (eligibility rules, rename orchestration) to
// the infrastructure adapters (filesystem store, fsnotify watcher)
// following a hexagonal layout: the core stays ignorant of fsnotify and
// the disk.
//
// Philosophy:
//
// A note's visible filename is cosmetic; its identity should not be. When
// a new note appears directly inside a configured base location, notemint
// waits for it to settle, re-checks that nothing else is still writing to
// it, and renames it to a canonical UUID while keeping its extension and
// folder. Links keep working no matter how often the title changes.
//
// Features:
//
//   - **Eligibility pipeline**: extension, base location, already-an-identifier,
//     ignore patterns, and template-marker checks, re-verified against live
//     state at commit time.
//   - **Settling delay**: templating tools get time to finish before a note
//     is touched; notes still being populated are left alone.
//   - **Fail closed**: with no base locations configured nothing is renamed.
//   - **Explicit command**: a single note can be renamed on demand,
//     bypassing the location check.
//   - **One-shot scan**: catch up on notes created while no watcher ran.
//
// Usage:
//
//	rt, err := notemint.New("./vault",
//		notemint.WithSettings(config.Settings{BaseLocations: "Inbox"}),
//		notemint.WithLogger(logger),
//	)
//	if err != nil { ... }
//	if err := rt.Start(ctx); err != nil { ... }
//	defer rt.Stop(context.Background())
package notemint
