// Package typewriter reveals the text of one or more targets character by
// character.
//
// The package is built around a few types:
//
//   - [Target]: an element with mutable text, colour, margin and a cursor marker
//   - [Timeline]: drives one target through INIT, REVEALING and then either
//     DONE or an endless repeat loop
//   - [Engine]: fans a set of targets out into timelines
//   - [Completion]: settles once every timeline of a Run has finished
//
// # Example
//
//	eng := typewriter.New(typewriter.WithLogger(log))
//	done := eng.Run(ctx, targets, config.Options{Speed: config.Int(70)})
//	value, err := done.Wait(ctx)
//
// # Repeating targets
//
// A target configured with Repeat never finishes. A [Completion] that includes
// one only settles when the context given to [Engine.Run] is cancelled.
//
// # Thread Safety
//
// Timelines run on their own goroutines. Observers are called from all of
// them concurrently and must be safe for concurrent use.
package typewriter
