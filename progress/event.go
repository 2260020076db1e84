// Package progress carries bagging progress from a Bagger to whoever is
// watching it. The stream is one way and typed: the producer never blocks,
// and a consumer that goes away simply stops receiving.
package progress

// Event is one progress notification. The set of variants is closed: it is
// exactly the types declared in this file.
type Event interface {
	event()
}

// Started is sent once the input tree has been enumerated.
type Started struct {
	TotalFiles int // number of regular files found
}

// Moving is sent before each top-level entry is moved under data/.
type Moving struct {
	Current  int // 1-based
	Filename string
}

// Checksumming is sent before each payload file is hashed. Filename is the
// manifest path, e.g. "data/sub/y.txt".
type Checksumming struct {
	Current  int // 1-based
	Filename string
}

// Done is the last event sent for a successful bag.
type Done struct {
	Path string
}

// Error is never sent by a Bagger. Observers synthesize it from the error
// the Bagger returns, so a single stream covers every terminal state.
type Error struct {
	Message string
}

func (Started) event()      {}
func (Moving) event()       {}
func (Checksumming) event() {}
func (Done) event()         {}
func (Error) event()        {}

// A Sink accepts progress events. Emit must not block the caller.
type Sink interface {
	Emit(e Event)
}

type discard struct{}

func (discard) Emit(Event) {}

// Discard is a Sink which drops every event.
var Discard Sink = discard{}
