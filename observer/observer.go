// Package observer follows a bagging run from the outside. A Model runs a
// Bagger in the background and turns the progress events it sends into a
// small set of display states, which a front end can render on its own
// schedule.
package observer

import (
	"fmt"

	"github.com/ndlib/baggie/bagit"
	"github.com/ndlib/baggie/progress"
)

// State is what a front end should show. It is one of Idle, Processing,
// Finished, or Failed.
type State interface {
	state()
}

// Idle means no bag is being made.
type Idle struct{}

// Processing describes a bag in progress.
type Processing struct {
	Total   int    // regular files found when the run started
	Current int    // files checksummed so far
	File    string // entry being moved or checksummed
	Stage   string // human readable stage description
}

// Finished means the bag at Path was created.
type Finished struct {
	Path  string
	Count int
}

// Failed means the last run stopped with an error.
type Failed struct {
	Message string
}

func (Idle) state()       {}
func (Processing) state() {}
func (Finished) state()   {}
func (Failed) state()     {}

// Fraction returns how much of the checksumming has been done, between 0
// and 1. It is 0 while the number of files is unknown.
func (p Processing) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Current) / float64(p.Total)
}

// A Model tracks at most one bagging run at a time. It must only be used
// from a single goroutine. The Bagger itself runs on a goroutine of its own
// and talks to the Model only through a progress.Queue.
type Model struct {
	Bagger *bagit.Bagger

	state State
	queue *progress.Queue
}

// New returns an Idle Model which bags using b. A nil b means a default
// Bagger.
func New(b *bagit.Bagger) *Model {
	if b == nil {
		b = &bagit.Bagger{}
	}
	return &Model{Bagger: b, state: Idle{}}
}

// State returns the current state without looking for new events.
func (m *Model) State() State {
	return m.state
}

// Busy reports whether a run is in progress.
func (m *Model) Busy() bool {
	_, ok := m.state.(Processing)
	return ok
}

// Reset returns a finished or failed Model to Idle. It does nothing while a
// run is in progress.
func (m *Model) Reset() {
	if !m.Busy() {
		m.state = Idle{}
	}
}

// Start begins bagging path in the background. It returns false, and does
// nothing, if a run is already in progress.
func (m *Model) Start(path string) bool {
	if m.Busy() {
		return false
	}
	q := progress.NewQueue()
	m.queue = q
	m.state = Processing{Stage: "Starting..."}
	go run(m.Bagger, path, q)
	return true
}

// run is the background worker. An error from the Bagger becomes the final
// event on the queue.
func run(b *bagit.Bagger, path string, q *progress.Queue) {
	defer q.Close()
	err := b.Bag(path, q)
	if err != nil {
		q.Emit(progress.Error{Message: err.Error()})
	}
}

// Tick applies every event which has arrived since the last call, without
// waiting, and returns the resulting state.
func (m *Model) Tick() State {
	if m.queue == nil {
		return m.state
	}
	events, open := m.queue.Drain()
	for _, e := range events {
		m.Apply(e)
	}
	if !open && m.queue != nil {
		// the worker went away without a terminal event
		m.detach()
		if m.Busy() {
			m.state = Failed{Message: "bagging stopped unexpectedly"}
		}
	}
	return m.state
}

// Apply makes the transition for a single event. Events which do not make
// sense in the current state are ignored.
func (m *Model) Apply(e progress.Event) {
	switch e := e.(type) {
	case progress.Started:
		if m.Busy() {
			m.state = Processing{Total: e.TotalFiles, Stage: "Preparing..."}
		}
	case progress.Moving:
		if p, ok := m.state.(Processing); ok {
			p.File = e.Filename
			p.Stage = fmt.Sprintf("Moving files (%d/%d)", e.Current, p.Total)
			m.state = p
		}
	case progress.Checksumming:
		if p, ok := m.state.(Processing); ok {
			p.Current = e.Current
			p.File = e.Filename
			p.Stage = fmt.Sprintf("Checksumming (%d/%d)", e.Current, p.Total)
			m.state = p
		}
	case progress.Done:
		var count int
		if p, ok := m.state.(Processing); ok {
			count = p.Total
		}
		m.state = Finished{Path: e.Path, Count: count}
		m.detach()
	case progress.Error:
		m.state = Failed{Message: e.Message}
		m.detach()
	}
}

func (m *Model) detach() {
	if m.queue != nil {
		m.queue.Detach()
		m.queue = nil
	}
}
