// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package animate

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/urkit-dev/urkit/lib/clock"
	"github.com/urkit-dev/urkit/lib/fountain"
)

// State is the scheduler's play state.
type State int

const (
	// Stopped means no tick goroutine is running. The initial state.
	Stopped State = iota

	// Playing means the tick goroutine is advancing frames.
	Playing
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Frame is one fragment to display, with its position in the stream.
type Frame struct {
	// Index is the fragment's position: the materialized list index
	// in finite mode, the unbounded cursor position in infinite mode.
	Index int

	// Fragment is the UR fragment text to display.
	Fragment string
}

// Config parameterizes a Scheduler.
type Config struct {
	// FramesPerSecond sets the tick rate. Defaults to 8.
	FramesPerSecond float64

	// Clock supplies time. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives tick-skip warnings. May be nil.
	Logger *slog.Logger
}

const defaultFramesPerSecond = 8

// Scheduler advances a sequencer's fragments on a clock-driven
// cadence. It assumes exclusive ownership of the sequencer: all
// sequencer access goes through the scheduler while one is attached.
//
// Safe for concurrent use; the tick goroutine and callers share the
// internal mutex.
type Scheduler struct {
	mu        sync.Mutex
	sequencer *fountain.Sequencer
	clk       clock.Clock
	logger    *slog.Logger
	interval  time.Duration

	state      State
	current    Frame
	hasCurrent bool

	// cursor is the next frame index in finite mode. In infinite
	// mode the sequencer's own cursor is authoritative.
	cursor int

	// stop, when non-nil, terminates the running tick goroutine on
	// close.
	stop chan struct{}

	stateObservers map[int]func(State)
	frameObservers map[int]func(Frame)
	nextObserverID int
}

// NewScheduler binds a scheduler to a sequencer.
func NewScheduler(sequencer *fountain.Sequencer, config Config) (*Scheduler, error) {
	if sequencer == nil {
		return nil, fmt.Errorf("sequencer is required")
	}
	fps := config.FramesPerSecond
	if fps == 0 {
		fps = defaultFramesPerSecond
	}
	if fps < 0 {
		return nil, fmt.Errorf("frames per second %v is negative", fps)
	}
	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}
	return &Scheduler{
		sequencer:      sequencer,
		clk:            clk,
		logger:         config.Logger,
		interval:       time.Duration(float64(time.Second) / fps),
		stateObservers: make(map[int]func(State)),
		frameObservers: make(map[int]func(Frame)),
	}, nil
}

// State returns the current play state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Current returns the frame being shown. ok is false before the first
// frame.
func (s *Scheduler) Current() (frame Frame, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.hasCurrent
}

// Subscribe registers an observer for play-state transitions. The
// returned function cancels the registration.
func (s *Scheduler) Subscribe(observer func(State)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObserverID
	s.nextObserverID++
	s.stateObservers[id] = observer
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.stateObservers, id)
	}
}

// SubscribeFrames registers an observer called for every frame shown.
// The returned function cancels the registration.
func (s *Scheduler) SubscribeFrames(observer func(Frame)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObserverID
	s.nextObserverID++
	s.frameObservers[id] = observer
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.frameObservers, id)
	}
}

// Play starts the tick goroutine. The first frame is shown
// immediately; subsequent frames advance on each tick. Idempotent
// while playing.
func (s *Scheduler) Play() {
	s.mu.Lock()
	if s.state == Playing {
		s.mu.Unlock()
		return
	}
	s.state = Playing
	stop := make(chan struct{})
	s.stop = stop
	stateObservers := s.snapshotStateObserversLocked()
	s.mu.Unlock()

	for _, observer := range stateObservers {
		observer(Playing)
	}
	s.advance()
	go s.run(stop)
}

// Pause stops the tick goroutine. The current frame stays current.
// Idempotent while stopped.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	if s.state == Stopped {
		s.mu.Unlock()
		return
	}
	s.state = Stopped
	close(s.stop)
	s.stop = nil
	stateObservers := s.snapshotStateObserversLocked()
	s.mu.Unlock()

	for _, observer := range stateObservers {
		observer(Stopped)
	}
}

// Restart rewinds a finite loop to frame 0 and transitions to
// Playing, starting the tick goroutine if the scheduler was stopped.
// An infinite stream cannot rewind, so Restart leaves its cursor
// alone.
func (s *Scheduler) Restart() {
	s.mu.Lock()
	s.cursor = 0
	s.current = Frame{}
	s.hasCurrent = false
	s.mu.Unlock()
	s.Play()
}

// StepForward advances one frame manually, independent of the ticker.
func (s *Scheduler) StepForward() (Frame, error) {
	s.mu.Lock()
	frame, err := s.nextFrameLocked()
	if err != nil {
		s.mu.Unlock()
		return Frame{}, err
	}
	s.current = frame
	s.hasCurrent = true
	frameObservers := s.snapshotFrameObserversLocked()
	s.mu.Unlock()

	for _, observer := range frameObservers {
		observer(frame)
	}
	return frame, nil
}

// StepBackward moves one frame back in the finite loop, wrapping to
// the last fragment from frame 0. It fails in infinite mode and
// before the first frame has been shown.
func (s *Scheduler) StepBackward() (Frame, error) {
	s.mu.Lock()
	if s.sequencer.Infinite() {
		s.mu.Unlock()
		return Frame{}, fmt.Errorf("cannot step backward through an infinite stream")
	}
	if !s.hasCurrent {
		s.mu.Unlock()
		return Frame{}, fmt.Errorf("no frame shown yet")
	}
	count, _ := s.sequencer.FragmentCount()
	if count == 0 {
		s.mu.Unlock()
		return Frame{}, fmt.Errorf("sequencer has no fragments")
	}
	index := (s.current.Index - 1 + count) % count
	fragment, err := s.sequencer.FragmentAt(index)
	if err != nil {
		s.mu.Unlock()
		return Frame{}, err
	}
	frame := Frame{Index: index, Fragment: fragment}
	s.current = frame
	s.cursor = (index + 1) % count
	frameObservers := s.snapshotFrameObserversLocked()
	s.mu.Unlock()

	for _, observer := range frameObservers {
		observer(frame)
	}
	return frame, nil
}

// run is the tick goroutine. It owns the ticker and exits when stop
// closes.
func (s *Scheduler) run(stop chan struct{}) {
	ticker := s.clk.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.advance()
		}
	}
}

// advance shows the next frame. Generation failures skip the tick
// rather than stopping playback.
func (s *Scheduler) advance() {
	s.mu.Lock()
	frame, err := s.nextFrameLocked()
	if err != nil {
		logger := s.logger
		s.mu.Unlock()
		if logger != nil {
			logger.Warn("skipping animation frame", "error", err)
		}
		return
	}
	s.current = frame
	s.hasCurrent = true
	frameObservers := s.snapshotFrameObserversLocked()
	s.mu.Unlock()

	for _, observer := range frameObservers {
		observer(frame)
	}
}

// nextFrameLocked produces the next frame: the materialized list
// modulo its length in finite mode, a fresh fragment in infinite
// mode.
func (s *Scheduler) nextFrameLocked() (Frame, error) {
	if s.sequencer.Infinite() {
		fragment, err := s.sequencer.NextFragment()
		if err != nil {
			return Frame{}, err
		}
		return Frame{Index: s.sequencer.Cursor() - 1, Fragment: fragment}, nil
	}

	count, _ := s.sequencer.FragmentCount()
	if count == 0 {
		return Frame{}, fmt.Errorf("sequencer has no fragments")
	}
	index := s.cursor % count
	fragment, err := s.sequencer.FragmentAt(index)
	if err != nil {
		return Frame{}, err
	}
	s.cursor = (index + 1) % count
	return Frame{Index: index, Fragment: fragment}, nil
}

func (s *Scheduler) snapshotStateObserversLocked() []func(State) {
	observers := make([]func(State), 0, len(s.stateObservers))
	for _, observer := range s.stateObservers {
		observers = append(observers, observer)
	}
	return observers
}

func (s *Scheduler) snapshotFrameObserversLocked() []func(Frame) {
	observers := make([]func(Frame), 0, len(s.frameObservers))
	for _, observer := range s.frameObservers {
		observers = append(observers, observer)
	}
	return observers
}
