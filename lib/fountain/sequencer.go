// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package fountain

import (
	"fmt"

	"github.com/urkit-dev/urkit/lib/codec"
	"github.com/urkit-dev/urkit/lib/ur"
)

// ParameterValidationError reports an invalid GenerationConfig. It is
// returned before any fragment is produced.
type ParameterValidationError struct {
	Parameter string
	Detail    string
}

func (e *ParameterValidationError) Error() string {
	return fmt.Sprintf("invalid generation parameter %s: %s", e.Parameter, e.Detail)
}

// RedundancyMode selects finite or infinite fragment generation.
type RedundancyMode struct {
	infinite bool
	ratio    float64
}

// FiniteRedundancy materializes all pure fragments plus ratio
// additional full passes of mixed fragments. ratio 0 means pure
// fragments only.
func FiniteRedundancy(ratio float64) RedundancyMode {
	return RedundancyMode{ratio: ratio}
}

// InfiniteRedundancy streams fragments indefinitely; nothing is ever
// materialized.
func InfiniteRedundancy() RedundancyMode {
	return RedundancyMode{infinite: true}
}

// Infinite reports whether the mode streams without bound.
func (m RedundancyMode) Infinite() bool { return m.infinite }

// Ratio returns the finite redundancy ratio. Zero in infinite mode.
func (m RedundancyMode) Ratio() float64 { return m.ratio }

// GenerationConfig parameterizes a Sequencer. Immutable once a
// sequencer is built from it.
type GenerationConfig struct {
	// MaxFragmentLen and MinFragmentLen bound the fragment payload
	// size in bytes. Both must be positive and min strictly below max.
	MaxFragmentLen int
	MinFragmentLen int

	// FirstSeqNum is where the fragment sequence numbering starts,
	// normally 1. Values past the pure range resume an earlier stream
	// mid-sequence.
	FirstSeqNum int

	// Redundancy selects finite or infinite generation.
	Redundancy RedundancyMode
}

// Validate checks the config, failing fast before any fragment is
// produced.
func (c GenerationConfig) Validate() error {
	if c.MinFragmentLen <= 0 {
		return &ParameterValidationError{Parameter: "MinFragmentLen", Detail: fmt.Sprintf("%d is not positive", c.MinFragmentLen)}
	}
	if c.MaxFragmentLen <= 0 {
		return &ParameterValidationError{Parameter: "MaxFragmentLen", Detail: fmt.Sprintf("%d is not positive", c.MaxFragmentLen)}
	}
	if c.MinFragmentLen >= c.MaxFragmentLen {
		return &ParameterValidationError{
			Parameter: "MinFragmentLen",
			Detail:    fmt.Sprintf("%d must be strictly below MaxFragmentLen %d", c.MinFragmentLen, c.MaxFragmentLen),
		}
	}
	if c.FirstSeqNum < 1 {
		return &ParameterValidationError{Parameter: "FirstSeqNum", Detail: fmt.Sprintf("%d must be >= 1", c.FirstSeqNum)}
	}
	if !c.Redundancy.infinite && c.Redundancy.ratio < 0 {
		return &ParameterValidationError{Parameter: "Redundancy", Detail: fmt.Sprintf("ratio %v is negative", c.Redundancy.ratio)}
	}
	return nil
}

// Sequencer is the encode-side generator. In finite mode the full
// fragment list is materialized at construction; in infinite mode
// fragments are produced lazily and the cursor advances without
// bound. Not safe for concurrent use.
type Sequencer struct {
	gateway codec.Gateway
	config  GenerationConfig
	payload ur.UR
	encoder codec.FountainEncoder

	// fragments is populated only in finite mode.
	fragments []string

	// cursor counts fragments handed out in infinite mode.
	cursor int

	observers      map[int]func(index int, fragment string)
	nextObserverID int
}

// NewSequencer builds a sequencer for payload. The config is
// validated before the encoder is constructed.
func NewSequencer(gateway codec.Gateway, payload ur.UR, config GenerationConfig) (*Sequencer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	encoder, err := gateway.NewFountainEncoder(payload, config.MaxFragmentLen, config.MinFragmentLen, config.FirstSeqNum)
	if err != nil {
		return nil, fmt.Errorf("constructing fountain encoder: %w", err)
	}

	s := &Sequencer{
		gateway:   gateway,
		config:    config,
		payload:   payload,
		encoder:   encoder,
		observers: make(map[int]func(int, string)),
	}

	if !config.Redundancy.Infinite() {
		fragments, err := encoder.Fragments(config.Redundancy.Ratio())
		if err != nil {
			return nil, fmt.Errorf("materializing fragments: %w", err)
		}
		s.fragments = fragments
	}
	return s, nil
}

// Subscribe registers an observer called synchronously each time a
// fragment is handed out (NextFragment or FragmentAt). The returned
// function cancels the registration.
func (s *Sequencer) Subscribe(observer func(index int, fragment string)) (cancel func()) {
	id := s.nextObserverID
	s.nextObserverID++
	s.observers[id] = observer
	return func() { delete(s.observers, id) }
}

func (s *Sequencer) notify(index int, fragment string) {
	for _, observer := range s.observers {
		observer(index, fragment)
	}
}

// Infinite reports the generation mode.
func (s *Sequencer) Infinite() bool { return s.config.Redundancy.Infinite() }

// OriginalBlockCount returns the number of pure fragments needed to
// cover the payload once.
func (s *Sequencer) OriginalBlockCount() int { return s.encoder.BlockCount() }

// FragmentCount returns the materialized fragment count. ok is false
// in infinite mode, where no list exists.
func (s *Sequencer) FragmentCount() (count int, ok bool) {
	if s.Infinite() {
		return 0, false
	}
	return len(s.fragments), true
}

// AllFragments returns the materialized list in its deterministic
// order: every pure fragment once, then the redundancy passes. Errors
// in infinite mode.
func (s *Sequencer) AllFragments() ([]string, error) {
	if s.Infinite() {
		return nil, fmt.Errorf("infinite sequencer has no fragment list")
	}
	return append([]string(nil), s.fragments...), nil
}

// FragmentAt returns the materialized fragment at index. Errors in
// infinite mode or when index is out of range.
func (s *Sequencer) FragmentAt(index int) (string, error) {
	if s.Infinite() {
		return "", fmt.Errorf("infinite sequencer has no fragment list")
	}
	if index < 0 || index >= len(s.fragments) {
		return "", fmt.Errorf("fragment index %d out of range [0,%d)", index, len(s.fragments))
	}
	fragment := s.fragments[index]
	s.notify(index, fragment)
	return fragment, nil
}

// NextFragment advances the unbounded cursor and returns a fresh
// fragment. Only valid in infinite mode; finite sequencers are
// addressed through their materialized list.
func (s *Sequencer) NextFragment() (string, error) {
	if !s.Infinite() {
		return "", fmt.Errorf("finite sequencer is addressed by index, not stream")
	}
	fragment, err := s.encoder.NextFragment()
	if err != nil {
		return "", fmt.Errorf("generating fragment: %w", err)
	}
	index := s.cursor
	s.cursor++
	s.notify(index, fragment)
	return fragment, nil
}

// Cursor returns how many fragments the infinite stream has produced.
func (s *Sequencer) Cursor() int { return s.cursor }

// BlockMembership reports which original blocks a fragment mixes.
// The fragment is fed to a disposable assembler and the seen bitmap
// read back.
func (s *Sequencer) BlockMembership(fragmentText string) (Bitmap, error) {
	probe := NewAssembler(s.gateway)
	receipt := probe.Receive(fragmentText)
	switch receipt.Result {
	case ReceiveAccepted:
		return probe.Snapshot().Seen, nil
	case ReceiveRejected:
		return nil, fmt.Errorf("fragment not accepted for introspection: %s", receipt.Reason)
	default:
		return nil, fmt.Errorf("fragment not accepted for introspection: unexpected %v", receipt.Result)
	}
}
