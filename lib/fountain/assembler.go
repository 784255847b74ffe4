// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package fountain

import (
	"fmt"

	"github.com/urkit-dev/urkit/lib/codec"
	"github.com/urkit-dev/urkit/lib/ur"
)

// State is the assembler's lifecycle position.
type State int

const (
	// StateIdle is a fresh or reset assembler with no fragments yet.
	StateIdle State = iota

	// StateAssembling means at least one fragment was accepted and
	// blocks remain unresolved.
	StateAssembling

	// StateComplete means every block is resolved and the payload is
	// frozen.
	StateComplete

	// StateMismatch is the sticky condition entered when a fragment
	// of a different UR type arrives. Only Reset leaves it.
	StateMismatch
)

// String returns the state's name for logs and observers.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAssembling:
		return "assembling"
	case StateComplete:
		return "complete"
	case StateMismatch:
		return "mismatch"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ReceiveResult classifies the outcome of one Receive call.
type ReceiveResult int

const (
	// ReceiveAccepted means the fragment was ingested (possibly as a
	// no-op duplicate).
	ReceiveAccepted ReceiveResult = iota

	// ReceiveRejected means the fragment was not ingested; Reason
	// explains why. The session state is unchanged.
	ReceiveRejected

	// ReceiveMismatch means the fragment's UR type differs from the
	// established type. The assembler is now in StateMismatch; all
	// bitmaps are untouched.
	ReceiveMismatch
)

// Receipt reports the outcome of one Receive call. Expected control
// flow only: a malformed fragment is a rejection, not an error.
type Receipt struct {
	Result ReceiveResult

	// Reason is set for rejections.
	Reason string

	// ExpectedType and GotType are set for mismatches.
	ExpectedType string
	GotType      string
}

// AssemblyState is a snapshot of one assembly session. Decoded's
// popcount never decreases over a session; ResolvedPayloadHex is set
// exactly once, when all ExpectedBlockCount blocks are decoded.
type AssemblyState struct {
	// EstablishedType is the UR type locked in by the first accepted
	// fragment. Empty until then.
	EstablishedType string

	// Seen marks blocks touched by any accepted fragment.
	Seen Bitmap

	// Decoded marks fully resolved blocks.
	Decoded Bitmap

	// ExpectedBlockCount is the total number of original blocks, 0
	// until known.
	ExpectedBlockCount int

	// ResolvedPayloadHex is the assembled payload, set on completion.
	ResolvedPayloadHex string
}

// Assembler is the decode-side state machine. One per scan session;
// not safe for concurrent use.
type Assembler struct {
	gateway codec.Gateway
	decoder codec.FountainDecoder

	state    State
	assembly AssemblyState

	observers      map[int]func(State)
	nextObserverID int
}

// NewAssembler returns an idle Assembler drawing its fountain decoder
// from gateway.
func NewAssembler(gateway codec.Gateway) *Assembler {
	return &Assembler{
		gateway:   gateway,
		decoder:   gateway.NewFountainDecoder(),
		state:     StateIdle,
		observers: make(map[int]func(State)),
	}
}

// Subscribe registers an observer called synchronously on every state
// transition. The returned function cancels the registration.
func (a *Assembler) Subscribe(observer func(State)) (cancel func()) {
	id := a.nextObserverID
	a.nextObserverID++
	a.observers[id] = observer
	return func() { delete(a.observers, id) }
}

// transition moves to next and notifies observers if the state
// actually changed.
func (a *Assembler) transition(next State) {
	if a.state == next {
		return
	}
	a.state = next
	for _, observer := range a.observers {
		observer(next)
	}
}

// Receive ingests one fragment string. Mismatch and rejection are
// ordinary outcomes carried in the Receipt; nothing here is fatal.
func (a *Assembler) Receive(fragmentText string) Receipt {
	if a.state == StateMismatch {
		return Receipt{Result: ReceiveRejected, Reason: "type mismatch pending reset"}
	}

	parsed, err := a.gateway.ParseUR(fragmentText)
	if err != nil {
		return Receipt{Result: ReceiveRejected, Reason: fmt.Sprintf("unparseable fragment: %v", err)}
	}

	if a.assembly.EstablishedType != "" && parsed.Type != a.assembly.EstablishedType {
		expected, got := a.assembly.EstablishedType, parsed.Type
		a.transition(StateMismatch)
		return Receipt{Result: ReceiveMismatch, ExpectedType: expected, GotType: got}
	}

	accepted, err := a.decoder.Receive(fragmentText)
	if err != nil {
		return Receipt{Result: ReceiveRejected, Reason: fmt.Sprintf("fragment decode failed: %v", err)}
	}
	if !accepted {
		return Receipt{Result: ReceiveRejected, Reason: "fragment does not belong to this assembly"}
	}

	// Type establishment happens on the first accepted fragment,
	// whether or not the decoder resolved anything from it.
	if a.assembly.EstablishedType == "" {
		a.assembly.EstablishedType = parsed.Type
	}

	a.assembly.Seen = bitmapFromIndices(a.decoder.SeenBlocks())
	a.assembly.Decoded = bitmapFromIndices(a.decoder.DecodedBlocks())
	a.assembly.ExpectedBlockCount = a.decoder.ExpectedBlockCount()

	if a.decoder.IsComplete() && a.assembly.ResolvedPayloadHex == "" {
		payloadHex, err := a.decoder.AssembledPayloadHex()
		if err != nil {
			return Receipt{Result: ReceiveRejected, Reason: fmt.Sprintf("assembly readout failed: %v", err)}
		}
		a.assembly.ResolvedPayloadHex = payloadHex
		a.transition(StateComplete)
		return Receipt{Result: ReceiveAccepted}
	}

	if a.state == StateIdle {
		a.transition(StateAssembling)
	}
	return Receipt{Result: ReceiveAccepted}
}

// IsComplete reports whether every expected block is decoded. True
// trivially for single-part URs after their first receipt.
func (a *Assembler) IsComplete() bool {
	return a.state == StateComplete
}

// Progress returns the resolved fraction in [0,1], based on decoded
// blocks rather than raw fragment receipts: redundant mixed fragments
// do not advance it.
func (a *Assembler) Progress() float64 {
	if a.assembly.ExpectedBlockCount == 0 {
		return 0
	}
	return float64(a.assembly.Decoded.Popcount()) / float64(a.assembly.ExpectedBlockCount)
}

// State returns the current lifecycle state.
func (a *Assembler) State() State { return a.state }

// Snapshot returns an independent copy of the session state.
func (a *Assembler) Snapshot() AssemblyState {
	snapshot := a.assembly
	snapshot.Seen = a.assembly.Seen.Clone()
	snapshot.Decoded = a.assembly.Decoded.Clone()
	return snapshot
}

// ResolvedUR returns the assembled payload as a UR value. Errors
// until the assembly completes.
func (a *Assembler) ResolvedUR() (ur.UR, error) {
	if a.state != StateComplete {
		return ur.UR{}, fmt.Errorf("assembly incomplete: %d of %d blocks decoded",
			a.assembly.Decoded.Popcount(), a.assembly.ExpectedBlockCount)
	}
	return ur.New(a.assembly.EstablishedType, a.assembly.ResolvedPayloadHex)
}

// Reset clears all session state and returns to StateIdle. This is
// the only way out of StateMismatch.
func (a *Assembler) Reset() {
	a.decoder.Reset()
	a.assembly = AssemblyState{}
	a.transition(StateIdle)
}
