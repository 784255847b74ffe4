// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package codectest

import (
	"encoding/hex"
	"fmt"
	"hash/crc32"
	"math"
	"sort"

	"github.com/urkit-dev/urkit/lib/codec"
	"github.com/urkit-dev/urkit/lib/ur"
)

// fragmentWire is the CBOR structure inside each fragment body.
type fragmentWire struct {
	_          struct{} `cbor:",toarray"`
	SeqNum     uint64
	BlockCount uint64
	MessageLen uint64
	Checksum   uint32
	Payload    []byte
}

// chooseBlocks returns the original block indices mixed into the
// fragment with the given sequence number. Sequence numbers 1 through
// blockCount are pure (one block each); later numbers mix a base
// block that cycles through all blocks (so every full pass covers
// every block) with a deterministic pseudo-random subset of the rest.
// Encoder and decoder derive the same members without sharing state.
func chooseBlocks(seqNum uint64, blockCount int) []int {
	if blockCount <= 0 {
		return nil
	}
	if seqNum >= 1 && seqNum <= uint64(blockCount) {
		return []int{int(seqNum - 1)}
	}

	base := int((seqNum - 1) % uint64(blockCount))
	if blockCount == 1 {
		return []int{base}
	}

	rng := xorshift(seqNum*2654435761 + uint64(blockCount))
	others := make([]int, 0, blockCount-1)
	for i := 0; i < blockCount; i++ {
		if i != base {
			others = append(others, i)
		}
	}
	// Fisher-Yates driven by the seeded generator.
	for i := len(others) - 1; i > 0; i-- {
		j := int(rng() % uint64(i+1))
		others[i], others[j] = others[j], others[i]
	}
	extra := 1
	if blockCount > 2 {
		extra += int(rng() % uint64(blockCount-1))
	}
	if extra > len(others) {
		extra = len(others)
	}
	members := append([]int{base}, others[:extra]...)
	sort.Ints(members)
	return members
}

// xorshift returns a deterministic 64-bit generator seeded by seed.
func xorshift(seed uint64) func() uint64 {
	state := seed
	if state == 0 {
		state = 1
	}
	return func() uint64 {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		return state
	}
}

// fountainEncoder is the synthetic encode-side primitive. Blocks are
// fixed-length slices of the padded message; mixed fragments XOR
// their member blocks together.
type fountainEncoder struct {
	urType      string
	message     []byte
	blocks      [][]byte
	fragmentLen int
	checksum    uint32
	nextSeqNum  uint64
}

func newFountainEncoder(payload ur.UR, maxLen, minLen, firstSeqNum int) (*fountainEncoder, error) {
	if minLen <= 0 || maxLen <= 0 {
		return nil, fmt.Errorf("fragment lengths must be positive (min %d, max %d)", minLen, maxLen)
	}
	if minLen >= maxLen {
		return nil, fmt.Errorf("min fragment length %d must be below max %d", minLen, maxLen)
	}
	if firstSeqNum < 1 {
		return nil, fmt.Errorf("first sequence number %d must be >= 1", firstSeqNum)
	}
	message, err := hexBytes(payload.PayloadHex)
	if err != nil {
		return nil, err
	}
	if len(message) == 0 {
		return nil, fmt.Errorf("empty payload")
	}

	fragmentLen := maxLen
	blockCount := (len(message) + fragmentLen - 1) / fragmentLen
	blocks := make([][]byte, blockCount)
	for i := range blocks {
		block := make([]byte, fragmentLen)
		copy(block, message[i*fragmentLen:min((i+1)*fragmentLen, len(message))])
		blocks[i] = block
	}

	return &fountainEncoder{
		urType:      payload.Type,
		message:     message,
		blocks:      blocks,
		fragmentLen: fragmentLen,
		checksum:    crc32.ChecksumIEEE(message),
		nextSeqNum:  uint64(firstSeqNum),
	}, nil
}

func (e *fountainEncoder) BlockCount() int { return len(e.blocks) }

func (e *fountainEncoder) Fragments(ratio float64) ([]string, error) {
	if ratio < 0 {
		return nil, fmt.Errorf("redundancy ratio %v is negative", ratio)
	}
	blockCount := len(e.blocks)
	extra := int(math.Round(ratio * float64(blockCount)))
	fragments := make([]string, 0, blockCount+extra)
	for seqNum := uint64(1); seqNum <= uint64(blockCount+extra); seqNum++ {
		fragments = append(fragments, e.fragmentForSeq(seqNum))
	}
	return fragments, nil
}

func (e *fountainEncoder) NextFragment() (string, error) {
	fragment := e.fragmentForSeq(e.nextSeqNum)
	e.nextSeqNum++
	return fragment, nil
}

// fragmentForSeq renders the fragment for one sequence number.
func (e *fountainEncoder) fragmentForSeq(seqNum uint64) string {
	mixed := make([]byte, e.fragmentLen)
	for _, member := range chooseBlocks(seqNum, len(e.blocks)) {
		for i, b := range e.blocks[member] {
			mixed[i] ^= b
		}
	}

	wire := fragmentWire{
		SeqNum:     seqNum,
		BlockCount: uint64(len(e.blocks)),
		MessageLen: uint64(len(e.message)),
		Checksum:   e.checksum,
		Payload:    mixed,
	}
	encoded, err := codec.Marshal(wire)
	if err != nil {
		// A fixed five-field array of integers and bytes always encodes.
		panic("codectest: fragment encode failed: " + err.Error())
	}

	seq := &ur.Sequence{Num: int(seqNum), Total: len(e.blocks)}
	typeName := e.urType
	if typeName == "" {
		typeName = ur.UnknownTagType
	}
	return ur.Assemble(typeName, seq, encodeBody(encoded))
}

// pendingFragment is an accepted mixed fragment whose member set has
// not yet peeled down to a single unresolved block.
type pendingFragment struct {
	members []int
	payload []byte
}

// fountainDecoder is the synthetic decode-side primitive: a standard
// XOR peeling decoder over the fragments produced by fountainEncoder.
type fountainDecoder struct {
	established bool
	blockCount  int
	messageLen  int
	checksum    uint32
	fragmentLen int

	resolved map[int][]byte
	seen     map[int]bool
	pending  []pendingFragment
	received map[string]bool
}

func newFountainDecoder() *fountainDecoder {
	d := &fountainDecoder{}
	d.Reset()
	return d
}

func (d *fountainDecoder) Reset() {
	d.established = false
	d.blockCount = 0
	d.messageLen = 0
	d.checksum = 0
	d.fragmentLen = 0
	d.resolved = make(map[int][]byte)
	d.seen = make(map[int]bool)
	d.pending = nil
	d.received = make(map[string]bool)
}

func (d *fountainDecoder) Receive(fragmentText string) (bool, error) {
	_, seq, body, err := ur.Parts(fragmentText)
	if err != nil {
		return false, fmt.Errorf("parsing fragment: %w", err)
	}
	decoded, err := decodeBody(body)
	if err != nil {
		return false, fmt.Errorf("decoding fragment body: %w", err)
	}

	if seq == nil {
		// Single-part UR: the body is the whole message.
		return d.receiveSinglePart(decoded)
	}

	var wire fragmentWire
	if err := codec.Unmarshal(decoded, &wire); err != nil {
		return false, fmt.Errorf("decoding fragment structure: %w", err)
	}
	if wire.BlockCount == 0 || len(wire.Payload) == 0 {
		return false, fmt.Errorf("fragment has empty geometry")
	}

	if d.established {
		if int(wire.BlockCount) != d.blockCount ||
			int(wire.MessageLen) != d.messageLen ||
			wire.Checksum != d.checksum ||
			len(wire.Payload) != d.fragmentLen {
			return false, nil
		}
	} else {
		d.established = true
		d.blockCount = int(wire.BlockCount)
		d.messageLen = int(wire.MessageLen)
		d.checksum = wire.Checksum
		d.fragmentLen = len(wire.Payload)
	}

	members := chooseBlocks(wire.SeqNum, d.blockCount)
	key := fmt.Sprintf("%v/%s", members, hex.EncodeToString(wire.Payload))
	if d.received[key] {
		// Structural duplicate: accepted, but a no-op.
		return true, nil
	}
	d.received[key] = true

	for _, member := range members {
		d.seen[member] = true
	}
	d.pending = append(d.pending, pendingFragment{
		members: members,
		payload: append([]byte(nil), wire.Payload...),
	})
	d.peel()
	return true, nil
}

func (d *fountainDecoder) receiveSinglePart(message []byte) (bool, error) {
	if d.established && d.blockCount != 1 {
		return false, nil
	}
	if d.established && d.checksum != crc32.ChecksumIEEE(message) {
		return false, nil
	}
	d.established = true
	d.blockCount = 1
	d.messageLen = len(message)
	d.checksum = crc32.ChecksumIEEE(message)
	d.fragmentLen = len(message)
	d.seen[0] = true
	d.resolved[0] = append([]byte(nil), message...)
	return true, nil
}

// peel repeatedly substitutes resolved blocks into pending fragments
// until no fragment reduces to a single unknown member.
func (d *fountainDecoder) peel() {
	progressed := true
	for progressed {
		progressed = false
		remaining := d.pending[:0]
		for _, fragment := range d.pending {
			unresolvedMembers := fragment.members[:0:0]
			payload := fragment.payload
			for _, member := range fragment.members {
				if block, ok := d.resolved[member]; ok {
					for i, b := range block {
						payload[i] ^= b
					}
				} else {
					unresolvedMembers = append(unresolvedMembers, member)
				}
			}
			switch len(unresolvedMembers) {
			case 0:
				// Fully redundant; drop it.
			case 1:
				d.resolved[unresolvedMembers[0]] = payload
				progressed = true
			default:
				remaining = append(remaining, pendingFragment{members: unresolvedMembers, payload: payload})
			}
		}
		d.pending = remaining
	}
}

func (d *fountainDecoder) IsComplete() bool {
	return d.established && len(d.resolved) == d.blockCount
}

func (d *fountainDecoder) AssembledPayloadHex() (string, error) {
	if !d.IsComplete() {
		return "", fmt.Errorf("assembly incomplete: %d of %d blocks resolved", len(d.resolved), d.blockCount)
	}
	message := make([]byte, 0, d.blockCount*d.fragmentLen)
	for i := 0; i < d.blockCount; i++ {
		message = append(message, d.resolved[i]...)
	}
	message = message[:d.messageLen]
	if crc32.ChecksumIEEE(message) != d.checksum {
		return "", fmt.Errorf("assembled message checksum mismatch")
	}
	return hex.EncodeToString(message), nil
}

func (d *fountainDecoder) SeenBlocks() []int    { return sortedKeys(d.seen) }
func (d *fountainDecoder) DecodedBlocks() []int { return sortedResolved(d.resolved) }

func (d *fountainDecoder) ExpectedBlockCount() int {
	if !d.established {
		return 0
	}
	return d.blockCount
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

func sortedResolved(blocks map[int][]byte) []int {
	keys := make([]int, 0, len(blocks))
	for key := range blocks {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}
