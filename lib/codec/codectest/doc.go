// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package codectest is a complete, self-contained implementation of
// codec.Gateway. The CBOR surface is real (lib/codec); the bytewords
// word table and the fountain mixing are synthetic stand-ins with the
// same observable contract as a production codec: checksummed
// bytewords in three styles, and fountain fragments where any
// sufficient subset reconstructs the message.
//
// It exists so the conversion orchestrator, the fountain state
// machines, and the CLI can run without an external codec. Production
// embedders supply their own Gateway.
package codectest
