// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package format classifies raw pasted or scanned text into one of
// the conversion formats. Detection is a pure function over the text;
// nothing here touches the codec.
package format
