// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

// Package ur defines the Uniform Resource data model: the UR value
// type, type-name validation, and the string surgery shared by the
// detector, the codec gateway, and the fountain layer.
//
// A UR string has the shape "ur:<type>/<body>" for single-part
// resources and "ur:<type>/<seq>of<total>/<body>" for one fragment of
// a multi-part resource. The body encoding (bytewords) and the
// fragment payload format are the codec gateway's responsibility;
// this package only handles the outer structure.
package ur
