// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package convert

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/urkit-dev/urkit/lib/codec"
	"github.com/urkit-dev/urkit/lib/format"
	"github.com/urkit-dev/urkit/lib/fountain"
	"github.com/urkit-dev/urkit/lib/registry"
	"github.com/urkit-dev/urkit/lib/ur"
)

// Options tune a single conversion.
type Options struct {
	// URTypeOverride names the UR type for a UR target when the
	// payload itself does not determine one. It is sanitized to the
	// UR type pattern before use.
	URTypeOverride string

	// BytewordsInStyle is the style assumed for bytewords source
	// text. Defaults to standard.
	BytewordsInStyle codec.BytewordsStyle

	// BytewordsOutStyle is the style for bytewords target output.
	// Defaults to standard.
	BytewordsOutStyle codec.BytewordsStyle
}

// normalized fills style defaults.
func (o Options) normalized() Options {
	if o.BytewordsInStyle == "" {
		o.BytewordsInStyle = codec.BytewordsStandard
	}
	if o.BytewordsOutStyle == "" {
		o.BytewordsOutStyle = codec.BytewordsStandard
	}
	return o
}

// digest is the options' contribution to the cache key.
func (o Options) digest() string {
	return strings.Join([]string{o.URTypeOverride, string(o.BytewordsInStyle), string(o.BytewordsOutStyle)}, "\x00")
}

// Output is one successful conversion result.
type Output struct {
	// Text is the rendered target text.
	Text string

	// Value is the normalized structured value for decoded targets,
	// nil otherwise.
	Value any

	// UR is set when the conversion parsed or rendered a UR.
	UR *ur.UR

	// SourceFormat and TargetFormat echo the conversion request.
	SourceFormat format.Format
	TargetFormat format.Format

	// UsedFallback reports that the registry-typed decode failed or
	// the type was unknown, and the generic CBOR decode served
	// instead. This is the system's only silent recovery, surfaced
	// here so diagnostics can show it.
	UsedFallback bool

	// FromCache reports that this result was served from the
	// conversion cache.
	FromCache bool
}

// Orchestrator drives detection-classified text through parse, pivot,
// and target rendering. Single-owner; see the package comment.
type Orchestrator struct {
	gateway  codec.Gateway
	registry *registry.Registry
	logger   *slog.Logger
	cache    *resultCache
	last     *Output
}

// NewOrchestrator wires an orchestrator. reg may be nil (no registry
// types resolve); logger may be nil (silent).
func NewOrchestrator(gateway codec.Gateway, reg *registry.Registry, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		gateway:  gateway,
		registry: reg,
		logger:   logger,
		cache:    newResultCache(cacheCapacity),
	}
}

// LastResult returns the most recent successful conversion, or nil.
// An explicit accessor; there is no global "last decoded value".
func (o *Orchestrator) LastResult() *Output { return o.last }

// parseResult is the outcome of the source-parsing step.
type parseResult struct {
	pivotHex string
	parsedUR *ur.UR

	// sourceValue is set for decoded-JSON sources.
	sourceValue any
}

// Convert runs one conversion. Every error is one of the typed errors
// in this package or a codec error wrapped with context.
func (o *Orchestrator) Convert(rawInput string, source, target format.Format, options Options) (*Output, error) {
	options = options.normalized()

	if !o.supportedSource(source) || !o.supportedTarget(target) {
		return nil, &UnsupportedFormatPairError{Source: source, Target: target}
	}

	key := makeCacheKey(rawInput, source, target, options.digest())
	if cached, ok := o.cache.get(key); ok {
		result := *cached
		result.FromCache = true
		o.last = &result
		return &result, nil
	}

	parsed, err := o.parseSource(rawInput, source, options)
	if err != nil {
		return nil, err
	}

	output, err := o.renderTarget(parsed, source, target, options)
	if err != nil {
		return nil, err
	}

	o.cache.put(key, output)
	o.last = output
	return output, nil
}

// supportedSource admits the parseable formats. The render-only
// decoded variants (diagnostic, annotated) cannot be re-encoded:
// only the canonical JSON-shaped decoded form round-trips.
func (o *Orchestrator) supportedSource(source format.Format) bool {
	switch source {
	case format.MultipartUR, format.UR, format.Hex, format.Bytewords, format.DecodedJSON:
		return true
	}
	return false
}

func (o *Orchestrator) supportedTarget(target format.Format) bool {
	switch target {
	case format.UR, format.Hex, format.Bytewords,
		format.DecodedJSON, format.DecodedDiagnostic, format.DecodedAnnotated:
		return true
	}
	return false
}

// parseSource turns raw text into the hex payload pivot.
func (o *Orchestrator) parseSource(rawInput string, source format.Format, options Options) (parseResult, error) {
	switch source {
	case format.MultipartUR:
		return o.assembleMultipart(rawInput)

	case format.UR:
		parsed, err := o.gateway.ParseUR(rawInput)
		if err != nil {
			return parseResult{}, &InvalidURError{Detail: err.Error()}
		}
		return parseResult{pivotHex: parsed.PayloadHex, parsedUR: &parsed}, nil

	case format.Hex:
		trimmed := strings.TrimSpace(rawInput)
		if len(trimmed)%2 != 0 {
			return parseResult{}, &InvalidHexError{Detail: fmt.Sprintf("odd length %d", len(trimmed))}
		}
		if _, err := hex.DecodeString(trimmed); err != nil {
			return parseResult{}, &InvalidHexError{Detail: err.Error()}
		}
		return parseResult{pivotHex: strings.ToLower(trimmed)}, nil

	case format.Bytewords:
		pivotHex, err := o.gateway.BytewordsDecode(rawInput, options.BytewordsInStyle)
		if err != nil {
			return parseResult{}, fmt.Errorf("decoding bytewords: %w", err)
		}
		return parseResult{pivotHex: pivotHex}, nil

	case format.DecodedJSON:
		stripped := jsonc.ToJSON([]byte(rawInput))
		value, err := decodeJSONValue(stripped)
		if err != nil {
			return parseResult{}, &InvalidJSONError{Detail: err.Error()}
		}
		pivotHex, err := o.gateway.EncodeValueToHex(value)
		if err != nil {
			return parseResult{}, fmt.Errorf("encoding value to CBOR: %w", err)
		}
		return parseResult{pivotHex: pivotHex, sourceValue: value}, nil
	}
	return parseResult{}, &UnsupportedFormatPairError{Source: source}
}

// decodeJSONValue parses a JSON document, keeping integral numbers as
// integers so re-encoding produces the same CBOR that decoded to them.
func decodeJSONValue(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if decoder.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return convertJSONNumbers(value), nil
}

func convertJSONNumbers(v any) any {
	switch value := v.(type) {
	case json.Number:
		if integer, err := value.Int64(); err == nil {
			return integer
		}
		if floating, err := value.Float64(); err == nil {
			return floating
		}
		return value.String()

	case map[string]any:
		for key, element := range value {
			value[key] = convertJSONNumbers(element)
		}
		return value

	case []any:
		for index, element := range value {
			value[index] = convertJSONNumbers(element)
		}
		return value

	default:
		return v
	}
}

// assembleMultipart delegates a pasted fragment set to a fresh
// assembler. Incomplete assembly is terminal for the given text.
func (o *Orchestrator) assembleMultipart(rawInput string) (parseResult, error) {
	assembler := fountain.NewAssembler(o.gateway)
	for _, line := range strings.Split(rawInput, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		receipt := assembler.Receive(line)
		if receipt.Result == fountain.ReceiveMismatch {
			return parseResult{}, &InvalidURError{
				Detail: fmt.Sprintf("fragment type %q conflicts with established type %q", receipt.GotType, receipt.ExpectedType),
			}
		}
	}
	if !assembler.IsComplete() {
		return parseResult{}, &AssemblyIncompleteError{Progress: assembler.Progress()}
	}
	resolved, err := assembler.ResolvedUR()
	if err != nil {
		return parseResult{}, &InvalidURError{Detail: err.Error()}
	}
	return parseResult{pivotHex: resolved.PayloadHex, parsedUR: &resolved}, nil
}

// renderTarget renders the pivot into the target format.
func (o *Orchestrator) renderTarget(parsed parseResult, source, target format.Format, options Options) (*Output, error) {
	output := &Output{
		SourceFormat: source,
		TargetFormat: target,
		UR:           parsed.parsedUR,
	}

	switch target {
	case format.Hex:
		output.Text = parsed.pivotHex

	case format.Bytewords:
		text, err := o.gateway.BytewordsEncode(parsed.pivotHex, options.BytewordsOutStyle)
		if err != nil {
			return nil, fmt.Errorf("encoding bytewords: %w", err)
		}
		output.Text = text

	case format.DecodedJSON, format.DecodedDiagnostic, format.DecodedAnnotated:
		if err := o.renderDecoded(parsed, target, output); err != nil {
			return nil, err
		}

	case format.UR:
		if err := o.renderUR(parsed, options, output); err != nil {
			return nil, err
		}
	}
	return output, nil
}

// renderDecoded renders the decoded family. Registry-typed decode is
// attempted when a type is known; on failure or unknown type it falls
// back to the generic CBOR decode, recording the fallback in the
// output.
func (o *Orchestrator) renderDecoded(parsed parseResult, target format.Format, output *Output) error {
	var structured any
	typeName := ""
	if parsed.parsedUR != nil {
		typeName = parsed.parsedUR.Type
	}

	if typeName != "" {
		if typed, ok := o.gateway.TryDecodeRegistryType(typeName, parsed.pivotHex); ok {
			structured = typed
		} else {
			output.UsedFallback = true
			if o.logger != nil {
				o.logger.Debug("registry decode unavailable, using generic CBOR decode",
					"type", typeName)
			}
		}
	}
	if structured == nil {
		generic, err := o.gateway.DecodeCBORHex(parsed.pivotHex)
		if err != nil {
			return fmt.Errorf("decoding CBOR payload: %w", err)
		}
		structured = generic
	}

	normalized := codec.Normalize(structured)
	output.Value = normalized

	switch target {
	case format.DecodedDiagnostic:
		data, err := hex.DecodeString(parsed.pivotHex)
		if err != nil {
			return &InvalidHexError{Detail: err.Error()}
		}
		notation, err := codec.Diagnose(data)
		if err != nil {
			return fmt.Errorf("rendering diagnostic notation: %w", err)
		}
		output.Text = notation

	case format.DecodedAnnotated:
		rendered, err := json.MarshalIndent(normalized, "", "  ")
		if err != nil {
			return fmt.Errorf("rendering JSON: %w", err)
		}
		output.Text = annotateDecoded(parsed, typeName, output.UsedFallback) + string(rendered)

	default:
		rendered, err := json.MarshalIndent(normalized, "", "  ")
		if err != nil {
			return fmt.Errorf("rendering JSON: %w", err)
		}
		output.Text = string(rendered)
	}
	return nil
}

// annotateDecoded builds the comment header for the annotated decoded
// view. The result is display-only and never re-parsed.
func annotateDecoded(parsed parseResult, typeName string, usedFallback bool) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "// %d CBOR bytes\n", len(parsed.pivotHex)/2)
	switch {
	case typeName != "" && !usedFallback:
		fmt.Fprintf(&builder, "// registry type: %s\n", typeName)
	case typeName != "":
		fmt.Fprintf(&builder, "// registry type %s unavailable; generic decode\n", typeName)
	default:
		builder.WriteString("// no registry type; generic decode\n")
	}
	return builder.String()
}

// renderUR renders a UR target. Type resolution order: the parsed
// UR's own type, then registry lookup on the decoded structure, then
// the sanitized override, then the reserved anonymous-payload type.
func (o *Orchestrator) renderUR(parsed parseResult, options Options, output *Output) error {
	typeName := ""
	if parsed.parsedUR != nil && parsed.parsedUR.Type != "" {
		typeName = parsed.parsedUR.Type
	}

	if typeName == "" && o.registry != nil {
		if decoded, err := o.gateway.DecodeCBORHex(parsed.pivotHex); err == nil {
			if resolved, ok := o.registry.ResolveType(decoded); ok {
				typeName = resolved
			}
		}
	}

	if typeName == "" && options.URTypeOverride != "" {
		sanitized := ur.SanitizeType(options.URTypeOverride)
		if sanitized == "" {
			return &MissingURTypeError{Override: options.URTypeOverride}
		}
		typeName = sanitized
	}

	if typeName == "" {
		typeName = ur.UnknownTagType
	}

	text, err := o.gateway.RenderUR(typeName, parsed.pivotHex)
	if err != nil {
		return &InvalidURError{Detail: err.Error()}
	}
	output.Text = text
	rendered, err := ur.New(typeName, parsed.pivotHex)
	if err != nil {
		return &InvalidURError{Detail: err.Error()}
	}
	output.UR = &rendered
	return nil
}
