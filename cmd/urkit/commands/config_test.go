// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/urkit-dev/urkit/lib/codec"
)

// writeTestConfig writes a YAML config file and returns its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urkit.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfigFromFlag(t *testing.T) {
	t.Setenv(configEnvVar, "")
	path := writeTestConfig(t, `
bytewords_style: uri
ur_type: my-data
fragments:
  max_len: 50
  min_len: 5
  ratio: 2
  first_seq: 3
`)

	config, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if config.BytewordsStyle != "uri" || config.URType != "my-data" {
		t.Errorf("config = %+v, want uri style and my-data type", config)
	}
	if config.Fragments.MaxLen != 50 || config.Fragments.MinLen != 5 ||
		config.Fragments.Ratio != 2 || config.Fragments.FirstSeq != 3 {
		t.Errorf("fragments config = %+v", config.Fragments)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	path := writeTestConfig(t, "ur_type: env-type\n")
	t.Setenv(configEnvVar, path)

	config, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if config.URType != "env-type" {
		t.Errorf("URType = %q, want env-type", config.URType)
	}
}

func TestLoadConfigFlagBeatsEnv(t *testing.T) {
	envPath := writeTestConfig(t, "ur_type: from-env\n")
	flagPath := writeTestConfig(t, "ur_type: from-flag\n")
	t.Setenv(configEnvVar, envPath)

	config, err := loadConfig(flagPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if config.URType != "from-flag" {
		t.Errorf("URType = %q, want from-flag", config.URType)
	}
}

func TestLoadConfigAbsent(t *testing.T) {
	t.Setenv(configEnvVar, "")
	config, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if config != (Config{}) {
		t.Errorf("config = %+v, want zero value", config)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv(configEnvVar, "")
	if _, err := loadConfig("/nonexistent/urkit.yaml"); err == nil {
		t.Error("missing file accepted")
	}
	path := writeTestConfig(t, "fragments: [not a map\n")
	if _, err := loadConfig(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}

func TestResolveStyle(t *testing.T) {
	config := Config{BytewordsStyle: "minimal"}

	style, err := config.resolveStyle("uri")
	if err != nil || style != codec.BytewordsURI {
		t.Errorf("flag value: style = %v, %v; want uri", style, err)
	}
	style, err = config.resolveStyle("")
	if err != nil || style != codec.BytewordsMinimal {
		t.Errorf("config value: style = %v, %v; want minimal", style, err)
	}
	style, err = (Config{}).resolveStyle("")
	if err != nil || style != codec.BytewordsStandard {
		t.Errorf("default: style = %v, %v; want standard", style, err)
	}
	if _, err := config.resolveStyle("fancy"); err == nil {
		t.Error("unknown style accepted")
	}
}

func TestResolveFragments(t *testing.T) {
	config := Config{Fragments: FragmentsConfig{MaxLen: 60, MinLen: 6, Ratio: 1, FirstSeq: 2}}

	maxLen, minLen, ratio, firstSeq := config.resolveFragments(0, 0, 0, 0)
	if maxLen != 60 || minLen != 6 || ratio != 1 || firstSeq != 2 {
		t.Errorf("config defaults: got %d %d %v %d", maxLen, minLen, ratio, firstSeq)
	}

	maxLen, minLen, ratio, firstSeq = config.resolveFragments(30, 3, 0.5, 5)
	if maxLen != 30 || minLen != 3 || ratio != 0.5 || firstSeq != 5 {
		t.Errorf("flags win: got %d %d %v %d", maxLen, minLen, ratio, firstSeq)
	}

	maxLen, minLen, _, firstSeq = (Config{}).resolveFragments(0, 0, 0, 0)
	if maxLen != 100 || minLen != 10 || firstSeq != 1 {
		t.Errorf("builtin defaults: got %d %d %d", maxLen, minLen, firstSeq)
	}
}
