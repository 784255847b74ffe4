// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/urkit-dev/urkit/lib/codec"
)

// configEnvVar names the config file when --config is not given.
// There is no search path beyond these two sources.
const configEnvVar = "URKIT_CONFIG"

// Config holds CLI defaults loaded from a YAML file. Flags override
// config values; config values override built-in defaults.
type Config struct {
	// BytewordsStyle is the default bytewords rendering style.
	BytewordsStyle string `yaml:"bytewords_style"`

	// URType is the default type for UR output when the payload
	// carries none.
	URType string `yaml:"ur_type"`

	Fragments FragmentsConfig `yaml:"fragments"`
}

// FragmentsConfig holds defaults for the fragments command.
type FragmentsConfig struct {
	MaxLen   int     `yaml:"max_len"`
	MinLen   int     `yaml:"min_len"`
	Ratio    float64 `yaml:"ratio"`
	FirstSeq int     `yaml:"first_seq"`
}

// loadConfig reads the config file named by flagPath, or by
// URKIT_CONFIG when flagPath is empty. An empty result path means no
// config; a named file that does not parse is an error.
func loadConfig(flagPath string) (Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(configEnvVar)
	}
	if path == "" {
		return Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return config, nil
}

// resolveStyle picks the bytewords style: flag, then config, then
// standard.
func (c Config) resolveStyle(flagValue string) (codec.BytewordsStyle, error) {
	name := flagValue
	if name == "" {
		name = c.BytewordsStyle
	}
	if name == "" {
		return codec.BytewordsStandard, nil
	}
	return codec.ParseBytewordsStyle(name)
}

// resolveURType picks the UR type override: flag, then config.
func (c Config) resolveURType(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return c.URType
}

// resolveFragments fills fragment generation defaults: flag values
// win, then config, then max 100 / min 10 / first sequence 1.
func (c Config) resolveFragments(maxLen, minLen int, ratio float64, firstSeq int) (int, int, float64, int) {
	if maxLen == 0 {
		maxLen = c.Fragments.MaxLen
	}
	if maxLen == 0 {
		maxLen = 100
	}
	if minLen == 0 {
		minLen = c.Fragments.MinLen
	}
	if minLen == 0 {
		minLen = 10
	}
	if ratio == 0 {
		ratio = c.Fragments.Ratio
	}
	if firstSeq == 0 {
		firstSeq = c.Fragments.FirstSeq
	}
	if firstSeq == 0 {
		firstSeq = 1
	}
	return maxLen, minLen, ratio, firstSeq
}
