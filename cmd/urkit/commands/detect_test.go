// Copyright 2026 The Urkit Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/urkit-dev/urkit/cmd/urkit/cli"
)

func TestRunDetect(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"hex", "deadbeef", "hex"},
		{"ur", "ur:my-data/ghghkmnl", "ur"},
		{"fragment", "ur:my-data/1of3/ghghkmnl", "multipart-ur"},
		{"bytewords", "ghgh kmnl iojz spqr", "bytewords"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buffer bytes.Buffer
			if err := runDetect(test.input, &buffer); err != nil {
				t.Fatalf("runDetect(%q) error: %v", test.input, err)
			}
			if got := strings.TrimSpace(buffer.String()); got != test.want {
				t.Errorf("runDetect(%q) printed %q, want %q", test.input, got, test.want)
			}
		})
	}
}

func TestRunDetectUnknownExitsNonZero(t *testing.T) {
	var buffer bytes.Buffer
	err := runDetect("!!! not anything !!!", &buffer)

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("err = %v, want ExitError code 1", err)
	}
	if got := strings.TrimSpace(buffer.String()); got != "unknown" {
		t.Errorf("printed %q, want %q", got, "unknown")
	}
}
