// SPDX-License-Identifier: EPL-2.0

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultIsSilent(t *testing.T) {
	if L().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestSet(t *testing.T) {
	var buf bytes.Buffer
	Set(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { Set(nil) })

	L().Info("voice stolen", "voice", 2)
	if !strings.Contains(buf.String(), "voice=2") {
		t.Errorf("log output = %q", buf.String())
	}

	Set(nil)
	if L().Enabled(context.Background(), slog.LevelError) {
		t.Error("Set(nil) did not restore the silent logger")
	}
}
