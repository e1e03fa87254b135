// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestAppendCtxAttrsAppearInRecord(t *testing.T) {
	var buf bytes.Buffer
	handler := contextHandler{slog.NewJSONHandler(&buf, nil)}
	logger := slog.New(handler)

	ctx := AppendCtx(context.Background(), slog.String("conversation_id", "conv-1"))
	ctx = AppendCtx(ctx, slog.String("principal", "alice"))

	logger.InfoContext(ctx, "processing message")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log record: %v", err)
	}
	if record["conversation_id"] != "conv-1" {
		t.Errorf("expected conversation_id attr, got %v", record["conversation_id"])
	}
	if record["principal"] != "alice" {
		t.Errorf("expected principal attr, got %v", record["principal"])
	}
}

func TestAppendCtxNilParent(t *testing.T) {
	ctx := AppendCtx(nil, slog.String("k", "v"))
	if ctx == nil {
		t.Fatal("expected a non-nil context")
	}
}

func TestPriorityCritical(t *testing.T) {
	attr := PriorityCritical()
	if attr.Key != "priority" {
		t.Errorf("expected priority key, got %s", attr.Key)
	}
	if attr.Value.String() != "critical" {
		t.Errorf("expected critical value, got %s", attr.Value.String())
	}
}
