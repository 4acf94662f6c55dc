package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info("hello", "cell", "A1")

	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "cell=A1")
}

func TestFromContextDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
