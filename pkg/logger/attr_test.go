package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrs(t *testing.T) {
	t.Parallel()

	t.Run("nil error yields empty attr", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, slog.Attr{}, Error(nil))
	})

	t.Run("error attr carries the error", func(t *testing.T) {
		t.Parallel()
		err := errors.New("boom")
		attr := Error(err)
		assert.Equal(t, "error", attr.Key)
	})

	t.Run("email attr is masked", func(t *testing.T) {
		t.Parallel()
		attr := Email("someone@example.com")
		assert.Equal(t, "s***e@example.com", attr.Value.String())
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json format emits json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := New(WithFormat(FormatJSON), WithOutput(&buf), WithAttr(Component("test")))
		log.Info("hello")

		assert.Contains(t, buf.String(), `"component":"test"`)
		assert.Contains(t, buf.String(), `"msg":"hello"`)
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := New(WithLevel(slog.LevelError), WithOutput(&buf))
		log.Info("dropped")

		assert.Empty(t, buf.String())
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { New(WithFormat("xml")) })
	})
}
