package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Debug("[t] скрыто")
	log.Info("[t] видно", zap.Int("n", 3))

	out := buf.String()
	assert.NotContains(t, out, "скрыто")
	assert.Contains(t, out, "видно")
	assert.Contains(t, out, "n")
	assert.False(t, log.Enabled(zapcore.DebugLevel))
}

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true).With(zap.String("run", "abc"))

	log.Debug("[t] трасса")

	out := buf.String()
	assert.Contains(t, out, "трасса")
	assert.Contains(t, out, "abc")
	assert.Contains(t, out, "\033[36mdebug\033[0m")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Info("ничего")
	assert.False(t, log.Enabled(zapcore.ErrorLevel))
}
