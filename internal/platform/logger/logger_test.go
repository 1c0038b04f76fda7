package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")
	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept", "mint", "abc")
	assert.Contains(t, buf.String(), `"mint":"abc"`)
}
