package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewVerbose(t *testing.T) {
	buf := new(bytes.Buffer)
	log := New(true, buf)

	log.Debug("ledger saved", zap.Int("weeks", 3))

	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "ledger saved")
	assert.Contains(t, buf.String(), `"weeks": 3`)
}

func TestNewQuiet(t *testing.T) {
	buf := new(bytes.Buffer)
	log := New(false, buf)

	log.Info("hidden")

	assert.Empty(t, buf.String())
}
