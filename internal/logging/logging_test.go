// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Params{Writer: &buf})
	logger.Debug("hidden")
	logger.Info("shown", "eid", "Q95")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "eid=Q95")

	buf.Reset()
	logger = New(Params{Writer: &buf, Debug: true})
	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
