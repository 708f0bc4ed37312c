// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package weboverlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageType(t *testing.T) {
	assert.Equal(t, "CONTROL_READY", MessageType(`{"type":"CONTROL_READY"}`))
	assert.Equal(t, "EMBED_LOADED", MessageType(`  {"type":"EMBED_LOADED","n":1} `))
	assert.Equal(t, "", MessageType(`["type"]`))
	assert.Equal(t, "", MessageType("plain"))
	assert.Equal(t, "", MessageType(""))
	assert.Equal(t, "", MessageType("{broken}"))
	assert.Equal(t, "", MessageType(`{"type":3}`))
	assert.Equal(t, "", MessageType(`{"kind":"x"}`))
}
