// Copyright (c) 2026 Javier Podavini (YindSoft)
// Licensed under the MIT License. See LICENSE file in the project root.

package ultralight

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine replaces ul_init and ul_destroy with counters and restores the
// engine state when the test ends.
func stubEngine(t *testing.T) (inits, destroys *int) {
	t.Helper()
	origInit, origDestroy := ulInit, ulDestroy
	inits, destroys = new(int), new(int)
	ulInit = func(string, int32) int32 { *inits++; return 0 }
	ulDestroy = func() { *destroys++ }
	resetEngineState()
	t.Cleanup(func() {
		ulInit, ulDestroy = origInit, origDestroy
		resetEngineState()
	})
	return inits, destroys
}

func resetEngineState() {
	viewCountMu.Lock()
	defer viewCountMu.Unlock()
	ulInitOnce = sync.Once{}
	ulInitErr = nil
	ulInitialized = false
	viewCount = 0
}

func TestShutdownDestroysEngineOnce(t *testing.T) {
	inits, destroys := stubEngine(t)

	require.NoError(t, ensureULInit("", false))
	require.NoError(t, ensureULInit("", false))
	assert.Equal(t, 1, *inits)

	require.NoError(t, Shutdown())
	require.NoError(t, Shutdown())
	assert.Equal(t, 1, *destroys)
}

func TestShutdownWithoutInitIsNoop(t *testing.T) {
	_, destroys := stubEngine(t)

	require.NoError(t, Shutdown())
	assert.Zero(t, *destroys)
}

func TestEngineReinitialisesAfterShutdown(t *testing.T) {
	inits, destroys := stubEngine(t)

	require.NoError(t, ensureULInit("", false))
	require.NoError(t, Shutdown())
	require.NoError(t, ensureULInit("", false))
	require.NoError(t, Shutdown())

	assert.Equal(t, 2, *inits)
	assert.Equal(t, 2, *destroys)
}

func TestShutdownRefusesWhileViewsAlive(t *testing.T) {
	_, destroys := stubEngine(t)

	require.NoError(t, ensureULInit("", false))
	registerView()
	assert.ErrorIs(t, Shutdown(), ErrBridge)
	assert.Zero(t, *destroys)

	unregisterView()
	require.NoError(t, Shutdown())
	assert.Equal(t, 1, *destroys)
}

func TestFailedInitIsNotShutDown(t *testing.T) {
	_, destroys := stubEngine(t)
	ulInit = func(string, int32) int32 { return 7 }

	assert.ErrorIs(t, ensureULInit("", false), ErrBridge)
	require.NoError(t, Shutdown())
	assert.Zero(t, *destroys)
}
