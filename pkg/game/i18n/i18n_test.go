package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestT_FormatsArguments(t *testing.T) {
	require.NoError(t, Load("en"))
	assert.Equal(t, "Level 2/5: Corridor", T("LEVEL_LOADED", 2, 5, "Corridor"))
	assert.Equal(t, "Level reset", T("LEVEL_RESET"))
}

func TestT_UnknownKeyIsReturned(t *testing.T) {
	require.NoError(t, Load("en"))
	assert.Equal(t, "NOT_A_KEY", T("NOT_A_KEY"))
}

func TestLoad_FallsBackToEnglish(t *testing.T) {
	require.NoError(t, Load("xx"))
	assert.Equal(t, "rolling", T("Moving"))
}

func TestT_LoadsCatalogOnFirstUse(t *testing.T) {
	mu.Lock()
	active = nil
	mu.Unlock()

	assert.Equal(t, "Level 1/3: Start", T("LEVEL_LOADED", 1, 3, "Start"))
}
