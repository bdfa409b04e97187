package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBusinessConfig(t *testing.T) {
	cfg := DefaultBusinessConfig()
	states := cfg.States()
	require.Len(t, states, 4)
	assert.Equal(t, "Pending", states[0].Name)
	assert.Equal(t, "#32CD32", cfg.StateColor(ReadyState))

	first, err := cfg.DefaultState()
	require.NoError(t, err)
	assert.Equal(t, "Pending", first)
}

func TestBusinessConfig_UpdateInfo(t *testing.T) {
	cfg := DefaultBusinessConfig()
	cfg.UpdateInfo("  Rahim Traders ", " Thanks! ", testNow)
	assert.Equal(t, "Rahim Traders", cfg.Name())
	assert.Equal(t, "Thanks!", cfg.FooterNote())
	assert.Len(t, cfg.DomainEvents(), 1)
}

func TestBusinessConfig_AddState(t *testing.T) {
	t.Run("default color", func(t *testing.T) {
		cfg := DefaultBusinessConfig()
		require.NoError(t, cfg.AddState("Returned", "", testNow))
		assert.True(t, cfg.HasState("Returned"))
		assert.Equal(t, DefaultStateColor, cfg.StateColor("Returned"))
	})

	t.Run("color is normalized", func(t *testing.T) {
		cfg := DefaultBusinessConfig()
		require.NoError(t, cfg.AddState("Returned", "#ff00aa", testNow))
		assert.Equal(t, "#FF00AA", cfg.StateColor("Returned"))
	})

	t.Run("validation", func(t *testing.T) {
		cfg := DefaultBusinessConfig()
		assert.ErrorIs(t, cfg.AddState("  ", "", testNow), ErrEmptyStateName)
		assert.ErrorIs(t, cfg.AddState("Pending", "", testNow), ErrDuplicateState)
		assert.ErrorIs(t, cfg.AddState("New", "red", testNow), ErrInvalidColor)
		assert.Len(t, cfg.States(), 4)
	})
}

func TestBusinessConfig_UpdateStateColor(t *testing.T) {
	cfg := DefaultBusinessConfig()

	ok, err := cfg.UpdateStateColor("Pending", "#000001", testNow)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "#000001", cfg.StateColor("Pending"))

	ok, err = cfg.UpdateStateColor("Nope", "#000001", testNow)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBusinessConfig_RemoveState(t *testing.T) {
	cfg := DefaultBusinessConfig()
	assert.True(t, cfg.RemoveState("Pending", testNow))
	assert.False(t, cfg.RemoveState("Pending", testNow))

	first, err := cfg.DefaultState()
	require.NoError(t, err)
	assert.Equal(t, "Processing", first)
	assert.Equal(t, DefaultStateColor, cfg.StateColor("Pending"))

	for _, s := range []string{"Processing", ReadyState, "Delivered"} {
		cfg.RemoveState(s, testNow)
	}
	_, err = cfg.DefaultState()
	assert.ErrorIs(t, err, ErrNoStatesConfigured)
}

func TestBusinessConfig_Logo(t *testing.T) {
	cfg := DefaultBusinessConfig()
	img, err := NewImageFromBytes("image/png", []byte("logo"))
	require.NoError(t, err)

	cfg.SetLogo(img, testNow)
	assert.Same(t, img, cfg.Logo())
	cfg.SetLogo(nil, testNow)
	assert.Nil(t, cfg.Logo())
}
