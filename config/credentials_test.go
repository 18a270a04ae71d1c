package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seamless/config"
)

func TestRegisterAndLookup(t *testing.T) {
	config.Register(config.ProviderCredentials{
		Provider:  "HG5",
		Currency:  "IDR",
		AgentID:   "agent-77",
		AuthToken: "secret",
	})

	cred, err := config.ByCurrency("HG5", "IDR")
	require.NoError(t, err)
	assert.Equal(t, "agent-77", cred.AgentID)

	// lookup is case insensitive on both axes
	cred, err = config.ByCurrency("hg5", "idr")
	require.NoError(t, err)
	assert.Equal(t, "agent-77", cred.AgentID)
}

func TestUnknownCurrency(t *testing.T) {
	_, err := config.ByCurrency("HG5", "XYZ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrCurrencyNotSupported))
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ORS_CURRENCIES", "idr, thb")
	t.Setenv("ORS_IDR_AGENT_ID", "ors-agent-idr")
	t.Setenv("ORS_IDR_AUTH_TOKEN", "tok-idr")
	t.Setenv("ORS_IDR_PUBLIC_KEY", "pub-idr")
	t.Setenv("ORS_IDR_GAME_LIST", "fishing-1, fishing-2")
	t.Setenv("ORS_THB_AGENT_ID", "ors-agent-thb")

	config.Load("ORS")

	idr, err := config.ByCurrency("ORS", "IDR")
	require.NoError(t, err)
	assert.Equal(t, "ors-agent-idr", idr.AgentID)
	assert.Equal(t, "tok-idr", idr.AuthToken)
	assert.Equal(t, "pub-idr", idr.PublicKey)
	assert.Equal(t, []string{"fishing-1", "fishing-2"}, idr.ArcadeGameList)

	thb, err := config.ByCurrency("ORS", "THB")
	require.NoError(t, err)
	assert.Equal(t, "ors-agent-thb", thb.AgentID)
}
