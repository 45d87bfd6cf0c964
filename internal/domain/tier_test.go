package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	assert.Equal(t, TierGold, ParseTier("gold"))
	assert.Equal(t, TierGold, ParseTier("  GOLD "))
	assert.Equal(t, TierPlatinum, ParseTier("Platinum"))

	// Unset and unrecognized values fall back to silver.
	assert.Equal(t, TierSilver, ParseTier(""))
	assert.Equal(t, TierSilver, ParseTier("diamond"))
}

func TestHasFeature(t *testing.T) {
	assert.False(t, TierSilver.HasFeature(FeatureWhatsAppBlast))
	assert.True(t, TierGold.HasFeature(FeatureWhatsAppBlast))
	assert.True(t, TierPlatinum.HasFeature(FeatureWhatsAppBlast))

	assert.False(t, TierGold.HasFeature(FeatureFPXPayment))
	assert.True(t, TierPlatinum.HasFeature(FeatureFPXPayment))

	assert.True(t, TierSilver.HasFeature(FeatureOnlineBooking))
}

func TestRequiredTier(t *testing.T) {
	tier, ok := RequiredTier(FeatureFPXPayment)
	require.True(t, ok)
	assert.Equal(t, TierPlatinum, tier)

	tier, ok = RequiredTier(FeatureWhatsAppBlast)
	require.True(t, ok)
	assert.Equal(t, TierGold, tier)

	tier, ok = RequiredTier(FeatureOnlineBooking)
	require.True(t, ok)
	assert.Equal(t, TierSilver, tier)

	_, ok = RequiredTier(Feature("time_travel"))
	assert.False(t, ok)
}

func TestSubAccountLimit(t *testing.T) {
	assert.Equal(t, 1, TierSilver.SubAccountLimit())
	assert.Equal(t, 2, TierGold.SubAccountLimit())
	assert.Equal(t, 0, TierPlatinum.SubAccountLimit(), "platinum is unbounded")
}
