package domain

import "strings"

// PackageTier is the subscription level of a studio. Tiers are ordered:
// silver < gold < platinum.
type PackageTier string

const (
	TierSilver   PackageTier = "silver"
	TierGold     PackageTier = "gold"
	TierPlatinum PackageTier = "platinum"
)

// Feature identifies a gated capability.
type Feature string

const (
	FeatureOnlineBooking      Feature = "online_booking"
	FeatureReceiptPDF         Feature = "receipt_pdf"
	FeatureEmailNotifications Feature = "email_notifications"
	FeatureWhatsAppBlast      Feature = "whatsapp_blast"
	FeatureGoogleCalendar     Feature = "google_calendar"
	FeatureCustomReceipt      Feature = "custom_receipt"
	FeatureFPXPayment         Feature = "fpx_payment"
	FeatureAPIAccess          Feature = "api_access"
	FeaturePrioritySupport    Feature = "priority_support"
)

// tierOrder fixes the enumeration order used by RequiredTier.
var tierOrder = []PackageTier{TierSilver, TierGold, TierPlatinum}

// tierFeatures is the compiled-in allow-list per tier. Higher tiers repeat
// the lower tiers' features; gating checks only the studio's own tier.
var tierFeatures = map[PackageTier][]Feature{
	TierSilver: {
		FeatureOnlineBooking,
		FeatureReceiptPDF,
		FeatureEmailNotifications,
	},
	TierGold: {
		FeatureOnlineBooking,
		FeatureReceiptPDF,
		FeatureEmailNotifications,
		FeatureWhatsAppBlast,
		FeatureGoogleCalendar,
		FeatureCustomReceipt,
	},
	TierPlatinum: {
		FeatureOnlineBooking,
		FeatureReceiptPDF,
		FeatureEmailNotifications,
		FeatureWhatsAppBlast,
		FeatureGoogleCalendar,
		FeatureCustomReceipt,
		FeatureFPXPayment,
		FeatureAPIAccess,
		FeaturePrioritySupport,
	},
}

// tierSubAccountLimit caps staff sub-accounts per tier. 0 = unbounded.
var tierSubAccountLimit = map[PackageTier]int{
	TierSilver:   1,
	TierGold:     2,
	TierPlatinum: 0,
}

// ParseTier normalizes a raw tier string. Unset or unrecognized values
// default to silver.
func ParseTier(s string) PackageTier {
	switch PackageTier(strings.ToLower(strings.TrimSpace(s))) {
	case TierGold:
		return TierGold
	case TierPlatinum:
		return TierPlatinum
	default:
		return TierSilver
	}
}

// HasFeature reports whether the tier's allow-list contains the feature.
func (t PackageTier) HasFeature(f Feature) bool {
	for _, granted := range tierFeatures[t] {
		if granted == f {
			return true
		}
	}
	return false
}

// Features returns the tier's full allow-list.
func (t PackageTier) Features() []Feature {
	features := tierFeatures[t]
	out := make([]Feature, len(features))
	copy(out, features)
	return out
}

// SubAccountLimit returns the staff sub-account ceiling. 0 means unbounded.
func (t PackageTier) SubAccountLimit() int {
	return tierSubAccountLimit[t]
}

// RequiredTier returns the lowest tier (in enumeration order) granting the
// feature, and false when no tier grants it.
func RequiredTier(f Feature) (PackageTier, bool) {
	for _, tier := range tierOrder {
		if tier.HasFeature(f) {
			return tier, true
		}
	}
	return "", false
}
