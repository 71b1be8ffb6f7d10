package models

// Tier is the coarse confidence bucket used for display.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// TierFor buckets a confidence score. Boundary values belong to the
// higher tier: 0.7 is high, 0.5 is medium.
func TierFor(confidence float32) Tier {
	switch {
	case confidence >= 0.7:
		return TierHigh
	case confidence >= 0.5:
		return TierMedium
	default:
		return TierLow
	}
}

// Color returns the display color for the tier.
func (t Tier) Color() string {
	switch t {
	case TierHigh:
		return "green"
	case TierMedium:
		return "orange"
	default:
		return "red"
	}
}
