package domain

// Tier is the subscription tier carried by a bearer token.
type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

func (t Tier) String() string { return string(t) }

// IsValid reports whether t is a known tier.
func (t Tier) IsValid() bool {
	switch t {
	case TierFree, TierPremium:
		return true
	}
	return false
}
