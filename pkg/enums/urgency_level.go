package enums

import "fmt"

// UrgencyLevel captures how urgently a recipient needs the requested food.
type UrgencyLevel string

const (
	UrgencyLevelLow    UrgencyLevel = "Low"
	UrgencyLevelMedium UrgencyLevel = "Medium"
	UrgencyLevelHigh   UrgencyLevel = "High"
)

var validUrgencyLevels = []UrgencyLevel{
	UrgencyLevelLow,
	UrgencyLevelMedium,
	UrgencyLevelHigh,
}

// String implements fmt.Stringer.
func (u UrgencyLevel) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UrgencyLevel.
func (u UrgencyLevel) IsValid() bool {
	for _, candidate := range validUrgencyLevels {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUrgencyLevel converts raw input into an UrgencyLevel.
func ParseUrgencyLevel(value string) (UrgencyLevel, error) {
	for _, candidate := range validUrgencyLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid urgency level %q", value)
}
