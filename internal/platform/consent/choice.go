// Package consent gates analytics capture on the visitor's persisted choice.
package consent

import "strings"

// StorageKey is the storage key that holds the persisted choice.
const StorageKey = "cookie_consent"

// Choice is the visitor's analytics consent decision.
type Choice string

const (
	// Unset means no decision has been persisted.
	Unset Choice = ""
	// Accepted allows analytics capture.
	Accepted Choice = "accepted"
	// Rejected forbids analytics capture.
	Rejected Choice = "rejected"
)

// ParseChoice maps a stored value to a Choice. Anything other than the two
// persisted values reads as Unset.
func ParseChoice(value string) Choice {
	switch Choice(strings.TrimSpace(value)) {
	case Accepted:
		return Accepted
	case Rejected:
		return Rejected
	default:
		return Unset
	}
}

// String returns the persisted form, or "unset".
func (c Choice) String() string {
	if c == Unset {
		return "unset"
	}
	return string(c)
}

// SignalValue is a consent state understood by tag managers.
type SignalValue string

const (
	Granted SignalValue = "granted"
	Denied  SignalValue = "denied"
)

// Signal is the consent update forwarded to the separate analytics tag.
type Signal struct {
	AnalyticsStorage SignalValue `json:"analytics_storage"`
	AdStorage        SignalValue `json:"ad_storage"`
}

// SignalFor returns the signal matching c. Only Accepted grants storage.
func SignalFor(c Choice) Signal {
	if c == Accepted {
		return Signal{AnalyticsStorage: Granted, AdStorage: Granted}
	}
	return Signal{AnalyticsStorage: Denied, AdStorage: Denied}
}
