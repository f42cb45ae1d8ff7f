package booking

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone formats numbers valid for region as E.164. Anything else is
// returned trimmed but otherwise untouched.
func NormalizePhone(raw, region string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || region == "" {
		return trimmed
	}
	num, err := phonenumbers.Parse(trimmed, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return trimmed
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
