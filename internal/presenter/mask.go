package presenter

import "strings"

// maskChar is the replacement used for hidden characters.  Masking is
// one-way display formatting: the original value is never reconstructed
// from the masked form.
const maskChar = "*"

// MaskEmail keeps the first two characters of the local part plus the
// domain: "ab@example.com" -> "ab***@example.com".  Strings without an
// "@" or with a single-character local part are masked as a whole.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return strings.Repeat(maskChar, 3)
	}
	local, domain := email[:at], email[at:]
	if len(local) < 2 {
		return strings.Repeat(maskChar, 3) + domain
	}
	return local[:2] + strings.Repeat(maskChar, 3) + domain
}

// MaskPhone keeps the first three and last two digits of a phone number:
// "1234567890" -> "123***90".  Non-digits are dropped before masking.
// Numbers too short to keep five digits are masked entirely.
func MaskPhone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) <= 5 {
		return strings.Repeat(maskChar, 3)
	}
	return d[:3] + strings.Repeat(maskChar, 3) + d[len(d)-2:]
}
