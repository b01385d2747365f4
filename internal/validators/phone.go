package validators

import "strings"

// IsPhoneValid accepts international or local numbers written with the
// usual separators, as long as 8 to 15 digits remain.
func IsPhoneValid(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}

	digits := 0
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return false
		}
	}

	return digits >= 8 && digits <= 15
}
