package utils

// IsValidName reports whether name can be used as a file name: it must be
// non-empty, at most maxLen bytes long and made only of ASCII letters,
// digits, '_' and '.'.
func IsValidName(name string, maxLen int) bool {
	if len(name) == 0 || len(name) > maxLen {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '.':
		default:
			return false
		}
	}
	return true
}
