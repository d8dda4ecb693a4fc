package pivot

import "encoding/base64"

// TokenPrefix starts every token so addresses never begin with a digit
// and the empty label still maps to a non-empty token.
const TokenPrefix = "x"

// Encode maps an arbitrary label to a token made of [A-Za-z0-9_-].
// Distinct labels always produce distinct tokens.
func Encode(label string) string {
	return TokenPrefix + base64.RawURLEncoding.EncodeToString([]byte(label))
}
