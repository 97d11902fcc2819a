package utils

import (
	"github.com/bytedance/gopkg/lang/fastrand"
)

const randStrAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandStr generates a random lowercase alphanumeric string of length n.
// Used for run/session identifiers, not for anything secret.
func RandStr(n int) string {
	if n <= 0 {
		return ""
	}

	b := make([]byte, n)
	for i := range b {
		b[i] = randStrAlphabet[fastrand.Uint32n(uint32(len(randStrAlphabet)))]
	}
	return string(b)
}

func Truncate(content string, maxLen int) string {
	if len(content) <= maxLen {
		return content
	}
	return content[:maxLen] + "..."
}

func Truncate80(content string) string {
	return Truncate(content, 80)
}
