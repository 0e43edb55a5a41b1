package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/gosimple/slug"
)

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateSlug builds a URL-friendly slug from a display name plus a random
// 4-character suffix to keep slugs unique across shops with the same name.
func GenerateSlug(name string) (string, error) {
	suffix := make([]byte, 4)
	max := big.NewInt(int64(len(suffixAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		suffix[i] = suffixAlphabet[n.Int64()]
	}

	return slug.Make(name) + "-" + string(suffix), nil
}
