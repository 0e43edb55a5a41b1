package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSlugShape(t *testing.T) {
	slug, err := GenerateSlug("Acme Store")
	require.NoError(t, err)
	require.Regexp(t, `^acme-store-[0-9a-z]{4}$`, slug)
}

func TestGenerateSlugStripsSpecialChars(t *testing.T) {
	slug, err := GenerateSlug("Früt & Vëg! Co.")
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^[0-9a-z-]+-[0-9a-z]{4}$`), slug)
}

func TestGenerateSlugSuffixVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		slug, err := GenerateSlug("Same Name")
		require.NoError(t, err)
		seen[slug] = true
	}
	require.Greater(t, len(seen), 1)
}
