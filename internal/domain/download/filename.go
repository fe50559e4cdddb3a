package download

import (
	"path"
	"strings"
	"unicode"
)

const maxFilenameRunes = 100

// SanitizeTitle keeps letters, digits, space, '-', '_' and '.', trims the
// result and caps it at 100 characters.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(b.String())
	runes := []rune(cleaned)
	if len(runes) > maxFilenameRunes {
		cleaned = string(runes[:maxFilenameRunes])
	}
	return cleaned
}

// AttachmentName builds the client-facing file name for an artifact.
func AttachmentName(title, artifactName string) string {
	base := SanitizeTitle(title)
	if base == "" {
		base = "video"
	}
	return base + path.Ext(artifactName)
}
