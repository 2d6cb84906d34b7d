package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics descompone (NFD), elimina marcas diacríticas y recompone (NFC).
// "Señor Café" -> "Senor Cafe".
var removeDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Make normaliza un texto libre a un slug apto para rutas públicas:
// minúsculas, sin acentos, solo [a-z0-9] y guiones simples.
func Make(s string) string {
	clean, _, err := transform.String(removeDiacritics, s)
	if err != nil {
		clean = s
	}
	clean = strings.ToLower(clean)

	var b strings.Builder
	lastDash := true // evita guion inicial
	for _, r := range clean {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// IsValid informa si un slug ya cumple el formato canónico (Make(s) == s y no vacío).
func IsValid(s string) bool {
	return s != "" && Make(s) == s
}
