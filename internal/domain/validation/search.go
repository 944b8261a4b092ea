package validation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldKey normaliza texto para busca: minúsculas e sem acentos ("João" -> "joao").
func FoldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// SearchKey concatena campos pesquisáveis em uma única chave normalizada.
func SearchKey(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if k := FoldKey(f); k != "" {
			parts = append(parts, k)
		}
	}
	return strings.Join(parts, " ")
}

// SanitizeLike remove curingas de LIKE de um termo de busca.
func SanitizeLike(s string) string {
	return strings.NewReplacer("%", "", "_", "").Replace(s)
}
