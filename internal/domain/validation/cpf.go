package validation

import "strings"

// OnlyDigits remove tudo que não for dígito.
func OnlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF valida os dígitos verificadores do CPF. Vazio é válido (campo opcional).
func ValidCPF(cpf string) bool {
	d := OnlyDigits(cpf)
	if d == "" {
		return true
	}
	if len(d) != 11 || strings.Count(d, d[:1]) == 11 {
		return false
	}
	calc := func(factor int) int {
		total := 0
		for i := 0; i < factor-1; i++ {
			total += int(d[i]-'0') * (factor - i)
		}
		r := (total * 10) % 11
		if r == 10 {
			return 0
		}
		return r
	}
	return calc(10) == int(d[9]-'0') && calc(11) == int(d[10]-'0')
}
