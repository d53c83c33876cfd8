package utils

import "strconv"

// FormatCLP formatea un monto entero en pesos chilenos al estilo es-CL:
// separador de miles con punto y sin decimales, ex: 450000 -> "$450.000".
func FormatCLP(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, d)
	}

	if negative {
		return "-$" + string(out)
	}
	return "$" + string(out)
}
