package invoicing

import (
	"strconv"
	"strings"
)

// Numeración de facturas: RE-<entero>.
const (
	NumberPrefix = "RE-"
	NumberFloor  = 1335 // máximo implícito cuando no existe ningún número válido
)

// NextInvoiceNumber deriva el siguiente número del máximo existente (no es un contador):
// borrar la factura más alta hace que su número vuelva a asignarse.
func NextInvoiceNumber(existing []string) string {
	max, found := 0, false
	for _, n := range existing {
		if !strings.HasPrefix(n, NumberPrefix) {
			continue
		}
		v, ok := leadingInt(strings.TrimPrefix(n, NumberPrefix))
		if !ok {
			continue
		}
		if !found || v > max {
			max, found = v, true
		}
	}
	if !found {
		max = NumberFloor
	}
	return NumberPrefix + strconv.Itoa(max+1)
}

// leadingInt interpreta el prefijo numérico ("1340a" -> 1340), admitiendo signo y espacios iniciales.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
