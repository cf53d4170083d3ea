// Package textmatch implementa la búsqueda de subcadenas sin distinguir
// mayúsculas, válida para cualquier alfabeto Unicode (cirílico incluido).
package textmatch

import (
	"strings"

	"golang.org/x/text/cases"
)

// Contains reporta si needle aparece en haystack ignorando mayúsculas.
// Un needle vacío siempre coincide.
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	c := cases.Fold()
	return strings.Contains(c.String(haystack), c.String(needle))
}

// Any devuelve true si needle aparece en alguno de los campos.
func Any(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	c := cases.Fold()
	n := c.String(needle)
	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(c.String(f), n) {
			return true
		}
	}
	return false
}
