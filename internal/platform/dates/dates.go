// Package dates convierte fechas y horas entre el formato de pantalla
// (DD-MM-YYYY, HH:MM) y el formato de almacenamiento (YYYY-MM-DD).
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ErrFormat      = errors.New("invalid format")
	ErrInvalidDate = errors.New("invalid date")
	ErrInvalidTime = errors.New("invalid time")
)

// Error lleva el tipo (uno de los sentinels) y el mensaje para el usuario.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

const (
	DisplayLayout = "02-01-2006"
	StorageLayout = "2006-01-02"
)

var (
	displayRe = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
	storageRe = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	timeRe    = regexp.MustCompile(`^(\d{2}):(\d{2})$`)
)

// ToStorage valida una fecha DD-MM-YYYY y la devuelve como YYYY-MM-DD.
// Entrada vacía devuelve "" (sin fecha).
func ToStorage(display string) (string, error) {
	s := strings.TrimSpace(display)
	if s == "" {
		return "", nil
	}

	m := displayRe.FindStringSubmatch(s)
	if m == nil {
		return "", &Error{Kind: ErrFormat, Message: "date must be in DD-MM-YYYY format"}
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	if !validDate(year, month, day) {
		return "", &Error{Kind: ErrInvalidDate, Message: "date does not exist"}
	}

	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}

// ToDisplay es la inversa de ToStorage. Lo que no sea YYYY-MM-DD
// se devuelve tal cual (datos legacy).
func ToDisplay(stored string) string {
	s := strings.TrimSpace(stored)
	m := storageRe.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return m[3] + "-" + m[2] + "-" + m[1]
}

// NormalizeTime valida HH:MM en 24h. Vacío devuelve "".
func NormalizeTime(display string) (string, error) {
	s := strings.TrimSpace(display)
	if s == "" {
		return "", nil
	}

	m := timeRe.FindStringSubmatch(s)
	if m == nil {
		return "", &Error{Kind: ErrFormat, Message: "time must be in HH:MM format"}
	}

	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	if h > 23 || min > 59 {
		return "", &Error{Kind: ErrInvalidTime, Message: "time is out of range"}
	}

	return s, nil
}

// Sortable detecta cuál de los dos formatos usa una fecha de visita
// guardada y la devuelve como YYYY-MM-DD. Valores desconocidos se
// devuelven sin cambios.
func Sortable(stored string) string {
	s := strings.TrimSpace(stored)
	if storageRe.MatchString(s) {
		return s
	}
	if m := displayRe.FindStringSubmatch(s); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	return s
}

// IsISODate indica si s es una fecha real en formato YYYY-MM-DD.
func IsISODate(s string) bool {
	m := storageRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return validDate(year, month, day)
}

func validDate(year, month, day int) bool {
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return false
	}
	// time.Date normaliza fechas fuera de rango (31-02 -> 02-03).
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}
