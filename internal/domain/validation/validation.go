// Package validation modela los errores de entrada de formularios: una
// lista ordenada de mensajes por campo que los handlers muestran en línea.
package validation

import (
	"errors"
	"strings"
)

type FieldError struct {
	Field   string
	Message string
}

type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Field+": "+fe.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// AddErr agrega err como mensaje del campo; nil no hace nada.
func (e *Errors) AddErr(field string, err error) {
	if err == nil {
		return
	}
	e.Add(field, err.Error())
}

// Required agrega un error si value está vacío tras trim.
func (e *Errors) Required(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, message)
	}
}

// Err devuelve nil si no hay errores, para poder hacer `return errs.Err()`.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Messages() []string {
	out := make([]string, 0, len(e))
	for _, fe := range e {
		out = append(out, fe.Message)
	}
	return out
}

// For devuelve el primer mensaje de un campo.
func (e Errors) For(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// As extrae Errors de err.
func As(err error) (Errors, bool) {
	var ve Errors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
