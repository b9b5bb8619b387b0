// Package errs enthält die Fehlerklassen, die zwischen CMS-Client, Services und HTTP-Schicht geteilt werden.
package errs

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrNotFound: Slug oder Artikel konnte nicht aufgelöst werden.
	ErrNotFound = errors.New("not found")
	// ErrUpstreamUnavailable: CMS oder externer Dienst nicht erreichbar.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrConfigurationMissing: benötigte Zugangsdaten fehlen, das Feature ist deaktiviert.
	ErrConfigurationMissing = errors.New("configuration missing")
)

// ValidationError listet die fehlerhaften Felder einer Eingabe.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FromValidation wandelt ozzo-validation Fehler in einen ValidationError um.
// Andere Fehler werden unverändert zurückgegeben.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr != nil {
			fields[field] = ferr.Error()
		}
	}
	return &ValidationError{Fields: fields}
}

// IsValidation prüft, ob err ein ValidationError ist.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
