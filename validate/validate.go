// Package validate wraps struct validation and id handling behind a
// package-level API so handlers never touch the validator directly.
package validate

import (
	"errors"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
)

var (
	check      *validator.Validate
	translator ut.Translator
)

func init() {
	check = validator.New()

	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	en_translations.RegisterDefaultTranslations(check, translator)
}

// Check validates val against its struct tags. All violations are
// reported at once so a client can fix its request in one pass.
func Check(val any) error {
	err := check.Struct(val)
	if err == nil {
		return nil
	}

	var verrors validator.ValidationErrors
	if !errors.As(err, &verrors) {
		return err
	}

	msgs := make([]string, 0, len(verrors))
	for _, ve := range verrors {
		msgs = append(msgs, ve.Translate(translator))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// GenerateID mints a new unique id for a cart or cart item row.
func GenerateID() string {
	return uuid.NewString()
}

// CheckID rejects path parameters that are not well-formed ids before any
// query runs with them.
func CheckID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New("ID is not in its proper form")
	}
	return nil
}
