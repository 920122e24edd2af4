package credential

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"gopkg.in/go-playground/validator.v9"
	entranslations "gopkg.in/go-playground/validator.v9/translations/en"

	"github.com/ledgercred/credential-service/internal/xrpl"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()

	enLocale := en.New()
	translator, _ = ut.New(enLocale, enLocale).GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(validate, translator)

	// report json names so missing fields read the way the caller sent them
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// requireFields fails with MissingFields naming every required field that is empty, in declaration order.
func requireFields(request any) error {
	err := validate.Struct(request)
	if err == nil {
		return nil
	}
	vErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	reqErr := &RequestError{Kind: MissingFields}
	for _, vError := range vErrors {
		reqErr.Fields = append(reqErr.Fields, vError.Field())
		reqErr.Reasons = append(reqErr.Reasons, vError.Translate(translator))
	}
	return reqErr
}

type addressField struct {
	name  string
	value string
}

// requireAddresses checks address-bearing fields in order and fails on the first invalid one.
func requireAddresses(fields ...addressField) error {
	for _, f := range fields {
		if !xrpl.IsValidAddress(f.value) {
			return &RequestError{
				Kind:    InvalidAddress,
				Fields:  []string{f.name},
				Reasons: []string{f.name + " is not a valid XRPL address"},
			}
		}
	}
	return nil
}

func encodeCredentialType(label string, alreadyEncoded *bool) (string, error) {
	wire, err := xrpl.EncodeCredentialType(label, alreadyEncoded)
	if err != nil {
		return "", &RequestError{
			Kind:    EncodingError,
			Fields:  []string{"credentialType"},
			Reasons: []string{err.Error()},
			Err:     err,
		}
	}
	return wire, nil
}
