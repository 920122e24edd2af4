package framework

import (
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Decode reads an HTTP request body looking for a JSON document and decodes it into the value provided.
// An empty body decodes as an empty object so missing fields surface as such.
func Decode(r *http.Request, val any) error {
	if r.Body == nil {
		return nil
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(val); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return NewRequestError(errors.Wrap(err, "invalid JSON body"), http.StatusBadRequest)
	}
	return nil
}
