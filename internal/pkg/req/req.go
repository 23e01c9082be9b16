/*
Package req provides helper functions for HTTP request parsing and data binding.

It encapsulates JSON body decoding with content-type and trailing-content
checks so handlers receive either a populated struct or a client-facing error.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"ragwall/internal/pkg/errs"
)

// MaxBodySize limits request bodies to 1 MB. Every request this gateway
// accepts is a small JSON document; anything larger is abuse.
const MaxBodySize int64 = 1 << 20

// BindJSON binds the JSON request body to the destination struct dst.
// Unknown fields are tolerated (browser clients send extra state freely),
// but trailing content after the JSON document is rejected.
func BindJSON(w http.ResponseWriter, r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)

	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	return nil
}
