// Package bind decodes a JSON request body into a struct and runs the
// struct-tag validation rules over it.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/ecomm-labs/storefront-api/config"
	"github.com/ecomm-labs/storefront-api/pkg/validate"
)

const defaultMaxBody = 4 << 20 // 4 MB

func bodyLimit() int64 {
	n, err := strconv.ParseInt(config.Get("MAX_BODY_BYTES", ""), 10, 64)
	if err != nil || n <= 0 {
		return defaultMaxBody
	}
	return n
}

// JSON fills dest from the request body and validates it.
//
// Three outcomes: (nil, nil) on success, (fieldErrs, nil) when the payload
// decoded but failed validation, (nil, err) when the body itself is unusable
// (malformed JSON, wrong type for a field, empty body, over the size cap).
func JSON(r *http.Request, dest interface{}) (map[string]string, error) {
	limited := http.MaxBytesReader(nil, r.Body, bodyLimit())
	defer limited.Close()

	if err := json.NewDecoder(limited).Decode(dest); err != nil {
		return nil, decodeError(err)
	}

	if fieldErrs := validate.Struct(dest); len(fieldErrs) > 0 {
		return fieldErrs, nil
	}
	return nil, nil
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &maxErr):
		return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
	case errors.As(err, &typeErr):
		return fmt.Errorf("invalid type for field %q", typeErr.Field)
	case errors.Is(err, io.EOF):
		return errors.New("request body is empty")
	default:
		return fmt.Errorf("invalid JSON: %w", err)
	}
}
