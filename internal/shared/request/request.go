package request

import (
	"encoding/json"
	"net/http"
	"strconv"

	"starwars-catalog/internal/shared/errors"
)

const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dst, rejecting unknown fields and trailing data
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errors.WrapValidation("invalid request body", err)
	}

	if decoder.More() {
		return errors.Validation("request body must contain a single JSON object")
	}

	return nil
}

// PathID parses a positive integer path parameter
func PathID(r *http.Request, name string) (int, error) {
	raw := r.PathValue(name)
	if raw == "" {
		return 0, errors.Validationf("%s is required", name)
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+name+" format", err)
	}

	if id <= 0 {
		return 0, errors.Validationf("%s must be positive", name)
	}

	return id, nil
}
