package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodyBytes caps JSON request bodies. Every body this API accepts is
// document or folder metadata; file content travels through the object
// store, never through these endpoints.
const maxBodyBytes = 1 << 20

// ParseJSON decodes JSON from the request body into the given destination.
// Bodies over the cap fail with a 413 via MaxBytesReader.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)

	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
