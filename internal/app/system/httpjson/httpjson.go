// Package httpjson holds the JSON request/response helpers shared by the
// API handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/reelhub/reelhub/internal/app/system/apierr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxBodyBytes bounds request bodies. The API carries ids and short
// strings; anything larger is garbage.
const maxBodyBytes = 1 << 20

// Decode reads the request body into out, failing with a validation
// error on malformed or oversized input. An empty body decodes into the
// zero value, since several operations take no arguments.
func Decode(r *http.Request, out any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apierr.Wrap(apierr.Validation, err, "malformed request body")
	}
	return nil
}

// ParseID parses a request-supplied hex id, failing with a validation
// error that names the offending field.
func ParseID(field, hex string) (primitive.ObjectID, error) {
	if hex == "" {
		return primitive.NilObjectID, apierr.New(apierr.Validation, "missing %s", field)
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apierr.New(apierr.Validation, "invalid %s %q", field, hex)
	}
	return id, nil
}

// Respond writes v as JSON with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
