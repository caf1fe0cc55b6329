package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/munnerz/goautoneg"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/adfharrison1/employees-api/pkg/domain"
)

// wantsMsgpack reports whether msgpack is the client's preferred encoding.
// Clauses are taken in quality order; q=0 excludes a media range.
func wantsMsgpack(r *http.Request) bool {
	for _, clause := range goautoneg.ParseAccept(r.Header.Get("Accept")) {
		if clause.Q <= 0 {
			continue
		}
		switch {
		case clause.Type == "application" && (clause.SubType == "msgpack" || clause.SubType == "x-msgpack"):
			return true
		case clause.Type == "application" && clause.SubType == "json",
			clause.Type == "application" && clause.SubType == "*",
			clause.Type == "*":
			return false
		}
	}
	return false
}

// writeBody encodes v as msgpack when requested, JSON otherwise
func writeBody(w http.ResponseWriter, r *http.Request, statusCode int, v interface{}) error {
	if wantsMsgpack(r) {
		data, err := msgpack.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode MessagePack: %w", err)
		}
		w.Header().Set("Content-Type", msgpackMediaType)
		w.WriteHeader(statusCode)
		_, err = w.Write(data)
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(statusCode)
	_, err = w.Write(data)
	return err
}

// decodeEmployeeInput reads {name, email} from the request body
func (h *Handler) decodeEmployeeInput(r *http.Request) (domain.EmployeeInput, error) {
	const op = "decode employee"

	var in domain.EmployeeInput
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&in); err != nil {
		return in, domain.Validation(op, err)
	}
	// The body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("more than one JSON value")
		}
		return in, domain.Validation(op, fmt.Errorf("unexpected data after JSON body: %w", err))
	}
	if err := h.validate.Struct(in); err != nil {
		return in, domain.Validation(op, err)
	}
	return in, nil
}
