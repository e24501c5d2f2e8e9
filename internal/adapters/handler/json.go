package handler

import (
	"encoding/json"
	"log"
	"net/http"
)

// decodeStrict rejects request bodies carrying fields the target struct
// does not declare. Form submissions are typed end to end; an unknown
// key is a client bug, not something to merge silently.
func decodeStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}
