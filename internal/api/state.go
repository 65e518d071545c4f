// internal/api/state.go
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/tamzrod/rdz-bridge/internal/engine"
)

// State serves the latest snapshot as JSON. 503 until the first
// successful poll cycle; after a failed cycle the last good snapshot
// is still served (stale but valid).
func State(e *engine.Engine) func(http.ResponseWriter, *http.Request, httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		snap := e.Latest()
		if snap == nil {
			http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			log.Printf("api: encode state: %v", err)
		}
	}
}
