// internal/api/state_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"github.com/tamzrod/rdz-bridge/internal/engine"
)

// nullDevice answers every read with zeroes and accepts every write.
type nullDevice struct{}

func (nullDevice) ReadRegisters(addr, qty uint16) ([]uint16, error) { return make([]uint16, qty), nil }
func (nullDevice) WriteRegister(addr, value uint16) error           { return nil }
func (nullDevice) ReadCoils(addr, qty uint16) ([]bool, error)       { return make([]bool, qty), nil }
func (nullDevice) ReadCoil(addr uint16) (bool, error)               { return false, nil }
func (nullDevice) WriteCoil(addr uint16, on bool) error             { return nil }

func TestState_UnavailableBeforeFirstCycle(t *testing.T) {
	e := engine.New(nullDevice{}, nil)

	router := httprouter.New()
	router.GET("/state", State(e))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestState_ServesLatestSnapshot(t *testing.T) {
	e := engine.New(nullDevice{}, nil)
	if _, err := e.PollOnce(); err != nil {
		t.Fatalf("PollOnce err=%v", err)
	}

	router := httprouter.New()
	router.GET("/state", State(e))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := body["winter_setpoints"]; !ok {
		t.Fatalf("expected winter_setpoints in response, got %v", body)
	}
}
