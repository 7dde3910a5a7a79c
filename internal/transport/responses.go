package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mhrabal/tally/internal/domain/checkin"
)

// Response is the default title/message payload, used mostly around login.
type Response struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// RoutingResponse additionally tells the frontend where to redirect.
type RoutingResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Route   string `json:"route"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// stateDocument mirrors the persisted ledger layout; the dashboard consumes
// the same shape the legacy state file uses.
type stateDocument struct {
	State []stateRecord `json:"state"`
}

type stateRecord struct {
	Date      string `json:"date"`
	DOTW      string `json:"dotw"`
	LastCount int    `json:"last_count"`
	Delta     int    `json:"count_since_yesterday"`
	LastTime  string `json:"last_time"`
}

func stateFromLedger(ledger checkin.Ledger) stateDocument {
	doc := stateDocument{State: make([]stateRecord, 0, len(ledger))}
	for _, entry := range ledger {
		doc.State = append(doc.State, stateRecord{
			Date:      entry.Date,
			DOTW:      entry.DOTW,
			LastCount: entry.Counter,
			Delta:     entry.Delta,
			LastTime:  entry.Time,
		})
	}
	return doc
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
