package server

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/ledgerline/contracts/internal/handlers"
	"github.com/ledgerline/contracts/internal/httpx"
	"github.com/ledgerline/contracts/internal/identity"
	"github.com/ledgerline/contracts/internal/services"
)

// New constructs the root http.Handler with all routes applied.
func New(db *gorm.DB, svc *services.ContractService) http.Handler {
	mux := http.NewServeMux()

	// --- Health endpoints ---
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ch := handlers.NewContractHandler(svc)

	mux.HandleFunc("/contracts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ch.List(w, r)
		case http.MethodPost:
			ch.Create(w, r)
		default:
			methodNotAllowed(w, "GET,POST")
		}
	})
	mux.HandleFunc("/contracts/get", requireMethod(http.MethodGet, ch.Get))
	mux.HandleFunc("/contracts/update", requireMethod(http.MethodPut, ch.Update))
	mux.HandleFunc("/contracts/submit", requireMethod(http.MethodPost, ch.Submit))
	mux.HandleFunc("/contracts/cancel", requireMethod(http.MethodPost, ch.Cancel))
	mux.HandleFunc("/contracts/fulfilment", requireMethod(http.MethodPost, ch.Fulfilment))
	mux.HandleFunc("/contracts/events", requireMethod(http.MethodGet, ch.Events))
	mux.HandleFunc("/contracts/party-users", requireMethod(http.MethodGet, ch.PartyUsers))

	return withActor(mux)
}

func requireMethod(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			methodNotAllowed(w, method)
			return
		}
		next(w, r)
	}
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}

// withActor carries the submitting user from the X-User header into the
// request context; the host framework in front of this service is trusted
// to authenticate it.
func withActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if actor := r.Header.Get("X-User"); actor != "" {
			r = r.WithContext(identity.WithActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}
