package languages

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/codejudge.net/internal/core/services/language"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/handlers"
)

type Handler struct {
	registry language.IRegistry
}

func NewHandler(registry language.IRegistry) *Handler {
	return &Handler{registry: registry}
}

func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/api/languages", h.GetLanguages).Methods("GET")
}

// GetLanguages lists every supported runtime
func (h *Handler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	handlers.ResponseWithJson(w, http.StatusOK, map[string][]domain.Runtime{"languages": h.registry.Runtimes()})
}
