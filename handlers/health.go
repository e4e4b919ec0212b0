package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kayceeDev/altschooltestingBE/services"
	"github.com/kayceeDev/altschooltestingBE/utils"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Datastore string `json:"datastore"`
}

type HealthHandler struct {
	checker services.ReadinessChecker
}

func NewHealthHandler(checker services.ReadinessChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// HandleHealth reports 200 once the datastore is connected, 503 before that
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !h.checker.IsReady() {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Datastore: "disconnected"})
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, HealthResponse{Status: "ok", Datastore: "connected"})
}

func (h *HealthHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
}
