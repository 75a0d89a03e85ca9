package misc

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/repbase/workout-tracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type HealthcheckResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type Handler struct {
	versionInfo string
}

func NewHandler(versionInfo string) *Handler {
	return &Handler{
		versionInfo: versionInfo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/healthcheck", handler.handleHealthcheck).Methods("GET").Name("healthcheck")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleHealthcheck(w http.ResponseWriter, _ *http.Request) {
	resp := HealthcheckResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	}
	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal healthcheck response: %s", err)
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
