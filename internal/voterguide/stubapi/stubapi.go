// Пакет stubapi. Локальная замена We Vote API для разработки и тестов
package stubapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/iurnickita/voterguide/internal/common/rand"
	"github.com/iurnickita/voterguide/internal/voterguide/devicestore"
	"github.com/iurnickita/voterguide/internal/voterguide/endpoint"
	"github.com/iurnickita/voterguide/internal/voterguide/logger"
	"github.com/iurnickita/voterguide/internal/voterguide/model"
	"github.com/iurnickita/voterguide/internal/voterguide/stubapi/config"
	"github.com/iurnickita/voterguide/internal/voterguide/stubapi/repository"
	"github.com/iurnickita/voterguide/internal/voterguide/token"
)

// BasePath - префикс путей API
const BasePath = "/apis/v1"

// Serve запускает сервер
func Serve(cfg config.Config, store repository.Repository, zaplog *zap.Logger) error {
	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: NewHandler(cfg, store, zaplog),
	}

	zaplog.Info("stub API server started", zap.String("addr", cfg.ServerAddr))
	return srv.ListenAndServe()
}

// NewHandler возвращает обработчик всех методов API
func NewHandler(cfg config.Config, store repository.Repository, zaplog *zap.Logger) http.Handler {
	secret := cfg.TokenSecret
	if secret == "" {
		secret = config.DefaultTokenSecret
	}
	h := &handlers{
		store:  store,
		issuer: token.NewIssuer(secret),
		apiKey: cfg.APIKey,
		zaplog: zaplog,
	}
	return newRouter(h)
}

func newRouter(h *handlers) chi.Router {
	r := chi.NewRouter()
	r.Use(logger.RequestLogMdlw(h.zaplog))

	r.Route(BasePath, func(r chi.Router) {
		r.Get(route(endpoint.DeviceIDGenerate), h.DeviceIDGenerate)
		r.Get(route(endpoint.VoterCreate), h.VoterCreate)
		r.Get(route(endpoint.VoterRetrieve), h.VoterRetrieve)
		r.Get(route(endpoint.VoterCount), h.VoterCount)
		r.Get(route(endpoint.VoterAddressRetrieve), h.VoterAddressRetrieve)
		r.Post(route(endpoint.VoterAddressSave), h.VoterAddressSave)
		r.Get(route(endpoint.OrganizationCount), h.OrganizationCount)
		r.Get(route(endpoint.ElectionsRetrieve), h.ElectionsRetrieve)
		r.Get(route(endpoint.BallotItemOptionsRetrieve), h.BallotItemOptionsRetrieve)
		r.Get(route(endpoint.VoterBallotItemsRetrieve), h.VoterBallotItemsRetrieve)
		r.Get(route(endpoint.CandidatesRetrieve), h.CandidatesRetrieve)
	})
	return r
}

func route(n endpoint.Name) string {
	return "/" + n.String() + "/"
}

type handlers struct {
	store  repository.Repository
	issuer *token.Issuer
	apiKey string
	zaplog *zap.Logger
}

// Вспомогательные функции

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, success bool, status string) {
	writeJSON(w, http.StatusOK, model.Status{Success: success, Status: status})
}

func (h *handlers) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.zaplog.Error("stub API request failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// voterDeviceID читает идентификатор из параметров запроса, затем из cookie
func voterDeviceID(r *http.Request) string {
	if id := r.FormValue(endpoint.ParamVoterDeviceID); id != "" {
		return id
	}
	if cookie, err := r.Cookie(devicestore.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// deviceCode проверяет идентификатор устройства. При ошибке ответ уже записан
func (h *handlers) deviceCode(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := voterDeviceID(r)
	if id == "" {
		writeStatus(w, false, "VALID_VOTER_DEVICE_ID_MISSING")
		return "", false
	}
	code, err := h.issuer.DeviceCode(id)
	if err != nil {
		writeStatus(w, false, "VALID_VOTER_DEVICE_ID_MISSING")
		return "", false
	}
	return code, true
}

func (h *handlers) checkAPIKey(w http.ResponseWriter, r *http.Request) bool {
	if h.apiKey != "" && r.FormValue(endpoint.ParamAPIKey) != h.apiKey {
		writeStatus(w, false, "VALID_API_KEY_MISSING")
		return false
	}
	return true
}

// Обработчики

func (h *handlers) DeviceIDGenerate(w http.ResponseWriter, r *http.Request) {
	code, err := rand.DeviceCode()
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	id, err := h.issuer.Build(code)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.DeviceID{
		Status:        model.Status{Success: true, Status: "DEVICE_ID_GENERATE_VALUE_DOES_NOT_EXIST"},
		VoterDeviceID: id,
	})
}

func (h *handlers) VoterCreate(w http.ResponseWriter, r *http.Request) {
	code, ok := h.deviceCode(w, r)
	if !ok {
		return
	}
	voter, err := h.store.CreateVoter(r.Context(), code)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	voter.Status = model.Status{Success: true, Status: "VOTER_CREATED"}
	voter.VoterDeviceID = voterDeviceID(r)
	writeJSON(w, http.StatusOK, voter)
}

func (h *handlers) VoterRetrieve(w http.ResponseWriter, r *http.Request) {
	code, ok := h.deviceCode(w, r)
	if !ok {
		return
	}
	voter, err := h.store.GetVoter(r.Context(), code)
	if errors.Is(err, repository.ErrVoterNotFound) {
		writeStatus(w, false, "VOTER_NOT_FOUND_FROM_VOTER_DEVICE_ID")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	voter.Status = model.Status{Success: true, Status: "VOTER_FOUND"}
	voter.VoterDeviceID = voterDeviceID(r)
	writeJSON(w, http.StatusOK, voter)
}

func (h *handlers) VoterCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.VoterCount(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.VoterCount{Status: model.Status{Success: true}, VoterCount: count})
}

func (h *handlers) VoterAddressRetrieve(w http.ResponseWriter, r *http.Request) {
	code, ok := h.deviceCode(w, r)
	if !ok {
		return
	}
	address, err := h.store.GetAddress(r.Context(), code)
	if errors.Is(err, repository.ErrVoterNotFound) {
		writeStatus(w, false, "VOTER_NOT_FOUND_FROM_VOTER_DEVICE_ID")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.VoterAddress{
		Status:        model.Status{Success: true, Status: "VOTER_ADDRESS_RETRIEVED"},
		VoterDeviceID: voterDeviceID(r),
		Address:       address,
	})
}

func (h *handlers) VoterAddressSave(w http.ResponseWriter, r *http.Request) {
	if !h.checkAPIKey(w, r) {
		return
	}
	code, ok := h.deviceCode(w, r)
	if !ok {
		return
	}
	address := r.PostFormValue(endpoint.ParamAddress)
	if address == "" {
		writeStatus(w, false, "MISSING_POST_VARIABLE-ADDRESS")
		return
	}
	err := h.store.SaveAddress(r.Context(), code, address)
	if errors.Is(err, repository.ErrVoterNotFound) {
		writeStatus(w, false, "VOTER_NOT_FOUND_FROM_VOTER_DEVICE_ID")
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.VoterAddress{
		Status:        model.Status{Success: true, Status: "VOTER_ADDRESS_SAVED"},
		VoterDeviceID: voterDeviceID(r),
		Address:       address,
	})
}

func (h *handlers) OrganizationCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.OrganizationCount(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.OrganizationCount{Status: model.Status{Success: true}, OrganizationCount: count})
}

func (h *handlers) ElectionsRetrieve(w http.ResponseWriter, r *http.Request) {
	if !h.checkAPIKey(w, r) {
		return
	}
	if _, ok := h.deviceCode(w, r); !ok {
		return
	}
	elections, err := h.store.Elections(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.Elections{
		Status:       model.Status{Success: true, Status: "ELECTIONS_RETRIEVED"},
		ElectionList: elections,
	})
}

func (h *handlers) BallotItemOptionsRetrieve(w http.ResponseWriter, r *http.Request) {
	h.ballotItems(w, r, false)
}

func (h *handlers) VoterBallotItemsRetrieve(w http.ResponseWriter, r *http.Request) {
	h.ballotItems(w, r, true)
}

// ballotItems отдает бюллетень ближайших выборов или все позиции
func (h *handlers) ballotItems(w http.ResponseWriter, r *http.Request, voterBallot bool) {
	if !h.checkAPIKey(w, r) {
		return
	}
	if _, ok := h.deviceCode(w, r); !ok {
		return
	}

	var electionID string
	if voterBallot {
		elections, err := h.store.Elections(r.Context())
		if err != nil {
			h.internalError(w, r, err)
			return
		}
		if len(elections) == 0 {
			writeStatus(w, false, "NO_UPCOMING_ELECTION")
			return
		}
		electionID = elections[0].GoogleCivicElectionID
	}

	items, err := h.store.BallotItems(r.Context(), electionID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.BallotItems{
		Status:         model.Status{Success: true, Status: "BALLOT_ITEMS_RETRIEVED"},
		VoterDeviceID:  voterDeviceID(r),
		BallotItemList: items,
	})
}

func (h *handlers) CandidatesRetrieve(w http.ResponseWriter, r *http.Request) {
	officeID := r.FormValue(endpoint.ParamOfficeWeVoteID)
	if officeID == "" {
		writeStatus(w, false, "VALID_OFFICE_ID_AND_OFFICE_WE_VOTE_ID_MISSING")
		return
	}
	candidates, err := h.store.Candidates(r.Context(), officeID)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.Candidates{
		Status:         model.Status{Success: true, Status: "CANDIDATES_RETRIEVED"},
		OfficeWeVoteID: officeID,
		CandidateList:  candidates,
	})
}
