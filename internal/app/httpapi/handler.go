// Package httpapi exposes the game service REST API.
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	app "github.com/ecoplay/game-service/internal/app"
	"github.com/ecoplay/game-service/internal/app/domain/consent"
	"github.com/ecoplay/game-service/internal/app/domain/game"
	"github.com/ecoplay/game-service/internal/app/domain/message"
	"github.com/ecoplay/game-service/internal/app/services/games"
	"github.com/ecoplay/game-service/internal/auth"
	"github.com/ecoplay/game-service/internal/errors"
	internalhttputil "github.com/ecoplay/game-service/internal/httputil"
	"github.com/ecoplay/game-service/internal/middleware"
)

// Options configures optional handler features.
type Options struct {
	// Metrics is mounted at GET /metrics when non-nil.
	Metrics http.Handler
	// Audit serves GET /audit when non-nil. Recording happens in
	// WrapWithAudit, which the caller applies around the full chain.
	Audit *AuditLog
}

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app   *app.Application
	audit *AuditLog
}

// NewHandler returns a router exposing the REST API.
func NewHandler(application *app.Application, opts Options) *mux.Router {
	h := &handler{app: application, audit: opts.Audit}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics).Methods(http.MethodGet)
	}
	r.HandleFunc("/me", h.me).Methods(http.MethodGet)

	r.HandleFunc("/game/public-goods/submit", h.submitPublicGoods).Methods(http.MethodPost)
	r.HandleFunc("/game/trust-game/submit", h.submitTrust).Methods(http.MethodPost)
	r.HandleFunc("/game/history/{game_type}", h.gameHistory).Methods(http.MethodGet)

	r.HandleFunc("/match/trust-game", h.matchTrust).Methods(http.MethodPost)
	r.HandleFunc("/match/trust-game/personalities", h.personalities).Methods(http.MethodGet)
	r.HandleFunc("/match/history", h.matchHistory).Methods(http.MethodGet)

	r.HandleFunc("/message/generate", h.generateMessage).Methods(http.MethodPost)
	r.HandleFunc("/message/history", h.messageHistory).Methods(http.MethodGet)
	r.HandleFunc("/message/feedback", h.messageFeedback).Methods(http.MethodPost)

	r.HandleFunc("/report/games", h.reportGames).Methods(http.MethodGet)
	r.HandleFunc("/report/public-goods", h.reportPublicGoods).Methods(http.MethodGet)
	r.HandleFunc("/report/trust-game", h.reportTrust).Methods(http.MethodGet)
	r.HandleFunc("/report/all", h.reportAll).Methods(http.MethodGet)

	r.HandleFunc("/consent/submit", h.submitConsent).Methods(http.MethodPost)
	r.HandleFunc("/consent/check/{participant}", h.checkConsent).Methods(http.MethodGet)
	r.HandleFunc("/consent/list", h.listConsents).Methods(http.MethodGet)
	r.HandleFunc("/consent/update/{id}", h.updateConsent).Methods(http.MethodPut)
	r.HandleFunc("/consent/delete/{id}", h.deleteConsent).Methods(http.MethodDelete)

	if opts.Audit != nil {
		r.HandleFunc("/audit", h.auditEntries).Methods(http.MethodGet)
	}

	return r
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	internalhttputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, map[string]string{
		"uid":         identity.UID,
		"email":       identity.Email,
		"participant": identity.ParticipantID(),
	})
}

// --- games ------------------------------------------------------------------

type publicGoodsRequest struct {
	Round          int     `json:"round"`
	Donation       int     `json:"donation"`
	CurrentBalance float64 `json:"current_balance"`
}

func (h *handler) submitPublicGoods(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload publicGoodsRequest
	if err := internalhttputil.DecodeJSON(r.Body, &payload); err != nil {
		h.writeError(w, r, errors.InvalidInput(err.Error()))
		return
	}

	out, err := h.app.Games.PlayPublicGoods(r.Context(), identity.ParticipantID(), identity.Email, game.PublicGoodsInput{
		Round:          payload.Round,
		Donation:       payload.Donation,
		CurrentBalance: payload.CurrentBalance,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "result": out})
}

type trustRequest struct {
	Round          int     `json:"round"`
	Role           string  `json:"role"`
	CurrentBalance float64 `json:"current_balance"`
	Investment     int     `json:"investment,omitempty"`
	ReceivedAmount int     `json:"received_amount,omitempty"`
	ReturnAmount   int     `json:"return_amount,omitempty"`
}

func (h *handler) submitTrust(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload trustRequest
	if err := internalhttputil.DecodeJSON(r.Body, &payload); err != nil {
		h.writeError(w, r, errors.InvalidInput(err.Error()))
		return
	}

	role, err := game.ParseRole(payload.Role)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out, err := h.app.Games.PlayTrust(r.Context(), identity.ParticipantID(), identity.Email, games.TrustInput{
		Round:          payload.Round,
		Role:           role,
		CurrentBalance: payload.CurrentBalance,
		Investment:     payload.Investment,
		ReceivedAmount: payload.ReceivedAmount,
		ReturnAmount:   payload.ReturnAmount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "result": out})
}

func (h *handler) gameHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	switch gameType := mux.Vars(r)["game_type"]; gameType {
	case game.GameTypePublicGoods:
		records, err := h.app.Games.PublicGoodsHistory(r.Context(), identity.ParticipantID())
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		internalhttputil.WriteJSON(w, http.StatusOK, records)
	case game.GameTypeTrust:
		role, err := optionalRole(r.URL.Query().Get("role"))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		records, err := h.app.Games.TrustHistory(r.Context(), identity.ParticipantID(), role)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		internalhttputil.WriteJSON(w, http.StatusOK, records)
	default:
		h.writeError(w, r, errors.UnsupportedGameType(gameType))
	}
}

// --- matches ----------------------------------------------------------------

func (h *handler) matchTrust(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	m, err := h.app.Matches.Match(r.Context(), identity.ParticipantID(), "trust-game")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "match": m})
}

func (h *handler) personalities(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, h.app.Matches.Personalities())
}

func (h *handler) matchHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	history, err := h.app.Matches.History(r.Context(), identity.ParticipantID())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, history)
}

// --- messages ---------------------------------------------------------------

type messageRequest struct {
	GameType    string               `json:"game_type"`
	Round       int                  `json:"round"`
	Performance *message.Performance `json:"performance,omitempty"`
}

func (h *handler) generateMessage(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload messageRequest
	if err := internalhttputil.DecodeJSON(r.Body, &payload); err != nil {
		h.writeError(w, r, errors.InvalidInput(err.Error()))
		return
	}

	msg, err := h.app.Messages.Generate(r.Context(), identity.ParticipantID(), payload.GameType, payload.Round, payload.Performance)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, msg)
}

func (h *handler) messageHistory(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	history, err := h.app.Messages.History(r.Context(), identity.ParticipantID(), r.URL.Query().Get("game_type"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, history)
}

type feedbackRequest struct {
	MessageID string `json:"message_id"`
	Helpful   bool   `json:"helpful"`
}

func (h *handler) messageFeedback(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload feedbackRequest
	if err := internalhttputil.DecodeJSON(r.Body, &payload); err != nil {
		h.writeError(w, r, errors.InvalidInput(err.Error()))
		return
	}

	fb, err := h.app.Messages.RecordFeedback(r.Context(), identity.ParticipantID(), payload.MessageID, payload.Helpful)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "feedback": fb})
}

// --- reports ----------------------------------------------------------------

func (h *handler) reportGames(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	switch gameType := r.URL.Query().Get("game_type"); gameType {
	case "":
		h.writeCombined(w, r, identity)
	case game.GameTypePublicGoods:
		rep, err := h.app.Reports.PublicGoods(r.Context(), identity.ParticipantID())
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		internalhttputil.WriteJSON(w, http.StatusOK, rep)
	case game.GameTypeTrust:
		rep, err := h.app.Reports.Trust(r.Context(), identity.ParticipantID())
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		internalhttputil.WriteJSON(w, http.StatusOK, rep)
	default:
		h.writeError(w, r, errors.UnsupportedGameType(gameType))
	}
}

func (h *handler) reportPublicGoods(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	rep, err := h.app.Reports.PublicGoods(r.Context(), identity.ParticipantID())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, rep)
}

func (h *handler) reportTrust(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if roleParam := r.URL.Query().Get("role"); roleParam != "" {
		role, err := game.ParseRole(roleParam)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		records, err := h.app.Games.TrustHistory(r.Context(), identity.ParticipantID(), role)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		internalhttputil.WriteJSON(w, http.StatusOK, records)
		return
	}

	rep, err := h.app.Reports.Trust(r.Context(), identity.ParticipantID())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, rep)
}

func (h *handler) reportAll(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}
	h.writeCombined(w, r, identity)
}

func (h *handler) writeCombined(w http.ResponseWriter, r *http.Request, identity auth.Identity) {
	rep, err := h.app.Reports.Combined(r.Context(), identity.ParticipantID())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, rep)
}

// --- consents ---------------------------------------------------------------

type consentRequest struct {
	Given   bool            `json:"consent_given"`
	Details consent.Details `json:"consent_details"`
}

func (h *handler) submitConsent(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload consentRequest
	if err := internalhttputil.DecodeJSON(r.Body, &payload); err != nil {
		h.writeError(w, r, errors.InvalidInput(err.Error()))
		return
	}

	c, err := h.app.Consents.Submit(r.Context(), identity, payload.Given, payload.Details)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "consent": c})
}

func (h *handler) checkConsent(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}

	result, err := h.app.Consents.Check(r.Context(), mux.Vars(r)["participant"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, result)
}

func (h *handler) listConsents(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	records, err := h.app.Consents.List(r.Context(), identity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, records)
}

func (h *handler) updateConsent(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	var payload consentRequest
	if err := internalhttputil.DecodeJSON(r.Body, &payload); err != nil {
		h.writeError(w, r, errors.InvalidInput(err.Error()))
		return
	}

	c, err := h.app.Consents.Update(r.Context(), identity, mux.Vars(r)["id"], payload.Given, payload.Details)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true, "consent": c})
}

func (h *handler) deleteConsent(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.identity(w, r)
	if !ok {
		return
	}

	if err := h.app.Consents.Delete(r.Context(), identity, mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	internalhttputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// --- audit ------------------------------------------------------------------

func (h *handler) auditEntries(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.identity(w, r); !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	internalhttputil.WriteJSON(w, http.StatusOK, h.audit.listLimit(limit))
}

// --- helpers ----------------------------------------------------------------

func (h *handler) identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		internalhttputil.Unauthorized(w, "")
	}
	return identity, ok
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	serviceErr := errors.GetServiceError(err)
	if serviceErr == nil {
		serviceErr = errors.Internal("request failed", err)
	}
	internalhttputil.WriteErrorResponse(w, r, serviceErr.HTTPStatus, string(serviceErr.Code), serviceErr.Message, serviceErr.Details)
}

func optionalRole(s string) (game.Role, error) {
	if s == "" {
		return "", nil
	}
	return game.ParseRole(s)
}
