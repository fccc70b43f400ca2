package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TheVovchenskiy/sportify-tg-bot/app"
	"github.com/TheVovchenskiy/sportify-tg-bot/db"
	"github.com/TheVovchenskiy/sportify-tg-bot/models"
	"github.com/TheVovchenskiy/sportify-tg-bot/pkg/mylogger"
)

type App interface {
	EventCreated(ctx context.Context, tgChatID int64, event *models.BotEvent) (int, error)
	EventUpdated(ctx context.Context, event *models.BotEvent) error
	EventDeleted(ctx context.Context, eventID string) error
}

var _ App = (*app.App)(nil)

type Handler struct {
	app    App
	logger *mylogger.MyLogger
}

func NewHandler(app App, logger *mylogger.MyLogger) Handler {
	return Handler{app: app, logger: logger}
}

// handleNotificationErr maps the error taxonomy onto HTTP statuses:
// parse defects are the client's fault, a miss in the correlation store is
// not found, render and delivery failures are ours. Unexpected errors get a
// generic reason so internal text never leaks.
func (h *Handler) handleNotificationErr(ctx context.Context, w http.ResponseWriter, errOutside error) {
	h.logger.WithCtx(ctx).Error(errOutside)

	switch {
	case errors.Is(errOutside, models.ErrMissingField),
		errors.Is(errOutside, models.ErrMalformedTimestamp):
		models.WriteJSONResponse(w, http.StatusBadRequest, models.NewResponseFail(errOutside.Error()))
	case errors.Is(errOutside, db.ErrNotFoundEventMessage):
		models.WriteJSONResponse(w, http.StatusNotFound, models.NewResponseFail(models.NotFoundEventErrMessage))
	case errors.Is(errOutside, models.ErrUnknownEnumValue),
		errors.Is(errOutside, app.ErrOutboundDelivery):
		models.WriteJSONResponse(w, http.StatusInternalServerError, models.NewResponseFail(errOutside.Error()))
	default:
		models.WriteJSONResponse(w, http.StatusInternalServerError, models.NewResponseFail(models.InternalServerErrMessage))
	}
}

func (h *Handler) decodeRequest(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface {
	Validate() error
},
) bool {
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		h.logger.WithCtx(ctx).Error(err)
		models.WriteJSONResponse(w, http.StatusBadRequest, models.NewResponseFail(err.Error()))

		return false
	}

	if err := request.Validate(); err != nil {
		h.logger.WithCtx(ctx).Error(err)
		models.WriteJSONResponse(w, http.StatusBadRequest, models.NewResponseFail(err.Error()))

		return false
	}

	return true
}

func (h *Handler) EventCreated(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request models.EventCreatedBotRequest
	if !h.decodeRequest(ctx, w, r, &request) {
		return
	}

	tgChatID := int64(*request.TgChatID)

	tgMessageID, err := h.app.EventCreated(ctx, tgChatID, request.Event)
	if err != nil {
		h.handleNotificationErr(ctx, w, err)

		return
	}

	models.WriteJSONResponse(w, http.StatusOK, models.NewResponseEventCreated(tgChatID, tgMessageID))
}

func (h *Handler) EventUpdated(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request models.EventUpdatedBotRequest
	if !h.decodeRequest(ctx, w, r, &request) {
		return
	}

	if err := h.app.EventUpdated(ctx, request.Event); err != nil {
		h.handleNotificationErr(ctx, w, err)

		return
	}

	models.WriteJSONResponse(w, http.StatusOK, models.NewResponseSuccess())
}

func (h *Handler) EventDeleted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request models.EventDeletedBotRequest
	if !h.decodeRequest(ctx, w, r, &request) {
		return
	}

	if err := h.app.EventDeleted(ctx, *request.EventID); err != nil {
		h.handleNotificationErr(ctx, w, err)

		return
	}

	models.WriteJSONResponse(w, http.StatusOK, models.NewResponseSuccess())
}
