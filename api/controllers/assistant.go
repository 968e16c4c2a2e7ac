package controllers

import (
	"net/http"

	"github.com/neonclouds/neonclouds-backend/api/responses"
	"github.com/neonclouds/neonclouds-backend/api/validators"
	"github.com/neonclouds/neonclouds-backend/internal/assistant"
	pkgerrors "github.com/neonclouds/neonclouds-backend/pkg/errors"
	"github.com/neonclouds/neonclouds-backend/pkg/logger"
)

const maxChatMessageLen = 2000

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

// AssistantHistory returns the transcript, greeting first. A limit
// query parameter returns only the most recent messages.
func AssistantHistory(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		messages := sess.Chat.Messages()
		if limit > 0 && len(messages) > limit {
			messages = messages[len(messages)-limit:]
		}

		responses.WriteSuccess(w, map[string]any{
			"messages": messages,
			"pending":  sess.Chat.Pending(),
		})
	}
}

// AssistantSend runs one chat turn. The reply always lands in the
// transcript, fallback text included, so the widget never renders an
// error state.
func AssistantSend(svc assistant.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assistant service unavailable"))
			return
		}

		sess, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sendMessageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		text := validators.SanitizeString(payload.Text, maxChatMessageLen)
		messages, err := svc.Send(r.Context(), sess.Chat, text)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"messages": messages,
			"pending":  false,
		})
	}
}
