package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"nova-chat/internal/middleware"
	"nova-chat/internal/models"
	"nova-chat/internal/services"
)

// Replies the proxy returns. Clients only ever see these strings, never upstream details.
const (
	ReplyUpstreamError  = "Error from OpenAI API"
	ReplyNoResponse     = "No response"
	ReplyTransportError = "Error fetching response"
)

type CompletionHandler struct {
	completer services.Completer
	log       zerolog.Logger
}

func NewCompletionHandler(completer services.Completer, logger zerolog.Logger) *CompletionHandler {
	return &CompletionHandler{
		completer: completer,
		log:       logger,
	}
}

// AIResponse handles POST /api/ai-response.
func (h *CompletionHandler) AIResponse(w http.ResponseWriter, r *http.Request) {
	rid := middleware.RequestIDFrom(r.Context())

	// A null body decodes to a nil pointer and is rejected like any other bad body.
	var req *models.ProxyRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err == nil && req == nil {
		err = errors.New("request body is null")
	}
	if err != nil {
		h.log.Error().Str("rid", rid).Err(err).Msg("fetch error: invalid request body")
		writeJSON(w, http.StatusInternalServerError, models.ProxyResponse{Reply: ReplyTransportError})
		return
	}

	res := h.completer.Complete(r.Context(), services.CompletionRequest{
		Model:   req.Model,
		Message: req.Message,
	})

	switch res.Kind {
	case services.ResultOK:
		writeJSON(w, http.StatusOK, models.ProxyResponse{Reply: res.Text})
	case services.ResultNoContent:
		writeJSON(w, http.StatusOK, models.ProxyResponse{Reply: ReplyNoResponse})
	case services.ResultUpstreamError:
		h.log.Error().Str("rid", rid).Int("status", res.Status).Err(res.Err).Msg("upstream API error")
		writeJSON(w, res.Status, models.ProxyResponse{Reply: ReplyUpstreamError})
	default:
		h.log.Error().Str("rid", rid).Err(res.Err).Msg("fetch error")
		writeJSON(w, http.StatusInternalServerError, models.ProxyResponse{Reply: ReplyTransportError})
	}
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
