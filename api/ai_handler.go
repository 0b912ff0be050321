package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blogger-backend/ai"
	"github.com/rpupo63/blogger-backend/errs"
)

type aiHandler struct {
	responder Responder
	logger    zerolog.Logger
	gateway   *ai.Gateway
}

func newAIHandler(gateway *ai.Gateway) aiHandler {
	logger := log.With().Str("handlerName", "aiHandler").Logger()

	return aiHandler{
		responder: NewResponder(logger),
		logger:    logger,
		gateway:   gateway,
	}
}

// writeGenerationError maps gateway failures onto the API taxonomy: a
// missing credential is a configuration problem, anything else is an
// upstream failure.
func (h aiHandler) writeGenerationError(w http.ResponseWriter, err error) {
	if errors.Is(err, ai.ErrNotConfigured) {
		h.responder.WriteError(w, errs.NewAINotConfiguredError())
		return
	}
	h.responder.WriteError(w, errs.NewAIUpstreamError(err))
}

// generatePost produces a complete markdown post for a topic
func (h aiHandler) generatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Topic    string `json:"topic"`
			Keywords string `json:"keywords"`
			Tone     string `json:"tone"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Topic == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Topic is required"))
			return
		}

		content, err := h.gateway.GeneratePost(r.Context(), req.Topic, req.Keywords, req.Tone)
		if err != nil {
			h.writeGenerationError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Blog post generated successfully",
			"content": content,
		})
	}
}

// improveSection rewrites a passage following caller instructions
func (h aiHandler) improveSection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content      string `json:"content"`
			Instructions string `json:"instructions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Content == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Content is required"))
			return
		}

		improved, err := h.gateway.ImproveSection(r.Context(), req.Content, req.Instructions)
		if err != nil {
			h.writeGenerationError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Content improved successfully",
			"content": improved,
		})
	}
}

// generateOutline produces a markdown outline for a topic
func (h aiHandler) generateOutline() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Topic    string `json:"topic"`
			Sections int    `json:"sections"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Topic == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Topic is required"))
			return
		}

		outline, err := h.gateway.GenerateOutline(r.Context(), req.Topic, req.Sections)
		if err != nil {
			h.writeGenerationError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Outline generated successfully",
			"content": outline,
		})
	}
}

// continueWriting extends existing content
func (h aiHandler) continueWriting() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content   string `json:"content"`
			Direction string `json:"direction"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Content == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Existing content is required"))
			return
		}

		continuation, err := h.gateway.ContinueWriting(r.Context(), req.Content, req.Direction)
		if err != nil {
			h.writeGenerationError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Content continuation generated successfully",
			"content": continuation,
		})
	}
}

// generateTags suggests comma-separated tags for the content
func (h aiHandler) generateTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Content == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Content is required"))
			return
		}

		tags, err := h.gateway.GenerateTags(r.Context(), req.Content)
		if err != nil {
			h.writeGenerationError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "Tags generated successfully",
			"tags":    tags,
		})
	}
}
