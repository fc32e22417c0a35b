package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/docubuddy/internal/answer"
	"github.com/spec-kit/docubuddy/internal/api/dto"
	"github.com/spec-kit/docubuddy/internal/auth"
	apperrors "github.com/spec-kit/docubuddy/pkg/util/errorutil"
)

// ChatHandler forwards questions to the answering backend.
type ChatHandler struct {
	answerer *answer.Client
}

// NewChatHandler constructs handler.
func NewChatHandler(answerer *answer.Client) *ChatHandler {
	return &ChatHandler{answerer: answerer}
}

// Ask POST /chat/ask. A backend failure still answers 200 with the fallback
// text so the conversation view keeps working.
func (h *ChatHandler) Ask(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AskRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	text, err := h.answerer.Ask(c.Context(), req.Question)
	if err != nil {
		if apperrors.IsCode(err, "VALIDATION_FAILED") {
			return err
		}
		// Degraded answers are delivered, not surfaced as HTTP errors.
		return c.JSON(fiber.Map{"data": dto.AskResponse{Answer: text}})
	}
	return c.JSON(fiber.Map{"data": dto.AskResponse{Answer: text}})
}
