package v1

import (
	"errors"
	"net/http"

	"dental-smile-backend/internal/delivery/http/response"
	"dental-smile-backend/internal/domain"
	"dental-smile-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	msgContactSubmitted   = "Form submitted successfully"
	msgContactRequired    = "Name and phone are required"
	msgContactBadBody     = "Invalid request body"
	msgNotificationFailed = "Failed to send notification"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(api *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	api.POST("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates name and phone, then notifies the clinic by email and Telegram. Succeeds when at least one channel delivers.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response{details=domain.DispatchOutcome}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(msgContactBadBody, err))
		return
	}

	outcome, err := h.contactUC.SubmitContact(c.Request.Context(), &req)
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.Error(apperror.BadRequest(msgContactRequired, nil))
		return
	case errors.Is(err, domain.ErrDeliveryFailed):
		c.Error(apperror.Internal(msgNotificationFailed, err))
		return
	case err != nil:
		c.Error(apperror.Internal(msgNotificationFailed, err))
		return
	}

	response.Success(c, http.StatusOK, msgContactSubmitted, outcome)
}
