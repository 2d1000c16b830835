package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/locale"
	"github.com/regionportal/cms/internal/service"
)

type contactPayload struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// SubmitContact relays a visitor message to the configured recipients.
func (a *API) SubmitContact(c *gin.Context) {
	var payload contactPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondMessage(c, http.StatusBadRequest, locale.MsgInvalidPayload)
		return
	}

	if a.contact == nil {
		a.serverError(c, "contact relay is not configured", service.ErrContactSenderMissing)
		return
	}

	err := a.contact.Submit(c.Request.Context(), service.ContactInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Message: payload.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContactFieldsRequired):
			respondMessage(c, http.StatusBadRequest, locale.MsgContactRequired)
		case errors.Is(err, service.ErrContactEmailInvalid):
			respondMessage(c, http.StatusBadRequest, locale.MsgContactEmailInvalid)
		default:
			// The relay has already logged configuration and transport faults.
			respondMessage(c, http.StatusInternalServerError, locale.MsgContactFailed)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
