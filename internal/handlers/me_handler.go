package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/middleware"
	"github.com/BruksfildServices01/dogvet-api/internal/usecase/account"
)

type MeHandler struct {
	reader *account.Reader
}

func NewMeHandler(reader *account.Reader) *MeHandler {
	return &MeHandler{reader: reader}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id := middleware.IdentityFrom(c)

	cred, err := h.reader.Me(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       cred.ID,
		"login":    cred.Login,
		"role":     id.Role,
		"is_staff": cred.IsStaff,
		"active":   cred.Active,
	})
}

// Health não passa por autenticação.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
