package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/httpresp"
	"github.com/BruksfildServices01/dogvet-api/internal/middleware"
	"github.com/BruksfildServices01/dogvet-api/internal/usecase/account"
)

// ======================================================
// HANDLER
// ======================================================

type CredentialHandler struct {
	register   *account.Register
	update     *account.UpdateCredential
	deactivate *account.DeactivateCredential
	reader     *account.Reader
}

func NewCredentialHandler(
	register *account.Register,
	update *account.UpdateCredential,
	deactivate *account.DeactivateCredential,
	reader *account.Reader,
) *CredentialHandler {
	return &CredentialHandler{
		register:   register,
		update:     update,
		deactivate: deactivate,
		reader:     reader,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCredentialRequest struct {
	Login   string `json:"login" binding:"required,max=100"`
	Secret  string `json:"secret" binding:"required"`
	IsStaff bool   `json:"is_staff"`
}

type PatchCredentialRequest struct {
	Login   *string `json:"login" binding:"omitempty,max=100"`
	Secret  *string `json:"secret"`
	IsStaff *bool   `json:"is_staff"`
}

// ======================================================
// CREATE (funcionário)
// ======================================================

func (h *CredentialHandler) Create(c *gin.Context) {
	var req CreateCredentialRequest
	if !bindJSON(c, &req) {
		return
	}

	cred, err := h.register.Execute(c.Request.Context(), account.RegisterInput{
		Login:   req.Login,
		Secret:  req.Secret,
		IsStaff: req.IsStaff,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, cred)
}

// ======================================================
// READ
// ======================================================

func (h *CredentialHandler) List(c *gin.Context) {
	creds, err := h.reader.List(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, creds)
}

func (h *CredentialHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	cred, err := h.reader.Get(c.Request.Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, cred)
}

// ======================================================
// UPDATE / DEACTIVATE
// ======================================================

func (h *CredentialHandler) Patch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PatchCredentialRequest
	if !bindJSON(c, &req) {
		return
	}

	cred, err := h.update.Execute(c.Request.Context(), middleware.IdentityFrom(c), id, account.UpdateInput{
		Login:   req.Login,
		Secret:  req.Secret,
		IsStaff: req.IsStaff,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, cred)
}

func (h *CredentialHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.deactivate.Execute(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
