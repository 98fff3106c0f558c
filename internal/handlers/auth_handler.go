package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogvet-api/internal/auth"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
	"github.com/BruksfildServices01/dogvet-api/internal/httpresp"
	"github.com/BruksfildServices01/dogvet-api/internal/usecase/account"
)

type AuthHandler struct {
	register *account.Register
	login    *account.Login
}

func NewAuthHandler(
	register *account.Register,
	login *account.Login,
) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Login  string `json:"login" binding:"required,max=100"`
	Secret string `json:"secret" binding:"required"`
}

type LoginRequest struct {
	Login  string `json:"login" binding:"required"`
	Secret string `json:"secret" binding:"required"`
}

// --------- Responses ---------

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Login     string    `json:"login"`
	Role      auth.Role `json:"role"`
}

// --------- Handlers ---------

// Register é público e sempre cria credencial de cliente.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	cred, err := h.register.Execute(c.Request.Context(), account.RegisterInput{
		Login:  req.Login,
		Secret: req.Secret,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, cred)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// mesmo corpo de erro de senha errada
		httperr.Unauthorized(c, "invalid_credentials", "Usuário ou senha inválidos.")
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Login, req.Secret)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, LoginResponse{
		Token:     res.Token.Value,
		ExpiresAt: res.Token.ExpiresAt,
		Login:     res.Identity.Login,
		Role:      res.Identity.Role,
	})
}
