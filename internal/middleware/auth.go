package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/dogvet-api/internal/audit"
	"github.com/BruksfildServices01/dogvet-api/internal/auth"
	"github.com/BruksfildServices01/dogvet-api/internal/httperr"
)

const (
	ContextCredentialID = "credentialID"
	ContextLogin        = "login"
	ContextUserRole     = "userRole"
)

type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

func unauthorized(c *gin.Context) {
	c.Abort()
	httperr.Unauthorized(c, "unauthorized", "Token ausente, inválido ou expirado.")
}

// AuthMiddleware exige um Bearer token válido. Qualquer falha → 401,
// sempre com a mesma resposta.
func AuthMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(c)
			return
		}

		claims, err := parser.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(ContextCredentialID, claims.CredentialID())
		c.Set(ContextLogin, claims.Login)
		c.Set(ContextUserRole, claims.Role)
		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), claims.Login))

		c.Next()
	}
}

// RequireRoles roda depois do AuthMiddleware. Papel fora do conjunto → 403.
func RequireRoles(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		r, _ := role.(auth.Role)

		for _, allowed := range roles {
			if r == allowed {
				c.Next()
				return
			}
		}

		c.Abort()
		httperr.Write(c, http.StatusForbidden, "forbidden", "Você não tem permissão para esta operação.")
	}
}

// IdentityFrom devolve quem está autenticado na requisição.
func IdentityFrom(c *gin.Context) auth.Identity {
	role, _ := c.Get(ContextUserRole)
	r, _ := role.(auth.Role)

	return auth.Identity{
		CredentialID: c.GetUint(ContextCredentialID),
		Login:        c.GetString(ContextLogin),
		Role:         r,
	}
}
