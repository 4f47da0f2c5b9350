package middlewares

import (
	"log"
	"net/http"
	"strings"

	"fluxtrail/src/services"

	"github.com/gin-gonic/gin"
)

// AdminAuth guards the admin surface with a bearer session token issued at
// login.
func AdminAuth(auth *services.AuthService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bearerToken := ctx.Request.Header.Get("Authorization")
		if !strings.HasPrefix(bearerToken, "Bearer") {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		parts := strings.Split(bearerToken, " ")
		if len(parts) < 2 || parts[1] == "" {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		identity, err := auth.ValidateSession(parts[1])
		if err != nil {
			log.Printf("session error: %s\n", err.Error())
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		ctx.Set("address", identity.Address)
	}
}
