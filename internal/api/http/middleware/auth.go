package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"messaging-back/internal/api/http/handler"
	"messaging-back/internal/identity"
	"messaging-back/internal/model"
)

// JWTAuth resolves the caller from the access cookie or the Bearer header and stores its uuid under model.UserIDKey.
func JWTAuth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := verifier.Verify(c.Request.Context(), identity.TokenFromRequest(c.Request))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.ResponseWithMessage{
				Status:  handler.StatusNotPermitted,
				Message: "invalid or missing token",
			})

			return
		}

		c.Set(model.UserIDKey, userID)

		c.Next()
	}
}
