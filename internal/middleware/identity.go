package middleware

import (
	"net/http"

	"mind-service/internal/apperr"
	"mind-service/internal/models"
	"mind-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

const memberKey = "member"

// Identity resolves an optional accessToken (query param or
// X-Access-Token header) to a member and attaches it to the request. A
// present but unknown token is rejected; an absent token passes through
// anonymously.
func Identity(client *mongo.Client, members *service.MemberService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"errorCode": apperr.CodeDBInvalid,
				"error":     "DB connection failed",
			})
			return
		}

		accessToken := c.Query("accessToken")
		if accessToken == "" {
			accessToken = c.GetHeader("X-Access-Token")
		}
		if accessToken == "" {
			c.Next()
			return
		}

		info, err := members.ResolveAccessToken(c.Request.Context(), accessToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"errorCode": apperr.CodeDBInvalid,
				"error":     "DB connection failed",
			})
			return
		}
		if info == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"errorCode": apperr.CodeDBInvalid,
				"error":     "Access Token is wrong",
			})
			return
		}

		c.Set(memberKey, info)
		c.Next()
	}
}

// MemberFrom returns the resolved member of the request, or nil for an
// anonymous caller.
func MemberFrom(c *gin.Context) *models.MemberInfo {
	if v, ok := c.Get(memberKey); ok {
		if info, ok := v.(*models.MemberInfo); ok {
			return info
		}
	}
	return nil
}
