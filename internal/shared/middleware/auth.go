package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/shared/authz"
	"blog-backend/internal/shared/response"
	"blog-backend/pkg/jwt"
)

const authorContextKey = "current_author"

// Authentication resolves an optional bearer token to an author and
// attaches it to the request context. Requests without an
// Authorization header pass through anonymously; the object-level
// policy downstream decides whether that is acceptable. Requests that
// do present credentials must present valid ones.
//
// The active flag is re-checked here on every request, so a token
// issued before an account was deactivated stops working immediately.
func Authentication(jwtManager *jwt.Manager, repo author.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Detail(c, http.StatusUnauthorized, "Authorization header must be of the form: Bearer <token>")
			return
		}

		authorID, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Detail(c, http.StatusUnauthorized, "Token has expired")
			} else {
				response.Detail(c, http.StatusUnauthorized, "Token is invalid")
			}
			return
		}

		// The subject may have been deleted after the token was
		// issued; treat that as a dead credential, not a 404.
		a, err := repo.FindByID(c.Request.Context(), authorID)
		if err != nil {
			if errors.Is(err, author.ErrAuthorNotFound) {
				response.Detail(c, http.StatusUnauthorized, "Author not found")
			} else {
				response.Generic(c, http.StatusInternalServerError)
			}
			return
		}

		if !a.Active {
			response.Detail(c, http.StatusForbidden, "Author is inactive")
			return
		}

		c.Set(authorContextKey, a)
		c.Next()
	}
}

// CurrentAuthor returns the author resolved by Authentication, or nil
// for an anonymous request.
func CurrentAuthor(c *gin.Context) *author.Author {
	value, exists := c.Get(authorContextKey)
	if !exists {
		return nil
	}
	a, ok := value.(*author.Author)
	if !ok {
		return nil
	}
	return a
}

// CurrentActor adapts the resolved author into the policy's actor
// type; nil means anonymous.
func CurrentActor(c *gin.Context) *authz.Actor {
	a := CurrentAuthor(c)
	if a == nil {
		return nil
	}
	return &authz.Actor{ID: a.ID}
}
