package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// The API speaks two error dialects, both required for client
// compatibility: authentication and permission failures answer with
// {"detail": ...}, while generic HTTP failures are normalized to
// {"error": ..., "status_code": ...}.

// PaginatedList is the fixed list envelope: total count plus absolute
// next/previous page links (null at the edges).
type PaginatedList struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

var genericMessages = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusForbidden:           "Permission Denied",
	http.StatusNotFound:            "Not Found",
	http.StatusInternalServerError: "Internal Server Error",
}

// Detail writes a {"detail": ...} error body.
func Detail(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"detail": message})
}

// Generic writes the normalized {"error", "status_code"} body for a
// plain HTTP failure.
func Generic(c *gin.Context, statusCode int) {
	message, ok := genericMessages[statusCode]
	if !ok {
		message = http.StatusText(statusCode)
	}
	c.AbortWithStatusJSON(statusCode, gin.H{
		"error":       message,
		"status_code": statusCode,
	})
}

// ValidationFailed writes a 400 with field-level details. ozzo
// validation errors marshal to a {field: message} object.
func ValidationFailed(c *gin.Context, details interface{}) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":       genericMessages[http.StatusBadRequest],
		"status_code": http.StatusBadRequest,
		"details":     details,
	})
}

// Paginated writes a paginated list body, deriving next/previous links
// from the request URL.
func Paginated(c *gin.Context, count, page, pageSize int, results interface{}) {
	body := PaginatedList{
		Count:   count,
		Results: results,
	}

	if page*pageSize < count {
		url := pageURL(c, page+1)
		body.Next = &url
	}
	if page > 1 {
		url := pageURL(c, page-1)
		body.Previous = &url
	}

	c.JSON(http.StatusOK, body)
}

func pageURL(c *gin.Context, page int) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	u := *c.Request.URL
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	u.RawQuery = query.Encode()

	return scheme + "://" + c.Request.Host + u.String()
}
