package api

import (
	"strconv"
	"time"

	"pointdesk/infrastructure/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// requestID attaches a request ID to every request, honoring one the
// caller already supplied
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("requestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// accessLog writes one structured log line per request and feeds the
// request metrics
func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()

		observability.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(status), started)

		log.WithFields(log.Fields{
			"requestID": c.GetString("requestID"),
			"method":    c.Request.Method,
			"path":      path,
			"status":    status,
			"duration":  time.Since(started).String(),
		}).Info("Request handled")
	}
}

// actorID extracts the staff actor from the X-Actor-ID header
func actorID(c *gin.Context) int64 {
	raw := c.GetHeader("X-Actor-ID")
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
