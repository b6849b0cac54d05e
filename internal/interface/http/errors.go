package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/CamiloTello002/Talent-Trade/internal/domain/apperr"
	"github.com/CamiloTello002/Talent-Trade/pkg/response"
)

// respondError translates a service failure into the HTTP envelope.
// Business failures keep their message; anything unclassified becomes a
// generic 500 so internals do not leak.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	kind, ok := apperr.KindOf(err)
	if !ok {
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		return
	}

	var status int
	switch kind {
	case apperr.KindAuthentication:
		status = http.StatusUnauthorized
	case apperr.KindAuthorization:
		status = http.StatusForbidden
	case apperr.KindBadRequest:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
	}
	response.Error[any](c, status, err.Error(), gin.H{"kind": kind.String()})
}
