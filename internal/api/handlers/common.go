package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/mentorship/internal/api/middleware"
	"github.com/yoockh/mentorship/internal/utils"
)

type APIError struct {
	Code    utils.Code   `json:"code"`
	Message string       `json:"message"`
	Reason  utils.Reason `json:"reason,omitempty"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	_ = c.Error(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

// writeOutcome reports a mutation result; failures carry the reason code so clients
// can tell a wrong actor from a wrong state.
func writeOutcome(c *gin.Context, op string, out utils.Outcome) {
	if out.OK {
		c.JSON(http.StatusOK, OKResponse{OK: true})
		return
	}

	c.Set(middleware.ReasonKey, out.Reason)
	err := out.AsError(op)
	var ae *utils.AppError
	errors.As(err, &ae)
	c.JSON(utils.HTTPStatus(err), APIError{
		Code:    ae.Code,
		Message: ae.Message,
		Reason:  out.Reason,
	})
}

func requireUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get(middleware.UserIDKey); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return "", false
}

func badRequest(c *gin.Context, op string, err error) {
	writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
}
