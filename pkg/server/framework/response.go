package framework

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Respond convert a Go value to JSON and sends it to the client.
func Respond(c *gin.Context, data any, statusCode int) error {
	// if there's no payload to marshal, set the status code of the response and return
	if statusCode == http.StatusNoContent {
		c.Status(statusCode)
		return nil
	}

	// respond with pretty JSON
	c.IndentedJSON(statusCode, data)
	return nil
}

// RespondError sends an error response back to the client. If the error is a `SafeError`,
// the error message and fields are sent back to the client. If the error is not a
// `SafeError`, a generic error message is sent back to the client.
func RespondError(c *gin.Context, err error) {
	// if the cause of the error provided is a `SafeError`, construct an ErrorResponse
	// using the contents of SafeError and send it back to the client
	var webErr *SafeError
	if ok := errors.As(err, &webErr); ok {
		er := ErrorResponse{
			Error:  webErr.Err.Error(),
			Fields: webErr.Fields,
		}
		_ = Respond(c, er, webErr.StatusCode)
		return
	}

	// if the error isn't a `SafeError`, it's not safe to send back the error
	// message as is because it may contain sensitive data. Send back a generic
	// 500.
	er := ErrorResponse{
		Error: http.StatusText(http.StatusInternalServerError),
	}
	_ = Respond(c, er, http.StatusInternalServerError)
}

// LoggingRespondErrWithMsg logs err, attaches it to the request for the error and metrics middleware,
// and responds with errMsg as the error message.
func LoggingRespondErrWithMsg(c *gin.Context, err error, errMsg string, statusCode int, fields ...FieldError) error {
	return LoggingRespondErrWithDetail(c, err, errMsg, "", statusCode, fields...)
}

// LoggingRespondErrWithDetail is LoggingRespondErrWithMsg with a detail string for the client.
func LoggingRespondErrWithDetail(c *gin.Context, err error, errMsg, detail string, statusCode int, fields ...FieldError) error {
	logrus.WithError(err).Error(errMsg)
	_ = c.Error(err)
	return Respond(c, ErrorResponse{Error: errMsg, Detail: detail, Fields: fields}, statusCode)
}

// LoggingRespondErrMsg responds with an error message that has no underlying error.
func LoggingRespondErrMsg(c *gin.Context, errMsg string, statusCode int) error {
	return LoggingRespondErrWithMsg(c, errors.New(errMsg), errMsg, statusCode)
}
