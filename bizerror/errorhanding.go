package bizerror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"tracker/domain"
	"tracker/i18n"
	"tracker/misc"
	"tracker/persistence"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

func ErrorHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handle(c)
		c.Next()
	}
}

func handle(c *gin.Context) {
	if ret := recover(); ret != nil {
		err, ok := ret.(error)
		if !ok {
			err = fmt.Errorf("%v", ret)
		}
		HandleError(c, err)
	} else {
		if err := c.Errors.Last(); err != nil {
			HandleError(c, err)
		}
	}
}

func HandleError(c *gin.Context, err error) {
	genericErr := err
	var ginErr *gin.Error
	if errors.As(err, &ginErr) {
		genericErr = ginErr.Err
	}

	status, body := resolve(genericErr)
	if status >= http.StatusInternalServerError {
		logrus.WithField("path", c.FullPath()).Error(err)
		sentry.CaptureException(genericErr)
	} else {
		logrus.WithField("path", c.FullPath()).Info(err)
	}

	c.JSON(status, body)
	c.Abort()
}

func resolve(err error) (int, *misc.ErrorBody) {
	var bizErr BizError
	if errors.As(err, &bizErr) {
		respond := bizErr.Respond()
		return respond.Status, &misc.ErrorBody{Code: respond.Code, Message: respond.Message, Data: respond.Data}
	}

	// bad request: io.EOF (no body).
	if errors.Is(err, io.EOF) {
		return http.StatusBadRequest, &misc.ErrorBody{Code: "bad_request.body_not_found", Message: "body not found"}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return http.StatusBadRequest, &misc.ErrorBody{Code: "bad_request.invalid_body_format", Message: "invalid body format", Data: syntaxErr.Error()}
	}
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, &misc.ErrorBody{Code: "bad_request.validation_failed", Message: "validation failed", Data: validationErr.Error()}
	}

	if known, ok := lookupKnownError(err); ok {
		return known.status, &misc.ErrorBody{Code: known.code, Message: known.err.Error()}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound, &misc.ErrorBody{Code: i18n.CommonRecordNotFound, Message: "record not found"}
	}
	if persistence.IsDuplicateKeyError(err) {
		return http.StatusConflict, &misc.ErrorBody{Code: i18n.CommonConflict, Message: "duplicate record"}
	}

	return http.StatusInternalServerError, &misc.ErrorBody{Code: i18n.CommonInternalServerError, Message: err.Error()}
}

// NoRoute renders unknown routes with the common error body.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, &misc.ErrorBody{Code: i18n.CommonRouteNotFound, Message: "route not found"})
}
