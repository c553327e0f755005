package gateway

import (
	"errors"
	"net/http"

	"github.com/example/pizzaria/pkg/account"
	"github.com/example/pizzaria/pkg/cep"
	"github.com/example/pizzaria/pkg/checkout"
	"github.com/example/pizzaria/pkg/coupon"
	"github.com/example/pizzaria/pkg/orders"
	"github.com/example/pizzaria/pkg/pricing"
	"github.com/example/pizzaria/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	errUnknownOption   = errors.New("unknown option")
	errDuplicateFlavor = errors.New("flavor chosen more than once")
	errUnavailable     = errors.New("product is not available")
)

var (
	badRequestErrors = []error{
		errUnknownOption,
		errDuplicateFlavor,
		errUnavailable,
		checkout.ErrEmptyCart,
		pricing.ErrTooManyFlavors,
		pricing.ErrNoFlavor,
		pricing.ErrNotAFlavor,
		coupon.ErrInactive,
		coupon.ErrExpired,
		coupon.ErrExhausted,
		coupon.ErrBelowMinimum,
		cep.ErrInvalidCEP,
		account.ErrPhoneRequired,
		orders.ErrEmptyStatus,
	}
	notFoundErrors = []error{
		repository.ErrNotFound,
		coupon.ErrNotFound,
		cep.ErrNotFound,
	}
	conflictErrors = []error{
		orders.ErrCannotCancel,
		account.ErrShiftOpen,
		account.ErrNoOpenShift,
	}
)

func statusFor(err error) int {
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	if matches(err, badRequestErrors) {
		return http.StatusBadRequest
	}
	if matches(err, notFoundErrors) {
		return http.StatusNotFound
	}
	if matches(err, conflictErrors) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func matches(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondError writes err with its status. Unexpected errors are logged and
// hidden behind a generic message.
func (g *Gateway) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		g.logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
