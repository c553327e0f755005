package gateway

import (
	"net/http"

	"github.com/example/pizzaria/pkg/checkout"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type couponRequest struct {
	Code string `json:"code"`
}

// validateCoupon quotes the session cart with the code applied.
func (g *Gateway) validateCoupon(c *gin.Context) {
	var req couponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Code == "" {
		badRequest(c, "code is required")
		return
	}

	quote, err := g.services.Checkout.Quote(c.Request.Context(), g.cart(c), req.Code)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (g *Gateway) checkout(c *gin.Context) {
	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := g.services.Checkout.Checkout(c.Request.Context(), g.cart(c), &req)
	if err != nil {
		g.respondError(c, err)
		return
	}

	g.logger.Info("Checkout completed",
		zap.String("order_number", result.Order.OrderNumber),
		zap.String("session", c.GetHeader(sessionHeader)))
	c.JSON(http.StatusCreated, result)
}
