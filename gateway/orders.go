package gateway

import (
	"context"
	"net/http"

	"github.com/example/pizzaria/pkg/models"
	"github.com/example/pizzaria/pkg/tracking"
	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	Status string `json:"status"`
}

func (g *Gateway) listOrders(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		badRequest(c, "phone is required")
		return
	}

	list, err := g.services.Orders.ListByPhone(c.Request.Context(), phone)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list, "total": len(list)})
}

func (g *Gateway) getOrder(c *gin.Context) {
	order, err := g.services.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (g *Gateway) getOrderByNumber(c *gin.Context) {
	order, err := g.services.Orders.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (g *Gateway) getTracking(c *gin.Context) {
	order, err := g.services.Orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracking.NewUpdate(order.ID, order.Status, order.UpdatedAt))
}

// streamOrderEvents sends the current stage, then one "status" event per
// change until the order is delivered or cancelled, or the client leaves.
func (g *Gateway) streamOrderEvents(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	// The order is read after subscribing so no change can slip in between.
	var order *models.Order
	updates, unsubscribe, err := g.services.Tracking.Watch(ctx, id, func(ctx context.Context) (string, error) {
		o, err := g.services.Orders.Get(ctx, id)
		if err != nil {
			return "", err
		}
		order = o
		return o.Status, nil
	})
	if err != nil {
		g.respondError(c, err)
		return
	}
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	current := tracking.NewUpdate(order.ID, order.Status, order.UpdatedAt)
	c.SSEvent("status", current)
	c.Writer.Flush()
	if finished(current) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-updates:
			if !ok {
				return
			}
			c.SSEvent("status", u)
			c.Writer.Flush()
			if finished(u) {
				return
			}
		}
	}
}

func finished(u tracking.Update) bool {
	return u.Cancelled || u.Stage == tracking.StageDelivered
}

func (g *Gateway) orderHistory(c *gin.Context) {
	entries, err := g.services.History.OrderHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (g *Gateway) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	order, err := g.services.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (g *Gateway) cancelOrder(c *gin.Context) {
	order, err := g.services.Orders.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
