package gateway

import (
	"net/http"
	"strings"

	"github.com/example/pizzaria/pkg/cart"
	"github.com/example/pizzaria/pkg/catalog"
	"github.com/example/pizzaria/pkg/models"
	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID    string `json:"product_id"`
	Size         string `json:"size"`
	Quantity     int    `json:"quantity"`
	Observations string `json:"observations"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (g *Gateway) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartResponse(g.cart(c)))
}

func (g *Gateway) clearCart(c *gin.Context) {
	store := g.cart(c)
	store.ClearCart()
	c.JSON(http.StatusOK, cartResponse(store))
}

func (g *Gateway) addCartItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ProductID == "" {
		badRequest(c, "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		badRequest(c, "quantity must be positive")
		return
	}
	size := models.SizeM
	if req.Size != "" {
		parsed, err := models.ParseSize(strings.ToUpper(req.Size))
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		size = parsed
	}

	product, err := g.services.Catalog.Get(c.Request.Context(), req.ProductID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	if !product.Available {
		g.respondError(c, errUnavailable)
		return
	}

	item := cart.Item{
		ProductID:    product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        catalog.SizedPrice(product, size),
		Image:        product.Image,
		Category:     product.Category,
		Quantity:     req.Quantity,
		Size:         size,
		Observations: req.Observations,
	}
	store := g.cart(c)
	store.AddItem(item)
	c.JSON(http.StatusCreated, cartResponse(store, item))
}

func (g *Gateway) updateCartItem(c *gin.Context) {
	size, err := models.ParseSize(strings.ToUpper(c.Param("size")))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	store := g.cart(c)
	store.UpdateQuantity(c.Param("id"), size, req.Quantity)
	c.JSON(http.StatusOK, cartResponse(store))
}

func (g *Gateway) removeCartItem(c *gin.Context) {
	size, err := models.ParseSize(strings.ToUpper(c.Param("size")))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	store := g.cart(c)
	store.RemoveItem(c.Param("id"), size)
	c.JSON(http.StatusOK, cartResponse(store))
}
