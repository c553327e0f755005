package gateway

import (
	"net/http"

	"github.com/example/pizzaria/pkg/models"
	"github.com/gin-gonic/gin"
)

type favoriteRequest struct {
	Phone     string `json:"phone"`
	ProductID string `json:"product_id"`
}

func (g *Gateway) lookupCEP(c *gin.Context) {
	addr, err := g.services.CEP.Lookup(c.Request.Context(), c.Param("cep"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addr)
}

func (g *Gateway) listFavorites(c *gin.Context) {
	ids, err := g.services.Favorites.ProductIDs(c.Request.Context(), c.Query("phone"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product_ids": ids})
}

func (g *Gateway) addFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.ProductID == "" {
		badRequest(c, "product_id is required")
		return
	}
	if err := g.services.Favorites.Add(c.Request.Context(), req.Phone, req.ProductID); err != nil {
		g.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (g *Gateway) removeFavorite(c *gin.Context) {
	if err := g.services.Favorites.Remove(c.Request.Context(), c.Query("phone"), c.Param("product_id")); err != nil {
		g.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (g *Gateway) listAddresses(c *gin.Context) {
	addrs, err := g.services.Addresses.List(c.Request.Context(), c.Query("phone"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addrs})
}

func (g *Gateway) saveAddress(c *gin.Context) {
	var addr models.Address
	if err := c.ShouldBindJSON(&addr); err != nil {
		badRequest(c, err.Error())
		return
	}
	addr.ID = ""
	if err := g.services.Addresses.Save(c.Request.Context(), &addr); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, addr)
}

func (g *Gateway) deleteAddress(c *gin.Context) {
	if err := g.services.Addresses.Delete(c.Request.Context(), c.Query("phone"), c.Param("id")); err != nil {
		g.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (g *Gateway) clockIn(c *gin.Context) {
	entry, err := g.services.TimeClock.ClockIn(c.Request.Context(), c.Param("employee"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (g *Gateway) clockOut(c *gin.Context) {
	entry, err := g.services.TimeClock.ClockOut(c.Request.Context(), c.Param("employee"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (g *Gateway) timeClockHistory(c *gin.Context) {
	entries, err := g.services.TimeClock.History(c.Request.Context(), c.Param("employee"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
