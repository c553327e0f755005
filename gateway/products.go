package gateway

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/example/pizzaria/pkg/cart"
	"github.com/example/pizzaria/pkg/catalog"
	"github.com/example/pizzaria/pkg/models"
	"github.com/example/pizzaria/pkg/pricing"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (g *Gateway) listProducts(c *gin.Context) {
	category := models.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		badRequest(c, fmt.Sprintf("invalid category %q", category))
		return
	}

	products, err := g.services.Catalog.List(c.Request.Context(), category)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "total": len(products)})
}

func (g *Gateway) getProduct(c *gin.Context) {
	product, err := g.services.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type sizeOption struct {
	Size       models.Size     `json:"size"`
	Multiplier decimal.Decimal `json:"multiplier"`
	MaxFlavors int             `json:"max_flavors"`
}

func (g *Gateway) listOptions(c *gin.Context) {
	sizes := make([]sizeOption, len(models.Sizes))
	for i, s := range models.Sizes {
		sizes[i] = sizeOption{Size: s, Multiplier: pricing.Multiplier(s), MaxFlavors: pricing.MaxFlavors(s)}
	}
	c.JSON(http.StatusOK, gin.H{
		"sizes":        sizes,
		"borders":      catalog.Borders,
		"extras":       catalog.Extras,
		"sauces":       catalog.Sauces,
		"delivery_fee": g.services.Checkout.DeliveryFee(),
	})
}

type customizeRequest struct {
	Size         string   `json:"size"`
	FlavorIDs    []string `json:"flavor_ids"`
	Border       string   `json:"border"`
	Extras       []string `json:"extras"`
	Sauces       []string `json:"sauces"`
	Observations string   `json:"observations"`
}

type quoteResponse struct {
	Size        models.Size      `json:"size"`
	MaxFlavors  int              `json:"max_flavors"`
	Flavors     []pricing.Flavor `json:"flavors"`
	Border      pricing.Option   `json:"border"`
	Extras      []pricing.Option `json:"extras"`
	Sauces      []pricing.Option `json:"sauces"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
}

// buildPizza replays a customization onto a fresh builder. Omitted sauces
// keep the default tomato sauce; an explicit list replaces it.
func (g *Gateway) buildPizza(c *gin.Context, req *customizeRequest) (*pricing.Builder, error) {
	b := catalog.NewBuilder()

	if req.Size != "" {
		size, err := models.ParseSize(strings.ToUpper(req.Size))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errUnknownOption, err)
		}
		b.SetSize(size)
	}

	seen := make(map[string]bool, len(req.FlavorIDs))
	for _, id := range req.FlavorIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: %q", errDuplicateFlavor, id)
		}
		seen[id] = true

		product, err := g.services.Catalog.Get(c.Request.Context(), id)
		if err != nil {
			return nil, err
		}
		if !product.Available {
			return nil, fmt.Errorf("%w: %q", errUnavailable, id)
		}
		if err := b.ToggleFlavor(*product); err != nil {
			return nil, err
		}
	}

	if req.Border != "" {
		border, ok := catalog.Find(catalog.Borders, req.Border)
		if !ok {
			return nil, fmt.Errorf("%w: border %q", errUnknownOption, req.Border)
		}
		b.SetBorder(border)
	}

	for _, id := range req.Extras {
		extra, ok := catalog.Find(catalog.Extras, id)
		if !ok {
			return nil, fmt.Errorf("%w: extra %q", errUnknownOption, id)
		}
		b.ToggleExtra(extra)
	}

	if req.Sauces != nil {
		for _, s := range b.Sauces() {
			b.ToggleSauce(s)
		}
		for _, id := range req.Sauces {
			sauce, ok := catalog.Find(catalog.Sauces, id)
			if !ok {
				return nil, fmt.Errorf("%w: sauce %q", errUnknownOption, id)
			}
			b.ToggleSauce(sauce)
		}
	}

	b.SetObservations(req.Observations)
	return b, nil
}

func (g *Gateway) quotePizza(c *gin.Context) {
	var req customizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	b, err := g.buildPizza(c, &req)
	if err != nil {
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quoteResponse{
		Size:        b.Size(),
		MaxFlavors:  pricing.MaxFlavors(b.Size()),
		Flavors:     b.Flavors(),
		Border:      b.Border(),
		Extras:      b.Extras(),
		Sauces:      b.Sauces(),
		Description: b.Description(),
		Price:       b.Price().Round(2),
	})
}

func (g *Gateway) addCustomPizza(c *gin.Context) {
	var req customizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	b, err := g.buildPizza(c, &req)
	if err != nil {
		g.respondError(c, err)
		return
	}
	item, err := b.CartItem()
	if err != nil {
		g.respondError(c, err)
		return
	}

	store := g.cart(c)
	store.AddItem(item)
	c.JSON(http.StatusCreated, cartResponse(store, item))
}

func cartResponse(store *cart.Store, added ...cart.Item) gin.H {
	resp := gin.H{
		"items": store.Items(),
		"total": store.Total(),
		"count": store.Count(),
	}
	if len(added) > 0 {
		resp["added"] = added[0]
	}
	return resp
}
