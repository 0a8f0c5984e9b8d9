package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/cart"
	"storefront/internal/service/profile"
)

// writeError maps domain errors onto HTTP statuses. Anything unmapped
// is a 500 with the detail kept in the log, not the response.
func writeError(c *gin.Context, logger *log.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, profile.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// productViews normalizes nil slices so list endpoints always emit
// JSON arrays.
func productViews(products []domain.Product) []domain.Product {
	if products == nil {
		products = []domain.Product{}
	}
	for i := range products {
		if products[i].Images == nil {
			products[i].Images = []domain.Image{}
		}
		if products[i].Tags == nil {
			products[i].Tags = []domain.Tag{}
		}
	}
	return products
}

// basketView renders resolved cart lines as product entries where
// count is the quantity in the basket and price the per-unit price in
// effect.
func basketView(lines []cart.Line) []domain.Product {
	items := make([]domain.Product, 0, len(lines))
	for _, l := range lines {
		p := l.Product
		p.Count = l.Quantity
		p.PriceCents = l.PriceCents
		items = append(items, p)
	}
	return productViews(items)
}

type orderView struct {
	domain.Order
	TotalCost int64            `json:"totalCost"`
	Products  []domain.Product `json:"products"`
}

func orderViewOf(o domain.Order) orderView {
	products := make([]domain.Product, 0, len(o.Lines))
	for _, l := range o.Lines {
		p := *l.Product
		p.Count = l.Quantity
		p.PriceCents = l.PriceCents
		products = append(products, p)
	}
	return orderView{Order: o, TotalCost: o.TotalCents(), Products: productViews(products)}
}

func orderViewsOf(orders []domain.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, orderViewOf(o))
	}
	return views
}

func reviewViews(reviews []domain.Review) []domain.Review {
	if reviews == nil {
		return []domain.Review{}
	}
	return reviews
}
