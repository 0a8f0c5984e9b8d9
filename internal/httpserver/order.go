package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/checkout"
)

func (h *handlers) ordersList(c *gin.Context) {
	p := currentProfile(c)
	orders, err := h.deps.Checkout.ListByProfile(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, orderViewsOf(orders))
}

func (h *handlers) ordersCreate(c *gin.Context) {
	p := currentProfile(c)
	orderID, err := h.deps.Checkout.Create(c.Request.Context(), sessionID(c), p.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orderId": orderID})
}

// loadOwnOrder fetches the order and enforces that it belongs to the
// signed-in profile. Foreign orders read as absent rather than
// forbidden.
func (h *handlers) loadOwnOrder(c *gin.Context) (*domain.Order, bool) {
	id, ok := idParam(c)
	if !ok {
		return nil, false
	}
	order, err := h.deps.Checkout.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return nil, false
	}
	if order.ProfileID != currentProfile(c).ID {
		writeError(c, h.logger, domain.ErrNotFound)
		return nil, false
	}
	return order, true
}

func (h *handlers) orderGet(c *gin.Context) {
	order, ok := h.loadOwnOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, orderViewOf(*order))
}

func (h *handlers) orderConfirm(c *gin.Context) {
	order, ok := h.loadOwnOrder(c)
	if !ok {
		return
	}
	var in checkout.DetailsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request body"})
		return
	}
	if err := h.deps.Checkout.ConfirmDetails(c.Request.Context(), order.ID, in); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orderId": order.ID})
}

func (h *handlers) orderPay(c *gin.Context) {
	order, ok := h.loadOwnOrder(c)
	if !ok {
		return
	}
	var in checkout.PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request body"})
		return
	}
	if err := h.deps.Checkout.Pay(c.Request.Context(), sessionID(c), order.ID, in); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "order is not awaiting payment"})
			return
		}
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": domain.OrderStatusPaid})
}
