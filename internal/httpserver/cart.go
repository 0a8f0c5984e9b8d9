package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type basketInput struct {
	ID       int64 `json:"id"`
	Count    int   `json:"count"`
	Override bool  `json:"override"`
}

// normalize applies the implicit quantity of one when the payload
// leaves count out.
func (in *basketInput) normalize() {
	if in.Count == 0 {
		in.Count = 1
	}
}

func (h *handlers) basketGet(c *gin.Context) {
	lines, err := h.deps.Cart.Items(c.Request.Context(), sessionID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, basketView(lines))
}

func (h *handlers) basketAdd(c *gin.Context) {
	var in basketInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request body"})
		return
	}
	in.normalize()
	sid := sessionID(c)
	if err := h.deps.Cart.Add(c.Request.Context(), sid, in.ID, in.Count, in.Override); err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.respondBasket(c, sid)
}

func (h *handlers) basketRemove(c *gin.Context) {
	var in basketInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request body"})
		return
	}
	in.normalize()
	sid := sessionID(c)
	if err := h.deps.Cart.Remove(c.Request.Context(), sid, in.ID, in.Count); err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.respondBasket(c, sid)
}

func (h *handlers) respondBasket(c *gin.Context, sid string) {
	lines, err := h.deps.Cart.Items(c.Request.Context(), sid)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, basketView(lines))
}
