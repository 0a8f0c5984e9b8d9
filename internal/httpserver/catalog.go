package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

func (h *handlers) banners(c *gin.Context) {
	products, err := h.deps.Catalog.Banners(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, productViews(products))
}

func (h *handlers) catalog(c *gin.Context) {
	f := productrepo.CatalogFilter{
		Name:         c.Query("filter[name]"),
		FreeDelivery: c.Query("filter[freeDelivery]") == "true",
		Available:    c.Query("filter[available]") == "true",
		Sort:         c.Query("sort"),
		SortType:     c.Query("sortType"),
		Page:         intQuery(c, "currentPage", 1),
		Limit:        intQuery(c, "limit", 20),
	}
	if v := c.Query("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad category id"})
			return
		}
		f.CategoryID = id
	}
	for _, v := range c.QueryArray("tags[]") {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad tag id"})
			return
		}
		f.TagIDs = append(f.TagIDs, id)
	}

	page, err := h.deps.Catalog.Catalog(c.Request.Context(), f)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"items":       productViews(page.Items),
		"currentPage": page.CurrentPage,
		"lastPage":    page.LastPage,
	})
}

func (h *handlers) limited(c *gin.Context) {
	products, err := h.deps.Catalog.Limited(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, productViews(products))
}

func (h *handlers) popular(c *gin.Context) {
	products, err := h.deps.Catalog.Popular(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, productViews(products))
}

func (h *handlers) sales(c *gin.Context) {
	page, err := h.deps.Catalog.Sales(c.Request.Context(), intQuery(c, "currentPage", 1), intQuery(c, "limit", 10))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	items := page.Items
	if items == nil {
		items = []domain.Sale{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"currentPage": page.CurrentPage,
		"lastPage":    page.LastPage,
	})
}

func (h *handlers) categories(c *gin.Context) {
	categories, err := h.deps.Catalog.Categories(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *handlers) tags(c *gin.Context) {
	tags, err := h.deps.Catalog.Tags(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	c.JSON(http.StatusOK, tags)
}

type productDetail struct {
	domain.Product
	Reviews []domain.Review `json:"reviews"`
}

func (h *handlers) product(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	product, reviews, err := h.deps.Catalog.Product(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	view := productViews([]domain.Product{*product})[0]
	c.JSON(http.StatusOK, productDetail{Product: view, Reviews: reviewViews(reviews)})
}

type reviewInput struct {
	Text string `json:"text"`
	Rate int    `json:"rate"`
}

func (h *handlers) createReview(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var in reviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request body"})
		return
	}
	p := currentProfile(c)
	reviews, err := h.deps.Catalog.CreateReview(c.Request.Context(), domain.Review{
		ProductID: id,
		AuthorID:  p.ID,
		Text:      in.Text,
		Rate:      in.Rate,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reviewViews(reviews))
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
