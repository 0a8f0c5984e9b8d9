package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/service/profile"
)

func (h *handlers) signUp(c *gin.Context) {
	var in profile.SignUpInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request body"})
		return
	}
	p, token, err := h.deps.Profiles.SignUp(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "profile": p})
}

type signInInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *handlers) signIn(c *gin.Context) {
	var in signInInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request body"})
		return
	}
	p, token, err := h.deps.Profiles.SignIn(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "profile": p})
}

// signOut is stateless: the bearer token simply stops being presented.
// The endpoint exists so the frontend has a uniform place to land the
// action.
func (h *handlers) signOut(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlers) profileGet(c *gin.Context) {
	c.JSON(http.StatusOK, currentProfile(c))
}

func (h *handlers) profileUpdate(c *gin.Context) {
	var in profile.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request body"})
		return
	}
	updated, err := h.deps.Profiles.Update(c.Request.Context(), currentProfile(c).ID, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type passwordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *handlers) profilePassword(c *gin.Context) {
	var in passwordInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request body"})
		return
	}
	if err := h.deps.Profiles.ChangePassword(c.Request.Context(), currentProfile(c).ID, in.CurrentPassword, in.NewPassword); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type avatarInput struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

func (h *handlers) profileAvatar(c *gin.Context) {
	var in avatarInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request body"})
		return
	}
	updated, err := h.deps.Profiles.SetAvatar(c.Request.Context(), currentProfile(c).ID, in.Src, in.Alt)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
