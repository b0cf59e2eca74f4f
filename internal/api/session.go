package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type signInPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Remember bool   `json:"remember"`
}

type selectTenantPayload struct {
	ID string `json:"id" binding:"required"`
}

// SignIn flips the session gate open. There is no credential check; the
// original client accepted any email and password.
func (s *Server) SignIn(c *gin.Context) {
	var payload signInPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state := s.deps.Session.SignIn(payload.Email, payload.Remember)
	s.log.WithField("email", payload.Email).Info("signed in")
	c.JSON(http.StatusOK, state)
}

// SignOut resets the session to its initial state.
func (s *Server) SignOut(c *gin.Context) {
	s.deps.Session.SignOut()
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// GetSession returns the current session state plus the remembered email
// for pre-filling the sign-in form.
func (s *Server) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"session":         s.deps.Session.Current(),
		"rememberedEmail": s.deps.Session.RememberedEmail(),
	})
}

// SelectTenant switches the active restaurant context.
func (s *Server) SelectTenant(c *gin.Context) {
	var payload selectTenantPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.deps.Session.SelectTenant(payload.ID)
	c.JSON(http.StatusOK, s.deps.Session.Current())
}
