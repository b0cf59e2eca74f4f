package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"comanda/internal/models"
	"comanda/internal/store"
)

// GetSettings returns the stored settings blob, or the zero shape when
// nothing has been saved yet.
func (s *Server) GetSettings(c *gin.Context) {
	settings, _ := s.deps.Settings.LoadSettings()
	c.JSON(http.StatusOK, settings)
}

// SaveSettings stores the settings blob. The configured delay reproduces
// the original's simulated latency on this one action; it blocks only this
// request, nothing else.
func (s *Server) SaveSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if delay := s.cfg.Workflow.SettingsSaveDelay.Std(); delay > 0 {
		time.Sleep(delay)
	}

	s.deps.Settings.SaveSettings(settings)
	s.deps.Bus.Publish(store.Event{Store: store.StoreSettings, Action: store.ActionSaved})
	s.log.Info("settings saved")
	c.JSON(http.StatusOK, gin.H{"message": "Settings saved"})
}

// ClearSettings drops the stored blob on demand.
func (s *Server) ClearSettings(c *gin.Context) {
	s.deps.Settings.ClearSettings()
	s.deps.Bus.Publish(store.Event{Store: store.StoreSettings, Action: store.ActionCleared})
	c.JSON(http.StatusOK, gin.H{"message": "Settings cleared"})
}

// GetNav returns the static sidebar configuration.
func (s *Server) GetNav(c *gin.Context) {
	c.JSON(http.StatusOK, models.DefaultNav)
}

// GetMonitor returns the runtime counters snapshot.
func (s *Server) GetMonitor(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.Monitor.GetMetrics())
}
