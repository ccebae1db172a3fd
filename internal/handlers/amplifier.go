package handlers

import (
	"net/http"

	"femtoamp/internal/models"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK          = "ok"
	statusGainSet     = "gain_set"
	statusCouplingSet = "coupling_set"
	statusSpeedSet    = "speed_set"

	errGetState        = "failed to read amplifier state"
	errGetStatus       = "failed to read amplifier status"
	errGetClimate      = "failed to read temperature/humidity"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	st, err := h.services.Monitoring.GetState(ctx)
	if err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// SetGainRequest is the payload for the gain endpoint.
type SetGainRequest struct {
	// Gain step, 0..7
	Gain *int `json:"gain" binding:"required" example:"4"`
}

// SetCouplingRequest is the payload for the coupling endpoint.
type SetCouplingRequest struct {
	// Input coupling. Allowed: AC, DC
	Coupling string `json:"coupling" binding:"required" example:"DC"`
}

// SetSpeedRequest is the payload for the speed endpoint.
type SetSpeedRequest struct {
	// Speed mode. Allowed: HIGH, LOW
	Speed string `json:"speed" binding:"required" example:"LOW"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get amplifier state
// @Description  Composite view: status bits, amplification (V/A), climate, health and lifecycle state
// @Tags         amplifier
// @Produce      json
// @Success      200  {object}  models.AmplifierState
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/amplifier/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetState(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadGateway, errGetState, "amplifier_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Get status snapshot
// @Description  Gain, coupling, speed and overload from the throttled STATUS? cache
// @Tags         amplifier
// @Produce      json
// @Success      200  {object}  models.StatusSnapshot
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/amplifier/status [get]
// @Security     BearerAuth
func (h *Handler) getStatus(c *gin.Context) {
	ctx := c.Request.Context()
	snap, err := h.services.Monitoring.GetStatus(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadGateway, errGetStatus, "amplifier_get_status_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Get climate snapshot
// @Description  Temperature (°C) and humidity (%) from the throttled TEMP? cache
// @Tags         amplifier
// @Produce      json
// @Success      200  {object}  models.ClimateSnapshot
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/amplifier/climate [get]
// @Security     BearerAuth
func (h *Handler) getClimate(c *gin.Context) {
	ctx := c.Request.Context()
	snap, err := h.services.Monitoring.GetClimate(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusBadGateway, errGetClimate, "amplifier_get_climate_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Set gain
// @Tags         amplifier
// @Accept       json
// @Produce      json
// @Param        body  body   SetGainRequest  true  "Gain payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/amplifier/gain [post]
// @Security     BearerAuth
func (h *Handler) setGain(c *gin.Context) {
	var req SetGainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Control.SetGain(ctx, *req.Gain); err != nil {
		if h.log != nil {
			h.log.Errorw("amplifier_set_gain_failed", "err", err, "gain", *req.Gain)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWithStatusAndState(c, statusGainSet, gin.H{"gain": *req.Gain})
}

// @Summary      Set coupling
// @Tags         amplifier
// @Accept       json
// @Produce      json
// @Param        body  body   SetCouplingRequest  true  "Coupling payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/amplifier/coupling [post]
// @Security     BearerAuth
func (h *Handler) setCoupling(c *gin.Context) {
	var req SetCouplingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	mode, err := models.ParseCoupling(req.Coupling)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Control.SetCoupling(ctx, mode); err != nil {
		if h.log != nil {
			h.log.Errorw("amplifier_set_coupling_failed", "err", err, "coupling", req.Coupling)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWithStatusAndState(c, statusCouplingSet, gin.H{"coupling": mode.String()})
}

// @Summary      Set speed
// @Tags         amplifier
// @Accept       json
// @Produce      json
// @Param        body  body   SetSpeedRequest  true  "Speed payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/amplifier/speed [post]
// @Security     BearerAuth
func (h *Handler) setSpeed(c *gin.Context) {
	var req SetSpeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	mode, err := models.ParseSpeed(req.Speed)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Control.SetSpeed(ctx, mode); err != nil {
		if h.log != nil {
			h.log.Errorw("amplifier_set_speed_failed", "err", err, "speed", req.Speed)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondWithStatusAndState(c, statusSpeedSet, gin.H{"speed": mode.String()})
}
