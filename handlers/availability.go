package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"studioflow/models"
	"studioflow/utils"
)

// CheckAvailability probes a candidate window before the client commits
// to a booking. Windows are half-open, so a session ending exactly when
// another starts does not conflict.
func (hb *BookingHandler) CheckAvailability(c *gin.Context) {
	orgID := c.Query("orgId")
	memberID := c.Query("memberId")
	startStr := c.Query("start")
	endStr := c.Query("end")
	excludeID := c.Query("excludeBookingId")

	if orgID == "" || startStr == "" || endStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "orgId, start and end are required")
		return
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "start must be RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "end must be RFC3339")
		return
	}

	window := models.TimeWindow{Start: start, End: end}
	conflict, err := hb.Engine.CheckWindow(c.Request.Context(), orgID, memberID, window, excludeID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if conflict != nil {
		c.JSON(http.StatusOK, gin.H{
			"available": false,
			"conflict": gin.H{
				"reason":         conflict.Reason,
				"conflicting_id": conflict.ConflictingID,
				"kind":           conflict.Kind,
				"window":         conflict.Window,
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": true})
}

// EstimateTravel previews distance, drive time and fee for a candidate
// location before the booking is created.
func (hb *BookingHandler) EstimateTravel(c *gin.Context) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	if latStr == "" || lngStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "lat and lng are required")
		return
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "lat must be a number")
		return
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "lng must be a number")
		return
	}

	estimate := hb.Engine.EstimateTravel(c.Request.Context(), models.Coordinates{Lat: lat, Lng: lng})
	if estimate == nil {
		// No home base configured or routing unavailable; the booking
		// can still proceed without travel annotations.
		c.JSON(http.StatusOK, gin.H{"estimate": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimate": estimate})
}
