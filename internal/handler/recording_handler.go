package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shoppingk/jitsi-session-keeper/internal/model"
	"github.com/shoppingk/jitsi-session-keeper/pkg/logger"
	"github.com/shoppingk/jitsi-session-keeper/prometheus"
)

// StartRecording begins a recording for a room. Admin only (gated by
// middleware); the ledger itself additionally rejects double-starts.
func (h *Handler) StartRecording(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordRecordingOperation("start")

	var req struct {
		RoomID   string `json:"roomId"`
		RoomName string `json:"roomName"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse recording start request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.RoomID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roomId is required"})
	}

	userID, _ := c.Get("user_id").(string)
	rec, err := h.Recordings.Start(req.RoomID, req.RoomName, userID)
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}

	prometheus.ActiveRecordingsGauge.Inc()
	return c.JSON(http.StatusCreated, echo.Map{"recording": rec})
}

// StopRecording ends the active recording of a room and schedules the
// simulated processing. Admin only.
func (h *Handler) StopRecording(c echo.Context) error {
	prometheus.RecordRecordingOperation("stop")

	rec, err := h.Recordings.Stop(c.Param("room"))
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}

	prometheus.ActiveRecordingsGauge.Dec()
	return c.JSON(http.StatusOK, echo.Map{"recording": rec})
}

// ListRecordings returns the recording history: admins see everything,
// other users only their own entries.
func (h *Handler) ListRecordings(c echo.Context) error {
	prometheus.RecordRecordingOperation("list")

	userID := ""
	if role, _ := c.Get("role").(string); role != string(model.RoleAdmin) {
		userID, _ = c.Get("user_id").(string)
	}

	return c.JSON(http.StatusOK, echo.Map{"recordings": h.Recordings.List(userID)})
}

// ActiveRecording reports the in-progress recording of a room, if any.
func (h *Handler) ActiveRecording(c echo.Context) error {
	roomID := c.Param("room")
	return c.JSON(http.StatusOK, echo.Map{
		"isRecording": h.Recordings.IsActive(roomID),
		"recording":   h.Recordings.ActiveFor(roomID),
	})
}

// DownloadRecording hands out the synthesized file URL of a completed
// recording. This is a bookkeeping affordance; no file bytes exist.
func (h *Handler) DownloadRecording(c echo.Context) error {
	prometheus.RecordRecordingOperation("download")

	fileURL, filename, err := h.Recordings.Download(c.Param("id"))
	if err != nil {
		return c.JSON(statusFor(err), echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"fileUrl":  fileURL,
		"filename": filename,
	})
}
