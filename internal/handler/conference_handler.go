package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shoppingk/jitsi-session-keeper/internal/conference"
	"github.com/shoppingk/jitsi-session-keeper/internal/model"
)

// ConferenceConfig builds the configuration object the embedding page hands
// to the hosted conferencing widget for the requested room.
func (h *Handler) ConferenceConfig(c echo.Context) error {
	roomName := c.QueryParam("room")
	if roomName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room is required"})
	}

	user := &model.User{
		ID:       valueOf(c, "user_id"),
		Username: valueOf(c, "username"),
		Role:     model.Role(valueOf(c, "role")),
	}

	audio := boolParam(c, "audio", true)
	video := boolParam(c, "video", true)

	cfg := conference.NewConfig(h.Conference.Domain, h.Conference.EmailDomain, roomName, user, audio, video)
	return c.JSON(http.StatusOK, echo.Map{"config": cfg})
}

func valueOf(c echo.Context, key string) string {
	v, _ := c.Get(key).(string)
	return v
}

func boolParam(c echo.Context, name string, defaultValue bool) bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultValue
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return defaultValue
}
