// Package conference defines the contract with the externally hosted
// conferencing widget. The widget is an opaque black box: this service only
// builds its configuration, observes its joined/left events, and issues
// commands. Media transport never touches this process.
package conference

import (
	"fmt"

	"github.com/shoppingk/jitsi-session-keeper/internal/model"
)

// DefaultDomain is the hosted widget deployment used when no override is
// configured.
const DefaultDomain = "meet.jit.si"

// defaultToolbarButtons is the toolbar the embedding page enables.
var defaultToolbarButtons = []string{
	"microphone", "camera", "closedcaptions", "desktop", "fullscreen",
	"fodeviceselection", "hangup", "profile", "chat", "recording",
	"livestreaming", "etherpad", "sharedvideo", "settings", "raisehand",
	"videoquality", "filmstrip", "invite", "feedback", "stats", "shortcuts",
	"tileview", "videobackgroundblur", "download", "help", "mute-everyone",
}

// defaultSettingsSections is the settings dialog layout.
var defaultSettingsSections = []string{"devices", "language", "moderator", "profile", "calendar"}

// Config is the option object handed to the external widget when joining a
// named room.
type Config struct {
	Domain                    string   `json:"domain"`
	RoomName                  string   `json:"roomName"`
	DisplayName               string   `json:"displayName"`
	Email                     string   `json:"email,omitempty"`
	StartWithAudioMuted       bool     `json:"startWithAudioMuted"`
	StartWithVideoMuted       bool     `json:"startWithVideoMuted"`
	EnableWelcomePage         bool     `json:"enableWelcomePage"`
	PrejoinPageEnabled        bool     `json:"prejoinPageEnabled"`
	DisableModeratorIndicator bool     `json:"disableModeratorIndicator"`
	StartScreenSharing        bool     `json:"startScreenSharing"`
	EnableEmailInStats        bool     `json:"enableEmailInStats"`
	ToolbarButtons            []string `json:"toolbarButtons"`
	SettingsSections          []string `json:"settingsSections"`
	ShowWatermark             bool     `json:"showWatermark"`
}

// NewConfig builds the widget configuration for a user joining a room.
// audioEnabled/videoEnabled reflect the user's pre-join device toggles.
func NewConfig(domain, emailDomain, roomName string, user *model.User, audioEnabled, videoEnabled bool) Config {
	if domain == "" {
		domain = DefaultDomain
	}

	cfg := Config{
		Domain:              domain,
		RoomName:            roomName,
		StartWithAudioMuted: !audioEnabled,
		StartWithVideoMuted: !videoEnabled,
		ToolbarButtons:      append([]string(nil), defaultToolbarButtons...),
		SettingsSections:    append([]string(nil), defaultSettingsSections...),
	}
	if user != nil {
		cfg.DisplayName = user.Username
		if emailDomain != "" {
			cfg.Email = fmt.Sprintf("%s@%s", user.Username, emailDomain)
		}
	}
	return cfg
}

// Event is a widget lifecycle event this service observes.
type Event string

const (
	// EventJoined fires when the conference has been joined.
	EventJoined Event = "videoConferenceJoined"
	// EventLeft fires when the conference has been left.
	EventLeft Event = "videoConferenceLeft"
)

// Widget is the contract with the embedded conferencing widget: join a named
// room with a display name, observe joined/left, issue imperative commands,
// and dispose when done.
type Widget interface {
	Join(cfg Config) error
	On(event Event, fn func())
	ToggleAudio() error
	ToggleVideo() error
	Hangup() error
	Dispose()
}
