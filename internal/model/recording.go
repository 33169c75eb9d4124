package model

import "time"

// Recording is one bookkeeping entry of the recording ledger. The lifecycle
// is: created while the recording runs (IsProcessing false, no EndTime), then
// stopped (EndTime/Duration stamped, IsProcessing true), then completed after
// the processing delay (IsProcessing false, FileURL set). No real media is
// captured; FileURL is synthesized.
type Recording struct {
	ID           string     `json:"id"`
	RoomID       string     `json:"roomId"`
	RoomName     string     `json:"roomName"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Duration     int64      `json:"duration,omitempty"` // milliseconds
	FileURL      string     `json:"fileUrl,omitempty"`
	IsProcessing bool       `json:"isProcessing"`
	CreatedBy    string     `json:"createdBy"`
}
