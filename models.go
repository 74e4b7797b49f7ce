// this file defines the request and response bodies of the REST API
package main

import (
	"time"

	"github.com/himanshub16/upnext/session"
)

type createSessionForm struct {
	Name string `json:"name" form:"name"`
}

type addSongForm struct {
	SongID     string `json:"songId" form:"songId"`
	Name       string `json:"name" form:"name"`
	Artist     string `json:"artist" form:"artist"`
	AlbumImage string `json:"albumImage" form:"albumImage"`
	SongLink   string `json:"songLink" form:"songLink"`
}

type voteForm struct {
	SongID string `json:"songId" form:"songId"`
}

type joinResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// sessionResponse is the polled session view. The cooldowns are the values
// the engine enforces, so clients can count down without guessing.
type sessionResponse struct {
	session.View
	MyVote          *session.VoteRecord `json:"myVote"`
	VoteCooldownMs  int64               `json:"voteCooldownMs"`
	ReaddCooldownMs int64               `json:"readdCooldownMs"`
}

type cooldownResponse struct {
	Message      string    `json:"message"`
	RetryAfterMs int64     `json:"retry_after_ms"`
	RetryAt      time.Time `json:"retry_at"`
}
