package api

import "github.com/samcharles93/gbsav/pkg/sav"

type SaveResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name,omitempty"`
	CreatedAt int64       `json:"created_at"`
	Summary   sav.Summary `json:"summary"`
}

type CreateSaveError struct {
	Error   ErrorBody   `json:"error"`
	Summary sav.Summary `json:"summary"`
}

type DeletedResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type SongList struct {
	Object string         `json:"object"`
	Data   []sav.SongInfo `json:"data"`
}

type ImportResponse struct {
	SongID  int         `json:"song_id"`
	Summary sav.Summary `json:"summary"`
}

type SongDeletedResponse struct {
	SongID  int  `json:"song_id"`
	Deleted bool `json:"deleted"`
}
