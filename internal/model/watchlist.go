package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrInvalidShowID = errors.New("showId must be a string or a number")

// ShowID identifies a show within one user's watchlist. Clients may send it
// as a JSON string or number; it is always stored and returned as a string.
type ShowID string

// UnmarshalJSON accepts both "123" and 123.
func (id *ShowID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ShowID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrInvalidShowID
	}
	*id = ShowID(n.String())
	return nil
}

// ShowEntry is one item of a watchlist.
type ShowEntry struct {
	Title  string `json:"title"`
	ShowID ShowID `json:"showId"`
	Poster string `json:"poster"`
}

// AddShowRequest is the body of PUT /users/{userId}/watchlist.
type AddShowRequest struct {
	Title  string `json:"title"`
	ShowID ShowID `json:"showId"`
	Poster string `json:"poster"`
}

// RemoveShowRequest is the body of DELETE /users/{userId}/watchlist.
type RemoveShowRequest struct {
	ShowID ShowID `json:"showId"`
}

// WatchlistResponse wraps a watchlist for GET and DELETE.
type WatchlistResponse struct {
	Watchlist []ShowEntry `json:"watchlist"`
}
