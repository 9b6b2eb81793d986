package model

import (
	"encoding/json"
	"testing"
)

func TestShowIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    ShowID
		wantErr bool
	}{
		{name: "string", body: `{"showId":"s1"}`, want: "s1"},
		{name: "integer", body: `{"showId":1399}`, want: "1399"},
		{name: "null", body: `{"showId":null}`, want: ""},
		{name: "missing", body: `{}`, want: ""},
		{name: "object", body: `{"showId":{"a":1}}`, wantErr: true},
		{name: "bool", body: `{"showId":true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req RemoveShowRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got showId %q", req.ShowID)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if req.ShowID != tt.want {
				t.Errorf("ShowID = %q, want %q", req.ShowID, tt.want)
			}
		})
	}
}

func TestShowEntryMarshalsShowIDAsString(t *testing.T) {
	out, err := json.Marshal(ShowEntry{Title: "Foo", ShowID: "42", Poster: "p"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"title":"Foo","showId":"42","poster":"p"}`
	if string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}
}
