package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestFood_IDPrefersMongoID(t *testing.T) {
	var f Food
	if err := json.Unmarshal([]byte(`{"_id":"m1","id":"p1","name":"Pizza"}`), &f); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if f.ID() != "m1" {
		t.Fatalf("ID = %q, want m1", f.ID())
	}
	f.MongoID = ""
	if f.ID() != "p1" {
		t.Fatalf("ID = %q, want p1", f.ID())
	}
}

func TestRestaurantRef_AcceptsStringObjectAndNull(t *testing.T) {
	tests := []struct {
		raw  string
		want RestaurantRef
	}{
		{raw: `"Luigi's"`, want: RestaurantRef{Name: "Luigi's"}},
		{raw: `{"_id":"r2","name":"Luigi's"}`, want: RestaurantRef{ID: "r2", Name: "Luigi's"}},
		{raw: `null`, want: RestaurantRef{}},
	}
	for _, tt := range tests {
		var ref RestaurantRef
		if err := json.Unmarshal([]byte(tt.raw), &ref); err != nil {
			t.Fatalf("Unmarshal(%s) returned error: %v", tt.raw, err)
		}
		if ref != tt.want {
			t.Fatalf("Unmarshal(%s) = %#v, want %#v", tt.raw, ref, tt.want)
		}
	}
}

func TestAPIError_MessageOf(t *testing.T) {
	wrapped := fmt.Errorf("load menu: %w", &APIError{Status: 500, Message: "db down", Path: "/api/foods"})
	if got := MessageOf(wrapped, "Failed to load menu"); got != "db down" {
		t.Fatalf("MessageOf = %q, want server message", got)
	}
	if got := MessageOf(&APIError{Status: 500}, "Failed to load menu"); got != "Failed to load menu" {
		t.Fatalf("MessageOf = %q, want fallback", got)
	}
	if got := MessageOf(errors.New("dial tcp: refused"), "Failed to load menu"); got != "Failed to load menu" {
		t.Fatalf("MessageOf = %q, want fallback", got)
	}
}

func TestAPIError_ErrorString(t *testing.T) {
	err := &APIError{Status: 401, Message: InvalidTokenMessage, Path: "/api/users/profile"}
	want := "api /api/users/profile returned status 401: Invalid Token"
	if err.Error() != want {
		t.Fatalf("Error = %q, want %q", err.Error(), want)
	}
	if !err.InvalidSession() {
		t.Fatalf("InvalidSession = false, want true")
	}
}
