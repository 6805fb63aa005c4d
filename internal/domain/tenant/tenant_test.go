package tenant

import (
	"errors"
	"testing"

	"github.com/propmate/propmate/internal/domain"
)

func TestCreateRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateRequest
		wantErr bool
	}{
		{"valid", CreateRequest{Name: "Sam Ekwueme", Email: "sam@example.com"}, false},
		{"name only", CreateRequest{Name: "Sam Ekwueme"}, false},
		{"missing name", CreateRequest{Email: "sam@example.com"}, true},
		{"bad email", CreateRequest{Name: "Sam", Email: "not-an-email"}, true},
		{"phone too long", CreateRequest{Name: "Sam", Phone: "+441234567890123456789012345678901234"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr && !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUpdateRequestValidate(t *testing.T) {
	empty := ""
	good := "Sam Ekwueme"
	badEmail := "nope"

	if err := (UpdateRequest{Name: &empty}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("empty name: %v", err)
	}
	if err := (UpdateRequest{Email: &badEmail}).Validate(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad email: %v", err)
	}
	if err := (UpdateRequest{Name: &good}).Validate(); err != nil {
		t.Fatalf("valid update: %v", err)
	}
}
