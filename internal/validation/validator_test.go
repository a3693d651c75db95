// Catalogd - Product Index and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/catalogd

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/catalogd/internal/models"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

type pageRequest struct {
	Query    string `json:"q" validate:"max=20"`
	Page     int    `json:"page" validate:"min=1"`
	PageSize int    `json:"page_size" validate:"min=1,max=100"`
	Kind     string `json:"kind" validate:"omitempty,oneof=similar trending complementary"`
}

func TestValidateStruct_Valid(t *testing.T) {
	req := pageRequest{Query: "anchovy", Page: 1, PageSize: 20}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	tests := []struct {
		name      string
		input     pageRequest
		wantField string
		wantMsg   string
	}{
		{
			name:      "string too long",
			input:     pageRequest{Query: strings.Repeat("a", 21), Page: 1, PageSize: 1},
			wantField: "q",
			wantMsg:   "q must be at most 20 characters",
		},
		{
			name:      "page below minimum",
			input:     pageRequest{Page: 0, PageSize: 1},
			wantField: "page",
			wantMsg:   "page must be at least 1",
		},
		{
			name:      "oneof",
			input:     pageRequest{Page: 1, PageSize: 1, Kind: "popular"},
			wantField: "kind",
			wantMsg:   "kind must be one of: similar trending complementary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if len(err.Errors()) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(err.Errors()), err)
			}
			fe := err.Errors()[0]
			if fe.Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", fe.Field(), tt.wantField)
			}
			if fe.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", fe.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_Filters(t *testing.T) {
	tests := []struct {
		name      string
		filters   models.Filters
		wantTag   string
		wantField string
	}{
		{
			name:    "valid",
			filters: models.Filters{Categories: []string{"Seafood"}, MinPrice: models.Float64Ptr(1), MaxPrice: models.Float64Ptr(5)},
		},
		{
			name:    "equal bounds",
			filters: models.Filters{MinPrice: models.Float64Ptr(5), MaxPrice: models.Float64Ptr(5)},
		},
		{
			name:      "inverted price range",
			filters:   models.Filters{MinPrice: models.Float64Ptr(10), MaxPrice: models.Float64Ptr(5)},
			wantTag:   "price_range",
			wantField: "max_price",
		},
		{
			name:      "negative price",
			filters:   models.Filters{MinPrice: models.Float64Ptr(-1)},
			wantTag:   "gte",
			wantField: "min_price",
		},
		{
			name:      "unknown availability",
			filters:   models.Filters{Availability: []models.Availability{"BACKORDER"}},
			wantTag:   "oneof",
			wantField: "availability[0]",
		},
		{
			name:      "too many categories",
			filters:   models.Filters{Categories: make([]string, 51)},
			wantTag:   "max",
			wantField: "categories",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.filters)
			if tt.wantTag == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			fe := err.Errors()[0]
			if fe.Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", fe.Tag(), tt.wantTag)
			}
			if fe.Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", fe.Field(), tt.wantField)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&pageRequest{Page: 0, PageSize: 1})
	if single == nil {
		t.Fatal("expected validation error")
	}
	apiErr := single.ToAPIError()
	if apiErr.Code != models.ErrCodeValidation {
		t.Errorf("Code = %q, want %q", apiErr.Code, models.ErrCodeValidation)
	}
	if apiErr.Details["field"] != "page" {
		t.Errorf("Details[field] = %v, want page", apiErr.Details["field"])
	}

	multi := ValidateStruct(&pageRequest{Page: 0, PageSize: 0})
	if multi == nil {
		t.Fatal("expected validation error")
	}
	apiErr = multi.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Fatalf("Details[fields] = %#v, want 2 entries", apiErr.Details["fields"])
	}
	if !strings.Contains(apiErr.Message, "; ") {
		t.Errorf("expected combined message, got %q", apiErr.Message)
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	ve := &RequestValidationError{}
	if ve.Error() != "validation failed" {
		t.Errorf("Error() = %q", ve.Error())
	}
	if ve.ToAPIError().Message != "Validation failed" {
		t.Errorf("ToAPIError().Message = %q", ve.ToAPIError().Message)
	}
}
