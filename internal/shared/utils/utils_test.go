package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigoservis/servis/internal/shared/constants"
	"github.com/frigoservis/servis/internal/shared/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(rawQuery string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valid values", 2, 20, 2, 20},
		{"page below one", 0, 20, constants.DefaultPage, 20},
		{"page size below one", 1, -1, 1, constants.DefaultPageSize},
		{"page size capped", 1, constants.MaxPageSize + 1, 1, constants.MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePagination(tt.page, tt.pageSize)
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantPageSize, got.PageSize)
		})
	}
}

func TestParsePagination_IgnoresMalformedValues(t *testing.T) {
	got := ParsePagination(newContext("page=abc&page_size=500"))
	assert.Equal(t, constants.DefaultPage, got.Page)
	assert.Equal(t, constants.MaxPageSize, got.PageSize)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 3, TotalPages(41, 20))
}

func TestParseIDParam(t *testing.T) {
	c := newContext("")
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	id, err := ParseIDParam(c, "id", "service")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	c.Params = gin.Params{{Key: "id", Value: "-1"}}
	_, err = ParseIDParam(c, "id", "service")
	assert.True(t, errors.IsValidationError(err))
}

func TestValidatePhone(t *testing.T) {
	assert.NoError(t, ValidatePhone("phone", ""))
	assert.NoError(t, ValidatePhone("phone", "+381 64 123-4567"))

	err := ValidatePhone("phone", "call me")
	require.Error(t, err)
	assert.Equal(t, "phone", errors.GetAppError(err).Field)
}

func TestValidateStruct_ReportsFirstField(t *testing.T) {
	type req struct {
		PartName string `json:"part_name" validate:"required"`
	}
	err := ValidateStruct(req{})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "part_name", appErr.Field)
	assert.Contains(t, appErr.Details, "part_name is required")
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "***567", MaskPhone("+381641234567"))
	assert.Equal(t, "***", MaskPhone("12"))
}

func TestBindJSON(t *testing.T) {
	type body struct {
		PartName string `json:"part_name" validate:"required"`
		Quantity int    `json:"quantity" validate:"omitempty,gte=1"`
	}

	tests := []struct {
		name  string
		raw   string
		field string
		ok    bool
	}{
		{"valid", `{"part_name":"Pumpa","quantity":2}`, "", true},
		{"missing field", `{"quantity":2}`, "part_name", false},
		{"wrong type", `{"part_name":"Pumpa","quantity":"two"}`, "quantity", false},
		{"broken json", `{"part_name":`, "", false},
		{"empty body", ``, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.raw))
			c.Request.Header.Set("Content-Type", "application/json")

			var b body
			err := BindJSON(c, &b)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, tt.field, appErr.Field)
		})
	}
}
