package common

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/shared/biztime"
	"github.com/frigoservis/servis/internal/shared/errors"
)

// ParseTime accepts a business-day date (YYYY-MM-DD) or an RFC 3339 timestamp.
func ParseTime(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	if t, err := biztime.ParseDate(*raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, errors.NewFieldValidationError(field, "must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
	}
	t = t.UTC()
	return &t, nil
}

// OptionalUintQuery reads a positive integer query parameter. Absent means nil.
func OptionalUintQuery(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return nil, errors.NewFieldValidationError(key, "must be a positive integer")
	}
	id := uint(v)
	return &id, nil
}
