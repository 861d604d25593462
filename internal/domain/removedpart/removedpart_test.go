package removedpart

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/frigoservis/servis/internal/domain/removedpart/valueobjects"
)

func TestNewRemovedPart(t *testing.T) {
	part, err := NewRemovedPart(NewRemovedPartParams{
		ServiceID:     42,
		PartName:      " Elektronska ploca ",
		RemovalReason: "servis u radionici",
	})
	require.NoError(t, err)
	assert.Equal(t, "Elektronska ploca", part.PartName())
	assert.Equal(t, vo.LocationWorkshop, part.CurrentLocation())
	assert.Equal(t, vo.PartStatusRemoved, part.PartStatus())
	assert.True(t, part.IsOut())
}

func TestNewRemovedPart_Validation(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour)
	tests := []struct {
		name   string
		params NewRemovedPartParams
	}{
		{"missing service", NewRemovedPartParams{PartName: "x", RemovalReason: "y"}},
		{"missing part name", NewRemovedPartParams{ServiceID: 1, PartName: " ", RemovalReason: "y"}},
		{"missing reason", NewRemovedPartParams{ServiceID: 1, PartName: "x"}},
		{"unknown location", NewRemovedPartParams{ServiceID: 1, PartName: "x", RemovalReason: "y", CurrentLocation: "garage"}},
		{"already returned", NewRemovedPartParams{ServiceID: 1, PartName: "x", RemovalReason: "y", CurrentLocation: "returned"}},
		{"expected return in the past", NewRemovedPartParams{ServiceID: 1, PartName: "x", RemovalReason: "y", ExpectedReturnDate: &yesterday}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRemovedPart(tt.params)
			assert.Error(t, err)
		})
	}
}

func TestMarkReturned(t *testing.T) {
	part, err := NewRemovedPart(NewRemovedPartParams{ServiceID: 1, PartName: "motor", RemovalReason: "premotavanje", CurrentLocation: "external_repair"})
	require.NoError(t, err)

	require.NoError(t, part.MarkReturned(time.Now().Add(time.Hour), "vracen i testiran"))
	assert.False(t, part.IsOut())
	assert.Equal(t, vo.LocationReturned, part.CurrentLocation())
	assert.Equal(t, vo.PartStatusReturned, part.PartStatus())
	assert.Equal(t, "vracen i testiran", part.TechnicianNotes())

	err = part.MarkReturned(time.Now().Add(2*time.Hour), "")
	assert.True(t, errors.Is(err, ErrAlreadyReturned))
}
