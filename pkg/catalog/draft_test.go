package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDraftModeOf(t *testing.T) {
	assert.Equal(t, DraftMode{}, DraftModeOf(SentinelID))
	assert.Equal(t, DraftMode{Edit: true, ID: 7}, DraftModeOf(7))
}

func TestEmptyDrafts(t *testing.T) {
	assert.Equal(t, Segment{}, EmptySegment())
	assert.Equal(t, Brand{}, EmptyBrand())

	v := EmptyVehicle()
	assert.Equal(t, SentinelID, v.ID)
	assert.Equal(t, 2020, v.ReleaseYear)
	assert.Zero(t, v.Price)
	assert.Zero(t, v.Segment)
	assert.Zero(t, v.Brand)
}
