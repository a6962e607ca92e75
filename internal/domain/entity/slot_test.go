package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotTemplate(t *testing.T) {
	slots := SlotTemplate()
	require.Len(t, slots, 8)

	assert.Equal(t, "1", slots[0].ID)
	assert.Equal(t, "08:00", slots[0].StartTime)
	assert.Equal(t, "8", slots[7].ID)
	assert.Equal(t, "18:00", slots[7].EndTime)

	// Midday gap between slot 4 and slot 5
	assert.Equal(t, "12:00", slots[3].EndTime)
	assert.Equal(t, "14:00", slots[4].StartTime)
}

func TestSlotTemplate_ReturnsCopy(t *testing.T) {
	slots := SlotTemplate()
	slots[0].StartTime = "00:00"

	fresh := SlotTemplate()
	assert.Equal(t, "08:00", fresh[0].StartTime)
}

func TestSlotByID(t *testing.T) {
	slot := SlotByID("5")
	require.NotNil(t, slot)
	assert.Equal(t, "14:00", slot.StartTime)
	assert.Equal(t, "15:00", slot.EndTime)

	assert.Nil(t, SlotByID("9"))
	assert.Nil(t, SlotByID(""))
}

func TestSlotLabel(t *testing.T) {
	slot := SlotByID("2")
	require.NotNil(t, slot)
	assert.Equal(t, "09:00 - 10:00", slot.Label())
}
