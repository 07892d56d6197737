package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeforeCreateFillsDefaults(t *testing.T) {
	d := DonationModel{}
	assert.NoError(t, d.BeforeCreate(nil))

	assert.Equal(t, 1, d.DonationQuantity)
	assert.Equal(t, DonationTypePhysical, d.DonationType)
	assert.Equal(t, DonationPending, d.DonationStatus)
}

func TestBeforeCreateKeepsProvidedValues(t *testing.T) {
	d := DonationModel{
		DonationQuantity: 3,
		DonationType:     DonationTypeSponsor,
		DonationStatus:   DonationCompleted,
	}
	assert.NoError(t, d.BeforeCreate(nil))

	assert.Equal(t, 3, d.DonationQuantity)
	assert.Equal(t, DonationTypeSponsor, d.DonationType)
	assert.Equal(t, DonationCompleted, d.DonationStatus)
}
