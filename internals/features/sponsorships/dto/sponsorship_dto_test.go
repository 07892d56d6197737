package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestPaySponsorshipAmountValidation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(PaySponsorshipRequest{Amount: 1}))
	assert.NoError(t, v.Struct(PaySponsorshipRequest{Amount: 250.50}))

	// sub-unit and zero amounts are refused
	assert.Error(t, v.Struct(PaySponsorshipRequest{Amount: 0.5}))
	assert.Error(t, v.Struct(PaySponsorshipRequest{Amount: 0}))

	assert.Error(t, v.Struct(SnapTokenRequest{Amount: 0.5}))
	assert.NoError(t, v.Struct(SnapTokenRequest{Amount: 1}))
}

func TestUpdateSponsorRequestStatusValidation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(UpdateSponsorRequestStatusRequest{Status: "approved"}))
	assert.NoError(t, v.Struct(UpdateSponsorRequestStatusRequest{Status: "rejected"}))

	// only the two moderation verbs pass; matching has its own endpoint
	assert.Error(t, v.Struct(UpdateSponsorRequestStatusRequest{Status: "matched"}))
	assert.Error(t, v.Struct(UpdateSponsorRequestStatusRequest{Status: "pending"}))
	assert.Error(t, v.Struct(UpdateSponsorRequestStatusRequest{}))
}
