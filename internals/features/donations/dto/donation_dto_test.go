package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func validCreateDonation() CreateDonationRequest {
	return CreateDonationRequest{
		Title:        "The Pragmatic Programmer",
		Author:       "Hunt & Thomas",
		Genre:        "technology",
		Quantity:     1,
		Condition:    "good",
		Description:  "Barely used, a few pencil notes",
		DonationType: "physical",
		ContactEmail: "donor@example.com",
	}
}

func TestCreateDonationValidation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(validCreateDonation()))

	noEmail := validCreateDonation()
	noEmail.ContactEmail = ""
	assert.Error(t, v.Struct(noEmail))

	badEmail := validCreateDonation()
	badEmail.ContactEmail = "not-an-address"
	assert.Error(t, v.Struct(badEmail))

	noDescription := validCreateDonation()
	noDescription.Description = ""
	assert.Error(t, v.Struct(noDescription))

	noCondition := validCreateDonation()
	noCondition.Condition = ""
	assert.Error(t, v.Struct(noCondition))

	badType := validCreateDonation()
	badType.DonationType = "virtual"
	assert.Error(t, v.Struct(badType))

	zeroQuantity := validCreateDonation()
	zeroQuantity.Quantity = 0 // omitted in the form; the model defaults it to 1
	assert.NoError(t, v.Struct(zeroQuantity))
}

func TestUpdateDonationStatusValidation(t *testing.T) {
	v := validator.New()

	for _, status := range []string{"pending", "approved", "rejected", "completed"} {
		assert.NoError(t, v.Struct(UpdateDonationStatusRequest{Status: status}), status)
	}
	assert.Error(t, v.Struct(UpdateDonationStatusRequest{Status: "received"}))
	assert.Error(t, v.Struct(UpdateDonationStatusRequest{}))
}
