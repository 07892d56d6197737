package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func validCreateBookRequest() CreateBookRequest {
	return CreateBookRequest{
		Title:   "Clean Code",
		ISBN:    "9780132350884",
		Genre:   "technology",
		Reason:  "Needed for a study group",
		Street:  "12 Library Lane",
		City:    "Pune",
		State:   "MH",
		ZipCode: "411001",
		Country: "India",
	}
}

func TestCreateBookRequestValidation(t *testing.T) {
	v := validator.New()

	assert.NoError(t, v.Struct(validCreateBookRequest()))

	noISBN := validCreateBookRequest()
	noISBN.ISBN = ""
	assert.Error(t, v.Struct(noISBN))

	badQuantity := validCreateBookRequest()
	badQuantity.Quantity = -1
	assert.Error(t, v.Struct(badQuantity))

	zeroQuantity := validCreateBookRequest()
	zeroQuantity.Quantity = 0 // omitted in the form; the model defaults it to 1
	assert.NoError(t, v.Struct(zeroQuantity))

	noCity := validCreateBookRequest()
	noCity.City = ""
	assert.Error(t, v.Struct(noCity))
}
