package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookbridge_backend/internals/features/sponsorships/model"
)

func TestMapMidtransStatus(t *testing.T) {
	assert.Equal(t, model.SponsorshipCompleted, MapMidtransStatus("settlement", ""))
	assert.Equal(t, model.SponsorshipCompleted, MapMidtransStatus("capture", "accept"))
	assert.Equal(t, model.SponsorshipCompleted, MapMidtransStatus("success", ""))

	// capture under fraud challenge stays pending
	assert.Equal(t, model.SponsorshipPending, MapMidtransStatus("capture", "challenge"))
	assert.Equal(t, model.SponsorshipPending, MapMidtransStatus("pending", ""))

	assert.Equal(t, model.SponsorshipRejected, MapMidtransStatus("expire", ""))
	assert.Equal(t, model.SponsorshipRejected, MapMidtransStatus("deny", ""))
	assert.Equal(t, model.SponsorshipRejected, MapMidtransStatus("cancel", ""))
	assert.Equal(t, model.SponsorshipRejected, MapMidtransStatus("refund", ""))

	// unknown statuses are ignored upstream
	assert.Equal(t, "", MapMidtransStatus("authorize", ""))
}
