package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUrgencyWeight(t *testing.T) {
	assert.Equal(t, 3, UrgencyWeight(UrgencyHigh))
	assert.Equal(t, 2, UrgencyWeight(UrgencyMedium))
	assert.Equal(t, 1, UrgencyWeight(UrgencyLow))
	// unknown urgency scores like medium
	assert.Equal(t, 2, UrgencyWeight("whatever"))
}

func TestComputePriority(t *testing.T) {
	now := time.Now()

	// fresh requests: weight*10 with no decay
	assert.Equal(t, 30, ComputePriority(UrgencyHigh, now, now))
	assert.Equal(t, 20, ComputePriority(UrgencyMedium, now, now))
	assert.Equal(t, 10, ComputePriority(UrgencyLow, now, now))

	// a high request loses one point per elapsed hour
	assert.Equal(t, 25, ComputePriority(UrgencyHigh, now.Add(-5*time.Hour), now))

	// partial hours do not count
	assert.Equal(t, 30, ComputePriority(UrgencyHigh, now.Add(-59*time.Minute), now))

	// old enough requests go negative; a fresh low request outranks a
	// two-day-old high one
	oldHigh := ComputePriority(UrgencyHigh, now.Add(-48*time.Hour), now)
	freshLow := ComputePriority(UrgencyLow, now, now)
	assert.Equal(t, -18, oldHigh)
	assert.Greater(t, freshLow, oldHigh)

	// a createdAt in the future clamps to zero hours
	assert.Equal(t, 30, ComputePriority(UrgencyHigh, now.Add(time.Hour), now))
}

func TestBeforeSaveNormalizesQuantity(t *testing.T) {
	r := RequestModel{RequestUrgency: UrgencyMedium}
	assert.NoError(t, r.BeforeSave(nil))
	assert.Equal(t, 1, r.RequestQuantity)

	r = RequestModel{RequestUrgency: UrgencyMedium, RequestQuantity: 4}
	assert.NoError(t, r.BeforeSave(nil))
	assert.Equal(t, 4, r.RequestQuantity)
}

func TestRequestStatusTransitions(t *testing.T) {
	assert.True(t, CanTransitionStatus(RequestPending, RequestApproved))
	assert.True(t, CanTransitionStatus(RequestPending, RequestRejected))
	assert.True(t, CanTransitionStatus(RequestPending, RequestMatched))
	assert.True(t, CanTransitionStatus(RequestApproved, RequestMatched))
	assert.True(t, CanTransitionStatus(RequestApproved, RequestRejected))
	assert.True(t, CanTransitionStatus(RequestMatched, RequestFulfilled))

	// only matched requests fulfill
	assert.False(t, CanTransitionStatus(RequestPending, RequestFulfilled))
	assert.False(t, CanTransitionStatus(RequestApproved, RequestFulfilled))

	// terminal states stay terminal
	assert.False(t, CanTransitionStatus(RequestRejected, RequestPending))
	assert.False(t, CanTransitionStatus(RequestFulfilled, RequestPending))
	assert.False(t, CanTransitionStatus(RequestFulfilled, RequestMatched))
}
