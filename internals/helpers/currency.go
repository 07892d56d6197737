package helper

import "math"

// USDToINRRate is a flat display-only rate; it is not authoritative and is
// never used for settlement.
const USDToINRRate = 83.0

// ConvertToINR converts a USD amount to whole rupees for display.
func ConvertToINR(usdAmount float64) int {
	return int(math.Round(usdAmount * USDToINRRate))
}
