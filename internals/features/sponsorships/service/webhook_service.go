package service

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	requestModel "bookbridge_backend/internals/features/requests/model"
	"bookbridge_backend/internals/features/sponsorships/model"
	userModel "bookbridge_backend/internals/features/users/user/model"
)

// MapMidtransStatus folds the gateway's transaction_status into our
// sponsorship status. Unknown statuses return "" and are ignored.
func MapMidtransStatus(txStatus, fraudStatus string) string {
	switch txStatus {
	case "capture", "settlement", "success":
		if txStatus == "capture" && fraudStatus == "challenge" {
			return model.SponsorshipPending
		}
		return model.SponsorshipCompleted
	case "pending":
		return model.SponsorshipPending
	case "expire", "expired", "cancel", "canceled", "deny", "failure", "failed", "refund", "partial_refund":
		return model.SponsorshipRejected
	default:
		return ""
	}
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// HandleStatusWebhook applies one gateway notification. Completing a
// sponsorship also back-references the request and bumps the sponsor's
// counter, all in one transaction.
func HandleStatusWebhook(db *gorm.DB, body map[string]interface{}, rawPayload []byte) error {
	orderID := getString(body, "order_id")
	txStatus := strings.ToLower(getString(body, "transaction_status"))
	if orderID == "" || txStatus == "" {
		return fmt.Errorf("invalid payload: order_id or transaction_status missing")
	}
	log.Printf("🔔 Webhook received: order_id=%s, status=%s", orderID, txStatus)

	newStatus := MapMidtransStatus(txStatus, strings.ToLower(getString(body, "fraud_status")))
	if newStatus == "" {
		log.Printf("[WARN] Unrecognized gateway status: %s (ignored)", txStatus)
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var sp model.SponsorshipModel
		if err := tx.First(&sp, "sponsorship_order_id = ?", orderID).Error; err != nil {
			return fmt.Errorf("sponsorship %s not found: %w", orderID, err)
		}

		// Settled orders never move backwards.
		if sp.SponsorshipStatus == model.SponsorshipCompleted {
			return nil
		}

		updates := map[string]any{
			"sponsorship_status":          newStatus,
			"sponsorship_payment_details": datatypes.JSON(rawPayload),
		}
		if err := tx.Model(&sp).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update sponsorship %s: %w", orderID, err)
		}

		if newStatus != model.SponsorshipCompleted {
			return nil
		}

		if err := tx.Model(&requestModel.RequestModel{}).
			Where("request_id = ?", sp.SponsorshipRequestID).
			Update("request_sponsorship_id", sp.SponsorshipID).Error; err != nil {
			return err
		}
		return tx.Model(&userModel.UserModel{}).
			Where("user_id = ?", sp.SponsorshipSponsorID).
			UpdateColumn("user_sponsored_count", gorm.Expr("user_sponsored_count + 1")).Error
	})
}
