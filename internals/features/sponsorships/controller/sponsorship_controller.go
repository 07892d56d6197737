package controller

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	requestModel "bookbridge_backend/internals/features/requests/model"
	"bookbridge_backend/internals/features/sponsorships/dto"
	"bookbridge_backend/internals/features/sponsorships/model"
	"bookbridge_backend/internals/features/sponsorships/service"
	userModel "bookbridge_backend/internals/features/users/user/model"
	helper "bookbridge_backend/internals/helpers"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

type SponsorshipController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewSponsorshipController(db *gorm.DB) *SponsorshipController {
	return &SponsorshipController{DB: db, Validate: validator.New()}
}

func newOrderID() string {
	return "SPN-" + uuid.NewString()
}

// loadPendingRequest fetches the request and enforces the sponsorship
// precondition: only pending requests accept money.
func (ctrl *SponsorshipController) loadPendingRequest(c *fiber.Ctx) (*requestModel.RequestModel, error) {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid request id")
	}

	var req requestModel.RequestModel
	if err := ctrl.DB.First(&req, "request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Request not found")
		}
		return nil, helper.JsonError(c, fiber.StatusInternalServerError, "Error loading request")
	}
	if req.RequestStatus != requestModel.RequestPending {
		return nil, helper.JsonError(c, fiber.StatusConflict, "Only pending requests can be sponsored")
	}
	return &req, nil
}

// 🟢 POST /api/sponsor/:requestId/pay — record a settled payment
// directly (off-gateway flows). Completes immediately.
func (ctrl *SponsorshipController) PaySponsorship(c *fiber.Ctx) error {
	sponsorID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var body dto.PaySponsorshipRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	req, err := ctrl.loadPendingRequest(c)
	if err != nil {
		return err
	}

	details := map[string]any{"payment_method": body.PaymentMethod}
	for k, v := range body.PaymentDetails {
		details[k] = v
	}
	rawDetails, _ := json.Marshal(details)

	sponsorship := model.SponsorshipModel{
		SponsorshipRequestID:      req.RequestID,
		SponsorshipSponsorID:      sponsorID,
		SponsorshipAmount:         body.Amount,
		SponsorshipStatus:         model.SponsorshipCompleted,
		SponsorshipOrderID:        newOrderID(),
		SponsorshipPaymentDetails: datatypes.JSON(rawDetails),
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&sponsorship).Error; err != nil {
			return err
		}
		if err := tx.Model(req).
			Update("request_sponsorship_id", sponsorship.SponsorshipID).Error; err != nil {
			return err
		}
		return tx.Model(&userModel.UserModel{}).
			Where("user_id = ?", sponsorID).
			UpdateColumn("user_sponsored_count", gorm.Expr("user_sponsored_count + 1")).Error
	}); err != nil {
		log.Printf("[ERROR] pay sponsorship: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error recording sponsorship")
	}

	return helper.JsonCreated(c, "Sponsorship recorded", sponsorship)
}

// 🟢 POST /api/sponsor/:requestId/snap-token — gateway checkout. The
// sponsorship stays pending until the webhook settles it.
func (ctrl *SponsorshipController) CreateSnapToken(c *fiber.Ctx) error {
	sponsorID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var body dto.SnapTokenRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	req, err := ctrl.loadPendingRequest(c)
	if err != nil {
		return err
	}

	sponsorship := model.SponsorshipModel{
		SponsorshipRequestID: req.RequestID,
		SponsorshipSponsorID: sponsorID,
		SponsorshipAmount:    body.Amount,
		SponsorshipStatus:    model.SponsorshipPending,
		SponsorshipOrderID:   newOrderID(),
	}
	if err := ctrl.DB.Create(&sponsorship).Error; err != nil {
		log.Printf("[ERROR] create sponsorship: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error creating sponsorship")
	}

	name, _ := c.Locals("user_name").(string)
	email, _ := c.Locals("user_email").(string)
	token, redirectURL, err := service.GenerateSnapToken(sponsorship, name, email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, "midtrans error: "+err.Error())
	}

	if err := ctrl.DB.Model(&sponsorship).
		Update("sponsorship_snap_token", token).Error; err != nil {
		log.Printf("[WARN] persist snap token: %v", err)
	}

	return helper.JsonCreated(c, "Snap token created", fiber.Map{
		"sponsorship_id": sponsorship.SponsorshipID,
		"order_id":       sponsorship.SponsorshipOrderID,
		"token":          token,
		"redirect_url":   redirectURL,
	})
}

// 🟢 POST /api/sponsor/notification — gateway webhook, mounted outside
// auth. Always answers 200 so the gateway stops retrying.
func (ctrl *SponsorshipController) HandleNotification(c *fiber.Ctx) error {
	var body map[string]interface{}

	ct := strings.ToLower(string(c.Request().Header.ContentType()))
	raw := c.Body()

	if strings.Contains(ct, "application/json") && len(raw) > 0 {
		if err := c.BodyParser(&body); err != nil {
			log.Println("[WARN] JSON parse failed:", err)
		}
	}
	if body == nil {
		args := c.Request().PostArgs()
		if args.Len() > 0 {
			body = map[string]interface{}{}
			args.VisitAll(func(k, v []byte) {
				body[string(k)] = string(v)
			})
		}
	}
	if len(body) == 0 {
		log.Printf("[ERROR] Webhook body empty. CT=%q", ct)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "empty body"})
	}

	if err := service.HandleStatusWebhook(ctrl.DB, body, raw); err != nil {
		log.Println("[ERROR] Webhook processing failed:", err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "ignored"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "ok"})
}

// 🟢 GET /api/sponsor/requests — pending requests shaped for the sponsor
// view
func (ctrl *SponsorshipController) GetSponsorableRequests(c *fiber.Ctx) error {
	var requests []requestModel.RequestModel
	if err := ctrl.DB.Preload("Requester").
		Where("request_status = ?", requestModel.RequestPending).
		Order("request_priority DESC, created_at ASC").
		Find(&requests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching requests")
	}

	out := make([]fiber.Map, 0, len(requests))
	for _, r := range requests {
		entry := fiber.Map{
			"request_id":  r.RequestID,
			"title":       r.RequestTitle,
			"author":      r.RequestAuthor,
			"isbn":        r.RequestISBN,
			"genre":       r.RequestGenre,
			"description": r.RequestDescription,
			"quantity":    r.RequestQuantity,
			"reason":      r.RequestReason,
			"urgency":     r.RequestUrgency,
			"priority":    r.RequestPriority,
			"city":        r.RequestCity,
			"country":     r.RequestCountry,
			"created_at":  r.CreatedAt,
		}
		if r.Requester != nil {
			entry["requester_name"] = r.Requester.UserName
		}
		out = append(out, entry)
	}
	return helper.JsonList(c, "ok", out, nil)
}

// 🟢 GET /api/sponsor/requests/:id — full request detail for the sponsor
// view, requester populated
func (ctrl *SponsorshipController) GetSponsorRequestByID(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request id")
	}

	var req requestModel.RequestModel
	if err := ctrl.DB.Preload("Requester").
		First(&req, "request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching request")
	}
	return helper.JsonOK(c, "ok", req)
}

// 🟢 PATCH /api/sponsor/requests/:id/status — approve or reject a book
// request before funding it. Same lifecycle graph as the request side.
func (ctrl *SponsorshipController) UpdateSponsorRequestStatus(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request id")
	}

	var body dto.UpdateSponsorRequestStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	var req requestModel.RequestModel
	if err := ctrl.DB.First(&req, "request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating request")
	}
	if !requestModel.CanTransitionStatus(req.RequestStatus, body.Status) {
		return helper.JsonError(c, fiber.StatusConflict,
			"Cannot move request from '"+req.RequestStatus+"' to '"+body.Status+"'")
	}

	req.RequestStatus = body.Status
	if err := ctrl.DB.Save(&req).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating request")
	}
	return helper.JsonUpdated(c, "Request "+body.Status, req)
}

// 🟢 GET /api/sponsor/history — caller's sponsorships, newest first
func (ctrl *SponsorshipController) GetHistory(c *fiber.Ctx) error {
	sponsorID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var sponsorships []model.SponsorshipModel
	if err := ctrl.DB.Preload("Request").
		Where("sponsorship_sponsor_id = ?", sponsorID).
		Order("created_at DESC").
		Find(&sponsorships).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching sponsorships")
	}
	return helper.JsonList(c, "ok", sponsorships, nil)
}

// 🟢 GET /api/sponsor/:id — visible to the sponsor and the requester only
func (ctrl *SponsorshipController) GetSponsorshipByID(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}
	sponsorshipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid sponsorship id")
	}

	var sp model.SponsorshipModel
	if err := ctrl.DB.Preload("Sponsor").Preload("Request").
		First(&sp, "sponsorship_id = ?", sponsorshipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sponsorship not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching sponsorship")
	}

	isSponsor := sp.SponsorshipSponsorID == userID
	isRequester := sp.Request != nil && sp.Request.RequestUserID == userID
	if !isSponsor && !isRequester && !authMiddleware.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Not your sponsorship")
	}
	return helper.JsonOK(c, "ok", sp)
}

// setModerationStatus is shared by approve/reject: admin-only, and only
// a completed sponsorship can be moderated.
func (ctrl *SponsorshipController) setModerationStatus(c *fiber.Ctx, status, message string) error {
	if !authMiddleware.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Admin access required")
	}
	sponsorshipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid sponsorship id")
	}

	res := ctrl.DB.Model(&model.SponsorshipModel{}).
		Where("sponsorship_id = ? AND sponsorship_status = ?", sponsorshipID, model.SponsorshipCompleted).
		Update("sponsorship_status", status)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating sponsorship")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "No completed sponsorship with that id")
	}
	return helper.JsonUpdated(c, message, fiber.Map{"sponsorship_id": sponsorshipID, "status": status})
}

// 🟢 PATCH /api/sponsor/:id/approve
func (ctrl *SponsorshipController) ApproveSponsorship(c *fiber.Ctx) error {
	return ctrl.setModerationStatus(c, model.SponsorshipApproved, "Sponsorship approved")
}

// 🟢 PATCH /api/sponsor/:id/reject
func (ctrl *SponsorshipController) RejectSponsorship(c *fiber.Ctx) error {
	return ctrl.setModerationStatus(c, model.SponsorshipRejected, "Sponsorship rejected")
}
