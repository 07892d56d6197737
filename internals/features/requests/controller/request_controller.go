package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	bookModel "bookbridge_backend/internals/features/books/model"
	"bookbridge_backend/internals/features/requests/dto"
	"bookbridge_backend/internals/features/requests/model"
	"bookbridge_backend/internals/features/requests/service"
	helper "bookbridge_backend/internals/helpers"
	authMiddleware "bookbridge_backend/internals/middlewares/auth"
)

const maxRequestDocuments = 3

type RequestController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewRequestController(db *gorm.DB) *RequestController {
	return &RequestController{DB: db, Validate: validator.New()}
}

// 🟢 POST /api/requests — request intake, then a best-effort auto-match
// against already-donated copies.
func (ctrl *RequestController) CreateRequest(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var body dto.CreateBookRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	urgency := body.Urgency
	if urgency == "" {
		urgency = model.UrgencyMedium
	}

	var documents pq.StringArray
	coverImage := ""
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["documents"]
		if len(files) > maxRequestDocuments {
			return helper.JsonValidationError(c, map[string][]string{
				"documents": {"at most 3 documents are allowed"},
			})
		}
		for _, fh := range files {
			path, err := helper.SaveUploadedFile("requests", fh)
			if err != nil {
				log.Printf("[ERROR] save request document: %v", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store document")
			}
			documents = append(documents, path)
		}
		if covers := form.File["coverImage"]; len(covers) > 0 {
			coverImage, err = helper.SaveImageAsWebp("requests", covers[0])
			if err != nil {
				log.Printf("[ERROR] save request cover: %v", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store image")
			}
		}
	}

	req := model.RequestModel{
		RequestUserID:      userID,
		RequestTitle:       body.Title,
		RequestAuthor:      body.Author,
		RequestISBN:        body.ISBN,
		RequestGenre:       body.Genre,
		RequestDescription: body.Description,
		RequestQuantity:    body.Quantity,
		RequestReason:      body.Reason,

		RequestUrgency: urgency,
		RequestStatus:  model.RequestPending,

		RequestStreet:  body.Street,
		RequestCity:    body.City,
		RequestState:   body.State,
		RequestZipCode: body.ZipCode,
		RequestCountry: body.Country,

		RequestDocuments:  documents,
		RequestCoverImage: coverImage,
	}
	if err := ctrl.DB.Create(&req).Error; err != nil {
		log.Printf("[ERROR] create request: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error creating request")
	}

	matched, err := service.AttemptAutoMatch(ctrl.DB, &req)
	if err != nil {
		// The request itself stands; the pairing can happen later.
		log.Printf("[WARN] auto-match: %v", err)
	}

	return helper.JsonCreated(c, "Request created", fiber.Map{
		"request":      req,
		"auto_matched": matched,
	})
}

// 🟢 GET /api/requests — queue view: highest priority first, ties broken
// by age (oldest first)
func (ctrl *RequestController) GetRequests(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.RequestModel{}).Preload("Requester").Preload("MatchedBook")

	if status := c.Query("status"); status != "" {
		q = q.Where("request_status = ?", status)
	}
	if urgency := c.Query("urgency"); urgency != "" {
		q = q.Where("request_urgency = ?", urgency)
	}

	paging := helper.ResolvePaging(c, 20, 100)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching requests")
	}

	var requests []model.RequestModel
	if err := q.Order("request_priority DESC, created_at ASC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&requests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching requests")
	}
	return helper.JsonList(c, "ok", requests, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/requests/my — caller's requests, newest first
func (ctrl *RequestController) GetMyRequests(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var requests []model.RequestModel
	if err := ctrl.DB.Preload("MatchedBook").
		Where("request_user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching requests")
	}
	return helper.JsonList(c, "ok", requests, nil)
}

// 🟢 GET /api/requests/dashboard — the caller's own activity (their
// books, their pending requests, their recent additions); only the donor
// count looks across the whole community.
func (ctrl *RequestController) GetDashboard(c *fiber.Ctx) error {
	userID, err := authMiddleware.UserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Please authenticate.")
	}

	var donatedBooks, soldBooks, pendingRequests, distinctDonors int64

	if err := ctrl.DB.Model(&bookModel.BookModel{}).
		Where("book_type = ? AND book_owner_id = ?", bookModel.TypeDonated, userID).
		Count(&donatedBooks).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error building dashboard")
	}
	if err := ctrl.DB.Model(&bookModel.BookModel{}).
		Where("book_type IN ? AND book_owner_id = ?", []string{bookModel.TypeSold, bookModel.TypeNew}, userID).
		Count(&soldBooks).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error building dashboard")
	}
	if err := ctrl.DB.Model(&model.RequestModel{}).
		Where("request_status = ? AND request_user_id = ?", model.RequestPending, userID).
		Count(&pendingRequests).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error building dashboard")
	}
	if err := ctrl.DB.Model(&bookModel.BookModel{}).
		Where("book_type = ?", bookModel.TypeDonated).
		Distinct("book_owner_id").Count(&distinctDonors).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error building dashboard")
	}

	var recentBooks []bookModel.BookModel
	if err := ctrl.DB.Preload("Owner").
		Where("book_owner_id = ?", userID).
		Order("created_at DESC").Limit(3).
		Find(&recentBooks).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error building dashboard")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"donated_books":    donatedBooks,
		"sold_books":       soldBooks,
		"pending_requests": pendingRequests,
		"total_donors":     distinctDonors,
		"recent_activity":  recentBooks,
	})
}

// 🟢 GET /api/requests/:id
func (ctrl *RequestController) GetRequestByID(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request id")
	}

	var req model.RequestModel
	if err := ctrl.DB.Preload("Requester").Preload("MatchedBook").
		First(&req, "request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fetching request")
	}
	return helper.JsonOK(c, "ok", req)
}

// 🟢 POST /api/requests/:id/match — pair a request with a chosen donated
// book. The book is re-verified inside the transaction; a copy that
// vanished or got reserved reads as not found.
func (ctrl *RequestController) MatchRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request id")
	}

	var body dto.MatchRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}
	bookID, _ := uuid.Parse(body.BookID)

	var req model.RequestModel
	if err := ctrl.DB.First(&req, "request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error matching request")
	}
	if !model.CanTransitionStatus(req.RequestStatus, model.RequestMatched) {
		return helper.JsonError(c, fiber.StatusConflict,
			"Request in status '"+req.RequestStatus+"' cannot be matched")
	}

	if err := service.MatchRequestToBook(ctrl.DB, &req, bookID); err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotMatchable):
			return helper.JsonError(c, fiber.StatusNotFound, "No available donated copy with that id")
		case errors.Is(err, service.ErrAlreadyReserved):
			return helper.JsonError(c, fiber.StatusConflict, "Book was just reserved for another request")
		default:
			log.Printf("[ERROR] match request: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Error matching request")
		}
	}

	return helper.JsonUpdated(c, "Request matched", req)
}

// 🟢 POST /api/requests/:id/fulfill — only a matched request can close
func (ctrl *RequestController) FulfillRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request id")
	}

	var req model.RequestModel
	if err := ctrl.DB.First(&req, "request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fulfilling request")
	}
	if req.RequestStatus != model.RequestMatched {
		return helper.JsonError(c, fiber.StatusConflict, "Only a matched request can be fulfilled")
	}

	if err := service.FulfillMatch(ctrl.DB, &req); err != nil {
		if errors.Is(err, service.ErrBookNotReserved) {
			return helper.JsonError(c, fiber.StatusConflict, "Matched book is no longer reserved")
		}
		log.Printf("[ERROR] fulfill request: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error fulfilling request")
	}
	return helper.JsonUpdated(c, "Request fulfilled", req)
}

// 🟢 PATCH /api/requests/:id/status — moderation moves. Matching has its
// own endpoint because it must also reserve a book.
func (ctrl *RequestController) UpdateRequestStatus(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request id")
	}

	var body dto.UpdateRequestStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}
	if body.Status == model.RequestMatched {
		return helper.JsonError(c, fiber.StatusBadRequest, "Use the match endpoint to match a request")
	}

	var req model.RequestModel
	if err := ctrl.DB.First(&req, "request_id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Request not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating request")
	}
	if req.RequestStatus != body.Status && !model.CanTransitionStatus(req.RequestStatus, body.Status) {
		return helper.JsonError(c, fiber.StatusConflict,
			"Cannot move request from '"+req.RequestStatus+"' to '"+body.Status+"'")
	}

	req.RequestStatus = body.Status
	if err := ctrl.DB.Save(&req).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating request")
	}
	return helper.JsonUpdated(c, "Request status updated", req)
}

// 🟢 PATCH /api/requests/:id/priority — admin override. UpdateColumn on
// purpose: the recompute hook would immediately undo a Save.
func (ctrl *RequestController) UpdateRequestPriority(c *fiber.Ctx) error {
	if !authMiddleware.IsAdmin(c) {
		return helper.JsonError(c, fiber.StatusForbidden, "Admin access required")
	}
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request id")
	}

	var body dto.UpdateRequestPriorityRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(body); err != nil {
		return helper.ValidationError(c, err)
	}

	res := ctrl.DB.Model(&model.RequestModel{}).
		Where("request_id = ?", requestID).
		UpdateColumn("request_priority", body.Priority)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Error updating priority")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Request not found")
	}
	return helper.JsonUpdated(c, "Priority updated", fiber.Map{
		"request_id": requestID,
		"priority":   body.Priority,
	})
}
