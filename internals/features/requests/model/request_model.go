package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	bookModel "bookbridge_backend/internals/features/books/model"
	userModel "bookbridge_backend/internals/features/users/user/model"
)

/* ===============================
   Enums
=================================*/

const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

const (
	RequestPending   = "pending"
	RequestApproved  = "approved"
	RequestRejected  = "rejected"
	RequestMatched   = "matched"
	RequestFulfilled = "fulfilled"
)

/* ===============================
   Model
=================================*/

type RequestModel struct {
	RequestID     uuid.UUID `gorm:"column:request_id;type:uuid;default:gen_random_uuid();primaryKey" json:"request_id"`
	RequestUserID uuid.UUID `gorm:"column:request_user_id;type:uuid;not null;index" json:"request_user_id"`

	RequestTitle       string `gorm:"column:request_title;size:255;not null" json:"request_title"`
	RequestAuthor      string `gorm:"column:request_author;size:255" json:"request_author"`
	RequestISBN        string `gorm:"column:request_isbn;size:20;not null" json:"request_isbn"`
	RequestGenre       string `gorm:"column:request_genre;size:100;not null" json:"request_genre"`
	RequestDescription string `gorm:"column:request_description;type:text" json:"request_description"`
	RequestQuantity    int    `gorm:"column:request_quantity;not null;default:1" json:"request_quantity"`
	RequestReason      string `gorm:"column:request_reason;type:text;not null" json:"request_reason"`

	RequestUrgency  string `gorm:"column:request_urgency;type:varchar(10);not null;default:'medium'" json:"request_urgency"`
	RequestPriority int    `gorm:"column:request_priority;not null;default:0;index" json:"request_priority"`
	RequestStatus   string `gorm:"column:request_status;type:varchar(20);not null;default:'pending';index" json:"request_status"`

	// Delivery address, all five parts required at intake.
	RequestStreet  string `gorm:"column:request_street;size:255;not null" json:"request_street"`
	RequestCity    string `gorm:"column:request_city;size:100;not null" json:"request_city"`
	RequestState   string `gorm:"column:request_state;size:100;not null" json:"request_state"`
	RequestZipCode string `gorm:"column:request_zip_code;size:20;not null" json:"request_zip_code"`
	RequestCountry string `gorm:"column:request_country;size:100;not null" json:"request_country"`

	RequestDocuments  pq.StringArray `gorm:"column:request_documents;type:text[]" json:"request_documents"`
	RequestCoverImage string         `gorm:"column:request_cover_image;type:text" json:"request_cover_image"`

	RequestMatchedBookID *uuid.UUID `gorm:"column:request_matched_book_id;type:uuid" json:"request_matched_book_id,omitempty"`
	RequestSponsorshipID *uuid.UUID `gorm:"column:request_sponsorship_id;type:uuid" json:"request_sponsorship_id,omitempty"`

	Requester   *userModel.UserModel `gorm:"foreignKey:RequestUserID;references:UserID" json:"requester,omitempty"`
	MatchedBook *bookModel.BookModel `gorm:"foreignKey:RequestMatchedBookID;references:BookID" json:"matched_book,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (RequestModel) TableName() string {
	return "requests"
}

/* ===============================
   Priority
=================================*/

// UrgencyWeight maps urgency to its scoring weight. Unknown values score
// like medium.
func UrgencyWeight(urgency string) int {
	switch urgency {
	case UrgencyHigh:
		return 3
	case UrgencyLow:
		return 1
	default:
		return 2
	}
}

// ComputePriority: weight*10 minus whole hours of age. A fresh high
// request scores 30 and decays by one per hour, so a new low request (10)
// outranks a two-day-old high one.
func ComputePriority(urgency string, createdAt, now time.Time) int {
	hours := int(now.Sub(createdAt).Hours())
	if hours < 0 {
		hours = 0
	}
	return UrgencyWeight(urgency)*10 - hours
}

// BeforeSave keeps the stored priority in sync on every write path.
// Admin overrides go through UpdateColumn, which skips this hook.
func (r *RequestModel) BeforeSave(tx *gorm.DB) error {
	if r.RequestQuantity < 1 {
		r.RequestQuantity = 1
	}
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	r.RequestPriority = ComputePriority(r.RequestUrgency, createdAt, time.Now())
	return nil
}

/* ===============================
   Status graph
=================================*/

// CanTransitionStatus is the request lifecycle. Rejected and fulfilled
// are terminal; only a matched request can be fulfilled.
func CanTransitionStatus(from, to string) bool {
	switch from {
	case RequestPending:
		return to == RequestApproved || to == RequestRejected || to == RequestMatched
	case RequestApproved:
		return to == RequestMatched || to == RequestRejected
	case RequestMatched:
		return to == RequestFulfilled
	default:
		return false
	}
}
