package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	bookModel "bookbridge_backend/internals/features/books/model"
	"bookbridge_backend/internals/features/requests/model"
)

var (
	// ErrBookNotMatchable: the book is gone, not donated, or no longer
	// available.
	ErrBookNotMatchable = errors.New("book cannot be matched")
	// ErrAlreadyReserved: another request reserved the book first.
	ErrAlreadyReserved = errors.New("book already reserved")
	// ErrBookNotReserved: the matched book is no longer in reserved, so
	// the pair cannot be closed out.
	ErrBookNotReserved = errors.New("matched book is not reserved")
)

// FindMatchCandidate looks for the oldest available donated book in the
// requested genre whose title contains the requested title. Returns
// gorm.ErrRecordNotFound when nothing qualifies.
func FindMatchCandidate(tx *gorm.DB, req *model.RequestModel) (*bookModel.BookModel, error) {
	var book bookModel.BookModel
	err := tx.
		Where("book_status = ?", bookModel.StatusAvailable).
		Where("book_type = ?", bookModel.TypeDonated).
		Where("book_genre = ?", req.RequestGenre).
		Where("book_title ILIKE ?", "%"+req.RequestTitle+"%").
		Order("created_at ASC").
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// reserveBook flips the book to reserved only if it is still an available
// donated copy. The WHERE clause is the concurrency guard: two racing
// matches cannot both see RowsAffected == 1.
func reserveBook(tx *gorm.DB, bookID, requestID uuid.UUID) error {
	res := tx.Model(&bookModel.BookModel{}).
		Where("book_id = ? AND book_status = ? AND book_type = ?",
			bookID, bookModel.StatusAvailable, bookModel.TypeDonated).
		Updates(map[string]any{
			"book_status":             bookModel.StatusReserved,
			"book_is_available":       false,
			"book_matched_request_id": requestID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyReserved
	}
	return nil
}

// MatchRequestToBook atomically reserves the book and marks the request
// matched. Either both rows move or neither does.
func MatchRequestToBook(db *gorm.DB, req *model.RequestModel, bookID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var book bookModel.BookModel
		if err := tx.First(&book, "book_id = ?", bookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotMatchable
			}
			return err
		}
		if book.BookType != bookModel.TypeDonated || book.BookStatus != bookModel.StatusAvailable {
			return ErrBookNotMatchable
		}

		if err := reserveBook(tx, book.BookID, req.RequestID); err != nil {
			return err
		}

		req.RequestStatus = model.RequestMatched
		req.RequestMatchedBookID = &book.BookID
		return tx.Save(req).Error
	})
}

// AttemptAutoMatch tries to pair a fresh request with an existing donated
// book. Best effort: no candidate is not an error, and a lost reservation
// race simply leaves the request pending.
func AttemptAutoMatch(db *gorm.DB, req *model.RequestModel) (bool, error) {
	candidate, err := FindMatchCandidate(db, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err = MatchRequestToBook(db, req, candidate.BookID)
	if errors.Is(err, ErrAlreadyReserved) || errors.Is(err, ErrBookNotMatchable) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FulfillMatch closes out a matched pair: book reserved→fulfilled,
// request matched→fulfilled.
func FulfillMatch(db *gorm.DB, req *model.RequestModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if req.RequestMatchedBookID != nil {
			res := tx.Model(&bookModel.BookModel{}).
				Where("book_id = ? AND book_status = ?", *req.RequestMatchedBookID, bookModel.StatusReserved).
				Update("book_status", bookModel.StatusFulfilled)
			if res.Error != nil {
				return res.Error
			}
			// Zero rows means the book slipped out of reserved; rolling
			// back keeps the request from fulfilling against nothing.
			if res.RowsAffected == 0 {
				return ErrBookNotReserved
			}
		}
		req.RequestStatus = model.RequestFulfilled
		return tx.Save(req).Error
	})
}
