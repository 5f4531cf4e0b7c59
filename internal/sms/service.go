package sms

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"billfold/internal/core"
	"billfold/internal/store"
)

// Service records inbound SMS messages and creates bills from the ones that
// contain bill data.
type Service struct {
	store     *store.Store
	extractor Extractor // nil = store messages without extraction
}

func NewService(st *store.Store, extractor Extractor) *Service {
	return &Service{
		store:     st,
		extractor: extractor,
	}
}

// ImportResult reports what happened to one imported message.
type ImportResult struct {
	Message core.SMSMessage
	Bill    *core.Bill // nil when no bill was created
}

// ImportSMS stores the raw message, runs extraction, and creates a bill from
// the result. Extraction failure is not an import failure: the message is
// kept unprocessed and can be retried, mirroring how the store degrades
// rather than crashes on incomplete data.
func (s *Service) ImportSMS(ctx context.Context, userID int, sender, content string) (ImportResult, error) {
	msg, err := s.store.CreateSMSMessage(core.SMSMessage{
		UserID:  userID,
		Sender:  sender,
		Content: content,
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("store sms message: %w", err)
	}

	if s.extractor == nil {
		slog.WarnContext(ctx, "No SMS extractor configured, message stored without analysis",
			"sms_id", msg.ID)
		return ImportResult{Message: msg}, nil
	}

	extracted, err := s.extractor.AnalyzeSMS(ctx, sender, content)
	if err != nil {
		slog.WarnContext(ctx, "SMS extraction failed, message stored without a bill",
			"sms_id", msg.ID, "error", err)
		return ImportResult{Message: msg}, nil
	}
	if extracted == nil {
		// Not a bill notification.
		msg.Processed = true
		if msg, err = s.store.UpdateSMSMessage(msg.ID, msg); err != nil {
			return ImportResult{}, fmt.Errorf("update sms message: %w", err)
		}
		return ImportResult{Message: msg}, nil
	}

	bill, err := s.createBill(ctx, userID, extracted)
	if err != nil {
		slog.WarnContext(ctx, "Extracted bill was not storable",
			"sms_id", msg.ID, "error", err)
		return ImportResult{Message: msg}, nil
	}

	msg.Processed = true
	msg.BillID = bill.ID
	if msg, err = s.store.UpdateSMSMessage(msg.ID, msg); err != nil {
		return ImportResult{}, fmt.Errorf("update sms message: %w", err)
	}

	slog.InfoContext(ctx, "Created bill from SMS",
		"sms_id", msg.ID,
		"bill_id", bill.ID,
		"category_id", bill.CategoryID,
		"amount", bill.Amount)

	return ImportResult{Message: msg, Bill: &bill}, nil
}

func (s *Service) createBill(ctx context.Context, userID int, extracted *ExtractedBill) (core.Bill, error) {
	categoryID := extracted.CategoryID
	if categoryID == 0 {
		categoryID = CategorizeByKeywords(extracted.Title, extracted.MerchantName, extracted.Description)
	}

	dueDate := time.Time{}
	if extracted.DueDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", extracted.DueDate, time.UTC)
		if err != nil {
			slog.WarnContext(ctx, "Unparseable due date in extracted bill, using today",
				"due_date", extracted.DueDate)
		} else {
			dueDate = parsed
		}
	}
	if dueDate.IsZero() {
		now := time.Now().UTC()
		dueDate = core.Date(now.Year(), int(now.Month()), now.Day())
	}

	return s.store.CreateBill(core.Bill{
		Title:           extracted.Title,
		Amount:          extracted.Amount,
		DueDate:         dueDate,
		CategoryID:      categoryID,
		UserID:          userID,
		Recurring:       true,
		Description:     extracted.Description,
		MerchantName:    extracted.MerchantName,
		DetectedFromSMS: true,
	})
}
