package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// InquiryStatus tracks admin handling of a consultation request.
type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "new"
	InquiryInProgress InquiryStatus = "in_progress"
	InquiryDone       InquiryStatus = "done"
)

// InquiryStatuses returns the statuses in workflow order.
func InquiryStatuses() []InquiryStatus {
	return []InquiryStatus{InquiryNew, InquiryInProgress, InquiryDone}
}

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryInProgress, InquiryDone:
		return true
	}
	return false
}

func (s InquiryStatus) Label() string {
	switch s {
	case InquiryNew:
		return "신규"
	case InquiryInProgress:
		return "상담중"
	case InquiryDone:
		return "완료"
	default:
		return string(s)
	}
}

// CanTransition reports whether the workflow allows moving from s to next.
// Status only moves forward; done may be reopened to in_progress.
func (s InquiryStatus) CanTransition(next InquiryStatus) bool {
	switch s {
	case InquiryNew:
		return next == InquiryInProgress || next == InquiryDone
	case InquiryInProgress:
		return next == InquiryDone
	case InquiryDone:
		return next == InquiryInProgress
	}
	return false
}

// Inquiry is a consultation request from the public inquiry form. Phone and
// Email hold decrypted values; the table stores ciphertext.
type Inquiry struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Phone     string        `json:"phone"`
	Email     string        `json:"email"`
	Topic     string        `json:"topic"`
	Message   string        `json:"message"`
	Status    InquiryStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// InquiryInput is the public inquiry form.
type InquiryInput struct {
	Name    string `json:"name" validate:"required,max=50"`
	Phone   string `json:"phone" validate:"required,min=9,max=20"`
	Email   string `json:"email" validate:"omitempty,email,max=200"`
	Topic   string `json:"topic" validate:"required,oneof=market franchise interior loan etc"`
	Message string `json:"message" validate:"required,max=2000"`
	Agree   bool   `json:"agree" validate:"eq=true"`
}

// Sealer encrypts and decrypts individual column values.
type Sealer interface {
	Seal(field, plaintext string) (string, error)
	Open(field, encoded string) (string, error)
}

type InquiryService struct {
	db     DBTX
	sealer Sealer
}

func NewInquiryService(db DBTX, sealer Sealer) *InquiryService {
	return &InquiryService{db: db, sealer: sealer}
}

const inquiryColumns = `id, name, phone_enc, email_enc, topic, message, status, created_at, updated_at`

func (s *InquiryService) Create(ctx context.Context, in InquiryInput) (*Inquiry, error) {
	phone, err := s.sealer.Seal("phone", in.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to seal phone: %w", err)
	}
	email, err := s.sealer.Seal("email", in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to seal email: %w", err)
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	inq, err := s.scan(s.db.QueryRow(ctx, `
		INSERT INTO inquiries (name, phone_enc, email_enc, topic, message, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+inquiryColumns,
		in.Name, phone, email, in.Topic, in.Message, InquiryNew,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return inq, nil
}

// List returns inquiries newest first. An empty status lists all.
func (s *InquiryService) List(ctx context.Context, status InquiryStatus, limit int) ([]*Inquiry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx, `
		SELECT `+inquiryColumns+`
		FROM inquiries
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		string(status), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	inquiries, err := collect(rows, s.scan)
	if err != nil {
		return nil, fmt.Errorf("failed to scan inquiries: %w", err)
	}
	return inquiries, nil
}

// UpdateStatus moves an inquiry through the workflow.
func (s *InquiryService) UpdateStatus(ctx context.Context, id int64, next InquiryStatus) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var current InquiryStatus
	err := s.db.QueryRow(ctx, `SELECT status FROM inquiries WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrInquiryNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to fetch inquiry: %w", err)
	}
	if !current.CanTransition(next) {
		return ErrInvalidTransition
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE inquiries SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3`,
		next, id, current,
	)
	if err != nil {
		return fmt.Errorf("failed to update inquiry: %w", err)
	}
	return expectOne(tag, ErrInvalidTransition)
}

// CountByStatus returns per-status totals for the admin dashboard.
func (s *InquiryService) CountByStatus(ctx context.Context) (map[InquiryStatus]int, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := s.db.Query(ctx, `SELECT status, COUNT(*) FROM inquiries GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count inquiries: %w", err)
	}
	defer rows.Close()

	counts := make(map[InquiryStatus]int, 3)
	for rows.Next() {
		var status InquiryStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (s *InquiryService) scan(row rowScanner) (*Inquiry, error) {
	inq := &Inquiry{}
	var phone, email string
	err := row.Scan(&inq.ID, &inq.Name, &phone, &email, &inq.Topic, &inq.Message, &inq.Status, &inq.CreatedAt, &inq.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if inq.Phone, err = s.sealer.Open("phone", phone); err != nil {
		return nil, fmt.Errorf("inquiry %d phone: %w", inq.ID, err)
	}
	if inq.Email, err = s.sealer.Open("email", email); err != nil {
		return nil, fmt.Errorf("inquiry %d email: %w", inq.ID, err)
	}
	return inq, nil
}
