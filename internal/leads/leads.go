package leads

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/awaistahir/sunquote/internal/engine"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind names a lead form
type Kind string

const (
	KindContact     Kind = "contact"
	KindApplication Kind = "application"
)

var ErrInvalidLead = errors.New("invalid lead")

// ContactRequest is the "get a quote" form. Estimate carries the calculator state the
// visitor had when they asked to be contacted.
type ContactRequest struct {
	Name     string                `json:"name" validate:"required"`
	Email    string                `json:"email" validate:"required,email"`
	Phone    string                `json:"phone" validate:"required"`
	Message  string                `json:"message" validate:"required"`
	Estimate *engine.EstimateInput `json:"estimate,omitempty" validate:"-"`
}

// ApplicationRequest is the careers form
type ApplicationRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Position string `json:"position" validate:"required"`
	Message  string `json:"message,omitempty"`
}

// Receipt acknowledges an accepted submission
type Receipt struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// FieldError names the first missing or malformed form field
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid lead: %s %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidLead }

// Submitter accepts lead forms
type Submitter interface {
	SubmitContact(ctx context.Context, req ContactRequest) (Receipt, error)
	SubmitApplication(ctx context.Context, req ApplicationRequest) (Receipt, error)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a ContactRequest or ApplicationRequest. Whitespace-only values count as missing.
func Validate(req any) error {
	switch r := req.(type) {
	case ContactRequest:
		trimContact(&r)
		if err := fieldError(validate.Struct(r)); err != nil {
			return err
		}
		if r.Estimate != nil {
			if err := engine.Validate(*r.Estimate); err != nil {
				return fmt.Errorf("estimate: %w", err)
			}
		}
		return nil
	case ApplicationRequest:
		trimApplication(&r)
		return fieldError(validate.Struct(r))
	default:
		return fmt.Errorf("%w: unsupported form %T", ErrInvalidLead, req)
	}
}

func trimContact(r *ContactRequest) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Message = strings.TrimSpace(r.Message)
}

func trimApplication(r *ApplicationRequest) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Position = strings.TrimSpace(r.Position)
}

func fieldError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidLead, err)
	}
	fe := verrs[0]
	reason := "is required"
	if fe.Tag() == "email" {
		reason = "must be a valid email address"
	}
	return &FieldError{Field: fe.Field(), Reason: reason}
}

// LogSubmitter records submissions in the service log. Nothing is stored or forwarded.
type LogSubmitter struct {
	log *zap.Logger
	now func() time.Time
}

// NewLogSubmitter returns a Submitter writing to log, or to the global logger when log is nil
func NewLogSubmitter(log *zap.Logger) *LogSubmitter {
	if log == nil {
		log = zap.L()
	}
	return &LogSubmitter{log: log.Named("leads"), now: time.Now}
}

func (s *LogSubmitter) SubmitContact(ctx context.Context, req ContactRequest) (Receipt, error) {
	if err := Validate(req); err != nil {
		return Receipt{}, err
	}
	receipt := s.receipt(KindContact)

	fields := []zap.Field{
		zap.String("id", receipt.ID),
		zap.String("name", req.Name),
		zap.String("email", req.Email),
		zap.String("phone", req.Phone),
		zap.Int("message_length", len(req.Message)),
	}
	if req.Estimate != nil {
		fields = append(fields,
			zap.String("region", string(req.Estimate.Region)),
			zap.Float64("system_size_kw", req.Estimate.SystemSizeKw),
		)
	}
	s.log.Info("contact request received", fields...)
	return receipt, nil
}

func (s *LogSubmitter) SubmitApplication(ctx context.Context, req ApplicationRequest) (Receipt, error) {
	if err := Validate(req); err != nil {
		return Receipt{}, err
	}
	receipt := s.receipt(KindApplication)

	s.log.Info("job application received",
		zap.String("id", receipt.ID),
		zap.String("name", req.Name),
		zap.String("email", req.Email),
		zap.String("phone", req.Phone),
		zap.String("position", req.Position),
	)
	return receipt, nil
}

func (s *LogSubmitter) receipt(kind Kind) Receipt {
	return Receipt{
		ID:         uuid.NewString(),
		Kind:       kind,
		ReceivedAt: s.now().UTC(),
	}
}
