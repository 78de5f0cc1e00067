// internal/intake/intake.go
//
// Public enquiry intake: the one real validation boundary in the system.
//
// Context
// -------
// The contact and book-a-demo forms post here.  Input is validated with
// go-playground/validator; failures are collapsed into a single user-facing
// message (the form shows one combined error and keeps its values).  A valid
// submission inserts exactly one record with intake defaults, then runs the
// configured post-accept actions (SQL archive and notification mail) in
// the fire-and-forget style of form actions: errors are logged, never
// returned, so the visitor's flow is uninterrupted.
//
// Resubmission intentionally creates a new record each time; there is no
// idempotency key.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/lumioedu/web/internal/content"
	"github.com/lumioedu/web/internal/metrics"
)

// Input is what the public form posts.  Phone is the only optional field.
type Input struct {
	Name        string               `json:"name"        validate:"required"`
	Email       string               `json:"email"       validate:"required,email"`
	Phone       string               `json:"phone"`
	Institution string               `json:"institution" validate:"required"`
	Message     string               `json:"message"     validate:"required"`
	Role        content.EnquirerRole `json:"role"        validate:"required"`
}

// ValidationError carries the single combined message shown to the visitor.
// Distinguish it from system failures with errors.As / IsValidationError.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidationError reports whether err is a user-input error.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// fieldLabels turns struct field names into the words visitors see.
var fieldLabels = map[string]string{
	"Name":        "name",
	"Email":       "email",
	"Institution": "institution",
	"Message":     "message",
	"Role":        "role",
}

var validate = validator.New()

// Sink archives an accepted submission outside the snapshot, e.g. the MySQL
// lead table.  Implementations must be safe for concurrent use.
type Sink interface {
	Archive(ctx context.Context, sub content.FormSubmission) error
}

// Notifier tells the site team about a new enquiry.
type Notifier interface {
	NotifySubmission(sub content.FormSubmission) error
}

// Service wires the store to the optional post-accept actions.
type Service struct {
	store    *content.Store
	sink     Sink     // nil disables archiving
	notifier Notifier // nil disables notification
	log      *zap.SugaredLogger
}

// New constructs the intake service.  sink and notifier may be nil.
func New(store *content.Store, sink Sink, notifier Notifier, log *zap.SugaredLogger) *Service {
	if log == nil {
		log = zap.S()
	}
	return &Service{store: store, sink: sink, notifier: notifier, log: log}
}

// Submit validates and stores one enquiry.  On validation failure nothing is
// stored and the returned error is a *ValidationError; any other error is a
// system fault (none exist today, but the signature leaves room).
func (s *Service) Submit(ctx context.Context, in Input) (content.FormSubmission, error) {
	if err := checkInput(in); err != nil {
		metrics.SubmissionsRejectedTotal.Inc()
		return content.FormSubmission{}, err
	}

	sub := s.store.AddSubmission(content.FormSubmission{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Institution: strings.TrimSpace(in.Institution),
		Message:     strings.TrimSpace(in.Message),
		Role:        in.Role,
	})
	metrics.SubmissionsReceivedTotal.Inc()

	s.runActions(ctx, sub)
	return sub, nil
}

// checkInput validates presence, email shape, and role membership, folding
// every failure into one message.
func checkInput(in Input) error {
	var missing []string

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &ValidationError{Message: "Please check the form and try again."}
		}
		for _, fe := range verrs {
			label, ok := fieldLabels[fe.Field()]
			if !ok {
				label = strings.ToLower(fe.Field())
			}
			if fe.Tag() == "email" {
				return &ValidationError{Message: "Please enter a valid email address."}
			}
			missing = append(missing, label)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{
			Message: fmt.Sprintf("Please fill in the required fields: %s.", strings.Join(missing, ", ")),
		}
	}

	if !in.Role.Valid() {
		return &ValidationError{Message: "Please choose who you are enquiring as."}
	}
	return nil
}

// runActions executes the post-accept actions.  Errors are logged and
// swallowed: the enquiry is already safely in the store.
func (s *Service) runActions(ctx context.Context, sub content.FormSubmission) {
	if s.sink != nil {
		if err := s.sink.Archive(ctx, sub); err != nil {
			s.log.Errorw("submission archive failed",
				"submission", sub.ID, "err", err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.NotifySubmission(sub); err != nil {
			s.log.Errorw("submission notification failed",
				"submission", sub.ID, "err", err)
		}
	}
}
