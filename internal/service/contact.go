package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deppfellow/touch-of-elegance/internal/errs"
	"github.com/deppfellow/touch-of-elegance/internal/model"
	"github.com/deppfellow/touch-of-elegance/internal/server"
	"github.com/deppfellow/touch-of-elegance/internal/validation"
)

const (
	ContactReceivedMessage = "Your message has been received. We will contact you soon!"
	ContactRequiredMessage = "Name, email, and message are required"
	ContactEmailMessage    = "Invalid email address"
	ContactFailedMessage   = "Failed to process contact form"
)

var contactMessages = validation.Messages{
	"name.required":     ContactRequiredMessage,
	"email.required":    ContactRequiredMessage,
	"message.required":  ContactRequiredMessage,
	"email.simpleemail": ContactEmailMessage,
}

// ContactInput is a contact form submission. Phone is optional.
// Whitespace-only values satisfy `required`.
type ContactInput struct {
	Name    string `json:"name" form:"name" validate:"required"`
	Email   string `json:"email" form:"email" validate:"required,simpleemail"`
	Phone   string `json:"phone" form:"phone"`
	Message string `json:"message" form:"message" validate:"required"`
}

// Validate reports missing fields before a malformed email, whatever the
// field order.
func (i *ContactInput) Validate() error {
	err := validation.Struct(i, contactMessages)
	if custom, ok := err.(validation.CustomValidationErrors); ok {
		if missing := custom.WithTag("required"); len(missing) > 0 {
			return missing
		}
	}
	return err
}

// ContactSink receives accepted submissions.
type ContactSink interface {
	Record(ctx context.Context, submission model.ContactSubmission) error
}

// LogContactSink writes each submission as one log line.
type LogContactSink struct {
	logger *zerolog.Logger
}

func NewLogContactSink(logger *zerolog.Logger) *LogContactSink {
	return &LogContactSink{logger: logger}
}

func (s *LogContactSink) Record(ctx context.Context, submission model.ContactSubmission) error {
	loggerFrom(ctx, s.logger).Info().
		Str("name", submission.Name).
		Str("email", submission.Email).
		Str("phone", submission.Phone).
		Msg("contact form submission")
	return nil
}

// ContactService accepts contact form submissions.
type ContactService struct {
	server *server.Server
	sink   ContactSink
}

func NewContactService(s *server.Server, sink ContactSink) *ContactService {
	return &ContactService{server: s, sink: sink}
}

// Submit validates the form and hands it to the sink.
//
// A sink failure, including a panic, is returned as a handled 500 so the
// caller answers with the contact form's own error body.
func (cs *ContactService) Submit(ctx context.Context, in *ContactInput) (msg string, err error) {
	logger := loggerFrom(ctx, cs.server.Logger)

	if err := in.Validate(); err != nil {
		return "", validation.ToHTTPError(err)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("error processing contact form")
			contactSubmissions.WithLabelValues("failed").Inc()
			msg = ""
			err = errs.NewHandledInternalError(ContactFailedMessage).WithCause(fmt.Errorf("contact sink panic: %v", r))
		}
	}()

	submission := model.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	}

	if err := cs.sink.Record(ctx, submission); err != nil {
		logger.Error().Err(err).Msg("error processing contact form")
		contactSubmissions.WithLabelValues("failed").Inc()
		return "", errs.NewHandledInternalError(ContactFailedMessage).WithCause(err)
	}

	contactSubmissions.WithLabelValues("received").Inc()
	return ContactReceivedMessage, nil
}
