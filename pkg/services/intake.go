package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"portfolio-site/pkg/models"
	"portfolio-site/pkg/utils"
)

var (
	ErrUnknownForm      = errors.New("unknown intake form")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrMissingFields    = errors.New("missing required fields")
	ErrInvalidEmail     = errors.New("invalid email address")
)

var submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "portfolio",
	Subsystem: "intake",
	Name:      "submissions_total",
	Help:      "Intake submissions by form and outcome.",
}, []string{"form", "outcome"})

var tracer = otel.Tracer("portfolio-site/services")

// IntakeError is a client-facing rejection. Message is the text returned to
// the browser; Err is one of the sentinel errors above.
type IntakeError struct {
	Kind    Kind
	Err     error
	Message string
}

func (e *IntakeError) Error() string {
	return fmt.Sprintf("%s intake: %v", e.Kind, e.Err)
}

func (e *IntakeError) Unwrap() error {
	return e.Err
}

// Submission is an accepted, sanitized intake payload.
type Submission struct {
	Form   Form
	Fields map[string]string
}

// Acknowledgement is the message returned to the sender.
func (s Submission) Acknowledgement() string {
	return s.Form.Acknowledgement
}

// Payload returns the submission as its typed request model.
func (s Submission) Payload() any {
	f := s.Fields
	switch s.Form.Kind {
	case KindQuote:
		return models.QuoteRequest{
			Name:     f["name"],
			Email:    f["email"],
			Service:  f["service"],
			Budget:   f["budget"],
			Timeline: f["timeline"],
			Message:  f["message"],
		}
	case KindNewsletter:
		return models.NewsletterRequest{Email: f["email"]}
	case KindContact:
		return models.ContactRequest{Name: f["name"], Email: f["email"], Message: f["message"]}
	}
	return f
}

// IntakeService defines the interface for handling form submissions
type IntakeService interface {
	Process(ctx context.Context, kind Kind, body []byte) (Submission, error)
}

type intakeServiceImpl struct {
	log *zap.Logger
}

// NewIntakeService creates a new intake service. Accepted submissions are
// only logged; nothing is stored or forwarded.
func NewIntakeService(log *zap.Logger) IntakeService {
	return &intakeServiceImpl{log: log}
}

// Process sanitizes and validates a raw JSON body for the given form.
func (s *intakeServiceImpl) Process(ctx context.Context, kind Kind, body []byte) (Submission, error) {
	form, ok := LookupForm(kind)
	if !ok {
		return Submission{}, fmt.Errorf("%w: %q", ErrUnknownForm, kind)
	}

	_, span := tracer.Start(ctx, "intake."+string(kind), trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	sub, err := s.validate(form, body)
	outcome := outcomeOf(err)
	submissionsTotal.WithLabelValues(string(kind), outcome).Inc()
	span.SetAttributes(
		attribute.String("intake.form", string(kind)),
		attribute.String("intake.outcome", outcome),
	)

	if err != nil {
		span.SetStatus(codes.Error, outcome)
		s.log.Info("Intake submission rejected",
			zap.String("form", string(kind)),
			zap.String("outcome", outcome),
		)
		return Submission{}, err
	}

	s.log.Info("Intake submission received",
		zap.String("form", string(kind)),
		zap.String("email_hash", utils.Fingerprint(sub.Fields[emailField])),
		zap.Any("payload", sub.Payload()),
	)
	return sub, nil
}

func (s *intakeServiceImpl) validate(form Form, body []byte) (Submission, error) {
	reject := func(err error, message string) (Submission, error) {
		return Submission{}, &IntakeError{Kind: form.Kind, Err: err, Message: message}
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil || decoded == nil {
		return reject(ErrMalformedPayload, form.Malformed)
	}
	// Arrays and scalars decode fine but carry no fields.
	raw, _ := decoded.(map[string]any)

	fields := make(map[string]string, len(form.Fields))
	for _, name := range form.Fields {
		fields[name] = utils.Sanitize(raw[name])
	}

	for _, name := range form.Fields {
		if fields[name] == "" {
			return reject(ErrMissingFields, form.MissingFields)
		}
	}

	if !utils.IsValidEmail(fields[emailField]) {
		return reject(ErrInvalidEmail, form.InvalidEmail)
	}

	return Submission{Form: form, Fields: fields}, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, ErrMalformedPayload):
		return "malformed"
	case errors.Is(err, ErrMissingFields):
		return "missing_fields"
	case errors.Is(err, ErrInvalidEmail):
		return "invalid_email"
	}
	return "error"
}
