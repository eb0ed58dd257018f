package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"portfolio-site/pkg/models"
)

func newObservedService(t *testing.T) (IntakeService, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	return NewIntakeService(zap.New(core)), logs
}

const validQuote = `{
	"name": "Jane Doe",
	"email": "jane@example.com",
	"service": "web-development",
	"budget": "1000-2500",
	"timeline": "2-4-weeks",
	"message": "I need a landing page."
}`

func TestProcessAcceptsQuote(t *testing.T) {
	svc, logs := newObservedService(t)

	sub, err := svc.Process(context.Background(), KindQuote, []byte(validQuote))
	require.NoError(t, err)

	assert.Equal(t, "Thank you! Your quote request has been received. I'll get back to you within 24 hours.", sub.Acknowledgement())
	assert.Equal(t, models.QuoteRequest{
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Service:  "web-development",
		Budget:   "1000-2500",
		Timeline: "2-4-weeks",
		Message:  "I need a landing page.",
	}, sub.Payload())

	entries := logs.FilterMessage("Intake submission received").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "quote", entries[0].ContextMap()["form"])
	assert.NotEmpty(t, entries[0].ContextMap()["email_hash"])
}

func TestProcessSanitizesFields(t *testing.T) {
	svc, _ := newObservedService(t)

	body := `{"name": "  <b>Eve</b> onclick=", "email": " eve@example.com ", "message": "javascript:hi"}`
	sub, err := svc.Process(context.Background(), KindContact, []byte(body))
	require.NoError(t, err)

	assert.Equal(t, models.ContactRequest{
		Name:    "bEve/b",
		Email:   "eve@example.com",
		Message: "hi",
	}, sub.Payload())
}

func TestProcessRejections(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		body    string
		wantErr error
		wantMsg string
	}{
		{"quote missing message", KindQuote, `{"name":"a","email":"a@b.com","service":"s","budget":"b","timeline":"t"}`, ErrMissingFields, "All fields are required"},
		{"quote field empty after sanitizing", KindQuote, `{"name":"<>","email":"a@b.com","service":"s","budget":"b","timeline":"t","message":"m"}`, ErrMissingFields, "All fields are required"},
		{"quote bad email", KindQuote, `{"name":"a","email":"a@b","service":"s","budget":"b","timeline":"t","message":"m"}`, ErrInvalidEmail, "Invalid email address"},
		{"quote malformed", KindQuote, `{"name":`, ErrMalformedPayload, "Error processing request"},
		{"newsletter invalid", KindNewsletter, `{"email":"not-an-email"}`, ErrInvalidEmail, "Please provide a valid email address"},
		{"newsletter missing", KindNewsletter, `{}`, ErrMissingFields, "Please provide a valid email address"},
		{"newsletter numeric email", KindNewsletter, `{"email": 12}`, ErrMissingFields, "Please provide a valid email address"},
		{"newsletter malformed", KindNewsletter, `nope`, ErrMalformedPayload, "Error processing subscription"},
		{"contact malformed", KindContact, `{"name": "x"`, ErrMalformedPayload, "Error sending message"},
		{"contact null body", KindContact, `null`, ErrMalformedPayload, "Error sending message"},
		{"contact empty body", KindContact, ``, ErrMalformedPayload, "Error sending message"},
		{"contact array body", KindContact, `[1,2]`, ErrMissingFields, "All fields are required"},
		{"contact bad email", KindContact, `{"name":"x","email":"x y@z.com","message":"m"}`, ErrInvalidEmail, "Invalid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, logs := newObservedService(t)

			_, err := svc.Process(context.Background(), tt.kind, []byte(tt.body))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var intakeErr *IntakeError
			require.True(t, errors.As(err, &intakeErr))
			assert.Equal(t, tt.wantMsg, intakeErr.Message)
			assert.Equal(t, tt.kind, intakeErr.Kind)

			assert.Equal(t, 0, logs.FilterMessage("Intake submission received").Len())
			assert.Equal(t, 1, logs.FilterMessage("Intake submission rejected").Len())
		})
	}
}

func TestProcessUnknownForm(t *testing.T) {
	svc, _ := newObservedService(t)

	_, err := svc.Process(context.Background(), Kind("survey"), []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownForm)

	var intakeErr *IntakeError
	assert.False(t, errors.As(err, &intakeErr))
}

func TestProcessTruncatesLongFields(t *testing.T) {
	svc, _ := newObservedService(t)

	long := strings.Repeat("m", 5000)
	sub, err := svc.Process(context.Background(), KindContact,
		[]byte(`{"name":"n","email":"n@e.io","message":"`+long+`"}`))
	require.NoError(t, err)
	assert.Len(t, sub.Fields["message"], 1000)
}

func TestFormsTable(t *testing.T) {
	kinds := make([]Kind, 0, 3)
	for _, f := range Forms() {
		kinds = append(kinds, f.Kind)
		assert.Contains(t, f.Fields, "email", "form %s must collect an email", f.Kind)
		assert.NotEmpty(t, f.Acknowledgement)
	}
	assert.Equal(t, []Kind{KindQuote, KindNewsletter, KindContact}, kinds)

	_, ok := LookupForm(KindNewsletter)
	assert.True(t, ok)
	_, ok = LookupForm("survey")
	assert.False(t, ok)
}
