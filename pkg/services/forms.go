package services

// Kind identifies one of the intake forms on the page.
type Kind string

const (
	KindQuote      Kind = "quote"
	KindNewsletter Kind = "newsletter"
	KindContact    Kind = "contact"
)

// Form describes how one intake endpoint validates and answers a submission.
// Every field listed is required; the "email" field is also shape checked.
type Form struct {
	Kind            Kind
	Fields          []string
	MissingFields   string
	InvalidEmail    string
	Malformed       string
	Acknowledgement string
}

const emailField = "email"

var forms = []Form{
	{
		Kind:            KindQuote,
		Fields:          []string{"name", "email", "service", "budget", "timeline", "message"},
		MissingFields:   "All fields are required",
		InvalidEmail:    "Invalid email address",
		Malformed:       "Error processing request",
		Acknowledgement: "Thank you! Your quote request has been received. I'll get back to you within 24 hours.",
	},
	{
		Kind:            KindNewsletter,
		Fields:          []string{"email"},
		MissingFields:   "Please provide a valid email address",
		InvalidEmail:    "Please provide a valid email address",
		Malformed:       "Error processing subscription",
		Acknowledgement: "Successfully subscribed! You'll receive updates on my latest work.",
	},
	{
		Kind:            KindContact,
		Fields:          []string{"name", "email", "message"},
		MissingFields:   "All fields are required",
		InvalidEmail:    "Invalid email address",
		Malformed:       "Error sending message",
		Acknowledgement: "Message sent successfully! I'll respond within 24 hours.",
	},
}

// Forms returns the intake forms in route registration order.
func Forms() []Form {
	out := make([]Form, len(forms))
	copy(out, forms)
	return out
}

// LookupForm returns the form registered for kind.
func LookupForm(kind Kind) (Form, bool) {
	for _, f := range forms {
		if f.Kind == kind {
			return f, true
		}
	}
	return Form{}, false
}
