package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Known template names.
const (
	Welcome              = "welcome"
	PurchaseConfirmation = "purchase_confirmation"
	PaymentReceipt       = "payment_receipt"
	CreatorOTP           = "creator_otp"
)

var bodies = map[string]string{
	Welcome: `<html><body>
<h2>Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
<p>Your account is ready. Browse upcoming events and grab your tickets.</p>
</body></html>`,

	PurchaseConfirmation: `<html><body>
<h2>Your tickets are booked</h2>
<p>{{.Quantity}}x {{.TicketType}} for <strong>{{.EventTitle}}</strong>.</p>
<p>Purchase code: <strong>{{.PurchaseCode}}</strong></p>
<p>Total: {{.Total}}</p>
<p>Show the purchase code (or the QR on your ticket page) at the venue.</p>
</body></html>`,

	PaymentReceipt: `<html><body>
<h2>Payment received</h2>
<p>We confirmed your payment of {{.Total}} for <strong>{{.EventTitle}}</strong>.</p>
<p>Purchase code: <strong>{{.PurchaseCode}}</strong></p>
</body></html>`,

	CreatorOTP: `<html><body>
<h2>Creator verification</h2>
<p>Your verification code is <strong>{{.OTP}}</strong>.</p>
<p>It expires in {{.ExpiresIn}}.</p>
</body></html>`,
}

var subjects = map[string]string{
	Welcome:              "Welcome to Event Booking",
	PurchaseConfirmation: "Your ticket purchase is confirmed",
	PaymentReceipt:       "Payment received",
	CreatorOTP:           "Your creator verification code",
}

var parsed = map[string]*template.Template{}

func init() {
	for name, body := range bodies {
		parsed[name] = template.Must(template.New(name).Parse(body))
	}
}

// Subject returns the canonical subject line for a template name.
func Subject(name string) string {
	if s, ok := subjects[name]; ok {
		return s
	}
	return "Notification"
}

// RenderHTML renders the named template with data.
func RenderHTML(name string, data map[string]any) (string, error) {
	t, ok := parsed[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
