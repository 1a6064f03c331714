package server

import (
	"net/http"

	"storefront/internal/forms"
	"storefront/internal/response"
)

func (h *handlers) contact(w http.ResponseWriter, r *http.Request) {
	var req forms.Contact
	if err := readJson(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.Validator.Validate(&req); err != nil {
		h.fail(w, r, err)
		return
	}

	h.Logger.InfoContext(r.Context(), "Contact form received", "subject", req.Subject)

	h.Responder.SendJson(w, r.Context(), struct {
		Notification response.Notification `json:"notification"`
	}{
		Notification: response.Notification{
			Title:       "Message Sent!",
			Description: "Thank you for contacting us. We'll get back to you within 24 hours.",
		},
	})
}

func (h *handlers) newsletter(w http.ResponseWriter, r *http.Request) {
	var req forms.Newsletter
	if err := readJson(w, r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.Validator.Validate(&req); err != nil {
		h.fail(w, r, err)
		return
	}

	h.Responder.SendJson(w, r.Context(), struct {
		Notification response.Notification `json:"notification"`
	}{
		Notification: response.Notification{
			Title:       "Newsletter Subscription",
			Description: "Thank you for subscribing! We'll send you our latest book recommendations.",
		},
	})
}
