package main

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"touchsync.io/touchsync-web/internal/inquiry"
	mw "touchsync.io/touchsync-web/internal/middleware"
	"touchsync.io/touchsync-web/internal/observability"
)

const (
	contactPath        = "/contact"
	contactStatusPath  = "/contact/status"
	contactPollEvery   = "500ms"
	contactSubmittedEv = "contact:submitted"
)

// ContactView is the state-dependent contact panel.
type ContactView struct {
	Lang       string
	State      string
	Form       inquiry.Form
	Errors     map[string]string
	Industries []string
	CSRFToken  string
	CSRFField  string
	InquiryID  string
	PollURL    string
	PollEvery  string
}

// Submitting reports whether the form is locked while the send is simulated.
func (v ContactView) Submitting() bool { return v.State == inquiry.Submitting.String() }

// Submitted reports whether the thank-you view should be shown.
func (v ContactView) Submitted() bool { return v.State == inquiry.Submitted.String() }

// FieldError returns the message for a field, or "".
func (v ContactView) FieldError(field string) string { return v.Errors[field] }

func visitorSubmission(r *http.Request) *inquiry.Submission {
	return inquiryDesk.Submission(mw.GetSession(r).ID)
}

func buildContactView(r *http.Request, snap inquiry.Snapshot, verr *inquiry.ValidationError) ContactView {
	lang := mw.Lang(r)
	view := ContactView{
		Lang:       lang,
		State:      snap.State.String(),
		Form:       snap.Form,
		Industries: append([]string(nil), inquiry.Industries...),
		CSRFToken:  mw.CSRFToken(r),
		CSRFField:  mw.CSRFFormField,
		InquiryID:  snap.ID,
		PollURL:    contactStatusPath,
		PollEvery:  contactPollEvery,
	}
	if verr != nil {
		view.Errors = make(map[string]string)
		for field, reason := range verr.Map() {
			view.Errors[field] = fieldErrorMessage(lang, field, reason)
		}
	}
	return view
}

func fieldErrorMessage(lang, field, reason string) string {
	if reason == "invalid" {
		switch field {
		case inquiry.FieldEmail:
			return i18nOrDefault(lang, "contact.errors.email_invalid", "Please enter a valid email address.")
		case inquiry.FieldIndustry:
			return i18nOrDefault(lang, "contact.errors.industry_invalid", "Please select an industry from the list.")
		}
	}
	return i18nOrDefault(lang, "contact.errors.required", "This field is required.")
}

// ContactHandler renders the contact page in the visitor's current submission state.
func ContactHandler(w http.ResponseWriter, r *http.Request) {
	renderContactPage(w, r, http.StatusOK, visitorSubmission(r).Snapshot(), nil)
}

func renderContactPage(w http.ResponseWriter, r *http.Request, status int, snap inquiry.Snapshot, verr *inquiry.ValidationError) {
	vm := newPageData(r, "contact.title", "Contact Us",
		"contact.description", "Ready to transform your space? Get in touch with our team to discuss your interactive display needs.")
	vm.Contact = buildContactView(r, snap, verr)
	renderPageStatus(w, r, status, "contact", vm)
}

// ContactSubmitHandler validates the form and starts the simulated send. htmx callers get the
// panel fragment, which polls for completion; plain form posts are redirected back to the page.
func ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sub := visitorSubmission(r)
	id, err := sub.Submit(inquiry.FormFromValues(r.PostForm))

	var verr *inquiry.ValidationError
	switch {
	case err == nil:
		observability.FromContext(r.Context()).Debug("contact form accepted", zap.String("inquiry_id", id))
	case errors.As(err, &verr):
		if mw.IsHTMX(r.Context()) {
			renderTemplate(w, r, "frag_contact_panel", buildContactView(r, sub.Snapshot(), verr))
			return
		}
		renderContactPage(w, r, http.StatusUnprocessableEntity, sub.Snapshot(), verr)
		return
	case errors.Is(err, inquiry.ErrInvalidTransition):
		// A send is already pending or done; show whatever state the visitor is in.
	default:
		observability.FromContext(r.Context()).Error("contact submit failed", zap.Error(err))
		http.Error(w, "submit failed", http.StatusInternalServerError)
		return
	}

	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, contactPath, http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "frag_contact_panel", buildContactView(r, sub.Snapshot(), nil))
}

// ContactStatusFrag renders the current panel. It emits contact:submitted once the send has
// completed so the page can react.
func ContactStatusFrag(w http.ResponseWriter, r *http.Request) {
	snap := visitorSubmission(r).Snapshot()
	if snap.State == inquiry.Submitted {
		mw.Trigger(w, map[string]any{contactSubmittedEv: map[string]string{"id": snap.ID}})
	}
	renderTemplate(w, r, "frag_contact_panel", buildContactView(r, snap, nil))
}

// ContactResetHandler returns a submitted form to an empty Idle state.
func ContactResetHandler(w http.ResponseWriter, r *http.Request) {
	sub := visitorSubmission(r)
	if err := sub.Reset(); err != nil && !errors.Is(err, inquiry.ErrInvalidTransition) {
		observability.FromContext(r.Context()).Error("contact reset failed", zap.Error(err))
	}
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, contactPath, http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "frag_contact_panel", buildContactView(r, sub.Snapshot(), nil))
}
