// Package mailer implements the notification dispatcher for reservation
// lifecycle transitions. Three transactional messages exist: a receipt to
// the requester when a reservation is created, an alert to the admin inbox
// for the same event, and a decision notice when an administrator approves
// or denies. Delivery is best-effort; callers log failures and never let
// them affect the committed reservation record.
package mailer

import (
	"context"
	"fmt"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/openfab/reservation-server/internal/model"
)

// Dispatcher sends lifecycle notifications. The lifecycle service depends
// on this interface only; tests substitute a recording fake.
type Dispatcher interface {
	SendPending(ctx context.Context, to string, res *model.Reservation) error
	SendAdminAlert(ctx context.Context, to string, res *model.Reservation) error
	SendDecision(ctx context.Context, to, status string, res *model.Reservation, suggestion string) error
}

// SMTPMailer delivers mail through an SMTP relay over SSL. Port 465 with
// implicit TLS matches the original deployment's Gmail relay settings.
type SMTPMailer struct {
	dialer      *gomail.Dialer
	from        string
	frontendURL string
}

// NewSMTPMailer builds a mailer for the given relay. frontendURL is linked
// in admin alerts so the dashboard is one click away; it may be empty.
func NewSMTPMailer(host string, port int, user, pass, from, frontendURL string) *SMTPMailer {
	d := gomail.NewDialer(host, port, user, pass)
	d.SSL = port == 465
	return &SMTPMailer{dialer: d, from: from, frontendURL: frontendURL}
}

func (m *SMTPMailer) send(to, subject, html string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, "FabLab Reservations")
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	return m.dialer.DialAndSend(msg)
}

// SendPending tells the requester their reservation was received and is
// awaiting validation.
func (m *SMTPMailer) SendPending(ctx context.Context, to string, res *model.Reservation) error {
	subject := "Votre réservation est en attente de validation"
	html := fmt.Sprintf(`
    <h1>Réservation reçue</h1>
    <p>Bonjour %s,</p>
    <p>Votre demande de réservation pour le <strong>%s</strong> de <strong>%s</strong> à <strong>%s</strong> a bien été reçue.</p>
    <p>Espaces demandés : %s</p>
    <p>Nous l'examinerons dans les plus brefs délais et vous recevrez un email de confirmation ou de refus.</p>
    <p>Cordialement,<br>L'équipe FabLab</p>`,
		res.Name, res.Date,
		model.FormatHour(res.StartHour), model.FormatHour(res.EndHour),
		strings.Join(res.Spaces, ", "))
	return m.send(to, subject, html)
}

// SendAdminAlert notifies the administrator that a new request needs review.
func (m *SMTPMailer) SendAdminAlert(ctx context.Context, to string, res *model.Reservation) error {
	subject := "Nouvelle demande de réservation"
	html := fmt.Sprintf(`
    <h1>Nouvelle Réservation</h1>
    <p><strong>Nom:</strong> %s</p>
    <p><strong>Établissement:</strong> %s</p>
    <p><strong>Téléphone:</strong> %s</p>
    <p><strong>Email:</strong> %s</p>
    <p><strong>Date:</strong> %s</p>
    <p><strong>Heure:</strong> %s - %s</p>
    <p><strong>Espaces:</strong> %s</p>
    <p><strong>Note:</strong> %s</p>
    <p><a href="%s/admin">Accéder au tableau de bord</a> pour approuver ou refuser.</p>`,
		res.Name, res.Institution, res.Phone, res.Email, res.Date,
		model.FormatHour(res.StartHour), model.FormatHour(res.EndHour),
		strings.Join(res.Spaces, ", "), res.Note, m.frontendURL)
	return m.send(to, subject, html)
}

// SendDecision notifies the requester of the administrator's decision using
// the pre-update record details. A suggestion, when present on a denial,
// is included verbatim.
func (m *SMTPMailer) SendDecision(ctx context.Context, to, status string, res *model.Reservation, suggestion string) error {
	subject := "Réservation Confirmée ✅"
	color := "green"
	statusText := "approuvée"
	additional := "<p>Nous avons hâte de vous voir !</p>"
	if status == model.StatusDenied {
		subject = "Réservation Refusée ❌"
		color = "red"
		statusText = "refusée"
		if suggestion != "" {
			additional = fmt.Sprintf("<p><strong>Suggestion de l'administrateur :</strong> %s</p>", suggestion)
		} else {
			additional = "<p>Désolé, le créneau n'est pas disponible ou ne correspond pas à nos critères.</p>"
		}
	}
	html := fmt.Sprintf(`
    <h1>Votre réservation a été <span style="color: %s">%s</span></h1>
    <p>Bonjour %s,</p>
    <p>Votre demande de réservation pour le <strong>%s</strong> a été <strong>%s</strong>.</p>
    %s
    <p>Cordialement,<br>L'équipe FabLab</p>`,
		color, statusText, res.Name, res.Date, statusText, additional)
	return m.send(to, subject, html)
}
