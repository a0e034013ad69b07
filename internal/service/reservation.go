package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/openfab/reservation-server/internal/mailer"
	"github.com/openfab/reservation-server/internal/model"
	"github.com/openfab/reservation-server/internal/queue"
	"github.com/openfab/reservation-server/internal/repository"
	"github.com/openfab/reservation-server/internal/verify"
)

// ReservationStore is the narrow persistence contract the lifecycle
// controller requires. *repository.ReservationRepo satisfies it; tests use
// recording fakes.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) (string, error)
	ListByStatus(ctx context.Context, status string) ([]model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id, status, suggestion string) error
}

// ReservationService orchestrates the reservation lifecycle: validation,
// store writes and notification dispatch, in that order. It holds no
// reservation state between calls; the store is the sole arbiter of
// consistency, so concurrent requests never contend inside the service.
type ReservationService struct {
	store      ReservationStore
	gate       verify.Verifier
	dispatcher mailer.Dispatcher
	events     queue.Publisher
	adminEmail string
}

// NewReservationService wires the controller to its collaborators. events
// may be nil when no broker is configured.
func NewReservationService(store ReservationStore, gate verify.Verifier, d mailer.Dispatcher, events queue.Publisher, adminEmail string) *ReservationService {
	return &ReservationService{
		store:      store,
		gate:       gate,
		dispatcher: d,
		events:     events,
		adminEmail: adminEmail,
	}
}

// CreateInput is the validated payload for a reservation request. Hours
// must already be well-formed integers; the HTTP layer rejects non-integer
// input before it reaches the service.
type CreateInput struct {
	Name        string
	Institution string
	Phone       string
	Email       string
	Date        string
	StartHour   int
	EndHour     int
	Spaces      []string
	Note        string
	Token       string
	RemoteIP    string
}

// Create runs Transition 1 of the lifecycle: {no-record} -> pending.
//
// Ordering is load-bearing: verification before persistence keeps the gate
// fail-closed (nothing is written for a rejected request), and persistence
// before notification keeps notifications best-effort (the committed record
// is the source of truth whether or not mail goes out).
func (s *ReservationService) Create(ctx context.Context, in CreateInput) (*model.Reservation, error) {
	if in.Token == "" {
		// Skip the gate round trip entirely.
		return nil, ErrSecurityCheckMissing
	}
	if !s.gate.Verify(ctx, in.Token, in.RemoteIP) {
		return nil, ErrSecurityCheckFailed
	}

	if in.Name == "" || in.Email == "" || in.Date == "" || len(in.Spaces) == 0 {
		return nil, ErrValidation
	}
	if in.StartHour < 0 || in.EndHour > 24 || in.StartHour >= in.EndHour {
		return nil, ErrValidation
	}

	res := &model.Reservation{
		Name:        in.Name,
		Institution: in.Institution,
		Phone:       in.Phone,
		Email:       in.Email,
		Date:        in.Date,
		StartHour:   in.StartHour,
		EndHour:     in.EndHour,
		Spaces:      in.Spaces,
		Note:        in.Note,
		Status:      model.StatusPending,
	}
	if _, err := s.store.Create(ctx, res); err != nil {
		log.Printf("reservation: create failed: %v", err)
		return nil, ErrStoreUnavailable
	}

	// Best-effort side effects, requester receipt first, then admin alert.
	// Neither failure changes the outcome: the record is already pending.
	if err := s.dispatcher.SendPending(ctx, res.Email, res); err != nil {
		log.Printf("reservation %s: pending email failed: %v", res.ID, err)
	}
	if err := s.dispatcher.SendAdminAlert(ctx, s.adminEmail, res); err != nil {
		log.Printf("reservation %s: admin alert failed: %v", res.ID, err)
	}
	s.publishCreated(ctx, res)

	return res, nil
}

// Decide runs Transition 2: pending -> {approved | denied}. Deciding a
// record that is already terminal is accepted idempotently; the store
// update is last-write-wins and the decision notice is re-sent.
func (s *ReservationService) Decide(ctx context.Context, id, status, suggestion string) error {
	if !model.ValidDecision(status) {
		return ErrValidation
	}

	// Snapshot the record before the update; the decision email renders the
	// pre-update details.
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		log.Printf("reservation %s: lookup failed: %v", id, err)
		return ErrStoreUnavailable
	}

	if err := s.store.UpdateStatus(ctx, id, status, suggestion); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Disappeared between lookup and update.
			return ErrNotFound
		}
		log.Printf("reservation %s: status update failed: %v", id, err)
		return ErrStoreUnavailable
	}

	if err := s.dispatcher.SendDecision(ctx, res.Email, status, res, suggestion); err != nil {
		log.Printf("reservation %s: decision email failed: %v", id, err)
	}
	s.publishDecided(ctx, id, status, suggestion)

	return nil
}

// Availability returns the approved occupancy slots exposed publicly.
// Pending and denied records, and all contact fields, never reach this
// channel: the projection type carries occupancy data only.
func (s *ReservationService) Availability(ctx context.Context) ([]model.Slot, error) {
	approved, err := s.store.ListByStatus(ctx, model.StatusApproved)
	if err != nil {
		log.Printf("reservation: availability query failed: %v", err)
		return nil, ErrStoreUnavailable
	}
	slots := make([]model.Slot, 0, len(approved))
	for i := range approved {
		slots = append(slots, approved[i].Slot())
	}
	return slots, nil
}

// ListAll returns every reservation with full details, newest first, for
// the administrative view.
func (s *ReservationService) ListAll(ctx context.Context) ([]model.Reservation, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		log.Printf("reservation: admin listing failed: %v", err)
		return nil, ErrStoreUnavailable
	}
	return all, nil
}

func (s *ReservationService) publishCreated(ctx context.Context, res *model.Reservation) {
	if s.events == nil {
		return
	}
	event := queue.ReservationCreatedEvent{
		ReservationID: res.ID,
		Name:          res.Name,
		Date:          res.Date,
		StartHour:     res.StartHour,
		EndHour:       res.EndHour,
		Spaces:        res.Spaces,
		CreatedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
	}
	if err := s.events.PublishCreated(ctx, event); err != nil {
		log.Printf("reservation %s: created event not published: %v", res.ID, err)
	}
}

func (s *ReservationService) publishDecided(ctx context.Context, id, status, suggestion string) {
	if s.events == nil {
		return
	}
	event := queue.ReservationDecidedEvent{
		ReservationID: id,
		Status:        status,
		Suggestion:    suggestion,
		DecidedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.events.PublishDecided(ctx, event); err != nil {
		log.Printf("reservation %s: decided event not published: %v", id, err)
	}
}
