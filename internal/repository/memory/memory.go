// Package memory provides in-process implementations of the repository interfaces.
// They back the service when no Postgres DSN is configured and serve as fakes in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
)

// Store holds users, tickets and comments behind one lock. Each method is atomic
// per record, mirroring the per-document guarantee of the real store. Insertion
// sequence numbers break createdAt ties so listings stay deterministic.
type Store struct {
	mu       sync.RWMutex
	now      func() time.Time
	seq      int64
	users    map[string]domain.User
	emails   map[string]string
	tickets  map[string]domain.Ticket
	order    map[string]int64
	comments []comment
}

type comment struct {
	seq int64
	domain.Comment
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		now:     time.Now,
		users:   make(map[string]domain.User),
		emails:  make(map[string]string),
		tickets: make(map[string]domain.Ticket),
		order:   make(map[string]int64),
	}
}

// WithClock replaces the time source used for createdAt stamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository { return (*userRepo)(s) }

// Tickets returns the ticket repository view of the store.
func (s *Store) Tickets() repository.TicketRepository { return (*ticketRepo)(s) }

// Comments returns the comment repository view of the store.
func (s *Store) Comments() repository.CommentRepository { return (*commentRepo)(s) }

func (s *Store) stamp() (time.Time, int64) {
	s.seq++
	return s.now().UTC(), s.seq
}

type userRepo Store

func (r *userRepo) Create(_ context.Context, user *domain.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.emails[user.Email]; exists {
		return repository.ErrDuplicate
	}
	user.ID = uuid.NewString()
	user.CreatedAt, _ = s.stamp()
	s.users[user.ID] = *user
	s.emails[user.Email] = user.ID
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s := (*Store)(r)
	s.mu.RLock()
	id, ok := s.emails[email]
	s.mu.RUnlock()
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

type ticketRepo Store

type storedTicket struct {
	seq int64
	domain.Ticket
}

func (r *ticketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket.ID = uuid.NewString()
	var seq int64
	ticket.CreatedAt, seq = s.stamp()
	s.tickets[ticket.ID] = cloneTicket(*ticket)
	s.order[ticket.ID] = seq
	return nil
}

func (r *ticketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := cloneTicket(ticket)
	return &out, nil
}

func (r *ticketRepo) Update(_ context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	updated := patch.Apply(ticket)
	s.tickets[id] = cloneTicket(updated)
	return &updated, nil
}

func (r *ticketRepo) Delete(_ context.Context, id string) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.tickets, id)
	delete(s.order, id)
	return nil
}

func (r *ticketRepo) List(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]storedTicket, 0, len(s.tickets))
	for id, ticket := range s.tickets {
		if filter.OwnerID != nil && ticket.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && ticket.Priority != *filter.Priority {
			continue
		}
		if filter.HasAssignee && ticket.AssigneeID == nil {
			continue
		}
		matched = append(matched, storedTicket{seq: s.order[id], Ticket: cloneTicket(ticket)})
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	result := make([]domain.Ticket, 0, len(matched))
	for _, m := range matched {
		result = append(result, m.Ticket)
	}
	return result, nil
}

type commentRepo Store

func (r *commentRepo) Create(_ context.Context, c *domain.Comment) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	var seq int64
	c.CreatedAt, seq = s.stamp()
	s.comments = append(s.comments, comment{seq: seq, Comment: *c})
	return nil
}

func (r *commentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]comment, 0)
	for _, c := range s.comments {
		if c.TicketID == ticketID {
			matched = append(matched, c)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].seq < matched[j].seq
	})

	result := make([]domain.Comment, 0, len(matched))
	for _, c := range matched {
		result = append(result, c.Comment)
	}
	return result, nil
}

func cloneTicket(t domain.Ticket) domain.Ticket {
	if t.AssigneeID != nil {
		assignee := *t.AssigneeID
		t.AssigneeID = &assignee
	}
	return t
}
