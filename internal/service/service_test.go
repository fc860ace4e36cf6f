package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/access"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository/memory"
	apperrors "github.com/spec-kit/helpdesk/pkg/util/errorutil"
)

type fixture struct {
	store    *memory.Store
	auth     *AuthService
	tickets  *TicketService
	comments *CommentService
	events   *recorder
}

type recorder struct {
	events []events.Event
}

func (r *recorder) record(_ context.Context, e events.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []events.EventType {
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func newFixture(t *testing.T, policy access.Policy) *fixture {
	t.Helper()
	store := memory.NewStore()
	dispatcher := events.NewInMemoryDispatcher(nil)
	rec := &recorder{}
	for _, et := range []events.EventType{events.EventTicketCreated, events.EventTicketUpdated, events.EventTicketDeleted, events.EventCommentAdded} {
		dispatcher.Subscribe(et, rec.record)
	}

	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", BcryptCost: 4}}
	tickets := NewTicketService(TicketDependencies{TicketRepo: store.Tickets(), Policy: policy, Dispatcher: dispatcher})
	return &fixture{
		store:   store,
		auth:    NewAuthService(cfg, AuthDependencies{UserRepo: store.Users()}),
		tickets: tickets,
		comments: NewCommentService(CommentDependencies{
			CommentRepo:   store.Comments(),
			TicketService: tickets,
			Policy:        policy,
			Dispatcher:    dispatcher,
		}),
		events: rec,
	}
}

func (f *fixture) register(t *testing.T, name, email string, role domain.Role) domain.Identity {
	t.Helper()
	user, err := f.auth.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "pw-" + name, Role: role})
	require.NoError(t, err)
	return domain.Identity{ID: user.ID, Role: user.Role, Name: user.Name, Email: user.Email}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, apperrors.IsCode(err, code), "expected %s, got %v", code, err)
}
