package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/access"
	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/repository/memory"
	"github.com/spec-kit/helpdesk/internal/service"
)

func seed(t *testing.T) (*service.AssignmentService, string) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	users := store.Users()

	client := &domain.User{Name: "Alice", Email: "alice@x.com", Role: domain.RoleClient}
	agent := &domain.User{Name: "Agent", Email: "agent@x.com", Role: domain.RoleAgent}
	require.NoError(t, users.Create(ctx, client))
	require.NoError(t, users.Create(ctx, agent))

	tickets := service.NewTicketService(service.TicketDependencies{TicketRepo: store.Tickets()})
	caller := domain.Identity{ID: client.ID, Role: client.Role}
	ticket, err := tickets.CreateTicket(ctx, caller, service.TicketCreateInput{Title: "t", Description: "d"})
	require.NoError(t, err)
	_, err = tickets.UpdateTicket(ctx, domain.Identity{ID: agent.ID, Role: domain.RoleAgent}, ticket.ID, domain.TicketPatch{AssigneeID: &agent.ID})
	require.NoError(t, err)

	return service.NewAssignmentService(service.AssignmentDependencies{TicketService: tickets, UserRepo: users}), ticket.ID
}

func TestSweepWorker_ReadsWithoutHandler(t *testing.T) {
	assignments, _ := seed(t)
	w := NewSweepWorker(assignments, "", zap.NewNop())

	count, err := w.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSweepWorker_InvokesHandler(t *testing.T) {
	assignments, ticketID := seed(t)
	w := NewSweepWorker(assignments, "", zap.NewNop())

	var seen []string
	w.OnUnattended = func(_ context.Context, item service.UnattendedTicket) error {
		seen = append(seen, item.Ticket.ID)
		assert.Equal(t, "agent@x.com", item.Assignee.Email)
		return errors.New("escalation unavailable")
	}

	count, err := w.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{ticketID}, seen)
}

func TestSweepWorker_StartStop(t *testing.T) {
	assignments, _ := seed(t)

	bad := NewSweepWorker(assignments, "not a schedule", zap.NewNop())
	require.Error(t, bad.Start())

	w := NewSweepWorker(assignments, "@every 1h", zap.NewNop())
	require.NoError(t, w.Start())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	w.Stop(ctx)
}

func TestStartNotificationWorker(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(nil)
	notifications := service.NewNotificationService(dispatcher, zap.NewNop(), config.NotificationConfig{})
	StartNotificationWorker(dispatcher, notifications, events.NewRedisPublisher(nil, "ch"), zap.NewNop())

	store := memory.NewStore()
	tickets := service.NewTicketService(service.TicketDependencies{TicketRepo: store.Tickets(), Policy: access.Policy{}, Dispatcher: dispatcher})
	_, err := tickets.CreateTicket(context.Background(), domain.Identity{ID: "u1", Role: domain.RoleClient}, service.TicketCreateInput{Title: "t", Description: "d"})
	require.NoError(t, err)
}
