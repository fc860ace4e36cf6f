package memory

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/repository"
)

func fixedClock() func() time.Time {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestUsers_DuplicateEmail(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &domain.User{Email: "a@x.com", Role: domain.RoleClient}))
	err := users.Create(ctx, &domain.User{Email: "a@x.com", Role: domain.RoleAgent})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = users.GetByEmail(ctx, "missing@x.com")
	require.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestTickets_ListOrderAndFilter(t *testing.T) {
	tickets := NewStore().WithClock(fixedClock()).Tickets()
	ctx := context.Background()

	first := &domain.Ticket{Title: "first", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow, OwnerID: "alice"}
	second := &domain.Ticket{Title: "second", Status: domain.TicketStatusClosed, Priority: domain.TicketPriorityLow, OwnerID: "alice"}
	third := &domain.Ticket{Title: "third", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityHigh, OwnerID: "bob"}
	for _, tk := range []*domain.Ticket{first, second, third} {
		require.NoError(t, tickets.Create(ctx, tk))
	}

	all, err := tickets.List(ctx, repository.TicketFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"third", "second", "first"}, titles(all), "newest first even with equal timestamps")

	owner := "alice"
	open := domain.TicketStatusOpen
	scoped, err := tickets.List(ctx, repository.TicketFilter{OwnerID: &owner, Status: &open})
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, titles(scoped))
}

func TestTickets_UpdateDoesNotAlias(t *testing.T) {
	tickets := NewStore().Tickets()
	ctx := context.Background()

	tk := &domain.Ticket{Title: "t", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityMedium, OwnerID: "alice"}
	require.NoError(t, tickets.Create(ctx, tk))

	agent := "agent-1"
	updated, err := tickets.Update(ctx, tk.ID, domain.TicketPatch{AssigneeID: &agent})
	require.NoError(t, err)
	agent = "changed"
	assert.Equal(t, "agent-1", *updated.AssigneeID)

	stored, err := tickets.GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "agent-1", *stored.AssigneeID)

	require.NoError(t, tickets.Delete(ctx, tk.ID))
	require.ErrorIs(t, tickets.Delete(ctx, tk.ID), pgx.ErrNoRows)
	_, err = tickets.Update(ctx, tk.ID, domain.TicketPatch{})
	require.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestComments_AscendingThread(t *testing.T) {
	comments := NewStore().WithClock(fixedClock()).Comments()
	ctx := context.Background()

	for _, msg := range []string{"c1", "c2", "c3"} {
		require.NoError(t, comments.Create(ctx, &domain.Comment{TicketID: "t-1", Message: msg}))
	}
	require.NoError(t, comments.Create(ctx, &domain.Comment{TicketID: "t-2", Message: "other"}))

	thread, err := comments.ListByTicket(ctx, "t-1")
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "c1", thread[0].Message)
	assert.Equal(t, "c3", thread[2].Message)

	empty, err := comments.ListByTicket(ctx, "none")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func titles(tickets []domain.Ticket) []string {
	out := make([]string, 0, len(tickets))
	for _, tk := range tickets {
		out = append(out, tk.Title)
	}
	return out
}
