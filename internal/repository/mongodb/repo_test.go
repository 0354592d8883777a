package mongodb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"invento/internal/domain"
)

// testDB connects to MONGO_TEST_URI (a replica set, for transactions) and returns a fresh
// database dropped at cleanup.
func testDB(t *testing.T) (*mongo.Client, *mongo.Database) {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := Connect(ctx, uri)
	require.NoError(t, err)

	db := client.Database(fmt.Sprintf("invento_test_%d", time.Now().UnixNano()))
	require.NoError(t, EnsureIndexes(ctx, db))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return client, db
}

func intPtr(n int) *int { return &n }

func seedEvent(t *testing.T, repo domain.EventRepository, e *domain.Event) {
	t.Helper()
	e.Registration.IsOpen = true
	e.Registrations = domain.Registrations{Participants: []domain.Participant{}, Teams: []domain.Team{}}
	require.NoError(t, repo.Seed(context.Background(), e))
}

func TestEventRepository_AppendParticipantGuards(t *testing.T) {
	_, db := testDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	seedEvent(t, repo, &domain.Event{
		ID: "solo-demo", NumericID: 1, Name: "Solo Demo", EventType: domain.EventTypeSolo,
		Slots: domain.Slots{
			Open:     domain.SlotPool{Total: 1, Available: intPtr(1)},
			Official: domain.SlotPool{Total: 0, Available: intPtr(0)},
		},
	})
	open := domain.SlotCounter{Pool: domain.PoolOpen}

	ok, err := repo.AppendParticipant(ctx, "solo-demo", open, &domain.Participant{InventoID: "inv00001", Status: domain.StatusConfirmed})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.AppendParticipant(ctx, "solo-demo", open, &domain.Participant{InventoID: "inv00002", Status: domain.StatusConfirmed})
	require.NoError(t, err)
	assert.False(t, ok, "no slot left")

	e, err := repo.GetByID(ctx, "solo-demo")
	require.NoError(t, err)
	assert.Equal(t, 0, e.Available(open))
	require.Len(t, e.Registrations.Participants, 1)

	ok, err = repo.SetParticipantStatus(ctx, "solo-demo", "inv00001", domain.StatusCancelled, open, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.SetParticipantStatus(ctx, "solo-demo", "inv00001", domain.StatusCancelled, open, 1)
	require.NoError(t, err)
	assert.False(t, ok, "available may not exceed total")

	ok, err = repo.AppendParticipant(ctx, "solo-demo", open, &domain.Participant{InventoID: "inv00001"})
	require.NoError(t, err)
	assert.False(t, ok, "participant already present")
}

func TestEventRepository_AppendTeamConcurrentLastSlot(t *testing.T) {
	_, db := testDB(t)
	repo := NewEventRepository(db)

	seedEvent(t, repo, &domain.Event{
		ID: "code-relay", NumericID: 4, Name: "Code Relay", EventType: domain.EventTypeTeam,
		Slots: domain.Slots{
			Open:     domain.SlotPool{Total: 1, Available: intPtr(1)},
			Official: domain.SlotPool{Total: 0, Available: intPtr(0)},
		},
	})
	open := domain.SlotCounter{Pool: domain.PoolOpen}

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			leader := fmt.Sprintf("inv0000%d", i*2+1)
			team := &domain.Team{
				TeamName: leader, LeaderID: leader, Status: domain.StatusConfirmed,
				Members: []domain.TeamMember{{InventoID: leader}, {InventoID: fmt.Sprintf("inv0000%d", i*2+2)}},
			}
			ok, err := repo.AppendTeam(context.Background(), "code-relay", open, team)
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	e, err := repo.GetByID(context.Background(), "code-relay")
	require.NoError(t, err)
	assert.Equal(t, 0, e.Available(open))
	assert.Len(t, e.Registrations.Teams, 1)
}

func TestEventRepository_SeedKeepsLiveState(t *testing.T) {
	_, db := testDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	e := &domain.Event{
		ID: "open-mic", NumericID: 6, Name: "Open Mic", EventType: domain.EventTypeSolo,
		Slots: domain.Slots{Open: domain.SlotPool{Total: 5, Available: intPtr(5)}, Official: domain.SlotPool{Available: intPtr(0)}},
	}
	seedEvent(t, repo, e)
	ok, err := repo.SetRegistrationOpen(ctx, "open-mic", false)
	require.NoError(t, err)
	require.True(t, ok)

	e.Name = "Open Mic Night"
	seedEvent(t, repo, e)

	got, err := repo.GetByNumericID(ctx, 6)
	require.NoError(t, err)
	assert.Equal(t, "Open Mic Night", got.Name)
	assert.False(t, got.Registration.IsOpen)
}

func TestUserRepository_SequentialIDs(t *testing.T) {
	_, db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	now := time.Now()

	first := domain.NewUser("A", "a@example.com", "1", "C", "male", now, now)
	second := domain.NewUser("B", "b@example.com", "2", "C", "female", now, now)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, "inv00001", first.ID)
	assert.Equal(t, "inv00002", second.ID)

	dup := domain.NewUser("A2", "a@example.com", "3", "C", "male", now, now)
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrAlreadyExists)

	require.NoError(t, repo.RecordRegistration(ctx, []string{first.ID}, domain.UserRegistrationUpdate{EventName: "Solo Dance", Paid: true}))
	require.NoError(t, repo.RecordRegistration(ctx, []string{first.ID}, domain.UserRegistrationUpdate{EventName: "Solo Dance"}))
	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Solo Dance"}, got.RegisteredEvents)
	assert.Equal(t, domain.PassGeneral, got.PassType)
	assert.True(t, got.Payment)

	_, err = repo.GetByID(ctx, "inv99999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPaymentRepository_Replay(t *testing.T) {
	_, db := testDB(t)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	rec := &domain.PaymentRecord{PaymentID: "pay_1", OrderID: "order_1", EventID: "solo-dance", Amount: 30000, CreatedAt: time.Now()}
	require.NoError(t, repo.Create(ctx, rec))
	assert.ErrorIs(t, repo.Create(ctx, rec), domain.ErrPaymentAlreadyConsumed)

	ok, err := repo.Exists(ctx, "pay_1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTransactor_RollsBack(t *testing.T) {
	client, db := testDB(t)
	tx := NewTransactor(client)
	payments := NewPaymentRepository(db)
	ctx := context.Background()

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := payments.Create(ctx, &domain.PaymentRecord{PaymentID: "pay_tx", CreatedAt: time.Now()}); err != nil {
			return err
		}
		return domain.ErrSlotFull
	})
	assert.ErrorIs(t, err, domain.ErrSlotFull)

	ok, err := payments.Exists(ctx, "pay_tx")
	require.NoError(t, err)
	assert.False(t, ok)
}
