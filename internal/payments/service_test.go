package payments

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurier-app/kurier/internal/authz"
	"github.com/kurier-app/kurier/internal/shared"
	_ "github.com/kurier-app/kurier/testing"
)

// mockRepo implements Repository in memory. WithTx snapshots the state and
// restores it when the callback fails, mirroring a rolled-back transaction.
type mockRepo struct {
	mu            sync.Mutex
	targets       map[int64]*PromotionTarget
	ledger        []Payment
	nextPaymentID int64

	setPromotionErr error
	insertErr       error
	listErr         error
	listExpiredErr  error
	clearErr        map[int64]error

	// When blockListExpired is non-nil, ListExpired signals entry on
	// enteredListExpired and then blocks until the channel is closed.
	blockListExpired   chan struct{}
	enteredListExpired chan struct{}
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		targets:       map[int64]*PromotionTarget{},
		nextPaymentID: 1,
		clearErr:      map[int64]error{},
	}
}

func (m *mockRepo) addRestaurant(id, ownerID int64) *PromotionTarget {
	t := &PromotionTarget{ID: id, OwnerID: ownerID}
	m.targets[id] = t
	return t
}

func (m *mockRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	m.mu.Lock()
	snapshot := make(map[int64]PromotionTarget, len(m.targets))
	for id, t := range m.targets {
		copied := *t
		if t.PromotedUntil != nil {
			u := *t.PromotedUntil
			copied.PromotedUntil = &u
		}
		snapshot[id] = copied
	}
	ledgerLen := len(m.ledger)
	m.mu.Unlock()

	if err := fn(ctx, m); err != nil {
		m.mu.Lock()
		for id := range m.targets {
			restored := snapshot[id]
			m.targets[id] = &restored
		}
		m.ledger = m.ledger[:ledgerLen]
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *mockRepo) GetPromotionTarget(ctx context.Context, restaurantID int64) (*PromotionTarget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.targets[restaurantID]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *mockRepo) SetPromotion(ctx context.Context, restaurantID int64, until time.Time) error {
	if m.setPromotionErr != nil {
		return m.setPromotionErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.targets[restaurantID]
	if !ok {
		return shared.ErrNotFound
	}
	t.IsPromoted = true
	t.PromotedUntil = &until
	return nil
}

func (m *mockRepo) ClearPromotion(ctx context.Context, restaurantID int64) error {
	if err := m.clearErr[restaurantID]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.targets[restaurantID]; ok {
		t.IsPromoted = false
		t.PromotedUntil = nil
	}
	return nil
}

func (m *mockRepo) ListExpired(ctx context.Context, now time.Time) ([]int64, error) {
	if m.blockListExpired != nil {
		if m.enteredListExpired != nil {
			select {
			case m.enteredListExpired <- struct{}{}:
			default:
			}
		}
		<-m.blockListExpired
	}
	if m.listExpiredErr != nil {
		return nil, m.listExpiredErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for id, t := range m.targets {
		if t.IsPromoted && t.PromotedUntil != nil && t.PromotedUntil.Before(now) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *mockRepo) Insert(ctx context.Context, payment Payment) (int64, error) {
	if m.insertErr != nil {
		return 0, m.insertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payment.ID = m.nextPaymentID
	payment.CreatedAt = time.Now()
	m.nextPaymentID++
	m.ledger = append(m.ledger, payment)
	return payment.ID, nil
}

func (m *mockRepo) ListByUser(ctx context.Context, userID int64) ([]Payment, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Payment
	for _, p := range m.ledger {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

var _ Repository = (*mockRepo)(nil)

func pinnedService(repo Repository, at time.Time) *Service {
	svc := NewService(repo, nil, nil)
	svc.now = func() time.Time { return at }
	return svc
}

func owner(id int64) *authz.Principal {
	return &authz.Principal{ID: id, Role: authz.RoleOwner}
}

func TestCreateRestaurantNotFound(t *testing.T) {
	repo := newMockRepo()
	svc := pinnedService(repo, time.Now())

	result := svc.Create(context.Background(), owner(1), CreatePaymentRequest{TransactionID: "tx1", RestaurantID: 404})

	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Restaurant not found", *result.Error)
	assert.Empty(t, repo.ledger)
}

func TestCreateNotOwner(t *testing.T) {
	repo := newMockRepo()
	repo.addRestaurant(10, 1)
	svc := pinnedService(repo, time.Now())

	result := svc.Create(context.Background(), owner(2), CreatePaymentRequest{TransactionID: "tx1", RestaurantID: 10})

	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "You are not allowed to do this.", *result.Error)
	assert.False(t, repo.targets[10].IsPromoted)
	assert.Nil(t, repo.targets[10].PromotedUntil)
	assert.Empty(t, repo.ledger)
}

func TestCreateActivatesPromotion(t *testing.T) {
	repo := newMockRepo()
	repo.addRestaurant(10, 1)
	at := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	svc := pinnedService(repo, at)

	result := svc.Create(context.Background(), owner(1), CreatePaymentRequest{TransactionID: "tx1", RestaurantID: 10})

	require.True(t, result.OK)
	assert.Nil(t, result.Error)

	target := repo.targets[10]
	assert.True(t, target.IsPromoted)
	require.NotNil(t, target.PromotedUntil)
	assert.Equal(t, at.Add(PromotionWindow), *target.PromotedUntil)

	require.Len(t, repo.ledger, 1)
	record := repo.ledger[0]
	assert.Equal(t, "tx1", record.TransactionID)
	assert.Equal(t, int64(1), record.UserID)
	assert.Equal(t, int64(10), record.RestaurantID)
	_, err := uuid.Parse(record.Reference)
	assert.NoError(t, err)
}

func TestCreateExtendsWindowOnRepeat(t *testing.T) {
	repo := newMockRepo()
	repo.addRestaurant(10, 1)
	first := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	result := pinnedService(repo, first).Create(context.Background(), owner(1), CreatePaymentRequest{TransactionID: "tx1", RestaurantID: 10})
	require.True(t, result.OK)

	second := first.Add(3 * 24 * time.Hour)
	result = pinnedService(repo, second).Create(context.Background(), owner(1), CreatePaymentRequest{TransactionID: "tx2", RestaurantID: 10})
	require.True(t, result.OK)

	target := repo.targets[10]
	require.NotNil(t, target.PromotedUntil)
	assert.Equal(t, second.Add(PromotionWindow), *target.PromotedUntil, "window restarts from the newest payment")
	assert.Len(t, repo.ledger, 2, "repeat payments are not rejected")
}

func TestCreateRollsBackOnLedgerFailure(t *testing.T) {
	repo := newMockRepo()
	repo.addRestaurant(10, 1)
	repo.insertErr = assert.AnError
	svc := pinnedService(repo, time.Now())

	result := svc.Create(context.Background(), owner(1), CreatePaymentRequest{TransactionID: "tx1", RestaurantID: 10})

	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Could not create payment", *result.Error)
	assert.False(t, repo.targets[10].IsPromoted, "promotion must not survive a failed ledger write")
	assert.Nil(t, repo.targets[10].PromotedUntil)
	assert.Empty(t, repo.ledger)
}

func TestListPayments(t *testing.T) {
	repo := newMockRepo()
	repo.addRestaurant(10, 1)
	svc := pinnedService(repo, time.Now())

	require.True(t, svc.Create(context.Background(), owner(1), CreatePaymentRequest{TransactionID: "tx1", RestaurantID: 10}).OK)
	require.True(t, svc.Create(context.Background(), owner(1), CreatePaymentRequest{TransactionID: "tx2", RestaurantID: 10}).OK)

	result := svc.List(context.Background(), owner(1))
	require.True(t, result.OK)
	require.Len(t, result.Payments, 2)
	assert.Equal(t, "tx1", result.Payments[0].TransactionID)
	assert.Equal(t, "tx2", result.Payments[1].TransactionID)
}

func TestListPaymentsEmptyIsSuccess(t *testing.T) {
	svc := pinnedService(newMockRepo(), time.Now())

	result := svc.List(context.Background(), owner(1))
	assert.True(t, result.OK)
	assert.Nil(t, result.Error)
	assert.NotNil(t, result.Payments)
	assert.Empty(t, result.Payments)
}

func TestListPaymentsStorageFault(t *testing.T) {
	repo := newMockRepo()
	repo.listErr = assert.AnError
	svc := pinnedService(repo, time.Now())

	result := svc.List(context.Background(), owner(1))
	assert.False(t, result.OK)
	require.NotNil(t, result.Error)
	assert.Equal(t, "Could not load payments", *result.Error)
}
