package subscription

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/creatorhub/creatorhub/internal/domain/billing"
	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
)

// memoryLedger is an in-memory ledger.Repository with the same
// compare-and-set semantics as the gorm implementation.
type memoryLedger struct {
	mu       sync.Mutex
	accounts map[string]*ledger.Account
	nextID   uint
	setPlans atomic.Int32
}

func newMemoryLedger(accounts ...*ledger.Account) *memoryLedger {
	l := &memoryLedger{accounts: map[string]*ledger.Account{}}
	for _, a := range accounts {
		l.nextID++
		a.ID = l.nextID
		l.accounts[a.UserID] = a
	}
	return l
}

func (l *memoryLedger) snapshot(a *ledger.Account) *ledger.Account {
	c := *a
	return &c
}

func (l *memoryLedger) Ensure(_ context.Context, userID, email string) (*ledger.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if a, ok := l.accounts[userID]; ok {
		return l.snapshot(a), nil
	}
	l.nextID++
	a := ledger.NewDefaultAccount(userID, email, time.Now().UTC())
	a.ID = l.nextID
	l.accounts[userID] = a
	return l.snapshot(a), nil
}

func (l *memoryLedger) Get(_ context.Context, userID string) (*ledger.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[userID]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	return l.snapshot(a), nil
}

func (l *memoryLedger) GetForUpdate(ctx context.Context, userID string) (*ledger.Account, error) {
	return l.Get(ctx, userID)
}

func (l *memoryLedger) FindByCustomerRef(_ context.Context, ref string) (*ledger.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.accounts {
		if a.BillingCustomerRef == ref {
			return l.snapshot(a), nil
		}
	}
	return nil, ledger.ErrAccountNotFound
}

func (l *memoryLedger) TryDeduct(_ context.Context, userID string, amount int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.accounts[userID]
	if a.TokensRemaining < amount {
		return 0, &ledger.InsufficientBalanceError{Required: amount, Available: a.TokensRemaining}
	}
	a.TokensRemaining -= amount
	return a.TokensRemaining, nil
}

func (l *memoryLedger) Refund(_ context.Context, userID string, amount int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.accounts[userID]
	a.TokensRemaining += amount
	return a.TokensRemaining, nil
}

func (l *memoryLedger) ResetToLimit(_ context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	a := l.accounts[userID]
	a.TokensRemaining = a.TokensMonthlyLimit
	return nil
}

func (l *memoryLedger) ResetDue(_ context.Context, cycleStart time.Time) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n int64
	for _, a := range l.accounts {
		if a.TokensResetAt.Before(cycleStart) {
			a.TokensRemaining = a.TokensMonthlyLimit
			a.TokensResetAt = cycleStart
			n++
		}
	}
	return n, nil
}

func (l *memoryLedger) SetPlan(_ context.Context, cmd ledger.SetPlanCommand) (*ledger.Account, error) {
	l.setPlans.Add(1)
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[cmd.UserID]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	if a.Plan != cmd.ExpectedPlan {
		return nil, ledger.ErrPlanChanged
	}
	a.Plan = cmd.Plan
	a.TokensMonthlyLimit = cmd.Plan.MonthlyTokenLimit()
	a.PlanExpiry = cmd.Expiry
	a.BillingSubscriptionRef = cmd.SubscriptionRef
	if cmd.CustomerRef != "" {
		a.BillingCustomerRef = cmd.CustomerRef
	}
	synced := cmd.SyncedAt
	a.PlanSyncedAt = &synced
	if cmd.ResetBalance {
		a.TokensRemaining = cmd.Plan.MonthlyTokenLimit()
	}
	return l.snapshot(a), nil
}

func (l *memoryLedger) AttachCustomer(_ context.Context, userID, ref string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.accounts[userID]
	if !ok {
		return ledger.ErrAccountNotFound
	}
	a.BillingCustomerRef = ref
	return nil
}

func (l *memoryLedger) ListWithCustomer(_ context.Context, afterID uint, limit int) ([]*ledger.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*ledger.Account
	for id := afterID + 1; id <= l.nextID && len(out) < limit; id++ {
		for _, a := range l.accounts {
			if a.ID == id && a.HasCustomer() {
				out = append(out, l.snapshot(a))
			}
		}
	}
	return out, nil
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) GetCustomer(ctx context.Context, id string) (*billing.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*billing.Customer)
	return c, args.Error(1)
}

func (m *mockProvider) FindCustomerByEmail(ctx context.Context, email string) (*billing.Customer, error) {
	args := m.Called(ctx, email)
	c, _ := args.Get(0).(*billing.Customer)
	return c, args.Error(1)
}

func (m *mockProvider) ListActiveSubscriptions(ctx context.Context, customerID string) ([]billing.Subscription, error) {
	args := m.Called(ctx, customerID)
	subs, _ := args.Get(0).([]billing.Subscription)
	return subs, args.Error(1)
}

type recordingNotifier struct {
	calls chan entitlement.Plan
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{calls: make(chan entitlement.Plan, 8)}
}

func (n *recordingNotifier) NotifyPlanChanged(_ context.Context, a *ledger.Account, _ entitlement.Plan) error {
	n.calls <- a.Plan
	return nil
}

type memoryEventLog struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (e *memoryEventLog) IsProcessed(_ context.Context, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seen[id], nil
}

func (e *memoryEventLog) MarkProcessed(_ context.Context, id, _ string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.seen == nil {
		e.seen = map[string]bool{}
	}
	fresh := !e.seen[id]
	e.seen[id] = true
	return fresh, nil
}

func account(userID string, plan entitlement.Plan, tokens int, customerRef string) *ledger.Account {
	return &ledger.Account{
		UserID:             userID,
		Email:              userID + "@example.com",
		Plan:               plan,
		TokensRemaining:    tokens,
		TokensMonthlyLimit: plan.MonthlyTokenLimit(),
		BillingCustomerRef: customerRef,
		TokensResetAt:      time.Now().UTC(),
	}
}

var testPrices = PricePlans{
	"price_creator": entitlement.PlanCreator,
	"price_pro":     entitlement.PlanPro,
}
