package email

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/shared/config"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

func TestPlanChangedMessage(t *testing.T) {
	s := NewSMTPEmailService(config.EmailConfig{FromAddress: "noreply@example.com", FromName: "CreatorHub"})

	m := s.planChangedMessage("u@example.com", entitlement.PlanFree, entitlement.PlanPro, 2000)
	assert.Equal(t, []string{"Your plan was upgraded to PRO"}, m.GetHeader("Subject"))
	assert.Equal(t, []string{"u@example.com"}, m.GetHeader("To"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2000 tokens available")

	m = s.planChangedMessage("u@example.com", entitlement.PlanPro, entitlement.PlanCreator, 700)
	assert.Equal(t, []string{"Your plan was downgraded to CREATOR"}, m.GetHeader("Subject"))
}

type recordingMailer struct {
	to   string
	from entitlement.Plan
	plan entitlement.Plan
	err  error
}

func (r *recordingMailer) SendPlanChangedEmail(to string, from, plan entitlement.Plan, _ int) error {
	r.to, r.from, r.plan = to, from, plan
	return r.err
}

func TestPlanChangeNotifier(t *testing.T) {
	account := &ledger.Account{UserID: "u1", Email: "u@example.com", Plan: entitlement.PlanCreator, TokensRemaining: 500}

	t.Run("sends", func(t *testing.T) {
		m := &recordingMailer{}
		n := NewPlanChangeNotifier(m, logger.NewNop())
		require.NoError(t, n.NotifyPlanChanged(context.Background(), account, entitlement.PlanFree))
		assert.Equal(t, "u@example.com", m.to)
		assert.Equal(t, entitlement.PlanFree, m.from)
		assert.Equal(t, entitlement.PlanCreator, m.plan)
	})

	t.Run("disabled", func(t *testing.T) {
		n := NewPlanChangeNotifier(nil, logger.NewNop())
		assert.NoError(t, n.NotifyPlanChanged(context.Background(), account, entitlement.PlanFree))
	})

	t.Run("send failure", func(t *testing.T) {
		n := NewPlanChangeNotifier(&recordingMailer{err: errors.New("smtp down")}, logger.NewNop())
		assert.Error(t, n.NotifyPlanChanged(context.Background(), account, entitlement.PlanFree))
	})
}
