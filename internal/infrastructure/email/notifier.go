package email

import (
	"context"
	"fmt"

	"github.com/creatorhub/creatorhub/internal/domain/entitlement"
	"github.com/creatorhub/creatorhub/internal/domain/ledger"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

type planMailer interface {
	SendPlanChangedEmail(to string, from, plan entitlement.Plan, tokens int) error
}

// PlanChangeNotifier emails users when synchronization changes their plan.
// A nil mailer means email is disabled and notices are only logged.
type PlanChangeNotifier struct {
	mailer planMailer
	logger logger.Interface
}

func NewPlanChangeNotifier(mailer planMailer, logger logger.Interface) *PlanChangeNotifier {
	return &PlanChangeNotifier{mailer: mailer, logger: logger}
}

func (n *PlanChangeNotifier) NotifyPlanChanged(_ context.Context, account *ledger.Account, from entitlement.Plan) error {
	if n.mailer == nil {
		n.logger.Debugw("email disabled, skipping plan change notice", "user_id", account.UserID, "plan", account.Plan)
		return nil
	}
	if account.Email == "" {
		n.logger.Warnw("account has no email, skipping plan change notice", "user_id", account.UserID)
		return nil
	}

	if err := n.mailer.SendPlanChangedEmail(account.Email, from, account.Plan, account.TokensRemaining); err != nil {
		return fmt.Errorf("failed to send plan change email: %w", err)
	}
	n.logger.Infow("plan change notice sent", "user_id", account.UserID, "from", from, "to", account.Plan)
	return nil
}
