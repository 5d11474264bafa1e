package actions

import (
	"context"

	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/state"
)

const (
	loanAmount        = 30
	loanIncomePenalty = 3
)

// TakeLoan 贷款：+£30，收入 -3（不低于轨道下限），弃一张任意手牌。
func TakeLoan(ctx context.Context, env *port.Env, g *state.Game, player int) error {
	p := g.Players[player]
	if len(p.Hand) == 0 {
		return illegal("take_loan")
	}

	if err := env.Surface.OfferClick(ctx, player, "take_loan"); err != nil {
		return err
	}

	p.Money += loanAmount
	p.DecreaseIncome(loanIncomePenalty)
	env.Notify.Set("%s takes a £%d loan, income drops to %d", p.Name, loanAmount, p.Income)

	if err := discardAnyCard(ctx, env, g, player, "Discard any card"); err != nil {
		return err
	}
	return env.Delay.Beat(ctx)
}
