package actions

import (
	"context"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/state"
)

// drainProc 抽干一个资源市场：剩余的资源全部废弃，不退钱。
// 默认配置下该行动被关闭，始终判非法。
func drainProc(res domain.Resource) Proc {
	return func(ctx context.Context, env *port.Env, g *state.Game, player int) error {
		if !env.AllowDrainMarkets {
			return illegal("drain_" + res.String())
		}
		m := g.MarketFor(res)
		if m == nil || m.IsEmpty() {
			return illegal("drain_" + res.String())
		}

		if err := env.Surface.OfferClick(ctx, player, "drain_"+res.String()); err != nil {
			return err
		}
		n, err := m.Drain()
		if err != nil {
			return err
		}
		env.Notify.Set("%s drains %d %s from the market", g.Players[player].Name, n, res)
		return env.Delay.Beat(ctx)
	}
}
