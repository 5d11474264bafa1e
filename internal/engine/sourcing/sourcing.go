package sourcing

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/state"
	"Brassworks/modules/kit/errx"
)

// Consume 驱动一次资源消耗：近的来源优先，同距离让玩家自由挑（只剩一个
// 候选自动选中），场上凑不够的缺口一次性按市场时价购买。
//
// sources 由棋盘查询面按距离升序给出；market 为 nil 且有缺口时是
// 配置缺陷，直接致命。
func Consume(ctx context.Context, env *port.Env, g *state.Game, player int,
	res domain.Resource, amount int, sources []port.SourceAt, market *domain.Market) error {

	if amount <= 0 {
		return nil
	}

	// 防御：丢掉已耗尽或不存在的来源，保持距离升序。
	live := sources[:0:0]
	for _, s := range sources {
		if t := g.Board.TileByID(s.TileID); t != nil && t.Resources > 0 {
			live = append(live, s)
		}
	}
	sort.SliceStable(live, func(i, j int) bool { return live[i].Distance < live[j].Distance })

	for len(live) > 0 && amount > 0 {
		// 候选列表每个条目对应一枚可消耗资源，同一板块可能出现多次；
		// 先剔除本轮已被耗尽板块的残余条目，展示时再按板块去重。
		pruned := live[:0]
		for _, s := range live {
			if t := g.Board.TileByID(s.TileID); t != nil && t.Resources > 0 {
				pruned = append(pruned, s)
			}
		}
		live = pruned
		if len(live) == 0 {
			break
		}

		distance := live[0].Distance
		var candidates []port.Choice
		seen := make(map[string]bool)
		for _, s := range live {
			if s.Distance != distance {
				break
			}
			if seen[s.TileID] {
				continue
			}
			seen[s.TileID] = true
			t := g.Board.TileByID(s.TileID)
			candidates = append(candidates, port.Choice{
				ID:    s.TileID,
				Label: fmt.Sprintf("%s %s L%d", g.Players[t.Owner].Name, t.Industry, t.Data.Level),
			})
		}

		picked, err := env.Surface.OfferChoice(ctx, player, candidates, port.ChoiceOptions{
			Message:             fmt.Sprintf("Select a %s to consume", res),
			AutoResolveIfSingle: true,
		})
		if err != nil {
			return err
		}

		tile := g.Board.TileByID(picked.ID)
		owner := g.Players[tile.Owner]
		env.Log.WithContext(ctx).Info("consuming resource",
			zap.String("resource", res.String()), zap.String("tile", tile.ID))
		if err := tile.ConsumeResource(owner); err != nil {
			return err
		}

		for i, s := range live {
			if s.TileID == picked.ID {
				live = append(live[:i], live[i+1:]...)
				break
			}
		}
		amount--

		if err := env.Delay.Beat(ctx); err != nil {
			return err
		}
	}

	if amount > 0 {
		if market == nil {
			return errx.ErrEmptyResource.WithData("resource", res.String()).
				WithCause(fmt.Errorf("no market for shortfall of %d", amount))
		}

		cost := market.Buy(amount)
		g.Players[player].SpendMoney(cost)
		env.Log.WithContext(ctx).Info("buying shortfall from market",
			zap.String("resource", res.String()), zap.Int("amount", amount), zap.Int("cost", cost))
		env.Notify.Add("%s spends £%d to buy %d %s from the market",
			g.Players[player].Name, cost, amount, res)

		if err := env.Delay.Beat(ctx); err != nil {
			return err
		}
	}
	return nil
}
