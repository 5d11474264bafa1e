package actions

import (
	"context"
	"fmt"
	"sort"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/sourcing"
	"Brassworks/internal/engine/state"
)

const developIronCost = 1

// Develop 发展：移除面板上一块（可选两块）最低级板块，每块消耗一枚铁，
// 最后弃一张任意手牌。陶器等标记了不可发展的级别不能这样跳过。
func Develop(ctx context.Context, env *port.Env, g *state.Game, player int) error {
	p := g.Players[player]
	if len(p.Hand) == 0 {
		return illegal("develop")
	}
	if len(developableChoices(g, player)) == 0 {
		return illegal("develop")
	}

	if err := DevelopOnce(ctx, env, g, player, false); err != nil {
		return err
	}

	// 第二块可做可不做。
	cands := developableChoices(g, player)
	if len(cands) > 0 {
		cands = append(cands, port.Choice{ID: "done", Label: "Done developing"})
		got, err := env.Surface.OfferChoice(ctx, player, cands, port.ChoiceOptions{
			Message: "Develop a second tile?",
		})
		if err != nil {
			return err
		}
		if got.ID != "done" {
			if err := developRemove(ctx, env, g, player, domain.Industry(got.ID)); err != nil {
				return err
			}
		}
	}

	if err := discardAnyCard(ctx, env, g, player, "Discard any card"); err != nil {
		return err
	}
	return env.Delay.Beat(ctx)
}

// DevelopOnce 移除一块可发展工业的最低级板块并消耗一枚铁。
// 外销市场的发展奖励也走这里（auto 为真时单候选不再询问）。
func DevelopOnce(ctx context.Context, env *port.Env, g *state.Game, player int, auto bool) error {
	cands := developableChoices(g, player)
	if len(cands) == 0 {
		return illegal("develop")
	}
	got, err := env.Surface.OfferChoice(ctx, player, cands, port.ChoiceOptions{
		Message:             "Choose an industry to develop",
		AutoResolveIfSingle: auto,
	})
	if err != nil {
		return err
	}
	return developRemove(ctx, env, g, player, domain.Industry(got.ID))
}

func developRemove(ctx context.Context, env *port.Env, g *state.Game, player int, ind domain.Industry) error {
	p := g.Players[player]
	level, ok := p.TakeMatTile(ind)
	if !ok {
		return illegal("develop")
	}
	env.Notify.Set("%s develops, removing their level %d %s", p.Name, level, ind)

	sources := env.Query.DistanceOrderedSources(g, nil, domain.ResourceIron, player)
	return sourcing.Consume(ctx, env, g, player, domain.ResourceIron, developIronCost, sources, g.IronMarket)
}

// developableChoices 返回最低级板块允许被发展的工业。
func developableChoices(g *state.Game, player int) []port.Choice {
	p := g.Players[player]
	var out []port.Choice
	for _, ind := range industriesInOrder(g) {
		stock, ok := p.LowestStock(ind)
		if !ok {
			continue
		}
		lv, ok := g.LevelData(ind, stock.Level)
		if !ok || lv.NoDevelop {
			continue
		}
		out = append(out, port.Choice{
			ID:    string(ind),
			Label: fmt.Sprintf("%s (level %d)", ind, stock.Level),
		})
	}
	return out
}

// industriesInOrder 按 gamedata 里的名字排序返回工业，保证候选顺序确定。
func industriesInOrder(g *state.Game) []domain.Industry {
	names := make([]string, 0, len(g.Data.Industries))
	for name := range g.Data.Industries {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]domain.Industry, len(names))
	for i, n := range names {
		out[i] = domain.Industry(n)
	}
	return out
}
