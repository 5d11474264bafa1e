package actions

import (
	"context"
	"errors"
	"fmt"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/sourcing"
	"Brassworks/internal/engine/state"
	"Brassworks/modules/kit/errx"
)

// sellTarget 是一块可出售的板块加上能收它的外销市场位。
type sellTarget struct {
	built     domain.BuiltIndustry
	merchants []*domain.MerchantLoc
}

// Sell 出售：挑一块未翻面的可售工业板块，凑齐它要的啤酒（自家或对手的
// 酒厂，或外销市场自带的啤酒），翻面得收入奖励；同一次行动里可以连着
// 卖多块，最后弃一张任意手牌。
func Sell(ctx context.Context, env *port.Env, g *state.Game, player int) error {
	p := g.Players[player]
	if len(p.Hand) == 0 {
		return illegal("sell")
	}
	targets := sellTargets(env, g, player)
	if len(targets) == 0 {
		return illegal("sell")
	}

	for {
		picked, err := chooseSellTarget(ctx, env, g, player, targets)
		if err != nil {
			return err
		}
		if err := sellOne(ctx, env, g, player, picked); err != nil {
			return err
		}
		if err := env.Delay.Beat(ctx); err != nil {
			return err
		}

		targets = sellTargets(env, g, player)
		if len(targets) == 0 {
			break
		}
		got, err := env.Surface.OfferChoice(ctx, player,
			[]port.Choice{
				{ID: "more", Label: "Sell another tile"},
				{ID: "done", Label: "Done selling"},
			},
			port.ChoiceOptions{Message: "Sell another tile?"})
		if err != nil {
			return err
		}
		if got.ID == "done" {
			break
		}
	}

	if err := discardAnyCard(ctx, env, g, player, "Discard any card"); err != nil {
		return err
	}
	return env.Delay.Beat(ctx)
}

func chooseSellTarget(ctx context.Context, env *port.Env, g *state.Game, player int,
	targets []sellTarget) (sellTarget, error) {

	cands := make([]port.Choice, len(targets))
	for i, t := range targets {
		cands[i] = port.Choice{
			ID:    t.built.Tile.ID,
			Label: fmt.Sprintf("%s at %s", t.built.Tile.Industry, t.built.Loc.City),
		}
	}
	got, err := env.Surface.OfferChoice(ctx, player, cands, port.ChoiceOptions{
		Message: "Click on a tile to sell",
	})
	if err != nil {
		return sellTarget{}, err
	}
	for _, t := range targets {
		if t.built.Tile.ID == got.ID {
			return t, nil
		}
	}
	return sellTarget{}, errx.ErrInternal.WithData("choice", got.ID)
}

func sellOne(ctx context.Context, env *port.Env, g *state.Game, player int, target sellTarget) error {
	p := g.Players[player]

	merchant := target.merchants[0]
	if len(target.merchants) > 1 {
		cands := make([]port.Choice, len(target.merchants))
		for i, m := range target.merchants {
			cands[i] = port.Choice{ID: m.ID, Label: string(m.City)}
		}
		got, err := env.Surface.OfferChoice(ctx, player, cands, port.ChoiceOptions{
			Message:             "Choose a merchant to sell to",
			AutoResolveIfSingle: true,
		})
		if err != nil {
			return err
		}
		merchant = g.Board.MerchantLocByID(got.ID)
	}

	need := target.built.Tile.Data.SaleBeerCost
	if err := consumeSaleBeer(ctx, env, g, player, target.built.Loc.City, merchant, need); err != nil {
		return err
	}

	if err := target.built.Tile.Flip(p); err != nil {
		return err
	}
	env.Notify.Set("%s sells their %s at %s", p.Name, target.built.Tile.Industry, target.built.Loc.City)
	return nil
}

// consumeSaleBeer 为一次出售凑啤酒。外销市场位上还留着啤酒时，它和最近
// 一档酒厂并列供挑选；选中市场啤酒立刻触发该市场的一次性奖励。
func consumeSaleBeer(ctx context.Context, env *port.Env, g *state.Game, player int,
	city domain.City, merchant *domain.MerchantLoc, need int) error {

	for need > 0 {
		sources := env.Query.DistanceOrderedSources(g, []domain.City{city}, domain.ResourceBeer, player)
		if !merchant.HasBeer {
			return sourcing.Consume(ctx, env, g, player, domain.ResourceBeer, need, sources, nil)
		}

		const merchantChoice = "merchant_beer"
		cands := []port.Choice{{ID: merchantChoice, Label: fmt.Sprintf("Market beer at %s", merchant.City)}}
		for _, s := range nearestTier(g, sources) {
			t := g.Board.TileByID(s.TileID)
			cands = append(cands, port.Choice{
				ID:    t.ID,
				Label: fmt.Sprintf("%s of player %d", t.Industry, t.Owner),
			})
		}
		got, err := env.Surface.OfferChoice(ctx, player, cands, port.ChoiceOptions{
			Message:             "Select a beer to consume",
			AutoResolveIfSingle: true,
		})
		if err != nil {
			return err
		}
		if got.ID == merchantChoice {
			merchant.HasBeer = false
			if err := applyMerchantReward(ctx, env, g, player, merchant); err != nil {
				return err
			}
		} else {
			t := g.Board.TileByID(got.ID)
			if err := t.ConsumeResource(g.Players[t.Owner]); err != nil {
				return err
			}
		}
		need--
		if err := env.Delay.Short(ctx); err != nil {
			return err
		}
	}
	return nil
}

// nearestTier 返回最近一档距离上的去重板块列表。
func nearestTier(g *state.Game, sources []port.SourceAt) []port.SourceAt {
	var out []port.SourceAt
	seen := make(map[string]bool)
	for _, s := range sources {
		t := g.Board.TileByID(s.TileID)
		if t == nil || t.Resources <= 0 {
			continue
		}
		if len(out) > 0 && s.Distance != out[0].Distance {
			break
		}
		if !seen[s.TileID] {
			seen[s.TileID] = true
			out = append(out, s)
		}
	}
	return out
}

// applyMerchantReward 触发外销市场啤酒的一次性奖励。
func applyMerchantReward(ctx context.Context, env *port.Env, g *state.Game, player int,
	merchant *domain.MerchantLoc) error {

	p := g.Players[player]
	switch merchant.BeerReward {
	case domain.BeerRewardDevelop:
		err := DevelopOnce(ctx, env, g, player, true)
		if errors.Is(err, errx.ErrIllegalMove) {
			// 面板上没有可发展的板块时奖励作废。
			env.Notify.Add("%s has nothing left to develop, the bonus is lost", p.Name)
			return nil
		}
		return err
	case domain.BeerRewardIncome2:
		p.IncreaseIncome(2)
		env.Notify.Add("%s gains 2 income from the merchant's beer", p.Name)
	case domain.BeerRewardCoins5:
		p.Money += 5
		env.Notify.Add("%s gains £5 from the merchant's beer", p.Name)
	case domain.BeerRewardVP3:
		p.IncreaseVictoryPoints(3)
		env.Notify.Add("%s gains 3 victory points from the merchant's beer", p.Name)
	case domain.BeerRewardVP4:
		p.IncreaseVictoryPoints(4)
		env.Notify.Add("%s gains 4 victory points from the merchant's beer", p.Name)
	default:
		return errx.ErrInternal.WithData("beer_reward", string(merchant.BeerReward))
	}
	return nil
}

// sellTargets 枚举可出售的板块：未翻面、工业可售、能连到收这种货的
// 外销市场位，而且啤酒凑得齐。啤酒按每个市场位单独核：酒厂存货只能
// 加上该位自带的那瓶，别的市场位的啤酒帮不上忙，凑不齐的位不做候选。
func sellTargets(env *port.Env, g *state.Game, player int) []sellTarget {
	var out []sellTarget
	for _, bi := range g.Board.BuiltIndustries(player) {
		if bi.Tile.Flipped || !bi.Tile.Industry.Sellable() {
			continue
		}
		brews := 0
		for _, s := range env.Query.DistanceOrderedSources(g, []domain.City{bi.Loc.City}, domain.ResourceBeer, player) {
			if t := g.Board.TileByID(s.TileID); t != nil && t.Resources > 0 {
				brews++
			}
		}
		need := bi.Tile.Data.SaleBeerCost
		var merchants []*domain.MerchantLoc
		for _, m := range g.Board.MerchantLocs {
			if !m.Tile.Accepts(bi.Tile.Industry) {
				continue
			}
			if !env.Query.AreConnected(g, bi.Loc.City, m.City) {
				continue
			}
			available := brews
			if m.HasBeer {
				available++
			}
			if available < need {
				continue
			}
			merchants = append(merchants, m)
		}
		if len(merchants) == 0 {
			continue
		}
		out = append(out, sellTarget{built: bi, merchants: merchants})
	}
	return out
}
