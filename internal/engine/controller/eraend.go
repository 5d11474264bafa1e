package controller

import (
	"context"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/scoring"
	"Brassworks/internal/engine/state"
)

// removeObsoleteIndustries 在运河时代结束时把场上所有一级板块清掉，
// 板块上剩的资源一并回收。
func (c *Controller) removeObsoleteIndustries(g *state.Game) {
	for _, loc := range g.Board.IndustryLocs {
		if loc.Occupant == "" {
			continue
		}
		t := g.Board.Tiles[loc.Occupant]
		if t != nil && t.Data.Level == 1 {
			g.Board.RemoveIndustryAt(loc)
		}
	}
}

// settleCanalEra 在运河时代计分后结算换代：先清掉过时的一级板块，
// 教学短局在此加成收尾，常规局换入铁路时代。返回是否就此终局。
func (c *Controller) settleCanalEra(ctx context.Context, g *state.Game) (bool, error) {
	c.removeObsoleteIndustries(g)
	if c.tutorial {
		return true, c.tutorialScoring(ctx, g)
	}
	c.startRailEra(g)
	return false, nil
}

// startRailEra 换代：全部手牌和弃牌收回牌库重洗重发，万能牌回各自的
// 万能牌堆，已消耗的外销市场啤酒补回，首轮单行动重新生效。
func (c *Controller) startRailEra(g *state.Game) {
	g.Era = domain.EraRail
	g.FirstRound = true
	g.Turn = 0
	g.Action = 0

	pile := g.DrawPile
	recycle := func(card domain.Card) {
		switch {
		case !card.Wild:
			pile = append(pile, card)
		case card.City == domain.AnyCity:
			g.WildLocationPile = append(g.WildLocationPile, card)
		default:
			g.WildIndustryPile = append(g.WildIndustryPile, card)
		}
	}
	for _, p := range g.Players {
		for _, card := range p.Hand {
			recycle(card)
		}
		for _, card := range p.Discard {
			recycle(card)
		}
		p.Hand = nil
		p.Discard = nil
	}
	c.rng.Shuffle(len(pile), func(i, j int) { pile[i], pile[j] = pile[j], pile[i] })

	for _, p := range g.Players {
		start := len(pile) - state.HandTarget
		p.Hand = append([]domain.Card(nil), pile[start:]...)
		pile = pile[:start]
	}
	g.DrawPile = pile

	for _, m := range g.Board.MerchantLocs {
		if m.Tile != nil && len(m.Tile.Industries) > 0 {
			m.HasBeer = true
		}
	}
}

// tutorialScoring 是教学短局的终局加成：每 £4 换 1 分（至多 15 分），
// 收入等级按正负直接折分，然后把翻面工业再计一轮分。
func (c *Controller) tutorialScoring(ctx context.Context, g *state.Game) error {
	for _, p := range g.Players {
		bonus := p.Money / 4
		if bonus > 15 {
			bonus = 15
		}
		p.IncreaseVictoryPoints(bonus)
		if p.Income >= 0 {
			p.IncreaseVictoryPoints(p.Income)
		} else {
			p.DecreaseVictoryPoints(-p.Income)
		}
	}
	return scoring.ScoreIndustries(ctx, c.env, g)
}
