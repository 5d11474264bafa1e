package actions

import (
	"context"

	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/state"
)

const scoutDiscards = 3

// Scout 侦察：弃三张手牌，换一张万能地点牌和一张万能工业牌。
// 手上已有万能牌、手牌不足三张或万能牌堆耗尽时不可用。
func Scout(ctx context.Context, env *port.Env, g *state.Game, player int) error {
	p := g.Players[player]
	if len(p.Hand) < scoutDiscards || p.HasWildCard() {
		return illegal("scout")
	}
	if len(g.WildLocationPile) == 0 || len(g.WildIndustryPile) == 0 {
		return illegal("scout")
	}

	for i := 0; i < scoutDiscards; i++ {
		if err := discardAnyCard(ctx, env, g, player, "Discard three cards"); err != nil {
			return err
		}
	}

	wildLoc := g.WildLocationPile[len(g.WildLocationPile)-1]
	g.WildLocationPile = g.WildLocationPile[:len(g.WildLocationPile)-1]
	wildInd := g.WildIndustryPile[len(g.WildIndustryPile)-1]
	g.WildIndustryPile = g.WildIndustryPile[:len(g.WildIndustryPile)-1]
	p.Hand = append(p.Hand, wildLoc, wildInd)

	env.Notify.Set("%s scouts, taking both wild cards", p.Name)
	return env.Delay.Beat(ctx)
}
