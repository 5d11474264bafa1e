package controller

import (
	"context"
	"fmt"

	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/state"
)

// grantIncome 给一名玩家发收入。收入为负把钱打穿零时进入抵债流程：
// 还有建成板块就让玩家挑一块卖掉（按级别造价退款），一块都不剩就
// 按剩余亏空扣分并清账。每一圈都少一件资产或清掉亏空，必然终止。
func (c *Controller) grantIncome(ctx context.Context, g *state.Game, player int) error {
	p := g.Players[player]
	p.Money += p.Income
	if p.Income != 0 {
		c.env.Notify.Add("%s collects £%d income", p.Name, p.Income)
	}

	for p.Money < 0 {
		assets := g.Board.BuiltIndustries(player)
		if len(assets) == 0 {
			deficit := -p.Money
			p.Money = 0
			p.DecreaseVictoryPoints(deficit)
			c.env.Notify.Add("%s is broke and forfeits %d victory points", p.Name, deficit)
			return nil
		}

		cands := make([]port.Choice, len(assets))
		for i, bi := range assets {
			cands[i] = port.Choice{
				ID:    bi.Loc.ID,
				Label: fmt.Sprintf("%s at %s (£%d)", bi.Tile.Industry, bi.Loc.City, bi.Tile.Data.Cost.Coins),
			}
		}
		got, err := c.env.Surface.OfferChoice(ctx, player, cands, port.ChoiceOptions{
			Message:             fmt.Sprintf("%s owes £%d, sell a tile", p.Name, -p.Money),
			AutoResolveIfSingle: true,
		})
		if err != nil {
			return err
		}

		loc := g.Board.IndustryLocByID(got.ID)
		tile := g.Board.Tiles[loc.Occupant]
		p.Money += tile.Data.Cost.Coins
		g.Board.RemoveIndustryAt(loc)
		c.env.Notify.Add("%s sells their %s at %s for £%d",
			p.Name, tile.Industry, loc.City, tile.Data.Cost.Coins)
		if err := c.env.Delay.Short(ctx); err != nil {
			return err
		}
	}
	return nil
}
