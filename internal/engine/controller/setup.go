package controller

import (
	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/state"
)

// 开局资金与收入等级。
const (
	startingMoney  = 17
	startingIncome = 10
)

// Setup 把一局从裸结构铺到可以开打：洗牌、烧牌、发牌、铺外销市场、
// 随机顺位。所有随机性都走控制器自己的 rng，种子固定时整局可复现。
func (c *Controller) Setup(g *state.Game) {
	for _, p := range g.Players {
		p.Money = startingMoney
		p.Income = startingIncome
	}

	pile := state.BuildDrawPile(g.Data, len(g.Players))
	c.rng.Shuffle(len(pile), func(i, j int) { pile[i], pile[j] = pile[j], pile[i] })

	// 每人烧掉一张盖进弃牌堆，再各发八张。
	for _, p := range g.Players {
		p.Discard = append(p.Discard, pile[len(pile)-1])
		pile = pile[:len(pile)-1]
	}
	for _, p := range g.Players {
		start := len(pile) - state.HandTarget
		p.Hand = append([]domain.Card(nil), pile[start:]...)
		pile = pile[:start]
	}
	g.DrawPile = pile

	// 万能牌堆：两种各一张每人。
	for range g.Players {
		g.WildLocationPile = append(g.WildLocationPile, domain.Card{City: domain.AnyCity, Wild: true})
		g.WildIndustryPile = append(g.WildIndustryPile, domain.Card{Wild: true})
	}

	c.placeMerchantTiles(g)

	c.rng.Shuffle(len(g.TurnOrder), func(i, j int) {
		g.TurnOrder[i], g.TurnOrder[j] = g.TurnOrder[j], g.TurnOrder[i]
	})
}

// placeMerchantTiles 把外销市场板块洗乱铺上市场位；有货的板块配一枚啤酒。
func (c *Controller) placeMerchantTiles(g *state.Game) {
	var tiles []*domain.MerchantTilePlacement
	for _, spec := range g.Data.MerchantTiles {
		if spec.MinPlayers > len(g.Players) {
			continue
		}
		t := &domain.MerchantTilePlacement{}
		for _, ind := range spec.Industries {
			t.Industries = append(t.Industries, domain.Industry(ind))
		}
		tiles = append(tiles, t)
	}
	c.rng.Shuffle(len(tiles), func(i, j int) { tiles[i], tiles[j] = tiles[j], tiles[i] })

	for i, m := range g.Board.MerchantLocs {
		if i >= len(tiles) {
			break
		}
		m.Tile = tiles[i]
		m.HasBeer = len(tiles[i].Industries) > 0
	}
}
