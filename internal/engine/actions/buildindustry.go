package actions

import (
	"context"
	"fmt"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/sourcing"
	"Brassworks/internal/engine/state"
	"Brassworks/internal/shared/gamedata"
	"Brassworks/modules/kit/errx"
)

// buildOption 是一个完全合法的建造组合：某张手牌授权在某格位建某工业，
// 级别总是面板上剩余的最低一级。
type buildOption struct {
	cardIdx  int
	loc      *domain.IndustryLoc
	industry domain.Industry
	level    gamedata.IndustryLevel
}

// BuildIndustry 建一块工业板块：先挑授权牌，再挑格位和工业，付钱、
// 取料、落子、弃牌。城市牌直建所在城市；工业牌要求格位接在自己的
// 网络上（还没建立网络时不限）。
func BuildIndustry(ctx context.Context, env *port.Env, g *state.Game, player int) error {
	p := g.Players[player]
	if len(p.Hand) == 0 {
		return illegal("build_industry")
	}

	options := buildOptions(env, g, player)
	if len(options) == 0 {
		return illegal("build_industry")
	}

	// 第一次交互：在所有能促成至少一个组合的手牌里挑一张。
	cardIdx, err := chooseHandCard(ctx, env, g, player, "Choose a card to build with", cardIndices(options))
	if err != nil {
		return err
	}

	var forCard []buildOption
	for _, o := range options {
		if o.cardIdx == cardIdx {
			forCard = append(forCard, o)
		}
	}

	locIDs := make([]string, 0, len(forCard))
	locSeen := make(map[string]bool)
	for _, o := range forCard {
		if !locSeen[o.loc.ID] {
			locSeen[o.loc.ID] = true
			locIDs = append(locIDs, o.loc.ID)
		}
	}
	locCands := make([]port.Choice, len(locIDs))
	for i, id := range locIDs {
		loc := g.Board.IndustryLocByID(id)
		locCands[i] = port.Choice{ID: id, Label: string(loc.City)}
	}
	locGot, err := env.Surface.OfferChoice(ctx, player, locCands, port.ChoiceOptions{
		Message:             "Click on a location to build",
		AutoResolveIfSingle: true,
	})
	if err != nil {
		return err
	}

	var atLoc []buildOption
	for _, o := range forCard {
		if o.loc.ID == locGot.ID {
			atLoc = append(atLoc, o)
		}
	}
	indCands := make([]port.Choice, len(atLoc))
	for i, o := range atLoc {
		indCands[i] = port.Choice{
			ID:    string(o.industry),
			Label: fmt.Sprintf("%s (level %d)", o.industry, o.level.Level),
		}
	}
	indGot, err := env.Surface.OfferChoice(ctx, player, indCands, port.ChoiceOptions{
		Message:             "Choose an industry",
		AutoResolveIfSingle: true,
	})
	if err != nil {
		return err
	}

	var picked buildOption
	for _, o := range atLoc {
		if string(o.industry) == indGot.ID {
			picked = o
			break
		}
	}

	p.SpendMoney(picked.level.Cost.Coins)
	if picked.level.Cost.Coal > 0 {
		sources := env.Query.DistanceOrderedSources(g, []domain.City{picked.loc.City}, domain.ResourceCoal, player)
		if err := sourcing.Consume(ctx, env, g, player, domain.ResourceCoal, picked.level.Cost.Coal, sources, g.CoalMarket); err != nil {
			return err
		}
	}
	if picked.level.Cost.Iron > 0 {
		sources := env.Query.DistanceOrderedSources(g, nil, domain.ResourceIron, player)
		if err := sourcing.Consume(ctx, env, g, player, domain.ResourceIron, picked.level.Cost.Iron, sources, g.IronMarket); err != nil {
			return err
		}
	}

	if _, ok := p.TakeMatTile(picked.industry); !ok {
		return errx.ErrInternal.WithData("industry", string(picked.industry))
	}
	tile := g.Board.NewIndustryTile(player, picked.industry, picked.level, tileProduction(g.Era, picked.industry, picked.level))
	if err := g.Board.PlaceIndustry(picked.loc, tile); err != nil {
		return err
	}
	if err := sellOverproduction(env, g, player, tile); err != nil {
		return err
	}
	p.RemoveHandCard(cardIdx)

	env.Notify.Set("%s builds a level %d %s at %s for £%d",
		p.Name, picked.level.Level, picked.industry, picked.loc.City, picked.level.Cost.Coins)
	return env.Delay.Beat(ctx)
}

// sellOverproduction 煤/铁矿建成时把产出立刻卖进对应市场的空位换钱，
// 市场放不下的留在板块上。全部卖光的板块当场走翻面结算。
func sellOverproduction(env *port.Env, g *state.Game, player int, tile *domain.IndustryTile) error {
	var market *domain.Market
	switch tile.Industry {
	case domain.IndustryCoal:
		market = g.CoalMarket
	case domain.IndustryIron:
		market = g.IronMarket
	default:
		return nil
	}
	if market == nil {
		return nil
	}
	n := market.Capacity - market.Count
	if n > tile.Resources {
		n = tile.Resources
	}
	if n <= 0 {
		return nil
	}
	coins := market.SellInto(n)
	p := g.Players[player]
	p.Money += coins
	for i := 0; i < n; i++ {
		if err := tile.ConsumeResource(p); err != nil {
			return err
		}
	}
	env.Notify.Add("%s sells %d %s to the market for £%d", p.Name, n, tile.Industry, coins)
	return nil
}

// buildOptions 枚举交互前就完全确定合法的 (牌, 格位, 工业) 组合。
func buildOptions(env *port.Env, g *state.Game, player int) []buildOption {
	p := g.Players[player]
	hasNetwork := len(g.Board.BuiltLinks(player)) > 0 || len(g.Board.BuiltIndustries(player)) > 0

	var out []buildOption
	for _, loc := range g.Board.IndustryLocs {
		if loc.Occupant != "" {
			continue
		}
		reachable := !hasNetwork || env.Query.IsReachableFromNetwork(g, loc.City, player)
		for _, ind := range loc.Industries {
			stock, ok := p.LowestStock(ind)
			if !ok {
				continue
			}
			lv, ok := g.LevelData(ind, stock.Level)
			if !ok || !levelUsableIn(lv, g.Era) || !p.CanAfford(lv.Cost.Coins) {
				continue
			}
			for i, c := range p.Hand {
				if !c.Matches(loc.City, ind) {
					continue
				}
				// 城市牌（含万能地点牌）不要求网络连通；工业牌要求。
				if !c.IsCity() && !reachable {
					continue
				}
				out = append(out, buildOption{cardIdx: i, loc: loc, industry: ind, level: lv})
			}
		}
	}
	return out
}

func levelUsableIn(lv gamedata.IndustryLevel, era domain.Era) bool {
	if lv.CanalOnly && era != domain.EraCanal {
		return false
	}
	if lv.RailOnly && era != domain.EraRail {
		return false
	}
	return true
}

// tileProduction 返回建成时放上板块的资源数。酒厂产量按时代固定，
// 煤/铁矿按级别数据，其余工业不带资源池。
func tileProduction(era domain.Era, industry domain.Industry, lv gamedata.IndustryLevel) int {
	switch industry {
	case domain.IndustryCoal, domain.IndustryIron:
		return lv.Production
	case domain.IndustryBrewery:
		if era == domain.EraRail {
			return state.BreweryRailOutput
		}
		return state.BreweryCanalOutput
	}
	return 0
}

func cardIndices(options []buildOption) []int {
	var out []int
	seen := make(map[int]bool)
	for _, o := range options {
		if !seen[o.cardIdx] {
			seen[o.cardIdx] = true
			out = append(out, o.cardIdx)
		}
	}
	return out
}
