package actions

import (
	"context"
	"strings"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/sourcing"
	"Brassworks/internal/engine/state"
)

const (
	canalLinkCost = 3
	railLinkCost  = 5
	railLinkCoal  = 1
)

// BuildLink 修一条运输连接：运河时代 £3，铁路时代 £5 外加一枚煤。
// 已建立网络的玩家只能接着自己的网络修；白板玩家哪里都能修。
func BuildLink(ctx context.Context, env *port.Env, g *state.Game, player int) error {
	p := g.Players[player]

	coins := canalLinkCost
	if g.Era == domain.EraRail {
		coins = railLinkCost
	}
	if p.LinksRemaining == 0 || len(p.Hand) == 0 || !p.CanAfford(coins) {
		return illegal("build_link")
	}

	open := openLinkLocs(env, g, player)
	if len(open) == 0 {
		return illegal("build_link")
	}

	cands := make([]port.Choice, len(open))
	for i, loc := range open {
		cands[i] = port.Choice{ID: loc.ID, Label: linkLabel(loc)}
	}
	got, err := env.Surface.OfferChoice(ctx, player, cands, port.ChoiceOptions{
		Message: "Click on a link to build",
	})
	if err != nil {
		return err
	}
	loc := g.Board.LinkLocByID(got.ID)

	if err := discardAnyCard(ctx, env, g, player, "Discard any card"); err != nil {
		return err
	}

	p.SpendMoney(coins)
	if err := g.Board.PlaceLink(loc, player); err != nil {
		return err
	}
	p.LinksRemaining--
	env.Notify.Set("%s builds a link at %s for £%d", p.Name, linkLabel(loc), coins)

	// 铁路连接的煤以该连接两端为锚点就近取用；先落子再取煤，
	// 新连接本身就算进运输网络。
	if g.Era == domain.EraRail {
		sources := env.Query.DistanceOrderedSources(g, loc.Cities, domain.ResourceCoal, player)
		if err := sourcing.Consume(ctx, env, g, player, domain.ResourceCoal, railLinkCoal, sources, g.CoalMarket); err != nil {
			return err
		}
	}
	return env.Delay.Beat(ctx)
}

// openLinkLocs 返回当前时代可用、未被占用且本玩家可达的连接格位。
func openLinkLocs(env *port.Env, g *state.Game, player int) []*domain.LinkLoc {
	hasNetwork := len(g.Board.BuiltLinks(player)) > 0 || len(g.Board.BuiltIndustries(player)) > 0
	var open []*domain.LinkLoc
	for _, loc := range g.Board.LinkLocs {
		if loc.Occupant != "" || !loc.UsableIn(g.Era) {
			continue
		}
		if hasNetwork && !anyCityReachable(env, g, loc.Cities, player) {
			continue
		}
		open = append(open, loc)
	}
	return open
}

func anyCityReachable(env *port.Env, g *state.Game, cities []domain.City, player int) bool {
	for _, c := range cities {
		if env.Query.IsReachableFromNetwork(g, c, player) {
			return true
		}
	}
	return false
}

func linkLabel(loc *domain.LinkLoc) string {
	parts := make([]string, len(loc.Cities))
	for i, c := range loc.Cities {
		parts[i] = string(c)
	}
	return strings.Join(parts, "-")
}
