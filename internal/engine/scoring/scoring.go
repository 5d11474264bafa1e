package scoring

import (
	"context"

	"go.uber.org/zap"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/state"
	"Brassworks/modules/kit/errx"
)

// 时代结束计分：先连接、后工业，两个阶段共用同一条遍历策略——
// 永远先服务当前分数最低、手里还有未计分项的玩家，同分时按当前回合
// 顺序从后往前取（落后者优先），玩家内部先计最值钱的一项；每计一笔
// 重新评估最低者。

// Run 按顺序跑完两个阶段。
func Run(ctx context.Context, env *port.Env, g *state.Game) error {
	if err := ScoreLinks(ctx, env, g); err != nil {
		return err
	}
	return ScoreIndustries(ctx, env, g)
}

// lowestPlayer 在回合顺序上倒着扫，严格小于才替换：同分时后位胜出。
func lowestPlayer(g *state.Game, hasItems func(player int) bool) (int, bool) {
	best := -1
	for i := len(g.TurnOrder) - 1; i >= 0; i-- {
		p := g.TurnOrder[i]
		if !hasItems(p) {
			continue
		}
		if best < 0 || g.Players[p].VictoryPoints < g.Players[best].VictoryPoints {
			best = p
		}
	}
	return best, best >= 0
}

// ScoreLinks 给所有建成连接计分并将其移出棋盘（0 分也要移除）。
func ScoreLinks(ctx context.Context, env *port.Env, g *state.Game) error {
	// 预计算每个已建连接位的分值：两端城市连接分之和。
	for _, loc := range g.Board.LinkLocs {
		if loc.Occupant == "" {
			continue
		}
		sum := 0
		for _, city := range loc.Cities {
			sum += env.Query.LinkPoints(g, city)
		}
		loc.ScoredLinkPoints = sum
	}

	for {
		player, ok := lowestPlayer(g, func(p int) bool {
			return len(g.Board.BuiltLinks(p)) > 0
		})
		if !ok {
			break
		}

		// 玩家已建连接中价值最高的一条；同值取地点顺序靠前的。
		var link *domain.LinkLoc
		for _, l := range g.Board.BuiltLinks(player) {
			if link == nil || l.ScoredLinkPoints > link.ScoredLinkPoints {
				link = l
			}
		}

		points := link.ScoredLinkPoints
		if points > 0 {
			env.Notify.Set("%s scores %d points for their link at %s",
				g.Players[player].Name, points, link.ID)
			if err := env.Delay.Beat(ctx); err != nil {
				return err
			}
			g.Players[player].IncreaseVictoryPoints(points)
			if err := env.Delay.Beat(ctx); err != nil {
				return err
			}
		}
		env.Log.WithContext(ctx).Info("link scored",
			zap.Int("player", player), zap.String("location", link.ID), zap.Int("points", points))

		g.Board.RemoveLinkAt(link)
		g.Players[player].LinksRemaining++
	}
	return nil
}

// ScoreIndustries 给所有已翻面的建成工业计分；板块留在棋盘上。
func ScoreIndustries(ctx context.Context, env *port.Env, g *state.Game) error {
	// 阶段开始：所有已翻面板块进入未计分集合。
	unscored := make(map[int][]*domain.IndustryTile, len(g.Players))
	for _, p := range g.Players {
		for _, bi := range g.Board.BuiltIndustries(p.Index) {
			if bi.Tile.Flipped {
				bi.Tile.Scored = false
				unscored[p.Index] = append(unscored[p.Index], bi.Tile)
			}
		}
	}

	for {
		player, ok := lowestPlayer(g, func(p int) bool {
			return len(unscored[p]) > 0
		})
		if !ok {
			break
		}

		// 奖励分最高的一块；同值取先登记的。
		tiles := unscored[player]
		best := 0
		for i := 1; i < len(tiles); i++ {
			if tiles[i].Data.Reward.VictoryPoints > tiles[best].Data.Reward.VictoryPoints {
				best = i
			}
		}
		tile := tiles[best]
		if tile.Scored {
			return errx.ErrRepeatedTransition.WithData("tile", tile.ID).
				WithData("phase", "industry-scoring")
		}
		tile.Scored = true
		unscored[player] = append(tiles[:best], tiles[best+1:]...)

		points := tile.Data.Reward.VictoryPoints
		env.Notify.Set("%s scores %d points for their %s",
			g.Players[player].Name, points, tile.Industry)
		if err := env.Delay.Beat(ctx); err != nil {
			return err
		}
		g.Players[player].IncreaseVictoryPoints(points)
		if err := env.Delay.Beat(ctx); err != nil {
			return err
		}
		env.Log.WithContext(ctx).Info("industry scored",
			zap.Int("player", player), zap.String("tile", tile.ID), zap.Int("points", points))
	}
	return nil
}
