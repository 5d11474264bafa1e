package controller

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"Brassworks/internal/engine/actions"
	"Brassworks/internal/engine/arbiter"
	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/scoring"
	"Brassworks/internal/engine/state"
	"Brassworks/modules/kit/logx"
	"Brassworks/modules/kit/tracex"
)

// 控制器推动一局从开局走到终局：
//
//	Setup → 回合开始 → (每名玩家) 回合快照 → 行动槽循环 → 补牌
//	     → 轮次结束（重排顺位）→ … → 时代结束（计分/换代）→ 终局
//
// 行动槽循环里每个槽先拍行动快照再竞速：RESOLVED 接管胜出副本推进，
// RESTART_ACTION 回滚行动快照重来本槽，RESTART_TURN 回滚回合快照从
// 第 0 槽重来。快照都是值语义深拷贝，回滚不可能观察到半截效果。

type Config struct {
	// Seed 为 0 时用随机种子。
	Seed     int64
	Tutorial bool
}

type Controller struct {
	env      *port.Env
	rng      *rand.Rand
	tutorial bool
}

// Score 是终局名次表里的一行。
type Score struct {
	Player        int    `json:"player"`
	Name          string `json:"name"`
	VictoryPoints int    `json:"victory_points"`
}

func New(env *port.Env, cfg Config) *Controller {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	return &Controller{
		env:      env,
		rng:      rand.New(rand.NewSource(seed)),
		tutorial: cfg.Tutorial,
	}
}

// Run 跑完一整局，返回终局状态和按席位排列的最终得分。
// 传入的状态会被 Setup 就地初始化；之后控制器持有正典状态，
// 行动竞速的胜出副本逐次接管它。
func (c *Controller) Run(ctx context.Context, g *state.Game) (*state.Game, []Score, error) {
	c.Setup(g)
	ctx = tracex.WithGameID(ctx, g.ID)
	log := c.env.Log.WithContext(ctx)
	log.Info("game started",
		zap.Int("players", len(g.Players)),
		zap.Bool("tutorial", c.tutorial))

	roundsPlayed := 0
	for {
		// 一个时代里的轮次循环。
		for {
			// 对局的第一轮不发收入。
			if roundsPlayed > 0 {
				for _, idx := range g.TurnOrder {
					if err := c.grantIncome(ctx, g, idx); err != nil {
						return nil, nil, c.fail(ctx, err)
					}
				}
			}

			for turn := 0; turn < len(g.TurnOrder); turn++ {
				g.Turn = turn
				g.Action = 0
				next, err := c.playTurn(ctx, g)
				if err != nil {
					return nil, nil, c.fail(ctx, err)
				}
				g = next
				c.refillHand(g, g.TurnOrder[turn])
			}

			g.FirstRound = false
			c.reorderBySpent(g)
			for _, p := range g.Players {
				p.Spent = 0
			}
			roundsPlayed++
			log.Debug("round finished", zap.Int("rounds_played", roundsPlayed))

			if allHandsEmpty(g) {
				break
			}
		}

		// 时代结束：连接与工业计分。
		if err := scoring.Run(ctx, c.env, g); err != nil {
			return nil, nil, c.fail(ctx, err)
		}
		if g.Era == domain.EraRail {
			break
		}
		over, err := c.settleCanalEra(ctx, g)
		if err != nil {
			return nil, nil, c.fail(ctx, err)
		}
		if over {
			break
		}
		log.Info("rail era started")
	}

	scores := finalScores(g)
	log.Info("game finished", zap.Any("scores", scores))
	return g, scores, nil
}

// playTurn 跑完当前玩家的全部行动槽，返回推进后的正典状态。
func (c *Controller) playTurn(ctx context.Context, g *state.Game) (*state.Game, error) {
	player := g.TurnOrder[g.Turn]
	ctx = tracex.WithTurn(ctx, int(g.Era), g.Turn)
	ctx = tracex.WithPlayer(ctx, player)

	turnSnap := g.Clone()
	for g.Action < g.ActionsPerTurn() {
		// 手牌打光的玩家没有合法行动（每个行动都要弃牌），直接让过。
		if len(g.Players[player].Hand) == 0 {
			c.env.Notify.Set("%s has no cards and passes", g.Players[player].Name)
			break
		}
		actionSnap := g.Clone()
		c.env.Notify.Set("%s, choose an action", g.Players[player].Name)

		res, merged, err := arbiter.PlayerAction(ctx, c.env, g, player, actions.Candidates())
		if err != nil {
			return nil, err
		}
		switch res {
		case arbiter.Resolved:
			g = merged
			g.Action++
		case arbiter.RestartAction:
			g = actionSnap
		case arbiter.RestartTurn:
			g = turnSnap.Clone()
		}
	}
	return g, nil
}

// fail 在致命错误向上抛之前把完整错误报告打一次，携带对局定位字段。
func (c *Controller) fail(ctx context.Context, err error) error {
	logx.LogFatalError(c.env.Log.WithContext(ctx), "game aborted", err)
	return err
}

// refillHand 从牌库补牌：每回合最多补两张，手牌补到八张为止。
func (c *Controller) refillHand(g *state.Game, player int) {
	p := g.Players[player]
	for drawn := 0; drawn < state.RefillPerTurn && len(p.Hand) < state.HandTarget; drawn++ {
		if len(g.DrawPile) == 0 {
			return
		}
		card := g.DrawPile[len(g.DrawPile)-1]
		g.DrawPile = g.DrawPile[:len(g.DrawPile)-1]
		p.Hand = append(p.Hand, card)
	}
}

// reorderBySpent 按本轮花费升序重排顺位：相邻冒泡直到一整趟无交换，
// 花费相同的保持原有先后。
func (c *Controller) reorderBySpent(g *state.Game) {
	order := g.TurnOrder
	for swapped := true; swapped; {
		swapped = false
		for i := 0; i+1 < len(order); i++ {
			if g.Players[order[i]].Spent > g.Players[order[i+1]].Spent {
				order[i], order[i+1] = order[i+1], order[i]
				swapped = true
			}
		}
	}
}

func allHandsEmpty(g *state.Game) bool {
	for _, p := range g.Players {
		if len(p.Hand) > 0 {
			return false
		}
	}
	return true
}

func finalScores(g *state.Game) []Score {
	scores := make([]Score, len(g.Players))
	for i, p := range g.Players {
		scores[i] = Score{Player: i, Name: p.Name, VictoryPoints: p.VictoryPoints}
	}
	return scores
}
