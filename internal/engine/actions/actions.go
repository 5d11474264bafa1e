package actions

import (
	"context"
	"strconv"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/state"
	"Brassworks/modules/kit/errx"
)

// 行动集合是封闭的。每次行动把全部候选交给仲裁器同场竞争：
// 交互发生前就能判定非法的候选直接出局，不打扰玩家；第一次被应答的
// 交互决定胜者。所有候选都跑在各自的推演副本上，失败副本整体丢弃，
// 所以过程里可以放心地边走边改状态。

// Proc 是一个行动候选的执行体。返回 nil 表示行动完成，
// ErrIllegalMove 表示该候选在当前状态下不可用。
type Proc func(ctx context.Context, env *port.Env, g *state.Game, player int) error

type Kind int

const (
	KindBuildIndustry Kind = iota
	KindBuildLink
	KindTakeLoan
	KindScout
	KindDevelop
	KindSell
	KindDrainCoal
	KindDrainIron
)

func (k Kind) String() string {
	switch k {
	case KindBuildIndustry:
		return "build_industry"
	case KindBuildLink:
		return "build_link"
	case KindTakeLoan:
		return "take_loan"
	case KindScout:
		return "scout"
	case KindDevelop:
		return "develop"
	case KindSell:
		return "sell"
	case KindDrainCoal:
		return "drain_coal"
	case KindDrainIron:
		return "drain_iron"
	}
	return "unknown"
}

type Candidate struct {
	Kind Kind
	Run  Proc
}

// Candidates 返回一名玩家一次行动的全部候选分支，顺序固定。
func Candidates() []Candidate {
	return []Candidate{
		{KindBuildIndustry, BuildIndustry},
		{KindBuildLink, BuildLink},
		{KindTakeLoan, TakeLoan},
		{KindScout, Scout},
		{KindDevelop, Develop},
		{KindSell, Sell},
		{KindDrainCoal, drainProc(domain.ResourceCoal)},
		{KindDrainIron, drainProc(domain.ResourceIron)},
	}
}

func illegal(action string) error {
	return errx.ErrIllegalMove.WithData("action", action)
}

// chooseHandCard 让玩家在给定下标的手牌中挑一张，返回手牌下标。
func chooseHandCard(ctx context.Context, env *port.Env, g *state.Game, player int,
	message string, eligible []int) (int, error) {

	p := g.Players[player]
	cands := make([]port.Choice, len(eligible))
	for i, idx := range eligible {
		cands[i] = port.Choice{ID: strconv.Itoa(idx), Label: p.Hand[idx].Label()}
	}
	got, err := env.Surface.OfferChoice(ctx, player, cands, port.ChoiceOptions{Message: message})
	if err != nil {
		return 0, err
	}
	idx, err := strconv.Atoi(got.ID)
	if err != nil {
		return 0, errx.ErrInternal.WithData("choice", got.ID).WithCause(err)
	}
	return idx, nil
}

// discardAnyCard 让玩家任选一张手牌弃掉。
func discardAnyCard(ctx context.Context, env *port.Env, g *state.Game, player int, message string) error {
	p := g.Players[player]
	eligible := make([]int, len(p.Hand))
	for i := range p.Hand {
		eligible[i] = i
	}
	idx, err := chooseHandCard(ctx, env, g, player, message, eligible)
	if err != nil {
		return err
	}
	c := p.RemoveHandCard(idx)
	env.Notify.Add("%s discards %s", p.Name, c.Label())
	return nil
}
