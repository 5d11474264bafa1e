package controller

import (
	"bytes"
	"context"
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"Brassworks/internal/engine/arbiter"
	"Brassworks/internal/engine/boardgeo"
	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/state"
	"Brassworks/internal/engine/surface"
	"Brassworks/internal/shared/gamedata"
	"Brassworks/modules/kit/errx"
	"Brassworks/modules/kit/logx"
)

func testData() *gamedata.Data {
	return &gamedata.Data{
		Industries: map[string][]gamedata.IndustryLevel{
			"coal": {
				{Level: 1, Count: 2, Cost: gamedata.CostSpec{Coins: 5},
					Reward: gamedata.RewardSpec{VictoryPoints: 1, LinkPoints: 2, Income: 4}, Production: 2, CanalOnly: true},
				{Level: 2, Count: 2, Cost: gamedata.CostSpec{Coins: 7},
					Reward: gamedata.RewardSpec{VictoryPoints: 2, LinkPoints: 1, Income: 7}, Production: 3},
			},
			"brewery": {
				{Level: 1, Count: 2, Cost: gamedata.CostSpec{Coins: 5},
					Reward: gamedata.RewardSpec{VictoryPoints: 4, LinkPoints: 2, Income: 4}},
			},
			"cotton": {
				{Level: 1, Count: 3, Cost: gamedata.CostSpec{Coins: 12},
					Reward: gamedata.RewardSpec{VictoryPoints: 5, LinkPoints: 1, Income: 5}, SaleBeerCost: 1},
			},
		},
		IndustryLocations: []gamedata.IndustryLocation{
			{ID: "L1", City: "stone", Industries: []string{"coal", "brewery"}},
			{ID: "L2", City: "derby", Industries: []string{"cotton", "brewery"}},
			{ID: "L3", City: "leek", Industries: []string{"cotton", "coal"}},
		},
		LinkLocations: []gamedata.LinkLocation{
			{ID: "K1", Cities: []string{"stone", "derby"}, Canal: true, Rail: true},
			{ID: "K2", Cities: []string{"derby", "leek"}, Canal: true, Rail: true},
		},
		Merchants: []gamedata.MerchantSpec{
			{ID: "M1", City: "leek", MinPlayers: 2, BeerReward: "coins5"},
		},
		MerchantTiles: []gamedata.MerchantTileSpec{
			{Industries: []string{"cotton"}, MinPlayers: 2},
		},
		Cards: []gamedata.CardSpec{
			{City: "stone", Counts: []int{10, 12, 14}},
			{City: "derby", Counts: []int{10, 12, 14}},
		},
		Markets: map[string]gamedata.MarketSpec{
			"coal": {InitialCount: 4, Capacity: 6, Prices: []int{4, 3, 3, 2, 2, 1, 1}},
			"iron": {InitialCount: 2, Capacity: 4, Prices: []int{6, 5, 4, 3, 2}},
		},
	}
}

func testEnv(s port.Surface) *port.Env {
	return &port.Env{
		Surface: s,
		Notify:  port.NopNotifier{},
		Query:   boardgeo.New(),
		Delay:   port.NopDelayer{},
		Log:     logx.NewNop(),
	}
}

func TestSetup_固定种子整局可复现(t *testing.T) {
	build := func() *state.Game {
		g := state.NewGame(testData(), []string{"alice", "bob"})
		New(testEnv(&surface.PolicySurface{}), Config{Seed: 7}).Setup(g)
		return g
	}
	a, b := build(), build()

	for i, p := range a.Players {
		if len(p.Hand) != state.HandTarget || len(p.Discard) != 1 {
			t.Fatalf("玩家 %d 发牌错误: hand=%d discard=%d", i, len(p.Hand), len(p.Discard))
		}
		if p.Money != startingMoney || p.Income != startingIncome {
			t.Fatalf("玩家 %d 开局经济错误: %+v", i, p)
		}
		if !reflect.DeepEqual(p.Hand, b.Players[i].Hand) {
			t.Fatal("同种子的发牌应一致")
		}
	}
	if !reflect.DeepEqual(a.TurnOrder, b.TurnOrder) {
		t.Fatal("同种子的顺位应一致")
	}
	if len(a.WildLocationPile) != 2 || len(a.WildIndustryPile) != 2 {
		t.Fatal("万能牌堆应每人一张")
	}
	m := a.Board.MerchantLocByID("M1")
	if m.Tile == nil || !m.HasBeer {
		t.Fatalf("外销市场应铺板块并配啤酒: %+v", m)
	}
}

func TestReorderBySpent_升序重排且花费相同保持原顺序(t *testing.T) {
	g := state.NewGame(testData(), []string{"a", "b", "c", "d"})
	c := New(testEnv(&surface.PolicySurface{}), Config{Seed: 1})

	g.TurnOrder = []int{3, 0, 1, 2}
	g.Players[3].Spent = 9
	g.Players[0].Spent = 4
	g.Players[1].Spent = 4
	g.Players[2].Spent = 1

	c.reorderBySpent(g)
	// 2 最便宜；0 和 1 同价保持 0 在前；3 最贵垫底。
	if want := []int{2, 0, 1, 3}; !reflect.DeepEqual(g.TurnOrder, want) {
		t.Fatalf("重排错误: %v", g.TurnOrder)
	}
}

func TestRefillHand_每回合至多两张补到八张(t *testing.T) {
	g := state.NewGame(testData(), []string{"alice", "bob"})
	c := New(testEnv(&surface.PolicySurface{}), Config{Seed: 1})
	g.DrawPile = []domain.Card{{City: "stone"}, {City: "stone"}, {City: "stone"}}

	p := g.Players[0]
	p.Hand = make([]domain.Card, 7)
	c.refillHand(g, 0)
	if len(p.Hand) != 8 || len(g.DrawPile) != 2 {
		t.Fatalf("只该补到八张: hand=%d pile=%d", len(p.Hand), len(g.DrawPile))
	}

	p.Hand = p.Hand[:4]
	c.refillHand(g, 0)
	if len(p.Hand) != 6 || len(g.DrawPile) != 0 {
		t.Fatalf("每回合至多两张: hand=%d pile=%d", len(p.Hand), len(g.DrawPile))
	}
}

func TestGrantIncome_欠债先卖资产再扣分(t *testing.T) {
	g := state.NewGame(testData(), []string{"alice", "bob"})
	c := New(testEnv(&surface.PolicySurface{}), Config{Seed: 1})
	p := g.Players[0]
	p.Money, p.Income, p.VictoryPoints = 1, -8, 10

	// 一块值 £5 的煤矿可卖。
	lv, _ := g.LevelData("coal", 1)
	tile := g.Board.NewIndustryTile(0, "coal", lv, 0)
	if err := g.Board.PlaceIndustry(g.Board.IndustryLocByID("L1"), tile); err != nil {
		t.Fatal(err)
	}

	if err := c.grantIncome(context.Background(), g, 0); err != nil {
		t.Fatal(err)
	}
	// 1 - 8 = -7，卖掉煤矿 +5 仍欠 2，扣 2 分清账。
	if p.Money != 0 {
		t.Fatalf("欠债应清零: %d", p.Money)
	}
	if p.VictoryPoints != 8 {
		t.Fatalf("应扣 2 分: %d", p.VictoryPoints)
	}
	if g.Board.IndustryLocByID("L1").Occupant != "" {
		t.Fatal("资产应被卖掉")
	}
}

func TestGrantIncome_随机亏空必然清零终止(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		g := state.NewGame(testData(), []string{"alice", "bob"})
		c := New(testEnv(&surface.PolicySurface{}), Config{Seed: 1})
		p := g.Players[0]
		p.Money = rng.Intn(5)
		p.Income = -(rng.Intn(10) + 1)
		p.VictoryPoints = rng.Intn(20)

		// 随机铺 0 到 3 块资产。
		locs := []string{"L1", "L2", "L3"}
		inds := []domain.Industry{"coal", "cotton", "cotton"}
		for j := 0; j < rng.Intn(4); j++ {
			lv, _ := g.LevelData(inds[j], 1)
			tile := g.Board.NewIndustryTile(0, inds[j], lv, 0)
			if err := g.Board.PlaceIndustry(g.Board.IndustryLocByID(locs[j]), tile); err != nil {
				t.Fatal(err)
			}
		}

		if err := c.grantIncome(context.Background(), g, 0); err != nil {
			t.Fatal(err)
		}
		if p.Money < 0 {
			t.Fatalf("第 %d 次: 结束后仍欠债 %d", i, p.Money)
		}
		if p.VictoryPoints < 0 {
			t.Fatalf("第 %d 次: 分数为负", i)
		}
	}
}

func TestStartRailEra_手牌回收重发且市场啤酒复位(t *testing.T) {
	g := state.NewGame(testData(), []string{"alice", "bob"})
	c := New(testEnv(&surface.PolicySurface{}), Config{Seed: 3})
	c.Setup(g)

	// 模拟运河时代打完：手牌进了弃牌堆，还混进一张万能牌。
	for _, p := range g.Players {
		p.Discard = append(p.Discard, p.Hand...)
		p.Hand = nil
	}
	g.Players[0].Discard = append(g.Players[0].Discard, domain.Card{Wild: true})
	g.Players[1].Discard = append(g.Players[1].Discard, g.DrawPile...)
	g.DrawPile = nil
	m := g.Board.MerchantLocByID("M1")
	m.HasBeer = false

	c.startRailEra(g)

	if g.Era != domain.EraRail || !g.FirstRound {
		t.Fatalf("换代状态错误: era=%s first=%v", g.Era, g.FirstRound)
	}
	total := len(g.DrawPile)
	for _, p := range g.Players {
		if len(p.Hand) != state.HandTarget {
			t.Fatalf("应重发八张: %d", len(p.Hand))
		}
		if len(p.Discard) != 0 {
			t.Fatal("弃牌堆应清空")
		}
		total += len(p.Hand)
		for _, card := range p.Hand {
			if card.Wild {
				t.Fatal("万能牌不应回到牌库")
			}
		}
	}
	// 全部 20 张普通牌都应回流，万能牌回到万能牌堆等下一次侦察。
	if total != 20 {
		t.Fatalf("牌总数错误: %d", total)
	}
	if len(g.WildIndustryPile) != 3 {
		t.Fatalf("万能工业牌应回堆: %d", len(g.WildIndustryPile))
	}
	if !m.HasBeer {
		t.Fatal("外销市场啤酒应补回")
	}
}

func TestSettleCanalEra_先清一级板块再做教学加成(t *testing.T) {
	g := state.NewGame(testData(), []string{"alice", "bob"})
	c := New(testEnv(&surface.PolicySurface{}), Config{Seed: 1, Tutorial: true})
	for _, p := range g.Players {
		p.Money, p.Income = 0, 0
	}

	// 一级和二级煤矿都已翻面；教学加成的二次计分只该看到二级那块。
	lv1, _ := g.LevelData("coal", 1)
	t1 := g.Board.NewIndustryTile(0, "coal", lv1, 0)
	if err := g.Board.PlaceIndustry(g.Board.IndustryLocByID("L1"), t1); err != nil {
		t.Fatal(err)
	}
	lv2, _ := g.LevelData("coal", 2)
	t2 := g.Board.NewIndustryTile(0, "coal", lv2, 0)
	if err := g.Board.PlaceIndustry(g.Board.IndustryLocByID("L3"), t2); err != nil {
		t.Fatal(err)
	}
	t1.Flipped, t2.Flipped = true, true

	over, err := c.settleCanalEra(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if !over {
		t.Fatal("教学局应就此终局")
	}
	if g.Board.IndustryLocByID("L1").Occupant != "" {
		t.Fatal("一级板块应先被清场")
	}
	if got := g.Players[0].VictoryPoints; got != 2 {
		t.Fatalf("二次计分应只含二级煤矿: %d", got)
	}
}

// rollbackSurface 按模式放行交互：放行的当场应答，其余一律挂起等取消，
// 用来把行动竞速精确逼进指定的逃生分支。
//
// 模式流转：
//
//	detour       应答一次建工业的选牌，解锁重开行动 → armed
//	armed        放行重开行动点击 → resolve
//	resolve      放行贷款点击和它的弃牌应答，让贷款稳定胜出
//	resolve_once 同 resolve，但弃牌应答完转入 detour_turn
//	detour_turn  只放行重开回合点击 → resolve
type rollbackSurface struct {
	mu       sync.Mutex
	mode     string
	restarts []string
}

func (s *rollbackSurface) OfferChoice(ctx context.Context, player int, candidates []port.Choice, opts port.ChoiceOptions) (port.Choice, error) {
	s.mu.Lock()
	switch {
	case s.mode == "detour" && opts.Message == "Choose a card to build with":
		s.mode = "armed"
		s.mu.Unlock()
		return candidates[0], nil
	case (s.mode == "resolve" || s.mode == "resolve_once") && opts.Message == "Discard any card":
		if s.mode == "resolve_once" {
			s.mode = "detour_turn"
		}
		s.mu.Unlock()
		return candidates[0], nil
	}
	s.mu.Unlock()
	<-ctx.Done()
	return port.Choice{}, errx.ErrCancelled.WithCause(ctx.Err())
}

func (s *rollbackSurface) OfferClick(ctx context.Context, player int, control string) error {
	s.mu.Lock()
	allowed := false
	switch {
	case s.mode == "armed" && control == arbiter.ControlRestartAction:
		s.mode = "resolve"
		s.restarts = append(s.restarts, control)
		allowed = true
	case s.mode == "detour_turn" && control == arbiter.ControlRestartTurn:
		s.mode = "resolve"
		s.restarts = append(s.restarts, control)
		allowed = true
	case (s.mode == "resolve" || s.mode == "resolve_once") && control == "take_loan":
		allowed = true
	}
	s.mu.Unlock()
	if allowed {
		return nil
	}
	<-ctx.Done()
	return errx.ErrCancelled.WithCause(ctx.Err())
}

// playRollbackTurn 用固定种子开局并跑完当前玩家的一个回合。
// 对局 ID 固定成同一个值，好让两次运行的编码逐字节可比。
func playRollbackTurn(t *testing.T, mode string, firstRound bool) (*state.Game, *rollbackSurface) {
	t.Helper()
	g := state.NewGame(testData(), []string{"alice", "bob"})
	g.ID = "fixed-for-compare"
	surf := &rollbackSurface{mode: mode}
	c := New(testEnv(surf), Config{Seed: 7})
	c.Setup(g)
	g.FirstRound = firstRound
	g.Turn, g.Action = 0, 0
	next, err := c.playTurn(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	return next, surf
}

func TestPlayTurn_重开行动后与直走一遍逐字节一致(t *testing.T) {
	detoured, surf := playRollbackTurn(t, "detour", true)
	if want := []string{arbiter.ControlRestartAction}; !reflect.DeepEqual(surf.restarts, want) {
		t.Fatalf("应恰好重开一次行动: %v", surf.restarts)
	}
	straight, _ := playRollbackTurn(t, "resolve", true)

	a, err := detoured.Encode()
	if err != nil {
		t.Fatal(err)
	}
	b, err := straight.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("重开行动应不留痕迹:\n%s\n%s", a, b)
	}
}

func TestPlayTurn_重开回合后与直走一遍逐字节一致(t *testing.T) {
	// 非首轮有两个行动槽：第 0 槽落一笔贷款，第 1 槽触发重开回合，
	// 已落的那笔贷款必须一并被回滚。
	detoured, surf := playRollbackTurn(t, "resolve_once", false)
	if want := []string{arbiter.ControlRestartTurn}; !reflect.DeepEqual(surf.restarts, want) {
		t.Fatalf("应恰好重开一次回合: %v", surf.restarts)
	}
	straight, _ := playRollbackTurn(t, "resolve", false)

	a, err := detoured.Encode()
	if err != nil {
		t.Fatal(err)
	}
	b, err := straight.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("重开回合应不留痕迹:\n%s\n%s", a, b)
	}
}

func TestRun_教学短局整局冒烟(t *testing.T) {
	g := state.NewGame(testData(), []string{"alice", "bob"})
	env := testEnv(&surface.PolicySurface{})
	c := New(env, Config{Seed: 11, Tutorial: true})

	final, scores, err := c.Run(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 {
		t.Fatalf("应有两行得分: %v", scores)
	}
	for i, s := range scores {
		if s.Player != i || s.VictoryPoints < 0 {
			t.Fatalf("得分行错误: %+v", s)
		}
		if s.VictoryPoints != final.Players[i].VictoryPoints {
			t.Fatal("得分与终局状态不一致")
		}
	}
	// 教学短局停在运河时代。
	if final.Era != domain.EraCanal {
		t.Fatalf("教学局不应进入铁路时代: %s", final.Era)
	}
	for _, p := range final.Players {
		if len(p.Hand) != 0 {
			t.Fatal("终局时手牌应打空")
		}
	}
}
