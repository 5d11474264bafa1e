package scoring

import (
	"context"
	"fmt"
	"testing"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/state"
	"Brassworks/internal/shared/gamedata"
	"Brassworks/modules/kit/logx"
)

type cityPointsQuery map[domain.City]int

func (q cityPointsQuery) IsReachableFromNetwork(g *state.Game, city domain.City, player int) bool {
	return true
}

func (q cityPointsQuery) AreConnected(g *state.Game, a, b domain.City) bool { return true }

func (q cityPointsQuery) DistanceOrderedSources(g *state.Game, anchor []domain.City, res domain.Resource, player int) []port.SourceAt {
	return nil
}

func (q cityPointsQuery) LinkPoints(g *state.Game, city domain.City) int {
	return q[city]
}

type recordingNotifier struct {
	lines []string
}

func (n *recordingNotifier) Set(format string, args ...any) {
	n.lines = append(n.lines, fmt.Sprintf(format, args...))
}

func (n *recordingNotifier) Add(format string, args ...any) {
	n.lines = append(n.lines, fmt.Sprintf(format, args...))
}

func linkData() *gamedata.Data {
	return &gamedata.Data{
		Industries: map[string][]gamedata.IndustryLevel{
			"cotton": {
				{Level: 1, Count: 3, Reward: gamedata.RewardSpec{VictoryPoints: 3}},
				{Level: 2, Count: 3, Reward: gamedata.RewardSpec{VictoryPoints: 5}},
			},
		},
		IndustryLocations: []gamedata.IndustryLocation{
			{ID: "L1", City: "ca", Industries: []string{"cotton"}},
			{ID: "L2", City: "cb", Industries: []string{"cotton"}},
		},
		LinkLocations: []gamedata.LinkLocation{
			{ID: "K1", Cities: []string{"ca", "zero"}, Canal: true},
			{ID: "K2", Cities: []string{"cb", "zero"}, Canal: true},
			{ID: "K3", Cities: []string{"cc", "zero"}, Canal: true},
		},
	}
}

func scoringEnv(q port.BoardQuery, n port.Notifier) *port.Env {
	return &port.Env{
		Notify: n,
		Query:  q,
		Delay:  port.NopDelayer{},
		Log:    logx.NewNop(),
	}
}

func placeLink(t *testing.T, g *state.Game, locID string, owner int) {
	t.Helper()
	if err := g.Board.PlaceLink(g.Board.LinkLocByID(locID), owner); err != nil {
		t.Fatal(err)
	}
}

func TestScoreLinks_落后者优先且高值先计(t *testing.T) {
	g := state.NewGame(linkData(), []string{"A", "B"})
	// A 两条连接值 3 和 7，B 一条值 5，所有人 0 分。
	placeLink(t, g, "K1", 0) // ca=3
	placeLink(t, g, "K2", 0) // cb=7
	placeLink(t, g, "K3", 1) // cc=5
	q := cityPointsQuery{"ca": 3, "cb": 7, "cc": 5, "zero": 0}

	n := &recordingNotifier{}
	if err := ScoreLinks(context.Background(), scoringEnv(q, n), g); err != nil {
		t.Fatal(err)
	}

	if g.Players[0].VictoryPoints != 10 || g.Players[1].VictoryPoints != 5 {
		t.Fatalf("总分应为 A:10 B:5, got A:%d B:%d",
			g.Players[0].VictoryPoints, g.Players[1].VictoryPoints)
	}
	// 0 分同分：回合顺序靠后的 B 先计；之后 A(0) 最低连计 7、3。
	want := []string{
		"B scores 5 points for their link at K3",
		"A scores 7 points for their link at K2",
		"A scores 3 points for their link at K1",
	}
	for i, w := range want {
		if i >= len(n.lines) || n.lines[i] != w {
			t.Fatalf("第 %d 笔计分顺序不符: got=%v", i, n.lines)
		}
	}
	// 连接计分后全部移出棋盘。
	for _, loc := range g.Board.LinkLocs {
		if loc.Occupant != "" {
			t.Fatalf("连接 %s 未被移除", loc.ID)
		}
	}
	if g.Players[0].LinksRemaining != state.LinkTilesPerPlayer+2 {
		t.Fatalf("连接板块应退还: %d", g.Players[0].LinksRemaining)
	}
}

func TestScoreLinks_零分连接也要移除(t *testing.T) {
	g := state.NewGame(linkData(), []string{"A", "B"})
	placeLink(t, g, "K3", 0)
	q := cityPointsQuery{} // 所有城市 0 分

	if err := ScoreLinks(context.Background(), scoringEnv(q, port.NopNotifier{}), g); err != nil {
		t.Fatal(err)
	}
	if g.Board.LinkLocByID("K3").Occupant != "" {
		t.Fatalf("0 分连接也应移除")
	}
	if g.Players[0].VictoryPoints != 0 {
		t.Fatalf("0 分不应加分")
	}
}

func TestScoreIndustries_每笔之后重新评估最低者(t *testing.T) {
	g := state.NewGame(linkData(), []string{"A", "B"})
	lv1, _ := g.LevelData("cotton", 1)
	lv2, _ := g.LevelData("cotton", 2)

	// A 一块 3 分，B 一块 5 分；都翻面。B 先计（同分靠后），
	// 计完 B=5 之后最低者换成 A。
	ta := g.Board.NewIndustryTile(0, "cotton", lv1, 0)
	ta.Flipped = true
	if err := g.Board.PlaceIndustry(g.Board.IndustryLocByID("L1"), ta); err != nil {
		t.Fatal(err)
	}
	tb := g.Board.NewIndustryTile(1, "cotton", lv2, 0)
	tb.Flipped = true
	if err := g.Board.PlaceIndustry(g.Board.IndustryLocByID("L2"), tb); err != nil {
		t.Fatal(err)
	}

	n := &recordingNotifier{}
	if err := ScoreIndustries(context.Background(), scoringEnv(cityPointsQuery{}, n), g); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"B scores 5 points for their cotton",
		"A scores 3 points for their cotton",
	}
	for i, w := range want {
		if i >= len(n.lines) || n.lines[i] != w {
			t.Fatalf("计分顺序不符: got=%v", n.lines)
		}
	}
	// 工业板块计分后留在棋盘上。
	if g.Board.IndustryLocByID("L1").Occupant == "" {
		t.Fatalf("工业板块不应被移除")
	}
}

func TestScoreIndustries_未翻面不计分(t *testing.T) {
	g := state.NewGame(linkData(), []string{"A", "B"})
	lv1, _ := g.LevelData("cotton", 1)
	tile := g.Board.NewIndustryTile(0, "cotton", lv1, 1)
	if err := g.Board.PlaceIndustry(g.Board.IndustryLocByID("L1"), tile); err != nil {
		t.Fatal(err)
	}

	if err := ScoreIndustries(context.Background(), scoringEnv(cityPointsQuery{}, port.NopNotifier{}), g); err != nil {
		t.Fatal(err)
	}
	if g.Players[0].VictoryPoints != 0 {
		t.Fatalf("未翻面板块不应计分")
	}
}
