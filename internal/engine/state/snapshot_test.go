package state

import (
	"bytes"
	"testing"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/shared/gamedata"
)

func testData() *gamedata.Data {
	return &gamedata.Data{
		Industries: map[string][]gamedata.IndustryLevel{
			"coal": {
				{Level: 1, Count: 2, Cost: gamedata.CostSpec{Coins: 5}, Production: 2,
					Reward: gamedata.RewardSpec{VictoryPoints: 1, LinkPoints: 2, Income: 4}},
				{Level: 2, Count: 2, Cost: gamedata.CostSpec{Coins: 7}, Production: 3,
					Reward: gamedata.RewardSpec{VictoryPoints: 2, LinkPoints: 1, Income: 7}},
			},
			"cotton": {
				{Level: 1, Count: 3, Cost: gamedata.CostSpec{Coins: 12}, SaleBeerCost: 1, CanalOnly: true,
					Reward: gamedata.RewardSpec{VictoryPoints: 5, LinkPoints: 1, Income: 5}},
				{Level: 2, Count: 2, Cost: gamedata.CostSpec{Coins: 14, Coal: 1}, SaleBeerCost: 1,
					Reward: gamedata.RewardSpec{VictoryPoints: 5, LinkPoints: 2, Income: 4}},
			},
			"brewery": {
				{Level: 1, Count: 2, Cost: gamedata.CostSpec{Coins: 5, Iron: 1},
					Reward: gamedata.RewardSpec{VictoryPoints: 4, LinkPoints: 2, Income: 4}},
			},
		},
		IndustryLocations: []gamedata.IndustryLocation{
			{ID: "L1", City: "stone", Industries: []string{"coal"}},
			{ID: "L2", City: "derby", Industries: []string{"cotton", "brewery"}},
			{ID: "L3", City: "derby", Industries: []string{"cotton"}},
		},
		LinkLocations: []gamedata.LinkLocation{
			{ID: "K1", Cities: []string{"stone", "derby"}, Canal: true, Rail: true},
			{ID: "K2", Cities: []string{"derby", "oxford"}, Canal: true, Rail: true},
		},
		Merchants: []gamedata.MerchantSpec{
			{ID: "M1", City: "oxford", MinPlayers: 2, BeerReward: "vp4"},
		},
		MerchantTiles: []gamedata.MerchantTileSpec{
			{Industries: []string{"cotton"}, MinPlayers: 2},
		},
		Cards: []gamedata.CardSpec{
			{City: "stone", Counts: []int{8, 8, 8}},
			{City: "derby", Counts: []int{8, 8, 8}},
			{Industries: []string{"coal"}, Counts: []int{4, 4, 4}},
		},
		Markets: map[string]gamedata.MarketSpec{
			"coal": {InitialCount: 4, Capacity: 6, Prices: []int{4, 3, 3, 2, 2, 1, 1}},
			"iron": {InitialCount: 2, Capacity: 4, Prices: []int{6, 5, 4, 2, 1}},
		},
	}
}

func TestSnapshot_深拷贝互不影响(t *testing.T) {
	g := NewGame(testData(), []string{"alice", "bob"})
	g.Players[0].Money = 17
	g.Players[0].Hand = []domain.Card{{City: "stone"}}

	loc := g.Board.IndustryLocByID("L1")
	lv, _ := g.LevelData("coal", 1)
	tile := g.Board.NewIndustryTile(0, "coal", lv, 2)
	if err := g.Board.PlaceIndustry(loc, tile); err != nil {
		t.Fatal(err)
	}

	snap := g.Clone()

	// 改副本，原件不动。
	snap.Players[0].Money = 0
	snap.Board.RemoveIndustryAt(snap.Board.IndustryLocByID("L1"))
	snap.CoalMarket.Buy(2)

	if g.Players[0].Money != 17 {
		t.Fatalf("原件玩家状态被污染")
	}
	if g.Board.IndustryLocByID("L1").Occupant == "" {
		t.Fatalf("原件棋盘被污染")
	}
	if g.CoalMarket.Count != 4 {
		t.Fatalf("原件市场被污染")
	}
}

func TestSnapshot_编码往返无损(t *testing.T) {
	g := NewGame(testData(), []string{"alice", "bob", "carol"})
	g.Players[1].Income = -3
	g.TurnOrder = []int{2, 0, 1}
	g.Turn = 1
	g.Action = 1

	b1, err := g.Encode()
	if err != nil {
		t.Fatal(err)
	}

	restored, err := Decode(b1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := restored.Encode()
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(b1, b2) {
		t.Fatalf("serialize→deserialize→serialize 应逐字节一致")
	}
}

func TestSnapshot_克隆与原件编码一致(t *testing.T) {
	g := NewGame(testData(), []string{"alice", "bob"})
	b1, _ := g.Encode()
	b2, _ := g.Clone().Encode()
	if !bytes.Equal(b1, b2) {
		t.Fatalf("克隆应与原件字节一致")
	}
}
