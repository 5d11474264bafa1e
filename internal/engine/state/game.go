package state

import (
	"github.com/google/uuid"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/shared/gamedata"
)

// Game 是一局的全部可变状态。组件入口都显式接收它，没有全局单例。
// Data 是静态规则数据，所有快照/推演副本共享同一份，不参与拷贝。
type Game struct {
	ID         string           `json:"id"`
	Data       *gamedata.Data   `json:"-"`
	Era        domain.Era       `json:"era"`
	FirstRound bool             `json:"first_round"`
	TurnOrder  []int            `json:"turn_order"`
	Turn       int              `json:"turn"`
	Action     int              `json:"action"`
	Players    []*domain.Player `json:"players"`
	Board      *domain.Board    `json:"board"`
	CoalMarket *domain.Market   `json:"coal_market"`
	IronMarket *domain.Market   `json:"iron_market"`

	DrawPile         []domain.Card `json:"draw_pile"`
	WildLocationPile []domain.Card `json:"wild_location_pile"`
	WildIndustryPile []domain.Card `json:"wild_industry_pile"`
}

const (
	HandTarget         = 8
	LinkTilesPerPlayer = 15
	RefillPerTurn      = 2
	BreweryCanalOutput = 1
	BreweryRailOutput  = 2
)

// NewGame 搭好一局的初始结构；发牌、洗序等随机环节由控制器的 Setup 做。
func NewGame(data *gamedata.Data, names []string) *Game {
	g := &Game{
		ID:         uuid.NewString(),
		Data:       data,
		Era:        domain.EraCanal,
		FirstRound: true,
		Board:      domain.NewBoard(data, len(names)),
	}
	if spec, ok := data.Markets["coal"]; ok {
		g.CoalMarket = domain.NewMarket(domain.ResourceCoal, spec)
	}
	if spec, ok := data.Markets["iron"]; ok {
		g.IronMarket = domain.NewMarket(domain.ResourceIron, spec)
	}

	for i, name := range names {
		p := &domain.Player{
			Index:          i,
			Name:           name,
			Mat:            make(map[domain.Industry][]domain.LevelStock, len(data.Industries)),
			LinksRemaining: LinkTilesPerPlayer,
		}
		for ind, levels := range data.Industries {
			stocks := make([]domain.LevelStock, len(levels))
			for j, lv := range levels {
				stocks[j] = domain.LevelStock{Level: lv.Level, Remaining: lv.Count}
			}
			p.Mat[domain.Industry(ind)] = stocks
		}
		g.Players = append(g.Players, p)
		g.TurnOrder = append(g.TurnOrder, i)
	}
	return g
}

func (g *Game) CurrentPlayer() *domain.Player {
	return g.Players[g.TurnOrder[g.Turn]]
}

// ActionsPerTurn 在每个时代的第一轮是 1，之后是 2。
func (g *Game) ActionsPerTurn() int {
	if g.FirstRound {
		return 1
	}
	return 2
}

// MarketFor 返回资源对应的市场；啤酒没有市场。
func (g *Game) MarketFor(res domain.Resource) *domain.Market {
	switch res {
	case domain.ResourceCoal:
		return g.CoalMarket
	case domain.ResourceIron:
		return g.IronMarket
	}
	return nil
}

// LevelData 查某工业某一级的规则数据。
func (g *Game) LevelData(industry domain.Industry, level int) (gamedata.IndustryLevel, bool) {
	for _, lv := range g.Data.Industries[string(industry)] {
		if lv.Level == level {
			return lv, true
		}
	}
	return gamedata.IndustryLevel{}, false
}

// BuildDrawPile 按人数展开卡组（不洗牌）。
func BuildDrawPile(data *gamedata.Data, players int) []domain.Card {
	var pile []domain.Card
	for _, spec := range data.Cards {
		n := spec.CardCount(players)
		card := domain.Card{City: domain.City(spec.City)}
		for _, ind := range spec.Industries {
			card.Industries = append(card.Industries, domain.Industry(ind))
		}
		for k := 0; k < n; k++ {
			pile = append(pile, card)
		}
	}
	return pile
}
