package domain

// 收入与分数的轨道边界。
const (
	IncomeFloor = -10
	IncomeCap   = 30
)

// LevelStock 是玩家面板上某工业某一级剩余未建的板块数。
type LevelStock struct {
	Level     int `json:"level"`
	Remaining int `json:"remaining"`
}

// Player 持有自己的经济/分数状态；建成板块不在这里，统一放在 Board 的
// 竞技场里，按归属反查（见 Board.BuiltIndustries）。
type Player struct {
	Index          int                       `json:"index"`
	Name           string                    `json:"name"`
	Money          int                       `json:"money"`
	Income         int                       `json:"income"`
	Spent          int                       `json:"spent"`
	VictoryPoints  int                       `json:"victory_points"`
	Hand           []Card                    `json:"hand"`
	Discard        []Card                    `json:"discard"`
	Mat            map[Industry][]LevelStock `json:"mat"`
	LinksRemaining int                       `json:"links_remaining"`
}

// SpendMoney 同时累计本轮花费；花费额是回合重排序的排序键。
func (p *Player) SpendMoney(coins int) {
	p.Money -= coins
	p.Spent += coins
}

func (p *Player) CanAfford(coins int) bool {
	return p.Money >= coins
}

func (p *Player) IncreaseIncome(n int) {
	p.Income += n
	if p.Income > IncomeCap {
		p.Income = IncomeCap
	}
}

func (p *Player) DecreaseIncome(n int) {
	p.Income -= n
	if p.Income < IncomeFloor {
		p.Income = IncomeFloor
	}
}

func (p *Player) IncreaseVictoryPoints(n int) {
	p.VictoryPoints += n
}

// DecreaseVictoryPoints 不会把分数扣到 0 以下（计分轨道没有负格）。
func (p *Player) DecreaseVictoryPoints(n int) {
	p.VictoryPoints -= n
	if p.VictoryPoints < 0 {
		p.VictoryPoints = 0
	}
}

// LowestStock 返回某工业当前可建的最低一级；没有剩余板块时 ok=false。
func (p *Player) LowestStock(industry Industry) (LevelStock, bool) {
	for _, s := range p.Mat[industry] {
		if s.Remaining > 0 {
			return s, true
		}
	}
	return LevelStock{}, false
}

// TakeMatTile 从面板上取走某工业最低一级的一块板块，返回其级别。
func (p *Player) TakeMatTile(industry Industry) (int, bool) {
	stocks := p.Mat[industry]
	for i := range stocks {
		if stocks[i].Remaining > 0 {
			stocks[i].Remaining--
			return stocks[i].Level, true
		}
	}
	return 0, false
}

func (p *Player) HasWildCard() bool {
	for _, c := range p.Hand {
		if c.Wild {
			return true
		}
	}
	return false
}

// RemoveHandCard 把第 i 张手牌移进弃牌堆并返回它。
func (p *Player) RemoveHandCard(i int) Card {
	c := p.Hand[i]
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	p.Discard = append(p.Discard, c)
	return c
}

func (p *Player) Clone() *Player {
	out := *p
	out.Hand = append([]Card(nil), p.Hand...)
	out.Discard = append([]Card(nil), p.Discard...)
	out.Mat = make(map[Industry][]LevelStock, len(p.Mat))
	for ind, stocks := range p.Mat {
		out.Mat[ind] = append([]LevelStock(nil), stocks...)
	}
	return &out
}
