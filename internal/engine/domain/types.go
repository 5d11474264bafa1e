package domain

// City 与 Industry 都是内容数据里的标识符；棋盘布局属于外部内容，
// 引擎不内置城市表，所以这里不做枚举。
type City string

type Industry string

// AnyCity 是万能地点牌的通配城市。
const AnyCity City = "any"

// 少数工业有规则级特判：酒厂产量按时代固定，煤/铁矿建成时带资源池，
// 其余工业通过出售翻面。除此之外工业只是内容标识。
const (
	IndustryCoal    Industry = "coal"
	IndustryIron    Industry = "iron"
	IndustryBrewery Industry = "brewery"
)

// Sellable 表示该工业通过出售行动翻面（而不是被消耗资源翻面）。
func (i Industry) Sellable() bool {
	switch i {
	case IndustryCoal, IndustryIron, IndustryBrewery:
		return false
	}
	return true
}

type Era int

const (
	EraCanal Era = iota
	EraRail
)

func (e Era) String() string {
	if e == EraRail {
		return "rail"
	}
	return "canal"
}

// Resource 是可消耗的三种原料。
type Resource int

const (
	ResourceCoal Resource = iota
	ResourceIron
	ResourceBeer
)

func (r Resource) String() string {
	switch r {
	case ResourceCoal:
		return "coal"
	case ResourceIron:
		return "iron"
	case ResourceBeer:
		return "beer"
	}
	return "unknown"
}

// BeerReward 是外销市场啤酒的一次性奖励类型，取值来自 gamedata。
type BeerReward string

const (
	BeerRewardDevelop BeerReward = "develop"
	BeerRewardIncome2 BeerReward = "income2"
	BeerRewardCoins5  BeerReward = "coins5"
	BeerRewardVP3     BeerReward = "vp3"
	BeerRewardVP4     BeerReward = "vp4"
)
