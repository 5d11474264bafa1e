package gamedata

// 规则数据（棋盘内容、工业等级表、卡组构成、市场价格）全部来自
// configs/gamedata.yml，引擎本身不内置任何内容数值。

type Data struct {
	Industries        map[string][]IndustryLevel `yaml:"industries" mapstructure:"industries"`
	IndustryLocations []IndustryLocation         `yaml:"industry_locations" mapstructure:"industry_locations"`
	LinkLocations     []LinkLocation             `yaml:"link_locations" mapstructure:"link_locations"`
	Merchants         []MerchantSpec             `yaml:"merchants" mapstructure:"merchants"`
	MerchantTiles     []MerchantTileSpec         `yaml:"merchant_tiles" mapstructure:"merchant_tiles"`
	Cards             []CardSpec                 `yaml:"cards" mapstructure:"cards"`
	Markets           map[string]MarketSpec      `yaml:"markets" mapstructure:"markets"`
}

type CostSpec struct {
	Coins int `yaml:"coins" mapstructure:"coins"`
	Coal  int `yaml:"coal" mapstructure:"coal"`
	Iron  int `yaml:"iron" mapstructure:"iron"`
}

type RewardSpec struct {
	VictoryPoints int `yaml:"victory_points" mapstructure:"victory_points"`
	LinkPoints    int `yaml:"link_points" mapstructure:"link_points"`
	Income        int `yaml:"income" mapstructure:"income"`
}

// IndustryLevel 是玩家面板上某工业某一级的完整定义。
type IndustryLevel struct {
	Level int `yaml:"level" mapstructure:"level"`
	// Count 表示每名玩家拥有多少块该级别的板块。
	Count  int        `yaml:"count" mapstructure:"count"`
	Cost   CostSpec   `yaml:"cost" mapstructure:"cost"`
	Reward RewardSpec `yaml:"reward" mapstructure:"reward"`
	// Production 表示建成时放置多少资源（煤/铁矿）；啤酒厂运河时代恒为 1、铁路时代恒为 2，不走这里。
	Production int `yaml:"production" mapstructure:"production"`
	// SaleBeerCost 表示出售翻面需要消耗的啤酒数（棉纺/工厂/陶器）。
	SaleBeerCost int  `yaml:"sale_beer_cost" mapstructure:"sale_beer_cost"`
	NoDevelop    bool `yaml:"no_develop" mapstructure:"no_develop"`
	CanalOnly    bool `yaml:"canal_only" mapstructure:"canal_only"`
	RailOnly     bool `yaml:"rail_only" mapstructure:"rail_only"`
}

type IndustryLocation struct {
	ID         string   `yaml:"id" mapstructure:"id"`
	City       string   `yaml:"city" mapstructure:"city"`
	Industries []string `yaml:"industries" mapstructure:"industries"`
}

type LinkLocation struct {
	ID     string   `yaml:"id" mapstructure:"id"`
	Cities []string `yaml:"cities" mapstructure:"cities"`
	Canal  bool     `yaml:"canal" mapstructure:"canal"`
	Rail   bool     `yaml:"rail" mapstructure:"rail"`
}

// MerchantSpec 是棋盘边缘的外销市场位；人数不足时不启用。
type MerchantSpec struct {
	ID         string `yaml:"id" mapstructure:"id"`
	City       string `yaml:"city" mapstructure:"city"`
	MinPlayers int    `yaml:"min_players" mapstructure:"min_players"`
	// BeerReward 取值：develop / income2 / coins5 / vp3 / vp4。
	BeerReward string `yaml:"beer_reward" mapstructure:"beer_reward"`
}

// MerchantTileSpec 是随机铺到外销市场位上的板块；Industries 为空表示空白板块。
type MerchantTileSpec struct {
	Industries []string `yaml:"industries" mapstructure:"industries"`
	MinPlayers int      `yaml:"min_players" mapstructure:"min_players"`
}

// CardSpec 描述一种牌：城市牌或工业牌；Counts 依次是 2/3/4 人局的张数。
type CardSpec struct {
	City       string   `yaml:"city" mapstructure:"city"`
	Industries []string `yaml:"industries" mapstructure:"industries"`
	Counts     []int    `yaml:"counts" mapstructure:"counts"`
}

// MarketSpec 描述一个资源市场的价格表。
//
// Prices 按“剩余量”索引：Prices[c] 是剩余 c 枚时买走一枚的单价，
// Prices[0] 是市场打空后的兜底单价。剩余量越少价格必须不降。
type MarketSpec struct {
	InitialCount int   `yaml:"initial_count" mapstructure:"initial_count"`
	Capacity     int   `yaml:"capacity" mapstructure:"capacity"`
	Prices       []int `yaml:"prices" mapstructure:"prices"`
}
