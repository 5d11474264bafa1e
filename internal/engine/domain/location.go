package domain

// IndustryLoc 是可建工业的格位；Occupant 指向竞技场里的板块 id，空串表示空位。
type IndustryLoc struct {
	ID         string     `json:"id"`
	City       City       `json:"city"`
	Industries []Industry `json:"industries"`
	Occupant   string     `json:"occupant,omitempty"`
}

func (l *IndustryLoc) Allows(industry Industry) bool {
	for _, ind := range l.Industries {
		if ind == industry {
			return true
		}
	}
	return false
}

// LinkLoc 是可建连接的格位。ScoredLinkPoints 只在计分的连接阶段有值
// （计分前统一预计算）。
type LinkLoc struct {
	ID               string `json:"id"`
	Cities           []City `json:"cities"`
	Canal            bool   `json:"canal"`
	Rail             bool   `json:"rail"`
	Occupant         string `json:"occupant,omitempty"`
	ScoredLinkPoints int    `json:"scored_link_points,omitempty"`
}

func (l *LinkLoc) UsableIn(era Era) bool {
	if era == EraCanal {
		return l.Canal
	}
	return l.Rail
}

// MerchantTilePlacement 是铺在外销市场位上的板块；Industries 为空表示空白板块。
type MerchantTilePlacement struct {
	Industries []Industry `json:"industries"`
}

func (t *MerchantTilePlacement) Accepts(industry Industry) bool {
	if t == nil {
		return false
	}
	for _, ind := range t.Industries {
		if ind == industry {
			return true
		}
	}
	return false
}

// MerchantLoc 是棋盘边缘的外销市场位；人数不足的局不铺板块。
type MerchantLoc struct {
	ID         string                 `json:"id"`
	City       City                   `json:"city"`
	MinPlayers int                    `json:"min_players"`
	BeerReward BeerReward             `json:"beer_reward"`
	Tile       *MerchantTilePlacement `json:"tile,omitempty"`
	HasBeer    bool                   `json:"has_beer"`
}
