package domain

import (
	"Brassworks/internal/shared/gamedata"
	"Brassworks/modules/kit/errx"
)

// Market 是一种资源的公共市场：一摞代币加一张按剩余量定价的价格表。
// Prices[c] 是剩余 c 枚时买走一枚的单价，Prices[0] 是打空后的兜底单价。
type Market struct {
	Resource Resource `json:"resource"`
	Count    int      `json:"count"`
	Capacity int      `json:"capacity"`
	Prices   []int    `json:"prices"`
}

func NewMarket(res Resource, spec gamedata.MarketSpec) *Market {
	return &Market{
		Resource: res,
		Count:    spec.InitialCount,
		Capacity: spec.Capacity,
		Prices:   append([]int(nil), spec.Prices...),
	}
}

func (m *Market) IsEmpty() bool {
	return m.Count <= 0
}

// CostToBuy 按逐枚取走的当时价累加：剩 4 买 3 = P[4]+P[3]+P[2]。
// 超出库存的部分按兜底价计。
func (m *Market) CostToBuy(n int) int {
	cost := 0
	for k := 0; k < n; k++ {
		c := m.Count - k
		if c < 0 {
			c = 0
		}
		cost += m.Prices[c]
	}
	return cost
}

// Buy 取走 n 枚并返回总价；买空之后继续买按兜底价、不减库存。
func (m *Market) Buy(n int) int {
	cost := m.CostToBuy(n)
	m.Count -= n
	if m.Count < 0 {
		m.Count = 0
	}
	return cost
}

// Drain 清空市场（抽干行动）。市场为空时非法。
func (m *Market) Drain() (int, error) {
	if m.IsEmpty() {
		return 0, errx.ErrIllegalMove.WithData("market", m.Resource.String()).
			WithCause(errMarketDrained)
	}
	n := m.Count
	m.Count = 0
	return n, nil
}

// SellInto 把 n 枚过剩产出卖进市场：从当前空位逐格填入并按格位价结钱；
// 放满之后多余的直接弃掉，不结钱。
func (m *Market) SellInto(n int) int {
	coins := 0
	for k := 0; k < n && m.Count < m.Capacity; k++ {
		m.Count++
		coins += m.Prices[m.Count]
	}
	return coins
}

func (m *Market) Clone() *Market {
	out := *m
	out.Prices = append([]int(nil), m.Prices...)
	return &out
}
