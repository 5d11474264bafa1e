package domain

import (
	"sort"
	"strings"
)

// Card 是手牌：城市牌（City 非空）或工业牌（Industries 非空）。
// Wild 标记万能牌（侦察行动获得），时代结束重洗时不回牌库。
type Card struct {
	City       City       `json:"city,omitempty"`
	Industries []Industry `json:"industries,omitempty"`
	Wild       bool       `json:"wild,omitempty"`
}

func (c Card) IsCity() bool {
	return c.City != ""
}

// Matches 判断一张牌是否允许在某城市建某工业。万能工业牌（Wild 且无
// 城市）匹配任何工业。
func (c Card) Matches(city City, industry Industry) bool {
	if c.IsCity() {
		return c.City == AnyCity || c.City == city
	}
	if c.Wild {
		return true
	}
	for _, ind := range c.Industries {
		if ind == industry {
			return true
		}
	}
	return false
}

func (c Card) Label() string {
	if c.IsCity() {
		return string(c.City)
	}
	if c.Wild && len(c.Industries) == 0 {
		return "wild industry"
	}
	parts := make([]string, len(c.Industries))
	for i, ind := range c.Industries {
		parts[i] = string(ind)
	}
	sort.Strings(parts)
	return strings.Join(parts, "/")
}
