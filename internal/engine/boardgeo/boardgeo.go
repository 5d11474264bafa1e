package boardgeo

import (
	"sort"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/state"
)

// Query 用现算的图遍历实现棋盘几何查询：城市是节点，已建连接（不分
// 归属）是边。棋盘规模很小，每次查询直接 BFS，不做缓存。
type Query struct{}

func New() Query { return Query{} }

// 每个外销市场位为所在城市贡献的连接分。
const merchantLinkPoints = 2

// 自家酒厂即使不连通也可用，排序时排在所有连通来源之后。
const unconnectedDistance = 1 << 30

// IsReachableFromNetwork 判断城市是否属于玩家的网络：城内有他的工业
// 板块，或他的某条连接以该城为端点。网络不经他人的连接延伸。
func (Query) IsReachableFromNetwork(g *state.Game, city domain.City, player int) bool {
	for _, bi := range g.Board.BuiltIndustries(player) {
		if bi.Loc.City == city {
			return true
		}
	}
	for _, loc := range g.Board.BuiltLinks(player) {
		for _, c := range loc.Cities {
			if c == city {
				return true
			}
		}
	}
	return false
}

// AreConnected 判断两城之间是否存在经已建连接的通路，连接归属不限。
func (Query) AreConnected(g *state.Game, a, b domain.City) bool {
	if a == b {
		return true
	}
	_, ok := distancesFrom(g, []domain.City{a})[b]
	return ok
}

// DistanceOrderedSources 按距离升序枚举候选来源，每枚资源一个条目。
// 煤要求与锚点连通；铁不看距离；啤酒分归属：自家酒厂不限距离，
// 他人酒厂必须连通。
func (Query) DistanceOrderedSources(g *state.Game, anchor []domain.City, res domain.Resource, player int) []port.SourceAt {
	var out []port.SourceAt
	switch res {
	case domain.ResourceIron:
		for _, loc := range g.Board.IndustryLocs {
			t := tileWithResources(g, loc, domain.IndustryIron)
			if t == nil {
				continue
			}
			for i := 0; i < t.Resources; i++ {
				out = append(out, port.SourceAt{TileID: t.ID})
			}
		}
		return out

	case domain.ResourceCoal:
		dist := distancesFrom(g, anchor)
		for _, loc := range g.Board.IndustryLocs {
			t := tileWithResources(g, loc, domain.IndustryCoal)
			if t == nil {
				continue
			}
			d, ok := dist[loc.City]
			if !ok {
				continue
			}
			for i := 0; i < t.Resources; i++ {
				out = append(out, port.SourceAt{TileID: t.ID, Distance: d})
			}
		}

	case domain.ResourceBeer:
		dist := distancesFrom(g, anchor)
		for _, loc := range g.Board.IndustryLocs {
			t := tileWithResources(g, loc, domain.IndustryBrewery)
			if t == nil {
				continue
			}
			d, connected := dist[loc.City]
			if !connected {
				if t.Owner != player {
					continue
				}
				d = unconnectedDistance
			}
			for i := 0; i < t.Resources; i++ {
				out = append(out, port.SourceAt{TileID: t.ID, Distance: d})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// LinkPoints 返回一座城市的连接分：城内建成板块的连接分之和，
// 外加每个外销市场位的固定分。
func (Query) LinkPoints(g *state.Game, city domain.City) int {
	total := 0
	for _, bi := range g.Board.IndustriesInCity(city) {
		total += bi.Tile.Data.Reward.LinkPoints
	}
	total += merchantLinkPoints * len(g.Board.MerchantsInCity(city))
	return total
}

func tileWithResources(g *state.Game, loc *domain.IndustryLoc, ind domain.Industry) *domain.IndustryTile {
	if loc.Occupant == "" {
		return nil
	}
	t := g.Board.Tiles[loc.Occupant]
	if t == nil || t.Industry != ind || t.Resources <= 0 {
		return nil
	}
	return t
}

// distancesFrom 从一组锚点城市出发做 BFS，返回可达城市到最近锚点的跳数。
func distancesFrom(g *state.Game, anchor []domain.City) map[domain.City]int {
	edges := make(map[domain.City][]domain.City)
	for _, loc := range g.Board.LinkLocs {
		if loc.Occupant == "" {
			continue
		}
		for _, a := range loc.Cities {
			for _, b := range loc.Cities {
				if a != b {
					edges[a] = append(edges[a], b)
				}
			}
		}
	}

	dist := make(map[domain.City]int, len(edges))
	queue := make([]domain.City, 0, len(anchor))
	for _, c := range anchor {
		if _, seen := dist[c]; !seen {
			dist[c] = 0
			queue = append(queue, c)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range edges[cur] {
			if _, seen := dist[next]; seen {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}
	return dist
}
