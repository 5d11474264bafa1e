package domain

import (
	"fmt"

	"Brassworks/internal/shared/gamedata"
	"Brassworks/modules/kit/errx"
)

// Board 是占位状态的竞技场：地点按 id 排序存放，板块统一放在 Tiles/LinkTiles
// 里由地点引用。玩家→建成板块的反查是算出来的，不做双向引用。
type Board struct {
	IndustryLocs []*IndustryLoc           `json:"industry_locs"`
	LinkLocs     []*LinkLoc               `json:"link_locs"`
	MerchantLocs []*MerchantLoc           `json:"merchant_locs"`
	Tiles        map[string]*IndustryTile `json:"tiles"`
	LinkTiles    map[string]*LinkTile     `json:"link_tiles"`
	NextSeq      int                      `json:"next_seq"`
}

func NewBoard(data *gamedata.Data, players int) *Board {
	b := &Board{
		Tiles:     make(map[string]*IndustryTile),
		LinkTiles: make(map[string]*LinkTile),
	}
	for _, spec := range data.IndustryLocations {
		inds := make([]Industry, len(spec.Industries))
		for i, s := range spec.Industries {
			inds[i] = Industry(s)
		}
		b.IndustryLocs = append(b.IndustryLocs, &IndustryLoc{
			ID:         spec.ID,
			City:       City(spec.City),
			Industries: inds,
		})
	}
	for _, spec := range data.LinkLocations {
		cities := make([]City, len(spec.Cities))
		for i, s := range spec.Cities {
			cities[i] = City(s)
		}
		b.LinkLocs = append(b.LinkLocs, &LinkLoc{
			ID:     spec.ID,
			Cities: cities,
			Canal:  spec.Canal,
			Rail:   spec.Rail,
		})
	}
	for _, spec := range data.Merchants {
		if spec.MinPlayers > players {
			continue
		}
		b.MerchantLocs = append(b.MerchantLocs, &MerchantLoc{
			ID:         spec.ID,
			City:       City(spec.City),
			MinPlayers: spec.MinPlayers,
			BeerReward: BeerReward(spec.BeerReward),
		})
	}
	return b
}

func (b *Board) IndustryLocByID(id string) *IndustryLoc {
	for _, l := range b.IndustryLocs {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (b *Board) LinkLocByID(id string) *LinkLoc {
	for _, l := range b.LinkLocs {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (b *Board) MerchantLocByID(id string) *MerchantLoc {
	for _, l := range b.MerchantLocs {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (b *Board) TileByID(id string) *IndustryTile {
	return b.Tiles[id]
}

// NewIndustryTile 在竞技场里登记一块新板块并分配稳定 id。
func (b *Board) NewIndustryTile(owner int, industry Industry, data gamedata.IndustryLevel, resources int) *IndustryTile {
	b.NextSeq++
	t := &IndustryTile{
		ID:        fmt.Sprintf("T%d", b.NextSeq),
		Owner:     owner,
		Industry:  industry,
		Data:      data,
		Resources: resources,
	}
	b.Tiles[t.ID] = t
	return t
}

// PlaceIndustry 把板块放进格位；一个格位同时最多一块。
func (b *Board) PlaceIndustry(loc *IndustryLoc, tile *IndustryTile) error {
	if loc.Occupant != "" {
		return errx.ErrIllegalMove.WithData("location", loc.ID).WithCause(errOccupied)
	}
	loc.Occupant = tile.ID
	return nil
}

// RemoveIndustryAt 清空格位并把板块从竞技场注销（出售抵债、时代淘汰用）。
func (b *Board) RemoveIndustryAt(loc *IndustryLoc) {
	if loc.Occupant == "" {
		return
	}
	delete(b.Tiles, loc.Occupant)
	loc.Occupant = ""
}

func (b *Board) PlaceLink(loc *LinkLoc, owner int) error {
	if loc.Occupant != "" {
		return errx.ErrIllegalMove.WithData("location", loc.ID).WithCause(errOccupied)
	}
	b.NextSeq++
	t := &LinkTile{ID: fmt.Sprintf("K%d", b.NextSeq), Owner: owner}
	b.LinkTiles[t.ID] = t
	loc.Occupant = t.ID
	return nil
}

func (b *Board) RemoveLinkAt(loc *LinkLoc) {
	if loc.Occupant == "" {
		return
	}
	delete(b.LinkTiles, loc.Occupant)
	loc.Occupant = ""
}

// BuiltIndustry 把格位和板块配对返回，计分与反查都要两者。
type BuiltIndustry struct {
	Loc  *IndustryLoc
	Tile *IndustryTile
}

// BuiltIndustries 按地点 id 顺序返回某玩家的建成工业（遍历顺序是确定的）。
func (b *Board) BuiltIndustries(owner int) []BuiltIndustry {
	var out []BuiltIndustry
	for _, loc := range b.IndustryLocs {
		if loc.Occupant == "" {
			continue
		}
		t := b.Tiles[loc.Occupant]
		if t != nil && t.Owner == owner {
			out = append(out, BuiltIndustry{Loc: loc, Tile: t})
		}
	}
	return out
}

// BuiltLinks 按地点 id 顺序返回某玩家已建连接的格位。
func (b *Board) BuiltLinks(owner int) []*LinkLoc {
	var out []*LinkLoc
	for _, loc := range b.LinkLocs {
		if loc.Occupant == "" {
			continue
		}
		t := b.LinkTiles[loc.Occupant]
		if t != nil && t.Owner == owner {
			out = append(out, loc)
		}
	}
	return out
}

// IndustriesInCity 返回某城市内所有建成工业（不分归属）。
func (b *Board) IndustriesInCity(city City) []BuiltIndustry {
	var out []BuiltIndustry
	for _, loc := range b.IndustryLocs {
		if loc.City != city || loc.Occupant == "" {
			continue
		}
		if t := b.Tiles[loc.Occupant]; t != nil {
			out = append(out, BuiltIndustry{Loc: loc, Tile: t})
		}
	}
	return out
}

// MerchantsInCity 返回某城市的外销市场位。
func (b *Board) MerchantsInCity(city City) []*MerchantLoc {
	var out []*MerchantLoc
	for _, m := range b.MerchantLocs {
		if m.City == city {
			out = append(out, m)
		}
	}
	return out
}

func (b *Board) Clone() *Board {
	out := &Board{
		IndustryLocs: make([]*IndustryLoc, len(b.IndustryLocs)),
		LinkLocs:     make([]*LinkLoc, len(b.LinkLocs)),
		MerchantLocs: make([]*MerchantLoc, len(b.MerchantLocs)),
		Tiles:        make(map[string]*IndustryTile, len(b.Tiles)),
		LinkTiles:    make(map[string]*LinkTile, len(b.LinkTiles)),
		NextSeq:      b.NextSeq,
	}
	for i, l := range b.IndustryLocs {
		c := *l
		c.Industries = append([]Industry(nil), l.Industries...)
		out.IndustryLocs[i] = &c
	}
	for i, l := range b.LinkLocs {
		c := *l
		c.Cities = append([]City(nil), l.Cities...)
		out.LinkLocs[i] = &c
	}
	for i, l := range b.MerchantLocs {
		c := *l
		if l.Tile != nil {
			tc := &MerchantTilePlacement{Industries: append([]Industry(nil), l.Tile.Industries...)}
			c.Tile = tc
		}
		out.MerchantLocs[i] = &c
	}
	for id, t := range b.Tiles {
		c := *t
		out.Tiles[id] = &c
	}
	for id, t := range b.LinkTiles {
		c := *t
		out.LinkTiles[id] = &c
	}
	return out
}
