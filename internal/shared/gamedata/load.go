package gamedata

import (
	"fmt"
	"sort"

	"github.com/spf13/viper"
)

// Load 读取并校验规则数据。规则数据是静态的，不做热更。
func Load(path string) (*Data, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("gamedata read %s: %w", path, err)
	}

	var d Data
	if err := v.Unmarshal(&d); err != nil {
		return nil, fmt.Errorf("gamedata unmarshal %s: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("gamedata validate %s: %w", path, err)
	}
	return &d, nil
}

// Validate 把数据缺陷挡在开局之前：开局后才发现的内容错误都是致命错误。
func (d *Data) Validate() error {
	if len(d.Industries) == 0 {
		return fmt.Errorf("no industries defined")
	}
	for name, levels := range d.Industries {
		if len(levels) == 0 {
			return fmt.Errorf("industry %s has no levels", name)
		}
		if !sort.SliceIsSorted(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level }) {
			return fmt.Errorf("industry %s levels not ascending", name)
		}
		for _, lv := range levels {
			if lv.Count <= 0 {
				return fmt.Errorf("industry %s level %d: count must be positive", name, lv.Level)
			}
			if lv.CanalOnly && lv.RailOnly {
				return fmt.Errorf("industry %s level %d: canal_only and rail_only are exclusive", name, lv.Level)
			}
		}
	}

	cities := make(map[string]bool)
	for _, loc := range d.IndustryLocations {
		cities[loc.City] = true
		for _, ind := range loc.Industries {
			if _, ok := d.Industries[ind]; !ok {
				return fmt.Errorf("industry location %s: unknown industry %s", loc.ID, ind)
			}
		}
	}
	for _, m := range d.Merchants {
		cities[m.City] = true
		switch m.BeerReward {
		case "develop", "income2", "coins5", "vp3", "vp4":
		default:
			return fmt.Errorf("merchant %s: unknown beer_reward %q", m.ID, m.BeerReward)
		}
	}
	for _, l := range d.LinkLocations {
		if len(l.Cities) < 2 {
			return fmt.Errorf("link location %s: needs at least two cities", l.ID)
		}
		if !l.Canal && !l.Rail {
			return fmt.Errorf("link location %s: unusable in both eras", l.ID)
		}
		for _, c := range l.Cities {
			if !cities[c] {
				return fmt.Errorf("link location %s: unknown city %s", l.ID, c)
			}
		}
	}

	for _, c := range d.Cards {
		if c.City == "" && len(c.Industries) == 0 {
			return fmt.Errorf("card with neither city nor industries")
		}
		if len(c.Counts) != 3 {
			return fmt.Errorf("card %s%v: counts must list 2/3/4 player values", c.City, c.Industries)
		}
	}

	for name, m := range d.Markets {
		if m.Capacity <= 0 || m.InitialCount < 0 || m.InitialCount > m.Capacity {
			return fmt.Errorf("market %s: bad counts initial=%d capacity=%d", name, m.InitialCount, m.Capacity)
		}
		if len(m.Prices) != m.Capacity+1 {
			return fmt.Errorf("market %s: prices must cover 0..capacity, got %d", name, len(m.Prices))
		}
		// 剩余越少越贵（允许持平）。
		for c := 1; c < len(m.Prices); c++ {
			if m.Prices[c-1] < m.Prices[c] {
				return fmt.Errorf("market %s: price must not decrease as stock depletes (c=%d)", name, c)
			}
		}
	}
	return nil
}

// CardCount 返回某牌在 players 人局里的张数。
func (c CardSpec) CardCount(players int) int {
	idx := players - 2
	if idx < 0 || idx >= len(c.Counts) {
		return 0
	}
	return c.Counts[idx]
}
