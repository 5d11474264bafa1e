package state

import (
	"encoding/json"

	"Brassworks/internal/engine/domain"
	"Brassworks/modules/kit/errx"
)

// 快照就是一份完全独立的 Game 深拷贝：回合开始一份、行动开始一份，
// 对应范围提交后即弃。快照只存在于进程内，从不落盘。

// Clone 产出完全独立的副本；静态规则数据共享。
func (g *Game) Clone() *Game {
	out := &Game{
		ID:         g.ID,
		Data:       g.Data,
		Era:        g.Era,
		FirstRound: g.FirstRound,
		TurnOrder:  append([]int(nil), g.TurnOrder...),
		Turn:       g.Turn,
		Action:     g.Action,
		Board:      g.Board.Clone(),

		DrawPile:         append([]domain.Card(nil), g.DrawPile...),
		WildLocationPile: append([]domain.Card(nil), g.WildLocationPile...),
		WildIndustryPile: append([]domain.Card(nil), g.WildIndustryPile...),
	}
	if g.CoalMarket != nil {
		out.CoalMarket = g.CoalMarket.Clone()
	}
	if g.IronMarket != nil {
		out.IronMarket = g.IronMarket.Clone()
	}
	out.Players = make([]*domain.Player, len(g.Players))
	for i, p := range g.Players {
		out.Players[i] = p.Clone()
	}
	return out
}

// Encode 输出确定性的字节表示（encoding/json 对 map 键排序），
// 回滚无损性的判定就是对这串字节做相等比较。
func (g *Game) Encode() ([]byte, error) {
	b, err := json.Marshal(g)
	if err != nil {
		return nil, errx.ErrInternal.WithData("game", g.ID).WithCause(err)
	}
	return b, nil
}

// Decode 从 Encode 的输出还原（静态规则数据需另行补上）。
func Decode(b []byte) (*Game, error) {
	var g Game
	if err := json.Unmarshal(b, &g); err != nil {
		return nil, errx.ErrInternal.WithCause(err)
	}
	return &g, nil
}
