package domain

import (
	"Brassworks/internal/shared/gamedata"
	"Brassworks/modules/kit/errx"
)

// IndustryTile 是场上的工业板块。Location 不存这里：地点持有板块 id，
// 反向关系由 Board 计算，避免双向引用。
type IndustryTile struct {
	ID       string                 `json:"id"`
	Owner    int                    `json:"owner"`
	Industry Industry               `json:"industry"`
	Data     gamedata.IndustryLevel `json:"data"`
	// Resources 是板块上剩余的可消耗资源数（煤/铁/啤酒）。
	Resources int  `json:"resources"`
	Flipped   bool `json:"flipped"`
	// Scored 标记本次计分阶段内是否已得分；每个计分阶段开始时清零。
	Scored bool `json:"scored,omitempty"`
}

// ConsumeResource 消耗一枚资源；耗尽时触发一次性翻面并给所有者加收入。
func (t *IndustryTile) ConsumeResource(owner *Player) error {
	if t.Resources <= 0 {
		return errx.ErrEmptyResource.WithData("tile", t.ID).
			WithCause(errNoResources)
	}
	t.Resources--
	if t.Resources == 0 {
		return t.Flip(owner)
	}
	return nil
}

// Flip 只允许发生一次；重复翻面是代码缺陷，直接致命。
func (t *IndustryTile) Flip(owner *Player) error {
	if t.Flipped {
		return errx.ErrRepeatedTransition.WithData("tile", t.ID).
			WithCause(errAlreadyFlipped)
	}
	t.Flipped = true
	if t.Data.Reward.Income > 0 {
		owner.IncreaseIncome(t.Data.Reward.Income)
	}
	return nil
}

// LinkTile 是场上的运输连接板块。
type LinkTile struct {
	ID    string `json:"id"`
	Owner int    `json:"owner"`
}
