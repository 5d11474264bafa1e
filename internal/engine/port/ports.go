package port

import (
	"context"

	"Brassworks/internal/engine/domain"
	"Brassworks/internal/engine/state"
	"Brassworks/modules/kit/logx"
)

// 交互面、消息面、棋盘几何查询和演出节奏都是外部协作者：
// 核心只依赖这些接口，不提供实现（测试与模拟器里是表驱动的假实现）。

// Choice 是一次选择里的一个候选项，id 在当前状态下稳定。
type Choice struct {
	ID    string
	Label string
}

type ChoiceOptions struct {
	Message string
	// AutoResolveIfSingle 只剩一个候选时不打扰玩家直接选中。
	AutoResolveIfSingle bool
}

// Surface 是交互面。必须支持多个并发挂起的 offer；ctx 取消要能到达
// 每一个未决 offer（竞争胜出方出现时由引擎统一取消）。
type Surface interface {
	OfferChoice(ctx context.Context, player int, candidates []Choice, opts ChoiceOptions) (Choice, error)
	OfferClick(ctx context.Context, player int, control string) error
}

// Notifier 是消息面：设置/追加人类可读的状态文本，不被核心逻辑等待。
type Notifier interface {
	Set(format string, args ...any)
	Add(format string, args ...any)
}

// SourceAt 是一个候选资源来源：板块 id 加网络距离（跳数，升序提供）。
type SourceAt struct {
	TileID   string
	Distance int
}

// BoardQuery 是棋盘几何查询面。核心只持有占位状态，连通性、距离和
// 城市连接分的图遍历都在外面。
//
// DistanceOrderedSources 以一组城市为锚点（工业位一个城市，连接位两端
// 城市），按距离升序返回候选来源，每枚可消耗资源一个条目；player 用于
// 啤酒的"自家酒厂不限距离"规则。
type BoardQuery interface {
	IsReachableFromNetwork(g *state.Game, city domain.City, player int) bool
	// AreConnected 判断两城之间是否存在经已建连接的通路（不分归属）。
	AreConnected(g *state.Game, a, b domain.City) bool
	DistanceOrderedSources(g *state.Game, anchor []domain.City, res domain.Resource, player int) []SourceAt
	LinkPoints(g *state.Game, city domain.City) int
}

// Delayer 是演出节奏钩子：核心在每个可观察效果之间调用，不实现等待本身。
type Delayer interface {
	Beat(ctx context.Context) error
	Short(ctx context.Context) error
}

// NopDelayer 用于测试与无演出场景。
type NopDelayer struct{}

func (NopDelayer) Beat(ctx context.Context) error  { return ctx.Err() }
func (NopDelayer) Short(ctx context.Context) error { return ctx.Err() }

// NopNotifier 丢弃所有消息。
type NopNotifier struct{}

func (NopNotifier) Set(format string, args ...any) {}
func (NopNotifier) Add(format string, args ...any) {}

// Env 是各组件共用的外部能力包；随调用链显式传递，不放全局。
type Env struct {
	Surface Surface
	Notify  Notifier
	Query   BoardQuery
	Delay   Delayer
	Log     logx.Logger

	// AllowDrainMarkets 关闭时抽干市场行动始终以非法行动出局。
	AllowDrainMarkets bool
}
