package tracex

import (
	"context"
)

type gameIDKey struct{}
type eraKey struct{}
type turnKey struct{}
type playerKey struct{}

// WithGameID 把对局 id 放进 ctx，贯穿一局内的所有日志。
func WithGameID(ctx context.Context, gameID string) context.Context {
	return context.WithValue(ctx, gameIDKey{}, gameID)
}

func GameIDFrom(ctx context.Context) (string, bool) {
	v := ctx.Value(gameIDKey{})
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// WithTurn 记录当前时代与回合位置，日志里用于定位“哪个回合出的问题”。
func WithTurn(ctx context.Context, era, turn int) context.Context {
	ctx = context.WithValue(ctx, eraKey{}, era)
	return context.WithValue(ctx, turnKey{}, turn)
}

func EraFrom(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(eraKey{}).(int)
	return v, ok
}

func TurnFrom(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(turnKey{}).(int)
	return v, ok
}

// WithPlayer 记录当前行动玩家（座位序号）。
func WithPlayer(ctx context.Context, player int) context.Context {
	return context.WithValue(ctx, playerKey{}, player)
}

func PlayerFrom(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(playerKey{}).(int)
	return v, ok
}
