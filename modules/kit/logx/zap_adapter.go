package logx

import (
	"context"

	"Brassworks/modules/kit/tracex"

	"go.uber.org/zap"
)

// ZapLogger 是 zap 的适配器，实现 logx.Logger，便于引擎各层复用。
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		return &ZapLogger{logger: zap.NewNop()}
	}
	return &ZapLogger{logger: l}
}

// WithContext 把 ctx 里的对局定位字段（game_id/era/turn/player）附加到日志。
func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if z == nil {
		return NewZapLogger(nil)
	}
	l := z.logger
	if gid, ok := tracex.GameIDFrom(ctx); ok {
		l = l.With(zap.String("game_id", gid))
	}
	if era, ok := tracex.EraFrom(ctx); ok {
		l = l.With(zap.Int("era", era))
	}
	if turn, ok := tracex.TurnFrom(ctx); ok {
		l = l.With(zap.Int("turn", turn))
	}
	if p, ok := tracex.PlayerFrom(ctx); ok {
		l = l.With(zap.Int("player", p))
	}
	return &ZapLogger{logger: l}
}

func (z *ZapLogger) Info(msg string, fields ...zap.Field) {
	z.logger.Info(msg, fields...)
}

func (z *ZapLogger) Error(msg string, fields ...zap.Field) {
	z.logger.Error(msg, fields...)
}

func (z *ZapLogger) Debug(msg string, fields ...zap.Field) {
	z.logger.Debug(msg, fields...)
}

func (z *ZapLogger) Warn(msg string, fields ...zap.Field) {
	z.logger.Warn(msg, fields...)
}

// NewNop 返回丢弃所有输出的 Logger，测试里当默认值用。
func NewNop() Logger {
	return NewZapLogger(nil)
}
