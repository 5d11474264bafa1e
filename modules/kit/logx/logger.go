package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是引擎各组件共用的最小日志接口。
//
// 约束：
// - 保持 API 极简，不自研日志框架
// - 只承载业务需要的能力：结构化字段 + ctx 透传（对局/回合定位字段）
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
}
