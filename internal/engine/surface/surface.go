package surface

import (
	"context"
	"strings"
	"sync"

	"Brassworks/internal/engine/port"
	"Brassworks/modules/kit/errx"
)

// PolicySurface 是进程内的策略交互面：没有真人，按策略即时应答。
// 行动竞速会同时挂出多个 offer，应答必须无共享可变状态或自己加锁；
// 应答不了的 offer 挂起到 ctx 取消为止，这正是败方分支的退出路径。
type PolicySurface struct {
	// PickChoice 为空时选第一个候选。
	PickChoice func(player int, candidates []port.Choice, opts port.ChoiceOptions) port.Choice
	// AllowClick 为空时放行除重开/抽干之外的点击。
	AllowClick func(control string) bool

	mu      sync.Mutex
	touched int
}

func (s *PolicySurface) OfferChoice(ctx context.Context, player int, candidates []port.Choice, opts port.ChoiceOptions) (port.Choice, error) {
	if err := ctx.Err(); err != nil {
		return port.Choice{}, errx.ErrCancelled.WithCause(err)
	}
	s.note()
	if opts.AutoResolveIfSingle && len(candidates) == 1 {
		return candidates[0], nil
	}
	if s.PickChoice != nil {
		return s.PickChoice(player, candidates, opts), nil
	}
	return candidates[0], nil
}

func (s *PolicySurface) OfferClick(ctx context.Context, player int, control string) error {
	if err := ctx.Err(); err != nil {
		return errx.ErrCancelled.WithCause(err)
	}
	if s.clickAllowed(control) {
		s.note()
		return nil
	}
	<-ctx.Done()
	return errx.ErrCancelled.WithCause(ctx.Err())
}

func (s *PolicySurface) clickAllowed(control string) bool {
	if s.AllowClick != nil {
		return s.AllowClick(control)
	}
	return !strings.HasPrefix(control, "restart_") && !strings.HasPrefix(control, "drain_")
}

// Interactions 返回已应答的交互总数（调试与测试断言用）。
func (s *PolicySurface) Interactions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

func (s *PolicySurface) note() {
	s.mu.Lock()
	s.touched++
	s.mu.Unlock()
}
