package arbiter

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"Brassworks/internal/engine/actions"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/state"
	"Brassworks/modules/kit/errx"
)

// 行动仲裁器：把一名玩家的全部候选行动同场竞速。每个候选跑在各自的
// 深拷贝推演副本上，第一个正常完成的分支获胜，它的副本成为正典状态；
// 其余分支经 context 自顶向下取消，副本整体丢弃，对外没有任何可见
// 效果。交互前就判定非法的候选无声退场。
//
// 两个逃生分支与行动本身竞速：重开行动在第一次交互被应答后解锁，
// 重开回合只在本回合已有已完成行动时提供。回滚本身由控制器的快照
// 完成，仲裁器只报告结果。

type Result int

const (
	Resolved Result = iota
	RestartAction
	RestartTurn
)

func (r Result) String() string {
	switch r {
	case Resolved:
		return "resolved"
	case RestartAction:
		return "restart_action"
	case RestartTurn:
		return "restart_turn"
	}
	return "unknown"
}

// 逃生分支的点击控件名。
const (
	ControlRestartAction = "restart_action"
	ControlRestartTurn   = "restart_turn"
)

type branchOut struct {
	result Result
	game   *state.Game
	kind   actions.Kind
	escape bool
	err    error
}

// PlayerAction 跑一次完整的行动竞速。Resolved 时返回胜出分支的副本，
// 调用方应把它接为正典状态；重开结果下返回的状态为 nil，由调用方
// 恢复对应快照。所有候选都非法时是内容或配置缺陷，直接致命。
func PlayerAction(ctx context.Context, env *port.Env, g *state.Game, player int,
	cands []actions.Candidate) (Result, *state.Game, error) {

	raceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	counting := newCountingSurface(env.Surface)
	results := make(chan branchOut, len(cands)+2)

	var wg sync.WaitGroup
	for _, cand := range cands {
		wg.Add(1)
		go func(cand actions.Candidate) {
			defer wg.Done()
			clone := g.Clone()
			branchEnv := *env
			branchEnv.Surface = counting
			err := cand.Run(raceCtx, &branchEnv, clone, player)
			results <- branchOut{result: Resolved, game: clone, kind: cand.Kind, err: err}
		}(cand)
	}

	// 重开行动：等第一次交互被应答后才挂出点击。
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-raceCtx.Done():
			results <- branchOut{escape: true, err: raceCtx.Err()}
			return
		case <-counting.armed:
		}
		err := env.Surface.OfferClick(raceCtx, player, ControlRestartAction)
		results <- branchOut{result: RestartAction, escape: true, err: err}
	}()

	// 重开回合：只有本回合已经完成过行动才有意义。
	if g.Action > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := env.Surface.OfferClick(raceCtx, player, ControlRestartTurn)
			results <- branchOut{result: RestartTurn, escape: true, err: err}
		}()
	}

	log := env.Log.WithContext(ctx)
	pending := len(cands)
	for {
		out := <-results
		if out.escape {
			if out.err != nil {
				continue
			}
			cancel()
			wg.Wait()
			log.Info("action escaped", zap.String("result", out.result.String()))
			return out.result, nil, nil
		}

		pending--
		if out.err == nil {
			cancel()
			wg.Wait()
			log.Info("action resolved", zap.String("action", out.kind.String()))
			return Resolved, out.game, nil
		}
		if errors.Is(out.err, errx.ErrIllegalMove) {
			log.Debug("action branch illegal", zap.String("action", out.kind.String()))
		} else if !isCancellation(out.err) {
			cancel()
			wg.Wait()
			return 0, nil, out.err
		}
		if pending == 0 {
			cancel()
			wg.Wait()
			// 上层取消会让所有分支同时报取消，这不是内容缺陷。
			if ctx.Err() != nil {
				return 0, nil, errx.ErrCancelled.WithCause(ctx.Err())
			}
			return 0, nil, errx.ErrInternal.WithData("player", player).
				WithCause(errNoLegalAction)
		}
	}
}

var errNoLegalAction = errors.New("no legal action available")

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, errx.ErrCancelled)
}

// countingSurface 包装交互面，记下第一次被应答的交互以解锁重开行动。
type countingSurface struct {
	inner port.Surface

	mu    sync.Mutex
	n     int
	armed chan struct{}
}

func newCountingSurface(inner port.Surface) *countingSurface {
	return &countingSurface{inner: inner, armed: make(chan struct{})}
}

func (s *countingSurface) note() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.n == 0 {
		close(s.armed)
	}
	s.n++
}

func (s *countingSurface) OfferChoice(ctx context.Context, player int, candidates []port.Choice, opts port.ChoiceOptions) (port.Choice, error) {
	got, err := s.inner.OfferChoice(ctx, player, candidates, opts)
	if err == nil {
		s.note()
	}
	return got, err
}

func (s *countingSurface) OfferClick(ctx context.Context, player int, control string) error {
	err := s.inner.OfferClick(ctx, player, control)
	if err == nil {
		s.note()
	}
	return err
}
