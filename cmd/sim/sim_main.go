package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"Brassworks/internal/engine/boardgeo"
	"Brassworks/internal/engine/controller"
	"Brassworks/internal/engine/port"
	"Brassworks/internal/engine/state"
	"Brassworks/internal/engine/surface"
	"Brassworks/internal/shared/engineconfig"
	"Brassworks/internal/shared/gamedata"
	"Brassworks/internal/shared/logs"
	"Brassworks/modules/kit/logx"
)

// sim 在进程内用策略交互面跑完一整局并打出终局得分。
// 它是被排除在引擎之外的呈现层的替身：只为验证接线，不做渲染。
func main() {
	engineconfig.Load("")
	if err := logs.Init("sim", engineconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", engineconfig.Conf))

	data, err := gamedata.Load(engineconfig.Conf.GameData)
	if err != nil {
		logs.Error("load gamedata failed", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed := engineconfig.Conf.Logic.Seed
	if seed == 0 {
		seed = rand.Int63()
	}
	// 竞速分支会并发进来，rand.Rand 不是并发安全的。
	policyRng := rand.New(rand.NewSource(seed + 1))
	var rngMu sync.Mutex
	surf := &surface.PolicySurface{
		PickChoice: func(player int, candidates []port.Choice, opts port.ChoiceOptions) port.Choice {
			rngMu.Lock()
			defer rngMu.Unlock()
			return candidates[policyRng.Intn(len(candidates))]
		},
	}
	env := &port.Env{
		Surface:           surf,
		Notify:            consoleNotifier{},
		Query:             boardgeo.New(),
		Delay:             port.NopDelayer{},
		Log:               logx.NewZapLogger(logs.Raw()),
		AllowDrainMarkets: engineconfig.Conf.Logic.AllowDrainMarkets,
	}

	g := state.NewGame(data, []string{"alice", "bob"})
	ctrl := controller.New(env, controller.Config{
		Seed:     seed,
		Tutorial: engineconfig.Conf.Logic.Tutorial,
	})

	final, scores, err := ctrl.Run(ctx, g)
	if err != nil {
		logx.LogFatalError(env.Log, "game failed", err)
		os.Exit(1)
	}
	for _, s := range scores {
		logs.Info("final score",
			zap.String("player", s.Name),
			zap.Int("victory_points", s.VictoryPoints),
			zap.Int("money", final.Players[s.Player].Money),
			zap.Int("interactions", surf.Interactions()))
	}
}

// consoleNotifier 把牌桌消息直接写进日志。
type consoleNotifier struct{}

func (consoleNotifier) Set(format string, args ...any) {
	logs.Info("table", zap.String("message", fmt.Sprintf(format, args...)))
}

func (consoleNotifier) Add(format string, args ...any) {
	logs.Info("table", zap.String("message", fmt.Sprintf(format, args...)))
}
