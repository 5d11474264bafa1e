package tracex

import (
	"context"
	"testing"
)

func TestGameID_RoundTrip(t *testing.T) {
	ctx := context.Background()

	if _, ok := GameIDFrom(ctx); ok {
		t.Fatalf("空 ctx 不应带 game_id")
	}

	const id = "9f2c4d0e8a6b1735"
	ctx = WithGameID(ctx, id)
	got, ok := GameIDFrom(ctx)
	if !ok || got != id {
		t.Fatalf("game_id 往返失败, got=%q ok=%v", got, ok)
	}
}

func TestTurn_往返且互不覆盖(t *testing.T) {
	ctx := WithTurn(context.Background(), 1, 3)
	ctx = WithPlayer(ctx, 2)

	if era, ok := EraFrom(ctx); !ok || era != 1 {
		t.Fatalf("era 往返失败, got=%d ok=%v", era, ok)
	}
	if turn, ok := TurnFrom(ctx); !ok || turn != 3 {
		t.Fatalf("turn 往返失败, got=%d ok=%v", turn, ok)
	}
	if p, ok := PlayerFrom(ctx); !ok || p != 2 {
		t.Fatalf("player 往返失败, got=%d ok=%v", p, ok)
	}
}
