package tween

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, cfg Config) *Tween {
	t.Helper()
	tw, err := New(cfg)
	require.NoError(t, err)
	return tw
}

func tick(t *testing.T, tw *Tween, delta float64, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, tw.Update(0, delta))
	}
}

func TestLinearQuarterTicks(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{
		"targets":  target,
		"duration": 1000,
		"ease":     "Linear",
		"props":    map[string]interface{}{"x": 100},
	})

	for i, want := range []float64{25, 50, 75, 100} {
		require.NoError(t, tw.Update(float64(i*250), 250))
		assert.Equal(t, want, target["x"])
		assert.Equal(t, i == 3, tw.Track("x").IsComplete(), "tick %d", i+1)
	}
	assert.True(t, tw.IsComplete())
	assert.False(t, tw.IsRunning())
	assert.Equal(t, 1.0, tw.Progress())
}

func TestYoyoReturnsToStart(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{
		"targets":  target,
		"duration": 1000,
		"props":    map[string]interface{}{"x": map[string]interface{}{"value": 100, "yoyo": true}},
	})

	tick(t, tw, 1000, 1)
	assert.Equal(t, 100.0, target["x"])
	assert.True(t, tw.Track("x").Stage(0).Backward())
	assert.False(t, tw.IsComplete())

	tick(t, tw, 1000, 1)
	assert.Equal(t, 0.0, target["x"])
	assert.True(t, tw.IsComplete())
}

func TestYoyoMidwayOnReturn(t *testing.T) {
	target := Values{"x": 10}
	tw := mustNew(t, Config{
		"targets": target,
		"yoyo":    true,
		"x":       30,
	})

	tick(t, tw, 1000, 1)
	tick(t, tw, 500, 1)
	assert.Equal(t, 20.0, target["x"])
}

func TestChainUsesOwnDurations(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{
		"targets":  target,
		"duration": 1000,
		"props": map[string]interface{}{
			"x": []interface{}{
				map[string]interface{}{"value": 50},
				map[string]interface{}{"value": 0, "duration": 2000},
			},
		},
	})
	tr := tw.Track("x")
	assert.Equal(t, 3000.0, tr.TotalDuration())

	tick(t, tw, 1000, 1)
	assert.Equal(t, 50.0, target["x"])
	assert.Equal(t, 1, tr.Current())
	assert.Equal(t, 50.0, tr.Stage(1).Start())

	tick(t, tw, 1000, 1)
	assert.Equal(t, 25.0, target["x"])

	tick(t, tw, 1000, 1)
	assert.Equal(t, 0.0, target["x"])
	assert.True(t, tr.IsComplete())
}

func TestChainEntriesInheritTweenDefaultsNotPreviousEntry(t *testing.T) {
	tw := mustNew(t, Config{
		"targets":  Values{"x": 0},
		"duration": 400,
		"x": []interface{}{
			map[string]interface{}{"value": 1, "duration": 100},
			map[string]interface{}{"value": 2},
		},
	})
	tr := tw.Track("x")
	assert.Equal(t, 100.0, tr.Stage(0).Duration())
	assert.Equal(t, 400.0, tr.Stage(1).Duration())
}

func TestOvershootCarriesIntoNextStage(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{
		"targets":  target,
		"duration": 1000,
		"x": []interface{}{
			map[string]interface{}{"value": 100},
			map[string]interface{}{"value": 200},
		},
	})

	tick(t, tw, 1250, 1)
	tr := tw.Track("x")
	assert.Equal(t, 1, tr.Current())
	assert.Equal(t, 250.0, tr.Stage(1).Elapsed())
	assert.Equal(t, 125.0, target["x"])

	tick(t, tw, 750, 1)
	assert.Equal(t, 200.0, target["x"])
	assert.True(t, tw.IsComplete())
}

func TestOvershootCascadesThroughShortStages(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{
		"targets":  target,
		"duration": 100,
		"x": []interface{}{
			map[string]interface{}{"value": 1},
			map[string]interface{}{"value": 2},
			map[string]interface{}{"value": 3},
		},
	})

	tick(t, tw, 250, 1)
	tr := tw.Track("x")
	assert.Equal(t, 2, tr.Current())
	assert.Equal(t, 50.0, tr.Stage(2).Elapsed())
	assert.Equal(t, 2.5, target["x"])
}

func TestRepeatRunsStageNPlusOneTimes(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{
		"targets":  target,
		"duration": 100,
		"repeat":   3,
		"x":        10,
	})
	repeats := 0
	tw.EventCallback(OnRepeat, func(args EventArgs) error {
		repeats++
		assert.Equal(t, "x", args.Key)
		return nil
	}, nil, nil)

	tick(t, tw, 100, 3)
	assert.False(t, tw.IsComplete())
	assert.Equal(t, 3, repeats)

	// fourth and last pass
	tick(t, tw, 50, 1)
	assert.Equal(t, 5.0, target["x"])
	tick(t, tw, 50, 1)
	assert.True(t, tw.IsComplete())
	assert.Equal(t, 3, repeats)
	assert.Equal(t, 10.0, target["x"])
}

func TestRepeatWithYoyoReplaysBothLegs(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{
		"targets":  target,
		"duration": 100,
		"x":        map[string]interface{}{"value": 10, "yoyo": true, "repeat": 1},
	})
	tick(t, tw, 100, 3)
	assert.Equal(t, 10.0, target["x"])
	assert.False(t, tw.IsComplete())
	tick(t, tw, 100, 1)
	assert.Equal(t, 0.0, target["x"])
	assert.True(t, tw.IsComplete())
}

func TestLoopNeverCompletes(t *testing.T) {
	for name, cfg := range map[string]Config{
		"loop":      {"targets": Values{"x": 0}, "duration": 100, "loop": true, "x": 1},
		"repeat -1": {"targets": Values{"x": 0}, "duration": 100, "repeat": -1, "x": 1},
		"stage":     {"targets": Values{"x": 0}, "duration": 100, "x": map[string]interface{}{"value": 1, "loop": true}},
	} {
		t.Run(name, func(t *testing.T) {
			tw := mustNew(t, cfg)
			assert.True(t, tw.Looping())
			tick(t, tw, 70, 100)
			assert.False(t, tw.IsComplete())
			assert.True(t, tw.IsRunning())
		})
	}
}

func TestProgressBounded(t *testing.T) {
	tw := mustNew(t, Config{
		"targets":  Values{"x": 0, "y": 0},
		"duration": 300,
		"ease":     "Back.easeOut",
		"x":        map[string]interface{}{"value": 5, "yoyo": true},
		"y":        []interface{}{map[string]interface{}{"value": 1}, map[string]interface{}{"value": 2, "duration": 50}},
	})
	for i := 0; i < 20; i++ {
		require.NoError(t, tw.Update(0, 37))
		for _, key := range tw.Keys() {
			tr := tw.Track(key)
			s := tr.Stage(tr.Current())
			assert.GreaterOrEqual(t, s.Progress(), 0.0)
			assert.LessOrEqual(t, s.Progress(), 1.0)
			assert.LessOrEqual(t, s.Elapsed(), s.Duration())
		}
		assert.LessOrEqual(t, tw.Progress(), 1.0)
	}
	assert.True(t, tw.IsComplete())
}

func TestDelayGatesEachPass(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{
		"targets":  target,
		"duration": 100,
		"delay":    50,
		"x":        map[string]interface{}{"value": 10, "yoyo": true},
	})

	tick(t, tw, 25, 1)
	assert.Equal(t, 0.0, target["x"])
	assert.Equal(t, 0.0, tw.Track("x").Stage(0).Elapsed())

	tick(t, tw, 75, 1)
	assert.Equal(t, 5.0, target["x"])

	tick(t, tw, 50, 1)
	assert.Equal(t, 10.0, target["x"])

	// the return leg waits again
	tick(t, tw, 50, 1)
	assert.Equal(t, 10.0, target["x"])
	tick(t, tw, 100, 1)
	assert.Equal(t, 0.0, target["x"])
}

func TestStartValueCapturedOnActivation(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{"targets": target, "duration": 100, "x": 100})

	target["x"] = 50
	tick(t, tw, 50, 1)
	assert.Equal(t, 75.0, target["x"])
	assert.Equal(t, 50.0, tw.Track("x").Stage(0).Start())
}

func TestBroadcastWritesEveryTarget(t *testing.T) {
	a, b, c := Values{"x": 0}, Values{"x": 7}, Values{}
	tw := mustNew(t, Config{
		"targets":  []Target{a, b, c},
		"duration": 100,
		"x":        10,
	})
	tick(t, tw, 50, 1)
	assert.Equal(t, 5.0, a["x"])
	assert.Equal(t, 5.0, b["x"])
	assert.Equal(t, 5.0, c["x"])
}

func TestZeroDurationCompletesOnFirstTick(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{"targets": target, "duration": 0, "x": 4})
	tick(t, tw, 16, 1)
	assert.Equal(t, 4.0, target["x"])
	assert.True(t, tw.IsComplete())
}

func TestUseFramesCountsFrames(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{"targets": target, "useFrames": true, "duration": 4, "x": 8})
	assert.True(t, tw.UseFrames())
	tick(t, tw, 1, 2)
	assert.Equal(t, 4.0, target["x"])
	tick(t, tw, 1, 2)
	assert.True(t, tw.IsComplete())
}

func TestCallbacksFireOnce(t *testing.T) {
	counts := map[Event]int{}
	var scopes []interface{}
	var params []interface{}
	count := func(args EventArgs) error {
		counts[args.Type]++
		scopes = append(scopes, args.Scope)
		params = args.Params
		return nil
	}

	tw := mustNew(t, Config{
		"targets":       Values{"x": 0, "y": 0},
		"callbackScope": "scene",
		"x":             map[string]interface{}{"value": 1, "duration": 100},
		"y":             map[string]interface{}{"value": 1, "duration": 300},
	})
	tw.EventCallback(OnStart, count, nil, nil).
		EventCallback(OnUpdate, count, nil, nil).
		EventCallback(OnComplete, count, []interface{}{"done", 3}, "own")

	tick(t, tw, 100, 5)
	assert.Equal(t, 1, counts[OnStart])
	assert.Equal(t, 3, counts[OnUpdate])
	assert.Equal(t, 1, counts[OnComplete])
	assert.Equal(t, "scene", scopes[0])
	assert.Equal(t, "own", scopes[len(scopes)-1])
	assert.Equal(t, []interface{}{"done", 3}, params)
}

func TestEventCallbackReplaces(t *testing.T) {
	tw := mustNew(t, Config{"targets": Values{}, "duration": 10, "x": 1})
	first, second := 0, 0
	tw.EventCallback(OnComplete, func(EventArgs) error { first++; return nil }, nil, nil)
	tw.EventCallback(OnComplete, func(EventArgs) error { second++; return nil }, nil, nil)
	tick(t, tw, 10, 1)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestOnCompleteDelay(t *testing.T) {
	tw := mustNew(t, Config{
		"targets":         Values{"x": 0},
		"duration":        100,
		"onCompleteDelay": 200,
		"x":               1,
	})
	completed := 0
	tw.EventCallback(OnComplete, func(EventArgs) error { completed++; return nil }, nil, nil)

	tick(t, tw, 100, 1)
	assert.Equal(t, 0, completed)
	assert.True(t, tw.IsRunning())
	tick(t, tw, 100, 1)
	assert.Equal(t, 0, completed)
	tick(t, tw, 100, 1)
	assert.Equal(t, 1, completed)
	assert.True(t, tw.IsComplete())
	tick(t, tw, 100, 3)
	assert.Equal(t, 1, completed)
}

func TestCallbackErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	tw := mustNew(t, Config{"targets": Values{}, "x": 1})
	tw.EventCallback(OnUpdate, func(EventArgs) error { return boom }, nil, nil)
	assert.ErrorIs(t, tw.Update(0, 16), boom)
}

func TestPauseAccumulatesNothing(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{"targets": target, "duration": 100, "x": 100})
	tick(t, tw, 25, 1)
	tw.Pause()
	tick(t, tw, 25, 10)
	assert.Equal(t, 25.0, target["x"])
	tw.Resume()
	tick(t, tw, 25, 1)
	assert.Equal(t, 50.0, target["x"])
}

func TestPausedAndAutoStartConfig(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{"targets": target, "paused": true, "duration": 100, "x": 100})
	assert.True(t, tw.IsPaused())
	tick(t, tw, 50, 1)
	assert.Equal(t, 0.0, target["x"])

	idle := mustNew(t, Config{"targets": target, "autoStart": false, "duration": 100, "x": 100})
	assert.False(t, idle.IsRunning())
	tick(t, idle, 50, 1)
	assert.Equal(t, 0.0, target["x"])
	idle.Play()
	tick(t, idle, 50, 1)
	assert.Equal(t, 50.0, target["x"])
}

func TestStopAndPlay(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{"targets": target, "duration": 100, "x": 100})
	tick(t, tw, 40, 1)
	tw.Stop()
	tick(t, tw, 40, 1)
	assert.Equal(t, 40.0, target["x"])
	tw.Play()
	tick(t, tw, 40, 1)
	assert.Equal(t, 80.0, target["x"])
}

func TestRestartRestoresOrigin(t *testing.T) {
	target := Values{"x": 3}
	tw := mustNew(t, Config{"targets": target, "duration": 100, "x": 13})
	tick(t, tw, 100, 1)
	require.True(t, tw.IsComplete())

	tw.Play()
	assert.Equal(t, 3.0, target["x"])
	assert.False(t, tw.IsComplete())
	tick(t, tw, 50, 1)
	assert.Equal(t, 8.0, target["x"])
}

func TestSeek(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{
		"targets":  target,
		"duration": 100,
		"x": []interface{}{
			map[string]interface{}{"value": 10},
			map[string]interface{}{"value": 20},
		},
	})
	fired := 0
	tw.EventCallback(OnUpdate, func(EventArgs) error { fired++; return nil }, nil, nil)

	tw.Seek(150)
	assert.Equal(t, 15.0, target["x"])
	assert.Equal(t, 0, fired)
	assert.Equal(t, 0.75, tw.Progress())

	tw.Seek(50)
	assert.Equal(t, 5.0, target["x"])
	assert.Equal(t, 0, tw.Track("x").Current())

	tw.Seek(500)
	assert.False(t, tw.IsComplete())
	completed := 0
	tw.EventCallback(OnComplete, func(EventArgs) error { completed++; return nil }, nil, nil)
	tick(t, tw, 10, 1)
	assert.True(t, tw.IsComplete())
	assert.Equal(t, 1, completed)
	assert.Equal(t, 20.0, target["x"])
}

func TestFieldsTarget(t *testing.T) {
	var brightness float64
	tw := mustNew(t, Config{
		"targets":    Fields{"brightness": &brightness},
		"duration":   "1s",
		"brightness": 1,
	})
	tick(t, tw, 500, 1)
	assert.Equal(t, 0.5, brightness)
}

func TestSeekKeepsStoppedTweenStopped(t *testing.T) {
	target := Values{"x": 0}
	idle := mustNew(t, Config{"targets": target, "autoStart": false, "duration": 100, "ease": "Linear", "x": 100})

	idle.Seek(50)
	assert.Equal(t, 50.0, target["x"])
	assert.False(t, idle.IsRunning())

	tick(t, idle, 10, 1)
	assert.Equal(t, 50.0, target["x"])

	idle.Play()
	tick(t, idle, 10, 1)
	assert.Equal(t, 60.0, target["x"])

	idle.Stop()
	idle.Seek(20)
	assert.Equal(t, 20.0, target["x"])
	assert.False(t, idle.IsRunning())
}

func TestNegativeDeltaIsIgnored(t *testing.T) {
	target := Values{"x": 0}
	tw := mustNew(t, Config{"targets": target, "delay": 100, "duration": 100, "ease": "Linear", "x": 100})

	tick(t, tw, -50, 1)
	tick(t, tw, 150, 1)
	assert.Equal(t, 50.0, target["x"])

	done := 0
	held := mustNew(t, Config{"targets": Values{"y": 0}, "duration": 100, "onCompleteDelay": 50, "y": 1})
	held.EventCallback(OnComplete, func(EventArgs) error { done++; return nil }, nil, nil)
	tick(t, held, 100, 1)
	tick(t, held, -30, 1)
	assert.Equal(t, 0, done)
	tick(t, held, 50, 1)
	assert.Equal(t, 1, done)
	assert.True(t, held.IsComplete())
}
