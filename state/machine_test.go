package state

import (
	"fmt"
	"testing"
)

func TestMachineQueuesUntilApply(t *testing.T) {
	m := NewMachine("fade", FadeNone)
	var log []string
	m.OnEnter(FadeIn, func() { log = append(log, "enter-in") })
	m.OnChange(func(from, to FadeState) { log = append(log, from.String()+">"+to.String()) })

	m.Set(FadeIn)
	if !m.Is(FadeNone) {
		t.Fatalf("Set must not change state before Apply, got %v", m.Get())
	}
	if !m.Apply() {
		t.Fatal("expected Apply to commit")
	}
	if !m.Is(FadeIn) {
		t.Fatalf("expected FadeIn, got %v", m.Get())
	}
	want := []string{"None>FadeIn", "enter-in"}
	if len(log) != len(want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
	if m.Apply() {
		t.Fatal("second Apply without Set must be a no-op")
	}
}

func TestMachineSameStateNoHooks(t *testing.T) {
	m := NewMachine("bgm", BGMChanged)
	called := false
	m.OnEnter(BGMChanged, func() { called = true })
	m.Set(BGMChanged)
	if m.Apply() || called {
		t.Fatal("re-setting the current state must not fire hooks")
	}
}

func TestMachinesDeferHookWrites(t *testing.T) {
	ms := NewMachines(AppInGame)
	ms.Fade.OnEnter(FadeInFinished, func() { ms.Transition.Set(TransitionFinished) })

	ms.Transition.Set(TransitionStarted)
	ms.Fade.Set(FadeIn)
	ms.Apply()
	if !ms.Transition.Is(TransitionStarted) || !ms.Fade.Is(FadeIn) {
		t.Fatalf("expected Started/FadeIn, got %v/%v", ms.Transition.Get(), ms.Fade.Get())
	}

	ms.Fade.Set(FadeInFinished)
	ms.Apply()
	if !ms.Transition.Is(TransitionStarted) {
		t.Fatalf("hook write must wait for the next apply, got %v", ms.Transition.Get())
	}
	ms.Apply()
	if !ms.Transition.Is(TransitionFinished) {
		t.Fatalf("expected Finished, got %v", ms.Transition.Get())
	}
}

func TestStateNames(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{AppInGame.String(), "InGame"},
		{TransitionFinished.String(), "Finished"},
		{FadeInFinished.String(), "FadeInFinished"},
		{BGMChanging.String(), "Changing"},
		{InteractionReady.String(), "Ready"},
		{ConversationStarted.String(), "Started"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Fatalf("expected %q, got %q", c.want, c.got)
		}
	}
}

func TestMachinesTrace(t *testing.T) {
	ms := NewMachines(AppMainMenu)
	var lines []string
	ms.Trace(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})

	ms.App.Set(AppInGame)
	ms.Fade.Set(FadeIn)
	ms.Apply()
	ms.Fade.Set(FadeIn)
	ms.Apply()

	want := []string{
		"state: app MainMenu -> InGame",
		"state: fade None -> FadeIn",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, lines)
		}
	}
}
