package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/san-kum/sigilgen/internal/anim"
	"github.com/san-kum/sigilgen/internal/form"
	"github.com/san-kum/sigilgen/internal/palette"
	"github.com/san-kum/sigilgen/internal/session"
	"github.com/san-kum/sigilgen/internal/sigil"
)

func newTestModel(t *testing.T) *model {
	t.Helper()
	p := sigil.DefaultParams()
	p.FieldSize = 16
	p.Iterations = 20
	sess := session.New(p, session.Options{
		Size:   48,
		Anim:   anim.Config{Ticks: 3, Interval: time.Millisecond},
		Seed:   1,
		Logger: log.New(&strings.Builder{}),
	})
	return New(sess, time.Millisecond).(*model)
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(m *model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestAdjustControls(t *testing.T) {
	m := newTestModel(t)

	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.params.Layers != 4 {
		t.Errorf("layers = %d, want 4", m.params.Layers)
	}
	press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	if m.params.Layers != 0 {
		t.Errorf("layers should clamp at 0, got %d", m.params.Layers)
	}

	press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyRight})
	if m.params.Particles {
		t.Error("particles should toggle off")
	}

	for m.cursor < len(form.Controls)-1 {
		press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.params.Theme != palette.ThemeMonochrome {
		t.Errorf("theme should wrap to Monochrome, got %s", m.params.Theme)
	}
}

func TestGenerateAndClear(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("g"))
	if !m.sess.Generated() {
		t.Fatal("expected a generated sigil")
	}
	if !strings.Contains(m.View(), "static") {
		t.Error("view should report a static sigil")
	}
	press(m, runes("c"))
	if m.sess.Generated() {
		t.Error("clear should forget the sigil")
	}
}

func TestSaveBeforeGenerateWarns(t *testing.T) {
	m := newTestModel(t)
	press(m, runes("s"))
	if m.saving {
		t.Error("save prompt should not open without a sigil")
	}
	if !m.statusErr || !strings.Contains(m.status, "generate a sigil") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestSavePrompt(t *testing.T) {
	m := newTestModel(t)
	path := filepath.Join(t.TempDir(), "out.png")

	press(m, runes("g"), runes("s"))
	if !m.saving || m.editBuf != "sigil.png" {
		t.Fatalf("prompt not opened: saving=%v buf=%q", m.saving, m.editBuf)
	}
	m.editBuf = ""
	press(m, runes(path), tea.KeyMsg{Type: tea.KeyEnter})
	if m.saving || m.statusErr {
		t.Fatalf("save failed: %s", m.status)
	}
	if !strings.HasSuffix(m.status, "out.png") {
		t.Errorf("status = %q", m.status)
	}
}

func TestAnimationTicks(t *testing.T) {
	m := newTestModel(t)
	cmd := press(m, runes("a"))
	if cmd == nil {
		t.Fatal("animate should schedule a tick")
	}
	if !m.sess.Animating() {
		t.Fatal("session should be animating")
	}
	now := time.Now()
	for i := 0; i < 10 && m.sess.Animating(); i++ {
		now = now.Add(time.Second)
		cmd = press(m, tickMsg(now))
	}
	if m.sess.Animating() {
		t.Error("animation should finish")
	}
	if cmd != nil {
		t.Error("no tick should be scheduled after the last frame")
	}
}

func TestRestartKeepsOneTickChain(t *testing.T) {
	m := newTestModel(t)
	if cmd := press(m, runes("a")); cmd == nil {
		t.Fatal("first animate should schedule a tick")
	}
	if cmd := press(m, runes("a")); cmd != nil {
		t.Error("restarting a running animation should reuse the pending tick")
	}
	if !m.sess.Animating() {
		t.Fatal("restart should leave the session animating")
	}

	now := time.Now()
	for i := 0; i < 10 && m.sess.Animating(); i++ {
		now = now.Add(time.Second)
		press(m, tickMsg(now))
	}
	if cmd := press(m, runes("a")); cmd == nil {
		t.Error("animate after the chain ended should schedule a new tick")
	}
}

func TestInvalidParamsReported(t *testing.T) {
	m := newTestModel(t)
	m.params.Iterations = 0
	press(m, runes("g"))
	if !m.statusErr || m.sess.Generated() {
		t.Error("invalid params should be reported, not rendered")
	}
}
