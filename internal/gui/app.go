package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/sigilgen/internal/form"
	"github.com/san-kum/sigilgen/internal/session"
	"github.com/san-kum/sigilgen/internal/sigil"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
	ColError   = rl.NewColor(220, 70, 70, 255)
)

const (
	winW, winH = 1280, 720
	canvasX    = 620
	canvasY    = 60
	canvasSide = 600
	rowY       = 160
	rowH       = 32
)

type action int

const (
	actRender action = iota
	actAnimate
	actSave
	actClear
)

type button struct {
	label string
	act   action
	rect  rl.Rectangle
}

var buttons = []button{
	{"Render", actRender, rl.NewRectangle(50, 470, 120, 36)},
	{"Animate", actAnimate, rl.NewRectangle(180, 470, 120, 36)},
	{"Save", actSave, rl.NewRectangle(310, 470, 120, 36)},
	{"Clear", actClear, rl.NewRectangle(440, 470, 120, 36)},
}

// App is the raylib window editing and previewing a session.
type App struct {
	Session *session.Session
	Dialogs session.Dialogs
	Params  sigil.Params
	Font    rl.Font

	cursor  int
	editing bool
	editBuf string

	status    string
	statusErr bool

	tex    rl.Texture2D
	hasTex bool
	dirty  bool
}

// initWindow opens the 1280x720 window at 60 FPS.
func initWindow() {
	rl.InitWindow(winW, winH, "sigilgen")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont returns the font used for every label.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp creates an app over sess. The window must already be open.
func NewApp(sess *session.Session, dialogs session.Dialogs) *App {
	return &App{
		Session: sess,
		Dialogs: dialogs,
		Params:  sess.Params(),
		Font:    loadFont(),
		dirty:   true,
	}
}

// Run opens the window and blocks until it is closed.
func Run(sess *session.Session, dialogs session.Dialogs) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(sess, dialogs)
	defer app.unload()
	app.RunLoop()
}

// RunLoop updates and draws until the window is closed.
func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Update handles input and steps any running animation.
func (a *App) Update() {
	if a.editing {
		a.editKeys()
	} else {
		a.navKeys()
	}
	a.mouse()

	if a.Session.Advance(time.Now()) {
		a.dirty = true
	}
	if a.dirty {
		a.upload()
	}
}

// navKeys moves between controls and triggers the keyboard shortcuts.
func (a *App) navKeys() {
	c := form.Controls[a.cursor]
	switch {
	case rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ):
		a.cursor = min(a.cursor+1, len(form.Controls)-1)
	case rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK):
		a.cursor = max(a.cursor-1, 0)
	case rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL):
		c.Adjust(&a.Params, 1)
	case rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH):
		c.Adjust(&a.Params, -1)
	case rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace):
		a.activate(a.cursor)
	case rl.IsKeyPressed(rl.KeyR):
		a.do(actRender)
	case rl.IsKeyPressed(rl.KeyA):
		a.do(actAnimate)
	case rl.IsKeyPressed(rl.KeyS):
		a.do(actSave)
	case rl.IsKeyPressed(rl.KeyC):
		a.do(actClear)
	}
}

// editKeys feeds typed digits into the focused integer field.
func (a *App) editKeys() {
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		if (ch >= '0' && ch <= '9') && len(a.editBuf) < 6 {
			a.editBuf += string(ch)
		}
	}
	switch {
	case rl.IsKeyPressed(rl.KeyBackspace):
		if len(a.editBuf) > 0 {
			a.editBuf = a.editBuf[:len(a.editBuf)-1]
		}
	case rl.IsKeyPressed(rl.KeyEscape):
		a.editing = false
	case rl.IsKeyPressed(rl.KeyEnter):
		a.editing = false
		if err := form.Controls[a.cursor].Set(&a.Params, a.editBuf); err != nil {
			a.fail(err.Error())
		}
	}
}

// mouse handles clicks on controls and buttons.
func (a *App) mouse() {
	if !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return
	}
	pos := rl.GetMousePosition()
	for i := range form.Controls {
		if rl.CheckCollisionPointRec(pos, rowRect(i)) {
			a.cursor = i
			a.activate(i)
			return
		}
	}
	for _, b := range buttons {
		if rl.CheckCollisionPointRec(pos, b.rect) {
			a.do(b.act)
			return
		}
	}
}

// activate edits an integer field, flips a checkbox or steps the theme.
func (a *App) activate(i int) {
	c := form.Controls[i]
	if c.Kind == form.Int {
		a.editing = true
		a.editBuf = c.Value(a.Params)
		return
	}
	c.Adjust(&a.Params, 1)
}

// do runs a button action against the session.
func (a *App) do(act action) {
	a.editing = false
	switch act {
	case actRender:
		if a.apply() {
			a.report(a.Session.Generate(), "sigil generated")
		}
	case actAnimate:
		if a.apply() {
			a.report(a.Session.Animate(time.Now()), "animating")
		}
	case actSave:
		// outcomes are reported by the dialogs
		_ = a.Session.SaveWithDialogs(a.Dialogs)
	case actClear:
		a.Session.Clear()
		a.setStatus("cleared")
	}
	a.dirty = true
}

// apply pushes the edited parameters into the session.
func (a *App) apply() bool {
	if err := a.Session.SetParams(a.Params); err != nil {
		a.fail(err.Error())
		return false
	}
	return true
}

func (a *App) report(err error, ok string) {
	if err != nil {
		a.fail(err.Error())
		return
	}
	a.setStatus(ok)
}

func (a *App) setStatus(s string) { a.status, a.statusErr = s, false }
func (a *App) fail(s string)      { a.status, a.statusErr = s, true }

// upload replaces the canvas texture with the session's current image.
func (a *App) upload() {
	a.dirty = false
	img := rl.NewImageFromImage(a.Session.Image())
	if a.hasTex {
		rl.UnloadTexture(a.tex)
	}
	a.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(a.tex, rl.FilterBilinear)
	rl.UnloadImage(img)
	a.hasTex = true
}

// unload frees the canvas texture.
func (a *App) unload() {
	if a.hasTex {
		rl.UnloadTexture(a.tex)
		a.hasTex = false
	}
}

// Draw renders one frame of the window.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawText("sigilgen", 50, 50, 40, ColSelect)
	a.drawText("procedural sigil generator", 50, 100, 16, ColTextDim)
	a.drawControls()
	a.drawButtons()
	a.drawCanvas()
	a.drawStatus()

	a.drawText("ARROWS: SELECT/ADJUST  ENTER: EDIT  R: RENDER  A: ANIMATE  S: SAVE  C: CLEAR", 50, 680, 14, ColTextDim)
	rl.EndDrawing()
}

func rowRect(i int) rl.Rectangle {
	return rl.NewRectangle(50, float32(rowY+i*rowH), 500, rowH-4)
}

func (a *App) drawControls() {
	for i, c := range form.Controls {
		y := rowY + i*rowH
		col := ColText
		prefix := "  "
		if i == a.cursor {
			col = ColSelect
			prefix = "> "
		}
		a.drawText(prefix+c.Name, 50, y, 20, col)

		switch c.Kind {
		case form.Toggle:
			box := rl.NewRectangle(360, float32(y+2), 18, 18)
			rl.DrawRectangleLinesEx(box, 1, col)
			if c.Checked(a.Params) {
				rl.DrawRectangleRec(rl.NewRectangle(box.X+4, box.Y+4, 10, 10), col)
			}
		case form.Int:
			val := c.Value(a.Params)
			if a.editing && i == a.cursor {
				val = a.editBuf + "_"
			}
			rl.DrawRectangleLinesEx(rl.NewRectangle(356, float32(y-2), 120, 26), 1, ColGrid)
			a.drawText(val, 364, y, 20, col)
		default:
			a.drawText("< "+c.Value(a.Params)+" >", 356, y, 20, col)
		}
	}
}

func (a *App) drawButtons() {
	mouse := rl.GetMousePosition()
	for _, b := range buttons {
		col := ColText
		if rl.CheckCollisionPointRec(mouse, b.rect) {
			col = ColSelect
		}
		rl.DrawRectangleLinesEx(b.rect, 1, col)
		w := rl.MeasureTextEx(a.Font, b.label, 18, 1).X
		a.drawText(b.label, int(b.rect.X+(b.rect.Width-w)/2), int(b.rect.Y+9), 18, col)
	}
}

// drawCanvas draws the sigil texture with its state and seed above it.
func (a *App) drawCanvas() {
	dst := rl.NewRectangle(canvasX, canvasY, canvasSide, canvasSide)
	if a.hasTex {
		src := rl.NewRectangle(0, 0, float32(a.tex.Width), float32(a.tex.Height))
		rl.DrawTexturePro(a.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	}
	rl.DrawRectangleLinesEx(dst, 1, ColGrid)

	state := "EMPTY"
	switch {
	case a.Session.Animating():
		state = "ANIMATING"
	case a.Session.HasAnimation():
		state = "ANIMATION DONE"
	case a.Session.Generated():
		state = "STATIC"
	}
	a.drawText(state, canvasX, canvasY-28, 16, ColAccent)
	a.drawText(fmt.Sprintf("seed %d", a.Session.Seed()), canvasX+canvasSide-200, canvasY-28, 14, ColTextDim)
}

func (a *App) drawStatus() {
	if a.status == "" {
		return
	}
	col := ColAccent
	if a.statusErr {
		col = ColError
	}
	a.drawText(a.status, 50, 530, 16, col)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
