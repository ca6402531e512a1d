package main

import (
	"encoding/json"
	"log"

	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/milk9111/mapforge/content"
	"github.com/milk9111/mapforge/gamedata"
	"github.com/milk9111/mapforge/session"
)

const baseCellSize = 24

// App is the Ebiten game driving the editor: it owns the widget tree, the
// content store, and the session manager, and translates raw input into
// session events.
type App struct {
	ui      *EditorUI
	store   *content.Store
	manager *session.Manager
	watcher *content.Watcher

	terrainInfo   map[string]gamedata.Object
	furnitureInfo map[string]gamedata.Object
	sprites       *spriteBank

	pixel       *ebiten.Image
	clipboardOK bool

	isPanning          bool
	lastPanX, lastPanY int
	lastTool           session.Tool
	wasPainting        bool
}

func newApp(store *content.Store, catalog *gamedata.Catalog, sprites *spriteBank, historyLimit int) *App {
	a := &App{
		store:         store,
		manager:       session.NewManager(content.NewPaletteFetcher(store), baseCellSize, historyLimit),
		terrainInfo:   make(map[string]gamedata.Object),
		furnitureInfo: make(map[string]gamedata.Object),
		sprites:       sprites,
		lastTool:      session.ToolHand,
	}
	for _, o := range catalog.Terrain {
		a.terrainInfo[o.ID] = o
	}
	for _, o := range catalog.Furniture {
		a.furnitureInfo[o.ID] = o
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard unavailable: %v", err)
	} else {
		a.clipboardOK = true
	}

	a.ui = BuildUI(UICallbacks{
		OnToolSelected: func(tool session.Tool) {
			if s := a.manager.Current(); s != nil {
				s.SetTool(tool)
				a.lastTool = tool
			}
		},
		OnBoxFilled: func(filled bool) {
			if s := a.manager.Current(); s != nil {
				s.SetBoxFilled(filled)
			}
		},
		OnUndo: func() { a.undo() },
		OnRedo: func() { a.redo() },
		OnSave: func() { a.save() },
		OnSearch: func(query string) {
			a.ui.EntityPanel.SetEntries(a.store.Search(query, "mapgen"))
		},
		OnEntitySelected: func(key string) { a.openEntity(key) },
		OnSymbolSelected: func(sym rune) {
			if s := a.manager.Current(); s != nil {
				s.SetSymbol(sym)
			}
		},
	})
	a.ui.EntityPanel.SetEntries(store.Search("", "mapgen"))
	return a
}

func (a *App) openEntity(key string) {
	e, ok := a.store.Entity(key)
	if !ok {
		log.Printf("entity %s not found", key)
		return
	}
	a.manager.Open(e.Record(), key)
}

func (a *App) undo() {
	if s := a.manager.Current(); s != nil {
		s.Undo()
	}
}

func (a *App) redo() {
	if s := a.manager.Current(); s != nil {
		s.Redo()
	}
}

// save serializes the active session back into its record, updates the
// store, and rewrites the dirty pack files.
func (a *App) save() {
	s := a.manager.Current()
	if s == nil {
		return
	}
	record := s.Serialize()
	if record == nil {
		return
	}
	if err := a.store.UpdateEntity(s.Key, record); err != nil {
		log.Printf("save: %v", err)
		return
	}
	if err := a.store.Save(); err != nil {
		log.Printf("save: %v", err)
		return
	}
	s.MarkSaved()
	log.Printf("saved %s", s.Key)
}

// copyRecord puts the active entity's serialized JSON on the clipboard.
func (a *App) copyRecord() {
	s := a.manager.Current()
	if s == nil || !a.clipboardOK {
		return
	}
	record := s.Serialize()
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		log.Printf("copy: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	log.Printf("copied %s", s.Key)
}

func (a *App) refreshSymbolPanel() {
	s := a.manager.Current()
	if s == nil {
		a.ui.SymbolPanel.SetEntries(nil)
		return
	}
	a.ui.SymbolPanel.SetEntries(s.Resolution().Entries())
}

func (a *App) Update() error {
	if a.manager.Poll() {
		a.refreshSymbolPanel()
		a.ui.ToolBar.SetTool(session.ToolHand)
		a.lastTool = session.ToolHand
	}
	a.drainWatcher()

	// Suppress hotkeys while the user is typing in the search box.
	suppressHotkeys := false
	if fw := a.ui.UI.GetFocusedWidget(); fw != nil {
		if _, ok := fw.(*widget.TextInput); ok {
			suppressHotkeys = true
		}
	}
	if !suppressHotkeys {
		a.handleHotkeys()
	}

	s := a.manager.Current()
	if s != nil && s.Tool() != a.lastTool {
		a.ui.ToolBar.SetTool(s.Tool())
		a.lastTool = s.Tool()
	}

	a.ui.UI.Update()
	a.handlePointer(s)
	return nil
}

func (a *App) handleHotkeys() {
	s := a.manager.Current()
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)

	if ctrl {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyZ):
			a.undo()
		case inpututil.IsKeyJustPressed(ebiten.KeyY):
			a.redo()
		case inpututil.IsKeyJustPressed(ebiten.KeyS):
			a.save()
		case inpututil.IsKeyJustPressed(ebiten.KeyC):
			a.copyRecord()
		}
		return
	}

	if s == nil {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		s.SetTool(session.ToolHand)
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		s.SetTool(session.ToolPaint)
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		s.SetTool(session.ToolLine)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.SetTool(session.ToolBox)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		s.SetTool(session.ToolFill)
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		s.SetTool(session.ToolEyedropper)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.CancelAnchor()
	}
}

func (a *App) handlePointer(s *session.Session) {
	if s == nil {
		return
	}

	// Middle mouse drag pans regardless of tool.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		a.isPanning = true
		a.lastPanX, a.lastPanY = ebiten.CursorPosition()
	}
	if a.isPanning && ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		cx, cy := ebiten.CursorPosition()
		s.HandleEvent(session.PointerDrag{DX: float64(cx - a.lastPanX), DY: float64(cy - a.lastPanY)})
		a.lastPanX, a.lastPanY = cx, cy
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		a.isPanning = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		cx, cy := ebiten.CursorPosition()
		s.HandleEvent(session.Wheel{X: float64(cx), Y: float64(cy), Delta: wy})
	}

	// Left-click tool actions are skipped while the cursor is over a widget
	// so toolbar clicks never paint the map underneath.
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && !ebuiinput.UIHovered {
		if s.Tool() == session.ToolHand {
			a.isPanning = true
			a.lastPanX, a.lastPanY = cx, cy
		}
		s.HandleEvent(session.PointerDown{X: x, Y: y})
		a.wasPainting = true
	}
	if a.wasPainting && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if s.Tool() == session.ToolHand {
			s.HandleEvent(session.PointerDrag{DX: x - float64(a.lastPanX), DY: y - float64(a.lastPanY)})
			a.lastPanX, a.lastPanY = cx, cy
		} else {
			s.HandleEvent(session.PointerMove{X: x, Y: y})
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.HandleEvent(session.PointerUp{X: x, Y: y})
		a.wasPainting = false
		if s.Tool() == session.ToolHand {
			a.isPanning = false
		}
	}
}

// drainWatcher reloads pack files edited outside the editor.
func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			if err := a.store.Reload(path); err != nil {
				log.Printf("reload %s: %v", path, err)
				continue
			}
			log.Printf("reloaded %s", path)
			a.ui.EntityPanel.SetEntries(a.store.Search("", "mapgen"))
		case err, ok := <-a.watcher.Errors:
			if !ok {
				a.watcher = nil
				return
			}
			log.Printf("watcher: %v", err)
		default:
			return
		}
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
