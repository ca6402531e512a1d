package main

import (
	"bytes"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/mapforge/session"
)

// UICallbacks are the editor actions the widgets trigger.
type UICallbacks struct {
	OnToolSelected   func(tool session.Tool)
	OnBoxFilled      func(filled bool)
	OnUndo           func()
	OnRedo           func()
	OnSave           func()
	OnSearch         func(query string)
	OnEntitySelected func(key string)
	OnSymbolSelected func(sym rune)
}

// EditorUI bundles the built widget tree with the handles Update needs.
type EditorUI struct {
	UI          *ebitenui.UI
	ToolBar     *ToolBar
	EntityPanel *EntityPanel
	SymbolPanel *SymbolPanel
	FontFace    text.Face
}

func BuildUI(callbacks UICallbacks) *EditorUI {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 14}
	ui.PrimaryTheme = newTheme(&fontFace)

	toolbarContainer, toolBar := buildToolBar(
		ui.PrimaryTheme, &fontFace,
		callbacks.OnToolSelected,
		callbacks.OnBoxFilled,
		callbacks.OnUndo,
		callbacks.OnRedo,
		callbacks.OnSave,
	)
	entityPanel := buildEntityPanel(ui.PrimaryTheme, &fontFace, callbacks.OnSearch, callbacks.OnEntitySelected)
	symbolPanel := buildSymbolPanel(ui.PrimaryTheme, &fontFace, callbacks.OnSymbolSelected)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	entityPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	symbolPanel.Container.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	toolbarContainer.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	root.AddChild(entityPanel.Container)
	root.AddChild(symbolPanel.Container)
	root.AddChild(toolbarContainer)
	ui.Container = root

	return &EditorUI{
		UI:          ui,
		ToolBar:     toolBar,
		EntityPanel: entityPanel,
		SymbolPanel: symbolPanel,
		FontFace:    fontFace,
	}
}
