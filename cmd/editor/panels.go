package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/mapforge/palette"
)

// EntityEntry is one selectable map entity in the browser list.
type EntityEntry struct {
	Key string
}

// EntityPanel is the left-hand browser: a search box over every loaded
// mapgen entity.
type EntityPanel struct {
	Container *widget.Container
	list      *widget.List
	search    *widget.TextInput
}

// SetEntries replaces the visible entity list.
func (p *EntityPanel) SetEntries(keys []string) {
	entries := make([]any, len(keys))
	for i, k := range keys {
		entries[i] = EntityEntry{Key: k}
	}
	p.list.SetEntries(entries)
}

func buildEntityPanel(
	theme *widget.Theme,
	fontFace *text.Face,
	onSearch func(query string),
	onSelected func(key string),
) *EntityPanel {
	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(240, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{24, 24, 28, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	label := widget.NewLabel(
		widget.LabelOpts.Text("Maps", fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)
	panel.AddChild(label)

	search := widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, 28),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{45, 45, 52, 255}),
			Disabled: solidNineSlice(color.RGBA{30, 30, 34, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.White,
			Disabled: color.Gray{Y: 120},
			Caret:    color.White,
		}),
		widget.TextInputOpts.Face(fontFace),
		widget.TextInputOpts.Placeholder("search"),
		widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			if onSearch != nil {
				onSearch(args.InputText)
			}
		}),
	)
	panel.AddChild(search)

	list := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if entry, ok := e.(EntityEntry); ok {
				return entry.Key
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if entry, ok := args.Entry.(EntityEntry); ok && onSelected != nil {
				onSelected(entry.Key)
			}
		}),
	)
	panel.AddChild(list)

	return &EntityPanel{Container: panel, list: list, search: search}
}

// SymbolEntryItem is one resolved symbol row in the right-hand panel.
type SymbolEntryItem struct {
	Entry palette.SymbolEntry
}

func (it SymbolEntryItem) label() string {
	e := it.Entry
	where := "inline"
	if e.Source.Kind == palette.SourceExternal {
		where = e.Source.PaletteID
	}
	terrain := e.Terrain
	if terrain == "" {
		terrain = "-"
	}
	if e.Furniture != "" {
		return fmt.Sprintf("%c  %s / %s  (%s)", e.Symbol, terrain, e.Furniture, where)
	}
	return fmt.Sprintf("%c  %s  (%s)", e.Symbol, terrain, where)
}

// SymbolPanel lists the active entity's resolved symbols; selecting one sets
// the brush.
type SymbolPanel struct {
	Container *widget.Container
	list      *widget.List
}

// SetEntries replaces the symbol rows with a fresh resolution.
func (p *SymbolPanel) SetEntries(entries []palette.SymbolEntry) {
	items := make([]any, len(entries))
	for i, e := range entries {
		items[i] = SymbolEntryItem{Entry: e}
	}
	p.list.SetEntries(items)
}

func buildSymbolPanel(
	theme *widget.Theme,
	fontFace *text.Face,
	onSelected func(sym rune),
) *SymbolPanel {
	panel := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(260, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{24, 24, 28, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	label := widget.NewLabel(
		widget.LabelOpts.Text("Symbols", fontFace, &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}),
	)
	panel.AddChild(label)

	list := widget.NewList(
		widget.ListOpts.Entries([]any{}),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if item, ok := e.(SymbolEntryItem); ok {
				return item.label()
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if item, ok := args.Entry.(SymbolEntryItem); ok && onSelected != nil {
				onSelected(item.Entry.Symbol)
			}
		}),
	)
	panel.AddChild(list)

	return &SymbolPanel{Container: panel, list: list}
}
