package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/mapforge/session"
)

var toolOrder = []session.Tool{
	session.ToolHand,
	session.ToolPaint,
	session.ToolLine,
	session.ToolBox,
	session.ToolFill,
	session.ToolEyedropper,
}

// ToolBar keeps the toolbar radio group in sync with the active tool.
type ToolBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
	boxFill *widget.Button
}

// SetTool activates the button for the given tool without firing its
// selection callback twice.
func (tb *ToolBar) SetTool(t session.Tool) {
	for i, tool := range toolOrder {
		if tool == t {
			tb.group.SetActive(tb.buttons[i])
			return
		}
	}
}

func buildToolBar(
	theme *widget.Theme,
	fontFace *text.Face,
	onToolSelected func(tool session.Tool),
	onBoxFilled func(filled bool),
	onUndo, onRedo, onSave func(),
) (*widget.Container, *ToolBar) {
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.White,
		Hover:    color.White,
		Pressed:  color.RGBA{255, 255, 160, 255},
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(420, 44),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{34, 34, 40, 255})),
	)

	var toolButtons []*widget.Button
	for _, tool := range toolOrder {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(tool.String(), fontFace, buttonTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(56, 36),
			),
		)
		toolButtons = append(toolButtons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(toolButtons))
	for _, b := range toolButtons {
		elements = append(elements, b)
	}
	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if onToolSelected == nil {
				return
			}
			for idx, b := range toolButtons {
				if args.Active == b {
					onToolSelected(toolOrder[idx])
					return
				}
			}
		}),
	)
	group.SetActive(toolButtons[0])

	boxFilled := false
	boxFillBtn := widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text("Filled", fontFace, buttonTextColor),
		widget.ButtonOpts.ToggleMode(),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, 36)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			boxFilled = !boxFilled
			if onBoxFilled != nil {
				onBoxFilled(boxFilled)
			}
		}),
	)
	toolbar.AddChild(boxFillBtn)

	addAction := func(label string, onClick func()) {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, fontFace, buttonTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, 36)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
		toolbar.AddChild(btn)
	}
	addAction("Undo", onUndo)
	addAction("Redo", onRedo)
	addAction("Save", onSave)

	return toolbar, &ToolBar{group: group, buttons: toolButtons, boxFill: boxFillBtn}
}
