package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/timetable-viewer/internal/model"
	"github.com/ytget/timetable-viewer/internal/pivot"
)

// Card text stays dark: backgrounds come from a light palette in both theme variants
var (
	cardTextColor  = color.NRGBA{R: 16, G: 31, B: 56, A: 255}
	cardMutedColor = color.NRGBA{R: 90, G: 98, B: 112, A: 255}
)

// LessonCard renders one lesson on its subject color
type LessonCard struct {
	widget.BaseWidget

	card         pivot.Card
	localization *Localization

	background *canvas.Rectangle
	subject    *canvas.Text
	byline     *canvas.Text
	group      *canvas.Text
	lessonID   *canvas.Text
	deleteBtn  *widget.Button

	onDelete func(lesson model.Lesson)
}

// NewLessonCard creates a card. onDelete may be nil; the delete button is
// only shown for deletable cards with a callback.
func NewLessonCard(card pivot.Card, localization *Localization, onDelete func(lesson model.Lesson)) *LessonCard {
	lc := &LessonCard{
		card:         card,
		localization: localization,
		onDelete:     onDelete,
	}
	lc.ExtendBaseWidget(lc)
	lc.createUI()
	lc.updateFromCard()
	return lc
}

func (lc *LessonCard) createUI() {
	lc.background = canvas.NewRectangle(color.Transparent)
	lc.background.CornerRadius = CardCornerRadius

	lc.subject = canvas.NewText("", cardTextColor)
	lc.subject.TextStyle = fyne.TextStyle{Bold: true}

	lc.byline = canvas.NewText("", cardTextColor)
	lc.byline.TextStyle = fyne.TextStyle{Italic: true}

	lc.group = canvas.NewText("", cardTextColor)

	lc.lessonID = canvas.NewText("", cardMutedColor)
	lc.lessonID.TextSize = theme.CaptionTextSize()

	lc.deleteBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), lc.onDeleteTapped)
	lc.deleteBtn.Importance = widget.LowImportance
}

func (lc *LessonCard) updateFromCard() {
	lc.background.FillColor = lc.card.Color
	lc.subject.Text = lc.card.Title()
	lc.byline.Text = lc.card.Byline()
	lc.group.Text = lc.card.StudentGroup
	lc.lessonID.Text = LessonIDPrefix + lc.card.LessonID.String()

	if lc.card.Deletable && lc.onDelete != nil {
		lc.deleteBtn.Show()
	} else {
		lc.deleteBtn.Hide()
	}
}

func (lc *LessonCard) onDeleteTapped() {
	if lc.onDelete == nil || !lc.card.Deletable {
		return
	}
	lc.onDelete(lc.card.Lesson)
}

// CreateRenderer creates the widget renderer
func (lc *LessonCard) CreateRenderer() fyne.WidgetRenderer {
	return &lessonCardRenderer{card: lc}
}

type lessonCardRenderer struct {
	card   *LessonCard
	layout *fyne.Container
}

func (r *lessonCardRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	r.layout.Resize(size)
}

func (r *lessonCardRenderer) MinSize() fyne.Size {
	if r.layout == nil {
		r.createLayout()
	}
	return r.layout.MinSize().Max(fyne.NewSize(CardMinWidth, CardMinHeight))
}

func (r *lessonCardRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	r.card.background.Refresh()
	r.card.subject.Refresh()
	r.card.byline.Refresh()
	r.card.group.Refresh()
	r.card.lessonID.Refresh()
	r.layout.Refresh()
}

func (r *lessonCardRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

func (r *lessonCardRenderer) Destroy() {}

func (r *lessonCardRenderer) createLayout() {
	lc := r.card

	// subject on the left, id and delete control pinned right
	header := container.NewBorder(nil, nil, nil, container.NewHBox(lc.lessonID, lc.deleteBtn), lc.subject)
	body := container.NewVBox(header, lc.byline, lc.group)

	r.layout = container.NewStack(lc.background, container.NewPadded(body))
}
