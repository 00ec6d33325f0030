// Package reader is the document preview core: collapsible panes, a paged
// viewer, the filmstrip overlay and the selection bridge into chat. One
// Controller serves every host view that previews documents.
package reader

import (
	"context"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/csheth/studydesk/internal/attach"
	"github.com/csheth/studydesk/internal/catalog"
	"github.com/csheth/studydesk/internal/chat"
	"github.com/csheth/studydesk/internal/timer"
)

// ChatSession is where submissions go.
type ChatSession interface {
	AppendUserMessage(text string, image *attach.Image) chat.MessageID
	RequestAnswer(c chat.Context) tea.Cmd
}

// Submittable reports whether a submission carries any content. Blank text
// with no image and no staged selection is not submittable.
func Submittable(text string, image *attach.Image, selection string) bool {
	return strings.TrimSpace(text) != "" || image != nil || strings.TrimSpace(selection) != ""
}

// ImageMsg delivers an attachment read started by AttachImage.
type ImageMsg struct {
	ControllerID string
	Path         string
	Image        *attach.Image
	Err          error
}

// Options tune a Controller.
type Options struct {
	Scheduler timer.Scheduler
	HideDelay time.Duration
	ReadImage func(ctx context.Context, path string) (*attach.Image, error)
}

// Controller ties one viewing session together.
type Controller struct {
	id        string
	catalog   catalog.Catalog
	session   ChatSession
	layout    Layout
	viewer    Viewer
	filmstrip *Filmstrip
	selection Selection
	image     *attach.Image
	readImage func(ctx context.Context, path string) (*attach.Image, error)
	closed    bool
}

// New builds a controller over cat that submits to session.
func New(cat catalog.Catalog, session ChatSession, opts Options) *Controller {
	read := opts.ReadImage
	if read == nil {
		read = attach.Read
	}
	return &Controller{
		id:        uuid.NewString(),
		catalog:   cat,
		session:   session,
		filmstrip: NewFilmstrip(opts.Scheduler, opts.HideDelay),
		readImage: read,
	}
}

// ID identifies the controller in ImageMsg values.
func (c *Controller) ID() string {
	return c.id
}

// Alive reports whether Close has not been called.
func (c *Controller) Alive() bool {
	return !c.closed
}

// Catalog lists the browsable documents in display order.
func (c *Controller) Catalog() []catalog.Category {
	if c.catalog == nil {
		return nil
	}
	return catalog.Ordered(c.catalog)
}

// Layout exposes the pane flags.
func (c *Controller) Layout() *Layout {
	return &c.layout
}

// Viewer exposes the viewer state.
func (c *Controller) Viewer() *Viewer {
	return &c.viewer
}

// Filmstrip exposes the overlay state.
func (c *Controller) Filmstrip() *Filmstrip {
	return c.filmstrip
}

// Selection exposes the staged selection.
func (c *Controller) Selection() *Selection {
	return &c.selection
}

// ToggleLeft collapses or expands the catalog pane.
func (c *Controller) ToggleLeft() {
	c.layout.ToggleLeft()
}

// ToggleRight collapses or expands the preview pane.
func (c *Controller) ToggleRight() {
	c.layout.ToggleRight()
}

// SelectDocument opens d at page 1.
func (c *Controller) SelectDocument(d catalog.Document) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.viewer.Select(d)
	return nil
}

// NextPage advances one page when possible.
func (c *Controller) NextPage() bool {
	return c.viewer.Next()
}

// PrevPage goes back one page when possible.
func (c *Controller) PrevPage() bool {
	return c.viewer.Prev()
}

// JumpToPage moves to p; see Viewer.JumpTo.
func (c *Controller) JumpToPage(p int) error {
	return c.viewer.JumpTo(p)
}

// PointerEnter handles the pointer entering the page navigation control or
// the preview surface.
func (c *Controller) PointerEnter() {
	if c.closed {
		return
	}
	c.filmstrip.RequestShow()
}

// PointerLeave handles the pointer leaving those regions.
func (c *Controller) PointerLeave() tea.Cmd {
	if c.closed {
		return nil
	}
	return c.filmstrip.RequestHide(c.filmstrip.Delay())
}

// ForwardKey handles a forward navigation key: advance and show the strip.
// Unless the pointer is hovering the navigation regions, it also schedules
// the hide a pointer-leave would have scheduled; while hovering, only
// PointerLeave hides the strip.
func (c *Controller) ForwardKey(hovering bool) tea.Cmd {
	if c.closed || !c.viewer.Viewing() {
		return nil
	}
	c.viewer.Next()
	c.filmstrip.RequestShow()
	if hovering {
		return nil
	}
	return c.filmstrip.RequestHide(c.filmstrip.Delay())
}

// ClickOutside dismisses a visible strip.
func (c *Controller) ClickOutside() {
	if c.filmstrip.Visible() {
		c.filmstrip.Dismiss()
	}
}

// DismissFilmstrip hides the strip immediately.
func (c *Controller) DismissFilmstrip() {
	c.filmstrip.Dismiss()
}

// SelectThumbnail jumps to page p and keeps the strip open.
func (c *Controller) SelectThumbnail(p int) error {
	if err := c.viewer.JumpTo(p); err != nil {
		return err
	}
	c.filmstrip.RequestShow()
	return nil
}

// FilmstripShown reports whether the strip should be drawn.
func (c *Controller) FilmstripShown() bool {
	return c.filmstrip.Visible() && c.viewer.TotalPages() >= 1
}

// Thumbnails lists the strip's page buttons for the current document.
func (c *Controller) Thumbnails() []Thumbnail {
	return Thumbnails(&c.viewer)
}

// CaptureSelection stages raw for the next message.
func (c *Controller) CaptureSelection(raw string) bool {
	if c.closed {
		return false
	}
	return c.selection.Capture(raw)
}

// ClearSelection drops the staged selection.
func (c *Controller) ClearSelection() {
	c.selection.Clear()
}

// Placeholder is the composer hint.
func (c *Controller) Placeholder() string {
	return c.selection.Placeholder()
}

// AttachImage reads path in the background. The result arrives as an
// ImageMsg; a failed read leaves the staged image unset.
func (c *Controller) AttachImage(path string) tea.Cmd {
	if c.closed {
		return nil
	}
	id := c.id
	read := c.readImage
	return func() tea.Msg {
		img, err := read(context.Background(), path)
		return ImageMsg{ControllerID: id, Path: path, Image: img, Err: err}
	}
}

// SetImage stages img directly.
func (c *Controller) SetImage(img *attach.Image) {
	if c.closed {
		return
	}
	c.image = img
}

// DetachImage drops the staged image.
func (c *Controller) DetachImage() {
	c.image = nil
}

// Image is the staged attachment, or nil.
func (c *Controller) Image() *attach.Image {
	return c.image
}

// Submit hands the composer text and everything staged to the chat session.
// Empty submissions do nothing and report false. On success the selection
// and image are cleared.
func (c *Controller) Submit(text string) (tea.Cmd, bool) {
	if c.closed || c.session == nil || !Submittable(text, c.image, c.selection.Text()) {
		return nil, false
	}
	text = strings.TrimSpace(text)
	shown := text
	if shown == "" {
		shown = chat.DefaultPrompt
	}
	ctx := chat.Context{
		Text:      text,
		Image:     c.image,
		Selection: chat.SelectionContext{Text: c.selection.Text()},
		Document:  c.viewer.Document(),
		Page:      c.viewer.Page(),
	}
	c.session.AppendUserMessage(shown, c.image)
	cmd := c.session.RequestAnswer(ctx)
	c.selection.Clear()
	c.image = nil
	return cmd, true
}

// Update consumes messages addressed to the controller and reports whether
// msg was one of them.
func (c *Controller) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case ImageMsg:
		if msg.ControllerID != c.id {
			return false
		}
		if c.closed {
			return true
		}
		if msg.Err != nil {
			log.Printf("[reader] attach %s failed: %v", msg.Path, msg.Err)
			return true
		}
		c.image = msg.Image
		return true
	default:
		return c.filmstrip.Update(msg)
	}
}

// Close tears the session down. Pending timers and reads become no-ops.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.filmstrip.Close()
	c.selection.Clear()
	c.image = nil
}
