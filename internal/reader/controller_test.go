package reader

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/studydesk/internal/attach"
	"github.com/csheth/studydesk/internal/catalog"
	"github.com/csheth/studydesk/internal/chat"
	"github.com/csheth/studydesk/internal/timer"
)

type sentMessage struct {
	text  string
	image *attach.Image
}

type fakeSession struct {
	messages []sentMessage
	contexts []chat.Context
}

func (f *fakeSession) AppendUserMessage(text string, image *attach.Image) chat.MessageID {
	f.messages = append(f.messages, sentMessage{text: text, image: image})
	return chat.MessageID("m")
}

func (f *fakeSession) RequestAnswer(c chat.Context) tea.Cmd {
	f.contexts = append(f.contexts, c)
	return func() tea.Msg { return nil }
}

func newTestController(t *testing.T) (*Controller, *fakeSession, *timer.Manual) {
	t.Helper()
	cat, err := catalog.NewStatic(catalog.Category{
		Name:      "课件",
		Documents: []catalog.Document{{Name: "A.pdf", TotalPages: 3}, {Name: "B.pdf", TotalPages: 8}},
	})
	require.NoError(t, err)
	clock := timer.NewManual()
	session := &fakeSession{}
	c := New(cat, session, Options{Scheduler: clock})
	return c, session, clock
}

func firstDoc(t *testing.T, c *Controller, index int) catalog.Document {
	t.Helper()
	cats := c.Catalog()
	require.Len(t, cats, 1)
	require.Greater(t, len(cats[0].Documents), index)
	return cats[0].Documents[index]
}

func TestControllerNavigationScenario(t *testing.T) {
	c, _, _ := newTestController(t)
	a := firstDoc(t, c, 0)
	require.NoError(t, c.SelectDocument(a))
	assert.Equal(t, 1, c.Viewer().Page())

	c.NextPage()
	c.NextPage()
	assert.Equal(t, 3, c.Viewer().Page())
	assert.False(t, c.NextPage())
	assert.Equal(t, 3, c.Viewer().Page())

	c.PointerEnter()
	require.True(t, c.FilmstripShown())
	require.NoError(t, c.SelectThumbnail(2))
	assert.Equal(t, 2, c.Viewer().Page())
	assert.True(t, c.FilmstripShown())
}

func TestSelectThumbnailRejectsMissingPage(t *testing.T) {
	c, _, _ := newTestController(t)
	require.NoError(t, c.SelectDocument(firstDoc(t, c, 0)))
	var oor *OutOfRangeError
	assert.True(t, errors.As(c.SelectThumbnail(9), &oor))
	assert.False(t, c.Filmstrip().Visible())
}

func TestSelectDocumentValidates(t *testing.T) {
	c, _, _ := newTestController(t)
	err := c.SelectDocument(catalog.Document{Name: "empty.pdf"})
	assert.ErrorIs(t, err, catalog.ErrInvalidDocument)
	assert.False(t, c.Viewer().Viewing())
}

func TestFilmstripNeedsDocument(t *testing.T) {
	c, _, _ := newTestController(t)
	c.PointerEnter()
	assert.True(t, c.Filmstrip().Visible())
	assert.False(t, c.FilmstripShown())
	assert.Empty(t, c.Thumbnails())

	require.NoError(t, c.SelectDocument(firstDoc(t, c, 0)))
	assert.True(t, c.FilmstripShown())
	assert.Len(t, c.Thumbnails(), 3)

	require.NoError(t, c.SelectDocument(firstDoc(t, c, 1)))
	assert.Len(t, c.Thumbnails(), 8)
}

func TestPointerLeaveHidesAfterDelay(t *testing.T) {
	c, _, clock := newTestController(t)
	require.NoError(t, c.SelectDocument(firstDoc(t, c, 0)))
	c.PointerEnter()
	require.NotNil(t, c.PointerLeave())

	for _, msg := range clock.Advance(DefaultHideDelay - time.Millisecond) {
		c.Update(msg)
	}
	assert.True(t, c.FilmstripShown())

	c.PointerEnter()
	for _, msg := range clock.Advance(time.Millisecond) {
		assert.True(t, c.Update(msg))
	}
	assert.True(t, c.FilmstripShown())

	c.PointerLeave()
	for _, msg := range clock.Advance(DefaultHideDelay) {
		c.Update(msg)
	}
	assert.False(t, c.FilmstripShown())
}

func TestForwardKeyShowsThenHides(t *testing.T) {
	c, _, clock := newTestController(t)
	assert.Nil(t, c.ForwardKey(false))

	require.NoError(t, c.SelectDocument(firstDoc(t, c, 0)))
	require.NotNil(t, c.ForwardKey(false))
	assert.Equal(t, 2, c.Viewer().Page())
	assert.True(t, c.FilmstripShown())

	c.ForwardKey(false)
	c.ForwardKey(false)
	assert.Equal(t, 3, c.Viewer().Page())
	hides := 0
	for _, msg := range clock.Advance(DefaultHideDelay) {
		was := c.FilmstripShown()
		c.Update(msg)
		if was && !c.FilmstripShown() {
			hides++
		}
	}
	assert.Equal(t, 1, hides)
}

func TestForwardKeyWhileHoveringLeavesHideToPointer(t *testing.T) {
	c, _, clock := newTestController(t)
	require.NoError(t, c.SelectDocument(firstDoc(t, c, 0)))
	c.PointerEnter()

	assert.Nil(t, c.ForwardKey(true))
	assert.Equal(t, 2, c.Viewer().Page())
	for _, msg := range clock.Advance(2 * DefaultHideDelay) {
		c.Update(msg)
	}
	assert.True(t, c.FilmstripShown())

	c.PointerLeave()
	for _, msg := range clock.Advance(DefaultHideDelay) {
		c.Update(msg)
	}
	assert.False(t, c.FilmstripShown())
}

func TestClickOutsideDismisses(t *testing.T) {
	c, _, clock := newTestController(t)
	require.NoError(t, c.SelectDocument(firstDoc(t, c, 0)))
	c.ClickOutside()
	assert.False(t, c.FilmstripShown())

	c.PointerEnter()
	c.PointerLeave()
	c.ClickOutside()
	assert.False(t, c.FilmstripShown())
	assert.False(t, c.Filmstrip().HidePending())
	assert.Equal(t, 1, clock.Pending())
}

func TestCollapseKeepsState(t *testing.T) {
	c, _, _ := newTestController(t)
	require.NoError(t, c.SelectDocument(firstDoc(t, c, 1)))
	require.NoError(t, c.JumpToPage(5))
	c.CaptureSelection("栈")

	c.ToggleLeft()
	c.ToggleRight()
	assert.True(t, c.Layout().LeftCollapsed)
	assert.True(t, c.Layout().RightCollapsed)
	c.ToggleRight()

	assert.Equal(t, 5, c.Viewer().Page())
	assert.Equal(t, "栈", c.Selection().Text())
}

func TestSubmitGate(t *testing.T) {
	img := &attach.Image{Name: "q.png", MIME: "image/png", Data: []byte{1}}

	cases := []struct {
		name     string
		text     string
		image    *attach.Image
		wantSent bool
		wantText string
	}{
		{name: "empty", text: ""},
		{name: "whitespace", text: "  \t"},
		{name: "text", text: " 什么是堆？ ", wantSent: true, wantText: "什么是堆？"},
		{name: "image only", image: img, wantSent: true, wantText: chat.DefaultPrompt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, session, _ := newTestController(t)
			c.SetImage(tc.image)
			cmd, ok := c.Submit(tc.text)
			assert.Equal(t, tc.wantSent, ok)
			if !tc.wantSent {
				assert.Nil(t, cmd)
				assert.Empty(t, session.messages)
				assert.Empty(t, session.contexts)
				return
			}
			assert.NotNil(t, cmd)
			require.Len(t, session.messages, 1)
			require.Len(t, session.contexts, 1)
			assert.Equal(t, tc.wantText, session.messages[0].text)
			assert.Equal(t, tc.image, session.messages[0].image)
			assert.Nil(t, c.Image())
		})
	}
}

func TestSubmitCarriesSelectionScenario(t *testing.T) {
	c, session, _ := newTestController(t)
	require.NoError(t, c.SelectDocument(firstDoc(t, c, 1)))
	require.NoError(t, c.JumpToPage(4))
	require.True(t, c.CaptureSelection("二叉树"))
	assert.Equal(t, "二叉树", c.Selection().Text())

	_, ok := c.Submit("")
	require.True(t, ok)
	require.Len(t, session.contexts, 1)
	got := session.contexts[0]
	assert.Equal(t, "二叉树", got.Selection.Text)
	require.NotNil(t, got.Document)
	assert.Equal(t, "B.pdf", got.Document.Name)
	assert.Equal(t, 4, got.Page)
	assert.False(t, c.Selection().Staged())
}

func TestSubmittable(t *testing.T) {
	assert.False(t, Submittable("", nil, ""))
	assert.False(t, Submittable(" ", nil, " "))
	assert.True(t, Submittable("a", nil, ""))
	assert.True(t, Submittable("", &attach.Image{}, ""))
	assert.True(t, Submittable("", nil, "二叉树"))
}

func TestAttachImage(t *testing.T) {
	img := &attach.Image{Name: "q.png", MIME: "image/png"}
	clock := timer.NewManual()
	c := New(nil, &fakeSession{}, Options{
		Scheduler: clock,
		ReadImage: func(_ context.Context, path string) (*attach.Image, error) {
			if path == "bad.txt" {
				return nil, attach.ErrNotImage
			}
			return img, nil
		},
	})

	msg := c.AttachImage("bad.txt")()
	assert.True(t, c.Update(msg))
	assert.Nil(t, c.Image())

	msg = c.AttachImage("q.png")()
	assert.True(t, c.Update(msg))
	assert.Equal(t, img, c.Image())

	c.DetachImage()
	assert.Nil(t, c.Image())

	other := New(nil, &fakeSession{}, Options{Scheduler: clock})
	assert.False(t, other.Update(msg))
	assert.Nil(t, other.Image())
}

func TestCloseMakesLateMessagesNoops(t *testing.T) {
	img := &attach.Image{Name: "q.png"}
	c, session, clock := newTestController(t)
	c.readImage = func(context.Context, string) (*attach.Image, error) { return img, nil }
	require.NoError(t, c.SelectDocument(firstDoc(t, c, 0)))
	c.PointerEnter()
	c.PointerLeave()
	pendingRead := c.AttachImage("q.png")

	c.Close()
	assert.False(t, c.Alive())
	assert.False(t, c.FilmstripShown())

	assert.True(t, c.Update(pendingRead()))
	assert.Nil(t, c.Image())
	for _, msg := range clock.Advance(DefaultHideDelay) {
		c.Update(msg)
	}
	assert.False(t, c.FilmstripShown())

	c.PointerEnter()
	assert.False(t, c.FilmstripShown())
	_, ok := c.Submit("hello")
	assert.False(t, ok)
	assert.Empty(t, session.messages)
	assert.Nil(t, c.AttachImage("q.png"))
}

func TestControllersAreIndependent(t *testing.T) {
	a, _, _ := newTestController(t)
	b, _, _ := newTestController(t)
	require.NoError(t, a.SelectDocument(firstDoc(t, a, 1)))
	a.CaptureSelection("队列")
	a.PointerEnter()

	assert.False(t, b.Viewer().Viewing())
	assert.False(t, b.Selection().Staged())
	assert.False(t, b.Filmstrip().Visible())
}
