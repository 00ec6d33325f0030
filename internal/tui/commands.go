package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/studydesk/internal/catalog"
	"github.com/csheth/studydesk/internal/chat"
	"github.com/csheth/studydesk/internal/reader"
)

type pageKey struct {
	path string
	page int
}

type pageTextMsg struct {
	key  pageKey
	text string
	err  error
}

type pageTextEntry struct {
	text    string
	err     error
	loading bool
}

// answerLauncher routes chat answer jobs through the job bus so they show up
// in the status bar.
func (m *model) answerLauncher() chat.Launcher {
	return func(run func(context.Context) (tea.Msg, error)) tea.Cmd {
		return m.jobs.Start(jobKindAnswer, run)
	}
}

func attachJob(read tea.Cmd) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		msg := read()
		if loaded, ok := msg.(reader.ImageMsg); ok && loaded.Err != nil {
			return msg, loaded.Err
		}
		return msg, nil
	}
}

func pageTextJob(doc catalog.Document, page int) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		text, err := catalog.PageText(doc, page)
		return pageTextMsg{key: pageKey{path: doc.Path, page: page}, text: text, err: err}, err
	}
}
