package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/studydesk/internal/catalog"
	"github.com/csheth/studydesk/internal/chat"
	"github.com/csheth/studydesk/internal/config"
	"github.com/csheth/studydesk/internal/exam"
	"github.com/csheth/studydesk/internal/llm"
	"github.com/csheth/studydesk/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "path to the TOML settings file (default: user config dir)")
	library := flag.String("library", "", "TOML library of documents and exams")
	docsDir := flag.String("docs", "", "directory of PDFs, one sub-directory per category")
	logFile := flag.String("log", "", "write debug logs to this file")
	noAltScreen := flag.Bool("no-alt-screen", false, "disable the alternate screen buffer")
	noMouse := flag.Bool("no-mouse", false, "disable mouse tracking")
	backend := flag.String("backend", "", "answer backend: simulated or llm")
	llmProvider := flag.String("llm-provider", "", "LLM provider: ollama or openai")
	llmModel := flag.String("llm-model", "", "override the provider's default model")
	llmEndpoint := flag.String("llm-endpoint", "", "custom LLM host (eg. http://localhost:11434)")
	hideDelay := flag.Duration("hide-delay", 0, "how long the filmstrip lingers after the pointer leaves")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Println("failed to load settings:", err)
		os.Exit(1)
	}
	applyFlags(cfg, flagOverrides{
		library:     *library,
		docsDir:     *docsDir,
		logFile:     *logFile,
		noAltScreen: *noAltScreen,
		noMouse:     *noMouse,
		backend:     *backend,
		provider:    *llmProvider,
		model:       *llmModel,
		endpoint:    *llmEndpoint,
		hideDelay:   *hideDelay,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Println("invalid settings:", err)
		os.Exit(1)
	}
	os.Exit(run(cfg))
}

// run owns the log file so it is closed on every exit path.
func run(cfg *config.Config) int {
	if cfg.UI.LogFile != "" {
		f, err := tea.LogToFile(cfg.UI.LogFile, "studydesk")
		if err != nil {
			fmt.Println("failed to open log file:", err)
			return 1
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	docs, exams, err := loadLibrary(cfg.Library)
	if err != nil {
		log.Printf("[main] load library: %v", err)
		fmt.Println("failed to load library:", err)
		return 1
	}

	opts := []tea.ProgramOption{}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Catalog:     docs,
			Exams:       exams,
			Answerer:    answerer(cfg),
			HideDelay:   cfg.Reader.HideDelay,
			UploadTick:  cfg.Upload.Tick,
			UploadReset: cfg.Upload.ResetAfter,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		log.Printf("[main] program: %v", err)
		fmt.Println("program error:", err)
		return 1
	}
	return 0
}

type flagOverrides struct {
	library, docsDir, logFile string
	noAltScreen, noMouse      bool
	backend, provider         string
	model, endpoint           string
	hideDelay                 time.Duration
}

func applyFlags(cfg *config.Config, f flagOverrides) {
	if f.library != "" {
		cfg.Library.File = f.library
	}
	if f.docsDir != "" {
		cfg.Library.DocsDir = f.docsDir
	}
	if f.logFile != "" {
		cfg.UI.LogFile = f.logFile
	}
	if f.noAltScreen {
		cfg.UI.AltScreen = false
	}
	if f.noMouse {
		cfg.UI.Mouse = false
	}
	if f.backend != "" {
		cfg.Chat.Backend = f.backend
	}
	if f.provider != "" {
		cfg.LLM.Provider = f.provider
	}
	if f.model != "" {
		cfg.LLM.Model = f.model
	}
	if f.endpoint != "" {
		cfg.LLM.Endpoint = f.endpoint
	}
	if f.hideDelay > 0 {
		cfg.Reader.HideDelay = f.hideDelay
	}
}

// loadLibrary picks the document source: a TOML library (which may also list
// exams), a PDF directory, or the built-in demo materials.
func loadLibrary(lib config.LibraryConfig) (catalog.Catalog, []exam.Exam, error) {
	switch {
	case lib.File != "":
		docs, err := catalog.LoadTOML(lib.File)
		if err != nil {
			return nil, nil, err
		}
		exams, err := exam.LoadTOML(lib.File)
		if err != nil {
			return nil, nil, err
		}
		return docs, exams, nil
	case lib.DocsDir != "":
		docs, err := catalog.ScanDir(lib.DocsDir)
		if err != nil {
			return nil, nil, err
		}
		return docs, exam.Demo(), nil
	default:
		return catalog.Demo(), exam.Demo(), nil
	}
}

// answerer builds the chat backend. An LLM that cannot be configured falls
// back to simulated answers so the desk stays usable.
func answerer(cfg *config.Config) chat.Answerer {
	simulated := chat.Simulated{Delay: cfg.Chat.AnswerDelay}
	if cfg.Chat.Backend != config.BackendLLM {
		return simulated
	}
	client, err := llm.NewFromEnv(llm.Config{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		Endpoint: cfg.LLM.Endpoint,
	})
	if err != nil {
		fmt.Println("LLM disabled:", err)
		log.Printf("[llm] falling back to simulated answers: %v", err)
		return simulated
	}
	return chat.LLMAnswerer{Client: client, PageText: catalog.PageText}
}
