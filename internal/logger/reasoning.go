package logger

import (
	"io"
	"log"
	"strings"
	"sync"
)

var (
	reasoningMu  sync.Mutex
	reasoningLog *log.Logger
)

// SetReasoningWriter directs raw reasoning-model traffic to w. Pass nil to
// disable the dump.
func SetReasoningWriter(w io.Writer) {
	reasoningMu.Lock()
	defer reasoningMu.Unlock()
	if w == nil {
		reasoningLog = nil
		return
	}
	reasoningLog = log.New(w, "", log.LstdFlags)
}

func LogReasoningRequest(provider, systemPrompt, userPrompt string) {
	logReasoning(provider+"-request", []reasoningSection{
		{Title: "SYSTEM", Body: systemPrompt},
		{Title: "USER", Body: userPrompt},
	})
}

func LogReasoningResponse(provider, raw string) {
	logReasoning(provider+"-response", []reasoningSection{{Title: "RAW", Body: raw}})
}

type reasoningSection struct {
	Title string
	Body  string
}

func logReasoning(tag string, sections []reasoningSection) {
	reasoningMu.Lock()
	l := reasoningLog
	reasoningMu.Unlock()
	if l == nil {
		return
	}
	var b strings.Builder
	b.WriteString("[REASONING][")
	b.WriteString(tag)
	b.WriteString("]\n")
	for _, sec := range sections {
		b.WriteString("--- ")
		b.WriteString(sec.Title)
		b.WriteString(" ---\n")
		b.WriteString(sec.Body)
		if !strings.HasSuffix(sec.Body, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString("=====\n")
	l.Print(b.String())
}
