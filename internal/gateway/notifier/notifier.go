package notifier

import "govtrader/internal/logger"

// TextNotifier is a minimal, fire-and-forget text sink. Components depend on
// this interface instead of a concrete channel implementation.
type TextNotifier interface {
	SendText(text string) error
}

// Field is one line of a structured notification. Order is preserved.
type Field struct {
	Key   string
	Value any
}

// Post delivers best-effort: a failed notification is logged and swallowed,
// never surfaced to trading logic.
func Post(n TextNotifier, text string) {
	if n == nil || text == "" {
		return
	}
	if err := n.SendText(text); err != nil {
		logger.Warnf("[notify] send failed: %v", err)
	}
}

// PostFields renders fields as "key: value" lines and delivers best-effort.
func PostFields(n TextNotifier, fields []Field) {
	Post(n, FormatFields(fields))
}
