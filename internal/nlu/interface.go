// README: Recognizer contract for the natural-language understanding collaborator.
package nlu

import "context"

// Recognizer turns one user utterance into scored intents and entity spans.
// Implementations may be backed by any NLU service; the dialog engine only
// depends on this interface.
type Recognizer interface {
	// IsConfigured reports whether the recognizer can serve queries. When it
	// returns false the engine runs in degraded mode and never calls Recognize.
	IsConfigured() bool

	// Recognize analyzes the utterance. Callers must treat an error as
	// "no result this turn", never as fatal.
	Recognize(ctx context.Context, utterance string) (*Result, error)
}
