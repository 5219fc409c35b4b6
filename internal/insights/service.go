package insights

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/bucket/internal/settings"
	"github.com/MrJamesThe3rd/bucket/internal/wallet"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=insights
type History interface {
	History(ctx context.Context, sess settings.Snapshot, r wallet.Range) ([]wallet.Day, error)
}

type Completer interface {
	Complete(ctx context.Context, msgs []Message) (string, error)
}

type Service struct {
	history   History
	completer Completer
}

func NewService(history History, completer Completer) *Service {
	return &Service{history: history, completer: completer}
}

// Insight is the answer shown to the user. Advisory is set when Text is the
// fallback message rather than a completion.
type Insight struct {
	Text     string
	Advisory bool
}

// Generate asks for insights on the transactions in r, or answers question
// when one is given. Completion failures degrade to the advisory message;
// only loading errors and cancellation are returned.
func (s *Service) Generate(ctx context.Context, sess settings.Snapshot, r wallet.Range, question string) (*Insight, error) {
	days, err := s.history.History(ctx, sess, r)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	lines := Lines(days)
	if len(lines) == 0 {
		return &Insight{Text: NoHistory}, nil
	}

	text, err := s.completer.Complete(ctx, BuildMessages(lines, sess.BaseCurrency, question))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		slog.Error("insights completion failed", "error", err)

		return &Insight{Text: Advisory, Advisory: true}, nil
	}

	return &Insight{Text: text}, nil
}
