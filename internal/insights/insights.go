package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/bucket/internal/transaction"
	"github.com/MrJamesThe3rd/bucket/internal/wallet"
)

// Generation parameters sent with every completion request.
const (
	Temperature      = 0.2
	MaxTokens        = 600
	TopP             = 1.0
	FrequencyPenalty = 0.5
	PresencePenalty  = 0.5
)

// MaxHistoryChars bounds the transaction lines sent as context.
const MaxHistoryChars = 3000

const (
	systemPrompt = "You are Bucket Money AI, a personalized and knowledgeable financial advisor. " +
		"Provide tailored financial advice, insights and overviews based strictly on the user's transactions. " +
		"Focus on spending patterns, potential savings and budget adjustments. " +
		"Do not suggest external tools or apps unless asked. Keep answers clear, concise and actionable."

	overviewPrompt = "Attached is a list of my recent transactions. Based strictly on this information, " +
		"give me an overview of my finances with insights and advice. "

	questionPrompt = "Attached is a list of my recent transactions. Based strictly on this information, " +
		"answer the question if it is related to financial advice, insights or analysis of the transactions. " +
		"Here is the question: "
)

// Advisory replaces the answer when the completion service is unreachable.
const Advisory = "Oops! Bucket Money AI had an issue connecting and can't provide insights right now. " +
	"Remember, as Warren Buffett said, 'Do not save what is left after spending, but spend what is left after saving.' " +
	"Stay tuned for updates!"

// NoHistory is returned when the period holds no transactions.
const NoHistory = "No transactions found for the selected period. Select another period with transactions to get insights."

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Lines numbers the transactions of days, newest first.
func Lines(days []wallet.Day) []string {
	var lines []string

	for _, d := range days {
		for _, tx := range d.Transactions {
			lines = append(lines, fmt.Sprintf("%d.%s", len(lines), describe(tx)))
		}
	}

	return lines
}

func describe(tx *transaction.Transaction) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s", tx.Type, tx.Amount.StringFixed(2))

	if tx.Title != "" {
		fmt.Fprintf(&sb, " %q", tx.Title)
	}

	fmt.Fprintf(&sb, " on %s", tx.DateTime.UTC().Format(time.DateOnly))

	return sb.String()
}

// BuildMessages assembles the chat: system prompt, one user message per
// history line while the running total stays within MaxHistoryChars, then
// the request itself. An empty question asks for a general overview.
func BuildMessages(lines []string, currency, question string) []Message {
	msgs := []Message{{Role: RoleSystem, Content: systemPrompt}}

	total := 0

	for _, l := range lines {
		total += len(l)
		if total > MaxHistoryChars {
			break
		}

		msgs = append(msgs, Message{Role: RoleUser, Content: l})
	}

	details := fmt.Sprintf("Currency is %s.", currency)

	prompt := overviewPrompt + details
	if q := strings.TrimSpace(question); q != "" {
		prompt = details + " " + questionPrompt + q
	}

	return append(msgs, Message{Role: RoleUser, Content: prompt})
}
