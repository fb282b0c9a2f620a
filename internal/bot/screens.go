package bot

import (
	"fmt"
	"strings"

	"feedgate/internal/domain"
	"feedgate/internal/feed"
	"feedgate/internal/i18n"

	tg "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Telegram caps captions at 1024 characters; title and body together stay
// below that.
const (
	maxTitleRunes   = 200
	maxBodyRunes    = 3000
	maxCaptionRunes = 700
)

type view struct {
	text     string
	photo    string
	keyboard [][]models.InlineKeyboardButton
}

func render(shell Shell) view {
	t := shell.T
	screen := shell.Current()

	switch screen.Destination {
	case domain.DestinationLogin:
		return view{
			text:     heading(t(i18n.KeyWelcome)) + tg.EscapeMarkdown(t(i18n.KeyLoginUsage)),
			keyboard: loginKeyboard(t),
		}

	case domain.DestinationRegister:
		return view{
			text:     heading(t(i18n.KeyJoinUs)) + tg.EscapeMarkdown(t(i18n.KeyRegisterUsage)),
			keyboard: registerKeyboard(t),
		}

	case domain.DestinationFeed:
		return renderFeed(t, shell.Feed())

	case domain.DestinationDetails:
		details := shell.Details()
		if details.Failed {
			return view{
				text:     heading(t(i18n.KeyErrorDetails)) + tg.EscapeMarkdown(t(i18n.KeyFetchDetails)),
				keyboard: detailsKeyboard(t, true),
			}
		}
		return renderDetails(t, details.Entry)

	case domain.DestinationSettings:
		return view{
			text:     heading(t(i18n.KeySettings)) + tg.EscapeMarkdown(t(i18n.KeyLanguage)+": "+t(i18n.KeyLanguageName)),
			keyboard: settingsKeyboard(t),
		}

	default:
		return view{text: tg.EscapeMarkdown(t(i18n.KeyLoading))}
	}
}

// renderFeed lists the most recently loaded page; older entries stay in
// earlier messages of the chat. A failed load is reported above the list and
// Load more retries it.
func renderFeed(t func(string) string, state feed.State) view {
	var sb strings.Builder
	sb.WriteString(heading(t(i18n.KeyFeed)))

	if state.LastError == feed.ErrorFetchFailed {
		sb.WriteString("⚠️ " + tg.EscapeMarkdown(t(i18n.KeyLoadFeedFailed)) + "\n\n")
	}

	if len(state.Entries) == 0 {
		sb.WriteString(tg.EscapeMarkdown(t(i18n.KeyEmptyFeed)))

		return view{
			text:     sb.String(),
			keyboard: feedKeyboard(t, nil),
		}
	}

	start := max(len(state.Entries)-feed.PageSize, 0)
	entries := state.Entries[start:]

	sb.WriteString(tg.EscapeMarkdown(fmt.Sprintf("%d–%d / %d", start+1, len(state.Entries), len(state.Entries))))
	sb.WriteString("\n")

	for _, entry := range entries {
		title := entry.Title
		if title == "" {
			title = t(i18n.KeyNoTitle)
		}

		sb.WriteString("\n")
		sb.WriteString(tg.EscapeMarkdown(fmt.Sprintf("%d. %s", entry.ID, title)))
		if entry.Thumbnail != "" {
			sb.WriteString(" 🖼")
		}
	}

	return view{
		text:     sb.String(),
		keyboard: feedKeyboard(t, entries),
	}
}

func renderDetails(t func(string) string, entry domain.FeedEntry) view {
	title := entry.Title
	if title == "" {
		title = t(i18n.KeyNoTitle)
	}
	title = truncate(title, maxTitleRunes)

	body := entry.Body
	if body == "" {
		body = t(i18n.KeyNoDescription)
	}

	limit := maxBodyRunes
	if entry.Thumbnail != "" {
		limit = maxCaptionRunes
	}

	return view{
		text:     heading(title) + tg.EscapeMarkdown(truncate(body, limit)),
		photo:    entry.Thumbnail,
		keyboard: detailsKeyboard(t, false),
	}
}

func heading(s string) string {
	return "*" + tg.EscapeMarkdown(s) + "*\n\n"
}
