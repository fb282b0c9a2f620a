package bot

import (
	"strconv"

	"feedgate/internal/domain"
	"feedgate/internal/i18n"

	"github.com/go-telegram/bot/models"
)

const (
	callbackRegister = "register"
	callbackLogin    = "login"
	callbackMore     = "more"
	callbackRefresh  = "refresh"
	callbackSettings = "settings"
	callbackBack     = "back"
	callbackRetry    = "retry"
	callbackLogout   = "logout"

	callbackPostPrefix     = "post_"
	callbackLanguagePrefix = "lang_"

	maxButtonTitleRunes = 40
)

func button(text, data string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: data}
}

func loginKeyboard(t func(string) string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{button("📝 "+t(i18n.KeyCreateAccount), callbackRegister)},
	}
}

func registerKeyboard(t func(string) string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{button("⬅️ "+t(i18n.KeyLogin), callbackLogin)},
	}
}

func feedKeyboard(t func(string) string, entries []domain.FeedEntry) [][]models.InlineKeyboardButton {
	keyboard := make([][]models.InlineKeyboardButton, 0, len(entries)+2)

	for _, entry := range entries {
		title := entry.Title
		if title == "" {
			title = t(i18n.KeyNoTitle)
		}

		keyboard = append(keyboard, []models.InlineKeyboardButton{
			button(truncate(title, maxButtonTitleRunes), callbackPostPrefix+strconv.FormatInt(entry.ID, 10)),
		})
	}

	return append(keyboard,
		[]models.InlineKeyboardButton{
			button("⬇️ "+t(i18n.KeyLoadMore), callbackMore),
			button("🔄 "+t(i18n.KeyRefresh), callbackRefresh),
		},
		[]models.InlineKeyboardButton{
			button("⚙️ "+t(i18n.KeySettings), callbackSettings),
		},
	)
}

func detailsKeyboard(t func(string) string, failed bool) [][]models.InlineKeyboardButton {
	if failed {
		return [][]models.InlineKeyboardButton{
			{
				button("🔁 "+t(i18n.KeyRetry), callbackRetry),
				button("⬅️ "+t(i18n.KeyGoBack), callbackBack),
			},
		}
	}

	return [][]models.InlineKeyboardButton{
		{button("⬅️ "+t(i18n.KeyBack), callbackBack)},
	}
}

func settingsKeyboard(t func(string) string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			button("English", callbackLanguagePrefix+i18n.English.String()),
			button("Español", callbackLanguagePrefix+i18n.Spanish.String()),
		},
		{
			button("⬅️ "+t(i18n.KeyBack), callbackBack),
			button("🚪 "+t(i18n.KeyLogout), callbackLogout),
		},
	}
}
