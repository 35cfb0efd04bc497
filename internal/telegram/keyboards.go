// internal/telegram/keyboards.go
package telegram

import "usdt-exchange-bot/internal/config"

// MainKeyboard - главное меню с тремя кнопками обменника
func MainKeyboard(cfg *config.Config) ReplyKeyboardMarkup {
	return ReplyKeyboardMarkup{
		Keyboard: [][]ReplyKeyboardButton{
			{{Text: cfg.ButtonBuy}},
			{{Text: cfg.ButtonSell}},
			{{Text: cfg.ButtonShowRate}},
		},
		ResizeKeyboard: true,
	}
}
