// internal/engine/command.go
package engine

import "strings"

// CommandKind - распознанный тип входящего сообщения
type CommandKind int

const (
	CmdText CommandKind = iota // обычный текст, уходит текущему шагу диалога
	CmdStart
	CmdBuy
	CmdSell
	CmdShowRate
)

// Command - результат классификации входящего текста.
// Таблица переходов дальше работает только с Kind, без строковых сравнений
type Command struct {
	Kind CommandKind
	Text string
}

// classify сопоставляет текст с командой /start и кнопками главного меню.
// Тексты кнопок сравниваются дословно
func (e *Engine) classify(text string) Command {
	switch {
	case strings.HasPrefix(text, "/start"):
		return Command{Kind: CmdStart, Text: text}
	case text == e.cfg.ButtonBuy:
		return Command{Kind: CmdBuy, Text: text}
	case text == e.cfg.ButtonSell:
		return Command{Kind: CmdSell, Text: text}
	case text == e.cfg.ButtonShowRate:
		return Command{Kind: CmdShowRate, Text: text}
	}
	return Command{Kind: CmdText, Text: text}
}
