package wizard

import (
	"fmt"
	"strconv"
)

type KeyboardKind int

const (
	ReplyKeyboard KeyboardKind = iota
	InlineKeyboard
)

// Button is a keyboard button. Data is the callback payload of inline
// buttons and is ignored for reply keyboards.
type Button struct {
	Text string
	Data string
}

type Keyboard struct {
	Kind KeyboardKind
	Rows [][]Button
}

type AttachmentKind int

const (
	DocumentAttachment AttachmentKind = iota
	PhotoAttachment
)

type Attachment struct {
	Kind    AttachmentKind
	Name    string
	Caption string
	Data    []byte
}

// Response is what the bot should send back for one event. EditPrevious asks
// the adapter to edit the message the callback came from instead of sending
// a new one.
type Response struct {
	Text         string
	Keyboard     *Keyboard
	Attachments  []Attachment
	EditPrevious bool
}

// Main menu buttons.
const (
	ButtonRent    = "🏒 Арендовать"
	ButtonRentals = "📋 Мои аренды"
	ButtonReports = "📊 Отчеты"
	ButtonSupport = "🛠 Поддержка"
)

// Callback payloads.
const (
	CallbackSizePrefix   = "size_"
	CallbackConfirm      = "confirm"
	CallbackCancel       = "cancel"
	CallbackReturnSkates = "return_skates"
	CallbackReturnPrefix = "ret_"
)

const (
	textWelcomeBack        = "👋 С возвращением!\nИспользуйте кнопки ниже для работы с системой:"
	textWelcomeNew         = "🎉 Добро пожаловать в систему аренды коньков!\nДля начала работы пройдите регистрацию.\nВведите ваш email:"
	textBadEmail           = "❌ Неверный формат email! Попробуйте снова:"
	textEmailTaken         = "❌ Этот email уже зарегистрирован! Введите другой:"
	textAskPassword        = "🔒 Введите пароль (минимум 6 символов):"
	textShortPassword      = "❌ Пароль слишком короткий! Минимум 6 символов:"
	textAskPhone           = "📱 Введите ваш телефон в формате +79991234567:"
	textBadPhone           = "❌ Неверный формат телефона! Попробуйте снова:"
	textRegistered         = "✅ Регистрация успешно завершена!\nИспользуйте кнопки ниже для работы с системой:"
	textRegistrationFailed = "⚠️ Произошла ошибка при регистрации. Попробуйте позже."
	textNotRegistered      = "Вы еще не зарегистрированы. Отправьте /start, чтобы начать."
	textUseMenu            = "Используйте кнопки меню или /start."
	textCancelled          = "Действие отменено."
	textGenericFailure     = "⚠️ Что-то пошло не так. Попробуйте позже."
	textStaleButton        = "⌛ Эта кнопка больше не активна."

	textNoSkates          = "😔 В данный момент нет доступных коньков."
	textChooseSize        = "👇 Выберите размер коньков:"
	textSizeUnavailable   = "😔 Этот размер временно отсутствует."
	textUseButtons        = "👆 Выберите вариант кнопкой выше или отправьте /cancel."
	textRentalCancelled   = "❌ Аренда отменена."
	textRentalFailed      = "⚠️ Ошибка оформления аренды."
	textUnitJustTaken     = "😔 Эти коньки только что взяли. Попробуйте выбрать размер снова."
	textActiveLimit       = "⚠️ Достигнут лимит активных аренд. Верните коньки, чтобы взять новые."
	textNoActiveRentals   = "У вас нет активных аренд."
	textActiveHeader      = "🔷 Активные аренды:\n"
	textChooseReturn      = "Выберите аренду для возврата:"
	textReturnCancelled   = "Возврат отменен."
	textReturnFailed      = "⚠️ Ошибка возврата коньков."
	textAlreadyReturned   = "Эта аренда уже завершена."
	textReportFailed      = "⚠️ Ошибка генерации отчета."
	textReportCaption     = "📊 Отчет по арендам"
	textChartCaption      = "📈 Популярность размеров"
	textIncomeCaption     = "💰 Доходы по дням"
	textPhoneUsage        = "Использование: /phone +79991234567"
	textAdminOnly         = "⛔ Команда доступна только администраторам."
	textUnitStatusChanged = "Статус единицы #%d: %s."

	buttonConfirm = "✅ Подтвердить"
	buttonCancel  = "❌ Отмена"
	buttonReturn  = "↩️ Вернуть коньки"

	reportFileName = "rental_report.csv"
	chartFileName  = "popularity_chart.png"
	incomeFileName = "income_report.csv"

	sizesPerRow = 4
)

func text(s string) Response {
	return Response{Text: s}
}

func edit(s string) Response {
	return Response{Text: s, EditPrevious: true}
}

func mainMenu() *Keyboard {
	return &Keyboard{
		Kind: ReplyKeyboard,
		Rows: [][]Button{
			{{Text: ButtonRent}, {Text: ButtonRentals}},
			{{Text: ButtonReports}, {Text: ButtonSupport}},
		},
	}
}

func sizesKeyboard(sizes []int) *Keyboard {
	kb := &Keyboard{Kind: InlineKeyboard}
	var row []Button
	for _, size := range sizes {
		label := strconv.Itoa(size)
		row = append(row, Button{Text: label, Data: CallbackSizePrefix + label})
		if len(row) == sizesPerRow {
			kb.Rows = append(kb.Rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb.Rows = append(kb.Rows, row)
	}
	return kb
}

func confirmKeyboard() *Keyboard {
	return &Keyboard{
		Kind: InlineKeyboard,
		Rows: [][]Button{{
			{Text: buttonConfirm, Data: CallbackConfirm},
			{Text: buttonCancel, Data: CallbackCancel},
		}},
	}
}

func returnButtonKeyboard() *Keyboard {
	return &Keyboard{
		Kind: InlineKeyboard,
		Rows: [][]Button{{{Text: buttonReturn, Data: CallbackReturnSkates}}},
	}
}

func returnCallback(rentalID int64) string {
	return fmt.Sprintf("%s%d", CallbackReturnPrefix, rentalID)
}
