package report

import (
	"fmt"
	"time"
)

// AckPhrase is the exact acknowledgment text the instruction keyboard sends
// back; anything else keeps the session in StepAwaitingAck.
const AckPhrase = "✅ Я прочитал инструкцию"

// User-facing texts. Telegram messages are rendered with HTML parse mode.
const (
	// MsgChooseSite heads the site-selection keyboard.
	MsgChooseSite = "🏠 <b>Выберите кофейню из списка:</b>"

	// MsgSiteNotInList re-prompts after a selection that matches no site.
	MsgSiteNotInList = "⚠️ Пожалуйста, выберите кофейню из списка!"

	// MsgConfirmInstruction re-prompts for the acknowledgment phrase.
	MsgConfirmInstruction = "Пожалуйста, подтвердите прочтение инструкции"

	// MsgInstructions is the cleaning protocol shown after site selection.
	MsgInstructions = "🧹 <b>ИНСТРУКЦИЯ ПО ГЕНКЕ</b>\n\n" +
		"‼️ Сделай уборку качественно и внимательно!\n\n" +
		"<b>Обязательно проверь:</b>\n" +
		"• Все труднодоступные места (углы, за оборудованием)\n" +
		"• Туалет (пол, сантехнику, зеркала, дверные ручки)\n" +
		"• Полы во всех зонах (залы, кухня, склад)\n" +
		"• Рабочие поверхности (столы, стойки, полки)\n" +
		"• Оборудование (кофемашина, холодильники, печи)\n" +
		"• Кофемолку (внутри и снаружи, лоток)\n" +
		"• Кофемашину (группа, поддон, панель)\n" +
		"• Холдеры и питчеры (внутри и снаружи)\n" +
		"• Мойки и раковины (без налёта и пятен)\n\n" +
		"<b>Проверь ВСЕ зоны тщательно!</b>"

	// MsgEvidencePrompt lists the photo requirements.
	MsgEvidencePrompt = "📸 <b>Отправьте 8 фотографий уборки:</b>\n\n" +
		"<b>Требования к фото:</b>\n" +
		"- Минимальный размер 800px по меньшей стороне\n" +
		"- Хорошее освещение и четкость\n" +
		"- Должны охватывать все основные зоны уборки\n" +
		"- Сделаны сегодня и отражают текущее состояние\n\n" +
		"Можно отправлять по одному или несколько сразу"

	// MsgEvidenceTooSmall rejects an undersized photo.
	MsgEvidenceTooSmall = "❌ Фото слишком маленькое. Минимальный размер: 800px с каждой стороны"

	// MsgReportDelivered confirms a persisted and forwarded report.
	MsgReportDelivered = "🎉 ОТЧЁТ УСПЕШНО ПРИНЯТ! Спасибо за работу! ☕"

	// MsgReportPersistedOnly tells the user the report was saved but the
	// supervisor was not reached.
	MsgReportPersistedOnly = "⚠️ Отчет сохранен, но не отправлен админу. Сообщите руководителю."

	// MsgReportFailed asks the user to retry after a failed finalization.
	MsgReportFailed = "⚠️ Произошла ошибка! Попробуйте еще раз."
)

// summaryTimeFormat renders the report time in the supervisor summary.
const summaryTimeFormat = "02.01.2006 15:04"

func progressMessage(accepted int) string {
	return fmt.Sprintf("✅ Принято фото: %d/%d\nОсталось: %d",
		accepted, RequiredEvidenceCount, RequiredEvidenceCount-accepted)
}

func summaryMessage(siteName, fullName string, at time.Time) string {
	return fmt.Sprintf("📋 НОВЫЙ ОТЧЁТ ОБ УБОРКЕ\n\n🏠 Кофейня: %s\n👤 Сотрудник: %s\n📅 Время: %s",
		siteName, fullName, at.Format(summaryTimeFormat))
}
