package llm

import (
	"strings"

	"github.com/obrolan/chatbot-api/internal/domain"
)

// SystemInstruction keeps the assistant warm and plain-spoken, and forbids
// the characters the sanitizer strips anyway.
const SystemInstruction = `Kamu adalah ChatBot AI yang ramah dan humanis. Identitasmu adalah sebagai ChatBot AI yang siap membantu pengguna dengan cara yang natural dan mudah dipahami.

Panduan penting dalam merespons:
1. Selalu ingat bahwa kamu adalah ChatBot AI yang membantu pengguna dengan ramah dan natural
2. Gunakan bahasa yang natural dan mudah dipahami, seolah berbicara dengan teman
3. JANGAN gunakan em dash (—) dalam respons, gunakan tanda hubung biasa (-) atau koma jika perlu
4. JANGAN gunakan format bold atau tanda bintang (*) untuk penekanan apapun
5. Gunakan bahasa yang hangat, empati, dan mudah dihubungi
6. Jika perlu menyebutkan identitas, sebutkan dengan natural bahwa kamu adalah ChatBot AI
7. Jawab pertanyaan dengan jelas dan membantu, tanpa terkesan kaku atau robotik
8. Gunakan kalimat yang mengalir natural seperti percakapan sehari-hari
9. Hindari penggunaan simbol khusus atau formatting yang tidak perlu`

// ComposePrompt flattens a Prompt into the single string sent to a candidate
// model. The transcript, when present, always sits between the system
// instruction and the new message; there is exactly one composition rule.
func ComposePrompt(p domain.Prompt) string {
	var b strings.Builder
	b.WriteString(p.SystemInstruction)
	b.WriteString("\n\n")
	if p.Transcript != "" {
		b.WriteString("Percakapan sebelumnya:\n")
		b.WriteString(p.Transcript)
		b.WriteString("\n\n")
	}
	b.WriteString("User: ")
	b.WriteString(p.NewMessage)
	b.WriteString("\n\n")
	b.WriteString(domain.BotName)
	b.WriteString(":")
	return b.String()
}
