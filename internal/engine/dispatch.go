package engine

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"hubkeeper/internal/ai"
)

// DispatchAI hands the message off to the AI collaborator without blocking the
// pipeline. The reply lands in the originating channel whenever it is ready;
// there is no cancellation of in-flight calls, so a reply can still arrive
// after an admin disables AI.
func (e *Engine) DispatchAI(channelID, actorName, rawText string, persona Persona) {
	text := e.stripSelfMention(rawText)
	if text == "" {
		text = emptyMentionAsk
	}

	go func() {
		// Queue behind the limiter rather than dropping: a mention always
		// gets its reply, just later under load.
		if err := e.aiLimiter.Wait(context.Background()); err != nil {
			log.Println("[WARN] AI rate limiter wait failed:", err)
			return
		}

		reply, err := e.Generate(actorName, text, persona)
		if err != nil {
			log.Println("[ERR] AI generate failed:", err)
			return
		}
		e.platform.SendChannel(channelID, reply)
	}()
}

// Generate performs a synchronous AI call with the persona's instructions and
// truncates oversized replies. Used by DispatchAI and the /ask command.
func (e *Engine) Generate(actorName, text string, persona Persona) (string, error) {
	reply, err := e.provider.Generate([]ai.Message{
		{Role: "system", Content: persona.Instructions()},
		{Role: "user", Content: "User (" + actorName + ") says: " + text},
	})
	if err != nil {
		return "", err
	}
	return TruncateReply(reply), nil
}

// TruncateReply caps a reply at the platform-safe limit, appending a
// truncation marker. The cut backs up to a rune boundary so a multi-byte
// character at the limit is dropped whole, never split.
func TruncateReply(reply string) string {
	if len(reply) <= ReplyLimit {
		return reply
	}
	cut := ReplyLimit
	for cut > 0 && !utf8.RuneStart(reply[cut]) {
		cut--
	}
	return reply[:cut] + truncationNote
}

// stripSelfMention removes direct-address markup for the bot's own user ID.
func (e *Engine) stripSelfMention(text string) string {
	id := e.self()
	if id != "" {
		text = strings.ReplaceAll(text, "<@"+id+">", "")
		text = strings.ReplaceAll(text, "<@!"+id+">", "")
	}
	return strings.TrimSpace(text)
}
