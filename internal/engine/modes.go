package engine

import (
	"fmt"
	"strings"
	"sync"
)

// BaselinePersona is the hardcoded fallback when neither a channel assignment
// nor a configured default resolves.
const BaselinePersona = "ceil"

// fixedPersonas maps each fixed persona token to its instruction block.
var fixedPersonas = map[string]string{
	"ceil":      "You are in CEIL Coordination Mode. Focus on CEIL internal matters: N1-N8 levels, groups, progression, reports, emails, and academic coordination.",
	"education": "You are in Education Mode. Focus on teaching methodology, grammar explanations, lesson ideas, assessment, and learner support.",
	"admin":     "You are in Admin Mode. Focus on formal emails, reports, policies, procedures, and institutional communication.",
	"general":   "You are in General Knowledge Mode. You can talk about any safe topic: history, science, technology, culture, etc.",
	"fun":       "You are in Fun Mode. Remain polite and safe, but slightly more relaxed, conversational, and playful.",
}

const basePrompt = `You are CEIL Assistant, an AI assistant for CEIL (Centre d'Enseignement Intensif des Langues) at UHBC, Chlef.

Core context:
- Internal levels: N1-N8.
- Groups are written as G1, G2, etc. Example: "N4 G3".
- Mapping (approx):
  A1 = N1 + N2
  A2 = N3 + N4
  B1 = N5 + N6
  B2 = N7 + N8
- The coordinator is Abdelkarim Benhalima.
- You can handle CEIL coordination, academic questions, general knowledge, and light fun conversation depending on mode.

Rules:
- Always be clear, concise, and grounded.
- Use professional tone for coordination/admin; more relaxed but still respectful in fun/general modes.
- Do not invent real personal data. Stay within safe, non-harmful topics.`

// Persona is a tagged variant: either one of the fixed persona tokens or a
// free-text topic persona. The zero value is not valid; construct through
// ParsePersona or FixedPersona.
type Persona struct {
	fixed string
	topic string
}

func FixedPersona(token string) (Persona, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	if _, ok := fixedPersonas[token]; !ok {
		return Persona{}, false
	}
	return Persona{fixed: token}, true
}

func TopicPersona(topic string) Persona {
	return Persona{topic: strings.TrimSpace(topic)}
}

// ParsePersona accepts a fixed persona token or the form "topic <free text>".
func ParsePersona(raw string) (Persona, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))

	if topic, ok := strings.CutPrefix(raw, "topic "); ok {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			return Persona{}, fmt.Errorf("please specify a topic, e.g. `topic football`")
		}
		return TopicPersona(topic), nil
	}
	if raw == "topic" {
		return Persona{}, fmt.Errorf("please specify a topic, e.g. `topic football`")
	}

	if p, ok := FixedPersona(raw); ok {
		return p, nil
	}
	return Persona{}, fmt.Errorf("unknown mode %q; available: %s, or `topic <something>`", raw, strings.Join(FixedPersonaTokens(), ", "))
}

// parseStoredKey resolves a stored identifier ("fun" or "topic:football").
// Unrecognized identifiers fall back to the baseline persona.
func parseStoredKey(key string) Persona {
	key = strings.ToLower(strings.TrimSpace(key))
	if topic, ok := strings.CutPrefix(key, "topic:"); ok {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			topic = "general conversation"
		}
		return TopicPersona(topic)
	}
	if p, ok := FixedPersona(key); ok {
		return p
	}
	return Persona{fixed: BaselinePersona}
}

// Key is the stored/displayed identifier: the fixed token, or "topic:<text>".
func (p Persona) Key() string {
	if p.topic != "" {
		return "topic:" + p.topic
	}
	return p.fixed
}

// IsTopic reports whether this is a free-text topic persona.
func (p Persona) IsTopic() bool { return p.topic != "" }

// Instructions returns the full system instruction block for the persona.
func (p Persona) Instructions() string {
	var extra string
	if p.topic != "" {
		extra = fmt.Sprintf("You are in Topic Mode about '%s'. Stay mostly on this topic unless the user clearly changes it.", p.topic)
	} else {
		extra = fixedPersonas[p.fixed]
		if extra == "" {
			extra = fixedPersonas[BaselinePersona]
		}
	}
	return basePrompt + "\n\n" + extra
}

// FixedPersonaTokens lists the fixed persona tokens in stable order.
func FixedPersonaTokens() []string {
	return []string{"ceil", "education", "admin", "general", "fun"}
}

// ModeRouter assigns personas to channels. Channels without an assignment fall
// back to the configured default, then to the baseline persona. Assignments
// never expire.
type ModeRouter struct {
	mu        sync.Mutex
	byChannel map[string]Persona
}

func NewModeRouter() *ModeRouter {
	return &ModeRouter{byChannel: make(map[string]Persona)}
}

// Set parses raw input ("fun", "topic football", ...) and assigns the result
// to the channel. Invalid input leaves existing state untouched.
func (r *ModeRouter) Set(channelID, raw string) (Persona, error) {
	p, err := ParsePersona(raw)
	if err != nil {
		return Persona{}, err
	}
	r.mu.Lock()
	r.byChannel[channelID] = p
	r.mu.Unlock()
	return p, nil
}

// Clear removes a channel's assignment.
func (r *ModeRouter) Clear(channelID string) {
	r.mu.Lock()
	delete(r.byChannel, channelID)
	r.mu.Unlock()
}

// Assigned returns the channel's explicit assignment, if any.
func (r *ModeRouter) Assigned(channelID string) (Persona, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byChannel[channelID]
	return p, ok
}

// HasAssignment reports whether the channel has an explicit persona.
func (r *ModeRouter) HasAssignment(channelID string) bool {
	_, ok := r.Assigned(channelID)
	return ok
}

// Resolve returns the effective persona for a channel: the explicit
// assignment, else the configured default, else the baseline.
func (r *ModeRouter) Resolve(channelID, configuredDefault string) Persona {
	if p, ok := r.Assigned(channelID); ok {
		return p
	}
	if configuredDefault != "" {
		return parseStoredKey(configuredDefault)
	}
	return Persona{fixed: BaselinePersona}
}
