package reply

import (
	"math/rand"

	"github.com/navin5447/Edgesoul/internal/types"
)

// Intensity buckets used by the emotional-support handler.
const (
	bucketLow    = "low"
	bucketMedium = "medium"
	bucketHigh   = "high"
)

// supportTemplates holds the static fallback responses used when the
// generation backend is unavailable, keyed by emotion and intensity bucket.
var supportTemplates = map[types.EmotionLabel]map[string][]string{
	types.EmotionSadness: {
		bucketHigh: {
			"I can see you're really struggling right now. Your feelings are completely valid, and it's okay to feel this way. You're stronger than you think, and I'm here to support you through this. What would help you feel better right now?",
			"I hear you, and I want you to know that you're not alone in this. This is a difficult moment, but it doesn't define you. You have the strength to get through this, and I believe in you. Want to talk about what's going on?",
		},
		bucketMedium: {
			"I can tell something's bothering you, and I'm here to listen. It's okay to feel down sometimes - it's part of being human. Let's work through this together. What's on your mind?",
			"You seem like you're going through a tough time. Remember that difficult moments help us grow. I'm here to support you. How can I help?",
		},
		bucketLow: {
			"Something seems to be on your mind. I'm here if you want to talk about it. What's going on?",
			"I'm sensing you might be feeling a bit off. Want to share what's bothering you?",
		},
	},
	types.EmotionAnger: {
		bucketHigh: {
			"I can feel your frustration, and it's completely understandable to feel this way. Let's take a moment together and think about how to handle this situation constructively. What happened?",
			"You're clearly upset, and that's okay. Your feelings matter. Let's talk through this and figure out the best way forward. I'm here to help.",
		},
		bucketMedium: {
			"I can see you're frustrated. It's okay to feel annoyed sometimes. Let's work through this together. What's bothering you?",
			"Sounds like something really got to you. I'm here to listen and help you process this. What's going on?",
		},
		bucketLow: {
			"Something seems to have irritated you. Want to talk about it?",
			"I'm picking up on some frustration. How can I help?",
		},
	},
	types.EmotionFear: {
		bucketHigh: {
			"I can sense you're feeling really anxious right now. It's okay to be scared - it means you care. You're braver than you think, and I'm here with you. Let's break this down together. What's worrying you?",
			"I hear the worry in your words. Fear is natural, but you don't have to face it alone. You've got this, and I'm here to support you. Want to talk through what's making you anxious?",
		},
		bucketMedium: {
			"It sounds like something's making you a bit anxious. That's completely normal. Let's work through this worry together. What's on your mind?",
			"I can sense some concern here. It's okay to feel uncertain sometimes. I'm here to help you feel more confident. What's bothering you?",
		},
		bucketLow: {
			"Something seems to be causing a bit of worry. Want to talk it through?",
			"I'm sensing some mild concern. How can I help ease your mind?",
		},
	},
}

// genericSupportTemplates cover emotions without a dedicated table.
var genericSupportTemplates = []string{
	"I'm here for you. Your feelings matter, and I want to understand what you're going through.",
	"I hear you, and I'm here to support you. Want to talk more about what's on your mind?",
}

// supportTemplate picks a fallback support line for the emotion and bucket.
func supportTemplate(rng *rand.Rand, emotion types.EmotionLabel, bucket string) string {
	if byBucket, ok := supportTemplates[emotion]; ok {
		if candidates, ok := byBucket[bucket]; ok && len(candidates) > 0 {
			return candidates[rng.Intn(len(candidates))]
		}
	}
	return genericSupportTemplates[rng.Intn(len(genericSupportTemplates))]
}

// tonePresetStyle bundles the phrasing and length defaults a tone preset
// implies for casual and emotional replies.
type tonePresetStyle struct {
	Greetings         []string
	EmotionalTone     string
	MaxWordsCasual    int
	MaxWordsEmotional int
}

var toneStyles = map[types.TonePreset]tonePresetStyle{
	types.ToneMaleLeaning: {
		Greetings: []string{
			"Hey! What's up?",
			"Hi there! How's it going?",
			"What's on your mind?",
			"Hey, how can I help?",
		},
		EmotionalTone:     "direct and supportive",
		MaxWordsCasual:    30,
		MaxWordsEmotional: 50,
	},
	types.ToneFemaleLeaning: {
		Greetings: []string{
			"Hi there! How are you feeling today?",
			"Hello! I'm here for you. What's on your mind?",
			"Hi! How has your day been?",
			"Hey! I'd love to hear how you're doing.",
		},
		EmotionalTone:     "warm and understanding",
		MaxWordsCasual:    40,
		MaxWordsEmotional: 70,
	},
	types.ToneBalanced: {
		Greetings: []string{
			"Hi! How are you?",
			"Hello! What can I help you with?",
			"Hey there! How's everything going?",
			"Hi! What's on your mind?",
		},
		EmotionalTone:     "friendly and supportive",
		MaxWordsCasual:    35,
		MaxWordsEmotional: 60,
	},
}

// toneStyle resolves the style for a preset, defaulting to balanced.
func toneStyle(preset types.TonePreset) tonePresetStyle {
	if style, ok := toneStyles[preset]; ok {
		return style
	}
	return toneStyles[types.ToneBalanced]
}

// learningMenus are the instant topic suggestions for generic "I want to
// learn something" requests.
var learningMenus = []string{
	`That's awesome! Here are some exciting things you can learn:

**Tech & Programming:**
- Python basics - great for beginners!
- Web development (HTML, CSS, JavaScript)
- Data science fundamentals

**Creative Skills:**
- Digital art & design
- Music production
- Creative writing

**Personal Growth:**
- New language (Spanish, French, Japanese)
- Photography techniques
- Cooking & baking

What interests you most? I can give you specific tips! 🌟`,
	`I love your enthusiasm for learning! Here are some popular topics:

📚 **Knowledge:**
- Science & nature
- History & culture
- Psychology & mindfulness

💻 **Technology:**
- Coding & programming
- AI & machine learning
- Cybersecurity basics

🎨 **Creative:**
- Drawing & painting
- Music (instrument or theory)
- Video editing

✨ Pick one and let me know - I'll help you get started!`,
}

// joyfulClarificationMenu is the hybrid handler's response when a joyful user
// wants to learn but the topic is too vague to answer.
const joyfulClarificationMenu = `I LOVE your energy! 🌟 You're in such a great mood to learn - that's when learning is most fun!

What specifically interests you right now?
- Programming: Python, JavaScript, AI?
- Science: Physics, Biology, Space?
- Skills: Cooking, Art, Music?
- Languages: Spanish, French, Japanese?
- Anything else you're curious about?

I'm excited to explore it with you! 🎯`

// hybridOpeners prefix knowledge content with an emotional acknowledgment.
var hybridOpeners = map[types.EmotionLabel]string{
	types.EmotionJoy:      "I love your enthusiasm! Let's dive in! 🌟\n\n",
	types.EmotionLove:     "I can feel your passion! This is great! ❤️\n\n",
	types.EmotionSurprise: "Ooh, interesting question! 🤔\n\n",
	types.EmotionSadness:  "I'm here to help you learn. 💙\n\n",
	types.EmotionFear:     "Don't worry, I'll explain this clearly. 🤝\n\n",
	types.EmotionAnger:    "Let me help you understand this. 🎯\n\n",
}

// emotionalAwarenessPrefixes soften factual answers for users showing a
// confident negative emotion.
var emotionalAwarenessPrefixes = map[types.EmotionLabel]string{
	types.EmotionAnger:   "I understand you might be frustrated. Let me help you with that:\n\n",
	types.EmotionFear:    "I can sense some concern. Here's what I can share:\n\n",
	types.EmotionSadness: "I'm here to help. Let me share what I know:\n\n",
}

// proactiveAdditions are appended by the personality adapter for highly
// proactive profiles.
var proactiveAdditions = []string{
	" Would you like to explore this further?",
	" Is there anything specific you'd like to know more about?",
	" Let me know if you need any clarification!",
	" Feel free to ask if you have any questions.",
	" What would you like to talk about next?",
}

// clarificationPrompt is the default handler's static response.
const clarificationPrompt = "I want to make sure I understand you correctly. Could you help me by sharing a bit more about what you're looking for? I'm here to help with information, provide support, or just have a conversation - whatever would be most helpful for you right now."

// emptyMessagePrompt answers validation failures without touching any store.
const emptyMessagePrompt = "It looks like your message came through empty. What would you like to talk about?"

// casualFallback is the last-resort casual reply when generation fails.
const casualFallback = "I'm here and listening. What would you like to talk about?"
