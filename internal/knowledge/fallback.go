package knowledge

import (
	"fmt"
	"math/rand"
	"strings"
)

// Jokes is the clean joke pool used when a humor request cannot be or should
// not be generated.
var Jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything! 😄",
	"Why did the programmer quit his job? He didn't get arrays! 💻",
	"What do you call a bear with no teeth? A gummy bear! 🐻",
	"Why don't eggs tell jokes? They'd crack each other up! 🥚",
	"What's a computer's favorite snack? Microchips! 🖥️",
	"Why did the scarecrow win an award? He was outstanding in his field! 🌾",
	"What do you call a fake noodle? An impasta! 🍝",
	"Why don't skeletons fight each other? They don't have the guts! 💀",
	"What did the ocean say to the beach? Nothing, it just waved! 🌊",
	"Why did the math book look so sad? Because it had too many problems! 📚",
}

// RandomJoke draws one joke with the given RNG.
func RandomJoke(rng *rand.Rand) string {
	return Jokes[rng.Intn(len(Jokes))]
}

const learningTopicsFallback = `Here are exciting things you can learn today:

**Programming & Tech:**
• Python - Great for beginners, used in AI, web development, data science
• JavaScript - Build interactive websites and web apps
• Git & GitHub - Version control for your projects
• SQL - Manage and query databases

**Data Science & AI:**
• Machine Learning basics - Understand AI fundamentals
• Data Analysis with Pandas - Work with data in Python
• Data Visualization - Create charts with Matplotlib/Plotly

**Web Development:**
• HTML & CSS - Build beautiful web pages
• React or Next.js - Modern web frameworks
• REST APIs - Connect frontend to backend

**Soft Skills:**
• Problem-solving with algorithms
• System design thinking
• Communication & presentation skills

**Pick one that interests you and start with small projects! What catches your attention?**`

const howToLearnFallback = `To learn effectively:

1. **Choose Your Path**: Pick one topic that interests you most
2. **Start Small**: Learn basics before advanced concepts
3. **Practice Daily**: Even 30 minutes makes a difference
4. **Build Projects**: Apply what you learn in real projects
5. **Join Communities**: Connect with others learning the same thing

**Free Resources:**
• YouTube tutorials
• FreeCodeCamp.org
• Codecademy
• Official documentation
• GitHub projects

What specific topic interests you most? I can give you a focused learning path!`

const recommendationFallback = `I can provide guidance! Here are some thoughts:

**For Learning:** Start with your interests and build practical projects
**For Programming:** Python or JavaScript are great first languages
**For Career:** Focus on problem-solving skills and consistent practice
**For Projects:** Start small, finish what you start, then scale up

What specific area would you like recommendations for? I can give more targeted advice!`

var learningQueryPhrases = []string{
	"what can i learn", "what should i learn", "things to learn", "what to learn",
	"tell me what", "what could i learn",
}

var fallbackCapitals = []struct {
	match   string
	country string
	capital string
}{
	{"india", "India", "New Delhi"},
	{"france", "France", "Paris"},
	{"usa", "the United States", "Washington, D.C."},
	{"uk", "the United Kingdom", "London"},
	{"japan", "Japan", "Tokyo"},
	{"china", "China", "Beijing"},
	{"germany", "Germany", "Berlin"},
	{"italy", "Italy", "Rome"},
}

// Fallback produces a static answer when generation is unavailable or its
// output was rejected. It always returns usable text.
func Fallback(question string) string {
	lower := strings.ToLower(strings.TrimSpace(question))

	if matchesAny(lower, learningQueryPhrases) {
		return learningTopicsFallback
	}
	if (strings.Contains(lower, "how to") || strings.Contains(lower, "how do i") || strings.Contains(lower, "how can i")) && strings.Contains(lower, "learn") {
		return howToLearnFallback
	}
	if matchesAny(lower, []string{"recommend", "suggest", "advice", "should i"}) {
		return recommendationFallback
	}

	if strings.Contains(lower, "python") && matchesAny(lower, []string{"what is", "define", "explain"}) {
		return "Python is a high-level, interpreted programming language created by Guido van Rossum in 1991. It emphasizes code readability with its use of significant indentation. Python is widely used for web development, data science, artificial intelligence, scientific computing, and automation."
	}
	if strings.Contains(lower, "javascript") && matchesAny(lower, []string{"what is", "define"}) {
		return "JavaScript is a versatile, high-level programming language primarily used to create interactive web pages. It runs in web browsers and can also be used server-side with Node.js. It's one of the core technologies of the World Wide Web alongside HTML and CSS."
	}
	if strings.Contains(lower, "artificial intelligence") || strings.Contains(lower, " ai") || strings.HasPrefix(lower, "ai") {
		return "Artificial Intelligence (AI) is the simulation of human intelligence by computer systems. It includes machine learning, natural language processing, computer vision, and robotics. AI systems learn from data, recognize patterns, and make decisions with minimal human intervention."
	}

	if strings.Contains(lower, "capital") {
		for _, c := range fallbackCapitals {
			if strings.Contains(lower, c.match) {
				return fmt.Sprintf("The capital of %s is %s.", c.country, c.capital)
			}
		}
	}

	if strings.Contains(lower, "photosynthesis") {
		return "Photosynthesis is the process by which green plants convert light energy (usually from sunlight) into chemical energy stored in glucose. The equation is: 6CO₂ + 6H₂O + light energy → C₆H₁₂O₆ + 6O₂. Plants absorb carbon dioxide and water, and produce glucose and oxygen."
	}
	if strings.Contains(lower, "fibonacci") {
		return "The Fibonacci sequence is a series of numbers where each number is the sum of the two preceding ones: 0, 1, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89... It appears frequently in nature, art, and mathematics. The sequence was introduced to Western mathematics by Leonardo Fibonacci in 1202."
	}

	return fmt.Sprintf(`I understand you're asking: %q

I can help with many topics! Try asking:
• **Programming**: "What is Python?", "Explain machine learning"
• **Science**: "How does photosynthesis work?"
• **Geography**: "Capital of India?", "Who is the president?"
• **Math**: "What is a prime number?", "Explain Fibonacci"
• **Learning**: "What can I learn today?", "How to start coding?"
• **Recommendations**: "What should I learn?"

Could you rephrase your question, or pick a topic you'd like to explore?`, question)
}
