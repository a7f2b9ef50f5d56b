package knowledge

import "strings"

// instantAnswer is a curated question→answer entry matched by substring.
// Entries cover common factual and life-advice questions, including a few
// emotional phrasings ("feel lonely") whose best answer is static.
type instantAnswer struct {
	patterns []string
	exclude  []string
	answer   string
}

// InstantAnswer returns a curated answer for factual questions that need no
// model call. The second return is false when no entry matches.
func InstantAnswer(question string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(question))
	for _, entry := range instantAnswers {
		if !matchesAny(lower, entry.patterns) {
			continue
		}
		if len(entry.exclude) > 0 && matchesAny(lower, entry.exclude) {
			continue
		}
		return entry.answer, true
	}
	return "", false
}

func matchesAny(lower string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

var instantAnswers = []instantAnswer{
	// Personal advice and life.
	{
		patterns: []string{"improve communication skills", "improve my communication"},
		answer:   "To improve communication: 1) Listen actively without interrupting, 2) Practice clear and concise speaking, 3) Read body language, 4) Ask questions to understand better, 5) Practice with friends or in front of a mirror, 6) Join public speaking groups like Toastmasters.",
	},
	{
		patterns: []string{"overcome overthinking", "stop overthinking"},
		answer:   "To overcome overthinking: 1) Practice mindfulness and meditation, 2) Set a time limit for decisions, 3) Focus on solutions, not problems, 4) Write down your thoughts to clear your mind, 5) Stay present in the moment, 6) Accept that you can't control everything.",
	},
	{
		patterns: []string{"become more confident", "build confidence"},
		answer:   "To build confidence: 1) Set small achievable goals, 2) Practice positive self-talk, 3) Improve your skills through learning, 4) Dress well and maintain good posture, 5) Face your fears gradually, 6) Celebrate small wins, 7) Surround yourself with supportive people.",
	},
	{
		patterns: []string{"stay motivated", "keep motivated"},
		answer:   "To stay motivated: 1) Set clear, meaningful goals, 2) Break big goals into small tasks, 3) Track your progress visually, 4) Reward yourself for milestones, 5) Find an accountability partner, 6) Remember your 'why', 7) Take breaks to avoid burnout.",
	},
	{
		patterns: []string{"manage time better", "time management"},
		answer:   "For better time management: 1) Use the Eisenhower Matrix (urgent vs important), 2) Time-block your calendar, 3) Eliminate distractions, 4) Use the Pomodoro Technique (25min focus + 5min break), 5) Prioritize tasks by impact, 6) Say 'no' to non-essential tasks.",
	},
	{
		patterns: []string{"stop procrastinating", "overcome procrastination"},
		answer:   "To stop procrastinating: 1) Start with just 2 minutes (2-minute rule), 2) Break tasks into tiny steps, 3) Remove distractions, 4) Use the '5-4-3-2-1 Go!' technique, 5) Make tasks fun or rewarding, 6) Work during your peak energy hours.",
	},
	{
		patterns: []string{"improve public speaking", "public speaking"},
		answer:   "To improve public speaking: 1) Practice your speech multiple times, 2) Know your material inside-out, 3) Start with small audiences, 4) Make eye contact and use gestures, 5) Speak slowly and clearly, 6) Join Toastmasters or similar groups, 7) Record yourself to identify areas to improve.",
	},
	{
		patterns: []string{"build good habits", "create good habits"},
		answer:   "To build good habits: 1) Start small (1% better daily), 2) Stack new habits onto existing ones, 3) Make it obvious (visual cues), 4) Make it easy (reduce friction), 5) Track your progress, 6) Be consistent for 21-66 days, 7) Don't break the chain.",
	},
	{
		patterns: []string{"deal with stress", "manage stress"},
		answer:   "To manage stress: 1) Practice deep breathing exercises, 2) Exercise regularly (even 10min walks help), 3) Get 7-8 hours sleep, 4) Talk to friends or a therapist, 5) Practice mindfulness/meditation, 6) Limit caffeine and alcohol, 7) Take breaks and do hobbies.",
	},

	// Learning and education.
	{
		patterns: []string{"study effectively", "how to study"},
		answer:   "Study effectively: 1) Use active recall (test yourself), 2) Spaced repetition (review at intervals), 3) Pomodoro technique (25min focus), 4) Teach concepts to others, 5) Take handwritten notes, 6) Eliminate distractions, 7) Study in short, focused sessions.",
	},
	{
		patterns: []string{"improve my english", "improve english"},
		answer:   "To improve English: 1) Read books, news, articles daily, 2) Watch English movies/shows with subtitles, 3) Practice speaking with language partners, 4) Write daily (journal, blog, essays), 5) Use apps like Duolingo or HelloTalk, 6) Learn 5 new words daily, 7) Think in English.",
	},
	{
		patterns: []string{"prepare for exam", "help me prepare for exam"},
		answer:   "Exam preparation: 1) Start 2-4 weeks early, 2) Create study schedule by topic, 3) Use active recall (practice tests), 4) Make concise notes/flashcards, 5) Study hardest subjects when fresh, 6) Take breaks (Pomodoro), 7) Sleep well before exam, 8) Review mistakes thoroughly. Last day: light review only!",
	},

	// Coding and technology.
	{
		patterns: []string{"start with machine learning", "learn machine learning"},
		answer:   "To start machine learning: 1) Learn Python basics first, 2) Study math (linear algebra, statistics), 3) Take Andrew Ng's ML course (Coursera), 4) Learn libraries: NumPy, Pandas, scikit-learn, 5) Practice on Kaggle datasets, 6) Build small projects, 7) Understand neural networks basics.",
	},
	{
		patterns: []string{"how does ai work", "explain ai"},
		answer:   "AI (Artificial Intelligence) works by training computer models on large datasets to recognize patterns and make predictions. It uses algorithms like neural networks (inspired by human brains) to learn from examples. Types: Machine Learning (learns from data), Deep Learning (complex neural networks), NLP (understands language).",
	},
	{
		patterns: []string{"what is api"},
		answer:   "API (Application Programming Interface) is a way for different software to communicate. Think of it as a waiter in a restaurant: you (app) tell the waiter (API) what you want, the waiter tells the kitchen (server), and brings back your food (data). APIs let apps share data and functionality.",
	},

	// Productivity.
	{
		patterns: []string{"how to be more organized", "get organized"},
		answer:   "To be more organized: 1) Use a task manager (Todoist, Notion), 2) Keep a daily calendar, 3) Declutter your workspace weekly, 4) Use folders and labels for files, 5) Plan your week every Sunday, 6) Follow the 'touch it once' rule, 7) Automate repetitive tasks.",
	},
	{
		patterns: []string{"productivity apps", "suggest apps for productivity"},
		answer:   "Top productivity apps: **Notion** (all-in-one workspace), **Todoist** (task management), **Obsidian** (note-taking), **RescueTime** (time tracking), **Forest** (focus timer), **Grammarly** (writing), **Pocket** (read later), **Calendly** (scheduling).",
	},

	// Business and career.
	{
		patterns: []string{"start a business", "how to start business"},
		answer:   "To start a business: 1) Identify a problem to solve, 2) Research your market and competitors, 3) Create a simple MVP (minimum viable product), 4) Validate with real customers, 5) Start small (don't quit your job yet), 6) Register your business legally, 7) Focus on one niche first.",
	},
	{
		patterns: []string{"earn money online", "make money online"},
		answer:   "Ways to earn online: 1) Freelancing (Upwork, Fiverr) - writing, design, coding, 2) Online tutoring (Chegg, Preply), 3) Content creation (YouTube, blogging), 4) Selling digital products (courses, ebooks), 5) Dropshipping or print-on-demand, 6) Affiliate marketing, 7) Virtual assistant services.",
	},
	{
		patterns: []string{"negotiate salary", "how to negotiate salary"},
		answer:   "Salary negotiation tips: 1) Research market rates (Glassdoor, PayScale), 2) Know your value and achievements, 3) Let them make the first offer, 4) Ask for 10-20% more than desired, 5) Focus on total package (benefits, WFH, PTO), 6) Practice your pitch, 7) Be ready to walk away.",
	},
	{
		patterns: []string{"what career is best for me", "which career"},
		answer:   "To find your career: 1) List your strengths and passions, 2) Take career assessments (16Personalities, StrengthsFinder), 3) Research growing industries (AI, healthcare, green tech), 4) Try internships or side projects, 5) Talk to people in fields you like, 6) Consider work-life balance needs, 7) Start somewhere - careers evolve!",
	},
	{
		patterns: []string{"improve linkedin", "linkedin profile"},
		answer:   "LinkedIn profile tips: 1) Professional photo (smile, plain background), 2) Headline = what you do + value, 3) Summary tells your story, 4) List achievements (not just duties), 5) Get recommendations, 6) Share valuable content regularly, 7) Engage with others' posts, 8) Custom URL. Think of it as your online resume!",
	},
	{
		patterns: []string{"build a portfolio", "create portfolio"},
		answer:   "Building a portfolio: 1) Choose 5-10 best projects (quality > quantity), 2) Show process, not just results, 3) Include case studies with problems/solutions, 4) Make it easy to navigate, 5) Add contact info prominently, 6) Update regularly, 7) Get feedback before publishing. Use platforms: Behance, GitHub, personal website.",
	},

	// Health and fitness.
	{
		patterns: []string{"how to lose weight", "lose weight"},
		answer:   "To lose weight healthily: 1) Calorie deficit (eat less than you burn), 2) Eat whole foods (protein, veggies, fruits), 3) Drink 2-3L water daily, 4) Exercise 30min daily (cardio + strength), 5) Sleep 7-8 hours, 6) Avoid sugary drinks, 7) Track your food intake. Aim for 0.5-1kg/week loss.",
	},
	{
		patterns: []string{"gym routine for beginners", "start gym"},
		answer:   "Beginner gym routine (3x/week): **Day 1**: Chest & triceps (bench press, pushups, dips). **Day 2**: Back & biceps (rows, pull-ups, curls). **Day 3**: Legs & shoulders (squats, lunges, overhead press). Start with 3 sets x 8-12 reps. Add 20min cardio. Rest 1-2 days between.",
	},

	// Finance.
	{
		patterns: []string{"how to save money", "save money"},
		answer:   "To save money: 1) Follow 50/30/20 rule (50% needs, 30% wants, 20% savings), 2) Automate savings (pay yourself first), 3) Track all expenses, 4) Cut subscriptions you don't use, 5) Cook at home, 6) Use cashback apps, 7) Set specific savings goals.",
	},
	{
		patterns: []string{"how to invest", "start investing"},
		answer:   "Investing basics: 1) Start with emergency fund (3-6 months expenses), 2) Pay off high-interest debt first, 3) Learn about stocks, bonds, mutual funds, ETFs, 4) Start with index funds (low risk, diversified), 5) Use apps like Vanguard, Fidelity, 6) Invest regularly (dollar-cost averaging), 7) Think long-term (10+ years).",
	},
	{
		patterns: []string{"explain stocks", "what are stocks"},
		answer:   "Stocks are shares of ownership in a company. When you buy a stock, you own a small piece of that company. You make money through: 1) **Dividends** (company profits shared with shareholders), 2) **Price appreciation** (sell stock for more than you paid). Risk: prices can go up or down based on company performance.",
	},
	{
		patterns: []string{"explain crypto", "what is crypto"},
		answer:   "Cryptocurrency is digital money using blockchain (secure, decentralized ledger). Bitcoin was first (2009). You can buy, trade, or mine crypto. Benefits: no banks, fast international transfers. Risks: volatile prices, hacking, regulations unclear. Only invest what you can afford to lose. Popular: Bitcoin, Ethereum, Solana.",
	},
	{
		patterns: []string{"passive income"},
		answer:   "Passive income ideas: 1) Dividend stocks/index funds, 2) Rental property or REITs, 3) Create online courses (Udemy, Teachable), 4) Write ebooks (Amazon KDP), 5) Affiliate marketing, 6) Print-on-demand products, 7) YouTube ad revenue, 8) License your photos/music. Note: Most require initial effort!",
	},

	// Relationships.
	{
		patterns: []string{"handle breakup", "deal with breakup"},
		answer:   "Handling breakups: 1) Allow yourself to grieve, 2) Cut contact temporarily (no stalking socials), 3) Lean on friends and family, 4) Focus on self-improvement, 5) Exercise and stay active, 6) Don't rush into new relationship, 7) Learn from the experience. Remember: time heals everything. 💙",
	},
	{
		patterns: []string{"make new friends", "how to make friends"},
		answer:   "To make new friends: 1) Join clubs/groups matching your interests, 2) Attend local events and meetups, 3) Be approachable and smile, 4) Start small talk and ask questions, 5) Follow up (suggest hanging out), 6) Be genuine and authentic, 7) Volunteer or take classes. Quality > quantity!",
	},
	{
		patterns: []string{"feel lonely", "why do i feel lonely"},
		answer:   "Feeling lonely is normal and common. To help: 1) Understand it's a signal to connect, not a flaw, 2) Reach out to friends/family (even a text helps), 3) Join communities with shared interests, 4) Volunteer or help others, 5) Develop self-compassion, 6) Consider therapy if persistent. You're not alone in feeling lonely!",
	},
	{
		patterns: []string{"set boundaries", "how to set boundaries"},
		answer:   "Setting healthy boundaries: 1) Know your limits (what you're comfortable with), 2) Be clear and direct ('I can't do that'), 3) Don't over-explain or apologize, 4) Start with small boundaries, 5) Be consistent in enforcing them, 6) It's okay to say 'no', 7) Remove yourself if boundaries aren't respected.",
	},

	// Curiosity.
	{
		patterns: []string{"are aliens real", "do aliens exist"},
		answer:   "Whether aliens exist is unknown. Given billions of galaxies with billions of stars, many scientists believe life elsewhere is probable (Drake Equation). However, we haven't found definitive proof yet. NASA is searching via SETI, Mars rovers, and studying exoplanets. The universe is vast - we're still exploring!",
	},
	{
		patterns: []string{"is time travel possible", "can we time travel"},
		answer:   "According to Einstein's relativity, time travel to the future is theoretically possible (time dilation near speed of light or strong gravity). Going backwards is much harder - would require exotic physics like wormholes or closed timelike curves. Currently, we can't do either practically. It remains science fiction for now!",
	},
	{
		patterns: []string{"meaning of happiness", "what is happiness"},
		answer:   "Happiness is a state of well-being and contentment. Research shows it comes from: 1) Strong relationships, 2) Meaningful work/purpose, 3) Gratitude and positive mindset, 4) Health and physical activity, 5) Helping others, 6) Personal growth, 7) Living in the present. It's a journey, not a destination!",
	},
	{
		patterns: []string{"purpose of life", "meaning of life"},
		answer:   "The purpose of life is a deeply personal question. Common answers: 1) Find happiness and minimize suffering, 2) Build meaningful relationships, 3) Contribute to society, 4) Grow and learn continuously, 5) Create and experience beauty, 6) Leave the world better than you found it. Your purpose is what you decide it to be!",
	},
	{
		patterns: []string{"what is consciousness", "explain consciousness"},
		answer:   "Consciousness is awareness of yourself and your surroundings. Scientists debate whether it's just brain activity or something more. It involves perception, thoughts, emotions, and sense of 'self'. The 'hard problem of consciousness' asks: how does physical brain create subjective experience? Still unsolved!",
	},
	{
		patterns: []string{"explain the universe", "how big is the universe"},
		answer:   "The universe is everything that exists - all matter, energy, space, and time. It's about 13.8 billion years old (Big Bang). Observable universe is 93 billion light-years across, with 2 trillion galaxies. It's expanding and mostly dark matter/energy. We're on a small planet in the Milky Way galaxy!",
	},
	{
		patterns: []string{"how to become successful", "become successful"},
		answer:   "Success formula: 1) Define YOUR success (not society's), 2) Set clear goals and plan, 3) Take consistent action daily, 4) Learn from failures, 5) Build strong relationships, 6) Stay disciplined over motivated, 7) Adapt and evolve, 8) Help others succeed. Success = small daily wins compounded over time!",
	},

	// Entertainment.
	{
		patterns: []string{"recommend movies", "good movies"},
		answer:   "Top movies by genre: **Sci-Fi**: Interstellar, Inception, The Matrix. **Drama**: The Shawshank Redemption, Forrest Gump. **Action**: The Dark Knight, Mad Max Fury Road. **Thriller**: Se7en, Shutter Island. **Comedy**: The Grand Budapest Hotel. **Animation**: Spider-Verse, Spirited Away. What mood are you in?",
	},
	{
		patterns: []string{"recommend books", "good books"},
		answer:   "Must-read books: **Self-help**: Atomic Habits, How to Win Friends. **Fiction**: 1984, To Kill a Mockingbird. **Business**: Zero to One, The Lean Startup. **Psychology**: Thinking Fast and Slow. **Philosophy**: Man's Search for Meaning. **Sci-Fi**: Dune, Ender's Game. What genre interests you?",
	},
	{
		patterns: []string{"recommend anime", "good anime"},
		answer:   "Top anime recommendations: **Action**: Attack on Titan, Demon Slayer, One Punch Man. **Adventure**: Fullmetal Alchemist Brotherhood, Hunter x Hunter. **Thriller**: Death Note, Steins;Gate. **Romance**: Your Name, A Silent Voice. **Slice of life**: Violet Evergarden. **Comedy**: Spy x Family. New to anime? Start with Death Note or Your Name!",
	},

	// Basic facts.
	{
		patterns: []string{"2+2", "2 + 2"},
		answer:   "4",
	},
	{
		patterns: []string{"5+5", "5 + 5"},
		answer:   "10",
	},
	{
		patterns: []string{"capital of france"},
		answer:   "The capital of France is Paris.",
	},
	{
		patterns: []string{"capital of india"},
		answer:   "The capital of India is New Delhi.",
	},
	{
		patterns: []string{"capital of usa", "capital of united states"},
		answer:   "The capital of the United States is Washington, D.C.",
	},
	{
		patterns: []string{"what is python"},
		exclude:  []string{"code"},
		answer:   "Python is a high-level, interpreted programming language known for its simplicity and readability. Created by Guido van Rossum in 1991, it's widely used in web development, data science, AI, and automation.",
	},
	{
		patterns: []string{"what is javascript"},
		answer:   "JavaScript is a programming language that makes websites interactive. It runs in web browsers and can also be used on servers with Node.js. It's one of the core technologies of the web.",
	},
	{
		patterns: []string{"what is html"},
		answer:   "HTML (HyperText Markup Language) is the standard language for creating web pages. It uses tags to structure content like headings, paragraphs, links, and images.",
	},
	{
		patterns: []string{"who invented python"},
		answer:   "Python was invented by Guido van Rossum and first released in 1991.",
	},
	{
		patterns: []string{"what is ai", "what is artificial intelligence"},
		answer:   "Artificial Intelligence (AI) is technology that enables computers to perform tasks that typically require human intelligence, such as learning, problem-solving, and decision-making.",
	},
}
