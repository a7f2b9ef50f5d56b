package types

import "time"

// MemoryKind categorizes long-term memory entries.
type MemoryKind string

const (
	MemoryPreference   MemoryKind = "preference"
	MemoryPattern      MemoryKind = "pattern"
	MemoryFact         MemoryKind = "fact"
	MemoryConversation MemoryKind = "conversation"
	MemoryEmotional    MemoryKind = "emotional"
)

// Memory is a single long-term memory entry for a user.
type Memory struct {
	ID           string
	UserID       string
	Kind         MemoryKind
	Content      string
	Context      string
	Confidence   float64 // 0-1, how certain the entry is
	Importance   float64 // 0-1, used for ranking
	AccessCount  int
	Embedding    []float32 // optional, for semantic recall
	CreatedAt    time.Time
	LastAccessed time.Time
}

// EmotionalPattern aggregates occurrences of one emotion for one user.
// There is exactly one row per (user, emotion).
type EmotionalPattern struct {
	UserID         string
	Emotion        EmotionLabel
	Frequency      int
	AvgIntensity   float64
	Triggers       []string       // bounded, max 10
	TimeOfDay      map[string]int // "15:00" -> count
	Trend          string         // improving, declining, stable
	LastOccurrence time.Time
}

const maxTriggers = 10

// Record folds a new occurrence into the pattern, keeping the running
// intensity mean exact over Frequency samples.
func (p *EmotionalPattern) Record(intensity float64, triggers []string, at time.Time) {
	p.Frequency++
	p.AvgIntensity = (p.AvgIntensity*float64(p.Frequency-1) + intensity) / float64(p.Frequency)

	for _, trigger := range triggers {
		seen := false
		for _, have := range p.Triggers {
			if have == trigger {
				seen = true
				break
			}
		}
		if !seen {
			p.Triggers = append(p.Triggers, trigger)
		}
	}
	if len(p.Triggers) > maxTriggers {
		p.Triggers = p.Triggers[:maxTriggers]
	}

	if p.TimeOfDay == nil {
		p.TimeOfDay = make(map[string]int)
	}
	slot := at.Format("15:00")
	p.TimeOfDay[slot]++

	p.LastOccurrence = at
}

// Turn is one user/assistant exchange in the conversation window.
type Turn struct {
	User      string       `json:"user"`
	Assistant string       `json:"assistant"`
	Emotion   EmotionLabel `json:"emotion,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

const (
	// MaxTurns is K, the bounded conversation window length.
	MaxTurns      = 10
	maxTopics     = 15
	maxTrajectory = 20
)

// Conversation is the bounded per-user conversation context. One row per
// user; persisted indefinitely.
type Conversation struct {
	UserID         string
	SessionID      string
	Turns          []Turn
	Topics         []string
	Trajectory     []EmotionLabel
	CurrentEmotion EmotionLabel
	StartedAt      time.Time
	LastActivity   time.Time
}

// Append adds a turn and maintains every bound (turns <= MaxTurns, topics <=
// 15, trajectory <= 20).
func (c *Conversation) Append(turn Turn, topics []string) {
	c.Turns = append(c.Turns, turn)
	if len(c.Turns) > MaxTurns {
		c.Turns = c.Turns[len(c.Turns)-MaxTurns:]
	}

	for _, topic := range topics {
		seen := false
		for _, have := range c.Topics {
			if have == topic {
				seen = true
				break
			}
		}
		if !seen {
			c.Topics = append(c.Topics, topic)
		}
	}
	if len(c.Topics) > maxTopics {
		c.Topics = c.Topics[len(c.Topics)-maxTopics:]
	}

	if turn.Emotion != "" {
		c.CurrentEmotion = turn.Emotion
		c.Trajectory = append(c.Trajectory, turn.Emotion)
		if len(c.Trajectory) > maxTrajectory {
			c.Trajectory = c.Trajectory[len(c.Trajectory)-maxTrajectory:]
		}
	}

	c.LastActivity = turn.Timestamp
}

// RecentTurns returns up to n of the newest turns, oldest first.
func (c *Conversation) RecentTurns(n int) []Turn {
	if n <= 0 || len(c.Turns) == 0 {
		return nil
	}
	if n > len(c.Turns) {
		n = len(c.Turns)
	}
	return c.Turns[len(c.Turns)-n:]
}
