package model

// Archetype is the fixed shape of a question.
type Archetype string

const (
	ArchetypeMultipleChoice Archetype = "multiple_choice"
	ArchetypeSlider         Archetype = "slider"
	ArchetypeOrdering       Archetype = "ordering"
)

// Question is implemented by exactly one variant per archetype. Renderers and
// the scoring engine switch on the concrete type; no field sniffing.
type Question interface {
	Archetype() Archetype
	Value() int
}

// Choice is one selectable option. Reveal metadata (actor, age) is stripped
// from the wire payload and surfaced through ScoreResult after answering.
type Choice struct {
	Label     string `json:"label"`
	ActorName string `json:"-"`
	Age       int    `json:"-"`
}

// MultipleChoice asks the player to pick one of the listed choices.
type MultipleChoice struct {
	Kind         Archetype   `json:"kind"`
	Prompt       string      `json:"prompt"`
	Choices      []Choice    `json:"choices"`
	CorrectIndex int         `json:"-"`
	Points       int         `json:"points"`
	Poster       string      `json:"poster,omitempty"`
	Placeholder  bool        `json:"placeholder,omitempty"`
	Key          QuestionKey `json:"-"`
}

func (q *MultipleChoice) Archetype() Archetype { return ArchetypeMultipleChoice }
func (q *MultipleChoice) Value() int           { return q.Points }

// Slider asks for an integer on an inclusive range containing the answer.
type Slider struct {
	Kind    Archetype   `json:"kind"`
	Prompt  string      `json:"prompt"`
	Min     int         `json:"min"`
	Max     int         `json:"max"`
	Correct int         `json:"-"`
	Points  int         `json:"points"`
	Poster  string      `json:"poster,omitempty"`
	Key     QuestionKey `json:"-"`
}

func (q *Slider) Archetype() Archetype { return ArchetypeSlider }
func (q *Slider) Value() int           { return q.Points }

// OrderingItem is one draggable entry of an ordering question.
type OrderingItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Ordering asks the player to drag Items onto the sorted Targets. Items are
// presented alphabetically; CorrectOrder holds the item ids sorted ascending
// by the ranking key (box office or rating).
type Ordering struct {
	Kind         Archetype      `json:"kind"`
	Prompt       string         `json:"prompt"`
	Items        []OrderingItem `json:"items"`
	Targets      []string       `json:"targets"`
	CorrectOrder []string       `json:"-"`
	Points       int            `json:"points"`
	Repeat       bool           `json:"repeat,omitempty"` // candidate pool was exhausted and reused
}

func (q *Ordering) Archetype() Archetype { return ArchetypeOrdering }
func (q *Ordering) Value() int           { return q.Points }

// NewPlaceholder builds the neutral question surfaced when generation could
// not assemble a real one. A single dismissible choice, worth nothing.
func NewPlaceholder() *MultipleChoice {
	return &MultipleChoice{
		Kind:        ArchetypeMultipleChoice,
		Prompt:      "We couldn't find a question for the current filters. Carry on!",
		Choices:     []Choice{{Label: "Continue"}},
		Points:      0,
		Placeholder: true,
	}
}
