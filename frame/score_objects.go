package frame

import "fmt"

const (
	// MaxScoreObjects is the number of floating score labels kept at once.
	MaxScoreObjects = 10
	// ScoreObjectLife is how many frames a label stays on screen.
	ScoreObjectLife = 100
)

// ScoreObject is a floating "+N" label at the block where points were made.
type ScoreObject struct {
	Score float64
	X, Y  int // block coordinates
	Life  int
	Text  string
}

// ScoreObjects is a fixed ring; a new label overwrites the oldest one.
type ScoreObjects struct {
	objs [MaxScoreObjects]ScoreObject
	next int
}

// Add places a label. An empty msg shows the score itself.
func (s *ScoreObjects) Add(score float64, x, y int, msg string) {
	if msg == "" {
		msg = fmt.Sprintf("%+.0f", score)
	}
	s.objs[s.next] = ScoreObject{
		Score: score,
		X:     x,
		Y:     y,
		Life:  ScoreObjectLife,
		Text:  msg,
	}
	s.next = (s.next + 1) % MaxScoreObjects
}

// Tick ages every label by one frame.
func (s *ScoreObjects) Tick() {
	for i := range s.objs {
		if s.objs[i].Life > 0 {
			s.objs[i].Life--
		}
	}
}

// Live appends the labels still on screen, oldest first, to dst.
func (s *ScoreObjects) Live(dst []ScoreObject) []ScoreObject {
	for i := 0; i < MaxScoreObjects; i++ {
		o := s.objs[(s.next+i)%MaxScoreObjects]
		if o.Life > 0 {
			dst = append(dst, o)
		}
	}
	return dst
}

// Clear removes every label.
func (s *ScoreObjects) Clear() {
	*s = ScoreObjects{}
}
