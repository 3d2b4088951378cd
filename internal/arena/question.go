package arena

import (
	"fmt"
	"math/rand/v2"
)

const optionCount = 4

// Question is one arithmetic problem. Options always holds optionCount
// distinct positive values, one of them equal to Answer. The value is
// created fresh per round and never mutated afterwards.
type Question struct {
	Text    string
	Answer  int
	Options []int
}

// QuestionView is the client-facing shape of a question. The answer is
// deliberately absent.
type QuestionView struct {
	Text    string `json:"text"`
	Options []int  `json:"options"`
}

func (q Question) View() *QuestionView {
	return &QuestionView{Text: q.Text, Options: q.Options}
}

// Generate produces a random arithmetic question. Multiplication uses
// operands in [2,10]; addition and subtraction use [1,50], with subtraction
// operands ordered so the result is never negative.
func Generate() Question {
	var a, b, answer int
	var op string

	switch rand.IntN(3) {
	case 0:
		op = "+"
		a, b = rand.IntN(50)+1, rand.IntN(50)+1
		answer = a + b
	case 1:
		op = "-"
		a, b = rand.IntN(50)+1, rand.IntN(50)+1
		if a < b {
			a, b = b, a
		}
		answer = a - b
	default:
		op = "*"
		a, b = rand.IntN(9)+2, rand.IntN(9)+2
		answer = a * b
	}

	return Question{
		Text:    fmt.Sprintf("%d %s %d", a, op, b),
		Answer:  answer,
		Options: decoys(answer),
	}
}

// decoys builds the shuffled option list around the correct answer. Near
// offsets (within 5) are tried first; after too many collisions a wider
// strictly-positive offset guarantees progress, so the loop always
// terminates.
func decoys(answer int) []int {
	seen := map[int]bool{answer: true}
	opts := []int{answer}

	for tries := 0; len(opts) < optionCount; tries++ {
		v := answer + rand.IntN(11) - 5
		if tries >= 32 {
			v = answer + rand.IntN(20) + 1
		}
		if v <= 0 || seen[v] {
			continue
		}
		seen[v] = true
		opts = append(opts, v)
	}

	rand.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}
