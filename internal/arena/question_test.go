package arena

import (
	"strconv"
	"strings"
	"testing"
)

func TestGenerateQuestionValidity(t *testing.T) {
	for range 500 {
		q := Generate()

		if len(q.Options) != optionCount {
			t.Fatalf("got %d options, want %d: %v", len(q.Options), optionCount, q.Options)
		}

		seen := make(map[int]bool)
		hasAnswer := false
		for _, v := range q.Options {
			if v <= 0 {
				t.Fatalf("non-positive option %d in %v", v, q.Options)
			}
			if seen[v] {
				t.Fatalf("duplicate option %d in %v", v, q.Options)
			}
			seen[v] = true
			if v == q.Answer {
				hasAnswer = true
			}
		}
		if !hasAnswer {
			t.Fatalf("options %v do not contain answer %d", q.Options, q.Answer)
		}
	}
}

func TestGenerateQuestionArithmetic(t *testing.T) {
	for range 500 {
		q := Generate()

		parts := strings.Fields(q.Text)
		if len(parts) != 3 {
			t.Fatalf("unexpected question text %q", q.Text)
		}
		a, err := strconv.Atoi(parts[0])
		if err != nil {
			t.Fatalf("bad operand in %q: %v", q.Text, err)
		}
		b, err := strconv.Atoi(parts[2])
		if err != nil {
			t.Fatalf("bad operand in %q: %v", q.Text, err)
		}

		var want int
		switch parts[1] {
		case "+":
			if a < 1 || a > 50 || b < 1 || b > 50 {
				t.Fatalf("addition operands out of range in %q", q.Text)
			}
			want = a + b
		case "-":
			if a < b {
				t.Fatalf("subtraction would go negative in %q", q.Text)
			}
			want = a - b
		case "*":
			if a < 2 || a > 10 || b < 2 || b > 10 {
				t.Fatalf("multiplication operands out of range in %q", q.Text)
			}
			want = a * b
		default:
			t.Fatalf("unknown operator in %q", q.Text)
		}

		if q.Answer != want {
			t.Fatalf("question %q: answer = %d, want %d", q.Text, q.Answer, want)
		}
	}
}

func TestQuestionViewHidesAnswer(t *testing.T) {
	q := Question{Text: "2 + 2", Answer: 4, Options: []int{4, 5, 6, 7}}
	v := q.View()

	if v.Text != q.Text {
		t.Errorf("text = %q, want %q", v.Text, q.Text)
	}
	if len(v.Options) != len(q.Options) {
		t.Errorf("got %d options, want %d", len(v.Options), len(q.Options))
	}
}
