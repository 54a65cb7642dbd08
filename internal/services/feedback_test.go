package services

import (
	"testing"

	"github.com/hoojinguyen/tech-interview-system-sub000/internal/models"
)

func TestGenerateAnswerFeedback_Deterministic(t *testing.T) {
	code := "// two pointers\nfunc twoSum(nums []int, target int) []int {\n\tfor i := range nums {\n\t\tif nums[i] > 0 {\n\t\t\treturn nums\n\t\t}\n\t}\n\treturn nil\n}"

	first := GenerateAnswerFeedback(code)
	second := GenerateAnswerFeedback(code)

	if first.Overall != second.Overall {
		t.Errorf("overall differs across runs: %v vs %v", first.Overall, second.Overall)
	}
	if first.CodeQuality != second.CodeQuality ||
		first.ProblemSolving != second.ProblemSolving ||
		first.Efficiency != second.Efficiency {
		t.Errorf("component scores differ across runs: %+v vs %+v", first, second)
	}
}

func TestGenerateAnswerFeedback_Baselines(t *testing.T) {
	// A bare answer with no signals scores exactly the baselines.
	fb := GenerateAnswerFeedback("hello world")

	if fb.CodeQuality != baseCodeQuality {
		t.Errorf("CodeQuality = %d, want baseline %d", fb.CodeQuality, baseCodeQuality)
	}
	if fb.ProblemSolving != baseProblemSolving {
		t.Errorf("ProblemSolving = %d, want baseline %d", fb.ProblemSolving, baseProblemSolving)
	}
	if fb.Efficiency != baseEfficiency {
		t.Errorf("Efficiency = %d, want baseline %d", fb.Efficiency, baseEfficiency)
	}
	if len(fb.Improvements) == 0 {
		t.Error("baseline answer should have improvement suggestions")
	}
}

func TestGenerateAnswerFeedback_SignalBumps(t *testing.T) {
	plain := GenerateAnswerFeedback("hello world")

	t.Run("comments raise code quality", func(t *testing.T) {
		fb := GenerateAnswerFeedback("// explanation of approach\nhello world")
		if fb.CodeQuality <= plain.CodeQuality {
			t.Errorf("CodeQuality with comments = %d, want > %d", fb.CodeQuality, plain.CodeQuality)
		}
	})

	t.Run("control flow raises problem solving and efficiency", func(t *testing.T) {
		fb := GenerateAnswerFeedback("if x > 0 then do the thing")
		if fb.ProblemSolving <= plain.ProblemSolving {
			t.Errorf("ProblemSolving = %d, want > %d", fb.ProblemSolving, plain.ProblemSolving)
		}
		if fb.Efficiency <= plain.Efficiency {
			t.Errorf("Efficiency = %d, want > %d", fb.Efficiency, plain.Efficiency)
		}
	})

	t.Run("scores never exceed max", func(t *testing.T) {
		rich := "// full solution with comments\nfunc solve(input []int) int {\n\tresult := 0\n\tfor _, v := range input {\n\t\tif v > 0 {\n\t\t\tresult += v\n\t\t}\n\t}\n\treturn result\n}\n// complexity: O(n) time, O(1) space, handles negatives and empty input correctly"
		fb := GenerateAnswerFeedback(rich)
		for name, score := range map[string]int{
			"CodeQuality":    fb.CodeQuality,
			"ProblemSolving": fb.ProblemSolving,
			"Efficiency":     fb.Efficiency,
		} {
			if score > maxScore {
				t.Errorf("%s = %d, exceeds max %d", name, score, maxScore)
			}
		}
		if fb.Overall > float64(maxScore) {
			t.Errorf("Overall = %v, exceeds max", fb.Overall)
		}
	})
}

func TestGenerateAnswerFeedback_OverallIsMean(t *testing.T) {
	fb := GenerateAnswerFeedback("hello world")
	want := float64(fb.CodeQuality+fb.ProblemSolving+fb.Efficiency) / 3
	// Overall is rounded to two decimals
	if diff := fb.Overall - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("Overall = %v, want mean %v", fb.Overall, want)
	}

	var zero models.AnswerFeedback
	if fb.Overall == zero.Overall && fb.CodeQuality == 0 {
		t.Error("feedback should never be zero-valued")
	}
}
