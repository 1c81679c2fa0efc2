package progress

import (
	"time"

	"gorm.io/datatypes"

	"training-portal/internal/models"
)

// mergeQuizResult applies one finished quiz sitting to a progress record.
// Invariants enforced here and nowhere else: highScore never decreases,
// isCompleted never reverts to false, the attempt history only grows.
// lastAttemptAnswers is always overwritten, pass or fail.
func mergeQuizResult(p models.ModuleProgress, score int, passed bool, answers map[string]int, now time.Time) models.ModuleProgress {
	p.IsUnlocked = true
	p.IsCompleted = p.IsCompleted || passed
	if score > p.HighScore {
		p.HighScore = score
	}
	p.LastAttemptAnswers = datatypes.NewJSONType(answers)
	p.Attempts = append(p.Attempts, models.AttemptRecord{
		Date:    now,
		Score:   score,
		Answers: answers,
	})
	return p
}
