package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/my-lord1/food-delivery-backend/entity"
)

func TestModerateCommentCleanText(t *testing.T) {
	res := ModerateComment("The paneer tikka was delicious and arrived hot")

	assert.Equal(t, 100, res.Score)
	assert.Equal(t, entity.ModerationApproved, res.Status)
	assert.True(t, res.AutoApproved)
	assert.Empty(t, res.Flags)
	assert.Empty(t, res.DetectedIssues)
}

func TestModerateCommentTooShort(t *testing.T) {
	res := ModerateComment("a")

	assert.Equal(t, 90, res.Score)
	assert.Equal(t, entity.ModerationApproved, res.Status)
	assert.True(t, res.AutoApproved)
	assert.Equal(t, []string{"spam"}, res.Flags)
	assert.Contains(t, res.DetectedIssues, "Too short")
}

func TestModerateCommentPendingBand(t *testing.T) {
	// "buy now" (-15) and a URL (-20) land the comment in 40..69
	res := ModerateComment("buy now at https://deals.example.org today")

	assert.Equal(t, 65, res.Score)
	assert.Equal(t, entity.ModerationPending, res.Status)
	assert.False(t, res.AutoApproved)
	assert.Equal(t, []string{"offensive_language", "personal_info"}, res.Flags)
}

func TestModerateCommentFlagged(t *testing.T) {
	// three lexicon terms, a phone number, and shouting caps
	res := ModerateComment("WORST FAKE FOOD CALL 9876543210 TOTAL SCAM")

	assert.Equal(t, 25, res.Score)
	assert.Equal(t, entity.ModerationFlagged, res.Status)
	assert.False(t, res.AutoApproved)
	assert.Contains(t, res.Flags, "offensive_language")
	assert.Contains(t, res.Flags, "personal_info")
	assert.Contains(t, res.Flags, "spam")
	assert.Contains(t, res.DetectedIssues, "Contains phone number")
	assert.Contains(t, res.DetectedIssues, "Excessive caps")
}

func TestModerateCommentRepeatedCharacters(t *testing.T) {
	res := ModerateComment("Soooooo good, loved every single bite")

	assert.Equal(t, 80, res.Score)
	assert.Equal(t, entity.ModerationApproved, res.Status)
	assert.Contains(t, res.DetectedIssues, "Contains repeated characters")
}

func TestModerateCommentEmail(t *testing.T) {
	res := ModerateComment("Reach me at john.doe@example.com for a referral")

	assert.Equal(t, 80, res.Score)
	assert.Contains(t, res.DetectedIssues, "Contains email address")
	assert.Equal(t, []string{"personal_info"}, res.Flags)
}

func TestModerateCommentDistinctTermCountsOnce(t *testing.T) {
	res := ModerateComment("fake fake fake, totally fake experience here")

	// one distinct term, one penalty
	assert.Equal(t, 85, res.Score)
	require.Len(t, res.DetectedIssues, 1)
	assert.Equal(t, "Contains word: fake", res.DetectedIssues[0])
}

func TestModerateCommentScoreClampedAtZero(t *testing.T) {
	res := ModerateComment("spam fake scam cheat worst horrible terrible shit fuck damn call 9876543210 visit https://x.yz")

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, entity.ModerationFlagged, res.Status)
}

func TestModerateCommentDeterministic(t *testing.T) {
	const comment = "WORST FAKE FOOD CALL 9876543210 TOTAL SCAM"
	first := ModerateComment(comment)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ModerateComment(comment))
	}
}
