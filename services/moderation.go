package services

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/my-lord1/food-delivery-backend/entity"
)

// Rule-based review scorer. Pure: same comment always yields the same
// result, so moderation outcomes are reproducible in tests.

const (
	flagOffensive    = "offensive_language"
	flagPersonalInfo = "personal_info"
	flagSpam         = "spam"
)

// Terms are matched as substrings of the lowercased comment; each distinct
// term counts once no matter how often it repeats.
var offensiveLexicon = []string{
	"spam", "fake", "scam", "cheat", "worst", "horrible", "terrible",
	"pathetic", "disgusting", "shit", "fuck", "damn", "idiot", "stupid",
	"fraud", "liar", "click here", "buy now", "free", "win", "prize",
}

var (
	phonePattern = regexp.MustCompile(`\d{10}`)
	emailPattern = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	urlPattern   = regexp.MustCompile(`https?://`)
)

type ModerationResult struct {
	Score          int
	Status         entity.ModerationStatus
	Flags          []string
	DetectedIssues []string
	AutoApproved   bool
}

// ModerateComment scores a review comment from 100 down and derives the
// moderation disposition: >=70 approved, <40 flagged, otherwise pending.
func ModerateComment(comment string) ModerationResult {
	lower := strings.ToLower(comment)
	score := 100

	var issues []string
	var flags []string
	seen := map[string]bool{}
	addFlag := func(f string) {
		if !seen[f] {
			seen[f] = true
			flags = append(flags, f)
		}
	}

	for _, term := range offensiveLexicon {
		if strings.Contains(lower, term) {
			score -= 15
			issues = append(issues, "Contains word: "+term)
			addFlag(flagOffensive)
		}
	}

	// each pattern penalizes once regardless of how many times it matches
	if phonePattern.MatchString(lower) {
		score -= 20
		issues = append(issues, "Contains phone number")
		addFlag(flagPersonalInfo)
	}
	if emailPattern.MatchString(lower) {
		score -= 20
		issues = append(issues, "Contains email address")
		addFlag(flagPersonalInfo)
	}
	if urlPattern.MatchString(lower) {
		score -= 20
		issues = append(issues, "Contains URL")
		addFlag(flagPersonalInfo)
	}
	if hasRepeatedRun(lower, 5) {
		score -= 20
		issues = append(issues, "Contains repeated characters")
		addFlag(flagSpam)
	}

	length := utf8.RuneCountInString(comment)
	if length < 10 {
		score -= 10
		issues = append(issues, "Too short")
		addFlag(flagSpam)
	}

	if length > 20 {
		upper := 0
		for _, r := range comment {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		if float64(upper)/float64(length) > 0.5 {
			score -= 10
			issues = append(issues, "Excessive caps")
			addFlag(flagSpam)
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	res := ModerationResult{
		Score:          score,
		Flags:          flags,
		DetectedIssues: issues,
	}
	switch {
	case score >= 70:
		res.Status = entity.ModerationApproved
		res.AutoApproved = true
	case score < 40:
		res.Status = entity.ModerationFlagged
	default:
		res.Status = entity.ModerationPending
	}
	return res
}

// hasRepeatedRun reports whether s contains n or more consecutive copies of
// the same rune.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= n {
			return true
		}
	}
	return false
}
