package personalization

import (
	"fmt"
	"strings"

	"github.com/yoockh/mentorship/internal/models"
)

type goalSkills struct {
	goal   string
	skills []string
}

// goalSkillTable maps a goal phrase to the skills it requires. A stated goal matches an
// entry when it contains the phrase, case-insensitively. Order is significant: gaps are
// reported in table order.
var goalSkillTable = []goalSkills{
	{"web development", []string{"HTML", "CSS", "JavaScript", "React", "Node.js"}},
	{"frontend", []string{"HTML", "CSS", "JavaScript", "TypeScript", "React"}},
	{"backend", []string{"Node.js", "SQL", "REST APIs", "Docker", "System Design"}},
	{"data science", []string{"Python", "Statistics", "SQL", "Pandas", "Machine Learning"}},
	{"machine learning", []string{"Python", "Mathematics", "Statistics", "TensorFlow", "PyTorch"}},
	{"mobile development", []string{"Swift", "Kotlin", "React Native", "Flutter"}},
	{"cloud", []string{"Linux", "Networking", "AWS", "Docker", "Kubernetes"}},
	{"devops", []string{"Linux", "Git", "Docker", "CI/CD", "Kubernetes", "Terraform"}},
	{"cybersecurity", []string{"Networking", "Linux", "Python", "Security Fundamentals", "Cryptography"}},
	{"game development", []string{"C#", "Unity", "C++", "Mathematics", "Game Design"}},
	{"ui/ux", []string{"Figma", "User Research", "Prototyping", "Design Systems"}},
}

var (
	beginnerSkills = []string{"HTML", "CSS", "Git", "SQL", "Figma", "Python"}
	advancedSkills = []string{
		"Machine Learning", "TensorFlow", "PyTorch", "Kubernetes", "Terraform",
		"System Design", "Cryptography",
	}
	highDemandSkills = []string{
		"JavaScript", "TypeScript", "Python", "React", "SQL", "AWS", "Docker",
		"Kubernetes", "Machine Learning",
	}
)

// estimate is a range in weeks.
type estimate struct {
	min, max int
}

func (e estimate) String() string { return fmt.Sprintf("%d-%d weeks", e.min, e.max) }

var defaultEstimate = estimate{2, 4}

var estimateTable = map[models.Difficulty]map[string]estimate{
	models.DifficultyBeginner: {
		"HTML":   {1, 2},
		"CSS":    {2, 3},
		"Git":    {1, 2},
		"SQL":    {2, 3},
		"Figma":  {1, 2},
		"Python": {3, 4},
	},
	models.DifficultyIntermediate: {
		"JavaScript":   {4, 6},
		"TypeScript":   {2, 4},
		"React":        {4, 6},
		"Node.js":      {4, 6},
		"Docker":       {2, 3},
		"AWS":          {6, 8},
		"Statistics":   {4, 6},
		"Pandas":       {2, 4},
		"React Native": {4, 6},
	},
	models.DifficultyAdvanced: {
		"Machine Learning": {8, 12},
		"TensorFlow":       {6, 8},
		"PyTorch":          {6, 8},
		"Kubernetes":       {6, 8},
		"Terraform":        {3, 5},
		"System Design":    {8, 12},
		"Cryptography":     {6, 10},
	},
}

func skillDifficulty(skill string) models.Difficulty {
	switch {
	case containsFold(beginnerSkills, skill):
		return models.DifficultyBeginner
	case containsFold(advancedSkills, skill):
		return models.DifficultyAdvanced
	default:
		return models.DifficultyIntermediate
	}
}

func estimateFor(d models.Difficulty, skill string) estimate {
	if e, ok := estimateTable[d][skill]; ok {
		return e
	}
	return defaultEstimate
}

// requiredSkills is the ordered, de-duplicated union of skills for every table entry
// any of the goals matches.
func requiredSkills(goals []string) []string {
	var out []string
	for _, g := range goals {
		lg := strings.ToLower(g)
		for _, entry := range goalSkillTable {
			if !strings.Contains(lg, entry.goal) {
				continue
			}
			for _, s := range entry.skills {
				if !containsFold(out, s) {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// missingSkills returns the required skills for goals that the user does not already
// have. A user skill covers a required one when either contains the other.
func missingSkills(goals, have []string) []string {
	var out []string
	for _, req := range requiredSkills(goals) {
		if !hasSkill(have, req) {
			out = append(out, req)
		}
	}
	return out
}

func hasSkill(have []string, skill string) bool {
	ls := strings.ToLower(skill)
	for _, h := range have {
		lh := strings.ToLower(strings.TrimSpace(h))
		if lh == "" {
			continue
		}
		if strings.Contains(lh, ls) || strings.Contains(ls, lh) {
			return true
		}
	}
	return false
}

// mentionedIn reports whether text appears in any of the phrases, case-insensitively.
func mentionedIn(phrases []string, text string) bool {
	lt := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(strings.ToLower(p), lt) {
			return true
		}
	}
	return false
}

func containsFold(list []string, v string) bool {
	for _, s := range list {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}), "-")
}
