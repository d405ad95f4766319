package analytics

import (
	"math/rand"

	"studentboard/internal/dataset"
)

// Advice holds one human-readable tip per category. Categories never
// fail: a missing or non-numeric field falls back to a generic line.
type Advice struct {
	Memory     string `json:"memory"`
	Stress     string `json:"stress"`
	Attendance string `json:"attendance"`
	StudyTime  string `json:"study_time"`
}

// PersonalizedAdvice applies independent threshold rules over memory
// score, stress level, attendance and study time.
func PersonalizedAdvice(rec dataset.Record) Advice {
	adv := Advice{
		Memory:     "Memory tips: use spaced repetition and summarise.",
		Stress:     "Maintain a calm routine.",
		Attendance: "Keep regular attendance.",
		StudyTime:  "Maintain consistent study schedule.",
	}

	if c, ok := rec.Get(dataset.ColMemoryScore); ok && !c.Missing {
		switch {
		case !c.IsNum:
			adv.Memory = "Memory tips: use flashcards, review before sleep."
		case c.Num <= 2:
			adv.Memory = "Low memory score — use spaced repetition and short high-focus sessions (20–30 min)."
		case c.Num <= 3.5:
			adv.Memory = "Average memory — active recall + brief nightly revision will help."
		default:
			adv.Memory = "Good memory — maintain consistency and use practice tests."
		}
	}

	if c, ok := rec.Get(dataset.ColStressLevel); ok && !c.Missing {
		switch {
		case !c.IsNum:
			adv.Stress = "Try relaxation if feeling overwhelmed."
		case c.Num >= 8:
			adv.Stress = "High stress — practice short breathing exercises, reduce study marathon sessions, and maintain good sleep."
		case c.Num >= 5:
			adv.Stress = "Moderate stress — schedule short breaks and light exercise."
		default:
			adv.Stress = "Stress level OK — maintain routine and light relaxation."
		}
	}

	if c, ok := rec.Get(dataset.ColAttendance); ok && !c.Missing && c.IsNum {
		if c.Num < 75 {
			adv.Attendance = "Attendance is low. Prioritize class attendance or catch up with short revision notes daily."
		} else {
			adv.Attendance = "Good attendance — keep going."
		}
	}

	if minutes, ok := StudyMinutes(rec); ok {
		switch {
		case minutes < 60:
			adv.StudyTime = "Study duration seems low — aim for multiple focused sessions (25–45 min)."
		case minutes > 300:
			adv.StudyTime = "Long study sessions detected — ensure breaks and active recall."
		default:
			adv.StudyTime = "Study time looks reasonable — keep balanced sessions and review regularly."
		}
	}

	return adv
}

const DefaultActivities = 6

// activityPool is the fixed set of short mind-freshening breaks.
var activityPool = []string{
	"5-minute doodle or sketch",
	"Quick walk around the house/yard",
	"10 deep breaths (box breathing)",
	"Stretch neck & shoulders (3 minutes)",
	"Stand & look outside for 2 minutes",
	"Drink a glass of water + small snack",
	"Play a 2-minute memory card game",
	"Listen to one calming song",
	"Do a 2-min guided grounding exercise",
	"Close eyes and visualise success for 1 min",
	"Organize your study desk for 3 minutes",
	"Practice a tongue-twister (fun!)",
}

// MindActivities shuffles the activity pool with the student's seed and
// keeps the first n, so the picks are stable per student across calls.
func MindActivities(rec dataset.Record, n int) []string {
	if n <= 0 {
		n = DefaultActivities
	}
	if n > len(activityPool) {
		n = len(activityPool)
	}
	rng := rand.New(rand.NewSource(seedFromStudent(rec)))
	pool := append([]string(nil), activityPool...)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:n]
}

// Rotate cyclically rotates a list by offset. Callers use it to
// simulate "regenerate" from session state without reseeding.
func Rotate(list []string, offset int) []string {
	if len(list) == 0 {
		return list
	}
	idx := offset % len(list)
	if idx < 0 {
		idx += len(list)
	}
	return append(append([]string(nil), list[idx:]...), list[:idx]...)
}

// BrainFood holds the static food recommendations plus an optional
// stress note.
type BrainFood struct {
	DailyFocusFoods  []string `json:"daily_focus_foods"`
	RevisionSnacks   []string `json:"revision_snacks"`
	NightBeforeExam  []string `json:"night_before_exam"`
	HydrationTips    []string `json:"hydration_tips"`
	MealTimeSchedule []string `json:"meal_time_schedule"`
	Note             string   `json:"note,omitempty"`
}

// BrainFoodRecommendations returns the fixed category lists, with an
// extra note when stress level is 8 or higher.
func BrainFoodRecommendations(rec dataset.Record) BrainFood {
	out := BrainFood{
		DailyFocusFoods: []string{"Oats/oatmeal", "Walnuts", "Blueberries", "Eggs", "Spinach"},
		RevisionSnacks:  []string{"Almonds", "Dark chocolate (small piece)", "Greek yogurt", "Fruits"},
		NightBeforeExam: []string{"Light carbohydrate (rice/oats)", "Banana", "Warm milk (if you tolerate)"},
		HydrationTips: []string{
			"Keep a water bottle; sip every 20–30 minutes",
			"Avoid heavy caffeinated drinks before sleep",
		},
		MealTimeSchedule: []string{
			"Breakfast: within 1 hour of waking (oats/eggs/fruit)",
			"Mid-morning: small fruit or nuts",
			"Lunch: balanced meal with protein + veggies",
			"Evening (revision time): light snack + water",
			"Dinner: light, avoid heavy fried foods late",
		},
	}

	if c, ok := rec.Get(dataset.ColStressLevel); ok && !c.Missing && c.IsNum && c.Num >= 8 {
		out.Note = "High stress — include magnesium-rich foods (almonds, spinach) and avoid excessive caffeine."
	}
	return out
}

// MemoryTips is the static memory-enhancement list shown on the study
// tips page.
func MemoryTips() []string {
	return []string{
		"Use spaced repetition (short, frequent reviews).",
		"Create and review flashcards before sleep.",
		"Break material into small chunks and practice active recall.",
	}
}

// ExamFearTips is the static exam-fear list shown on the study tips page.
func ExamFearTips() []string {
	return []string{
		"Follow a pre-exam routine: short warm-up, small review, breathing.",
		"Practice mock tests under timed conditions.",
		"Visualize success and positive outcomes.",
	}
}
