package matching

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spigell/ats-matcher/internal/sections"
)

// Result is the outcome of one resume and job description pair.
type Result struct {
	Resume          string            `json:"resume"`
	JobDescription  string            `json:"job_description"`
	Score           float64           `json:"score"`
	Percent         float64           `json:"percent"`
	Mode            string            `json:"mode"`
	Source          Source            `json:"source"`
	Skills          sections.SkillSet `json:"skills"`
	Experience      string            `json:"experience,omitempty"`
	Contact         sections.Contact  `json:"contact"`
	CommonSkills    []string          `json:"common_skills,omitempty"`
	ReferenceSkills []string          `json:"reference_skills,omitempty"`
	MissingSkills   []string          `json:"missing_skills,omitempty"`
	Error           string            `json:"error,omitempty"`
	Err             error             `json:"-"`
}

// Failed reports whether the pair could not be scored.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Message renders the score the way it is printed to the user.
func (r *Result) Message() string {
	return fmt.Sprintf("The similarity score between the resume and job description is: %.2f%%", r.Percent)
}

type Results struct {
	Items []*Result
}

func (r *Results) Len() int {
	return len(r.Items)
}

// Sort orders results by descending score. Failed pairs go last; ties keep input order.
func (r *Results) Sort() {
	sort.SliceStable(r.Items, func(i, j int) bool {
		a, b := r.Items[i], r.Items[j]
		if a.Failed() != b.Failed() {
			return !a.Failed()
		}
		return a.Score > b.Score
	})
}

// Failed returns the results that carry an error.
func (r *Results) Failed() []*Result {
	var failed []*Result
	for _, item := range r.Items {
		if item.Failed() {
			failed = append(failed, item)
		}
	}
	return failed
}

// Report summarizes every pair by job description name.
func (r *Results) Report() map[string]map[string]string {
	report := make(map[string]map[string]string, len(r.Items))
	for _, item := range r.Items {
		entry := map[string]string{
			"resume": item.Resume,
			"mode":   item.Mode,
		}

		if item.Failed() {
			entry["error"] = item.Err.Error()
		} else {
			entry["score"] = fmt.Sprintf("%.2f%%", item.Percent)
			entry["common skills"] = fmt.Sprint(item.CommonSkills)
		}

		if len(item.MissingSkills) > 0 {
			entry["missing skills"] = fmt.Sprint(item.MissingSkills)
		}

		report[item.JobDescription] = entry
	}
	return report
}

func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "ats_results_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
