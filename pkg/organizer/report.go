package organizer

import "sort"

// Status is the outcome of processing a single file
type Status string

const (
	StatusMoved     Status = "moved"
	StatusUnmatched Status = "unmatched"
	StatusFailed    Status = "failed"
)

// Result records what happened to one file
type Result struct {
	Name        string
	Source      string
	Destination string
	Subdir      string
	Status      Status
	Err         error
}

// Report collects the results of one run
type Report struct {
	Directory string
	Results   []Result
}

// Count returns how many files ended with the given status
func (r *Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Filter returns the results with the given status
func (r *Report) Filter(status Status) []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == status {
			out = append(out, res)
		}
	}
	return out
}

// Lookup returns the result for a file name
func (r *Report) Lookup(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res, true
		}
	}
	return Result{}, false
}

func (r *Report) sortResults() {
	sort.Slice(r.Results, func(i, j int) bool {
		return r.Results[i].Name < r.Results[j].Name
	})
}
