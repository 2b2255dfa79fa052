package validation

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// CheckFunc validates one encoded record.
type CheckFunc func(data []byte, label string) Result

// Summary aggregates the results of a bulk run.
type Summary struct {
	Results []Result `json:"results"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
}

// OK reports whether every record passed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// ValidateFS runs check over every .json file in fsys, walking subdirectories in
// lexical order. Files that cannot be read count as failures; a nil check
// defaults to ValidateJSON.
func ValidateFS(fsys fs.FS, check CheckFunc) (Summary, error) {
	if check == nil {
		check = ValidateJSON
	}

	var files []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(path.Ext(p), ".json") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("listing maze files: %w", err)
	}
	sort.Strings(files)

	summary := Summary{Results: make([]Result, 0, len(files))}
	for _, name := range files {
		var result Result
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			result = Result{Label: name, Errors: []string{fmt.Sprintf("read file: %v", err)}}
		} else {
			result = check(data, name)
		}

		if result.Success {
			summary.Passed++
		} else {
			summary.Failed++
		}
		summary.Results = append(summary.Results, result)
	}

	return summary, nil
}
