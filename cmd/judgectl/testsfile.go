package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gitlab.com/codejudge.net/internal/domain"
)

// TestsFile is the on-disk description of a problem's function and cases.
//
//	signature:
//	  functionName: twoSum
//	  returnType: int[]
//	  parameters:
//	    - {name: nums, type: int[]}
//	    - {name: target, type: int}
//	testCases:
//	  - input: {nums: [2, 7, 11, 15], target: 9}
//	    expectedOutput: [0, 1]
type TestsFile struct {
	ProblemID string                   `json:"problemId" yaml:"problemId"`
	Signature domain.FunctionSignature `json:"signature" yaml:"signature"`
	TestCases []domain.TestCase        `json:"testCases" yaml:"testCases"`
}

// LoadTestsFile decodes a .json file with encoding/json and anything else as YAML
func LoadTestsFile(path string) (*TestsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tests file: %w", err)
	}

	var tf TestsFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &tf)
	} else {
		err = yaml.Unmarshal(data, &tf)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse tests file %s: %w", path, err)
	}
	if len(tf.TestCases) == 0 {
		return nil, fmt.Errorf("tests file %s has no test cases", path)
	}
	return &tf, nil
}
