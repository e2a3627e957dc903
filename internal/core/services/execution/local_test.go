package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/core/services/language"
	"gitlab.com/codejudge.net/internal/core/services/verdict"
	"gitlab.com/codejudge.net/internal/core/services/wrapper"
	"gitlab.com/codejudge.net/internal/domain"
)

// localSandbox runs generated programs with toolchains installed on this
// machine, answering the way the remote execution service does.
type localSandbox struct {
	t *testing.T
}

func (s localSandbox) Execute(ctx context.Context, req *domain.SandboxRequest) (*domain.SandboxResponse, error) {
	dir := s.t.TempDir()
	file := req.Files[0]
	if err := os.WriteFile(filepath.Join(dir, file.Name), []byte(file.Content), 0o600); err != nil {
		return nil, err
	}

	resp := &domain.SandboxResponse{Language: req.Language, Version: req.Version}
	var run []string
	switch req.Language {
	case "python":
		run = []string{"python3", file.Name}
	case "javascript":
		run = []string{"node", file.Name}
	case "java":
		run = []string{"java", file.Name}
	case "c++":
		resp.Compile = runStage(ctx, dir, "g++", "-std=c++17", "-o", "prog", file.Name)
		run = []string{"./prog"}
	case "go":
		resp.Compile = runStage(ctx, dir, "go", "build", "-o", "prog", file.Name)
		run = []string{"./prog"}
	default:
		return nil, fmt.Errorf("no local toolchain for %s", req.Language)
	}
	if resp.Compile != nil && resp.Compile.ExitCode() != 0 {
		return resp, nil
	}
	resp.Run = runStage(ctx, dir, run[0], run[1:]...)
	return resp, nil
}

func runStage(ctx context.Context, dir, name string, args ...string) *domain.StageResult {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	res := &domain.StageResult{Stdout: stdout.String(), Stderr: stderr.String()}
	res.Output = res.Stdout + res.Stderr
	code := 0
	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Status = verdict.StatusTimeout
		code = -1
	case errors.As(err, &exitErr):
		code = exitErr.ExitCode()
	case err != nil:
		res.Stderr += err.Error()
		code = 1
	}
	res.Code = &code
	return res
}

func localEngine(t *testing.T) *Engine {
	cfg := testConfig()
	cfg.ClientTimeout = 5 * time.Minute
	logger := logging.NewNopLogger()
	return NewEngine(
		language.NewDefaultRegistry(nil),
		wrapper.NewDefaultGenerator(),
		localSandbox{t: t},
		verdict.NewClassifier(logger),
		cfg,
		logger,
	)
}

type localSolutions struct {
	twoSum     string
	palindrome string
	reverse    string
	echo       string
}

var localToolchains = []struct {
	key       string
	tool      string
	solutions localSolutions
}{
	{
		key:  "python",
		tool: "python3",
		solutions: localSolutions{
			twoSum:     twoSumPython,
			palindrome: "def isPalindrome(x):\n    return True\n",
			reverse:    "def reverseString(s):\n    s.reverse()\n",
			echo:       "def echo(s):\n    print(\"dbg\", end=\"\")\n    return s\n",
		},
	},
	{
		key:  "javascript",
		tool: "node",
		solutions: localSolutions{
			twoSum: `function twoSum(nums, target) {
  const seen = new Map();
  for (let i = 0; i < nums.length; i++) {
    if (seen.has(target - nums[i])) return [seen.get(target - nums[i]), i];
    seen.set(nums[i], i);
  }
  return [];
}
`,
			palindrome: "function isPalindrome(x) {\n  return true;\n}\n",
			reverse:    "function reverseString(s) {\n  s.reverse();\n}\n",
			echo:       "function echo(s) {\n  process.stdout.write(\"dbg\");\n  return s;\n}\n",
		},
	},
	{
		key:  "java",
		tool: "java",
		solutions: localSolutions{
			twoSum: `public int[] twoSum(int[] nums, int target) {
    Map<Integer, Integer> seen = new HashMap<>();
    for (int i = 0; i < nums.length; i++) {
        Integer j = seen.get(target - nums[i]);
        if (j != null) return new int[]{j, i};
        seen.put(nums[i], i);
    }
    return new int[0];
}
`,
			palindrome: "public boolean isPalindrome(int x) {\n    return true;\n}\n",
			reverse: `public void reverseString(char[] s) {
    for (int i = 0, j = s.length - 1; i < j; i++, j--) {
        char c = s[i];
        s[i] = s[j];
        s[j] = c;
    }
}
`,
			echo: "public String echo(String s) {\n    System.out.print(\"dbg\");\n    return s;\n}\n",
		},
	},
	{
		key:  "cpp",
		tool: "g++",
		solutions: localSolutions{
			twoSum: `vector<int> twoSum(vector<int>& nums, int target) {
    unordered_map<int, int> seen;
    for (int i = 0; i < (int)nums.size(); i++) {
        auto it = seen.find(target - nums[i]);
        if (it != seen.end()) return {it->second, i};
        seen[nums[i]] = i;
    }
    return {};
}
`,
			palindrome: "bool isPalindrome(int x) {\n    return true;\n}\n",
			reverse:    "void reverseString(vector<char>& s) {\n    reverse(s.begin(), s.end());\n}\n",
			echo:       "string echo(string s) {\n    cout << \"dbg\";\n    return s;\n}\n",
		},
	},
	{
		key:  "go",
		tool: "go",
		solutions: localSolutions{
			twoSum: `func twoSum(nums []int, target int) []int {
	seen := map[int]int{}
	for i, n := range nums {
		if j, ok := seen[target-n]; ok {
			return []int{j, i}
		}
		seen[n] = i
	}
	return nil
}
`,
			palindrome: "func isPalindrome(x int) bool {\n\treturn true\n}\n",
			reverse: `func reverseString(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
`,
			echo: "import \"fmt\"\n\nfunc echo(s string) string {\n\tfmt.Print(\"dbg\")\n\treturn s\n}\n",
		},
	},
}

var (
	palindromeSignature = &domain.FunctionSignature{
		FunctionName: "isPalindrome",
		ReturnType:   "bool",
		Parameters:   []domain.Parameter{{Name: "x", Type: "int"}},
	}
	palindromeTests = []domain.TestCase{
		{Input: domain.Int(121), ExpectedOutput: domain.Bool(true)},
		{Input: domain.Int(-121), ExpectedOutput: domain.Bool(false)},
		{Input: domain.Int(10), ExpectedOutput: domain.Bool(false)},
	}

	reverseSignature = &domain.FunctionSignature{
		FunctionName: "reverseString",
		ReturnType:   "void",
		Parameters:   []domain.Parameter{{Name: "s", Type: "char[]"}},
	}
	reverseTests = []domain.TestCase{
		{
			Input:          domain.Array(domain.String("h"), domain.String("e"), domain.String("l"), domain.String("l"), domain.String("o")),
			ExpectedOutput: domain.Array(domain.String("o"), domain.String("l"), domain.String("l"), domain.String("e"), domain.String("h")),
		},
		{
			Input:          domain.Array(domain.String("H"), domain.String("a")),
			ExpectedOutput: domain.Array(domain.String("a"), domain.String("H")),
		},
	}

	echoSignature = &domain.FunctionSignature{
		FunctionName: "echo",
		ReturnType:   "string",
		Parameters:   []domain.Parameter{{Name: "s", Type: "string"}},
	}
	echoText  = "a|b\"c\\d\te\x01f"
	echoTests = []domain.TestCase{{Input: domain.String(echoText), ExpectedOutput: domain.String(echoText)}}
)

func TestLocalDrivers(t *testing.T) {
	if testing.Short() {
		t.Skip("runs local compilers")
	}

	for _, tc := range localToolchains {
		tc := tc
		t.Run(tc.key, func(t *testing.T) {
			if _, err := exec.LookPath(tc.tool); err != nil {
				t.Skipf("%s not installed", tc.tool)
			}
			engine := localEngine(t)
			ctx := context.Background()

			t.Run("accepted", func(t *testing.T) {
				res, err := engine.Execute(ctx, tc.key, tc.solutions.twoSum, twoSum, twoSumTests)
				require.NoError(t, err)
				assert.Equal(t, domain.StatusAccepted, res.Status, res.ErrorMessage)
				assert.Equal(t, 2, res.PassedCount)
				assert.Equal(t, 2, res.TotalCount)
			})

			t.Run("stops at first failure", func(t *testing.T) {
				res, err := engine.Execute(ctx, tc.key, tc.solutions.palindrome, palindromeSignature, palindromeTests)
				require.NoError(t, err)
				assert.Equal(t, domain.StatusWrongAnswer, res.Status, res.ErrorMessage)
				require.NotNil(t, res.FailedTestIndex)
				assert.Equal(t, 1, *res.FailedTestIndex)
				assert.Equal(t, 1, res.PassedCount)
				assert.Equal(t, 3, res.TotalCount)
				assert.Equal(t, "false", res.ExpectedOutput)
				assert.Equal(t, "true", res.ActualOutput)
				for _, r := range res.TestResults {
					assert.LessOrEqual(t, r.Index, 1)
				}
			})

			t.Run("void mutates argument", func(t *testing.T) {
				res, err := engine.Execute(ctx, tc.key, tc.solutions.reverse, reverseSignature, reverseTests)
				require.NoError(t, err)
				assert.Equal(t, domain.StatusAccepted, res.Status, res.ErrorMessage)
				assert.Equal(t, 2, res.PassedCount)
			})

			t.Run("string round trip", func(t *testing.T) {
				res, err := engine.Execute(ctx, tc.key, tc.solutions.echo, echoSignature, echoTests)
				require.NoError(t, err)
				assert.Equal(t, domain.StatusAccepted, res.Status, res.ErrorMessage)
				require.Len(t, res.TestResults, 1)

				want := domain.String(echoText).String()
				assert.Equal(t, want, res.TestResults[0].Input)
				assert.Equal(t, want, res.TestResults[0].Expected)

				actual, err := domain.ParseValue(res.TestResults[0].Actual)
				require.NoError(t, err)
				assert.Equal(t, echoText, actual.AsString())
			})
		})
	}
}
