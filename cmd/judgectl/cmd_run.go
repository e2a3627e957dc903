package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gitlab.com/codejudge.net/internal/adapter/piston"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/core/services/execution"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/core/services/language"
	"gitlab.com/codejudge.net/internal/core/services/verdict"
	"gitlab.com/codejudge.net/internal/core/services/wrapper"
	"gitlab.com/codejudge.net/internal/domain"
)

var (
	runLanguage string
	runCodeFile string
	runTests    string
	runPolicy   string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Judge a solution file against a tests file",
	Long: `Wraps the solution in a generated driver, executes it on the sandbox and
prints the verdict as JSON. The tests file is YAML or JSON with a signature
and a list of testCases.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runLanguage, "language", "l", "", "solution language (python, javascript, java, cpp, go)")
	runCmd.Flags().StringVarP(&runCodeFile, "code", "c", "", "path to the solution source")
	runCmd.Flags().StringVarP(&runTests, "tests", "t", "", "path to the tests file (.yaml or .json)")
	runCmd.Flags().StringVar(&runPolicy, "policy", "", "failure policy: stop-at-first-failure or run-all")
	_ = runCmd.MarkFlagRequired("language")
	_ = runCmd.MarkFlagRequired("code")
	_ = runCmd.MarkFlagRequired("tests")
}

func runRun(cmd *cobra.Command, args []string) error {
	code, err := os.ReadFile(runCodeFile)
	if err != nil {
		return fmt.Errorf("failed to read solution: %w", err)
	}
	tf, err := LoadTestsFile(runTests)
	if err != nil {
		return err
	}
	var policy domain.FailurePolicy
	if runPolicy != "" {
		if policy, err = domain.ParseFailurePolicy(runPolicy); err != nil {
			return err
		}
	}

	cfg := executorConfig()
	executor := piston.NewExecutor(cfg, logger)
	return judgeAndPrint(cmd, executor, cfg, tf, string(code), policy)
}

func judgeAndPrint(
	cmd *cobra.Command,
	executor secondary.CodeExecutor,
	cfg *config.ExecutorConfig,
	tf *TestsFile,
	code string,
	policy domain.FailurePolicy,
) error {
	registry := language.NewDefaultRegistry(cfg.LanguageVersions)
	engine := execution.NewEngine(
		registry,
		wrapper.NewDefaultGenerator(),
		executor,
		verdict.NewClassifier(logger),
		cfg,
		logger,
	)
	svc := judge.NewJudgeService(engine, registry, nil, nil, 1, logger)

	submission := domain.NewSubmission(tf.ProblemID, runLanguage, code, &tf.Signature, tf.TestCases)
	submission.Policy = policy
	result, err := svc.Run(cmd.Context(), submission)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
