package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/untoldecay/entitylink/internal/config"
	"github.com/untoldecay/entitylink/internal/debug"
)

var rootCtx = context.Background()

var rootCmd = &cobra.Command{
	Use:   "entitylink",
	Short: "Link entities in HotpotQA questions to Wikidata",
	Long: `Loads the first few questions of the HotpotQA distractor training split,
links the named entities in each question to Wikidata items, prints a summary
table and writes every linked entity to a JSON file.

With no flags the defaults reproduce the standard run:

  dataset   hotpotqa/hotpot_qa (distractor, train), streamed
  limit     5 questions
  annotator kb (local alias knowledge base, see 'entitylink kb import')
  output    experiment_datasets/extracted_wikidata_ids.json`,
	Args: cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if config.GetBool(config.KeyVerbose) {
			debug.SetEnabled(true)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPipeline(rootCtx, cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int("limit", 5, "Number of questions to process")
	flags.StringP("output", "o", "", "Path of the JSON results file")
	flags.String("annotator", "", "Entity linker backend (kb, ollama, anthropic)")
	flags.String("kb", "", "Path of the knowledge base database")
	flags.String("dataset-file", "", "Read records from a local JSON/JSONL file instead of the Hub")
	flags.BoolP("verbose", "v", false, "Log run events to stderr")
}

// bindFlags wires persistent flags into the config singleton so an explicit
// flag beats env and config file.
func bindFlags(cmd *cobra.Command) error {
	bindings := map[string]string{
		config.KeyLimit:       "limit",
		config.KeyOutput:      "output",
		config.KeyAnnotator:   "annotator",
		config.KeyKBPath:      "kb",
		config.KeyDatasetFile: "dataset-file",
		config.KeyVerbose:     "verbose",
	}
	for key, name := range bindings {
		if err := config.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCtx = ctx

	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := bindFlags(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
