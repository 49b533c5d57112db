package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/app"
	"github.com/ibeckermayer/syndicate/internal/runner"
)

// Job is the publish input file: one content item and the websites to send it
// to. Defaults fill fields and credential keys a website leaves unset.
type Job struct {
	Content  adapter.Content   `yaml:"content"`
	Defaults adapter.Website   `yaml:"defaults"`
	Websites []adapter.Website `yaml:"websites"`
}

// LoadJob reads a YAML job file. ${VAR} references are expanded first so
// credentials can stay in the environment.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var job Job
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &job); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if err := job.applyDefaults(); err != nil {
		return nil, err
	}
	return &job, nil
}

func (j *Job) applyDefaults() error {
	for i := range j.Websites {
		w := &j.Websites[i]
		creds := make(map[string]string, len(w.Credentials)+len(j.Defaults.Credentials))
		for k, v := range j.Defaults.Credentials {
			creds[k] = v
		}
		for k, v := range w.Credentials {
			creds[k] = v
		}
		defaults := j.Defaults
		defaults.Site = ""
		defaults.Credentials = nil
		if err := mergo.Merge(w, defaults); err != nil {
			return fmt.Errorf("failed to apply defaults to %s: %w", w.Site, err)
		}
		w.Credentials = creds
	}
	return nil
}

// Filter keeps only websites whose site is in keys; empty keys keeps all
func (j *Job) Filter(keys []string) {
	if len(keys) == 0 {
		return
	}
	want := map[string]bool{}
	for _, k := range keys {
		want[strings.ToLower(strings.TrimSpace(k))] = true
	}
	kept := j.Websites[:0]
	for _, w := range j.Websites {
		if want[strings.ToLower(w.Site)] {
			kept = append(kept, w)
		}
	}
	j.Websites = kept
}

var (
	publishSites  []string
	publishJSON   bool
	publishReport bool
)

var publishCmd = &cobra.Command{
	Use:   "publish <job.yaml>",
	Short: "Publishes the content in a job file to its websites.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := LoadJob(args[0])
		if err != nil {
			return err
		}
		job.Filter(publishSites)

		return withApp(cmd.Context(), func(a *app.App, logger *slog.Logger) error {
			logger.Info("publishing", "title", job.Content.Title, "websites", len(job.Websites))
			run, err := a.Publish(cmd.Context(), job.Content, job.Websites, nil)
			if err != nil {
				return err
			}

			if publishJSON {
				return printJSON(run.Outcomes)
			}
			printOutcomes(run.Outcomes)
			if run.ReportPath != "" {
				fmt.Printf("\nReport: %s\n", run.ReportPath)
				if publishReport {
					return a.ViewLastReport()
				}
			}

			if _, failed := runner.Counts(run.Outcomes); failed > 0 {
				return fmt.Errorf("%d of %d websites failed", failed, len(run.Outcomes))
			}
			return nil
		})
	},
}

func init() {
	publishCmd.Flags().StringSliceVar(&publishSites, "sites", nil, "only publish to these site keys")
	publishCmd.Flags().BoolVar(&publishJSON, "json", false, "print results as JSON")
	publishCmd.Flags().BoolVar(&publishReport, "open-report", false, "open the HTML report when done")
	rootCmd.AddCommand(publishCmd)
}

type outcomeJSON struct {
	Site string `json:"site"`
	adapter.Summary
	Logs []adapter.Entry `json:"logs,omitempty"`
}

func printJSON(outcomes []runner.Outcome) error {
	out := make([]outcomeJSON, len(outcomes))
	for i, o := range outcomes {
		out[i] = outcomeJSON{Site: o.Site, Summary: o.Result.Summary(), Logs: o.Logs}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printOutcomes(outcomes []runner.Outcome) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Site", "Status", "URL / Error", "Screenshot", "Time"})

	for _, o := range outcomes {
		s := o.Result.Summary()
		if s.Success {
			t.AppendRow(table.Row{o.Site, "published", s.PostURL, s.ScreenshotURL, o.Duration.Round(time.Second)})
		} else {
			t.AppendRow(table.Row{o.Site, "failed: " + string(s.Kind), s.Error, "", o.Duration.Round(time.Second)})
		}
	}

	ok, failed := runner.Counts(outcomes)
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d ok / %d failed", ok, failed), "", "", ""})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
