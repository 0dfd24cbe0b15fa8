// petctl drives the running server from the command line: the same
// surface the widget deep links use, plus a status readout.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var addr string

func main() {
	root := &cobra.Command{
		Use:           "petctl",
		Short:         "Control the task pet from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&addr, "addr", "http://localhost:8787", "server base URL")

	for _, name := range []string{"complete", "skip", "miss", "next", "prev"} {
		root.AddCommand(actionCommand(name))
	}
	root.AddCommand(statusCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "petctl:", err)
		os.Exit(1)
	}
}

func actionCommand(name string) *cobra.Command {
	short := map[string]string{
		"complete": "Complete the current task",
		"skip":     "Skip the current task",
		"miss":     "Mark the current task missed",
		"next":     "Move the cursor to the next task",
		"prev":     "Move the cursor to the previous task",
	}[name]

	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := post("/api/actions/" + name)
			if err != nil {
				return err
			}
			var res struct {
				Action        string `json:"action"`
				CurrentTaskID string `json:"currentTaskId"`
				PetState      struct {
					XP         int `json:"xp"`
					StageIndex int `json:"stageIndex"`
				} `json:"petState"`
			}
			if err := json.Unmarshal(body, &res); err != nil {
				return err
			}
			fmt.Printf("%s ok: xp=%d stage=%d current=%s\n",
				res.Action, res.PetState.XP, res.PetState.StageIndex, res.CurrentTaskID)
			return nil
		},
	}
}

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's tasks and the pet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := get("/api/state")
			if err != nil {
				return err
			}
			var res struct {
				CurrentTaskID    string `json:"currentTaskId"`
				LastRolloverDate string `json:"lastRolloverDate"`
				PetState         struct {
					XP int `json:"xp"`
				} `json:"petState"`
				Stage struct {
					Name  string `json:"name"`
					Image string `json:"image"`
				} `json:"stage"`
				ProgressPct float64 `json:"progressPct"`
				Tasks       []struct {
					ID        string `json:"id"`
					Title     string `json:"title"`
					DayKey    string `json:"dayKey"`
					IsDone    bool   `json:"isDone"`
					IsSkipped bool   `json:"isSkipped"`
					IsMissed  bool   `json:"isMissed"`
				} `json:"tasks"`
			}
			if err := json.Unmarshal(body, &res); err != nil {
				return err
			}

			fmt.Printf("%s %s  xp=%d (%.0f%% to next)\n",
				res.Stage.Image, res.Stage.Name, res.PetState.XP, res.ProgressPct)
			for _, t := range res.Tasks {
				if t.DayKey != res.LastRolloverDate {
					continue
				}
				mark := " "
				switch {
				case t.IsDone:
					mark = "x"
				case t.IsSkipped:
					mark = "-"
				case t.IsMissed:
					mark = "!"
				}
				cursor := "  "
				if t.ID == res.CurrentTaskID {
					cursor = "> "
				}
				fmt.Printf("%s[%s] %s\n", cursor, mark, t.Title)
			}
			return nil
		},
	}
}

func post(path string) ([]byte, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	res, err := client.Post(addr+path, "application/json", bytes.NewReader(nil))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d: %s", res.StatusCode, bytes.TrimSpace(body))
	}
	return body, nil
}

func get(path string) ([]byte, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	res, err := client.Get(addr + path)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d: %s", res.StatusCode, bytes.TrimSpace(body))
	}
	return body, nil
}
