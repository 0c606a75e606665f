package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskmanager/internal/models"
)

func (a *App) listCmd() *cobra.Command {
	var filterName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := models.ParseFilter(filterName)
			if err != nil {
				return err
			}

			ts := a.taskStore()
			if err := ts.FetchTasks(cmd.Context()); err != nil {
				return err
			}
			ts.SetFilter(filter)

			tasks := ts.FilteredTasks()
			if len(tasks) == 0 {
				fmt.Fprintln(a.Out, "No tasks.")
				return nil
			}
			for _, task := range tasks {
				formatTask(a.Out, task)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filterName, "filter", "f", models.FilterAll.String(), "Filter ("+filterNames()+")")

	return cmd
}

func (a *App) addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := a.taskStore()
			if err := ts.CreateTask(cmd.Context(), models.NewTask{Title: strings.Join(args, " ")}); err != nil {
				return err
			}

			tasks := ts.Tasks()
			formatTask(a.Out, tasks[len(tasks)-1])
			return nil
		},
	}
}

func (a *App) toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between completed and not completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			ts := a.taskStore()
			if err := ts.FetchTasks(cmd.Context()); err != nil {
				return err
			}

			task, ok := findTask(ts.Tasks(), id)
			if !ok {
				return fmt.Errorf("task %s not found", id)
			}

			if err := ts.ToggleTaskCompletion(cmd.Context(), task); err != nil {
				return err
			}

			if updated, ok := findTask(ts.Tasks(), id); ok {
				formatTask(a.Out, updated)
			}
			return nil
		},
	}
}

func (a *App) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.taskStore().RemoveTask(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(a.Out, "Task deleted")
			return nil
		},
	}
}

func filterNames() string {
	names := make([]string, 0, len(models.Filters()))
	for _, f := range models.Filters() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}

func findTask(tasks []models.Task, id string) (models.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}
