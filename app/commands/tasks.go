package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"taskboard/app/export"
	"taskboard/app/models"

	"github.com/urfave/cli"
)

func taskCommands(sh *shell) cli.Commands {
	return cli.Commands{
		{
			Name:   "list",
			Usage:  "list your tasks",
			Action: sh.listTasks,
		},
		{
			Name:  "add",
			Usage: "add a task",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "title, t"},
				cli.StringFlag{Name: "description, d"},
				cli.StringFlag{Name: "status, s", Value: models.StatusPending},
			},
			Action: sh.addTask,
		},
		{
			Name:      "update",
			Usage:     "change the fields of a task",
			ArgsUsage: "ID",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "title, t"},
				cli.StringFlag{Name: "description, d"},
				cli.StringFlag{Name: "status, s"},
			},
			Action: sh.updateTask,
		},
		{
			Name:      "delete",
			Usage:     "delete a task",
			ArgsUsage: "ID",
			Action:    sh.deleteTask,
		},
		{
			Name:  "export",
			Usage: "export your tasks",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "format, f", Value: "json", Usage: strings.Join(export.Formats, ", ")},
				cli.StringFlag{Name: "out, o", Usage: "output file; stdout when empty"},
			},
			Action: sh.exportTasks,
		},
	}
}

func (sh *shell) fetch(c *cli.Context) (*env, string, error) {
	e, username, err := sh.currentUser(c)
	if err != nil {
		return nil, "", err
	}
	if err := e.tasks.Fetch(context.Background(), username); err != nil {
		return nil, "", errors.New(e.tasks.State().Error)
	}
	return e, username, nil
}

func (sh *shell) listTasks(c *cli.Context) error {
	e, _, err := sh.fetch(c)
	if err != nil {
		return err
	}
	tasks := e.tasks.State().Tasks
	if len(tasks) == 0 {
		fmt.Fprintln(sh.out, "No tasks found. Add a new one!")
		return nil
	}
	w := tabwriter.NewWriter(sh.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTITLE\tDESCRIPTION")
	for _, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.Status, t.Title, t.Description)
	}
	return w.Flush()
}

func checkStatus(s string) error {
	if !models.ValidStatus(s) {
		return fmt.Errorf("status must be %q or %q", models.StatusPending, models.StatusCompleted)
	}
	return nil
}

func (sh *shell) addTask(c *cli.Context) error {
	if err := required(c, "title", "description"); err != nil {
		return err
	}
	if err := checkStatus(c.String("status")); err != nil {
		return err
	}
	e, username, err := sh.currentUser(c)
	if err != nil {
		return err
	}
	task, err := e.tasks.Add(context.Background(), models.TaskInput{
		Title:       c.String("title"),
		Description: c.String("description"),
		Status:      c.String("status"),
		Username:    username,
	})
	if err != nil {
		return ErrQuiet
	}
	fmt.Fprintf(sh.out, "Added task %d\n", task.ID)
	return nil
}

func taskIDArg(c *cli.Context) (int, error) {
	id, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return 0, fmt.Errorf("task ID required, got %q", c.Args().First())
	}
	return id, nil
}

func (sh *shell) updateTask(c *cli.Context) error {
	id, err := taskIDArg(c)
	if err != nil {
		return err
	}
	if c.IsSet("status") {
		if err := checkStatus(c.String("status")); err != nil {
			return err
		}
	}
	e, username, err := sh.fetch(c)
	if err != nil {
		return err
	}

	var task *models.Task
	for _, t := range e.tasks.State().Tasks {
		if t.ID == id {
			t := t
			task = &t
			break
		}
	}
	if task == nil {
		return fmt.Errorf("no task with id %d", id)
	}
	if c.IsSet("title") {
		task.Title = c.String("title")
	}
	if c.IsSet("description") {
		task.Description = c.String("description")
	}
	if c.IsSet("status") {
		task.Status = c.String("status")
	}
	task.Username = username

	if _, err := e.tasks.Update(context.Background(), *task); err != nil {
		return ErrQuiet
	}
	fmt.Fprintf(sh.out, "Updated task %d\n", id)
	return nil
}

func (sh *shell) deleteTask(c *cli.Context) error {
	id, err := taskIDArg(c)
	if err != nil {
		return err
	}
	e, _, err := sh.currentUser(c)
	if err != nil {
		return err
	}
	if err := e.tasks.Delete(context.Background(), id); err != nil {
		return ErrQuiet
	}
	fmt.Fprintf(sh.out, "Deleted task %d\n", id)
	return nil
}

func (sh *shell) exportTasks(c *cli.Context) error {
	e, _, err := sh.fetch(c)
	if err != nil {
		return err
	}
	b, err := export.Tasks(e.tasks.State().Tasks, c.String("format"))
	if err != nil {
		return err
	}
	out := c.String("out")
	if out == "" {
		_, err := sh.out.Write(b)
		return err
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Exported -> %s\n", out)
	return nil
}
