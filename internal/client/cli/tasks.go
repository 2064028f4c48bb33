package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
)

func statusMark(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// List prints the signed-in user's tasks, one per line.
func (a *App) List(ctx context.Context) error {
	tasks, err := a.api.ListTasks(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks yet.")
		return nil
	}

	for _, task := range tasks {
		fmt.Printf("%s %s  %s\n", statusMark(task.Completed), task.ID, task.Title)
	}
	return nil
}

// Add prompts for a title and an optional multi-line description and
// creates a task.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}

	description, err := GetMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	task, err := a.api.CreateTask(ctx, title, description)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Printf("Created task %s\n", task.ID)
	return nil
}

// Show prompts for a task id and prints the full task.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id to show", os.Stdout)
	if err != nil {
		return err
	}

	task, err := a.api.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			log.Printf("Task %s not found", id)
		} else {
			log.Printf("Error: %s", err.Error())
		}
		return err
	}

	fmt.Printf("%s %s\n", statusMark(task.Completed), task.Title)
	if task.Description != "" {
		fmt.Println(task.Description)
	}
	fmt.Printf("created: %s  updated: %s\n", task.CreatedAt.Local(), task.UpdatedAt.Local())
	return nil
}

// Edit prompts for a task id, a new title and description and replaces
// the task's content. The completion state is left unchanged.
func (a *App) Edit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id to edit", os.Stdout)
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Enter new title", os.Stdout)
	if err != nil {
		return err
	}

	description, err := GetMultiline(a.reader, "Enter new description", os.Stdout)
	if err != nil {
		return err
	}

	task, err := a.api.UpdateTask(ctx, id, title, description, nil)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			log.Printf("Task %s not found", id)
		} else {
			log.Printf("Error: %s", err.Error())
		}
		return err
	}

	fmt.Printf("Updated task %s\n", task.ID)
	return nil
}

// Toggle prompts for a task id and flips its completion state.
func (a *App) Toggle(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id to toggle", os.Stdout)
	if err != nil {
		return err
	}

	task, err := a.api.ToggleTask(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			log.Printf("Task %s not found", id)
		} else {
			log.Printf("Error: %s", err.Error())
		}
		return err
	}

	fmt.Printf("%s %s\n", statusMark(task.Completed), task.Title)
	return nil
}

// Delete prompts for a task id and deletes the task.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id to delete", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			log.Printf("Task %s not found", id)
		} else {
			log.Printf("Error: %s", err.Error())
		}
		return err
	}

	fmt.Println("Deleted.")
	return nil
}
