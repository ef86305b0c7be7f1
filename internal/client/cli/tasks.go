package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"taskapp/internal/client/models"
)

// List fetches the current task list from the server and prints it.
func (a *App) List(ctx context.Context) error {
	a.activeView = ViewList

	tasks, err := a.taskService.Refresh(ctx)
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	printTasks(tasks)
	return nil
}

// Create switches to the create view, collects the task fields and submits
// them. On success the list view becomes active again and the refreshed
// collection (including the server-assigned id) is shown; on failure the
// create view stays active so the user can retry.
func (a *App) Create(ctx context.Context) error {
	a.activeView = ViewCreate

	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.taskService.Create(ctx, title, description); err != nil {
		log.Printf("Create failed: %s", err.Error())
		return err
	}

	a.activeView = ViewList
	log.Printf("Task created")
	printTasks(a.taskService.Tasks())
	return nil
}

// Toggle flips the completion state of a task by id and shows the refreshed list.
func (a *App) Toggle(ctx context.Context) error {
	id, err := a.promptTaskID("Enter task id to toggle")
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	msg, err := a.taskService.ToggleDone(ctx, id)
	if err != nil {
		log.Printf("Toggle failed: %s", err.Error())
		return err
	}

	fmt.Println(msg)
	printTasks(a.taskService.Tasks())
	return nil
}

// Delete removes a task by id and shows the refreshed list.
func (a *App) Delete(ctx context.Context) error {
	id, err := a.promptTaskID("Enter task id to delete")
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	msg, err := a.taskService.Delete(ctx, id)
	if err != nil {
		log.Printf("Delete failed: %s", err.Error())
		return err
	}

	fmt.Println(msg)
	printTasks(a.taskService.Tasks())
	return nil
}

func (a *App) promptTaskID(prompt string) (int64, error) {
	text, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", text)
	}
	return id, nil
}

func printTasks(tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks yet")
		return
	}
	for _, t := range tasks {
		status := "[ ]"
		if t.Done {
			status = "[x]"
		}
		description := t.Description
		if description == "" {
			description = "no description"
		}
		fmt.Printf("%s %d: %s - %s\n", status, t.ID, t.Title, description)
	}
}
