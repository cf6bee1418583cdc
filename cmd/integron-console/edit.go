package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/integron/console/pkg/catalog"
	"github.com/integron/console/pkg/models"
)

// ComposeCommand builds a workflow draft from flags and saves it. Steps
// are given as repeated --step "service:action[:json-config]" values.
func ComposeCommand() *cli.Command {
	return &cli.Command{
		Name:  "compose",
		Usage: "Create or update a workflow from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Edit an existing workflow instead of creating one"},
			&cli.StringFlag{Name: "template", Usage: "Start from a template id"},
			&cli.StringFlag{Name: "name"},
			&cli.StringFlag{Name: "description"},
			&cli.StringFlag{Name: "trigger", Value: string(models.TriggerTypeManual)},
			&cli.StringSliceFlag{Name: "step", Usage: "service:action[:json-config], repeatable"},
			&cli.BoolFlag{Name: "run", Usage: "Execute the workflow right after saving"},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			c := newConsole(loadConfig(command))

			if err := c.requireAuth(); err != nil {
				return err
			}

			if err := c.catalog.Init(ctx); err != nil && !errors.Is(err, catalog.ErrUnavailable) {
				return err
			}

			switch {
			case command.String("id") != "":
				if err := c.editor.LoadForEdit(ctx, command.String("id")); err != nil {
					return err
				}
			case command.String("template") != "":
				if err := c.editor.FromTemplate(ctx, command.String("template")); err != nil {
					return err
				}
			default:
				c.editor.NewWorkflow()
			}

			if name := command.String("name"); name != "" {
				c.editor.SetName(name)
			}

			if description := command.String("description"); description != "" {
				c.editor.SetDescription(description)
			}

			if trigger := command.String("trigger"); trigger != "" {
				c.editor.SetTrigger(models.Trigger{Type: models.TriggerType(trigger)})
			}

			for _, raw := range command.StringSlice("step") {
				service, action, stepConfig := splitStepSpec(raw)

				if _, err := c.editor.AddStep(service, action, stepConfig); err != nil {
					return err
				}
			}

			result, err := c.editor.Save(ctx, command.Bool("run"))
			if err != nil {
				return err
			}

			fmt.Printf("Saved workflow %s\n", result.Workflow.ID)

			if result.Run != nil {
				fmt.Printf("Run %s started\n", result.Run.ID)
			}

			if result.RunErr != nil {
				fmt.Printf("Saved, but execution failed: %v\n", result.RunErr)
			}

			return nil
		},
	}
}

// ConnectorsCommand lists the connector catalog with each service's
// actions.
func ConnectorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "connectors",
		Usage: "List available connectors and their actions",
		Action: func(ctx context.Context, command *cli.Command) error {
			c := newConsole(loadConfig(command))

			if err := c.requireAuth(); err != nil {
				return err
			}

			if err := c.catalog.Init(ctx); err != nil {
				return err
			}

			for _, connector := range c.catalog.Connectors() {
				names := make([]string, 0, len(connector.Actions))
				for _, action := range connector.Actions {
					names = append(names, action.Name)
				}

				fmt.Printf("%s\t%s\n", connector.Name, strings.Join(names, ", "))
			}

			return nil
		},
	}
}

func splitStepSpec(raw string) (service, action, config string) {
	parts := strings.SplitN(raw, ":", 3)

	service = parts[0]
	if len(parts) > 1 {
		action = parts[1]
	}

	if len(parts) > 2 {
		config = parts[2]
	}

	return service, action, config
}
