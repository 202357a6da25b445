package main

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toyz/axonbind/internal/demo"
	"github.com/toyz/axonbind/pkg/axon"
	"github.com/toyz/axonbind/pkg/axon/logging"
)

func newRoutesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the demo application's route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			diag := opts.diagnostics(cmd, logging.LevelInfo)

			app, err := demo.Setup(axon.WithLogger(diag))
			if err != nil {
				return err
			}
			printRoutes(diag, app.Registrar.Routes(app.Controllers...))
			return nil
		},
	}
}

// printRoutes lists routes grouped by controller in registration order
func printRoutes(diag *logging.Diagnostics, routes []axon.RouteInfo) {
	diag.Header("routes")

	var order []string
	groups := make(map[string][]axon.RouteInfo)
	for _, r := range routes {
		if _, ok := groups[r.ControllerName]; !ok {
			order = append(order, r.ControllerName)
		}
		groups[r.ControllerName] = append(groups[r.ControllerName], r)
	}

	for _, controller := range order {
		diag.Category(controller)
		diag.Indent()
		for _, r := range groups[controller] {
			diag.List("%-6s %-20s -> %s%s", r.Method, r.Path, r.HandlerName, describeParams(r.ParameterTypes))
		}
		diag.Unindent()
	}

	diag.Summary("Summary", map[string]interface{}{
		"Controllers": len(order),
		"Routes":      len(routes),
	})
}

func describeParams(params map[string]axon.TypeName) string {
	if len(params) == 0 {
		return ""
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " " + string(params[name])
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
